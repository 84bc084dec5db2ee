package handlers

import (
	"context"
	"errors"

	"github.com/fasthttp/router"
	"github.com/nimasrn/branch-backoffice/internal/model"
	"github.com/nimasrn/branch-backoffice/internal/services"
	xhttp "github.com/nimasrn/branch-backoffice/pkg/http"
)

type AuthService interface {
	Register(ctx context.Context, p model.UserCreateRequest) (*model.User, error)
	Login(ctx context.Context, p model.LoginRequest) (*model.LoginResult, error)
	Logout(ctx context.Context, token string) error
	ListUsers(ctx context.Context) ([]*model.User, error)
}

type AuthHandler struct {
	svc AuthService
}

func RegisterAuthRoutes(e *router.Group, h *AuthHandler, auth xhttp.MiddlewareFunc) {
	e.POST("/auth/login", h.Login)
	// Logout resolves its own token: the session of a deleted user must
	// still be revocable, and RequireAuth would 401 before the handler.
	e.POST("/auth/logout", h.Logout)
	e.GET("/auth/me", wrap(h.Me, auth))
	e.POST("/auth/register", wrap(h.Register, auth, RequireRole(model.RoleAdmin)))
	e.GET("/users", wrap(h.ListUsers, auth, RequireRole(model.RoleAdmin)))
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		svc: authService,
	}
}

type registerRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Usertype model.Role `json:"usertype"`
	BranchID int64      `json:"branch_id"`
}

type userListResponse struct {
	Items []*model.User `json:"items"`
}

/* --------------------------------- Routes ----------------------------------- */

func (h *AuthHandler) Login(ctx *xhttp.RequestCtx) {
	var req model.LoginRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	result, err := h.svc.Login(ctx, req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(ctx, 401, err.Error())
			return
		}
		writeError(ctx, 400, err.Error())
		return
	}
	writeJSON(ctx, 201, result)
}

func (h *AuthHandler) Logout(ctx *xhttp.RequestCtx) {
	token := bearerToken(ctx)
	if token == "" {
		writeError(ctx, 401, "missing bearer token")
		return
	}

	if err := h.svc.Logout(ctx, token); err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			writeError(ctx, 401, err.Error())
			return
		}
		writeError(ctx, 400, err.Error())
		return
	}
	writeJSON(ctx, 200, map[string]string{"status": "logged out"})
}

func (h *AuthHandler) Me(ctx *xhttp.RequestCtx) {
	user := CurrentUser(ctx)
	if user == nil {
		writeError(ctx, 401, "missing bearer token")
		return
	}
	writeJSON(ctx, 200, user)
}

func (h *AuthHandler) Register(ctx *xhttp.RequestCtx) {
	var req registerRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	user, err := h.svc.Register(ctx, model.UserCreateRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Usertype: req.Usertype,
		BranchID: req.BranchID,
	})
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 201, user)
}

func (h *AuthHandler) ListUsers(ctx *xhttp.RequestCtx) {
	users, err := h.svc.ListUsers(ctx)
	if err != nil {
		writeError(ctx, 400, err.Error())
		return
	}
	writeJSON(ctx, 200, userListResponse{Items: users})
}
