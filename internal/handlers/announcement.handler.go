package handlers

import (
	"context"
	"time"

	"github.com/fasthttp/router"
	"github.com/nimasrn/branch-backoffice/internal/model"
	xhttp "github.com/nimasrn/branch-backoffice/pkg/http"
)

type AnnouncementService interface {
	Create(ctx context.Context, p model.AnnouncementCreateRequest) (*model.Announcement, error)
	Get(ctx context.Context, id int64) (*model.Announcement, error)
	ListForUser(ctx context.Context, userID int64, limit, offset int) ([]*model.UserAnnouncementView, int64, error)
	MarkRead(ctx context.Context, userID, announcementID int64) error
	UnreadCount(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, id int64) error

	RecordChatNotification(ctx context.Context, p model.ChatNotificationCreateRequest) (*model.ChatNotification, error)
	ListChatNotifications(ctx context.Context, userID int64, limit, offset int) ([]*model.ChatNotification, int64, error)
	MarkChatNotificationRead(ctx context.Context, userID, id int64) error
	UnreadChatCount(ctx context.Context, userID int64) (int64, error)
}

type AnnouncementHandler struct {
	svc AnnouncementService
}

func RegisterAnnouncementRoutes(e *router.Group, h *AnnouncementHandler, auth xhttp.MiddlewareFunc) {
	e.POST("/announcements", wrap(h.Create, auth, RequireRole(model.RoleAdmin)))
	e.GET("/announcements", wrap(h.ListForUser, auth))
	e.GET("/announcements/unread-count", wrap(h.UnreadCount, auth))
	e.GET("/announcements/{id}", wrap(h.Get, auth))
	e.POST("/announcements/{id}/read", wrap(h.MarkRead, auth))
	e.DELETE("/announcements/{id}", wrap(h.Delete, auth, RequireRole(model.RoleAdmin)))

	e.POST("/notifications/chat", wrap(h.RecordChatNotification, auth))
	e.GET("/notifications/chat", wrap(h.ListChatNotifications, auth))
	e.GET("/notifications/chat/unread-count", wrap(h.UnreadChatCount, auth))
	e.POST("/notifications/chat/{id}/read", wrap(h.MarkChatNotificationRead, auth))
}

func NewAnnouncementHandler(announcementService AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{
		svc: announcementService,
	}
}

type announcementRequest struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Date    string  `json:"date"`
	UserIDs []int64 `json:"user_ids"`
}

type announcementListResponse struct {
	Items []*model.UserAnnouncementView `json:"items"`
	Total int64                         `json:"total"`
}

type chatNotificationListResponse struct {
	Items []*model.ChatNotification `json:"items"`
	Total int64                     `json:"total"`
}

type unreadCountResponse struct {
	Unread int64 `json:"unread"`
}

/* -------------------------------- Announcements -------------------------------- */

func (h *AnnouncementHandler) Create(ctx *xhttp.RequestCtx) {
	user := CurrentUser(ctx)
	if user == nil {
		writeError(ctx, 401, "missing bearer token")
		return
	}

	var req announcementRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	date := time.Now().UTC()
	if req.Date != "" {
		if t, err := parseTime(req.Date); err == nil {
			date = t
		}
	}

	announcement, err := h.svc.Create(ctx, model.AnnouncementCreateRequest{
		Title:     req.Title,
		Content:   req.Content,
		Date:      date,
		CreatedBy: user.ID,
		UserIDs:   req.UserIDs,
	})
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 201, announcement)
}

func (h *AnnouncementHandler) Get(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	announcement, err := h.svc.Get(ctx, id)
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, announcement)
}

func (h *AnnouncementHandler) ListForUser(ctx *xhttp.RequestCtx) {
	user := CurrentUser(ctx)
	if user == nil {
		writeError(ctx, 401, "missing bearer token")
		return
	}
	limit, _ := queryInt(ctx, "limit")
	offset, _ := queryInt(ctx, "offset")

	items, total, err := h.svc.ListForUser(ctx, user.ID, limit, offset)
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, announcementListResponse{Items: items, Total: total})
}

func (h *AnnouncementHandler) MarkRead(ctx *xhttp.RequestCtx) {
	user := CurrentUser(ctx)
	if user == nil {
		writeError(ctx, 401, "missing bearer token")
		return
	}
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	if err := h.svc.MarkRead(ctx, user.ID, id); err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, map[string]string{"status": "read"})
}

func (h *AnnouncementHandler) UnreadCount(ctx *xhttp.RequestCtx) {
	user := CurrentUser(ctx)
	if user == nil {
		writeError(ctx, 401, "missing bearer token")
		return
	}

	count, err := h.svc.UnreadCount(ctx, user.ID)
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, unreadCountResponse{Unread: count})
}

func (h *AnnouncementHandler) Delete(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, map[string]string{"status": "deleted"})
}

/* ------------------------------ Chat notifications ------------------------------ */

func (h *AnnouncementHandler) RecordChatNotification(ctx *xhttp.RequestCtx) {
	var req model.ChatNotificationCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	notification, err := h.svc.RecordChatNotification(ctx, req)
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 201, notification)
}

func (h *AnnouncementHandler) ListChatNotifications(ctx *xhttp.RequestCtx) {
	user := CurrentUser(ctx)
	if user == nil {
		writeError(ctx, 401, "missing bearer token")
		return
	}
	limit, _ := queryInt(ctx, "limit")
	offset, _ := queryInt(ctx, "offset")

	items, total, err := h.svc.ListChatNotifications(ctx, user.ID, limit, offset)
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, chatNotificationListResponse{Items: items, Total: total})
}

func (h *AnnouncementHandler) MarkChatNotificationRead(ctx *xhttp.RequestCtx) {
	user := CurrentUser(ctx)
	if user == nil {
		writeError(ctx, 401, "missing bearer token")
		return
	}
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	if err := h.svc.MarkChatNotificationRead(ctx, user.ID, id); err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, map[string]string{"status": "read"})
}

func (h *AnnouncementHandler) UnreadChatCount(ctx *xhttp.RequestCtx) {
	user := CurrentUser(ctx)
	if user == nil {
		writeError(ctx, 401, "missing bearer token")
		return
	}

	count, err := h.svc.UnreadChatCount(ctx, user.ID)
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, unreadCountResponse{Unread: count})
}
