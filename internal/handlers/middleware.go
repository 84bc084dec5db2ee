package handlers

import (
	"context"
	"strings"

	"github.com/nimasrn/branch-backoffice/internal/model"
	xhttp "github.com/nimasrn/branch-backoffice/pkg/http"
)

const userContextKey = "auth_user"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// RequireAuth resolves the bearer token and stashes the user on the
// request context. Requests without a valid session get a 401.
func RequireAuth(auth Authenticator) xhttp.MiddlewareFunc {
	return func(next xhttp.RequestHandler) xhttp.RequestHandler {
		return func(ctx *xhttp.RequestCtx) {
			token := bearerToken(ctx)
			if token == "" {
				writeError(ctx, 401, "missing bearer token")
				return
			}

			user, err := auth.Authenticate(ctx, token)
			if err != nil {
				writeError(ctx, 401, "invalid or expired token")
				return
			}

			ctx.SetUserValue(userContextKey, user)
			next(ctx)
		}
	}
}

// RequireRole gates a route on an exact role match. An admin does not
// pass a user-gated route, nor the other way round. A missing principal
// is forbidden the same as a role mismatch.
func RequireRole(role model.Role) xhttp.MiddlewareFunc {
	return func(next xhttp.RequestHandler) xhttp.RequestHandler {
		return func(ctx *xhttp.RequestCtx) {
			user := CurrentUser(ctx)
			if user == nil {
				writeError(ctx, 403, "forbidden")
				return
			}
			if user.Usertype != role {
				writeError(ctx, 403, "forbidden")
				return
			}
			next(ctx)
		}
	}
}

// CurrentUser returns the authenticated user set by RequireAuth, or nil.
func CurrentUser(ctx *xhttp.RequestCtx) *model.User {
	user, _ := ctx.UserValue(userContextKey).(*model.User)
	return user
}

// wrap applies middlewares right-to-left, so the first listed runs first.
func wrap(h xhttp.RequestHandler, mw ...xhttp.MiddlewareFunc) xhttp.RequestHandler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

func bearerToken(ctx *xhttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
