package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/nimasrn/branch-backoffice/internal/model"
	xhttp "github.com/nimasrn/branch-backoffice/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestRequireAuth(t *testing.T) {
	t.Run("valid token passes user through", func(t *testing.T) {
		auth := new(MockAuthenticator)
		user := branchUser(7, 2)
		auth.On("Authenticate", mock.Anything, "tok-123").Return(user, nil)

		var seen *model.User
		handler := RequireAuth(auth)(func(ctx *xhttp.RequestCtx) {
			seen = CurrentUser(ctx)
		})

		ctx := setupTestContext("GET", "/orders", nil)
		ctx.Request.Header.Set("Authorization", "Bearer tok-123")
		handler(ctx)

		assert.Equal(t, user, seen)
		auth.AssertExpectations(t)
	})

	t.Run("missing header", func(t *testing.T) {
		auth := new(MockAuthenticator)
		called := false
		handler := RequireAuth(auth)(func(ctx *xhttp.RequestCtx) { called = true })

		ctx := setupTestContext("GET", "/orders", nil)
		handler(ctx)

		assert.False(t, called)
		assert.Equal(t, 401, ctx.Response.StatusCode())
	})

	t.Run("malformed header", func(t *testing.T) {
		auth := new(MockAuthenticator)
		handler := RequireAuth(auth)(func(ctx *xhttp.RequestCtx) {})

		ctx := setupTestContext("GET", "/orders", nil)
		ctx.Request.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		handler(ctx)

		assert.Equal(t, 401, ctx.Response.StatusCode())
	})

	t.Run("expired token", func(t *testing.T) {
		auth := new(MockAuthenticator)
		auth.On("Authenticate", mock.Anything, "stale").Return(nil, errors.New("session not found"))

		called := false
		handler := RequireAuth(auth)(func(ctx *xhttp.RequestCtx) { called = true })

		ctx := setupTestContext("GET", "/orders", nil)
		ctx.Request.Header.Set("Authorization", "Bearer stale")
		handler(ctx)

		assert.False(t, called)
		assert.Equal(t, 401, ctx.Response.StatusCode())
		auth.AssertExpectations(t)
	})

	t.Run("lowercase bearer scheme accepted", func(t *testing.T) {
		auth := new(MockAuthenticator)
		auth.On("Authenticate", mock.Anything, "tok-456").Return(branchUser(1, 1), nil)

		called := false
		handler := RequireAuth(auth)(func(ctx *xhttp.RequestCtx) { called = true })

		ctx := setupTestContext("GET", "/orders", nil)
		ctx.Request.Header.Set("Authorization", "bearer tok-456")
		handler(ctx)

		assert.True(t, called)
	})
}

func TestRequireRole(t *testing.T) {
	t.Run("matching role passes", func(t *testing.T) {
		called := false
		handler := RequireRole(model.RoleAdmin)(func(ctx *xhttp.RequestCtx) { called = true })

		ctx := authedContext("POST", "/announcements", nil, adminUser(1))
		handler(ctx)

		assert.True(t, called)
	})

	t.Run("user cannot reach admin route", func(t *testing.T) {
		called := false
		handler := RequireRole(model.RoleAdmin)(func(ctx *xhttp.RequestCtx) { called = true })

		ctx := authedContext("POST", "/announcements", nil, branchUser(2, 3))
		handler(ctx)

		assert.False(t, called)
		assert.Equal(t, 403, ctx.Response.StatusCode())
	})

	t.Run("admin cannot reach user route", func(t *testing.T) {
		called := false
		handler := RequireRole(model.RoleUser)(func(ctx *xhttp.RequestCtx) { called = true })

		ctx := authedContext("GET", "/dashboard", nil, adminUser(1))
		handler(ctx)

		assert.False(t, called)
		assert.Equal(t, 403, ctx.Response.StatusCode())
	})

	t.Run("missing principal is forbidden", func(t *testing.T) {
		handler := RequireRole(model.RoleAdmin)(func(ctx *xhttp.RequestCtx) {})

		ctx := setupTestContext("POST", "/announcements", nil)
		handler(ctx)

		assert.Equal(t, 403, ctx.Response.StatusCode())
	})
}

func TestWrapOrder(t *testing.T) {
	var order []string
	mw := func(name string) xhttp.MiddlewareFunc {
		return func(next xhttp.RequestHandler) xhttp.RequestHandler {
			return func(ctx *xhttp.RequestCtx) {
				order = append(order, name)
				next(ctx)
			}
		}
	}

	handler := wrap(func(ctx *xhttp.RequestCtx) {
		order = append(order, "handler")
	}, mw("first"), mw("second"))

	handler(setupTestContext("GET", "/", nil))

	assert.Equal(t, []string{"first", "second", "handler"}, order)
}
