package handlers

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nimasrn/branch-backoffice/internal/model"
	"github.com/nimasrn/branch-backoffice/internal/repository"
	xhttp "github.com/nimasrn/branch-backoffice/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func setupTestContext(method, path string, body []byte) *xhttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != nil {
		ctx.Request.SetBody(body)
	}
	return ctx
}

// authedContext builds a request context as RequireAuth would leave it.
func authedContext(method, path string, body []byte, user *model.User) *xhttp.RequestCtx {
	ctx := setupTestContext(method, path, body)
	ctx.SetUserValue(userContextKey, user)
	return ctx
}

// setPathParam mimics the router's matched-segment storage.
func setPathParam(ctx *xhttp.RequestCtx, name, value string) {
	ctx.SetUserValue(name, value)
}

func branchUser(id, branchID int64) *model.User {
	return &model.User{ID: id, Name: "Branch Staff", Email: "staff@example.com", Usertype: model.RoleUser, BranchID: branchID}
}

func adminUser(id int64) *model.User {
	return &model.User{ID: id, Name: "Head Office", Email: "admin@example.com", Usertype: model.RoleAdmin, BranchID: 1}
}

func TestHelperFunctions(t *testing.T) {
	t.Run("readJSON", func(t *testing.T) {
		data := map[string]string{"key": "value"}
		bodyBytes, _ := json.Marshal(data)
		ctx := setupTestContext("POST", "/", bodyBytes)

		var result map[string]string
		err := readJSON(ctx, &result)
		require.NoError(t, err)
		assert.Equal(t, "value", result["key"])
	})

	t.Run("writeJSON", func(t *testing.T) {
		ctx := setupTestContext("GET", "/", nil)
		data := map[string]string{"message": "test"}

		writeJSON(ctx, 200, data)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		assert.Contains(t, string(ctx.Response.Header.Peek("Content-Type")), "application/json")

		var result map[string]string
		err := json.Unmarshal(ctx.Response.Body(), &result)
		require.NoError(t, err)
		assert.Equal(t, "test", result["message"])
	})

	t.Run("writeError", func(t *testing.T) {
		ctx := setupTestContext("GET", "/", nil)
		writeError(ctx, 404, "not found")

		assert.Equal(t, 404, ctx.Response.StatusCode())

		var result map[string]string
		err := json.Unmarshal(ctx.Response.Body(), &result)
		require.NoError(t, err)
		assert.Equal(t, "not found", result["error"])
	})

	t.Run("pathInt64", func(t *testing.T) {
		ctx := setupTestContext("GET", "/products/42", nil)
		setPathParam(ctx, "id", "42")

		id, err := pathInt64(ctx, "id")
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("pathInt64 invalid", func(t *testing.T) {
		ctx := setupTestContext("GET", "/products/abc", nil)
		setPathParam(ctx, "id", "abc")

		_, err := pathInt64(ctx, "id")
		assert.Error(t, err)
	})

	t.Run("parseTime RFC3339", func(t *testing.T) {
		parsed, err := parseTime("2024-01-01T12:00:00Z")
		require.NoError(t, err)
		assert.Equal(t, 2024, parsed.Year())
	})

	t.Run("parseTime date only", func(t *testing.T) {
		parsed, err := parseTime("2024-01-01")
		require.NoError(t, err)
		assert.Equal(t, 2024, parsed.Year())
		assert.Equal(t, time.Month(1), parsed.Month())
		assert.Equal(t, 1, parsed.Day())
	})

	t.Run("parseTime invalid", func(t *testing.T) {
		_, err := parseTime("invalid")
		assert.Error(t, err)
	})
}

func TestErrStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"product not found", repository.ErrProductNotFound, 404},
		{"sales order not found", repository.ErrSalesOrderNotFound, 404},
		{"announcement not found", repository.ErrAnnouncementNotFound, 404},
		{"insufficient stock", repository.ErrInsufficientStock, 409},
		{"duplicate product code", repository.ErrDuplicateProductCode, 409},
		{"remittance already received", repository.ErrRemittanceAlreadyReceived, 409},
		{"validation error", errors.New("branch_id is required"), 400},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, errStatus(tc.err))
		})
	}
}
