package handlers

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/nimasrn/branch-backoffice/internal/repository"
	xhttp "github.com/nimasrn/branch-backoffice/pkg/http"
)

// errStatus maps repository sentinels to HTTP statuses. Anything the
// service layer rejects outright is a plain 400.
func errStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrSupplierNotFound),
		errors.Is(err, repository.ErrDeliveryReceiptNotFound),
		errors.Is(err, repository.ErrRequestStocksNotFound),
		errors.Is(err, repository.ErrSalesOrderNotFound),
		errors.Is(err, repository.ErrSalesTargetNotFound),
		errors.Is(err, repository.ErrRemittanceNotFound),
		errors.Is(err, repository.ErrAnnouncementNotFound),
		errors.Is(err, repository.ErrChatNotificationNotFound):
		return 404
	case errors.Is(err, repository.ErrInsufficientStock),
		errors.Is(err, repository.ErrDuplicateProductCode),
		errors.Is(err, repository.ErrDuplicateEmail),
		errors.Is(err, repository.ErrRemittanceAlreadyReceived):
		return 409
	default:
		return 400
	}
}

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	body := ctx.PostBody()
	return json.Unmarshal(body, dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

func queryInt(ctx *xhttp.RequestCtx, key string) (int, bool) {
	if v := query(ctx, key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
	}
	return 0, false
}

func queryInt64(ctx *xhttp.RequestCtx, key string) (int64, bool) {
	if v := query(ctx, key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// pathInt64 reads a {name} route segment as an integer id.
func pathInt64(ctx *xhttp.RequestCtx, name string) (int64, error) {
	raw, _ := ctx.UserValue(name).(string)
	return strconv.ParseInt(raw, 10, 64)
}

func parseTime(s string) (time.Time, error) {
	// Accept RFC3339 or YYYY-MM-DD
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
