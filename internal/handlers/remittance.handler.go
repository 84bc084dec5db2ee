package handlers

import (
	"context"
	"time"

	"github.com/fasthttp/router"
	"github.com/nimasrn/branch-backoffice/internal/model"
	xhttp "github.com/nimasrn/branch-backoffice/pkg/http"
)

type RemittanceService interface {
	Create(ctx context.Context, p model.RemittanceCreateRequest) (*model.Remittance, error)
	Get(ctx context.Context, id int64) (*model.Remittance, error)
	MarkReceived(ctx context.Context, id int64) error
	List(ctx context.Context, f model.RemittanceFilter) ([]*model.Remittance, int64, error)
}

type RemittanceHandler struct {
	svc RemittanceService
}

func RegisterRemittanceRoutes(e *router.Group, h *RemittanceHandler, auth xhttp.MiddlewareFunc) {
	e.POST("/remittances", wrap(h.Create, auth))
	e.GET("/remittances", wrap(h.List, auth))
	e.GET("/remittances/{id}", wrap(h.Get, auth))
	e.POST("/remittances/{id}/receive", wrap(h.MarkReceived, auth, RequireRole(model.RoleAdmin)))
}

func NewRemittanceHandler(remittanceService RemittanceService) *RemittanceHandler {
	return &RemittanceHandler{
		svc: remittanceService,
	}
}

type remittanceRequest struct {
	DateStart     string              `json:"date_start"`
	DateEnd       string              `json:"date_end"`
	BranchID      int64               `json:"branch_id"`
	TotalSales    float64             `json:"total_sales"`
	CashBreakdown model.CashBreakdown `json:"cash_breakdown"`
	Expenses      []model.ExpenseLine `json:"expenses"`
}

type remittanceListResponse struct {
	Items []*model.Remittance `json:"items"`
	Total int64               `json:"total"`
}

func (h *RemittanceHandler) Create(ctx *xhttp.RequestCtx) {
	user := CurrentUser(ctx)
	if user == nil {
		writeError(ctx, 401, "missing bearer token")
		return
	}

	var req remittanceRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	var dateStart, dateEnd time.Time
	if req.DateStart != "" {
		if t, err := parseTime(req.DateStart); err == nil {
			dateStart = t
		}
	}
	if req.DateEnd != "" {
		if t, err := parseTime(req.DateEnd); err == nil {
			dateEnd = t
		}
	}
	branchID := req.BranchID
	if branchID == 0 {
		branchID = user.BranchID
	}

	remittance, err := h.svc.Create(ctx, model.RemittanceCreateRequest{
		DateStart:     dateStart,
		DateEnd:       dateEnd,
		BranchID:      branchID,
		TotalSales:    req.TotalSales,
		CashBreakdown: req.CashBreakdown,
		Expenses:      req.Expenses,
	})
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 201, remittance)
}

func (h *RemittanceHandler) Get(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	remittance, err := h.svc.Get(ctx, id)
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, remittance)
}

func (h *RemittanceHandler) List(ctx *xhttp.RequestCtx) {
	var f model.RemittanceFilter
	if id, ok := queryInt64(ctx, "branch_id"); ok {
		f.BranchID = &id
	}
	if from := query(ctx, "from"); from != "" {
		if t, err := parseTime(from); err == nil {
			f.From = &t
		}
	}
	if to := query(ctx, "to"); to != "" {
		if t, err := parseTime(to); err == nil {
			f.To = &t
		}
	}
	if received := query(ctx, "received"); received != "" {
		v := received == "true"
		f.Received = &v
	}
	f.Limit, _ = queryInt(ctx, "limit")
	f.Offset, _ = queryInt(ctx, "offset")
	f.Desc = query(ctx, "order") == "desc"

	items, total, err := h.svc.List(ctx, f)
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, remittanceListResponse{Items: items, Total: total})
}

func (h *RemittanceHandler) MarkReceived(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	if err := h.svc.MarkReceived(ctx, id); err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, map[string]string{"status": "received"})
}
