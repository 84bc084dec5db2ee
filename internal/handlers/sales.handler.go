package handlers

import (
	"context"
	"time"

	"github.com/fasthttp/router"
	"github.com/nimasrn/branch-backoffice/internal/model"
	"github.com/nimasrn/branch-backoffice/internal/services"
	xhttp "github.com/nimasrn/branch-backoffice/pkg/http"
)

type SalesService interface {
	CreateOrder(ctx context.Context, p model.SalesOrderCreateRequest) (*model.SalesOrder, error)
	GetOrder(ctx context.Context, id int64) (*model.SalesOrder, error)
	ListOrders(ctx context.Context, f model.SalesOrderFilter) ([]*model.SalesOrder, int64, error)
	GetDailySummary(ctx context.Context, branchID int64, day time.Time) (*services.DailySummary, error)
	UpsertTarget(ctx context.Context, p model.SalesTargetUpsertRequest) (*model.SalesTarget, error)
	GetTarget(ctx context.Context, branchID int64) (*model.SalesTarget, error)
	CreateCustomerOrder(ctx context.Context, p model.CustomerOrderCreateRequest) (*model.CustomerOrder, error)
	ListCustomerOrders(ctx context.Context, customerID int64, limit, offset int) ([]*model.CustomerOrder, int64, error)
}

type SalesHandler struct {
	svc SalesService
}

func RegisterSalesRoutes(e *router.Group, h *SalesHandler, auth xhttp.MiddlewareFunc) {
	e.POST("/orders", wrap(h.CreateOrder, auth))
	e.GET("/orders", wrap(h.ListOrders, auth))
	e.GET("/orders/{id}", wrap(h.GetOrder, auth))
	e.GET("/sales/summary", wrap(h.GetDailySummary, auth))

	e.PUT("/sales/targets", wrap(h.UpsertTarget, auth, RequireRole(model.RoleAdmin)))
	e.GET("/sales/targets", wrap(h.GetTarget, auth))

	e.POST("/customer-orders", wrap(h.CreateCustomerOrder, auth))
	e.GET("/customer-orders", wrap(h.ListCustomerOrders, auth))
}

func NewSalesHandler(salesService SalesService) *SalesHandler {
	return &SalesHandler{
		svc: salesService,
	}
}

type salesOrderRequest struct {
	CustomerName string                      `json:"customer_name"`
	BranchID     int64                       `json:"branch_id"`
	Date         string                      `json:"date"`
	Items        []model.SalesOrderItemInput `json:"items"`
}

type salesTargetRequest struct {
	BranchID    int64   `json:"branch_id"`
	TargetSales float64 `json:"target_sales"`
}

type customerOrderRequest struct {
	CustomerID  int64   `json:"customer_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type salesOrderListResponse struct {
	Items []*model.SalesOrder `json:"items"`
	Total int64               `json:"total"`
}

type customerOrderListResponse struct {
	Items []*model.CustomerOrder `json:"items"`
	Total int64                  `json:"total"`
}

/* ----------------------------------- Orders ----------------------------------- */

func (h *SalesHandler) CreateOrder(ctx *xhttp.RequestCtx) {
	user := CurrentUser(ctx)
	if user == nil {
		writeError(ctx, 401, "missing bearer token")
		return
	}

	var req salesOrderRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	branchID := req.BranchID
	if branchID == 0 {
		branchID = user.BranchID
	}
	date := time.Now().UTC()
	if req.Date != "" {
		if t, err := parseTime(req.Date); err == nil {
			date = t
		}
	}

	order, err := h.svc.CreateOrder(ctx, model.SalesOrderCreateRequest{
		CustomerName: req.CustomerName,
		BranchID:     branchID,
		Date:         date,
		Items:        req.Items,
	})
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 201, order)
}

func (h *SalesHandler) GetOrder(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	order, err := h.svc.GetOrder(ctx, id)
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, order)
}

func (h *SalesHandler) ListOrders(ctx *xhttp.RequestCtx) {
	var f model.SalesOrderFilter
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
	f.Limit, _ = queryInt(ctx, "limit")
	f.Offset, _ = queryInt(ctx, "offset")
	f.Desc = query(ctx, "order") == "desc"

	items, total, err := h.svc.ListOrders(ctx, f)
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, salesOrderListResponse{Items: items, Total: total})
}

func (h *SalesHandler) GetDailySummary(ctx *xhttp.RequestCtx) {
	user := CurrentUser(ctx)
	if user == nil {
		writeError(ctx, 401, "missing bearer token")
		return
	}

	branchID := user.BranchID
	if id, ok := queryInt64(ctx, "branch_id"); ok {
		branchID = id
	}
	day := time.Now().UTC()
	if date := query(ctx, "date"); date != "" {
		t, err := parseTime(date)
		if err != nil {
			writeError(ctx, 400, "invalid date")
			return
		}
		day = t
	}

	summary, err := h.svc.GetDailySummary(ctx, branchID, day)
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, summary)
}

/* ---------------------------------- Targets ----------------------------------- */

func (h *SalesHandler) UpsertTarget(ctx *xhttp.RequestCtx) {
	var req salesTargetRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	target, err := h.svc.UpsertTarget(ctx, model.SalesTargetUpsertRequest{
		BranchID:    req.BranchID,
		TargetSales: req.TargetSales,
	})
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, target)
}

func (h *SalesHandler) GetTarget(ctx *xhttp.RequestCtx) {
	user := CurrentUser(ctx)
	if user == nil {
		writeError(ctx, 401, "missing bearer token")
		return
	}

	branchID := user.BranchID
	if id, ok := queryInt64(ctx, "branch_id"); ok {
		branchID = id
	}

	target, err := h.svc.GetTarget(ctx, branchID)
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, target)
}

/* ------------------------------- Customer orders ------------------------------- */

func (h *SalesHandler) CreateCustomerOrder(ctx *xhttp.RequestCtx) {
	var req customerOrderRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	order, err := h.svc.CreateCustomerOrder(ctx, model.CustomerOrderCreateRequest{
		CustomerID:  req.CustomerID,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		Price:       req.Price,
	})
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 201, order)
}

func (h *SalesHandler) ListCustomerOrders(ctx *xhttp.RequestCtx) {
	user := CurrentUser(ctx)
	if user == nil {
		writeError(ctx, 401, "missing bearer token")
		return
	}

	customerID := user.ID
	if id, ok := queryInt64(ctx, "customer_id"); ok {
		customerID = id
	}
	limit, _ := queryInt(ctx, "limit")
	offset, _ := queryInt(ctx, "offset")

	items, total, err := h.svc.ListCustomerOrders(ctx, customerID, limit, offset)
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, customerOrderListResponse{Items: items, Total: total})
}
