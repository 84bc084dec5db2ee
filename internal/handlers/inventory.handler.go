package handlers

import (
	"context"
	"time"

	"github.com/fasthttp/router"
	"github.com/nimasrn/branch-backoffice/internal/model"
	xhttp "github.com/nimasrn/branch-backoffice/pkg/http"
)

type InventoryService interface {
	RecordSupplierReceipt(ctx context.Context, branchID int64, p model.SupplierReceiptCreateRequest) (*model.Supplier, error)
	GetSupplierReceipt(ctx context.Context, id int64) (*model.Supplier, error)
	ListSupplierReceipts(ctx context.Context, limit, offset int) ([]*model.Supplier, int64, error)
	DeleteSupplierReceipt(ctx context.Context, id int64) error

	RecordDeliveryReceipt(ctx context.Context, branchID int64, p model.DeliveryReceiptCreateRequest) (*model.DeliveryReceipt, error)
	GetDeliveryReceipt(ctx context.Context, id int64) (*model.DeliveryReceipt, error)
	ListDeliveryReceipts(ctx context.Context, limit, offset int) ([]*model.DeliveryReceipt, int64, error)
	DeleteDeliveryReceipt(ctx context.Context, id int64) error

	CreateStockRequest(ctx context.Context, p model.RequestStocksCreateRequest) (*model.RequestStocks, error)
	GetStockRequest(ctx context.Context, id int64) (*model.RequestStocks, error)
	ListStockRequests(ctx context.Context, branchID *int64, limit, offset int) ([]*model.RequestStocks, int64, error)
	DeleteStockRequest(ctx context.Context, id int64) error
}

type InventoryHandler struct {
	svc InventoryService
}

func RegisterInventoryRoutes(e *router.Group, h *InventoryHandler, auth xhttp.MiddlewareFunc) {
	e.POST("/suppliers", wrap(h.RecordSupplierReceipt, auth))
	e.GET("/suppliers", wrap(h.ListSupplierReceipts, auth))
	e.GET("/suppliers/{id}", wrap(h.GetSupplierReceipt, auth))
	e.DELETE("/suppliers/{id}", wrap(h.DeleteSupplierReceipt, auth, RequireRole(model.RoleAdmin)))

	e.POST("/deliveries", wrap(h.RecordDeliveryReceipt, auth))
	e.GET("/deliveries", wrap(h.ListDeliveryReceipts, auth))
	e.GET("/deliveries/{id}", wrap(h.GetDeliveryReceipt, auth))
	e.DELETE("/deliveries/{id}", wrap(h.DeleteDeliveryReceipt, auth, RequireRole(model.RoleAdmin)))

	e.POST("/stock-requests", wrap(h.CreateStockRequest, auth))
	e.GET("/stock-requests", wrap(h.ListStockRequests, auth))
	e.GET("/stock-requests/{id}", wrap(h.GetStockRequest, auth))
	e.DELETE("/stock-requests/{id}", wrap(h.DeleteStockRequest, auth, RequireRole(model.RoleAdmin)))
}

func NewInventoryHandler(inventoryService InventoryService) *InventoryHandler {
	return &InventoryHandler{
		svc: inventoryService,
	}
}

type supplierReceiptRequest struct {
	SupplierName   string                     `json:"supplier_name"`
	DeliveryNumber string                     `json:"delivery_number"`
	Stocks         []model.SupplierStockInput `json:"stocks"`
}

type deliveryReceiptRequest struct {
	DeliveryNumber string                    `json:"delivery_number"`
	DeliveredBy    string                    `json:"delivered_by"`
	Date           string                    `json:"date"`
	Items          []model.DeliveryItemInput `json:"items"`
}

type stockRequestRequest struct {
	BranchID int64                          `json:"branch_id"`
	Date     string                         `json:"date"`
	Items    []model.RequestStocksItemInput `json:"items"`
}

type supplierListResponse struct {
	Items []*model.Supplier `json:"items"`
	Total int64             `json:"total"`
}

type deliveryListResponse struct {
	Items []*model.DeliveryReceipt `json:"items"`
	Total int64                    `json:"total"`
}

type stockRequestListResponse struct {
	Items []*model.RequestStocks `json:"items"`
	Total int64                  `json:"total"`
}

/* --------------------------------- Suppliers --------------------------------- */

func (h *InventoryHandler) RecordSupplierReceipt(ctx *xhttp.RequestCtx) {
	user := CurrentUser(ctx)
	if user == nil {
		writeError(ctx, 401, "missing bearer token")
		return
	}

	var req supplierReceiptRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	supplier, err := h.svc.RecordSupplierReceipt(ctx, user.BranchID, model.SupplierReceiptCreateRequest{
		SupplierName:   req.SupplierName,
		DeliveryNumber: req.DeliveryNumber,
		Stocks:         req.Stocks,
	})
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 201, supplier)
}

func (h *InventoryHandler) GetSupplierReceipt(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	supplier, err := h.svc.GetSupplierReceipt(ctx, id)
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, supplier)
}

func (h *InventoryHandler) ListSupplierReceipts(ctx *xhttp.RequestCtx) {
	limit, _ := queryInt(ctx, "limit")
	offset, _ := queryInt(ctx, "offset")

	items, total, err := h.svc.ListSupplierReceipts(ctx, limit, offset)
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, supplierListResponse{Items: items, Total: total})
}

func (h *InventoryHandler) DeleteSupplierReceipt(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	if err := h.svc.DeleteSupplierReceipt(ctx, id); err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, map[string]string{"status": "deleted"})
}

/* --------------------------------- Deliveries --------------------------------- */

func (h *InventoryHandler) RecordDeliveryReceipt(ctx *xhttp.RequestCtx) {
	user := CurrentUser(ctx)
	if user == nil {
		writeError(ctx, 401, "missing bearer token")
		return
	}

	var req deliveryReceiptRequest
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

	receipt, err := h.svc.RecordDeliveryReceipt(ctx, user.BranchID, model.DeliveryReceiptCreateRequest{
		DeliveryNumber: req.DeliveryNumber,
		DeliveredBy:    req.DeliveredBy,
		Date:           date,
		Items:          req.Items,
	})
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 201, receipt)
}

func (h *InventoryHandler) GetDeliveryReceipt(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	receipt, err := h.svc.GetDeliveryReceipt(ctx, id)
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, receipt)
}

func (h *InventoryHandler) ListDeliveryReceipts(ctx *xhttp.RequestCtx) {
	limit, _ := queryInt(ctx, "limit")
	offset, _ := queryInt(ctx, "offset")

	items, total, err := h.svc.ListDeliveryReceipts(ctx, limit, offset)
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, deliveryListResponse{Items: items, Total: total})
}

func (h *InventoryHandler) DeleteDeliveryReceipt(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	if err := h.svc.DeleteDeliveryReceipt(ctx, id); err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, map[string]string{"status": "deleted"})
}

/* ------------------------------- Stock requests ------------------------------- */

func (h *InventoryHandler) CreateStockRequest(ctx *xhttp.RequestCtx) {
	user := CurrentUser(ctx)
	if user == nil {
		writeError(ctx, 401, "missing bearer token")
		return
	}

	var req stockRequestRequest
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

	request, err := h.svc.CreateStockRequest(ctx, model.RequestStocksCreateRequest{
		BranchID: branchID,
		Date:     date,
		Items:    req.Items,
	})
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 201, request)
}

func (h *InventoryHandler) GetStockRequest(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	request, err := h.svc.GetStockRequest(ctx, id)
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, request)
}

func (h *InventoryHandler) ListStockRequests(ctx *xhttp.RequestCtx) {
	var branchID *int64
	if id, ok := queryInt64(ctx, "branch_id"); ok {
		branchID = &id
	}
	limit, _ := queryInt(ctx, "limit")
	offset, _ := queryInt(ctx, "offset")

	items, total, err := h.svc.ListStockRequests(ctx, branchID, limit, offset)
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, stockRequestListResponse{Items: items, Total: total})
}

func (h *InventoryHandler) DeleteStockRequest(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	if err := h.svc.DeleteStockRequest(ctx, id); err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, map[string]string{"status": "deleted"})
}
