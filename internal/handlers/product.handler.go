package handlers

import (
	"context"
	"strings"

	"github.com/fasthttp/router"
	"github.com/nimasrn/branch-backoffice/internal/model"
	xhttp "github.com/nimasrn/branch-backoffice/pkg/http"
)

type ProductService interface {
	CreateProduct(ctx context.Context, p model.ProductCreateRequest) (*model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	ListProducts(ctx context.Context, f model.ProductFilter) ([]*model.Product, int64, error)
	UpdateProduct(ctx context.Context, p *model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListStockHistory(ctx context.Context, f model.StockHistoryFilter) ([]*model.StockHistory, int64, error)
}

type ProductHandler struct {
	svc ProductService
}

func RegisterProductRoutes(e *router.Group, h *ProductHandler, auth xhttp.MiddlewareFunc) {
	e.POST("/products", wrap(h.CreateProduct, auth, RequireRole(model.RoleAdmin)))
	e.GET("/products", wrap(h.ListProducts, auth))
	e.GET("/products/{id}", wrap(h.GetProduct, auth))
	e.PUT("/products/{id}", wrap(h.UpdateProduct, auth, RequireRole(model.RoleAdmin)))
	e.DELETE("/products/{id}", wrap(h.DeleteProduct, auth, RequireRole(model.RoleAdmin)))
	e.GET("/stock-history", wrap(h.ListStockHistory, auth))
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		svc: productService,
	}
}

type productRequest struct {
	ProductCode string  `json:"product_code"`
	Name        string  `json:"name"`
	BranchID    int64   `json:"branch_id"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

type productListResponse struct {
	Items []*model.Product `json:"items"`
	Total int64            `json:"total"`
}

type stockHistoryListResponse struct {
	Items []*model.StockHistory `json:"items"`
	Total int64                 `json:"total"`
}

/* --------------------------------- Routes ----------------------------------- */

func (h *ProductHandler) CreateProduct(ctx *xhttp.RequestCtx) {
	var req productRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	product, err := h.svc.CreateProduct(ctx, model.ProductCreateRequest{
		ProductCode: req.ProductCode,
		Name:        req.Name,
		BranchID:    req.BranchID,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Category:    req.Category,
	})
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 201, product)
}

func (h *ProductHandler) GetProduct(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	product, err := h.svc.GetProduct(ctx, id)
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, product)
}

func (h *ProductHandler) ListProducts(ctx *xhttp.RequestCtx) {
	var f model.ProductFilter

	if id, ok := queryInt64(ctx, "branch_id"); ok {
		f.BranchID = &id
	}
	if v := query(ctx, "category"); v != "" {
		f.Category = &v
	}
	if v := query(ctx, "product_code"); v != "" {
		f.ProductCode = &v
	}
	if n, ok := queryInt(ctx, "limit"); ok {
		f.Limit = n
	}
	if n, ok := queryInt(ctx, "offset"); ok {
		f.Offset = n
	}
	if strings.EqualFold(query(ctx, "order"), "desc") {
		f.Desc = true
	}

	items, total, err := h.svc.ListProducts(ctx, f)
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, productListResponse{Items: items, Total: total})
}

func (h *ProductHandler) UpdateProduct(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	var req productRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	product, err := h.svc.UpdateProduct(ctx, &model.Product{
		ID:          id,
		ProductCode: req.ProductCode,
		Name:        req.Name,
		BranchID:    req.BranchID,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Category:    req.Category,
	})
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, product)
}

func (h *ProductHandler) DeleteProduct(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	if err := h.svc.DeleteProduct(ctx, id); err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, map[string]string{"status": "deleted"})
}

func (h *ProductHandler) ListStockHistory(ctx *xhttp.RequestCtx) {
	var f model.StockHistoryFilter

	if id, ok := queryInt64(ctx, "product_id"); ok {
		f.ProductID = &id
	}
	if v := query(ctx, "action"); v != "" {
		action := model.StockAction(v)
		f.Action = &action
	}
	if n, ok := queryInt(ctx, "limit"); ok {
		f.Limit = n
	}
	if n, ok := queryInt(ctx, "offset"); ok {
		f.Offset = n
	}
	if strings.EqualFold(query(ctx, "order"), "desc") {
		f.Desc = true
	}

	items, total, err := h.svc.ListStockHistory(ctx, f)
	if err != nil {
		writeError(ctx, errStatus(err), err.Error())
		return
	}
	writeJSON(ctx, 200, stockHistoryListResponse{Items: items, Total: total})
}
