package services

import (
	"context"
	"fmt"

	"github.com/nimasrn/branch-backoffice/internal/model"
)

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	GetByCode(ctx context.Context, branchID int64, code string) (*model.Product, error)
	List(ctx context.Context, f model.ProductFilter) ([]*model.Product, int64, error)
	Update(ctx context.Context, p *model.Product) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
	AddStock(ctx context.Context, productID int64, quantity int, receiptNumber string) (*model.StockHistory, error)
	DeductStock(ctx context.Context, productID int64, quantity int, receiptNumber string) (*model.StockHistory, error)
	ListStockHistory(ctx context.Context, f model.StockHistoryFilter) ([]*model.StockHistory, int64, error)
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type SupplierRepository interface {
	CreateWithStocks(ctx context.Context, s *model.Supplier) (*model.Supplier, error)
	GetByID(ctx context.Context, id int64) (*model.Supplier, error)
	List(ctx context.Context, limit, offset int) ([]*model.Supplier, int64, error)
	Delete(ctx context.Context, id int64) error
}

type DeliveryRepository interface {
	CreateWithItems(ctx context.Context, d *model.DeliveryReceipt) (*model.DeliveryReceipt, error)
	GetByID(ctx context.Context, id int64) (*model.DeliveryReceipt, error)
	List(ctx context.Context, limit, offset int) ([]*model.DeliveryReceipt, int64, error)
	Delete(ctx context.Context, id int64) error
}

type RequestStocksRepository interface {
	CreateWithItems(ctx context.Context, rs *model.RequestStocks) (*model.RequestStocks, error)
	GetByID(ctx context.Context, id int64) (*model.RequestStocks, error)
	List(ctx context.Context, branchID *int64, limit, offset int) ([]*model.RequestStocks, int64, error)
	Delete(ctx context.Context, id int64) error
}

type InventoryService struct {
	productRepo  ProductRepository
	supplierRepo SupplierRepository
	deliveryRepo DeliveryRepository
	requestRepo  RequestStocksRepository
}

func NewInventoryService(productRepo ProductRepository, supplierRepo SupplierRepository, deliveryRepo DeliveryRepository, requestRepo RequestStocksRepository) *InventoryService {
	return &InventoryService{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		deliveryRepo: deliveryRepo,
		requestRepo:  requestRepo,
	}
}

func (s *InventoryService) CreateProduct(ctx context.Context, p model.ProductCreateRequest) (*model.Product, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.productRepo.Create(ctx, &model.Product{
		ProductCode: p.ProductCode,
		Name:        p.Name,
		BranchID:    p.BranchID,
		Quantity:    p.Quantity,
		Price:       p.Price,
		Category:    p.Category,
	})
}

func (s *InventoryService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *InventoryService) ListProducts(ctx context.Context, f model.ProductFilter) ([]*model.Product, int64, error) {
	return s.productRepo.List(ctx, f)
}

func (s *InventoryService) UpdateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	return s.productRepo.Update(ctx, p)
}

func (s *InventoryService) DeleteProduct(ctx context.Context, id int64) error {
	return s.productRepo.Delete(ctx, id)
}

func (s *InventoryService) ListStockHistory(ctx context.Context, f model.StockHistoryFilter) ([]*model.StockHistory, int64, error) {
	return s.productRepo.ListStockHistory(ctx, f)
}

// RecordSupplierReceipt stores the receipt and restocks every line in one
// transaction. Line totals are recomputed server side; client-sent totals
// are ignored.
func (s *InventoryService) RecordSupplierReceipt(ctx context.Context, branchID int64, p model.SupplierReceiptCreateRequest) (*model.Supplier, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	supplier := &model.Supplier{
		SupplierName:   p.SupplierName,
		DeliveryNumber: p.DeliveryNumber,
	}
	for _, line := range p.Stocks {
		supplier.Stocks = append(supplier.Stocks, &model.SupplierStock{
			ProductCode: line.ProductCode,
			Quantity:    line.Quantity,
			Price:       line.Price,
			Total:       line.Price * float64(line.Quantity),
		})
	}

	var created *model.Supplier
	err := s.productRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.supplierRepo.CreateWithStocks(ctx, supplier)
		if err != nil {
			return fmt.Errorf("create supplier receipt: %w", err)
		}

		for _, line := range created.Stocks {
			product, err := s.productRepo.GetByCode(ctx, branchID, line.ProductCode)
			if err != nil {
				return fmt.Errorf("lookup product %s: %w", line.ProductCode, err)
			}
			if _, err := s.productRepo.AddStock(ctx, product.ID, line.Quantity, p.DeliveryNumber); err != nil {
				return fmt.Errorf("restock %s: %w", line.ProductCode, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *InventoryService) GetSupplierReceipt(ctx context.Context, id int64) (*model.Supplier, error) {
	return s.supplierRepo.GetByID(ctx, id)
}

func (s *InventoryService) ListSupplierReceipts(ctx context.Context, limit, offset int) ([]*model.Supplier, int64, error) {
	return s.supplierRepo.List(ctx, limit, offset)
}

func (s *InventoryService) DeleteSupplierReceipt(ctx context.Context, id int64) error {
	return s.supplierRepo.Delete(ctx, id)
}

// RecordDeliveryReceipt stores the receipt and restocks every item in one
// transaction.
func (s *InventoryService) RecordDeliveryReceipt(ctx context.Context, branchID int64, p model.DeliveryReceiptCreateRequest) (*model.DeliveryReceipt, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	receipt := &model.DeliveryReceipt{
		DeliveryNumber: p.DeliveryNumber,
		DeliveredBy:    p.DeliveredBy,
		Date:           p.Date,
	}
	for _, item := range p.Items {
		receipt.Items = append(receipt.Items, &model.DeliveryItem{
			ProductCode: item.ProductCode,
			Quantity:    item.Quantity,
		})
	}

	var created *model.DeliveryReceipt
	err := s.productRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.deliveryRepo.CreateWithItems(ctx, receipt)
		if err != nil {
			return fmt.Errorf("create delivery receipt: %w", err)
		}

		for _, item := range created.Items {
			product, err := s.productRepo.GetByCode(ctx, branchID, item.ProductCode)
			if err != nil {
				return fmt.Errorf("lookup product %s: %w", item.ProductCode, err)
			}
			if _, err := s.productRepo.AddStock(ctx, product.ID, item.Quantity, p.DeliveryNumber); err != nil {
				return fmt.Errorf("restock %s: %w", item.ProductCode, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *InventoryService) GetDeliveryReceipt(ctx context.Context, id int64) (*model.DeliveryReceipt, error) {
	return s.deliveryRepo.GetByID(ctx, id)
}

func (s *InventoryService) ListDeliveryReceipts(ctx context.Context, limit, offset int) ([]*model.DeliveryReceipt, int64, error) {
	return s.deliveryRepo.List(ctx, limit, offset)
}

func (s *InventoryService) DeleteDeliveryReceipt(ctx context.Context, id int64) error {
	return s.deliveryRepo.Delete(ctx, id)
}

// CreateStockRequest records a branch's restock ask. No quantities move
// until the matching delivery receipt arrives.
func (s *InventoryService) CreateStockRequest(ctx context.Context, p model.RequestStocksCreateRequest) (*model.RequestStocks, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	request := &model.RequestStocks{
		BranchID: p.BranchID,
		Date:     p.Date,
	}
	for _, item := range p.Items {
		request.Items = append(request.Items, &model.RequestStocksItem{
			ProductID:   item.ProductID,
			ProductCode: item.ProductCode,
			Quantity:    item.Quantity,
		})
	}
	return s.requestRepo.CreateWithItems(ctx, request)
}

func (s *InventoryService) GetStockRequest(ctx context.Context, id int64) (*model.RequestStocks, error) {
	return s.requestRepo.GetByID(ctx, id)
}

func (s *InventoryService) ListStockRequests(ctx context.Context, branchID *int64, limit, offset int) ([]*model.RequestStocks, int64, error) {
	return s.requestRepo.List(ctx, branchID, limit, offset)
}

func (s *InventoryService) DeleteStockRequest(ctx context.Context, id int64) error {
	return s.requestRepo.Delete(ctx, id)
}
