package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nimasrn/branch-backoffice/internal/model"
	"github.com/nimasrn/branch-backoffice/pkg/pg"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrDuplicateProductCode = errors.New("product code already exists for branch")
	ErrConcurrentUpdate     = errors.New("concurrent update detected")
	ErrMaxRetriesExceeded   = errors.New("max retries exceeded")
)

type ProductRepository struct {
	*pg.DB
}

func NewProductRepository(db *pg.DB) *ProductRepository {
	return &ProductRepository{
		db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	var existing ProductEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("product_code = ? AND branch_id = ?", p.ProductCode, p.BranchID).
		First(&existing).
		Error
	if err == nil {
		return nil, ErrDuplicateProductCode
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	entity := toProductEntity(p)
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toProductModel(entity), nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var entity ProductEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return toProductModel(&entity), nil
}

func (r *ProductRepository) GetByCode(ctx context.Context, branchID int64, code string) (*model.Product, error) {
	var entity ProductEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("product_code = ? AND branch_id = ?", code, branchID).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return toProductModel(&entity), nil
}

func (r *ProductRepository) List(ctx context.Context, f model.ProductFilter) ([]*model.Product, int64, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&ProductEntity{})

	if f.BranchID != nil {
		q = q.Where("branch_id = ?", *f.BranchID)
	}
	if f.Category != nil && *f.Category != "" {
		q = q.Where("category = ?", *f.Category)
	}
	if f.ProductCode != nil && *f.ProductCode != "" {
		q = q.Where("product_code = ?", *f.ProductCode)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "id"
	if f.Desc {
		order += " DESC"
	} else {
		order += " ASC"
	}

	limit := f.Limit
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var entities []*ProductEntity
	if err := q.Order(order).Limit(limit).Offset(offset).Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	return toProductModels(entities), total, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *model.Product) (*model.Product, error) {
	entity := toProductEntity(p)
	result := r.Write(ctx).WithContext(ctx).
		Model(&ProductEntity{}).
		Where("id = ?", entity.ID).
		Updates(map[string]interface{}{
			"name":     entity.Name,
			"price":    entity.Price,
			"category": entity.Category,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrProductNotFound
	}
	return r.GetByID(ctx, entity.ID)
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&ProductEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DeductStock atomically removes quantity from a product and appends the
// matching ledger row, with automatic retry on transient conflicts.
// Quantity update and ledger append share the caller's transaction, so a
// ledger snapshot can never describe a row state that was rolled back.
func (r *ProductRepository) DeductStock(ctx context.Context, productID int64, quantity int, receiptNumber string) (*model.StockHistory, error) {
	return r.adjustStock(ctx, productID, quantity, model.StockActionDeducted, receiptNumber)
}

// AddStock atomically adds quantity to a product and appends the ledger row.
func (r *ProductRepository) AddStock(ctx context.Context, productID int64, quantity int, receiptNumber string) (*model.StockHistory, error) {
	return r.adjustStock(ctx, productID, quantity, model.StockActionAdded, receiptNumber)
}

func (r *ProductRepository) adjustStock(ctx context.Context, productID int64, quantity int, action model.StockAction, receiptNumber string) (*model.StockHistory, error) {
	const maxRetries = 3
	const baseDelay = 2 * time.Millisecond

	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	for attempt := 0; attempt <= maxRetries; attempt++ {
		entry, err := r.adjustStockAttempt(ctx, productID, quantity, action, receiptNumber)

		if err == nil {
			return entry, nil
		}

		// Don't retry on permanent errors
		if errors.Is(err, ErrProductNotFound) ||
			errors.Is(err, ErrInsufficientStock) {
			return nil, err
		}

		// Retry on transient errors
		if attempt < maxRetries {
			delay := baseDelay * time.Duration(1<<attempt) // 2ms, 4ms, 8ms
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
				continue
			}
		}
	}

	return nil, fmt.Errorf("%w: failed after %d attempts", ErrMaxRetriesExceeded, maxRetries+1)
}

// adjustStockAttempt runs a single lock-read-update-append pass. Callers are
// expected to hold a transaction via WithinTransaction so the quantity update
// and the ledger append commit or roll back together.
func (r *ProductRepository) adjustStockAttempt(ctx context.Context, productID int64, quantity int, action model.StockAction, receiptNumber string) (*model.StockHistory, error) {
	var entity ProductEntity

	err := r.Write(ctx).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", productID).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	delta := quantity
	if action == model.StockActionDeducted {
		if entity.Quantity < quantity {
			return nil, ErrInsufficientStock
		}
		delta = -quantity
	}

	result := r.Write(ctx).WithContext(ctx).
		Model(&ProductEntity{}).
		Where("id = ?", productID).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrConcurrentUpdate
	}

	history := &StockHistoryEntity{
		ProductID:       productID,
		QuantityChanged: quantity,
		RemainingStock:  entity.Quantity + delta,
		Action:          string(action),
		ReceiptNumber:   receiptNumber,
	}
	if err := r.Write(ctx).WithContext(ctx).Create(history).Error; err != nil {
		return nil, err
	}

	return toStockHistoryModel(history), nil
}

func (r *ProductRepository) ListStockHistory(ctx context.Context, f model.StockHistoryFilter) ([]*model.StockHistory, int64, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&StockHistoryEntity{})

	if f.ProductID != nil {
		q = q.Where("product_id = ?", *f.ProductID)
	}
	if f.Action != nil && *f.Action != "" {
		q = q.Where("action = ?", string(*f.Action))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "id"
	if f.Desc {
		order += " DESC"
	} else {
		order += " ASC"
	}

	limit := f.Limit
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var entities []*StockHistoryEntity
	if err := q.Order(order).Limit(limit).Offset(offset).Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	return toStockHistoryModels(entities), total, nil
}
