package repository

import (
	"context"
	"errors"
	"time"

	"github.com/nimasrn/branch-backoffice/internal/model"
	"github.com/nimasrn/branch-backoffice/pkg/pg"
	"gorm.io/gorm"
)

var ErrSalesOrderNotFound = errors.New("sales order not found")

type SalesOrderRepository struct {
	*pg.DB
}

func NewSalesOrderRepository(db *pg.DB) *SalesOrderRepository {
	return &SalesOrderRepository{
		db,
	}
}

func (r *SalesOrderRepository) CreateWithItems(ctx context.Context, o *model.SalesOrder) (*model.SalesOrder, error) {
	entity := toSalesOrderEntity(o)
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toSalesOrderModel(entity), nil
}

func (r *SalesOrderRepository) GetByID(ctx context.Context, id int64) (*model.SalesOrder, error) {
	var entity SalesOrderEntity
	err := r.Read(ctx).WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSalesOrderNotFound
		}
		return nil, err
	}
	return toSalesOrderModel(&entity), nil
}

func (r *SalesOrderRepository) List(ctx context.Context, f model.SalesOrderFilter) ([]*model.SalesOrder, int64, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&SalesOrderEntity{})

	if f.BranchID != nil {
		q = q.Where("branch_id = ?", *f.BranchID)
	}
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "date"
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

	var entities []*SalesOrderEntity
	if err := q.Preload("Items").Order(order).Limit(limit).Offset(offset).Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	return toSalesOrderModels(entities), total, nil
}

// SumTotals returns the sales total for a branch over [from, to).
func (r *SalesOrderRepository) SumTotals(ctx context.Context, branchID int64, from, to time.Time) (float64, error) {
	var sum *float64
	err := r.Read(ctx).WithContext(ctx).
		Model(&SalesOrderEntity{}).
		Select("SUM(total)").
		Where("branch_id = ? AND date >= ? AND date < ?", branchID, from, to).
		Scan(&sum).
		Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

type CustomerOrderRepository struct {
	*pg.DB
}

func NewCustomerOrderRepository(db *pg.DB) *CustomerOrderRepository {
	return &CustomerOrderRepository{
		db,
	}
}

func (r *CustomerOrderRepository) Create(ctx context.Context, o *model.CustomerOrder) (*model.CustomerOrder, error) {
	entity := toCustomerOrderEntity(o)
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toCustomerOrderModel(entity), nil
}

func (r *CustomerOrderRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]*model.CustomerOrder, int64, error) {
	q := r.Read(ctx).WithContext(ctx).
		Model(&CustomerOrderEntity{}).
		Where("customer_id = ?", customerID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var entities []*CustomerOrderEntity
	if err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	return toCustomerOrderModels(entities), total, nil
}
