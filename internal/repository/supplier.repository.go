package repository

import (
	"context"
	"errors"

	"github.com/nimasrn/branch-backoffice/internal/model"
	"github.com/nimasrn/branch-backoffice/pkg/pg"
	"gorm.io/gorm"
)

var ErrSupplierNotFound = errors.New("supplier not found")

type SupplierRepository struct {
	*pg.DB
}

func NewSupplierRepository(db *pg.DB) *SupplierRepository {
	return &SupplierRepository{
		db,
	}
}

// CreateWithStocks inserts the supplier header and its stock lines in one
// statement; gorm cascades the association insert.
func (r *SupplierRepository) CreateWithStocks(ctx context.Context, s *model.Supplier) (*model.Supplier, error) {
	entity := toSupplierEntity(s)
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toSupplierModel(entity), nil
}

func (r *SupplierRepository) GetByID(ctx context.Context, id int64) (*model.Supplier, error) {
	var entity SupplierEntity
	err := r.Read(ctx).WithContext(ctx).
		Preload("Stocks").
		Where("id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}
	return toSupplierModel(&entity), nil
}

func (r *SupplierRepository) List(ctx context.Context, limit, offset int) ([]*model.Supplier, int64, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&SupplierEntity{})

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

	var entities []*SupplierEntity
	err := q.Preload("Stocks").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&entities).
		Error
	if err != nil {
		return nil, 0, err
	}

	return toSupplierModels(entities), total, nil
}

// Delete removes the header; stock lines go with it via the FK cascade.
func (r *SupplierRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).
		Select("Stocks").
		Delete(&SupplierEntity{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSupplierNotFound
	}
	return nil
}
