package repository

import (
	"context"
	"errors"

	"github.com/nimasrn/branch-backoffice/internal/model"
	"github.com/nimasrn/branch-backoffice/pkg/pg"
	"gorm.io/gorm"
)

var ErrRequestStocksNotFound = errors.New("stock request not found")

type RequestStocksRepository struct {
	*pg.DB
}

func NewRequestStocksRepository(db *pg.DB) *RequestStocksRepository {
	return &RequestStocksRepository{
		db,
	}
}

func (r *RequestStocksRepository) CreateWithItems(ctx context.Context, rs *model.RequestStocks) (*model.RequestStocks, error) {
	entity := toRequestStocksEntity(rs)
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toRequestStocksModel(entity), nil
}

func (r *RequestStocksRepository) GetByID(ctx context.Context, id int64) (*model.RequestStocks, error) {
	var entity RequestStocksEntity
	err := r.Read(ctx).WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestStocksNotFound
		}
		return nil, err
	}
	return toRequestStocksModel(&entity), nil
}

func (r *RequestStocksRepository) List(ctx context.Context, branchID *int64, limit, offset int) ([]*model.RequestStocks, int64, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&RequestStocksEntity{})

	if branchID != nil {
		q = q.Where("branch_id = ?", *branchID)
	}

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

	var entities []*RequestStocksEntity
	err := q.Preload("Items").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&entities).
		Error
	if err != nil {
		return nil, 0, err
	}

	return toRequestStocksModels(entities), total, nil
}

func (r *RequestStocksRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).
		Select("Items").
		Delete(&RequestStocksEntity{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRequestStocksNotFound
	}
	return nil
}
