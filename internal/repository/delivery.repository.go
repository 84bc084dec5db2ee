package repository

import (
	"context"
	"errors"

	"github.com/nimasrn/branch-backoffice/internal/model"
	"github.com/nimasrn/branch-backoffice/pkg/pg"
	"gorm.io/gorm"
)

var ErrDeliveryReceiptNotFound = errors.New("delivery receipt not found")

type DeliveryRepository struct {
	*pg.DB
}

func NewDeliveryRepository(db *pg.DB) *DeliveryRepository {
	return &DeliveryRepository{
		db,
	}
}

func (r *DeliveryRepository) CreateWithItems(ctx context.Context, d *model.DeliveryReceipt) (*model.DeliveryReceipt, error) {
	entity := toDeliveryReceiptEntity(d)
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toDeliveryReceiptModel(entity), nil
}

func (r *DeliveryRepository) GetByID(ctx context.Context, id int64) (*model.DeliveryReceipt, error) {
	var entity DeliveryReceiptEntity
	err := r.Read(ctx).WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeliveryReceiptNotFound
		}
		return nil, err
	}
	return toDeliveryReceiptModel(&entity), nil
}

func (r *DeliveryRepository) List(ctx context.Context, limit, offset int) ([]*model.DeliveryReceipt, int64, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&DeliveryReceiptEntity{})

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

	var entities []*DeliveryReceiptEntity
	err := q.Preload("Items").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&entities).
		Error
	if err != nil {
		return nil, 0, err
	}

	return toDeliveryReceiptModels(entities), total, nil
}

func (r *DeliveryRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).
		Select("Items").
		Delete(&DeliveryReceiptEntity{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDeliveryReceiptNotFound
	}
	return nil
}
