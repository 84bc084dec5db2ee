package repository

import (
	"context"
	"errors"

	"github.com/nimasrn/branch-backoffice/internal/model"
	"github.com/nimasrn/branch-backoffice/pkg/pg"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRemittanceNotFound        = errors.New("remittance not found")
	ErrRemittanceAlreadyReceived = errors.New("remittance already received")
	ErrSalesTargetNotFound       = errors.New("sales target not found")
)

type RemittanceRepository struct {
	*pg.DB
}

func NewRemittanceRepository(db *pg.DB) *RemittanceRepository {
	return &RemittanceRepository{
		db,
	}
}

func (r *RemittanceRepository) Create(ctx context.Context, m *model.Remittance) (*model.Remittance, error) {
	entity, err := toRemittanceEntity(m)
	if err != nil {
		return nil, err
	}
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toRemittanceModel(entity)
}

func (r *RemittanceRepository) GetByID(ctx context.Context, id int64) (*model.Remittance, error) {
	var entity RemittanceEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRemittanceNotFound
		}
		return nil, err
	}
	return toRemittanceModel(&entity)
}

// MarkReceived flips pending -> received once. A second flip is a conflict.
func (r *RemittanceRepository) MarkReceived(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&RemittanceEntity{}).
		Where("id = ? AND received = ?", id, false).
		Update("received", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var entity RemittanceEntity
		err := r.Read(ctx).WithContext(ctx).
			Where("id = ?", id).
			First(&entity).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRemittanceNotFound
		}
		if err != nil {
			return err
		}
		return ErrRemittanceAlreadyReceived
	}
	return nil
}

func (r *RemittanceRepository) List(ctx context.Context, f model.RemittanceFilter) ([]*model.Remittance, int64, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&RemittanceEntity{})

	if f.BranchID != nil {
		q = q.Where("branch_id = ?", *f.BranchID)
	}
	if f.From != nil {
		q = q.Where("date_start >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date_end < ?", *f.To)
	}
	if f.Received != nil {
		q = q.Where("received = ?", *f.Received)
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

	var entities []*RemittanceEntity
	if err := q.Order(order).Limit(limit).Offset(offset).Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	models, err := toRemittanceModels(entities)
	if err != nil {
		return nil, 0, err
	}
	return models, total, nil
}

type SalesTargetRepository struct {
	*pg.DB
}

func NewSalesTargetRepository(db *pg.DB) *SalesTargetRepository {
	return &SalesTargetRepository{
		db,
	}
}

// Upsert creates the branch target or replaces the existing one.
func (r *SalesTargetRepository) Upsert(ctx context.Context, t *model.SalesTarget) (*model.SalesTarget, error) {
	entity := &SalesTargetEntity{
		BranchID:    t.BranchID,
		TargetSales: t.TargetSales,
	}
	err := r.Write(ctx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "branch_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"target_sales"}),
		}).
		Create(entity).
		Error
	if err != nil {
		return nil, err
	}
	return r.GetByBranch(ctx, t.BranchID)
}

func (r *SalesTargetRepository) GetByBranch(ctx context.Context, branchID int64) (*model.SalesTarget, error) {
	var entity SalesTargetEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("branch_id = ?", branchID).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSalesTargetNotFound
		}
		return nil, err
	}
	return toSalesTargetModel(&entity), nil
}
