package repository

import (
	"context"
	"errors"

	"github.com/nimasrn/branch-backoffice/internal/model"
	"github.com/nimasrn/branch-backoffice/pkg/pg"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type UserRepository struct {
	*pg.DB
}

func NewUserRepository(db *pg.DB) *UserRepository {
	return &UserRepository{
		db,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	var existing UserEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("email = ?", u.Email).
		First(&existing).
		Error
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	entity := toUserEntity(u)
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toUserModel(entity), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var entity UserEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserModel(&entity), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var entity UserEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("email = ?", email).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserModel(&entity), nil
}

// SetOnline flips the persisted presence flag. The column is the source
// of truth so presence survives server restarts.
func (r *UserRepository) SetOnline(ctx context.Context, id int64, online bool) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&UserEntity{}).
		Where("id = ?", id).
		Update("is_online", online)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ListIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.Read(ctx).WithContext(ctx).
		Model(&UserEntity{}).
		Pluck("id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	var entities []*UserEntity
	err := r.Read(ctx).WithContext(ctx).
		Order("id ASC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}
	return toUserModels(entities), nil
}
