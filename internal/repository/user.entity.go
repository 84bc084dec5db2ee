package repository

import (
	"time"

	"github.com/nimasrn/branch-backoffice/internal/model"
)

type UserEntity struct {
	ID        int64     `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	Name      string    `db:"name"       gorm:"column:name;not null"`
	Email     string    `db:"email"      gorm:"column:email;not null;unique"`
	Password  string    `db:"password"   gorm:"column:password;not null"`
	Usertype  string    `db:"usertype"   gorm:"column:usertype;not null;default:user"`
	BranchID  int64     `db:"branch_id"  gorm:"column:branch_id;index"`
	IsOnline  bool      `db:"is_online"  gorm:"column:is_online;not null;default:false"`
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (UserEntity) TableName() string {
	return "users"
}

func toUserEntity(m *model.User) *UserEntity {
	if m == nil {
		return nil
	}
	return &UserEntity{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Password:  m.Password,
		Usertype:  string(m.Usertype),
		BranchID:  m.BranchID,
		IsOnline:  m.IsOnline,
		CreatedAt: m.CreatedAt,
	}
}

func toUserModel(e *UserEntity) *model.User {
	if e == nil {
		return nil
	}
	return &model.User{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Password:  e.Password,
		Usertype:  model.Role(e.Usertype),
		BranchID:  e.BranchID,
		IsOnline:  e.IsOnline,
		CreatedAt: e.CreatedAt,
	}
}

func toUserModels(entities []*UserEntity) []*model.User {
	if entities == nil {
		return nil
	}
	models := make([]*model.User, len(entities))
	for i, e := range entities {
		models[i] = toUserModel(e)
	}
	return models
}
