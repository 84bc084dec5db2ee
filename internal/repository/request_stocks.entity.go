package repository

import (
	"time"

	"github.com/nimasrn/branch-backoffice/internal/model"
)

type RequestStocksEntity struct {
	ID        int64                      `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	BranchID  int64                      `db:"branch_id"  gorm:"column:branch_id;not null;index"`
	Date      time.Time                  `db:"date"       gorm:"column:date;not null"`
	Items     []*RequestStocksItemEntity `gorm:"foreignKey:RequestStocksID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time                  `db:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (RequestStocksEntity) TableName() string {
	return "request_stocks"
}

type RequestStocksItemEntity struct {
	ID              int64  `db:"id"                gorm:"primaryKey;autoIncrement;column:id"`
	RequestStocksID int64  `db:"request_stocks_id" gorm:"column:request_stocks_id;not null;index"`
	ProductID       int64  `db:"product_id"        gorm:"column:product_id;not null"`
	ProductCode     string `db:"product_code"      gorm:"column:product_code;not null"`
	Quantity        int    `db:"quantity"          gorm:"column:quantity;not null"`
}

func (RequestStocksItemEntity) TableName() string {
	return "request_stocks_items"
}

func toRequestStocksEntity(m *model.RequestStocks) *RequestStocksEntity {
	if m == nil {
		return nil
	}
	e := &RequestStocksEntity{
		ID:        m.ID,
		BranchID:  m.BranchID,
		Date:      m.Date,
		CreatedAt: m.CreatedAt,
	}
	for _, it := range m.Items {
		e.Items = append(e.Items, &RequestStocksItemEntity{
			ID:              it.ID,
			RequestStocksID: it.RequestStocksID,
			ProductID:       it.ProductID,
			ProductCode:     it.ProductCode,
			Quantity:        it.Quantity,
		})
	}
	return e
}

func toRequestStocksModel(e *RequestStocksEntity) *model.RequestStocks {
	if e == nil {
		return nil
	}
	m := &model.RequestStocks{
		ID:        e.ID,
		BranchID:  e.BranchID,
		Date:      e.Date,
		CreatedAt: e.CreatedAt,
	}
	for _, it := range e.Items {
		m.Items = append(m.Items, &model.RequestStocksItem{
			ID:              it.ID,
			RequestStocksID: it.RequestStocksID,
			ProductID:       it.ProductID,
			ProductCode:     it.ProductCode,
			Quantity:        it.Quantity,
		})
	}
	return m
}

func toRequestStocksModels(entities []*RequestStocksEntity) []*model.RequestStocks {
	if entities == nil {
		return nil
	}
	models := make([]*model.RequestStocks, len(entities))
	for i, e := range entities {
		models[i] = toRequestStocksModel(e)
	}
	return models
}
