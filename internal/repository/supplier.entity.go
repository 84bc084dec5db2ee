package repository

import (
	"time"

	"github.com/nimasrn/branch-backoffice/internal/model"
)

type SupplierEntity struct {
	ID             int64                  `db:"id"              gorm:"primaryKey;autoIncrement;column:id"`
	SupplierName   string                 `db:"supplier_name"   gorm:"column:supplier_name;not null"`
	DeliveryNumber string                 `db:"delivery_number" gorm:"column:delivery_number;not null;index"`
	Stocks         []*SupplierStockEntity `gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time              `db:"created_at"      gorm:"column:created_at;autoCreateTime"`
}

func (SupplierEntity) TableName() string {
	return "suppliers"
}

type SupplierStockEntity struct {
	ID          int64   `db:"id"           gorm:"primaryKey;autoIncrement;column:id"`
	SupplierID  int64   `db:"supplier_id"  gorm:"column:supplier_id;not null;index"`
	ProductCode string  `db:"product_code" gorm:"column:product_code;not null"`
	Quantity    int     `db:"quantity"     gorm:"column:quantity;not null"`
	Price       float64 `db:"price"        gorm:"column:price;not null"`
	Total       float64 `db:"total"        gorm:"column:total;not null"`
}

func (SupplierStockEntity) TableName() string {
	return "supplier_stocks"
}

func toSupplierEntity(m *model.Supplier) *SupplierEntity {
	if m == nil {
		return nil
	}
	e := &SupplierEntity{
		ID:             m.ID,
		SupplierName:   m.SupplierName,
		DeliveryNumber: m.DeliveryNumber,
		CreatedAt:      m.CreatedAt,
	}
	for _, s := range m.Stocks {
		e.Stocks = append(e.Stocks, &SupplierStockEntity{
			ID:          s.ID,
			SupplierID:  s.SupplierID,
			ProductCode: s.ProductCode,
			Quantity:    s.Quantity,
			Price:       s.Price,
			Total:       s.Total,
		})
	}
	return e
}

func toSupplierModel(e *SupplierEntity) *model.Supplier {
	if e == nil {
		return nil
	}
	m := &model.Supplier{
		ID:             e.ID,
		SupplierName:   e.SupplierName,
		DeliveryNumber: e.DeliveryNumber,
		CreatedAt:      e.CreatedAt,
	}
	for _, s := range e.Stocks {
		m.Stocks = append(m.Stocks, &model.SupplierStock{
			ID:          s.ID,
			SupplierID:  s.SupplierID,
			ProductCode: s.ProductCode,
			Quantity:    s.Quantity,
			Price:       s.Price,
			Total:       s.Total,
		})
	}
	return m
}

func toSupplierModels(entities []*SupplierEntity) []*model.Supplier {
	if entities == nil {
		return nil
	}
	models := make([]*model.Supplier, len(entities))
	for i, e := range entities {
		models[i] = toSupplierModel(e)
	}
	return models
}
