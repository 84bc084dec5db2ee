package repository

import (
	"time"

	"github.com/nimasrn/branch-backoffice/internal/model"
)

type DeliveryReceiptEntity struct {
	ID             int64                 `db:"id"              gorm:"primaryKey;autoIncrement;column:id"`
	DeliveryNumber string                `db:"delivery_number" gorm:"column:delivery_number;not null;index"`
	DeliveredBy    string                `db:"delivered_by"    gorm:"column:delivered_by;not null"`
	Date           time.Time             `db:"date"            gorm:"column:date;not null"`
	Items          []*DeliveryItemEntity `gorm:"foreignKey:DeliveryReceiptID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time             `db:"created_at"      gorm:"column:created_at;autoCreateTime"`
}

func (DeliveryReceiptEntity) TableName() string {
	return "delivery_receipts"
}

type DeliveryItemEntity struct {
	ID                int64  `db:"id"                  gorm:"primaryKey;autoIncrement;column:id"`
	DeliveryReceiptID int64  `db:"delivery_receipt_id" gorm:"column:delivery_receipt_id;not null;index"`
	ProductCode       string `db:"product_code"        gorm:"column:product_code;not null"`
	Quantity          int    `db:"quantity"            gorm:"column:quantity;not null"`
}

func (DeliveryItemEntity) TableName() string {
	return "delivery_items"
}

func toDeliveryReceiptEntity(m *model.DeliveryReceipt) *DeliveryReceiptEntity {
	if m == nil {
		return nil
	}
	e := &DeliveryReceiptEntity{
		ID:             m.ID,
		DeliveryNumber: m.DeliveryNumber,
		DeliveredBy:    m.DeliveredBy,
		Date:           m.Date,
		CreatedAt:      m.CreatedAt,
	}
	for _, it := range m.Items {
		e.Items = append(e.Items, &DeliveryItemEntity{
			ID:                it.ID,
			DeliveryReceiptID: it.DeliveryReceiptID,
			ProductCode:       it.ProductCode,
			Quantity:          it.Quantity,
		})
	}
	return e
}

func toDeliveryReceiptModel(e *DeliveryReceiptEntity) *model.DeliveryReceipt {
	if e == nil {
		return nil
	}
	m := &model.DeliveryReceipt{
		ID:             e.ID,
		DeliveryNumber: e.DeliveryNumber,
		DeliveredBy:    e.DeliveredBy,
		Date:           e.Date,
		CreatedAt:      e.CreatedAt,
	}
	for _, it := range e.Items {
		m.Items = append(m.Items, &model.DeliveryItem{
			ID:                it.ID,
			DeliveryReceiptID: it.DeliveryReceiptID,
			ProductCode:       it.ProductCode,
			Quantity:          it.Quantity,
		})
	}
	return m
}

func toDeliveryReceiptModels(entities []*DeliveryReceiptEntity) []*model.DeliveryReceipt {
	if entities == nil {
		return nil
	}
	models := make([]*model.DeliveryReceipt, len(entities))
	for i, e := range entities {
		models[i] = toDeliveryReceiptModel(e)
	}
	return models
}
