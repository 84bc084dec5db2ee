package repository

import (
	"time"

	"github.com/nimasrn/branch-backoffice/internal/model"
)

type ProductEntity struct {
	ID          int64     `db:"id"           gorm:"primaryKey;autoIncrement;column:id"`
	ProductCode string    `db:"product_code" gorm:"column:product_code;not null;uniqueIndex:idx_products_code_branch"`
	Name        string    `db:"name"         gorm:"column:name;not null"`
	BranchID    int64     `db:"branch_id"    gorm:"column:branch_id;not null;uniqueIndex:idx_products_code_branch;index"`
	Quantity    int       `db:"quantity"     gorm:"column:quantity;not null;default:0"`
	Price       float64   `db:"price"        gorm:"column:price;not null;default:0"`
	Category    string    `db:"category"     gorm:"column:category"`
	CreatedAt   time.Time `db:"created_at"   gorm:"column:created_at;autoCreateTime"`
}

func (ProductEntity) TableName() string {
	return "products"
}

type StockHistoryEntity struct {
	ID              int64          `db:"id"               gorm:"primaryKey;autoIncrement;column:id"`
	ProductID       int64          `db:"product_id"       gorm:"column:product_id;not null;index"`
	Product         *ProductEntity `gorm:"foreignKey:ProductID;references:ID;constraint:OnDelete:CASCADE"`
	QuantityChanged int            `db:"quantity_changed" gorm:"column:quantity_changed;not null"`
	RemainingStock  int            `db:"remaining_stock"  gorm:"column:remaining_stock;not null"`
	Action          string         `db:"action"           gorm:"column:action;not null"`
	ReceiptNumber   string         `db:"receipt_number"   gorm:"column:receipt_number;index"`
	CreatedAt       time.Time      `db:"created_at"       gorm:"column:created_at;autoCreateTime"`
}

func (StockHistoryEntity) TableName() string {
	return "stock_histories"
}

func toProductEntity(m *model.Product) *ProductEntity {
	if m == nil {
		return nil
	}
	return &ProductEntity{
		ID:          m.ID,
		ProductCode: m.ProductCode,
		Name:        m.Name,
		BranchID:    m.BranchID,
		Quantity:    m.Quantity,
		Price:       m.Price,
		Category:    m.Category,
		CreatedAt:   m.CreatedAt,
	}
}

func toProductModel(e *ProductEntity) *model.Product {
	if e == nil {
		return nil
	}
	return &model.Product{
		ID:          e.ID,
		ProductCode: e.ProductCode,
		Name:        e.Name,
		BranchID:    e.BranchID,
		Quantity:    e.Quantity,
		Price:       e.Price,
		Category:    e.Category,
		CreatedAt:   e.CreatedAt,
	}
}

func toProductModels(entities []*ProductEntity) []*model.Product {
	if entities == nil {
		return nil
	}
	models := make([]*model.Product, len(entities))
	for i, e := range entities {
		models[i] = toProductModel(e)
	}
	return models
}

func toStockHistoryModel(e *StockHistoryEntity) *model.StockHistory {
	if e == nil {
		return nil
	}
	return &model.StockHistory{
		ID:              e.ID,
		ProductID:       e.ProductID,
		QuantityChanged: e.QuantityChanged,
		RemainingStock:  e.RemainingStock,
		Action:          model.StockAction(e.Action),
		ReceiptNumber:   e.ReceiptNumber,
		CreatedAt:       e.CreatedAt,
	}
}

func toStockHistoryModels(entities []*StockHistoryEntity) []*model.StockHistory {
	if entities == nil {
		return nil
	}
	models := make([]*model.StockHistory, len(entities))
	for i, e := range entities {
		models[i] = toStockHistoryModel(e)
	}
	return models
}
