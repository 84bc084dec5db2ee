package repository

import (
	"time"

	"github.com/nimasrn/branch-backoffice/internal/model"
)

type SalesOrderEntity struct {
	ID            int64                   `db:"id"             gorm:"primaryKey;autoIncrement;column:id"`
	ReceiptNumber string                  `db:"receipt_number" gorm:"column:receipt_number;not null;uniqueIndex"`
	CustomerName  string                  `db:"customer_name"  gorm:"column:customer_name"`
	BranchID      int64                   `db:"branch_id"      gorm:"column:branch_id;not null;index"`
	Date          time.Time               `db:"date"           gorm:"column:date;not null;index"`
	Total         float64                 `db:"total"          gorm:"column:total;not null"`
	Items         []*SalesOrderItemEntity `gorm:"foreignKey:SalesOrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time               `db:"created_at"     gorm:"column:created_at;autoCreateTime"`
}

func (SalesOrderEntity) TableName() string {
	return "sales_orders"
}

type SalesOrderItemEntity struct {
	ID           int64   `db:"id"             gorm:"primaryKey;autoIncrement;column:id"`
	SalesOrderID int64   `db:"sales_order_id" gorm:"column:sales_order_id;not null;index"`
	ProductID    int64   `db:"product_id"     gorm:"column:product_id;not null"`
	ProductName  string  `db:"product_name"   gorm:"column:product_name;not null"`
	Quantity     int     `db:"quantity"       gorm:"column:quantity;not null"`
	Price        float64 `db:"price"          gorm:"column:price;not null"`
	Total        float64 `db:"total"          gorm:"column:total;not null"`
}

func (SalesOrderItemEntity) TableName() string {
	return "sales_order_items"
}

type CustomerOrderEntity struct {
	ID          int64     `db:"id"           gorm:"primaryKey;autoIncrement;column:id"`
	CustomerID  int64     `db:"customer_id"  gorm:"column:customer_id;not null;index"`
	ProductName string    `db:"product_name" gorm:"column:product_name;not null"`
	Quantity    int       `db:"quantity"     gorm:"column:quantity;not null"`
	Price       float64   `db:"price"        gorm:"column:price;not null"`
	Total       float64   `db:"total"        gorm:"column:total;not null"`
	CreatedAt   time.Time `db:"created_at"   gorm:"column:created_at;autoCreateTime"`
}

func (CustomerOrderEntity) TableName() string {
	return "customer_orders"
}

func toSalesOrderEntity(m *model.SalesOrder) *SalesOrderEntity {
	if m == nil {
		return nil
	}
	e := &SalesOrderEntity{
		ID:            m.ID,
		ReceiptNumber: m.ReceiptNumber,
		CustomerName:  m.CustomerName,
		BranchID:      m.BranchID,
		Date:          m.Date,
		Total:         m.Total,
		CreatedAt:     m.CreatedAt,
	}
	for _, it := range m.Items {
		e.Items = append(e.Items, &SalesOrderItemEntity{
			ID:           it.ID,
			SalesOrderID: it.SalesOrderID,
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			Quantity:     it.Quantity,
			Price:        it.Price,
			Total:        it.Total,
		})
	}
	return e
}

func toSalesOrderModel(e *SalesOrderEntity) *model.SalesOrder {
	if e == nil {
		return nil
	}
	m := &model.SalesOrder{
		ID:            e.ID,
		ReceiptNumber: e.ReceiptNumber,
		CustomerName:  e.CustomerName,
		BranchID:      e.BranchID,
		Date:          e.Date,
		Total:         e.Total,
		CreatedAt:     e.CreatedAt,
	}
	for _, it := range e.Items {
		m.Items = append(m.Items, &model.SalesOrderItem{
			ID:           it.ID,
			SalesOrderID: it.SalesOrderID,
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			Quantity:     it.Quantity,
			Price:        it.Price,
			Total:        it.Total,
		})
	}
	return m
}

func toSalesOrderModels(entities []*SalesOrderEntity) []*model.SalesOrder {
	if entities == nil {
		return nil
	}
	models := make([]*model.SalesOrder, len(entities))
	for i, e := range entities {
		models[i] = toSalesOrderModel(e)
	}
	return models
}

func toCustomerOrderEntity(m *model.CustomerOrder) *CustomerOrderEntity {
	if m == nil {
		return nil
	}
	return &CustomerOrderEntity{
		ID:          m.ID,
		CustomerID:  m.CustomerID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		Price:       m.Price,
		Total:       m.Total,
		CreatedAt:   m.CreatedAt,
	}
}

func toCustomerOrderModel(e *CustomerOrderEntity) *model.CustomerOrder {
	if e == nil {
		return nil
	}
	return &model.CustomerOrder{
		ID:          e.ID,
		CustomerID:  e.CustomerID,
		ProductName: e.ProductName,
		Quantity:    e.Quantity,
		Price:       e.Price,
		Total:       e.Total,
		CreatedAt:   e.CreatedAt,
	}
}

func toCustomerOrderModels(entities []*CustomerOrderEntity) []*model.CustomerOrder {
	if entities == nil {
		return nil
	}
	models := make([]*model.CustomerOrder, len(entities))
	for i, e := range entities {
		models[i] = toCustomerOrderModel(e)
	}
	return models
}
