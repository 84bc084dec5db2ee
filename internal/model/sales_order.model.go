package model

import (
	"errors"
	"fmt"
	"time"
)

type SalesOrder struct {
	ID            int64             `json:"id"`
	ReceiptNumber string            `json:"receipt_number"`
	CustomerName  string            `json:"customer_name"`
	BranchID      int64             `json:"branch_id"`
	Date          time.Time         `json:"date"`
	Total         float64           `json:"total"`
	Items         []*SalesOrderItem `json:"items,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

func (SalesOrder) TableName() string { return "sales_orders" }

type SalesOrderItem struct {
	ID           int64   `json:"id"`
	SalesOrderID int64   `json:"sales_order_id"`
	ProductID    int64   `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Total        float64 `json:"total"`
}

func (SalesOrderItem) TableName() string { return "sales_order_items" }

type SalesOrderItemInput struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type SalesOrderCreateRequest struct {
	CustomerName string
	BranchID     int64
	Date         time.Time
	Items        []SalesOrderItemInput
}

func (p SalesOrderCreateRequest) Validate() error {
	if p.BranchID == 0 {
		return errors.New("branch_id is required")
	}
	if len(p.Items) == 0 {
		return errors.New("at least one item is required")
	}
	for i, it := range p.Items {
		if it.ProductID == 0 {
			return fmt.Errorf("items[%d]: product_id is required", i)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("items[%d]: quantity must be positive", i)
		}
		if it.Price < 0 {
			return fmt.Errorf("items[%d]: price cannot be negative", i)
		}
	}
	return nil
}

type SalesOrderFilter struct {
	BranchID *int64
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
	Desc     bool
}

type CustomerOrder struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customer_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"created_at"`
}

func (CustomerOrder) TableName() string { return "customer_orders" }

type CustomerOrderCreateRequest struct {
	CustomerID  int64
	ProductName string
	Quantity    int
	Price       float64
}

func (p CustomerOrderCreateRequest) Validate() error {
	if p.CustomerID == 0 {
		return errors.New("customer_id is required")
	}
	if p.ProductName == "" {
		return errors.New("product_name is required")
	}
	if p.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	if p.Price < 0 {
		return errors.New("price cannot be negative")
	}
	return nil
}
