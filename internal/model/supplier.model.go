package model

import (
	"errors"
	"fmt"
	"time"
)

type Supplier struct {
	ID             int64            `json:"id"`
	SupplierName   string           `json:"supplier_name"`
	DeliveryNumber string           `json:"delivery_number"`
	Stocks         []*SupplierStock `json:"stocks,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

func (Supplier) TableName() string { return "suppliers" }

type SupplierStock struct {
	ID          int64   `json:"id"`
	SupplierID  int64   `json:"supplier_id"`
	ProductCode string  `json:"product_code"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

func (SupplierStock) TableName() string { return "supplier_stocks" }

type SupplierStockInput struct {
	ProductCode string  `json:"product_code"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type SupplierReceiptCreateRequest struct {
	SupplierName   string
	DeliveryNumber string
	Stocks         []SupplierStockInput
}

func (p SupplierReceiptCreateRequest) Validate() error {
	if p.SupplierName == "" {
		return errors.New("supplier_name is required")
	}
	if p.DeliveryNumber == "" {
		return errors.New("delivery_number is required")
	}
	if len(p.Stocks) == 0 {
		return errors.New("at least one stock line is required")
	}
	for i, s := range p.Stocks {
		if s.ProductCode == "" {
			return fmt.Errorf("stocks[%d]: product_code is required", i)
		}
		if s.Quantity <= 0 {
			return fmt.Errorf("stocks[%d]: quantity must be positive", i)
		}
		if s.Price < 0 {
			return fmt.Errorf("stocks[%d]: price cannot be negative", i)
		}
	}
	return nil
}
