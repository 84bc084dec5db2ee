package model

import (
	"errors"
	"time"
)

type Product struct {
	ID          int64     `json:"id"`
	ProductCode string    `json:"product_code"`
	Name        string    `json:"name"`
	BranchID    int64     `json:"branch_id"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Product) TableName() string { return "products" }

type ProductCreateRequest struct {
	ProductCode string
	Name        string
	BranchID    int64
	Quantity    int
	Price       float64
	Category    string
}

func (p ProductCreateRequest) Validate() error {
	if p.ProductCode == "" {
		return errors.New("product_code is required")
	}
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.BranchID == 0 {
		return errors.New("branch_id is required")
	}
	if p.Quantity < 0 {
		return errors.New("quantity cannot be negative")
	}
	if p.Price < 0 {
		return errors.New("price cannot be negative")
	}
	return nil
}

// ProductFilter controls List queries.
type ProductFilter struct {
	BranchID    *int64
	Category    *string
	ProductCode *string
	Limit       int
	Offset      int
	Desc        bool
}
