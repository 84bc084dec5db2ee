package model

import (
	"errors"
	"fmt"
	"time"
)

type DeliveryReceipt struct {
	ID             int64           `json:"id"`
	DeliveryNumber string          `json:"delivery_number"`
	DeliveredBy    string          `json:"delivered_by"`
	Date           time.Time       `json:"date"`
	Items          []*DeliveryItem `json:"items,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

func (DeliveryReceipt) TableName() string { return "delivery_receipts" }

type DeliveryItem struct {
	ID                int64  `json:"id"`
	DeliveryReceiptID int64  `json:"delivery_receipt_id"`
	ProductCode       string `json:"product_code"`
	Quantity          int    `json:"quantity"`
}

func (DeliveryItem) TableName() string { return "delivery_items" }

type DeliveryItemInput struct {
	ProductCode string `json:"product_code"`
	Quantity    int    `json:"quantity"`
}

type DeliveryReceiptCreateRequest struct {
	DeliveryNumber string
	DeliveredBy    string
	Date           time.Time
	Items          []DeliveryItemInput
}

func (p DeliveryReceiptCreateRequest) Validate() error {
	if p.DeliveryNumber == "" {
		return errors.New("delivery_number is required")
	}
	if p.DeliveredBy == "" {
		return errors.New("delivered_by is required")
	}
	if len(p.Items) == 0 {
		return errors.New("at least one item is required")
	}
	for i, it := range p.Items {
		if it.ProductCode == "" {
			return fmt.Errorf("items[%d]: product_code is required", i)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("items[%d]: quantity must be positive", i)
		}
	}
	return nil
}
