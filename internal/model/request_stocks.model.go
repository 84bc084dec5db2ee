package model

import (
	"errors"
	"fmt"
	"time"
)

type RequestStocks struct {
	ID        int64                `json:"id"`
	BranchID  int64                `json:"branch_id"`
	Date      time.Time            `json:"date"`
	Items     []*RequestStocksItem `json:"items,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

func (RequestStocks) TableName() string { return "request_stocks" }

type RequestStocksItem struct {
	ID              int64  `json:"id"`
	RequestStocksID int64  `json:"request_stocks_id"`
	ProductID       int64  `json:"product_id"`
	ProductCode     string `json:"product_code"`
	Quantity        int    `json:"quantity"`
}

func (RequestStocksItem) TableName() string { return "request_stocks_items" }

type RequestStocksItemInput struct {
	ProductID   int64  `json:"product_id"`
	ProductCode string `json:"product_code"`
	Quantity    int    `json:"quantity"`
}

type RequestStocksCreateRequest struct {
	BranchID int64
	Date     time.Time
	Items    []RequestStocksItemInput
}

func (p RequestStocksCreateRequest) Validate() error {
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
	}
	return nil
}
