package model

import "time"

// StockAction tags a ledger entry as an increase or decrease.
type StockAction string

const (
	StockActionAdded    StockAction = "added"
	StockActionDeducted StockAction = "deducted"
)

// StockHistory is an append-only ledger row. Entries are never updated
// or deleted, only appended alongside the quantity mutation they record.
type StockHistory struct {
	ID              int64       `json:"id"`
	ProductID       int64       `json:"product_id"`
	QuantityChanged int         `json:"quantity_changed"`
	RemainingStock  int         `json:"remaining_stock"`
	Action          StockAction `json:"action"`
	ReceiptNumber   string      `json:"receipt_number"`
	CreatedAt       time.Time   `json:"created_at"`
}

func (StockHistory) TableName() string { return "stock_histories" }

type StockHistoryFilter struct {
	ProductID *int64
	Action    *StockAction
	Limit     int
	Offset    int
	Desc      bool
}
