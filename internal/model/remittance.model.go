package model

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// CashBreakdown maps a denomination (e.g. "1000") to a bill/coin count.
type CashBreakdown map[string]int

// TotalCash sums denomination × count over the whole breakdown.
func (b CashBreakdown) TotalCash() (float64, error) {
	var total float64
	for denom, count := range b {
		v, err := strconv.ParseFloat(denom, 64)
		if err != nil {
			return 0, fmt.Errorf("denomination %q is not numeric", denom)
		}
		if count < 0 {
			return 0, fmt.Errorf("denomination %q has a negative count", denom)
		}
		total += v * float64(count)
	}
	return total, nil
}

type ExpenseLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type Remittance struct {
	ID            int64         `json:"id"`
	DateStart     time.Time     `json:"date_start"`
	DateEnd       time.Time     `json:"date_end"`
	BranchID      int64         `json:"branch_id"`
	TotalSales    float64       `json:"total_sales"`
	CashBreakdown CashBreakdown `json:"cash_breakdown"`
	TotalCash     float64       `json:"total_cash"`
	Expenses      []ExpenseLine `json:"expenses"`
	TotalExpenses float64       `json:"total_expenses"`
	RemainingCash float64       `json:"remaining_cash"`
	Received      bool          `json:"received"`
	CreatedAt     time.Time     `json:"created_at"`
}

func (Remittance) TableName() string { return "remittances" }

type RemittanceCreateRequest struct {
	DateStart     time.Time
	DateEnd       time.Time
	BranchID      int64
	TotalSales    float64
	CashBreakdown CashBreakdown
	Expenses      []ExpenseLine
}

func (p RemittanceCreateRequest) Validate() error {
	if p.BranchID == 0 {
		return errors.New("branch_id is required")
	}
	if p.DateStart.IsZero() || p.DateEnd.IsZero() {
		return errors.New("date_start and date_end are required")
	}
	if p.DateEnd.Before(p.DateStart) {
		return errors.New("date_end cannot precede date_start")
	}
	if len(p.CashBreakdown) == 0 {
		return errors.New("cash_breakdown is required")
	}
	if _, err := p.CashBreakdown.TotalCash(); err != nil {
		return err
	}
	for i, e := range p.Expenses {
		if e.Label == "" {
			return fmt.Errorf("expenses[%d]: label is required", i)
		}
		if e.Amount < 0 {
			return fmt.Errorf("expenses[%d]: amount cannot be negative", i)
		}
	}
	return nil
}

type RemittanceFilter struct {
	BranchID *int64
	From     *time.Time
	To       *time.Time
	Received *bool
	Limit    int
	Offset   int
	Desc     bool
}

type SalesTarget struct {
	ID          int64   `json:"id"`
	BranchID    int64   `json:"branch_id"`
	TargetSales float64 `json:"target_sales"`
}

func (SalesTarget) TableName() string { return "sales_targets" }

type SalesTargetUpsertRequest struct {
	BranchID    int64
	TargetSales float64
}

func (p SalesTargetUpsertRequest) Validate() error {
	if p.BranchID == 0 {
		return errors.New("branch_id is required")
	}
	if p.TargetSales < 0 {
		return errors.New("target_sales cannot be negative")
	}
	return nil
}
