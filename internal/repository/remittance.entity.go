package repository

import (
	"encoding/json"
	"time"

	"github.com/nimasrn/branch-backoffice/internal/model"
)

type RemittanceEntity struct {
	ID            int64     `db:"id"             gorm:"primaryKey;autoIncrement;column:id"`
	DateStart     time.Time `db:"date_start"     gorm:"column:date_start;not null"`
	DateEnd       time.Time `db:"date_end"       gorm:"column:date_end;not null"`
	BranchID      int64     `db:"branch_id"      gorm:"column:branch_id;not null;index"`
	TotalSales    float64   `db:"total_sales"    gorm:"column:total_sales;not null"`
	CashBreakdown []byte    `db:"cash_breakdown" gorm:"column:cash_breakdown;type:json"`
	TotalCash     float64   `db:"total_cash"     gorm:"column:total_cash;not null"`
	Expenses      []byte    `db:"expenses"       gorm:"column:expenses;type:json"`
	TotalExpenses float64   `db:"total_expenses" gorm:"column:total_expenses;not null"`
	RemainingCash float64   `db:"remaining_cash" gorm:"column:remaining_cash;not null"`
	Received      bool      `db:"received"       gorm:"column:received;not null;default:false"`
	CreatedAt     time.Time `db:"created_at"     gorm:"column:created_at;autoCreateTime"`
}

func (RemittanceEntity) TableName() string {
	return "remittances"
}

type SalesTargetEntity struct {
	ID          int64   `db:"id"           gorm:"primaryKey;autoIncrement;column:id"`
	BranchID    int64   `db:"branch_id"    gorm:"column:branch_id;not null;uniqueIndex"`
	TargetSales float64 `db:"target_sales" gorm:"column:target_sales;not null"`
}

func (SalesTargetEntity) TableName() string {
	return "sales_targets"
}

func toRemittanceEntity(m *model.Remittance) (*RemittanceEntity, error) {
	if m == nil {
		return nil, nil
	}
	breakdown, err := json.Marshal(m.CashBreakdown)
	if err != nil {
		return nil, err
	}
	expenses, err := json.Marshal(m.Expenses)
	if err != nil {
		return nil, err
	}
	return &RemittanceEntity{
		ID:            m.ID,
		DateStart:     m.DateStart,
		DateEnd:       m.DateEnd,
		BranchID:      m.BranchID,
		TotalSales:    m.TotalSales,
		CashBreakdown: breakdown,
		TotalCash:     m.TotalCash,
		Expenses:      expenses,
		TotalExpenses: m.TotalExpenses,
		RemainingCash: m.RemainingCash,
		Received:      m.Received,
		CreatedAt:     m.CreatedAt,
	}, nil
}

func toRemittanceModel(e *RemittanceEntity) (*model.Remittance, error) {
	if e == nil {
		return nil, nil
	}
	m := &model.Remittance{
		ID:            e.ID,
		DateStart:     e.DateStart,
		DateEnd:       e.DateEnd,
		BranchID:      e.BranchID,
		TotalSales:    e.TotalSales,
		TotalCash:     e.TotalCash,
		TotalExpenses: e.TotalExpenses,
		RemainingCash: e.RemainingCash,
		Received:      e.Received,
		CreatedAt:     e.CreatedAt,
	}
	if len(e.CashBreakdown) > 0 {
		if err := json.Unmarshal(e.CashBreakdown, &m.CashBreakdown); err != nil {
			return nil, err
		}
	}
	if len(e.Expenses) > 0 {
		if err := json.Unmarshal(e.Expenses, &m.Expenses); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func toRemittanceModels(entities []*RemittanceEntity) ([]*model.Remittance, error) {
	if entities == nil {
		return nil, nil
	}
	models := make([]*model.Remittance, len(entities))
	for i, e := range entities {
		m, err := toRemittanceModel(e)
		if err != nil {
			return nil, err
		}
		models[i] = m
	}
	return models, nil
}

func toSalesTargetModel(e *SalesTargetEntity) *model.SalesTarget {
	if e == nil {
		return nil
	}
	return &model.SalesTarget{
		ID:          e.ID,
		BranchID:    e.BranchID,
		TargetSales: e.TargetSales,
	}
}
