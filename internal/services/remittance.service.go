package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nimasrn/branch-backoffice/internal/model"
)

var ErrCashMismatch = errors.New("remaining cash does not reconcile")

type RemittanceRepository interface {
	Create(ctx context.Context, m *model.Remittance) (*model.Remittance, error)
	GetByID(ctx context.Context, id int64) (*model.Remittance, error)
	MarkReceived(ctx context.Context, id int64) error
	List(ctx context.Context, f model.RemittanceFilter) ([]*model.Remittance, int64, error)
}

type RemittanceService struct {
	remittanceRepo RemittanceRepository
	orderRepo      SalesOrderRepository
}

func NewRemittanceService(remittanceRepo RemittanceRepository, orderRepo SalesOrderRepository) *RemittanceService {
	return &RemittanceService{
		remittanceRepo: remittanceRepo,
		orderRepo:      orderRepo,
	}
}

// Create reconciles the drawer for a period. Every derived figure is
// recomputed server side from the breakdown and expense lines; the caller
// only supplies raw counts. Total sales come from the recorded orders, not
// from the request.
func (s *RemittanceService) Create(ctx context.Context, p model.RemittanceCreateRequest) (*model.Remittance, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	totalCash, err := p.CashBreakdown.TotalCash()
	if err != nil {
		return nil, err
	}

	var totalExpenses float64
	for _, e := range p.Expenses {
		totalExpenses += e.Amount
	}

	remaining := totalCash - totalExpenses
	if remaining < 0 {
		return nil, fmt.Errorf("%w: expenses %.2f exceed counted cash %.2f", ErrCashMismatch, totalExpenses, totalCash)
	}

	totalSales, err := s.orderRepo.SumTotals(ctx, p.BranchID, p.DateStart, p.DateEnd.Add(time.Nanosecond))
	if err != nil {
		return nil, fmt.Errorf("sum sales for period: %w", err)
	}

	return s.remittanceRepo.Create(ctx, &model.Remittance{
		DateStart:     p.DateStart,
		DateEnd:       p.DateEnd,
		BranchID:      p.BranchID,
		TotalSales:    totalSales,
		CashBreakdown: p.CashBreakdown,
		TotalCash:     totalCash,
		Expenses:      p.Expenses,
		TotalExpenses: totalExpenses,
		RemainingCash: remaining,
	})
}

func (s *RemittanceService) Get(ctx context.Context, id int64) (*model.Remittance, error) {
	return s.remittanceRepo.GetByID(ctx, id)
}

// MarkReceived is the head-office acknowledgment. It can fire once.
func (s *RemittanceService) MarkReceived(ctx context.Context, id int64) error {
	return s.remittanceRepo.MarkReceived(ctx, id)
}

func (s *RemittanceService) List(ctx context.Context, f model.RemittanceFilter) ([]*model.Remittance, int64, error) {
	return s.remittanceRepo.List(ctx, f)
}
