package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nimasrn/branch-backoffice/internal/broadcast"
	"github.com/nimasrn/branch-backoffice/internal/model"
	"github.com/nimasrn/branch-backoffice/internal/repository"
	"github.com/nimasrn/branch-backoffice/pkg/logger"
	"github.com/nimasrn/branch-backoffice/pkg/prom"
)

type SalesOrderRepository interface {
	CreateWithItems(ctx context.Context, o *model.SalesOrder) (*model.SalesOrder, error)
	GetByID(ctx context.Context, id int64) (*model.SalesOrder, error)
	List(ctx context.Context, f model.SalesOrderFilter) ([]*model.SalesOrder, int64, error)
	SumTotals(ctx context.Context, branchID int64, from, to time.Time) (float64, error)
}

type CustomerOrderRepository interface {
	Create(ctx context.Context, o *model.CustomerOrder) (*model.CustomerOrder, error)
	ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]*model.CustomerOrder, int64, error)
}

type SalesTargetRepository interface {
	Upsert(ctx context.Context, t *model.SalesTarget) (*model.SalesTarget, error)
	GetByBranch(ctx context.Context, branchID int64) (*model.SalesTarget, error)
}

// DailySummary is a branch's sales for one day against its target.
type DailySummary struct {
	BranchID    int64   `json:"branch_id"`
	Date        string  `json:"date"`
	TotalSales  float64 `json:"total_sales"`
	TargetSales float64 `json:"target_sales"`
	Achieved    float64 `json:"achieved"` // fraction of target, 0 when no target set
}

type SalesService struct {
	orderRepo    SalesOrderRepository
	customerRepo CustomerOrderRepository
	targetRepo   SalesTargetRepository
	productRepo  ProductRepository
	publisher    broadcast.Publisher
}

func NewSalesService(orderRepo SalesOrderRepository, customerRepo CustomerOrderRepository, targetRepo SalesTargetRepository, productRepo ProductRepository, publisher broadcast.Publisher) *SalesService {
	return &SalesService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		targetRepo:   targetRepo,
		productRepo:  productRepo,
		publisher:    publisher,
	}
}

// CreateOrder deducts stock for every line and writes the order header and
// items atomically. If any line cannot be fulfilled the whole order rolls
// back, stock included. The dashboard broadcast fires only after commit.
func (s *SalesService) CreateOrder(ctx context.Context, p model.SalesOrderCreateRequest) (*model.SalesOrder, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}

	receiptNumber := newReceiptNumber()

	order := &model.SalesOrder{
		ReceiptNumber: receiptNumber,
		CustomerName:  p.CustomerName,
		BranchID:      p.BranchID,
		Date:          p.Date,
	}
	for _, item := range p.Items {
		lineTotal := item.Price * float64(item.Quantity)
		order.Items = append(order.Items, &model.SalesOrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Total:       lineTotal,
		})
		order.Total += lineTotal
	}

	var created *model.SalesOrder
	err := s.productRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, item := range order.Items {
			if _, err := s.productRepo.DeductStock(ctx, item.ProductID, item.Quantity, receiptNumber); err != nil {
				return fmt.Errorf("deduct stock for product %d: %w", item.ProductID, err)
			}
		}

		var err error
		created, err = s.orderRepo.CreateWithItems(ctx, order)
		if err != nil {
			return fmt.Errorf("create sales order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	prom.IncSalesOrderCreated(strconv.FormatInt(created.BranchID, 10))
	s.publishSalesUpdate(ctx, created.Date)

	return created, nil
}

func (s *SalesService) GetOrder(ctx context.Context, id int64) (*model.SalesOrder, error) {
	return s.orderRepo.GetByID(ctx, id)
}

func (s *SalesService) ListOrders(ctx context.Context, f model.SalesOrderFilter) ([]*model.SalesOrder, int64, error) {
	return s.orderRepo.List(ctx, f)
}

// GetDailySummary reports one day's sales for a branch against the branch
// target. A missing target is not an error, the summary just carries zero.
func (s *SalesService) GetDailySummary(ctx context.Context, branchID int64, day time.Time) (*DailySummary, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	total, err := s.orderRepo.SumTotals(ctx, branchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("sum sales: %w", err)
	}

	summary := &DailySummary{
		BranchID:   branchID,
		Date:       from.Format("2006-01-02"),
		TotalSales: total,
	}

	target, err := s.targetRepo.GetByBranch(ctx, branchID)
	switch {
	case err == nil:
		summary.TargetSales = target.TargetSales
		if target.TargetSales > 0 {
			summary.Achieved = total / target.TargetSales
		}
	case errors.Is(err, repository.ErrSalesTargetNotFound):
		// no target set for the branch, summary stays at zero
	default:
		return nil, fmt.Errorf("load target: %w", err)
	}
	return summary, nil
}

func (s *SalesService) UpsertTarget(ctx context.Context, p model.SalesTargetUpsertRequest) (*model.SalesTarget, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.targetRepo.Upsert(ctx, &model.SalesTarget{
		BranchID:    p.BranchID,
		TargetSales: p.TargetSales,
	})
}

func (s *SalesService) GetTarget(ctx context.Context, branchID int64) (*model.SalesTarget, error) {
	return s.targetRepo.GetByBranch(ctx, branchID)
}

func (s *SalesService) CreateCustomerOrder(ctx context.Context, p model.CustomerOrderCreateRequest) (*model.CustomerOrder, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.customerRepo.Create(ctx, &model.CustomerOrder{
		CustomerID:  p.CustomerID,
		ProductName: p.ProductName,
		Quantity:    p.Quantity,
		Price:       p.Price,
		Total:       p.Price * float64(p.Quantity),
	})
}

func (s *SalesService) ListCustomerOrders(ctx context.Context, customerID int64, limit, offset int) ([]*model.CustomerOrder, int64, error) {
	return s.customerRepo.ListByCustomer(ctx, customerID, limit, offset)
}

func (s *SalesService) publishSalesUpdate(ctx context.Context, date time.Time) {
	err := s.publisher.Publish(ctx, broadcast.ChannelDailySales, broadcast.EventNewSalesUpdate, broadcast.SalesUpdatePayload{
		Date: date.Format("2006-01-02"),
	})
	if err != nil {
		logger.Error("daily sales broadcast failed", "date", date.Format("2006-01-02"), "error", err)
	}
}

// newReceiptNumber builds an OR-prefixed receipt id, unique per order.
func newReceiptNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "OR-" + raw[:12]
}
