package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/nimasrn/branch-backoffice/internal/broadcast"
	"github.com/nimasrn/branch-backoffice/internal/model"
	"github.com/nimasrn/branch-backoffice/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSalesService() (*SalesService, *MockSalesOrderRepository, *MockCustomerOrderRepository, *MockSalesTargetRepository, *MockProductRepository, *MockPublisher) {
	orderRepo := new(MockSalesOrderRepository)
	customerRepo := new(MockCustomerOrderRepository)
	targetRepo := new(MockSalesTargetRepository)
	productRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := NewSalesService(orderRepo, customerRepo, targetRepo, productRepo, publisher)
	return service, orderRepo, customerRepo, targetRepo, productRepo, publisher
}

func TestSalesService_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("deducts stock and totals the order", func(t *testing.T) {
		service, orderRepo, _, _, productRepo, publisher := newSalesService()

		day := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
		req := model.SalesOrderCreateRequest{
			CustomerName: "Walk-in",
			BranchID:     1,
			Date:         day,
			Items: []model.SalesOrderItemInput{
				{ProductID: 1, ProductName: "Rice 25kg", Quantity: 2, Price: 100},
				{ProductID: 2, ProductName: "Cooking Oil", Quantity: 3, Price: 40},
			},
		}

		productRepo.On("WithinTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		productRepo.On("DeductStock", ctx, int64(1), 2, mock.AnythingOfType("string")).Return(&model.StockHistory{}, nil)
		productRepo.On("DeductStock", ctx, int64(2), 3, mock.AnythingOfType("string")).Return(&model.StockHistory{}, nil)
		orderRepo.On("CreateWithItems", ctx, mock.MatchedBy(func(o *model.SalesOrder) bool {
			return o.Total == 320 && len(o.Items) == 2 && strings.HasPrefix(o.ReceiptNumber, "OR-")
		})).Return(&model.SalesOrder{ID: 1, BranchID: 1, Date: day, Total: 320, ReceiptNumber: "OR-TEST"}, nil)
		publisher.On("Publish", ctx, broadcast.ChannelDailySales, broadcast.EventNewSalesUpdate,
			broadcast.SalesUpdatePayload{Date: "2024-05-02"}).Return(nil)

		created, err := service.CreateOrder(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 320.0, created.Total)

		orderRepo.AssertExpectations(t)
		productRepo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("insufficient stock fails the whole order", func(t *testing.T) {
		service, orderRepo, _, _, productRepo, publisher := newSalesService()

		req := model.SalesOrderCreateRequest{
			BranchID: 1,
			Items: []model.SalesOrderItemInput{
				{ProductID: 1, ProductName: "Rice 25kg", Quantity: 500, Price: 100},
			},
		}

		productRepo.On("WithinTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		productRepo.On("DeductStock", ctx, int64(1), 500, mock.AnythingOfType("string")).
			Return(nil, repository.ErrInsufficientStock)

		_, err := service.CreateOrder(ctx, req)
		assert.ErrorIs(t, err, repository.ErrInsufficientStock)

		orderRepo.AssertNotCalled(t, "CreateWithItems", mock.Anything, mock.Anything)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("broadcast failure does not fail the order", func(t *testing.T) {
		service, orderRepo, _, _, productRepo, publisher := newSalesService()

		req := model.SalesOrderCreateRequest{
			BranchID: 1,
			Date:     time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
			Items: []model.SalesOrderItemInput{
				{ProductID: 1, ProductName: "Rice 25kg", Quantity: 1, Price: 100},
			},
		}

		productRepo.On("WithinTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		productRepo.On("DeductStock", ctx, int64(1), 1, mock.AnythingOfType("string")).Return(&model.StockHistory{}, nil)
		orderRepo.On("CreateWithItems", ctx, mock.Anything).
			Return(&model.SalesOrder{ID: 2, BranchID: 1, Date: req.Date, Total: 100}, nil)
		publisher.On("Publish", ctx, broadcast.ChannelDailySales, broadcast.EventNewSalesUpdate, mock.Anything).
			Return(assert.AnError)

		created, err := service.CreateOrder(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, int64(2), created.ID)
	})

	t.Run("empty items rejected", func(t *testing.T) {
		service, _, _, _, _, _ := newSalesService()

		_, err := service.CreateOrder(ctx, model.SalesOrderCreateRequest{BranchID: 1})
		assert.Error(t, err)
	})
}

func TestSalesService_GetDailySummary(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 6, 10, 14, 30, 0, 0, time.UTC)
	from := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	t.Run("with a target", func(t *testing.T) {
		service, orderRepo, _, targetRepo, _, _ := newSalesService()

		orderRepo.On("SumTotals", ctx, int64(1), from, to).Return(37500.0, nil)
		targetRepo.On("GetByBranch", ctx, int64(1)).Return(&model.SalesTarget{BranchID: 1, TargetSales: 50000}, nil)

		summary, err := service.GetDailySummary(ctx, 1, day)
		require.NoError(t, err)
		assert.Equal(t, "2024-06-10", summary.Date)
		assert.Equal(t, 37500.0, summary.TotalSales)
		assert.Equal(t, 50000.0, summary.TargetSales)
		assert.InDelta(t, 0.75, summary.Achieved, 0.0001)
	})

	t.Run("no target set", func(t *testing.T) {
		service, orderRepo, _, targetRepo, _, _ := newSalesService()

		orderRepo.On("SumTotals", ctx, int64(2), from, to).Return(1200.0, nil)
		targetRepo.On("GetByBranch", ctx, int64(2)).Return(nil, repository.ErrSalesTargetNotFound)

		summary, err := service.GetDailySummary(ctx, 2, day)
		require.NoError(t, err)
		assert.Equal(t, 1200.0, summary.TotalSales)
		assert.Zero(t, summary.TargetSales)
		assert.Zero(t, summary.Achieved)
	})

	t.Run("target lookup failure propagates", func(t *testing.T) {
		service, orderRepo, _, targetRepo, _, _ := newSalesService()

		orderRepo.On("SumTotals", ctx, int64(3), from, to).Return(900.0, nil)
		targetRepo.On("GetByBranch", ctx, int64(3)).Return(nil, assert.AnError)

		summary, err := service.GetDailySummary(ctx, 3, day)
		assert.Nil(t, summary)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestSalesService_UpsertTarget(t *testing.T) {
	ctx := context.Background()

	t.Run("valid target", func(t *testing.T) {
		service, _, _, targetRepo, _, _ := newSalesService()

		targetRepo.On("Upsert", ctx, &model.SalesTarget{BranchID: 1, TargetSales: 60000}).
			Return(&model.SalesTarget{ID: 1, BranchID: 1, TargetSales: 60000}, nil)

		target, err := service.UpsertTarget(ctx, model.SalesTargetUpsertRequest{BranchID: 1, TargetSales: 60000})
		require.NoError(t, err)
		assert.Equal(t, 60000.0, target.TargetSales)
	})

	t.Run("negative target rejected", func(t *testing.T) {
		service, _, _, _, _, _ := newSalesService()

		_, err := service.UpsertTarget(ctx, model.SalesTargetUpsertRequest{BranchID: 1, TargetSales: -5})
		assert.Error(t, err)
	})
}

func TestSalesService_CustomerOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("total computed from price and quantity", func(t *testing.T) {
		service, _, customerRepo, _, _, _ := newSalesService()

		customerRepo.On("Create", ctx, mock.MatchedBy(func(o *model.CustomerOrder) bool {
			return o.Total == 250
		})).Return(&model.CustomerOrder{ID: 1, Total: 250}, nil)

		created, err := service.CreateCustomerOrder(ctx, model.CustomerOrderCreateRequest{
			CustomerID:  3,
			ProductName: "Rice 25kg",
			Quantity:    2,
			Price:       125,
		})
		require.NoError(t, err)
		assert.Equal(t, 250.0, created.Total)
	})

	t.Run("missing customer rejected", func(t *testing.T) {
		service, _, _, _, _, _ := newSalesService()

		_, err := service.CreateCustomerOrder(ctx, model.CustomerOrderCreateRequest{
			ProductName: "Rice",
			Quantity:    1,
			Price:       1,
		})
		assert.Error(t, err)
	})
}
