package services

import (
	"context"
	"time"

	"github.com/nimasrn/branch-backoffice/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) SetOnline(ctx context.Context, id int64, online bool) error {
	args := m.Called(ctx, id, online)
	return args.Error(0)
}

func (m *MockUserRepository) ListIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByCode(ctx context.Context, branchID int64, code string) (*model.Product, error) {
	args := m.Called(ctx, branchID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, f model.ProductFilter) ([]*model.Product, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Update(ctx context.Context, p *model.Product) (*model.Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) AddStock(ctx context.Context, productID int64, quantity int, receiptNumber string) (*model.StockHistory, error) {
	args := m.Called(ctx, productID, quantity, receiptNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StockHistory), args.Error(1)
}

func (m *MockProductRepository) DeductStock(ctx context.Context, productID int64, quantity int, receiptNumber string) (*model.StockHistory, error) {
	args := m.Called(ctx, productID, quantity, receiptNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StockHistory), args.Error(1)
}

func (m *MockProductRepository) ListStockHistory(ctx context.Context, f model.StockHistoryFilter) ([]*model.StockHistory, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.StockHistory), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) CreateWithStocks(ctx context.Context, s *model.Supplier) (*model.Supplier, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) GetByID(ctx context.Context, id int64) (*model.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) List(ctx context.Context, limit, offset int) ([]*model.Supplier, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Supplier), args.Get(1).(int64), args.Error(2)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDeliveryRepository struct {
	mock.Mock
}

func (m *MockDeliveryRepository) CreateWithItems(ctx context.Context, d *model.DeliveryReceipt) (*model.DeliveryReceipt, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeliveryReceipt), args.Error(1)
}

func (m *MockDeliveryRepository) GetByID(ctx context.Context, id int64) (*model.DeliveryReceipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeliveryReceipt), args.Error(1)
}

func (m *MockDeliveryRepository) List(ctx context.Context, limit, offset int) ([]*model.DeliveryReceipt, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.DeliveryReceipt), args.Get(1).(int64), args.Error(2)
}

func (m *MockDeliveryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRequestStocksRepository struct {
	mock.Mock
}

func (m *MockRequestStocksRepository) CreateWithItems(ctx context.Context, rs *model.RequestStocks) (*model.RequestStocks, error) {
	args := m.Called(ctx, rs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RequestStocks), args.Error(1)
}

func (m *MockRequestStocksRepository) GetByID(ctx context.Context, id int64) (*model.RequestStocks, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RequestStocks), args.Error(1)
}

func (m *MockRequestStocksRepository) List(ctx context.Context, branchID *int64, limit, offset int) ([]*model.RequestStocks, int64, error) {
	args := m.Called(ctx, branchID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.RequestStocks), args.Get(1).(int64), args.Error(2)
}

func (m *MockRequestStocksRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSalesOrderRepository struct {
	mock.Mock
}

func (m *MockSalesOrderRepository) CreateWithItems(ctx context.Context, o *model.SalesOrder) (*model.SalesOrder, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) GetByID(ctx context.Context, id int64) (*model.SalesOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) List(ctx context.Context, f model.SalesOrderFilter) ([]*model.SalesOrder, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.SalesOrder), args.Get(1).(int64), args.Error(2)
}

func (m *MockSalesOrderRepository) SumTotals(ctx context.Context, branchID int64, from, to time.Time) (float64, error) {
	args := m.Called(ctx, branchID, from, to)
	return args.Get(0).(float64), args.Error(1)
}

type MockCustomerOrderRepository struct {
	mock.Mock
}

func (m *MockCustomerOrderRepository) Create(ctx context.Context, o *model.CustomerOrder) (*model.CustomerOrder, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomerOrder), args.Error(1)
}

func (m *MockCustomerOrderRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]*model.CustomerOrder, int64, error) {
	args := m.Called(ctx, customerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.CustomerOrder), args.Get(1).(int64), args.Error(2)
}

type MockSalesTargetRepository struct {
	mock.Mock
}

func (m *MockSalesTargetRepository) Upsert(ctx context.Context, t *model.SalesTarget) (*model.SalesTarget, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SalesTarget), args.Error(1)
}

func (m *MockSalesTargetRepository) GetByBranch(ctx context.Context, branchID int64) (*model.SalesTarget, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SalesTarget), args.Error(1)
}

type MockRemittanceRepository struct {
	mock.Mock
}

func (m *MockRemittanceRepository) Create(ctx context.Context, r *model.Remittance) (*model.Remittance, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Remittance), args.Error(1)
}

func (m *MockRemittanceRepository) GetByID(ctx context.Context, id int64) (*model.Remittance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Remittance), args.Error(1)
}

func (m *MockRemittanceRepository) MarkReceived(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRemittanceRepository) List(ctx context.Context, f model.RemittanceFilter) ([]*model.Remittance, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Remittance), args.Get(1).(int64), args.Error(2)
}

type MockAnnouncementRepository struct {
	mock.Mock
}

func (m *MockAnnouncementRepository) Create(ctx context.Context, a *model.Announcement) (*model.Announcement, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Announcement), args.Error(1)
}

func (m *MockAnnouncementRepository) AttachUsers(ctx context.Context, announcementID int64, userIDs []int64) error {
	args := m.Called(ctx, announcementID, userIDs)
	return args.Error(0)
}

func (m *MockAnnouncementRepository) GetByID(ctx context.Context, id int64) (*model.Announcement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Announcement), args.Error(1)
}

func (m *MockAnnouncementRepository) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]*model.UserAnnouncementView, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.UserAnnouncementView), args.Get(1).(int64), args.Error(2)
}

func (m *MockAnnouncementRepository) MarkRead(ctx context.Context, userID, announcementID int64) error {
	args := m.Called(ctx, userID, announcementID)
	return args.Error(0)
}

func (m *MockAnnouncementRepository) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnnouncementRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAnnouncementRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

type MockChatNotificationRepository struct {
	mock.Mock
}

func (m *MockChatNotificationRepository) Create(ctx context.Context, n *model.ChatNotification) (*model.ChatNotification, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChatNotification), args.Error(1)
}

func (m *MockChatNotificationRepository) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]*model.ChatNotification, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.ChatNotification), args.Get(1).(int64), args.Error(2)
}

func (m *MockChatNotificationRepository) MarkRead(ctx context.Context, userID, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockChatNotificationRepository) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, channel, event string, payload interface{}) error {
	args := m.Called(ctx, channel, event, payload)
	return args.Error(0)
}
