package helpers

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nimasrn/branch-backoffice/internal/repository"
	"github.com/nimasrn/branch-backoffice/pkg/pg"
	"github.com/nimasrn/branch-backoffice/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func SetupTestDB(t *testing.T) *pg.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&repository.UserEntity{},
		&repository.ProductEntity{},
		&repository.StockHistoryEntity{},
		&repository.SupplierEntity{},
		&repository.SupplierStockEntity{},
		&repository.DeliveryReceiptEntity{},
		&repository.DeliveryItemEntity{},
		&repository.RequestStocksEntity{},
		&repository.RequestStocksItemEntity{},
		&repository.SalesOrderEntity{},
		&repository.SalesOrderItemEntity{},
		&repository.CustomerOrderEntity{},
		&repository.RemittanceEntity{},
		&repository.SalesTargetEntity{},
		&repository.AnnouncementEntity{},
		&repository.UserAnnouncementEntity{},
		&repository.ChatNotificationEntity{},
	)
	require.NoError(t, err)

	pgDB := &pg.DB{}
	pgDBValue := reflect.ValueOf(pgDB).Elem()

	readField := pgDBValue.FieldByName("read")
	writeField := pgDBValue.FieldByName("write")

	readField = reflect.NewAt(readField.Type(), readField.Addr().UnsafePointer()).Elem()
	writeField = reflect.NewAt(writeField.Type(), writeField.Addr().UnsafePointer()).Elem()

	readField.Set(reflect.ValueOf(db))
	writeField.Set(reflect.ValueOf(db))

	return pgDB
}

func SetupTestRedis(t *testing.T) (*miniredis.Miniredis, redis.RedisAdapter) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	adapter, err := redis.NewRedisAdapter(fmt.Sprintf("test-%d", time.Now().UnixNano()), "", &goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	return mr, adapter
}

func CreateTestUser(t *testing.T, db *pg.DB, email, usertype string, branchID int64) *repository.UserEntity {
	ctx := context.Background()
	user := &repository.UserEntity{
		Name:     "Test User",
		Email:    email,
		Password: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		Usertype: usertype,
		BranchID: branchID,
	}
	err := db.Write(ctx).Create(user).Error
	require.NoError(t, err)
	return user
}

func CreateTestProduct(t *testing.T, db *pg.DB, code string, branchID int64, quantity int, price float64) *repository.ProductEntity {
	ctx := context.Background()
	product := &repository.ProductEntity{
		ProductCode: code,
		Name:        "Product " + code,
		BranchID:    branchID,
		Quantity:    quantity,
		Price:       price,
		Category:    "grocery",
	}
	err := db.Write(ctx).Create(product).Error
	require.NoError(t, err)
	return product
}

func CreateTestSalesOrder(t *testing.T, db *pg.DB, branchID int64, total float64, day time.Time) *repository.SalesOrderEntity {
	ctx := context.Background()
	order := &repository.SalesOrderEntity{
		ReceiptNumber: fmt.Sprintf("OR-%d", time.Now().UnixNano()),
		CustomerName:  "Walk-in",
		BranchID:      branchID,
		Date:          day,
		Total:         total,
	}
	err := db.Write(ctx).Create(order).Error
	require.NoError(t, err)
	return order
}

func CreateTestAnnouncement(t *testing.T, db *pg.DB, title string, createdBy int64, userIDs ...int64) *repository.AnnouncementEntity {
	ctx := context.Background()
	ann := &repository.AnnouncementEntity{
		Title:     title,
		Content:   "content of " + title,
		Date:      time.Now().UTC(),
		CreatedBy: createdBy,
	}
	err := db.Write(ctx).Create(ann).Error
	require.NoError(t, err)

	for _, userID := range userIDs {
		ua := &repository.UserAnnouncementEntity{
			UserID:         userID,
			AnnouncementID: ann.ID,
		}
		err = db.Write(ctx).Create(ua).Error
		require.NoError(t, err)
	}
	return ann
}

func WaitForCondition(t *testing.T, timeout time.Duration, condition func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func AssertEventually(t *testing.T, timeout time.Duration, condition func() bool, msg string) {
	if !WaitForCondition(t, timeout, condition) {
		t.Fatal(msg)
	}
}

func ContextWithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func Ptr[T any](v T) *T {
	return &v
}
