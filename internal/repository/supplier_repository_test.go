package repository

import (
	"context"
	"testing"

	"github.com/nimasrn/branch-backoffice/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupplierRepository_CreateWithStocks(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewSupplierRepository(db)
	ctx := context.Background()

	t.Run("create receipt with stock lines", func(t *testing.T) {
		supplier := &model.Supplier{
			SupplierName:   "Metro Wholesale",
			DeliveryNumber: "DN-2024-001",
			Stocks: []*model.SupplierStock{
				{ProductCode: "PRD-001", Quantity: 100, Price: 12.5, Total: 1250},
				{ProductCode: "PRD-002", Quantity: 40, Price: 80, Total: 3200},
			},
		}

		created, err := repo.CreateWithStocks(ctx, supplier)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		require.Len(t, created.Stocks, 2)
		assert.Equal(t, created.ID, created.Stocks[0].SupplierID)
		assert.Equal(t, created.ID, created.Stocks[1].SupplierID)
	})

	t.Run("create receipt without lines", func(t *testing.T) {
		supplier := &model.Supplier{
			SupplierName:   "Lone Header",
			DeliveryNumber: "DN-2024-002",
		}

		created, err := repo.CreateWithStocks(ctx, supplier)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Empty(t, created.Stocks)
	})
}

func TestSupplierRepository_GetByID(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewSupplierRepository(db)
	ctx := context.Background()

	created, err := repo.CreateWithStocks(ctx, &model.Supplier{
		SupplierName:   "Metro Wholesale",
		DeliveryNumber: "DN-2024-010",
		Stocks: []*model.SupplierStock{
			{ProductCode: "PRD-001", Quantity: 10, Price: 5, Total: 50},
		},
	})
	require.NoError(t, err)

	t.Run("existing receipt preloads lines", func(t *testing.T) {
		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Metro Wholesale", got.SupplierName)
		require.Len(t, got.Stocks, 1)
		assert.Equal(t, "PRD-001", got.Stocks[0].ProductCode)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 999)
		assert.ErrorIs(t, err, ErrSupplierNotFound)
	})
}

func TestSupplierRepository_Delete(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewSupplierRepository(db)
	ctx := context.Background()

	created, err := repo.CreateWithStocks(ctx, &model.Supplier{
		SupplierName:   "Soon Gone",
		DeliveryNumber: "DN-2024-020",
		Stocks: []*model.SupplierStock{
			{ProductCode: "PRD-001", Quantity: 1, Price: 1, Total: 1},
			{ProductCode: "PRD-002", Quantity: 2, Price: 2, Total: 4},
		},
	})
	require.NoError(t, err)

	t.Run("delete cascades to stock lines", func(t *testing.T) {
		err := repo.Delete(ctx, created.ID)
		require.NoError(t, err)

		_, err = repo.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, ErrSupplierNotFound)

		var count int64
		err = db.Read(ctx).Model(&SupplierStockEntity{}).
			Where("supplier_id = ?", created.ID).
			Count(&count).Error
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("delete missing receipt", func(t *testing.T) {
		err := repo.Delete(ctx, 999)
		assert.ErrorIs(t, err, ErrSupplierNotFound)
	})
}
