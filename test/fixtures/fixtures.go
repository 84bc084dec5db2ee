package fixtures

import (
	"time"

	"github.com/nimasrn/branch-backoffice/internal/model"
)

var (
	TestAdmin = model.User{
		ID:       1,
		Name:     "Head Office Admin",
		Email:    "admin@example.com",
		Usertype: model.RoleAdmin,
		BranchID: 1,
	}

	TestBranchUser = model.User{
		ID:       2,
		Name:     "Branch Clerk",
		Email:    "clerk@example.com",
		Usertype: model.RoleUser,
		BranchID: 2,
	}

	TestProduct = model.Product{
		ID:          1,
		ProductCode: "RICE-25",
		Name:        "Rice 25kg",
		BranchID:    2,
		Quantity:    40,
		Price:       1250,
		Category:    "grocery",
	}

	TestProductLowStock = model.Product{
		ID:          2,
		ProductCode: "OIL-1L",
		Name:        "Cooking Oil 1L",
		BranchID:    2,
		Quantity:    1,
		Price:       95,
		Category:    "grocery",
	}
)

func NewProductCreateRequest(code string, branchID int64, quantity int, price float64) model.ProductCreateRequest {
	return model.ProductCreateRequest{
		ProductCode: code,
		Name:        "Product " + code,
		BranchID:    branchID,
		Quantity:    quantity,
		Price:       price,
		Category:    "grocery",
	}
}

func NewSalesOrderCreateRequest(branchID int64, items ...model.SalesOrderItemInput) model.SalesOrderCreateRequest {
	if len(items) == 0 {
		items = []model.SalesOrderItemInput{
			{ProductID: 1, ProductName: "Rice 25kg", Quantity: 2, Price: 1250},
		}
	}
	return model.SalesOrderCreateRequest{
		CustomerName: "Walk-in",
		BranchID:     branchID,
		Date:         time.Now().UTC(),
		Items:        items,
	}
}

func NewSupplierReceiptCreateRequest(stocks ...model.SupplierStockInput) model.SupplierReceiptCreateRequest {
	if len(stocks) == 0 {
		stocks = []model.SupplierStockInput{
			{ProductCode: "RICE-25", Quantity: 10, Price: 1100},
		}
	}
	return model.SupplierReceiptCreateRequest{
		SupplierName:   "Golden Harvest Trading",
		DeliveryNumber: "DN-1001",
		Stocks:         stocks,
	}
}

func NewDeliveryReceiptCreateRequest(items ...model.DeliveryItemInput) model.DeliveryReceiptCreateRequest {
	if len(items) == 0 {
		items = []model.DeliveryItemInput{
			{ProductCode: "RICE-25", Quantity: 5},
		}
	}
	return model.DeliveryReceiptCreateRequest{
		DeliveryNumber: "DL-2001",
		DeliveredBy:    "Main Warehouse",
		Date:           time.Now().UTC(),
		Items:          items,
	}
}

func NewRemittanceCreateRequest(branchID int64) model.RemittanceCreateRequest {
	now := time.Now().UTC()
	return model.RemittanceCreateRequest{
		DateStart:  now.Add(-24 * time.Hour),
		DateEnd:    now,
		BranchID:   branchID,
		TotalSales: 5000,
		CashBreakdown: model.CashBreakdown{
			"1000": 4,
			"500":  2,
			"100":  3,
		},
		Expenses: []model.ExpenseLine{
			{Label: "fuel", Amount: 300},
		},
	}
}

func SalesOrderFilterByBranch(branchID int64) model.SalesOrderFilter {
	return model.SalesOrderFilter{
		BranchID: &branchID,
		Limit:    50,
		Offset:   0,
		Desc:     false,
	}
}

func SalesOrderFilterByTimeRange(branchID int64, from, to time.Time) model.SalesOrderFilter {
	return model.SalesOrderFilter{
		BranchID: &branchID,
		From:     &from,
		To:       &to,
		Limit:    50,
		Offset:   0,
		Desc:     false,
	}
}

func ProductFilterByBranch(branchID int64) model.ProductFilter {
	return model.ProductFilter{
		BranchID: &branchID,
		Limit:    50,
		Offset:   0,
		Desc:     false,
	}
}
