package repository_test

import (
	"strings"
	"sync"
	"testing"

	"go-supermart-pos/internal/models"
	"go-supermart-pos/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSaleComputesTotalAndSnapshots(t *testing.T) {
	db := newTestDB(t)
	sales := repository.NewSaleRepo(db)
	products := repository.NewProductRepo(db)
	cashier := seedCashier(t, db)

	a := seedProduct(t, db, "Apples", "3.99", 10, 2)
	b := seedProduct(t, db, "Bananas", "2.49", 5, 2)

	sale, err := sales.CreateSale(repository.SaleInput{
		Items: []repository.CartItem{
			{ProductID: a.ID, Quantity: 2},
			{ProductID: b.ID, Quantity: 1},
		},
		PaymentMethod: models.PaymentCash,
		CashierID:     cashier.ID,
	})
	require.NoError(t, err)

	// 2 x 3.99 + 1 x 2.49 = 10.47, exactly.
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("10.47")),
		"got total %s", sale.Total)
	assert.True(t, strings.HasPrefix(sale.ReceiptNumber, "RCP-"))
	require.Len(t, sale.Items, 2)
	assert.Equal(t, "Apples", sale.Items[0].ProductName)
	assert.True(t, sale.Items[0].UnitPrice.Equal(decimal.RequireFromString("3.99")))
	assert.Equal(t, "Bananas", sale.Items[1].ProductName)

	// Stock went down by the sold quantities.
	gotA, err := products.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, gotA.Stock)
	gotB, err := products.Get(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, gotB.Stock)

	// The audit trail has the sale, in the same commit.
	audit := repository.NewAuditRepo(db)
	entries, err := audit.Query(repository.AuditFilter{Action: models.AuditSaleCompleted})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, cashier.ID, entries[0].UserID)
	assert.Equal(t, sale.ID, entries[0].RecordID)
	assert.Contains(t, entries[0].NewValues, sale.ReceiptNumber)
}

func TestCreateSaleOutOfStockRollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	sales := repository.NewSaleRepo(db)
	products := repository.NewProductRepo(db)
	cashier := seedCashier(t, db)

	a := seedProduct(t, db, "Apples", "3.99", 10, 2)
	b := seedProduct(t, db, "Bananas", "2.49", 2, 2)

	// First line is satisfiable, second is not: no partial fulfillment.
	_, err := sales.CreateSale(repository.SaleInput{
		Items: []repository.CartItem{
			{ProductID: a.ID, Quantity: 1},
			{ProductID: b.ID, Quantity: 5},
		},
		PaymentMethod: models.PaymentCash,
		CashierID:     cashier.ID,
	})
	assert.ErrorIs(t, err, repository.ErrOutOfStock)

	gotA, err := products.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, gotA.Stock, "first line's decrement must roll back")
	gotB, err := products.Get(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, gotB.Stock)

	var saleCount, auditCount int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&saleCount).Error)
	require.NoError(t, db.Model(&models.AuditLog{}).Where("action = ?", models.AuditSaleCompleted).Count(&auditCount).Error)
	assert.Zero(t, saleCount)
	assert.Zero(t, auditCount)
}

func TestCreateSaleUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	sales := repository.NewSaleRepo(db)
	cashier := seedCashier(t, db)

	_, err := sales.CreateSale(repository.SaleInput{
		Items:         []repository.CartItem{{ProductID: 4242, Quantity: 1}},
		PaymentMethod: models.PaymentCash,
		CashierID:     cashier.ID,
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateSaleValidation(t *testing.T) {
	db := newTestDB(t)
	sales := repository.NewSaleRepo(db)
	products := repository.NewProductRepo(db)
	cashier := seedCashier(t, db)
	p := seedProduct(t, db, "Apples", "3.99", 10, 2)

	cases := []struct {
		name  string
		input repository.SaleInput
	}{
		{"empty cart", repository.SaleInput{
			PaymentMethod: models.PaymentCash, CashierID: cashier.ID,
		}},
		{"zero quantity", repository.SaleInput{
			Items:         []repository.CartItem{{ProductID: p.ID, Quantity: 0}},
			PaymentMethod: models.PaymentCash, CashierID: cashier.ID,
		}},
		{"unknown payment method", repository.SaleInput{
			Items:         []repository.CartItem{{ProductID: p.ID, Quantity: 1}},
			PaymentMethod: "bitcoin", CashierID: cashier.ID,
		}},
		{"debt without phone", repository.SaleInput{
			Items:         []repository.CartItem{{ProductID: p.ID, Quantity: 1}},
			PaymentMethod: models.PaymentDebt, CashierID: cashier.ID,
			CustomerName: "Jane Doe",
		}},
		{"debt without name", repository.SaleInput{
			Items:         []repository.CartItem{{ProductID: p.ID, Quantity: 1}},
			PaymentMethod: models.PaymentDebt, CashierID: cashier.ID,
			CustomerPhone: "0788000000",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sales.CreateSale(tc.input)
			assert.ErrorIs(t, err, repository.ErrValidation)

			// Validation happens before any mutation.
			got, err := products.Get(p.ID)
			require.NoError(t, err)
			assert.Equal(t, 10, got.Stock)
		})
	}
}

func TestCreateSaleDebtWithCustomer(t *testing.T) {
	db := newTestDB(t)
	sales := repository.NewSaleRepo(db)
	cashier := seedCashier(t, db)
	p := seedProduct(t, db, "Flour", "5.00", 10, 2)

	sale, err := sales.CreateSale(repository.SaleInput{
		Items:         []repository.CartItem{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: models.PaymentDebt,
		CashierID:     cashier.ID,
		CustomerName:  "Jane Doe",
		CustomerPhone: "0788000000",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", sale.CustomerName)
	assert.Equal(t, "0788000000", sale.CustomerPhone)
}

func TestConcurrentSalesNeverOversell(t *testing.T) {
	db := newTestDB(t)
	sales := repository.NewSaleRepo(db)
	products := repository.NewProductRepo(db)
	cashier := seedCashier(t, db)

	lastUnit := seedProduct(t, db, "Last Unit", "9.99", 1, 0)

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = sales.CreateSale(repository.SaleInput{
				Items:         []repository.CartItem{{ProductID: lastUnit.ID, Quantity: 1}},
				PaymentMethod: models.PaymentCash,
				CashierID:     cashier.ID,
			})
		}(i)
	}
	wg.Wait()

	var succeeded, outOfStock int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			assert.ErrorIs(t, err, repository.ErrOutOfStock)
			outOfStock++
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one sale may take the last unit")
	assert.Equal(t, n-1, outOfStock)

	got, err := products.Get(lastUnit.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock, "stock must never go negative")
}

func TestSaleItemsSurviveProductDelete(t *testing.T) {
	db := newTestDB(t)
	sales := repository.NewSaleRepo(db)
	products := repository.NewProductRepo(db)
	cashier := seedCashier(t, db)
	p := seedProduct(t, db, "Seasonal Item", "4.25", 3, 1)

	created, err := sales.CreateSale(repository.SaleInput{
		Items:         []repository.CartItem{{ProductID: p.ID, Quantity: 2}},
		PaymentMethod: models.PaymentCard,
		CashierID:     cashier.ID,
	})
	require.NoError(t, err)

	require.NoError(t, products.Delete(p.ID))

	listed, err := sales.List(repository.SaleFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Len(t, listed[0].Items, 1)
	assert.Equal(t, "Seasonal Item", listed[0].Items[0].ProductName)
	assert.True(t, listed[0].Items[0].UnitPrice.Equal(decimal.RequireFromString("4.25")))
	assert.Equal(t, created.ReceiptNumber, listed[0].ReceiptNumber)
}

func TestListSalesFilters(t *testing.T) {
	db := newTestDB(t)
	sales := repository.NewSaleRepo(db)
	cashier := seedCashier(t, db)
	other := seedCashierNamed(t, db, "Second Cashier", "second@shop.test")
	p := seedProduct(t, db, "Staple", "1.00", 100, 5)

	mk := func(cashierID uint, method string) {
		_, err := sales.CreateSale(repository.SaleInput{
			Items:         []repository.CartItem{{ProductID: p.ID, Quantity: 1}},
			PaymentMethod: method,
			CashierID:     cashierID,
		})
		require.NoError(t, err)
	}
	mk(cashier.ID, models.PaymentCash)
	mk(cashier.ID, models.PaymentCard)
	mk(other.ID, models.PaymentCash)

	byMethod, err := sales.List(repository.SaleFilter{PaymentMethod: models.PaymentCash})
	require.NoError(t, err)
	assert.Len(t, byMethod, 2)

	byCashier, err := sales.List(repository.SaleFilter{CashierID: other.ID})
	require.NoError(t, err)
	require.Len(t, byCashier, 1)
	assert.Equal(t, other.ID, byCashier[0].CashierID)
	assert.Equal(t, "Second Cashier", byCashier[0].Cashier.Name)
}
