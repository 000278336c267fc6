package repository_test

import (
	"path/filepath"
	"testing"
	"time"

	"go-supermart-pos/internal/database"
	"go-supermart-pos/internal/models"
	"go-supermart-pos/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a throwaway file-backed store so concurrent
// transactions behave like production, not like :memory:.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "pos_test.db"))
	require.NoError(t, err)
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string, stock, minStock int) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:       name,
		Barcode:    "BC-" + name,
		Category:   "Grocery",
		Price:      decimal.RequireFromString(price),
		Stock:      stock,
		MinStock:   minStock,
		ExpiryDate: time.Now().AddDate(1, 0, 0),
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedCashier(t *testing.T, db *gorm.DB) *models.User {
	return seedCashierNamed(t, db, "Test Cashier", "cashier@shop.test")
}

func seedCashierNamed(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()
	users := repository.NewUserRepo(db)
	u, err := users.Register(name, email, "secret123", models.RoleCashier)
	require.NoError(t, err)
	return u
}
