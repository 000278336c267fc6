package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-supermart-pos/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleRepo is the transaction engine. CreateSale is the only write path
// that touches stock, the sales tables and the audit log together.
type SaleRepo struct {
	DB *gorm.DB
}

func NewSaleRepo(db *gorm.DB) *SaleRepo { return &SaleRepo{DB: db} }

// CartItem is one line of a submitted cart. Prices are deliberately not
// part of the input; they are read from the catalog at sale time.
type CartItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// SaleInput is everything CreateSale needs besides the catalog state.
type SaleInput struct {
	Items         []CartItem
	PaymentMethod string
	CashierID     uint
	CustomerName  string
	CustomerPhone string
	Notes         string
}

// Validate checks the cart before any mutation begins, so a bad request
// can never leave partial effects.
func (in SaleInput) Validate() error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: cart is empty", ErrValidation)
	}
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
		}
	}
	if !models.ValidPaymentMethod(in.PaymentMethod) {
		return fmt.Errorf("%w: unknown payment method %q", ErrValidation, in.PaymentMethod)
	}
	if in.PaymentMethod == models.PaymentDebt {
		if strings.TrimSpace(in.CustomerName) == "" || strings.TrimSpace(in.CustomerPhone) == "" {
			return fmt.Errorf("%w: debt sales require customer name and phone", ErrValidation)
		}
	}
	return nil
}

// CreateSale runs the whole checkout as one transaction: every line's
// stock decrement, the sale header with its snapshotted items, and the
// SALE_COMPLETED audit row commit together or not at all. Any line that
// cannot be fully satisfied aborts the sale - no partial fulfillment.
func (r *SaleRepo) CreateSale(in SaleInput) (*models.Sale, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var sale *models.Sale
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		items := make([]models.SaleItem, 0, len(in.Items))

		for _, line := range in.Items {
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %d: %w", line.ProductID, ErrNotFound)
				}
				return err
			}

			if err := decrementStock(tx, product.ID, line.Quantity); err != nil {
				if errors.Is(err, ErrOutOfStock) {
					return fmt.Errorf("%s: %w", product.Name, ErrOutOfStock)
				}
				return err
			}

			// Snapshot name and price so the receipt survives later
			// edits or deletion of the product.
			lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			total = total.Add(lineTotal)
			items = append(items, models.SaleItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   product.Price,
			})
		}

		s := models.Sale{
			ReceiptNumber: newReceiptNumber(),
			CashierID:     in.CashierID,
			Total:         total,
			PaymentMethod: in.PaymentMethod,
			CustomerName:  strings.TrimSpace(in.CustomerName),
			CustomerPhone: strings.TrimSpace(in.CustomerPhone),
			Notes:         in.Notes,
			CreatedAt:     time.Now(),
			Items:         items,
		}

		if err := tx.Create(&s).Error; err != nil {
			// Receipt numbers collide only if two sales land on the
			// same millisecond with the same random suffix. One fresh
			// draw is plenty.
			if !isUniqueViolation(err) {
				return err
			}
			s.ReceiptNumber = newReceiptNumber()
			if err := tx.Create(&s).Error; err != nil {
				return err
			}
		}

		after, _ := json.Marshal(map[string]interface{}{
			"receipt_number": s.ReceiptNumber,
			"total":          s.Total,
			"items":          len(s.Items),
		})
		audit := models.AuditLog{
			UserID:    in.CashierID,
			Action:    models.AuditSaleCompleted,
			TableName: "sales",
			RecordID:  s.ID,
			NewValues: string(after),
		}
		if err := tx.Create(&audit).Error; err != nil {
			return err
		}

		sale = &s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// SaleFilter narrows List. Zero values mean "no filter".
type SaleFilter struct {
	Start         time.Time
	End           time.Time
	PaymentMethod string
	CashierID     uint
}

// List returns sales newest first, with line items and cashier loaded.
func (r *SaleRepo) List(f SaleFilter) ([]models.Sale, error) {
	q := r.DB.Model(&models.Sale{}).
		Preload("Items").
		Preload("Cashier")

	if !f.Start.IsZero() {
		q = q.Where("created_at >= ?", f.Start)
	}
	if !f.End.IsZero() {
		q = q.Where("created_at <= ?", f.End)
	}
	if f.PaymentMethod != "" {
		q = q.Where("payment_method = ?", f.PaymentMethod)
	}
	if f.CashierID != 0 {
		q = q.Where("cashier_id = ?", f.CashierID)
	}

	var sales []models.Sale
	if err := q.Order("created_at desc").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// newReceiptNumber keeps the human-facing RCP-<timestamp>-<suffix>
// shape but draws the suffix from a UUID instead of a 3-digit random.
// The column's unique index backstops the remaining collision odds.
func newReceiptNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("RCP-%d-%s", time.Now().UnixMilli(), suffix)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
