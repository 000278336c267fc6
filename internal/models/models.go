package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles an actor can hold. Role is fixed at registration.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
)

// Payment methods accepted at the till.
const (
	PaymentCash        = "cash"
	PaymentCard        = "card"
	PaymentMomo        = "momo"
	PaymentAirtelMoney = "airtel_money"
	PaymentDebt        = "debt" // requires customer name + phone for follow-up
)

// User - The person operating the system
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string    `json:"-"` // Never return this in JSON
	Role         string    `gorm:"size:20" json:"role"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Product - The Inventory
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Barcode     string          `gorm:"index;size:64" json:"barcode"`
	Category    string          `gorm:"size:100" json:"category"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"min_stock"`
	ExpiryDate  time.Time       `json:"expiry_date"`
	Supplier    string          `gorm:"size:255" json:"supplier"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Sale - The Transaction Header. Immutable once created.
type Sale struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ReceiptNumber string          `gorm:"uniqueIndex;size:64" json:"receipt_number"`
	CashierID     uint            `json:"cashier_id"`
	Cashier       User            `json:"cashier"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2)" json:"total"`
	PaymentMethod string          `gorm:"size:20" json:"payment_method"`
	CustomerName  string          `gorm:"size:100" json:"customer_name,omitempty"`
	CustomerPhone string          `gorm:"size:30" json:"customer_phone,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []SaleItem      `gorm:"foreignKey:SaleID" json:"items"`
}

// SaleItem - One cart line. Name and price are snapshotted at sale time
// so receipts survive later product edits and deletes.
type SaleItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	SaleID      uint            `json:"sale_id"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `gorm:"size:255" json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2)" json:"unit_price"`
}

// AuditLog - Append-only trail of security and business events.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	User      User      `json:"user"`
	Action    string    `gorm:"index;size:50" json:"action"`
	TableName string    `gorm:"size:100" json:"table_name,omitempty"`
	RecordID  uint      `json:"record_id,omitempty"`
	OldValues string    `json:"old_values,omitempty"`
	NewValues string    `json:"new_values,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Audit action tags.
const (
	AuditLogin           = "LOGIN"
	AuditLogout          = "LOGOUT"
	AuditSaleCompleted   = "SALE_COMPLETED"
	AuditProductCreated  = "PRODUCT_CREATED"
	AuditProductUpdated  = "PRODUCT_UPDATED"
	AuditProductDeleted  = "PRODUCT_DELETED"
	AuditUserRegistered  = "USER_REGISTERED"
	AuditUserDeactivated = "USER_DEACTIVATED"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMomo, PaymentAirtelMoney, PaymentDebt:
		return true
	}
	return false
}

// ValidRole reports whether r is one of the three allowed roles.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleManager || r == RoleCashier
}
