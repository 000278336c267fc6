package repository

import (
	"time"

	"go-supermart-pos/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardRepo is the read-only reporting side: plain aggregations
// over sales and the catalog, recomputed on every call.
type DashboardRepo struct {
	DB *gorm.DB
}

func NewDashboardRepo(db *gorm.DB) *DashboardRepo { return &DashboardRepo{DB: db} }

// Stats is the dashboard headline block.
type Stats struct {
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalProducts int64           `json:"total_products"`
	LowStockItems int64           `json:"low_stock_items"`
	ExpiringItems int64           `json:"expiring_items"`
	TodaySales    decimal.Decimal `json:"today_sales"`
	WeekSales     decimal.Decimal `json:"week_sales"`
	MonthSales    decimal.Decimal `json:"month_sales"`
}

// PaymentBreakdown is one row of the sales-by-payment-method report.
type PaymentBreakdown struct {
	PaymentMethod string          `json:"payment_method"`
	Count         int64           `json:"count"`
	Total         decimal.Decimal `json:"total"`
}

// Stats computes the dashboard numbers as of now. Today, this week and
// this month are calendar buckets in the server's timezone (weeks start
// Monday), not rolling windows.
func (r *DashboardRepo) Stats(now time.Time) (*Stats, error) {
	var s Stats
	var err error

	if s.TotalSales, err = r.revenueSince(time.Time{}); err != nil {
		return nil, err
	}
	if err = r.DB.Model(&models.Product{}).Count(&s.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err = r.DB.Model(&models.Product{}).Scopes(lowStock).Count(&s.LowStockItems).Error; err != nil {
		return nil, err
	}
	if err = r.DB.Model(&models.Product{}).Scopes(expiringSoon(now)).Count(&s.ExpiringItems).Error; err != nil {
		return nil, err
	}

	day := StartOfDay(now)
	if s.TodaySales, err = r.revenueSince(day); err != nil {
		return nil, err
	}
	if s.WeekSales, err = r.revenueSince(StartOfWeek(now)); err != nil {
		return nil, err
	}
	if s.MonthSales, err = r.revenueSince(StartOfMonth(now)); err != nil {
		return nil, err
	}
	return &s, nil
}

// revenueSince sums sale totals from t onward; a zero t means lifetime.
func (r *DashboardRepo) revenueSince(t time.Time) (decimal.Decimal, error) {
	q := r.DB.Model(&models.Sale{}).Select("COALESCE(SUM(total), 0)")
	if !t.IsZero() {
		q = q.Where("created_at >= ?", t)
	}
	var total decimal.Decimal
	err := q.Scan(&total).Error
	return total, err
}

// RecentSales returns the n newest sales with items and cashier loaded.
func (r *DashboardRepo) RecentSales(n int) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.DB.Preload("Items").Preload("Cashier").
		Order("created_at desc").
		Limit(n).
		Find(&sales).Error
	return sales, err
}

// SalesByPayment groups sales over a trailing window of whole days.
func (r *DashboardRepo) SalesByPayment(now time.Time, days int) ([]PaymentBreakdown, error) {
	since := now.AddDate(0, 0, -days)

	var rows []PaymentBreakdown
	err := r.DB.Model(&models.Sale{}).
		Select("payment_method, COUNT(*) as count, COALESCE(SUM(total), 0) as total").
		Where("created_at >= ?", since).
		Group("payment_method").
		Order("total desc").
		Scan(&rows).Error
	return rows, err
}

// SalesReportResult summarizes a date range.
type SalesReportResult struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalCount   int64           `json:"total_count"`
}

// SalesReport sums revenue and counts sales within [start, end].
func (r *DashboardRepo) SalesReport(start, end time.Time) (*SalesReportResult, error) {
	var result SalesReportResult

	err := r.DB.Model(&models.Sale{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(total), 0)").
		Scan(&result.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	err = r.DB.Model(&models.Sale{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&result.TotalCount).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last instant of t's calendar day, so a
// date-only end bound means "through the end of that day".
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Nanosecond)
}

// StartOfWeek returns the preceding Monday midnight.
func StartOfWeek(t time.Time) time.Time {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday
	}
	return StartOfDay(t).AddDate(0, 0, -offset)
}

// StartOfMonth returns the first of the month, midnight.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
