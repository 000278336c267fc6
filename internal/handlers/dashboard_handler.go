package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats serves the headline numbers. Today/week/month are
// calendar buckets in server-local time.
func (h *Handler) GetDashboardStats(c *gin.Context) {
	stats, err := h.Dashboard.Stats(time.Now())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Dashboard stats retrieved", stats)
}

func (h *Handler) GetRecentSales(c *gin.Context) {
	limit := queryInt(c, "limit", 10)
	sales, err := h.Dashboard.RecentSales(limit)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Recent sales retrieved", sales)
}

func (h *Handler) GetLowStock(c *gin.Context) {
	products, err := h.Products.LowStock()
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Low stock products retrieved", products)
}

func (h *Handler) GetExpiring(c *gin.Context) {
	products, err := h.Products.ExpiringSoon(time.Now())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Expiring products retrieved", products)
}

// GetSalesByPayment breaks down sales by payment method over a
// trailing ?days= window (default 7).
func (h *Handler) GetSalesByPayment(c *gin.Context) {
	days := queryInt(c, "days", 7)
	rows, err := h.Dashboard.SalesByPayment(time.Now(), days)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Sales by payment method retrieved", rows)
}

func queryInt(c *gin.Context, name string, def int) int {
	if s := c.Query(name); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}
