package handlers

import (
	"net/http"
	"strconv"

	"go-supermart-pos/internal/repository"

	"github.com/gin-gonic/gin"
)

type SaleRequest struct {
	Items         []repository.CartItem `json:"items" binding:"required"`
	PaymentMethod string                `json:"payment_method" binding:"required"`
	CustomerName  string                `json:"customer_name"`
	CustomerPhone string                `json:"customer_phone"`
	Notes         string                `json:"notes"`
}

// ProcessSale runs the checkout. Prices come from the catalog at
// transaction time, never from the client.
func (h *Handler) ProcessSale(c *gin.Context) {
	var req SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Validation failed: items and payment_method are required")
		return
	}

	sale, err := h.Sales.CreateSale(repository.SaleInput{
		Items:         req.Items,
		PaymentMethod: req.PaymentMethod,
		CashierID:     c.GetUint("userID"),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
	})
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, "Sale completed", gin.H{
		"id":             sale.ID,
		"receipt_number": sale.ReceiptNumber,
		"total":          sale.Total,
		"sale":           sale,
	})
}

// GetSales lists sales, newest first, optionally filtered by date
// range, payment method and cashier.
func (h *Handler) GetSales(c *gin.Context) {
	var filter repository.SaleFilter

	if s := c.Query("start_date"); s != "" {
		start, err := parseDate(s)
		if err != nil {
			badRequest(c, "start_date must be YYYY-MM-DD")
			return
		}
		filter.Start = start
	}
	if s := c.Query("end_date"); s != "" {
		end, err := parseDate(s)
		if err != nil {
			badRequest(c, "end_date must be YYYY-MM-DD")
			return
		}
		// A date-only end bound means "through the end of that day".
		filter.End = repository.EndOfDay(end)
	}
	filter.PaymentMethod = c.Query("payment_method")
	if s := c.Query("cashier_id"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			badRequest(c, "cashier_id must be numeric")
			return
		}
		filter.CashierID = uint(id)
	}

	sales, err := h.Sales.List(filter)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Sales retrieved", sales)
}
