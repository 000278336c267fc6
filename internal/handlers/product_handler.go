package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"go-supermart-pos/internal/models"
	"go-supermart-pos/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Barcode     string          `json:"barcode"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"min_stock"`
	ExpiryDate  string          `json:"expiry_date"`
	Supplier    string          `json:"supplier"`
	Description string          `json:"description"`
}

// updatableFields keeps partial updates from writing arbitrary columns.
var updatableFields = map[string]bool{
	"name": true, "barcode": true, "category": true, "price": true,
	"stock": true, "min_stock": true, "expiry_date": true,
	"supplier": true, "description": true,
}

// GetProducts lists the catalog, optionally narrowed by ?search= and
// ?category=.
func (h *Handler) GetProducts(c *gin.Context) {
	products, err := h.Products.List(repository.ProductFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	})
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Products retrieved", products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid product ID")
		return
	}
	product, err := h.Products.Get(uint(id))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Product retrieved", product)
}

func (h *Handler) AddProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Validation failed: product name is required")
		return
	}
	if req.Price.IsNegative() || req.Stock < 0 || req.MinStock < 0 {
		badRequest(c, "Price, stock and min_stock must not be negative")
		return
	}

	product := models.Product{
		Name:        req.Name,
		Barcode:     req.Barcode,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
		Supplier:    req.Supplier,
		Description: req.Description,
	}
	if req.ExpiryDate != "" {
		expiry, err := parseDate(req.ExpiryDate)
		if err != nil {
			badRequest(c, "expiry_date must be YYYY-MM-DD")
			return
		}
		product.ExpiryDate = expiry
	}

	if err := h.Products.Create(&product); err != nil {
		fail(c, err)
		return
	}

	h.auditChange(c, models.AuditProductCreated, product.ID, nil, &product)
	respond(c, http.StatusCreated, "Product created", product)
}

// UpdateProduct applies a partial update: only the fields present in
// the request body change.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid product ID")
		return
	}

	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	fields := make(map[string]interface{}, len(updateData))
	for k, v := range updateData {
		if updatableFields[k] {
			fields[k] = v
		}
	}
	if raw, ok := fields["expiry_date"].(string); ok {
		expiry, err := parseDate(raw)
		if err != nil {
			badRequest(c, "expiry_date must be YYYY-MM-DD")
			return
		}
		fields["expiry_date"] = expiry
	}
	// Partial updates enforce the same bounds as creation: a PUT must
	// not be able to drive price or stock negative.
	if raw, ok := fields["price"]; ok {
		price, err := toDecimal(raw)
		if err != nil {
			badRequest(c, "price must be a number")
			return
		}
		if price.IsNegative() {
			badRequest(c, "Price, stock and min_stock must not be negative")
			return
		}
		fields["price"] = price
	}
	for _, k := range []string{"stock", "min_stock"} {
		if raw, ok := fields[k]; ok {
			n, isNum := raw.(float64)
			if !isNum || n != float64(int(n)) {
				badRequest(c, k+" must be an integer")
				return
			}
			if n < 0 {
				badRequest(c, "Price, stock and min_stock must not be negative")
				return
			}
		}
	}

	before, err := h.Products.Get(uint(id))
	if err != nil {
		fail(c, err)
		return
	}
	beforeCopy := *before

	product, err := h.Products.Update(uint(id), fields)
	if err != nil {
		fail(c, err)
		return
	}

	h.auditChange(c, models.AuditProductUpdated, product.ID, &beforeCopy, product)
	respond(c, http.StatusOK, "Product updated", product)
}

// DeleteProduct removes the catalog row. Past sale items keep their
// snapshotted name and price, so receipts are unaffected.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid product ID")
		return
	}

	before, err := h.Products.Get(uint(id))
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.Products.Delete(uint(id)); err != nil {
		fail(c, err)
		return
	}

	h.auditChange(c, models.AuditProductDeleted, uint(id), before, nil)
	respond(c, http.StatusOK, "Product deleted", nil)
}

// toDecimal accepts a price either as a JSON number or as the quoted
// string form decimal values marshal to.
func toDecimal(v interface{}) (decimal.Decimal, error) {
	switch raw := v.(type) {
	case float64:
		return decimal.NewFromFloat(raw), nil
	case string:
		return decimal.NewFromString(raw)
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported price type %T", v)
	}
}

// auditChange records an inventory mutation with before/after
// snapshots. Best-effort: the mutation itself has already committed.
func (h *Handler) auditChange(c *gin.Context, action string, recordID uint, before, after *models.Product) {
	entry := models.AuditLog{
		UserID:    c.GetUint("userID"),
		Action:    action,
		TableName: "products",
		RecordID:  recordID,
	}
	if before != nil {
		b, _ := json.Marshal(before)
		entry.OldValues = string(b)
	}
	if after != nil {
		a, _ := json.Marshal(after)
		entry.NewValues = string(a)
	}
	_ = h.Audit.Append(&entry)
}
