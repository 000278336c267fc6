package handlers

import (
	"errors"
	"net/http"
	"os"
	"time"

	"go-supermart-pos/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler bundles the repositories behind the HTTP surface.
type Handler struct {
	Users     *repository.UserRepo
	Products  *repository.ProductRepo
	Sales     *repository.SaleRepo
	Audit     *repository.AuditRepo
	Dashboard *repository.DashboardRepo
}

func New(db *gorm.DB) *Handler {
	return &Handler{
		Users:     repository.NewUserRepo(db),
		Products:  repository.NewProductRepo(db),
		Sales:     repository.NewSaleRepo(db),
		Audit:     repository.NewAuditRepo(db),
		Dashboard: repository.NewDashboardRepo(db),
	}
}

// respond wraps every success in the {success, message, data} envelope
// the frontend expects.
func respond(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// fail maps repository sentinels onto HTTP statuses. Anything
// unrecognized is a storage/internal failure: a generic 500, with
// detail only outside production.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrValidation),
		errors.Is(err, repository.ErrDuplicateEmail),
		errors.Is(err, repository.ErrOutOfStock):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, repository.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	default:
		body := gin.H{"success": false, "message": "Internal server error"}
		if os.Getenv("APP_ENV") != "production" {
			body["errors"] = []string{err.Error()}
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}

// parseDate accepts the date-only form the UI sends as well as full
// RFC 3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
