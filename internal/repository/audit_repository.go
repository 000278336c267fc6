package repository

import (
	"time"

	"go-supermart-pos/internal/models"

	"gorm.io/gorm"
)

// AuditRepo is append-only by contract: it exposes no update or delete.
// Everything that mutates the system writes here; only the audit view
// reads it back.
type AuditRepo struct {
	DB *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *AuditRepo { return &AuditRepo{DB: db} }

// Append durably records one event. Callers that log security events
// (login, sale) must not report success until this returns.
func (r *AuditRepo) Append(entry *models.AuditLog) error {
	return r.DB.Create(entry).Error
}

// AuditFilter narrows Query. Zero values mean "no filter".
type AuditFilter struct {
	UserID uint
	Action string
	Start  time.Time
	End    time.Time
	Limit  int
}

// Query returns entries newest first. Ties on created_at fall back to
// the insert id, so entries written in order are always read in order.
func (r *AuditRepo) Query(f AuditFilter) ([]models.AuditLog, error) {
	q := r.DB.Model(&models.AuditLog{}).Preload("User")

	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if !f.Start.IsZero() {
		q = q.Where("created_at >= ?", f.Start)
	}
	if !f.End.IsZero() {
		q = q.Where("created_at <= ?", f.End)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var entries []models.AuditLog
	if err := q.Order("created_at desc, id desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
