package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"assetcore/internal/models"
)

// AuditFilter is the typed predicate for audit queries; zero-valued fields
// are not applied.
type AuditFilter struct {
	Action       string
	ResourceType string
	UserID       string
	Start        *time.Time
	End          *time.Time
}

type AuditStore struct {
	db *gorm.DB
}

func NewAudit(db *gorm.DB) *AuditStore { return &AuditStore{db: db} }

// Create appends one entry. Nothing in this package updates or deletes rows.
func (s *AuditStore) Create(ctx context.Context, e *models.AuditEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	return translate(s.db.WithContext(ctx).Create(e).Error)
}

func (s *AuditStore) Query(ctx context.Context, f AuditFilter, limit int) ([]models.AuditEntry, error) {
	db := s.db.WithContext(ctx).Model(&models.AuditEntry{})
	if f.Action != "" {
		db = db.Where("action = ?", f.Action)
	}
	if f.ResourceType != "" {
		db = db.Where("resource_type = ?", f.ResourceType)
	}
	if f.UserID != "" {
		db = db.Where("user_id = ?", f.UserID)
	}
	if f.Start != nil {
		db = db.Where("timestamp >= ?", *f.Start)
	}
	if f.End != nil {
		db = db.Where("timestamp <= ?", *f.End)
	}
	var out []models.AuditEntry
	err := db.Order("timestamp desc").Limit(limit).Find(&out).Error
	return out, translate(err)
}

func (s *AuditStore) ResourceHistory(ctx context.Context, resourceType, resourceID string) ([]models.AuditEntry, error) {
	var out []models.AuditEntry
	err := s.db.WithContext(ctx).
		Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("timestamp desc").
		Find(&out).Error
	return out, translate(err)
}

func (s *AuditStore) Since(ctx context.Context, start time.Time) ([]models.AuditEntry, error) {
	var out []models.AuditEntry
	err := s.db.WithContext(ctx).Where("timestamp >= ?", start).Find(&out).Error
	return out, translate(err)
}
