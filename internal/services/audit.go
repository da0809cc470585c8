package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"assetcore/internal/models"
	"assetcore/internal/store"
)

// AuditSink is the persistence contract for audit entries.
type AuditSink interface {
	Create(ctx context.Context, e *models.AuditEntry) error
	Query(ctx context.Context, f store.AuditFilter, limit int) ([]models.AuditEntry, error)
	ResourceHistory(ctx context.Context, resourceType, resourceID string) ([]models.AuditEntry, error)
	Since(ctx context.Context, start time.Time) ([]models.AuditEntry, error)
}

const (
	auditDefaultLimit = 100
	auditMaxLimit     = 500
)

type AuditService struct {
	sink AuditSink
	lg   *zap.SugaredLogger
}

func NewAudit(sink AuditSink, lg *zap.SugaredLogger) *AuditService {
	return &AuditService{sink: sink, lg: lg}
}

// Record appends one audit entry, capturing the actor by value so the entry
// stays accurate if the account is later edited. Write failures are reported
// and swallowed: the mutation that triggered the entry has already been
// persisted and must not be rolled back or failed for a lost trail row.
func (s *AuditService) Record(ctx context.Context, actor *models.Account, action, resourceType, resourceID, resourceName string, changes, oldValues, newValues map[string]any) {
	entry := &models.AuditEntry{
		UserID:       actor.ID,
		UserEmail:    actor.Email,
		UserRole:     actor.Role,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Changes:      datatypes.JSONMap(changes),
		OldValues:    datatypes.JSONMap(oldValues),
		NewValues:    datatypes.JSONMap(newValues),
		Timestamp:    time.Now().UTC(),
	}
	if resourceName != "" {
		entry.ResourceName = &resourceName
	}
	if entry.Changes == nil {
		entry.Changes = datatypes.JSONMap{}
	}
	if err := s.sink.Create(ctx, entry); err != nil {
		s.lg.Errorw("audit write failed",
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
			"error", err,
		)
	}
}

func (s *AuditService) Query(ctx context.Context, f store.AuditFilter, limit int) ([]models.AuditEntry, error) {
	if limit <= 0 {
		limit = auditDefaultLimit
	}
	if limit > auditMaxLimit {
		limit = auditMaxLimit
	}
	return s.sink.Query(ctx, f, limit)
}

func (s *AuditService) ResourceHistory(ctx context.Context, resourceType, resourceID string) ([]models.AuditEntry, error) {
	return s.sink.ResourceHistory(ctx, strings.ToUpper(resourceType), resourceID)
}

type AuditDateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Days  int       `json:"days"`
}

type UserActivity struct {
	UserEmail string `json:"user_email"`
	Count     int    `json:"count"`
}

type AuditStats struct {
	TotalActions           int            `json:"total_actions"`
	DateRange              AuditDateRange `json:"date_range"`
	ActionsBreakdown       map[string]int `json:"actions_breakdown"`
	ResourceTypesBreakdown map[string]int `json:"resource_types_breakdown"`
	MostActiveUsers        []UserActivity `json:"most_active_users"`
}

// Stats scans every entry inside the window; there is no pre-aggregation.
func (s *AuditService) Stats(ctx context.Context, days int) (AuditStats, error) {
	if days < 1 {
		days = 30
	}
	if days > 365 {
		days = 365
	}
	now := time.Now().UTC()
	start := now.AddDate(0, 0, -days)

	entries, err := s.sink.Since(ctx, start)
	if err != nil {
		return AuditStats{}, err
	}

	stats := AuditStats{
		TotalActions:           len(entries),
		DateRange:              AuditDateRange{Start: start, End: now, Days: days},
		ActionsBreakdown:       map[string]int{},
		ResourceTypesBreakdown: map[string]int{},
	}
	byUser := map[string]int{}
	for _, e := range entries {
		stats.ActionsBreakdown[e.Action]++
		stats.ResourceTypesBreakdown[e.ResourceType]++
		byUser[e.UserEmail]++
	}
	for email, n := range byUser {
		stats.MostActiveUsers = append(stats.MostActiveUsers, UserActivity{UserEmail: email, Count: n})
	}
	sort.Slice(stats.MostActiveUsers, func(i, j int) bool {
		a, b := stats.MostActiveUsers[i], stats.MostActiveUsers[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.UserEmail < b.UserEmail
	})
	if len(stats.MostActiveUsers) > 10 {
		stats.MostActiveUsers = stats.MostActiveUsers[:10]
	}
	return stats, nil
}
