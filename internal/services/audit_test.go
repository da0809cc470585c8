package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetcore/internal/models"
	"assetcore/internal/store"
)

func TestAuditRecordCapturesActor(t *testing.T) {
	sink := &fakeAuditSink{}
	svc := testAuditService(sink)
	admin := testAdmin()

	svc.Record(context.Background(), admin, models.AuditCreate, models.ResourceEquipment,
		"eq-1", "Dell Latitude 5440",
		map[string]any{"status": models.StatusAvailable}, nil, nil)

	require.Len(t, sink.entries, 1)
	e := sink.entries[0]
	assert.Equal(t, admin.ID, e.UserID)
	assert.Equal(t, admin.Email, e.UserEmail)
	assert.Equal(t, models.RoleAdmin, e.UserRole)
	require.NotNil(t, e.ResourceName)
	assert.Equal(t, "Dell Latitude 5440", *e.ResourceName)
	assert.False(t, e.Timestamp.IsZero())
}

func TestAuditRecordSwallowsSinkFailure(t *testing.T) {
	sink := &fakeAuditSink{failErr: errors.New("disk full")}
	svc := testAuditService(sink)

	// Must not panic or surface the error; the triggering mutation already
	// committed.
	svc.Record(context.Background(), testAdmin(), models.AuditDelete, models.ResourceEquipment,
		"eq-1", "", nil, nil, nil)
	assert.Empty(t, sink.entries)
}

func TestAuditQueryLimitClamp(t *testing.T) {
	sink := &fakeAuditSink{}
	svc := testAuditService(sink)
	admin := testAdmin()

	for i := 0; i < 150; i++ {
		svc.Record(context.Background(), admin, models.AuditUpdate, models.ResourceEquipment,
			fmt.Sprintf("eq-%d", i), "", nil, nil, nil)
	}

	out, err := svc.Query(context.Background(), store.AuditFilter{}, 0)
	require.NoError(t, err)
	assert.Len(t, out, 100)

	out, err = svc.Query(context.Background(), store.AuditFilter{}, 10)
	require.NoError(t, err)
	assert.Len(t, out, 10)

	out, err = svc.Query(context.Background(), store.AuditFilter{}, 9999)
	require.NoError(t, err)
	assert.Len(t, out, 150)
}

func TestAuditQueryFilters(t *testing.T) {
	sink := &fakeAuditSink{}
	svc := testAuditService(sink)
	admin := testAdmin()
	other := testAdmin()
	other.Email = "second@agency.gov.ph"
	ctx := context.Background()

	svc.Record(ctx, admin, models.AuditCreate, models.ResourceEquipment, "eq-1", "", nil, nil, nil)
	svc.Record(ctx, admin, models.AuditAssign, models.ResourceEquipment, "eq-1", "", nil, nil, nil)
	svc.Record(ctx, other, models.AuditCreate, models.ResourceFurniture, "fn-1", "", nil, nil, nil)

	out, err := svc.Query(ctx, store.AuditFilter{Action: models.AuditCreate}, 0)
	require.NoError(t, err)
	assert.Len(t, out, 2)

	out, err = svc.Query(ctx, store.AuditFilter{ResourceType: models.ResourceFurniture}, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "fn-1", out[0].ResourceID)

	out, err = svc.Query(ctx, store.AuditFilter{UserID: other.ID}, 0)
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestAuditResourceHistoryUppercasesType(t *testing.T) {
	sink := &fakeAuditSink{}
	svc := testAuditService(sink)
	ctx := context.Background()

	svc.Record(ctx, testAdmin(), models.AuditCreate, models.ResourceEquipment, "eq-1", "", nil, nil, nil)

	out, err := svc.ResourceHistory(ctx, "equipment", "eq-1")
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestAuditStats(t *testing.T) {
	sink := &fakeAuditSink{}
	svc := testAuditService(sink)
	ctx := context.Background()

	busy := testAdmin()
	busy.Email = "busy@agency.gov.ph"
	quiet := testAdmin()
	quiet.Email = "quiet@agency.gov.ph"

	for i := 0; i < 3; i++ {
		svc.Record(ctx, busy, models.AuditCreate, models.ResourceEquipment, fmt.Sprintf("eq-%d", i), "", nil, nil, nil)
	}
	svc.Record(ctx, busy, models.AuditAssign, models.ResourceEquipment, "eq-0", "", nil, nil, nil)
	svc.Record(ctx, quiet, models.AuditCreate, models.ResourceFurniture, "fn-1", "", nil, nil, nil)

	// One stale entry outside the window must not be counted.
	sink.entries = append(sink.entries, models.AuditEntry{
		UserEmail: "ancient@agency.gov.ph", Action: models.AuditDelete,
		ResourceType: models.ResourceEquipment,
		Timestamp:    time.Now().UTC().AddDate(0, 0, -90),
	})

	stats, err := svc.Stats(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalActions)
	assert.Equal(t, 30, stats.DateRange.Days)
	assert.Equal(t, 4, stats.ActionsBreakdown[models.AuditCreate])
	assert.Equal(t, 1, stats.ActionsBreakdown[models.AuditAssign])
	assert.Equal(t, 4, stats.ResourceTypesBreakdown[models.ResourceEquipment])
	assert.Equal(t, 1, stats.ResourceTypesBreakdown[models.ResourceFurniture])
	require.Len(t, stats.MostActiveUsers, 2)
	assert.Equal(t, UserActivity{UserEmail: "busy@agency.gov.ph", Count: 4}, stats.MostActiveUsers[0])
	assert.Equal(t, UserActivity{UserEmail: "quiet@agency.gov.ph", Count: 1}, stats.MostActiveUsers[1])
}

func TestAuditStatsClampsDays(t *testing.T) {
	sink := &fakeAuditSink{}
	svc := testAuditService(sink)

	stats, err := svc.Stats(context.Background(), -5)
	require.NoError(t, err)
	assert.Equal(t, 30, stats.DateRange.Days)

	stats, err = svc.Stats(context.Background(), 10000)
	require.NoError(t, err)
	assert.Equal(t, 365, stats.DateRange.Days)
}
