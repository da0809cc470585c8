package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"assetcore/internal/models"
	"assetcore/internal/store"
)

// In-memory repositories for the service tests. They return copies, like the
// real store does, so mutating a returned record does not leak into storage.

type fakeAccounts struct {
	items map[string]*models.Account
}

func newFakeAccounts(accts ...*models.Account) *fakeAccounts {
	f := &fakeAccounts{items: map[string]*models.Account{}}
	for _, a := range accts {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		cp := *a
		f.items[a.ID] = &cp
	}
	return f
}

func (f *fakeAccounts) Create(_ context.Context, a *models.Account) error {
	for _, ex := range f.items {
		if strings.EqualFold(ex.Email, a.Email) {
			return store.ErrDuplicate
		}
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	cp := *a
	f.items[a.ID] = &cp
	return nil
}

func (f *fakeAccounts) ByID(_ context.Context, id string) (*models.Account, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccounts) ByEmail(_ context.Context, email string) (*models.Account, error) {
	for _, a := range f.items {
		if strings.EqualFold(a.Email, email) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeAccounts) ListPending(context.Context) ([]models.Account, error) {
	var out []models.Account
	for _, a := range f.items {
		if !a.IsApproved && a.Role == models.RoleUser {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAccounts) ListAll(context.Context) ([]models.Account, error) {
	var out []models.Account
	for _, a := range f.items {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAccounts) Save(_ context.Context, a *models.Account) error {
	if _, ok := f.items[a.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *a
	f.items[a.ID] = &cp
	return nil
}

func (f *fakeAccounts) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeEquipment struct {
	items map[string]*models.Equipment

	// beforeClaim runs at the top of ClaimAssignment; tests use it to let a
	// concurrent assign win between the service's read and its write.
	beforeClaim func()
}

func newFakeEquipment() *fakeEquipment {
	return &fakeEquipment{items: map[string]*models.Equipment{}}
}

func (f *fakeEquipment) Create(_ context.Context, e *models.Equipment) error {
	for _, ex := range f.items {
		if ex.PropertyNumber == e.PropertyNumber {
			return store.ErrDuplicate
		}
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	cp := *e
	f.items[e.ID] = &cp
	return nil
}

func (f *fakeEquipment) ByID(_ context.Context, id string) (*models.Equipment, error) {
	e, ok := f.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEquipment) List(_ context.Context, skip, limit int) ([]models.Equipment, error) {
	var out []models.Equipment
	for _, e := range f.items {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if skip >= len(out) {
		return nil, nil
	}
	out = out[skip:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeEquipment) ByStatus(_ context.Context, status string) ([]models.Equipment, error) {
	var out []models.Equipment
	for _, e := range f.items {
		if e.Status == status {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEquipment) AssignedTo(_ context.Context, accountID string) ([]models.Equipment, error) {
	var out []models.Equipment
	for _, e := range f.items {
		if e.AssignedToUserID != nil && *e.AssignedToUserID == accountID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEquipment) Save(_ context.Context, e *models.Equipment) error {
	if _, ok := f.items[e.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *e
	f.items[e.ID] = &cp
	return nil
}

// ClaimAssignment mirrors the conditional UPDATE: the write only lands when
// the stored row is not already Assigned.
func (f *fakeEquipment) ClaimAssignment(_ context.Context, e *models.Equipment) (bool, error) {
	if f.beforeClaim != nil {
		f.beforeClaim()
	}
	stored, ok := f.items[e.ID]
	if !ok || stored.Status == models.StatusAssigned {
		return false, nil
	}
	cp := *e
	f.items[e.ID] = &cp
	return true, nil
}

func (f *fakeEquipment) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeEquipment) Stats(_ context.Context) (models.AssetStats, error) {
	var st models.AssetStats
	for _, e := range f.items {
		st.Total++
		switch e.Status {
		case models.StatusAvailable:
			st.Available++
		case models.StatusAssigned:
			st.Assigned++
		case models.StatusUnderRepair:
			st.UnderRepair++
		}
	}
	return st, nil
}

type fakeFurniture struct {
	items map[string]*models.Furniture
}

func newFakeFurniture() *fakeFurniture {
	return &fakeFurniture{items: map[string]*models.Furniture{}}
}

func (f *fakeFurniture) Create(_ context.Context, fu *models.Furniture) error {
	for _, ex := range f.items {
		if ex.PropertyNumber == fu.PropertyNumber {
			return store.ErrDuplicate
		}
	}
	if fu.ID == "" {
		fu.ID = uuid.NewString()
	}
	cp := *fu
	f.items[fu.ID] = &cp
	return nil
}

func (f *fakeFurniture) ByID(_ context.Context, id string) (*models.Furniture, error) {
	fu, ok := f.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *fu
	return &cp, nil
}

func (f *fakeFurniture) List(_ context.Context, skip, limit int) ([]models.Furniture, error) {
	var out []models.Furniture
	for _, fu := range f.items {
		out = append(out, *fu)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if skip >= len(out) {
		return nil, nil
	}
	out = out[skip:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeFurniture) ByStatus(_ context.Context, status string) ([]models.Furniture, error) {
	var out []models.Furniture
	for _, fu := range f.items {
		if fu.Status == status {
			out = append(out, *fu)
		}
	}
	return out, nil
}

func (f *fakeFurniture) AssignedTo(_ context.Context, accountID string) ([]models.Furniture, error) {
	var out []models.Furniture
	for _, fu := range f.items {
		if fu.AssignedToUserID != nil && *fu.AssignedToUserID == accountID {
			out = append(out, *fu)
		}
	}
	return out, nil
}

func (f *fakeFurniture) Save(_ context.Context, fu *models.Furniture) error {
	if _, ok := f.items[fu.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *fu
	f.items[fu.ID] = &cp
	return nil
}

func (f *fakeFurniture) ClaimAssignment(_ context.Context, fu *models.Furniture) (bool, error) {
	stored, ok := f.items[fu.ID]
	if !ok || stored.Status == models.StatusAssigned {
		return false, nil
	}
	cp := *fu
	f.items[fu.ID] = &cp
	return true, nil
}

func (f *fakeFurniture) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeFurniture) Stats(_ context.Context) (models.AssetStats, error) {
	var st models.AssetStats
	for _, fu := range f.items {
		st.Total++
		switch fu.Status {
		case models.StatusAvailable:
			st.Available++
		case models.StatusAssigned:
			st.Assigned++
		case models.StatusUnderRepair:
			st.UnderRepair++
		}
	}
	return st, nil
}

type fakeAuditSink struct {
	entries []models.AuditEntry
	failErr error
}

func (f *fakeAuditSink) Create(_ context.Context, e *models.AuditEntry) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeAuditSink) Query(_ context.Context, flt store.AuditFilter, limit int) ([]models.AuditEntry, error) {
	var out []models.AuditEntry
	for _, e := range f.entries {
		if flt.Action != "" && e.Action != flt.Action {
			continue
		}
		if flt.ResourceType != "" && e.ResourceType != flt.ResourceType {
			continue
		}
		if flt.UserID != "" && e.UserID != flt.UserID {
			continue
		}
		if flt.Start != nil && e.Timestamp.Before(*flt.Start) {
			continue
		}
		if flt.End != nil && e.Timestamp.After(*flt.End) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAuditSink) ResourceHistory(_ context.Context, resourceType, resourceID string) ([]models.AuditEntry, error) {
	var out []models.AuditEntry
	for _, e := range f.entries {
		if e.ResourceType == resourceType && e.ResourceID == resourceID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (f *fakeAuditSink) Since(_ context.Context, start time.Time) ([]models.AuditEntry, error) {
	var out []models.AuditEntry
	for _, e := range f.entries {
		if !e.Timestamp.Before(start) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeAuditSink) last() models.AuditEntry {
	return f.entries[len(f.entries)-1]
}

func testAdmin() *models.Account {
	return &models.Account{
		ID:         uuid.NewString(),
		Surname:    "Admin",
		FirstName:  "System",
		Email:      "admin@agency.gov.ph",
		Role:       models.RoleAdmin,
		IsApproved: true,
		IsActive:   true,
	}
}

func testUser(email string) *models.Account {
	return &models.Account{
		ID:         uuid.NewString(),
		Surname:    "Cruz",
		FirstName:  "Juan",
		Email:      email,
		Role:       models.RoleUser,
		IsApproved: true,
		IsActive:   true,
	}
}

func testAuditService(sink *fakeAuditSink) *AuditService {
	return NewAudit(sink, zap.NewNop().Sugar())
}

func strp(s string) *string { return &s }
