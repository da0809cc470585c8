package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"assetcore/internal/apperr"
	"assetcore/internal/models"
	"assetcore/internal/store"
)

// FurnitureRepo is the persistence contract for furniture assets.
type FurnitureRepo interface {
	Create(ctx context.Context, f *models.Furniture) error
	ByID(ctx context.Context, id string) (*models.Furniture, error)
	List(ctx context.Context, skip, limit int) ([]models.Furniture, error)
	ByStatus(ctx context.Context, status string) ([]models.Furniture, error)
	AssignedTo(ctx context.Context, accountID string) ([]models.Furniture, error)
	Save(ctx context.Context, f *models.Furniture) error
	ClaimAssignment(ctx context.Context, f *models.Furniture) (bool, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (models.AssetStats, error)
}

type FurnitureService struct {
	furniture FurnitureRepo
	accounts  AccountGetter
	audit     *AuditService
}

func NewFurnitureService(furniture FurnitureRepo, accounts AccountGetter, audit *AuditService) *FurnitureService {
	return &FurnitureService{furniture: furniture, accounts: accounts, audit: audit}
}

type FurnitureCreate struct {
	PropertyNumber string  `json:"property_number" validate:"required"`
	GSDCode        *string `json:"gsd_code"`
	ItemNumber     *string `json:"item_number"`

	FurnitureType string  `json:"furniture_type" validate:"required"`
	Description   string  `json:"description" validate:"required"`
	Brand         *string `json:"brand"`
	Material      *string `json:"material"`
	Color         *string `json:"color"`
	Dimensions    *string `json:"dimensions"`

	AcquisitionDate *time.Time `json:"acquisition_date"`
	AcquisitionCost *float64   `json:"acquisition_cost"`

	Condition string  `json:"condition"`
	Status    string  `json:"status"`
	Remarks   *string `json:"remarks"`
}

func (s *FurnitureService) Create(ctx context.Context, actor *models.Account, req FurnitureCreate) (*models.Furniture, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}
	if !models.ValidFurnitureType(req.FurnitureType) {
		return nil, invalidEnum("furniture type", models.FurnitureTypes)
	}
	if req.Condition == "" {
		req.Condition = models.DefaultCondition
	}
	if !models.ValidCondition(req.Condition) {
		return nil, invalidEnum("condition", models.Conditions)
	}
	if req.Status == "" {
		req.Status = models.StatusAvailable
	}
	if !models.ValidStatus(req.Status) {
		return nil, invalidEnum("status", models.Statuses)
	}

	now := time.Now().UTC()
	f := &models.Furniture{
		PropertyNumber:  req.PropertyNumber,
		GSDCode:         req.GSDCode,
		ItemNumber:      req.ItemNumber,
		FurnitureType:   req.FurnitureType,
		Description:     req.Description,
		Brand:           req.Brand,
		Material:        req.Material,
		Color:           req.Color,
		Dimensions:      req.Dimensions,
		AcquisitionDate: req.AcquisitionDate,
		AcquisitionCost: req.AcquisitionCost,
		Condition:       req.Condition,
		Status:          req.Status,
		Remarks:         req.Remarks,
		CreatedBy:       actor.Email,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.furniture.Create(ctx, f); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.New(apperr.Conflict, "Property number already exists")
		}
		return nil, apperr.Wrap(apperr.Internal, "Could not create furniture", err)
	}

	s.audit.Record(ctx, actor, models.AuditCreate, models.ResourceFurniture, f.ID, f.Description,
		map[string]any{
			"property_number": f.PropertyNumber,
			"furniture_type":  f.FurnitureType,
			"status":          f.Status,
		},
		nil,
		map[string]any{
			"property_number": f.PropertyNumber,
			"furniture_type":  f.FurnitureType,
			"description":     f.Description,
			"status":          f.Status,
		},
	)
	return f, nil
}

func (s *FurnitureService) Get(ctx context.Context, id string) (*models.Furniture, error) {
	f, err := s.furniture.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "Furniture not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "Could not load furniture", err)
	}
	return f, nil
}

func (s *FurnitureService) List(ctx context.Context, skip, limit int) ([]models.Furniture, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = listDefaultLimit
	}
	return s.furniture.List(ctx, skip, limit)
}

func (s *FurnitureService) ListAvailable(ctx context.Context) ([]models.Furniture, error) {
	return s.furniture.ByStatus(ctx, models.StatusAvailable)
}

func (s *FurnitureService) ListAssignedTo(ctx context.Context, accountID string) ([]models.Furniture, error) {
	return s.furniture.AssignedTo(ctx, accountID)
}

func (s *FurnitureService) Stats(ctx context.Context) (models.AssetStats, error) {
	return s.furniture.Stats(ctx)
}

type FurnitureUpdate struct {
	PropertyNumber  *string    `json:"property_number"`
	GSDCode         *string    `json:"gsd_code"`
	ItemNumber      *string    `json:"item_number"`
	FurnitureType   *string    `json:"furniture_type"`
	Description     *string    `json:"description"`
	Brand           *string    `json:"brand"`
	Material        *string    `json:"material"`
	Color           *string    `json:"color"`
	Dimensions      *string    `json:"dimensions"`
	AcquisitionDate *time.Time `json:"acquisition_date"`
	AcquisitionCost *float64   `json:"acquisition_cost"`
	Condition       *string    `json:"condition"`
	Status          *string    `json:"status"`
	Remarks         *string    `json:"remarks"`
	Location        *string    `json:"location"`
}

func (s *FurnitureService) Update(ctx context.Context, actor *models.Account, id string, req FurnitureUpdate) (*models.Furniture, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldValues := furnitureSnapshot(f)
	changes := map[string]any{}

	setStr := func(field string, dst *string, v *string) {
		if v != nil {
			*dst = *v
			changes[field] = *v
		}
	}
	setOptStr := func(field string, dst **string, v *string) {
		if v != nil {
			*dst = v
			changes[field] = *v
		}
	}
	setStr("property_number", &f.PropertyNumber, req.PropertyNumber)
	setOptStr("gsd_code", &f.GSDCode, req.GSDCode)
	setOptStr("item_number", &f.ItemNumber, req.ItemNumber)
	setStr("furniture_type", &f.FurnitureType, req.FurnitureType)
	setStr("description", &f.Description, req.Description)
	setOptStr("brand", &f.Brand, req.Brand)
	setOptStr("material", &f.Material, req.Material)
	setOptStr("color", &f.Color, req.Color)
	setOptStr("dimensions", &f.Dimensions, req.Dimensions)
	if req.AcquisitionDate != nil {
		f.AcquisitionDate = req.AcquisitionDate
		changes["acquisition_date"] = req.AcquisitionDate.Format(time.RFC3339)
	}
	if req.AcquisitionCost != nil {
		f.AcquisitionCost = req.AcquisitionCost
		changes["acquisition_cost"] = *req.AcquisitionCost
	}
	setStr("condition", &f.Condition, req.Condition)
	setStr("status", &f.Status, req.Status)
	setOptStr("remarks", &f.Remarks, req.Remarks)
	setOptStr("location", &f.Location, req.Location)

	f.UpdatedAt = time.Now().UTC()
	if err := s.furniture.Save(ctx, f); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Could not save furniture", err)
	}

	s.audit.Record(ctx, actor, models.AuditUpdate, models.ResourceFurniture, f.ID, f.Description,
		changes, oldValues, furnitureSnapshot(f))
	return f, nil
}

func (s *FurnitureService) Delete(ctx context.Context, actor *models.Account, id string) error {
	f, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if f.Status == models.StatusAssigned {
		return apperr.New(apperr.BadRequest, "Cannot delete assigned furniture. Please unassign first.")
	}
	if err := s.furniture.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.New(apperr.NotFound, "Furniture not found")
		}
		return apperr.Wrap(apperr.Internal, "Could not delete furniture", err)
	}
	s.audit.Record(ctx, actor, models.AuditDelete, models.ResourceFurniture, id,
		fmt.Sprintf("%s (%s)", f.Description, f.PropertyNumber),
		map[string]any{"deleted": true},
		furnitureSnapshot(f),
		nil,
	)
	return nil
}

type FurnitureAssign struct {
	AssignedToUserID string    `json:"assigned_to_user_id" validate:"required"`
	AssignedToName   string    `json:"assigned_to_name" validate:"required"`
	AssignedDate     time.Time `json:"assigned_date" validate:"required"`
	Location         *string   `json:"location"`
	PARNumber        *string   `json:"par_number"`
}

// Assign transitions Available -> Assigned, recording where the furniture
// went. Same conditional-claim discipline as equipment.
func (s *FurnitureService) Assign(ctx context.Context, actor *models.Account, id string, req FurnitureAssign) (*models.Furniture, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.Status == models.StatusAssigned {
		return nil, apperr.New(apperr.BadRequest, "Furniture is already assigned. Please unassign first.")
	}
	if err := checkStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.accounts.ByID(ctx, req.AssignedToUserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "Could not load account", err)
	}

	oldStatus := f.Status
	oldAssigned := f.AssignedToName

	f.AssignedToUserID = &req.AssignedToUserID
	f.AssignedToName = &req.AssignedToName
	assignedDate := req.AssignedDate
	f.AssignedDate = &assignedDate
	f.Location = req.Location
	f.PARNumber = req.PARNumber
	f.Status = models.StatusAssigned
	f.UpdatedAt = time.Now().UTC()

	claimed, err := s.furniture.ClaimAssignment(ctx, f)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Could not save furniture", err)
	}
	if !claimed {
		return nil, apperr.New(apperr.BadRequest, "Furniture is already assigned. Please unassign first.")
	}

	s.audit.Record(ctx, actor, models.AuditAssign, models.ResourceFurniture, f.ID, f.Description,
		map[string]any{
			"assigned_to": req.AssignedToName,
			"status":      models.StatusAssigned,
		},
		map[string]any{
			"status":      oldStatus,
			"assigned_to": strPtrValue(oldAssigned),
		},
		map[string]any{
			"status":      models.StatusAssigned,
			"assigned_to": req.AssignedToName,
			"location":    strPtrValue(req.Location),
		},
	)
	return f, nil
}

// Unassign transitions Assigned -> Available and clears the location; unlike
// equipment there is no previous-recipient field to preserve.
func (s *FurnitureService) Unassign(ctx context.Context, actor *models.Account, id string) (*models.Furniture, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := f.Status
	oldAssigned := f.AssignedToName

	f.AssignedToUserID = nil
	f.AssignedToName = nil
	f.AssignedDate = nil
	f.Location = nil
	f.Status = models.StatusAvailable
	f.UpdatedAt = time.Now().UTC()

	if err := s.furniture.Save(ctx, f); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Could not save furniture", err)
	}

	s.audit.Record(ctx, actor, models.AuditUnassign, models.ResourceFurniture, f.ID, f.Description,
		map[string]any{"status": models.StatusAvailable},
		map[string]any{"status": oldStatus, "assigned_to": strPtrValue(oldAssigned)},
		map[string]any{"status": models.StatusAvailable, "assigned_to": nil},
	)
	return f, nil
}

func furnitureSnapshot(f *models.Furniture) map[string]any {
	return map[string]any{
		"property_number": f.PropertyNumber,
		"furniture_type":  f.FurnitureType,
		"description":     f.Description,
		"status":          f.Status,
		"condition":       f.Condition,
	}
}
