package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"assetcore/internal/apperr"
	"assetcore/internal/models"
	"assetcore/internal/store"
)

const listDefaultLimit = 100

// EquipmentRepo is the persistence contract for equipment assets.
type EquipmentRepo interface {
	Create(ctx context.Context, e *models.Equipment) error
	ByID(ctx context.Context, id string) (*models.Equipment, error)
	List(ctx context.Context, skip, limit int) ([]models.Equipment, error)
	ByStatus(ctx context.Context, status string) ([]models.Equipment, error)
	AssignedTo(ctx context.Context, accountID string) ([]models.Equipment, error)
	Save(ctx context.Context, e *models.Equipment) error
	ClaimAssignment(ctx context.Context, e *models.Equipment) (bool, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (models.AssetStats, error)
}

// AccountGetter is the slice of the account store the asset services need to
// validate assignment targets.
type AccountGetter interface {
	ByID(ctx context.Context, id string) (*models.Account, error)
}

type EquipmentService struct {
	equipment EquipmentRepo
	accounts  AccountGetter
	audit     *AuditService
}

func NewEquipmentService(equipment EquipmentRepo, accounts AccountGetter, audit *AuditService) *EquipmentService {
	return &EquipmentService{equipment: equipment, accounts: accounts, audit: audit}
}

type EquipmentCreate struct {
	PropertyNumber string  `json:"property_number" validate:"required"`
	GSDCode        *string `json:"gsd_code"`
	ItemNumber     *string `json:"item_number"`

	EquipmentType  string  `json:"equipment_type" validate:"required"`
	Brand          string  `json:"brand" validate:"required"`
	Model          string  `json:"model" validate:"required"`
	SerialNumber   *string `json:"serial_number"`
	Specifications *string `json:"specifications"`

	AcquisitionDate *time.Time `json:"acquisition_date"`
	AcquisitionCost *float64   `json:"acquisition_cost"`

	Condition string  `json:"condition"`
	Status    string  `json:"status"`
	Remarks   *string `json:"remarks"`
}

func invalidEnum(field string, allowed []string) error {
	return apperr.Newf(apperr.BadRequest, "Invalid %s. Must be one of: %s", field, strings.Join(allowed, ", "))
}

func (s *EquipmentService) Create(ctx context.Context, actor *models.Account, req EquipmentCreate) (*models.Equipment, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}
	if !models.ValidEquipmentType(req.EquipmentType) {
		return nil, invalidEnum("equipment type", models.EquipmentTypes)
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
	e := &models.Equipment{
		PropertyNumber:  req.PropertyNumber,
		GSDCode:         req.GSDCode,
		ItemNumber:      req.ItemNumber,
		EquipmentType:   req.EquipmentType,
		Brand:           req.Brand,
		Model:           req.Model,
		SerialNumber:    req.SerialNumber,
		Specifications:  req.Specifications,
		AcquisitionDate: req.AcquisitionDate,
		AcquisitionCost: req.AcquisitionCost,
		Condition:       req.Condition,
		Status:          req.Status,
		Remarks:         req.Remarks,
		CreatedBy:       actor.Email,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.equipment.Create(ctx, e); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.New(apperr.Conflict, "Property number already exists")
		}
		return nil, apperr.Wrap(apperr.Internal, "Could not create equipment", err)
	}

	s.audit.Record(ctx, actor, models.AuditCreate, models.ResourceEquipment, e.ID, e.Brand+" "+e.Model,
		map[string]any{
			"property_number": e.PropertyNumber,
			"equipment_type":  e.EquipmentType,
			"status":          e.Status,
		},
		nil,
		map[string]any{
			"property_number": e.PropertyNumber,
			"equipment_type":  e.EquipmentType,
			"brand":           e.Brand,
			"model":           e.Model,
			"status":          e.Status,
		},
	)
	return e, nil
}

func (s *EquipmentService) Get(ctx context.Context, id string) (*models.Equipment, error) {
	e, err := s.equipment.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "Equipment not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "Could not load equipment", err)
	}
	return e, nil
}

func (s *EquipmentService) List(ctx context.Context, skip, limit int) ([]models.Equipment, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = listDefaultLimit
	}
	return s.equipment.List(ctx, skip, limit)
}

func (s *EquipmentService) ListAvailable(ctx context.Context) ([]models.Equipment, error) {
	return s.equipment.ByStatus(ctx, models.StatusAvailable)
}

func (s *EquipmentService) ListAssignedTo(ctx context.Context, accountID string) ([]models.Equipment, error) {
	return s.equipment.AssignedTo(ctx, accountID)
}

func (s *EquipmentService) Stats(ctx context.Context) (models.AssetStats, error) {
	return s.equipment.Stats(ctx)
}

type EquipmentUpdate struct {
	PropertyNumber  *string    `json:"property_number"`
	GSDCode         *string    `json:"gsd_code"`
	ItemNumber      *string    `json:"item_number"`
	EquipmentType   *string    `json:"equipment_type"`
	Brand           *string    `json:"brand"`
	Model           *string    `json:"model"`
	SerialNumber    *string    `json:"serial_number"`
	Specifications  *string    `json:"specifications"`
	AcquisitionDate *time.Time `json:"acquisition_date"`
	AcquisitionCost *float64   `json:"acquisition_cost"`
	Condition       *string    `json:"condition"`
	Status          *string    `json:"status"`
	Remarks         *string    `json:"remarks"`
}

// Update applies only the provided fields. Enum values pass through
// unchecked here; create-time validation is the gate.
func (s *EquipmentService) Update(ctx context.Context, actor *models.Account, id string, req EquipmentUpdate) (*models.Equipment, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldValues := equipmentSnapshot(e)
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
	setStr("property_number", &e.PropertyNumber, req.PropertyNumber)
	setOptStr("gsd_code", &e.GSDCode, req.GSDCode)
	setOptStr("item_number", &e.ItemNumber, req.ItemNumber)
	setStr("equipment_type", &e.EquipmentType, req.EquipmentType)
	setStr("brand", &e.Brand, req.Brand)
	setStr("model", &e.Model, req.Model)
	setOptStr("serial_number", &e.SerialNumber, req.SerialNumber)
	setOptStr("specifications", &e.Specifications, req.Specifications)
	if req.AcquisitionDate != nil {
		e.AcquisitionDate = req.AcquisitionDate
		changes["acquisition_date"] = req.AcquisitionDate.Format(time.RFC3339)
	}
	if req.AcquisitionCost != nil {
		e.AcquisitionCost = req.AcquisitionCost
		changes["acquisition_cost"] = *req.AcquisitionCost
	}
	setStr("condition", &e.Condition, req.Condition)
	setStr("status", &e.Status, req.Status)
	setOptStr("remarks", &e.Remarks, req.Remarks)

	e.UpdatedAt = time.Now().UTC()
	if err := s.equipment.Save(ctx, e); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Could not save equipment", err)
	}

	s.audit.Record(ctx, actor, models.AuditUpdate, models.ResourceEquipment, e.ID, e.Brand+" "+e.Model,
		changes, oldValues, equipmentSnapshot(e))
	return e, nil
}

// Delete removes an asset that is not currently assigned.
func (s *EquipmentService) Delete(ctx context.Context, actor *models.Account, id string) error {
	e, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if e.Status == models.StatusAssigned {
		return apperr.New(apperr.BadRequest, "Cannot delete assigned equipment. Please unassign first.")
	}
	if err := s.equipment.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.New(apperr.NotFound, "Equipment not found")
		}
		return apperr.Wrap(apperr.Internal, "Could not delete equipment", err)
	}
	s.audit.Record(ctx, actor, models.AuditDelete, models.ResourceEquipment, id,
		fmt.Sprintf("%s %s (%s)", e.Brand, e.Model, e.PropertyNumber),
		map[string]any{"deleted": true},
		equipmentSnapshot(e),
		nil,
	)
	return nil
}

type EquipmentAssign struct {
	AssignedToUserID  string    `json:"assigned_to_user_id" validate:"required"`
	AssignedToName    string    `json:"assigned_to_name" validate:"required"`
	AssignedDate      time.Time `json:"assigned_date" validate:"required"`
	AssignmentType    string    `json:"assignment_type" validate:"required"`
	PARNumber         *string   `json:"par_number"`
	PreviousRecipient *string   `json:"previous_recipient"`
}

// Assign transitions Available -> Assigned. The final write is conditional
// on the row not being Assigned, so two concurrent assigns cannot both win.
// The target account must exist; approval and activation are deliberately
// not checked.
func (s *EquipmentService) Assign(ctx context.Context, actor *models.Account, id string, req EquipmentAssign) (*models.Equipment, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.Status == models.StatusAssigned {
		return nil, apperr.New(apperr.BadRequest, "Equipment is already assigned. Please unassign first or transfer.")
	}
	if err := checkStruct(req); err != nil {
		return nil, err
	}
	if !models.ValidAssignmentType(req.AssignmentType) {
		return nil, apperr.New(apperr.BadRequest, "Assignment type must be either 'PAR' or 'Job Order'")
	}
	if req.AssignmentType == models.AssignmentPAR && (req.PARNumber == nil || *req.PARNumber == "") {
		return nil, apperr.New(apperr.BadRequest, "PAR number is required for PAR assignments")
	}
	if _, err := s.accounts.ByID(ctx, req.AssignedToUserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "Could not load account", err)
	}

	oldStatus := e.Status
	oldAssigned := e.AssignedToName

	e.AssignedToUserID = &req.AssignedToUserID
	e.AssignedToName = &req.AssignedToName
	assignedDate := req.AssignedDate
	e.AssignedDate = &assignedDate
	assignmentType := req.AssignmentType
	e.AssignmentType = &assignmentType
	if req.PreviousRecipient != nil {
		e.PreviousRecipient = req.PreviousRecipient
	}
	if req.AssignmentType == models.AssignmentPAR {
		e.PARNumber = req.PARNumber
	} else {
		e.PARNumber = nil
	}
	e.Status = models.StatusAssigned
	e.UpdatedAt = time.Now().UTC()

	claimed, err := s.equipment.ClaimAssignment(ctx, e)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Could not save equipment", err)
	}
	if !claimed {
		// Lost the race to a concurrent assign.
		return nil, apperr.New(apperr.BadRequest, "Equipment is already assigned. Please unassign first or transfer.")
	}

	s.audit.Record(ctx, actor, models.AuditAssign, models.ResourceEquipment, e.ID, e.Brand+" "+e.Model,
		map[string]any{
			"assigned_to":     req.AssignedToName,
			"assignment_type": req.AssignmentType,
			"status":          models.StatusAssigned,
		},
		map[string]any{
			"status":      oldStatus,
			"assigned_to": strPtrValue(oldAssigned),
		},
		map[string]any{
			"status":          models.StatusAssigned,
			"assigned_to":     req.AssignedToName,
			"assignment_type": req.AssignmentType,
		},
	)
	return e, nil
}

// Unassign transitions Assigned -> Available, preserving the last holder in
// previous_recipient.
func (s *EquipmentService) Unassign(ctx context.Context, actor *models.Account, id string) (*models.Equipment, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := e.Status
	oldAssigned := e.AssignedToName

	if e.AssignedToName != nil {
		e.PreviousRecipient = e.AssignedToName
	}
	e.AssignedToUserID = nil
	e.AssignedToName = nil
	e.AssignedDate = nil
	e.Status = models.StatusAvailable
	e.UpdatedAt = time.Now().UTC()

	if err := s.equipment.Save(ctx, e); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Could not save equipment", err)
	}

	s.audit.Record(ctx, actor, models.AuditUnassign, models.ResourceEquipment, e.ID, e.Brand+" "+e.Model,
		map[string]any{"status": models.StatusAvailable},
		map[string]any{"status": oldStatus, "assigned_to": strPtrValue(oldAssigned)},
		map[string]any{"status": models.StatusAvailable, "assigned_to": nil},
	)
	return e, nil
}

// Transfer reassigns an Assigned asset to a new holder as one logical
// operation: the unassign bookkeeping and the new assignment land in a
// single write and a single TRANSFER audit entry.
func (s *EquipmentService) Transfer(ctx context.Context, actor *models.Account, id string, req EquipmentAssign) (*models.Equipment, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.Status != models.StatusAssigned {
		return nil, apperr.New(apperr.BadRequest, "Equipment is not currently assigned")
	}
	if err := checkStruct(req); err != nil {
		return nil, err
	}
	if !models.ValidAssignmentType(req.AssignmentType) {
		return nil, apperr.New(apperr.BadRequest, "Assignment type must be either 'PAR' or 'Job Order'")
	}
	if req.AssignmentType == models.AssignmentPAR && (req.PARNumber == nil || *req.PARNumber == "") {
		return nil, apperr.New(apperr.BadRequest, "PAR number is required for PAR assignments")
	}
	if _, err := s.accounts.ByID(ctx, req.AssignedToUserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "Could not load account", err)
	}

	from := strPtrValue(e.AssignedToName)
	if e.AssignedToName != nil {
		e.PreviousRecipient = e.AssignedToName
	}
	e.AssignedToUserID = &req.AssignedToUserID
	e.AssignedToName = &req.AssignedToName
	assignedDate := req.AssignedDate
	e.AssignedDate = &assignedDate
	assignmentType := req.AssignmentType
	e.AssignmentType = &assignmentType
	if req.AssignmentType == models.AssignmentPAR {
		e.PARNumber = req.PARNumber
	} else {
		e.PARNumber = nil
	}
	e.UpdatedAt = time.Now().UTC()

	if err := s.equipment.Save(ctx, e); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Could not save equipment", err)
	}

	s.audit.Record(ctx, actor, models.AuditTransfer, models.ResourceEquipment, e.ID, e.Brand+" "+e.Model,
		map[string]any{"from": from, "to": req.AssignedToName},
		map[string]any{"status": models.StatusAssigned, "assigned_to": from},
		map[string]any{"status": models.StatusAssigned, "assigned_to": req.AssignedToName, "assignment_type": req.AssignmentType},
	)
	return e, nil
}

func equipmentSnapshot(e *models.Equipment) map[string]any {
	return map[string]any{
		"property_number": e.PropertyNumber,
		"equipment_type":  e.EquipmentType,
		"brand":           e.Brand,
		"model":           e.Model,
		"status":          e.Status,
		"condition":       e.Condition,
	}
}

func strPtrValue(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
