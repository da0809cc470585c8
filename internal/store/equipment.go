package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"assetcore/internal/models"
)

type EquipmentStore struct {
	db *gorm.DB
}

func NewEquipment(db *gorm.DB) *EquipmentStore { return &EquipmentStore{db: db} }

func (s *EquipmentStore) Create(ctx context.Context, e *models.Equipment) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return translate(s.db.WithContext(ctx).Create(e).Error)
}

func (s *EquipmentStore) ByID(ctx context.Context, id string) (*models.Equipment, error) {
	var e models.Equipment
	if err := s.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (s *EquipmentStore) List(ctx context.Context, skip, limit int) ([]models.Equipment, error) {
	var out []models.Equipment
	err := s.db.WithContext(ctx).
		Order("created_at desc").
		Offset(skip).Limit(limit).
		Find(&out).Error
	return out, translate(err)
}

func (s *EquipmentStore) ByStatus(ctx context.Context, status string) ([]models.Equipment, error) {
	var out []models.Equipment
	err := s.db.WithContext(ctx).Where("status = ?", status).Find(&out).Error
	return out, translate(err)
}

func (s *EquipmentStore) AssignedTo(ctx context.Context, accountID string) ([]models.Equipment, error) {
	var out []models.Equipment
	err := s.db.WithContext(ctx).Where("assigned_to_user_id = ?", accountID).Find(&out).Error
	return out, translate(err)
}

func (s *EquipmentStore) Save(ctx context.Context, e *models.Equipment) error {
	return translate(s.db.WithContext(ctx).Save(e).Error)
}

// ClaimAssignment persists e's assignment fields only while the row is not
// already Assigned. The status predicate makes concurrent assigns race-safe:
// the second writer sees zero rows affected instead of silently overwriting
// the first.
func (s *EquipmentStore) ClaimAssignment(ctx context.Context, e *models.Equipment) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(e).
		Select("assigned_to_user_id", "assigned_to_name", "assigned_date",
			"assignment_type", "previous_recipient", "par_number", "status", "updated_at").
		Where("status <> ?", models.StatusAssigned).
		Updates(e)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *EquipmentStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Equipment{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *EquipmentStore) Stats(ctx context.Context) (models.AssetStats, error) {
	var st models.AssetStats
	db := s.db.WithContext(ctx).Model(&models.Equipment{})
	if err := db.Count(&st.Total).Error; err != nil {
		return st, translate(err)
	}
	counts := []struct {
		status string
		dst    *int64
	}{
		{models.StatusAvailable, &st.Available},
		{models.StatusAssigned, &st.Assigned},
		{models.StatusUnderRepair, &st.UnderRepair},
	}
	for _, c := range counts {
		err := s.db.WithContext(ctx).Model(&models.Equipment{}).
			Where("status = ?", c.status).Count(c.dst).Error
		if err != nil {
			return st, translate(err)
		}
	}
	return st, nil
}
