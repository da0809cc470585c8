package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"assetcore/internal/models"
)

type FurnitureStore struct {
	db *gorm.DB
}

func NewFurniture(db *gorm.DB) *FurnitureStore { return &FurnitureStore{db: db} }

func (s *FurnitureStore) Create(ctx context.Context, f *models.Furniture) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return translate(s.db.WithContext(ctx).Create(f).Error)
}

func (s *FurnitureStore) ByID(ctx context.Context, id string) (*models.Furniture, error) {
	var f models.Furniture
	if err := s.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

func (s *FurnitureStore) List(ctx context.Context, skip, limit int) ([]models.Furniture, error) {
	var out []models.Furniture
	err := s.db.WithContext(ctx).
		Order("created_at desc").
		Offset(skip).Limit(limit).
		Find(&out).Error
	return out, translate(err)
}

func (s *FurnitureStore) ByStatus(ctx context.Context, status string) ([]models.Furniture, error) {
	var out []models.Furniture
	err := s.db.WithContext(ctx).Where("status = ?", status).Find(&out).Error
	return out, translate(err)
}

func (s *FurnitureStore) AssignedTo(ctx context.Context, accountID string) ([]models.Furniture, error) {
	var out []models.Furniture
	err := s.db.WithContext(ctx).Where("assigned_to_user_id = ?", accountID).Find(&out).Error
	return out, translate(err)
}

func (s *FurnitureStore) Save(ctx context.Context, f *models.Furniture) error {
	return translate(s.db.WithContext(ctx).Save(f).Error)
}

// ClaimAssignment mirrors EquipmentStore.ClaimAssignment; furniture tracks a
// location instead of a previous recipient.
func (s *FurnitureStore) ClaimAssignment(ctx context.Context, f *models.Furniture) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(f).
		Select("assigned_to_user_id", "assigned_to_name", "assigned_date",
			"assignment_type", "location", "par_number", "status", "updated_at").
		Where("status <> ?", models.StatusAssigned).
		Updates(f)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *FurnitureStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Furniture{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *FurnitureStore) Stats(ctx context.Context) (models.AssetStats, error) {
	var st models.AssetStats
	if err := s.db.WithContext(ctx).Model(&models.Furniture{}).Count(&st.Total).Error; err != nil {
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
		err := s.db.WithContext(ctx).Model(&models.Furniture{}).
			Where("status = ?", c.status).Count(c.dst).Error
		if err != nil {
			return st, translate(err)
		}
	}
	return st, nil
}
