package store

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"assetcore/internal/models"
)

type Accounts struct {
	db *gorm.DB
}

func NewAccounts(db *gorm.DB) *Accounts { return &Accounts{db: db} }

func (s *Accounts) Create(ctx context.Context, a *models.Account) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return translate(s.db.WithContext(ctx).Create(a).Error)
}

func (s *Accounts) ByID(ctx context.Context, id string) (*models.Account, error) {
	var a models.Account
	if err := s.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

// ByEmail matches case-insensitively; emails are stored lowercased but the
// index lookup lowers the probe too so pre-normalization rows still match.
func (s *Accounts) ByEmail(ctx context.Context, email string) (*models.Account, error) {
	var a models.Account
	err := s.db.WithContext(ctx).First(&a, "LOWER(email) = ?", strings.ToLower(email)).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *Accounts) ListPending(ctx context.Context) ([]models.Account, error) {
	var out []models.Account
	err := s.db.WithContext(ctx).
		Where("is_approved = ?", false).
		Order("created_at desc").
		Find(&out).Error
	return out, translate(err)
}

func (s *Accounts) ListAll(ctx context.Context) ([]models.Account, error) {
	var out []models.Account
	err := s.db.WithContext(ctx).Order("created_at desc").Find(&out).Error
	return out, translate(err)
}

func (s *Accounts) Save(ctx context.Context, a *models.Account) error {
	return translate(s.db.WithContext(ctx).Save(a).Error)
}

func (s *Accounts) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Account{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
