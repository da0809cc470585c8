package services

import (
	"context"
	"time"

	"assetcore/internal/apperr"
	"assetcore/internal/models"
)

// AttachPAR records the stored document path on the asset.
func (s *EquipmentService) AttachPAR(ctx context.Context, id, path string) (*models.Equipment, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	e.PARFilePath = &path
	e.UpdatedAt = time.Now().UTC()
	if err := s.equipment.Save(ctx, e); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Could not save equipment", err)
	}
	return e, nil
}

func (s *FurnitureService) AttachPAR(ctx context.Context, id, path string) (*models.Furniture, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	f.PARFilePath = &path
	f.UpdatedAt = time.Now().UTC()
	if err := s.furniture.Save(ctx, f); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Could not save furniture", err)
	}
	return f, nil
}
