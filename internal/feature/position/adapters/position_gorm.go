// Package adapters provides the repository implementations for the position feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"magang_backend/internal/feature/position/domain/entity"
	"magang_backend/internal/feature/position/usecase"
)

// positionGorm is the gorm implementation of the PositionRepository interface.
type positionGorm struct {
	db *gorm.DB
}

// Compile-time check that positionGorm implements PositionRepository.
var _ usecase.PositionRepository = (*positionGorm)(nil)

// NewPositionRepository creates a new positionGorm instance.
func NewPositionRepository(db *gorm.DB) *positionGorm {
	return &positionGorm{db: db}
}

// Create persists a new position.
func (r *positionGorm) Create(ctx context.Context, p *entity.Position) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// FindByID retrieves a position by ID, or usecase.ErrPositionNotFound.
func (r *positionGorm) FindByID(ctx context.Context, id uint) (*entity.Position, error) {
	var p entity.Position
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPositionNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List retrieves positions matching the filter, newest first.
func (r *positionGorm) List(ctx context.Context, filter usecase.ListFilter) ([]entity.Position, error) {
	q := r.db.WithContext(ctx).Model(&entity.Position{})
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if filter.ApplicantType != "" {
		q = q.Where("allowed_type IN ?", []string{filter.ApplicantType, string(entity.AllowBoth)})
	}

	var positions []entity.Position
	if err := q.Order("created_at DESC").Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

// Update saves the full position row.
func (r *positionGorm) Update(ctx context.Context, p *entity.Position) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete removes a position. Its applications go with it via the FK cascade.
func (r *positionGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Position{}, id).Error
}
