// Package adapters provides the repository implementations for the
// application feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"magang_backend/internal/feature/application/domain/entity"
	"magang_backend/internal/feature/application/usecase"
)

// docColumns maps document kinds to their table columns for the write-back
// step of the two-phase create.
var docColumns = map[string]string{
	entity.DocKTP:            "ktp_path",
	entity.DocFamilyCard:     "family_card_path",
	entity.DocCoverLetter:    "cover_letter_path",
	entity.DocPhoto:          "photo_path",
	entity.DocCV:             "cv_path",
	entity.DocReferralLetter: "referral_letter_path",
}

// applicationGorm is the gorm implementation of the ApplicationRepository
// interface.
type applicationGorm struct {
	db *gorm.DB
}

// Compile-time check that applicationGorm implements ApplicationRepository.
var _ usecase.ApplicationRepository = (*applicationGorm)(nil)

// NewApplicationRepository creates a new applicationGorm instance.
func NewApplicationRepository(db *gorm.DB) *applicationGorm {
	return &applicationGorm{db: db}
}

// Create persists a new application row. A taken registration number is
// reported as usecase.ErrDuplicateRegistration so the caller can renumber.
func (r *applicationGorm) Create(ctx context.Context, a *entity.Application) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return usecase.ErrDuplicateRegistration
	}
	return err
}

// UpdateDocumentPaths writes the bound file paths onto an existing row.
func (r *applicationGorm) UpdateDocumentPaths(ctx context.Context, id uint, paths map[string]string) error {
	updates := make(map[string]any, len(paths))
	for kind, p := range paths {
		col, ok := docColumns[kind]
		if !ok {
			continue
		}
		updates[col] = p
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.Application{}).
		Where("id = ?", id).Updates(updates).Error
}

// FindByID retrieves an application with its position, owner and reviewer
// preloaded, or usecase.ErrApplicationNotFound.
func (r *applicationGorm) FindByID(ctx context.Context, id uint) (*entity.Application, error) {
	var a entity.Application
	err := r.db.WithContext(ctx).
		Preload("Position").
		Preload("User").
		Preload("Reviewer").
		Where("id = ?", id).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrApplicationNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List retrieves applications matching the filter, newest first.
func (r *applicationGorm) List(ctx context.Context, filter usecase.ListFilter) ([]entity.Application, error) {
	q := r.db.WithContext(ctx).Model(&entity.Application{}).
		Preload("Position")
	if filter.UserID != 0 {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ApplicantType != "" {
		q = q.Where("applicant_type = ?", filter.ApplicantType)
	}
	if filter.PositionID != 0 {
		q = q.Where("position_id = ?", filter.PositionID)
	}

	var apps []entity.Application
	if err := q.Order("created_at DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Update saves the full application row.
func (r *applicationGorm) Update(ctx context.Context, a *entity.Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// Delete removes an application row.
func (r *applicationGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Application{}, id).Error
}

// CountActiveByUser counts the owner's applications in pending, review or
// accepted state.
func (r *applicationGorm) CountActiveByUser(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.Application{}).
		Where("user_id = ? AND status IN ?", userID, entity.ActiveStatuses).
		Count(&n).Error
	return n, err
}

// CountAcceptedByPosition counts a position's accepted applications.
func (r *applicationGorm) CountAcceptedByPosition(ctx context.Context, positionID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.Application{}).
		Where("position_id = ? AND status = ?", positionID, entity.StatusAccepted).
		Count(&n).Error
	return n, err
}

// CountCreatedBetween counts applications created in [from, to).
func (r *applicationGorm) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.Application{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&n).Error
	return n, err
}

// Stats aggregates counts by status and applicant type plus the
// current-month total.
func (r *applicationGorm) Stats(ctx context.Context) (*usecase.Stats, error) {
	stats := &usecase.Stats{
		ByStatus: make(map[entity.Status]int64),
		ByType:   make(map[entity.ApplicantType]int64),
	}

	if err := r.db.WithContext(ctx).Model(&entity.Application{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	type bucket struct {
		Key   string
		Count int64
	}

	var byStatus []bucket
	if err := r.db.WithContext(ctx).Model(&entity.Application{}).
		Select("status AS key, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, b := range byStatus {
		stats.ByStatus[entity.Status(b.Key)] = b.Count
	}

	var byType []bucket
	if err := r.db.WithContext(ctx).Model(&entity.Application{}).
		Select("applicant_type AS key, COUNT(*) AS count").
		Group("applicant_type").
		Scan(&byType).Error; err != nil {
		return nil, err
	}
	for _, b := range byType {
		stats.ByType[entity.ApplicantType(b.Key)] = b.Count
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	n, err := r.CountCreatedBetween(ctx, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	stats.CurrentMonth = n

	return stats, nil
}
