package usecase

import (
	"context"

	"magang_backend/internal/feature/position/domain/entity"
)

// ListFilter narrows the position listing.
type ListFilter struct {
	// ActiveOnly drops inactive postings (the public listing default).
	ActiveOnly bool

	// ApplicantType keeps positions open to the given category
	// ("mahasiswa" or "pelajar"); empty means no restriction.
	ApplicantType string
}

// PositionRepository abstracts the persistence layer for positions.
// Following Go convention, the interface is defined by the consumer
// (usecase), not the provider (adapters).
type PositionRepository interface {
	Create(ctx context.Context, p *entity.Position) error

	// FindByID returns the position with the given ID, or ErrPositionNotFound.
	FindByID(ctx context.Context, id uint) (*entity.Position, error)

	List(ctx context.Context, filter ListFilter) ([]entity.Position, error)
	Update(ctx context.Context, p *entity.Position) error
	Delete(ctx context.Context, id uint) error
}

// AcceptedCounter reports how many accepted applications a position holds.
// Implemented by the application feature's repository.
type AcceptedCounter interface {
	CountAcceptedByPosition(ctx context.Context, positionID uint) (int64, error)
}

// positionUsecase implements the posting management logic.
type positionUsecase struct {
	positions PositionRepository
	accepted  AcceptedCounter
}

// NewPositionUsecase creates a new positionUsecase instance.
func NewPositionUsecase(positions PositionRepository, accepted AcceptedCounter) *positionUsecase {
	return &positionUsecase{positions: positions, accepted: accepted}
}

// List returns positions matching the filter.
func (u *positionUsecase) List(ctx context.Context, filter ListFilter) ([]entity.Position, error) {
	return u.positions.List(ctx, filter)
}

// Get returns a single position.
func (u *positionUsecase) Get(ctx context.Context, id uint) (*entity.Position, error) {
	return u.positions.FindByID(ctx, id)
}

// Create publishes a new position.
func (u *positionUsecase) Create(ctx context.Context, p *entity.Position) error {
	return u.positions.Create(ctx, p)
}

// Update edits an existing position.
func (u *positionUsecase) Update(ctx context.Context, id uint, update func(*entity.Position)) (*entity.Position, error) {
	p, err := u.positions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	update(p)
	if err := u.positions.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a position. A position with at least one accepted
// application cannot be deleted.
func (u *positionUsecase) Delete(ctx context.Context, id uint) error {
	if _, err := u.positions.FindByID(ctx, id); err != nil {
		return err
	}
	n, err := u.accepted.CountAcceptedByPosition(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrPositionHasAccepted
	}
	return u.positions.Delete(ctx, id)
}

// ToggleActive flips the posting's active flag and returns the updated record.
func (u *positionUsecase) ToggleActive(ctx context.Context, id uint) (*entity.Position, error) {
	p, err := u.positions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.IsActive = !p.IsActive
	if err := u.positions.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
