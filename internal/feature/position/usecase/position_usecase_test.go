package usecase

import (
	"context"
	"errors"
	"testing"

	"magang_backend/internal/feature/position/domain/entity"
)

// mockPositionRepository is a mock implementation of the PositionRepository
// interface.
type mockPositionRepository struct {
	CreateFunc   func(ctx context.Context, p *entity.Position) error
	FindByIDFunc func(ctx context.Context, id uint) (*entity.Position, error)
	ListFunc     func(ctx context.Context, filter ListFilter) ([]entity.Position, error)
	UpdateFunc   func(ctx context.Context, p *entity.Position) error
	DeleteFunc   func(ctx context.Context, id uint) error
}

func (m *mockPositionRepository) Create(ctx context.Context, p *entity.Position) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *mockPositionRepository) FindByID(ctx context.Context, id uint) (*entity.Position, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrPositionNotFound
}

func (m *mockPositionRepository) List(ctx context.Context, filter ListFilter) ([]entity.Position, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockPositionRepository) Update(ctx context.Context, p *entity.Position) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	return nil
}

func (m *mockPositionRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// mockAcceptedCounter is a mock implementation of the AcceptedCounter
// interface.
type mockAcceptedCounter struct {
	CountFunc func(ctx context.Context, positionID uint) (int64, error)
}

func (m *mockAcceptedCounter) CountAcceptedByPosition(ctx context.Context, positionID uint) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, positionID)
	}
	return 0, nil
}

func storedPosition() *entity.Position {
	return &entity.Position{ID: 10, Title: "Magang IT", Department: "Diskominfo", IsActive: true}
}

func TestPositionUsecase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("mutator result is persisted", func(t *testing.T) {
		var saved *entity.Position
		repo := &mockPositionRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Position, error) {
				return storedPosition(), nil
			},
			UpdateFunc: func(ctx context.Context, p *entity.Position) error {
				saved = p
				return nil
			},
		}
		uc := NewPositionUsecase(repo, &mockAcceptedCounter{})

		p, err := uc.Update(ctx, 10, func(p *entity.Position) {
			p.Title = "Magang Data"
			p.Quota = 5
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Title != "Magang Data" || p.Quota != 5 {
			t.Errorf("mutation not applied: %+v", p)
		}
		if saved == nil || saved.Title != "Magang Data" {
			t.Error("mutation was not persisted")
		}
	})

	t.Run("unknown position surfaces ErrPositionNotFound", func(t *testing.T) {
		uc := NewPositionUsecase(&mockPositionRepository{}, &mockAcceptedCounter{})
		if _, err := uc.Update(ctx, 99, func(p *entity.Position) {}); !errors.Is(err, ErrPositionNotFound) {
			t.Errorf("expected ErrPositionNotFound, got %v", err)
		}
	})
}

func TestPositionUsecase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("a position with accepted applications cannot be deleted", func(t *testing.T) {
		repo := &mockPositionRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Position, error) {
				return storedPosition(), nil
			},
			DeleteFunc: func(ctx context.Context, id uint) error {
				t.Error("Delete must not be called")
				return nil
			},
		}
		counter := &mockAcceptedCounter{
			CountFunc: func(ctx context.Context, positionID uint) (int64, error) {
				return 2, nil
			},
		}
		uc := NewPositionUsecase(repo, counter)

		if err := uc.Delete(ctx, 10); !errors.Is(err, ErrPositionHasAccepted) {
			t.Errorf("expected ErrPositionHasAccepted, got %v", err)
		}
	})

	t.Run("a position without accepted applications is deleted", func(t *testing.T) {
		deleted := false
		repo := &mockPositionRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Position, error) {
				return storedPosition(), nil
			},
			DeleteFunc: func(ctx context.Context, id uint) error {
				deleted = true
				return nil
			},
		}
		uc := NewPositionUsecase(repo, &mockAcceptedCounter{})

		if err := uc.Delete(ctx, 10); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !deleted {
			t.Error("position was not deleted")
		}
	})
}

func TestPositionUsecase_ToggleActive(t *testing.T) {
	var saved *entity.Position
	repo := &mockPositionRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*entity.Position, error) {
			return storedPosition(), nil
		},
		UpdateFunc: func(ctx context.Context, p *entity.Position) error {
			saved = p
			return nil
		},
	}
	uc := NewPositionUsecase(repo, &mockAcceptedCounter{})

	p, err := uc.ToggleActive(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.IsActive {
		t.Error("expected the flag to flip to false")
	}
	if saved == nil || saved.IsActive {
		t.Error("flipped flag was not persisted")
	}
}
