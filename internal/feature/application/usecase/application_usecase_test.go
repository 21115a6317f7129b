package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"magang_backend/internal/feature/application/domain/entity"
	posentity "magang_backend/internal/feature/position/domain/entity"
	posusecase "magang_backend/internal/feature/position/usecase"
	"magang_backend/internal/platform/storage"
)

// mockApplicationRepository is a mock implementation of the
// ApplicationRepository interface.
type mockApplicationRepository struct {
	CreateFunc                  func(ctx context.Context, a *entity.Application) error
	UpdateDocumentPathsFunc     func(ctx context.Context, id uint, paths map[string]string) error
	FindByIDFunc                func(ctx context.Context, id uint) (*entity.Application, error)
	ListFunc                    func(ctx context.Context, filter ListFilter) ([]entity.Application, error)
	UpdateFunc                  func(ctx context.Context, a *entity.Application) error
	DeleteFunc                  func(ctx context.Context, id uint) error
	CountActiveByUserFunc       func(ctx context.Context, userID uint) (int64, error)
	CountAcceptedByPositionFunc func(ctx context.Context, positionID uint) (int64, error)
	CountCreatedBetweenFunc     func(ctx context.Context, from, to time.Time) (int64, error)
	StatsFunc                   func(ctx context.Context) (*Stats, error)
}

func (m *mockApplicationRepository) Create(ctx context.Context, a *entity.Application) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	a.ID = 1
	return nil
}

func (m *mockApplicationRepository) UpdateDocumentPaths(ctx context.Context, id uint, paths map[string]string) error {
	if m.UpdateDocumentPathsFunc != nil {
		return m.UpdateDocumentPathsFunc(ctx, id, paths)
	}
	return nil
}

func (m *mockApplicationRepository) FindByID(ctx context.Context, id uint) (*entity.Application, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return &entity.Application{ID: id}, nil
}

func (m *mockApplicationRepository) List(ctx context.Context, filter ListFilter) ([]entity.Application, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockApplicationRepository) Update(ctx context.Context, a *entity.Application) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, a)
	}
	return nil
}

func (m *mockApplicationRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockApplicationRepository) CountActiveByUser(ctx context.Context, userID uint) (int64, error) {
	if m.CountActiveByUserFunc != nil {
		return m.CountActiveByUserFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockApplicationRepository) CountAcceptedByPosition(ctx context.Context, positionID uint) (int64, error) {
	if m.CountAcceptedByPositionFunc != nil {
		return m.CountAcceptedByPositionFunc(ctx, positionID)
	}
	return 0, nil
}

func (m *mockApplicationRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	if m.CountCreatedBetweenFunc != nil {
		return m.CountCreatedBetweenFunc(ctx, from, to)
	}
	return 0, nil
}

func (m *mockApplicationRepository) Stats(ctx context.Context) (*Stats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return &Stats{}, nil
}

// mockPositionReader is a mock implementation of the PositionReader interface.
type mockPositionReader struct {
	FindByIDFunc func(ctx context.Context, id uint) (*posentity.Position, error)
}

func (m *mockPositionReader) FindByID(ctx context.Context, id uint) (*posentity.Position, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, posusecase.ErrPositionNotFound
}

// mockFileBinder records binder calls.
type mockFileBinder struct {
	BindFunc    func(appID uint, staged []*storage.StagedFile) (map[string]string, error)
	ResolveFunc func(relPath string) (string, error)

	discarded  int
	removedAll []uint
}

func (m *mockFileBinder) Bind(appID uint, staged []*storage.StagedFile) (map[string]string, error) {
	if m.BindFunc != nil {
		return m.BindFunc(appID, staged)
	}
	paths := make(map[string]string, len(staged))
	for _, f := range staged {
		paths[f.Kind] = fmt.Sprintf("%d/%d_%s%s", appID, appID, f.Kind, f.Ext)
	}
	return paths, nil
}

func (m *mockFileBinder) Discard(staged []*storage.StagedFile) { m.discarded++ }

func (m *mockFileBinder) RemoveAll(appID uint) error {
	m.removedAll = append(m.removedAll, appID)
	return nil
}

func (m *mockFileBinder) Resolve(relPath string) (string, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(relPath)
	}
	return "/uploads/" + relPath, nil
}

func openPosition() *posentity.Position {
	return &posentity.Position{
		ID:          10,
		Title:       "Magang IT",
		Department:  "Diskominfo",
		Quota:       2,
		AllowedType: posentity.AllowBoth,
		IsActive:    true,
	}
}

func activePositionReader() *mockPositionReader {
	return &mockPositionReader{
		FindByIDFunc: func(ctx context.Context, id uint) (*posentity.Position, error) {
			return openPosition(), nil
		},
	}
}

func validInput() SubmitInput {
	return SubmitInput{
		PositionID:    10,
		ApplicantType: entity.TypeMahasiswa,
		University:    "Universitas Indonesia",
		Faculty:       "Ilmu Komputer",
		Major:         "Sistem Informasi",
		Semester:      5,
		NIM:           "2110512345",
		NIK:           "3174012345678901",
		FullName:      "Budi Santoso",
		Email:         "budi@example.com",
		Phone:         "081234567890",
		BirthDate:     time.Date(2003, 4, 12, 0, 0, 0, 0, time.UTC),
		Gender:        "L",
		Address:       "Jl. Merdeka No. 1",
		StartDate:     time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func allStaged() []*storage.StagedFile {
	staged := make([]*storage.StagedFile, 0, len(entity.RequiredDocs))
	for _, kind := range entity.RequiredDocs {
		staged = append(staged, &storage.StagedFile{Kind: kind, Path: "/tmp/" + kind, Ext: ".pdf"})
	}
	return staged
}

func TestApplicationUsecase_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("valid submission creates a pending application", func(t *testing.T) {
		var created *entity.Application
		var savedPaths map[string]string
		repo := &mockApplicationRepository{
			CreateFunc: func(ctx context.Context, a *entity.Application) error {
				a.ID = 42
				created = a
				return nil
			},
			UpdateDocumentPathsFunc: func(ctx context.Context, id uint, paths map[string]string) error {
				savedPaths = paths
				return nil
			},
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Application, error) {
				return created, nil
			},
		}
		binder := &mockFileBinder{}
		uc := NewApplicationUsecase(repo, activePositionReader(), binder)

		app, err := uc.Submit(ctx, 7, validInput(), allStaged())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if app.Status != entity.StatusPending {
			t.Errorf("expected status pending, got %q", app.Status)
		}
		if app.UserID != 7 {
			t.Errorf("expected owner 7, got %d", app.UserID)
		}
		if len(savedPaths) != len(entity.RequiredDocs) {
			t.Errorf("expected %d document paths, got %d", len(entity.RequiredDocs), len(savedPaths))
		}
		if binder.discarded != 0 {
			t.Error("staged files must not be discarded on success")
		}
	})

	t.Run("registration number follows REG-YYYYMMDD-NNNN", func(t *testing.T) {
		var created *entity.Application
		repo := &mockApplicationRepository{
			CountCreatedBetweenFunc: func(ctx context.Context, from, to time.Time) (int64, error) {
				return 5, nil
			},
			CreateFunc: func(ctx context.Context, a *entity.Application) error {
				a.ID = 1
				created = a
				return nil
			},
		}
		uc := NewApplicationUsecase(repo, activePositionReader(), &mockFileBinder{})

		if _, err := uc.Submit(ctx, 7, validInput(), allStaged()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := fmt.Sprintf("REG-%s-0006", time.Now().Format("20060102"))
		if created.RegistrationNumber != want {
			t.Errorf("expected %q, got %q", want, created.RegistrationNumber)
		}
		if !regexp.MustCompile(`^REG-\d{8}-\d{4}$`).MatchString(created.RegistrationNumber) {
			t.Errorf("registration number %q has the wrong shape", created.RegistrationNumber)
		}
	})

	// A same-day deletion leaves the creation count behind the highest taken
	// suffix, so the first insert collides and the next suffix must be tried.
	t.Run("taken registration number moves to the next suffix", func(t *testing.T) {
		var created *entity.Application
		taken := map[string]bool{
			fmt.Sprintf("REG-%s-0005", time.Now().Format("20060102")): true,
		}
		repo := &mockApplicationRepository{
			CountCreatedBetweenFunc: func(ctx context.Context, from, to time.Time) (int64, error) {
				return 4, nil
			},
			CreateFunc: func(ctx context.Context, a *entity.Application) error {
				if taken[a.RegistrationNumber] {
					return ErrDuplicateRegistration
				}
				a.ID = 1
				created = a
				return nil
			},
		}
		binder := &mockFileBinder{}
		uc := NewApplicationUsecase(repo, activePositionReader(), binder)

		if _, err := uc.Submit(ctx, 7, validInput(), allStaged()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := fmt.Sprintf("REG-%s-0006", time.Now().Format("20060102"))
		if created.RegistrationNumber != want {
			t.Errorf("expected %q, got %q", want, created.RegistrationNumber)
		}
		if binder.discarded != 0 {
			t.Error("staged files must not be discarded on a renumbered success")
		}
	})

	t.Run("exhausted renumbering discards and fails", func(t *testing.T) {
		repo := &mockApplicationRepository{
			CreateFunc: func(ctx context.Context, a *entity.Application) error {
				return ErrDuplicateRegistration
			},
		}
		binder := &mockFileBinder{}
		uc := NewApplicationUsecase(repo, activePositionReader(), binder)

		_, err := uc.Submit(ctx, 7, validInput(), allStaged())
		if !errors.Is(err, ErrDuplicateRegistration) {
			t.Errorf("expected ErrDuplicateRegistration, got %v", err)
		}
		if binder.discarded != 1 {
			t.Error("staged files must be discarded when numbering runs out")
		}
	})

	t.Run("unknown position is rejected", func(t *testing.T) {
		binder := &mockFileBinder{}
		uc := NewApplicationUsecase(&mockApplicationRepository{}, &mockPositionReader{}, binder)

		_, err := uc.Submit(ctx, 7, validInput(), allStaged())
		if !errors.Is(err, ErrPositionNotFound) {
			t.Errorf("expected ErrPositionNotFound, got %v", err)
		}
		if binder.discarded != 1 {
			t.Error("staged files must be discarded on rejection")
		}
	})

	t.Run("inactive position is rejected", func(t *testing.T) {
		positions := &mockPositionReader{
			FindByIDFunc: func(ctx context.Context, id uint) (*posentity.Position, error) {
				p := openPosition()
				p.IsActive = false
				return p, nil
			},
		}
		uc := NewApplicationUsecase(&mockApplicationRepository{}, positions, &mockFileBinder{})

		if _, err := uc.Submit(ctx, 7, validInput(), allStaged()); !errors.Is(err, ErrPositionInactive) {
			t.Errorf("expected ErrPositionInactive, got %v", err)
		}
	})

	t.Run("applicant type outside the position's audience is rejected", func(t *testing.T) {
		positions := &mockPositionReader{
			FindByIDFunc: func(ctx context.Context, id uint) (*posentity.Position, error) {
				p := openPosition()
				p.AllowedType = posentity.AllowPelajar
				return p, nil
			},
		}
		uc := NewApplicationUsecase(&mockApplicationRepository{}, positions, &mockFileBinder{})

		if _, err := uc.Submit(ctx, 7, validInput(), allStaged()); !errors.Is(err, ErrTypeNotAllowed) {
			t.Errorf("expected ErrTypeNotAllowed, got %v", err)
		}
	})

	t.Run("full quota is rejected", func(t *testing.T) {
		repo := &mockApplicationRepository{
			CountAcceptedByPositionFunc: func(ctx context.Context, positionID uint) (int64, error) {
				return 2, nil
			},
			CreateFunc: func(ctx context.Context, a *entity.Application) error {
				t.Error("Create must not be called")
				return nil
			},
		}
		uc := NewApplicationUsecase(repo, activePositionReader(), &mockFileBinder{})

		if _, err := uc.Submit(ctx, 7, validInput(), allStaged()); !errors.Is(err, ErrQuotaFull) {
			t.Errorf("expected ErrQuotaFull, got %v", err)
		}
	})

	t.Run("zero quota means unlimited", func(t *testing.T) {
		positions := &mockPositionReader{
			FindByIDFunc: func(ctx context.Context, id uint) (*posentity.Position, error) {
				p := openPosition()
				p.Quota = 0
				return p, nil
			},
		}
		repo := &mockApplicationRepository{
			CountAcceptedByPositionFunc: func(ctx context.Context, positionID uint) (int64, error) {
				t.Error("accepted count must not be consulted when quota is zero")
				return 0, nil
			},
		}
		uc := NewApplicationUsecase(repo, positions, &mockFileBinder{})

		if _, err := uc.Submit(ctx, 7, validInput(), allStaged()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("a fourth active application is rejected without creating a row", func(t *testing.T) {
		repo := &mockApplicationRepository{
			CountActiveByUserFunc: func(ctx context.Context, userID uint) (int64, error) {
				return 3, nil
			},
			CreateFunc: func(ctx context.Context, a *entity.Application) error {
				t.Error("Create must not be called")
				return nil
			},
		}
		binder := &mockFileBinder{}
		uc := NewApplicationUsecase(repo, activePositionReader(), binder)

		if _, err := uc.Submit(ctx, 7, validInput(), allStaged()); !errors.Is(err, ErrSlotLimitReached) {
			t.Errorf("expected ErrSlotLimitReached, got %v", err)
		}
		if binder.discarded != 1 {
			t.Error("staged files must be discarded on rejection")
		}
	})

	t.Run("missing mandatory document is rejected before any lookup", func(t *testing.T) {
		positions := &mockPositionReader{
			FindByIDFunc: func(ctx context.Context, id uint) (*posentity.Position, error) {
				t.Error("position lookup must not happen for an invalid form")
				return nil, posusecase.ErrPositionNotFound
			},
		}
		uc := NewApplicationUsecase(&mockApplicationRepository{}, positions, &mockFileBinder{})

		staged := allStaged()[:len(entity.RequiredDocs)-1] // drop one mandatory kind
		if _, err := uc.Submit(ctx, 7, validInput(), staged); !errors.Is(err, ErrMissingDocument) {
			t.Errorf("expected ErrMissingDocument, got %v", err)
		}
	})

	t.Run("malformed NIK is rejected", func(t *testing.T) {
		uc := NewApplicationUsecase(&mockApplicationRepository{}, activePositionReader(), &mockFileBinder{})
		in := validInput()
		in.NIK = "12345"
		if _, err := uc.Submit(ctx, 7, in, allStaged()); !errors.Is(err, ErrInvalidNIK) {
			t.Errorf("expected ErrInvalidNIK, got %v", err)
		}
	})

	t.Run("end date before start date is rejected", func(t *testing.T) {
		uc := NewApplicationUsecase(&mockApplicationRepository{}, activePositionReader(), &mockFileBinder{})
		in := validInput()
		in.EndDate = in.StartDate.AddDate(0, 0, -1)
		if _, err := uc.Submit(ctx, 7, in, allStaged()); !errors.Is(err, ErrInvalidDateRange) {
			t.Errorf("expected ErrInvalidDateRange, got %v", err)
		}
	})

	t.Run("binding failure keeps the row and records the bound paths", func(t *testing.T) {
		var savedPaths map[string]string
		repo := &mockApplicationRepository{
			CreateFunc: func(ctx context.Context, a *entity.Application) error {
				a.ID = 42
				return nil
			},
			UpdateDocumentPathsFunc: func(ctx context.Context, id uint, paths map[string]string) error {
				savedPaths = paths
				return nil
			},
			DeleteFunc: func(ctx context.Context, id uint) error {
				t.Error("a binding failure must not delete the row")
				return nil
			},
		}
		binder := &mockFileBinder{
			BindFunc: func(appID uint, staged []*storage.StagedFile) (map[string]string, error) {
				return map[string]string{entity.DocKTP: "42/42_ktp.pdf"}, errors.New("disk full")
			},
		}
		uc := NewApplicationUsecase(repo, activePositionReader(), binder)

		_, err := uc.Submit(ctx, 7, validInput(), allStaged())
		if err == nil {
			t.Fatal("expected error but got nil")
		}
		if len(savedPaths) != 1 {
			t.Errorf("partially bound paths must still be recorded, got %v", savedPaths)
		}
	})
}

func TestApplicationUsecase_Delete(t *testing.T) {
	ctx := context.Background()

	pendingOf := func(owner uint) *entity.Application {
		return &entity.Application{ID: 42, UserID: owner, Status: entity.StatusPending}
	}

	t.Run("owner deletes a pending application and its folder", func(t *testing.T) {
		deleted := false
		repo := &mockApplicationRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Application, error) {
				return pendingOf(7), nil
			},
			DeleteFunc: func(ctx context.Context, id uint) error {
				deleted = true
				return nil
			},
		}
		binder := &mockFileBinder{}
		uc := NewApplicationUsecase(repo, activePositionReader(), binder)

		if err := uc.Delete(ctx, 42, 7, false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !deleted {
			t.Error("row was not deleted")
		}
		if len(binder.removedAll) != 1 || binder.removedAll[0] != 42 {
			t.Errorf("folder 42 was not removed, got %v", binder.removedAll)
		}
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		repo := &mockApplicationRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Application, error) {
				return pendingOf(7), nil
			},
		}
		uc := NewApplicationUsecase(repo, activePositionReader(), &mockFileBinder{})
		if err := uc.Delete(ctx, 42, 8, false); !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("owner cannot delete once the review started", func(t *testing.T) {
		repo := &mockApplicationRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Application, error) {
				a := pendingOf(7)
				a.Status = entity.StatusReview
				return a, nil
			},
		}
		uc := NewApplicationUsecase(repo, activePositionReader(), &mockFileBinder{})
		if err := uc.Delete(ctx, 42, 7, false); !errors.Is(err, ErrNotPending) {
			t.Errorf("expected ErrNotPending, got %v", err)
		}
	})

	t.Run("admin may delete at any status", func(t *testing.T) {
		repo := &mockApplicationRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Application, error) {
				a := pendingOf(7)
				a.Status = entity.StatusAccepted
				return a, nil
			},
		}
		uc := NewApplicationUsecase(repo, activePositionReader(), &mockFileBinder{})
		if err := uc.Delete(ctx, 42, 99, true); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestApplicationUsecase_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("decision records reviewer and time", func(t *testing.T) {
		stored := &entity.Application{ID: 42, UserID: 7, Status: entity.StatusPending}
		repo := &mockApplicationRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Application, error) {
				return stored, nil
			},
			UpdateFunc: func(ctx context.Context, a *entity.Application) error {
				stored = a
				return nil
			},
		}
		uc := NewApplicationUsecase(repo, activePositionReader(), &mockFileBinder{})

		app, err := uc.SetStatus(ctx, 42, entity.StatusAccepted, "lengkap", 99)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if app.Status != entity.StatusAccepted {
			t.Errorf("expected status accepted, got %q", app.Status)
		}
		if app.ReviewedBy == nil || *app.ReviewedBy != 99 {
			t.Error("reviewer was not recorded")
		}
		if app.ReviewedAt == nil {
			t.Error("review time was not recorded")
		}
		if app.AdminNotes != "lengkap" {
			t.Errorf("expected notes to be stored, got %q", app.AdminNotes)
		}
	})

	t.Run("a decided application can be re-decided", func(t *testing.T) {
		stored := &entity.Application{ID: 42, UserID: 7, Status: entity.StatusRejected}
		repo := &mockApplicationRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Application, error) {
				return stored, nil
			},
			UpdateFunc: func(ctx context.Context, a *entity.Application) error {
				stored = a
				return nil
			},
		}
		uc := NewApplicationUsecase(repo, activePositionReader(), &mockFileBinder{})

		app, err := uc.SetStatus(ctx, 42, entity.StatusPending, "", 99)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if app.Status != entity.StatusPending {
			t.Errorf("expected status pending, got %q", app.Status)
		}
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		uc := NewApplicationUsecase(&mockApplicationRepository{}, activePositionReader(), &mockFileBinder{})
		if _, err := uc.SetStatus(ctx, 42, entity.Status("archived"), "", 99); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("empty notes keep the previous notes", func(t *testing.T) {
		stored := &entity.Application{ID: 42, Status: entity.StatusReview, AdminNotes: "catatan lama"}
		repo := &mockApplicationRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Application, error) {
				return stored, nil
			},
			UpdateFunc: func(ctx context.Context, a *entity.Application) error {
				stored = a
				return nil
			},
		}
		uc := NewApplicationUsecase(repo, activePositionReader(), &mockFileBinder{})

		app, err := uc.SetStatus(ctx, 42, entity.StatusAccepted, "", 99)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if app.AdminNotes != "catatan lama" {
			t.Errorf("expected previous notes preserved, got %q", app.AdminNotes)
		}
	})
}

func TestApplicationUsecase_DocumentPath(t *testing.T) {
	ctx := context.Background()

	repoFor := func(owner uint) *mockApplicationRepository {
		return &mockApplicationRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Application, error) {
				return &entity.Application{ID: id, UserID: owner}, nil
			},
		}
	}

	t.Run("owner may download their own document", func(t *testing.T) {
		uc := NewApplicationUsecase(repoFor(7), activePositionReader(), &mockFileBinder{})
		abs, err := uc.DocumentPath(ctx, "42/42_ktp.pdf", 7, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if abs == "" {
			t.Error("expected a resolved path")
		}
	})

	// Wildcard route params keep their leading slash, so this path exercises
	// the real storage resolver with the exact value the handler forwards.
	t.Run("leading slash from the route param resolves against real storage", func(t *testing.T) {
		root := t.TempDir()
		store, err := storage.NewStorage(root, t.TempDir(), 5<<20)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		dir := filepath.Join(root, "42")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		bound := filepath.Join(dir, "42_ktp.pdf")
		if err := os.WriteFile(bound, []byte("%PDF-1.4"), 0o644); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		uc := NewApplicationUsecase(repoFor(7), activePositionReader(), store)
		abs, err := uc.DocumentPath(ctx, "/42/42_ktp.pdf", 7, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if abs != bound {
			t.Errorf("expected %q, got %q", bound, abs)
		}
		if _, err := os.Stat(abs); err != nil {
			t.Errorf("resolved path is not a readable file: %v", err)
		}
	})

	t.Run("another citizen is forbidden", func(t *testing.T) {
		uc := NewApplicationUsecase(repoFor(7), activePositionReader(), &mockFileBinder{})
		if _, err := uc.DocumentPath(ctx, "42/42_ktp.pdf", 8, false); !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("admin may download any document", func(t *testing.T) {
		uc := NewApplicationUsecase(repoFor(7), activePositionReader(), &mockFileBinder{})
		if _, err := uc.DocumentPath(ctx, "42/42_ktp.pdf", 99, true); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("path escape maps to forbidden", func(t *testing.T) {
		binder := &mockFileBinder{
			ResolveFunc: func(relPath string) (string, error) {
				return "", storage.ErrPathEscape
			},
		}
		uc := NewApplicationUsecase(repoFor(7), activePositionReader(), binder)
		if _, err := uc.DocumentPath(ctx, "42/../../etc/passwd", 7, false); !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("non-numeric folder is not found", func(t *testing.T) {
		uc := NewApplicationUsecase(repoFor(7), activePositionReader(), &mockFileBinder{})
		if _, err := uc.DocumentPath(ctx, "etc/passwd", 7, false); !errors.Is(err, ErrApplicationNotFound) {
			t.Errorf("expected ErrApplicationNotFound, got %v", err)
		}
	})
}
