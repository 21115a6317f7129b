package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"magang_backend/internal/feature/application/domain/entity"
	posentity "magang_backend/internal/feature/position/domain/entity"
	posusecase "magang_backend/internal/feature/position/usecase"
	"magang_backend/internal/platform/storage"
)

// maxActiveApplications caps how many in-flight applications (pending,
// review or accepted) one account may hold across all positions.
const maxActiveApplications = 3

// maxNumberingAttempts bounds the registration-number retries. The per-day
// sequence comes from a row count, so a same-day deletion or a concurrent
// submission can point it at a taken number; each retry moves one suffix up.
const maxNumberingAttempts = 5

// nikPattern matches a 16-digit national identity number.
var nikPattern = regexp.MustCompile(`^\d{16}$`)

// ListFilter narrows the application listing.
type ListFilter struct {
	// UserID restricts the listing to one owner; 0 means all (admin).
	UserID uint

	Status        entity.Status
	ApplicantType entity.ApplicantType
	PositionID    uint
}

// Stats aggregates application counts for the admin dashboard.
type Stats struct {
	Total        int64
	ByStatus     map[entity.Status]int64
	ByType       map[entity.ApplicantType]int64
	CurrentMonth int64
}

// ApplicationRepository abstracts the persistence layer for applications.
// Following Go convention, the interface is defined by the consumer
// (usecase), not the provider (adapters).
type ApplicationRepository interface {
	Create(ctx context.Context, a *entity.Application) error

	// UpdateDocumentPaths writes the bound file paths back onto an already
	// created row (the second step of the two-phase write).
	UpdateDocumentPaths(ctx context.Context, id uint, paths map[string]string) error

	// FindByID returns the application with position, owner and reviewer
	// summaries preloaded, or ErrApplicationNotFound.
	FindByID(ctx context.Context, id uint) (*entity.Application, error)

	List(ctx context.Context, filter ListFilter) ([]entity.Application, error)
	Update(ctx context.Context, a *entity.Application) error
	Delete(ctx context.Context, id uint) error

	// CountActiveByUser counts the owner's applications in an active
	// status (pending, review, accepted).
	CountActiveByUser(ctx context.Context, userID uint) (int64, error)

	// CountAcceptedByPosition counts a position's accepted applications.
	CountAcceptedByPosition(ctx context.Context, positionID uint) (int64, error)

	// CountCreatedBetween counts applications created in [from, to).
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)

	Stats(ctx context.Context) (*Stats, error)
}

// PositionReader looks up the position being applied to.
type PositionReader interface {
	// FindByID returns the position, or an error satisfying
	// errors.Is(err, ErrPositionNotFound) when it does not exist.
	FindByID(ctx context.Context, id uint) (*posentity.Position, error)
}

// FileBinder moves staged uploads into an application's folder and cleans
// up after deletions and failed submissions.
type FileBinder interface {
	Bind(appID uint, staged []*storage.StagedFile) (map[string]string, error)
	Discard(staged []*storage.StagedFile)
	RemoveAll(appID uint) error
	Resolve(relPath string) (string, error)
}

// SubmitInput carries the validated form fields of a submission.
type SubmitInput struct {
	PositionID    uint
	ApplicantType entity.ApplicantType

	// Mahasiswa group.
	University string
	Faculty    string
	Major      string
	Semester   int
	NIM        string

	// Pelajar group.
	SchoolName string
	Grade      string
	NISN       string

	// Personal identity.
	NIK       string
	FullName  string
	Email     string
	Phone     string
	BirthDate time.Time
	Gender    string
	Address   string

	StartDate time.Time
	EndDate   time.Time
}

// applicationUsecase orchestrates the submission workflow, status
// transitions and the rest of the application lifecycle.
type applicationUsecase struct {
	apps      ApplicationRepository
	positions PositionReader
	files     FileBinder
}

// NewApplicationUsecase creates a new applicationUsecase instance.
func NewApplicationUsecase(apps ApplicationRepository, positions PositionReader, files FileBinder) *applicationUsecase {
	return &applicationUsecase{apps: apps, positions: positions, files: files}
}

// validate checks the form fields before any database work.
func (in *SubmitInput) validate(staged []*storage.StagedFile) error {
	if !in.ApplicantType.Valid() {
		return ErrInvalidApplicantType
	}
	if !nikPattern.MatchString(in.NIK) {
		return ErrInvalidNIK
	}
	if !in.EndDate.After(in.StartDate) {
		return ErrInvalidDateRange
	}

	have := make(map[string]bool, len(staged))
	for _, f := range staged {
		have[f.Kind] = true
	}
	for _, kind := range entity.RequiredDocs {
		if !have[kind] {
			return fmt.Errorf("%w: %s", ErrMissingDocument, kind)
		}
	}
	return nil
}

// registrationNumber builds the human-readable identifier for a submission
// created at the given time: REG-YYYYMMDD-#### with a per-day sequence. The
// offset skips past suffixes the unique index reported as taken.
func (u *applicationUsecase) registrationNumber(ctx context.Context, now time.Time, offset int) (string, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	n, err := u.apps.CountCreatedBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return "", fmt.Errorf("failed to number registration: %w", err)
	}
	return fmt.Sprintf("REG-%s-%04d", now.Format("20060102"), n+1+int64(offset)), nil
}

// Submit runs the application workflow: business-rule checks in a fixed
// order, row creation, file binding, then the path write-back. The quota and
// slot checks are count-then-compare without a wrapping transaction, so two
// concurrent submissions can both pass; single-row writes stay atomic.
func (u *applicationUsecase) Submit(ctx context.Context, ownerID uint, in SubmitInput, staged []*storage.StagedFile) (*entity.Application, error) {
	if err := in.validate(staged); err != nil {
		u.files.Discard(staged)
		return nil, err
	}

	pos, err := u.positions.FindByID(ctx, in.PositionID)
	if err != nil {
		u.files.Discard(staged)
		if errors.Is(err, posusecase.ErrPositionNotFound) {
			return nil, ErrPositionNotFound
		}
		return nil, err
	}
	if !pos.IsActive {
		u.files.Discard(staged)
		return nil, ErrPositionInactive
	}
	if !pos.AllowedType.Accepts(string(in.ApplicantType)) {
		u.files.Discard(staged)
		return nil, ErrTypeNotAllowed
	}

	if pos.Quota > 0 {
		accepted, err := u.apps.CountAcceptedByPosition(ctx, pos.ID)
		if err != nil {
			u.files.Discard(staged)
			return nil, err
		}
		if accepted >= int64(pos.Quota) {
			u.files.Discard(staged)
			return nil, ErrQuotaFull
		}
	}

	active, err := u.apps.CountActiveByUser(ctx, ownerID)
	if err != nil {
		u.files.Discard(staged)
		return nil, err
	}
	if active >= maxActiveApplications {
		u.files.Discard(staged)
		return nil, ErrSlotLimitReached
	}

	app := &entity.Application{
		UserID:        ownerID,
		PositionID:    pos.ID,
		ApplicantType: in.ApplicantType,
		NIK:           in.NIK,
		FullName:      in.FullName,
		Email:         in.Email,
		Phone:         in.Phone,
		BirthDate:     in.BirthDate,
		Gender:        in.Gender,
		Address:       in.Address,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Status:        entity.StatusPending,
	}
	switch in.ApplicantType {
	case entity.TypeMahasiswa:
		app.University = in.University
		app.Faculty = in.Faculty
		app.Major = in.Major
		app.Semester = in.Semester
		app.NIM = in.NIM
	case entity.TypePelajar:
		app.SchoolName = in.SchoolName
		app.Grade = in.Grade
		app.NISN = in.NISN
	}

	// Phase one: create the row to obtain its identifier. Numbering and
	// creation are retried together because the count behind the sequence
	// does not move while the insert keeps failing.
	now := time.Now()
	var createErr error
	for attempt := 0; attempt < maxNumberingAttempts; attempt++ {
		regNum, err := u.registrationNumber(ctx, now, attempt)
		if err != nil {
			u.files.Discard(staged)
			return nil, err
		}
		app.RegistrationNumber = regNum
		createErr = u.apps.Create(ctx, app)
		if !errors.Is(createErr, ErrDuplicateRegistration) {
			break
		}
	}
	if createErr != nil {
		u.files.Discard(staged)
		return nil, fmt.Errorf("failed to create application: %w", createErr)
	}

	// Phase two: bind the staged files and write the paths back. A binding
	// failure does not roll back the row; files moved before the failure
	// stay in place and the remaining temp files are discarded.
	paths, bindErr := u.files.Bind(app.ID, staged)
	if bindErr != nil {
		u.files.Discard(staged)
		slog.Error("file binding failed", "application_id", app.ID, "error", bindErr)
	}
	if len(paths) > 0 {
		if err := u.apps.UpdateDocumentPaths(ctx, app.ID, paths); err != nil {
			return nil, fmt.Errorf("failed to record document paths: %w", err)
		}
	}
	if bindErr != nil {
		return nil, fmt.Errorf("failed to bind documents: %w", bindErr)
	}

	return u.apps.FindByID(ctx, app.ID)
}

// List returns applications visible to the caller.
func (u *applicationUsecase) List(ctx context.Context, filter ListFilter) ([]entity.Application, error) {
	return u.apps.List(ctx, filter)
}

// Get returns one application with its summaries preloaded. The caller is
// responsible for the ownership gate.
func (u *applicationUsecase) Get(ctx context.Context, id uint) (*entity.Application, error) {
	return u.apps.FindByID(ctx, id)
}

// Delete removes an application and its file folder. Owners may delete only
// while pending; admins at any status.
func (u *applicationUsecase) Delete(ctx context.Context, id, callerID uint, isAdmin bool) error {
	app, err := u.apps.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin {
		if app.UserID != callerID {
			return ErrForbidden
		}
		if app.Status != entity.StatusPending {
			return ErrNotPending
		}
	}
	if err := u.apps.Delete(ctx, id); err != nil {
		return err
	}
	if err := u.files.RemoveAll(id); err != nil {
		// The row is gone; an orphaned folder is logged, not surfaced.
		slog.Warn("failed to remove application folder", "application_id", id, "error", err)
	}
	return nil
}

// SetStatus applies a staff decision. Any of the four statuses is accepted
// from any current status; every transition records the reviewer, the
// review time and the optional notes.
func (u *applicationUsecase) SetStatus(ctx context.Context, id uint, status entity.Status, notes string, staffID uint) (*entity.Application, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	app, err := u.apps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	app.Status = status
	app.ReviewedBy = &staffID
	app.ReviewedAt = &now
	if notes != "" {
		app.AdminNotes = notes
	}
	if err := u.apps.Update(ctx, app); err != nil {
		return nil, err
	}
	return u.apps.FindByID(ctx, id)
}

// Stats returns the aggregate counts for the admin dashboard.
func (u *applicationUsecase) Stats(ctx context.Context) (*Stats, error) {
	return u.apps.Stats(ctx)
}

// DocumentPath authorizes and resolves a stored document path for download.
// The leading path segment is the owning application's folder. Wildcard route
// params arrive with a leading slash, so the path is normalized before both
// the segment parse and the resolve.
func (u *applicationUsecase) DocumentPath(ctx context.Context, relPath string, callerID uint, isAdmin bool) (string, error) {
	relPath = strings.TrimPrefix(relPath, "/")
	seg := strings.SplitN(relPath, "/", 2)[0]
	appID, err := strconv.ParseUint(seg, 10, 32)
	if err != nil {
		return "", ErrApplicationNotFound
	}
	app, err := u.apps.FindByID(ctx, uint(appID))
	if err != nil {
		return "", err
	}
	if !isAdmin && app.UserID != callerID {
		return "", ErrForbidden
	}

	abs, err := u.files.Resolve(relPath)
	if err != nil {
		if errors.Is(err, storage.ErrPathEscape) {
			return "", ErrForbidden
		}
		return "", err
	}
	return abs, nil
}
