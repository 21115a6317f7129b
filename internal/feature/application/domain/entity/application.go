// Package entity defines the domain entities for the application feature.
package entity

import (
	"time"

	authentity "magang_backend/internal/feature/auth/domain/entity"
	posentity "magang_backend/internal/feature/position/domain/entity"
)

// ApplicantType is the closed set of applicant categories.
type ApplicantType string

const (
	// TypeMahasiswa is a university student.
	TypeMahasiswa ApplicantType = "mahasiswa"
	// TypePelajar is a secondary-school pupil.
	TypePelajar ApplicantType = "pelajar"
)

// Valid reports whether t is one of the defined categories.
func (t ApplicantType) Valid() bool {
	return t == TypeMahasiswa || t == TypePelajar
}

// Status is the closed set of application states.
type Status string

const (
	// StatusPending is the initial state of every submission.
	StatusPending Status = "pending"
	// StatusReview marks an application a staff member is working on.
	StatusReview Status = "review"
	// StatusAccepted is a final positive decision.
	StatusAccepted Status = "accepted"
	// StatusRejected is a final negative decision.
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the defined states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReview, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// ActiveStatuses are the states that count against the per-user slot limit.
var ActiveStatuses = []Status{StatusPending, StatusReview, StatusAccepted}

// Document kinds, used as multipart field names and in stored filenames.
const (
	DocKTP            = "ktp"
	DocFamilyCard     = "kk"
	DocCoverLetter    = "surat_lamaran"
	DocPhoto          = "foto"
	DocCV             = "cv"
	DocReferralLetter = "surat_rekomendasi"
)

// RequiredDocs lists the five mandatory document kinds.
var RequiredDocs = []string{DocKTP, DocFamilyCard, DocCoverLetter, DocPhoto, DocCV}

// Application is the central entity: one citizen applying to one position.
type Application struct {
	ID uint `gorm:"primaryKey"`

	// UserID references the owning account. Deleting the account deletes
	// its applications.
	UserID uint            `gorm:"not null;index"`
	User   authentity.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	// PositionID references the internship opening applied to.
	PositionID uint               `gorm:"not null;index"`
	Position   posentity.Position `gorm:"foreignKey:PositionID;constraint:OnDelete:CASCADE"`

	// ApplicantType selects which of the two field groups below applies.
	ApplicantType ApplicantType `gorm:"size:16;not null"`

	// Mahasiswa group; set only when ApplicantType is mahasiswa.
	University string `gorm:"size:255"`
	Faculty    string `gorm:"size:255"`
	Major      string `gorm:"size:255"`
	Semester   int
	NIM        string `gorm:"size:32"`

	// Pelajar group; set only when ApplicantType is pelajar.
	SchoolName string `gorm:"size:255"`
	Grade      string `gorm:"size:32"`
	NISN       string `gorm:"size:32"`

	// Personal identity fields.
	NIK       string    `gorm:"size:16;not null"`
	FullName  string    `gorm:"size:255;not null"`
	Email     string    `gorm:"size:255;not null"`
	Phone     string    `gorm:"size:32;not null"`
	BirthDate time.Time `gorm:"not null"`
	Gender    string    `gorm:"size:16;not null"`
	Address   string    `gorm:"type:text;not null"`

	// Requested internship period.
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`

	// Document paths, relative to the uploads root. Five mandatory, the
	// referral letter optional.
	KTPPath            string `gorm:"size:512"`
	FamilyCardPath     string `gorm:"size:512"`
	CoverLetterPath    string `gorm:"size:512"`
	PhotoPath          string `gorm:"size:512"`
	CVPath             string `gorm:"size:512"`
	ReferralLetterPath string `gorm:"size:512"`

	// Status starts at pending and is mutated only by staff review.
	Status Status `gorm:"size:16;not null;default:pending;index"`

	// Review audit fields. ReviewedBy is a nullable reference with no
	// cascade; deleting a staff account keeps the audit trail.
	ReviewedBy *uint
	Reviewer   *authentity.User `gorm:"foreignKey:ReviewedBy"`
	ReviewedAt *time.Time
	AdminNotes string `gorm:"type:text"`

	// RegistrationNumber is the human-readable identifier, assigned
	// exactly once at creation. Pattern REG-YYYYMMDD-####.
	RegistrationNumber string `gorm:"uniqueIndex;size:32;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SetDocumentPath writes one bound document's relative path onto the record.
// Unknown kinds are ignored.
func (a *Application) SetDocumentPath(kind, relPath string) {
	switch kind {
	case DocKTP:
		a.KTPPath = relPath
	case DocFamilyCard:
		a.FamilyCardPath = relPath
	case DocCoverLetter:
		a.CoverLetterPath = relPath
	case DocPhoto:
		a.PhotoPath = relPath
	case DocCV:
		a.CVPath = relPath
	case DocReferralLetter:
		a.ReferralLetterPath = relPath
	}
}

// DocumentPaths returns the non-empty document paths keyed by kind.
func (a *Application) DocumentPaths() map[string]string {
	out := make(map[string]string, 6)
	for kind, p := range map[string]string{
		DocKTP:            a.KTPPath,
		DocFamilyCard:     a.FamilyCardPath,
		DocCoverLetter:    a.CoverLetterPath,
		DocPhoto:          a.PhotoPath,
		DocCV:             a.CVPath,
		DocReferralLetter: a.ReferralLetterPath,
	} {
		if p != "" {
			out[kind] = p
		}
	}
	return out
}
