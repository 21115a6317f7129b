// Package dto defines data transfer objects for the application feature's
// HTTP transport layer. JSON and form fields use snake_case; the mapping to
// the canonical entity fields happens here and nowhere else.
package dto

import (
	"time"

	"magang_backend/internal/feature/application/domain/entity"
	"magang_backend/internal/feature/application/usecase"
)

// SubmitReq represents the multipart form fields of POST /applications.
// The five mandatory file parts (ktp, kk, surat_lamaran, foto, cv) and the
// optional surat_rekomendasi travel alongside these fields.
type SubmitReq struct {
	PositionID    uint   `form:"position_id" binding:"required"`
	ApplicantType string `form:"applicant_type" binding:"required,oneof=mahasiswa pelajar"`

	// Mahasiswa group.
	University string `form:"university"`
	Faculty    string `form:"faculty"`
	Major      string `form:"major"`
	Semester   int    `form:"semester"`
	NIM        string `form:"nim"`

	// Pelajar group.
	SchoolName string `form:"school_name"`
	Grade      string `form:"grade"`
	NISN       string `form:"nisn"`

	// Personal identity.
	NIK       string    `form:"nik" binding:"required,len=16,numeric"`
	FullName  string    `form:"full_name" binding:"required"`
	Email     string    `form:"email" binding:"required,email"`
	Phone     string    `form:"phone" binding:"required"`
	BirthDate time.Time `form:"birth_date" binding:"required" time_format:"2006-01-02"`
	Gender    string    `form:"gender" binding:"required,oneof=L P"`
	Address   string    `form:"address" binding:"required"`

	StartDate time.Time `form:"start_date" binding:"required" time_format:"2006-01-02"`
	EndDate   time.Time `form:"end_date" binding:"required" time_format:"2006-01-02"`
}

// ToInput maps the form fields to the workflow input.
func (r SubmitReq) ToInput() usecase.SubmitInput {
	return usecase.SubmitInput{
		PositionID:    r.PositionID,
		ApplicantType: entity.ApplicantType(r.ApplicantType),
		University:    r.University,
		Faculty:       r.Faculty,
		Major:         r.Major,
		Semester:      r.Semester,
		NIM:           r.NIM,
		SchoolName:    r.SchoolName,
		Grade:         r.Grade,
		NISN:          r.NISN,
		NIK:           r.NIK,
		FullName:      r.FullName,
		Email:         r.Email,
		Phone:         r.Phone,
		BirthDate:     r.BirthDate,
		Gender:        r.Gender,
		Address:       r.Address,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
	}
}

// StatusReq represents the request body for PUT /applications/:id/status.
type StatusReq struct {
	Status string `json:"status" binding:"required,oneof=pending review accepted rejected"`
	Notes  string `json:"notes"`
}

// PositionSummary is the joined position projection inside an application.
type PositionSummary struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	Department string `json:"department"`
}

// ReviewerSummary is the joined reviewer projection.
type ReviewerSummary struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
}

// ApplicationRes is the public projection of an application.
type ApplicationRes struct {
	ID                 uint   `json:"id"`
	RegistrationNumber string `json:"registration_number"`
	Status             string `json:"status"`
	ApplicantType      string `json:"applicant_type"`

	University string `json:"university,omitempty"`
	Faculty    string `json:"faculty,omitempty"`
	Major      string `json:"major,omitempty"`
	Semester   int    `json:"semester,omitempty"`
	NIM        string `json:"nim,omitempty"`

	SchoolName string `json:"school_name,omitempty"`
	Grade      string `json:"grade,omitempty"`
	NISN       string `json:"nisn,omitempty"`

	NIK       string `json:"nik"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birth_date"`
	Gender    string `json:"gender"`
	Address   string `json:"address"`

	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	Documents map[string]string `json:"documents"`

	Position *PositionSummary `json:"position,omitempty"`

	Reviewer   *ReviewerSummary `json:"reviewer,omitempty"`
	ReviewedAt *time.Time       `json:"reviewed_at,omitempty"`
	AdminNotes string           `json:"admin_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

const dateLayout = "2006-01-02"

// FromApplication maps an application entity to its public projection.
func FromApplication(a *entity.Application) ApplicationRes {
	res := ApplicationRes{
		ID:                 a.ID,
		RegistrationNumber: a.RegistrationNumber,
		Status:             string(a.Status),
		ApplicantType:      string(a.ApplicantType),
		University:         a.University,
		Faculty:            a.Faculty,
		Major:              a.Major,
		Semester:           a.Semester,
		NIM:                a.NIM,
		SchoolName:         a.SchoolName,
		Grade:              a.Grade,
		NISN:               a.NISN,
		NIK:                a.NIK,
		FullName:           a.FullName,
		Email:              a.Email,
		Phone:              a.Phone,
		BirthDate:          a.BirthDate.Format(dateLayout),
		Gender:             a.Gender,
		Address:            a.Address,
		StartDate:          a.StartDate.Format(dateLayout),
		EndDate:            a.EndDate.Format(dateLayout),
		Documents:          a.DocumentPaths(),
		ReviewedAt:         a.ReviewedAt,
		AdminNotes:         a.AdminNotes,
		CreatedAt:          a.CreatedAt,
	}
	if a.Position.ID != 0 {
		res.Position = &PositionSummary{
			ID:         a.Position.ID,
			Title:      a.Position.Title,
			Department: a.Position.Department,
		}
	}
	if a.Reviewer != nil {
		res.Reviewer = &ReviewerSummary{ID: a.Reviewer.ID, FullName: a.Reviewer.FullName}
	}
	return res
}

// FromApplications maps a slice of application entities.
func FromApplications(apps []entity.Application) []ApplicationRes {
	out := make([]ApplicationRes, 0, len(apps))
	for i := range apps {
		out = append(out, FromApplication(&apps[i]))
	}
	return out
}

// StatsRes is the response body for GET /applications/stats.
type StatsRes struct {
	Total        int64            `json:"total"`
	ByStatus     map[string]int64 `json:"by_status"`
	ByType       map[string]int64 `json:"by_type"`
	CurrentMonth int64            `json:"current_month"`
}

// FromStats maps the aggregate counts.
func FromStats(s *usecase.Stats) StatsRes {
	res := StatsRes{
		Total:        s.Total,
		ByStatus:     make(map[string]int64, len(s.ByStatus)),
		ByType:       make(map[string]int64, len(s.ByType)),
		CurrentMonth: s.CurrentMonth,
	}
	for k, v := range s.ByStatus {
		res.ByStatus[string(k)] = v
	}
	for k, v := range s.ByType {
		res.ByType[string(k)] = v
	}
	return res
}
