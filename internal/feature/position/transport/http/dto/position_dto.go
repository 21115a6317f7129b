// Package dto defines data transfer objects for the position feature's HTTP
// transport layer.
package dto

import (
	"time"

	"magang_backend/internal/feature/position/domain/entity"
)

// PositionReq represents the request body for creating or updating a position.
type PositionReq struct {
	Title        string     `json:"title" binding:"required"`
	Department   string     `json:"department" binding:"required"`
	Description  string     `json:"description"`
	Requirements string     `json:"requirements"`
	Quota        int        `json:"quota" binding:"gte=0"`
	Duration     string     `json:"duration"`
	AllowedType  string     `json:"allowed_type" binding:"required,oneof=mahasiswa pelajar both"`
	IsActive     *bool      `json:"is_active"`
	OpenDate     *time.Time `json:"open_date"`
	CloseDate    *time.Time `json:"close_date"`
}

// Apply copies the request fields onto a position entity.
func (r PositionReq) Apply(p *entity.Position) {
	p.Title = r.Title
	p.Department = r.Department
	p.Description = r.Description
	p.Requirements = r.Requirements
	p.Quota = r.Quota
	p.Duration = r.Duration
	p.AllowedType = entity.AllowedType(r.AllowedType)
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	p.OpenDate = r.OpenDate
	p.CloseDate = r.CloseDate
}

// PositionRes is the public projection of a position.
type PositionRes struct {
	ID           uint       `json:"id"`
	Title        string     `json:"title"`
	Department   string     `json:"department"`
	Description  string     `json:"description"`
	Requirements string     `json:"requirements"`
	Quota        int        `json:"quota"`
	Duration     string     `json:"duration"`
	AllowedType  string     `json:"allowed_type"`
	IsActive     bool       `json:"is_active"`
	OpenDate     *time.Time `json:"open_date,omitempty"`
	CloseDate    *time.Time `json:"close_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// FromPosition maps a position entity to its public projection.
func FromPosition(p *entity.Position) PositionRes {
	return PositionRes{
		ID:           p.ID,
		Title:        p.Title,
		Department:   p.Department,
		Description:  p.Description,
		Requirements: p.Requirements,
		Quota:        p.Quota,
		Duration:     p.Duration,
		AllowedType:  string(p.AllowedType),
		IsActive:     p.IsActive,
		OpenDate:     p.OpenDate,
		CloseDate:    p.CloseDate,
		CreatedAt:    p.CreatedAt,
	}
}

// FromPositions maps a slice of position entities.
func FromPositions(positions []entity.Position) []PositionRes {
	out := make([]PositionRes, 0, len(positions))
	for i := range positions {
		out = append(out, FromPosition(&positions[i]))
	}
	return out
}
