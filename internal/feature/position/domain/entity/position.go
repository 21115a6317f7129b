// Package entity defines the domain entities for the position feature.
package entity

import "time"

// AllowedType restricts which applicant category may apply to a position.
type AllowedType string

const (
	// AllowMahasiswa restricts a position to university students.
	AllowMahasiswa AllowedType = "mahasiswa"
	// AllowPelajar restricts a position to secondary-school pupils.
	AllowPelajar AllowedType = "pelajar"
	// AllowBoth opens a position to both categories.
	AllowBoth AllowedType = "both"
)

// Valid reports whether t is one of the defined restrictions.
func (t AllowedType) Valid() bool {
	return t == AllowMahasiswa || t == AllowPelajar || t == AllowBoth
}

// Accepts reports whether an applicant of the given category may apply.
func (t AllowedType) Accepts(applicantType string) bool {
	return t == AllowBoth || string(t) == applicantType
}

// Position represents an internship opening published by staff.
type Position struct {
	ID uint `gorm:"primaryKey"`

	Title      string `gorm:"size:255;not null"`
	Department string `gorm:"size:255;not null"`

	Description  string `gorm:"type:text"`
	Requirements string `gorm:"type:text"`

	// Quota is the maximum number of accepted applications; 0 means
	// unlimited.
	Quota int `gorm:"not null;default:0"`

	// Duration is a human-readable label such as "3 bulan".
	Duration string `gorm:"size:64"`

	// AllowedType restricts who may apply: mahasiswa, pelajar, or both.
	AllowedType AllowedType `gorm:"size:16;not null;default:both"`

	// IsActive gates new submissions.
	IsActive bool `gorm:"not null;default:true"`

	// OpenDate and CloseDate are optional display dates for the posting.
	OpenDate  *time.Time
	CloseDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
