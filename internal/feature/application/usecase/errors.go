// Package usecase implements the business logic for the application feature.
package usecase

import "errors"

var (
	// ErrApplicationNotFound is returned when no application exists with
	// the given ID.
	ErrApplicationNotFound = errors.New("application not found")

	// ErrPositionNotFound is returned when the submitted position ID does
	// not reference an existing position.
	ErrPositionNotFound = errors.New("position not found")

	// ErrPositionInactive is returned when submitting to a deactivated
	// position.
	ErrPositionInactive = errors.New("position is not accepting applications")

	// ErrTypeNotAllowed is returned when the position restricts applicants
	// to the other category.
	ErrTypeNotAllowed = errors.New("position is not open to this applicant type")

	// ErrQuotaFull is returned when the position already holds as many
	// accepted applications as its quota allows.
	ErrQuotaFull = errors.New("position quota is full")

	// ErrSlotLimitReached is returned when the owner already has the
	// maximum number of active applications.
	ErrSlotLimitReached = errors.New("active application limit reached")

	// ErrInvalidApplicantType is returned for an unknown applicant type.
	ErrInvalidApplicantType = errors.New("invalid applicant type")

	// ErrInvalidNIK is returned when the national ID is not exactly 16
	// digits.
	ErrInvalidNIK = errors.New("NIK must be exactly 16 digits")

	// ErrInvalidDateRange is returned when the end date is not after the
	// start date.
	ErrInvalidDateRange = errors.New("end date must be after start date")

	// ErrMissingDocument is returned when a mandatory document kind is not
	// attached.
	ErrMissingDocument = errors.New("missing mandatory document")

	// ErrDuplicateRegistration is returned by the repository when a
	// registration number is already taken. Submit retries with the next
	// suffix; the error only surfaces when the retries run out.
	ErrDuplicateRegistration = errors.New("registration number already taken")

	// ErrInvalidStatus is returned for an unknown status value.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrForbidden is returned when the caller is neither the owner nor an
	// admin.
	ErrForbidden = errors.New("not allowed")

	// ErrNotPending is returned when an owner deletes an application that
	// has already entered review.
	ErrNotPending = errors.New("only pending applications can be deleted")
)
