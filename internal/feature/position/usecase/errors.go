// Package usecase implements the business logic for the position feature.
package usecase

import "errors"

var (
	// ErrPositionNotFound is returned when no position exists with the
	// given ID.
	ErrPositionNotFound = errors.New("position not found")

	// ErrPositionHasAccepted is returned when deleting a position that
	// still holds accepted applications.
	ErrPositionHasAccepted = errors.New("position has accepted applications and cannot be deleted")
)
