// Package collection implements the role-gated mutators over the persisted
// gallery and date-suggestion collections.
package collection

import "errors"

var (
	// ErrPermissionDenied is returned when a standard-role actor attempts a
	// deletion. The collection is left unchanged.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrEmptyName is returned when a date suggestion has no name.
	ErrEmptyName = errors.New("place name is required")
)
