package services

import "errors"

// Business-rule failures surfaced by the service layer. Handlers map
// them onto HTTP statuses; wrap with fmt.Errorf("%w: ...") to attach
// detail without losing the class.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidArgument = errors.New("invalid argument")
)
