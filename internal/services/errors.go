package services

import "errors"

// Error taxonomy shared by all services. Handlers map these onto HTTP status
// codes: ErrValidation → 400, ErrNotFound → 404, ErrInvalidCredentials → 401.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
