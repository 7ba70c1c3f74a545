package services

import (
	"errors"

	"github.com/sjperalta/aml-lists-api/internal/statemachine"
)

// Common service errors
var (
	ErrNotFound             = errors.New("record not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("role not allowed to perform this action")
	ErrInvalidState         = statemachine.ErrNotPending
	ErrValidation           = errors.New("validation failed")
	ErrUnsupportedFormat    = errors.New("unsupported file format")
	ErrOriginSourceRequired = errors.New("origin source is required")
	ErrNoRowsSelected       = errors.New("no rows selected")
)
