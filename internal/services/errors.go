package services

import "errors"

// Common service errors
var (
	ErrNotFound            = errors.New("record not found")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrUnauthorized        = errors.New("not authorized")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrConcurrentUpdate    = errors.New("application was modified by another request")
	ErrDuplicate           = errors.New("duplicate record")
	ErrInvalidRecoveryCode = errors.New("recovery code invalid or expired")
)
