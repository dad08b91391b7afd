// Package common defines shared constants and sentinel errors used across
// client and server layers of OceanChat. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Registration validation errors.
	ErrDuplicateID = errors.New("id already taken")
	ErrIDTooShort  = errors.New("id too short (minimum 5 characters)")

	// Session lifecycle errors.
	ErrSessionExpired = errors.New("session expired or invalid")

	// Notification resolution: the referenced message was pruned from the log.
	ErrMessageTooOld = errors.New("message too old")
)
