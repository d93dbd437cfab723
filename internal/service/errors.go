package service

import "errors"

// Domain errors returned by the orchestrator. Controllers map these onto
// HTTP statuses; the messages are safe to show to clients.
var (
	ErrEmptyWord        = errors.New("missing word")
	ErrSessionNotFound  = errors.New("no session with this code exists")
	ErrSessionInactive  = errors.New("session is not active")
	ErrMalformedSession = errors.New("session has no associated class")
	ErrStudentNotFound  = errors.New("no student with this file number in this class")
	ErrClassNotFound    = errors.New("class not found or access denied")
	ErrQuotaExceeded    = errors.New("limit reached")
	ErrCodeExhausted    = errors.New("could not generate a unique session code")
)
