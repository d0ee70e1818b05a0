package apperrors

import "errors"

var (
	ErrLockStoreUnavailable = errors.New("lock store unavailable")
	ErrTicketClassNotFound = errors.New("ticket class not found")
	ErrInvalidSessionToken = errors.New("invalid session token")
	ErrInvalidSessionKey = errors.New("invalid session transport key")
	ErrInternalServerError = errors.New("internal server error")
)
