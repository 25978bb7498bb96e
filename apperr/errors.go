package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when the caller has no valid session or credentials
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when the caller is authenticated but lacks the admin role
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when a row addressed by id does not exist
	ErrNotFound = errors.New("not found")
	// ErrDatabaseUnavailable is returned by writes when no database is configured
	ErrDatabaseUnavailable = errors.New("database unavailable")
)

// ValidationError reports a missing or malformed input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validation builds a ValidationError
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err wraps a ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// ImageLoadError reports that one of the compositing inputs could not be fetched or decoded.
// Asset is "background" or "overlay".
type ImageLoadError struct {
	Asset string
	Ref   string
	Err   error
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("failed to load %s image %s: %v", e.Asset, shortRef(e.Ref), e.Err)
}

func (e *ImageLoadError) Unwrap() error { return e.Err }

// NotificationDispatchError reports a failed best-effort notification
type NotificationDispatchError struct {
	Channel string
	Err     error
}

func (e *NotificationDispatchError) Error() string {
	return fmt.Sprintf("notification via %s failed: %v", e.Channel, e.Err)
}

func (e *NotificationDispatchError) Unwrap() error { return e.Err }

// shortRef keeps data URIs out of log lines
func shortRef(ref string) string {
	const max = 64
	if len(ref) <= max {
		return ref
	}
	return ref[:max] + "..."
}
