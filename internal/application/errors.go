package application

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrAccountExists      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStore              = errors.New("store failure")

	ErrMediaUnavailable = errors.New("media storage unavailable")
	ErrUnsupportedMedia = errors.New("only image and video uploads are supported")
	ErrMediaTooLarge    = errors.New("media too large")
)

// ValidationError reports missing or malformed input. Fields maps the JSON
// field name to a short reason.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// StoreError wraps a persistence failure with the operation that hit it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStore }

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// MediaTooLargeError carries the limit that was exceeded.
type MediaTooLargeError struct {
	Kind  MediaKind
	Limit int64
}

func (e *MediaTooLargeError) Error() string {
	if e.Kind == MediaVideo {
		return fmt.Sprintf("Video file is too large. Maximum size is %dMB.", e.Limit>>20)
	}
	return fmt.Sprintf("Image file is too large. Maximum size is %dMB.", e.Limit>>20)
}

func (e *MediaTooLargeError) Is(target error) bool { return target == ErrMediaTooLarge }
