package domain

import (
	"errors"
	"strings"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("resource not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrImageTransform      = errors.New("image could not be processed")
	ErrStorage             = errors.New("object storage operation failed")
	ErrCDN                 = errors.New("cdn invalidation failed")
	ErrRepository          = errors.New("post repository operation failed")
)

// Error is a typed failure carrying a kind sentinel and a detail that is
// safe to show to API clients. errors.Is matches both the kind and the cause.
type Error struct {
	Kind   error
	Detail string
	Err    error
}

func (e *Error) Error() string {
	parts := []string{e.Kind.Error()}
	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewError wraps err under the given kind.
func NewError(kind error, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

// Validation returns an ErrValidation-kind error with a client-facing detail.
func Validation(detail string) *Error {
	return &Error{Kind: ErrValidation, Detail: detail}
}

// SafeDetail returns the client-facing detail of a typed error, if any.
func SafeDetail(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Detail
	}
	return ""
}
