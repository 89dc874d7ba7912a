package domain

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrInvalidPagination  = errors.New("Page number must be an integer")
	ErrImageExtension     = errors.New("Invalid image format")
	ErrImageTooLarge      = errors.New("image exceeds the maximum allowed size")
	ErrUnauthorized       = errors.New("unauthorized")
)

// Resource names used in error messages.
const (
	ResourceUser    = "User"
	ResourceData    = "Data"
	ResourceService = "Service"
)

// NotFoundError reports that no record of Resource has the given ID.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func NewNotFound(resource string, id int64) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError reports a unique constraint violation detected by the store at commit.
type ConflictError struct {
	Resource string
	Field    string
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("a conflicting %s already exists", lower(e.Resource))
	}
	return fmt.Sprintf("a %s with this %s already exists", lower(e.Resource), e.Field)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

func NewConflict(resource, field string) error {
	return &ConflictError{Resource: resource, Field: field}
}

func lower(s string) string {
	if s == "" {
		return "record"
	}
	return cases.Lower(language.English).String(s)
}

// UploadError rejects an uploaded file. Message is safe to show to clients.
type UploadError struct {
	Reason  error
	Message string
}

func (e *UploadError) Error() string { return e.Message }

func (e *UploadError) Unwrap() error { return e.Reason }
