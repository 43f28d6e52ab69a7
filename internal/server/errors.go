// Package server provides the HTTP REST API for the resume studio.
package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-studio/internal/drafting"
	"github.com/jonathan/resume-studio/internal/editor"
	"github.com/jonathan/resume-studio/internal/importer"
	"github.com/jonathan/resume-studio/internal/jobs"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrSessionNotFound indicates the editing session does not exist or is
// owned by another user.
type ErrSessionNotFound struct {
	SessionID uuid.UUID
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

// ErrActionInFlight indicates a drafting action is already running for
// the session.
type ErrActionInFlight struct {
	Action string
}

func (e *ErrActionInFlight) Error() string {
	return fmt.Sprintf("%s already in progress", e.Action)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists, *ErrActionInFlight:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	case *ErrUserNotFound, *ErrSessionNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	case *editor.LastEntryError:
		return http.StatusConflict
	case *editor.NotFoundError:
		return http.StatusNotFound
	case *editor.FieldError, *editor.UnknownFieldError:
		return http.StatusBadRequest
	case *drafting.ServiceError, *drafting.MalformedResponseError:
		return http.StatusBadGateway
	case *importer.FetchError, *importer.ParseError:
		return http.StatusBadGateway
	case *jobs.Error:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
