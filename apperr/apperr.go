// Package apperr defines the error taxonomy surfaced by the HTTP API.
//
// Every failure a handler can report maps to one *Error carrying the HTTP
// status, a stable machine code and a human message. Collaborator failures that
// do not map to a domain error become Internal and keep their cause for logging
// only.
package apperr

import (
	"errors"
	"net/http"
)

type Code string

const (
	CodeValidation              Code = "VALIDATION_ERROR"
	CodeWeakPassword            Code = "WEAK_PASSWORD"
	CodeInvalidEmail            Code = "INVALID_EMAIL"
	CodeEmailExists             Code = "EMAIL_EXISTS"
	CodeUnauthorized            Code = "UNAUTHORIZED"
	CodeInvalidToken            Code = "INVALID_TOKEN"
	CodeInvalidCredentials      Code = "INVALID_CREDENTIALS"
	CodeUserNotFound            Code = "USER_NOT_FOUND"
	CodeMenuNotFound            Code = "MENU_NOT_FOUND"
	CodeRecipeNotFound          Code = "RECIPE_NOT_FOUND"
	CodeInsufficientIngredients Code = "INSUFFICIENT_INGREDIENTS"
	CodeGenerationFailed        Code = "GENERATION_FAILED"
	CodeRateLimited             Code = "RATE_LIMITED"
	CodeInternal                Code = "INTERNAL_SERVER_ERROR"
)

// Error is an API-facing error.
type Error struct {
	Code    Code
	Status  int
	Message string
	Details map[string]any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same code, so sentinel
// values like ErrUserNotFound match any error built with that code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithDetails returns a copy of e carrying details.
func (e *Error) WithDetails(details map[string]any) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

var (
	ErrUnauthorized       = &Error{Code: CodeUnauthorized, Status: http.StatusUnauthorized, Message: "Authorization token required"}
	ErrInvalidToken       = &Error{Code: CodeInvalidToken, Status: http.StatusUnauthorized, Message: "Invalid token"}
	ErrInvalidCredentials = &Error{Code: CodeInvalidCredentials, Status: http.StatusUnauthorized, Message: "Invalid email or password"}
	ErrEmailExists        = &Error{Code: CodeEmailExists, Status: http.StatusConflict, Message: "This email address is already in use"}
	ErrUserNotFound       = &Error{Code: CodeUserNotFound, Status: http.StatusNotFound, Message: "User not found"}
	ErrMenuNotFound       = &Error{Code: CodeMenuNotFound, Status: http.StatusNotFound, Message: "Weekly menu not found"}
	ErrRecipeNotFound     = &Error{Code: CodeRecipeNotFound, Status: http.StatusNotFound, Message: "Recipe not found"}
	ErrRateLimited        = &Error{Code: CodeRateLimited, Status: http.StatusTooManyRequests, Message: "Too many requests"}
)

func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Status: http.StatusBadRequest, Message: msg}
}

// BodyTooLarge rejects a request body over limit bytes.
func BodyTooLarge(limit int64) *Error {
	return &Error{
		Code:    CodeValidation,
		Status:  http.StatusRequestEntityTooLarge,
		Message: "Request body too large",
		Details: map[string]any{"maxBytes": limit},
	}
}

func WeakPassword(msg string) *Error {
	return &Error{Code: CodeWeakPassword, Status: http.StatusBadRequest, Message: msg}
}

func InvalidEmail(msg string) *Error {
	return &Error{Code: CodeInvalidEmail, Status: http.StatusBadRequest, Message: msg}
}

func InsufficientIngredients(minRequired, provided int) *Error {
	msg := "Select at least one ingredient"
	if minRequired > 1 {
		msg = "At least two ingredients are required to generate recipes"
	}
	return &Error{
		Code:    CodeInsufficientIngredients,
		Status:  http.StatusBadRequest,
		Message: msg,
		Details: map[string]any{"minRequired": minRequired, "provided": provided},
	}
}

func GenerationFailed(available, required int) *Error {
	return &Error{
		Code:    CodeGenerationFailed,
		Status:  http.StatusBadRequest,
		Message: "Not enough recipes match the selected ingredients",
		Details: map[string]any{
			"availableRecipes": available,
			"required":         required,
			"suggestion":       "Try adding more ingredients",
		},
	}
}

// Internal wraps an unexpected collaborator failure. The message is generic.
func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Status: http.StatusInternalServerError, Message: "Internal server error", Err: err}
}

// From converts any error into an *Error, treating unknown errors as Internal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}
