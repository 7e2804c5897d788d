package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// AppError is the error type every layer hands back to the transport.
type AppError struct {
	Code     ErrorCode `json:"code"`
	Domain   string    `json:"domain"`
	Message  string    `json:"message"`
	Err      error     `json:"-"`
	HTTPCode int       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// MarshalJSON hides the wrapped cause from clients.
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode `json:"code"`
		Domain  string    `json:"domain"`
		Message string    `json:"message"`
	}
	return json.Marshal(&alias{Code: e.Code, Domain: e.Domain, Message: e.Message})
}

func New(code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{Code: code, Domain: domain, Message: message, HTTPCode: httpCode}
}

func Wrap(err error, code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{Code: code, Domain: domain, Message: message, Err: err, HTTPCode: httpCode}
}

func NotFound(domain, message string) *AppError {
	return New(CodeNotFound, domain, message, http.StatusNotFound)
}

func DuplicateEmail(err error) *AppError {
	return Wrap(err, CodeDuplicateEmail, "user", "Email already registered", http.StatusConflict)
}

func WrongPassword() *AppError {
	return New(CodeWrongPassword, "auth", "Wrong password", http.StatusUnauthorized)
}

func Unverified() *AppError {
	return New(CodeUnverified, "auth", "Account not verified, please verify", http.StatusForbidden)
}

func InvalidTransition(domain, message string) *AppError {
	return New(CodeInvalidTransition, domain, message, http.StatusConflict)
}

// PersistenceFailure wraps a store error that is not a lookup miss or conflict.
func PersistenceFailure(err error, domain string) *AppError {
	return Wrap(err, CodePersistenceFailure, domain, "Storage operation failed", http.StatusInternalServerError)
}

func Validation(domain, message string) *AppError {
	return New(CodeValidationFailed, domain, message, http.StatusBadRequest)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, "auth", message, http.StatusUnauthorized)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, "auth", message, http.StatusForbidden)
}

func NotImplemented(domain, message string) *AppError {
	return New(CodeNotImplemented, domain, message, http.StatusNotImplemented)
}

func Internal(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)
}

// From returns err as an *AppError, wrapping unknown errors as internal.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// HasCode reports whether err is, or wraps, an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
