package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound            = "NOT_FOUND"
	CodeBadRequest          = "BAD_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeConflict            = "CONFLICT"
	CodeInternal            = "INTERNAL_ERROR"
	CodeTooManyRequests     = "TOO_MANY_REQUESTS"
	CodeUnavailable         = "SERVICE_UNAVAILABLE"
	CodeBadGateway          = "BAD_GATEWAY"
	CodeEmptyCart           = "EMPTY_CART"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeInvalidTransition   = "INVALID_TRANSITION"
	CodeRoleMismatch        = "ROLE_MISMATCH"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound, err)
}

func BadRequest(message string, err error) *AppError {
	return New(CodeBadRequest, message, http.StatusBadRequest, err)
}

func Unauthorized(message string, err error) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized, err)
}

func Forbidden(message string, err error) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden, err)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict, nil)
}

func Internal(message string, err error) *AppError {
	return New(CodeInternal, message, http.StatusInternalServerError, err)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequests, message, http.StatusTooManyRequests, nil)
}

func Unavailable(message string, err error) *AppError {
	return New(CodeUnavailable, message, http.StatusServiceUnavailable, err)
}

func BadGateway(message string, err error) *AppError {
	return New(CodeBadGateway, message, http.StatusBadGateway, err)
}

func EmptyCart() *AppError {
	return New(CodeEmptyCart, "No selected items in cart", http.StatusBadRequest, nil)
}

func InsufficientBalance() *AppError {
	return New(CodeInsufficientBalance, "Insufficient balance", http.StatusBadRequest, nil)
}

func InvalidTransition(from, to string) *AppError {
	return New(CodeInvalidTransition, fmt.Sprintf("Cannot change order status from %s to %s", from, to), http.StatusConflict, nil)
}

func RoleMismatch(expected string) *AppError {
	return New(CodeRoleMismatch, fmt.Sprintf("Access denied: this account is not registered as a %s", expected), http.StatusForbidden, nil)
}

// Is reports whether err carries an AppError with the given code.
func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Wrap returns err unchanged if it already is an AppError, otherwise it wraps
// it as an internal error with message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	return Internal(message, err)
}
