// Package apperror berisi error bisnis yang membawa status HTTP dan pesan untuk pengguna.
package apperror

import (
	"net/http"

	"github.com/pkg/errors"
)

type Error struct {
	Code    int
	Message string
	Fields  map[string]string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

func BadRequest(message string) *Error   { return New(http.StatusBadRequest, message) }
func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }
func Forbidden(message string) *Error    { return New(http.StatusForbidden, message) }
func NotFound(message string) *Error     { return New(http.StatusNotFound, message) }
func Conflict(message string) *Error     { return New(http.StatusConflict, message) }

// Validation membawa pesan per field, dikembalikan sebagai 422.
func Validation(fields map[string]string) *Error {
	return &Error{Code: http.StatusUnprocessableEntity, Message: "Validasi gagal", Fields: fields}
}

// Field adalah jalan pintas untuk error validasi satu field.
func Field(field, message string) *Error {
	return Validation(map[string]string{field: message})
}

// Internal membungkus error infrastruktur dengan pesan umum untuk pengguna.
func Internal(message string, cause error) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: message, cause: cause}
}

// As mengambil *Error dari rantai error.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf mengembalikan status HTTP dari err, 500 bila bukan *Error.
func CodeOf(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
