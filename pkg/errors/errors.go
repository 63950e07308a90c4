package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed error with HTTP awareness. Message is always safe to show a user.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors by code so cloned errors still compare equal to their template.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Codes used across the gateway.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeUpstream   = "UPSTREAM_ERROR"
	CodeNetwork    = "NETWORK_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// Predefined errors for common scenarios.
var (
	ErrNotFound             = New("NOT_FOUND", http.StatusNotFound, "data tidak ditemukan")
	ErrForbidden            = New("FORBIDDEN", http.StatusForbidden, "anda tidak memiliki akses")
	ErrUnauthorized         = New("UNAUTHORIZED", http.StatusUnauthorized, "sesi tidak valid, silakan masuk kembali")
	ErrConflict             = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation           = New(CodeValidation, http.StatusBadRequest, "validasi gagal")
	ErrUpstream             = New(CodeUpstream, http.StatusBadGateway, "server mengembalikan kesalahan")
	ErrNetwork              = New(CodeNetwork, http.StatusBadGateway, "tidak dapat terhubung ke server, periksa koneksi jaringan anda")
	ErrInternal             = New(CodeInternal, http.StatusInternalServerError, "terjadi kesalahan")
	ErrInvalidStatus        = New("INVALID_STATUS", http.StatusBadRequest, "status tidak dikenal")
	ErrReviewNotSaved       = New("REVIEW_NOT_SAVED", http.StatusPreconditionFailed, "simpan reviu terlebih dahulu sebelum mengubah status")
	ErrInvalidTransition    = New("INVALID_TRANSITION", http.StatusConflict, "perubahan status tidak diizinkan")
	ErrReviewLocked         = New("REVIEW_LOCKED", http.StatusConflict, "reviu sudah disetujui dan tidak dapat diubah")
	ErrThreadClosed         = New("THREAD_CLOSED", http.StatusConflict, "diskusi sudah ditutup")
	ErrSendInFlight         = New("SEND_IN_FLIGHT", http.StatusTooManyRequests, "pesan sebelumnya masih dikirim")
	ErrUnknownRole          = New("UNKNOWN_ROLE", http.StatusForbidden, "peran pengguna tidak dikenal, hubungi administrator")
	ErrConfirmationRequired = New("CONFIRMATION_REQUIRED", http.StatusPreconditionRequired, "tindakan ini memerlukan konfirmasi")
	ErrCacheMiss            = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// UserMessage renders any error as the text shown inline or in a dialog.
// Typed errors show their message; anything else is an unexpected error carrying its own text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Code == CodeInternal && e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		return e.Message
	}
	return fmt.Sprintf("%s: %v", ErrInternal.Message, err)
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code string) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
