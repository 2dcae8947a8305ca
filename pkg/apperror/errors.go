package apperror

import (
	"errors"
	"net/http"
)

// AppError carries the HTTP status the presentation layer answers with.
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError is a single form field failure, keyed by the form field name (sirketAdi, fiyat, ...).
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Message: "Kayıt bulunamadı"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Message: "Yetkisiz erişim"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Message: "Geçersiz istek"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Sunucu hatası"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Kullanıcı adı veya şifre hatalı"}
	ErrInactiveUser       = &AppError{Code: http.StatusForbidden, Message: "Kullanıcı aktif değil"}
	ErrBackendUnavailable = &AppError{Code: http.StatusServiceUnavailable, Message: "Veritabanı servisi kullanılamıyor"}
)

// NewValidationError wraps the failing fields of a form.
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Form doğrulaması başarısız",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error for the named resource
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " bulunamadı",
	}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBackendError reports a failed mutation against the hosted database.
func NewBackendError(op string, err error) *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Message: op + ": " + err.Error(),
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError, falling back to a 500.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}

// FieldMessages flattens field errors into a field -> message map.
func (e *AppError) FieldMessages() map[string]string {
	out := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		out[fe.Field] = fe.Message
	}
	return out
}
