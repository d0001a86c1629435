package apperror

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrForeignKey   = errors.New("referenced resource does not exist")
	ErrInvalidInput = errors.New("invalid input")
	ErrConnection   = errors.New("store unavailable")
	ErrInternal     = errors.New("internal error")
)

// AppError is a custom error type carrying a caller-facing message
// alongside the underlying cause.
type AppError struct {
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(message string, err error) *AppError {
	return &AppError{
		Message: message,
		Err:     err,
	}
}

// Translate maps GORM errors onto the package sentinels so callers can
// switch on errors.Is without importing gorm. Unknown errors pass through.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrForeignKey
	}
	return err
}
