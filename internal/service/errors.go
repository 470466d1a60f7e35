package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrValidation   = errors.New("validation")            // 400
	ErrNotFound     = errors.New("not found")             // 404
	ErrDuplicateKey = errors.New("duplicate key")         // 500
	ErrForeignKey   = errors.New("foreign key violation") // 500
	ErrStorage      = errors.New("storage error")         // 500
)

const (
	KindOK           = "ok"
	KindValidation   = "validation_error"
	KindNotFound     = "not_found"
	KindDuplicateKey = "duplicate_key"
	KindForeignKey   = "foreign_key_violation"
	KindStorage      = "storage_error"
)

// Kind names the error class of err for logs, metrics and response bodies.
func Kind(err error) string {
	switch {
	case err == nil:
		return KindOK
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrDuplicateKey):
		return KindDuplicateKey
	case errors.Is(err, ErrForeignKey):
		return KindForeignKey
	default:
		return KindStorage
	}
}

func fromRepo(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("cart line: %w", ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("cart line already exists: %w", ErrDuplicateKey)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("unknown user or product: %w", ErrForeignKey)
	default:
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
}
