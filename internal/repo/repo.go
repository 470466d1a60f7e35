package repo

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
	sqliteConstraintForeignKey = 787
)

// translateError normalises engine errors to gorm's sentinel errors. gorm's
// own translation covers the usual cases; the fallbacks catch errors that
// reach us untranslated, e.g. from raw Exec or a dialector without a
// translator.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return errors.Join(gorm.ErrDuplicatedKey, err)
		case pgForeignKeyViolation:
			return errors.Join(gorm.ErrForeignKeyViolated, err)
		}
		return err
	}

	var coded interface{ Code() int }
	if errors.As(err, &coded) {
		switch coded.Code() {
		case sqliteConstraintPrimaryKey, sqliteConstraintUnique:
			return errors.Join(gorm.ErrDuplicatedKey, err)
		case sqliteConstraintForeignKey:
			return errors.Join(gorm.ErrForeignKeyViolated, err)
		}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return errors.Join(gorm.ErrDuplicatedKey, err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return errors.Join(gorm.ErrForeignKeyViolated, err)
	}
	return err
}
