// Package schema creates the cart table. It runs once at startup, before the
// HTTP server accepts requests, and is safe to run again.
package schema

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

//go:embed cart.sql
var cartDDL string

func Bootstrap(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).Exec(cartDDL).Error; err != nil {
		return fmt.Errorf("create cart table: %w", err)
	}
	return nil
}

// Run applies Bootstrap with the startup policy: a failure is returned unless
// lenient is set, in which case it is logged and startup continues.
func Run(ctx context.Context, db *gorm.DB, lenient bool, l *slog.Logger) error {
	err := Bootstrap(ctx, db)
	if err == nil {
		l.Info("schema_bootstrap_done", "table", "cart")
		return nil
	}
	if lenient {
		l.Error("schema_bootstrap_error", "lenient", true, "error", err)
		return nil
	}
	return err
}
