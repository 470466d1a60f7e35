// Package testutil provides an in-memory storage engine for tests.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgdb "github.com/HikkiElf/cart-manager/internal/db"
	"github.com/HikkiElf/cart-manager/internal/schema"
)

// User and Product stand in for the externally owned reference tables.
type User struct {
	ID int64 `gorm:"primaryKey;autoIncrement:false"`
}

type Product struct {
	ID int64 `gorm:"primaryKey;autoIncrement:false"`
}

// OpenSQLite returns a private in-memory database with foreign keys enforced
// and the users/products reference tables created. The cart table is not
// created.
func OpenSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), pkgdb.GormConfig())
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if err := db.AutoMigrate(&User{}, &Product{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

// NewCartDB is OpenSQLite plus the cart table, seeded with the given user and
// product IDs.
func NewCartDB(t *testing.T, userIDs, productIDs []int64) *gorm.DB {
	t.Helper()

	db := OpenSQLite(t)
	if err := schema.Bootstrap(context.Background(), db); err != nil {
		t.Fatalf("failed to bootstrap schema: %v", err)
	}
	for _, id := range userIDs {
		if err := db.Create(&User{ID: id}).Error; err != nil {
			t.Fatalf("failed to seed user %d: %v", id, err)
		}
	}
	for _, id := range productIDs {
		if err := db.Create(&Product{ID: id}).Error; err != nil {
			t.Fatalf("failed to seed product %d: %v", id, err)
		}
	}
	return db
}
