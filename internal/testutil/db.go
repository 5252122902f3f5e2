// Package testutil provides an in-memory store migrated with the production
// schema.
package testutil

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/unicatalog/internal/app/migrations"
	"github.com/yigit/unicatalog/internal/db"
)

// NewDB returns a fresh, migrated sqlite database private to the test.
func NewDB(t testing.TB) *db.DB {
	t.Helper()

	name := strings.NewReplacer("/", "-", " ", "-").Replace(t.Name())
	database, err := db.NewSQLiteDB("file:" + name + "-" + uuid.NewString() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(database.Close)

	if err := migrations.NewMigrator(database, zerolog.Nop()).Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return database
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// StrPtr returns a pointer to v.
func StrPtr(v string) *string { return &v }
