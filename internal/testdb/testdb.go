// Package testdb opens migrated in-memory SQLite databases for tests.
package testdb

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"northwind-ai-api/internal/database"

	"gorm.io/gorm"
)

// New returns a migrated, private in-memory database closed when the test ends.
func New(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	url := fmt.Sprintf("sqlite:///file:%s?mode=memory&cache=shared", name)

	db, err := database.Open(context.Background(), url, nil)
	if err != nil {
		t.Fatalf("testdb.New: open database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("testdb.New: migrate: %v", err)
	}
	return db
}

// Seeded returns New with the sample catalog loaded.
func Seeded(t *testing.T) *gorm.DB {
	t.Helper()
	db := New(t)
	if err := database.Seed(context.Background(), db, ""); err != nil {
		t.Fatalf("testdb.Seeded: %v", err)
	}
	return db
}
