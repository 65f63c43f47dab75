package handler_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/msomdec/users-api/internal/repository/sqlite"
	"github.com/msomdec/users-api/internal/service"
)

func newTestUserService(t *testing.T) *service.UserService {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return service.NewUserService(db.Users())
}
