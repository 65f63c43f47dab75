package domain

import "context"

// Database defines lifecycle operations for the underlying store.
// Migrate bootstraps the store: tables for SQLite, indexes for MongoDB.
type Database interface {
	Migrate(ctx context.Context) error
	Users() UserRepository
	Close() error
}
