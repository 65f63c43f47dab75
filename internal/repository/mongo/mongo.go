// Package mongo implements the domain repositories on MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/msomdec/users-api/internal/domain"
)

const usersCollection = "user"

// DB wraps a MongoDB client bound to one database.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
	users  *UserRepository
}

// New connects to the MongoDB deployment at uri and verifies it is reachable.
func New(ctx context.Context, uri, database string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	return &DB{
		client: client,
		db:     db,
		users:  &UserRepository{coll: db.Collection(usersCollection)},
	}, nil
}

// Migrate creates the indexes the repositories rely on. The unique email
// index is what turns concurrent duplicate writes into duplicate-key errors.
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.users.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_unique").SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func (db *DB) Users() domain.UserRepository {
	return db.users
}

// Drop removes the whole database. Used by tests.
func (db *DB) Drop(ctx context.Context) error {
	return db.db.Drop(ctx)
}

func (db *DB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.client.Disconnect(ctx)
}
