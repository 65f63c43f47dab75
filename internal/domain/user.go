package domain

import "context"

// User is the persisted user record.
type User struct {
	ID       string
	Name     string
	Email    string
	Password string
}

// UserRequest carries client-supplied user fields. A nil field means the
// client did not send it, which is distinct from an empty string.
type UserRequest struct {
	Name     *string
	Email    *string
	Password *string
}

// UserRepository defines persistence operations for users.
//
// FindByID and FindAndRemove report a missing record with found == false and
// a nil error; the error return is reserved for store failures.
type UserRepository interface {
	// Save inserts the user when ID is empty (assigning one) and replaces the
	// stored record otherwise.
	Save(ctx context.Context, user *User) (*User, error)
	FindByID(ctx context.Context, id string) (user *User, found bool, err error)
	FindAll(ctx context.Context) ([]User, error)
	// FindAndRemove atomically deletes the record and returns what was deleted.
	FindAndRemove(ctx context.Context, id string) (user *User, found bool, err error)
}
