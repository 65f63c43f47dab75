package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrInvalidInput   = errors.New("invalid input")
)

// NotFoundError reports that no record of Type exists with the given ID.
// It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	ID   string
	Type string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Object not found. Id: %s, Type: %s ", e.ID, e.Type)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
