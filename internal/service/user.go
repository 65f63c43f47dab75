package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/msomdec/users-api/internal/domain"
	"github.com/msomdec/users-api/internal/mapper"
)

const userType = "User"

// UserService handles user CRUD operations. It holds no per-request state.
type UserService struct {
	users  domain.UserRepository
	tracer trace.Tracer
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{
		users:  users,
		tracer: otel.Tracer("github.com/msomdec/users-api/internal/service"),
	}
}

// Save creates a new user from req. A taken email yields domain.ErrDuplicateEmail.
func (s *UserService) Save(ctx context.Context, req domain.UserRequest) (_ *domain.User, err error) {
	ctx, span := s.tracer.Start(ctx, "users.Save")
	defer func() { finish(span, err) }()

	user, err := s.users.Save(ctx, mapper.ToEntity(req))
	if err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	span.SetAttributes(attribute.String("user.id", user.ID))
	return user, nil
}

// FindByID returns the user with the given id or a *domain.NotFoundError.
func (s *UserService) FindByID(ctx context.Context, id string) (_ *domain.User, err error) {
	ctx, span := s.tracer.Start(ctx, "users.FindByID", trace.WithAttributes(attribute.String("user.id", id)))
	defer func() { finish(span, err) }()

	return s.findByID(ctx, id)
}

// FindAll returns every stored user in store order.
func (s *UserService) FindAll(ctx context.Context) (_ []domain.User, err error) {
	ctx, span := s.tracer.Start(ctx, "users.FindAll")
	defer func() { finish(span, err) }()

	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	span.SetAttributes(attribute.Int("user.count", len(users)))
	return users, nil
}

// Update applies the non-nil fields of req to the user with the given id.
func (s *UserService) Update(ctx context.Context, id string, req domain.UserRequest) (_ *domain.User, err error) {
	ctx, span := s.tracer.Start(ctx, "users.Update", trace.WithAttributes(attribute.String("user.id", id)))
	defer func() { finish(span, err) }()

	user, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.users.Save(ctx, mapper.MergeInto(req, user))
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

// Delete removes the user with the given id and returns it.
func (s *UserService) Delete(ctx context.Context, id string) (_ *domain.User, err error) {
	ctx, span := s.tracer.Start(ctx, "users.Delete", trace.WithAttributes(attribute.String("user.id", id)))
	defer func() { finish(span, err) }()

	user, found, err := s.users.FindAndRemove(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}
	if !found {
		return nil, &domain.NotFoundError{ID: id, Type: userType}
	}
	return user, nil
}

func (s *UserService) findByID(ctx context.Context, id string) (*domain.User, error) {
	user, found, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !found {
		return nil, &domain.NotFoundError{ID: id, Type: userType}
	}
	return user, nil
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
