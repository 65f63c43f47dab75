package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/msomdec/users-api/internal/domain"
	"github.com/msomdec/users-api/internal/repository/sqlite"
	"github.com/msomdec/users-api/internal/service"
)

const (
	testID       = "12345"
	testName     = "Sara Mello"
	testEmail    = "sara@mail.com"
	testPassword = "123"
)

func ptr(s string) *string { return &s }

func fullRequest() domain.UserRequest {
	return domain.UserRequest{Name: ptr(testName), Email: ptr(testEmail), Password: ptr(testPassword)}
}

// --- Mocks ---

type mockUserRepository struct {
	saveFn          func(ctx context.Context, user *domain.User) (*domain.User, error)
	findByIDFn      func(ctx context.Context, id string) (*domain.User, bool, error)
	findAllFn       func(ctx context.Context) ([]domain.User, error)
	findAndRemoveFn func(ctx context.Context, id string) (*domain.User, bool, error)
}

func (m *mockUserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	return m.saveFn(ctx, user)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, bool, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	return m.findAllFn(ctx)
}

func (m *mockUserRepository) FindAndRemove(ctx context.Context, id string) (*domain.User, bool, error) {
	return m.findAndRemoveFn(ctx, id)
}

func newTestUserService(t *testing.T) *service.UserService {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return service.NewUserService(db.Users())
}

// --- Tests ---

func TestUserService_Save_MapsRequest(t *testing.T) {
	var saved *domain.User
	repo := &mockUserRepository{
		saveFn: func(ctx context.Context, user *domain.User) (*domain.User, error) {
			saved = user
			out := *user
			out.ID = testID
			return &out, nil
		},
	}

	user, err := service.NewUserService(repo).Save(context.Background(), fullRequest())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if saved.ID != "" {
		t.Fatalf("expected entity without id to reach the repository, got %q", saved.ID)
	}
	if saved.Email != testEmail {
		t.Fatalf("expected email %q, got %q", testEmail, saved.Email)
	}
	if user.ID != testID {
		t.Fatalf("expected id %q, got %q", testID, user.ID)
	}
}

func TestUserService_Save_DuplicateEmail(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	if _, err := svc.Save(ctx, fullRequest()); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	_, err := svc.Save(ctx, fullRequest())
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserService_FindByID(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, fullRequest())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	found, err := svc.FindByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if *found != *saved {
		t.Fatalf("expected %+v, got %+v", *saved, *found)
	}
}

func TestUserService_FindByID_NotFound(t *testing.T) {
	repo := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id string) (*domain.User, bool, error) {
			return nil, false, nil
		},
	}

	_, err := service.NewUserService(repo).FindByID(context.Background(), testID)

	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatal("expected error to match ErrNotFound")
	}
	want := "Object not found. Id: 12345, Type: User "
	if err.Error() != want {
		t.Fatalf("expected message %q, got %q", want, err.Error())
	}
}

func TestUserService_FindByID_StoreFailure(t *testing.T) {
	storeErr := errors.New("connection reset")
	repo := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id string) (*domain.User, bool, error) {
			return nil, false, storeErr
		},
	}

	_, err := service.NewUserService(repo).FindByID(context.Background(), testID)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
	if errors.Is(err, domain.ErrNotFound) {
		t.Fatal("store failure must not be reported as not found")
	}
}

func TestUserService_FindAll(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	users, err := svc.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll empty: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected no users, got %d", len(users))
	}

	if _, err := svc.Save(ctx, fullRequest()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	other := fullRequest()
	other.Email = ptr("other@mail.com")
	if _, err := svc.Save(ctx, other); err != nil {
		t.Fatalf("Save other: %v", err)
	}

	users, err = svc.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

func TestUserService_Update_PartialName(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, fullRequest())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	updated, err := svc.Update(ctx, saved.ID, domain.UserRequest{Name: ptr("Sara M.")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Name != "Sara M." {
		t.Fatalf("expected name to be overwritten, got %q", updated.Name)
	}
	if updated.ID != saved.ID || updated.Email != testEmail || updated.Password != testPassword {
		t.Fatalf("expected other fields unchanged, got %+v", updated)
	}

	found, err := svc.FindByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if *found != *updated {
		t.Fatalf("expected stored %+v, got %+v", *updated, *found)
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	saveCalled := false
	repo := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id string) (*domain.User, bool, error) {
			return nil, false, nil
		},
		saveFn: func(ctx context.Context, user *domain.User) (*domain.User, error) {
			saveCalled = true
			return user, nil
		},
	}

	_, err := service.NewUserService(repo).Update(context.Background(), testID, fullRequest())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if saveCalled {
		t.Fatal("expected Save not to be called for a missing user")
	}
}

func TestUserService_Update_DuplicateEmail(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	if _, err := svc.Save(ctx, fullRequest()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	other := fullRequest()
	other.Email = ptr("other@mail.com")
	second, err := svc.Save(ctx, other)
	if err != nil {
		t.Fatalf("Save other: %v", err)
	}

	_, err = svc.Update(ctx, second.ID, domain.UserRequest{Email: ptr(testEmail)})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, fullRequest())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	deleted, err := svc.Delete(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.ID != saved.ID {
		t.Fatalf("expected deleted id %q, got %q", saved.ID, deleted.ID)
	}

	_, err = svc.Delete(ctx, saved.ID)
	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError on second delete, got %v", err)
	}
	if notFound.ID != saved.ID {
		t.Fatalf("expected not-found id %q, got %q", saved.ID, notFound.ID)
	}
}
