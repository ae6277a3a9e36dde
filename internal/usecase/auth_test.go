package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainErrors "github.com/kairos-ev/ordertrack/internal/domain/errors"
	"github.com/kairos-ev/ordertrack/internal/domain/model"
	pkgAuth "github.com/kairos-ev/ordertrack/internal/pkg/auth"
)

type memoryUserRepository struct {
	users map[string]*model.User
	byID  map[int64]*model.User
	next  int64
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{
		users: make(map[string]*model.User),
		byID:  make(map[int64]*model.User),
		next:  1,
	}
}

func (m *memoryUserRepository) Create(ctx context.Context, login, passwordHash, fullName string, role model.Role) (*model.User, error) {
	if _, exists := m.users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	user := &model.User{ID: m.next, Login: login, PasswordHash: passwordHash, FullName: fullName, Role: role}
	m.next++
	m.users[login] = user
	m.byID[user.ID] = user
	return user, nil
}

func (m *memoryUserRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if user, ok := m.users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (m *memoryUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if user, ok := m.byID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hash:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeStrategy struct{}

func (fakeStrategy) IssueToken(userID int64, role model.Role) (string, error) {
	return fmt.Sprintf("%d|%s", userID, role), nil
}

func (fakeStrategy) ParseToken(token string) (int64, model.Role, error) {
	var id int64
	var role model.Role
	if _, err := fmt.Sscanf(token, "%d|%s", &id, &role); err != nil {
		return 0, "", pkgAuth.ErrInvalidToken
	}
	return id, role, nil
}

func (fakeStrategy) Name() string { return "fake" }

func newAuthUseCaseForTest() (*AuthUseCase, *memoryUserRepository) {
	repo := newMemoryUserRepository()
	return NewAuthUseCase(repo, plainHasher{}, fakeStrategy{}), repo
}

func TestAuthRegisterCreatesCustomer(t *testing.T) {
	uc, _ := newAuthUseCaseForTest()

	user, token, err := uc.Register(context.Background(), "li.wei", "secret", "Li Wei")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != model.RoleCustomer {
		t.Fatalf("expected customer role, got %s", user.Role)
	}
	if user.FullName != "Li Wei" {
		t.Fatalf("unexpected full name %q", user.FullName)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	id, role, err := uc.ParseToken(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if id != user.ID || role != model.RoleCustomer {
		t.Fatalf("token identity mismatch: %d %s", id, role)
	}
}

func TestAuthRegisterDuplicate(t *testing.T) {
	uc, _ := newAuthUseCaseForTest()

	if _, _, err := uc.Register(context.Background(), "li.wei", "secret", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := uc.Register(context.Background(), "li.wei", "other", ""); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists error, got %v", err)
	}
}

func TestAuthRegisterRejectsBlankCredentials(t *testing.T) {
	uc, _ := newAuthUseCaseForTest()

	if _, _, err := uc.Register(context.Background(), "  ", "secret", ""); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, _, err := uc.Register(context.Background(), "li.wei", "", ""); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestAuthAuthenticate(t *testing.T) {
	uc, _ := newAuthUseCaseForTest()
	if _, _, err := uc.Register(context.Background(), "li.wei", "secret", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, err := uc.Authenticate(context.Background(), "li.wei", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Login != "li.wei" || token == "" {
		t.Fatalf("unexpected result: %+v %q", user, token)
	}

	if _, _, err := uc.Authenticate(context.Background(), "li.wei", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for bad password, got %v", err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "ghost", "secret"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown login, got %v", err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	uc, repo := newAuthUseCaseForTest()

	if err := uc.EnsureAdmin(context.Background(), "", ""); err != nil {
		t.Fatalf("blank credentials must be a no-op: %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatal("no account must be created for blank credentials")
	}

	if err := uc.EnsureAdmin(context.Background(), "admin", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	admin, err := repo.GetByLogin(context.Background(), "admin")
	if err != nil {
		t.Fatalf("admin not created: %v", err)
	}
	if admin.Role != model.RoleAdmin {
		t.Fatalf("expected admin role, got %s", admin.Role)
	}

	if err := uc.EnsureAdmin(context.Background(), "admin", "secret"); err != nil {
		t.Fatalf("repeated call must be idempotent: %v", err)
	}
}

func TestParseTokenEmpty(t *testing.T) {
	uc, _ := newAuthUseCaseForTest()
	if _, _, err := uc.ParseToken(""); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}
