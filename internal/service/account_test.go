package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/inikari/nglkawe/internal/models"
	"github.com/inikari/nglkawe/internal/repository"
)

type mockUserRepo struct {
	CreateUserFunc     func(ctx context.Context, username, passwordHash string) error
	FindByUsernameFunc func(ctx context.Context, username string) (*models.User, error)
}

func (m *mockUserRepo) CreateUser(ctx context.Context, username, passwordHash string) error {
	return m.CreateUserFunc(ctx, username, passwordHash)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.FindByUsernameFunc(ctx, username)
}

func testHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.MinCost}
}

func TestRegister_HashesBeforeStoring(t *testing.T) {
	hasher := testHasher()
	var storedHash string
	repo := &mockUserRepo{
		CreateUserFunc: func(ctx context.Context, username, passwordHash string) error {
			if username != "alice" {
				t.Errorf("CreateUser received username = %q; want %q", username, "alice")
			}
			storedHash = passwordHash
			return nil
		},
	}
	svc := NewAccountService(repo, hasher)

	if err := svc.Register(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if storedHash == "" {
		t.Fatal("expected CreateUser to be called with a hash")
	}
	if storedHash == "secret" {
		t.Fatal("password stored in plaintext")
	}
	if !hasher.Verify("secret", storedHash) {
		t.Errorf("stored hash does not verify against the original password")
	}
}

func TestRegister_EmptyCredentials(t *testing.T) {
	repo := &mockUserRepo{
		CreateUserFunc: func(ctx context.Context, username, passwordHash string) error {
			t.Fatal("CreateUser should not be called")
			return nil
		},
	}
	svc := NewAccountService(repo, testHasher())

	for _, tc := range []struct{ username, password string }{
		{"", "secret"},
		{"alice", ""},
		{"", ""},
	} {
		err := svc.Register(context.Background(), tc.username, tc.password)
		if !errors.Is(err, ErrEmptyCredentials) {
			t.Errorf("Register(%q, %q) error = %v; want ErrEmptyCredentials", tc.username, tc.password, err)
		}
	}
}

func TestRegister_Duplicate(t *testing.T) {
	repo := &mockUserRepo{
		CreateUserFunc: func(ctx context.Context, username, passwordHash string) error {
			return repository.ErrDuplicateUsername
		},
	}
	svc := NewAccountService(repo, testHasher())

	err := svc.Register(context.Background(), "alice", "secret")
	if !errors.Is(err, repository.ErrDuplicateUsername) {
		t.Errorf("Register error = %v; want ErrDuplicateUsername", err)
	}
}

func TestLogin_Success(t *testing.T) {
	hasher := testHasher()
	hash, err := hasher.Hash("secret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	repo := &mockUserRepo{
		FindByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{Username: username, PasswordHash: hash}, nil
		},
	}
	svc := NewAccountService(repo, hasher)

	if err := svc.Login(context.Background(), "alice", "secret"); err != nil {
		t.Errorf("Login returned error: %v", err)
	}
}

func TestLogin_GenericFailure(t *testing.T) {
	hasher := testHasher()
	hash, err := hasher.Hash("secret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	tests := []struct {
		name string
		find func(ctx context.Context, username string) (*models.User, error)
	}{
		{
			name: "unknown username",
			find: func(ctx context.Context, username string) (*models.User, error) {
				return nil, repository.ErrUserNotFound
			},
		},
		{
			name: "wrong password",
			find: func(ctx context.Context, username string) (*models.User, error) {
				return &models.User{Username: username, PasswordHash: hash}, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAccountService(&mockUserRepo{FindByUsernameFunc: tt.find}, hasher)
			err := svc.Login(context.Background(), "alice", "hunter2")
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login error = %v; want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestLogin_StorageError(t *testing.T) {
	wantErr := errors.New("db down")
	repo := &mockUserRepo{
		FindByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			return nil, wantErr
		},
	}
	svc := NewAccountService(repo, testHasher())

	err := svc.Login(context.Background(), "alice", "secret")
	if !errors.Is(err, wantErr) {
		t.Errorf("Login error = %v; want %v", err, wantErr)
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("storage failures must not masquerade as bad credentials")
	}
}

func TestExists(t *testing.T) {
	tests := []struct {
		name    string
		findErr error
		want    bool
		wantErr bool
	}{
		{"registered", nil, true, false},
		{"unregistered", repository.ErrUserNotFound, false, false},
		{"storage error", errors.New("db down"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepo{
				FindByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
					if tt.findErr != nil {
						return nil, tt.findErr
					}
					return &models.User{Username: username}, nil
				},
			}
			svc := NewAccountService(repo, testHasher())

			got, err := svc.Exists(context.Background(), "alice")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Exists error = %v; wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Exists = %v; want %v", got, tt.want)
			}
		})
	}
}
