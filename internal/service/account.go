// Package service provides account and messaging business logic,
// delegating persistence to repositories.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/inikari/nglkawe/internal/models"
	"github.com/inikari/nglkawe/internal/repository"
)

var (
	// ErrInvalidCredentials is returned for any login failure. Unknown
	// usernames and wrong passwords are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmptyCredentials is returned when username or password is blank.
	ErrEmptyCredentials = errors.New("username and password must not be empty")
)

// dummyHash is a valid bcrypt hash that matches no issued password. Login
// verifies against it when the username is unknown so that both failure
// paths pay the same bcrypt cost.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository defines the persistence operations required by the
// account service.
type UserRepository interface {
	// CreateUser inserts a new account, returning
	// repository.ErrDuplicateUsername if the username is taken.
	CreateUser(ctx context.Context, username, passwordHash string) error
	// FindByUsername looks up an account, returning
	// repository.ErrUserNotFound if absent.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// PasswordHasher produces and verifies one-way password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// AccountService implements registration and login by combining a
// UserRepository with a PasswordHasher.
type AccountService struct {
	repo   UserRepository
	hasher PasswordHasher
}

// NewAccountService constructs a new AccountService.
func NewAccountService(repo UserRepository, hasher PasswordHasher) *AccountService {
	return &AccountService{repo: repo, hasher: hasher}
}

// Register hashes the password and creates the account. A taken username
// surfaces as repository.ErrDuplicateUsername with no state changed.
func (s *AccountService) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrEmptyCredentials
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.CreateUser(ctx, username, hash)
}

// Login verifies the credentials. Any mismatch, including an unknown
// username, returns ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, username, password string) error {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Burn a compare so unknown usernames cost the same as
			// wrong passwords.
			s.hasher.Verify(password, dummyHash)
			return ErrInvalidCredentials
		}
		return err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	return nil
}

// Exists reports whether an account with the given username is registered.
func (s *AccountService) Exists(ctx context.Context, username string) (bool, error) {
	_, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
