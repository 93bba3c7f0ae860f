package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/lamev/scribe-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// It handles domain validation and password hashing internally.
	// Returns ErrEmailExists or ErrUsernameExists if the email or username
	// is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	// The returned user contains all fields except the plaintext password.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies an existing user's details.
	// If a new plain text Password is provided, it will be hashed and the
	// HashedPassword will be updated.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists or ErrUsernameExists when updating to a value
	// that already exists.
	Update(ctx context.Context, user *domain.User) error

	// Deactivate marks a user as inactive. Subsequent authenticated
	// requests from this user fail at the middleware, which is how active
	// sessions are revoked without a token blacklist.
	// Returns ErrUserNotFound if the user does not exist.
	Deactivate(ctx context.Context, id uuid.UUID) error

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	// This operation is permanent and cannot be undone.
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves users ordered by creation time, newest first.
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
}
