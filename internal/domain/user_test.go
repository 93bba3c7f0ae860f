package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid user gets sane defaults", func(t *testing.T) {
		t.Parallel()

		user, err := NewUser("alice@example.com", "alice", "correct-horse-battery")
		require.NoError(t, err)

		assert.NotEqual(t, "", user.ID.String())
		assert.Equal(t, RoleUser, user.Role)
		assert.True(t, user.IsActive)
		assert.False(t, user.CreatedAt.IsZero())
	})

	tests := []struct {
		name     string
		email    string
		username string
		password string
		wantErr  error
	}{
		{
			name:     "empty email",
			email:    "",
			username: "alice",
			password: "correct-horse-battery",
			wantErr:  ErrEmptyEmail,
		},
		{
			name:     "email without at sign",
			email:    "alice.example.com",
			username: "alice",
			password: "correct-horse-battery",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "email without domain dot",
			email:    "alice@localhost",
			username: "alice",
			password: "correct-horse-battery",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "username too short",
			email:    "alice@example.com",
			username: "al",
			password: "correct-horse-battery",
			wantErr:  ErrUsernameTooShort,
		},
		{
			name:     "username too long",
			email:    "alice@example.com",
			username: strings.Repeat("a", 31),
			password: "correct-horse-battery",
			wantErr:  ErrUsernameTooLong,
		},
		{
			name:     "password too short",
			email:    "alice@example.com",
			username: "alice",
			password: "short",
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "password over the bcrypt limit",
			email:    "alice@example.com",
			username: "alice",
			password: strings.Repeat("p", 73),
			wantErr:  ErrPasswordTooLong,
		},
		{
			name:     "empty password",
			email:    "alice@example.com",
			username: "alice",
			password: "",
			wantErr:  ErrEmptyPassword,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			user, err := NewUser(tc.email, tc.username, tc.password)
			assert.Nil(t, user)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUserValidate(t *testing.T) {
	t.Parallel()

	t.Run("stored user passes without a plaintext password", func(t *testing.T) {
		t.Parallel()

		user, err := NewUser("bob@example.com", "bob", "correct-horse-battery")
		require.NoError(t, err)

		// Simulate what the store does before persisting.
		user.HashedPassword = "$2a$10$fakehash"
		user.Password = ""

		assert.NoError(t, user.Validate())
	})

	t.Run("invalid role is rejected", func(t *testing.T) {
		t.Parallel()

		user, err := NewUser("bob@example.com", "bob", "correct-horse-battery")
		require.NoError(t, err)
		user.Role = Role("superuser")

		assert.ErrorIs(t, user.Validate(), ErrInvalidRole)
	})
}
