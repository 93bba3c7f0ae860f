package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamev/scribe-api/internal/domain"
	"github.com/lamev/scribe-api/internal/mocks"
	"github.com/lamev/scribe-api/internal/store"
)

func seedAccount(t *testing.T, users *mocks.MockUserStore, email string, role domain.Role) *domain.User {
	t.Helper()

	user, err := domain.NewUser(email, strings.SplitN(email, "@", 2)[0], "long-enough-pw")
	require.NoError(t, err)
	user.Role = role

	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestUserList(t *testing.T) {
	t.Parallel()

	users := mocks.NewMockUserStore()
	seedAccount(t, users, "one@example.com", domain.RoleUser)
	seedAccount(t, users, "two@example.com", domain.RoleUser)
	handler := NewUserHandler(users)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users?limit=10", nil)

	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp UserListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Users, 2)
	assert.Equal(t, 10, resp.Limit)
}

func TestUserGet(t *testing.T) {
	t.Parallel()

	users := mocks.NewMockUserStore()
	user := seedAccount(t, users, "reader@example.com", domain.RoleUser)
	handler := NewUserHandler(users)

	rec := httptest.NewRecorder()
	req := routedRequest(
		httptest.NewRequest(http.MethodGet, "/api/users/"+user.ID.String(), nil),
		"id", user.ID.String())

	handler.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, user.Email, resp.Email)
}

func TestUserUpdate(t *testing.T) {
	t.Parallel()

	t.Run("empty fields are left unchanged", func(t *testing.T) {
		t.Parallel()

		users := mocks.NewMockUserStore()
		user := seedAccount(t, users, "stable@example.com", domain.RoleUser)
		handler := NewUserHandler(users)

		rec := httptest.NewRecorder()
		req := asPrincipal(routedRequest(
			httptest.NewRequest(http.MethodPut, "/api/users/"+user.ID.String(),
				strings.NewReader(`{"username": "renamed"}`)),
			"id", user.ID.String()), user)

		handler.Update(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "renamed", resp.Username)
		assert.Equal(t, "stable@example.com", resp.Email)
		assert.Equal(t, string(domain.RoleUser), resp.Role)
	})

	t.Run("non-admins cannot change roles", func(t *testing.T) {
		t.Parallel()

		users := mocks.NewMockUserStore()
		user := seedAccount(t, users, "ambitious@example.com", domain.RoleUser)
		handler := NewUserHandler(users)

		rec := httptest.NewRecorder()
		req := asPrincipal(routedRequest(
			httptest.NewRequest(http.MethodPut, "/api/users/"+user.ID.String(),
				strings.NewReader(`{"role": "admin"}`)),
			"id", user.ID.String()), user)

		handler.Update(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admins can change roles", func(t *testing.T) {
		t.Parallel()

		users := mocks.NewMockUserStore()
		admin := seedAccount(t, users, "admin@example.com", domain.RoleAdmin)
		user := seedAccount(t, users, "promoted@example.com", domain.RoleUser)
		handler := NewUserHandler(users)

		rec := httptest.NewRecorder()
		req := asPrincipal(routedRequest(
			httptest.NewRequest(http.MethodPut, "/api/users/"+user.ID.String(),
				strings.NewReader(`{"role": "moderator"}`)),
			"id", user.ID.String()), admin)

		handler.Update(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, string(domain.RoleModerator), resp.Role)
	})

	t.Run("invalid role value is rejected", func(t *testing.T) {
		t.Parallel()

		users := mocks.NewMockUserStore()
		admin := seedAccount(t, users, "root@example.com", domain.RoleAdmin)
		user := seedAccount(t, users, "target@example.com", domain.RoleUser)
		handler := NewUserHandler(users)

		rec := httptest.NewRecorder()
		req := asPrincipal(routedRequest(
			httptest.NewRequest(http.MethodPut, "/api/users/"+user.ID.String(),
				strings.NewReader(`{"role": "superuser"}`)),
			"id", user.ID.String()), admin)

		handler.Update(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUserDeactivate(t *testing.T) {
	t.Parallel()

	users := mocks.NewMockUserStore()
	user := seedAccount(t, users, "leaving@example.com", domain.RoleUser)
	handler := NewUserHandler(users)

	rec := httptest.NewRecorder()
	req := routedRequest(
		httptest.NewRequest(http.MethodPost, "/api/users/"+user.ID.String()+"/deactivate", nil),
		"id", user.ID.String())

	handler.Deactivate(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestUserDelete(t *testing.T) {
	t.Parallel()

	users := mocks.NewMockUserStore()
	user := seedAccount(t, users, "gone@example.com", domain.RoleUser)
	handler := NewUserHandler(users)

	rec := httptest.NewRecorder()
	req := routedRequest(
		httptest.NewRequest(http.MethodDelete, "/api/users/"+user.ID.String(), nil),
		"id", user.ID.String())

	handler.Delete(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, err := users.GetByID(context.Background(), user.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
