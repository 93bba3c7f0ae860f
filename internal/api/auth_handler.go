package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/lamev/scribe-api/internal/api/shared"
	"github.com/lamev/scribe-api/internal/domain"
	"github.com/lamev/scribe-api/internal/platform/logger"
	"github.com/lamev/scribe-api/internal/service/auth"
	"github.com/lamev/scribe-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
) *AuthHandler {
	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
	}
}

// Register handles the /api/auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := domain.NewUser(req.Email, req.Username, req.Password)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user data: "+err.Error())
		return
	}

	if err := h.userStore.Create(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, store.ErrEmailExists):
			shared.RespondWithError(w, r, http.StatusConflict, "Email already exists")
		case errors.Is(err, store.ErrUsernameExists):
			shared.RespondWithError(w, r, http.StatusConflict, "Username already exists")
		default:
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"Failed to create user", err)
		}
		return
	}

	token, err := h.jwtService.IssueToken(r.Context(), user)
	if err != nil {
		log.Error("failed to issue token after registration",
			"error", err, "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		User:        NewUserResponse(user),
		AccessToken: token,
		ExpiresAt:   h.expiresAt(token),
	})
}

// Login handles the /api/auth/login endpoint.
// Unknown email, wrong password, and deactivated account all produce the
// same 401 so credential probing learns nothing.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to authenticate user", err)
		return
	}

	if !user.IsActive {
		log.Debug("login attempt for deactivated user", "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.jwtService.IssueToken(r.Context(), user)
	if err != nil {
		log.Error("failed to issue token on login", "error", err, "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		User:        NewUserResponse(user),
		AccessToken: token,
		ExpiresAt:   h.expiresAt(token),
	})
}

// Refresh handles the /api/auth/refresh endpoint. It sits behind the
// authentication middleware, so the bearer token has already been verified
// and the caller confirmed active; the handler only mints the replacement.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	token, ok := shared.TokenFromContext(r.Context())
	if !ok || token == "" {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	refreshed, err := h.jwtService.RefreshToken(r.Context(), token)
	if err != nil {
		log.Error("failed to refresh token", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError,
			"Failed to refresh authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RefreshTokenResponse{
		AccessToken: refreshed,
		ExpiresAt:   h.expiresAt(refreshed),
	})
}

// Me handles the GET /api/auth/me endpoint.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(principal))
}

// expiresAt reads the expiry out of a freshly issued token. An unreadable
// expiry yields an empty string rather than a failed response.
func (h *AuthHandler) expiresAt(token string) string {
	expiry, ok := h.jwtService.ExpirationOf(token)
	if !ok {
		return ""
	}
	return expiry.UTC().Format(time.RFC3339)
}
