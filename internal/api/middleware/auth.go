package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lamev/scribe-api/internal/api/shared"
	"github.com/lamev/scribe-api/internal/domain"
	"github.com/lamev/scribe-api/internal/platform/logger"
	"github.com/lamev/scribe-api/internal/service/auth"
	"github.com/lamev/scribe-api/internal/store"
)

// Client-facing messages. Authentication failures share one message on
// purpose: missing header, malformed header, bad signature, expired token,
// and unknown or deactivated account are indistinguishable to the client,
// which prevents account enumeration. Authorization failures are
// differentiated because they leak nothing about credential validity.
const (
	msgAuthenticationFailed    = "Authentication failed"
	msgAuthenticationRequired  = "Authentication required"
	msgInsufficientPermissions = "Insufficient permissions"
	msgAccessDenied            = "Access denied"
)

// maxOwnershipBodyBytes bounds how much of a request body the ownership
// check will buffer while looking for a resource ID field.
const maxOwnershipBodyBytes = 1 << 20

// AuthMiddleware provides the request authentication and authorization
// chain. Each chain function strictly depends on the prior one having
// attached its result to the request context.
type AuthMiddleware struct {
	jwtService auth.JWTService
	userStore  store.UserStore
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, userStore store.UserStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userStore:  userStore,
	}
}

// resolvePrincipal runs the shared extraction path: header to token, token
// to verified claims, claims to a stored active user. Any failure returns
// a nil user; the cause is logged but never surfaced.
func (m *AuthMiddleware) resolvePrincipal(r *http.Request) (*domain.User, string) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	token, err := auth.ExtractFromHeader(r.Header.Get("Authorization"))
	if err != nil {
		log.Debug("authentication failed: header extraction", "error", err)
		return nil, ""
	}

	claims, err := m.jwtService.VerifyToken(ctx, token)
	if err != nil {
		log.Debug("authentication failed: token verification", "error", err)
		return nil, ""
	}

	// The principal comes from storage, not the token, so deactivation and
	// role changes take effect on the next verified request.
	user, err := m.userStore.GetByID(ctx, claims.UserID)
	if err != nil {
		log.Debug("authentication failed: principal lookup",
			"error", err,
			"user_id", claims.UserID)
		return nil, ""
	}
	if !user.IsActive {
		log.Debug("authentication failed: principal deactivated",
			"user_id", user.ID)
		return nil, ""
	}

	return user, token
}

// Authenticate validates the bearer token, loads the principal, and
// attaches both to the request context. Every failure along the way
// short-circuits with the same generic 401 response.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, token := m.resolvePrincipal(r)
		if user == nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized, msgAuthenticationFailed)
			return
		}

		ctx := shared.WithPrincipal(r.Context(), user)
		ctx = shared.WithToken(ctx, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth attempts the same extraction and verification as
// Authenticate but proceeds anonymously on any failure. It never produces
// an error response.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, token := m.resolvePrincipal(r)
		if user == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := shared.WithPrincipal(r.Context(), user)
		ctx = shared.WithToken(ctx, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Authorize requires an authenticated principal whose role is in the
// allowed set. Responds 401 when no principal is attached and 403 when the
// role is not allowed.
func (m *AuthMiddleware) Authorize(allowedRoles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := shared.PrincipalFromContext(r.Context())
			if !ok {
				shared.RespondWithError(w, r, http.StatusUnauthorized, msgAuthenticationRequired)
				return
			}

			if !user.Role.In(allowedRoles...) {
				shared.RespondWithError(w, r, http.StatusForbidden, msgInsufficientPermissions)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin allows only administrators.
func (m *AuthMiddleware) RequireAdmin() func(http.Handler) http.Handler {
	return m.Authorize(domain.RoleAdmin)
}

// RequireModerator allows moderators and administrators.
func (m *AuthMiddleware) RequireModerator() func(http.Handler) http.Handler {
	return m.Authorize(domain.RoleAdmin, domain.RoleModerator)
}

// RequireSelfOrAdmin requires an authenticated principal that either holds
// the admin role or owns the targeted resource. Ownership is established by
// comparing the principal's ID against the value under resourceIDField in
// the route parameters first, then the request body.
func (m *AuthMiddleware) RequireSelfOrAdmin(resourceIDField string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := shared.PrincipalFromContext(r.Context())
			if !ok {
				shared.RespondWithError(w, r, http.StatusUnauthorized, msgAuthenticationRequired)
				return
			}

			if user.Role == domain.RoleAdmin {
				next.ServeHTTP(w, r)
				return
			}

			resourceID := chi.URLParam(r, resourceIDField)
			if resourceID == "" {
				resourceID = m.resourceIDFromBody(r, resourceIDField)
			}

			if resourceID == "" || resourceID != user.ID.String() {
				shared.RespondWithError(w, r, http.StatusForbidden, msgAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// resourceIDFromBody looks for the field in a JSON request body. The body
// is buffered and restored so the downstream handler can still decode it.
func (m *AuthMiddleware) resourceIDFromBody(r *http.Request, field string) string {
	if r.Body == nil {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxOwnershipBodyBytes))
	if err != nil {
		return ""
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	value, ok := payload[field]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%v", value)
}

// GetPrincipal extracts the authenticated user from the request context.
// Returns the user and a boolean indicating if one was found.
func GetPrincipal(r *http.Request) (*domain.User, bool) {
	return shared.PrincipalFromContext(r.Context())
}
