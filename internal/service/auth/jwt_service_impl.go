package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lamev/scribe-api/internal/config"
	"github.com/lamev/scribe-api/internal/domain"
	"github.com/lamev/scribe-api/internal/platform/logger"
)

// hmacJWTService is an implementation of JWTService using HMAC-SHA signing.
type hmacJWTService struct {
	signingKey    []byte
	tokenLifetime time.Duration
	timeFunc      func() time.Time // Injectable for testing
}

// jwtCustomClaims defines the structure of JWT claims we use
type jwtCustomClaims struct {
	UserID   uuid.UUID   `json:"id"`
	Email    string      `json:"email"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Ensure hmacJWTService implements JWTService interface
var _ JWTService = (*hmacJWTService)(nil)

// NewJWTService creates a new JWT service using HMAC-SHA signing.
func NewJWTService(cfg config.AuthConfig) (JWTService, error) {
	// Validate that the secret meets minimum length requirements
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}

	return &hmacJWTService{
		signingKey:    []byte(cfg.JWTSecret),
		tokenLifetime: time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		timeFunc:      time.Now,
	}, nil
}

// IssueToken creates a signed JWT embedding the user's identity claims.
func (s *hmacJWTService) IssueToken(ctx context.Context, user *domain.User) (string, error) {
	signedToken, err := s.issue(user.ID, user.Email, user.Username, user.Role)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign JWT",
			"error", err,
			"user_id", user.ID,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", fmt.Errorf("%w: %v", ErrTokenIssuance, err)
	}

	return signedToken, nil
}

// issue builds and signs a token from identity claims, attaching fresh
// temporal, issuer, and audience claims.
func (s *hmacJWTService) issue(
	userID uuid.UUID,
	email, username string,
	role domain.Role,
) (string, error) {
	now := s.timeFunc()

	claims := jwtCustomClaims{
		UserID:   userID,
		Email:    email,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Audience:  jwt.ClaimStrings{TokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.signingKey)
}

// VerifyToken validates a JWT and returns the claims if valid. All
// verification failures collapse into ErrInvalidToken; the specific cause
// is only logged at debug level.
func (s *hmacJWTService) VerifyToken(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithAudience(TokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time {
			return now // Use our injected time function for validation
		}),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			// Validate the signing method is what we expect
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...)

	if err != nil {
		// Branch only for logging; the caller always sees ErrInvalidToken.
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired", "error", err)
		case errors.Is(err, jwt.ErrTokenMalformed):
			log.Debug("token validation failed: malformed token", "error", err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Debug("token validation failed: invalid signature", "error", err)
		case errors.Is(err, jwt.ErrTokenInvalidIssuer):
			log.Debug("token validation failed: wrong issuer", "error", err)
		case errors.Is(err, jwt.ErrTokenInvalidAudience):
			log.Debug("token validation failed: wrong audience", "error", err)
		default:
			log.Debug("token validation failed: other validation error",
				"error", err,
				"error_type", fmt.Sprintf("%T", err))
		}

		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: invalid claims")
		return nil, ErrInvalidToken
	}

	log.Debug("token validated successfully",
		"user_id", claims.UserID,
		"expiry", claims.ExpiresAt.Time)

	return claimsFromWire(claims), nil
}

// DecodeToken parses the token payload without any verification.
func (s *hmacJWTService) DecodeToken(tokenString string) (*Claims, bool) {
	claims := &jwtCustomClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, false
	}
	return claimsFromWire(claims), true
}

// IsExpired reports whether the token is past its expiry. Undecodable
// tokens and tokens without an expiry claim count as expired.
func (s *hmacJWTService) IsExpired(tokenString string) bool {
	expiresAt, ok := s.ExpirationOf(tokenString)
	if !ok {
		return true
	}
	return s.timeFunc().After(expiresAt)
}

// ExpirationOf returns the token's expiry time when one is present.
func (s *hmacJWTService) ExpirationOf(tokenString string) (time.Time, bool) {
	claims, ok := s.DecodeToken(tokenString)
	if !ok || claims.ExpiresAt.IsZero() {
		return time.Time{}, false
	}
	return claims.ExpiresAt, true
}

// RefreshToken re-issues a token from the identity claims of the old one.
// The old token is decoded without verification: refresh sits behind the
// authentication middleware, so the presented token was already verified
// for this request.
func (s *hmacJWTService) RefreshToken(ctx context.Context, tokenString string) (string, error) {
	log := logger.FromContext(ctx)

	claims, ok := s.DecodeToken(tokenString)
	if !ok {
		log.Debug("token refresh failed: token could not be decoded")
		return "", ErrTokenRefresh
	}

	signedToken, err := s.issue(claims.UserID, claims.Email, claims.Username, claims.Role)
	if err != nil {
		log.Error("failed to sign refreshed JWT",
			"error", err,
			"user_id", claims.UserID)
		return "", fmt.Errorf("%w: %v", ErrTokenRefresh, err)
	}

	return signedToken, nil
}

// claimsFromWire converts the wire-format claims into the service's
// structured Claims type. Absent temporal claims map to zero times.
func claimsFromWire(c *jwtCustomClaims) *Claims {
	out := &Claims{
		UserID:   c.UserID,
		Email:    c.Email,
		Username: c.Username,
		Role:     c.Role,
		Issuer:   c.Issuer,
	}
	if len(c.Audience) > 0 {
		out.Audience = c.Audience[0]
	}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out
}
