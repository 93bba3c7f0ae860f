package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lamev/scribe-api/internal/domain"
)

// Token issuer and audience constants. The verifier checks both exactly;
// tokens minted for another deployment of the same codebase do not verify.
const (
	TokenIssuer   = "scribe-api"
	TokenAudience = "scribe-api-users"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// IssueToken creates a signed token embedding the user's identity
	// claims plus standard temporal, issuer, and audience claims. Expiry is
	// the configured lifetime added to the issuance time.
	// Returns ErrTokenIssuance if the signing operation fails.
	IssueToken(ctx context.Context, user *domain.User) (string, error)

	// VerifyToken validates signature, issuer, audience, and expiry in one
	// pass and extracts the claims. Any failure yields ErrInvalidToken;
	// the cause is not differentiated for callers.
	VerifyToken(ctx context.Context, tokenString string) (*Claims, error)

	// DecodeToken parses the token's payload WITHOUT verifying the
	// signature or any claim. Used only for inspection (expiry display,
	// refresh re-derivation). Returns false for structurally invalid input;
	// never returns an error.
	DecodeToken(tokenString string) (*Claims, bool)

	// IsExpired reports whether the token is past its expiry. A token that
	// cannot be decoded, or that carries no expiry claim, is treated as
	// already expired (fail-closed).
	IsExpired(tokenString string) bool

	// ExpirationOf returns the token's expiry time. The second return is
	// false when the token cannot be decoded or has no expiry claim.
	ExpirationOf(tokenString string) (time.Time, bool)

	// RefreshToken decodes the old token without verification, strips the
	// temporal/issuer/audience claims, and re-issues a new token from the
	// remaining identity claims. The old token is never mutated. Refresh is
	// only reachable behind the authentication middleware, which already
	// verified the presented token.
	// Returns ErrTokenRefresh if decoding or re-issuance fails.
	RefreshToken(ctx context.Context, tokenString string) (string, error)
}

// Claims represents the decoded payload of a token. Temporal fields are
// zero when the corresponding claim is absent.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"id"`

	// Identity claims copied from the user at issuance time.
	Email    string      `json:"email"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`

	// Standard registered JWT claims
	Issuer    string    `json:"iss,omitempty"`
	Audience  string    `json:"aud,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
}
