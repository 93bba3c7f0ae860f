package mocks

import (
	"context"
	"time"

	"github.com/lamev/scribe-api/internal/domain"
	"github.com/lamev/scribe-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing
type MockJWTService struct {
	// Function fields for customizable behavior
	IssueTokenFn   func(ctx context.Context, user *domain.User) (string, error)
	VerifyTokenFn  func(ctx context.Context, tokenString string) (*auth.Claims, error)
	DecodeTokenFn  func(tokenString string) (*auth.Claims, bool)
	IsExpiredFn    func(tokenString string) bool
	ExpirationOfFn func(tokenString string) (time.Time, bool)
	RefreshTokenFn func(ctx context.Context, tokenString string) (string, error)

	// Default values used when functions aren't explicitly defined
	Token      string
	Claims     *auth.Claims
	Expiry     time.Time
	IssueErr   error
	VerifyErr  error
	RefreshErr error
}

var _ auth.JWTService = (*MockJWTService)(nil)

// IssueToken implements the auth.JWTService interface
func (m *MockJWTService) IssueToken(ctx context.Context, user *domain.User) (string, error) {
	if m.IssueTokenFn != nil {
		return m.IssueTokenFn(ctx, user)
	}
	return m.Token, m.IssueErr
}

// VerifyToken implements the auth.JWTService interface
func (m *MockJWTService) VerifyToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.VerifyTokenFn != nil {
		return m.VerifyTokenFn(ctx, tokenString)
	}
	if m.VerifyErr != nil {
		return nil, m.VerifyErr
	}
	return m.Claims, nil
}

// DecodeToken implements the auth.JWTService interface
func (m *MockJWTService) DecodeToken(tokenString string) (*auth.Claims, bool) {
	if m.DecodeTokenFn != nil {
		return m.DecodeTokenFn(tokenString)
	}
	return m.Claims, m.Claims != nil
}

// IsExpired implements the auth.JWTService interface
func (m *MockJWTService) IsExpired(tokenString string) bool {
	if m.IsExpiredFn != nil {
		return m.IsExpiredFn(tokenString)
	}
	if m.Expiry.IsZero() {
		return true
	}
	return time.Now().After(m.Expiry)
}

// ExpirationOf implements the auth.JWTService interface
func (m *MockJWTService) ExpirationOf(tokenString string) (time.Time, bool) {
	if m.ExpirationOfFn != nil {
		return m.ExpirationOfFn(tokenString)
	}
	return m.Expiry, !m.Expiry.IsZero()
}

// RefreshToken implements the auth.JWTService interface
func (m *MockJWTService) RefreshToken(ctx context.Context, tokenString string) (string, error) {
	if m.RefreshTokenFn != nil {
		return m.RefreshTokenFn(ctx, tokenString)
	}
	return m.Token, m.RefreshErr
}
