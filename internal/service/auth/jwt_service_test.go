package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamev/scribe-api/internal/domain"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func testUser() *domain.User {
	return &domain.User{
		ID:       uuid.New(),
		Email:    "writer@example.com",
		Username: "writer",
		Role:     domain.RoleUser,
		IsActive: true,
	}
}

func TestIssueToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	user := testUser()

	svc := NewTestJWTService(testSecret, tokenLifetime, func() time.Time {
		return fixedTime
	})

	t.Run("issues a verifiable token with identity claims", func(t *testing.T) {
		t.Parallel()

		token, err := svc.IssueToken(context.Background(), user)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.VerifyToken(context.Background(), token)
		require.NoError(t, err)

		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, user.Email, claims.Email)
		assert.Equal(t, user.Username, claims.Username)
		assert.Equal(t, user.Role, claims.Role)
		assert.Equal(t, TokenIssuer, claims.Issuer)
		assert.Equal(t, TokenAudience, claims.Audience)
		// Compare Unix timestamps to avoid timezone issues
		assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
		assert.Equal(t, fixedTime.Add(tokenLifetime).Unix(), claims.ExpiresAt.Unix())
	})
}

func TestVerifyToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	wrongSecret := "wrong-secret-that-is-long-enough-for-testing"
	user := testUser()

	issueAt := func(secret string, at time.Time) string {
		svc := NewTestJWTService(secret, tokenLifetime, func() time.Time { return at })
		token, err := svc.IssueToken(context.Background(), user)
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name      string
		setupFunc func(t *testing.T) (JWTService, string)
		wantErr   error
	}{
		{
			name: "valid token",
			setupFunc: func(t *testing.T) (JWTService, string) {
				svc := NewTestJWTService(testSecret, tokenLifetime, func() time.Time {
					return fixedTime
				})
				return svc, issueAt(testSecret, fixedTime)
			},
			wantErr: nil,
		},
		{
			name: "expired token",
			setupFunc: func(t *testing.T) (JWTService, string) {
				svc := NewTestJWTService(testSecret, tokenLifetime, func() time.Time {
					return fixedTime.Add(tokenLifetime + time.Hour)
				})
				return svc, issueAt(testSecret, fixedTime)
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "wrong signing key",
			setupFunc: func(t *testing.T) (JWTService, string) {
				svc := NewTestJWTService(testSecret, tokenLifetime, func() time.Time {
					return fixedTime
				})
				return svc, issueAt(wrongSecret, fixedTime)
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			setupFunc: func(t *testing.T) (JWTService, string) {
				svc := NewTestJWTService(testSecret, tokenLifetime, func() time.Time {
					return fixedTime
				})
				return svc, "not.a.token"
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "wrong issuer",
			setupFunc: func(t *testing.T) (JWTService, string) {
				claims := jwt.RegisteredClaims{
					Issuer:    "someone-else",
					Audience:  jwt.ClaimStrings{TokenAudience},
					IssuedAt:  jwt.NewNumericDate(fixedTime),
					ExpiresAt: jwt.NewNumericDate(fixedTime.Add(tokenLifetime)),
				}
				token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
					SignedString([]byte(testSecret))
				require.NoError(t, err)

				svc := NewTestJWTService(testSecret, tokenLifetime, func() time.Time {
					return fixedTime
				})
				return svc, token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "missing expiry claim",
			setupFunc: func(t *testing.T) (JWTService, string) {
				claims := jwt.RegisteredClaims{
					Issuer:   TokenIssuer,
					Audience: jwt.ClaimStrings{TokenAudience},
					IssuedAt: jwt.NewNumericDate(fixedTime),
				}
				token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
					SignedString([]byte(testSecret))
				require.NoError(t, err)

				svc := NewTestJWTService(testSecret, tokenLifetime, func() time.Time {
					return fixedTime
				})
				return svc, token
			},
			wantErr: ErrInvalidToken,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, token := tc.setupFunc(t)
			claims, err := svc.VerifyToken(context.Background(), token)

			if tc.wantErr != nil {
				// Every failure mode collapses into the same sentinel so
				// callers cannot distinguish why verification failed.
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, claims)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, claims)
			assert.Equal(t, user.ID, claims.UserID)
		})
	}
}

func TestDecodeToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	user := testUser()

	svc := NewTestJWTService(testSecret, time.Hour, func() time.Time {
		return fixedTime
	})

	t.Run("decodes without verifying the signature", func(t *testing.T) {
		t.Parallel()

		// Sign with a different key; decode must still succeed.
		other := NewTestJWTService("another-secret-also-long-enough-to-use", time.Hour,
			func() time.Time { return fixedTime })
		token, err := other.IssueToken(context.Background(), user)
		require.NoError(t, err)

		claims, ok := svc.DecodeToken(token)
		require.True(t, ok)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, user.Email, claims.Email)
	})

	t.Run("decodes an expired token", func(t *testing.T) {
		t.Parallel()

		past := NewTestJWTService(testSecret, time.Hour, func() time.Time {
			return fixedTime.Add(-48 * time.Hour)
		})
		token, err := past.IssueToken(context.Background(), user)
		require.NoError(t, err)

		claims, ok := svc.DecodeToken(token)
		require.True(t, ok)
		assert.Equal(t, user.ID, claims.UserID)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		t.Parallel()

		claims, ok := svc.DecodeToken("garbage")
		assert.False(t, ok)
		assert.Nil(t, claims)
	})
}

func TestIsExpired(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	user := testUser()

	issued, err := NewTestJWTService(testSecret, tokenLifetime, func() time.Time {
		return fixedTime
	}).IssueToken(context.Background(), user)
	require.NoError(t, err)

	tests := []struct {
		name  string
		now   time.Time
		token string
		want  bool
	}{
		{
			name:  "fresh token",
			now:   fixedTime.Add(time.Minute),
			token: issued,
			want:  false,
		},
		{
			name:  "past expiry",
			now:   fixedTime.Add(tokenLifetime + time.Second),
			token: issued,
			want:  true,
		},
		{
			name:  "undecodable token counts as expired",
			now:   fixedTime,
			token: "garbage",
			want:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := NewTestJWTService(testSecret, tokenLifetime, func() time.Time {
				return tc.now
			})
			assert.Equal(t, tc.want, svc.IsExpired(tc.token))
		})
	}
}

func TestExpirationOf(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	user := testUser()

	svc := NewTestJWTService(testSecret, tokenLifetime, func() time.Time {
		return fixedTime
	})

	t.Run("returns the expiry claim", func(t *testing.T) {
		t.Parallel()

		token, err := svc.IssueToken(context.Background(), user)
		require.NoError(t, err)

		expiry, ok := svc.ExpirationOf(token)
		require.True(t, ok)
		assert.Equal(t, fixedTime.Add(tokenLifetime).Unix(), expiry.Unix())
	})

	t.Run("reports false for undecodable tokens", func(t *testing.T) {
		t.Parallel()

		_, ok := svc.ExpirationOf("garbage")
		assert.False(t, ok)
	})
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	user := testUser()

	t.Run("extends expiry and preserves identity", func(t *testing.T) {
		t.Parallel()

		issuer := NewTestJWTService(testSecret, tokenLifetime, func() time.Time {
			return fixedTime
		})
		original, err := issuer.IssueToken(context.Background(), user)
		require.NoError(t, err)

		later := fixedTime.Add(30 * time.Minute)
		refresher := NewTestJWTService(testSecret, tokenLifetime, func() time.Time {
			return later
		})
		refreshed, err := refresher.RefreshToken(context.Background(), original)
		require.NoError(t, err)
		require.NotEmpty(t, refreshed)

		originalExpiry, ok := issuer.ExpirationOf(original)
		require.True(t, ok)
		refreshedExpiry, ok := refresher.ExpirationOf(refreshed)
		require.True(t, ok)
		assert.True(t, refreshedExpiry.After(originalExpiry),
			"refreshed token must expire strictly later than the original")

		claims, err := refresher.VerifyToken(context.Background(), refreshed)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, user.Email, claims.Email)
		assert.Equal(t, user.Username, claims.Username)
		assert.Equal(t, user.Role, claims.Role)
	})

	t.Run("rejects undecodable tokens", func(t *testing.T) {
		t.Parallel()

		svc := NewTestJWTService(testSecret, tokenLifetime, func() time.Time {
			return fixedTime
		})
		_, err := svc.RefreshToken(context.Background(), "garbage")
		assert.ErrorIs(t, err, ErrTokenRefresh)
	})
}
