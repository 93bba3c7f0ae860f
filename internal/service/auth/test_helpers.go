package auth

import "time"

// NewTestJWTService creates a JWT service with an injectable time function
// for deterministic testing. Not for production use: it skips the secret
// length check so test secrets can stay readable.
func NewTestJWTService(
	secret string,
	tokenLifetime time.Duration,
	timeFunc func() time.Time,
) JWTService {
	if timeFunc == nil {
		timeFunc = time.Now
	}
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: tokenLifetime,
		timeFunc:      timeFunc,
	}
}
