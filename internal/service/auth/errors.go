package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token failed verification. The cause is
	// deliberately not differentiated here: malformed structure, bad
	// signature, wrong issuer or audience, and expiry all surface as this
	// one error so that callers cannot build an oracle out of the responses.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrTokenIssuance indicates that signing a new token failed. This is
	// fatal for the calling request; there is no recovery path.
	ErrTokenIssuance = errors.New("failed to issue authentication token")

	// ErrTokenRefresh indicates a refresh failed, either because the old
	// token could not be decoded or because re-issuance failed.
	ErrTokenRefresh = errors.New("failed to refresh authentication token")

	// ErrMissingAuthorization indicates the Authorization header was absent
	// or empty.
	ErrMissingAuthorization = errors.New("authorization header is missing")

	// ErrMalformedAuthorization indicates the Authorization header was
	// present but not in the exact "Bearer <token>" form.
	ErrMalformedAuthorization = errors.New("authorization header format must be Bearer {token}")
)
