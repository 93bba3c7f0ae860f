package auth

import "strings"

// bearerScheme is the only authorization scheme this API accepts.
const bearerScheme = "Bearer"

// ExtractFromHeader extracts the bearer token from an Authorization header
// value. The header must be in the exact two-segment "Bearer <token>" form.
// Returns ErrMissingAuthorization when the header is absent or empty, and
// ErrMalformedAuthorization for any other shape (wrong scheme, missing
// token, extra segments).
func ExtractFromHeader(headerValue string) (string, error) {
	if headerValue == "" {
		return "", ErrMissingAuthorization
	}

	parts := strings.Split(headerValue, " ")
	if len(parts) != 2 || parts[0] != bearerScheme || parts[1] == "" {
		return "", ErrMalformedAuthorization
	}

	return parts[1], nil
}
