// Package redact provides utilities for scrubbing sensitive information
// from strings before they are logged. Error messages can carry connection
// strings, credentials, or bearer tokens; everything that reaches a log
// record goes through here first.
package redact

import "regexp"

// Redaction placeholders
const (
	redactedCredential = "[REDACTED_CREDENTIAL]"
	redactedKey        = "[REDACTED_KEY]"
	redactedJWT        = "[REDACTED_JWT]"
	redactedEmail      = "[REDACTED_EMAIL]"
)

// Precompiled patterns, applied in order.
var replacements = []struct {
	pattern     *regexp.Regexp
	placeholder string
}{
	// Database connection strings with inline credentials
	{regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`), redactedCredential},

	// Password-style key/value fragments
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`), redactedCredential},

	// API keys, secrets, and generic tokens
	{regexp.MustCompile(`(?i)(api[_-]?key|token|secret|key)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), redactedKey},

	// JWT tokens: three base64url segments, first two starting with eyJ
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), redactedJWT},

	// Email addresses
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), redactedEmail},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range replacements {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
// Returns an empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
