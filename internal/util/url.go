package util

import (
	"net/url"
	"strings"
)

// maxReturnToLength bounds the return URL kept in an OAuth handshake row.
const maxReturnToLength = 2048

// IsSafeReturnTo reports whether returnTo may be used as a post-login redirect.
// Only same-origin relative paths are accepted: "/" followed by anything that
// is not a second slash or backslash, with no control characters.
func IsSafeReturnTo(returnTo string) bool {
	if returnTo == "" || len(returnTo) > maxReturnToLength {
		return false
	}

	// Header injection
	if strings.ContainsAny(returnTo, "\r\n\t\x00") {
		return false
	}

	if !strings.HasPrefix(returnTo, "/") {
		return false
	}

	// Protocol-relative ("//evil.com") and backslash variants ("/\evil.com")
	if strings.HasPrefix(returnTo, "//") || strings.Contains(returnTo, "\\") {
		return false
	}

	parsed, err := url.Parse(returnTo)
	if err != nil {
		return false
	}
	return parsed.Scheme == "" && parsed.Host == ""
}

// SanitizeReturnTo returns returnTo when it is safe, otherwise fallback.
func SanitizeReturnTo(returnTo, fallback string) string {
	if IsSafeReturnTo(returnTo) {
		return returnTo
	}
	return fallback
}
