package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashURL creates a SHA256 hash of a URL string.
// This is useful for creating consistent, safe keys for Redis.
func HashURL(rawURL string) string {
	h := sha256.New()
	h.Write([]byte(rawURL))
	return hex.EncodeToString(h.Sum(nil))
}

// ResolveURL turns href into an absolute URL the way a browser treats links
// inside a documentation page:
//   - anything starting with "http" is returned unchanged;
//   - a root-relative href ("/x") is appended to host;
//   - otherwise href replaces the last path segment of baseURL.
//
// Dot segments, queries and fragments get no special handling and the result
// is not validated.
func ResolveURL(host, baseURL, href string) string {
	switch {
	case strings.HasPrefix(href, "http"):
		return href
	case strings.HasPrefix(href, "/"):
		return strings.TrimSuffix(host, "/") + href
	}
	i := strings.LastIndex(baseURL, "/")
	if i < 0 {
		return href
	}
	return baseURL[:i+1] + href
}

// IsRootRelative reports whether href points at the known host ("/path").
func IsRootRelative(href string) bool {
	return len(href) > 1 && href[0] == '/'
}
