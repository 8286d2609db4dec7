package util

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"path"
	"strings"
)

// ResolveLink resolves a possibly relative href against the fixed base
// origin, mirroring how the feed page links notes.
func ResolveLink(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// ContentKey derives the canonical content id from an absolute note URL:
// the query string is stripped and the final path segment is taken, so two
// URLs differing only in trailing query parameters (xsec_token and friends)
// map to the same key.
func ContentKey(absURL string) string {
	u, err := url.Parse(absURL)
	if err != nil {
		return ""
	}
	key := path.Base(u.Path)
	if key == "." || key == "/" {
		return ""
	}
	return key
}

// NoteID hashes a content key into the short stable identifier used as the
// dedup key for a session.
func NoteID(contentKey string) string {
	sum := sha256.Sum256([]byte(contentKey))
	return hex.EncodeToString(sum[:])[:8]
}
