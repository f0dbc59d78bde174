// Package cookie implements the session cookie codec: serializing a single
// name/value pair with security attributes into a Set-Cookie header value,
// and parsing an inbound Cookie header into a name→value map.
//
// Parsing is deliberately forgiving. A request without cookies, or with
// malformed segments from some other site's middleware, is a normal case
// and must never fail the request.
package cookie

import (
	"net/url"
	"strconv"
	"strings"
)

// SameSite values accepted by Options. SameSiteNone requires Secure per the
// cookie spec; Serialize does not enforce that because the login flow always
// sets both.
const (
	SameSiteLax    = "Lax"
	SameSiteStrict = "Strict"
	SameSiteNone   = "None"
)

// Options controls the attributes emitted by Serialize. The zero value is
// not useful; call DefaultOptions for the secure defaults.
type Options struct {
	Path     string
	HTTPOnly bool
	Secure   bool
	SameSite string

	// MaxAge is the cookie lifetime in seconds. Nil omits the attribute
	// (session cookie); a pointer to 0 expires the cookie immediately,
	// which is how logout clears it.
	MaxAge *int
}

// DefaultOptions returns the secure baseline: Path=/, HttpOnly, Secure,
// SameSite=Lax, no Max-Age.
func DefaultOptions() Options {
	return Options{
		Path:     "/",
		HTTPOnly: true,
		Secure:   true,
		SameSite: SameSiteLax,
	}
}

// MaxAge returns a pointer to seconds, for use in Options.MaxAge.
func MaxAge(seconds int) *int {
	return &seconds
}

// Serialize builds a Set-Cookie header value for a single cookie pair. The
// value is percent-encoded so it round-trips through Parse.
func Serialize(name, value string, opts Options) string {
	parts := []string{name + "=" + escapeValue(value)}

	path := opts.Path
	if path == "" {
		path = "/"
	}
	parts = append(parts, "Path="+path)

	if opts.HTTPOnly {
		parts = append(parts, "HttpOnly")
	}
	if opts.Secure {
		parts = append(parts, "Secure")
	}

	sameSite := opts.SameSite
	if sameSite == "" {
		sameSite = SameSiteLax
	}
	parts = append(parts, "SameSite="+sameSite)

	if opts.MaxAge != nil {
		parts = append(parts, "Max-Age="+strconv.Itoa(*opts.MaxAge))
	}

	return strings.Join(parts, "; ")
}

// Parse decodes a Cookie request header into a name→value map. Segments
// without an "=", segments with an empty name, and values that fail URL
// decoding are skipped. An empty or absent header yields an empty map.
func Parse(header string) map[string]string {
	out := make(map[string]string)
	if header == "" {
		return out
	}
	for _, part := range strings.Split(header, ";") {
		idx := strings.Index(part, "=")
		if idx == -1 {
			continue
		}
		name := strings.TrimSpace(part[:idx])
		if name == "" {
			continue
		}
		value := strings.TrimSpace(part[idx+1:])
		// PathUnescape decodes %XX and leaves "+" alone, matching how the
		// frontend decodes the value. QueryUnescape would turn "+" into a
		// space and change the wire format.
		decoded, err := url.PathUnescape(value)
		if err != nil {
			continue
		}
		out[name] = decoded
	}
	return out
}

const upperhex = "0123456789ABCDEF"

// escapeValue percent-encodes every byte outside the unreserved set the
// frontend's encoder leaves intact (alphanumerics and -_.!~*'()). Spaces
// become %20, never "+".
func escapeValue(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0xf])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
