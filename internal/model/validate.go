package model

import (
	"regexp"
	"strings"
)

// Field length limits shared by the API handlers and the admin CLI.
const (
	MaxUsernameLen         = 64
	MaxPasswordLen         = 256
	MaxSlugLen             = 80
	MaxNameLen             = 140
	MaxCategoryLen         = 80
	MaxShortDescriptionLen = 240
	MaxDescriptionLen      = 20000
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// IsNonEmpty reports whether s has non-whitespace content and is within
// max bytes.
func IsNonEmpty(s string, max int) bool {
	return strings.TrimSpace(s) != "" && len(s) <= max
}

// IsSlug reports whether s is a valid URL slug: lowercase alphanumerics
// separated by single hyphens, 2 to MaxSlugLen bytes.
func IsSlug(s string) bool {
	return len(s) >= 2 && len(s) <= MaxSlugLen && slugRe.MatchString(s)
}
