// Package slug derives SEO-friendly, collision-resistant post slugs from
// titles, transliterating Amharic to Latin characters on the way.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	nonAlnum     = regexp.MustCompile(`[^a-z0-9]+`)
	edgeHyphens  = regexp.MustCompile(`^-+|-+$`)
	lastSegment  = regexp.MustCompile(`-[^-]*$`)
	validPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Generate builds a slug from title: transliterate, lowercase, collapse runs
// of non-alphanumerics to a single hyphen, trim edge hyphens, and truncate to
// maxLen without cutting mid-word. An empty result falls back to
// "post-<fallbackID>".
func Generate(title, fallbackID string, maxLen int) string {
	fallback := "untitled"
	if fallbackID != "" {
		fallback = fmt.Sprintf("post-%s", fallbackID)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return fallback
	}

	s := strings.ToLower(Transliterate(title))
	s = nonAlnum.ReplaceAllString(s, "-")
	s = edgeHyphens.ReplaceAllString(s, "")
	if s == "" {
		return fallback
	}

	if maxLen > 0 && len(s) > maxLen {
		s = s[:maxLen]
		// Delete back to the last complete hyphen-delimited segment.
		s = lastSegment.ReplaceAllString(s, "")
	}
	if s == "" {
		return fallback
	}
	return s
}

// IsValid reports whether s is a properly formatted slug.
func IsValid(s string) bool {
	return validPattern.MatchString(s)
}

// EnsureUnique appends -1, -2, ... to base until taken reports the slug free.
func EnsureUnique(base string, taken func(string) bool) string {
	if taken == nil || !taken(base) {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !taken(candidate) {
			return candidate
		}
	}
}
