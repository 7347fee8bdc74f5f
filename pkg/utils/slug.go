package utils

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// CreateSlug turns a product title into a URL segment: lowercase, every run of
// characters outside [a-z0-9] collapsed to one hyphen, no leading or trailing hyphen.
func CreateSlug(title string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// CapitalizeFirst upper-cases the first letter, e.g. "beauty" -> "Beauty".
func CapitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
