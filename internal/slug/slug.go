package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	invalidChars = regexp.MustCompile(`[^\w\s-]`)
	separators   = regexp.MustCompile(`[-\s]+`)
	validSlug    = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// Slugify converts s to ASCII, lowercases it, drops anything that is not a
// word character, space or hyphen and collapses runs of spaces and hyphens
// into a single hyphen.
func Slugify(s string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(s) {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}

	value := invalidChars.ReplaceAllString(strings.ToLower(b.String()), "")
	value = separators.ReplaceAllString(value, "-")

	return strings.Trim(value, "-_")
}

// Valid reports whether s consists of letters, numbers, underscores or
// hyphens only.
func Valid(s string) bool {
	return validSlug.MatchString(s)
}
