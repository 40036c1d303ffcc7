package lesson

import (
	"strings"
	"unicode"
)

const (
	maxSlugRunes = 48

	// fallbackSlug names the file when a title has nothing slug-worthy in it.
	fallbackSlug = "lesson"
)

// Slugify derives a filename-safe identifier from a lesson title. ASCII
// letters are lowercased and Han characters pass through unchanged, so
// Chinese titles stay recognizable in the output tree. Everything else
// collapses to single hyphens.
func Slugify(title string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', unicode.Is(unicode.Han, r):
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
		default:
			pending = true
		}
	}

	slug := b.String()
	if runes := []rune(slug); len(runes) > maxSlugRunes {
		// The cut can land right after a hyphen; trim again so the
		// result stays stable under repeated slugification.
		slug = strings.TrimRight(string(runes[:maxSlugRunes]), "-")
	}
	if slug == "" {
		return fallbackSlug
	}
	return slug
}
