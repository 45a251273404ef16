package storage

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename reduces name to ASCII letters, digits, '_', '.' and '-'.
// Accents are folded to their base letter and whitespace runs become '_'.
// Names that reduce to nothing get a random one.
func SecureFilename(name string) string {
	if cleaned := secure(name); cleaned != "" {
		return cleaned
	}
	return uuid.NewString()
}

// ProjectSlug names a project's upload folder after its title.
func ProjectSlug(title string) string {
	if slug := secure(strings.ReplaceAll(strings.ToLower(title), " ", "-")); slug != "" {
		return slug
	}
	return "projeto"
}

func secure(name string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	cleaned := strings.NewReplacer("/", " ", "\\", " ").Replace(b.String())
	cleaned = strings.Join(strings.Fields(cleaned), "_")
	cleaned = unsafeFilenameChars.ReplaceAllString(cleaned, "")
	return strings.Trim(cleaned, "._")
}
