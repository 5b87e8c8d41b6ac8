// Package title canonicalizes article titles for identity comparison,
// alphabetical indexing, and filename-safe page slugs.
package title

import (
	"errors"
	"strings"
	"unicode"

	slug "github.com/goliatone/go-slug"
)

// ErrEmpty reports a title that normalizes to nothing, e.g. a bare article
// ("The") or pure whitespace. Such titles cannot be indexed.
var ErrEmpty = errors.New("title: normalizes to empty string")

// Title is the canonical form of a raw article title. Canonical is the
// identity used across the corpus: two raw titles denote the same entry iff
// their Canonical fields are byte-equal. SortKey drops a leading article
// ("The"/"A"/"An") and case-folds, so "The Jabberwock" indexes next to
// "Jabberwock" while still displaying its raw form.
type Title struct {
	Raw       string
	Canonical string
	SortKey   string
	Slug      string
}

// Normalize canonicalizes a raw title. It is a pure function: repeated calls
// on the same input always yield the same result, independent of build order.
func Normalize(raw string) (Title, error) {
	canonical := Canonicalize(raw)
	key := SortKey(canonical)
	if key == "" {
		return Title{}, ErrEmpty
	}

	pageSlug, err := slug.Normalize(canonical)
	if err != nil || pageSlug == "" {
		// Titles made of characters the slugifier discards entirely still
		// need a stable page name; fall back to the sort key bytes.
		pageSlug = fallbackSlug(key)
	}

	return Title{
		Raw:       strings.TrimSpace(raw),
		Canonical: canonical,
		SortKey:   key,
		Slug:      pageSlug,
	}, nil
}

// Canonicalize collapses interior whitespace, trims, and capitalizes the
// first rune. This mirrors the titlecase rule article authors see: the first
// word is capitalized, the rest of the title is kept as written.
func Canonicalize(raw string) string {
	collapsed := strings.Join(strings.Fields(raw), " ")
	if collapsed == "" {
		return ""
	}
	runes := []rune(collapsed)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// SortKey lowercases the canonical title and strips one leading English
// article for alphabetization purposes only. A title that is nothing but an
// article ("The") strips to the empty string and fails Normalize.
func SortKey(canonical string) string {
	key := strings.ToLower(strings.TrimSpace(canonical))
	for _, word := range []string{"the", "an", "a"} {
		if key == word {
			return ""
		}
		if strings.HasPrefix(key, word+" ") {
			key = strings.TrimSpace(key[len(word)+1:])
			break
		}
	}
	return key
}

// IndexRune returns the upper-cased rune that selects the index bucket for
// the given sort key. Returns 0 for an empty key.
func IndexRune(sortKey string) rune {
	for _, r := range sortKey {
		return unicode.ToUpper(r)
	}
	return 0
}

func fallbackSlug(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "entry"
	}
	return b.String()
}
