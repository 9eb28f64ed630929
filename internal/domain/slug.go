package domain

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	SlugMaxLen      = 255 // destinations, hotels, posts
	ShortSlugMaxLen = 120 // categories, tags
)

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapse = regexp.MustCompile(`[-\s]+`)
)

// Slugify lowercases title, folds it to ASCII, drops punctuation and joins
// words with single hyphens. The result is cut to max bytes without a
// trailing separator. An empty result means title had nothing usable.
func Slugify(title string, max int) string {
	// transform.Chain keeps state, so it is built per call
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	s, _, err := transform.String(fold, title)
	if err != nil {
		s = title
	}
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = slugStrip.ReplaceAllString(strings.ToLower(s), "")
	s = slugCollapse.ReplaceAllString(strings.TrimSpace(s), "-")
	s = strings.Trim(s, "-_")
	if max > 0 && len(s) > max {
		s = strings.TrimRight(s[:max], "-_")
	}
	return s
}
