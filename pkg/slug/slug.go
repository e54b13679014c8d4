// Package slug turns titles into filesystem-safe identifiers.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gosimple/unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	quotePattern      = regexp.MustCompile(`['’‘]+`)
	disallowedPattern = regexp.MustCompile(`[^a-z0-9]+`)
)

// Make transliterates title to ASCII, lower-cases it, drops punctuation and
// joins the remaining words with single hyphens.
//
//	Make("A Study: On Things (2020)") == "a-study-on-things-2020"
//	Make("Straße data") == "strasse-data"
func Make(title string) string {
	s := unidecode.Unidecode(fold(title))
	s = strings.ToLower(s)
	s = quotePattern.ReplaceAllString(s, "")
	s = dropDigitGroupSeparators(s)
	s = disallowedPattern.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// fold decomposes s and strips combining marks, so "Café" becomes "Cafe".
func fold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}

	return out
}

// dropDigitGroupSeparators removes commas between digits so "1,000" stays one word.
func dropDigitGroupSeparators(s string) string {
	if !strings.Contains(s, ",") {
		return s
	}

	var sb strings.Builder

	sb.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == ',' && i > 0 && i+1 < len(s) && isDigit(s[i-1]) && isDigit(s[i+1]) {
			continue
		}

		sb.WriteByte(s[i])
	}

	return sb.String()
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
