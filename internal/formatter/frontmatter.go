// Package formatter renders normalized records as front matter documents.
package formatter

import (
	"fmt"
	"strings"

	"sitegen/internal/models"
)

// Delimiter opens and closes the front matter block.
const Delimiter = "---"

var quoteEscaper = strings.NewReplacer(escapePairs()...)

// escapePairs lists the replacements for Quote. Control characters and the
// byte order mark have no literal form in a double-quoted scalar.
func escapePairs() []string {
	pairs := []string{
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	}

	for c := rune(0); c <= 0x9f; c++ {
		if c == '\n' || c == '\r' || c == '\t' || (c >= 0x20 && c < 0x7f) {
			continue
		}

		pairs = append(pairs, string(c), fmt.Sprintf(`\x%02X`, c))
	}

	return append(pairs, "\ufeff", `\uFEFF`)
}

// Quote wraps s in double quotes, escaping characters that would end or
// break a double-quoted YAML scalar.
func Quote(s string) string {
	return `"` + quoteEscaper.Replace(s) + `"`
}

// FormatFrontMatter renders one key: "value" line per field followed by the
// collection key, between delimiter lines.
func FormatFrontMatter(nr *models.NormalizedRecord, kind models.Kind) string {
	var sb strings.Builder

	sb.WriteString(Delimiter + "\n")

	for _, f := range nr.Fields() {
		sb.WriteString(f.Key)
		sb.WriteString(": ")
		sb.WriteString(Quote(f.Value.String()))
		sb.WriteString("\n")
	}

	sb.WriteString("collection: " + kind.Collection() + "\n")
	sb.WriteString(Delimiter + "\n")

	return sb.String()
}
