package normalizer

import "strings"

// Default highlight lists. More specific names come first so a shorter name
// never claims text that belongs to a longer one.
var (
	DefaultTalkHighlights        = []string{"R. Ravinder", "Ravinder Bhattoo"}
	DefaultPublicationHighlights = []string{"Ravinder, R.", "Bhattoo, Ravinder", "Ravinder"}
)

// Substitution is a single literal find-and-replace rule.
type Substitution struct {
	Pattern     string
	Replacement string
}

// Highlighter wraps known author names in bold+underline markup.
type Highlighter struct {
	rules    []Substitution
	replacer *strings.Replacer
}

// Emphasize returns the markup used for a highlighted name.
func Emphasize(name string) string {
	return "<b><u>" + name + "</u></b>"
}

// NewHighlighter builds a highlighter from names in priority order. Empty
// names are ignored.
func NewHighlighter(names []string) *Highlighter {
	rules := make([]Substitution, 0, len(names))

	for _, name := range names {
		if name == "" {
			continue
		}

		rules = append(rules, Substitution{Pattern: name, Replacement: Emphasize(name)})
	}

	return NewHighlighterRules(rules)
}

// NewHighlighterRules builds a highlighter from explicit substitutions.
func NewHighlighterRules(rules []Substitution) *Highlighter {
	pairs := make([]string, 0, len(rules)*2)
	kept := make([]Substitution, 0, len(rules))

	for _, r := range rules {
		if r.Pattern == "" {
			continue
		}

		kept = append(kept, r)
		pairs = append(pairs, r.Pattern, r.Replacement)
	}

	return &Highlighter{rules: kept, replacer: strings.NewReplacer(pairs...)}
}

// Apply performs one left-to-right pass over s. At each position the first
// listed pattern that matches wins; replaced text is not scanned again.
func (h *Highlighter) Apply(s string) string {
	if len(h.rules) == 0 {
		return s
	}

	return h.replacer.Replace(s)
}
