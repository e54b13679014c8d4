package normalizer

import (
	"fmt"
	"regexp"
	"strings"

	"sitegen/internal/models"
)

// PreprintVenue is the venue forced onto preprint publications.
const PreprintVenue = "Preprint"

// Transformer converts raw records into normalized front matter fields.
type Transformer struct {
	talkNames        *Highlighter
	publicationNames *Highlighter
	yearPattern      *regexp.Regexp
}

// NewTransformer creates a transformer with the given highlighters. A nil
// highlighter leaves names untouched.
func NewTransformer(talkNames, publicationNames *Highlighter) *Transformer {
	if talkNames == nil {
		talkNames = NewHighlighter(nil)
	}

	if publicationNames == nil {
		publicationNames = NewHighlighter(nil)
	}

	return &Transformer{
		talkNames:        talkNames,
		publicationNames: publicationNames,
		// Years read from a column with gaps come through as floats ("2020.0").
		yearPattern: regexp.MustCompile(`^(\d+)\.0*$`),
	}
}

// Transform trims, renames and highlights the fields of rec.
func (t *Transformer) Transform(kind models.Kind, rec models.Record) (*models.NormalizedRecord, error) {
	nr := models.NewNormalizedRecord(rec.Index)

	for _, f := range rec.Fields {
		nr.Set(normalizeKey(kind, f.Key), f.Value.Trim())
	}

	switch kind {
	case models.KindTalk:
		highlightField(nr, "authors", t.talkNames)

		return nr, nil
	case models.KindPublication:
		highlightField(nr, "author", t.publicationNames)
		t.remapPublication(nr)

		return nr, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
}

func (t *Transformer) remapPublication(nr *models.NormalizedRecord) {
	year, _ := nr.Get("publication_year")
	nr.Set("date", models.Some(t.normalizeYear(year.Text)+"-01-01"))

	nr.Rename("author", "authors")

	for _, key := range []string{"publication_title", "conference_name"} {
		if v, ok := nr.Get(key); ok && v.Present {
			nr.Rename(key, "venue")
		}
	}

	nr.Rename("url", "paperurl")

	if itemType, _ := nr.Get("item_type"); itemType.Present && itemType.Text == "preprint" {
		nr.Set("venue", models.Some(PreprintVenue))
	}
}

func (t *Transformer) normalizeYear(year string) string {
	year = strings.TrimSpace(year)
	if m := t.yearPattern.FindStringSubmatch(year); m != nil {
		return m[1]
	}

	return year
}

func highlightField(nr *models.NormalizedRecord, key string, h *Highlighter) {
	v, ok := nr.Get(key)
	if !ok || !v.Present {
		return
	}

	nr.Set(key, models.Some(h.Apply(v.Text)))
}
