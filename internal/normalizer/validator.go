package normalizer

import (
	"errors"
	"fmt"
	"strings"

	"sitegen/internal/models"
)

// Validation errors.
var (
	ErrInvalidKind   = errors.New("invalid document kind")
	ErrMissingColumn = errors.New("missing column")
	ErrMissingValue  = errors.New("missing value")
)

// MissingFieldError reports an expected field that a record does not carry.
type MissingFieldError struct {
	Err   error
	Field string
	Title string
	Index int
}

func (e *MissingFieldError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("record %d (%q): %v %q", e.Index, e.Title, e.Err, e.Field)
	}

	return fmt.Sprintf("record %d: %v %q", e.Index, e.Err, e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return e.Err
}

// Required columns per document kind, by normalized key.
var (
	talkColumns        = []string{"authors", "abstract"}
	publicationColumns = []string{"title", "author", "publication_year", "item_type", "url"}

	// Publications cannot be named or dated without these values.
	publicationValues = []string{"title", "publication_year"}
)

// Validator checks that a record carries the fields its kind needs.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks a raw record against the required columns of kind.
func (v *Validator) Validate(kind models.Kind, rec models.Record) error {
	fields := make(map[string]models.Value, len(rec.Fields))
	for _, f := range rec.Fields {
		fields[normalizeKey(kind, f.Key)] = f.Value
	}

	title := ""
	if t, ok := fields["title"]; ok && t.Present {
		title = strings.TrimSpace(t.Text)
	}

	var columns, values []string

	switch kind {
	case models.KindTalk:
		columns = talkColumns
	case models.KindPublication:
		columns = publicationColumns
		values = publicationValues
	default:
		return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	for _, col := range columns {
		if _, ok := fields[col]; !ok {
			return &MissingFieldError{Index: rec.Index, Title: title, Field: col, Err: ErrMissingColumn}
		}
	}

	for _, col := range values {
		if fields[col].IsBlank() {
			return &MissingFieldError{Index: rec.Index, Title: title, Field: col, Err: ErrMissingValue}
		}
	}

	return nil
}

// normalizeKey trims a column name and, for publications, folds it to
// lower_snake form.
func normalizeKey(kind models.Kind, key string) string {
	key = strings.TrimSpace(key)
	if kind == models.KindPublication {
		key = strings.ToLower(strings.ReplaceAll(key, " ", "_"))
	}

	return key
}
