// Package normalizer turns raw tabular records into normalized front matter fields.
package normalizer

import (
	"fmt"

	"sitegen/internal/models"
)

// Processor validates and transforms records.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// NewProcessor creates a processor that highlights names with the given lists.
func NewProcessor(talkNames, publicationNames []string) *Processor {
	return &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(NewHighlighter(talkNames), NewHighlighter(publicationNames)),
	}
}

// Process validates rec and returns its normalized form.
func (p *Processor) Process(kind models.Kind, rec models.Record) (*models.NormalizedRecord, error) {
	// 1. Check required fields
	if err := p.validator.Validate(kind, rec); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// 2. Normalize
	nr, err := p.transformer.Transform(kind, rec)
	if err != nil {
		return nil, fmt.Errorf("transformation failed: %w", err)
	}

	return nr, nil
}
