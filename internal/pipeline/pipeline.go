// Package pipeline wires the loader, normalizer and emitter into a single
// record-by-record generation run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sitegen/internal/config"
	"sitegen/internal/emitter"
	"sitegen/internal/loader"
	"sitegen/internal/logger"
	"sitegen/internal/models"
	"sitegen/internal/normalizer"
	"sitegen/internal/validator"
)

// Pipeline errors.
var (
	ErrRecordsFailed = errors.New("records failed")
	ErrNoSource      = errors.New("no source configured")
	ErrInvalidOutput = errors.New("generated document failed verification")
)

// Entry is the outcome of one record.
type Entry struct {
	Err   error
	Title string
	File  string
	Index int
}

// Result collects the outcome of a run.
type Result struct {
	Kind    models.Kind
	Entries []Entry
}

// Generated returns the number of documents written.
func (r *Result) Generated() int {
	n := 0

	for _, e := range r.Entries {
		if e.Err == nil {
			n++
		}
	}

	return n
}

// Failed returns the number of records that could not be written.
func (r *Result) Failed() int {
	return len(r.Entries) - r.Generated()
}

// Errors returns the errors of failed records in order.
func (r *Result) Errors() []error {
	var errs []error

	for _, e := range r.Entries {
		if e.Err != nil {
			errs = append(errs, e.Err)
		}
	}

	return errs
}

// Generator runs one collection from source file to output directory.
type Generator struct {
	kind            models.Kind
	source          config.SourceConfig
	processor       *normalizer.Processor
	emitter         *emitter.Emitter
	verifier        *validator.DocumentValidator
	log             *logger.Logger
	continueOnError bool
}

// NewGenerator builds a generator for kind from cfg.
func NewGenerator(kind models.Kind, cfg *config.Config, log *logger.Logger) (*Generator, error) {
	src := cfg.Source(kind)
	if src == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoSource, kind)
	}

	if log == nil {
		log = logger.Discard()
	}

	// Only the highlight list of the generator's own kind is used.
	var talkNames, pubNames []string
	if kind == models.KindTalk {
		talkNames = src.Highlight
	} else {
		pubNames = src.Highlight
	}

	g := &Generator{
		kind:            kind,
		source:          *src,
		processor:       normalizer.NewProcessor(talkNames, pubNames),
		emitter:         emitter.New(kind, src.OutputDir, src.FilesDir, src.LinkBase),
		log:             log.With("kind", string(kind)),
		continueOnError: cfg.Advanced.ContinueOnError,
	}

	if cfg.Advanced.VerifyOutput {
		g.verifier = validator.NewDocumentValidator()
	}

	return g, nil
}

// Run processes every record of the source in order. Without continue-on-error
// the first failing record aborts the run.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	result := &Result{Kind: g.kind}

	delim, err := g.source.DelimiterRune()
	if err != nil {
		return result, err
	}

	src, err := loader.Open(g.source.Input, delim)
	if err != nil {
		return result, err
	}

	g.log.Info("Generating documents", "input", g.source.Input, "output", g.source.OutputDir)
	g.log.Debug("Read header", "columns", src.Header())

	written := make(map[string]int)

	for rec, loadErr := range src.Records() {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if loadErr != nil {
			return result, loadErr
		}

		entry := g.process(rec, written)
		result.Entries = append(result.Entries, entry)

		if entry.Err == nil {
			continue
		}

		if !g.continueOnError {
			return result, entry.Err
		}

		g.log.Error("Skipping record", "index", entry.Index, "title", entry.Title, "error", entry.Err)
	}

	g.log.Info("Finished", "written", result.Generated(), "failed", result.Failed())

	if failed := result.Failed(); failed > 0 {
		return result, fmt.Errorf("%w: %d of %d", ErrRecordsFailed, failed, len(result.Entries))
	}

	return result, nil
}

func (g *Generator) process(rec models.Record, written map[string]int) Entry {
	entry := Entry{Index: rec.Index, Title: rawTitle(rec)}

	nr, err := g.processor.Process(g.kind, rec)
	if err != nil {
		entry.Err = err
		return entry
	}

	doc, err := g.emitter.Emit(nr)
	if err != nil {
		entry.Err = err
		return entry
	}

	entry.File = doc.Name
	if doc.Title != "" {
		entry.Title = doc.Title
	}

	if prev, dup := written[doc.Name]; dup {
		g.log.Warn("Overwriting document from an earlier record", "file", doc.Name, "index", rec.Index, "previous", prev)
	}

	written[doc.Name] = rec.Index

	g.log.Debug("Wrote document", "index", rec.Index, "file", doc.Path)

	if g.verifier != nil {
		res := g.verifier.ValidateDocument(doc.Content, g.kind)
		if !res.IsValid {
			entry.Err = fmt.Errorf("record %d: %w: %s", rec.Index, ErrInvalidOutput, res.Summary())
		}
	}

	return entry
}

func rawTitle(rec models.Record) string {
	for _, key := range []string{"title", "Title"} {
		if v, ok := rec.Lookup(key); ok && v.Present {
			return strings.TrimSpace(v.Text)
		}
	}

	return ""
}
