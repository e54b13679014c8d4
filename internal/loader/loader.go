// Package loader reads delimited tabular sources into records.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"sitegen/internal/models"
)

// Loader errors.
var (
	ErrSourceMissing = errors.New("source file not found")
	ErrNoHeader      = errors.New("source has no header row")
	ErrMalformedRow  = errors.New("malformed row")
	ErrBadDelimiter  = errors.New("invalid delimiter")
)

const utf8BOM = "\ufeff"

// LoadError reports a missing or unparsable source file.
type LoadError struct {
	Err  error
	Path string
	Line int
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s: line %d: %v", e.Path, e.Line, e.Err)
	}

	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Source is a delimited text file with a header row.
type Source struct {
	Path      string
	Delimiter rune
	header    []string
}

// Open checks that path exists and reads its header.
func Open(path string, delimiter rune) (*Source, error) {
	if delimiter == 0 || delimiter == '"' || delimiter == '\r' || delimiter == '\n' {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %q", ErrBadDelimiter, delimiter)}
	}

	s := &Source{Path: path, Delimiter: delimiter}

	f, r, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header, err := readHeader(r, path)
	if err != nil {
		return nil, err
	}

	s.header = header

	return s, nil
}

// Header returns the raw column names.
func (s *Source) Header() []string {
	out := make([]string, len(s.header))
	copy(out, s.header)

	return out
}

// Records yields rows in file order. The file is reopened on every call, so the
// sequence can be iterated more than once. Iteration stops after the first error.
func (s *Source) Records() iter.Seq2[models.Record, error] {
	return func(yield func(models.Record, error) bool) {
		f, r, err := s.open()
		if err != nil {
			yield(models.Record{}, err)
			return
		}
		defer f.Close()

		header, err := readHeader(r, s.Path)
		if err != nil {
			yield(models.Record{}, err)
			return
		}

		for index := 0; ; index++ {
			row, readErr := r.Read()
			if errors.Is(readErr, io.EOF) {
				return
			}

			if readErr != nil {
				yield(models.Record{}, s.rowError(readErr))
				return
			}

			if len(row) != len(header) {
				line, _ := r.FieldPos(0)
				err := &LoadError{
					Path: s.Path,
					Line: line,
					Err:  fmt.Errorf("%w: got %d fields, header has %d", ErrMalformedRow, len(row), len(header)),
				}
				yield(models.Record{}, err)

				return
			}

			rec := models.Record{Index: index, Fields: make([]models.Field, len(row))}
			for i, cell := range row {
				rec.Fields[i] = models.Field{Key: header[i], Value: models.CellValue(cell)}
			}

			if !yield(rec, nil) {
				return
			}
		}
	}
}

func (s *Source) open() (*os.File, *csv.Reader, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, &LoadError{Path: s.Path, Err: ErrSourceMissing}
		}

		return nil, nil, &LoadError{Path: s.Path, Err: err}
	}

	r := csv.NewReader(f)
	r.Comma = s.Delimiter
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	return f, r, nil
}

func (s *Source) rowError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &LoadError{Path: s.Path, Line: parseErr.Line, Err: fmt.Errorf("%w: %w", ErrMalformedRow, parseErr.Err)}
	}

	return &LoadError{Path: s.Path, Err: err}
}

func readHeader(r *csv.Reader, path string) ([]string, error) {
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, &LoadError{Path: path, Err: ErrNoHeader}
	}

	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, &LoadError{Path: path, Line: parseErr.Line, Err: fmt.Errorf("%w: %w", ErrMalformedRow, parseErr.Err)}
		}

		return nil, &LoadError{Path: path, Err: err}
	}

	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	return header, nil
}
