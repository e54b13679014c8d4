// Package emitter writes normalized records to front matter documents on disk.
package emitter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"sitegen/internal/formatter"
	"sitegen/internal/models"
	"sitegen/pkg/slug"
)

// Emitter errors.
var (
	ErrReferencedFileMissing = errors.New("referenced file does not exist")
	ErrEmptyFilename         = errors.New("cannot derive output filename")
	ErrInvalidKind           = errors.New("invalid document kind")
)

// ReferencedFileError reports a record that points at a file that cannot be read.
type ReferencedFileError struct {
	Err   error
	Field string
	Path  string
	Index int
}

func (e *ReferencedFileError) Error() string {
	return fmt.Sprintf("record %d: field %q references %s: %v", e.Index, e.Field, e.Path, e.Err)
}

func (e *ReferencedFileError) Unwrap() error {
	return e.Err
}

// copiedExtensions are abstract extensions whose file contents are inlined.
var copiedExtensions = map[string]bool{"md": true, "txt": true}

// Emitter renders and writes one document per record.
type Emitter struct {
	Kind      models.Kind
	OutputDir string
	FilesDir  string
	LinkBase  string
}

// New creates an emitter for kind writing into outputDir.
func New(kind models.Kind, outputDir, filesDir, linkBase string) *Emitter {
	return &Emitter{
		Kind:      kind,
		OutputDir: outputDir,
		FilesDir:  filesDir,
		LinkBase:  linkBase,
	}
}

// Filename returns the output file name for nr.
func (e *Emitter) Filename(nr *models.NormalizedRecord) (string, error) {
	switch e.Kind {
	case models.KindTalk:
		return "conf_" + strconv.Itoa(nr.Index) + ".md", nil
	case models.KindPublication:
		name := slug.Make(nr.Title())
		if name == "" {
			return "", fmt.Errorf("record %d: %w from title %q", nr.Index, ErrEmptyFilename, nr.Title())
		}

		return name + ".md", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, e.Kind)
	}
}

// Render builds the document for nr without touching the output directory.
func (e *Emitter) Render(nr *models.NormalizedRecord) (*models.Document, error) {
	name, err := e.Filename(nr)
	if err != nil {
		return nil, err
	}

	var body string

	switch e.Kind {
	case models.KindTalk:
		abstract, _ := nr.Get("abstract")

		content, readErr := e.abstractContent(nr.Index, abstract)
		if readErr != nil {
			return nil, readErr
		}

		body = formatter.TalkBody(abstract, content, e.LinkBase)
	case models.KindPublication:
		key := "paperurl"
		if !nr.Has(key) {
			key = "url"
		}

		url, _ := nr.Get(key)
		body = formatter.PublicationBody(url)
	}

	return &models.Document{
		Kind:    e.Kind,
		Index:   nr.Index,
		Name:    name,
		Path:    filepath.Join(e.OutputDir, name),
		Title:   nr.Title(),
		Content: formatter.Format(formatter.FormatFrontMatter(nr, e.Kind), body),
	}, nil
}

// Emit renders nr and writes it, replacing any existing file.
func (e *Emitter) Emit(nr *models.NormalizedRecord) (*models.Document, error) {
	doc, err := e.Render(nr)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(doc.Path, []byte(doc.Content), 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", doc.Path, err)
	}

	return doc, nil
}

// abstractContent returns the referenced abstract file when its extension
// asks for inlining, and nil when the abstract should be linked.
func (e *Emitter) abstractContent(index int, abstract models.Value) ([]byte, error) {
	if abstract.IsBlank() || !copiedExtensions[extension(abstract.Text)] {
		return nil, nil
	}

	path := filepath.Join(e.FilesDir, abstract.Text)

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = ErrReferencedFileMissing
		}

		return nil, &ReferencedFileError{Index: index, Field: "abstract", Path: path, Err: err}
	}

	if content == nil {
		content = []byte{}
	}

	return content, nil
}

// extension returns the text after the last dot, or "" when there is none.
func extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}

	return name[i+1:]
}
