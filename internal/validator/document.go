// Package validator checks generated front matter documents.
package validator

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"sitegen/internal/models"
	"sitegen/pkg/frontmatter"
)

// Validation errors.
var (
	ErrNotMapping  = errors.New("front matter is not a key/value mapping")
	ErrNoDocuments = errors.New("no documents found")
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Field   string
	Value   string
	Pattern string
	Message string
	Line    int
}

// ValidationResult contains validation results for one document.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []string
	Stats    ValidationStats
	IsValid  bool
}

// ValidationStats contains validation statistics.
type ValidationStats struct {
	TotalKeys    int
	QuotedKeys   int
	UnquotedKeys int
}

// requiredKeys lists front matter keys every document of a kind must carry.
var requiredKeys = map[models.Kind][]string{
	models.KindTalk:        {"authors"},
	models.KindPublication: {"title", "authors", "date", "paperurl"},
}

// DocumentValidator validates generated documents.
type DocumentValidator struct {
	datePattern *regexp.Regexp
}

// NewDocumentValidator creates a new validator.
func NewDocumentValidator() *DocumentValidator {
	return &DocumentValidator{
		datePattern: regexp.MustCompile(`^\d{4}-01-01$`),
	}
}

// ValidateDocument checks the front matter of content against the rules for kind.
func (v *DocumentValidator) ValidateDocument(content string, kind models.Kind) *ValidationResult {
	result := &ValidationResult{
		IsValid:  true,
		Errors:   []ValidationError{},
		Warnings: []string{},
	}

	block, _, err := frontmatter.Extract(content)
	if err != nil {
		result.addError(ValidationError{Message: err.Error()})
		return result
	}

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(block.Raw()), &root); err != nil {
		result.addError(ValidationError{Message: fmt.Sprintf("front matter is not valid YAML: %v", err)})
		return result
	}

	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		result.addError(ValidationError{Message: ErrNotMapping.Error()})
		return result
	}

	mapping := root.Content[0]
	seen := make(map[string]string, len(mapping.Content)/2)
	lineOffset := block.StartLine - 1

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode, valNode := mapping.Content[i], mapping.Content[i+1]
		key := keyNode.Value
		line := keyNode.Line + lineOffset

		result.Stats.TotalKeys++

		if _, dup := seen[key]; dup {
			result.addError(ValidationError{Line: line, Field: key, Message: "duplicate key"})
		}

		seen[key] = valNode.Value

		if key == "collection" {
			if valNode.Value != kind.Collection() {
				result.addError(ValidationError{
					Line:    line,
					Field:   key,
					Value:   valNode.Value,
					Message: fmt.Sprintf("collection should be %q", kind.Collection()),
				})
			}

			continue
		}

		if valNode.Kind != yaml.ScalarNode || valNode.Style != yaml.DoubleQuotedStyle {
			result.Stats.UnquotedKeys++
			result.addError(ValidationError{
				Line:    line,
				Field:   key,
				Value:   truncate(valNode.Value, 50),
				Message: "value is not a double-quoted string",
			})

			continue
		}

		result.Stats.QuotedKeys++
	}

	if _, ok := seen["collection"]; !ok {
		result.addError(ValidationError{Field: "collection", Message: "missing collection key"})
	}

	for _, key := range requiredKeys[kind] {
		if _, ok := seen[key]; !ok {
			result.addError(ValidationError{Field: key, Message: "missing required key"})
		}
	}

	if date, ok := seen["date"]; ok && kind == models.KindPublication && !v.datePattern.MatchString(date) {
		result.addError(ValidationError{
			Field:   "date",
			Value:   date,
			Pattern: v.datePattern.String(),
			Message: "publication date must be the first of January",
		})
	}

	if authors, ok := seen["authors"]; ok && authors == models.MissingText {
		result.Warnings = append(result.Warnings, "authors is empty")
	}

	return result
}

// FileResult is the validation result of one file.
type FileResult struct {
	Result *ValidationResult
	Path   string
}

// ValidateDir validates every .md file directly inside dir, in name order.
func (v *DocumentValidator) ValidateDir(dir string, kind models.Kind) ([]FileResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var results []FileResult

	for _, entry := range entries {
		if entry.IsDir() || strings.ToLower(filepath.Ext(entry.Name())) != ".md" {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		content, err := os.ReadFile(path)
		if err != nil {
			return results, fmt.Errorf("failed to read %s: %w", path, err)
		}

		results = append(results, FileResult{Path: path, Result: v.ValidateDocument(string(content), kind)})
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDocuments, dir)
	}

	return results, nil
}

func (r *ValidationResult) addError(e ValidationError) {
	r.IsValid = false
	r.Errors = append(r.Errors, e)
}

// truncate truncates string to max length.
func truncate(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}

	return s
}

// String returns string representation of validation result.
func (r *ValidationResult) String() string {
	status := "VALID"
	if !r.IsValid {
		status = "INVALID"
	}

	return fmt.Sprintf(
		"%s | Keys: %d | Quoted: %d | Errors: %d | Warnings: %d",
		status,
		r.Stats.TotalKeys,
		r.Stats.QuotedKeys,
		len(r.Errors),
		len(r.Warnings),
	)
}

// Summary joins error messages into a single line.
func (r *ValidationResult) Summary() string {
	msgs := make([]string, 0, len(r.Errors))

	for _, e := range r.Errors {
		if e.Field != "" {
			msgs = append(msgs, e.Field+": "+e.Message)
		} else {
			msgs = append(msgs, e.Message)
		}
	}

	return strings.Join(msgs, "; ")
}

// PrintErrors writes validation errors in readable format.
func (r *ValidationResult) PrintErrors(w io.Writer) {
	if len(r.Errors) == 0 {
		return
	}

	fmt.Fprintln(w, "Validation Errors:")

	for _, err := range r.Errors {
		if err.Line > 0 {
			fmt.Fprintf(w, "  Line %d", err.Line)
		} else {
			fmt.Fprint(w, " ")
		}

		if err.Field != "" {
			fmt.Fprintf(w, " [%s]", err.Field)
		}

		fmt.Fprintf(w, ": %s\n", err.Message)

		if err.Value != "" {
			fmt.Fprintf(w, "    Found: %q\n", err.Value)
		}

		if err.Pattern != "" {
			fmt.Fprintf(w, "    Expected pattern: %s\n", err.Pattern)
		}
	}
}

// PrintWarnings writes validation warnings.
func (r *ValidationResult) PrintWarnings(w io.Writer) {
	if len(r.Warnings) == 0 {
		return
	}

	fmt.Fprintln(w, "Validation Warnings:")

	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "  %s\n", warn)
	}
}
