// Package models defines data structures shared by the loader, normalizer and emitter.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// MissingText is how an absent value is written into generated documents.
const MissingText = "nan"

// ErrUnknownKind is returned when a document kind cannot be parsed.
var ErrUnknownKind = errors.New("unknown document kind")

// Kind selects the document type a pipeline produces.
type Kind string

// Supported document kinds.
const (
	KindTalk        Kind = "talk"
	KindPublication Kind = "publication"
)

// Collection returns the collection name written into front matter.
func (k Kind) Collection() string {
	switch k {
	case KindTalk:
		return "talks"
	case KindPublication:
		return "publications"
	default:
		return string(k) + "s"
	}
}

// ParseKind converts a user-supplied string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "talk", "talks":
		return KindTalk, nil
	case "publication", "publications", "pub", "pubs":
		return KindPublication, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Value is a cell value that may be absent.
type Value struct {
	Text    string
	Present bool
}

// Some returns a present value.
func Some(s string) Value {
	return Value{Text: s, Present: true}
}

// None returns an absent value.
func None() Value {
	return Value{}
}

// missingMarkers are the cell texts a spreadsheet export uses for an empty
// cell. They are matched exactly, before any trimming.
var missingMarkers = map[string]bool{
	"": true, MissingText: true, "NaN": true, "-NaN": true, "-nan": true,
	"NA": true, "<NA>": true, "N/A": true, "n/a": true, "#N/A": true, "#N/A N/A": true,
	"NULL": true, "null": true, "None": true,
	"1.#IND": true, "-1.#IND": true, "1.#QNAN": true, "-1.#QNAN": true,
}

// CellValue interprets a raw cell the way the tabular reader does:
// empty cells and missing markers such as "nan" or "NA" are absent.
func CellValue(raw string) Value {
	if missingMarkers[raw] {
		return None()
	}

	return Some(raw)
}

// Trim strips surrounding whitespace. A value that trims to "nan" is absent.
func (v Value) Trim() Value {
	if !v.Present {
		return v
	}

	text := strings.TrimSpace(v.Text)
	if text == MissingText {
		return None()
	}

	return Some(text)
}

// String serializes the value, writing absent values as "nan".
func (v Value) String() string {
	if !v.Present {
		return MissingText
	}

	return v.Text
}

// IsBlank reports whether the value is absent, only whitespace, or "nan".
func (v Value) IsBlank() bool {
	return !v.Trim().Present || strings.TrimSpace(v.Text) == ""
}

// Field is a single column of a record.
type Field struct {
	Key   string
	Value Value
}

// Record is one row of tabular input in column order. Keys and values are raw.
type Record struct {
	Index  int
	Fields []Field
}

// Lookup returns the value of the first field whose trimmed key matches.
func (r Record) Lookup(key string) (Value, bool) {
	for _, f := range r.Fields {
		if strings.TrimSpace(f.Key) == key {
			return f.Value, true
		}
	}

	return Value{}, false
}
