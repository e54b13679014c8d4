package models

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalizedRecord_SetKeepsPosition(t *testing.T) {
	r := NewNormalizedRecord(0)
	r.Set("title", Some("A"))
	r.Set("date", Some("2020"))
	r.Set("title", Some("B"))

	if got, want := r.Keys(), []string{"title", "date"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	if v, _ := r.Get("title"); v.Text != "B" {
		t.Errorf("title = %q, want B", v.Text)
	}
}

func TestNormalizedRecord_Rename(t *testing.T) {
	tests := []struct {
		name     string
		setup    []Field
		from, to string
		wantKeys []string
		wantTo   string
	}{
		{
			name:     "rename in place",
			setup:    []Field{{"a", Some("1")}, {"author", Some("x")}, {"c", Some("3")}},
			from:     "author",
			to:       "authors",
			wantKeys: []string{"a", "authors", "c"},
			wantTo:   "x",
		},
		{
			name:     "target exists is overwritten",
			setup:    []Field{{"venue", Some("old")}, {"conference_name", Some("new")}},
			from:     "conference_name",
			to:       "venue",
			wantKeys: []string{"venue"},
			wantTo:   "new",
		},
		{
			name:     "missing source is a no-op",
			setup:    []Field{{"a", Some("1")}},
			from:     "b",
			to:       "c",
			wantKeys: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewNormalizedRecord(0)
			for _, f := range tt.setup {
				r.Set(f.Key, f.Value)
			}

			r.Rename(tt.from, tt.to)

			if got := r.Keys(); !reflect.DeepEqual(got, tt.wantKeys) {
				t.Errorf("Keys() = %v, want %v", got, tt.wantKeys)
			}

			if tt.wantTo != "" {
				if v, _ := r.Get(tt.to); v.Text != tt.wantTo {
					t.Errorf("%s = %q, want %q", tt.to, v.Text, tt.wantTo)
				}
			}
		})
	}
}

func TestValue_String(t *testing.T) {
	if got := None().String(); got != "nan" {
		t.Errorf("None().String() = %q, want nan", got)
	}

	if got := CellValue("").String(); got != "nan" {
		t.Errorf("CellValue(\"\").String() = %q, want nan", got)
	}

	if got := CellValue("nan"); got.Present {
		t.Error("CellValue(\"nan\") should be absent")
	}

	if got := CellValue("  "); !got.Present || !got.IsBlank() {
		t.Errorf("CellValue(\"  \") = %+v, want present and blank", got)
	}
}

func TestParseKind(t *testing.T) {
	for _, in := range []string{"talk", "Talks", " talk "} {
		if k, err := ParseKind(in); err != nil || k != KindTalk {
			t.Errorf("ParseKind(%q) = %v, %v", in, k, err)
		}
	}

	if k, err := ParseKind("publications"); err != nil || k != KindPublication {
		t.Errorf("ParseKind(publications) = %v, %v", k, err)
	}

	if _, err := ParseKind("poster"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("ParseKind(poster) error = %v, want ErrUnknownKind", err)
	}

	if KindTalk.Collection() != "talks" || KindPublication.Collection() != "publications" {
		t.Error("unexpected collection names")
	}
}

func TestCellValue_MissingMarkers(t *testing.T) {
	for _, raw := range []string{"", "nan", "NaN", "NA", "N/A", "NULL", "#N/A", "<NA>"} {
		if CellValue(raw).Present {
			t.Errorf("CellValue(%q) should be absent", raw)
		}
	}

	for _, raw := range []string{"Nancy", "na", " NA ", "0"} {
		if got := CellValue(raw); !got.Present || got.Text != raw {
			t.Errorf("CellValue(%q) = %+v, want present", raw, got)
		}
	}
}

func TestValue_Trim(t *testing.T) {
	tests := []struct {
		in   Value
		want Value
	}{
		{Some("  a b  "), Some("a b")},
		{Some(" nan "), None()},
		{Some("   "), Some("")},
		{None(), None()},
	}

	for _, tt := range tests {
		if got := tt.in.Trim(); got != tt.want {
			t.Errorf("%+v.Trim() = %+v, want %+v", tt.in, got, tt.want)
		}
	}

	if !Some(" nan ").IsBlank() {
		t.Error(`Some(" nan ").IsBlank() = false, want true`)
	}
}
