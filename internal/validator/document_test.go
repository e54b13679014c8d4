package validator

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitegen/internal/models"
)

const validTalk = `---
title: "Glass \"flow\""
authors: "<b><u>R. Ravinder</u></b>"
abstract: "nan"
collection: talks
---

<!--  -->

`

const validPublication = `---
title: "A Study: On Things (2020)"
authors: "<b><u>Bhattoo, Ravinder</u></b>"
venue: "Preprint"
paperurl: "https://example.org"
date: "2020-01-01"
collection: publications
---
`

func TestValidateDocument_Valid(t *testing.T) {
	v := NewDocumentValidator()

	res := v.ValidateDocument(validTalk, models.KindTalk)
	assert.True(t, res.IsValid, res.Summary())
	assert.Equal(t, 4, res.Stats.TotalKeys)
	assert.Equal(t, 3, res.Stats.QuotedKeys)

	res = v.ValidateDocument(validPublication, models.KindPublication)
	assert.True(t, res.IsValid, res.Summary())
	assert.Empty(t, res.Warnings)
}

func TestValidateDocument_Errors(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		kind      models.Kind
		wantField string
		wantMsg   string
		wantLine  int
	}{
		{
			name:    "no front matter",
			content: "# heading\n",
			kind:    models.KindTalk,
			wantMsg: "does not start with a front matter block",
		},
		{
			name:      "unquoted value",
			content:   "---\nauthors: plain\ncollection: talks\n---\n",
			kind:      models.KindTalk,
			wantField: "authors",
			wantMsg:   "not a double-quoted string",
			wantLine:  2,
		},
		{
			name:    "broken quoting",
			content: "---\nauthors: \"He said \"hi\"\"\ncollection: talks\n---\n",
			kind:    models.KindTalk,
			wantMsg: "not valid YAML",
		},
		{
			name:      "wrong collection",
			content:   "---\nauthors: \"A\"\ncollection: publications\n---\n",
			kind:      models.KindTalk,
			wantField: "collection",
			wantMsg:   `collection should be "talks"`,
		},
		{
			name:      "missing collection",
			content:   "---\nauthors: \"A\"\n---\n",
			kind:      models.KindTalk,
			wantField: "collection",
			wantMsg:   "missing collection key",
		},
		{
			name:      "duplicate key",
			content:   "---\nauthors: \"A\"\nauthors: \"B\"\ncollection: talks\n---\n",
			kind:      models.KindTalk,
			wantField: "authors",
			wantMsg:   "duplicate key",
			wantLine:  3,
		},
		{
			name:      "missing required publication key",
			content:   "---\ntitle: \"T\"\nauthors: \"A\"\ndate: \"2020-01-01\"\ncollection: publications\n---\n",
			kind:      models.KindPublication,
			wantField: "paperurl",
			wantMsg:   "missing required key",
		},
		{
			name:      "bad publication date",
			content:   "---\ntitle: \"T\"\nauthors: \"A\"\ndate: \"2020.0-01-01\"\npaperurl: \"u\"\ncollection: publications\n---\n",
			kind:      models.KindPublication,
			wantField: "date",
			wantMsg:   "first of January",
		},
	}

	v := NewDocumentValidator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.ValidateDocument(tt.content, tt.kind)
			require.False(t, res.IsValid)
			require.NotEmpty(t, res.Errors)

			var found bool

			for _, e := range res.Errors {
				if e.Field == tt.wantField && strings.Contains(e.Message, tt.wantMsg) {
					found = true

					if tt.wantLine > 0 {
						assert.Equal(t, tt.wantLine, e.Line)
					}
				}
			}

			assert.True(t, found, "no error with field %q and message %q in %s", tt.wantField, tt.wantMsg, res.Summary())
		})
	}
}

func TestValidateDocument_WarnsOnMissingAuthors(t *testing.T) {
	res := NewDocumentValidator().ValidateDocument("---\nauthors: \"nan\"\ncollection: talks\n---\n", models.KindTalk)

	assert.True(t, res.IsValid)
	assert.Equal(t, []string{"authors is empty"}, res.Warnings)
}

func TestValidateDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "conf_0.md"), []byte(validTalk), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "conf_1.md"), []byte("---\nauthors: x\n---\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	results, err := NewDocumentValidator().ValidateDir(dir, models.KindTalk)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, filepath.Join(dir, "conf_0.md"), results[0].Path)
	assert.True(t, results[0].Result.IsValid)
	assert.False(t, results[1].Result.IsValid)
}

func TestValidateDir_Empty(t *testing.T) {
	_, err := NewDocumentValidator().ValidateDir(t.TempDir(), models.KindTalk)
	assert.ErrorIs(t, err, ErrNoDocuments)
}

func TestValidateDir_Missing(t *testing.T) {
	_, err := NewDocumentValidator().ValidateDir(filepath.Join(t.TempDir(), "nope"), models.KindTalk)
	assert.Error(t, err)
}

func TestValidationResult_Print(t *testing.T) {
	res := NewDocumentValidator().ValidateDocument("---\nauthors: x\n---\n", models.KindTalk)

	var buf bytes.Buffer
	res.PrintErrors(&buf)
	res.PrintWarnings(&buf)

	out := buf.String()
	assert.Contains(t, out, "Validation Errors:")
	assert.Contains(t, out, "Line 2 [authors]: value is not a double-quoted string")
	assert.Contains(t, out, `Found: "x"`)
	assert.Contains(t, res.String(), "INVALID")
}
