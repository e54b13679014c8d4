package formatter

import (
	"strings"

	"sitegen/internal/models"
)

// Markers written into every body. The empty comment keeps the excerpt
// separator from swallowing the first paragraph.
const (
	excerptMarker     = "<!--  -->"
	abstractNote      = "{{ page.abstract_note }}"
	DefaultTalkLink   = "{{site.author.baseurl}}/files/talks/"
	downloadAbstract  = "Download abstract"
	downloadPaperHere = "Download paper here"
)

// keywordsBlock is evaluated by the site generator, not here.
const keywordsBlock = `
{% if page.automatic_tags != "nan" %}
__Keywords__: {{ page.automatic_tags }}
{% endif %}
`

// TalkBody renders the body of a talk page. content holds the verbatim text of
// a referenced abstract file and is nil when the abstract is linked instead.
func TalkBody(abstract models.Value, content []byte, linkBase string) string {
	var sb strings.Builder

	sb.WriteString("\n" + excerptMarker + "\n\n")

	if abstract.IsBlank() {
		return sb.String()
	}

	if content != nil {
		sb.Write(content)

		return sb.String()
	}

	sb.WriteString("[" + downloadAbstract + "](" + linkBase + abstract.Text + ")")

	return sb.String()
}

// PublicationBody renders the body of a publication page.
func PublicationBody(url models.Value) string {
	var sb strings.Builder

	sb.WriteString("\n\n\n" + excerptMarker + "\n\n")
	sb.WriteString(abstractNote + "\n\n")
	sb.WriteString(keywordsBlock + "\n\n")
	sb.WriteString("[" + downloadPaperHere + "](" + url.String() + ")\n\n")

	return sb.String()
}

// Format joins front matter and body into a complete document.
func Format(frontMatter, body string) string {
	return frontMatter + body
}
