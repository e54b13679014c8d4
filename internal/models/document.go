package models

// Document is a rendered output file.
type Document struct {
	Kind    Kind
	Index   int
	Name    string
	Path    string
	Title   string
	Content string
}
