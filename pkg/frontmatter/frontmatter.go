// Package frontmatter splits documents into their front matter block and body.
package frontmatter

import (
	"errors"
	"strings"
)

// Delimiter opens and closes a front matter block.
const Delimiter = "---"

// Extraction errors.
var (
	ErrNoFrontMatter = errors.New("document does not start with a front matter block")
	ErrUnterminated  = errors.New("front matter block is not terminated")
)

// Block is the raw content of a front matter block.
type Block struct {
	// Lines holds the lines between the delimiters.
	Lines []string
	// StartLine is the 1-based line number of the first line in Lines.
	StartLine int
}

// Raw returns the block content as YAML text.
func (b *Block) Raw() string {
	if len(b.Lines) == 0 {
		return ""
	}

	return strings.Join(b.Lines, "\n") + "\n"
}

// Extract splits content into its leading front matter block and the body
// following the closing delimiter.
func Extract(content string) (*Block, string, error) {
	content = strings.TrimPrefix(content, "\ufeff")

	first, rest, ok := strings.Cut(content, "\n")
	if strings.TrimRight(first, "\r") != Delimiter {
		return nil, content, ErrNoFrontMatter
	}

	if !ok {
		return nil, content, ErrUnterminated
	}

	block := &Block{StartLine: 2}

	for {
		line, tail, more := strings.Cut(rest, "\n")
		line = strings.TrimRight(line, "\r")

		if line == Delimiter {
			return block, tail, nil
		}

		if !more {
			return nil, content, ErrUnterminated
		}

		block.Lines = append(block.Lines, line)
		rest = tail
	}
}
