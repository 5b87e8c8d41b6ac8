package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// FrontMatter carries the article metadata block every source file opens
// with. Turn numbers start at 1; zero means the header was absent.
type FrontMatter struct {
	Title  string `yaml:"title"`
	Player string `yaml:"player"`
	Turn   int    `yaml:"turn"`
}

// ParseFrontMatter extracts metadata and dialect body content from the
// provided source bytes. It returns the structured frontmatter, the body
// without delimiters, and any error encountered.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	meta.Title = strings.TrimSpace(meta.Title)
	meta.Player = strings.TrimSpace(meta.Player)

	return meta, body, nil
}
