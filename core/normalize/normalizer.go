// Package normalize holds the value normalizers of the pipeline: unit
// conversion for trail metrics and HTML to Markdown conversion for
// long-form descriptions scraped from a page.
package normalize

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/rotisserie/eris"
)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct{}

// New creates a MarkdownNormalizer.
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{}
}

// Normalize converts an HTML fragment into trimmed Markdown.
// Plain text passes through with entities decoded.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", eris.Wrap(err, "normalize: convert html to markdown")
	}
	return strings.TrimSpace(markdown), nil
}
