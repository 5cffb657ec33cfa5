// Package extract implements the per-service extractors of the pipeline.
// Each extractor turns a raw URL (and, where needed, a fetched page) into a
// core.PinCandidate using an ordered fallback chain per field.
//
// This file holds the markup side: parsing a page into a document tree and
// reading the social-preview and structured-data hints out of it.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/rotisserie/eris"
	"golang.org/x/net/html"
)

// Selectors are compiled once and applied with FindMatcher.
var (
	ogTitleSel       = cascadia.MustCompile(`meta[property="og:title"]`)
	ogDescriptionSel = cascadia.MustCompile(`meta[property="og:description"]`)
	titleSel         = cascadia.MustCompile(`title`)
	dataNameSel      = cascadia.MustCompile(`[data-name]`)
	linkedDataSel    = cascadia.MustCompile(`script[type="application/ld+json"]`)
)

// Metadata holds the page-level hints an extractor may use.
// It is a plain value: reading it has no side effects on the document.
type Metadata struct {
	Title       string   // og:title
	Description string   // og:description
	PageTitle   string   // <title>
	DataName    string   // first data-name attribute
	LinkedData  []string // raw JSON-LD payloads, in document order
}

// ParseDocument parses raw HTML into a goquery document.
func ParseDocument(raw string) (*goquery.Document, error) {
	root, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, eris.Wrap(err, "extract: parse html")
	}
	return goquery.NewDocumentFromNode(root), nil
}

// ReadMetadata collects the metadata hints from a parsed document.
func ReadMetadata(doc *goquery.Document) Metadata {
	md := Metadata{
		Title:       metaContent(doc.FindMatcher(ogTitleSel)),
		Description: metaContent(doc.FindMatcher(ogDescriptionSel)),
		PageTitle:   strings.TrimSpace(doc.FindMatcher(titleSel).First().Text()),
	}
	if v, ok := doc.FindMatcher(dataNameSel).First().Attr("data-name"); ok {
		md.DataName = strings.TrimSpace(v)
	}
	doc.FindMatcher(linkedDataSel).Each(func(_ int, s *goquery.Selection) {
		if payload := strings.TrimSpace(s.Text()); payload != "" {
			md.LinkedData = append(md.LinkedData, payload)
		}
	})
	return md
}

// MetadataFromHTML parses raw HTML and reads its metadata.
// Unparseable input yields empty metadata.
func MetadataFromHTML(raw string) Metadata {
	doc, err := ParseDocument(raw)
	if err != nil {
		return Metadata{}
	}
	return ReadMetadata(doc)
}

// VisibleText returns the document's text nodes outside script and style
// elements, separated by single spaces so adjacent blocks do not run together.
func VisibleText(doc *goquery.Document) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}

// metaContent returns the trimmed content attribute of the first non-empty match.
func metaContent(sel *goquery.Selection) string {
	var content string
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, ok := s.Attr("content"); ok && strings.TrimSpace(v) != "" {
			content = strings.TrimSpace(v)
			return false
		}
		return true
	})
	return content
}
