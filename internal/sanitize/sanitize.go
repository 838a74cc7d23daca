// Package sanitize normalizes externally produced HTML so that the builder
// can consume it: the markup is parsed into a DOM, repaired, and rendered
// back with every implicitly closed tag made explicit.
package sanitize

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type options struct {
	newID func() string
}

// Option configures HTML.
type Option func(*options)

// WithTaskLists enables rewriting of checkbox lists into task lists, with
// ids drawn from newID.
func WithTaskLists(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// HTML parses src as an HTML document, applies the structural repairs and
// returns the body content.
func HTML(src string, opts ...Option) (string, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}
	body := findBody(doc)
	if body == nil {
		return "", nil
	}
	if o.newID != nil {
		TaskLists(body, o.newID)
	}
	Structure(body)

	var sb strings.Builder
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", fmt.Errorf("rendering html: %w", err)
		}
	}
	return sb.String(), nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

// hoisted are the elements that may not sit inside a paragraph.
var hoisted = map[string]bool{
	"details":          true,
	"summary":          true,
	"table":            true,
	"adf-media-group":  true,
	"adf-media-single": true,
	"adf-block-card":   true,
	"adf-local-data":   true,
}

// Structure repairs the tree rooted at n in place. Anchors nested in
// anchors are replaced by their text, and paragraphs holding block elements
// are split so the blocks become siblings of the surrounding text.
func Structure(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		Structure(c)
		c = next
	}
	if n.Type != html.ElementNode {
		return
	}
	switch n.DataAtom {
	case atom.A:
		unwrapNestedAnchors(n)
	case atom.P:
		splitParagraph(n)
	}
}

func unwrapNestedAnchors(a *html.Node) {
	var nested []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == atom.A {
				nested = append(nested, c)
				continue
			}
			walk(c)
		}
	}
	walk(a)

	for _, inner := range nested {
		if text := textContent(inner); text != "" {
			inner.Parent.InsertBefore(&html.Node{Type: html.TextNode, Data: text}, inner)
		}
		inner.Parent.RemoveChild(inner)
	}
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// splitParagraph replaces p by a sequence of paragraphs and hoisted blocks
// when p directly contains one. Whitespace-only runs between blocks are
// dropped.
func splitParagraph(p *html.Node) {
	hasBlock := false
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && hoisted[c.Data] {
			hasBlock = true
			break
		}
	}
	if !hasBlock || p.Parent == nil {
		return
	}

	parent := p.Parent
	var run *html.Node
	for c := p.FirstChild; c != nil; {
		next := c.NextSibling
		p.RemoveChild(c)
		switch {
		case c.Type == html.ElementNode && hoisted[c.Data]:
			run = nil
			parent.InsertBefore(c, p)
		case run == nil && isBlank(c):
			// layout whitespace between blocks
		default:
			if run == nil {
				run = &html.Node{Type: html.ElementNode, Data: "p", DataAtom: atom.P, Attr: p.Attr}
				parent.InsertBefore(run, p)
			}
			run.AppendChild(c)
		}
		c = next
	}
	parent.RemoveChild(p)
}

func isBlank(n *html.Node) bool {
	return n.Type == html.TextNode && strings.TrimSpace(n.Data) == ""
}
