// Package render writes ADF documents as HTML. The markup it produces is the
// encoding the builder package parses, so parsing rendered output yields the
// original tree for every supported node and mark kind.
package render

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/eykd/adfconv/internal/adf"
)

// Option configures rendering.
type Option func(*renderer)

// OnUnknown registers a callback for nodes that have no HTML encoding. They
// are skipped either way.
func OnUnknown(fn func(path string, n adf.Node)) Option {
	return func(r *renderer) { r.unknown = fn }
}

type renderer struct {
	unknown func(path string, n adf.Node)
}

// HTML renders doc and returns the markup.
func HTML(doc *adf.Node, opts ...Option) (string, error) {
	var sb strings.Builder
	if err := Render(&sb, doc, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Render writes the HTML encoding of doc to w. The document itself has no
// element; its children are written in order.
func Render(w io.Writer, doc *adf.Node, opts ...Option) error {
	if doc == nil {
		return fmt.Errorf("rendering document: nil document")
	}
	r := &renderer{}
	for _, opt := range opts {
		opt(r)
	}

	root := &html.Node{Type: html.DocumentNode}
	if doc.Type == adf.TypeDoc {
		r.children(root, doc.Content, "")
	} else {
		r.node(root, *doc, "")
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return fmt.Errorf("rendering document: %w", err)
		}
	}
	return nil
}

// element returns a detached element. attrs alternates keys and values.
func element(tag string, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func setAttr(n *html.Node, key, val string) {
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func appendElement(parent *html.Node, tag string, attrs ...string) *html.Node {
	n := element(tag, attrs...)
	parent.AppendChild(n)
	return n
}

func appendText(parent *html.Node, s string) {
	if s == "" {
		return
	}
	parent.AppendChild(&html.Node{Type: html.TextNode, Data: s})
}

func (r *renderer) children(parent *html.Node, nodes []adf.Node, path string) {
	for i, n := range nodes {
		r.node(parent, n, path+"/content/"+strconv.Itoa(i))
	}
}

func (r *renderer) node(parent *html.Node, n adf.Node, path string) {
	switch n.Type {
	case adf.TypeDoc:
		r.children(parent, n.Content, path)
	case adf.TypeParagraph:
		r.children(appendElement(parent, "p"), n.Content, path)
	case adf.TypeHeading:
		r.children(appendElement(parent, "h"+strconv.Itoa(headingLevel(n.Attrs))), n.Content, path)
	case adf.TypeBlockquote:
		r.children(appendElement(parent, "blockquote"), n.Content, path)
	case adf.TypeBulletList:
		r.children(appendElement(parent, "ul"), n.Content, path)
	case adf.TypeOrderedList:
		ol := appendElement(parent, "ol")
		if n.Attrs != nil && n.Attrs.Order != nil {
			setAttr(ol, "start", strconv.Itoa(*n.Attrs.Order))
		}
		r.children(ol, n.Content, path)
	case adf.TypeListItem:
		r.children(appendElement(parent, "li"), n.Content, path)
	case adf.TypeCodeBlock:
		code := appendElement(appendElement(parent, "pre"), "code")
		if n.Attrs != nil && n.Attrs.Language != "" {
			setAttr(code, "class", "language-"+n.Attrs.Language)
		}
		for _, c := range n.Content {
			appendText(code, c.Text)
		}
	case adf.TypeRule:
		appendElement(parent, "hr")
	case adf.TypeTable:
		r.table(parent, n, path)
	case adf.TypeTableRow:
		r.children(appendElement(parent, "tr"), n.Content, path)
	case adf.TypeTableHeader, adf.TypeTableCell:
		r.cell(parent, n, path)
	case adf.TypeExpand, adf.TypeNestedExpand:
		r.expand(parent, n, path)
	case adf.TypePanel:
		pt := adf.PanelInfo
		if n.Attrs != nil && n.Attrs.PanelType != "" {
			pt = n.Attrs.PanelType
		}
		r.children(appendElement(parent, "figure", "data-panel-type", string(pt)), n.Content, path)
	case adf.TypeMediaGroup:
		r.children(appendElement(parent, "adf-media-group"), n.Content, path)
	case adf.TypeMediaSingle:
		layout := ""
		if n.Attrs != nil {
			layout = n.Attrs.Layout
		}
		r.children(appendElement(parent, "adf-media-single", "data-layout", layout), n.Content, path)
	case adf.TypeMedia:
		media(parent, n)
	case adf.TypeTaskList, adf.TypeDecisionList:
		r.localList(parent, n, path)
	case adf.TypeTaskItem:
		li := appendElement(parent, "li")
		item := appendElement(li, "adf-task-item", "id", localID(n.Attrs), "type", "checkbox")
		if n.Attrs != nil && n.Attrs.State == adf.TaskDone {
			setAttr(item, "checked", "")
		}
		r.children(item, n.Content, path)
	case adf.TypeDecisionItem:
		li := appendElement(parent, "li")
		r.children(appendElement(li, "adf-decision-item", "id", localID(n.Attrs)), n.Content, path)
	case adf.TypeBlockCard:
		blockCard(parent, n)
	case adf.TypeText:
		text(parent, n)
	case adf.TypeHardBreak:
		appendElement(parent, "br")
	case adf.TypeDate, adf.TypeEmoji, adf.TypeInlineCard, adf.TypeMention, adf.TypeStatus:
		inline(parent, n)
	default:
		if r.unknown != nil {
			r.unknown(path, n)
		}
	}
}

// headingLevel clamps out-of-range levels to 6.
func headingLevel(a *adf.Attrs) int {
	if a == nil || a.Level < 1 || a.Level > 6 {
		return 6
	}
	return a.Level
}

func localID(a *adf.Attrs) string {
	if a == nil {
		return ""
	}
	return a.LocalID
}

// localList writes the list marker element followed by the list itself.
func (r *renderer) localList(parent *html.Node, n adf.Node, path string) {
	tag := "task-list"
	if n.Type == adf.TypeDecisionList {
		tag = "decision-list"
	}
	appendElement(parent, "adf-local-data", "data-tag", tag, "id", localID(n.Attrs))
	r.children(appendElement(parent, "ul"), n.Content, path)
}

func (r *renderer) expand(parent *html.Node, n adf.Node, path string) {
	details := appendElement(parent, "details")
	title := ""
	if n.Attrs != nil {
		title = n.Attrs.Title
	}
	if n.Type == adf.TypeNestedExpand {
		setAttr(details, "data-nested", "true")
		appendText(appendElement(details, "summary"), title)
	} else if title != "" {
		appendText(appendElement(details, "summary"), title)
	}
	r.children(details, n.Content, path)
}

func blockCard(parent *html.Node, n adf.Node) {
	card := appendElement(parent, "adf-block-card")
	if n.Attrs == nil {
		return
	}
	if n.Attrs.URL != "" {
		setAttr(card, "data-block-card", n.Attrs.URL)
	}
	ds := n.Attrs.Datasource
	if ds == nil {
		return
	}
	src := appendElement(card, "adf-block-card-data-source",
		"data-source", ds.ID,
		"data-cloud-id", ds.Parameters.CloudID,
		"data-jql", url.QueryEscape(ds.Parameters.JQL),
	)
	for _, v := range ds.Views {
		view := appendElement(src, "adf-block-card-view", "data-type", v.Type)
		for i, col := range v.Properties.Columns {
			setAttr(view, "data-key-"+strconv.Itoa(i), col.Key)
		}
	}
}
