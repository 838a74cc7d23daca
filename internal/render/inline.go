package render

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/eykd/adfconv/internal/adf"
)

// text writes a text run wrapped in one element per mark, the first mark
// outermost.
func text(parent *html.Node, n adf.Node) {
	if n.Text == "" {
		return
	}
	inner := parent
	for _, m := range n.Marks {
		if el := markElement(m); el != nil {
			inner.AppendChild(el)
			inner = el
		}
	}
	appendText(inner, n.Text)
}

func markElement(m adf.Mark) *html.Node {
	a := m.Attrs
	if a == nil {
		a = &adf.MarkAttrs{}
	}
	switch m.Type {
	case adf.MarkStrong:
		return element("strong")
	case adf.MarkEm:
		return element("em")
	case adf.MarkCode:
		return element("code")
	case adf.MarkStrike:
		return element("del")
	case adf.MarkUnderline:
		return element("u")
	case adf.MarkSubsup:
		if a.Type == adf.Sub {
			return element("sub")
		}
		return element("sup")
	case adf.MarkTextColor:
		return element("span", "style", "color: "+a.Color)
	case adf.MarkBackgroundColor:
		return element("span", "style", "background-color: "+a.Color)
	case adf.MarkLink:
		el := element("a", "href", a.Href)
		optionalAttrs(el,
			"title", a.Title,
			"data-id", a.ID,
			"data-collection", a.Collection,
			"data-occurrence-key", a.OccurrenceKey,
		)
		return el
	}
	return nil
}

// optionalAttrs sets each key whose value is not empty.
func optionalAttrs(n *html.Node, kv ...string) {
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			setAttr(n, kv[i], kv[i+1])
		}
	}
}

func inline(parent *html.Node, n adf.Node) {
	a := n.Attrs
	if a == nil {
		a = &adf.Attrs{}
	}
	switch n.Type {
	case adf.TypeDate:
		t := timestamp(a.Timestamp)
		el := appendElement(parent, "time", "datetime", t.Format(time.RFC3339Nano))
		appendText(el, t.Format(time.DateOnly))
	case adf.TypeEmoji:
		el := appendElement(parent, "adf-emoji", "aria-alt", a.ShortName)
		if a.Text != "" {
			appendText(el, a.Text)
		} else {
			appendText(el, a.ShortName)
		}
	case adf.TypeInlineCard:
		el := appendElement(parent, "a")
		optionalAttrs(el, "href", a.URL)
		setAttr(el, "data-inline-card", "true")
		appendText(el, a.URL)
	case adf.TypeMention:
		el := appendElement(parent, "adf-mention", "data-mention-id", a.ID)
		optionalAttrs(el,
			"data-user-type", string(a.UserType),
			"data-access-level", string(a.AccessLevel),
		)
		appendText(el, a.Text)
	case adf.TypeStatus:
		color := a.Color
		if color == "" {
			color = adf.DefaultStatusColor
		}
		el := appendElement(parent, "adf-status", "style", "background-color: "+color)
		optionalAttrs(el, "aria-label", a.LocalID)
		appendText(el, a.Text)
	}
}

// timestamp reads epoch milliseconds; anything else is the epoch.
func timestamp(s string) time.Time {
	ms, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		ms = 0
	}
	return time.UnixMilli(ms).UTC()
}

// media writes a file as an image and a link as an anchor, both carrying
// the media identifiers.
func media(parent *html.Node, n adf.Node) {
	a := n.Attrs
	if a == nil {
		a = &adf.Attrs{}
	}
	var href, borderColor string
	borderSize := 0
	for _, m := range n.Marks {
		if m.Attrs == nil {
			continue
		}
		switch m.Type {
		case adf.MarkLink:
			href = m.Attrs.Href
		case adf.MarkBorder:
			borderColor, borderSize = m.Attrs.Color, m.Attrs.Size
		}
	}

	var el *html.Node
	if a.MediaType == adf.MediaLink {
		el = appendElement(parent, "a")
		optionalAttrs(el, "href", href)
	} else {
		el = appendElement(parent, "img")
		optionalAttrs(el, "src", href)
	}
	setAttr(el, "data-media-id", a.ID)
	setAttr(el, "data-collection", a.Collection)
	optionalAttrs(el, "alt", a.Alt)

	var style []string
	if a.Width > 0 {
		style = append(style, "width: "+strconv.Itoa(a.Width)+"px")
	}
	if a.Height > 0 {
		style = append(style, "height: "+strconv.Itoa(a.Height)+"px")
	}
	if len(style) > 0 {
		setAttr(el, "style", strings.Join(style, "; "))
	}
	if borderColor != "" {
		setAttr(el, "data-border-color", borderColor)
		setAttr(el, "data-border-size", strconv.Itoa(borderSize))
	}
	if a.MediaType == adf.MediaLink {
		appendText(el, href)
	}
}
