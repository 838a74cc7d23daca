package builder

import (
	"strconv"
	"strings"

	"github.com/eykd/adfconv/internal/adf"
)

func registerMediaHandlers(t *Table) {
	t.Register("adf-media-group", Handlers{Start: mediaStart(mediaGroup), End: mediaEnd})
	t.Register("adf-media-single", Handlers{Start: mediaStart(mediaSingle), End: mediaEnd})
	t.Register("a", Handlers{Start: anchorStart, End: anchorEnd})
	t.Register("img", Handlers{Start: imageStart})
}

func mediaStart(kind mediaKind) Handler {
	return func(b *Builder, el Element) bool {
		b.flush()
		f := newFrame(frameMedia, el.Name, el.attrMap())
		f.media = kind
		if kind == mediaSingle {
			if layout, ok := el.Attr("data-layout"); !ok || layout == "" {
				b.fault(el.Name, "media-single requires data-layout")
			}
		}
		b.push(f)
		return true
	}
}

func mediaEnd(b *Builder, el Element) bool {
	b.closeExpected(el.Name, frameMedia)
	return true
}

func mediaNode(f *frame) adf.Node {
	if f.media == mediaSingle {
		return adf.Node{Type: adf.TypeMediaSingle, Attrs: &adf.Attrs{Layout: f.attrs["data-layout"]}, Content: f.children}
	}
	return adf.Node{Type: adf.TypeMediaGroup, Content: f.children}
}

// anchorStart claims anchors that are media references or inline cards.
// Plain links fall through to the base tier.
func anchorStart(b *Builder, el Element) bool {
	top := b.top()
	if top.kind == frameMedia {
		href, _ := el.Attr("href")
		top.children = append(top.children, mediaFromElement(el, adf.MediaLink, href))
		return true
	}
	if _, ok := el.Attr("data-inline-card"); ok {
		return openCustom(customInlineCard)(b, el)
	}
	return false
}

// anchorEnd closes an inline card, discarding its link text, or drops the
// label of a media link.
func anchorEnd(b *Builder, el Element) bool {
	top := b.top()
	switch {
	case top.kind == frameCustom && top.custom == customInlineCard:
		b.text.Reset()
		b.pop()
		top.children = nil
		b.finishCustom(el.Name, top)
		return true
	case top.kind == frameMedia:
		b.text.Reset()
		return true
	}
	return false
}

func imageStart(b *Builder, el Element) bool {
	top := b.top()
	if top.kind != frameMedia {
		return false
	}
	src, _ := el.Attr("src")
	top.children = append(top.children, mediaFromElement(el, adf.MediaFile, src))
	return true
}

// mediaFromElement reads the media attributes shared by img and a. Marks
// are ordered link, then border.
func mediaFromElement(el Element, kind adf.MediaKind, href string) adf.Node {
	a := &adf.Attrs{MediaType: kind}
	a.ID, _ = el.Attr("data-media-id")
	a.Collection, _ = el.Attr("data-collection")
	a.Alt, _ = el.Attr("alt")
	style, _ := el.Attr("style")
	a.Width = pixels(extractStyle(style, "width"))
	a.Height = pixels(extractStyle(style, "height"))

	n := adf.Node{Type: adf.TypeMedia, Attrs: a}
	if href != "" {
		n.Marks = append(n.Marks, adf.Link(href))
	}
	if color, ok := el.Attr("data-border-color"); ok {
		size, _ := el.Attr("data-border-size")
		n.Marks = append(n.Marks, adf.Border(color, atoi(size)))
	}
	return n
}

// pixels parses a CSS length such as "300px".
func pixels(v string) int {
	v = strings.TrimSpace(strings.TrimSuffix(strings.ToLower(v), "px"))
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
