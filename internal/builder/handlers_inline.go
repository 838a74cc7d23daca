package builder

import (
	"strings"

	"github.com/eykd/adfconv/internal/adf"
)

func registerInlineHandlers(t *Table) {
	for _, tag := range []string{"strong", "b"} {
		t.RegisterBase(tag, markHandlers(adf.Strong(), ofType(adf.MarkStrong)))
	}
	for _, tag := range []string{"em", "i"} {
		t.RegisterBase(tag, markHandlers(adf.Em(), ofType(adf.MarkEm)))
	}
	for _, tag := range []string{"del", "s", "strike"} {
		t.RegisterBase(tag, markHandlers(adf.Strike(), ofType(adf.MarkStrike)))
	}
	t.RegisterBase("u", markHandlers(adf.Underline(), ofType(adf.MarkUnderline)))
	t.RegisterBase("sub", markHandlers(adf.SubsupMark(adf.Sub), subsupOf(adf.Sub)))
	t.RegisterBase("sup", markHandlers(adf.SubsupMark(adf.Sup), subsupOf(adf.Sup)))
	t.RegisterBase("a", Handlers{Start: linkStart, End: markEnd(ofType(adf.MarkLink))})
	t.RegisterBase("code", Handlers{Start: codeStart, End: codeEnd})
	t.RegisterBase("span", Handlers{Start: spanStart, End: spanEnd})
}

func markHandlers(m adf.Mark, match func(adf.Mark) bool) Handlers {
	return Handlers{
		Start: func(b *Builder, _ Element) bool {
			b.flush()
			b.marks.push(m)
			return true
		},
		End: markEnd(match),
	}
}

func markEnd(match func(adf.Mark) bool) Handler {
	return func(b *Builder, _ Element) bool {
		b.flush()
		b.marks.pop(match)
		return true
	}
}

func linkStart(b *Builder, el Element) bool {
	b.flush()
	href, _ := el.Attr("href")
	attrs := &adf.MarkAttrs{Href: href}
	attrs.Title, _ = el.Attr("title")
	attrs.ID, _ = el.Attr("data-id")
	attrs.Collection, _ = el.Attr("data-collection")
	attrs.OccurrenceKey, _ = el.Attr("data-occurrence-key")
	b.marks.push(adf.Mark{Type: adf.MarkLink, Attrs: attrs})
	return true
}

// codeStart sets the language of an enclosing code block, or starts an
// inline code run.
func codeStart(b *Builder, el Element) bool {
	if top := b.top(); top.kind == frameCodeBlock {
		if class, ok := el.Attr("class"); ok {
			for _, c := range strings.Fields(class) {
				if lang, ok := strings.CutPrefix(c, "language-"); ok {
					top.language = lang
					break
				}
			}
		}
		return true
	}
	b.flush()
	b.marks.push(adf.Code())
	return true
}

func codeEnd(b *Builder, _ Element) bool {
	if b.top().kind == frameCodeBlock {
		return true
	}
	b.flush()
	b.marks.pop(ofType(adf.MarkCode))
	return true
}

// spanStart pushes the colour and underline marks described by the
// span's style. A span without them is transparent.
func spanStart(b *Builder, el Element) bool {
	b.flush()
	style, _ := el.Attr("style")
	var pushed []adf.Mark
	for _, m := range styleMarks(style) {
		if b.marks.push(m) {
			pushed = append(pushed, m)
		}
	}
	b.spans = append(b.spans, pushed)
	return true
}

func spanEnd(b *Builder, _ Element) bool {
	b.flush()
	if len(b.spans) == 0 {
		return true
	}
	pushed := b.spans[len(b.spans)-1]
	b.spans = b.spans[:len(b.spans)-1]
	for i := len(pushed) - 1; i >= 0; i-- {
		b.marks.pop(equalTo(pushed[i]))
	}
	return true
}

// styleMarks maps inline CSS to marks in the order the renderer nests
// them.
func styleMarks(style string) []adf.Mark {
	var marks []adf.Mark
	if strings.Contains(strings.ToLower(extractStyle(style, "text-decoration")), "underline") {
		marks = append(marks, adf.Underline())
	}
	if c := extractStyle(style, "color"); c != "" {
		marks = append(marks, adf.TextColor(c))
	}
	if c := extractStyle(style, "background-color"); c != "" {
		marks = append(marks, adf.BackgroundColor(c))
	}
	return marks
}

// extractStyle returns the value of a property in an inline style
// declaration list. Property names match case-insensitively; the value keeps
// its case.
func extractStyle(style, name string) string {
	for _, decl := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(k), name) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
