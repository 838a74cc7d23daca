package builder

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/eykd/adfconv/internal/adf"
)

func registerCustomHandlers(t *Table) {
	t.RegisterBase("div", Handlers{Start: openCustom(customDiv), End: endCustom(customDiv)})
	t.Register("details", Handlers{Start: detailsStart, End: endCustom(customExpand, customNestedExpand)})
	t.Register("summary", Handlers{Start: summaryStart, End: summaryEnd})
	t.Register("figure", Handlers{Start: openCustom(customPanel), End: endCustom(customPanel)})
	t.Register("adf-status", Handlers{Start: openCustom(customStatus), End: endCustom(customStatus)})
	t.Register("adf-emoji", Handlers{Start: openCustom(customEmoji), End: endCustom(customEmoji)})
	t.Register("adf-mention", Handlers{Start: openCustom(customMention), End: endCustom(customMention)})
	t.Register("time", Handlers{Start: openCustom(customDate), End: endCustom(customDate)})
	t.Register("adf-local-data", Handlers{Start: localData})
	t.Register("adf-block-card", Handlers{Start: openCustom(customBlockCard), End: endCustom(customBlockCard)})
	t.Register("adf-block-card-data-source", Handlers{Start: dataSourceStart})
	t.Register("adf-block-card-view", Handlers{Start: dataSourceViewStart})
}

func openCustom(kind customKind) Handler {
	return func(b *Builder, el Element) bool {
		b.flush()
		f := newFrame(frameCustom, el.Name, el.attrMap())
		f.custom = kind
		b.push(f)
		return true
	}
}

func endCustom(kinds ...customKind) Handler {
	return func(b *Builder, el Element) bool {
		if f := b.closeCustom(el.Name, kinds...); f != nil {
			b.finishCustom(el.Name, f)
		}
		return true
	}
}

func detailsStart(b *Builder, el Element) bool {
	kind := customExpand
	if _, nested := el.Attr("data-nested"); nested {
		kind = customNestedExpand
	}
	return openCustom(kind)(b, el)
}

// summaryStart diverts the following text into the title of the enclosing
// expand instead of opening a frame.
func summaryStart(b *Builder, _ Element) bool {
	b.flush()
	b.summary = &strings.Builder{}
	return true
}

func summaryEnd(b *Builder, _ Element) bool {
	b.flush()
	if b.summary == nil {
		return true
	}
	title := strings.TrimSpace(b.summary.String())
	b.summary = nil
	for i := len(b.stack) - 1; i >= 0; i-- {
		f := b.stack[i]
		if f.kind == frameCustom && (f.custom == customExpand || f.custom == customNestedExpand) {
			f.title = title
			break
		}
	}
	return true
}

// localData records the id and tag announced for the next list.
func localData(b *Builder, el Element) bool {
	b.flush()
	b.sideID, _ = el.Attr("id")
	b.sideTag, _ = el.Attr("data-tag")
	b.hasSide = true
	return true
}

func dataSourceStart(b *Builder, el Element) bool {
	top := b.top()
	if top.kind != frameCustom || top.custom != customBlockCard {
		b.fault(el.Name, "data source outside a block card")
	}
	ds := &adf.Datasource{}
	ds.ID, _ = el.Attr("data-source")
	ds.Parameters.CloudID, _ = el.Attr("data-cloud-id")
	if jql, ok := el.Attr("data-jql"); ok {
		if decoded, err := url.QueryUnescape(jql); err == nil {
			jql = decoded
		}
		ds.Parameters.JQL = jql
	}
	top.datasource = ds
	return true
}

func dataSourceViewStart(b *Builder, el Element) bool {
	top := b.top()
	if top.kind != frameCustom || top.custom != customBlockCard || top.datasource == nil {
		b.fault(el.Name, "data source view outside a block card data source")
	}
	view := adf.DatasourceView{}
	view.Type, _ = el.Attr("data-type")
	type column struct {
		idx int
		key string
	}
	var cols []column
	for _, a := range el.Attrs {
		if n, ok := strings.CutPrefix(a.Key, "data-key-"); ok {
			if idx, err := strconv.Atoi(n); err == nil {
				cols = append(cols, column{idx, a.Val})
			}
		}
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].idx < cols[j].idx })
	for _, c := range cols {
		view.Properties.Columns = append(view.Properties.Columns, adf.DatasourceColumn{Key: c.key})
	}
	top.datasource.Views = append(top.datasource.Views, view)
	return true
}

// finishCustom builds the node of a closed custom frame and attaches it.
func (b *Builder) finishCustom(tag string, f *frame) {
	switch f.custom {
	case customDiv:
		b.finishDiv(tag, f)
	case customExpand:
		n := adf.Node{Type: adf.TypeExpand, Content: f.children}
		if f.title != "" {
			n.Attrs = &adf.Attrs{Title: f.title}
		}
		b.pushBlock(tag, n)
	case customNestedExpand:
		b.pushBlock(tag, adf.Node{Type: adf.TypeNestedExpand, Attrs: &adf.Attrs{Title: f.title}, Content: f.children})
	case customPanel:
		pt := adf.PanelType(f.attrs["data-panel-type"])
		if pt == "" {
			pt = adf.PanelInfo
		}
		b.pushBlock(tag, adf.Node{Type: adf.TypePanel, Attrs: &adf.Attrs{PanelType: pt}, Content: f.children})
	case customStatus:
		color := extractStyle(f.attrs["style"], "background-color")
		if color == "" {
			color = adf.DefaultStatusColor
		}
		b.pushInline(tag, adf.Status(f.text(), color, f.attrs["aria-label"]))
	case customEmoji:
		short := f.attrs["aria-alt"]
		if short == "" {
			short = f.attrs["data-emoji-short-name"]
		}
		text := f.text()
		if text == short {
			text = ""
		}
		b.pushInline(tag, adf.Emoji(short, text))
	case customMention:
		b.pushInline(tag, mentionNode(f))
	case customDate:
		b.pushInline(tag, adf.Node{Type: adf.TypeDate, Attrs: &adf.Attrs{Timestamp: parseTimestamp(f.attrs["datetime"])}})
	case customInlineCard:
		n := adf.Node{Type: adf.TypeInlineCard}
		if href := f.attrs["href"]; href != "" {
			n.Attrs = &adf.Attrs{URL: href}
		}
		b.pushInline(tag, n)
	case customBlockCard:
		n := adf.Node{Type: adf.TypeBlockCard}
		if u := f.attrs["data-block-card"]; u != "" || f.datasource != nil {
			n.Attrs = &adf.Attrs{URL: u, Datasource: f.datasource}
		}
		b.pushBlock(tag, n)
	}
}

func mentionNode(f *frame) adf.Node {
	text := f.text()
	if text == "" {
		text = f.attrs["data-mention-text"]
	}
	return adf.Node{Type: adf.TypeMention, Attrs: &adf.Attrs{
		ID:          f.attrs["data-mention-id"],
		Text:        text,
		UserType:    adf.UserType(strings.ToUpper(f.attrs["data-user-type"])),
		AccessLevel: adf.AccessLevel(strings.ToUpper(f.attrs["data-access-level"])),
	}}
}

// parseTimestamp accepts epoch milliseconds or RFC 3339 and returns epoch
// milliseconds. Anything else is the epoch.
func parseTimestamp(s string) string {
	s = strings.TrimSpace(s)
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return s
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return strconv.FormatInt(t.UnixMilli(), 10)
	}
	return "0"
}

// finishDiv resolves a closed div. Text-only content becomes one coloured
// run when the div carried colour styling and a paragraph otherwise; block
// content is spliced into the parent with loose inline runs wrapped in
// paragraphs. An empty div leaves nothing.
func (b *Builder) finishDiv(tag string, f *frame) {
	if len(f.children) == 0 {
		return
	}
	textOnly := true
	for _, c := range f.children {
		if c.Type != adf.TypeText && c.Type != adf.TypeHardBreak {
			textOnly = false
			break
		}
	}
	if textOnly {
		if marks := styleMarks(f.attrs["style"]); len(marks) > 0 {
			if text := f.text(); text != "" {
				b.pushInline(tag, adf.Text(text, marks...))
			}
			return
		}
		b.pushBlock(tag, adf.Paragraph(f.children...))
		return
	}

	var run []adf.Node
	flushRun := func() {
		if len(run) > 0 {
			b.pushBlock(tag, adf.Paragraph(run...))
			run = nil
		}
	}
	for _, c := range f.children {
		if c.Type.Inline() {
			run = append(run, c)
			continue
		}
		flushRun()
		b.pushBlock(tag, c)
	}
	flushRun()
}
