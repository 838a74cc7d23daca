package builder

import (
	"strconv"
	"strings"

	"github.com/eykd/adfconv/internal/adf"
)

func registerBlockHandlers(t *Table) {
	t.RegisterBase("p", Handlers{Start: openFrame(frameParagraph), End: closeFrame(frameParagraph)})
	t.RegisterBase("blockquote", Handlers{Start: openFrame(frameBlockquote), End: closeFrame(frameBlockquote)})
	t.RegisterBase("pre", Handlers{Start: openFrame(frameCodeBlock), End: closeFrame(frameCodeBlock)})
	for level := 1; level <= 6; level++ {
		t.RegisterBase("h"+strconv.Itoa(level), Handlers{Start: headingStart(level), End: headingEnd(level)})
	}
	t.RegisterBase("ul", Handlers{Start: listStart(false), End: closeFrame(frameList)})
	t.RegisterBase("ol", Handlers{Start: listStart(true), End: closeFrame(frameList)})
	t.RegisterBase("li", Handlers{Start: openFrame(frameListItem), End: listItemEnd})
	t.RegisterBase("br", Handlers{Start: hardBreak})
	t.RegisterBase("hr", Handlers{Start: rule})
	for _, tag := range []string{"script", "style", "title", "template", "noscript"} {
		t.RegisterBase(tag, Handlers{Start: skipContent})
	}
}

// openFrame flushes pending text into the current frame and pushes an
// empty frame of kind.
func openFrame(kind frameKind) Handler {
	return func(b *Builder, el Element) bool {
		b.flush()
		b.push(newFrame(kind, el.Name, el.attrMap()))
		return true
	}
}

func closeFrame(kind frameKind) Handler {
	return func(b *Builder, el Element) bool {
		b.closeExpected(el.Name, kind)
		return true
	}
}

func headingStart(level int) Handler {
	return func(b *Builder, el Element) bool {
		b.flush()
		f := newFrame(frameHeading, el.Name, nil)
		f.level = level
		b.push(f)
		return true
	}
}

func headingEnd(level int) Handler {
	return func(b *Builder, el Element) bool {
		b.flush()
		top := b.top()
		if top.kind != frameHeading {
			b.absorbOrFault(el.Name, frameHeading)
			return true
		}
		if top.level != level {
			b.fault(el.Name, "heading level %d closed by <%s>", top.level, el.Name)
		}
		b.closeTop(el.Name)
		return true
	}
}

// listStart pushes a pending list. A bullet list takes the side channel
// left by a preceding <adf-local-data> marker.
func listStart(ordered bool) Handler {
	return func(b *Builder, el Element) bool {
		b.flush()
		f := newFrame(frameList, el.Name, nil)
		f.ordered = ordered
		if ordered {
			if s, ok := el.Attr("start"); ok {
				if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
					f.order = &n
				}
			}
		} else if b.hasSide {
			f.localID, f.localTag = b.sideID, b.sideTag
			b.sideID, b.sideTag, b.hasSide = "", "", false
		}
		b.push(f)
		return true
	}
}

func listItemEnd(b *Builder, el Element) bool {
	b.flush()
	switch b.top().kind {
	case frameListItem, frameTaskItem, frameDecisionItem:
		b.closeTop(el.Name)
	default:
		b.absorbOrFault(el.Name, frameListItem)
	}
	return true
}

func hardBreak(b *Builder, el Element) bool {
	b.flush()
	b.pushInline(el.Name, adf.HardBreak())
	return true
}

// ruleClosable lists the frames a rule cannot be nested in.
var ruleClosable = map[frameKind]bool{
	frameParagraph:    true,
	frameHeading:      true,
	frameListItem:     true,
	frameList:         true,
	frameBlockquote:   true,
	frameTableCell:    true,
	frameTableHeader:  true,
	frameTableRow:     true,
	frameTableSection: true,
	frameTable:        true,
}

func rule(b *Builder, el Element) bool {
	b.flush()
	for ruleClosable[b.top().kind] {
		b.implicit[b.top().kind]++
		b.closeTop(el.Name)
	}
	b.pushBlock(el.Name, adf.Rule())
	return true
}

func skipContent(b *Builder, el Element) bool {
	b.flush()
	if !el.SelfClosing {
		b.skip = el.Name
	}
	return true
}

// listNode builds the list a pending-list frame turned out to be. Items
// that do not fit the list kind are dropped.
func listNode(f *frame) adf.Node {
	kind := f.localTag
	if kind == "" {
		kind = inferListKind(f.children)
	}
	switch {
	case kind == "task-list":
		return adf.TaskList(f.localID, itemsOfType(f.children, adf.TypeTaskItem)...)
	case kind == "decision-list":
		return adf.DecisionList(f.localID, itemsOfType(f.children, adf.TypeDecisionItem)...)
	case f.ordered:
		return adf.OrderedList(f.order, itemsOfType(f.children, adf.TypeListItem)...)
	}
	return adf.BulletList(itemsOfType(f.children, adf.TypeListItem)...)
}

// inferListKind recognises a list whose items were all migrated even
// though no marker announced it.
func inferListKind(items []adf.Node) string {
	if len(items) == 0 {
		return ""
	}
	first := items[0].Type
	for _, it := range items {
		if it.Type != first {
			return ""
		}
	}
	switch first {
	case adf.TypeTaskItem:
		return "task-list"
	case adf.TypeDecisionItem:
		return "decision-list"
	}
	return ""
}

func itemsOfType(items []adf.Node, t adf.NodeType) []adf.Node {
	var out []adf.Node
	for _, it := range items {
		if it.Type == t {
			out = append(out, it)
		}
	}
	return out
}

// itemNode builds a list, task or decision item from its frame.
func itemNode(f *frame) adf.Node {
	switch f.kind {
	case frameTaskItem:
		return adf.TaskItem(f.localID, f.done, f.children...)
	case frameDecisionItem:
		return adf.DecisionItem(f.localID, f.children...)
	}
	return adf.ListItem(f.children...)
}

func (b *Builder) pushItem(tag string, n adf.Node) {
	top := b.top()
	if top.kind != frameList {
		b.fault(tag, "%s outside a list", n.Type)
	}
	top.children = append(top.children, n)
}
