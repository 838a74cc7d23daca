// Package builder reconstructs an ADF document from a stream of HTML tag
// and text events.
//
// A Builder keeps a stack of open frames, a buffer of pending character
// data and the stack of active marks. Tag events are routed through a
// two-tier dispatch Table to handlers that push, pop or migrate frames.
// Closing a frame turns its accumulated children into a node that is
// attached to the new top of the stack.
package builder

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/eykd/adfconv/internal/adf"
)

// Element is a start or end tag event.
type Element struct {
	Name        string
	Attrs       []html.Attribute
	SelfClosing bool
}

// Attr returns the value of the named attribute.
func (e Element) Attr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// attrMap copies the attributes into a map; later duplicates lose.
func (e Element) attrMap() map[string]string {
	m := make(map[string]string, len(e.Attrs))
	for _, a := range e.Attrs {
		if _, dup := m[a.Key]; !dup {
			m[a.Key] = a.Val
		}
	}
	return m
}

// Builder is the push-down automaton that turns tag events into a tree. A
// Builder converts exactly one document.
type Builder struct {
	table *Table

	stack []*frame
	text  strings.Builder
	marks markStack
	spans [][]adf.Mark // marks pushed by each open <span>

	// side channel set by <adf-local-data>, taken by the next <ul>
	sideID, sideTag string
	hasSide         bool

	// implicit counts frames closed on behalf of a later end tag, which is
	// then absorbed instead of faulting.
	implicit map[frameKind]int

	summary *strings.Builder // non-nil inside <summary>
	skip    string           // raw-text element whose content is ignored

	err      error
	consumed bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithTable replaces the dispatch table.
func WithTable(t *Table) Option {
	return func(b *Builder) { b.table = t }
}

// WithHandlers registers custom-tier handlers for tag on a private copy of
// the builder's table.
func WithHandlers(tag string, h Handlers) Option {
	return func(b *Builder) {
		b.table = b.table.Clone()
		b.table.Register(tag, h)
	}
}

// New returns a builder holding an open document frame.
func New(opts ...Option) *Builder {
	b := &Builder{
		table:    defaultTable,
		stack:    []*frame{newFrame(frameDocument, "", nil)},
		implicit: make(map[frameKind]int),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// StartTag feeds a start tag. Self-closing tags are followed by the
// matching end tag.
func (b *Builder) StartTag(el Element) (err error) {
	if err := b.usable(); err != nil {
		return err
	}
	defer b.recoverFault(&err)
	b.start(el)
	if el.SelfClosing {
		b.end(el.Name)
	}
	return nil
}

// EndTag feeds an end tag.
func (b *Builder) EndTag(name string) (err error) {
	if err := b.usable(); err != nil {
		return err
	}
	defer b.recoverFault(&err)
	b.end(name)
	return nil
}

// Text feeds character data. Consecutive calls accumulate until the next
// tag boundary.
func (b *Builder) Text(s string) error {
	if err := b.usable(); err != nil {
		return err
	}
	if b.skip == "" {
		b.text.WriteString(s)
	}
	return nil
}

// Emit closes every open frame, innermost first, and returns the document.
// The builder cannot be used afterwards.
func (b *Builder) Emit() (doc adf.Node, err error) {
	if err := b.usable(); err != nil {
		return adf.Node{}, err
	}
	defer b.recoverFault(&err)
	b.consumed = true
	b.flush()
	for len(b.stack) > 1 {
		b.closeTop("EOF")
	}
	return adf.Doc(b.stack[0].children...), nil
}

func (b *Builder) usable() error {
	if b.err != nil {
		return b.err
	}
	if b.consumed {
		return ErrConsumed
	}
	return nil
}

func (b *Builder) start(el Element) {
	if b.skip != "" {
		return
	}
	for _, h := range b.table.lookup(el.Name, true) {
		if h(b, el) {
			return
		}
	}
}

func (b *Builder) end(name string) {
	if b.skip != "" {
		if name == b.skip {
			b.skip = ""
			b.text.Reset()
		}
		return
	}
	el := Element{Name: name}
	for _, h := range b.table.lookup(name, false) {
		if h(b, el) {
			return
		}
	}
}

// Handler-facing operations. Custom handlers registered through
// WithHandlers use these to act on the builder.

// Flush moves pending character data into the current frame.
func (b *Builder) Flush() { b.flush() }

// InsertInline attaches an inline node to the current frame.
func (b *Builder) InsertInline(tag string, n adf.Node) { b.pushInline(tag, n) }

// InsertBlock attaches a block node to the nearest frame that accepts it.
func (b *Builder) InsertBlock(tag string, n adf.Node) { b.pushBlock(tag, n) }

// PushMark activates a mark for the following text.
func (b *Builder) PushMark(m adf.Mark) { b.marks.push(m) }

// PopMark deactivates the most recent mark of type t.
func (b *Builder) PopMark(t adf.MarkType) { b.marks.pop(ofType(t)) }

func (b *Builder) top() *frame {
	return b.stack[len(b.stack)-1]
}

func (b *Builder) push(f *frame) {
	b.stack = append(b.stack, f)
}

func (b *Builder) pop() *frame {
	f := b.top()
	b.stack = b.stack[:len(b.stack)-1]
	return f
}

// flush turns the pending text into a text run stamped with the active
// marks and attaches it to the current frame.
func (b *Builder) flush() {
	if b.text.Len() == 0 {
		return
	}
	raw := b.text.String()
	b.text.Reset()

	if b.summary != nil {
		b.summary.WriteString(raw)
		return
	}
	top := b.top()
	if top.kind == frameCodeBlock {
		top.code.WriteString(raw)
		return
	}

	text := cleanSurroundingText(raw)
	if strings.TrimSpace(text) == "" {
		// Whitespace between inline runs is content; whitespace from
		// pretty-printed markup is not.
		if text == "" || strings.ContainsAny(raw, "\n\r") || !top.inlineBearing() {
			return
		}
	}

	node := adf.Text(text, b.marks.snapshot()...)
	switch {
	case top.inlineBearing():
		top.children = append(top.children, node)
	case top.blockContainer():
		top.appendLoose(node)
	}
}

// cleanSurroundingText drops leading whitespace up to and including the
// first line break when only whitespace precedes it, and likewise trailing
// whitespace from the last line break on.
func cleanSurroundingText(s string) string {
	start := 0
	for i, r := range s {
		if r == '\n' {
			start = i + 1
			break
		}
		if !isSpace(r) {
			break
		}
	}
	end := len(s)
	for i := len(s) - 1; i >= start; i-- {
		c := s[i]
		if c == '\n' {
			end = i
			if i > 0 && s[i-1] == '\r' {
				end = i - 1
			}
			break
		}
		if !isSpace(rune(c)) {
			break
		}
	}
	if start >= end {
		return ""
	}
	return s[start:end]
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\f' || r == '\v'
}

// pushInline attaches an inline node to the current frame.
func (b *Builder) pushInline(tag string, n adf.Node) {
	if b.summary != nil {
		return
	}
	top := b.top()
	switch {
	case n.Type == adf.TypeHardBreak && top.kind == frameCodeBlock:
		top.code.WriteString("\n")
	case top.inlineBearing():
		top.children = append(top.children, n)
	case top.blockContainer():
		top.appendLoose(n)
	case n.Type == adf.TypeHardBreak:
		// stray break between structural tags
	default:
		b.fault(tag, "%s cannot be placed inside %s", n.Type, top)
	}
}

// pushBlock attaches a block node to the top frame. An empty paragraph or
// heading on top is closed implicitly to make room; anything else that
// cannot hold blocks is a fault. Empty paragraphs are dropped.
func (b *Builder) pushBlock(tag string, n adf.Node) {
	for {
		top := b.top()
		switch {
		case top.blockContainer() || (top.kind == frameCustom && top.custom == customDiv):
			if n.Type == adf.TypeParagraph && len(n.Content) == 0 {
				return
			}
			top.appendBlock(n)
			return
		case (top.kind == frameParagraph || top.kind == frameHeading) && len(top.children) == 0:
			b.pop()
			b.implicit[top.kind]++
		default:
			b.fault(tag, "cannot attach %s to %s", n.Type, top)
		}
	}
}

// closeExpected closes the top frame when it has the given kind. A
// mismatch is absorbed when a frame of that kind was closed implicitly, and
// is a fault otherwise.
func (b *Builder) closeExpected(tag string, kind frameKind) {
	b.flush()
	if b.top().kind != kind {
		b.absorbOrFault(tag, kind)
		return
	}
	b.closeTop(tag)
}

// closeCustom is closeExpected for custom frames of the given kinds.
func (b *Builder) closeCustom(tag string, kinds ...customKind) *frame {
	b.flush()
	top := b.top()
	if top.kind == frameCustom {
		for _, k := range kinds {
			if top.custom == k {
				return b.pop()
			}
		}
	}
	b.absorbOrFault(tag, frameCustom)
	return nil
}

func (b *Builder) absorbOrFault(tag string, kind frameKind) {
	if b.implicit[kind] > 0 {
		b.implicit[kind]--
		return
	}
	b.fault(tag, "end tag does not match open %s", b.top())
}

// closeTop pops the top frame and attaches the node it built.
func (b *Builder) closeTop(tag string) {
	f := b.top()
	if f.kind == frameDocument {
		b.fault(tag, "cannot close the document")
	}
	b.pop()

	switch f.kind {
	case frameParagraph:
		b.pushBlock(tag, adf.Paragraph(f.children...))
	case frameHeading:
		b.pushBlock(tag, adf.Heading(f.level, f.children...))
	case frameBlockquote:
		b.pushBlock(tag, adf.Blockquote(f.children...))
	case frameCodeBlock:
		b.pushBlock(tag, adf.CodeBlock(f.language, f.code.String()))
	case frameList:
		b.pushBlock(tag, listNode(f))
	case frameListItem, frameTaskItem, frameDecisionItem:
		b.pushItem(tag, itemNode(f))
	case frameTable:
		b.pushBlock(tag, tableNode(f))
	case frameTableSection:
		b.spliceRows(tag, f)
	case frameTableRow:
		b.pushRow(tag, adf.TableRow(f.children...))
	case frameTableCell, frameTableHeader:
		b.pushCell(tag, cellNode(f))
	case frameCustom:
		b.finishCustom(tag, f)
	case frameMedia:
		b.pushBlock(tag, mediaNode(f))
	}
}
