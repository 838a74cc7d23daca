package builder

import "maps"

// Handler reacts to a tag event and reports whether it consumed it. An
// unconsumed event falls through to the next tier.
type Handler func(b *Builder, el Element) bool

// Handlers pairs the start and end handlers of one tag. Either may be nil.
type Handlers struct {
	Start Handler
	End   Handler
}

// Table maps tag names to handlers in two tiers. The custom tier is
// consulted first so that contextually overloaded tags (a, img) can be
// claimed before the generic HTML handling sees them.
type Table struct {
	custom map[string]Handlers
	base   map[string]Handlers
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{custom: map[string]Handlers{}, base: map[string]Handlers{}}
}

// Register adds or replaces the custom-tier handlers for tag.
func (t *Table) Register(tag string, h Handlers) {
	t.custom[tag] = h
}

// RegisterBase adds or replaces the base-tier handlers for tag.
func (t *Table) RegisterBase(tag string, h Handlers) {
	t.base[tag] = h
}

// Clone returns a copy that can be extended without affecting t.
func (t *Table) Clone() *Table {
	return &Table{custom: maps.Clone(t.custom), base: maps.Clone(t.base)}
}

// Lookup returns the handlers registered for the tag event, custom tier
// first. An unregistered tag yields no handlers and is ignored.
func (t *Table) Lookup(tag string, start bool) []Handler {
	return t.lookup(tag, start)
}

func (t *Table) lookup(tag string, start bool) []Handler {
	var out []Handler
	for _, tier := range []map[string]Handlers{t.custom, t.base} {
		h, ok := tier[tag]
		if !ok {
			continue
		}
		fn := h.End
		if start {
			fn = h.Start
		}
		if fn != nil {
			out = append(out, fn)
		}
	}
	return out
}

// defaultTable is shared read-only by every builder that is not given its
// own table.
var defaultTable = DefaultTable()

// DefaultTable returns a fresh table holding the standard HTML and ADF
// pseudo-element handlers.
func DefaultTable() *Table {
	t := NewTable()
	registerBlockHandlers(t)
	registerInlineHandlers(t)
	registerTableHandlers(t)
	registerCustomHandlers(t)
	registerMediaHandlers(t)
	registerTaskHandlers(t)
	return t
}
