package builder

import "github.com/eykd/adfconv/internal/adf"

func registerTaskHandlers(t *Table) {
	t.Register("adf-task-item", Handlers{Start: checkbox})
	t.Register("input", Handlers{Start: checkbox})
	t.Register("adf-decision-item", Handlers{Start: decisionMarker})
}

// checkbox turns the enclosing list item into a task item. Only checkbox
// inputs are meaningful inside a document.
func checkbox(b *Builder, el Element) bool {
	if typ, _ := el.Attr("type"); typ != "checkbox" {
		b.fault(el.Name, "unsupported input type %q", typ)
	}
	b.flush()
	f := b.migrateListItem(el.Name, frameTaskItem)
	if f == nil {
		return true
	}
	f.localID, _ = el.Attr("id")
	_, f.done = el.Attr("checked")
	return true
}

// decisionMarker turns the enclosing list item into a decision item.
func decisionMarker(b *Builder, el Element) bool {
	b.flush()
	f := b.migrateListItem(el.Name, frameDecisionItem)
	if f == nil {
		return true
	}
	f.localID, _ = el.Attr("id")
	return true
}

// migrateListItem pops the nearest list-item frame and pushes a frame of
// kind in its place, carrying the item's inline content. Paragraph frames
// opened inside the item are folded into it; any other intervening frame
// is a fault. It returns nil when no list item is open.
func (b *Builder) migrateListItem(tag string, kind frameKind) *frame {
	idx := -1
	for i := len(b.stack) - 1; i > 0; i-- {
		if b.stack[i].kind == frameListItem {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	var carried []adf.Node
	for _, f := range b.stack[idx+1:] {
		if f.kind != frameParagraph {
			b.fault(tag, "cannot convert list item with open %s", f)
		}
		carried = append(carried, f.children...)
		b.implicit[frameParagraph]++
	}
	item := b.stack[idx]
	b.stack = b.stack[:idx]

	migrated := newFrame(kind, tag, nil)
	for _, c := range item.children {
		if c.Type != adf.TypeParagraph {
			b.fault(tag, "cannot convert list item holding %s", c.Type)
		}
		migrated.children = append(migrated.children, c.Content...)
	}
	migrated.children = append(migrated.children, carried...)
	b.push(migrated)
	return migrated
}
