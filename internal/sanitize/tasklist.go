package sanitize

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockTags are the elements that end the inline content of a task item.
var blockTags = map[atom.Atom]bool{
	atom.P: true, atom.Ul: true, atom.Ol: true, atom.Div: true, atom.Table: true,
	atom.Pre: true, atom.Blockquote: true, atom.Hr: true, atom.Details: true, atom.Figure: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
}

// TaskLists rewrites GFM task lists, bullet lists whose every item starts
// with a checkbox, into the task-list encoding the builder understands: an
// adf-local-data marker before the list and an adf-task-item element per
// item. Checkboxes in lists that cannot become task lists, such as items
// holding nested blocks, are replaced by a "[ ] " or "[x] " prefix.
func TaskLists(n *html.Node, newID func() string) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		TaskLists(c, newID)
	}
	if n.Type != html.ElementNode || n.DataAtom != atom.Ul {
		return
	}

	var items []taskItem
	convertible := true
	anyCheckbox := false
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if isBlank(li) {
			continue
		}
		item, ok := findTaskItem(li)
		if item.input != nil {
			anyCheckbox = true
		}
		if !ok {
			convertible = false
		}
		items = append(items, item)
	}
	if !anyCheckbox {
		return
	}
	if !convertible {
		for _, it := range items {
			if it.input != nil {
				flattenCheckbox(it.input)
			}
		}
		return
	}

	marker := &html.Node{Type: html.ElementNode, Data: "adf-local-data", Attr: []html.Attribute{
		{Key: "data-tag", Val: "task-list"},
		{Key: "id", Val: newID()},
	}}
	n.Parent.InsertBefore(marker, n)
	for _, it := range items {
		it.rewrite(newID())
	}
}

// taskItem locates the checkbox of one list item.
type taskItem struct {
	li        *html.Node
	container *html.Node // li, or the paragraph of a loose item
	input     *html.Node
}

// findTaskItem reports whether li has the shape of a task item: a
// checkbox first, followed by inline content only.
func findTaskItem(li *html.Node) (taskItem, bool) {
	it := taskItem{li: li, container: li}
	if li.Type != html.ElementNode || li.DataAtom != atom.Li {
		return it, false
	}

	first := firstContent(li)
	if first != nil && first.DataAtom == atom.P && first.Type == html.ElementNode {
		if rest := nextContent(first); rest != nil {
			it.input = checkboxAt(firstContent(first))
			return it, false
		}
		it.container = first
		first = firstContent(first)
	}
	it.input = checkboxAt(first)
	if it.input == nil {
		return it, false
	}
	for c := it.input.NextSibling; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && blockTags[c.DataAtom] {
			return it, false
		}
	}
	return it, true
}

func checkboxAt(n *html.Node) *html.Node {
	if n == nil || n.Type != html.ElementNode || n.DataAtom != atom.Input {
		return nil
	}
	for _, a := range n.Attr {
		if a.Key == "type" && strings.EqualFold(a.Val, "checkbox") {
			return n
		}
	}
	return nil
}

func firstContent(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !isBlank(c) {
			return c
		}
	}
	return nil
}

func nextContent(n *html.Node) *html.Node {
	for c := n.NextSibling; c != nil; c = c.NextSibling {
		if !isBlank(c) {
			return c
		}
	}
	return nil
}

func checked(input *html.Node) bool {
	for _, a := range input.Attr {
		if a.Key == "checked" {
			return true
		}
	}
	return false
}

// rewrite replaces the item's content with an adf-task-item element
// holding the inline content that followed the checkbox.
func (it taskItem) rewrite(id string) {
	task := &html.Node{Type: html.ElementNode, Data: "adf-task-item", Attr: []html.Attribute{
		{Key: "id", Val: id},
		{Key: "type", Val: "checkbox"},
	}}
	if checked(it.input) {
		task.Attr = append(task.Attr, html.Attribute{Key: "checked"})
	}

	for c := it.input.NextSibling; c != nil; {
		next := c.NextSibling
		it.container.RemoveChild(c)
		task.AppendChild(c)
		c = next
	}
	if t := task.FirstChild; t != nil && t.Type == html.TextNode {
		t.Data = strings.TrimPrefix(t.Data, " ")
		if t.Data == "" {
			task.RemoveChild(t)
		}
	}
	if last := task.LastChild; last != nil && last.Type == html.TextNode {
		last.Data = strings.TrimRight(last.Data, "\n")
	}

	for c := it.li.FirstChild; c != nil; {
		next := c.NextSibling
		it.li.RemoveChild(c)
		c = next
	}
	it.li.AppendChild(task)
}

func flattenCheckbox(input *html.Node) {
	prefix := "[ ] "
	if checked(input) {
		prefix = "[x] "
	}
	if next := input.NextSibling; next != nil && next.Type == html.TextNode {
		next.Data = strings.TrimPrefix(next.Data, " ")
	}
	input.Parent.InsertBefore(&html.Node{Type: html.TextNode, Data: prefix}, input)
	input.Parent.RemoveChild(input)
}
