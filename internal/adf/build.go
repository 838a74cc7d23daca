package adf

// Constructors for the common node shapes. They keep tree literals in the
// builder and in tests short.

// Doc returns a version-1 document with the given top-level blocks.
func Doc(content ...Node) Node {
	return Node{Type: TypeDoc, Version: DocVersion, Content: nilIfEmpty(content)}
}

// Text returns a text run carrying marks.
func Text(s string, marks ...Mark) Node {
	return Node{Type: TypeText, Text: s, Marks: nilIfEmptyMarks(marks)}
}

// HardBreak returns a line break.
func HardBreak() Node { return Node{Type: TypeHardBreak} }

// Rule returns a horizontal rule.
func Rule() Node { return Node{Type: TypeRule} }

// Paragraph returns a paragraph of inline nodes.
func Paragraph(content ...Node) Node {
	return Node{Type: TypeParagraph, Content: nilIfEmpty(content)}
}

// Heading returns a heading of the given level.
func Heading(level int, content ...Node) Node {
	return Node{Type: TypeHeading, Attrs: &Attrs{Level: level}, Content: nilIfEmpty(content)}
}

// Blockquote returns a blockquote of block nodes.
func Blockquote(content ...Node) Node {
	return Node{Type: TypeBlockquote, Content: nilIfEmpty(content)}
}

// BulletList returns an unordered list of list items.
func BulletList(items ...Node) Node {
	return Node{Type: TypeBulletList, Content: nilIfEmpty(items)}
}

// OrderedList returns an ordered list. A nil order leaves the start implicit.
func OrderedList(order *int, items ...Node) Node {
	n := Node{Type: TypeOrderedList, Content: nilIfEmpty(items)}
	if order != nil {
		o := *order
		n.Attrs = &Attrs{Order: &o}
	}
	return n
}

// ListItem returns a list item of block nodes.
func ListItem(content ...Node) Node {
	return Node{Type: TypeListItem, Content: nilIfEmpty(content)}
}

// CodeBlock returns a code block holding a single text run.
func CodeBlock(language, code string) Node {
	n := Node{Type: TypeCodeBlock}
	if language != "" {
		n.Attrs = &Attrs{Language: language}
	}
	if code != "" {
		n.Content = []Node{Text(code)}
	}
	return n
}

// Table returns a table of rows.
func Table(rows ...Node) Node {
	return Node{Type: TypeTable, Content: nilIfEmpty(rows)}
}

// TableRow returns a row of header or data cells.
func TableRow(cells ...Node) Node {
	return Node{Type: TypeTableRow, Content: nilIfEmpty(cells)}
}

// TableHeader returns a header cell of block nodes.
func TableHeader(content ...Node) Node {
	return Node{Type: TypeTableHeader, Content: nilIfEmpty(content)}
}

// TableCell returns a data cell of block nodes.
func TableCell(content ...Node) Node {
	return Node{Type: TypeTableCell, Content: nilIfEmpty(content)}
}

// TaskList returns a task list.
func TaskList(localID string, items ...Node) Node {
	return Node{Type: TypeTaskList, Attrs: &Attrs{LocalID: localID}, Content: nilIfEmpty(items)}
}

// TaskItem returns a task item; done selects DONE over TODO.
func TaskItem(localID string, done bool, content ...Node) Node {
	state := TaskTodo
	if done {
		state = TaskDone
	}
	return Node{Type: TypeTaskItem, Attrs: &Attrs{LocalID: localID, State: state}, Content: nilIfEmpty(content)}
}

// DecisionList returns a decision list.
func DecisionList(localID string, items ...Node) Node {
	return Node{Type: TypeDecisionList, Attrs: &Attrs{LocalID: localID}, Content: nilIfEmpty(items)}
}

// DecisionItem returns a decided decision item.
func DecisionItem(localID string, content ...Node) Node {
	return Node{Type: TypeDecisionItem, Attrs: &Attrs{LocalID: localID, State: DecisionDecided}, Content: nilIfEmpty(content)}
}

// Status returns a status chip.
func Status(text, color, localID string) Node {
	return Node{Type: TypeStatus, Attrs: &Attrs{Text: text, Color: color, LocalID: localID}}
}

// Emoji returns an emoji; text is omitted when empty.
func Emoji(shortName, text string) Node {
	return Node{Type: TypeEmoji, Attrs: &Attrs{ShortName: shortName, Text: text}}
}

func nilIfEmpty(nodes []Node) []Node {
	if len(nodes) == 0 {
		return nil
	}
	return nodes
}

func nilIfEmptyMarks(marks []Mark) []Mark {
	if len(marks) == 0 {
		return nil
	}
	return marks
}
