package builder

import (
	"fmt"
	"strings"

	"github.com/eykd/adfconv/internal/adf"
)

// frameKind identifies an open, not yet closed node under construction.
type frameKind int

const (
	frameDocument frameKind = iota
	frameParagraph
	frameHeading
	frameBlockquote
	frameList // pending list: bullet, ordered, task or decision
	frameListItem
	frameTaskItem
	frameDecisionItem
	frameCodeBlock
	frameTable
	frameTableSection // thead, tbody, tfoot
	frameTableRow
	frameTableCell
	frameTableHeader
	frameCustom
	frameMedia
)

var frameKindNames = map[frameKind]string{
	frameDocument:     "document",
	frameParagraph:    "paragraph",
	frameHeading:      "heading",
	frameBlockquote:   "blockquote",
	frameList:         "list",
	frameListItem:     "list-item",
	frameTaskItem:     "task-item",
	frameDecisionItem: "decision-item",
	frameCodeBlock:    "code-block",
	frameTable:        "table",
	frameTableSection: "table-section",
	frameTableRow:     "table-row",
	frameTableCell:    "table-cell",
	frameTableHeader:  "table-header",
	frameCustom:       "custom",
	frameMedia:        "media",
}

// customKind parameterises a frameCustom.
type customKind int

const (
	customNone customKind = iota
	customDiv
	customExpand
	customNestedExpand
	customPanel
	customMention
	customStatus
	customEmoji
	customDate
	customInlineCard
	customBlockCard
)

var customKindNames = map[customKind]string{
	customDiv:          "div",
	customExpand:       "expand",
	customNestedExpand: "nested-expand",
	customPanel:        "panel",
	customMention:      "mention",
	customStatus:       "status",
	customEmoji:        "emoji",
	customDate:         "date",
	customInlineCard:   "inline-card",
	customBlockCard:    "block-card",
}

// mediaKind parameterises a frameMedia.
type mediaKind int

const (
	mediaGroup mediaKind = iota
	mediaSingle
)

// frame is one entry of the builder stack.
type frame struct {
	kind   frameKind
	custom customKind
	media  mediaKind
	tag    string            // opening tag, for diagnostics
	attrs  map[string]string // attributes of the opening tag

	children []adf.Node
	// openPara is set while the last child is a paragraph created to hold
	// loose inline content; the next loose inline node joins it.
	openPara bool

	level    int  // heading
	ordered  bool // list
	order    *int // ordered list start
	localID  string
	localTag string
	done     bool // task item
	title    string
	language string
	code     strings.Builder

	datasource *adf.Datasource // block card
}

func newFrame(kind frameKind, tag string, attrs map[string]string) *frame {
	return &frame{kind: kind, tag: tag, attrs: attrs}
}

func (f *frame) String() string {
	switch f.kind {
	case frameCustom:
		return fmt.Sprintf("custom(%s)", customKindNames[f.custom])
	case frameMedia:
		if f.media == mediaSingle {
			return "media(media-single)"
		}
		return "media(media-group)"
	case frameHeading:
		return fmt.Sprintf("heading(%d)", f.level)
	}
	return frameKindNames[f.kind]
}

// inlineBearing reports whether text and inline nodes are appended to the
// frame directly.
func (f *frame) inlineBearing() bool {
	switch f.kind {
	case frameParagraph, frameHeading, frameTaskItem, frameDecisionItem:
		return true
	case frameCustom:
		switch f.custom {
		case customDiv, customMention, customStatus, customEmoji, customDate, customInlineCard:
			return true
		}
	}
	return false
}

// blockContainer reports whether the frame accepts block children. Loose
// inline content in such a frame is wrapped in a paragraph.
func (f *frame) blockContainer() bool {
	switch f.kind {
	case frameDocument, frameBlockquote, frameListItem, frameTableCell, frameTableHeader:
		return true
	case frameCustom:
		switch f.custom {
		case customExpand, customNestedExpand, customPanel:
			return true
		}
	}
	return false
}

// appendBlock adds a block child and closes any open loose paragraph.
func (f *frame) appendBlock(n adf.Node) {
	f.children = append(f.children, n)
	f.openPara = false
}

// appendLoose adds inline content to the trailing loose paragraph,
// creating it when needed.
func (f *frame) appendLoose(n adf.Node) {
	if f.openPara && len(f.children) > 0 {
		last := &f.children[len(f.children)-1]
		last.Content = append(last.Content, n)
		return
	}
	f.children = append(f.children, adf.Paragraph(n))
	f.openPara = true
}

// text concatenates the text runs accumulated in the frame.
func (f *frame) text() string {
	var sb strings.Builder
	for _, c := range f.children {
		if c.Type == adf.TypeText {
			sb.WriteString(c.Text)
		}
	}
	return sb.String()
}
