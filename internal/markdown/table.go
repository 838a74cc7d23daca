package markdown

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// pipeTable writes t as a GFM pipe table. It reports false when t holds
// anything a pipe table cannot carry: attributes, a first row that is not
// all headers, header cells below it, ragged rows, or cells with more than
// one line of inline content.
func pipeTable(t *html.Node) (string, bool) {
	if len(t.Attr) > 0 {
		return "", false
	}
	rows, ok := tableRows(t)
	if !ok || len(rows) == 0 {
		return "", false
	}

	var grid [][]string
	for i, tr := range rows {
		if len(tr.Attr) > 0 {
			return "", false
		}
		var row []string
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if isBlank(c) {
				continue
			}
			if c.Type != html.ElementNode || (c.DataAtom != atom.Th && c.DataAtom != atom.Td) {
				return "", false
			}
			if len(c.Attr) > 0 || (i == 0) != (c.DataAtom == atom.Th) {
				return "", false
			}
			s, ok := cellText(c)
			if !ok {
				return "", false
			}
			row = append(row, s)
		}
		if len(row) == 0 || (i > 0 && len(row) != len(grid[0])) {
			return "", false
		}
		grid = append(grid, row)
	}

	var sb strings.Builder
	writeRow(&sb, grid[0])
	sb.WriteString("\n|")
	for range grid[0] {
		sb.WriteString(" --- |")
	}
	for _, row := range grid[1:] {
		sb.WriteString("\n")
		writeRow(&sb, row)
	}
	return sb.String(), true
}

func writeRow(sb *strings.Builder, cells []string) {
	sb.WriteString("|")
	for _, c := range cells {
		sb.WriteString(" " + c + " |")
	}
}

func tableRows(t *html.Node) ([]*html.Node, bool) {
	var rows []*html.Node
	for c := t.FirstChild; c != nil; c = c.NextSibling {
		if isBlank(c) {
			continue
		}
		switch c.DataAtom {
		case atom.Tr:
			rows = append(rows, c)
		case atom.Thead, atom.Tbody, atom.Tfoot:
			if len(c.Attr) > 0 {
				return nil, false
			}
			for tr := c.FirstChild; tr != nil; tr = tr.NextSibling {
				if isBlank(tr) {
					continue
				}
				if tr.DataAtom != atom.Tr {
					return nil, false
				}
				rows = append(rows, tr)
			}
		default:
			return nil, false
		}
	}
	return rows, true
}

// cellText converts a cell holding nothing, inline content, or a single
// plain paragraph.
func cellText(cell *html.Node) (string, bool) {
	var content []*html.Node
	for c := cell.FirstChild; c != nil; c = c.NextSibling {
		if !isBlank(c) {
			content = append(content, c)
		}
	}
	src := cell
	if len(content) == 1 && content[0].Type == html.ElementNode && content[0].DataAtom == atom.P {
		if len(content[0].Attr) > 0 {
			return "", false
		}
		src = content[0]
	}
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		if isBlock(c) {
			return "", false
		}
	}
	s := strings.TrimSpace(inline(src))
	if strings.Contains(s, "\n") || hasBarePipe(s) {
		return "", false
	}
	return s, true
}

// hasBarePipe reports an unescaped "|", as written inside code spans and
// link destinations, which would split the cell.
func hasBarePipe(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '|':
			return true
		}
	}
	return false
}
