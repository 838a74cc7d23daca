package render

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/eykd/adfconv/internal/adf"
)

// table writes the leading header-only rows into thead and the remaining
// rows into tbody, keeping row order.
func (r *renderer) table(parent *html.Node, n adf.Node, path string) {
	tbl := appendElement(parent, "table")
	if a := n.Attrs; a != nil {
		optionalAttrs(tbl, "data-layout", a.Layout, "data-display-mode", a.DisplayMode)
		if a.Width > 0 {
			setAttr(tbl, "data-width", strconv.Itoa(a.Width))
		}
		if a.IsNumberColumnEnabled {
			setAttr(tbl, "data-number-column", "true")
		}
	}

	split := 0
	for split < len(n.Content) && headerRow(n.Content[split]) {
		split++
	}
	if split > 0 {
		r.rows(appendElement(tbl, "thead"), n.Content[:split], 0, path)
	}
	if split < len(n.Content) {
		r.rows(appendElement(tbl, "tbody"), n.Content[split:], split, path)
	}
}

func (r *renderer) rows(section *html.Node, rows []adf.Node, offset int, path string) {
	for i, row := range rows {
		r.node(section, row, path+"/content/"+strconv.Itoa(offset+i))
	}
}

func headerRow(row adf.Node) bool {
	if row.Type != adf.TypeTableRow || len(row.Content) == 0 {
		return false
	}
	for _, c := range row.Content {
		if c.Type != adf.TypeTableHeader {
			return false
		}
	}
	return true
}

func (r *renderer) cell(parent *html.Node, n adf.Node, path string) {
	tag := "td"
	if n.Type == adf.TypeTableHeader {
		tag = "th"
	}
	el := appendElement(parent, tag)
	if a := n.Attrs; a != nil {
		if a.Colspan > 0 {
			setAttr(el, "colspan", strconv.Itoa(a.Colspan))
		}
		if a.Rowspan > 0 {
			setAttr(el, "rowspan", strconv.Itoa(a.Rowspan))
		}
		if len(a.Colwidth) > 0 {
			widths := make([]string, len(a.Colwidth))
			for i, w := range a.Colwidth {
				widths[i] = strconv.Itoa(w)
			}
			setAttr(el, "data-colwidth", strings.Join(widths, ","))
		}
		if a.Background != "" {
			setAttr(el, "style", "background-color: "+a.Background)
		}
	}
	r.children(el, n.Content, path)
}
