package builder

import (
	"strconv"
	"strings"

	"github.com/eykd/adfconv/internal/adf"
)

func registerTableHandlers(t *Table) {
	t.RegisterBase("table", Handlers{Start: openFrame(frameTable), End: closeFrame(frameTable)})
	for _, tag := range []string{"thead", "tbody", "tfoot"} {
		t.RegisterBase(tag, Handlers{Start: openFrame(frameTableSection), End: closeFrame(frameTableSection)})
	}
	t.RegisterBase("tr", Handlers{Start: openFrame(frameTableRow), End: closeFrame(frameTableRow)})
	t.RegisterBase("td", Handlers{Start: openFrame(frameTableCell), End: closeFrame(frameTableCell)})
	t.RegisterBase("th", Handlers{Start: openFrame(frameTableHeader), End: closeFrame(frameTableHeader)})
}

func tableNode(f *frame) adf.Node {
	n := adf.Table(f.children...)
	a := adf.Attrs{
		Layout:      f.attrs["data-layout"],
		DisplayMode: f.attrs["data-display-mode"],
		Width:       atoi(f.attrs["data-width"]),
	}
	a.IsNumberColumnEnabled = f.attrs["data-number-column"] == "true"
	if a.Layout != "" || a.DisplayMode != "" || a.Width != 0 || a.IsNumberColumnEnabled {
		n.Attrs = &a
	}
	return n
}

// spliceRows moves the rows of a closed thead/tbody/tfoot into the table.
func (b *Builder) spliceRows(tag string, section *frame) {
	top := b.top()
	if top.kind != frameTable {
		b.fault(tag, "table section outside a table")
	}
	top.children = append(top.children, section.children...)
}

func (b *Builder) pushRow(tag string, row adf.Node) {
	top := b.top()
	if top.kind != frameTable && top.kind != frameTableSection {
		b.fault(tag, "table row outside a table")
	}
	top.children = append(top.children, row)
}

func (b *Builder) pushCell(tag string, cell adf.Node) {
	top := b.top()
	if top.kind != frameTableRow {
		b.fault(tag, "%s outside a table row", cell.Type)
	}
	top.children = append(top.children, cell)
}

func cellNode(f *frame) adf.Node {
	n := adf.TableCell(f.children...)
	if f.kind == frameTableHeader {
		n.Type = adf.TypeTableHeader
	}
	a := adf.Attrs{
		Colspan:    atoi(f.attrs["colspan"]),
		Rowspan:    atoi(f.attrs["rowspan"]),
		Background: extractStyle(f.attrs["style"], "background-color"),
	}
	if cw := f.attrs["data-colwidth"]; cw != "" {
		for _, part := range strings.Split(cw, ",") {
			if w, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				a.Colwidth = append(a.Colwidth, w)
			}
		}
	}
	if a.Colspan != 0 || a.Rowspan != 0 || a.Background != "" || len(a.Colwidth) > 0 {
		n.Attrs = &a
	}
	return n
}

// atoi parses a non-negative integer, treating anything else as absent.
func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
