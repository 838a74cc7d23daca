package markdown

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var blockAtoms = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Blockquote: true, atom.Pre: true, atom.Hr: true,
	atom.Ul: true, atom.Ol: true, atom.Table: true, atom.Details: true, atom.Figure: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
}

// rawBlocks are the pseudo-elements written out as HTML on a line of their
// own.
var rawBlocks = map[string]bool{
	"adf-media-group":  true,
	"adf-media-single": true,
	"adf-block-card":   true,
	"adf-local-data":   true,
}

func isBlock(n *html.Node) bool {
	return n.Type == html.ElementNode && (blockAtoms[n.DataAtom] || rawBlocks[n.Data])
}

// part is one converted block and the element it came from.
type part struct {
	kind atom.Atom
	text string
}

// blockParts converts the children of parent. Runs of inline children
// between blocks become paragraphs.
func blockParts(parent *html.Node) []part {
	var parts []part
	var run []*html.Node
	flush := func() {
		if s := paragraph(run); s != "" {
			parts = append(parts, part{kind: atom.P, text: s})
		}
		run = nil
	}

	var bullet, delim byte = '-', '.'
	var last atom.Atom
	for n := parent.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode && n.DataAtom == atom.Summary {
			continue
		}
		if !isBlock(n) {
			run = append(run, n)
			continue
		}
		flush()
		if len(parts) > 0 {
			last = parts[len(parts)-1].kind
		}

		var s string
		switch n.DataAtom {
		case atom.Ul:
			if last == atom.Ul {
				bullet = toggle(bullet, '-', '*')
			} else {
				bullet = '-'
			}
			s = list(n, func(int) string { return string(bullet) + " " })
		case atom.Ol:
			if last == atom.Ol {
				delim = toggle(delim, '.', ')')
			} else {
				delim = '.'
			}
			// Markdown cannot say "start at 1" explicitly.
			if v, ok := attr(n, "start"); ok && v == "1" {
				s = htmlList(n)
				break
			}
			start := 1
			if v, ok := attr(n, "start"); ok {
				if i, err := strconv.Atoi(v); err == nil && i >= 0 {
					start = i
				}
			}
			d := delim
			s = list(n, func(i int) string { return strconv.Itoa(start+i) + string(d) + " " })
		default:
			s = block(n)
		}
		if s != "" {
			parts = append(parts, part{kind: n.DataAtom, text: s})
		}
	}
	flush()
	return parts
}

func toggle(cur, a, b byte) byte {
	if cur == a {
		return b
	}
	return a
}

func blocks(parent *html.Node) string {
	parts := blockParts(parent)
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = p.text
	}
	return strings.Join(out, "\n\n")
}

func block(n *html.Node) string {
	switch n.DataAtom {
	case atom.P:
		return paragraph(children(n))
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return heading(n)
	case atom.Blockquote:
		return prefixLines(blocks(n), "> ", ">")
	case atom.Pre:
		return fence(n)
	case atom.Hr:
		// "---" under a paragraph line would read as a setext heading
		return "***"
	case atom.Table:
		if s, ok := pipeTable(n); ok {
			return s
		}
		return raw(n)
	case atom.Details, atom.Figure:
		return container(n)
	case atom.Div:
		return blocks(n)
	}
	return raw(n)
}

func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func paragraph(nodes []*html.Node) string {
	blank := true
	for _, n := range nodes {
		if !isBlank(n) {
			blank = false
			break
		}
	}
	if blank {
		return ""
	}
	var sb strings.Builder
	for _, n := range nodes {
		inlineNode(&sb, n)
	}
	return escapeLineStarts(strings.TrimSpace(sb.String()))
}

func heading(n *html.Node) string {
	text := strings.TrimSpace(inline(n))
	if strings.Contains(text, "\n") {
		return raw(n)
	}
	level := int(n.Data[1] - '0')
	if text == "" {
		return strings.Repeat("#", level)
	}
	return strings.Repeat("#", level) + " " + text
}

// list writes the items of a ul or ol, each introduced by marker(i).
// Items made of a single block, or a block followed only by nested lists,
// keep the list tight.
func list(n *html.Node, marker func(int) string) string {
	var items []string
	loose := false
	i := 0
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.DataAtom != atom.Li {
			continue
		}
		parts := blockParts(li)
		for j, p := range parts {
			if j > 0 && p.kind != atom.Ul && p.kind != atom.Ol {
				loose = true
			}
		}
		items = append(items, itemText(marker(i), parts))
		i++
	}
	if len(items) == 0 {
		return ""
	}
	sep := "\n"
	if loose {
		sep = "\n\n"
	}
	return strings.Join(items, sep)
}

func itemText(marker string, parts []part) string {
	var body []string
	for j, p := range parts {
		if j > 0 && p.kind != atom.Ul && p.kind != atom.Ol {
			body = append(body, "")
		}
		body = append(body, p.text)
	}
	return indent(marker, strings.Join(body, "\n"))
}

// indent prefixes the first line of body with marker and pads the rest to
// the marker's width.
func indent(marker, body string) string {
	lines := strings.Split(body, "\n")
	pad := strings.Repeat(" ", len(marker))
	for i, l := range lines {
		switch {
		case i == 0:
			lines[i] = strings.TrimRight(marker+l, " ")
		case l != "":
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}

func prefixLines(s, prefix, empty string) string {
	if s == "" {
		return empty
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l == "" {
			lines[i] = empty
		} else {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}

func fence(pre *html.Node) string {
	code := pre
	lang := ""
	for c := pre.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Code {
			code = c
			if class, ok := attr(c, "class"); ok {
				for _, f := range strings.Fields(class) {
					if strings.HasPrefix(f, "language-") {
						lang = strings.TrimPrefix(f, "language-")
						break
					}
				}
			}
			break
		}
	}
	text := textContent(code)
	ticks := strings.Repeat("`", max(3, longestRun(text, '`')+1))
	if text == "" {
		return ticks + lang + "\n" + ticks
	}
	return ticks + lang + "\n" + text + "\n" + ticks
}

func longestRun(s string, c byte) int {
	best, cur := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			cur++
			best = max(best, cur)
		} else {
			cur = 0
		}
	}
	return best
}

// container writes details and figure elements as HTML blocks whose body is
// Markdown. The blank lines around the body end the HTML block so the body
// is parsed as Markdown again.
func container(n *html.Node) string {
	var lines []string
	lines = append(lines, startTag(n))
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Summary {
			lines = append(lines, startTag(c)+html.EscapeString(textContent(c))+"</summary>")
			break
		}
	}
	if body := blocks(n); body != "" {
		lines = append(lines, "", body, "")
	}
	lines = append(lines, "</"+n.Data+">")
	return strings.Join(lines, "\n")
}

// htmlList writes a list as HTML blocks around Markdown item bodies, for
// lists whose attributes a Markdown list would drop.
func htmlList(n *html.Node) string {
	lines := []string{startTag(n)}
	for _, c := range children(n) {
		if c.DataAtom != atom.Li {
			continue
		}
		lines = append(lines, startTag(c))
		if body := blocks(c); body != "" {
			lines = append(lines, "", body, "")
		}
		lines = append(lines, "</li>")
	}
	lines = append(lines, "</"+n.Data+">")
	return strings.Join(lines, "\n")
}
