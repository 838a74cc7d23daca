package markdown

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/eykd/adfconv/internal/adf"
)

// escaper neutralizes text that GFM would read as markup, including the
// bare URLs, www. prefixes and addresses picked up by the linkify extension.
var escaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"&", `\&`,
	"~", `\~`,
	"|", `\|`,
	"#", `\#`,
	"://", `\://`,
	"www.", `www\.`,
	"@", `\@`,
)

// passthrough are the inline elements Markdown has no syntax for.
var passthrough = map[atom.Atom]bool{
	atom.U: true, atom.Sub: true, atom.Sup: true, atom.Span: true,
	atom.Time: true, atom.Input: true, atom.Img: true,
}

func inline(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		inlineNode(&sb, c)
	}
	return sb.String()
}

func inlineNode(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(escaper.Replace(n.Data))
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.Br:
		sb.WriteString("\\\n")
	case atom.Strong, atom.B:
		emphasis(sb, n, adf.Strong())
	case atom.Em, atom.I:
		emphasis(sb, n, adf.Em())
	case atom.Del, atom.S, atom.Strike:
		emphasis(sb, n, adf.Strike())
	case atom.Code:
		codeSpan(sb, n)
	case atom.A:
		link(sb, n)
	default:
		if passthrough[n.DataAtom] || strings.HasPrefix(n.Data, "adf-") {
			rawInline(sb, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			inlineNode(sb, c)
		}
	}
}

// rawInline writes n as inline HTML around its converted children.
func rawInline(sb *strings.Builder, n *html.Node) {
	sb.WriteString(startTag(n))
	if n.DataAtom == atom.Input || n.DataAtom == atom.Img {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		inlineNode(sb, c)
	}
	sb.WriteString("</" + n.Data + ">")
}

// emphasis writes n with the delimiters of m when GFM would parse them back
// as the same span, and as inline HTML otherwise.
func emphasis(sb *strings.Builder, n *html.Node, m adf.Mark) {
	content := inline(n)
	if content == "" {
		return
	}
	d, _ := m.Markup()
	prev := lastRune(sb.String())
	next := nextRune(n)

	if m.Type == adf.MarkEm {
		parent := n.Parent != nil && (n.Parent.DataAtom == atom.Strong || n.Parent.DataAtom == atom.B)
		if parent || prev == '*' || next == '*' ||
			strings.HasPrefix(content, "*") || strings.HasSuffix(content, "*") {
			d = "_"
		}
	}
	if len(n.Attr) > 0 || !flankable(rune(d[0]), prev, content, next) {
		rawInline(sb, n)
		return
	}
	sb.WriteString(d + content + d)
}

// flankable reports whether delimiter runs of d around content open and
// close where they are written.
func flankable(d, prev rune, content string, next rune) bool {
	first, _ := utf8.DecodeRuneInString(content)
	last, _ := utf8.DecodeLastRuneInString(content)
	if unicode.IsSpace(first) || unicode.IsSpace(last) {
		return false
	}
	if prev == d || next == d {
		return false
	}
	if isPunct(first) && !isBoundary(prev) {
		return false
	}
	if isPunct(last) && !isBoundary(next) {
		return false
	}
	if d == '_' && (isAlnum(prev) || isAlnum(next)) {
		return false
	}
	return true
}

func lastRune(s string) rune {
	if s == "" {
		return 0
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

func isPunct(r rune) bool { return unicode.IsPunct(r) || unicode.IsSymbol(r) }

func isAlnum(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }

func isBoundary(r rune) bool { return r == 0 || unicode.IsSpace(r) || isPunct(r) }

// nextRune predicts the first character written for the sibling after n.
func nextRune(n *html.Node) rune {
	s := n.NextSibling
	if s == nil {
		return 0
	}
	switch s.Type {
	case html.TextNode:
		if s.Data == "" {
			return 0
		}
		r, _ := utf8.DecodeRuneInString(escaper.Replace(s.Data))
		return r
	case html.ElementNode:
		switch s.DataAtom {
		case atom.Strong, atom.B, atom.Em, atom.I:
			return '*'
		case atom.Del, atom.S, atom.Strike:
			return '~'
		case atom.Code:
			return '`'
		case atom.A:
			return '['
		case atom.Br:
			return '\\'
		}
		return '<'
	}
	return 0
}

func codeSpan(sb *strings.Builder, n *html.Node) {
	text := textContent(n)
	if text == "" {
		return
	}
	if len(n.Attr) > 0 || strings.ContainsAny(text, "\n\r") {
		sb.WriteString(startTag(n) + escaper.Replace(text) + "</code>")
		return
	}
	ticks := strings.Repeat("`", longestRun(text, '`')+1)
	pad := ""
	if strings.HasPrefix(text, "`") || strings.HasSuffix(text, "`") ||
		(strings.HasPrefix(text, " ") && strings.HasSuffix(text, " ") && strings.TrimSpace(text) != "") {
		pad = " "
	}
	sb.WriteString(ticks + pad + text + pad + ticks)
}

// link writes an anchor carrying only href and title as a Markdown link.
// Anchors with further attributes stay HTML so no metadata is lost.
func link(sb *strings.Builder, n *html.Node) {
	href, ok := attr(n, "href")
	simple := ok && href != "" && !strings.ContainsAny(href, " <>\n")
	for _, a := range n.Attr {
		if a.Key != "href" && a.Key != "title" {
			simple = false
		}
	}
	if !simple {
		rawInline(sb, n)
		return
	}

	dest := strings.NewReplacer("(", `\(`, ")", `\)`).Replace(href)
	sb.WriteString("[" + inline(n) + "](" + dest)
	if title, ok := attr(n, "title"); ok {
		sb.WriteString(` "` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(title) + `"`)
	}
	sb.WriteString(")")
}

// escapeLineStarts escapes characters that would open a block construct at
// the start of a line.
func escapeLineStarts(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		trimmed := strings.TrimLeft(l, " ")
		if trimmed == "" {
			continue
		}
		at := len(l) - len(trimmed)
		switch trimmed[0] {
		case '-', '+', '=':
			lines[i] = l[:at] + `\` + trimmed
			continue
		}
		digits := 0
		for digits < len(trimmed) && trimmed[digits] >= '0' && trimmed[digits] <= '9' {
			digits++
		}
		if digits > 0 && digits < len(trimmed) && (trimmed[digits] == '.' || trimmed[digits] == ')') {
			lines[i] = l[:at+digits] + `\` + trimmed[digits:]
		}
	}
	return strings.Join(lines, "\n")
}
