package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/eykd/adfconv/internal/adf"
	"github.com/eykd/adfconv/internal/builder"
	"github.com/eykd/adfconv/internal/logger"
)

// palette holds the colours for one output stream.
type palette struct {
	err, warn, dim *color.Color
}

func newPalette(w io.Writer) palette {
	p := palette{
		err:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow),
		dim:  color.New(color.Faint),
	}
	on := logger.IsTerminal(w)
	for _, c := range []*color.Color{p.err, p.warn, p.dim} {
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s adf.Severity) string {
	if s == adf.SeverityError {
		return p.err.Sprint(s)
	}
	return p.warn.Sprint(s)
}

// printDiagnostics writes each diagnostic to w in human-readable form.
func printDiagnostics(w io.Writer, diags []adf.Diagnostic) {
	p := newPalette(w)
	for _, d := range diags {
		path := d.Path
		if path == "" {
			path = "/"
		}
		fmt.Fprintf(w, "%s %s %s %s\n", d.Code, p.severity(d.Severity), p.dim.Sprint(printable(path)), printable(d.Message))
	}
}

// printFault describes a structural fault, including the open frames.
func printFault(w io.Writer, se *builder.StructuralError) {
	p := newPalette(w)
	fmt.Fprintf(w, "%s structural fault at <%s>: %s\n", p.err.Sprint("error:"), printable(se.Tag), printable(se.Reason))
	if len(se.Stack) > 0 {
		fmt.Fprintf(w, "  %s %s\n", p.dim.Sprint("open:"), printable(strings.Join(se.Stack, " > ")))
	}
}

// printable replaces control characters with '?' so that text taken from
// the input cannot inject terminal escapes.
func printable(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return '?'
		}
		return r
	}, s)
}
