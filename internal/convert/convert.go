// Package convert ties the builder, renderer, sanitizer and Markdown
// bridge together into conversions between ADF JSON, HTML and Markdown.
package convert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eykd/adfconv/internal/adf"
	"github.com/eykd/adfconv/internal/builder"
	"github.com/eykd/adfconv/internal/markdown"
	"github.com/eykd/adfconv/internal/render"
	"github.com/eykd/adfconv/internal/sanitize"
)

// Format names a document encoding.
type Format string

// Supported formats.
const (
	FormatADF      Format = "adf"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "md"
)

// ErrUnsupportedFormat is returned for a format name Convert does not know.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ParseFormat maps a format name, or a common alias, to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "adf", "json":
		return FormatADF, nil
	case "html", "htm":
		return FormatHTML, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Converter converts documents between formats.
type Converter struct {
	log      *zap.Logger
	sanitize bool
	newID    func() string
	handlers []builder.Option
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) { c.log = l }
}

// WithSanitize controls whether HTML input is repaired by the sanitizer
// before it reaches the builder. It is on by default.
func WithSanitize(on bool) Option {
	return func(c *Converter) { c.sanitize = on }
}

// WithIDs sets the generator of local ids for task lists read from
// Markdown. The default draws random UUIDs.
func WithIDs(newID func() string) Option {
	return func(c *Converter) { c.newID = newID }
}

// WithBuilderOptions passes options, such as custom tag handlers, to every
// builder the Converter creates.
func WithBuilderOptions(opts ...builder.Option) Option {
	return func(c *Converter) { c.handlers = append(c.handlers, opts...) }
}

// New returns a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{
		log:      zap.NewNop(),
		sanitize: true,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HTMLToADF builds an ADF document from HTML.
func (c *Converter) HTMLToADF(ctx context.Context, src string) (*adf.Node, error) {
	if c.sanitize {
		clean, err := sanitize.HTML(src)
		if err != nil {
			return nil, err
		}
		src = clean
	}
	return c.build(ctx, src)
}

func (c *Converter) build(ctx context.Context, src string) (*adf.Node, error) {
	doc, err := builder.Parse(ctx, []byte(src), c.handlers...)
	if err != nil {
		var se *builder.StructuralError
		if errors.As(err, &se) {
			c.log.Debug("structural fault",
				zap.String("tag", se.Tag),
				zap.String("reason", se.Reason),
				zap.Strings("stack", se.Stack))
		}
		return nil, err
	}
	return doc, nil
}

// ADFToHTML renders doc as HTML. Nodes of unknown type are skipped.
func (c *Converter) ADFToHTML(doc *adf.Node) (string, error) {
	return render.HTML(doc, render.OnUnknown(func(path string, n adf.Node) {
		c.log.Debug("skipping unknown node", zap.String("path", path), zap.String("type", n.OriginalType()))
	}))
}

// MarkdownToADF builds an ADF document from GFM. Checkbox lists become
// task lists.
func (c *Converter) MarkdownToADF(ctx context.Context, src string) (*adf.Node, error) {
	out, err := markdown.ToHTML([]byte(src))
	if err != nil {
		return nil, err
	}
	clean, err := sanitize.HTML(string(out), sanitize.WithTaskLists(c.newID))
	if err != nil {
		return nil, err
	}
	doc, err := c.build(ctx, clean)
	if err != nil {
		return nil, err
	}
	trimFences(doc)
	return doc, nil
}

// trimFences drops the newline Markdown renderers leave at the end of
// fenced code.
func trimFences(n *adf.Node) {
	if n.Type == adf.TypeCodeBlock {
		for i := range n.Content {
			if t := &n.Content[i]; t.Type == adf.TypeText {
				t.Text = strings.TrimSuffix(t.Text, "\n")
			}
		}
		if len(n.Content) == 1 && n.Content[0].Text == "" {
			n.Content = nil
		}
		return
	}
	for i := range n.Content {
		trimFences(&n.Content[i])
	}
}

// ADFToMarkdown renders doc as GFM.
func (c *Converter) ADFToMarkdown(doc *adf.Node) (string, error) {
	out, err := c.ADFToHTML(doc)
	if err != nil {
		return "", err
	}
	return markdown.FromHTML(out)
}

// Convert converts input from one format to another. Converting a format
// to itself normalizes it.
func (c *Converter) Convert(ctx context.Context, from, to Format, input []byte) ([]byte, error) {
	var doc *adf.Node
	var err error
	switch from {
	case FormatADF:
		doc, err = adf.Decode(input)
	case FormatHTML:
		doc, err = c.HTMLToADF(ctx, string(input))
	case FormatMarkdown:
		doc, err = c.MarkdownToADF(ctx, string(input))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, from)
	}
	if err != nil {
		return nil, err
	}
	c.log.Debug("converted input", zap.String("from", string(from)), zap.Int("blocks", len(doc.Content)))

	switch to {
	case FormatADF:
		return json.MarshalIndent(doc, "", "  ")
	case FormatHTML:
		s, err := c.ADFToHTML(doc)
		return []byte(s), err
	case FormatMarkdown:
		s, err := c.ADFToMarkdown(doc)
		return []byte(s), err
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, to)
}
