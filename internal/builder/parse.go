package builder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"

	"github.com/eykd/adfconv/internal/adf"
)

// Parse tokenizes src and builds the ADF document it encodes. The input is
// consumed as a flat event stream; HTML produced by other tools should be
// normalized first so that implicitly closed tags are explicit.
//
// A *StructuralError is returned when the markup nests in a way the tree
// cannot represent.
func Parse(ctx context.Context, src []byte, opts ...Option) (*adf.Node, error) {
	b := New(opts...)
	z := html.NewTokenizer(bytes.NewReader(src))

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var err error
		switch z.Next() {
		case html.ErrorToken:
			if zerr := z.Err(); !errors.Is(zerr, io.EOF) {
				return nil, fmt.Errorf("tokenizing html: %w", zerr)
			}
			doc, err := b.Emit()
			if err != nil {
				return nil, err
			}
			return &doc, nil
		case html.TextToken:
			err = b.Text(string(z.Text()))
		case html.StartTagToken:
			err = b.StartTag(element(z.Token(), false))
		case html.SelfClosingTagToken:
			err = b.StartTag(element(z.Token(), true))
		case html.EndTagToken:
			name, _ := z.TagName()
			err = b.EndTag(string(name))
		}
		if err != nil {
			return nil, err
		}
	}
}

func element(tok html.Token, selfClosing bool) Element {
	return Element{Name: tok.Data, Attrs: tok.Attr, SelfClosing: selfClosing}
}
