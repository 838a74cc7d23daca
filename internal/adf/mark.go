package adf

import (
	"encoding/json"
	"slices"
)

// MarkType is the `type` discriminator of a Mark.
type MarkType string

const (
	MarkStrong          MarkType = "strong"
	MarkEm              MarkType = "em"
	MarkCode            MarkType = "code"
	MarkStrike          MarkType = "strike"
	MarkUnderline       MarkType = "underline"
	MarkSubsup          MarkType = "subsup"
	MarkTextColor       MarkType = "textColor"
	MarkBackgroundColor MarkType = "backgroundColor"
	MarkLink            MarkType = "link"
	MarkBorder          MarkType = "border" // media only
	MarkUnknown         MarkType = "unknown"
)

var knownMarkTypes = map[MarkType]bool{
	MarkStrong: true, MarkEm: true, MarkCode: true, MarkStrike: true,
	MarkUnderline: true, MarkSubsup: true, MarkTextColor: true,
	MarkBackgroundColor: true, MarkLink: true, MarkBorder: true,
}

// Known reports whether t is one of the mark types this package models.
func (t MarkType) Known() bool {
	return knownMarkTypes[t]
}

// Subsup selects subscript or superscript.
type Subsup string

const (
	Sub Subsup = "sub"
	Sup Subsup = "sup"
)

// Mark is an inline formatting attribute attached to a text run or a media
// node.
type Mark struct {
	Type  MarkType   `json:"type"`
	Attrs *MarkAttrs `json:"attrs,omitempty"`

	// Raw holds the undecoded JSON of an unknown mark.
	Raw json.RawMessage `json:"-"`
}

// MarkAttrs is the union of mark attribute fields.
type MarkAttrs struct {
	// link
	Href          string `json:"href,omitempty"`
	Title         string `json:"title,omitempty"`
	ID            string `json:"id,omitempty"`
	Collection    string `json:"collection,omitempty"`
	OccurrenceKey string `json:"occurrenceKey,omitempty"`

	// textColor, backgroundColor, border
	Color string `json:"color,omitempty"`
	// subsup
	Type Subsup `json:"type,omitempty"`
	// border
	Size int `json:"size,omitempty"`
}

// Equal reports whether two marks have the same type and attributes.
func (m Mark) Equal(o Mark) bool {
	if m.Type != o.Type {
		return false
	}
	if m.Type == MarkUnknown {
		return slices.Equal(m.Raw, o.Raw)
	}
	if m.Attrs == nil || o.Attrs == nil {
		return m.Attrs == nil && o.Attrs == nil
	}
	return *m.Attrs == *o.Attrs
}

// Strong returns a strong mark.
func Strong() Mark { return Mark{Type: MarkStrong} }

// Em returns an emphasis mark.
func Em() Mark { return Mark{Type: MarkEm} }

// Code returns an inline-code mark.
func Code() Mark { return Mark{Type: MarkCode} }

// Strike returns a strike-through mark.
func Strike() Mark { return Mark{Type: MarkStrike} }

// Underline returns an underline mark.
func Underline() Mark { return Mark{Type: MarkUnderline} }

// SubsupMark returns a subscript or superscript mark.
func SubsupMark(kind Subsup) Mark {
	return Mark{Type: MarkSubsup, Attrs: &MarkAttrs{Type: kind}}
}

// TextColor returns a text-colour mark for a hex colour.
func TextColor(hex string) Mark {
	return Mark{Type: MarkTextColor, Attrs: &MarkAttrs{Color: hex}}
}

// BackgroundColor returns a background-colour mark for a hex colour.
func BackgroundColor(hex string) Mark {
	return Mark{Type: MarkBackgroundColor, Attrs: &MarkAttrs{Color: hex}}
}

// Link returns a link mark pointing at href.
func Link(href string) Mark {
	return Mark{Type: MarkLink, Attrs: &MarkAttrs{Href: href}}
}

// Border returns a media border mark.
func Border(color string, size int) Mark {
	return Mark{Type: MarkBorder, Attrs: &MarkAttrs{Color: color, Size: size}}
}
