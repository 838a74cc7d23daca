package adf_test

import (
	"testing"

	"github.com/eykd/adfconv/internal/adf"
)

func TestMark_Markup(t *testing.T) {
	tests := []struct {
		mark   adf.Mark
		want   string
		wantOK bool
	}{
		{adf.Code(), "`", true},
		{adf.Em(), "*", true},
		{adf.Strong(), "**", true},
		{adf.Strike(), "~~", true},
		{adf.Underline(), "__", true},
		{adf.SubsupMark(adf.Sub), "~", true},
		{adf.SubsupMark(adf.Sup), "^", true},
		{adf.TextColor("#FF5630"), "{color:red}", true},
		{adf.TextColor("#123456"), "", false},
		{adf.BackgroundColor("#ff5630"), "", false},
		{adf.Link("https://example.com"), "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mark.Type)+tt.want, func(t *testing.T) {
			got, ok := tt.mark.Markup()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Markup() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// TestMarkupOrder_LongestFirst tests that every delimiter is listed before
// any shorter delimiter it starts with.
func TestMarkupOrder_LongestFirst(t *testing.T) {
	seen := map[string]int{}
	for i, mt := range adf.MarkupOrder {
		var m adf.Mark
		switch mt {
		case adf.MarkTextColor:
			m = adf.TextColor("#0747a6")
		case adf.MarkSubsup:
			m = adf.SubsupMark(adf.Sub)
		default:
			m = adf.Mark{Type: mt}
		}
		d, ok := m.Markup()
		if !ok {
			t.Fatalf("%s has no markup", mt)
		}
		seen[d] = i
	}
	if seen["**"] > seen["*"] {
		t.Error("strong must precede em")
	}
	if seen["~~"] > seen["~"] {
		t.Error("strike must precede sub")
	}
}

func TestColorName(t *testing.T) {
	if name, ok := adf.ColorName("#0747A6"); !ok || name != "bold_blue" {
		t.Errorf("ColorName(#0747A6) = (%q, %v), want (bold_blue, true)", name, ok)
	}
	if hex, ok := adf.ColorHex("subtle_purple"); !ok || hex != "#eae6ff" {
		t.Errorf("ColorHex(subtle_purple) = (%q, %v), want (#eae6ff, true)", hex, ok)
	}
	if _, ok := adf.ColorName("#000000"); ok {
		t.Error("ColorName(#000000) reported a name")
	}
}
