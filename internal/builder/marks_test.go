package builder

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/eykd/adfconv/internal/adf"
)

func TestMarkStack_PushDeduplicates(t *testing.T) {
	var s markStack
	if !s.push(adf.Strong()) {
		t.Fatal("first push reported no change")
	}
	if s.push(adf.Strong()) {
		t.Error("duplicate push reported a change")
	}
	if diff := cmp.Diff([]adf.Mark{adf.Strong()}, s.snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

// TestMarkStack_CodeIsExclusive tests that code replaces the active marks
// and blocks further pushes until it is popped.
func TestMarkStack_CodeIsExclusive(t *testing.T) {
	var s markStack
	s.push(adf.Strong())
	s.push(adf.Em())
	s.push(adf.Code())
	if s.push(adf.Strike()) {
		t.Error("push while code active reported a change")
	}
	if diff := cmp.Diff([]adf.Mark{adf.Code()}, s.snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}

	s.pop(ofType(adf.MarkCode))
	if got := s.snapshot(); got != nil {
		t.Errorf("snapshot after popping code = %v, want nil", got)
	}
	if !s.push(adf.Strike()) {
		t.Error("push after code popped reported no change")
	}
}

func TestMarkStack_PopMostRecentMatch(t *testing.T) {
	var s markStack
	s.push(adf.TextColor("#ff0000"))
	s.push(adf.Strong())
	s.push(adf.TextColor("#00ff00"))

	if !s.pop(ofType(adf.MarkTextColor)) {
		t.Fatal("pop found no text colour")
	}
	want := []adf.Mark{adf.TextColor("#ff0000"), adf.Strong()}
	if diff := cmp.Diff(want, s.snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if s.pop(subsupOf(adf.Sub)) {
		t.Error("pop of absent mark reported a change")
	}
}

func TestMarkStack_SnapshotIsACopy(t *testing.T) {
	var s markStack
	s.push(adf.Strong())
	snap := s.snapshot()
	s.pop(ofType(adf.MarkStrong))
	if len(snap) != 1 {
		t.Errorf("snapshot changed with the stack: %v", snap)
	}
}

func TestCleanSurroundingText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"  inner  ", "  inner  "},
		{"\n  indented", "  indented"},
		{"  \n  x  \n  ", "  x  "},
		{"x\ny", "x\ny"},
		{"a\n", "a"},
		{"a\r\n", "a"},
		{"\n", ""},
		{"\n\n", ""},
		{" \t ", " \t "},
		{"", ""},
	}

	for _, tt := range tests {
		if got := cleanSurroundingText(tt.in); got != tt.want {
			t.Errorf("cleanSurroundingText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTable_CustomTierFirst(t *testing.T) {
	var calls []string
	record := func(name string, consume bool) Handler {
		return func(*Builder, Element) bool {
			calls = append(calls, name)
			return consume
		}
	}

	tbl := NewTable()
	tbl.Register("x", Handlers{Start: record("custom", false)})
	tbl.RegisterBase("x", Handlers{Start: record("base", true)})

	b := New(WithTable(tbl))
	if err := b.StartTag(Element{Name: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"custom", "base"}, calls); diff != "" {
		t.Errorf("dispatch order mismatch (-want +got):\n%s", diff)
	}
	if got := tbl.Lookup("x", false); len(got) != 0 {
		t.Errorf("Lookup(end) = %d handlers, want 0", len(got))
	}
}
