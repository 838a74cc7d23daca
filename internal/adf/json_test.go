package adf_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/eykd/adfconv/internal/adf"
)

// TestNode_MarshalJSON_OmitsAbsentFields tests the wire shape of a small
// document: camelCase names, a type discriminator, and no empty fields.
func TestNode_MarshalJSON_OmitsAbsentFields(t *testing.T) {
	doc := adf.Doc(
		adf.Heading(2, adf.Text("Title")),
		adf.Paragraph(adf.Text("bold", adf.Strong())),
	)

	got, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"type":"doc","version":1,"content":[` +
		`{"type":"heading","attrs":{"level":2},"content":[{"type":"text","text":"Title"}]},` +
		`{"type":"paragraph","content":[{"type":"text","text":"bold","marks":[{"type":"strong"}]}]}]}`
	if string(got) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", got, want)
	}
}

// TestNode_MarshalJSON_EmptyContainers tests that containers keep an empty
// content array while leaf nodes omit it.
func TestNode_MarshalJSON_EmptyContainers(t *testing.T) {
	tests := []struct {
		name string
		node adf.Node
		want string
	}{
		{
			name: "empty table cell",
			node: adf.Doc(adf.Table(adf.TableRow(adf.TableCell()))),
			want: `{"type":"doc","version":1,"content":[{"type":"table","content":[{"type":"tableRow","content":[{"type":"tableCell","content":[]}]}]}]}`,
		},
		{
			name: "empty doc",
			node: adf.Doc(),
			want: `{"type":"doc","version":1,"content":[]}`,
		},
		{
			name: "rule and hard break stay bare",
			node: adf.Doc(adf.Rule(), adf.Paragraph(adf.HardBreak())),
			want: `{"type":"doc","version":1,"content":[{"type":"rule"},{"type":"paragraph","content":[{"type":"hardBreak"}]}]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

// TestNode_UnmarshalJSON_EmptyContent tests that an empty content array
// decodes to the same value the constructors build.
func TestNode_UnmarshalJSON_EmptyContent(t *testing.T) {
	want := adf.Doc(adf.Table(adf.TableRow(adf.TableCell())))
	data, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := adf.Decode(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// TestNode_UnmarshalJSON_UnknownNode tests that an unrecognised node type
// decodes to TypeUnknown and re-encodes its original JSON.
func TestNode_UnmarshalJSON_UnknownNode(t *testing.T) {
	src := `{"type":"doc","version":1,"content":[{"type":"extension","attrs":{"extensionKey":"x"}}]}`

	doc, err := adf.Decode([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Content) != 1 {
		t.Fatalf("len(Content) = %d, want 1", len(doc.Content))
	}
	unknown := doc.Content[0]
	if unknown.Type != adf.TypeUnknown {
		t.Errorf("Type = %q, want %q", unknown.Type, adf.TypeUnknown)
	}
	if unknown.OriginalType() != "extension" {
		t.Errorf("OriginalType() = %q, want %q", unknown.OriginalType(), "extension")
	}

	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != src {
		t.Errorf("re-encoded =\n%s\nwant\n%s", out, src)
	}
}

// TestMark_UnmarshalJSON_UnknownMark tests that unrecognised marks degrade
// to MarkUnknown instead of failing the decode.
func TestMark_UnmarshalJSON_UnknownMark(t *testing.T) {
	src := `{"type":"text","text":"x","marks":[{"type":"annotation","attrs":{"id":"a"}},{"type":"em"}]}`

	var n adf.Node
	if err := json.Unmarshal([]byte(src), &n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(n.Marks) != 2 {
		t.Fatalf("len(Marks) = %d, want 2", len(n.Marks))
	}
	if n.Marks[0].Type != adf.MarkUnknown {
		t.Errorf("Marks[0].Type = %q, want %q", n.Marks[0].Type, adf.MarkUnknown)
	}
	if n.Marks[1].Type != adf.MarkEm {
		t.Errorf("Marks[1].Type = %q, want %q", n.Marks[1].Type, adf.MarkEm)
	}
}

// TestDecode_RoundTripsAttributes tests decoding of the attribute union
// across several node kinds.
func TestDecode_RoundTripsAttributes(t *testing.T) {
	src := `{"type":"doc","version":1,"content":[
		{"type":"mediaSingle","attrs":{"layout":"center"},"content":[
			{"type":"media","attrs":{"id":"m1","collection":"c","type":"file","width":300,"height":200}}]},
		{"type":"paragraph","content":[
			{"type":"mention","attrs":{"id":"u1","text":"@Ann","accessLevel":"SITE"}},
			{"type":"text","text":"sub","marks":[{"type":"subsup","attrs":{"type":"sub"}}]}]}]}`

	doc, err := adf.Decode([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := adf.Doc(
		adf.Node{Type: adf.TypeMediaSingle, Attrs: &adf.Attrs{Layout: "center"}, Content: []adf.Node{{
			Type:  adf.TypeMedia,
			Attrs: &adf.Attrs{ID: "m1", Collection: "c", MediaType: adf.MediaFile, Width: 300, Height: 200},
		}}},
		adf.Paragraph(
			adf.Node{Type: adf.TypeMention, Attrs: &adf.Attrs{ID: "u1", Text: "@Ann", AccessLevel: adf.AccessSite}},
			adf.Text("sub", adf.SubsupMark(adf.Sub)),
		),
	)
	if diff := cmp.Diff(want, *doc); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

// TestDecode_InvalidJSON tests that malformed input is an error.
func TestDecode_InvalidJSON(t *testing.T) {
	_, err := adf.Decode([]byte(`{"type":`))
	if err == nil {
		t.Fatal("expected error for truncated JSON")
	}
	if !strings.Contains(err.Error(), "unexpected end") && !strings.Contains(err.Error(), "decoding") {
		t.Errorf("error = %v, want a decode error", err)
	}
}
