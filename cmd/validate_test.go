package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/eykd/adfconv/internal/adf"
)

const (
	validDoc   = `{"type":"doc","version":1,"content":[{"type":"paragraph","content":[{"type":"text","text":"ok"}]}]}`
	invalidDoc = `{"type":"doc","version":1,"content":[{"type":"heading","attrs":{"level":9},"content":[{"type":"text","text":"x"}]}]}`
)

func TestValidateCmd_ValidStdin(t *testing.T) {
	c := NewValidateCmd(newMockConvertIO(nil))
	out := new(bytes.Buffer)
	c.SetOut(out)
	c.SetErr(new(bytes.Buffer))
	c.SetIn(strings.NewReader(validDoc))

	if err := runCmd(t, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no diagnostics, got %q", out.String())
	}
}

func TestValidateCmd_ReportsErrors(t *testing.T) {
	c := NewValidateCmd(newMockConvertIO(map[string]string{"doc.json": invalidDoc}))
	out := new(bytes.Buffer)
	c.SetOut(out)
	c.SetErr(new(bytes.Buffer))

	if err := runCmd(t, c, "doc.json"); err == nil {
		t.Fatal("expected error for invalid document")
	}
	want := "ADFE002 error /content/0 heading level must be between 1 and 6\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestValidateCmd_JSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantErr   bool
		wantCodes []adf.DiagnosticCode
	}{
		{name: "valid", input: validDoc, wantCodes: []adf.DiagnosticCode{}},
		{name: "invalid", input: invalidDoc, wantErr: true, wantCodes: []adf.DiagnosticCode{adf.ADFE002}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewValidateCmd(newMockConvertIO(nil))
			out := new(bytes.Buffer)
			c.SetOut(out)
			c.SetErr(new(bytes.Buffer))
			c.SetIn(strings.NewReader(tt.input))

			err := runCmd(t, c, "--json")
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			var diags []adf.Diagnostic
			if err := json.Unmarshal(out.Bytes(), &diags); err != nil {
				t.Fatalf("output is not a JSON array: %v\n%s", err, out)
			}
			codes := []adf.DiagnosticCode{}
			for _, d := range diags {
				codes = append(codes, d.Code)
			}
			if len(codes) != len(tt.wantCodes) {
				t.Fatalf("codes = %v, want %v", codes, tt.wantCodes)
			}
			for i := range codes {
				if codes[i] != tt.wantCodes[i] {
					t.Errorf("codes[%d] = %s, want %s", i, codes[i], tt.wantCodes[i])
				}
			}
		})
	}
}

func TestValidateCmd_ConvertsMarkup(t *testing.T) {
	mock := newMockConvertIO(map[string]string{
		"ok.md":    "# Title\n\n- [ ] task\n",
		"bad.html": `<h1>x</h2><p><input type="radio"></p>`,
	})

	c := NewValidateCmd(mock)
	c.SetOut(new(bytes.Buffer))
	c.SetErr(new(bytes.Buffer))
	if err := runCmd(t, c, "ok.md"); err != nil {
		t.Errorf("unexpected error for markdown: %v", err)
	}

	c = NewValidateCmd(mock)
	errOut := new(bytes.Buffer)
	c.SetOut(new(bytes.Buffer))
	c.SetErr(errOut)
	if err := runCmd(t, c, "bad.html"); err == nil {
		t.Error("expected error for structural fault")
	}
	if !strings.Contains(errOut.String(), "structural fault") {
		t.Errorf("stderr = %q, want fault description", errOut.String())
	}
}

func TestValidateCmd_BadJSON(t *testing.T) {
	c := NewValidateCmd(newMockConvertIO(nil))
	c.SetOut(new(bytes.Buffer))
	c.SetErr(new(bytes.Buffer))
	c.SetIn(strings.NewReader("{"))

	if err := runCmd(t, c); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
