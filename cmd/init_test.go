package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eykd/adfconv/internal/config"
)

// mockInitIO is a test double for InitIO.
type mockInitIO struct {
	exists   bool
	statErr  error
	writeErr error
	written  map[string]string // keyed by filepath.Base
}

func newMockInitIO() *mockInitIO {
	return &mockInitIO{written: make(map[string]string)}
}

func (m *mockInitIO) StatFile(string) (bool, error) {
	return m.exists, m.statErr
}

func (m *mockInitIO) WriteFileAtomic(path string, data []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.written[filepath.Base(path)] = string(data)
	return nil
}

func TestNewInitCmd_HasRequiredFlags(t *testing.T) {
	c := NewInitCmd(nil)
	for _, name := range []string{"dir", "force"} {
		t.Run(name, func(t *testing.T) {
			if c.Flags().Lookup(name) == nil {
				t.Errorf("expected --%s flag on init command", name)
			}
		})
	}
}

func TestNewInitCmd_GetCWDError(t *testing.T) {
	c := newInitCmdWithGetCWD(newMockInitIO(), func() (string, error) {
		return "", errors.New("getwd failed")
	})
	c.SetOut(new(bytes.Buffer))
	c.SetErr(new(bytes.Buffer))

	if err := c.Execute(); err == nil {
		t.Error("expected error when getwd fails")
	}
}

func TestNewInitCmd_WritesDecodableDefaults(t *testing.T) {
	mock := newMockInitIO()
	c := newInitCmdWithGetCWD(mock, func() (string, error) { return "/work", nil })
	out := new(bytes.Buffer)
	c.SetOut(out)
	c.SetErr(new(bytes.Buffer))

	if err := c.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content, ok := mock.written[config.FileName]
	if !ok {
		t.Fatalf("expected %s to be written", config.FileName)
	}
	if !strings.HasPrefix(content, "# adfc configuration\n") {
		t.Errorf("content = %q, want header comment", content)
	}
	got := config.Config{}
	if err := config.Decode([]byte(content), &got); err != nil {
		t.Fatalf("written config does not decode: %v", err)
	}
	if got != config.Default() {
		t.Errorf("decoded = %+v, want defaults", got)
	}
	if want := "Wrote " + filepath.Join("/work", config.FileName) + "\n"; out.String() != want {
		t.Errorf("stdout = %q, want %q", out.String(), want)
	}
}

func TestNewInitCmd_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		exists      bool
		statErr     error
		writeErr    error
		force       bool
		wantErr     bool
		wantWarning bool
		wantWritten bool
	}{
		{name: "fresh directory", wantWritten: true},
		{name: "existing without force", exists: true, wantErr: true},
		{name: "existing with force", exists: true, force: true, wantWarning: true, wantWritten: true},
		{name: "stat error", statErr: errors.New("permission denied"), wantErr: true},
		{name: "write error", writeErr: errors.New("disk full"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockInitIO()
			mock.exists = tt.exists
			mock.statErr = tt.statErr
			mock.writeErr = tt.writeErr
			c := NewInitCmd(mock)
			errOut := new(bytes.Buffer)
			c.SetOut(new(bytes.Buffer))
			c.SetErr(errOut)
			args := []string{"--dir", "/proj"}
			if tt.force {
				args = append(args, "--force")
			}
			c.SetArgs(args)

			err := c.Execute()
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := strings.Contains(errOut.String(), "warning"); got != tt.wantWarning {
				t.Errorf("warning printed = %v, want %v", got, tt.wantWarning)
			}
			if _, got := mock.written[config.FileName]; got != tt.wantWritten {
				t.Errorf("written = %v, want %v", got, tt.wantWritten)
			}
		})
	}
}
