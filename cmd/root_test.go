package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/eykd/adfconv/internal/adf"
)

func TestNewRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"convert", "validate", "init", "serve"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := root.Find([]string{name})
			if err != nil || sub == root {
				t.Fatalf("subcommand %q not registered", name)
			}
			if sub.RunE == nil {
				t.Errorf("subcommand %q has no RunE", name)
			}
		})
	}
}

func TestNewRootCmd_PersistentFlags(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"config", "log-level"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent --%s flag", name)
		}
	}
}

func TestNewRootCmd_NoArgsShowsHelp(t *testing.T) {
	root := NewRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))

	if err := runCmd(t, root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Available Commands") {
		t.Errorf("expected help output, got %q", out.String())
	}
}

func TestNewRootCmd_BadLogLevel(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetIn(strings.NewReader("x"))

	err := runCmd(t, root, "--log-level", "loud", "convert", "--from", "md", "--to", "html")
	if err == nil || !strings.Contains(err.Error(), "--log-level") {
		t.Errorf("error = %v, want --log-level error", err)
	}
}

func TestNewRootCmd_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adfc.yml")
	if err := os.WriteFile(path, []byte("convert:\n  ids: sequential\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	root := NewRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetIn(strings.NewReader("- [x] a\n"))

	if err := runCmd(t, root, "--config", path, "convert", "--from", "md", "--to", "adf"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc, err := adf.Decode(out.Bytes())
	if err != nil {
		t.Fatalf("output is not ADF JSON: %v\n%s", err, out)
	}
	want := adf.Doc(adf.TaskList("task-1", adf.TaskItem("task-2", true, adf.Text("a"))))
	if diff := cmp.Diff(want, *doc); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRootCmd_InvalidConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adfc.yml")
	if err := os.WriteFile(path, []byte("convert:\n  ids: random\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	root := NewRootCmd()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetIn(strings.NewReader("x"))

	if err := runCmd(t, root, "--config", path, "convert", "--from", "md", "--to", "html"); err == nil {
		t.Error("expected error for invalid configuration")
	}
}
