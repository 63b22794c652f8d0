package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// writeTestConfig writes a config that keeps every file under a temp dir.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "changetrack.yaml")
	content := fmt.Sprintf("data_dir: %s\npaging:\n  products: 2\n  change_items: 3\n", dir)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// runCT executes the root command with args, appending -c cfgPath when set.
func runCT(t *testing.T, cfgPath, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(stdin))
	if cfgPath != "" {
		args = append(args, "-c", cfgPath)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// mustRun fails the test when the command errors.
func mustRun(t *testing.T, cfgPath string, args ...string) string {
	t.Helper()
	out, err := runCT(t, cfgPath, "", args...)
	if err != nil {
		t.Fatalf("ct %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestVersionCmd(t *testing.T) {
	out := mustRun(t, "", "version")
	if !strings.Contains(out, "ct dev") {
		t.Errorf("expected output to contain 'ct dev', got: %s", out)
	}
	if !strings.Contains(out, "commit: none") {
		t.Errorf("expected output to contain 'commit: none', got: %s", out)
	}
}

func TestVersionCmdWithCustomValues(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	Version, Commit, Date = "1.0.0", "abc123", "2026-01-01"
	defer func() { Version, Commit, Date = origVersion, origCommit, origDate }()

	out := mustRun(t, "", "version")
	for _, want := range []string{"ct 1.0.0", "commit: abc123", "built: 2026-01-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got: %s", want, out)
		}
	}
}

func TestRootCmdHelp(t *testing.T) {
	out := mustRun(t, "", "--help")
	if !strings.Contains(out, "Changetrack") {
		t.Errorf("expected help output to contain 'Changetrack', got: %s", out)
	}
	for _, sub := range []string{"version", "product", "release", "requester", "request", "item", "report", "export", "menu"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected help output to list %q subcommand", sub)
		}
	}
}

func TestSubcommandsHaveConfigFlag(t *testing.T) {
	root := newRootCmd()
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		for _, sub := range c.Commands() {
			if sub.HasSubCommands() {
				walk(sub)
				continue
			}
			if sub.Name() == "version" || sub.Name() == "help" || sub.Name() == "completion" {
				continue
			}
			if f := sub.Flags().Lookup("config"); f == nil || f.Shorthand != "c" {
				t.Errorf("%s: missing --config/-c flag", sub.CommandPath())
			}
		}
	}
	walk(root)
}

func TestExecute(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	cmd.SetArgs([]string{"version"})
	if code := execute(cmd); code != 0 {
		t.Errorf("execute(version) = %d, want 0", code)
	}

	cmd = newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"no-such-command"})
	if code := execute(cmd); code != 1 {
		t.Errorf("execute(unknown) = %d, want 1", code)
	}
}

func TestMissingExplicitConfig(t *testing.T) {
	_, err := runCT(t, filepath.Join(t.TempDir(), "missing.yaml"), "", "product", "list")
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
	if !strings.Contains(err.Error(), "load config") {
		t.Errorf("error = %v, want load config prefix", err)
	}
}
