// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/spf13/cobra"

	"github.com/tangwind/spring-data-jpa/internal/cli/config"
	"github.com/tangwind/spring-data-jpa/internal/cli/output"
	logutil "github.com/tangwind/spring-data-jpa/internal/testutil"
)

// WriteQueries creates files under dir from a relative-path to content map
// and returns dir.
func WriteQueries(t *testing.T, dir string, files map[string]string) string {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a non-TTY renderer in the given mode.
func NewTestRenderer(mode output.Mode) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, false, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the captured stdout output.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the captured stderr output.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// Result holds the outcome of Execute.
type Result struct {
	Stdout string
	Stderr string
	Err    error
}

// Execute runs cmd with args and stdin under cfg, capturing its output.
// A nil cfg uses the defaults.
func Execute(t *testing.T, cmd *cobra.Command, cfg *config.Config, stdin string, args ...string) Result {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	ctx := config.NewContext(context.Background(), cfg, logutil.NewTestLogger(t))

	var out, errOut bytes.Buffer
	// The root command silences these; subcommands run alone must match.
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs(args)
	cmd.SetIn(bytes.NewBufferString(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(ctx)
	return Result{Stdout: out.String(), Stderr: errOut.String(), Err: err}
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}
