package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tangwind/spring-data-jpa/internal/cli/output"
	"github.com/tangwind/spring-data-jpa/pkg/format"
	"github.com/tangwind/spring-data-jpa/pkg/parser"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "hql.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringP("output", "o", "", "")
	fs.String("log-level", "", "")
	fs.Int("max-depth", 0, "")
	fs.Duration("debounce", 0, "")
	fs.IntP("jobs", "j", 0, "")
	fs.Bool("multiline", false, "")
	fs.Bool("watch", false, "")
	return fs
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	loaded, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Empty(t, loaded.File)

	cfg := loaded.Config
	assert.Equal(t, parser.DefaultMaxDepth, cfg.MaxDepth)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultColor, cfg.Color)
	assert.Equal(t, DefaultKeywordCase, cfg.KeywordCase)
	assert.Equal(t, DefaultWatchDebounce, cfg.WatchDebounce)
	assert.Equal(t, DefaultExtensions, cfg.Extensions)
	assert.GreaterOrEqual(t, cfg.Concurrency, 1)
	assert.False(t, cfg.Multiline)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
max_depth: 64
output: json
keyword_case: lower
multiline: true
watch_debounce: 1s
extensions: [".hql", ".query"]
`)
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	t.Chdir(nested)

	loaded, err := LoadConfig("", nil)
	require.NoError(t, err)

	resolved, err := filepath.EvalSymlinks(loaded.File)
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(filepath.Join(dir, "hql.yaml"))
	require.NoError(t, err)
	assert.Equal(t, want, resolved)

	cfg := loaded.Config
	assert.Equal(t, 64, cfg.MaxDepth)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "lower", cfg.KeywordCase)
	assert.True(t, cfg.Multiline)
	assert.Equal(t, time.Second, cfg.WatchDebounce)
	assert.Equal(t, []string{".hql", ".query"}, cfg.Extensions)
}

func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "output: json\nmax_depth: 10\nlog_level: info\n")
	t.Chdir(dir)

	t.Setenv("HQL_OUTPUT", "yaml")
	t.Setenv("HQL_LOG_LEVEL", "debug")
	t.Setenv("HQL_EXTENSIONS", ".a,.b")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--output", "text", "--debounce", "3s", "-j", "2"}))

	loaded, err := LoadConfig(path, fs)
	require.NoError(t, err)
	cfg := loaded.Config

	assert.Equal(t, "text", cfg.Output, "flag beats env")
	assert.Equal(t, "debug", cfg.LogLevel, "env beats file")
	assert.Equal(t, 10, cfg.MaxDepth, "file beats default")
	assert.Equal(t, 3*time.Second, cfg.WatchDebounce)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.Equal(t, []string{".a", ".b"}, cfg.Extensions)
}

func TestLoadConfigUnchangedFlagsIgnored(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "max_depth: 12\n")

	fs := testFlags()
	require.NoError(t, fs.Parse(nil))

	loaded, err := LoadConfig(path, fs)
	require.NoError(t, err)
	assert.Equal(t, 12, loaded.Config.MaxDepth)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		errSubstr string
	}{
		{"bad output", "output: markdown\n", "unknown output format"},
		{"bad color", "color: rainbow\n", "unknown color mode"},
		{"bad keyword case", "keyword_case: title\n", "invalid keyword case"},
		{"bad log level", "log_level: loud\n", "invalid log_level"},
		{"bad depth", "max_depth: 0\n", "max_depth must be positive"},
		{"bad extension", "extensions: [hql]\n", "must start with a dot"},
		{"bad duration", "watch_debounce: soon\n", "unable to decode config"},
		{"bad yaml", "output: [\n", "error reading config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.body)
			_, err := LoadConfig(path, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.MaxDepth = -1
	cfg.Concurrency = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_depth")
	assert.Contains(t, err.Error(), "concurrency")
}

func TestConfigAccessors(t *testing.T) {
	cfg := Default()
	cfg.Output = "yaml"
	cfg.Color = "never"
	assert.Equal(t, output.ModeYAML, cfg.OutputMode())
	assert.Equal(t, output.ColorNever, cfg.ColorMode())
	assert.Len(t, cfg.FormatOptions(), 1)

	cfg.KeywordCase = "lower"
	cfg.Multiline = true
	stmt, err := parser.Parse("select e from Employee e")
	require.NoError(t, err)
	assert.Equal(t, "select e\nfrom Employee e", format.Statement(stmt, cfg.FormatOptions()...))

	cfg.MaxDepth = 2
	_, err = parser.ParseExpression("((((1))))", cfg.ParserOptions(nil)...)
	require.Error(t, err)
	diags := parser.Diagnostics(err)
	require.Len(t, diags, 1)
	assert.Equal(t, parser.NestingTooDeep, diags[0].Expected)
}

func TestContextAccessors(t *testing.T) {
	assert.Equal(t, Default(), GetConfig(context.Background()))
	assert.NotNil(t, GetLogger(context.Background()))

	cfg := Default()
	cfg.MaxDepth = 7
	logger := GetLogger(context.Background())
	ctx := NewContext(context.Background(), cfg, logger)
	assert.Same(t, cfg, GetConfig(ctx))
	assert.Same(t, logger, GetLogger(ctx))
}
