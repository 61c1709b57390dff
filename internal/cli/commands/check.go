package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tangwind/spring-data-jpa/internal/cli/output"
	"github.com/tangwind/spring-data-jpa/pkg/parser"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Kind  string
	Watch bool
}

// FileResult is the outcome of checking one file.
type FileResult struct {
	Path        string
	Source      string
	Diagnostics []*parser.Diagnostic
}

// OK reports whether the file parsed.
func (r FileResult) OK() bool {
	return len(r.Diagnostics) == 0
}

type fileRecord struct {
	File   string                    `json:"file" yaml:"file"`
	OK     bool                      `json:"ok" yaml:"ok"`
	Errors []output.DiagnosticRecord `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Check query files for syntax errors",
		Long: `Parse every query file under the given paths and report syntax errors.

Each file holds one query. Directories are searched recursively for the
extensions configured in hql.yaml (default .hql and .jpql). Files are
parsed concurrently; --jobs bounds the number of parsers.

With --watch, changed files are re-checked until interrupted.`,
		Example: `  hql check queries/
  hql check -j 8 a.hql b.hql
  hql check --watch --debounce 500ms queries/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", KindStatement, "Input kind (statement|expression|predicate)")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-check files when they change")
	cmd.Flags().IntP("jobs", "j", 0, "Number of files parsed concurrently")
	cmd.Flags().Duration("debounce", 0, "Delay before re-checking after a change")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	c := NewCommandContext(cmd)
	ctx := cmd.Context()

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	files, err := collectFiles(paths, c.Cfg.Extensions)
	if err != nil {
		return err
	}
	c.Logger.Debug("collected files", "count", len(files), "concurrency", c.Cfg.Concurrency)

	results, err := c.CheckFiles(ctx, opts.Kind, files)
	if err != nil {
		return err
	}
	failed, err := c.reportResults(results)
	if err != nil {
		return err
	}

	if !opts.Watch {
		if failed > 0 {
			return ErrReported
		}
		return nil
	}

	w, err := newCheckWatcher(paths, c.Cfg.Extensions, c.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	c.Renderer.Println(c.Renderer.Styles().Muted.Render("watching for changes, press Ctrl+C to stop"))
	return w.Run(ctx, c.Cfg.WatchDebounce, func(changed []string) {
		c.Renderer.Println(c.Renderer.Styles().Muted.Render(
			fmt.Sprintf("[%s] re-checking %d file(s)", time.Now().Format(time.TimeOnly), len(changed))))
		results, err := c.CheckFiles(ctx, opts.Kind, changed)
		if err != nil {
			c.Logger.Error("check failed", "error", err)
			return
		}
		if _, err := c.reportResults(results); err != nil {
			c.Logger.Error("report failed", "error", err)
		}
	})
}

// CheckFiles parses files concurrently, at most Cfg.Concurrency at a time.
// Results are in the order of files. A file that cannot be read fails the
// whole check.
func (c *CommandContext) CheckFiles(ctx context.Context, kind string, files []string) ([]FileResult, error) {
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.Cfg.Concurrency, 1))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			src := string(data)
			res := FileResult{Path: path, Source: src}
			if _, err := c.Parse(kind, src); err != nil {
				res.Diagnostics = parser.Diagnostics(err)
				if len(res.Diagnostics) == 0 {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// reportResults renders results and returns the number of failed files.
func (c *CommandContext) reportResults(results []FileResult) (int, error) {
	failed := 0
	for _, res := range results {
		if !res.OK() {
			failed++
		}
	}

	records := make([]fileRecord, len(results))
	for i, res := range results {
		rec := fileRecord{File: res.Path, OK: res.OK()}
		for _, d := range res.Diagnostics {
			rec.Errors = append(rec.Errors, output.NewDiagnosticRecord(res.Path, d))
		}
		records[i] = rec
	}
	if ok, err := c.Renderer.Structured(records); ok {
		return failed, err
	}

	for _, res := range results {
		for _, d := range res.Diagnostics {
			c.Renderer.Diagnostic(res.Path, res.Source, d)
		}
	}

	styles := c.Renderer.Styles()
	summary := fmt.Sprintf("checked %d file(s), %d with errors", len(results), failed)
	if failed > 0 {
		c.Renderer.Println(styles.Error.Render(summary))
	} else {
		c.Renderer.Println(styles.Success.Render(summary))
	}
	return failed, nil
}

// collectFiles expands paths into a sorted, de-duplicated file list.
// Files named explicitly are kept whatever their extension; directories
// contribute files with one of exts. Hidden directories are skipped.
func collectFiles(paths, exts []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if hasExtension(path, exts) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	slices.Sort(files)
	return files, nil
}

func hasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
