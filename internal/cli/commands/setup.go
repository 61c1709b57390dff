package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tangwind/spring-data-jpa/internal/cli/config"
	"github.com/tangwind/spring-data-jpa/internal/cli/output"
	"github.com/tangwind/spring-data-jpa/pkg/ast"
	"github.com/tangwind/spring-data-jpa/pkg/parser"
)

// ErrReported is returned by commands whose failure was already written
// as diagnostics. Callers should exit non-zero without printing it again.
var ErrReported = errors.New("errors reported")

// Input kinds accepted by --kind.
const (
	KindStatement  = "statement"
	KindExpression = "expression"
	KindPredicate  = "predicate"
)

// Kinds lists the accepted --kind values.
var Kinds = []string{KindStatement, KindExpression, KindPredicate}

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds a CommandContext from the config and logger
// stored on the command's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.OutputMode(), output.WithColor(cfg.ColorMode()))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Parse parses src as the given kind.
func (c *CommandContext) Parse(kind, src string) (ast.Node, error) {
	opts := c.Cfg.ParserOptions(c.Logger)
	switch kind {
	case "", KindStatement:
		stmt, err := parser.Parse(src, opts...)
		if err != nil {
			return nil, err
		}
		return stmt, nil
	case KindExpression:
		expr, err := parser.ParseExpression(src, opts...)
		if err != nil {
			return nil, err
		}
		return expr, nil
	case KindPredicate:
		pred, err := parser.ParsePredicate(src, opts...)
		if err != nil {
			return nil, err
		}
		return pred, nil
	}
	return nil, fmt.Errorf("unknown kind %q (want one of %s)", kind, strings.Join(Kinds, ", "))
}

// ReportError writes err's diagnostics, or err itself when it carries none,
// and returns ErrReported.
func (c *CommandContext) ReportError(name, src string, err error) error {
	diags := parser.Diagnostics(err)
	if len(diags) == 0 {
		return err
	}

	records := make([]output.DiagnosticRecord, len(diags))
	for i, d := range diags {
		records[i] = output.NewDiagnosticRecord(name, d)
	}
	if ok, encErr := c.Renderer.Structured(map[string]any{"errors": records}); ok {
		if encErr != nil {
			return encErr
		}
		return ErrReported
	}

	for _, d := range diags {
		c.Renderer.Diagnostic(name, src, d)
	}
	return ErrReported
}

// readQuery resolves command input: --file (- for stdin), then arguments
// joined by spaces, then stdin. name labels diagnostics.
func readQuery(cmd *cobra.Command, args []string, file string) (name, src string, err error) {
	switch {
	case file == "-":
		src, err = readAll(cmd.InOrStdin())
		return "<stdin>", src, err
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return file, string(data), nil
	case len(args) > 0:
		return "", strings.Join(args, " "), nil
	}
	src, err = readAll(cmd.InOrStdin())
	return "<stdin>", src, err
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func addInputFlags(cmd *cobra.Command, file, kind *string) {
	cmd.Flags().StringVarP(file, "file", "f", "", "Read the query from a file (- for stdin)")
	cmd.Flags().StringVar(kind, "kind", KindStatement, "Input kind (statement|expression|predicate)")
	_ = cmd.RegisterFlagCompletionFunc("kind", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return Kinds, cobra.ShellCompDirectiveNoFileComp
	})
}
