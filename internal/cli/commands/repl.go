package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/tangwind/spring-data-jpa/internal/cli/output"
	"github.com/tangwind/spring-data-jpa/pkg/ast"
	"github.com/tangwind/spring-data-jpa/pkg/format"
	"github.com/tangwind/spring-data-jpa/pkg/parser"
	"github.com/tangwind/spring-data-jpa/pkg/token"
)

const (
	replPrompt     = "hql> "
	replContinue   = " ...> "
	historyFileEnv = "HQL_HISTORY_FILE"
)

// REPL display modes.
const (
	replModeTree   = "tree"
	replModeFormat = "fmt"
	replModeTokens = "tokens"
	replModeJSON   = "json"
	replModeYAML   = "yaml"
)

var replModes = []string{replModeTree, replModeFormat, replModeTokens, replModeJSON, replModeYAML}

var dotCommands = []string{".help", ".mode", ".kind", ".functions", ".quit", ".exit"}

// lineReader is the part of *readline.Instance the REPL loop uses.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive HQL parser shell",
		Long: `Start an interactive shell that parses each query as it is entered.

Queries end with a semicolon and may span several lines. Tab completes
keywords and function names. Type .help for shell commands.`,
		Args: cobra.NoArgs,
		RunE: runRepl,
	}
}

func runRepl(cmd *cobra.Command, _ []string) error {
	c := NewCommandContext(cmd)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile(),
		AutoComplete:    newCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	c.Renderer.Println("HQL REPL. Type .help for commands, .quit to exit")
	s := newReplSession(c)
	return s.loop(cmd.Context(), rl)
}

func historyFile() string {
	if path := os.Getenv(historyFileEnv); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hql_history")
}

type replSession struct {
	c    *CommandContext
	mode string
	kind string
}

func newReplSession(c *CommandContext) *replSession {
	return &replSession{c: c, mode: replModeTree, kind: KindStatement}
}

func (s *replSession) loop(ctx context.Context, rl lineReader) error {
	var buf strings.Builder
	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if buf.Len() == 0 && strings.HasPrefix(line, ".") {
			if quit := s.dotCommand(line); quit {
				return nil
			}
			continue
		}

		buf.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			buf.WriteString("\n")
			rl.SetPrompt(replContinue)
			continue
		}
		rl.SetPrompt(replPrompt)

		query := strings.TrimSuffix(buf.String(), ";")
		buf.Reset()
		s.eval(query)
	}
}

// eval parses query and prints it in the current mode. Errors are printed
// and never end the session.
func (s *replSession) eval(query string) {
	r := s.c.Renderer
	if s.mode == replModeTokens {
		tokens, err := parser.Tokenize(query)
		if err != nil {
			_ = s.c.ReportError("", query, err)
			return
		}
		for _, rec := range tokenRecords(tokens) {
			r.Printf("%d:%d\t%s\t%s\n", rec.Line, rec.Column, rec.Type, rec.Literal)
		}
		return
	}

	node, err := s.c.Parse(s.kind, query)
	if err != nil {
		_ = s.c.ReportError("", query, err)
		return
	}

	switch s.mode {
	case replModeFormat:
		r.Println(format.Node(node, s.c.Cfg.FormatOptions()...))
	case replModeJSON, replModeYAML:
		if err := s.structured(node); err != nil {
			r.Errorf("Error: %v\n", err)
		}
	default:
		_ = ast.Fprint(r.Writer(), node)
	}
}

func (s *replSession) structured(node ast.Node) error {
	r := s.c.Renderer
	sr := output.NewRendererWithTTY(r.Writer(), r.ErrWriter(), r.IsTTY(), output.Mode(s.mode))
	_, err := sr.Structured(ast.Describe(node))
	return err
}

func (s *replSession) dotCommand(line string) (quit bool) {
	r := s.c.Renderer
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printReplHelp(r.Writer())

	case ".mode":
		if len(parts) < 2 {
			r.Printf("mode: %s (one of %s)\n", s.mode, strings.Join(replModes, ", "))
			break
		}
		if !slices.Contains(replModes, parts[1]) {
			r.Errorf("Unknown mode: %s (one of %s)\n", parts[1], strings.Join(replModes, ", "))
			break
		}
		s.mode = parts[1]

	case ".kind":
		if len(parts) < 2 {
			r.Printf("kind: %s (one of %s)\n", s.kind, strings.Join(Kinds, ", "))
			break
		}
		if !slices.Contains(Kinds, parts[1]) {
			r.Errorf("Unknown kind: %s (one of %s)\n", parts[1], strings.Join(Kinds, ", "))
			break
		}
		s.kind = parts[1]

	case ".functions":
		prefix := ""
		if len(parts) > 1 {
			prefix = parts[1]
		}
		for _, fn := range parser.SearchFunctions(prefix) {
			r.Printf("%-20s %s\n", fn.Name, fn.Signature)
		}

	default:
		r.Errorf("Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printReplHelp(w io.Writer) {
	help := `
Commands:
  .help               Show this help message
  .mode [mode]        Show or set the display mode (tree, fmt, tokens, json, yaml)
  .kind [kind]        Show or set the input kind (statement, expression, predicate)
  .functions [prefix] List known functions
  .quit / .exit       Exit the REPL

Tips:
  - Queries must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completes keywords and function names
`
	_, _ = fmt.Fprintln(w, help)
}

// completer completes the word before the cursor against HQL keywords,
// function names and, at the start of a line, dot commands. Completions
// follow the case of what was typed.
type completer struct {
	words []string
}

func newCompleter() *completer {
	seen := make(map[string]bool)
	var words []string
	add := func(w string) {
		w = strings.ToLower(w)
		if !seen[w] {
			seen[w] = true
			words = append(words, w)
		}
	}
	for _, kw := range token.Keywords() {
		add(kw)
	}
	for _, fn := range parser.Catalog {
		add(fn.Name)
	}
	slices.Sort(words)
	return &completer{words: words}
}

// Do implements readline.AutoCompleter.
func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && isWordRune(line[start-1]) {
		start--
	}
	if start == 1 && line[0] == '.' {
		prefix := string(line[:pos])
		var out [][]rune
		for _, cmd := range dotCommands {
			if strings.HasPrefix(cmd, prefix) && cmd != prefix {
				out = append(out, []rune(cmd[len(prefix):]))
			}
		}
		return out, pos
	}

	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}
	lower := strings.ToLower(prefix)
	upper := prefix == strings.ToUpper(prefix) && prefix != lower

	var out [][]rune
	for _, w := range c.words {
		if !strings.HasPrefix(w, lower) || w == lower {
			continue
		}
		suffix := w[len(lower):]
		if upper {
			suffix = strings.ToUpper(suffix)
		}
		out = append(out, []rune(suffix))
	}
	return out, pos - start
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
