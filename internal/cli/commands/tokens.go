package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tangwind/spring-data-jpa/pkg/parser"
	"github.com/tangwind/spring-data-jpa/pkg/token"
)

// TokenRecord is the structured form of a token.
type TokenRecord struct {
	Type    string `json:"type" yaml:"type"`
	Literal string `json:"literal" yaml:"literal"`
	Value   string `json:"value,omitempty" yaml:"value,omitempty"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "tokens [query]",
		Short: "Print the tokens of a query",
		Long: `Split a query into tokens and print them as a table.

Keywords keep their original spelling in the TEXT column; quoted
identifiers and string literals show their decoded VALUE.`,
		Example: `  hql tokens "select e.name from Employee e"
  hql tokens -f query.hql -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args, file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the query from a file (- for stdin)")
	return cmd
}

func runTokens(cmd *cobra.Command, args []string, file string) error {
	c := NewCommandContext(cmd)

	name, src, err := readQuery(cmd, args, file)
	if err != nil {
		return err
	}

	tokens, err := parser.Tokenize(src)
	if err != nil {
		return c.ReportError(name, src, err)
	}
	c.Logger.Debug("tokenized input", "tokens", len(tokens))

	records := tokenRecords(tokens)
	if ok, err := c.Renderer.Structured(records); ok {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(c.Renderer.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "TYPE", "TEXT", "VALUE", "POSITION"})
	for i, rec := range records {
		t.AppendRow(table.Row{i + 1, rec.Type, rec.Literal, rec.Value, fmt.Sprintf("%d:%d", rec.Line, rec.Column)})
	}
	t.Render()
	c.Renderer.Printf("(%d tokens)\n", len(records))
	return nil
}

// tokenRecords converts tokens, dropping the trailing EOF.
func tokenRecords(tokens []token.Token) []TokenRecord {
	records := make([]TokenRecord, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type == token.EOF {
			break
		}
		rec := TokenRecord{
			Type:    tok.Type.String(),
			Literal: tok.Literal,
			Line:    tok.Pos.Line,
			Column:  tok.Pos.Column,
		}
		if tok.Value != tok.Literal {
			rec.Value = tok.Value
		}
		records = append(records, rec)
	}
	return records
}
