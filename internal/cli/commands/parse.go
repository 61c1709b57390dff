package commands

import (
	"github.com/spf13/cobra"

	"github.com/tangwind/spring-data-jpa/pkg/ast"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	File string
	Kind string
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [query]",
		Short: "Parse a query and print its syntax tree",
		Long: `Parse an HQL statement, expression or predicate and print the syntax tree.

The query is taken from --file, then from the arguments, then from stdin.
Text output is an indented tree; -o json and -o yaml print the same tree
as structured data.`,
		Example: `  hql parse "select e from Employee e where e.salary > 1000"
  hql parse -f query.hql -o json
  echo "e.salary * 1.1" | hql parse --kind expression`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	addInputFlags(cmd, &opts.File, &opts.Kind)
	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	c := NewCommandContext(cmd)

	name, src, err := readQuery(cmd, args, opts.File)
	if err != nil {
		return err
	}

	node, err := c.Parse(opts.Kind, src)
	if err != nil {
		return c.ReportError(name, src, err)
	}

	if ok, err := c.Renderer.Structured(ast.Describe(node)); ok {
		return err
	}
	return ast.Fprint(c.Renderer.Writer(), node)
}
