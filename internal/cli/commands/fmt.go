package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tangwind/spring-data-jpa/pkg/format"
)

// FmtOptions holds options for the fmt command.
type FmtOptions struct {
	File  string
	Kind  string
	Write bool
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand() *cobra.Command {
	opts := &FmtOptions{}

	cmd := &cobra.Command{
		Use:   "fmt [query]",
		Short: "Print a query in canonical form",
		Long: `Parse a query and print it back in canonical HQL.

Keywords are upper case unless --keyword-case lower (or keyword_case in
hql.yaml) is set. --multiline puts each clause on its own line and
indents subqueries. Literals and identifiers keep their spelling.`,
		Example: `  hql fmt "select e from Employee e where e.name != 'x'"
  hql fmt --multiline --keyword-case lower -f query.hql
  hql fmt -w -f query.hql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, opts)
		},
	}

	addInputFlags(cmd, &opts.File, &opts.Kind)
	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write the result back to --file")
	cmd.Flags().String("keyword-case", "", "Keyword case (upper|lower)")
	cmd.Flags().BoolP("multiline", "m", false, "Put each clause on its own line")
	_ = cmd.RegisterFlagCompletionFunc("keyword-case", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"upper", "lower"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func runFmt(cmd *cobra.Command, args []string, opts *FmtOptions) error {
	c := NewCommandContext(cmd)

	if opts.Write && (opts.File == "" || opts.File == "-") {
		return errors.New("--write requires --file with a path")
	}

	name, src, err := readQuery(cmd, args, opts.File)
	if err != nil {
		return err
	}

	node, err := c.Parse(opts.Kind, src)
	if err != nil {
		return c.ReportError(name, src, err)
	}
	formatted := format.Node(node, c.Cfg.FormatOptions()...)

	if opts.Write {
		info, err := os.Stat(opts.File)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.File, []byte(formatted+"\n"), info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to write %s: %w", opts.File, err)
		}
		c.Logger.Info("formatted file", "path", opts.File)
		return nil
	}

	if ok, err := c.Renderer.Structured(map[string]string{"formatted": formatted}); ok {
		return err
	}
	c.Renderer.Println(formatted)
	return nil
}
