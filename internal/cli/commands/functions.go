package commands

import (
	"errors"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tangwind/spring-data-jpa/pkg/parser"
)

// FunctionRecord is the structured form of a catalog entry.
type FunctionRecord struct {
	Name        string `json:"name" yaml:"name"`
	Category    string `json:"category" yaml:"category"`
	Signature   string `json:"signature" yaml:"signature"`
	Description string `json:"description" yaml:"description"`
	Aggregate   bool   `json:"aggregate,omitempty" yaml:"aggregate,omitempty"`
}

// NewFunctionsCommand creates the functions command.
func NewFunctionsCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "functions [prefix]",
		Short: "List the functions the parser knows",
		Long: `List the HQL functions with dedicated syntax or well-known signatures.

Functions missing from this list still parse as generic calls.`,
		Example: `  hql functions
  hql functions json_
  hql functions --category aggregate -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) > 0 {
				prefix = args[0]
			}
			return runFunctions(cmd, prefix, category)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only list functions in this category")
	return cmd
}

func runFunctions(cmd *cobra.Command, prefix, category string) error {
	c := NewCommandContext(cmd)

	var records []FunctionRecord
	for _, fn := range parser.SearchFunctions(prefix) {
		if category != "" && !strings.EqualFold(string(fn.Category), category) {
			continue
		}
		records = append(records, FunctionRecord{
			Name:        fn.Name,
			Category:    string(fn.Category),
			Signature:   fn.Signature,
			Description: fn.Description,
			Aggregate:   fn.IsAggregate,
		})
	}

	if ok, err := c.Renderer.Structured(records); ok {
		return err
	}
	if len(records) == 0 {
		return errors.New("no matching functions")
	}

	t := table.NewWriter()
	t.SetOutputMirror(c.Renderer.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"NAME", "CATEGORY", "SIGNATURE", "DESCRIPTION"})
	for _, rec := range records {
		t.AppendRow(table.Row{rec.Name, rec.Category, rec.Signature, rec.Description})
	}
	t.Render()
	return nil
}
