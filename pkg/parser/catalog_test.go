package parser_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tangwind/spring-data-jpa/pkg/parser"
)

func TestCatalogEntries(t *testing.T) {
	seen := make(map[string]bool)
	for _, fn := range parser.Catalog {
		assert.False(t, seen[fn.Name], "duplicate entry %s", fn.Name)
		seen[fn.Name] = true
		assert.NotEmpty(t, fn.Signature, fn.Name)
		assert.NotEmpty(t, fn.Description, fn.Name)
		assert.NotEmpty(t, fn.Category, fn.Name)
	}
}

func TestLookupFunction(t *testing.T) {
	fn, ok := parser.LookupFunction("count")
	require.True(t, ok)
	assert.Equal(t, "COUNT", fn.Name)
	assert.True(t, fn.IsAggregate)

	_, ok = parser.LookupFunction("no_such_function")
	assert.False(t, ok)
}

func TestSearchFunctions(t *testing.T) {
	results := parser.SearchFunctions("json_")
	require.Len(t, results, 8)
	names := make([]string, len(results))
	for i, fn := range results {
		names[i] = fn.Name
	}
	assert.True(t, sort.StringsAreSorted(names))
	assert.Empty(t, parser.SearchFunctions("zzz"))
}

func TestFunctionsByCategory(t *testing.T) {
	xml := parser.FunctionsByCategory(parser.CategoryXML)
	assert.Len(t, xml, 7)
	for _, fn := range xml {
		assert.True(t, fn.Special)
	}
}
