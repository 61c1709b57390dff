package parser

import (
	"sort"
	"strings"
)

// FunctionCategory classifies HQL functions by their purpose.
type FunctionCategory string

// FunctionCategory constants.
const (
	CategoryAggregate  FunctionCategory = "aggregate"
	CategoryWindow     FunctionCategory = "window"
	CategoryNumeric    FunctionCategory = "numeric"
	CategoryString     FunctionCategory = "string"
	CategoryTemporal   FunctionCategory = "temporal"
	CategoryConversion FunctionCategory = "conversion"
	CategoryCollection FunctionCategory = "collection"
	CategoryEntity     FunctionCategory = "entity"
	CategoryJSON       FunctionCategory = "json"
	CategoryXML        FunctionCategory = "xml"
)

// FunctionInfo describes an HQL function for completion and listings.
type FunctionInfo struct {
	Name        string           // Function name (e.g., "COUNT")
	Signature   string           // Call syntax (e.g., "COUNT([DISTINCT] expr | *)")
	Description string           // Brief description
	Category    FunctionCategory // Function category
	IsAggregate bool             // Accepts FILTER and OVER
	Special     bool             // Has dedicated argument syntax
}

// Catalog lists the functions the parser knows by name. Functions outside
// the catalog still parse as generic calls.
var Catalog = []FunctionInfo{
	// Aggregates
	{Name: "COUNT", Signature: "COUNT([DISTINCT] expr | *)", Description: "Number of rows or non-null values", Category: CategoryAggregate, IsAggregate: true},
	{Name: "SUM", Signature: "SUM(expr)", Description: "Sum of values", Category: CategoryAggregate, IsAggregate: true},
	{Name: "AVG", Signature: "AVG(expr)", Description: "Average of values", Category: CategoryAggregate, IsAggregate: true},
	{Name: "MIN", Signature: "MIN(expr)", Description: "Smallest value", Category: CategoryAggregate, IsAggregate: true},
	{Name: "MAX", Signature: "MAX(expr)", Description: "Largest value", Category: CategoryAggregate, IsAggregate: true},
	{Name: "EVERY", Signature: "EVERY(predicate | subquery | ELEMENTS(path))", Description: "True when the condition holds for every row", Category: CategoryAggregate, IsAggregate: true, Special: true},
	{Name: "ANY", Signature: "ANY(predicate | subquery | ELEMENTS(path))", Description: "True when the condition holds for some row", Category: CategoryAggregate, IsAggregate: true, Special: true},
	{Name: "LISTAGG", Signature: "LISTAGG([DISTINCT] expr, separator [ON OVERFLOW ...])", Description: "Concatenate values with a separator", Category: CategoryAggregate, IsAggregate: true, Special: true},
	{Name: "MODE", Signature: "MODE() WITHIN GROUP (ORDER BY expr)", Description: "Most frequent value", Category: CategoryAggregate, IsAggregate: true},
	{Name: "PERCENTILE_CONT", Signature: "PERCENTILE_CONT(fraction) WITHIN GROUP (ORDER BY expr)", Description: "Interpolated percentile", Category: CategoryAggregate, IsAggregate: true},
	{Name: "PERCENTILE_DISC", Signature: "PERCENTILE_DISC(fraction) WITHIN GROUP (ORDER BY expr)", Description: "Discrete percentile", Category: CategoryAggregate, IsAggregate: true},

	// Window functions
	{Name: "ROW_NUMBER", Signature: "ROW_NUMBER() OVER (...)", Description: "Sequential row number in the partition", Category: CategoryWindow, IsAggregate: true},
	{Name: "RANK", Signature: "RANK() OVER (...)", Description: "Rank with gaps", Category: CategoryWindow, IsAggregate: true},
	{Name: "DENSE_RANK", Signature: "DENSE_RANK() OVER (...)", Description: "Rank without gaps", Category: CategoryWindow, IsAggregate: true},
	{Name: "PERCENT_RANK", Signature: "PERCENT_RANK() OVER (...)", Description: "Relative rank", Category: CategoryWindow, IsAggregate: true},
	{Name: "CUME_DIST", Signature: "CUME_DIST() OVER (...)", Description: "Cumulative distribution", Category: CategoryWindow, IsAggregate: true},
	{Name: "LAG", Signature: "LAG(expr [, offset [, default]]) OVER (...)", Description: "Value from a preceding row", Category: CategoryWindow, IsAggregate: true},
	{Name: "LEAD", Signature: "LEAD(expr [, offset [, default]]) OVER (...)", Description: "Value from a following row", Category: CategoryWindow, IsAggregate: true},
	{Name: "FIRST_VALUE", Signature: "FIRST_VALUE(expr) OVER (...)", Description: "First value in the frame", Category: CategoryWindow, IsAggregate: true},
	{Name: "LAST_VALUE", Signature: "LAST_VALUE(expr) OVER (...)", Description: "Last value in the frame", Category: CategoryWindow, IsAggregate: true},
	{Name: "NTH_VALUE", Signature: "NTH_VALUE(expr, n) [FROM FIRST|LAST] OVER (...)", Description: "Nth value in the frame", Category: CategoryWindow, IsAggregate: true},

	// Numeric
	{Name: "ABS", Signature: "ABS(x)", Description: "Absolute value", Category: CategoryNumeric},
	{Name: "SIGN", Signature: "SIGN(x)", Description: "Sign of x", Category: CategoryNumeric},
	{Name: "MOD", Signature: "MOD(x, y)", Description: "Remainder of x / y", Category: CategoryNumeric},
	{Name: "SQRT", Signature: "SQRT(x)", Description: "Square root", Category: CategoryNumeric},
	{Name: "EXP", Signature: "EXP(x)", Description: "e raised to x", Category: CategoryNumeric},
	{Name: "LN", Signature: "LN(x)", Description: "Natural logarithm", Category: CategoryNumeric},
	{Name: "POWER", Signature: "POWER(x, y)", Description: "x raised to y", Category: CategoryNumeric},
	{Name: "ROUND", Signature: "ROUND(x [, places])", Description: "Round to places", Category: CategoryNumeric},
	{Name: "FLOOR", Signature: "FLOOR(x)", Description: "Largest integer not above x", Category: CategoryNumeric},
	{Name: "CEILING", Signature: "CEILING(x)", Description: "Smallest integer not below x", Category: CategoryNumeric},
	{Name: "TRUNC", Signature: "TRUNC(x [, places | field])", Description: "Truncate a number or datetime", Category: CategoryNumeric, Special: true},

	// String
	{Name: "CONCAT", Signature: "CONCAT(s, ...)", Description: "Concatenate strings", Category: CategoryString},
	{Name: "LENGTH", Signature: "LENGTH(s)", Description: "Number of characters", Category: CategoryString},
	{Name: "LOWER", Signature: "LOWER(s)", Description: "Lower case", Category: CategoryString},
	{Name: "UPPER", Signature: "UPPER(s)", Description: "Upper case", Category: CategoryString},
	{Name: "LEFT", Signature: "LEFT(s, n)", Description: "Leftmost n characters", Category: CategoryString},
	{Name: "RIGHT", Signature: "RIGHT(s, n)", Description: "Rightmost n characters", Category: CategoryString},
	{Name: "REPLACE", Signature: "REPLACE(s, pattern, replacement)", Description: "Replace occurrences", Category: CategoryString},
	{Name: "LOCATE", Signature: "LOCATE(pattern, s [, start])", Description: "Position of pattern", Category: CategoryString},
	{Name: "SUBSTRING", Signature: "SUBSTRING(s, start [, length]) | SUBSTRING(s FROM start [FOR length])", Description: "Part of a string", Category: CategoryString, Special: true},
	{Name: "TRIM", Signature: "TRIM([LEADING|TRAILING|BOTH] [char] [FROM] s)", Description: "Remove leading or trailing characters", Category: CategoryString, Special: true},
	{Name: "PAD", Signature: "PAD(s WITH length LEADING|TRAILING [char])", Description: "Pad to length", Category: CategoryString, Special: true},
	{Name: "OVERLAY", Signature: "OVERLAY(s PLACING r FROM start [FOR length])", Description: "Replace part of a string", Category: CategoryString, Special: true},
	{Name: "POSITION", Signature: "POSITION(pattern IN s)", Description: "Position of pattern", Category: CategoryString, Special: true},
	{Name: "COLLATE", Signature: "COLLATE(s AS collation)", Description: "Apply a collation", Category: CategoryString, Special: true},

	// Temporal
	{Name: "EXTRACT", Signature: "EXTRACT(field FROM datetime)", Description: "Field of a datetime", Category: CategoryTemporal, Special: true},
	{Name: "FORMAT", Signature: "FORMAT(datetime AS 'pattern')", Description: "Format a datetime", Category: CategoryTemporal, Special: true},
	{Name: "CURRENT_DATE", Signature: "CURRENT_DATE", Description: "Current date", Category: CategoryTemporal, Special: true},
	{Name: "CURRENT_TIME", Signature: "CURRENT_TIME", Description: "Current time", Category: CategoryTemporal, Special: true},
	{Name: "CURRENT_TIMESTAMP", Signature: "CURRENT_TIMESTAMP", Description: "Current timestamp", Category: CategoryTemporal, Special: true},
	{Name: "INSTANT", Signature: "INSTANT", Description: "Current instant", Category: CategoryTemporal, Special: true},
	{Name: "LOCAL_DATETIME", Signature: "LOCAL_DATETIME", Description: "Current local datetime", Category: CategoryTemporal, Special: true},
	{Name: "OFFSET_DATETIME", Signature: "OFFSET_DATETIME", Description: "Current offset datetime", Category: CategoryTemporal, Special: true},

	// Conversion
	{Name: "CAST", Signature: "CAST(expr AS type[(n[, m])])", Description: "Convert to a type", Category: CategoryConversion, Special: true},
	{Name: "STR", Signature: "STR(expr)", Description: "Convert to a string", Category: CategoryConversion},
	{Name: "COALESCE", Signature: "COALESCE(expr, ...)", Description: "First non-null argument", Category: CategoryConversion},
	{Name: "NULLIF", Signature: "NULLIF(x, y)", Description: "Null when x equals y", Category: CategoryConversion},

	// Collections
	{Name: "SIZE", Signature: "SIZE(path)", Description: "Number of elements", Category: CategoryCollection, Special: true},
	{Name: "MAXINDEX", Signature: "MAXINDEX(path)", Description: "Largest index or key", Category: CategoryCollection, Special: true},
	{Name: "MININDEX", Signature: "MININDEX(path)", Description: "Smallest index or key", Category: CategoryCollection, Special: true},
	{Name: "MAXELEMENT", Signature: "MAXELEMENT(path)", Description: "Largest element", Category: CategoryCollection, Special: true},
	{Name: "MINELEMENT", Signature: "MINELEMENT(path)", Description: "Smallest element", Category: CategoryCollection, Special: true},
	{Name: "ELEMENTS", Signature: "ELEMENTS(path)", Description: "Elements of a collection", Category: CategoryCollection, Special: true},
	{Name: "INDICES", Signature: "INDICES(path)", Description: "Indices of a list or keys of a map", Category: CategoryCollection, Special: true},

	// Entity references
	{Name: "TYPE", Signature: "TYPE(path | :param)", Description: "Concrete entity type", Category: CategoryEntity, Special: true},
	{Name: "ID", Signature: "ID(path)", Description: "Identifier of an entity", Category: CategoryEntity, Special: true},
	{Name: "VERSION", Signature: "VERSION(path)", Description: "Version of an entity", Category: CategoryEntity, Special: true},
	{Name: "NATURALID", Signature: "NATURALID(path)", Description: "Natural id of an entity", Category: CategoryEntity, Special: true},
	{Name: "TREAT", Signature: "TREAT(path AS Subtype)", Description: "Downcast a path", Category: CategoryEntity, Special: true},
	{Name: "FK", Signature: "FK(path)", Description: "Foreign key of an association", Category: CategoryEntity, Special: true},

	// JSON
	{Name: "JSON_VALUE", Signature: "JSON_VALUE(doc, path [PASSING ...] [RETURNING type])", Description: "Scalar at a JSON path", Category: CategoryJSON, Special: true},
	{Name: "JSON_QUERY", Signature: "JSON_QUERY(doc, path [wrapper])", Description: "Fragment at a JSON path", Category: CategoryJSON, Special: true},
	{Name: "JSON_EXISTS", Signature: "JSON_EXISTS(doc, path)", Description: "Whether a JSON path matches", Category: CategoryJSON, Special: true},
	{Name: "JSON_ARRAY", Signature: "JSON_ARRAY(value, ... [ABSENT|NULL ON NULL])", Description: "Build a JSON array", Category: CategoryJSON, Special: true},
	{Name: "JSON_OBJECT", Signature: "JSON_OBJECT([KEY] k VALUE v, ...)", Description: "Build a JSON object", Category: CategoryJSON, Special: true},
	{Name: "JSON_ARRAYAGG", Signature: "JSON_ARRAYAGG(expr [ORDER BY ...])", Description: "Aggregate into a JSON array", Category: CategoryJSON, IsAggregate: true, Special: true},
	{Name: "JSON_OBJECTAGG", Signature: "JSON_OBJECTAGG(k VALUE v)", Description: "Aggregate into a JSON object", Category: CategoryJSON, IsAggregate: true, Special: true},
	{Name: "JSON_TABLE", Signature: "JSON_TABLE(doc [, path] COLUMNS (...))", Description: "Rows from a JSON document", Category: CategoryJSON, Special: true},

	// XML
	{Name: "XMLELEMENT", Signature: "XMLELEMENT(NAME n [, XMLATTRIBUTES(...)] [, content])", Description: "Build an XML element", Category: CategoryXML, Special: true},
	{Name: "XMLFOREST", Signature: "XMLFOREST(value [AS name], ...)", Description: "Build a sequence of XML elements", Category: CategoryXML, Special: true},
	{Name: "XMLPI", Signature: "XMLPI(NAME n [, content])", Description: "Build a processing instruction", Category: CategoryXML, Special: true},
	{Name: "XMLQUERY", Signature: "XMLQUERY(query PASSING doc)", Description: "Evaluate an XQuery", Category: CategoryXML, Special: true},
	{Name: "XMLEXISTS", Signature: "XMLEXISTS(query PASSING doc)", Description: "Whether an XQuery matches", Category: CategoryXML, Special: true},
	{Name: "XMLAGG", Signature: "XMLAGG(expr [ORDER BY ...])", Description: "Aggregate XML values", Category: CategoryXML, IsAggregate: true, Special: true},
	{Name: "XMLTABLE", Signature: "XMLTABLE(query PASSING doc COLUMNS ...)", Description: "Rows from an XML document", Category: CategoryXML, Special: true},
}

// FunctionsByCategory returns the catalog entries in category.
func FunctionsByCategory(category FunctionCategory) []FunctionInfo {
	var result []FunctionInfo
	for _, fn := range Catalog {
		if fn.Category == category {
			result = append(result, fn)
		}
	}
	return result
}

// LookupFunction finds a function by name, ignoring case.
func LookupFunction(name string) (FunctionInfo, bool) {
	for _, fn := range Catalog {
		if strings.EqualFold(fn.Name, name) {
			return fn, true
		}
	}
	return FunctionInfo{}, false
}

// SearchFunctions returns the functions whose name starts with prefix,
// ignoring case, sorted by name.
func SearchFunctions(prefix string) []FunctionInfo {
	upper := strings.ToUpper(prefix)
	var result []FunctionInfo
	for _, fn := range Catalog {
		if strings.HasPrefix(fn.Name, upper) {
			result = append(result, fn)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
