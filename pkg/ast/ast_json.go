package ast

// ---------- JSON functions ----------

// JsonPassing is one "value AS name" entry of a PASSING clause.
type JsonPassing struct {
	NodeInfo
	Value ExpressionOrPredicate
	Alias *Identifier
}

// JsonBehavior is the action of an ON ERROR or ON EMPTY clause.
type JsonBehavior string

// JsonBehavior values.
const (
	JsonBehaviorError       JsonBehavior = "ERROR"
	JsonBehaviorNull        JsonBehavior = "NULL"
	JsonBehaviorDefault     JsonBehavior = "DEFAULT"
	JsonBehaviorEmpty       JsonBehavior = "EMPTY"
	JsonBehaviorEmptyArray  JsonBehavior = "EMPTY ARRAY"
	JsonBehaviorEmptyObject JsonBehavior = "EMPTY OBJECT"
	JsonBehaviorTrue        JsonBehavior = "TRUE"
	JsonBehaviorFalse       JsonBehavior = "FALSE"
)

// JsonOnClause is behavior ON ERROR | behavior ON EMPTY.
type JsonOnClause struct {
	NodeInfo
	Behavior JsonBehavior
	Default  Expression // set for DEFAULT expr
	OnEmpty  bool       // ON EMPTY rather than ON ERROR
}

// JsonNullClause is ABSENT ON NULL or NULL ON NULL.
type JsonNullClause string

// JsonNullClause values.
const (
	JsonNullDefault  JsonNullClause = ""
	JsonAbsentOnNull JsonNullClause = "ABSENT ON NULL"
	JsonNullOnNull   JsonNullClause = "NULL ON NULL"
)

// JsonValueFunction is JSON_VALUE(doc, path [PASSING ...] [RETURNING type] [on clauses]).
type JsonValueFunction struct {
	NodeInfo
	Expr      Expression
	Path      Expression
	Passing   []*JsonPassing
	Returning *CastTarget
	On        []*JsonOnClause
}

func (*JsonValueFunction) exprNode() {}

// JsonQueryFunction is JSON_QUERY(doc, path [PASSING ...] [wrapper] [on clauses]).
// Wrapper is the wrapper clause as written in canonical upper case, for
// example "WITH CONDITIONAL ARRAY WRAPPER"; empty when absent.
type JsonQueryFunction struct {
	NodeInfo
	Expr    Expression
	Path    Expression
	Passing []*JsonPassing
	Wrapper string
	On      []*JsonOnClause
}

func (*JsonQueryFunction) exprNode() {}

// JsonExistsFunction is JSON_EXISTS(doc, path [PASSING ...] [behavior ON ERROR]).
type JsonExistsFunction struct {
	NodeInfo
	Expr    Expression
	Path    Expression
	Passing []*JsonPassing
	OnError *JsonOnClause
}

func (*JsonExistsFunction) exprNode() {}

// JsonArrayFunction is JSON_ARRAY([values] [null clause]).
type JsonArrayFunction struct {
	NodeInfo
	Values []ExpressionOrPredicate
	Nulls  JsonNullClause
}

func (*JsonArrayFunction) exprNode() {}

// JsonEntrySyntax records how a JSON_OBJECT entry was written.
type JsonEntrySyntax string

// JsonEntrySyntax values.
const (
	JsonEntryKeyValue JsonEntrySyntax = "KEY VALUE" // [KEY] k VALUE v
	JsonEntryColon    JsonEntrySyntax = ":"         // k : v
	JsonEntryComma    JsonEntrySyntax = ","         // k, v
)

// JsonObjectEntry is one key/value pair of JSON_OBJECT.
type JsonObjectEntry struct {
	NodeInfo
	Syntax  JsonEntrySyntax
	KeyWord bool // leading KEY written
	Key     ExpressionOrPredicate
	Value   ExpressionOrPredicate
}

// JsonObjectFunction is JSON_OBJECT([entries] [null clause]).
type JsonObjectFunction struct {
	NodeInfo
	Entries []*JsonObjectEntry
	Nulls   JsonNullClause
}

func (*JsonObjectFunction) exprNode() {}

// JsonArrayAggFunction is JSON_ARRAYAGG(expr [null clause] [ORDER BY ...]) [FILTER].
type JsonArrayAggFunction struct {
	NodeInfo
	Expr      ExpressionOrPredicate
	Nulls     JsonNullClause
	OrderBy   []*SortSpecification
	Modifiers *FunctionModifiers
}

func (*JsonArrayAggFunction) exprNode() {}

// JsonUniqueKeys is WITH UNIQUE KEYS or WITHOUT UNIQUE KEYS.
type JsonUniqueKeys string

// JsonUniqueKeys values.
const (
	JsonUniqueDefault     JsonUniqueKeys = ""
	JsonWithUniqueKeys    JsonUniqueKeys = "WITH UNIQUE KEYS"
	JsonWithoutUniqueKeys JsonUniqueKeys = "WITHOUT UNIQUE KEYS"
)

// JsonObjectAggFunction is JSON_OBJECTAGG([KEY] k VALUE|: v [null clause] [unique keys]) [FILTER].
type JsonObjectAggFunction struct {
	NodeInfo
	KeyWord    bool
	Key        ExpressionOrPredicate
	Colon      bool // written k : v
	Value      ExpressionOrPredicate
	Nulls      JsonNullClause
	UniqueKeys JsonUniqueKeys
	Modifiers  *FunctionModifiers
}

func (*JsonObjectAggFunction) exprNode() {}

// JsonColumnKind classifies a JSON_TABLE column definition.
type JsonColumnKind string

// JsonColumnKind values.
const (
	JsonColumnOrdinality JsonColumnKind = "ORDINALITY"
	JsonColumnQuery      JsonColumnKind = "JSON"
	JsonColumnExists     JsonColumnKind = "EXISTS"
	JsonColumnValue      JsonColumnKind = "VALUE"
	JsonColumnNested     JsonColumnKind = "NESTED"
)

// JsonTableColumn is one column of a JSON_TABLE COLUMNS clause.
type JsonTableColumn struct {
	NodeInfo
	Kind    JsonColumnKind
	Name    *Identifier // nil for NESTED
	Type    *CastTarget // VALUE and EXISTS columns
	Path    *Literal
	Wrapper string
	On      []*JsonOnClause
	Columns []*JsonTableColumn // NESTED only
}

// JsonTableFunction is JSON_TABLE(doc [, path] [PASSING ...] COLUMNS(...) [ERROR|NULL ON ERROR]).
type JsonTableFunction struct {
	NodeInfo
	Expr    Expression
	Path    Expression
	Passing []*JsonPassing
	Columns []*JsonTableColumn
	OnError *JsonOnClause
}

func (*JsonTableFunction) exprNode() {}

// ---------- XML functions ----------

// XmlNamedValue is "value [AS name]" inside XMLATTRIBUTES and XMLFOREST.
type XmlNamedValue struct {
	NodeInfo
	Value ExpressionOrPredicate
	Name  *Identifier
}

// XmlElementFunction is XMLELEMENT(NAME n [, XMLATTRIBUTES(...)] [, content...]).
type XmlElementFunction struct {
	NodeInfo
	Name       *Identifier
	Attributes []*XmlNamedValue
	Content    []ExpressionOrPredicate
}

func (*XmlElementFunction) exprNode() {}

// XmlForestFunction is XMLFOREST(value [AS name], ...).
type XmlForestFunction struct {
	NodeInfo
	Items []*XmlNamedValue
}

func (*XmlForestFunction) exprNode() {}

// XmlPiFunction is XMLPI(NAME n [, content]).
type XmlPiFunction struct {
	NodeInfo
	Name    *Identifier
	Content Expression
}

func (*XmlPiFunction) exprNode() {}

// XmlQueryFunction is XMLQUERY(query PASSING doc).
type XmlQueryFunction struct {
	NodeInfo
	Query   Expression
	Passing Expression
}

func (*XmlQueryFunction) exprNode() {}

// XmlExistsFunction is XMLEXISTS(query PASSING doc).
type XmlExistsFunction struct {
	NodeInfo
	Query   Expression
	Passing Expression
}

func (*XmlExistsFunction) exprNode() {}

// XmlAggFunction is XMLAGG(expr [ORDER BY ...]) with optional modifiers.
type XmlAggFunction struct {
	NodeInfo
	Expr      Expression
	OrderBy   []*SortSpecification
	Modifiers *FunctionModifiers
}

func (*XmlAggFunction) exprNode() {}

// XmlColumnKind classifies an XMLTABLE column definition.
type XmlColumnKind string

// XmlColumnKind values.
const (
	XmlColumnOrdinality XmlColumnKind = "ORDINALITY"
	XmlColumnXML        XmlColumnKind = "XML"
	XmlColumnValue      XmlColumnKind = "VALUE"
)

// XmlTableColumn is one column of an XMLTABLE COLUMNS clause.
type XmlTableColumn struct {
	NodeInfo
	Kind    XmlColumnKind
	Name    *Identifier
	Type    *CastTarget
	Path    *Literal
	Default Expression
}

// XmlTableFunction is XMLTABLE(query PASSING doc COLUMNS ...).
type XmlTableFunction struct {
	NodeInfo
	Query   Expression
	Passing Expression
	Columns []*XmlTableColumn
}

func (*XmlTableFunction) exprNode() {}
