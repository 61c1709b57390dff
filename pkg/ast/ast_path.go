package ast

import "strings"

// Path is a navigable reference: *SimplePath or *SyntacticDomainPath.
type Path interface {
	Expression
	pathNode()
}

// SimplePath is identifier(.identifier)*. A bare identifier sequence always
// parses to a SimplePath.
type SimplePath struct {
	NodeInfo
	Parts []*Identifier
}

func (*SimplePath) exprNode() {}
func (*SimplePath) pathNode() {}

// String joins the parts with dots.
func (p *SimplePath) String() string {
	if p == nil {
		return ""
	}
	names := make([]string, len(p.Parts))
	for i, id := range p.Parts {
		names[i] = id.Name
	}
	return strings.Join(names, ".")
}

// SyntacticDomainPath is a path that starts with something other than a
// plain identifier: TREAT, VALUE, KEY, FK, an index or slice, or a function
// call. Continuation holds a trailing .a.b when present.
type SyntacticDomainPath struct {
	NodeInfo
	Head         DomainPathHead
	Continuation *SimplePath
}

func (*SyntacticDomainPath) exprNode() {}
func (*SyntacticDomainPath) pathNode() {}

// DomainPathHead is the leading part of a SyntacticDomainPath.
type DomainPathHead interface {
	Node
	domainPathHead()
}

// TreatPath is TREAT(path AS Subtype).
type TreatPath struct {
	NodeInfo
	Path Path
	Type *SimplePath
}

func (*TreatPath) domainPathHead() {}

// CollectionValuePath is VALUE(path) or ELEMENT(path).
type CollectionValuePath struct {
	NodeInfo
	Element bool // ELEMENT rather than VALUE
	Path    Path
}

func (*CollectionValuePath) domainPathHead() {}

// MapKeyPath is KEY(path) or INDEX(path).
type MapKeyPath struct {
	NodeInfo
	Index bool // INDEX rather than KEY
	Path  Path
}

func (*MapKeyPath) domainPathHead() {}

// ForeignKeyPath is FK(path).
type ForeignKeyPath struct {
	NodeInfo
	Path Path
}

func (*ForeignKeyPath) domainPathHead() {}

// IndexedPath is base[index].
type IndexedPath struct {
	NodeInfo
	Base  Expression
	Index Expression
}

func (*IndexedPath) domainPathHead() {}

// SlicedPath is base[low:high].
type SlicedPath struct {
	NodeInfo
	Base Expression
	Low  Expression
	High Expression
}

func (*SlicedPath) domainPathHead() {}

// FunctionPath is a function call dereferenced with a path continuation,
// as in some_function(x).field.
type FunctionPath struct {
	NodeInfo
	Function Expression
}

func (*FunctionPath) domainPathHead() {}
