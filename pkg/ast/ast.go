// Package ast declares the node types produced by the HQL parser.
//
// The node set is closed. Each category (statements, query bodies, paths,
// expressions, predicates, from roots, join targets, IN lists) is a Go
// interface with an unexported marker method, so consumers can switch on the
// concrete type and rely on the set not growing behind their back.
//
// Trees are built once by the parser and are not mutated afterwards. They
// carry no parent links and may be shared between goroutines.
package ast

import "github.com/tangwind/spring-data-jpa/pkg/token"

// Node is implemented by every AST node.
type Node interface {
	Pos() token.Position
	End() token.Position
}

// NodeInfo carries the source span of a node.
type NodeInfo struct {
	Span token.Span
}

// Pos returns the start of the node.
func (n *NodeInfo) Pos() token.Position { return n.Span.Start }

// End returns the position just past the node.
func (n *NodeInfo) End() token.Position { return n.Span.End }

// GetSpan returns the node's source span.
func (n *NodeInfo) GetSpan() token.Span { return n.Span }

// Statement is a top-level statement.
type Statement interface {
	Node
	stmtNode()
}

// Expression is a value-producing node.
type Expression interface {
	Node
	exprNode()
}

// Predicate is a boolean-valued node.
type Predicate interface {
	Node
	predNode()
}

// ExpressionOrPredicate holds either an Expression or a Predicate. It is used
// where the grammar accepts both, such as select items, function arguments
// and CASE results.
type ExpressionOrPredicate interface {
	Node
}

// Identifier is a name as written in the query. Keywords used in an
// identifier position keep their original spelling.
type Identifier struct {
	NodeInfo
	Name    string
	Quoted  bool // written with backticks
	Keyword bool // the token was a keyword used as a name
}

func (i *Identifier) String() string {
	if i == nil {
		return ""
	}
	return i.Name
}

// IsExpression reports whether n is an Expression.
func IsExpression(n Node) bool {
	_, ok := n.(Expression)
	return ok
}

// IsPredicate reports whether n is a Predicate.
func IsPredicate(n Node) bool {
	_, ok := n.(Predicate)
	return ok
}
