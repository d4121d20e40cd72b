// Package ast defines the syntax tree node types for the minipy language.
//
// DESIGN PHILOSOPHY:
// The tree is a closed tagged union: one struct per construct, with the
// Stmt and Expr interfaces acting as the two unions. Consumers dispatch
// with exhaustive type switches over these sets; an unexpected dynamic type
// is an internal fault, not something to silently skip.
//
// KEY DESIGN CHOICES:
// - Marker methods (stmtNode, exprNode) close the unions: only types in
//   this package can satisfy Stmt or Expr.
// - No visitor machinery. With a closed node set a type switch is shorter,
//   faster, and the compiler checks case types for us.
// - Nodes carry no source positions. Errors are reported during lexing and
//   parsing, where the offending token is at hand; once a tree exists it is
//   structurally valid.
package ast

// Node is the common type of everything the parser produces: statements,
// expressions, and the handful of auxiliary nodes (Program, Param,
// KeywordArg, Slice) that belong to neither union.
type Node interface{}

// Stmt is the closed union of statement nodes.
//
// A statement performs an action and produces no value: assignments,
// control flow, function definitions, and bare expressions used for their
// side effects.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is the closed union of expression nodes.
//
// An expression produces a value: literals, names, operator applications,
// calls, and the postfix attribute/subscript forms.
type Expr interface {
	Node
	exprNode()
}

// Program is the root of the tree: the ordered statements of one module.
type Program struct {
	Body []Stmt
}
