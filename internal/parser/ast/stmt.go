package ast

// ExprStmt is an expression used as a statement, typically a call.
type ExprStmt struct {
	Value Expr
}

// Assign is a simple assignment: targets = value. Targets is a list for
// future multi-target forms; the grammar currently produces exactly one,
// and it is a Name, Attribute, or Subscript.
type Assign struct {
	Targets []Expr
	Value   Expr
}

// AugAssign is an augmented assignment: target op= value. Op keeps the
// full spelling including the '=', e.g. "+=".
type AugAssign struct {
	Target Expr
	Op     string
	Value  Expr
}

// Return exits the enclosing function. Value is nil for a bare return.
type Return struct {
	Value Expr
}

// Pass is the no-op statement.
type Pass struct{}

// Break exits the innermost loop.
type Break struct{}

// Continue jumps to the next iteration of the innermost loop.
type Continue struct{}

// If is a conditional. An elif chain is represented right-leaning: each
// elif becomes a fresh If that is the sole statement of the previous
// branch's Orelse, and a trailing else fills the innermost Orelse.
type If struct {
	Test   Expr
	Body   []Stmt
	Orelse []Stmt
}

// While is a condition-driven loop. Orelse runs when the loop exits
// normally (the grammar accepts `while ... else`).
type While struct {
	Test   Expr
	Body   []Stmt
	Orelse []Stmt
}

// For iterates target over iter.
type For struct {
	Target Expr
	Iter   Expr
	Body   []Stmt
	Orelse []Stmt
}

// Param is one function parameter.
type Param struct {
	Name string
}

// FunctionDef is a function definition. The name is registered in the
// scope enclosing the def; the parameters live in the function's own scope.
type FunctionDef struct {
	Name   string
	Params []*Param
	Body   []Stmt
}

func (*ExprStmt) stmtNode()    {}
func (*Assign) stmtNode()      {}
func (*AugAssign) stmtNode()   {}
func (*Return) stmtNode()      {}
func (*Pass) stmtNode()        {}
func (*Break) stmtNode()       {}
func (*Continue) stmtNode()    {}
func (*If) stmtNode()          {}
func (*While) stmtNode()       {}
func (*For) stmtNode()         {}
func (*FunctionDef) stmtNode() {}
