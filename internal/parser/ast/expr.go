package ast

// Name is an identifier reference: a, total, _x.
type Name struct {
	ID string
}

// Num is a numeric literal. The language has one numeric type, so integers
// and floats both land in a float64.
type Num struct {
	Value float64
}

// Str is a string literal. Value holds the decoded contents, quotes
// stripped and escapes resolved.
type Str struct {
	Value string
}

// Bool is a True or False literal.
type Bool struct {
	Value bool
}

// NoneLit is the None literal.
type NoneLit struct{}

// BinOp is a binary arithmetic or bitwise operation: left op right.
// Op is the operator spelling: + - * / // % @ << >> & | ^ **.
type BinOp struct {
	Left  Expr
	Op    string
	Right Expr
}

// UnaryOp is a prefix operation. Op is one of + - ~ not.
type UnaryOp struct {
	Op      string
	Operand Expr
}

// BoolOp is a run of the same boolean operator: a and b and c.
//
// Op is "and" or "or" and Values holds at least two operands. The parser
// flattens consecutive uses of one operator into a single node; a change of
// operator starts a new node, so `a or b and c` nests rather than extends.
type BoolOp struct {
	Op     string
	Values []Expr
}

// Compare is a chained comparison: left ops[0] comparators[0] ops[1] ...
//
// Ops and Comparators are parallel and hold at least one element each, so
// `a < b <= c` is one node with two operators and two comparators.
type Compare struct {
	Left        Expr
	Ops         []string
	Comparators []Expr
}

// Call is a function call. Args are the positional arguments in source
// order; Keywords holds name=value arguments.
type Call struct {
	Func     Expr
	Args     []Expr
	Keywords []*KeywordArg
}

// KeywordArg is a name=value argument inside a call's argument list.
// It is an auxiliary node, not an Expr: it cannot appear on its own.
type KeywordArg struct {
	Name  string
	Value Expr
}

// Attribute is a field access: value.attr.
type Attribute struct {
	Value Expr
	Attr  string
}

// Subscript is an index access: value[index]. Index is always wrapped in a
// Slice even for plain subscripts, keeping one downstream shape for both
// `a[i]` and future `a[i:j:k]` forms.
type Subscript struct {
	Value Expr
	Index *Slice
}

// Slice is a start:stop:step triple; any component may be nil.
type Slice struct {
	Start Expr
	Stop  Expr
	Step  Expr
}

func (*Name) exprNode()      {}
func (*Num) exprNode()       {}
func (*Str) exprNode()       {}
func (*Bool) exprNode()      {}
func (*NoneLit) exprNode()   {}
func (*BinOp) exprNode()     {}
func (*UnaryOp) exprNode()   {}
func (*BoolOp) exprNode()    {}
func (*Compare) exprNode()   {}
func (*Call) exprNode()      {}
func (*Attribute) exprNode() {}
func (*Subscript) exprNode() {}
