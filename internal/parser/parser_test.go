package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hassan/minipy/internal/lexer"
	"github.com/hassan/minipy/internal/parser/ast"
	"github.com/hassan/minipy/internal/symtab"
)

// parseSource lexes and parses source, failing the test on any fault, and
// returns both the tree and the parser for scope inspection.
func parseSource(t *testing.T, source string) (*ast.Program, *Parser) {
	t.Helper()
	tokens, err := lexer.New(source).Tokenize()
	require.NoError(t, err)
	p, err := New(tokens)
	require.NoError(t, err)
	program, err := p.Parse()
	require.NoError(t, err)
	return program, p
}

// parseFault lexes and parses source expecting a parse-stage error.
func parseFault(t *testing.T, source string) error {
	t.Helper()
	tokens, err := lexer.New(source).Tokenize()
	require.NoError(t, err)
	p, err := New(tokens)
	require.NoError(t, err)
	_, err = p.Parse()
	require.Error(t, err)
	return err
}

// onlyStmt asserts the program has exactly one statement and returns it.
func onlyStmt(t *testing.T, program *ast.Program) ast.Stmt {
	t.Helper()
	require.Len(t, program.Body, 1)
	return program.Body[0]
}

// exprOf unwraps the single expression statement of a one-line program.
func exprOf(t *testing.T, source string) ast.Expr {
	t.Helper()
	program, _ := parseSource(t, source)
	stmt, ok := onlyStmt(t, program).(*ast.ExprStmt)
	require.True(t, ok, "expected *ast.ExprStmt, got %T", program.Body[0])
	return stmt.Value
}

func TestParser_EmptyTokenSlice(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

func TestParser_Assignment(t *testing.T) {
	program, _ := parseSource(t, "x = 1\n")

	assign, ok := onlyStmt(t, program).(*ast.Assign)
	require.True(t, ok)
	require.Len(t, assign.Targets, 1)

	name, ok := assign.Targets[0].(*ast.Name)
	require.True(t, ok)
	require.Equal(t, "x", name.ID)

	num, ok := assign.Value.(*ast.Num)
	require.True(t, ok)
	require.Equal(t, 1.0, num.Value)
}

func TestParser_AugmentedAssignment(t *testing.T) {
	tests := []struct {
		source string
		op     string
	}{
		{"x += 1\n", "+="},
		{"x -= 1\n", "-="},
		{"x //= 2\n", "//="},
		{"x **= 2\n", "**="},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			program, _ := parseSource(t, "x = 0\n"+tt.source)
			require.Len(t, program.Body, 2)

			aug, ok := program.Body[1].(*ast.AugAssign)
			require.True(t, ok)
			require.Equal(t, tt.op, aug.Op)

			name, ok := aug.Target.(*ast.Name)
			require.True(t, ok)
			require.Equal(t, "x", name.ID)
		})
	}
}

func TestParser_AssignmentTargets(t *testing.T) {
	program, _ := parseSource(t, "a.b = 1\nc[0] = 2\n")

	_, ok := program.Body[0].(*ast.Assign).Targets[0].(*ast.Attribute)
	require.True(t, ok)
	_, ok = program.Body[1].(*ast.Assign).Targets[0].(*ast.Subscript)
	require.True(t, ok)
}

func TestParser_NonAssignableTarget(t *testing.T) {
	err := parseFault(t, "1 = 2\n")

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Contains(t, parseErr.Message, "not assignable")
}

func TestParser_ChainedComparisonIsOneNode(t *testing.T) {
	cmp, ok := exprOf(t, "a < b < c\n").(*ast.Compare)
	require.True(t, ok)

	require.Equal(t, []string{"<", "<"}, cmp.Ops)
	require.Len(t, cmp.Comparators, 2)

	left, ok := cmp.Left.(*ast.Name)
	require.True(t, ok)
	require.Equal(t, "a", left.ID)
}

func TestParser_MixedComparisonOperators(t *testing.T) {
	cmp, ok := exprOf(t, "a < b <= c != d\n").(*ast.Compare)
	require.True(t, ok)
	require.Equal(t, []string{"<", "<=", "!="}, cmp.Ops)
	require.Len(t, cmp.Comparators, 3)
}

func TestParser_BoolOpFlattening(t *testing.T) {
	b, ok := exprOf(t, "a and b and c\n").(*ast.BoolOp)
	require.True(t, ok)
	require.Equal(t, "and", b.Op)
	require.Len(t, b.Values, 3)
}

func TestParser_BoolOpOperatorChangeNests(t *testing.T) {
	// `or` binds weaker than `and`, so this is a or (b and c): the outer
	// node has two operands, not three.
	b, ok := exprOf(t, "a or b and c\n").(*ast.BoolOp)
	require.True(t, ok)
	require.Equal(t, "or", b.Op)
	require.Len(t, b.Values, 2)

	inner, ok := b.Values[1].(*ast.BoolOp)
	require.True(t, ok)
	require.Equal(t, "and", inner.Op)
	require.Len(t, inner.Values, 2)
}

func TestParser_NotIsRightRecursive(t *testing.T) {
	outer, ok := exprOf(t, "not not a\n").(*ast.UnaryOp)
	require.True(t, ok)
	require.Equal(t, "not", outer.Op)

	inner, ok := outer.Operand.(*ast.UnaryOp)
	require.True(t, ok)
	require.Equal(t, "not", inner.Op)
}

func TestParser_ArithmeticPrecedence(t *testing.T) {
	// a + b * c parses as a + (b * c).
	add, ok := exprOf(t, "a + b * c\n").(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "+", add.Op)

	mul, ok := add.Right.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "*", mul.Op)
}

func TestParser_SubtractionIsLeftAssociative(t *testing.T) {
	// a - b - c parses as (a - b) - c.
	outer, ok := exprOf(t, "a - b - c\n").(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "-", outer.Op)

	inner, ok := outer.Left.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "-", inner.Op)
}

func TestParser_PowerIsRightAssociative(t *testing.T) {
	// 2 ** 3 ** 2 parses as 2 ** (3 ** 2).
	outer, ok := exprOf(t, "2 ** 3 ** 2\n").(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "**", outer.Op)

	right, ok := outer.Right.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "**", right.Op)
}

func TestParser_UnaryMinusBindsLooserThanPower(t *testing.T) {
	// -2 ** 2 parses as -(2 ** 2).
	neg, ok := exprOf(t, "-2 ** 2\n").(*ast.UnaryOp)
	require.True(t, ok)
	require.Equal(t, "-", neg.Op)

	_, ok = neg.Operand.(*ast.BinOp)
	require.True(t, ok)
}

func TestParser_ParenthesesOverridePrecedence(t *testing.T) {
	mul, ok := exprOf(t, "(a + b) * c\n").(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "*", mul.Op)

	add, ok := mul.Left.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "+", add.Op)
}

func TestParser_Literals(t *testing.T) {
	program, _ := parseSource(t, "True\nFalse\nNone\n\"hi\"\n3.5\n")
	require.Len(t, program.Body, 5)

	b := program.Body[0].(*ast.ExprStmt).Value.(*ast.Bool)
	require.True(t, b.Value)
	b = program.Body[1].(*ast.ExprStmt).Value.(*ast.Bool)
	require.False(t, b.Value)
	_, ok := program.Body[2].(*ast.ExprStmt).Value.(*ast.NoneLit)
	require.True(t, ok)
	s := program.Body[3].(*ast.ExprStmt).Value.(*ast.Str)
	require.Equal(t, "hi", s.Value)
	n := program.Body[4].(*ast.ExprStmt).Value.(*ast.Num)
	require.Equal(t, 3.5, n.Value)
}

func TestParser_CallArguments(t *testing.T) {
	call, ok := exprOf(t, "f(1, x, key=2)\n").(*ast.Call)
	require.True(t, ok)

	fn, ok := call.Func.(*ast.Name)
	require.True(t, ok)
	require.Equal(t, "f", fn.ID)

	require.Len(t, call.Args, 2)
	require.Len(t, call.Keywords, 1)
	require.Equal(t, "key", call.Keywords[0].Name)
}

func TestParser_CallTrailingComma(t *testing.T) {
	call, ok := exprOf(t, "f(1, 2,)\n").(*ast.Call)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
}

func TestParser_PostfixTrailersChain(t *testing.T) {
	// a.b(c)[0] applies trailers left to right.
	sub, ok := exprOf(t, "a.b(c)[0]\n").(*ast.Subscript)
	require.True(t, ok)

	call, ok := sub.Value.(*ast.Call)
	require.True(t, ok)

	attr, ok := call.Func.(*ast.Attribute)
	require.True(t, ok)
	require.Equal(t, "b", attr.Attr)
}

func TestParser_SubscriptWrapsIndexInSlice(t *testing.T) {
	sub, ok := exprOf(t, "a[i]\n").(*ast.Subscript)
	require.True(t, ok)
	require.NotNil(t, sub.Index)
	require.NotNil(t, sub.Index.Start)
	require.Nil(t, sub.Index.Stop)
	require.Nil(t, sub.Index.Step)
}

func TestParser_ElifChainsNestRightward(t *testing.T) {
	source := "if a:\n    x = 1\nelif b:\n    x = 2\nelse:\n    x = 3\n"
	program, _ := parseSource(t, source)

	outer, ok := onlyStmt(t, program).(*ast.If)
	require.True(t, ok)
	require.Len(t, outer.Body, 1)
	require.Len(t, outer.Orelse, 1)

	inner, ok := outer.Orelse[0].(*ast.If)
	require.True(t, ok)
	require.Len(t, inner.Body, 1)
	require.Len(t, inner.Orelse, 1)

	_, ok = inner.Orelse[0].(*ast.Assign)
	require.True(t, ok)
}

func TestParser_IfWithoutElse(t *testing.T) {
	program, _ := parseSource(t, "if a:\n    x = 1\n")

	node, ok := onlyStmt(t, program).(*ast.If)
	require.True(t, ok)
	require.Empty(t, node.Orelse)
}

func TestParser_InlineBlock(t *testing.T) {
	program, _ := parseSource(t, "if x: y = 1\n")

	node, ok := onlyStmt(t, program).(*ast.If)
	require.True(t, ok)
	require.Len(t, node.Body, 1)
}

func TestParser_WhileWithElse(t *testing.T) {
	source := "while x:\n    x -= 1\nelse:\n    y = 0\n"
	program, _ := parseSource(t, source)

	node, ok := onlyStmt(t, program).(*ast.While)
	require.True(t, ok)
	require.Len(t, node.Body, 1)
	require.Len(t, node.Orelse, 1)
}

func TestParser_ForLoop(t *testing.T) {
	program, _ := parseSource(t, "for i in xs:\n    y = i\n")

	node, ok := onlyStmt(t, program).(*ast.For)
	require.True(t, ok)

	target, ok := node.Target.(*ast.Name)
	require.True(t, ok)
	require.Equal(t, "i", target.ID)

	iter, ok := node.Iter.(*ast.Name)
	require.True(t, ok)
	require.Equal(t, "xs", iter.ID)
	require.Len(t, node.Body, 1)
}

func TestParser_SimpleStatements(t *testing.T) {
	source := "while x:\n    pass\n    break\n    continue\n"
	program, _ := parseSource(t, source)

	node := onlyStmt(t, program).(*ast.While)
	require.Len(t, node.Body, 3)
	_, ok := node.Body[0].(*ast.Pass)
	require.True(t, ok)
	_, ok = node.Body[1].(*ast.Break)
	require.True(t, ok)
	_, ok = node.Body[2].(*ast.Continue)
	require.True(t, ok)
}

func TestParser_Return(t *testing.T) {
	source := "def f():\n    return\n\ndef g():\n    return 1 + 2\n"
	program, _ := parseSource(t, source)
	require.Len(t, program.Body, 2)

	f := program.Body[0].(*ast.FunctionDef)
	ret, ok := f.Body[0].(*ast.Return)
	require.True(t, ok)
	require.Nil(t, ret.Value)

	g := program.Body[1].(*ast.FunctionDef)
	ret, ok = g.Body[0].(*ast.Return)
	require.True(t, ok)
	require.NotNil(t, ret.Value)
}

func TestParser_FunctionDef(t *testing.T) {
	program, p := parseSource(t, "def add(a, b):\n    return a + b\n")

	fn, ok := onlyStmt(t, program).(*ast.FunctionDef)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	require.Equal(t, "a", fn.Params[0].Name)
	require.Equal(t, "b", fn.Params[1].Name)

	// The function name lives in the global scope; the parameters live in
	// the function's own scope.
	scopes := p.Scopes().Scopes()
	require.Len(t, scopes, 2)

	global := scopes[0]
	require.Equal(t, "global", global.Name)
	entry := global.LookupLocal("add")
	require.NotNil(t, entry)
	require.Equal(t, symtab.KindFunction, entry.Kind)

	funcScope := scopes[1]
	require.Equal(t, "func add", funcScope.Name)
	require.NotNil(t, funcScope.LookupLocal("a"))
	require.NotNil(t, funcScope.LookupLocal("b"))
	require.Nil(t, global.LookupLocal("a"))
}

func TestParser_FunctionTrailingCommaInParams(t *testing.T) {
	program, _ := parseSource(t, "def f(a, b,):\n    return a\n")

	fn := onlyStmt(t, program).(*ast.FunctionDef)
	require.Len(t, fn.Params, 2)
}

func TestParser_DuplicateParameterFault(t *testing.T) {
	err := parseFault(t, "def f(a, a):\n    return a\n")

	var redef *symtab.RedefinedError
	require.True(t, errors.As(err, &redef))
	require.Equal(t, "a", redef.Name)
	require.Equal(t, "func f", redef.Scope)
	require.Contains(t, err.Error(), "line 1")
}

func TestParser_ShadowingAcrossScopesIsLegal(t *testing.T) {
	source := "x = 1\ndef f(x):\n    x = 2\n    return x\n"
	program, p := parseSource(t, source)
	require.Len(t, program.Body, 2)

	scopes := p.Scopes().Scopes()
	require.Len(t, scopes, 2)

	// Both scopes declare x independently; the parameter is not clobbered
	// by the body's assignment.
	require.Equal(t, symtab.KindVariable, scopes[0].LookupLocal("x").Kind)
	require.Equal(t, symtab.KindParameter, scopes[1].LookupLocal("x").Kind)
}

func TestParser_ReassignmentDoesNotRedeclare(t *testing.T) {
	_, p := parseSource(t, "x = 1\nx = 2\n")

	global := p.Scopes().Scopes()[0]
	require.Equal(t, 1, global.Len())
}

func TestParser_NestedFunctionScopes(t *testing.T) {
	source := "def outer(a):\n    def inner(b):\n        return b\n    return inner\n"
	_, p := parseSource(t, source)

	scopes := p.Scopes().Scopes()
	require.Len(t, scopes, 3)
	require.Equal(t, "func outer", scopes[1].Name)
	require.Equal(t, "func inner", scopes[2].Name)

	// inner is declared in outer's scope, not in global.
	require.Nil(t, scopes[0].LookupLocal("inner"))
	require.NotNil(t, scopes[1].LookupLocal("inner"))
}

func TestParser_TopLevelIndentFault(t *testing.T) {
	err := parseFault(t, "    x = 1\n")

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Contains(t, parseErr.Message, "unexpected INDENT at top level")
}

func TestParser_MissingColonFault(t *testing.T) {
	err := parseFault(t, "if x\n    y = 1\n")

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Contains(t, parseErr.Message, "expected COLON")
}

func TestParser_DanglingOperatorFault(t *testing.T) {
	err := parseFault(t, "x = 1 +\n")

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Equal(t, 1, parseErr.Line)
}

func TestParser_TypeCommentsAreTrivia(t *testing.T) {
	source := "x = 1  # type: int\ndef f(a):\n    # type: (int) -> int\n    return a\n"
	program, _ := parseSource(t, source)
	require.Len(t, program.Body, 2)
}

func TestParser_BlankLinesBetweenStatements(t *testing.T) {
	program, _ := parseSource(t, "x = 1\n\n\ny = 2\n")
	require.Len(t, program.Body, 2)
}
