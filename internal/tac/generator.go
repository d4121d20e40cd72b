package tac

import (
	"strconv"
	"strings"

	"github.com/hassan/minipy/internal/parser/ast"
)

// InternalError reports an AST node shape the generator does not handle.
// The parser only produces documented shapes, so hitting one of these means
// an invariant broke upstream — it is deliberately a different type from
// the user-facing lexer/parser errors.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return "tac: internal error: " + e.Message
}

// Generator lowers one Program into an instruction sequence.
//
// All state is per-run: Generate resets the instruction list, the
// temporary and label counters, and the loop label stacks, so a Generator
// can be reused and two Generators never interfere. Counters are plain
// fields, never globals, which keeps independent compilations independent.
type Generator struct {
	code       []Instruction
	tempCount  int
	labelCount int

	// breakLabels and continueLabels track the innermost loop's exit and
	// re-entry labels. Pushed once on loop entry, popped once on exit;
	// break/continue resolve against the top.
	breakLabels    []string
	continueLabels []string
}

// NewGenerator creates a Generator ready for its first run.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate lowers the program and returns the instruction sequence. Output
// is deterministic for a fixed tree: temporaries are t1, t2, ... and
// labels count up per run.
func (g *Generator) Generate(program *ast.Program) ([]Instruction, error) {
	g.code = nil
	g.tempCount = 0
	g.labelCount = 0
	g.breakLabels = g.breakLabels[:0]
	g.continueLabels = g.continueLabels[:0]

	for _, stmt := range program.Body {
		if err := g.genStmt(stmt); err != nil {
			return nil, err
		}
	}
	return g.code, nil
}

// ----------------------------------------------------------------------
// Emission helpers
// ----------------------------------------------------------------------

func (g *Generator) emit(in Instruction) {
	g.code = append(g.code, in)
}

func (g *Generator) emitLabel(label string) {
	g.emit(Instruction{Op: OpLabel, Label: label})
}

func (g *Generator) newTemp() string {
	g.tempCount++
	return "t" + strconv.Itoa(g.tempCount)
}

// newLabel mints a fresh label with the given prefix. One counter feeds
// every prefix, so L_else_1 and L_while_start_2 can both exist but no two
// labels ever share a number.
func (g *Generator) newLabel(prefix string) string {
	g.labelCount++
	return prefix + strconv.Itoa(g.labelCount)
}

// ----------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------

func (g *Generator) genStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		// Evaluate for effect, discard the place.
		_, err := g.genExpr(s.Value)
		return err

	case *ast.Assign:
		return g.genAssign(s)

	case *ast.AugAssign:
		return g.genAugAssign(s)

	case *ast.Return:
		return g.genReturn(s)

	case *ast.Pass:
		return nil

	case *ast.Break:
		if len(g.breakLabels) == 0 {
			// Outside any loop the jump has no real target; a sentinel
			// keeps the defect visible in the listing instead of failing
			// the whole run.
			g.emit(Instruction{Op: OpGoto, Result: "__INVALID_BREAK__"})
			return nil
		}
		g.emit(Instruction{Op: OpGoto, Result: g.breakLabels[len(g.breakLabels)-1]})
		return nil

	case *ast.Continue:
		if len(g.continueLabels) == 0 {
			g.emit(Instruction{Op: OpGoto, Result: "__INVALID_CONTINUE__"})
			return nil
		}
		g.emit(Instruction{Op: OpGoto, Result: g.continueLabels[len(g.continueLabels)-1]})
		return nil

	case *ast.If:
		return g.genIf(s)

	case *ast.While:
		return g.genWhile(s)

	case *ast.For:
		return g.genFor(s)

	case *ast.FunctionDef:
		return g.genFunctionDef(s)

	default:
		return &InternalError{Message: "unhandled statement node"}
	}
}

func (g *Generator) genStmts(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if err := g.genStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// genAssign lowers `target = value` to one move into the target's place.
func (g *Generator) genAssign(node *ast.Assign) error {
	valuePlace, err := g.genExpr(node.Value)
	if err != nil {
		return err
	}
	if len(node.Targets) == 0 {
		return nil
	}

	targetPlace, err := g.lvaluePlace(node.Targets[0])
	if err != nil {
		return err
	}
	g.emit(Instruction{Op: OpMove, Arg1: valuePlace, Result: targetPlace})
	return nil
}

// genAugAssign lowers `target op= value` to three instructions: combine
// the target's current value with the right-hand side using the base
// operator (the augmented spelling with its trailing '=' stripped) into a
// fresh temporary, then move the temporary back.
func (g *Generator) genAugAssign(node *ast.AugAssign) error {
	targetPlace, err := g.lvaluePlace(node.Target)
	if err != nil {
		return err
	}
	rightPlace, err := g.genExpr(node.Value)
	if err != nil {
		return err
	}

	opBase := strings.TrimSuffix(node.Op, "=")
	t := g.newTemp()
	g.emit(Instruction{Op: opBase, Arg1: targetPlace, Arg2: rightPlace, Result: t})
	g.emit(Instruction{Op: OpMove, Arg1: t, Result: targetPlace})
	return nil
}

func (g *Generator) genReturn(node *ast.Return) error {
	if node.Value == nil {
		g.emit(Instruction{Op: OpReturn})
		return nil
	}
	place, err := g.genExpr(node.Value)
	if err != nil {
		return err
	}
	g.emit(Instruction{Op: OpReturn, Arg1: place})
	return nil
}

// genIf lowers a conditional:
//
//	          <test>
//	          if_false t goto L_else_N
//	          <body>
//	          goto L_end_if_N      (only when an else branch exists)
//	L_else_N:
//	          <orelse>
//	L_end_if_N:                    (only when an else branch exists)
//
// With no else branch the else label alone serves as the fallthrough
// target. elif chains need no handling here: the parser nests them into
// Orelse, so they arrive as a regular If statement inside the branch.
func (g *Generator) genIf(node *ast.If) error {
	condPlace, err := g.genExpr(node.Test)
	if err != nil {
		return err
	}
	labelElse := g.newLabel("L_else_")
	labelEnd := g.newLabel("L_end_if_")

	g.emit(Instruction{Op: OpIfFalseGoto, Arg1: condPlace, Result: labelElse})

	if err := g.genStmts(node.Body); err != nil {
		return err
	}

	if len(node.Orelse) > 0 {
		g.emit(Instruction{Op: OpGoto, Result: labelEnd})
	}

	g.emitLabel(labelElse)

	if err := g.genStmts(node.Orelse); err != nil {
		return err
	}

	if len(node.Orelse) > 0 {
		g.emitLabel(labelEnd)
	}
	return nil
}

// genWhile lowers a while loop:
//
//	L_while_start_N:
//	          <test>
//	          if_false t goto L_while_end_N
//	          <body>
//	          goto L_while_start_N
//	L_while_end_N:
//
// continue resolves to the start label and break to the end label through
// the loop label stacks. The loop's else branch is not lowered.
func (g *Generator) genWhile(node *ast.While) error {
	labelStart := g.newLabel("L_while_start_")
	labelEnd := g.newLabel("L_while_end_")

	g.continueLabels = append(g.continueLabels, labelStart)
	g.breakLabels = append(g.breakLabels, labelEnd)

	g.emitLabel(labelStart)
	condPlace, err := g.genExpr(node.Test)
	if err != nil {
		return err
	}
	g.emit(Instruction{Op: OpIfFalseGoto, Arg1: condPlace, Result: labelEnd})

	err = g.genStmts(node.Body)

	if err == nil {
		g.emit(Instruction{Op: OpGoto, Result: labelStart})
		g.emitLabel(labelEnd)
	}

	// Pop even on a failed body so the stacks stay balanced.
	g.continueLabels = g.continueLabels[:len(g.continueLabels)-1]
	g.breakLabels = g.breakLabels[:len(g.breakLabels)-1]
	return err
}

// genFor lowers iteration to an index-driven loop over an abstract
// sequence protocol:
//
//	          t_idx = 0
//	          t_len = len <iter>
//	L_for_start_N:
//	          t_cond = t_idx < t_len
//	          if_false t_cond goto L_for_end_N
//	          t_val = <iter>[t_idx]
//	          <target> = t_val
//	          <body>
//	          t_idx = t_idx + 1
//	          goto L_for_start_N
//	L_for_end_N:
//
// This is an approximation of iteration, not an iterator protocol; it is
// the documented shape of this IR.
func (g *Generator) genFor(node *ast.For) error {
	iterPlace, err := g.genExpr(node.Iter)
	if err != nil {
		return err
	}
	idx := g.newTemp()
	length := g.newTemp()

	g.emit(Instruction{Op: OpMove, Arg1: "0", Result: idx, Comment: "for index"})
	g.emit(Instruction{Op: OpLen, Arg1: iterPlace, Result: length, Comment: "len(iter)"})

	labelStart := g.newLabel("L_for_start_")
	labelEnd := g.newLabel("L_for_end_")

	g.continueLabels = append(g.continueLabels, labelStart)
	g.breakLabels = append(g.breakLabels, labelEnd)

	err = g.genForBody(node, iterPlace, idx, length, labelStart, labelEnd)

	g.continueLabels = g.continueLabels[:len(g.continueLabels)-1]
	g.breakLabels = g.breakLabels[:len(g.breakLabels)-1]
	return err
}

func (g *Generator) genForBody(node *ast.For, iterPlace, idx, length, labelStart, labelEnd string) error {
	g.emitLabel(labelStart)

	cond := g.newTemp()
	g.emit(Instruction{Op: "<", Arg1: idx, Arg2: length, Result: cond})
	g.emit(Instruction{Op: OpIfFalseGoto, Arg1: cond, Result: labelEnd})

	valueTemp := g.newTemp()
	g.emit(Instruction{Op: OpLoadIndex, Arg1: iterPlace, Arg2: idx, Result: valueTemp})

	targetPlace, err := g.lvaluePlace(node.Target)
	if err != nil {
		return err
	}
	g.emit(Instruction{Op: OpMove, Arg1: valueTemp, Result: targetPlace})

	if err := g.genStmts(node.Body); err != nil {
		return err
	}

	t := g.newTemp()
	g.emit(Instruction{Op: "+", Arg1: idx, Arg2: "1", Result: t})
	g.emit(Instruction{Op: OpMove, Arg1: t, Result: idx})

	g.emit(Instruction{Op: OpGoto, Result: labelStart})
	g.emitLabel(labelEnd)
	return nil
}

// genFunctionDef frames the body between begin/end markers:
//
//	func_begin <name>
//	param <p>          (one per formal parameter, documentation only)
//	<body>
//	return             (unconditional implicit return)
//	func_end <name>
//
// The implicit return is appended even when the body already returns on
// every path, guaranteeing an exit instruction without any flow analysis.
func (g *Generator) genFunctionDef(node *ast.FunctionDef) error {
	g.emit(Instruction{Op: OpFuncBegin, Result: node.Name})

	for _, param := range node.Params {
		g.emit(Instruction{Op: OpParam, Arg1: param.Name, Comment: "func param"})
	}

	if err := g.genStmts(node.Body); err != nil {
		return err
	}

	g.emit(Instruction{Op: OpReturn, Comment: "implicit return"})
	g.emit(Instruction{Op: OpFuncEnd, Result: node.Name})
	return nil
}

// ----------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------

// genExpr lowers an expression and returns the place holding its value.
// Terminal expressions (names and literals) emit nothing and resolve
// directly to their textual place.
func (g *Generator) genExpr(expr ast.Expr) (string, error) {
	switch e := expr.(type) {
	case *ast.Name:
		return e.ID, nil

	case *ast.Num:
		return formatNum(e.Value), nil

	case *ast.Str:
		return strconv.Quote(e.Value), nil

	case *ast.Bool:
		if e.Value {
			return "True", nil
		}
		return "False", nil

	case *ast.NoneLit:
		return "None", nil

	case *ast.BinOp:
		return g.genBinOp(e)

	case *ast.UnaryOp:
		return g.genUnaryOp(e)

	case *ast.BoolOp:
		return g.genBoolOp(e)

	case *ast.Compare:
		return g.genCompare(e)

	case *ast.Call:
		return g.genCall(e)

	case *ast.Attribute:
		return g.genAttribute(e)

	case *ast.Subscript:
		return g.genSubscript(e)

	default:
		return "", &InternalError{Message: "unhandled expression node"}
	}
}

func (g *Generator) genBinOp(node *ast.BinOp) (string, error) {
	leftPlace, err := g.genExpr(node.Left)
	if err != nil {
		return "", err
	}
	rightPlace, err := g.genExpr(node.Right)
	if err != nil {
		return "", err
	}
	result := g.newTemp()
	g.emit(Instruction{Op: node.Op, Arg1: leftPlace, Arg2: rightPlace, Result: result})
	return result, nil
}

func (g *Generator) genUnaryOp(node *ast.UnaryOp) (string, error) {
	operandPlace, err := g.genExpr(node.Operand)
	if err != nil {
		return "", err
	}
	result := g.newTemp()
	g.emit(Instruction{Op: node.Op, Arg1: operandPlace, Result: result})
	return result, nil
}

// genBoolOp lowers `v1 op v2 op v3` without short-circuiting: every
// operand is evaluated unconditionally in order and folded left-to-right
// into temporaries, so an n-operand chain emits n-1 combining
// instructions. This is an intentional property of this IR, not an
// oversight.
func (g *Generator) genBoolOp(node *ast.BoolOp) (string, error) {
	if len(node.Values) == 0 {
		return "False", nil
	}

	acc, err := g.genExpr(node.Values[0])
	if err != nil {
		return "", err
	}
	for _, value := range node.Values[1:] {
		right, err := g.genExpr(value)
		if err != nil {
			return "", err
		}
		t := g.newTemp()
		g.emit(Instruction{Op: node.Op, Arg1: acc, Arg2: right, Result: t})
		acc = t
	}
	return acc, nil
}

// genCompare lowers `a < b <= c` as a left-to-right pairwise reduction:
//
//	t1 = a < b
//	t2 = t1 <= c
//
// Each comparison feeds its boolean result into the next as the left
// operand, which is NOT the conjunction semantics of a real chained
// comparison (`a < b and b <= c`). A documented approximation.
func (g *Generator) genCompare(node *ast.Compare) (string, error) {
	leftPlace, err := g.genExpr(node.Left)
	if err != nil {
		return "", err
	}
	if len(node.Ops) == 0 {
		return leftPlace, nil
	}

	current := leftPlace
	for i, op := range node.Ops {
		rightPlace, err := g.genExpr(node.Comparators[i])
		if err != nil {
			return "", err
		}
		t := g.newTemp()
		g.emit(Instruction{Op: op, Arg1: current, Arg2: rightPlace, Result: t})
		current = t
	}
	return current, nil
}

// genCall pushes the positional arguments, then emits the call:
//
//	param a1
//	...
//	t = call f, n
//
// Arguments are all evaluated before any param is pushed, so nested calls
// inside the arguments cannot interleave their params with ours. Keyword
// arguments survive parsing but are NOT represented here; the count covers
// positional arguments only.
func (g *Generator) genCall(node *ast.Call) (string, error) {
	argPlaces := make([]string, 0, len(node.Args))
	for _, arg := range node.Args {
		place, err := g.genExpr(arg)
		if err != nil {
			return "", err
		}
		argPlaces = append(argPlaces, place)
	}

	for _, place := range argPlaces {
		g.emit(Instruction{Op: OpParam, Arg1: place})
	}

	funcPlace, err := g.genExpr(node.Func)
	if err != nil {
		return "", err
	}

	result := g.newTemp()
	g.emit(Instruction{
		Op:     OpCall,
		Arg1:   funcPlace,
		Arg2:   strconv.Itoa(len(argPlaces)),
		Result: result,
	})
	return result, nil
}

func (g *Generator) genAttribute(node *ast.Attribute) (string, error) {
	valuePlace, err := g.genExpr(node.Value)
	if err != nil {
		return "", err
	}
	result := g.newTemp()
	g.emit(Instruction{Op: OpGetAttr, Arg1: valuePlace, Arg2: node.Attr, Result: result})
	return result, nil
}

// genSubscript lowers `value[start]` to an indexed load, and any form with
// a stop or step to an opaque slice op carrying a textual descriptor.
func (g *Generator) genSubscript(node *ast.Subscript) (string, error) {
	valuePlace, err := g.genExpr(node.Value)
	if err != nil {
		return "", err
	}
	s := node.Index

	if s.Start != nil && s.Stop == nil && s.Step == nil {
		indexPlace, err := g.genExpr(s.Start)
		if err != nil {
			return "", err
		}
		result := g.newTemp()
		g.emit(Instruction{Op: OpLoadIndex, Arg1: valuePlace, Arg2: indexPlace, Result: result})
		return result, nil
	}

	start, err := g.optionalPlace(s.Start)
	if err != nil {
		return "", err
	}
	stop, err := g.optionalPlace(s.Stop)
	if err != nil {
		return "", err
	}
	step, err := g.optionalPlace(s.Step)
	if err != nil {
		return "", err
	}

	result := g.newTemp()
	descriptor := "(" + start + "," + stop + "," + step + ")"
	g.emit(Instruction{Op: OpSlice, Arg1: valuePlace, Arg2: descriptor, Result: result})
	return result, nil
}

// optionalPlace resolves a possibly-absent slice component, with "None"
// standing in for a missing one.
func (g *Generator) optionalPlace(expr ast.Expr) (string, error) {
	if expr == nil {
		return "None", nil
	}
	return g.genExpr(expr)
}

// ----------------------------------------------------------------------
// Lvalues
// ----------------------------------------------------------------------

// lvaluePlace resolves an assignment target to the place written to.
// Plain names are their own place. Attribute and subscript targets
// compose a synthetic textual place ("base.attr", "base[idx]",
// "base[s:e:st]") — a documented simplification rather than real store
// addressing; evaluating the base may itself emit instructions.
func (g *Generator) lvaluePlace(expr ast.Expr) (string, error) {
	switch e := expr.(type) {
	case *ast.Name:
		return e.ID, nil

	case *ast.Attribute:
		base, err := g.genExpr(e.Value)
		if err != nil {
			return "", err
		}
		return base + "." + e.Attr, nil

	case *ast.Subscript:
		base, err := g.genExpr(e.Value)
		if err != nil {
			return "", err
		}
		s := e.Index
		if s.Start != nil && s.Stop == nil && s.Step == nil {
			indexPlace, err := g.genExpr(s.Start)
			if err != nil {
				return "", err
			}
			return base + "[" + indexPlace + "]", nil
		}
		start, err := g.optionalPlace(s.Start)
		if err != nil {
			return "", err
		}
		stop, err := g.optionalPlace(s.Stop)
		if err != nil {
			return "", err
		}
		step, err := g.optionalPlace(s.Step)
		if err != nil {
			return "", err
		}
		return base + "[" + start + ":" + stop + ":" + step + "]", nil

	default:
		return "", &InternalError{Message: "unhandled assignment target node"}
	}
}

// formatNum renders a numeric literal as a place, using the shortest
// float form: 1 stays "1", 2.5 stays "2.5".
func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
