package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders a node (usually the Program root) as an indented structural
// listing for debugging and the driver's tree display:
//
//	Program(
//	  Body = [
//	    Assign(
//	      Targets = [
//	        Name(
//	          ID = "x"
//	        )
//	      ]
//	      Value = Num(
//	        Value = 1
//	      )
//	    )
//	  ]
//	)
//
// DESIGN CHOICE: a hand-written type switch rather than reflection. The
// node set is closed, so the switch stays in lockstep with the package by
// construction, and an unknown dynamic type prints a loud marker instead of
// being half-rendered.
func Dump(node Node) string {
	d := &dumper{}
	d.writeNode(node)
	return d.sb.String()
}

type dumper struct {
	sb     strings.Builder
	indent int
}

func (d *dumper) pad() {
	d.sb.WriteString(strings.Repeat("  ", d.indent))
}

// open writes "Tag(" and a newline, raising the indent for the fields.
func (d *dumper) open(tag string) {
	d.sb.WriteString(tag)
	d.sb.WriteString("(\n")
	d.indent++
}

// close drops the indent and writes the matching ")".
func (d *dumper) close() {
	d.indent--
	d.pad()
	d.sb.WriteString(")")
}

// field writes one "Name = " line whose value is produced by fn.
func (d *dumper) field(name string, fn func()) {
	d.pad()
	d.sb.WriteString(name)
	d.sb.WriteString(" = ")
	fn()
	d.sb.WriteString("\n")
}

func (d *dumper) writeString(s string) {
	d.sb.WriteString(strconv.Quote(s))
}

func (d *dumper) writeFloat(f float64) {
	d.sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
}

func (d *dumper) writeList(items []Node) {
	if len(items) == 0 {
		d.sb.WriteString("[]")
		return
	}
	d.sb.WriteString("[\n")
	d.indent++
	for _, item := range items {
		d.pad()
		d.writeNode(item)
		d.sb.WriteString("\n")
	}
	d.indent--
	d.pad()
	d.sb.WriteString("]")
}

func (d *dumper) writeStmts(stmts []Stmt) {
	items := make([]Node, len(stmts))
	for i, s := range stmts {
		items[i] = s
	}
	d.writeList(items)
}

func (d *dumper) writeExprs(exprs []Expr) {
	items := make([]Node, len(exprs))
	for i, e := range exprs {
		items[i] = e
	}
	d.writeList(items)
}

func (d *dumper) writeExpr(e Expr) {
	if e == nil {
		d.sb.WriteString("nil")
		return
	}
	d.writeNode(e)
}

func (d *dumper) writeNode(n Node) {
	switch n := n.(type) {
	case nil:
		d.sb.WriteString("nil")

	case *Program:
		d.open("Program")
		d.field("Body", func() { d.writeStmts(n.Body) })
		d.close()

	// Statements

	case *ExprStmt:
		d.open("ExprStmt")
		d.field("Value", func() { d.writeExpr(n.Value) })
		d.close()

	case *Assign:
		d.open("Assign")
		d.field("Targets", func() { d.writeExprs(n.Targets) })
		d.field("Value", func() { d.writeExpr(n.Value) })
		d.close()

	case *AugAssign:
		d.open("AugAssign")
		d.field("Target", func() { d.writeExpr(n.Target) })
		d.field("Op", func() { d.writeString(n.Op) })
		d.field("Value", func() { d.writeExpr(n.Value) })
		d.close()

	case *Return:
		d.open("Return")
		d.field("Value", func() { d.writeExpr(n.Value) })
		d.close()

	case *Pass:
		d.sb.WriteString("Pass()")

	case *Break:
		d.sb.WriteString("Break()")

	case *Continue:
		d.sb.WriteString("Continue()")

	case *If:
		d.open("If")
		d.field("Test", func() { d.writeExpr(n.Test) })
		d.field("Body", func() { d.writeStmts(n.Body) })
		d.field("Orelse", func() { d.writeStmts(n.Orelse) })
		d.close()

	case *While:
		d.open("While")
		d.field("Test", func() { d.writeExpr(n.Test) })
		d.field("Body", func() { d.writeStmts(n.Body) })
		d.field("Orelse", func() { d.writeStmts(n.Orelse) })
		d.close()

	case *For:
		d.open("For")
		d.field("Target", func() { d.writeExpr(n.Target) })
		d.field("Iter", func() { d.writeExpr(n.Iter) })
		d.field("Body", func() { d.writeStmts(n.Body) })
		d.field("Orelse", func() { d.writeStmts(n.Orelse) })
		d.close()

	case *FunctionDef:
		d.open("FunctionDef")
		d.field("Name", func() { d.writeString(n.Name) })
		d.field("Params", func() {
			items := make([]Node, len(n.Params))
			for i, p := range n.Params {
				items[i] = p
			}
			d.writeList(items)
		})
		d.field("Body", func() { d.writeStmts(n.Body) })
		d.close()

	case *Param:
		d.open("Param")
		d.field("Name", func() { d.writeString(n.Name) })
		d.close()

	// Expressions

	case *Name:
		d.open("Name")
		d.field("ID", func() { d.writeString(n.ID) })
		d.close()

	case *Num:
		d.open("Num")
		d.field("Value", func() { d.writeFloat(n.Value) })
		d.close()

	case *Str:
		d.open("Str")
		d.field("Value", func() { d.writeString(n.Value) })
		d.close()

	case *Bool:
		d.open("Bool")
		d.field("Value", func() { d.sb.WriteString(strconv.FormatBool(n.Value)) })
		d.close()

	case *NoneLit:
		d.sb.WriteString("None()")

	case *BinOp:
		d.open("BinOp")
		d.field("Left", func() { d.writeExpr(n.Left) })
		d.field("Op", func() { d.writeString(n.Op) })
		d.field("Right", func() { d.writeExpr(n.Right) })
		d.close()

	case *UnaryOp:
		d.open("UnaryOp")
		d.field("Op", func() { d.writeString(n.Op) })
		d.field("Operand", func() { d.writeExpr(n.Operand) })
		d.close()

	case *BoolOp:
		d.open("BoolOp")
		d.field("Op", func() { d.writeString(n.Op) })
		d.field("Values", func() { d.writeExprs(n.Values) })
		d.close()

	case *Compare:
		d.open("Compare")
		d.field("Left", func() { d.writeExpr(n.Left) })
		d.field("Ops", func() {
			parts := make([]string, len(n.Ops))
			for i, op := range n.Ops {
				parts[i] = strconv.Quote(op)
			}
			d.sb.WriteString("[" + strings.Join(parts, ", ") + "]")
		})
		d.field("Comparators", func() { d.writeExprs(n.Comparators) })
		d.close()

	case *Call:
		d.open("Call")
		d.field("Func", func() { d.writeExpr(n.Func) })
		d.field("Args", func() { d.writeExprs(n.Args) })
		d.field("Keywords", func() {
			items := make([]Node, len(n.Keywords))
			for i, k := range n.Keywords {
				items[i] = k
			}
			d.writeList(items)
		})
		d.close()

	case *KeywordArg:
		d.open("KeywordArg")
		d.field("Name", func() { d.writeString(n.Name) })
		d.field("Value", func() { d.writeExpr(n.Value) })
		d.close()

	case *Attribute:
		d.open("Attribute")
		d.field("Value", func() { d.writeExpr(n.Value) })
		d.field("Attr", func() { d.writeString(n.Attr) })
		d.close()

	case *Subscript:
		d.open("Subscript")
		d.field("Value", func() { d.writeExpr(n.Value) })
		d.field("Index", func() { d.writeNode(n.Index) })
		d.close()

	case *Slice:
		if n == nil {
			d.sb.WriteString("nil")
			return
		}
		d.open("Slice")
		d.field("Start", func() { d.writeExpr(n.Start) })
		d.field("Stop", func() { d.writeExpr(n.Stop) })
		d.field("Step", func() { d.writeExpr(n.Step) })
		d.close()

	default:
		fmt.Fprintf(&d.sb, "<unknown node %T>", n)
	}
}
