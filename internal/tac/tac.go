// Package tac lowers the syntax tree into three-address code: a flat,
// ordered instruction list addressed by labels.
//
// DESIGN PHILOSOPHY:
// An instruction is a quadruple {op, arg1, arg2, result} plus an optional
// attached label and comment. Operands are "places": plain textual
// references to a name, a temporary (t1, t2, ...), or a literal. There is
// no SSA, no basic blocks, no typing — this IR exists to make control flow
// and evaluation order explicit, as a substrate for later passes.
package tac

import "strings"

// Opcodes with dedicated renderings or dedicated meaning. Binary and unary
// operations use the operator's source spelling ("+", "//", "not", ...)
// directly as the opcode.
const (
	// OpMove copies arg1 into result.
	OpMove = "="

	// OpLabel is a no-op carrier for an attached label.
	OpLabel = "label"

	// OpGoto jumps unconditionally; the target label is in Result.
	OpGoto = "goto"

	// OpIfFalseGoto jumps to the label in Result when arg1 is false.
	OpIfFalseGoto = "if_false_goto"

	// OpReturn exits the current function, with arg1 as the value when set.
	OpReturn = "return"

	// OpParam pushes one positional argument before a call.
	OpParam = "param"

	// OpCall invokes arg1 with arg2 (the argument count, as text) pushed
	// params, storing into result when set.
	OpCall = "call"

	// OpFuncBegin and OpFuncEnd bracket a function body; the function name
	// is in Result.
	OpFuncBegin = "func_begin"
	OpFuncEnd   = "func_end"

	// OpLen computes the abstract length of arg1 (for-loop lowering).
	OpLen = "len"

	// OpLoadIndex loads arg1[arg2] into result.
	OpLoadIndex = "load_index"

	// OpGetAttr reads attribute arg2 from arg1 into result.
	OpGetAttr = "getattr"

	// OpSlice is an opaque slice read: arg1 is the base, arg2 a textual
	// "(start,stop,step)" descriptor.
	OpSlice = "slice"
)

// Instruction is one three-address instruction. The empty string means
// "absent" for every field.
type Instruction struct {
	Op      string
	Arg1    string
	Arg2    string
	Result  string
	Label   string
	Comment string
}

// String renders the instruction in the textual wire format:
//
//	[<label>:] <body> [    # <comment>]
//
// where body is one of:
//
//	goto <target>
//	if_false <cond> goto <target>
//	return [<value>]
//	param <value>
//	[<result> = ] call <callee>, <n_args>
//	func_begin <name> / func_end <name>
//	<result> = <arg1> <op> <arg2>      (binary)
//	<result> = <op><arg1>              (unary; the opcode abuts its operand,
//	                                    so a move renders as "x = =t1")
//	<result> = <op>                    (no operands)
//
// A label-only instruction renders as just "<label>:".
func (in Instruction) String() string {
	var parts []string

	if in.Label != "" {
		parts = append(parts, in.Label+":")
	}

	switch in.Op {
	case OpLabel:
		// label only

	case OpGoto:
		parts = append(parts, "goto "+in.Result)

	case OpIfFalseGoto:
		parts = append(parts, "if_false "+in.Arg1+" goto "+in.Result)

	case OpReturn:
		if in.Arg1 != "" {
			parts = append(parts, "return "+in.Arg1)
		} else {
			parts = append(parts, "return")
		}

	case OpParam:
		parts = append(parts, "param "+in.Arg1)

	case OpCall:
		if in.Result != "" {
			parts = append(parts, in.Result+" = call "+in.Arg1+", "+in.Arg2)
		} else {
			parts = append(parts, "call "+in.Arg1+", "+in.Arg2)
		}

	case OpFuncBegin:
		parts = append(parts, "func_begin "+in.Result)

	case OpFuncEnd:
		parts = append(parts, "func_end "+in.Result)

	default:
		switch {
		case in.Result != "" && in.Arg2 != "":
			parts = append(parts, in.Result+" = "+in.Arg1+" "+in.Op+" "+in.Arg2)
		case in.Result != "" && in.Arg1 != "":
			parts = append(parts, in.Result+" = "+in.Op+in.Arg1)
		case in.Result != "":
			parts = append(parts, in.Result+" = "+in.Op)
		case in.Arg1 != "" && in.Arg2 != "":
			parts = append(parts, in.Arg1+" "+in.Op+" "+in.Arg2)
		case in.Arg1 != "":
			parts = append(parts, in.Op+" "+in.Arg1)
		default:
			parts = append(parts, in.Op)
		}
	}

	if in.Comment != "" {
		parts = append(parts, "    # "+in.Comment)
	}

	return strings.Join(parts, " ")
}

// Render joins a whole instruction sequence into a printable listing, one
// instruction per line.
func Render(code []Instruction) string {
	var sb strings.Builder
	for _, in := range code {
		sb.WriteString(in.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
