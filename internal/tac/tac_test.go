package tac

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInstruction_String(t *testing.T) {
	tests := []struct {
		name string
		in   Instruction
		want string
	}{
		{
			"binary",
			Instruction{Op: "+", Arg1: "a", Arg2: "b", Result: "t1"},
			"t1 = a + b",
		},
		{
			// The generic unary form concatenates opcode and operand, so a
			// move shows its "=" opcode glued to the source place.
			"move",
			Instruction{Op: OpMove, Arg1: "t1", Result: "x"},
			"x = =t1",
		},
		{
			"unary not",
			Instruction{Op: "not", Arg1: "a", Result: "t2"},
			"t2 = nota",
		},
		{
			"unary minus",
			Instruction{Op: "-", Arg1: "a", Result: "t1"},
			"t1 = -a",
		},
		{
			"label only",
			Instruction{Op: OpLabel, Label: "L_else_1"},
			"L_else_1:",
		},
		{
			"goto",
			Instruction{Op: OpGoto, Result: "L_end_if_2"},
			"goto L_end_if_2",
		},
		{
			"conditional jump",
			Instruction{Op: OpIfFalseGoto, Arg1: "t1", Result: "L_else_1"},
			"if_false t1 goto L_else_1",
		},
		{
			"return with value",
			Instruction{Op: OpReturn, Arg1: "t3"},
			"return t3",
		},
		{
			"bare return",
			Instruction{Op: OpReturn},
			"return",
		},
		{
			"param",
			Instruction{Op: OpParam, Arg1: "a"},
			"param a",
		},
		{
			"param with comment",
			Instruction{Op: OpParam, Arg1: "a", Comment: "func param"},
			"param a     # func param",
		},
		{
			"call with result",
			Instruction{Op: OpCall, Arg1: "f", Arg2: "2", Result: "t1"},
			"t1 = call f, 2",
		},
		{
			"call without result",
			Instruction{Op: OpCall, Arg1: "f", Arg2: "0"},
			"call f, 0",
		},
		{
			"func begin",
			Instruction{Op: OpFuncBegin, Result: "f"},
			"func_begin f",
		},
		{
			"func end",
			Instruction{Op: OpFuncEnd, Result: "f"},
			"func_end f",
		},
		{
			"load index",
			Instruction{Op: OpLoadIndex, Arg1: "xs", Arg2: "t1", Result: "t2"},
			"t2 = xs load_index t1",
		},
		{
			"len with comment",
			Instruction{Op: OpLen, Arg1: "xs", Result: "t2", Comment: "len(iter)"},
			"t2 = lenxs     # len(iter)",
		},
		{
			"labelled instruction",
			Instruction{Op: "+", Arg1: "i", Arg2: "1", Result: "t5", Label: "L_for_start_1"},
			"L_for_start_1: t5 = i + 1",
		},
		{
			"implicit return comment",
			Instruction{Op: OpReturn, Comment: "implicit return"},
			"return     # implicit return",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.in.String())
		})
	}
}

func TestRender(t *testing.T) {
	code := []Instruction{
		{Op: OpMove, Arg1: "1", Result: "x"},
		{Op: "+", Arg1: "x", Arg2: "2", Result: "t1"},
		{Op: OpReturn, Arg1: "t1"},
	}

	require.Equal(t, "x = =1\nt1 = x + 2\nreturn t1\n", Render(code))
}

func TestRender_Empty(t *testing.T) {
	require.Equal(t, "", Render(nil))
}
