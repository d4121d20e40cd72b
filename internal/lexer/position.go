// Package lexer provides lexical analysis for the minipy source language:
// an indentation-sensitive subset of Python. It transforms raw source text
// into an eager token slice that the parser consumes.
package lexer

import "strconv"

// Position is a location in the source code.
//
// DESIGN CHOICE: Position is a value type (not a pointer) because:
// 1. It's tiny (two integers)
// 2. It's immutable once created
// 3. The zero value naturally means "no position"
//
// Line and Column are both 1-based, matching how text editors display
// locations.
type Position struct {
	Line   int
	Column int
}

// String renders the position as "line:column", e.g. "42:15".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// IsValid reports whether the position has been set.
// Line is the minimum information needed for error reporting, so a
// zero-value Position correctly reports as invalid.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// LexError is a lexical fault carrying the offending source position.
//
// DESIGN CHOICE: A structured error type rather than fmt.Errorf strings
// because the driver (and tests) need the position as data, not as text to
// re-parse. Every failure path in the lexer produces exactly one of these;
// there is no recovery or multi-error batching.
type LexError struct {
	Message string
	Line    int
	Column  int
}

func (e *LexError) Error() string {
	return "lex error: " + e.Message + " (line " + strconv.Itoa(e.Line) +
		", column " + strconv.Itoa(e.Column) + ")"
}

// Pos returns the fault location as a Position.
func (e *LexError) Pos() Position {
	return Position{Line: e.Line, Column: e.Column}
}
