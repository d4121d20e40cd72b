package lexer

import "strconv"

// TokenType identifies the class of a token.
//
// DESIGN CHOICE: An int-based enum (via iota) rather than strings because:
// 1. Faster comparisons (integer vs string comparison)
// 2. Less memory (1 int vs string pointer + length + data)
// 3. Type safety (the compiler catches typos)
//
// Keywords are deliberately NOT token types: `if`, `def`, `and` and friends
// all lex as TokenName, and the parser inspects the lexeme where the grammar
// structurally requires a keyword. This keeps the lexer a pure tokenizer and
// lets soft keywords stay usable as ordinary names.
type TokenType int

// Token type enumeration.
//
// ORGANIZATION: structural tokens first, then literals, then operators
// grouped arithmetic / comparison / assignment, then delimiters. The parser
// relies on the contiguous augmented-assignment block (see IsAugAssign).
const (
	// Structural tokens

	// TokenEndMarker marks the end of the token stream. It is always the
	// last token, so the parser never has to special-case running off the
	// end of the slice.
	TokenEndMarker TokenType = iota

	// TokenNewline terminates a logical line of code.
	TokenNewline

	// TokenIndent and TokenDedent bracket nested blocks. They are emitted
	// from the indentation stack, never from literal source characters, and
	// are always balanced within a token stream.
	TokenIndent
	TokenDedent

	// TokenTypeComment carries a `# type: ...` annotation comment. Ordinary
	// comments are discarded during lexing; these survive so later tooling
	// can read the annotation text.
	TokenTypeComment

	// Literals and names

	// TokenName covers identifiers AND every keyword.
	TokenName

	// TokenNumber is a numeric literal. The parsed value lives in
	// Token.Num; Lexeme keeps the source spelling.
	TokenNumber

	// TokenString is a string literal. Lexeme holds the decoded contents
	// with the quotes stripped and escapes resolved.
	TokenString

	// Operators - arithmetic and bitwise

	TokenPlus        // +
	TokenMinus       // -
	TokenStar        // *
	TokenSlash       // /
	TokenDoubleSlash // //
	TokenPercent     // %
	TokenAt          // @
	TokenPipe        // |
	TokenAmpersand   // &
	TokenCaret       // ^
	TokenTilde       // ~
	TokenShl         // <<
	TokenShr         // >>
	TokenDoubleStar  // **

	// Operators - comparison

	TokenEqEqual      // ==
	TokenNotEqual     // !=
	TokenLess         // <
	TokenGreater      // >
	TokenLessEqual    // <=
	TokenGreaterEqual // >=

	// Assignment

	TokenAssign // =

	// Augmented assignment. Keep this block contiguous: IsAugAssign does a
	// range check over it.

	TokenPlusEq        // +=
	TokenMinusEq       // -=
	TokenStarEq        // *=
	TokenSlashEq       // /=
	TokenDoubleSlashEq // //=
	TokenPercentEq     // %=
	TokenAtEq          // @=
	TokenAmpEq         // &=
	TokenPipeEq        // |=
	TokenCaretEq       // ^=
	TokenShlEq         // <<=
	TokenShrEq         // >>=
	TokenDoubleStarEq  // **=

	// Delimiters

	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBracket  // [
	TokenRightBracket // ]
	TokenLeftBrace    // {
	TokenRightBrace   // }
	TokenComma        // ,
	TokenColon        // :
	TokenSemicolon    // ;
	TokenDot          // .
	TokenArrow        // ->
)

// Token is a single lexical token.
//
// DESIGN CHOICE: Token is a value type (not a pointer) because tokens are
// small, immutable after creation, and produced in bulk; a []Token slice
// keeps them contiguous with no per-token allocation.
type Token struct {
	// Type is the token class.
	Type TokenType

	// Lexeme is the textual payload: the identifier or keyword spelling for
	// TokenName, the decoded contents for TokenString, the annotation text
	// for TokenTypeComment, and the operator spelling otherwise. Structural
	// tokens carry an empty lexeme (TokenNewline carries "\n").
	Lexeme string

	// Num is the parsed value for TokenNumber and zero for everything else.
	// All numbers are float64; the language has a single numeric type.
	Num float64

	// Line and Column locate the first character of the token, both
	// 1-based.
	Line   int
	Column int
}

// Pos returns the token's location.
func (t Token) Pos() Position {
	return Position{Line: t.Line, Column: t.Column}
}

// String renders the token as "TYPE(lexeme) at line:col" for debugging and
// the driver's token listing.
func (t Token) String() string {
	if t.Type == TokenNumber {
		return t.Type.String() + "(" + strconv.FormatFloat(t.Num, 'g', -1, 64) +
			") at " + t.Pos().String()
	}
	return t.Type.String() + "(" + t.Lexeme + ") at " + t.Pos().String()
}

// IsAugAssign reports whether the token type is an augmented assignment
// operator (+=, -=, ...). The parser uses this to classify a simple
// statement after parsing its left-hand expression.
func (tt TokenType) IsAugAssign() bool {
	return tt >= TokenPlusEq && tt <= TokenDoubleStarEq
}

// String returns the canonical name of a token type.
//
// DESIGN CHOICE: Implemented manually rather than with stringer so the
// names stay stable identifiers of the token stream format rather than
// Go constant names.
func (tt TokenType) String() string {
	switch tt {
	case TokenEndMarker:
		return "ENDMARKER"
	case TokenNewline:
		return "NEWLINE"
	case TokenIndent:
		return "INDENT"
	case TokenDedent:
		return "DEDENT"
	case TokenTypeComment:
		return "TYPE_COMMENT"
	case TokenName:
		return "NAME"
	case TokenNumber:
		return "NUMBER"
	case TokenString:
		return "STRING"
	case TokenPlus:
		return "PLUS"
	case TokenMinus:
		return "MINUS"
	case TokenStar:
		return "STAR"
	case TokenSlash:
		return "SLASH"
	case TokenDoubleSlash:
		return "DOUBLE_SLASH"
	case TokenPercent:
		return "PERCENT"
	case TokenAt:
		return "AT"
	case TokenPipe:
		return "PIPE"
	case TokenAmpersand:
		return "AMPERSAND"
	case TokenCaret:
		return "CARET"
	case TokenTilde:
		return "TILDE"
	case TokenShl:
		return "LSHIFT"
	case TokenShr:
		return "RSHIFT"
	case TokenDoubleStar:
		return "DOUBLE_STAR"
	case TokenEqEqual:
		return "EQEQUAL"
	case TokenNotEqual:
		return "NOTEQUAL"
	case TokenLess:
		return "LESS"
	case TokenGreater:
		return "GREATER"
	case TokenLessEqual:
		return "LESSEQUAL"
	case TokenGreaterEqual:
		return "GREATEREQUAL"
	case TokenAssign:
		return "EQUAL"
	case TokenPlusEq:
		return "PLUSEQUAL"
	case TokenMinusEq:
		return "MINEQUAL"
	case TokenStarEq:
		return "STAREQUAL"
	case TokenSlashEq:
		return "SLASHEQUAL"
	case TokenDoubleSlashEq:
		return "DOUBLE_SLASHEQUAL"
	case TokenPercentEq:
		return "PERCENTEQUAL"
	case TokenAtEq:
		return "ATEQUAL"
	case TokenAmpEq:
		return "AMPEREQUAL"
	case TokenPipeEq:
		return "PIPEEQUAL"
	case TokenCaretEq:
		return "CARETEQUAL"
	case TokenShlEq:
		return "LSHIFTEQUAL"
	case TokenShrEq:
		return "RSHIFTEQUAL"
	case TokenDoubleStarEq:
		return "DOUBLE_STAREQUAL"
	case TokenLeftParen:
		return "LPAREN"
	case TokenRightParen:
		return "RPAREN"
	case TokenLeftBracket:
		return "LBRACKET"
	case TokenRightBracket:
		return "RBRACKET"
	case TokenLeftBrace:
		return "LBRACE"
	case TokenRightBrace:
		return "RBRACE"
	case TokenComma:
		return "COMMA"
	case TokenColon:
		return "COLON"
	case TokenSemicolon:
		return "SEMI"
	case TokenDot:
		return "DOT"
	case TokenArrow:
		return "ARROW"
	default:
		return "UNKNOWN"
	}
}
