package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// tabWidth is the indentation width attributed to a tab character.
// Indentation is measured in abstract columns: a space counts 1, a tab
// counts tabWidth. Mixing tabs and spaces is legal as long as the resulting
// widths line up with the indentation stack.
const tabWidth = 4

// Lexer turns source text into a flat token slice.
//
// DESIGN PHILOSOPHY:
// The lexer's responsibilities are:
// 1. Break source into tokens (names, numbers, strings, operators)
// 2. Convert physical indentation into INDENT/DEDENT structure tokens
// 3. Track line/column for error reporting
// 4. Discard comments, except `# type:` annotations
//
// The lexer does NOT classify keywords (the parser checks NAME lexemes) and
// does NOT parse syntax.
//
// DESIGN CHOICE: Tokenize is eager and returns the whole slice rather than
// exposing a NextToken stream because the indentation algorithm naturally
// emits several tokens per source position (a dedent run, the synthetic
// trailing NEWLINE, the DEDENT flush at EOF). Producing the slice up front
// keeps that bookkeeping in one place and gives the parser free arbitrary
// lookahead.
type Lexer struct {
	// source is the complete source text. Whole-file lexing keeps position
	// tracking and multi-character lookahead trivial.
	source string

	// pos is the byte offset currently being examined.
	pos int

	// line and col locate pos, both 1-based. col counts characters, so a
	// tab advances it by one even though it widens indentation by tabWidth.
	line int
	col  int

	// indents is the stack of open indentation widths. It starts at [0]
	// and never empties; each entry past the first has an unmatched INDENT
	// token in the output.
	indents []int

	// atLineStart is set after every NEWLINE so the next iteration runs
	// the indentation handler before ordinary scanning resumes.
	atLineStart bool
}

// New creates a Lexer for the given source text.
func New(source string) *Lexer {
	return &Lexer{
		source:      source,
		pos:         0,
		line:        1,
		col:         1,
		indents:     []int{0},
		atLineStart: true,
	}
}

// Tokenize scans the entire source and returns the token slice, ending with
// ENDMARKER. On the first lexical fault it stops and returns a *LexError.
//
// Guarantees on success:
//   - INDENT and DEDENT tokens are balanced.
//   - The last content token before ENDMARKER is NEWLINE (synthesized when
//     the source does not end with one), unless the source is empty.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token

	for {
		if l.atLineStart {
			var err error
			tokens, err = l.handleLineStart(tokens)
			if err != nil {
				return nil, err
			}
		}

		ch := l.peek()
		if ch == 0 {
			break
		}

		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			// Whitespace inside a line carries no structure.
			l.advance()

		case ch == '#':
			tokens = l.scanComment(tokens)

		case ch == '\n':
			tokens = append(tokens, Token{
				Type: TokenNewline, Lexeme: "\n", Line: l.line, Column: l.col,
			})
			l.advance()
			l.atLineStart = true

		case isDigit(ch) || (ch == '.' && isDigit(l.peekNext())):
			tok, err := l.scanNumber()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)

		case isIdentStart(ch):
			tokens = append(tokens, l.scanIdentifier())

		case ch == '"' || ch == '\'':
			tok, err := l.scanString()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)

		default:
			tok, ok := l.scanOperator()
			if !ok {
				return nil, l.errorAt(
					fmt.Sprintf("unexpected character %q", ch), l.line, l.col)
			}
			tokens = append(tokens, tok)
		}
	}

	// A parser working line-by-line wants every statement NEWLINE-terminated,
	// including the last one.
	if len(tokens) > 0 && tokens[len(tokens)-1].Type != TokenNewline {
		tokens = append(tokens, Token{
			Type: TokenNewline, Lexeme: "\n", Line: l.line, Column: l.col,
		})
	}

	// Close every block still open at EOF.
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		tokens = append(tokens, Token{Type: TokenDedent, Line: l.line, Column: l.col})
	}

	tokens = append(tokens, Token{Type: TokenEndMarker, Line: l.line, Column: l.col})
	return tokens, nil
}

// handleLineStart measures the indentation of a fresh logical line and
// emits INDENT/DEDENT tokens against the indentation stack.
//
// Blank lines and comment-only lines do not participate: their leading
// whitespace is consumed but the stack is left untouched, and the main loop
// then processes the comment and/or NEWLINE normally.
func (l *Lexer) handleLineStart(tokens []Token) ([]Token, error) {
	l.atLineStart = false
	startLine, startCol := l.line, l.col

	indent := 0
	for {
		switch l.peek() {
		case ' ':
			indent++
			l.advance()
			continue
		case '\t':
			indent += tabWidth
			l.advance()
			continue
		}
		break
	}

	ch := l.peek()
	if ch == '\n' || ch == '\r' || ch == '#' || ch == 0 {
		return tokens, nil
	}

	top := l.indents[len(l.indents)-1]
	switch {
	case indent > top:
		l.indents = append(l.indents, indent)
		tokens = append(tokens, Token{Type: TokenIndent, Line: startLine, Column: startCol})

	case indent < top:
		for len(l.indents) > 0 && indent < l.indents[len(l.indents)-1] {
			l.indents = l.indents[:len(l.indents)-1]
			tokens = append(tokens, Token{Type: TokenDedent, Line: startLine, Column: startCol})
		}
		if indent != l.indents[len(l.indents)-1] {
			return nil, l.errorAt(
				"invalid indentation: does not match any outer level",
				startLine, startCol)
		}
	}

	return tokens, nil
}

// scanComment consumes a comment up to (not including) the newline.
// Comments of the form `# type: ...` become TYPE_COMMENT tokens carrying
// the text after the hash marks; everything else is dropped.
func (l *Lexer) scanComment(tokens []Token) []Token {
	startLine, startCol := l.line, l.col

	var sb strings.Builder
	for ch := l.peek(); ch != 0 && ch != '\n'; ch = l.peek() {
		sb.WriteRune(ch)
		l.advance()
	}

	stripped := strings.TrimLeft(strings.TrimLeft(sb.String(), "#"), " \t")
	if strings.HasPrefix(stripped, "type:") {
		tokens = append(tokens, Token{
			Type: TokenTypeComment, Lexeme: stripped, Line: startLine, Column: startCol,
		})
	}
	return tokens
}

// scanNumber scans a decimal literal: integer part, optional fraction,
// optional exponent. A leading dot is accepted (`.5`), but every decimal
// point must be followed by at least one digit, so a bare trailing dot
// (`1.`) is a fault. Faults are reported at the literal's start.
func (l *Lexer) scanNumber() (Token, error) {
	startLine, startCol := l.line, l.col
	var sb strings.Builder

	if l.peek() == '.' {
		sb.WriteByte('.')
		l.advance()
		if !isDigit(l.peek()) {
			return Token{}, l.errorAt("malformed numeric literal: no digit after '.'",
				startLine, startCol)
		}
	}

	for isDigit(l.peek()) {
		sb.WriteRune(l.peek())
		l.advance()
	}

	if l.peek() == '.' {
		sb.WriteByte('.')
		l.advance()
		if !isDigit(l.peek()) {
			return Token{}, l.errorAt("malformed numeric literal: no digit after '.'",
				startLine, startCol)
		}
		for isDigit(l.peek()) {
			sb.WriteRune(l.peek())
			l.advance()
		}
	}

	if ch := l.peek(); ch == 'e' || ch == 'E' {
		sb.WriteRune(ch)
		l.advance()
		if s := l.peek(); s == '+' || s == '-' {
			sb.WriteRune(s)
			l.advance()
		}
		if !isDigit(l.peek()) {
			return Token{}, l.errorAt("malformed exponent in numeric literal",
				startLine, startCol)
		}
		for isDigit(l.peek()) {
			sb.WriteRune(l.peek())
			l.advance()
		}
	}

	text := sb.String()
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Token{}, l.errorAt("malformed numeric literal: "+text, startLine, startCol)
	}

	return Token{
		Type: TokenNumber, Lexeme: text, Num: value, Line: startLine, Column: startCol,
	}, nil
}

// scanIdentifier scans a NAME: a letter or underscore followed by letters,
// digits, or underscores. Keywords are not distinguished here.
func (l *Lexer) scanIdentifier() Token {
	startLine, startCol := l.line, l.col

	var sb strings.Builder
	for ch := l.peek(); isIdentPart(ch); ch = l.peek() {
		sb.WriteRune(ch)
		l.advance()
	}

	return Token{Type: TokenName, Lexeme: sb.String(), Line: startLine, Column: startCol}
}

// scanString scans a single-line string delimited by ' or ". Escapes for
// \n, \t, \r, \\ and the active quote character decode to their values;
// any other escaped character passes through literally. An unescaped
// newline or EOF before the closing quote is a fault.
func (l *Lexer) scanString() (Token, error) {
	startLine, startCol := l.line, l.col
	quote := l.peek()
	l.advance()

	var sb strings.Builder
	for {
		ch := l.peek()
		switch {
		case ch == 0:
			return Token{}, l.errorAt("unterminated string", startLine, startCol)

		case ch == '\\':
			l.advance()
			esc := l.peek()
			if esc == 0 {
				return Token{}, l.errorAt("end of file in string escape", l.line, l.col)
			}
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\':
				sb.WriteByte('\\')
			case quote:
				sb.WriteRune(quote)
			default:
				sb.WriteRune(esc)
			}
			l.advance()

		case ch == quote:
			l.advance()
			return Token{
				Type: TokenString, Lexeme: sb.String(), Line: startLine, Column: startCol,
			}, nil

		case ch == '\n':
			return Token{}, l.errorAt("newline in unterminated string", l.line, l.col)

		default:
			sb.WriteRune(ch)
			l.advance()
		}
	}
}

// threeCharOps, twoCharOps and oneCharOps drive greedy operator matching:
// longest spelling wins, so `**=` beats `**` beats `*`.
var threeCharOps = map[string]TokenType{
	">>=": TokenShrEq,
	"<<=": TokenShlEq,
	"**=": TokenDoubleStarEq,
	"//=": TokenDoubleSlashEq,
}

var twoCharOps = map[string]TokenType{
	"==": TokenEqEqual,
	"!=": TokenNotEqual,
	"<=": TokenLessEqual,
	">=": TokenGreaterEqual,
	"<<": TokenShl,
	">>": TokenShr,
	"**": TokenDoubleStar,
	"//": TokenDoubleSlash,
	"+=": TokenPlusEq,
	"-=": TokenMinusEq,
	"*=": TokenStarEq,
	"/=": TokenSlashEq,
	"%=": TokenPercentEq,
	"@=": TokenAtEq,
	"&=": TokenAmpEq,
	"|=": TokenPipeEq,
	"^=": TokenCaretEq,
	"->": TokenArrow,
}

var oneCharOps = map[string]TokenType{
	"+": TokenPlus,
	"-": TokenMinus,
	"*": TokenStar,
	"/": TokenSlash,
	"%": TokenPercent,
	"@": TokenAt,
	"|": TokenPipe,
	"&": TokenAmpersand,
	"^": TokenCaret,
	"~": TokenTilde,
	"=": TokenAssign,
	"<": TokenLess,
	">": TokenGreater,
	"(": TokenLeftParen,
	")": TokenRightParen,
	"[": TokenLeftBracket,
	"]": TokenRightBracket,
	"{": TokenLeftBrace,
	"}": TokenRightBrace,
	",": TokenComma,
	":": TokenColon,
	";": TokenSemicolon,
	".": TokenDot,
}

// scanOperator greedily matches an operator or delimiter at the cursor,
// trying 3-, 2-, then 1-character spellings. Returns ok=false when the
// cursor is not at any known operator.
func (l *Lexer) scanOperator() (Token, bool) {
	startLine, startCol := l.line, l.col

	for _, size := range []int{3, 2} {
		frag := l.fragment(size)
		table := twoCharOps
		if size == 3 {
			table = threeCharOps
		}
		if tt, ok := table[frag]; ok {
			for i := 0; i < size; i++ {
				l.advance()
			}
			return Token{Type: tt, Lexeme: frag, Line: startLine, Column: startCol}, true
		}
	}

	frag := l.fragment(1)
	if tt, ok := oneCharOps[frag]; ok {
		l.advance()
		return Token{Type: tt, Lexeme: frag, Line: startLine, Column: startCol}, true
	}

	return Token{}, false
}

// peek returns the rune at the cursor, or 0 at EOF.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.source) {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.pos:])
	return ch
}

// peekNext returns the rune after the cursor, or 0 when fewer than two
// runes remain.
func (l *Lexer) peekNext() rune {
	if l.pos >= len(l.source) {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.pos:])
	if l.pos+size >= len(l.source) {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.pos+size:])
	return ch
}

// fragment returns up to n bytes at the cursor without advancing. Operator
// spellings are pure ASCII, so byte slicing is exact here.
func (l *Lexer) fragment(n int) string {
	end := l.pos + n
	if end > len(l.source) {
		end = len(l.source)
	}
	return l.source[l.pos:end]
}

// advance consumes one rune, maintaining line/col.
func (l *Lexer) advance() {
	if l.pos >= len(l.source) {
		return
	}
	ch, size := utf8.DecodeRuneInString(l.source[l.pos:])
	l.pos += size
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

// errorAt builds a *LexError at an explicit position.
func (l *Lexer) errorAt(message string, line, col int) error {
	return &LexError{Message: message, Line: line, Column: col}
}

// Character classification. Identifiers follow the usual letter/underscore
// then letter/digit/underscore rule; digits in numeric literals are ASCII
// only.

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isIdentPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}
