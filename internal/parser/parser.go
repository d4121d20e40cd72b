// Package parser builds the syntax tree from a token slice.
//
// DESIGN PHILOSOPHY:
// This is a recursive-descent parser with one method per grammar rule. The
// expression grammar is a fixed precedence ladder, weakest binding first:
//
//	or -> and -> not -> comparison -> sum -> term -> unary -> power -> postfix -> atom
//
// Error handling is fail-fast: every parse method returns (node, error),
// the first error aborts the whole parse, and there is no recovery or
// multi-error collection. A *ParseError carries the position of the token
// that broke the grammar.
//
// The parser also does the front end's only semantic bookkeeping: it
// maintains a symtab.Stack, pushing a scope per function definition,
// registering function names, parameters, and assigned variables as it
// goes. Declaring a parameter twice is a hard fault (a *RedefinedError in
// the error chain); assignment and def tolerate re-binding an existing
// local name.
package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/hassan/minipy/internal/lexer"
	"github.com/hassan/minipy/internal/parser/ast"
	"github.com/hassan/minipy/internal/symtab"
)

// ParseError is a syntax fault at a specific token.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Message + " (line " + strconv.Itoa(e.Line) +
		", column " + strconv.Itoa(e.Column) + ")"
}

// Parser consumes a token slice produced by the lexer. The slice must end
// with ENDMARKER, which the lexer guarantees.
type Parser struct {
	tokens  []lexer.Token
	pos     int
	current lexer.Token
	scopes  *symtab.Stack
}

// New creates a parser over tokens. The slice must be non-empty. A fresh
// "global" scope is opened immediately and stays open after parsing so the
// caller can inspect it.
func New(tokens []lexer.Token) (*Parser, error) {
	if len(tokens) == 0 {
		return nil, errors.New("parser: token slice must not be empty")
	}
	p := &Parser{
		tokens:  tokens,
		current: tokens[0],
		scopes:  symtab.NewStack(),
	}
	p.scopes.Push("global")
	return p, nil
}

// Scopes exposes the scope stack built during parsing, for the driver's
// symbol table display and for later stages.
func (p *Parser) Scopes() *symtab.Stack {
	return p.scopes
}

// Parse parses the whole token stream:
//
//	file: statement* ENDMARKER
//
// Stray NEWLINEs between statements are skipped; INDENT or DEDENT at the
// top level is a syntax error.
func (p *Parser) Parse() (*ast.Program, error) {
	var body []ast.Stmt

	for p.current.Type != lexer.TokenEndMarker {
		if p.current.Type == lexer.TokenNewline || p.current.Type == lexer.TokenTypeComment {
			p.advance()
			continue
		}
		if p.current.Type == lexer.TokenIndent || p.current.Type == lexer.TokenDedent {
			return nil, p.errorf("unexpected %s at top level", p.current.Type)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}

	return &ast.Program{Body: body}, nil
}

// ----------------------------------------------------------------------
// Cursor helpers
// ----------------------------------------------------------------------

// advance moves to the next token. It never walks past the final token, so
// after ENDMARKER the cursor just stays there.
func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
		p.current = p.tokens[p.pos]
	}
}

// peekAhead returns the token k positions ahead without consuming,
// saturating at the final token.
func (p *Parser) peekAhead(k int) lexer.Token {
	idx := p.pos + k
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

// expect consumes a token of the given type or fails.
func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	tok := p.current
	if tok.Type != tt {
		return tok, p.errorf("expected %s, found %s", tt, tok.Type)
	}
	p.advance()
	return tok, nil
}

// isKeyword reports whether the current token is a NAME spelling word.
// Keywords reach the parser as plain NAME tokens.
func (p *Parser) isKeyword(word string) bool {
	return p.current.Type == lexer.TokenName && p.current.Lexeme == word
}

// expectKeyword consumes a NAME with the given spelling or fails.
func (p *Parser) expectKeyword(word string) (lexer.Token, error) {
	tok := p.current
	if tok.Type == lexer.TokenName && tok.Lexeme == word {
		p.advance()
		return tok, nil
	}
	return tok, p.errorf("expected keyword %q", word)
}

// errorf builds a *ParseError at the current token.
func (p *Parser) errorf(format string, args ...interface{}) error {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    p.current.Line,
		Column:  p.current.Column,
	}
}

// ----------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------

// parseStatement dispatches on the leading keyword:
//
//	statement: compound_stmt | simple_stmt
func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch {
	case p.isKeyword("if"):
		return p.parseIf()
	case p.isKeyword("while"):
		return p.parseWhile()
	case p.isKeyword("for"):
		return p.parseFor()
	case p.isKeyword("def"):
		return p.parseFunctionDef()
	}
	return p.parseSimpleStmt()
}

// parseSimpleStmt parses a one-line statement and its terminator:
//
//	simple_stmt: (return | pass | break | continue | expr_or_assignment)
//
// The statement must end at NEWLINE; a DEDENT or ENDMARKER is tolerated so
// the last line of a block or file needs no trailing newline token.
func (p *Parser) parseSimpleStmt() (ast.Stmt, error) {
	var (
		node ast.Stmt
		err  error
	)

	switch {
	case p.isKeyword("return"):
		node, err = p.parseReturn()
	case p.isKeyword("pass"):
		p.advance()
		node = &ast.Pass{}
	case p.isKeyword("break"):
		p.advance()
		node = &ast.Break{}
	case p.isKeyword("continue"):
		p.advance()
		node = &ast.Continue{}
	default:
		node, err = p.parseExprOrAssignment()
	}
	if err != nil {
		return nil, err
	}

	// Trailing annotation comments ride on the statement's line.
	for p.current.Type == lexer.TokenTypeComment {
		p.advance()
	}

	switch p.current.Type {
	case lexer.TokenNewline:
		p.advance()
	case lexer.TokenDedent, lexer.TokenEndMarker:
		// end of block or file
	default:
		return nil, p.errorf("expected end of statement (NEWLINE), found %s", p.current.Type)
	}

	return node, nil
}

// parseReturn parses `return [expression]`.
func (p *Parser) parseReturn() (ast.Stmt, error) {
	if _, err := p.expectKeyword("return"); err != nil {
		return nil, err
	}
	switch p.current.Type {
	case lexer.TokenNewline, lexer.TokenDedent, lexer.TokenEndMarker, lexer.TokenTypeComment:
		return &ast.Return{}, nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Return{Value: value}, nil
}

// parseExprOrAssignment parses a full expression, then classifies the
// statement by what follows:
//
//	'='         -> Assign
//	augmented op -> AugAssign
//	anything else -> ExprStmt
//
// Parsing the expression first means the target grammar is just the
// expression grammar; assignability is checked afterwards.
func (p *Parser) parseExprOrAssignment() (ast.Stmt, error) {
	left, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	tok := p.current

	if tok.Type == lexer.TokenAssign {
		target, err := p.ensureAssignable(left)
		if err != nil {
			return nil, err
		}
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		// First assignment to a plain name declares it in the current
		// scope; later assignments re-bind the existing entry.
		if name, ok := target.(*ast.Name); ok {
			if p.scopes.LookupLocal(name.ID) == nil {
				if _, err := p.scopes.Define(name.ID, symtab.KindVariable, "unknown"); err != nil {
					return nil, err
				}
			}
		}

		return &ast.Assign{Targets: []ast.Expr{target}, Value: value}, nil
	}

	if tok.Type.IsAugAssign() {
		target, err := p.ensureAssignable(left)
		if err != nil {
			return nil, err
		}
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.AugAssign{Target: target, Op: tok.Lexeme, Value: value}, nil
	}

	return &ast.ExprStmt{Value: left}, nil
}

// ensureAssignable checks that an expression is a legal assignment target:
// a name, an attribute access, or a subscript.
func (p *Parser) ensureAssignable(expr ast.Expr) (ast.Expr, error) {
	switch expr.(type) {
	case *ast.Name, *ast.Attribute, *ast.Subscript:
		return expr, nil
	}
	return nil, p.errorf("expression is not assignable (expected name, attribute, or subscript)")
}

// parseIf parses an if statement with its elif/else chain:
//
//	if_stmt: 'if' expression ':' block ('elif' expression ':' block)* ['else' ':' block]
//
// Each elif becomes a nested If placed as the sole statement of the
// previous branch's else list, and a trailing else fills the innermost
// one, so the chain leans right exactly as written.
func (p *Parser) parseIf() (ast.Stmt, error) {
	if _, err := p.expectKeyword("if"); err != nil {
		return nil, err
	}
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenColon); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	node := &ast.If{Test: test, Body: body}
	innermost := node

	for p.isKeyword("elif") {
		p.advance()
		elifTest, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenColon); err != nil {
			return nil, err
		}
		elifBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		nested := &ast.If{Test: elifTest, Body: elifBody}
		innermost.Orelse = append(innermost.Orelse, nested)
		innermost = nested
	}

	if p.isKeyword("else") {
		p.advance()
		if _, err := p.expect(lexer.TokenColon); err != nil {
			return nil, err
		}
		elseBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		innermost.Orelse = append(innermost.Orelse, elseBody...)
	}

	return node, nil
}

// parseWhile parses `while expression ':' block ['else' ':' block]`.
func (p *Parser) parseWhile() (ast.Stmt, error) {
	if _, err := p.expectKeyword("while"); err != nil {
		return nil, err
	}
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenColon); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var orelse []ast.Stmt
	if p.isKeyword("else") {
		p.advance()
		if _, err := p.expect(lexer.TokenColon); err != nil {
			return nil, err
		}
		orelse, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}

	return &ast.While{Test: test, Body: body, Orelse: orelse}, nil
}

// parseFor parses `for expression 'in' expression ':' block ['else' ':' block]`.
// The target is parsed with the full expression grammar; the generator only
// supports plain-name targets, but that is its concern, not the grammar's.
func (p *Parser) parseFor() (ast.Stmt, error) {
	if _, err := p.expectKeyword("for"); err != nil {
		return nil, err
	}
	target, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("in"); err != nil {
		return nil, err
	}
	iter, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenColon); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var orelse []ast.Stmt
	if p.isKeyword("else") {
		p.advance()
		if _, err := p.expect(lexer.TokenColon); err != nil {
			return nil, err
		}
		orelse, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}

	return &ast.For{Target: target, Iter: iter, Body: body, Orelse: orelse}, nil
}

// parseFunctionDef parses `def NAME '(' [parameters] ')' ':' block`.
//
// Scope protocol: the function NAME is registered in the scope enclosing
// the def, then a fresh "func <name>" scope is pushed, the parameters are
// declared inside it, the body is parsed inside it, and the scope is
// popped. A duplicate parameter name faults here with the *RedefinedError
// in the chain.
func (p *Parser) parseFunctionDef() (ast.Stmt, error) {
	if _, err := p.expectKeyword("def"); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(lexer.TokenName)
	if err != nil {
		return nil, err
	}
	funcName := nameTok.Lexeme

	if p.scopes.LookupLocal(funcName) == nil {
		if _, err := p.scopes.Define(funcName, symtab.KindFunction, "function"); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.TokenLeftParen); err != nil {
		return nil, err
	}
	params, paramToks, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenRightParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenColon); err != nil {
		return nil, err
	}

	p.scopes.Push("func " + funcName)

	for i, param := range params {
		if _, err := p.scopes.Define(param.Name, symtab.KindParameter, "unknown"); err != nil {
			tok := paramToks[i]
			return nil, fmt.Errorf("%w (line %d, column %d)", err, tok.Line, tok.Column)
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	if _, err := p.scopes.Pop(); err != nil {
		return nil, err
	}

	return &ast.FunctionDef{Name: funcName, Params: params, Body: body}, nil
}

// parseParameters parses a bare-name parameter list with an optional
// trailing comma. It also returns each parameter's token so a duplicate
// can be reported at its own position.
func (p *Parser) parseParameters() ([]*ast.Param, []lexer.Token, error) {
	var (
		params []*ast.Param
		toks   []lexer.Token
	)

	if p.current.Type == lexer.TokenRightParen {
		return params, toks, nil
	}

	for {
		nameTok, err := p.expect(lexer.TokenName)
		if err != nil {
			return nil, nil, p.errorf("expected parameter name")
		}
		params = append(params, &ast.Param{Name: nameTok.Lexeme})
		toks = append(toks, nameTok)

		if p.current.Type == lexer.TokenComma {
			next := p.peekAhead(1)
			p.advance()
			if next.Type == lexer.TokenRightParen {
				break
			}
			continue
		}
		break
	}

	return params, toks, nil
}

// parseBlock parses a suite in either form:
//
//	block: NEWLINE INDENT statement+ DEDENT
//	     | simple_stmt
//
// The inline form covers one-liners like `if x: a = 1`.
func (p *Parser) parseBlock() ([]ast.Stmt, error) {
	for p.current.Type == lexer.TokenTypeComment {
		p.advance()
	}

	if p.current.Type == lexer.TokenNewline {
		p.advance()
		// Blank and annotation-only lines may sit between the header and
		// the indented body.
		for p.current.Type == lexer.TokenNewline || p.current.Type == lexer.TokenTypeComment {
			p.advance()
		}
		if _, err := p.expect(lexer.TokenIndent); err != nil {
			return nil, err
		}

		var stmts []ast.Stmt
		for p.current.Type != lexer.TokenDedent && p.current.Type != lexer.TokenEndMarker {
			if p.current.Type == lexer.TokenNewline || p.current.Type == lexer.TokenTypeComment {
				p.advance()
				continue
			}
			stmt, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, stmt)
		}
		if _, err := p.expect(lexer.TokenDedent); err != nil {
			return nil, err
		}
		return stmts, nil
	}

	stmt, err := p.parseSimpleStmt()
	if err != nil {
		return nil, err
	}
	return []ast.Stmt{stmt}, nil
}

// ----------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------

// parseExpression is the entry point of the precedence ladder.
func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseOr()
}

// parseOr parses `and_chain ('or' and_chain)*`, flattening a run of `or`
// into a single BoolOp with all the operands.
func (p *Parser) parseOr() (ast.Expr, error) {
	node, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.isKeyword("or") {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		if b, ok := node.(*ast.BoolOp); ok && b.Op == "or" {
			b.Values = append(b.Values, right)
		} else {
			node = &ast.BoolOp{Op: "or", Values: []ast.Expr{node, right}}
		}
	}

	return node, nil
}

// parseAnd parses `not_chain ('and' not_chain)*` with the same flattening
// as parseOr. A change of operator starts a new node, so `a or b and c`
// nests instead of extending.
func (p *Parser) parseAnd() (ast.Expr, error) {
	node, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for p.isKeyword("and") {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		if b, ok := node.(*ast.BoolOp); ok && b.Op == "and" {
			b.Values = append(b.Values, right)
		} else {
			node = &ast.BoolOp{Op: "and", Values: []ast.Expr{node, right}}
		}
	}

	return node, nil
}

// parseNot parses `'not' not_chain | comparison`. `not` is right
// recursive, so `not not x` nests naturally.
func (p *Parser) parseNot() (ast.Expr, error) {
	if p.isKeyword("not") {
		p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: "not", Operand: operand}, nil
	}
	return p.parseComparison()
}

// parseComparison parses `sum (comp_op sum)*`, collecting the whole chain
// into ONE Compare node with parallel operator and comparand lists, so
// `a < b <= c` has Ops ["<", "<="] and two comparators.
func (p *Parser) parseComparison() (ast.Expr, error) {
	node, err := p.parseArith()
	if err != nil {
		return nil, err
	}

	var (
		ops         []string
		comparators []ast.Expr
	)

	for isCompareOp(p.current.Type) {
		op := p.current.Lexeme
		p.advance()
		right, err := p.parseArith()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		comparators = append(comparators, right)
	}

	if len(ops) > 0 {
		return &ast.Compare{Left: node, Ops: ops, Comparators: comparators}, nil
	}
	return node, nil
}

func isCompareOp(tt lexer.TokenType) bool {
	switch tt {
	case lexer.TokenEqEqual, lexer.TokenNotEqual,
		lexer.TokenLess, lexer.TokenGreater,
		lexer.TokenLessEqual, lexer.TokenGreaterEqual:
		return true
	}
	return false
}

// parseArith parses `term (('+' | '-') term)*`, left associative.
func (p *Parser) parseArith() (ast.Expr, error) {
	node, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.current.Type == lexer.TokenPlus || p.current.Type == lexer.TokenMinus {
		op := p.current.Lexeme
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		node = &ast.BinOp{Left: node, Op: op, Right: right}
	}

	return node, nil
}

// parseTerm parses `factor (('*' | '/' | '//' | '%') factor)*`.
func (p *Parser) parseTerm() (ast.Expr, error) {
	node, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for {
		switch p.current.Type {
		case lexer.TokenStar, lexer.TokenSlash, lexer.TokenDoubleSlash, lexer.TokenPercent:
			op := p.current.Lexeme
			p.advance()
			right, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			node = &ast.BinOp{Left: node, Op: op, Right: right}
		default:
			return node, nil
		}
	}
}

// parseFactor parses prefix unary operators: `('+' | '-' | '~') factor | power`.
func (p *Parser) parseFactor() (ast.Expr, error) {
	switch p.current.Type {
	case lexer.TokenPlus, lexer.TokenMinus, lexer.TokenTilde:
		op := p.current.Lexeme
		p.advance()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: op, Operand: operand}, nil
	}
	return p.parsePower()
}

// parsePower parses `primary ['**' factor]`. The right operand re-enters
// factor, which makes `**` bind tighter than unary minus on its right and
// right-associate: `2 ** 3 ** 2` is 2 ** (3 ** 2).
func (p *Parser) parsePower() (ast.Expr, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	if p.current.Type == lexer.TokenDoubleStar {
		p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		node = &ast.BinOp{Left: node, Op: "**", Right: right}
	}

	return node, nil
}

// parsePrimary parses an atom followed by any number of postfix trailers:
//
//	primary: atom ('.' NAME | '(' [arglist] ')' | '[' expression ']')*
func (p *Parser) parsePrimary() (ast.Expr, error) {
	node, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		switch p.current.Type {
		case lexer.TokenDot:
			p.advance()
			nameTok, err := p.expect(lexer.TokenName)
			if err != nil {
				return nil, err
			}
			node = &ast.Attribute{Value: node, Attr: nameTok.Lexeme}

		case lexer.TokenLeftParen:
			p.advance()
			args, keywords, err := p.parseArglist()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.TokenRightParen); err != nil {
				return nil, err
			}
			node = &ast.Call{Func: node, Args: args, Keywords: keywords}

		case lexer.TokenLeftBracket:
			// Single-index subscript. The index is wrapped in a Slice so
			// downstream code has one shape for all bracket accesses.
			p.advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.TokenRightBracket); err != nil {
				return nil, err
			}
			node = &ast.Subscript{Value: node, Index: &ast.Slice{Start: index}}

		default:
			return node, nil
		}
	}
}

// parseArglist parses a call's argument list: positional and name=value
// keyword arguments in any order, with an optional trailing comma.
func (p *Parser) parseArglist() ([]ast.Expr, []*ast.KeywordArg, error) {
	var (
		args     []ast.Expr
		keywords []*ast.KeywordArg
	)

	if p.current.Type == lexer.TokenRightParen {
		return args, keywords, nil
	}

	for {
		if p.current.Type == lexer.TokenName && p.peekAhead(1).Type == lexer.TokenAssign {
			nameTok, err := p.expect(lexer.TokenName)
			if err != nil {
				return nil, nil, err
			}
			if _, err := p.expect(lexer.TokenAssign); err != nil {
				return nil, nil, err
			}
			value, err := p.parseExpression()
			if err != nil {
				return nil, nil, err
			}
			keywords = append(keywords, &ast.KeywordArg{Name: nameTok.Lexeme, Value: value})
		} else {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, nil, err
			}
			args = append(args, arg)
		}

		if p.current.Type == lexer.TokenComma {
			next := p.peekAhead(1)
			p.advance()
			if next.Type == lexer.TokenRightParen {
				break
			}
			continue
		}
		break
	}

	return args, keywords, nil
}

// parseAtom parses the leaves of the expression grammar:
//
//	atom: NAME | NUMBER | STRING | '(' expression ')'
//
// True, False, and None are recognized here by lexeme and become literal
// nodes rather than Names.
func (p *Parser) parseAtom() (ast.Expr, error) {
	tok := p.current

	switch tok.Type {
	case lexer.TokenName:
		p.advance()
		switch tok.Lexeme {
		case "True":
			return &ast.Bool{Value: true}, nil
		case "False":
			return &ast.Bool{Value: false}, nil
		case "None":
			return &ast.NoneLit{}, nil
		}
		return &ast.Name{ID: tok.Lexeme}, nil

	case lexer.TokenNumber:
		p.advance()
		return &ast.Num{Value: tok.Num}, nil

	case lexer.TokenString:
		p.advance()
		return &ast.Str{Value: tok.Lexeme}, nil

	case lexer.TokenLeftParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenRightParen); err != nil {
			return nil, err
		}
		return expr, nil
	}

	return nil, p.errorf("expected NAME, NUMBER, STRING, or parenthesized expression, found %s",
		tok.Type)
}
