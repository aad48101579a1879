// Package parser builds statement trees from a Lox token stream using
// recursive descent with one token of lookahead.
package parser

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/driver"
)

// maxArguments bounds both call arguments and declared parameters.
const maxArguments = 255

// Parser consumes a token slice produced by the lexer. Syntax errors are
// reported to the diagnostics collector; the parser then resynchronizes and
// keeps going so a single pass surfaces every error.
type Parser struct {
	tokens  []ast.Token
	current int
	diags   *driver.Diagnostics
}

// New creates a parser over tokens. The slice must end with an EOF token.
func New(tokens []ast.Token, diags *driver.Diagnostics) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != ast.EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens, ast.Token{Type: ast.EOF, Line: line})
	}
	return &Parser{tokens: tokens, diags: diags}
}

// Parse parses a whole program. Statements that failed to parse are omitted
// from the result; their errors are in diags.
func Parse(tokens []ast.Token, diags *driver.Diagnostics) []ast.Stmt {
	return New(tokens, diags).ParseProgram()
}

// ParseREPL parses one interactive input. A final expression without a
// terminating ';' is returned separately as echo so the caller can print its
// value; echo is nil when the input ends with an ordinary statement.
func ParseREPL(tokens []ast.Token, diags *driver.Diagnostics) (stmts []ast.Stmt, echo ast.Expr) {
	p := New(tokens, diags)
	for !p.isAtEnd() {
		if expr, ok := p.trailingExpression(); ok {
			return stmts, expr
		}
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts, nil
}

// ParseProgram parses declarations until EOF.
func (p *Parser) ParseProgram() []ast.Stmt {
	stmts := make([]ast.Stmt, 0)
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// trailingExpression tries to read the rest of the input as one bare
// expression. On failure the position is restored and nothing is reported.
func (p *Parser) trailingExpression() (ast.Expr, bool) {
	start := p.current
	outer := p.diags
	probe := driver.NewDiagnostics()
	p.diags = probe
	expr, err := p.expression()
	p.diags = outer

	if err != nil || !p.isAtEnd() {
		p.current = start
		return nil, false
	}
	for _, diag := range probe.Items() {
		p.diags.Report(diag)
	}
	return expr, true
}

//-----------------------------------------------------------------------------
// Token cursor
//-----------------------------------------------------------------------------

func (p *Parser) match(types ...ast.TokenType) bool {
	for _, kind := range types {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(kind ast.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == kind
}

func (p *Parser) advance() ast.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == ast.EOF
}

func (p *Parser) peek() ast.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() ast.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) consume(kind ast.TokenType, message string) (ast.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return ast.Token{}, p.errorAt(p.peek(), message)
}
