package parser

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/driver"
)

// parseError unwinds the current declaration after the problem has been
// reported. It is never surfaced to callers of Parse.
type parseError struct {
	token   ast.Token
	message string
}

func (e *parseError) Error() string {
	if e.token.Type == ast.EOF {
		return fmt.Sprintf("parser: line %d at end: %s", e.token.Line, e.message)
	}
	return fmt.Sprintf("parser: line %d at '%s': %s", e.token.Line, e.token.Lexeme, e.message)
}

// errorAt reports a syntax error and returns the error that unwinds to
// declaration.
func (p *Parser) errorAt(tok ast.Token, message string) error {
	p.report(tok, message)
	return &parseError{token: tok, message: message}
}

// report records a syntax error without unwinding.
func (p *Parser) report(tok ast.Token, message string) {
	p.diags.ErrorAtToken(driver.StageSyntax, tok, message)
}

// synchronize discards tokens until a likely statement boundary: just past a
// ';' or right before a keyword that starts a declaration or statement.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == ast.Semicolon {
			return
		}
		switch p.peek().Type {
		case ast.Class, ast.For, ast.Fun, ast.If, ast.Return, ast.Var, ast.While:
			return
		}
		p.advance()
	}
}
