package parser

import (
	"lox/interpreter-go/pkg/ast"
)

type functionKind string

const (
	kindFunction functionKind = "function"
	kindMethod   functionKind = "method"
)

// declaration parses one declaration or statement. On a syntax error it
// resynchronizes and returns nil.
func (p *Parser) declaration() ast.Stmt {
	var (
		stmt ast.Stmt
		err  error
	)
	switch {
	case p.match(ast.Class):
		stmt, err = p.classDeclaration()
	case p.match(ast.Fun):
		stmt, err = p.function(kindFunction)
	case p.match(ast.Var):
		stmt, err = p.varDeclaration()
	default:
		stmt, err = p.statement()
	}
	if err != nil {
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *Parser) classDeclaration() (ast.Stmt, error) {
	name, err := p.consume(ast.Identifier, "Expect class name.")
	if err != nil {
		return nil, err
	}

	var superclass *ast.VariableExpression
	if p.match(ast.Less) {
		superName, err := p.consume(ast.Identifier, "Expect superclass name.")
		if err != nil {
			return nil, err
		}
		superclass = ast.NewVariableExpression(superName)
	}

	if _, err := p.consume(ast.LeftBrace, "Expect '{' before class body."); err != nil {
		return nil, err
	}
	methods := make([]*ast.FunctionStatement, 0)
	for !p.check(ast.RightBrace) && !p.isAtEnd() {
		method, err := p.function(kindMethod)
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	if _, err := p.consume(ast.RightBrace, "Expect '}' after class body."); err != nil {
		return nil, err
	}
	return ast.NewClassStatement(name, superclass, methods), nil
}

func (p *Parser) function(kind functionKind) (*ast.FunctionStatement, error) {
	name, err := p.consume(ast.Identifier, "Expect "+string(kind)+" name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.LeftParen, "Expect '(' after "+string(kind)+" name."); err != nil {
		return nil, err
	}

	params := make([]ast.Token, 0)
	if !p.check(ast.RightParen) {
		for {
			if len(params) >= maxArguments {
				p.report(p.peek(), "Can't have more than 255 parameters.")
			}
			param, err := p.consume(ast.Identifier, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(ast.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(ast.RightParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}

	if _, err := p.consume(ast.LeftBrace, "Expect '{' before "+string(kind)+" body."); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionStatement(name, params, body), nil
}

func (p *Parser) varDeclaration() (ast.Stmt, error) {
	name, err := p.consume(ast.Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var initializer ast.Expr
	if p.match(ast.Equal) {
		if initializer, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(ast.Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return ast.NewVarStatement(name, initializer), nil
}

func (p *Parser) statement() (ast.Stmt, error) {
	switch {
	case p.match(ast.For):
		return p.forStatement()
	case p.match(ast.If):
		return p.ifStatement()
	case p.match(ast.Return):
		return p.returnStatement()
	case p.match(ast.While):
		return p.whileStatement()
	case p.match(ast.Break):
		keyword := p.previous()
		if _, err := p.consume(ast.Semicolon, "Expect ';' after 'break'."); err != nil {
			return nil, err
		}
		return ast.NewBreakStatement(keyword), nil
	case p.match(ast.Continue):
		keyword := p.previous()
		if _, err := p.consume(ast.Semicolon, "Expect ';' after 'continue'."); err != nil {
			return nil, err
		}
		return ast.NewContinueStatement(keyword), nil
	case p.match(ast.LeftBrace):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return ast.NewBlockStatement(stmts), nil
	default:
		return p.expressionStatement()
	}
}

// forStatement desugars `for (init; cond; incr) body` into
// `{ init; while (cond) { body; incr; } }`. The increment is kept on the
// while node so continue still runs it.
func (p *Parser) forStatement() (ast.Stmt, error) {
	if _, err := p.consume(ast.LeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var (
		initializer ast.Stmt
		err         error
	)
	switch {
	case p.match(ast.Semicolon):
	case p.match(ast.Var):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var condition ast.Expr
	if !p.check(ast.Semicolon) {
		if condition, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(ast.Semicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment ast.Expr
	if !p.check(ast.RightParen) {
		if increment, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(ast.RightParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if condition == nil {
		condition = ast.NewLiteralExpression(true)
	}
	loop := ast.NewWhileStatement(condition, body)
	loop.Increment = increment

	if initializer == nil {
		return loop, nil
	}
	return ast.NewBlockStatement([]ast.Stmt{initializer, loop}), nil
}

func (p *Parser) ifStatement() (ast.Stmt, error) {
	if _, err := p.consume(ast.LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.RightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Stmt
	if p.match(ast.Else) {
		if elseBranch, err = p.statement(); err != nil {
			return nil, err
		}
	}
	return ast.NewIfStatement(condition, thenBranch, elseBranch), nil
}

func (p *Parser) returnStatement() (ast.Stmt, error) {
	keyword := p.previous()
	var (
		value ast.Expr
		err   error
	)
	if !p.check(ast.Semicolon) {
		if value, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(ast.Semicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return ast.NewReturnStatement(keyword, value), nil
}

func (p *Parser) whileStatement() (ast.Stmt, error) {
	if _, err := p.consume(ast.LeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.RightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return ast.NewWhileStatement(condition, body), nil
}

// block parses declarations up to the closing brace; the opening brace has
// already been consumed. A failed declaration inside the block is dropped
// after resynchronizing, like at top level.
func (p *Parser) block() ([]ast.Stmt, error) {
	stmts := make([]ast.Stmt, 0)
	for !p.check(ast.RightBrace) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if _, err := p.consume(ast.RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) expressionStatement() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return ast.NewExpressionStatement(expr), nil
}
