package parser

import (
	"lox/interpreter-go/pkg/ast"
)

// compoundOperators maps compound assignment tokens to the binary operator
// they expand to.
var compoundOperators = map[ast.TokenType]ast.TokenType{
	ast.PlusEqual:  ast.Plus,
	ast.MinusEqual: ast.Minus,
	ast.StarEqual:  ast.Star,
	ast.SlashEqual: ast.Slash,
}

func (p *Parser) expression() (ast.Expr, error) {
	return p.assignment()
}

// assignment covers the lowest tier: `=`, compound assignment and the
// conditional operator, all right-associative.
func (p *Parser) assignment() (ast.Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	switch {
	case p.match(ast.Question):
		question := p.previous()
		then, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(ast.Colon, "Expect ':' after then branch of conditional expression."); err != nil {
			return nil, err
		}
		els, err := p.assignment()
		if err != nil {
			return nil, err
		}
		return ast.NewTernaryExpression(question, expr, then, els), nil

	case p.match(ast.Equal):
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		switch target := expr.(type) {
		case *ast.VariableExpression:
			return ast.NewAssignExpression(target.Name, value), nil
		case *ast.GetExpression:
			return ast.NewSetExpression(target.Object, target.Name, value), nil
		}
		p.report(equals, "Invalid assignment target.")
		return expr, nil

	case p.match(ast.PlusEqual, ast.MinusEqual, ast.StarEqual, ast.SlashEqual):
		op := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if target, ok := expr.(*ast.VariableExpression); ok {
			binaryOp := ast.Token{Type: compoundOperators[op.Type], Lexeme: op.Lexeme, Line: op.Line}
			return ast.NewAssignExpression(target.Name, ast.NewBinaryExpression(binaryOp, target, value)), nil
		}
		p.report(op, "Invalid assignment target.")
		return expr, nil
	}
	return expr, nil
}

func (p *Parser) or() (ast.Expr, error) {
	return p.logical(p.and, ast.Or)
}

func (p *Parser) and() (ast.Expr, error) {
	return p.logical(p.equality, ast.And)
}

func (p *Parser) equality() (ast.Expr, error) {
	return p.binary(p.comparison, ast.BangEqual, ast.EqualEqual)
}

func (p *Parser) comparison() (ast.Expr, error) {
	return p.binary(p.term, ast.Greater, ast.GreaterEqual, ast.Less, ast.LessEqual)
}

func (p *Parser) term() (ast.Expr, error) {
	return p.binary(p.factor, ast.Minus, ast.Plus)
}

func (p *Parser) factor() (ast.Expr, error) {
	return p.binary(p.unary, ast.Slash, ast.Star)
}

// binary parses a left-associative chain of operators at one precedence tier.
func (p *Parser) binary(operand func() (ast.Expr, error), operators ...ast.TokenType) (ast.Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(operators...) {
		op := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpression(op, expr, right)
	}
	return expr, nil
}

func (p *Parser) logical(operand func() (ast.Expr, error), operator ast.TokenType) (ast.Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(operator) {
		op := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = ast.NewLogicalExpression(op, expr, right)
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expr, error) {
	if p.match(ast.Bang, ast.Minus) {
		op := p.previous()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpression(op, operand), nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(ast.LeftParen):
			if expr, err = p.finishCall(expr); err != nil {
				return nil, err
			}
		case p.match(ast.Dot):
			name, err := p.consume(ast.Identifier, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = ast.NewGetExpression(expr, name)
		default:
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) (ast.Expr, error) {
	args := make([]ast.Expr, 0)
	if !p.check(ast.RightParen) {
		for {
			if len(args) >= maxArguments {
				p.report(p.peek(), "Can't have more than 255 arguments.")
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(ast.Comma) {
				break
			}
		}
	}
	paren, err := p.consume(ast.RightParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return ast.NewCallExpression(callee, paren, args), nil
}

func (p *Parser) primary() (ast.Expr, error) {
	switch {
	case p.match(ast.False):
		return ast.NewLiteralExpression(false), nil
	case p.match(ast.True):
		return ast.NewLiteralExpression(true), nil
	case p.match(ast.Nil):
		return ast.NewLiteralExpression(nil), nil
	case p.match(ast.Number, ast.String):
		return ast.NewLiteralExpression(p.previous().Literal), nil
	case p.match(ast.This):
		return ast.NewThisExpression(p.previous()), nil
	case p.match(ast.Super):
		keyword := p.previous()
		if _, err := p.consume(ast.Dot, "Expect '.' after 'super'."); err != nil {
			return nil, err
		}
		method, err := p.consume(ast.Identifier, "Expect superclass method name.")
		if err != nil {
			return nil, err
		}
		return ast.NewSuperExpression(keyword, method), nil
	case p.match(ast.Identifier):
		return ast.NewVariableExpression(p.previous()), nil
	case p.match(ast.LeftParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(ast.RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return ast.NewGroupingExpression(expr), nil
	}
	return nil, p.errorAt(p.peek(), "Expect expression.")
}
