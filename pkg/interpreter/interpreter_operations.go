package interpreter

import (
	"fmt"
	"strings"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateUnary(expr *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator.Type {
	case ast.Minus:
		num, ok := operand.(runtime.NumberValue)
		if !ok {
			return nil, newRuntimeError(expr.Operator, "Operand must be a number.")
		}
		return runtime.NumberValue{Val: -num.Val}, nil
	case ast.Bang:
		return runtime.BoolValue{Val: !runtime.IsTruthy(operand)}, nil
	default:
		return nil, fmt.Errorf("unsupported unary operator %s", expr.Operator.Lexeme)
	}
}

// evaluateBinary evaluates both operands left to right before applying the
// operator.
func (i *Interpreter) evaluateBinary(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	return applyBinaryOperator(expr.Operator, left, right)
}

func applyBinaryOperator(op ast.Token, left, right runtime.Value) (runtime.Value, error) {
	switch op.Type {
	case ast.EqualEqual:
		return runtime.BoolValue{Val: runtime.Equal(left, right)}, nil
	case ast.BangEqual:
		return runtime.BoolValue{Val: !runtime.Equal(left, right)}, nil
	case ast.Plus:
		if l, r, ok := numberOperands(left, right); ok {
			return runtime.NumberValue{Val: l + r}, nil
		}
		if l, r, ok := stringOperands(left, right); ok {
			return runtime.StringValue{Val: l + r}, nil
		}
		return nil, newRuntimeError(op, "Operands must be two numbers or two strings.")
	case ast.Greater, ast.GreaterEqual, ast.Less, ast.LessEqual:
		return compare(op, left, right)
	case ast.Minus, ast.Star, ast.Slash:
		l, r, ok := numberOperands(left, right)
		if !ok {
			return nil, newRuntimeError(op, "Operands must be numbers.")
		}
		switch op.Type {
		case ast.Minus:
			return runtime.NumberValue{Val: l - r}, nil
		case ast.Star:
			return runtime.NumberValue{Val: l * r}, nil
		default:
			if r == 0 {
				return nil, newRuntimeError(op, "Cannot divide by zero.")
			}
			return runtime.NumberValue{Val: l / r}, nil
		}
	default:
		return nil, fmt.Errorf("unsupported binary operator %s", op.Lexeme)
	}
}

// compare orders two numbers numerically or two strings lexicographically.
func compare(op ast.Token, left, right runtime.Value) (runtime.Value, error) {
	var cmp int
	if l, r, ok := numberOperands(left, right); ok {
		switch {
		case l < r:
			cmp = -1
		case l > r:
			cmp = 1
		case l != r:
			// NaN never orders.
			return runtime.BoolValue{Val: false}, nil
		}
	} else if l, r, ok := stringOperands(left, right); ok {
		cmp = strings.Compare(l, r)
	} else {
		return nil, newRuntimeError(op, "Operands must be two numbers or two strings.")
	}

	var result bool
	switch op.Type {
	case ast.Greater:
		result = cmp > 0
	case ast.GreaterEqual:
		result = cmp >= 0
	case ast.Less:
		result = cmp < 0
	case ast.LessEqual:
		result = cmp <= 0
	}
	return runtime.BoolValue{Val: result}, nil
}

func numberOperands(left, right runtime.Value) (float64, float64, bool) {
	l, ok := left.(runtime.NumberValue)
	if !ok {
		return 0, 0, false
	}
	r, ok := right.(runtime.NumberValue)
	if !ok {
		return 0, 0, false
	}
	return l.Val, r.Val, true
}

func stringOperands(left, right runtime.Value) (string, string, bool) {
	l, ok := left.(runtime.StringValue)
	if !ok {
		return "", "", false
	}
	r, ok := right.(runtime.StringValue)
	if !ok {
		return "", "", false
	}
	return l.Val, r.Val, true
}
