package interpreter

import (
	"errors"
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expr, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.LiteralExpression:
		return runtime.FromLiteral(n.Value), nil
	case *ast.GroupingExpression:
		return i.evaluateExpression(n.Inner, env)
	case *ast.UnaryExpression:
		return i.evaluateUnary(n, env)
	case *ast.BinaryExpression:
		return i.evaluateBinary(n, env)
	case *ast.LogicalExpression:
		return i.evaluateLogical(n, env)
	case *ast.TernaryExpression:
		cond, err := i.evaluateExpression(n.Condition, env)
		if err != nil {
			return nil, err
		}
		if runtime.IsTruthy(cond) {
			return i.evaluateExpression(n.Then, env)
		}
		return i.evaluateExpression(n.Else, env)
	case *ast.VariableExpression:
		return i.lookupVariable(n.Name, n, env)
	case *ast.AssignExpression:
		return i.evaluateAssign(n, env)
	case *ast.CallExpression:
		return i.evaluateCall(n, env)
	case *ast.GetExpression:
		return i.evaluateGet(n, env)
	case *ast.SetExpression:
		return i.evaluateSet(n, env)
	case *ast.ThisExpression:
		return i.lookupVariable(n.Keyword, n, env)
	case *ast.SuperExpression:
		return i.evaluateSuper(n, env)
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", node.NodeType())
	}
}

func (i *Interpreter) evaluateLogical(expr *ast.LogicalExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	if expr.Operator.Type == ast.Or {
		if runtime.IsTruthy(left) {
			return left, nil
		}
	} else if !runtime.IsTruthy(left) {
		return left, nil
	}
	return i.evaluateExpression(expr.Right, env)
}

// lookupVariable reads name through the resolved distance for expr, or from
// the global frame when the resolver left it unannotated.
func (i *Interpreter) lookupVariable(name ast.Token, expr ast.Expr, env *runtime.Environment) (runtime.Value, error) {
	frame := i.global
	if distance, ok := i.locals[expr]; ok {
		frame = env.Ancestor(distance)
	}
	value, err := frame.GetAt(0, name.Lexeme)
	if err != nil {
		return nil, i.wrapEnvironmentError(name, err)
	}
	if i.strict && frame.IsUnassigned(name.Lexeme) {
		return nil, newRuntimeError(name, "Unassigned variable '%s'.", name.Lexeme)
	}
	return value, nil
}

func (i *Interpreter) evaluateAssign(expr *ast.AssignExpression, env *runtime.Environment) (runtime.Value, error) {
	value, err := i.evaluateExpression(expr.Value, env)
	if err != nil {
		return nil, err
	}
	if distance, ok := i.locals[expr]; ok {
		err = env.AssignAt(distance, expr.Name.Lexeme, value)
	} else {
		err = i.global.Assign(expr.Name.Lexeme, value)
	}
	if err != nil {
		return nil, i.wrapEnvironmentError(expr.Name, err)
	}
	return value, nil
}

func (i *Interpreter) wrapEnvironmentError(name ast.Token, err error) error {
	var undefined runtime.UndefinedVariableError
	if errors.As(err, &undefined) {
		return newRuntimeError(name, "%s", undefined.Error())
	}
	return err
}
