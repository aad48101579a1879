package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) executeStatement(node ast.Stmt, env *runtime.Environment) (completion, error) {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		if _, err := i.evaluateExpression(n.Expression, env); err != nil {
			return normalCompletion, err
		}
		return normalCompletion, nil
	case *ast.VarStatement:
		return normalCompletion, i.executeVar(n, env)
	case *ast.BlockStatement:
		return i.executeBlock(n.Statements, runtime.NewEnvironment(env))
	case *ast.IfStatement:
		return i.executeIf(n, env)
	case *ast.WhileStatement:
		return i.executeWhile(n, env)
	case *ast.FunctionStatement:
		env.Define(n.Name.Lexeme, &runtime.FunctionValue{Declaration: n, Closure: env})
		return normalCompletion, nil
	case *ast.ClassStatement:
		return normalCompletion, i.executeClass(n, env)
	case *ast.ReturnStatement:
		var value runtime.Value = runtime.NilValue{}
		if n.Value != nil {
			v, err := i.evaluateExpression(n.Value, env)
			if err != nil {
				return normalCompletion, err
			}
			value = v
		}
		return completion{kind: completionReturn, value: value}, nil
	case *ast.BreakStatement:
		return completion{kind: completionBreak}, nil
	case *ast.ContinueStatement:
		return completion{kind: completionContinue}, nil
	default:
		return normalCompletion, fmt.Errorf("unsupported statement type: %s", node.NodeType())
	}
}

// executeBlock runs stmts in env and stops at the first error or non-normal
// completion. The caller owns env, so nothing needs restoring afterwards.
func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *runtime.Environment) (completion, error) {
	for _, stmt := range stmts {
		result, err := i.executeStatement(stmt, env)
		if err != nil {
			return normalCompletion, err
		}
		if result.kind != completionNormal {
			return result, nil
		}
	}
	return normalCompletion, nil
}

func (i *Interpreter) executeVar(stmt *ast.VarStatement, env *runtime.Environment) error {
	if stmt.Initializer == nil {
		env.DefineUnassigned(stmt.Name.Lexeme)
		return nil
	}
	value, err := i.evaluateExpression(stmt.Initializer, env)
	if err != nil {
		return err
	}
	env.Define(stmt.Name.Lexeme, value)
	return nil
}

func (i *Interpreter) executeIf(stmt *ast.IfStatement, env *runtime.Environment) (completion, error) {
	cond, err := i.evaluateExpression(stmt.Condition, env)
	if err != nil {
		return normalCompletion, err
	}
	if runtime.IsTruthy(cond) {
		return i.executeStatement(stmt.ThenBranch, env)
	}
	if stmt.ElseBranch != nil {
		return i.executeStatement(stmt.ElseBranch, env)
	}
	return normalCompletion, nil
}

func (i *Interpreter) executeWhile(loop *ast.WhileStatement, env *runtime.Environment) (completion, error) {
	for {
		cond, err := i.evaluateExpression(loop.Condition, env)
		if err != nil {
			return normalCompletion, err
		}
		if !runtime.IsTruthy(cond) {
			return normalCompletion, nil
		}
		result, err := i.executeStatement(loop.Body, env)
		if err != nil {
			return normalCompletion, err
		}
		switch result.kind {
		case completionBreak:
			return normalCompletion, nil
		case completionReturn:
			return result, nil
		}
		if loop.Increment != nil {
			if _, err := i.evaluateExpression(loop.Increment, env); err != nil {
				return normalCompletion, err
			}
		}
	}
}

// executeClass binds the class name first so methods can refer to it, then
// replaces the placeholder once the method table is complete.
func (i *Interpreter) executeClass(stmt *ast.ClassStatement, env *runtime.Environment) error {
	var superclass *runtime.ClassValue
	if stmt.Superclass != nil {
		value, err := i.evaluateExpression(stmt.Superclass, env)
		if err != nil {
			return err
		}
		class, ok := value.(*runtime.ClassValue)
		if !ok {
			return newRuntimeError(stmt.Superclass.Name, "Superclass must be a class.")
		}
		superclass = class
	}

	env.Define(stmt.Name.Lexeme, runtime.NilValue{})

	methodEnv := env
	if superclass != nil {
		methodEnv = runtime.NewEnvironment(env)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*runtime.FunctionValue, len(stmt.Methods))
	for _, method := range stmt.Methods {
		methods[method.Name.Lexeme] = &runtime.FunctionValue{
			Declaration:   method,
			Closure:       methodEnv,
			IsInitializer: method.Name.Lexeme == "init",
		}
	}

	env.Define(stmt.Name.Lexeme, &runtime.ClassValue{
		Name:       stmt.Name.Lexeme,
		Superclass: superclass,
		Methods:    methods,
	})
	return nil
}
