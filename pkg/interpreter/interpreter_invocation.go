package interpreter

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

// evaluateCall evaluates the callee, then the arguments left to right, then
// dispatches on the callee kind.
func (i *Interpreter) evaluateCall(expr *ast.CallExpression, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(expr.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(expr.Arguments))
	for _, argExpr := range expr.Arguments {
		arg, err := i.evaluateExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return i.callValue(callee, args, expr.Paren)
}

func (i *Interpreter) callValue(callee runtime.Value, args []runtime.Value, paren ast.Token) (runtime.Value, error) {
	switch fn := callee.(type) {
	case *runtime.FunctionValue:
		if err := checkArity(paren, fn.Arity(), len(args)); err != nil {
			return nil, err
		}
		return i.invokeFunction(fn, args)
	case runtime.NativeFunctionValue:
		if err := checkArity(paren, fn.Arity, len(args)); err != nil {
			return nil, err
		}
		ctx := &runtime.NativeCallContext{Out: i.out, Input: i.input, Now: i.now}
		result, err := fn.Impl(ctx, args)
		if err != nil {
			return nil, &NativeError{Function: fn.Name, Token: paren, Message: err.Error()}
		}
		if result == nil {
			result = runtime.NilValue{}
		}
		return result, nil
	case *runtime.ClassValue:
		if err := checkArity(paren, fn.Arity(), len(args)); err != nil {
			return nil, err
		}
		return i.instantiate(fn, args)
	default:
		return nil, newRuntimeError(paren, "Can only call functions and classes.")
	}
}

func checkArity(paren ast.Token, expected, got int) error {
	if expected != got {
		return newRuntimeError(paren, "Expected %d arguments but got %d.", expected, got)
	}
	return nil
}

// invokeFunction runs the body in a fresh frame holding the parameters.
// An initializer always yields its instance, whatever the body returned.
func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	env := runtime.NewEnvironment(fn.Closure)
	for idx, param := range fn.Declaration.Params {
		env.Define(param.Lexeme, args[idx])
	}

	result, err := i.executeBlock(fn.Declaration.Body, env)
	if err != nil {
		return nil, err
	}
	if fn.IsInitializer {
		return fn.Closure.GetAt(0, "this")
	}
	if result.kind == completionReturn && result.value != nil {
		return result.value, nil
	}
	return runtime.NilValue{}, nil
}

func (i *Interpreter) instantiate(class *runtime.ClassValue, args []runtime.Value) (runtime.Value, error) {
	instance := runtime.NewInstance(class)
	if init, ok := class.FindMethod("init"); ok {
		if _, err := i.invokeFunction(init.Bind(instance), args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}
