package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateGet(expr *ast.GetExpression, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(expr.Object, env)
	if err != nil {
		return nil, err
	}
	inst, ok := object.(*runtime.InstanceValue)
	if !ok {
		return nil, newRuntimeError(expr.Name, "Only instances have properties.")
	}
	value, ok := inst.Get(expr.Name.Lexeme)
	if !ok {
		return nil, newRuntimeError(expr.Name, "Undefined property '%s'.", expr.Name.Lexeme)
	}
	return value, nil
}

func (i *Interpreter) evaluateSet(expr *ast.SetExpression, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(expr.Object, env)
	if err != nil {
		return nil, err
	}
	inst, ok := object.(*runtime.InstanceValue)
	if !ok {
		return nil, newRuntimeError(expr.Name, "Only instances have fields.")
	}
	value, err := i.evaluateExpression(expr.Value, env)
	if err != nil {
		return nil, err
	}
	inst.Set(expr.Name.Lexeme, value)
	return value, nil
}

// evaluateSuper looks the method up starting at the superclass but binds it
// to the current instance, which lives one frame below `super`.
func (i *Interpreter) evaluateSuper(expr *ast.SuperExpression, env *runtime.Environment) (runtime.Value, error) {
	distance, ok := i.locals[expr]
	if !ok {
		return nil, newRuntimeError(expr.Keyword, "Can't use 'super' outside of a class.")
	}
	superValue, err := env.GetAt(distance, "super")
	if err != nil {
		return nil, i.wrapEnvironmentError(expr.Keyword, err)
	}
	superclass, ok := superValue.(*runtime.ClassValue)
	if !ok {
		return nil, fmt.Errorf("super bound to %s", superValue.Kind())
	}
	thisValue, err := env.GetAt(distance-1, "this")
	if err != nil {
		return nil, i.wrapEnvironmentError(expr.Keyword, err)
	}
	instance, ok := thisValue.(*runtime.InstanceValue)
	if !ok {
		return nil, fmt.Errorf("this bound to %s", thisValue.Kind())
	}

	method, ok := superclass.FindMethod(expr.Method.Lexeme)
	if !ok {
		return nil, newRuntimeError(expr.Method, "Undefined property '%s'.", expr.Method.Lexeme)
	}
	return method.Bind(instance), nil
}
