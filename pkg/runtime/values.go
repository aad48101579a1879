package runtime

import (
	"fmt"
	"io"
	"time"

	"lox/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindFunction
	KindNativeFunction
	KindClass
	KindInstance
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// FromLiteral converts a token literal (nil, bool, float64 or string) into a
// runtime value.
func FromLiteral(literal any) Value {
	switch v := literal.(type) {
	case bool:
		return BoolValue{Val: v}
	case float64:
		return NumberValue{Val: v}
	case string:
		return StringValue{Val: v}
	default:
		return NilValue{}
	}
}

// IsTruthy applies the language's truthiness rule: only nil and false are
// false.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case nil, NilValue:
		return false
	case BoolValue:
		return val.Val
	default:
		return true
	}
}

// Equal implements `==`. Values of different kinds are never equal; objects
// compare by identity.
func Equal(a, b Value) bool {
	if a == nil {
		a = NilValue{}
	}
	if b == nil {
		b = NilValue{}
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case NilValue:
		return true
	case BoolValue:
		return av.Val == b.(BoolValue).Val
	case NumberValue:
		return av.Val == b.(NumberValue).Val
	case StringValue:
		return av.Val == b.(StringValue).Val
	case NativeFunctionValue:
		return av.Name == b.(NativeFunctionValue).Name
	default:
		return a == b
	}
}

//-----------------------------------------------------------------------------
// Functions & closures
//-----------------------------------------------------------------------------

// FunctionValue pairs a declaration with the frame it closed over.
type FunctionValue struct {
	Declaration   *ast.FunctionStatement
	Closure       *Environment
	IsInitializer bool
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

func (v *FunctionValue) Name() string {
	return v.Declaration.Name.Lexeme
}

func (v *FunctionValue) Arity() int {
	return len(v.Declaration.Params)
}

// Bind returns a copy of the method whose closure is a new frame defining
// `this` as instance.
func (v *FunctionValue) Bind(instance *InstanceValue) *FunctionValue {
	env := NewEnvironment(v.Closure)
	env.Define("this", instance)
	return &FunctionValue{Declaration: v.Declaration, Closure: env, IsInitializer: v.IsInitializer}
}

// LineReader supplies input() with one line at a time, without its
// terminator. It returns io.EOF once input is exhausted.
type LineReader interface {
	ReadLine() (string, error)
}

// NativeCallContext carries the host resources a native binding may use.
type NativeCallContext struct {
	Out   io.Writer
	Input LineReader
	Now   func() time.Time
}

type NativeFunc func(*NativeCallContext, []Value) (Value, error)

type NativeFunctionValue struct {
	Name  string
	Arity int
	Impl  NativeFunc
}

func (v NativeFunctionValue) Kind() Kind { return KindNativeFunction }

//-----------------------------------------------------------------------------
// Classes & instances
//-----------------------------------------------------------------------------

// ClassValue holds a method table and an optional superclass. Methods are
// stored unbound; they are bound to an instance on lookup.
type ClassValue struct {
	Name       string
	Superclass *ClassValue
	Methods    map[string]*FunctionValue
}

func (v *ClassValue) Kind() Kind { return KindClass }

// FindMethod searches this class, then each superclass in turn.
func (v *ClassValue) FindMethod(name string) (*FunctionValue, bool) {
	for class := v; class != nil; class = class.Superclass {
		if method, ok := class.Methods[name]; ok {
			return method, true
		}
	}
	return nil, false
}

// Arity is the arity of init, or zero when no class in the chain defines it.
func (v *ClassValue) Arity() int {
	if init, ok := v.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

type InstanceValue struct {
	Class  *ClassValue
	fields map[string]Value
}

func NewInstance(class *ClassValue) *InstanceValue {
	return &InstanceValue{Class: class, fields: make(map[string]Value)}
}

func (v *InstanceValue) Kind() Kind { return KindInstance }

// Get resolves a property: own fields shadow methods, and methods come back
// bound to v.
func (v *InstanceValue) Get(name string) (Value, bool) {
	if value, ok := v.fields[name]; ok {
		return value, true
	}
	if method, ok := v.Class.FindMethod(name); ok {
		return method.Bind(v), true
	}
	return nil, false
}

func (v *InstanceValue) Set(name string, value Value) {
	v.fields[name] = value
}
