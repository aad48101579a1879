package runtime

import (
	"testing"

	"lox/interpreter-go/pkg/ast"
)

func TestIsTruthy(t *testing.T) {
	cases := []struct {
		value Value
		want  bool
	}{
		{NilValue{}, false},
		{nil, false},
		{BoolValue{Val: false}, false},
		{BoolValue{Val: true}, true},
		{NumberValue{Val: 0}, true},
		{StringValue{Val: ""}, true},
		{NewInstance(&ClassValue{Name: "A"}), true},
	}
	for _, tc := range cases {
		if got := IsTruthy(tc.value); got != tc.want {
			t.Fatalf("IsTruthy(%#v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestEqual(t *testing.T) {
	inst := NewInstance(&ClassValue{Name: "A"})
	clock := NativeFunctionValue{Name: "clock"}
	cases := []struct {
		a, b Value
		want bool
	}{
		{NilValue{}, NilValue{}, true},
		{NilValue{}, BoolValue{Val: false}, false},
		{NumberValue{Val: 1}, NumberValue{Val: 1}, true},
		{NumberValue{Val: 1}, StringValue{Val: "1"}, false},
		{StringValue{Val: "a"}, StringValue{Val: "a"}, true},
		{inst, inst, true},
		{inst, NewInstance(inst.Class), false},
		{clock, clock, true},
	}
	for _, tc := range cases {
		if got := Equal(tc.a, tc.b); got != tc.want {
			t.Fatalf("Equal(%#v, %#v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestFromLiteral(t *testing.T) {
	if v, ok := FromLiteral(2.5).(NumberValue); !ok || v.Val != 2.5 {
		t.Fatalf("unexpected number conversion %#v", v)
	}
	if v, ok := FromLiteral("s").(StringValue); !ok || v.Val != "s" {
		t.Fatalf("unexpected string conversion %#v", v)
	}
	if _, ok := FromLiteral(nil).(NilValue); !ok {
		t.Fatalf("expected nil conversion")
	}
}

func method(name string, params ...string) *ast.FunctionStatement {
	return ast.Fn(name, params)
}

func TestClassMethodLookupWalksSuperclasses(t *testing.T) {
	base := &ClassValue{Name: "Base", Methods: map[string]*FunctionValue{
		"greet": {Declaration: method("greet")},
		"init":  {Declaration: method("init", "a", "b"), IsInitializer: true},
	}}
	derived := &ClassValue{Name: "Derived", Superclass: base, Methods: map[string]*FunctionValue{
		"greet": {Declaration: method("greet")},
	}}

	m, ok := derived.FindMethod("greet")
	if !ok || m != derived.Methods["greet"] {
		t.Fatalf("expected derived override")
	}
	if _, ok := derived.FindMethod("init"); !ok {
		t.Fatalf("expected inherited init")
	}
	if derived.Arity() != 2 {
		t.Fatalf("expected class arity from inherited init, got %d", derived.Arity())
	}
	if (&ClassValue{Name: "Empty"}).Arity() != 0 {
		t.Fatalf("expected zero arity without init")
	}
}

func TestInstanceGetBindsMethodsAndPrefersFields(t *testing.T) {
	closure := NewEnvironment(nil)
	class := &ClassValue{Name: "A", Methods: map[string]*FunctionValue{
		"m": {Declaration: method("m"), Closure: closure},
	}}
	inst := NewInstance(class)

	v, ok := inst.Get("m")
	if !ok {
		t.Fatalf("expected method lookup to succeed")
	}
	bound, ok := v.(*FunctionValue)
	if !ok {
		t.Fatalf("expected bound function, got %#v", v)
	}
	if bound.Closure.Ancestor(1) != closure {
		t.Fatalf("bound closure should extend the method closure")
	}
	this, err := bound.Closure.GetAt(0, "this")
	if err != nil || this != Value(inst) {
		t.Fatalf("expected this bound to the instance, got %#v (%v)", this, err)
	}
	if keys := bound.Closure.Keys(); len(keys) != 1 {
		t.Fatalf("bound frame should define only this, got %v", keys)
	}

	inst.Set("m", NumberValue{Val: 1})
	v, _ = inst.Get("m")
	if _, ok := v.(NumberValue); !ok {
		t.Fatalf("expected field to shadow method, got %#v", v)
	}
	if _, ok := inst.Get("missing"); ok {
		t.Fatalf("expected missing property lookup to fail")
	}
}
