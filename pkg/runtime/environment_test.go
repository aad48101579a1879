package runtime

import (
	"errors"
	"testing"
)

func TestEnvironmentGetWalksParents(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("a", NumberValue{Val: 1})
	child := NewEnvironment(global)
	child.Define("b", StringValue{Val: "x"})

	v, err := child.Get("a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, ok := v.(NumberValue); !ok || got.Val != 1 {
		t.Fatalf("unexpected value %#v", v)
	}

	_, err = global.Get("b")
	var undefined UndefinedVariableError
	if !errors.As(err, &undefined) || undefined.Name != "b" {
		t.Fatalf("expected undefined variable error, got %v", err)
	}
	if err.Error() != "Undefined variable 'b'." {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestEnvironmentAssignUpdatesOwningFrame(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("a", NumberValue{Val: 1})
	child := NewEnvironment(global)

	if err := child.Assign("a", NumberValue{Val: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if child.Has("a") {
		t.Fatalf("assignment must not create a binding in the child frame")
	}
	v, _ := global.Get("a")
	if v.(NumberValue).Val != 2 {
		t.Fatalf("expected global a to be 2, got %#v", v)
	}
	if err := child.Assign("missing", NilValue{}); err == nil {
		t.Fatalf("expected error assigning an undefined name")
	}
}

func TestEnvironmentDistanceAccess(t *testing.T) {
	global := NewEnvironment(nil)
	middle := NewEnvironment(global)
	inner := NewEnvironment(middle)
	global.Define("x", StringValue{Val: "global"})
	middle.Define("x", StringValue{Val: "middle"})

	if inner.Ancestor(0) != inner || inner.Ancestor(1) != middle || inner.Ancestor(2) != global || inner.Ancestor(3) != nil {
		t.Fatalf("ancestor walk mismatch")
	}

	v, err := inner.GetAt(2, "x")
	if err != nil || v.(StringValue).Val != "global" {
		t.Fatalf("expected global x, got %#v (%v)", v, err)
	}
	if err := inner.AssignAt(1, "x", StringValue{Val: "changed"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ = middle.Get("x")
	if v.(StringValue).Val != "changed" {
		t.Fatalf("expected middle x to change, got %#v", v)
	}
	if _, err := inner.GetAt(0, "x"); err == nil {
		t.Fatalf("expected error reading x at distance 0")
	}
	if err := inner.AssignAt(5, "x", NilValue{}); err == nil {
		t.Fatalf("expected error for a distance past the global frame")
	}
}

func TestEnvironmentUnassignedTracking(t *testing.T) {
	env := NewEnvironment(nil)
	env.DefineUnassigned("u")
	if !env.IsUnassigned("u") {
		t.Fatalf("expected u to be unassigned")
	}
	v, err := env.Get("u")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := v.(NilValue); !ok {
		t.Fatalf("expected nil placeholder, got %#v", v)
	}

	child := NewEnvironment(env)
	if err := child.Assign("u", BoolValue{Val: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.IsUnassigned("u") {
		t.Fatalf("assignment should clear the unassigned mark")
	}

	env.DefineUnassigned("w")
	env.Define("w", NumberValue{Val: 3})
	if env.IsUnassigned("w") {
		t.Fatalf("redefinition should clear the unassigned mark")
	}
}

func TestEnvironmentSharedByClosures(t *testing.T) {
	frame := NewEnvironment(nil)
	frame.Define("n", NumberValue{Val: 0})
	first := NewEnvironment(frame)
	second := NewEnvironment(frame)

	if err := first.Assign("n", NumberValue{Val: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := second.Get("n")
	if v.(NumberValue).Val != 5 {
		t.Fatalf("expected sibling frames to observe the shared mutation, got %#v", v)
	}
}

func TestEnvironmentKeysAreSorted(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("b", NilValue{})
	env.Define("a", NilValue{})
	keys := env.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("unexpected keys %v", keys)
	}
	child := NewEnvironment(env)
	child.Define("c", NilValue{})
	if keys := child.Keys(); len(keys) != 1 || keys[0] != "c" {
		t.Fatalf("Keys must list only the current frame, got %v", keys)
	}
}
