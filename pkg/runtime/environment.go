package runtime

import (
	"fmt"
	"sort"
)

// UndefinedVariableError reports a name with no binding in any reachable
// frame.
type UndefinedVariableError struct {
	Name string
}

func (e UndefinedVariableError) Error() string {
	return fmt.Sprintf("Undefined variable '%s'.", e.Name)
}

// Environment is one lexical scope frame. Frames are shared by pointer:
// closures hold the frame they were created in and observe every later
// mutation made through it.
type Environment struct {
	values     map[string]Value
	unassigned map[string]struct{}
	parent     *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Define inserts or shadows a binding in the current scope.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
	delete(e.unassigned, name)
}

// DefineUnassigned declares name without an initializer. It reads as nil
// until assigned; IsUnassigned lets strict callers reject such reads.
func (e *Environment) DefineUnassigned(name string) {
	e.values[name] = NilValue{}
	if e.unassigned == nil {
		e.unassigned = make(map[string]struct{})
	}
	e.unassigned[name] = struct{}{}
}

// IsUnassigned reports whether name in this frame was declared without a
// value and has not been assigned since.
func (e *Environment) IsUnassigned(name string) bool {
	_, ok := e.unassigned[name]
	return ok
}

// Has reports whether name is bound in this frame.
func (e *Environment) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Assign updates an existing binding in the first scope where it appears.
func (e *Environment) Assign(name string, value Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.set(name, value)
			return nil
		}
	}
	return UndefinedVariableError{Name: name}
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name string) (Value, error) {
	env, err := e.Lookup(name)
	if err != nil {
		return nil, err
	}
	return env.values[name], nil
}

// Lookup returns the nearest frame that binds name.
func (e *Environment) Lookup(name string) (*Environment, error) {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			return env, nil
		}
	}
	return nil, UndefinedVariableError{Name: name}
}

// Ancestor walks distance frames up the chain. Distance 0 is e itself.
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance && env != nil; i++ {
		env = env.parent
	}
	return env
}

// GetAt reads name from the frame exactly distance levels up.
func (e *Environment) GetAt(distance int, name string) (Value, error) {
	env := e.Ancestor(distance)
	if env == nil {
		return nil, UndefinedVariableError{Name: name}
	}
	value, ok := env.values[name]
	if !ok {
		return nil, UndefinedVariableError{Name: name}
	}
	return value, nil
}

// AssignAt writes name into the frame exactly distance levels up.
func (e *Environment) AssignAt(distance int, name string, value Value) error {
	env := e.Ancestor(distance)
	if env == nil {
		return UndefinedVariableError{Name: name}
	}
	if _, ok := env.values[name]; !ok {
		return UndefinedVariableError{Name: name}
	}
	env.set(name, value)
	return nil
}

func (e *Environment) set(name string, value Value) {
	e.values[name] = value
	delete(e.unassigned, name)
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
