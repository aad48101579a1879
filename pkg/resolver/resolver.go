// Package resolver performs the static pass between parsing and evaluation:
// it pins every local variable reference to a scope distance and reports the
// structural errors that do not need a running program to detect.
package resolver

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/driver"
)

// Locals maps a Variable, Assign, This or Super node to the number of
// environment frames between its use and its binding. Nodes missing from the
// map are globals.
type Locals map[ast.Expr]int

type functionType int

const (
	functionNone functionType = iota
	functionPlain
	functionMethod
	functionInitializer
)

type classType int

const (
	classNone classType = iota
	classPlain
	classSubclass
)

// scope records whether each name is fully defined (true) or only declared
// (false, while its initializer is being resolved).
type scope map[string]bool

// Resolver walks statements once. It can be reused across inputs of one
// session: annotations accumulate in the same Locals map.
type Resolver struct {
	diags   *driver.Diagnostics
	locals  Locals
	scopes  []scope
	globals map[string]struct{}

	currentFunction functionType
	currentClass    classType
	loopDepth       int
}

// New creates a resolver. globals lists names already bound in the global
// frame (natives, earlier REPL inputs).
func New(diags *driver.Diagnostics, globals ...string) *Resolver {
	r := &Resolver{
		diags:   diags,
		locals:  make(Locals),
		globals: make(map[string]struct{}, len(globals)),
	}
	for _, name := range globals {
		r.globals[name] = struct{}{}
	}
	return r
}

// Resolve is shorthand for a fresh resolver over one program.
func Resolve(stmts []ast.Stmt, diags *driver.Diagnostics, globals ...string) Locals {
	r := New(diags, globals...)
	r.ResolveStatements(stmts)
	return r.Locals()
}

// Locals returns the annotations collected so far.
func (r *Resolver) Locals() Locals {
	return r.locals
}

// ResolveStatements resolves a statement list in the current scope.
func (r *Resolver) ResolveStatements(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		r.resolveStatement(stmt)
	}
}

// ResolveExpression resolves a standalone expression, such as a REPL echo.
func (r *Resolver) ResolveExpression(expr ast.Expr) {
	r.resolveExpression(expr)
}

func (r *Resolver) resolveStatement(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		r.beginScope()
		r.ResolveStatements(s.Statements)
		r.endScope()
	case *ast.VarStatement:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpression(s.Initializer)
		}
		r.define(s.Name)
	case *ast.FunctionStatement:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, functionPlain)
	case *ast.ClassStatement:
		r.resolveClass(s)
	case *ast.ExpressionStatement:
		r.resolveExpression(s.Expression)
	case *ast.IfStatement:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.ThenBranch)
		if s.ElseBranch != nil {
			r.resolveStatement(s.ElseBranch)
		}
	case *ast.WhileStatement:
		r.resolveExpression(s.Condition)
		r.loopDepth++
		r.resolveStatement(s.Body)
		if s.Increment != nil {
			r.resolveExpression(s.Increment)
		}
		r.loopDepth--
	case *ast.ReturnStatement:
		if r.currentFunction == functionNone {
			r.error(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == functionInitializer {
				r.error(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpression(s.Value)
		}
	case *ast.BreakStatement:
		if r.loopDepth == 0 {
			r.error(s.Keyword, "Can't break outside of a loop.")
		}
	case *ast.ContinueStatement:
		if r.loopDepth == 0 {
			r.error(s.Keyword, "Can't continue outside of a loop.")
		}
	}
}

func (r *Resolver) resolveClass(s *ast.ClassStatement) {
	enclosingClass := r.currentClass
	r.currentClass = classPlain
	defer func() { r.currentClass = enclosingClass }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.error(s.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpression(s.Superclass)

		r.beginScope()
		r.peekScope()["super"] = true
	}

	r.beginScope()
	r.peekScope()["this"] = true
	for _, method := range s.Methods {
		kind := functionMethod
		if method.Name.Lexeme == "init" {
			kind = functionInitializer
		}
		r.resolveFunction(method, kind)
	}
	r.endScope()

	if s.Superclass != nil {
		r.endScope()
	}
}

// resolveFunction resolves a body in a fresh scope seeded with the
// parameters. Loop depth does not carry into the body.
func (r *Resolver) resolveFunction(fn *ast.FunctionStatement, kind functionType) {
	enclosingFunction, enclosingLoops := r.currentFunction, r.loopDepth
	r.currentFunction, r.loopDepth = kind, 0

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.ResolveStatements(fn.Body)
	r.endScope()

	r.currentFunction, r.loopDepth = enclosingFunction, enclosingLoops
}

func (r *Resolver) resolveExpression(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.LiteralExpression:
	case *ast.GroupingExpression:
		r.resolveExpression(e.Inner)
	case *ast.UnaryExpression:
		r.resolveExpression(e.Operand)
	case *ast.BinaryExpression:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.LogicalExpression:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.TernaryExpression:
		r.resolveExpression(e.Condition)
		r.resolveExpression(e.Then)
		r.resolveExpression(e.Else)
	case *ast.VariableExpression:
		r.resolveVariable(e)
	case *ast.AssignExpression:
		r.resolveExpression(e.Value)
		r.resolveLocal(e, e.Name.Lexeme)
	case *ast.CallExpression:
		r.resolveExpression(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpression(arg)
		}
	case *ast.GetExpression:
		r.resolveExpression(e.Object)
	case *ast.SetExpression:
		r.resolveExpression(e.Value)
		r.resolveExpression(e.Object)
	case *ast.ThisExpression:
		if r.currentClass == classNone {
			r.error(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, "this")
	case *ast.SuperExpression:
		switch r.currentClass {
		case classNone:
			r.error(e.Keyword, "Can't use 'super' outside of a class.")
			return
		case classPlain:
			r.error(e.Keyword, "Can't use 'super' in a class with no superclass.")
			return
		}
		r.resolveLocal(e, "super")
	}
}

// resolveVariable handles a read. Reading a name inside its own initializer
// refers to an enclosing binding of the same name when one exists (so
// `var a = a + 1;` in a block shadows an outer a) and is an error otherwise.
func (r *Resolver) resolveVariable(e *ast.VariableExpression) {
	name := e.Name.Lexeme
	if len(r.scopes) > 0 {
		if defined, ok := r.peekScope()[name]; ok && !defined {
			if !r.resolveEnclosing(e, name) {
				r.error(e.Name, "Can't read local variable in its own initializer.")
			}
			return
		}
	}
	r.resolveLocal(e, name)
}

// resolveEnclosing looks for name below the innermost scope, falling back to
// known globals.
func (r *Resolver) resolveEnclosing(expr ast.Expr, name string) bool {
	for i := len(r.scopes) - 2; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return true
		}
	}
	_, ok := r.globals[name]
	return ok
}

// resolveLocal records the distance to the innermost scope binding name.
// Unfound names are left for the global frame.
func (r *Resolver) resolveLocal(expr ast.Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) declare(name ast.Token) {
	if len(r.scopes) == 0 {
		r.globals[name.Lexeme] = struct{}{}
		return
	}
	current := r.peekScope()
	if _, exists := current[name.Lexeme]; exists {
		r.error(name, "Already a variable with this name in this scope.")
	}
	current[name.Lexeme] = false
}

func (r *Resolver) define(name ast.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.peekScope()[name.Lexeme] = true
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(scope))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) peekScope() scope {
	return r.scopes[len(r.scopes)-1]
}

func (r *Resolver) error(tok ast.Token, message string) {
	r.diags.ErrorAtToken(driver.StageResolution, tok, message)
}
