// Package interpreter evaluates resolved Lox programs by walking the tree.
package interpreter

import (
	"bufio"
	"io"
	"os"
	"time"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/resolver"
	"lox/interpreter-go/pkg/runtime"
)

// Options configures an interpreter. Zero values fall back to the process
// streams and the wall clock.
type Options struct {
	Stdout io.Writer
	Stdin  io.Reader
	// Input overrides Stdin as the source of input() lines. The REPL sets it
	// so script reads and prompts share one buffered stream.
	Input runtime.LineReader
	// StrictUnassigned turns reads of variables declared without an
	// initializer, and never assigned, into runtime errors.
	StrictUnassigned bool
	Now              func() time.Time
}

// Interpreter drives evaluation of Lox statements against one global
// environment.
type Interpreter struct {
	global *runtime.Environment
	locals resolver.Locals
	strict bool

	out   io.Writer
	input runtime.LineReader
	now   func() time.Time
}

// New returns an interpreter whose global environment holds the native
// bindings.
func New(opts Options) *Interpreter {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	input := opts.Input
	if input == nil {
		in := opts.Stdin
		if in == nil {
			in = os.Stdin
		}
		input = &streamInput{r: bufio.NewReader(in)}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	i := &Interpreter{
		global: runtime.NewEnvironment(nil),
		locals: make(resolver.Locals),
		strict: opts.StrictUnassigned,
		out:    out,
		input:  input,
		now:    now,
	}
	i.installNatives()
	return i
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Interpret executes resolved top-level statements in order. Each statement
// runs on its own: a runtime error abandons that statement, is returned as a
// diagnostic, and execution moves on to the next one.
func (i *Interpreter) Interpret(stmts []ast.Stmt, locals resolver.Locals) []driver.Diagnostic {
	i.addLocals(locals)
	var diags []driver.Diagnostic
	for _, stmt := range stmts {
		if _, err := i.executeStatement(stmt, i.global); err != nil {
			diags = append(diags, diagnosticFromError(err))
		}
	}
	return diags
}

func (i *Interpreter) addLocals(locals resolver.Locals) {
	for expr, distance := range locals {
		i.locals[expr] = distance
	}
}

//-----------------------------------------------------------------------------
// Control flow
//-----------------------------------------------------------------------------

type completionKind int

const (
	completionNormal completionKind = iota
	completionReturn
	completionBreak
	completionContinue
)

// completion is how a statement finished when it did not fail. Loops consume
// break and continue; calls consume return.
type completion struct {
	kind  completionKind
	value runtime.Value
}

var normalCompletion = completion{kind: completionNormal}
