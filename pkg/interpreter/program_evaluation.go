package interpreter

import (
	"io"
	"strings"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/lexer"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/resolver"
)

// Status is the overall outcome of running a program.
type Status int

const (
	StatusOK Status = iota
	StatusCompileError
	StatusRuntimeError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusCompileError:
		return "compile error"
	case StatusRuntimeError:
		return "runtime error"
	default:
		return "unknown"
	}
}

// Result bundles the status with every diagnostic produced on the way.
type Result struct {
	Status      Status
	Diagnostics []driver.Diagnostic
}

// Describe renders each diagnostic on its own line.
func (r Result) Describe() string {
	lines := make([]string, 0, len(r.Diagnostics))
	for _, diag := range r.Diagnostics {
		lines = append(lines, driver.DescribeDiagnostic(diag))
	}
	return strings.Join(lines, "\n")
}

// WriteDiagnostics writes Describe's lines to w, one per line.
func (r Result) WriteDiagnostics(w io.Writer) error {
	for _, diag := range r.Diagnostics {
		if _, err := io.WriteString(w, driver.DescribeDiagnostic(diag)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Compile runs the lexer, parser and resolver over source. Statements are
// nil when any compile-time error was reported.
func Compile(source string, diags *driver.Diagnostics, globals ...string) ([]ast.Stmt, resolver.Locals) {
	tokens := lexer.Scan(source, diags)
	stmts := parser.Parse(tokens, diags)
	if diags.HasCompileErrors() {
		return nil, nil
	}
	locals := resolver.Resolve(stmts, diags, globals...)
	if diags.HasCompileErrors() {
		return nil, nil
	}
	return stmts, locals
}

// Run compiles and executes source against the interpreter's global
// environment. Any compile error suppresses execution entirely.
func (i *Interpreter) Run(source string) Result {
	diags := driver.NewDiagnostics()
	stmts, locals := Compile(source, diags, i.global.Keys()...)
	if diags.HasCompileErrors() {
		return Result{Status: StatusCompileError, Diagnostics: diags.Items()}
	}
	return i.execute(stmts, locals, diags)
}

func (i *Interpreter) execute(stmts []ast.Stmt, locals resolver.Locals, diags *driver.Diagnostics) Result {
	for _, diag := range i.Interpret(stmts, locals) {
		diags.Report(diag)
	}
	status := StatusOK
	if diags.HasRuntimeErrors() {
		status = StatusRuntimeError
	}
	return Result{Status: status, Diagnostics: diags.Items()}
}

//-----------------------------------------------------------------------------
// Interactive sessions
//-----------------------------------------------------------------------------

// Session evaluates a sequence of inputs against one interpreter, keeping
// globals and resolver state between them. A failed input leaves earlier
// definitions intact.
type Session struct {
	interp *Interpreter
}

func NewSession(opts Options) *Session {
	return &Session{interp: New(opts)}
}

// Interpreter exposes the underlying interpreter.
func (s *Session) Interpreter() *Interpreter {
	return s.interp
}

// Eval runs one input. A trailing expression without ';' is evaluated after
// the statements and its display form is written to the output followed by
// a newline.
func (s *Session) Eval(source string) Result {
	diags := driver.NewDiagnostics()
	tokens := lexer.Scan(source, diags)
	stmts, echo := parser.ParseREPL(tokens, diags)
	if diags.HasCompileErrors() {
		return Result{Status: StatusCompileError, Diagnostics: diags.Items()}
	}

	res := resolver.New(diags, s.interp.global.Keys()...)
	res.ResolveStatements(stmts)
	if echo != nil {
		res.ResolveExpression(echo)
	}
	if diags.HasCompileErrors() {
		return Result{Status: StatusCompileError, Diagnostics: diags.Items()}
	}

	result := s.interp.execute(stmts, res.Locals(), diags)
	if echo == nil || result.Status != StatusOK {
		return result
	}

	value, err := s.interp.evaluateExpression(echo, s.interp.global)
	if err != nil {
		diags.Report(diagnosticFromError(err))
		return Result{Status: StatusRuntimeError, Diagnostics: diags.Items()}
	}
	if _, err := io.WriteString(s.interp.out, Stringify(value)+"\n"); err != nil {
		diags.Report(diagnosticFromError(err))
		return Result{Status: StatusRuntimeError, Diagnostics: diags.Items()}
	}
	return result
}

// Incomplete reports whether source looks like the start of a longer input:
// it fails to parse only because it ended too early. The REPL uses it to ask
// for continuation lines.
func Incomplete(source string) bool {
	diags := driver.NewDiagnostics()
	tokens := lexer.Scan(source, diags)
	for _, diag := range diags.Items() {
		if strings.Contains(diag.Message, "Unterminated") {
			return true
		}
	}
	if diags.Len() > 0 {
		return false
	}
	parser.ParseREPL(tokens, diags)
	for _, diag := range diags.Items() {
		if diag.Location.Where == " at end" {
			return true
		}
	}
	return false
}
