package driver

import (
	"fmt"
	"strings"

	"lox/interpreter-go/pkg/ast"
)

// DiagnosticSeverity captures diagnostic levels.
type DiagnosticSeverity string

const SeverityError DiagnosticSeverity = "error"

// DiagnosticStage names the pipeline stage that produced a diagnostic.
type DiagnosticStage string

const (
	StageLexical    DiagnosticStage = "lexical"
	StageSyntax     DiagnosticStage = "syntax"
	StageResolution DiagnosticStage = "resolution"
	StageRuntime    DiagnosticStage = "runtime"
	StageNative     DiagnosticStage = "native"
)

// IsCompileTime reports whether diagnostics from this stage suppress execution.
func (s DiagnosticStage) IsCompileTime() bool {
	switch s {
	case StageLexical, StageSyntax, StageResolution:
		return true
	default:
		return false
	}
}

// DiagnosticLocation references the source line and, when known, the
// offending token context (" at end", " at 'x'").
type DiagnosticLocation struct {
	Path  string
	Line  int
	Where string
}

// TokenLocation builds the location for a diagnostic reported at tok.
func TokenLocation(tok ast.Token) DiagnosticLocation {
	if tok.Type == ast.EOF {
		return DiagnosticLocation{Line: tok.Line, Where: " at end"}
	}
	return DiagnosticLocation{Line: tok.Line, Where: fmt.Sprintf(" at '%s'", tok.Lexeme)}
}

// Diagnostic is a structured error report from any pipeline stage.
type Diagnostic struct {
	Stage    DiagnosticStage
	Severity DiagnosticSeverity
	Message  string
	Location DiagnosticLocation
	// Function names the native binding for StageNative diagnostics.
	Function string
}

// Diagnostics collects reports across the lexer, parser, resolver and
// evaluator. A nil *Diagnostics discards everything.
type Diagnostics struct {
	items []Diagnostic
}

func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

// Report appends a diagnostic.
func (d *Diagnostics) Report(diag Diagnostic) {
	if d == nil {
		return
	}
	if diag.Severity == "" {
		diag.Severity = SeverityError
	}
	d.items = append(d.items, diag)
}

// ErrorAtLine records an error with no token context.
func (d *Diagnostics) ErrorAtLine(stage DiagnosticStage, line int, message string) {
	d.Report(Diagnostic{
		Stage:    stage,
		Severity: SeverityError,
		Message:  message,
		Location: DiagnosticLocation{Line: line},
	})
}

// ErrorAtToken records an error pointing at tok.
func (d *Diagnostics) ErrorAtToken(stage DiagnosticStage, tok ast.Token, message string) {
	d.Report(Diagnostic{
		Stage:    stage,
		Severity: SeverityError,
		Message:  message,
		Location: TokenLocation(tok),
	})
}

// Items returns the collected diagnostics in report order.
func (d *Diagnostics) Items() []Diagnostic {
	if d == nil {
		return nil
	}
	out := make([]Diagnostic, len(d.items))
	copy(out, d.items)
	return out
}

func (d *Diagnostics) Len() int {
	if d == nil {
		return 0
	}
	return len(d.items)
}

// HasCompileErrors reports whether a lexical, syntax or resolution error
// has been collected.
func (d *Diagnostics) HasCompileErrors() bool {
	if d == nil {
		return false
	}
	for _, diag := range d.items {
		if diag.Severity == SeverityError && diag.Stage.IsCompileTime() {
			return true
		}
	}
	return false
}

// HasRuntimeErrors reports whether a runtime or native error was collected.
func (d *Diagnostics) HasRuntimeErrors() bool {
	if d == nil {
		return false
	}
	for _, diag := range d.items {
		if diag.Severity == SeverityError && !diag.Stage.IsCompileTime() {
			return true
		}
	}
	return false
}

// DescribeDiagnostic formats a diagnostic for CLI output.
func DescribeDiagnostic(diag Diagnostic) string {
	message := strings.TrimSpace(diag.Message)
	label := "Error"
	switch diag.Stage {
	case StageRuntime:
		label = "Runtime error"
	case StageNative:
		label = "Native error"
	}
	where := diag.Location.Where
	if diag.Stage == StageNative && diag.Function != "" {
		where = fmt.Sprintf(" in <fn %s>", diag.Function)
	}
	location := formatDiagnosticLocation(diag.Location)
	if location == "" {
		return fmt.Sprintf("%s%s: %s", label, where, message)
	}
	return fmt.Sprintf("%s %s%s: %s", location, label, where, message)
}

func formatDiagnosticLocation(loc DiagnosticLocation) string {
	path := strings.TrimSpace(loc.Path)
	switch {
	case path != "" && loc.Line > 0:
		return fmt.Sprintf("[%s line %d]", path, loc.Line)
	case loc.Line > 0:
		return fmt.Sprintf("[line %d]", loc.Line)
	case path != "":
		return fmt.Sprintf("[%s]", path)
	default:
		return ""
	}
}
