package interpreter

import (
	"errors"
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/driver"
)

// RuntimeError is a dynamic failure raised at a specific token.
type RuntimeError struct {
	Token   ast.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Token.Line, e.Message)
}

// Diagnostic renders the error for the diagnostics stream.
func (e *RuntimeError) Diagnostic() driver.Diagnostic {
	return driver.Diagnostic{
		Stage:    driver.StageRuntime,
		Severity: driver.SeverityError,
		Message:  e.Message,
		Location: driver.TokenLocation(e.Token),
	}
}

func newRuntimeError(tok ast.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// NativeError is a failure inside a built-in binding. Token is the closing
// paren of the call that invoked it.
type NativeError struct {
	Function string
	Token    ast.Token
	Message  string
}

func (e *NativeError) Error() string {
	return fmt.Sprintf("line %d: <fn %s>: %s", e.Token.Line, e.Function, e.Message)
}

func (e *NativeError) Diagnostic() driver.Diagnostic {
	return driver.Diagnostic{
		Stage:    driver.StageNative,
		Severity: driver.SeverityError,
		Message:  e.Message,
		Location: driver.DiagnosticLocation{Line: e.Token.Line},
		Function: e.Function,
	}
}

func diagnosticFromError(err error) driver.Diagnostic {
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) {
		return runtimeErr.Diagnostic()
	}
	var nativeErr *NativeError
	if errors.As(err, &nativeErr) {
		return nativeErr.Diagnostic()
	}
	return driver.Diagnostic{
		Stage:    driver.StageRuntime,
		Severity: driver.SeverityError,
		Message:  err.Error(),
	}
}
