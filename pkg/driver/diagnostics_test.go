package driver

import (
	"testing"

	"lox/interpreter-go/pkg/ast"
)

func TestDescribeDiagnostic(t *testing.T) {
	cases := []struct {
		name string
		diag Diagnostic
		want string
	}{
		{
			name: "lexical",
			diag: Diagnostic{Stage: StageLexical, Message: "Unterminated string.", Location: DiagnosticLocation{Line: 3}},
			want: "[line 3] Error: Unterminated string.",
		},
		{
			name: "syntax at token",
			diag: Diagnostic{Stage: StageSyntax, Message: "Expect expression.", Location: TokenLocation(ast.NewToken(ast.Semicolon, ";", 2))},
			want: "[line 2] Error at ';': Expect expression.",
		},
		{
			name: "syntax at end",
			diag: Diagnostic{Stage: StageSyntax, Message: "Expect ';' after value.", Location: TokenLocation(ast.NewToken(ast.EOF, "", 7))},
			want: "[line 7] Error at end: Expect ';' after value.",
		},
		{
			name: "runtime",
			diag: Diagnostic{Stage: StageRuntime, Message: "Operand must be a number.", Location: TokenLocation(ast.NewToken(ast.Minus, "-", 1))},
			want: "[line 1] Runtime error at '-': Operand must be a number.",
		},
		{
			name: "native",
			diag: Diagnostic{Stage: StageNative, Message: "boom", Location: DiagnosticLocation{Line: 4}, Function: "number"},
			want: "[line 4] Native error in <fn number>: boom",
		},
		{
			name: "path",
			diag: Diagnostic{Stage: StageSyntax, Message: "bad", Location: DiagnosticLocation{Path: "main.lox", Line: 1, Where: " at 'x'"}},
			want: "[main.lox line 1] Error at 'x': bad",
		},
		{
			name: "no location",
			diag: Diagnostic{Stage: StageRuntime, Message: "write failed"},
			want: "Runtime error: write failed",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DescribeDiagnostic(tc.diag); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestDiagnosticsStages(t *testing.T) {
	diags := NewDiagnostics()
	diags.ErrorAtLine(StageRuntime, 1, "late")
	if diags.HasCompileErrors() || !diags.HasRuntimeErrors() {
		t.Fatalf("runtime diagnostic misclassified")
	}
	diags.ErrorAtToken(StageResolution, ast.NewToken(ast.Identifier, "a", 2), "early")
	if !diags.HasCompileErrors() {
		t.Fatalf("expected compile error")
	}
	items := diags.Items()
	if len(items) != 2 || items[1].Severity != SeverityError {
		t.Fatalf("unexpected items %+v", items)
	}
	items[0].Message = "mutated"
	if diags.Items()[0].Message != "late" {
		t.Fatalf("Items must return a copy")
	}
	if diags.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", diags.Len())
	}
}

func TestNilDiagnosticsDiscard(t *testing.T) {
	var diags *Diagnostics
	diags.ErrorAtLine(StageLexical, 1, "ignored")
	if diags.Len() != 0 || diags.HasCompileErrors() || diags.Items() != nil {
		t.Fatalf("nil collector must discard reports")
	}
}
