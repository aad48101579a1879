package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"lox/interpreter-go/pkg/driver"
)

func newTestSession() (*Session, *bytes.Buffer) {
	var out bytes.Buffer
	return NewSession(Options{Stdout: &out, Stdin: strings.NewReader("")}), &out
}

func TestSessionKeepsDefinitionsBetweenInputs(t *testing.T) {
	session, out := newTestSession()
	inputs := []string{
		"var base = 10;",
		"fun add(n) { return base + n; }",
		"class Box { init(v) { this.v = v; } }",
		"println(add(Box(5).v));",
	}
	for _, input := range inputs {
		if result := session.Eval(input); result.Status != StatusOK {
			t.Fatalf("input %q failed: %s", input, result.Describe())
		}
	}
	if out.String() != "15\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
	global := session.Interpreter().GlobalEnvironment()
	for _, name := range []string{"base", "add", "Box"} {
		if !global.Has(name) {
			t.Fatalf("expected global %q to persist", name)
		}
	}
}

func TestSessionEchoesTrailingExpression(t *testing.T) {
	session, out := newTestSession()
	steps := []struct {
		input string
		want  string
	}{
		{"1 + 2", "3\n"},
		{"var s = \"hi\"; s + \"!\"", "hi!\n"},
		{"s;", ""},
		{"nil", "nil\n"},
		{"clock", "<fn clock>\n"},
	}
	for _, step := range steps {
		out.Reset()
		if result := session.Eval(step.input); result.Status != StatusOK {
			t.Fatalf("input %q failed: %s", step.input, result.Describe())
		}
		if out.String() != step.want {
			t.Fatalf("input %q: got %q want %q", step.input, out.String(), step.want)
		}
	}
}

func TestSessionRecoversAfterErrors(t *testing.T) {
	session, out := newTestSession()
	if result := session.Eval("var kept = 1;"); result.Status != StatusOK {
		t.Fatalf("unexpected failure: %s", result.Describe())
	}

	compile := session.Eval("var broken = ;")
	if compile.Status != StatusCompileError {
		t.Fatalf("expected compile error, got %s", compile.Status)
	}
	if got := compile.Describe(); got != "[line 1] Error at ';': Expect expression." {
		t.Fatalf("unexpected diagnostic %q", got)
	}

	runtimeFailure := session.Eval("kept = kept + 1; kept + nil")
	if runtimeFailure.Status != StatusRuntimeError {
		t.Fatalf("expected runtime error, got %s", runtimeFailure.Status)
	}

	if result := session.Eval("kept"); result.Status != StatusOK {
		t.Fatalf("unexpected failure: %s", result.Describe())
	}
	if out.String() != "2\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestSessionResolvesShadowedGlobals(t *testing.T) {
	session, out := newTestSession()
	session.Eval("var a = 1;")
	result := session.Eval("{ var a = a + 1; println(a); }")
	if result.Status != StatusOK {
		t.Fatalf("unexpected failure: %s", result.Describe())
	}
	if out.String() != "2\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestSessionReportsStaticErrors(t *testing.T) {
	session, _ := newTestSession()
	result := session.Eval("break;")
	if result.Status != StatusCompileError {
		t.Fatalf("expected compile error, got %s", result.Status)
	}
	if got := result.Describe(); got != "[line 1] Error at 'break': Can't break outside of a loop." {
		t.Fatalf("unexpected diagnostic %q", got)
	}
}

func TestIncomplete(t *testing.T) {
	cases := map[string]bool{
		"fun f() {":          true,
		"var s = \"open":     true,
		"/* still going":     true,
		"if (x":              true,
		"1 +":                true,
		"var x = 1;":         false,
		"1 + 2":              false,
		"var = 1;":           false,
		"@":                  false,
		"class A { m() {} }": false,
	}
	for source, want := range cases {
		if got := Incomplete(source); got != want {
			t.Errorf("Incomplete(%q) = %v, want %v", source, got, want)
		}
	}
}

func TestCompileReturnsNilOnErrors(t *testing.T) {
	stmts, locals := Compile("fun f() { return 1; }", driver.NewDiagnostics())
	if len(stmts) != 1 || locals == nil {
		t.Fatalf("expected a compiled program, got %d statements", len(stmts))
	}
	diags := driver.NewDiagnostics()
	if stmts, _ := Compile("fun f( {", diags); stmts != nil {
		t.Fatalf("expected nil statements for a syntax error")
	}
	if !diags.HasCompileErrors() {
		t.Fatalf("expected compile diagnostics")
	}
}

func TestResultWriteDiagnostics(t *testing.T) {
	_, result := runProgram(t, "println(a);\nprintln(b);")
	var buf bytes.Buffer
	if err := result.WriteDiagnostics(&buf); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	want := "[line 1] Runtime error at 'a': Undefined variable 'a'.\n[line 2] Runtime error at 'b': Undefined variable 'b'.\n"
	if buf.String() != want {
		t.Fatalf("unexpected diagnostics %q", buf.String())
	}
}
