package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"lox/interpreter-go/pkg/runtime"
)

func TestNumberConversion(t *testing.T) {
	expectOutput(t, `
println(number("12.5") + 1);
println(number("-3"));
println(number("  7 "));
println(number(str(40)) + 2);
`, "13.5\n-3\n7\n42\n")
}

func TestIsNumeral(t *testing.T) {
	accepted := []string{"0", "12", "12.5", "-3", "+4", "007"}
	rejected := []string{"", "-", "1.", ".5", "abc", "1e3", "Inf", "NaN", "0x10", "-+5", "1_000"}
	for _, s := range accepted {
		if !isNumeral(s) {
			t.Errorf("expected %q to be accepted", s)
		}
	}
	for _, s := range rejected {
		if isNumeral(s) {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

func TestPrintWritesWithoutNewline(t *testing.T) {
	expectOutput(t, `print("a"); print(1); println("b"); print(nil);`, "a1b\nnil")
}

func TestInputReadsLines(t *testing.T) {
	var out bytes.Buffer
	interp := New(Options{Stdout: &out, Stdin: strings.NewReader("first\r\nsecond")})
	result := interp.Run(`
println(input());
println(input());
println(input());
`)
	if result.Status != StatusOK {
		t.Fatalf("unexpected failure: %s", result.Describe())
	}
	if out.String() != "first\nsecond\nnil\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestNativesAreGlobals(t *testing.T) {
	interp, _ := newTestInterpreter("")
	for _, name := range []string{"clock", "str", "number", "print", "println", "input"} {
		val, err := interp.GlobalEnvironment().Get(name)
		if err != nil {
			t.Fatalf("missing native %s: %v", name, err)
		}
		native, ok := val.(runtime.NativeFunctionValue)
		if !ok || native.Name != name {
			t.Fatalf("unexpected binding for %s: %#v", name, val)
		}
	}
}

func TestNativesCanBeShadowed(t *testing.T) {
	expectOutput(t, `
fun str(x) { return "custom"; }
println(str(1));
`, "custom\n")
}

func TestNativeEquality(t *testing.T) {
	expectOutput(t, "var p = println; println(p == println); println(p == print);", "true\nfalse\n")
}
