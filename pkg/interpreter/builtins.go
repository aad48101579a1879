package interpreter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"lox/interpreter-go/pkg/runtime"
)

// installNatives binds the built-in functions in the global frame.
func (i *Interpreter) installNatives() {
	natives := []runtime.NativeFunctionValue{
		{Name: "clock", Arity: 0, Impl: nativeClock},
		{Name: "str", Arity: 1, Impl: nativeStr},
		{Name: "number", Arity: 1, Impl: nativeNumber},
		{Name: "print", Arity: 1, Impl: nativePrint},
		{Name: "println", Arity: 1, Impl: nativePrintln},
		{Name: "input", Arity: 0, Impl: nativeInput},
	}
	for _, fn := range natives {
		i.global.Define(fn.Name, fn)
	}
}

func nativeClock(ctx *runtime.NativeCallContext, _ []runtime.Value) (runtime.Value, error) {
	now := ctx.Now()
	return runtime.NumberValue{Val: float64(now.UnixNano()) / 1e9}, nil
}

func nativeStr(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	return runtime.StringValue{Val: Stringify(args[0])}, nil
}

func nativeNumber(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	text, ok := args[0].(runtime.StringValue)
	if !ok {
		return nil, fmt.Errorf("Expected a string but got %s.", args[0].Kind())
	}
	trimmed := strings.TrimSpace(text.Val)
	if !isNumeral(trimmed) {
		return nil, fmt.Errorf("Cannot convert '%s' to a number.", text.Val)
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, fmt.Errorf("Cannot convert '%s' to a number.", text.Val)
	}
	return runtime.NumberValue{Val: value}, nil
}

// isNumeral accepts an optional sign followed by a decimal literal in the
// same shape the lexer accepts. It rejects forms ParseFloat would otherwise
// take, such as "Inf", "0x10" or "1e3".
func isNumeral(s string) bool {
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	whole, frac, hasDot := strings.Cut(s, ".")
	if !allDigits(whole) {
		return false
	}
	return !hasDot || allDigits(frac)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func nativePrint(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	if _, err := io.WriteString(ctx.Out, Stringify(args[0])); err != nil {
		return nil, err
	}
	return runtime.NilValue{}, nil
}

func nativePrintln(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	if _, err := io.WriteString(ctx.Out, Stringify(args[0])+"\n"); err != nil {
		return nil, err
	}
	return runtime.NilValue{}, nil
}

// nativeInput reads one line. It yields nil once input is exhausted.
func nativeInput(ctx *runtime.NativeCallContext, _ []runtime.Value) (runtime.Value, error) {
	line, err := ctx.Input.ReadLine()
	if errors.Is(err, io.EOF) {
		return runtime.NilValue{}, nil
	}
	if err != nil {
		return nil, err
	}
	return runtime.StringValue{Val: line}, nil
}

// streamInput reads lines from a plain stream. A final line without a
// terminator is still returned; CRLF endings are stripped.
type streamInput struct {
	r *bufio.Reader
}

func (s *streamInput) ReadLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}
