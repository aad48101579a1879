package interpreter

import (
	"fmt"
	"math"
	"strconv"

	"lox/interpreter-go/pkg/runtime"
)

// Stringify returns the display form used by print, println and str.
func Stringify(val runtime.Value) string {
	switch v := val.(type) {
	case nil, runtime.NilValue:
		return "nil"
	case runtime.BoolValue:
		return strconv.FormatBool(v.Val)
	case runtime.NumberValue:
		return formatNumber(v.Val)
	case runtime.StringValue:
		return v.Val
	case *runtime.FunctionValue:
		return fmt.Sprintf("<fn %s>", v.Name())
	case runtime.NativeFunctionValue:
		return fmt.Sprintf("<fn %s>", v.Name)
	case *runtime.ClassValue:
		return v.Name
	case *runtime.InstanceValue:
		return v.Class.Name + " instance"
	default:
		return fmt.Sprintf("<%s>", val.Kind())
	}
}

// formatNumber drops the fraction of integral values and otherwise uses the
// shortest decimal form that round-trips. Overflow prints as Infinity.
func formatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
