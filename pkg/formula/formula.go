// Package formula evaluates the restricted expression grammar used by compute
// steps. Formulas come from semi-trusted plan authors, so only a closed set of
// call forms is accepted; there is no fallback to a general interpreter.
package formula

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// UnknownFunctionError reports a call form outside the supported set.
type UnknownFunctionError struct {
	Formula string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unsupported formula: %q", e.Formula)
}

// UnboundSymbolError names a symbol referenced by a formula or placeholder
// that is absent from the bindings.
type UnboundSymbolError struct {
	Symbol string
}

func (e *UnboundSymbolError) Error() string {
	return fmt.Sprintf("unbound symbol: %q", e.Symbol)
}

// TypeCoercionError reports a bound value that cannot be coerced to a number.
type TypeCoercionError struct {
	Symbol string
	Value  any
}

func (e *TypeCoercionError) Error() string {
	return fmt.Sprintf("value %v of %q is not numeric", e.Value, e.Symbol)
}

type aggregate func(values []float64) float64

var functions = map[string]aggregate{
	"min": func(values []float64) float64 {
		m := values[0]
		for _, v := range values[1:] {
			m = math.Min(m, v)
		}
		return m
	},
	"max": func(values []float64) float64 {
		m := values[0]
		for _, v := range values[1:] {
			m = math.Max(m, v)
		}
		return m
	},
	"sum": sum,
	"avg": func(values []float64) float64 {
		return sum(values) / float64(len(values))
	},
}

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}

// Evaluate resolves a formula of the shape fn(arg, ...) against the bindings.
// Each argument is either a bound symbol or a numeric literal.
func Evaluate(formula string, bindings map[string]any) (float64, error) {
	name, args, ok := split(formula)
	if !ok {
		return 0, &UnknownFunctionError{Formula: formula}
	}
	fn, ok := functions[name]
	if !ok {
		return 0, &UnknownFunctionError{Formula: formula}
	}
	if len(args) == 0 {
		return 0, &UnknownFunctionError{Formula: formula}
	}

	values := make([]float64, 0, len(args))
	for _, arg := range args {
		if lit, err := strconv.ParseFloat(arg, 64); err == nil {
			values = append(values, lit)
			continue
		}
		bound, ok := bindings[arg]
		if !ok {
			return 0, &UnboundSymbolError{Symbol: arg}
		}
		v, err := Coerce(arg, bound)
		if err != nil {
			return 0, err
		}
		values = append(values, v)
	}

	return fn(values), nil
}

// Coerce converts a bound value to a float64, failing with TypeCoercionError
// for anything that is not a number or a numeric string.
func Coerce(symbol string, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, &TypeCoercionError{Symbol: symbol, Value: value}
		}
		return f, nil
	default:
		return 0, &TypeCoercionError{Symbol: symbol, Value: value}
	}
}

// split breaks "fn(a, b)" into its name and trimmed arguments.
func split(formula string) (string, []string, bool) {
	s := strings.TrimSpace(formula)
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return "", nil, false
	}
	name := strings.ToLower(strings.TrimSpace(s[:open]))
	inner := s[open+1 : len(s)-1]
	if strings.ContainsAny(inner, "()") {
		// nested calls are outside the grammar
		return "", nil, false
	}
	if strings.TrimSpace(inner) == "" {
		return name, nil, true
	}
	parts := strings.Split(inner, ",")
	args := make([]string, 0, len(parts))
	for _, p := range parts {
		args = append(args, strings.TrimSpace(p))
	}
	return name, args, true
}
