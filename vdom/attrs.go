package vdom

import (
	"math"
	"strconv"
	"strings"

	"github.com/vcrobe/neonjsx/dom"
)

// Attrs maps attribute names to values.
type Attrs map[string]Value

// Value is an attribute value: one of String, Int, Float, Bool, Null or
// Handler.
type Value interface {
	attrValue()
}

type (
	String  string
	Int     int
	Float   float64
	Bool    bool
	Null    struct{}
	Handler dom.EventHandler
)

func (String) attrValue()  {}
func (Int) attrValue()     {}
func (Float) attrValue()   {}
func (Bool) attrValue()    {}
func (Null) attrValue()    {}
func (Handler) attrValue() {}

// On wraps fn as a Handler value.
func On(fn func(dom.Event)) Handler {
	return Handler(fn)
}

// Clone returns a shallow copy, never nil.
func (a Attrs) Clone() Attrs {
	out := make(Attrs, len(a)+1)
	for k, v := range a {
		out[k] = v
	}
	return out
}

// With returns a copy of a with key set to v.
func (a Attrs) With(key string, v Value) Attrs {
	out := a.Clone()
	out[key] = v
	return out
}

// stringify converts a static value to its attribute text. The second result
// is false for values that mean "no attribute" (false, null).
func stringify(v Value) (string, bool) {
	switch v := v.(type) {
	case String:
		return string(v), true
	case Int:
		return strconv.Itoa(int(v)), true
	case Float:
		return formatNumber(float64(v)), true
	case Bool:
		if !v {
			return "", false
		}
		return "true", true
	case Null, nil:
		return "", false
	case Handler:
		return "function", true
	default:
		return "", false
	}
}

// formatNumber follows JavaScript's Number.prototype.toString for finite and
// special values.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	// Exponent form: Go writes 1e+21 / 1e-07, JS writes 1e+21 / 1e-7.
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + sign + digits
}
