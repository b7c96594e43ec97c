package formulas

import (
	"math"
	"strings"

	"github.com/ghetzel/go-stockutil/sliceutil"
	"github.com/ghetzel/go-stockutil/stringutil"
	"github.com/ghetzel/go-stockutil/typeutil"
)

// An ArgFlattener turns the complete argument list of a call into an ordered sequence of
// values.  It is consulted when a function that expects a collection is instead called with
// several bare arguments, e.g. sum(1, 2, 3).
type ArgFlattener func(args []interface{}) []interface{}

// DeepFlatten recursively expands every collection in the argument list.
func DeepFlatten(args []interface{}) []interface{} {
	return sliceutil.Flatten(args)
}

// ShallowFlatten expands collections in the argument list by exactly one level.
func ShallowFlatten(args []interface{}) []interface{} {
	var out = make([]interface{}, 0, len(args))

	for _, arg := range args {
		if isCollection(arg) {
			out = append(out, sliceutil.Sliceify(arg)...)
		} else {
			out = append(out, arg)
		}
	}

	return out
}

// Numbers normalizes the arguments of a call into a sequence of finite numbers.  The first
// argument is the operand: if it is a collection, its elements are used directly.  Otherwise,
// when more than one argument was given the whole list is passed through the flattener; a
// lone scalar becomes a one-element sequence.  Anything not representable as a finite number
// (nil, booleans, non-numeric or empty text, NaN, infinities, nested collections) is dropped.
func (self ArgFlattener) Numbers(args ...interface{}) []float64 {
	var items []interface{}

	if len(args) == 0 {
		return []float64{}
	} else if operand := args[0]; isCollection(operand) {
		items = sliceutil.Sliceify(operand)
	} else if len(args) > 1 && self != nil {
		items = self(args)
	} else {
		items = []interface{}{operand}
	}

	var out = make([]float64, 0, len(items))

	for _, item := range items {
		if n, ok := asNumber(item); ok {
			out = append(out, n)
		}
	}

	return out
}

// ToNumbers is ArgFlattener.Numbers using DeepFlatten.
func ToNumbers(args ...interface{}) []float64 {
	return ArgFlattener(DeepFlatten).Numbers(args...)
}

func isCollection(value interface{}) bool {
	if value == nil {
		return false
	}

	return typeutil.IsArray(value)
}

// convert a scalar to a float64, permitting infinities and NaN.
func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case nil, bool:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if v = strings.TrimSpace(v); v == `` {
			return 0, false
		} else {
			value = v
		}
	}

	if isCollection(value) || typeutil.IsMap(value) {
		return 0, false
	}

	if f, err := stringutil.ConvertToFloat(value); err == nil {
		return f, true
	}

	return 0, false
}

func asNumber(value interface{}) (float64, bool) {
	if f, ok := toFloat(value); ok && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f, true
	}

	return 0, false
}

func truthy(value interface{}) bool {
	if f, ok := value.(float64); ok && math.IsNaN(f) {
		return false
	}

	return !typeutil.IsZero(value)
}
