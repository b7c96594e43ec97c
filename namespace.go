package formulas

import (
	"math"

	"github.com/ghetzel/go-stockutil/maputil"
)

// A Namespace is a read-only source of named values consulted when a name is not in the catalog.
type Namespace interface {
	Lookup(name string) (interface{}, bool)
}

// NamespaceFunc adapts an ordinary function to the Namespace interface.
type NamespaceFunc func(name string) (interface{}, bool)

func (self NamespaceFunc) Lookup(name string) (interface{}, bool) {
	return self(name)
}

var emptyNamespace = NamespaceFunc(func(string) (interface{}, bool) {
	return nil, false
})

type mathNamespace map[string]interface{}

func (self mathNamespace) Lookup(name string) (interface{}, bool) {
	v, ok := self[name]
	return v, ok
}

// MathNamespace exposes the members of JavaScript's Math object (constants and functions) under
// their usual names, backed by the Go math package.
var MathNamespace Namespace = mathNamespace{
	`E`:       math.E,
	`LN10`:    math.Ln10,
	`LN2`:     math.Ln2,
	`LOG10E`:  math.Log10E,
	`LOG2E`:   math.Log2E,
	`PI`:      math.Pi,
	`SQRT1_2`: math.Sqrt2 / 2,
	`SQRT2`:   math.Sqrt2,
	`abs`:     math.Abs,
	`acos`:    math.Acos,
	`acosh`:   math.Acosh,
	`asin`:    math.Asin,
	`asinh`:   math.Asinh,
	`atan`:    math.Atan,
	`atan2`:   math.Atan2,
	`atanh`:   math.Atanh,
	`cbrt`:    math.Cbrt,
	`ceil`:    math.Ceil,
	`cos`:     math.Cos,
	`cosh`:    math.Cosh,
	`exp`:     math.Exp,
	`expm1`:   math.Expm1,
	`floor`:   math.Floor,
	`hypot`:   math.Hypot,
	`log`:     math.Log,
	`log10`:   math.Log10,
	`log1p`:   math.Log1p,
	`log2`:    math.Log2,
	`max`:     math.Max,
	`min`:     math.Min,
	`pow`:     math.Pow,
	`round`:   math.Round,
	`sign`:    sign,
	`sin`:     math.Sin,
	`sinh`:    math.Sinh,
	`sqrt`:    math.Sqrt,
	`tan`:     math.Tan,
	`tanh`:    math.Tanh,
	`trunc`:   math.Trunc,
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return x
	}
}

// A GlobalNamespace holds the bindings the host makes available to every expression, consulted
// as the last resort before a name is echoed back.  Names bound to nil are treated as unbound.
type GlobalNamespace struct {
	values *maputil.Map
}

func NewGlobalNamespace(values map[string]interface{}) *GlobalNamespace {
	var bindings = make(map[string]interface{}, len(values))

	for k, v := range values {
		bindings[k] = v
	}

	return &GlobalNamespace{
		values: maputil.M(bindings),
	}
}

func (self *GlobalNamespace) Lookup(name string) (interface{}, bool) {
	if self == nil || self.values == nil {
		return nil, false
	}

	// names are matched whole; dots do not walk into nested bindings
	if v, ok := self.values.MapNative()[name]; ok && v != nil {
		return v, true
	}

	return nil, false
}
