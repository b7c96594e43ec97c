package formulas

import (
	"fmt"
	"reflect"

	"github.com/ghetzel/go-stockutil/typeutil"
)

var errorInterface = reflect.TypeOf((*error)(nil)).Elem()

// Invoke calls fn with the given arguments, converting each to the type of the parameter it
// fills.  Missing arguments are zero values and surplus ones are ignored (unless fn is variadic).
// If fn is not a function it is returned unchanged.
func Invoke(fn interface{}, args ...interface{}) (interface{}, error) {
	var fnV = reflect.ValueOf(fn)

	if !fnV.IsValid() || fnV.Kind() != reflect.Func {
		return fn, nil
	}

	var fnT = fnV.Type()
	var fixed = fnT.NumIn()
	var arguments = make([]reflect.Value, 0, len(args))

	if fnT.IsVariadic() {
		fixed--
	}

	// loop through the arguments the target function takes, building an equally-sized list
	// of reflect.Value instances of the right types.
	for i := 0; i < fixed; i++ {
		var arg interface{}

		if i < len(args) {
			arg = args[i]
		}

		if argV, err := convertArg(arg, fnT.In(i)); err == nil {
			arguments = append(arguments, argV)
		} else {
			return nil, fmt.Errorf("argument %d: %v", i, err)
		}
	}

	if fnT.IsVariadic() && len(args) > fixed {
		var elemT = fnT.In(fixed).Elem()

		for i, arg := range args[fixed:] {
			if argV, err := convertArg(arg, elemT); err == nil {
				arguments = append(arguments, argV)
			} else {
				return nil, fmt.Errorf("argument %d: %v", fixed+i, err)
			}
		}
	}

	var returns = fnV.Call(arguments)

	switch len(returns) {
	case 0:
		return nil, nil
	case 1:
		if returns[0].Type().Implements(errorInterface) {
			if v := returns[0].Interface(); v != nil {
				return nil, v.(error)
			}

			return nil, nil
		}

		return returns[0].Interface(), nil
	case 2:
		if lastT := returns[1].Type(); lastT.Implements(errorInterface) {
			var value = returns[0].Interface()

			if v := returns[1].Interface(); v != nil {
				return value, v.(error)
			}

			return value, nil
		} else {
			return nil, fmt.Errorf("last return value must be an error, got %v", lastT)
		}
	default:
		return nil, fmt.Errorf("functions may return at most two values, got %d", len(returns))
	}
}

func convertArg(arg interface{}, argT reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(argT), nil
	}

	var inV = reflect.ValueOf(arg)

	if inV.Type().AssignableTo(argT) {
		return inV, nil
	}

	switch argT.Kind() {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		// numeric parameters cannot express "no number"; non-numeric input becomes zero
		if f, ok := toFloat(arg); ok {
			return reflect.ValueOf(f).Convert(argT), nil
		}

		return reflect.Zero(argT), nil
	case reflect.String:
		return reflect.ValueOf(typeutil.String(arg)).Convert(argT), nil
	}

	if inV.Type().ConvertibleTo(argT) {
		return inV.Convert(argT), nil
	}

	return reflect.Value{}, fmt.Errorf("cannot use %T as %v", arg, argT)
}
