package formulas

import (
	"math"
	"strconv"

	"github.com/cockroachdb/apd/v3"
	"github.com/ghetzel/go-stockutil/log"
	"github.com/ghetzel/go-stockutil/mathutil"
	"github.com/ghetzel/go-stockutil/stringutil"
	"github.com/montanaflynn/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// The most fractional digits round() will format to.
const MaxRoundPlaces = 20

type statsUnaryFn func(stats.Float64Data) (float64, error)

type statsUnary struct {
	Name     string
	Aliases  []string
	Summary  string
	Empty    float64
	Examples []FuncExample
	Function statsUnaryFn
}

func loadStandardFunctionsMath(flatten ArgFlattener) FuncGroup {
	var group = FuncGroup{
		Name: `Math and Statistics`,
		Description: `These functions aggregate and combine numbers.  Non-numeric values (including nulls) ` +
			`are ignored rather than treated as zero, and no function in this group ever fails.`,
		Functions: []FuncDef{
			{
				Name: `add`,
				Summary: `Add numbers and arrays of numbers together.  Arrays are added element-wise; ` +
					`a number added to an array is added to every element of it.  The result is a number ` +
					`if every value was a number, otherwise an array as long as the longest array given.`,
				Returns: `float, array[float]`,
				Arguments: []FuncArg{
					{
						Name:        `values`,
						Type:        `float, integer, array[float, integer]`,
						Description: `The numbers and/or arrays to add.  Non-numeric values are skipped.`,
						Variadic:    true,
					},
				},
				Examples: []FuncExample{
					{
						Code:   `add 1 2 3`,
						Return: 6.0,
					}, {
						Code:   `add 1 [1, 2, 3]`,
						Return: []float64{2, 3, 4},
					}, {
						Code:   `add [1, 2] [10, 20, 30]`,
						Return: []float64{11, 22, 30},
					},
				},
				Function: add,
			}, {
				Name: `round`,
				Summary: `Round a number to at most _n_ decimal places, trimming trailing zeros.  Without ` +
					`_n_ the number is rounded to the nearest integer, halves going up (towards +Infinity).  ` +
					`When rounding to decimal places, the number as it is usually written (its shortest ` +
					`decimal form) is rounded, and exact halves go to the nearest even digit.`,
				Returns: `float`,
				Arguments: []FuncArg{
					{
						Name:        `number`,
						Type:        `float, integer`,
						Description: `The number to round.`,
					}, {
						Name:        `places`,
						Type:        `integer`,
						Description: `The maximum number of fractional digits to keep.`,
						Optional:    true,
						Default:     0,
					},
				},
				Examples: []FuncExample{
					{
						Code:   `round 3.14159 2`,
						Return: 3.14,
					}, {
						Code:   `round 3.0 2`,
						Return: 3.0,
					}, {
						Code:   `round 2.6`,
						Return: 3.0,
					}, {
						Code:        `round 2.675 2`,
						Description: `Rounds the value as written, not its binary approximation.`,
						Return:      2.68,
					},
				},
				Function: round,
			},
		},
	}

	// Numeric Aggregation Functions
	// ---------------------------------------------------------------------------------------------
	for _, obj := range []statsUnary{
		{
			Name:    `sum`,
			Summary: `Return the sum of the given numbers, or 0 if there are none.`,
			Examples: []FuncExample{
				{
					Code:        `sum [1, "x", 3]`,
					Description: `Non-numeric values are skipped, not counted as zero.`,
					Return:      4.0,
				},
			},
			Function: stats.Sum,
		}, {
			Name:    `average`,
			Aliases: []string{`avg`},
			Summary: `Return the arithmetic mean of the given numbers, or 0 if there are none.`,
			Examples: []FuncExample{
				{
					Code:   `average [2, 4]`,
					Return: 3.0,
				},
			},
			Function: stats.Mean,
		}, {
			Name:     `min`,
			Summary:  `Return the smallest of the given numbers, or +Infinity if there are none.`,
			Empty:    math.Inf(1),
			Function: stats.Min,
		}, {
			Name:     `max`,
			Summary:  `Return the largest of the given numbers, or -Infinity if there are none.`,
			Empty:    math.Inf(-1),
			Function: stats.Max,
		},
	} {
		group.Functions = append(group.Functions, FuncDef{
			Name:    obj.Name,
			Aliases: obj.Aliases,
			Summary: obj.Summary,
			Returns: `float`,
			Arguments: []FuncArg{
				{
					Name:        `numbers`,
					Type:        `array[float, integer]`,
					Description: `An array of numbers to aggregate, or the numbers themselves as separate arguments.`,
					Variadic:    true,
				},
			},
			Examples: obj.Examples,
			Function: aggregate(flatten, obj.Function, obj.Empty),
		})
	}

	return group
}

func aggregate(flatten ArgFlattener, statsFn statsUnaryFn, empty float64) func(...interface{}) float64 {
	return func(values ...interface{}) float64 {
		var input = flatten.Numbers(values...)

		if len(input) == 0 {
			return empty
		}

		if v, err := statsFn(stats.Float64Data(input)); err == nil {
			return v
		}

		return empty
	}
}

func add(operands ...interface{}) interface{} {
	var acc accumulator

	for _, operand := range operands {
		if isCollection(operand) {
			acc = acc.addVector(ToNumbers(operand))
		} else if n, ok := asNumber(operand); ok {
			acc = acc.addScalar(n)
		}
	}

	return acc.value()
}

func round(value interface{}, places ...interface{}) float64 {
	var num, ok = toFloat(value)

	if !ok {
		return 0
	} else if math.IsInf(num, 0) || math.IsNaN(num) {
		return num
	}

	var n int

	if len(places) > 0 {
		if p, ok := asNumber(places[0]); ok {
			n = int(p)
		}
	}

	if num == 0 || n <= 0 {
		return roundHalfUp(num)
	} else if n > MaxRoundPlaces {
		n = MaxRoundPlaces
	}

	if rounded, err := roundDecimal(num, n); err == nil {
		var formatted = message.NewPrinter(language.AmericanEnglish).Sprint(
			number.Decimal(rounded, number.MaxFractionDigits(n), number.NoSeparator()),
		)

		if out, err := stringutil.ConvertToFloat(formatted); err == nil {
			return out
		} else {
			log.Debugf("round: cannot parse %q: %v", formatted, err)
			return rounded
		}
	} else {
		log.Debugf("round: %v", err)
		return mathutil.RoundPlaces(num, n)
	}
}

// nearest integer, halves going towards positive infinity
func roundHalfUp(num float64) float64 {
	var floor = math.Floor(num)

	if num-floor >= 0.5 {
		return floor + 1
	}

	return floor
}

// round the shortest decimal representation of num to the given number of places, ties to even.
func roundDecimal(num float64, places int) (float64, error) {
	var shortest = strconv.FormatFloat(num, 'f', -1, 64)

	if d, _, err := apd.NewFromString(shortest); err == nil {
		var out apd.Decimal
		var ctx = apd.BaseContext.WithPrecision(uint32(len(shortest) + places + 1))

		ctx.Rounding = apd.RoundHalfEven

		if _, err := ctx.Quantize(&out, d, int32(-places)); err != nil {
			return 0, err
		}

		return out.Float64()
	} else {
		return 0, err
	}
}
