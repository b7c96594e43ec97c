package formulas

import (
	"github.com/ghetzel/go-stockutil/sliceutil"
)

func loadStandardFunctionsCollections(flatten ArgFlattener) FuncGroup {
	return FuncGroup{
		Name:        `Collections`,
		Description: `Functions for inspecting arrays and the fields that may or may not hold them.`,
		Functions: []FuncDef{
			{
				Name: `count`,
				Summary: `Return the length of the given array.  Given anything other than an array, return 1 if ` +
					`the value is null (a missing field counts as one absent record) and 0 otherwise.`,
				Returns: `integer`,
				Arguments: []FuncArg{
					{
						Name:        `value`,
						Type:        `any`,
						Description: `The array (or field) to count.`,
					},
				},
				Examples: []FuncExample{
					{
						Code:   `count [1, 2, 3]`,
						Return: 3,
					}, {
						Code:   `count null`,
						Return: 1,
					}, {
						Code:   `count "x"`,
						Return: 0,
					},
				},
				Function: count,
			},
		},
	}
}

func count(value interface{}) int {
	if isCollection(value) {
		return len(sliceutil.Sliceify(value))
	} else if value == nil {
		return 1
	}

	return 0
}
