package formulas

func loadStandardFunctionsComparisons(flatten ArgFlattener) FuncGroup {
	return FuncGroup{
		Name:        `Comparison Functions`,
		Description: `Used for returning one of several options based on a given condition.`,
		Functions: []FuncDef{
			{
				Name:    `iff`,
				Aliases: []string{`iif`, `IF`},
				Summary: `Return one value if the condition is truthy, and another (or an empty string) if it is not.`,
				Returns: `any`,
				Arguments: []FuncArg{
					{
						Name:        `condition`,
						Type:        `any`,
						Description: `The value being tested.  Null, false, zero and empty values are falsy.`,
					}, {
						Name:        `ifTrue`,
						Type:        `any`,
						Description: `The value to return if _condition_ is truthy.`,
					}, {
						Name:        `ifFalse`,
						Type:        `any`,
						Description: `The value to return if _condition_ is falsy.`,
						Optional:    true,
						Default:     ``,
					},
				},
				Examples: []FuncExample{
					{
						Code:   `iff 1 "yes" "no"`,
						Return: `yes`,
					}, {
						Code:   `iff 0 "yes"`,
						Return: ``,
					},
				},
				Function: iff,
			},
		},
	}
}

func iff(condition interface{}, ifTrue interface{}, ifFalse ...interface{}) interface{} {
	if truthy(condition) {
		return ifTrue
	} else if len(ifFalse) > 0 {
		return ifFalse[0]
	}

	return ``
}
