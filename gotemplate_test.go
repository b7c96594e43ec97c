package formulas

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvalExpressions(t *testing.T) {
	assert := require.New(t)
	resolver := NewResolver(ResolverConfig{
		Globals: NewGlobalNamespace(map[string]interface{}{
			`taxRate`: 0.25,
		}),
	})

	record := map[string]interface{}{
		`prices`:  []interface{}{1, 2, `n/a`, 3},
		`pair`:    []interface{}{1, 2},
		`flag`:    true,
		`missing`: nil,
		`label`:   `total`,
	}

	for expr, expected := range map[string]string{
		`sum .prices`:                            `6`,
		`{{ avg .prices }}`:                      `2`,
		`fn "AVG" .prices`:                       `2`,
		`max .prices`:                            `3`,
		`count .prices`:                          `4`,
		`count .missing`:                         `1`,
		`count .label`:                           `0`,
		`add 1 .pair`:                            `[2 3]`,
		`add .pair .prices`:                      `[2 4 3]`,
		`add 1 2 3`:                              `6`,
		`round 3.14159 2`:                        `3.14`,
		`round 2.6`:                              `3`,
		`iff .flag "yes" "no"`:                   `yes`,
		`iff .missing "yes"`:                     ``,
		`IF .flag "upper"`:                       `upper`,
		`fn "SUM" .prices`:                       `6`,
		`fn "Sqrt" 16`:                           `4`,
		`fn "PI"`:                                `3.141592653589793`,
		`fn "taxRate"`:                           `0.25`,
		`fn "nothing" 1 2`:                       `nothing`,
		`SUM 1 2`:                                `3`,
		`AVG .prices`:                            `2`,
		`Sqrt 16`:                                `4`,
		`PI`:                                     `3.141592653589793`,
		`taxRate`:                                `0.25`,
		`foo 1 2`:                                `foo`,
		`{{ len .pair }}`:                        `2`,
		`{{ if .flag }}{{ Max .pair }}{{ end }}`: `2`,
		`round 2.675 2`:                          `2.68`,
		`sum .pair | printf "%.1f"`:              `3.0`,
		`{{ .label }}: {{ sum .prices }}`:        `total: 6`,
	} {
		out, err := Eval(resolver, expr, record)
		assert.NoError(err, expr)
		assert.Equal(expected, out, expr)
	}
}

func TestTemplateEngines(t *testing.T) {
	assert := require.New(t)

	tmpl, err := NewTemplate(`html`, HtmlEngine, nil).Parse(`{{ iff .ok "<b>" }}`)
	assert.NoError(err)
	assert.Equal(`html`, tmpl.Name())

	var out bytes.Buffer
	assert.NoError(tmpl.Render(&out, map[string]interface{}{`ok`: 1}))
	assert.Equal(`&lt;b&gt;`, out.String())

	_, err = NewTemplate(`bad`, `mustache`, nil).Parse(`{{ sum 1 }}`)
	assert.Error(err)

	tmpl, err = NewTemplate(`unknown`, TextEngine, nil).Parse(`{{ nosuchfunction 1 }}/{{ COUNT .items }}`)
	assert.NoError(err)

	out.Reset()
	assert.NoError(tmpl.Render(&out, map[string]interface{}{`items`: []int{1, 2}}))
	assert.Equal(`nosuchfunction/2`, out.String())

	_, err = NewTemplate(`reserved`, TextEngine, nil).Parse(`{{ data 1 }}`)
	assert.Error(err)

	_, err = NewTemplate(`bad`, TextEngine, nil).Parse(`{{ sum 1 `)
	assert.Error(err)

	assert.Error(NewTemplate(`unparsed`, TextEngine, nil).Render(&out, nil))
}

func TestTemplateFuncsExcludeReserved(t *testing.T) {
	assert := require.New(t)

	funcs := NewTemplate(`t`, TextEngine, DefaultResolver()).Funcs()
	assert.Contains(funcs, `sum`)
	assert.Contains(funcs, `IF`)
	assert.Contains(funcs, DynamicCallFunction)

	funcs = NewTemplate(`t`, TextEngine, NewResolver(ResolverConfig{
		Reserved: `sum`,
	})).Funcs()

	assert.NotContains(funcs, `sum`)
	assert.Contains(funcs, `average`)
}
