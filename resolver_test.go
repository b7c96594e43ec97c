package formulas

import (
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveCatalog(t *testing.T) {
	assert := require.New(t)
	resolver := DefaultResolver()

	sum := resolver.Resolve(`sum`)
	assert.NotNil(sum)

	for _, name := range []string{`SUM`, `Sum`, `sUm`} {
		assert.Equal(funcPointer(sum), funcPointer(resolver.Resolve(name)), name)
	}

	assert.Equal(funcPointer(resolver.Resolve(`average`)), funcPointer(resolver.Resolve(`AVG`)))
	assert.Equal(funcPointer(resolver.Resolve(`iff`)), funcPointer(resolver.Resolve(`IF`)))
	assert.Equal(funcPointer(resolver.Resolve(`iff`)), funcPointer(resolver.Resolve(`IIF`)))

	// catalog functions shadow the math namespace
	out, err := resolver.Call(`MIN`, []interface{}{})
	assert.NoError(err)
	assert.True(math.IsInf(out.(float64), 1))
}

func TestResolveMathNamespace(t *testing.T) {
	assert := require.New(t)
	resolver := DefaultResolver()

	assert.Equal(math.Pi, resolver.Resolve(`PI`))
	assert.Equal(math.E, resolver.Resolve(`E`))
	assert.Equal(funcPointer(math.Sqrt), funcPointer(resolver.Resolve(`Sqrt`)))
	assert.Equal(funcPointer(math.Floor), funcPointer(resolver.Resolve(`FLOOR`)))

	// constants are upper-case only
	assert.Equal(`pi`, resolver.Resolve(`pi`))

	out, err := resolver.Call(`sqrt`, 16)
	assert.NoError(err)
	assert.Equal(4.0, out)

	out, err = resolver.Call(`POW`, `2`, 10)
	assert.NoError(err)
	assert.Equal(1024.0, out)

	out, err = resolver.Call(`sign`, -3)
	assert.NoError(err)
	assert.Equal(-1.0, out)

	out, err = resolver.Call(`PI`, 1, 2)
	assert.NoError(err)
	assert.Equal(math.Pi, out)
}

func TestResolveGlobalsAndFallback(t *testing.T) {
	assert := require.New(t)
	resolver := NewResolver(ResolverConfig{
		Globals: NewGlobalNamespace(map[string]interface{}{
			`taxRate`: 0.2,
			`shout`:   strings.ToUpper,
			`data`:    `shadowed`,
			`unset`:   nil,
			`rates`: map[string]interface{}{
				`vat`: 0.2,
			},
		}),
	})

	assert.Equal(0.2, resolver.Resolve(`taxRate`))
	assert.Equal(`TAXRATE`, resolver.Resolve(`TAXRATE`))
	assert.Equal(`unset`, resolver.Resolve(`unset`))
	assert.Equal(`rates.vat`, resolver.Resolve(`rates.vat`))
	assert.Equal(map[string]interface{}{`vat`: 0.2}, resolver.Resolve(`rates`))

	out, err := resolver.Call(`shout`, `hi`)
	assert.NoError(err)
	assert.Equal(`HI`, out)

	v, ok := resolver.Lookup(`foo`)
	assert.False(ok)
	assert.Nil(v)

	assert.Equal(`foo`, resolver.Resolve(`foo`))
	assert.Equal(`If`, resolver.Resolve(`If`))

	out, err = resolver.Call(`foo`, 1, 2)
	assert.NoError(err)
	assert.Equal(`foo`, out)
}

func TestReservedNameIsNeverResolved(t *testing.T) {
	assert := require.New(t)
	resolver := NewResolver(ResolverConfig{
		Globals: NewGlobalNamespace(map[string]interface{}{
			`data`: `shadowed`,
		}),
	})

	assert.Equal(DefaultReservedName, resolver.Reserved())
	assert.False(resolver.Has(`data`))
	assert.True(resolver.Has(`Data`))
	assert.True(resolver.Has(`sum`))
	assert.True(resolver.Has(`anything`))

	v, ok := resolver.Lookup(`data`)
	assert.False(ok)
	assert.Nil(v)
	assert.Nil(resolver.Resolve(`data`))

	custom := NewResolver(ResolverConfig{
		Reserved: `record`,
	})

	assert.True(custom.Has(`data`))
	assert.False(custom.Has(`record`))
	assert.Nil(custom.Resolve(`record`))
	assert.Equal(`data`, custom.Resolve(`data`))
}

func TestNamespaceFunc(t *testing.T) {
	assert := require.New(t)
	resolver := NewResolver(ResolverConfig{
		Math: NamespaceFunc(func(name string) (interface{}, bool) {
			if name == `answer` {
				return 42, true
			}

			return nil, false
		}),
	})

	assert.Equal(42, resolver.Resolve(`ANSWER`))
	assert.Equal(`PI`, resolver.Resolve(`PI`))
}

func TestResolverConcurrentUse(t *testing.T) {
	assert := require.New(t)
	resolver := NewResolver(ResolverConfig{
		Globals: NewGlobalNamespace(map[string]interface{}{
			`taxRate`: 0.2,
		}),
	})

	var wg sync.WaitGroup
	var results = make([]interface{}, 64)

	for i := range results {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			switch i % 4 {
			case 0:
				results[i], _ = resolver.Call(`SUM`, []interface{}{1, 2, 3})
			case 1:
				results[i], _ = resolver.Call(`add`, 1, []interface{}{1, 2})
			case 2:
				results[i] = resolver.Resolve(`taxRate`)
			default:
				results[i] = resolver.Resolve(`unknown`)
			}
		}(i)
	}

	wg.Wait()

	for i, result := range results {
		switch i % 4 {
		case 0:
			assert.Equal(6.0, result)
		case 1:
			assert.Equal([]float64{2, 3}, result)
		case 2:
			assert.Equal(0.2, result)
		default:
			assert.Equal(`unknown`, result)
		}
	}
}
