package formulas

import (
	"fmt"
	"sort"

	"github.com/gobwas/glob"
)

// Return the documented groups of all standard functions.  The given flattener is used when an
// aggregate function is called with several bare arguments instead of one array; if nil,
// DeepFlatten is used.
func GetFunctions(flatten ArgFlattener) FuncGroups {
	if flatten == nil {
		flatten = DeepFlatten
	}

	return FuncGroups{
		// Numeric/Math Functions
		loadStandardFunctionsMath(flatten),

		// Collections
		loadStandardFunctionsCollections(flatten),

		// Comparisons and Selection
		loadStandardFunctionsComparisons(flatten),
	}
}

// Return a FuncMap of all standard functions, keyed by name and alias.
func GetStandardFunctions() FuncMap {
	var rv = make(FuncMap)

	GetFunctions(nil).PopulateFuncMap(rv)

	return rv
}

// A Catalog is the fixed, read-only mapping of function names (canonical and alias) to their
// implementations.  It is safe for concurrent use.
type Catalog struct {
	groups FuncGroups
	funcs  FuncMap
	names  []string
}

func NewCatalog(groups FuncGroups) *Catalog {
	var catalog = &Catalog{
		groups: groups,
		funcs:  make(FuncMap),
	}

	groups.PopulateFuncMap(catalog.funcs)

	for name := range catalog.funcs {
		catalog.names = append(catalog.names, name)
	}

	sort.Strings(catalog.names)

	return catalog
}

// The catalog of standard functions using DeepFlatten.
func StandardCatalog() *Catalog {
	return NewCatalog(GetFunctions(nil))
}

// Retrieve the function registered under exactly the given name.
func (self *Catalog) Get(name string) (interface{}, bool) {
	fn, ok := self.funcs[name]
	return fn, ok
}

// Return every registered name, aliases included, in sorted order.
func (self *Catalog) Names() []string {
	return append([]string(nil), self.names...)
}

func (self *Catalog) Groups() FuncGroups {
	return self.groups
}

// Return a copy of the catalog as a FuncMap.
func (self *Catalog) FuncMap() FuncMap {
	var fm = make(FuncMap, len(self.funcs))

	for k, v := range self.funcs {
		fm[k] = v
	}

	return fm
}

// Return the sorted names matching the given shell glob pattern (e.g. "a*", "{min,max}").
func (self *Catalog) Match(pattern string) ([]string, error) {
	if g, err := glob.Compile(pattern); err == nil {
		var out = make([]string, 0)

		for _, name := range self.names {
			if g.Match(name) {
				out = append(out, name)
			}
		}

		return out, nil
	} else {
		return nil, fmt.Errorf("invalid pattern %q: %v", pattern, err)
	}
}
