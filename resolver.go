package formulas

import (
	"strings"

	"github.com/ghetzel/go-stockutil/log"
)

// The identifier host evaluators use for the current data record.
const DefaultReservedName = `data`

// A Stage is one step of name resolution.  It either answers for a name or declines.
type Stage func(name string) (interface{}, bool)

type ResolverConfig struct {
	// Functions consulted first, by exact then lowercased name.  Defaults to StandardCatalog().
	Catalog *Catalog

	// Consulted after the catalog, by exact then lowercased name.  Defaults to MathNamespace.
	Math Namespace

	// Host bindings consulted by exact name after Math.  Defaults to an empty namespace.
	Globals Namespace

	// The name of the host's data context, which is never resolved.  Defaults to DefaultReservedName.
	Reserved string
}

// A Resolver maps a requested function name, in any case, to an implementation by trying each
// stage in order.  Names nothing answers for resolve to themselves, so an unknown function
// renders as its own name instead of failing evaluation.  A Resolver is immutable once built.
type Resolver struct {
	catalog  *Catalog
	stages   []Stage
	reserved string
}

func NewResolver(config ResolverConfig) *Resolver {
	if config.Catalog == nil {
		config.Catalog = StandardCatalog()
	}

	if config.Math == nil {
		config.Math = MathNamespace
	}

	if config.Globals == nil {
		config.Globals = emptyNamespace
	}

	if config.Reserved == `` {
		config.Reserved = DefaultReservedName
	}

	return &Resolver{
		catalog:  config.Catalog,
		reserved: config.Reserved,
		stages: []Stage{
			config.Catalog.Get,
			lowercased(config.Catalog.Get),
			folded(config.Math.Lookup),
			config.Globals.Lookup,
		},
	}
}

// A Resolver over the standard catalog and MathNamespace with no global bindings.
func DefaultResolver() *Resolver {
	return NewResolver(ResolverConfig{})
}

func lowercased(stage Stage) Stage {
	return func(name string) (interface{}, bool) {
		return stage(strings.ToLower(name))
	}
}

func folded(stage Stage) Stage {
	return func(name string) (interface{}, bool) {
		if v, ok := stage(name); ok {
			return v, true
		}

		return stage(strings.ToLower(name))
	}
}

func (self *Resolver) Catalog() *Catalog {
	return self.catalog
}

func (self *Resolver) Reserved() string {
	return self.reserved
}

// Has reports whether the resolver claims the given identifier, which is every identifier
// except the reserved data context name.
func (self *Resolver) Has(name string) bool {
	return name != self.reserved
}

// Lookup runs the resolution stages, returning the first value any of them answers with.
func (self *Resolver) Lookup(name string) (interface{}, bool) {
	if !self.Has(name) {
		return nil, false
	}

	for _, stage := range self.stages {
		if v, ok := stage(name); ok {
			return v, true
		}
	}

	return nil, false
}

// Resolve is Lookup, falling back to the name itself.  The reserved name resolves to nil.
func (self *Resolver) Resolve(name string) interface{} {
	if v, ok := self.Lookup(name); ok {
		return v
	} else if !self.Has(name) {
		return nil
	}

	log.Debugf("formulas: unresolved name %q", name)
	return name
}

// Resolve the named function and call it with the given arguments.  Resolutions that are not
// functions (constants, unresolved names) are returned as they are.
func (self *Resolver) Call(name string, args ...interface{}) (interface{}, error) {
	return Invoke(self.Resolve(name), args...)
}
