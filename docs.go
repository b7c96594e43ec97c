package formulas

type FuncExample struct {
	Code        string
	Description string
	Return      interface{}
}

type FuncArg struct {
	Name        string
	Type        string
	Description string
	Variadic    bool
	Optional    bool
	Default     interface{}
}

type FuncDef struct {
	Name      string
	Aliases   []string
	Summary   string
	Returns   string
	Arguments []FuncArg
	Examples  []FuncExample
	Function  interface{} `json:"-"`
}

// Return every name this function answers to, starting with its canonical name.
func (self FuncDef) Names() []string {
	return append([]string{self.Name}, self.Aliases...)
}

type FuncGroup struct {
	Name        string
	Description string
	Functions   []FuncDef
	Skip        bool
}

type FuncGroups []FuncGroup

// Retrieve the definition registered under the given name or one of its aliases.
func (self FuncGroups) Def(name string) (FuncDef, bool) {
	for _, group := range self {
		for _, fn := range group.Functions {
			for _, n := range fn.Names() {
				if n == name {
					return fn, true
				}
			}
		}
	}

	return FuncDef{}, false
}

// Populate the given FuncMap with every function (and alias) in non-skipped groups.  Aliases
// are bound to the very same function value as their canonical name.
func (self FuncGroups) PopulateFuncMap(funcs FuncMap) {
	for _, group := range self {
		if group.Skip {
			continue
		}

		for _, fn := range group.Functions {
			if fn.Name != `` && fn.Function != nil {
				for _, name := range fn.Names() {
					funcs[name] = fn.Function
				}
			}
		}
	}
}
