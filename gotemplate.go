package formulas

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	htemplate "html/template"
	ttemplate "text/template"
	"text/template/parse"
)

type FuncMap map[string]interface{}

const TextEngine string = `text`
const HtmlEngine string = `html`

// The name of the template function that calls any other function by name, going through the
// resolver's full fallback chain: {{ fn "SQRT" 16 }}.
const DynamicCallFunction = `fn`

// the functions text/template provides itself, which are never resolved
var builtinTemplateFunctions = map[string]bool{
	`and`: true, `call`: true, `html`: true, `index`: true, `slice`: true, `js`: true,
	`len`: true, `not`: true, `or`: true, `print`: true, `printf`: true, `println`: true,
	`urlquery`: true, `eq`: true, `ge`: true, `gt`: true, `le`: true, `lt`: true, `ne`: true,
}

// A Template evaluates formulas written in Go template syntax against a data record, which is
// available as the template dot.  Function names are resolved like any other name: in any case,
// through the math and global namespaces, and unknown names render as themselves
// ({{ SUM .prices }}, {{ sqrt 16 }}, {{ nothing 1 }}).
type Template struct {
	html     *htemplate.Template
	text     *ttemplate.Template
	name     string
	engine   string
	resolver *Resolver
}

func NewTemplate(name string, engine string, resolver *Resolver) *Template {
	if resolver == nil {
		resolver = DefaultResolver()
	}

	return &Template{
		name:     name,
		engine:   engine,
		resolver: resolver,
	}
}

// Return the functions made available to template bodies.
func (self *Template) Funcs() FuncMap {
	var funcs = make(FuncMap)

	for _, name := range self.resolver.Catalog().Names() {
		if self.resolver.Has(name) {
			funcs[name] = self.resolver.Resolve(name)
		}
	}

	funcs[DynamicCallFunction] = self.resolver.Call

	return funcs
}

func (self *Template) Parse(body string) (*Template, error) {
	var funcs = self.Funcs()

	if names, err := identifiers(self.name, body); err == nil {
		for _, name := range names {
			if _, ok := funcs[name]; ok || builtinTemplateFunctions[name] || !self.resolver.Has(name) {
				continue
			}

			funcs[name] = self.caller(name)
		}
	} else {
		return nil, err
	}

	switch self.engine {
	case HtmlEngine:
		if tmpl, err := htemplate.New(self.name).Funcs(htemplate.FuncMap(funcs)).Parse(body); err == nil {
			self.html = tmpl
			self.text = nil
		} else {
			return nil, err
		}
	case TextEngine, ``:
		if tmpl, err := ttemplate.New(self.name).Funcs(ttemplate.FuncMap(funcs)).Parse(body); err == nil {
			self.html = nil
			self.text = tmpl
		} else {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown template engine %q", self.engine)
	}

	return self, nil
}

// a template function calling whatever the resolver makes of name
func (self *Template) caller(name string) func(...interface{}) (interface{}, error) {
	return func(args ...interface{}) (interface{}, error) {
		return self.resolver.Call(name, args...)
	}
}

// Return every function name the given template body calls, without requiring any of them to
// be defined.
func identifiers(name string, body string) ([]string, error) {
	var tree = parse.New(name)
	var treeSet = make(map[string]*parse.Tree)
	var seen = make(map[string]bool)
	var names []string

	tree.Mode = parse.SkipFuncCheck

	if _, err := tree.Parse(body, ``, ``, treeSet); err != nil {
		return nil, err
	}

	var visit func(node parse.Node)

	visit = func(node parse.Node) {
		switch n := node.(type) {
		case *parse.ListNode:
			if n != nil {
				for _, child := range n.Nodes {
					visit(child)
				}
			}
		case *parse.PipeNode:
			if n != nil {
				for _, cmd := range n.Cmds {
					visit(cmd)
				}
			}
		case *parse.CommandNode:
			for _, arg := range n.Args {
				visit(arg)
			}
		case *parse.ActionNode:
			visit(n.Pipe)
		case *parse.ChainNode:
			visit(n.Node)
		case *parse.IfNode:
			visit(n.Pipe)
			visit(n.List)
			visit(n.ElseList)
		case *parse.RangeNode:
			visit(n.Pipe)
			visit(n.List)
			visit(n.ElseList)
		case *parse.WithNode:
			visit(n.Pipe)
			visit(n.List)
			visit(n.ElseList)
		case *parse.TemplateNode:
			visit(n.Pipe)
		case *parse.IdentifierNode:
			if !seen[n.Ident] {
				seen[n.Ident] = true
				names = append(names, n.Ident)
			}
		}
	}

	visit(tree.Root)

	for _, t := range treeSet {
		visit(t.Root)
	}

	return names, nil
}

func (self *Template) Name() string {
	return self.name
}

// Render the parsed template against the given data record.
func (self *Template) Render(wr io.Writer, data interface{}) error {
	if self.html != nil {
		return self.html.Execute(wr, data)
	} else if self.text != nil {
		return self.text.Execute(wr, data)
	} else {
		return fmt.Errorf("template %q has not been parsed", self.name)
	}
}

// Evaluate a single expression against the given data record and return the rendered result.
// The expression may be given bare ("sum .prices") or already delimited ("{{ sum .prices }}").
func Eval(resolver *Resolver, expr string, data interface{}) (string, error) {
	if !strings.Contains(expr, `{{`) {
		expr = `{{ ` + expr + ` }}`
	}

	if tmpl, err := NewTemplate(`expr`, TextEngine, resolver).Parse(expr); err == nil {
		var output bytes.Buffer

		if err := tmpl.Render(&output, data); err == nil {
			return output.String(), nil
		} else {
			return ``, err
		}
	} else {
		return ``, fmt.Errorf("failed to parse expression: %v", err)
	}
}
