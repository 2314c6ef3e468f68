package analyzer

import (
	lualex "github.com/vyPal/PicoLua/lib/lexer"
	"github.com/vyPal/PicoLua/lib/parser"
)

type SymbolKind int

const (
	SymGlobal SymbolKind = iota
	SymLocal
	SymFunction
	SymLocalFunction
	SymParameter
	SymLabel
)

var symbolKindNames = [...]string{"global", "local", "function", "local function", "parameter", "label"}

func (k SymbolKind) String() string { return symbolKindNames[k] }

func (k SymbolKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Symbol is a declaration: Token is where the name was introduced.
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Token lualex.Token
}

// Context is one lexical block. A context that opens a function body bounds
// label lookups and carries that function's vararg flag.
type Context struct {
	Parent   *Context
	Locals   map[string]Symbol
	Labels   map[string]Symbol
	function bool
	vararg   bool
	gotos    []*parser.StatGoto
}

// NewContext returns the context of a main chunk, which is always vararg.
func NewContext() *Context {
	return &Context{
		Locals:   make(map[string]Symbol),
		Labels:   make(map[string]Symbol),
		function: true,
		vararg:   true,
	}
}

// NewContext opens a nested block in the same function.
func (c *Context) NewContext() *Context {
	return &Context{
		Parent: c,
		Locals: make(map[string]Symbol),
		Labels: make(map[string]Symbol),
	}
}

func (c *Context) NewFunctionContext(vararg bool) *Context {
	ctx := c.NewContext()
	ctx.function = true
	ctx.vararg = vararg
	return ctx
}

func (c *Context) Declare(sym Symbol) {
	if sym.Kind == SymLabel {
		c.Labels[sym.Name] = sym
		return
	}
	c.Locals[sym.Name] = sym
}

// LookupLocal resolves a name against every enclosing block, across
// function boundaries, since closures see their parents' locals.
func (c *Context) LookupLocal(name string) (Symbol, bool) {
	if v, ok := c.Locals[name]; ok {
		return v, true
	} else if c.Parent != nil {
		return c.Parent.LookupLocal(name)
	} else {
		return Symbol{}, false
	}
}

// LookupLabel only searches up to the enclosing function.
func (c *Context) LookupLabel(name string) (Symbol, bool) {
	if v, ok := c.Labels[name]; ok {
		return v, true
	} else if c.Parent != nil && !c.function {
		return c.Parent.LookupLabel(name)
	} else {
		return Symbol{}, false
	}
}

func (c *Context) Vararg() bool {
	for ctx := c; ctx != nil; ctx = ctx.Parent {
		if ctx.function {
			return ctx.vararg
		}
	}
	return false
}
