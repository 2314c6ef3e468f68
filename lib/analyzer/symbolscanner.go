package analyzer

import (
	"fmt"
	"strings"

	lualex "github.com/vyPal/PicoLua/lib/lexer"
	"github.com/vyPal/PicoLua/lib/parser"
)

// ScanSymbols lists every declaration in chunk in source order: locals,
// parameters, labels, functions and the first assignment to each global.
func ScanSymbols(chunk *parser.Block) []Symbol {
	s := newScanner()
	s.chunk(chunk)
	return s.symbols
}

type scanner struct {
	symbols  []Symbol
	globals  map[string]bool
	warnings []Warning
}

func newScanner() *scanner {
	return &scanner{globals: make(map[string]bool)}
}

func (s *scanner) warn(tok lualex.Token, format string, args ...interface{}) {
	s.warnings = append(s.warnings, Warning{Msg: fmt.Sprintf(format, args...), Token: tok})
}

func (s *scanner) declare(ctx *Context, tok lualex.Token, kind SymbolKind) {
	sym := Symbol{Name: tok.Value, Kind: kind, Token: tok}
	s.symbols = append(s.symbols, sym)
	ctx.Declare(sym)
}

func (s *scanner) chunk(b *parser.Block) {
	ctx := NewContext()
	s.stats(b.Stats, ctx)
	s.close(ctx)
}

// scope runs a block in a fresh child context.
func (s *scanner) scope(b *parser.Block, ctx *Context) {
	inner := ctx.NewContext()
	s.stats(b.Stats, inner)
	s.close(inner)
}

// close resolves the gotos left in ctx. Labels may follow the goto, so this
// waits until the block is complete; what is still unresolved moves out to
// the enclosing block of the same function.
func (s *scanner) close(ctx *Context) {
	for _, g := range ctx.gotos {
		if _, ok := ctx.Labels[g.Label.Value]; ok {
			continue
		}
		if !ctx.function && ctx.Parent != nil {
			ctx.Parent.gotos = append(ctx.Parent.gotos, g)
			continue
		}
		s.warn(g.Label, "no visible label '%s' for goto", g.Label.Value)
	}
	ctx.gotos = nil
}

func (s *scanner) stats(stats []parser.Stat, ctx *Context) {
	for _, stat := range stats {
		s.stat(stat, ctx)
	}
}

func (s *scanner) stat(stat parser.Stat, ctx *Context) {
	switch st := stat.(type) {
	case *parser.StatAssignment:
		s.exps(st.ExpList, ctx)
		for _, v := range st.VarList.Vars {
			if name, ok := v.(*parser.VarName); ok {
				s.assign(name.Name, ctx)
			} else {
				s.exp(v, ctx)
			}
		}

	case *parser.StatFunctionCall:
		s.exp(st.Call, ctx)

	case *parser.StatDo:
		s.scope(st.Block, ctx)

	case *parser.StatWhile:
		s.exp(st.Exp, ctx)
		s.scope(st.Block, ctx)

	case *parser.StatRepeat:
		// The condition sees the body's locals.
		inner := ctx.NewContext()
		s.stats(st.Block.Stats, inner)
		s.exp(st.Exp, inner)
		s.close(inner)

	case *parser.StatIf:
		for _, pair := range st.Pairs {
			if pair.Cond != nil {
				s.exp(pair.Cond, ctx)
			}
			s.scope(pair.Block, ctx)
		}

	case *parser.StatFor:
		s.exp(st.Init, ctx)
		s.exp(st.Limit, ctx)
		if st.Step != nil {
			s.exp(st.Step, ctx)
		}
		inner := ctx.NewContext()
		s.declare(inner, st.Name, SymLocal)
		s.stats(st.Block.Stats, inner)
		s.close(inner)

	case *parser.StatForIn:
		s.exps(st.ExpList, ctx)
		inner := ctx.NewContext()
		for _, name := range st.NameList.Names {
			s.declare(inner, name, SymLocal)
		}
		s.stats(st.Block.Stats, inner)
		s.close(inner)

	case *parser.StatFunction:
		s.functionName(st.Name, ctx)
		s.function(st.Body, ctx, st.Name.MethodName)

	case *parser.StatLocalFunction:
		// Declared before the body so it can recurse.
		s.declare(ctx, st.Name, SymLocalFunction)
		s.function(st.Body, ctx, nil)

	case *parser.StatLocalAssignment:
		s.exps(st.ExpList, ctx)
		for _, name := range st.NameList.Names {
			s.declare(ctx, name, SymLocal)
		}

	case *parser.StatGoto:
		ctx.gotos = append(ctx.gotos, st)

	case *parser.StatLabel:
		if prev, ok := ctx.LookupLabel(st.Label.Value); ok {
			s.warn(st.Label, "label '%s' already defined on line %d", st.Label.Value, prev.Token.Pos.Line)
			break
		}
		s.declare(ctx, st.Label, SymLabel)

	case *parser.StatReturn:
		s.exps(st.ExpList, ctx)
	}
}

// assign records a plain name being assigned. Names that resolve to no
// local are globals.
func (s *scanner) assign(tok lualex.Token, ctx *Context) {
	if _, ok := ctx.LookupLocal(tok.Value); ok {
		return
	}
	if s.globals[tok.Value] {
		return
	}
	s.globals[tok.Value] = true
	s.symbols = append(s.symbols, Symbol{Name: tok.Value, Kind: SymGlobal, Token: tok})
}

func (s *scanner) functionName(fn *parser.FunctionName, ctx *Context) {
	root := fn.NamePath[0]
	if len(fn.NamePath) == 1 && fn.MethodName == nil {
		if _, ok := ctx.LookupLocal(root.Value); ok {
			return
		}
		s.globals[root.Value] = true
	}

	parts := make([]string, len(fn.NamePath))
	for i, tok := range fn.NamePath {
		parts[i] = tok.Value
	}
	name := strings.Join(parts, ".")
	if fn.MethodName != nil {
		name += ":" + fn.MethodName.Value
	}
	s.symbols = append(s.symbols, Symbol{Name: name, Kind: SymFunction, Token: root})
}

// function scans a function body. A method gets an implicit self.
func (s *scanner) function(body *parser.FuncBody, ctx *Context, method *lualex.Token) {
	fn := ctx.NewFunctionContext(body.Dots != nil)
	if method != nil {
		self := *method
		self.Value = "self"
		fn.Declare(Symbol{Name: "self", Kind: SymParameter, Token: self})
	}
	if body.ParList != nil {
		for _, name := range body.ParList.Names {
			s.declare(fn, name, SymParameter)
		}
	}
	s.stats(body.Block.Stats, fn)
	s.close(fn)
}

func (s *scanner) exps(list *parser.ExpList, ctx *Context) {
	if list == nil {
		return
	}
	for _, e := range list.Exps {
		s.exp(e, ctx)
	}
}

func (s *scanner) exp(e parser.Exp, ctx *Context) {
	parser.Inspect(e, func(n parser.Node) bool {
		switch n := n.(type) {
		case *parser.VarargDots:
			if !ctx.Vararg() {
				s.warn(n.Token, "cannot use '...' outside a vararg function")
			}
		case *parser.FuncLit:
			s.function(n.Body, ctx, nil)
			return false
		}
		return true
	})
}
