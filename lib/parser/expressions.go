package parser

import (
	"fmt"

	lualex "github.com/vyPal/PicoLua/lib/lexer"
)

// Binary precedence levels, lowest first. Everything at or above
// precUnary is handled by unary and power.
type precedence int

const (
	precOr precedence = iota
	precAnd
	precCmp
	precConcat
	precAdd
	precMul
	precUnary
)

var binaryPrecedence = map[string]precedence{
	"or":  precOr,
	"and": precAnd,
	"<":   precCmp,
	">":   precCmp,
	"<=":  precCmp,
	">=":  precCmp,
	"~=":  precCmp,
	"==":  precCmp,
	"!=":  precCmp,
	"..":  precConcat,
	"+":   precAdd,
	"-":   precAdd,
	"*":   precMul,
	"/":   precMul,
	"%":   precMul,
}

var literalKeywords = map[string]LitKind{
	"nil":   LitNil,
	"false": LitFalse,
	"true":  LitTrue,
}

// chainEnd records what the last link of a prefix expression chain was.
type chainEnd int

const (
	endName chainEnd = iota
	endParen
	endIndex
	endAttr
	endCall
)

func (e chainEnd) isVar() bool {
	return e == endName || e == endIndex || e == endAttr
}

func (p *Parser) acceptSymbol(s string) bool {
	_, ok := p.accept(lualex.TokSymbol, s)
	return ok
}

func (p *Parser) exp() (Exp, error) {
	return p.binary(precOr)
}

// binaryOp consumes an operator of exactly the given level.
func (p *Parser) binaryOp(level precedence) (lualex.Token, bool) {
	if p.pos >= p.horizon || p.pos >= len(p.tokens) {
		return lualex.Token{}, false
	}
	tok := p.tokens[p.pos]
	if tok.Type != lualex.TokSymbol && tok.Type != lualex.TokKeyword {
		return lualex.Token{}, false
	}
	if prec, ok := binaryPrecedence[tok.Value]; !ok || prec != level {
		return lualex.Token{}, false
	}
	p.pos++
	return tok, true
}

func (p *Parser) binary(level precedence) (Exp, error) {
	if level == precUnary {
		return p.unary()
	}
	start := p.pos
	left, err := p.binary(level + 1)
	if err != nil || left == nil {
		return nil, err
	}
	for {
		op, ok := p.binaryOp(level)
		if !ok {
			return left, nil
		}
		// ".." is right-associative: the right operand absorbs the rest of
		// the concatenation.
		next := level + 1
		if level == precConcat {
			next = level
		}
		right, err := required(p, func() (Exp, error) { return p.binary(next) },
			fmt.Sprintf("expected expression after '%s'", op.Value))
		if err != nil {
			return nil, err
		}
		left = &ExpBinOp{Span: p.span(start), Left: left, Op: op, Right: right}
	}
}

func (p *Parser) unaryOp() (lualex.Token, bool) {
	if tok, ok := p.accept(lualex.TokKeyword, "not"); ok {
		return tok, true
	}
	if tok, ok := p.accept(lualex.TokSymbol, "#"); ok {
		return tok, true
	}
	return p.accept(lualex.TokSymbol, "-")
}

func (p *Parser) unary() (Exp, error) {
	start := p.pos
	op, ok := p.unaryOp()
	if !ok {
		return p.power()
	}
	operand, err := required(p, p.unary, fmt.Sprintf("expected expression after '%s'", op.Value))
	if err != nil {
		return nil, err
	}
	return &ExpUnOp{Span: p.span(start), Op: op, Exp: operand}, nil
}

// power binds tighter than unary minus on its left but takes a unary
// expression on its right, so -x^y is -(x^y) and 2^-1 is valid.
func (p *Parser) power() (Exp, error) {
	start := p.pos
	base, err := p.simpleexp()
	if err != nil || base == nil {
		return nil, err
	}
	op, ok := p.accept(lualex.TokSymbol, "^")
	if !ok {
		return base, nil
	}
	exponent, err := required(p, p.unary, "expected expression after '^'")
	if err != nil {
		return nil, err
	}
	return &ExpBinOp{Span: p.span(start), Left: base, Op: op, Right: exponent}, nil
}

func (p *Parser) simpleexp() (Exp, error) {
	start := p.pos
	if tok, ok := p.peek(lualex.TokKeyword); ok {
		if kind, ok := literalKeywords[tok.Value]; ok {
			p.pos++
			return &BasicLit{Span: p.span(start), Kind: kind, Token: tok}, nil
		}
	}
	if tok, ok := p.accept(lualex.TokNumber); ok {
		return &BasicLit{Span: p.span(start), Kind: LitNumber, Token: tok}, nil
	}
	if tok, ok := p.accept(lualex.TokString); ok {
		return &BasicLit{Span: p.span(start), Kind: LitString, Token: tok}, nil
	}
	if tok, ok := p.accept(lualex.TokSymbol, "..."); ok {
		return &VarargDots{Span: p.span(start), Token: tok}, nil
	}

	fn, err := p.function()
	if err != nil {
		return nil, err
	}
	if fn != nil {
		return fn, nil
	}

	table, err := p.tableconstructor()
	if err != nil {
		return nil, err
	}
	if table != nil {
		return table, nil
	}

	return p.prefixexp()
}

func (p *Parser) prefixexp() (Exp, error) {
	exp, _, err := p.chain()
	return exp, err
}

// chain parses a prefix expression and reports how it ended, which is what
// tells an assignment target from a call statement. A parenthesized
// expression yields its inner node.
func (p *Parser) chain() (Exp, chainEnd, error) {
	start := p.pos
	var (
		exp Exp
		end chainEnd
	)
	if name, ok := p.accept(lualex.TokName); ok {
		exp, end = &VarName{Span: p.span(start), Name: name}, endName
	} else if p.acceptSymbol("(") {
		inner, err := required(p, p.exp, "expected expression after '('")
		if err != nil {
			return nil, 0, err
		}
		if _, err := p.expect(lualex.TokSymbol, ")"); err != nil {
			return nil, 0, err
		}
		exp, end = inner, endParen
	} else {
		return nil, 0, nil
	}

	for {
		switch {
		case p.acceptSymbol("["):
			index, err := required(p, p.exp, "expected expression after '['")
			if err != nil {
				return nil, 0, err
			}
			if _, err := p.expect(lualex.TokSymbol, "]"); err != nil {
				return nil, 0, err
			}
			exp, end = &VarIndex{Span: p.span(start), Prefix: exp, Index: index}, endIndex

		case p.acceptSymbol("."):
			attr, err := p.expect(lualex.TokName)
			if err != nil {
				return nil, 0, err
			}
			exp, end = &VarAttribute{Span: p.span(start), Prefix: exp, Attr: attr}, endAttr

		case p.acceptSymbol(":"):
			method, err := p.expect(lualex.TokName)
			if err != nil {
				return nil, 0, err
			}
			args, err := required(p, p.args, "expected arguments after method name")
			if err != nil {
				return nil, 0, err
			}
			exp, end = &FunctionCall{Span: p.span(start), Prefix: exp, Method: &method, Args: args}, endCall

		default:
			args, err := p.args()
			if err != nil {
				return nil, 0, err
			}
			if args == nil {
				return exp, end, nil
			}
			exp, end = &FunctionCall{Span: p.span(start), Prefix: exp, Args: args}, endCall
		}
	}
}

// variable is the var rule: a prefix chain ending in a name, index or
// attribute.
func (p *Parser) variable() (Var, error) {
	start := p.pos
	exp, end, err := p.chain()
	if err != nil {
		return nil, err
	}
	if exp == nil || !end.isVar() {
		p.pos = start
		return nil, nil
	}
	return exp.(Var), nil
}

func (p *Parser) varlist() (*VarList, error) {
	start := p.pos
	first, err := p.variable()
	if err != nil || first == nil {
		return nil, err
	}
	vars := []Var{first}
	for p.acceptSymbol(",") {
		v, err := required(p, p.variable, "expected variable after ','")
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}
	return &VarList{Span: p.span(start), Vars: vars}, nil
}

func (p *Parser) functioncall() (*FunctionCall, error) {
	start := p.pos
	exp, end, err := p.chain()
	if err != nil {
		return nil, err
	}
	if exp == nil || end != endCall {
		p.pos = start
		return nil, nil
	}
	return exp.(*FunctionCall), nil
}

func (p *Parser) args() (Args, error) {
	start := p.pos
	if p.acceptSymbol("(") {
		list, err := p.explist()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lualex.TokSymbol, ")"); err != nil {
			return nil, err
		}
		return &FunctionArgs{Span: p.span(start), ExpList: list}, nil
	}
	if tok, ok := p.accept(lualex.TokString); ok {
		return &BasicLit{Span: p.span(start), Kind: LitString, Token: tok}, nil
	}
	table, err := p.tableconstructor()
	if err != nil || table == nil {
		return nil, err
	}
	return table, nil
}

func (p *Parser) explist() (*ExpList, error) {
	start := p.pos
	first, err := p.exp()
	if err != nil || first == nil {
		return nil, err
	}
	exps := []Exp{first}
	for p.acceptSymbol(",") {
		e, err := required(p, p.exp, "expected expression after ','")
		if err != nil {
			return nil, err
		}
		exps = append(exps, e)
	}
	return &ExpList{Span: p.span(start), Exps: exps}, nil
}

// namelist never fails hard. A comma that is not followed by a name is
// left for the caller, which is how a parameter list reaches its "...".
func (p *Parser) namelist() (*NameList, error) {
	start := p.pos
	first, ok := p.accept(lualex.TokName)
	if !ok {
		return nil, nil
	}
	names := []lualex.Token{first}
	for {
		save := p.pos
		if !p.acceptSymbol(",") {
			break
		}
		name, ok := p.accept(lualex.TokName)
		if !ok {
			p.pos = save
			break
		}
		names = append(names, name)
	}
	return &NameList{Span: p.span(start), Names: names}, nil
}

func (p *Parser) funcbody() (*FuncBody, error) {
	start := p.pos
	if !p.acceptSymbol("(") {
		return nil, nil
	}
	body := &FuncBody{}

	dots := p.pos
	if tok, ok := p.accept(lualex.TokSymbol, "..."); ok {
		body.Dots = &VarargDots{Span: p.span(dots), Token: tok}
	} else if names, _ := p.namelist(); names != nil {
		body.ParList = names
		if p.acceptSymbol(",") {
			dots = p.pos
			tok, err := p.expect(lualex.TokSymbol, "...")
			if err != nil {
				return nil, err
			}
			body.Dots = &VarargDots{Span: p.span(dots), Token: tok}
		}
	}
	if _, err := p.expect(lualex.TokSymbol, ")"); err != nil {
		return nil, err
	}

	block, err := p.blockEnd("end")
	if err != nil {
		return nil, err
	}
	body.Block = block
	body.Span = p.span(start)
	return body, nil
}

// function is an anonymous function literal.
func (p *Parser) function() (*FuncLit, error) {
	start := p.pos
	if _, ok := p.accept(lualex.TokKeyword, "function"); !ok {
		return nil, nil
	}
	body, err := required(p, p.funcbody, "expected '(' after 'function'")
	if err != nil {
		return nil, err
	}
	return &FuncLit{Span: p.span(start), Body: body}, nil
}

func (p *Parser) tableconstructor() (*TableConstructor, error) {
	start := p.pos
	if !p.acceptSymbol("{") {
		return nil, nil
	}
	var fields []Field
	for {
		f, err := p.field()
		if err != nil {
			return nil, err
		}
		if f == nil {
			break
		}
		fields = append(fields, f)
		if !p.acceptSymbol(",") && !p.acceptSymbol(";") {
			break
		}
	}
	if _, err := p.expect(lualex.TokSymbol, "}"); err != nil {
		return nil, err
	}
	return &TableConstructor{Span: p.span(start), Fields: fields}, nil
}

func (p *Parser) field() (Field, error) {
	start := p.pos
	if p.acceptSymbol("[") {
		key, err := required(p, p.exp, "expected expression after '['")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lualex.TokSymbol, "]"); err != nil {
			return nil, err
		}
		if _, err := p.expect(lualex.TokSymbol, "="); err != nil {
			return nil, err
		}
		value, err := required(p, p.exp, "expected expression after '='")
		if err != nil {
			return nil, err
		}
		return &FieldExpKey{Span: p.span(start), Key: key, Exp: value}, nil
	}

	if name, ok := p.accept(lualex.TokName); ok {
		if p.acceptSymbol("=") {
			value, err := required(p, p.exp, "expected expression after '='")
			if err != nil {
				return nil, err
			}
			return &FieldNamedKey{Span: p.span(start), Key: name, Exp: value}, nil
		}
		p.pos = start
	}

	value, err := p.exp()
	if err != nil || value == nil {
		return nil, err
	}
	return &FieldExp{Span: p.span(start), Exp: value}, nil
}
