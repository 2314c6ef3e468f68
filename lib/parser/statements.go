package parser

import (
	lualex "github.com/vyPal/PicoLua/lib/lexer"
)

var compoundOps = func() map[string]bool {
	ops := make(map[string]bool)
	for _, op := range lualex.CompoundAssignOps() {
		ops[op] = true
	}
	return ops
}()

// blockEnd parses a block closed by the given keyword.
func (p *Parser) blockEnd(closer string) (*Block, error) {
	block, err := p.block()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lualex.TokKeyword, closer); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) stat() (Stat, error) {
	s, err := p.assignmentOrCall()
	if err != nil || s != nil {
		return s, err
	}

	if tok, ok := p.peek(lualex.TokKeyword); ok {
		switch tok.Value {
		case "do":
			return p.doStat()
		case "while":
			return p.whileStat()
		case "repeat":
			return p.repeatStat()
		case "if":
			return p.ifStat()
		case "for":
			return p.forStat()
		case "function":
			return p.functionStat()
		case "local":
			return p.localStat()
		case "goto":
			return p.gotoStat()
		}
		return nil, nil
	}
	return p.labelStat()
}

func (p *Parser) laststat() (Stat, error) {
	start := p.pos
	if _, ok := p.accept(lualex.TokKeyword, "break"); ok {
		return &StatBreak{Span: p.span(start)}, nil
	}
	if _, ok := p.accept(lualex.TokKeyword, "return"); ok {
		list, err := p.explist()
		if err != nil {
			return nil, err
		}
		return &StatReturn{Span: p.span(start), ExpList: list}, nil
	}
	return nil, nil
}

// assignmentOrCall parses one prefix chain and decides from how it ended.
func (p *Parser) assignmentOrCall() (Stat, error) {
	start := p.pos
	target, end, err := p.chain()
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, nil
	}
	switch end {
	case endCall:
		return &StatFunctionCall{Span: p.span(start), Call: target.(*FunctionCall)}, nil
	case endParen:
		return nil, p.errorAt(p.tokens[start], "parenthesized expression is not a statement")
	}

	// The chain is a var: reread it as the head of the target list.
	p.pos = start
	varList, err := required(p, p.varlist, "expected variable")
	if err != nil {
		return nil, err
	}
	vars := varList.Vars

	op, err := p.assignOp()
	if err != nil {
		return nil, err
	}
	values, err := required(p, p.explist, "expected expression after '"+op.Value+"'")
	if err != nil {
		return nil, err
	}
	if op.Value != "=" && (len(vars) != 1 || len(values.Exps) != 1) {
		return nil, p.errorAt(op, "'%s' takes exactly one variable and one value", op.Value)
	}
	return &StatAssignment{Span: p.span(start), VarList: varList, AssignOp: op, ExpList: values}, nil
}

func (p *Parser) assignOp() (lualex.Token, error) {
	if tok, ok := p.accept(lualex.TokSymbol, "="); ok {
		return tok, nil
	}
	if p.version.Has(lualex.FeatureCompoundAssign) {
		if tok, ok := p.peek(lualex.TokSymbol); ok && compoundOps[tok.Value] {
			p.pos++
			return tok, nil
		}
	}
	return lualex.Token{}, p.errorf("expected '=' after assignment target")
}

func (p *Parser) doStat() (Stat, error) {
	start := p.pos
	if _, ok := p.accept(lualex.TokKeyword, "do"); !ok {
		return nil, nil
	}
	block, err := p.blockEnd("end")
	if err != nil {
		return nil, err
	}
	return &StatDo{Span: p.span(start), Block: block}, nil
}

func (p *Parser) whileStat() (Stat, error) {
	start := p.pos
	if _, ok := p.accept(lualex.TokKeyword, "while"); !ok {
		return nil, nil
	}
	cond, err := required(p, p.exp, "expected condition after 'while'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lualex.TokKeyword, "do"); err != nil {
		return nil, err
	}
	block, err := p.blockEnd("end")
	if err != nil {
		return nil, err
	}
	return &StatWhile{Span: p.span(start), Exp: cond, Block: block}, nil
}

func (p *Parser) repeatStat() (Stat, error) {
	start := p.pos
	if _, ok := p.accept(lualex.TokKeyword, "repeat"); !ok {
		return nil, nil
	}
	block, err := p.blockEnd("until")
	if err != nil {
		return nil, err
	}
	cond, err := required(p, p.exp, "expected condition after 'until'")
	if err != nil {
		return nil, err
	}
	return &StatRepeat{Span: p.span(start), Block: block, Exp: cond}, nil
}

func (p *Parser) ifStat() (Stat, error) {
	start := p.pos
	if _, ok := p.accept(lualex.TokKeyword, "if"); !ok {
		return nil, nil
	}
	cond, err := required(p, p.exp, "expected condition after 'if'")
	if err != nil {
		return nil, err
	}

	if _, ok := p.peek(lualex.TokKeyword, "then"); !ok && p.version.Has(lualex.FeatureShortIf) {
		pairs, err := p.shortIf(cond)
		if err != nil {
			return nil, err
		}
		return &StatIf{Span: p.span(start), Pairs: pairs, Short: true}, nil
	}
	if _, err := p.expect(lualex.TokKeyword, "then"); err != nil {
		return nil, err
	}
	block, err := p.block()
	if err != nil {
		return nil, err
	}
	pairs := []IfPair{{Cond: cond, Block: block}}

	for {
		if _, ok := p.accept(lualex.TokKeyword, "elseif"); !ok {
			break
		}
		cond, err := required(p, p.exp, "expected condition after 'elseif'")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lualex.TokKeyword, "then"); err != nil {
			return nil, err
		}
		block, err := p.block()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, IfPair{Cond: cond, Block: block})
	}
	if _, ok := p.accept(lualex.TokKeyword, "else"); ok {
		block, err := p.block()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, IfPair{Block: block})
	}
	if _, err := p.expect(lualex.TokKeyword, "end"); err != nil {
		return nil, err
	}
	return &StatIf{Span: p.span(start), Pairs: pairs}, nil
}

// shortIf parses the arms of a one-line if: a single statement, then
// optionally "else" and one more, all before the end of the line the
// condition ends on.
func (p *Parser) shortIf(cond Exp) ([]IfPair, error) {
	var pairs []IfPair
	err := p.withHorizon(p.lineEnd(p.pos-1), func() error {
		then, err := required(p, p.shortIfArm, "expected statement")
		if err != nil {
			return err
		}
		pairs = append(pairs, IfPair{Cond: cond, Block: then})

		if _, ok := p.accept(lualex.TokKeyword, "else"); !ok {
			return nil
		}
		alt, err := p.shortIfArm()
		if err != nil {
			return err
		}
		if alt != nil {
			pairs = append(pairs, IfPair{Block: alt})
		}
		return nil
	})
	return pairs, err
}

func (p *Parser) shortIfArm() (*Block, error) {
	start := p.pos
	s, err := p.stat()
	if err != nil {
		return nil, err
	}
	if s == nil {
		if s, err = p.laststat(); err != nil {
			return nil, err
		}
	}
	if s == nil {
		return nil, nil
	}
	return &Block{Span: p.span(start), Stats: []Stat{s}}, nil
}

func (p *Parser) forStat() (Stat, error) {
	start := p.pos
	if _, ok := p.accept(lualex.TokKeyword, "for"); !ok {
		return nil, nil
	}

	save := p.pos
	if name, ok := p.accept(lualex.TokName); ok && p.acceptSymbol("=") {
		initial, err := required(p, p.exp, "expected initial value in 'for'")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lualex.TokSymbol, ","); err != nil {
			return nil, err
		}
		limit, err := required(p, p.exp, "expected limit in 'for'")
		if err != nil {
			return nil, err
		}
		var step Exp
		if p.acceptSymbol(",") {
			if step, err = required(p, p.exp, "expected step in 'for'"); err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(lualex.TokKeyword, "do"); err != nil {
			return nil, err
		}
		block, err := p.blockEnd("end")
		if err != nil {
			return nil, err
		}
		return &StatFor{Span: p.span(start), Name: name, Init: initial, Limit: limit, Step: step, Block: block}, nil
	}
	p.pos = save

	names, err := required(p, p.namelist, "expected name after 'for'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lualex.TokKeyword, "in"); err != nil {
		return nil, err
	}
	exps, err := required(p, p.explist, "expected expression after 'in'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lualex.TokKeyword, "do"); err != nil {
		return nil, err
	}
	block, err := p.blockEnd("end")
	if err != nil {
		return nil, err
	}
	return &StatForIn{Span: p.span(start), NameList: names, ExpList: exps, Block: block}, nil
}

func (p *Parser) funcname() (*FunctionName, error) {
	start := p.pos
	first, ok := p.accept(lualex.TokName)
	if !ok {
		return nil, nil
	}
	fn := &FunctionName{NamePath: []lualex.Token{first}}
	for p.acceptSymbol(".") {
		name, err := p.expect(lualex.TokName)
		if err != nil {
			return nil, err
		}
		fn.NamePath = append(fn.NamePath, name)
	}
	if p.acceptSymbol(":") {
		method, err := p.expect(lualex.TokName)
		if err != nil {
			return nil, err
		}
		fn.MethodName = &method
	}
	fn.Span = p.span(start)
	return fn, nil
}

func (p *Parser) functionStat() (Stat, error) {
	start := p.pos
	if _, ok := p.accept(lualex.TokKeyword, "function"); !ok {
		return nil, nil
	}
	name, err := required(p, p.funcname, "expected function name")
	if err != nil {
		return nil, err
	}
	body, err := required(p, p.funcbody, "expected '(' after function name")
	if err != nil {
		return nil, err
	}
	return &StatFunction{Span: p.span(start), Name: name, Body: body}, nil
}

func (p *Parser) localStat() (Stat, error) {
	start := p.pos
	if _, ok := p.accept(lualex.TokKeyword, "local"); !ok {
		return nil, nil
	}

	if _, ok := p.accept(lualex.TokKeyword, "function"); ok {
		name, err := p.expect(lualex.TokName)
		if err != nil {
			return nil, err
		}
		body, err := required(p, p.funcbody, "expected '(' after function name")
		if err != nil {
			return nil, err
		}
		return &StatLocalFunction{Span: p.span(start), Name: name, Body: body}, nil
	}

	names, err := required(p, p.namelist, "expected name after 'local'")
	if err != nil {
		return nil, err
	}
	var values *ExpList
	if p.acceptSymbol("=") {
		if values, err = required(p, p.explist, "expected expression after '='"); err != nil {
			return nil, err
		}
	}
	return &StatLocalAssignment{Span: p.span(start), NameList: names, ExpList: values}, nil
}

func (p *Parser) gotoStat() (Stat, error) {
	start := p.pos
	if _, ok := p.accept(lualex.TokKeyword, "goto"); !ok {
		return nil, nil
	}
	label, err := p.expect(lualex.TokName)
	if err != nil {
		return nil, err
	}
	return &StatGoto{Span: p.span(start), Label: label}, nil
}

func (p *Parser) labelStat() (Stat, error) {
	start := p.pos
	if !p.acceptSymbol("::") {
		return nil, nil
	}
	label, err := p.expect(lualex.TokName)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lualex.TokSymbol, "::"); err != nil {
		return nil, err
	}
	return &StatLabel{Span: p.span(start), Label: label}, nil
}
