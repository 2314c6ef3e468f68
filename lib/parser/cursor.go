package parser

import (
	"fmt"

	lualex "github.com/vyPal/PicoLua/lib/lexer"
)

// current returns the token under the cursor, ignoring the horizon so that
// errors point at the real token. Past the end it returns the final EOF.
func (p *Parser) current() lualex.Token {
	if p.pos >= len(p.tokens) {
		if len(p.tokens) == 0 {
			return lualex.Token{Type: lualex.TokEOF}
		}
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek(typ lualex.TokenType, value ...string) (lualex.Token, bool) {
	if p.pos >= p.horizon || p.pos >= len(p.tokens) {
		return lualex.Token{}, false
	}
	tok := p.tokens[p.pos]
	if !tok.Matches(typ, value...) {
		return lualex.Token{}, false
	}
	return tok, true
}

func (p *Parser) accept(typ lualex.TokenType, value ...string) (lualex.Token, bool) {
	tok, ok := p.peek(typ, value...)
	if ok {
		p.pos++
	}
	return tok, ok
}

func (p *Parser) expect(typ lualex.TokenType, value ...string) (lualex.Token, error) {
	if tok, ok := p.accept(typ, value...); ok {
		return tok, nil
	}
	want := typ.String()
	if len(value) > 0 {
		want = fmt.Sprintf("%s '%s'", typ, value[0])
	}
	return lualex.Token{}, p.errorf("expected %s", want)
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return p.errorAt(p.current(), format, args...)
}

func (p *Parser) errorAt(tok lualex.Token, format string, args ...interface{}) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Token: tok}
}

// ensure turns a missing value into a ParseError at the current token and
// passes anything else through.
func ensure[T comparable](p *Parser, v T, msg string) (T, error) {
	var zero T
	if v == zero {
		return v, p.errorf("%s", msg)
	}
	return v, nil
}

// required runs rule and treats a soft miss as a hard error.
func required[T comparable](p *Parser, rule func() (T, error), msg string) (T, error) {
	v, err := rule()
	if err != nil {
		return v, err
	}
	return ensure(p, v, msg)
}

// withHorizon runs fn with the cursor bounded to tokens before limit. The
// enclosing horizon is restored however fn returns, and a limit never
// widens it.
func (p *Parser) withHorizon(limit int, fn func() error) error {
	saved := p.horizon
	defer func() { p.horizon = saved }()
	if limit < p.horizon {
		p.horizon = limit
	}
	return fn()
}

// lineEnd is the index of the first token after from that starts on a
// later source line, or the EOF index.
func (p *Parser) lineEnd(from int) int {
	if from >= len(p.tokens) {
		return len(p.tokens)
	}
	line := p.tokens[from].Pos.Line
	i := from + 1
	for i < len(p.tokens) && p.tokens[i].Type != lualex.TokEOF && p.tokens[i].Pos.Line == line {
		i++
	}
	return i
}
