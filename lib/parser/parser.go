// Package parser builds an AST from a PICO-8 Lua token stream.
//
// Every grammar rule returns (node, nil) on a match, (nil, nil) when the
// rule does not apply, with the cursor left where it was, and
// (nil, *ParseError) once the rule has committed and cannot complete.
package parser

import (
	lualex "github.com/vyPal/PicoLua/lib/lexer"
)

// Parser holds the cursor state of a single parse. It is not safe for
// concurrent use; independent parses need independent parsers.
type Parser struct {
	version lualex.Version
	tokens  []lualex.Token
	pos     int
	horizon int
}

func New(version lualex.Version) *Parser {
	return &Parser{version: version}
}

func (p *Parser) reset(tokens []lualex.Token) {
	p.tokens = tokens
	p.pos = 0
	p.horizon = len(tokens)
}

// ProcessTokens parses a complete token stream, as produced by the lexer,
// into its root block.
func (p *Parser) ProcessTokens(tokens []lualex.Token) (*Block, error) {
	p.reset(tokens)
	return p.chunk()
}

// Parse is shorthand for New(version).ProcessTokens(tokens).
func Parse(tokens []lualex.Token, version lualex.Version) (*Block, error) {
	return New(version).ProcessTokens(tokens)
}

// ParseString lexes and parses src. Lexer failures are returned as
// *lualex.LexError.
func ParseString(filename, src string, version lualex.Version) (*Block, error) {
	tokens, err := lualex.Lex(filename, src, version)
	if err != nil {
		return nil, err
	}
	return Parse(tokens, version)
}

func (p *Parser) span(start int) Span {
	return Span{StartToken: start, EndToken: p.pos}
}

func (p *Parser) chunk() (*Block, error) {
	block, err := p.block()
	if err != nil {
		return nil, err
	}
	if _, ok := p.peek(lualex.TokEOF); !ok {
		return nil, p.errorf("expected statement")
	}
	return block, nil
}

func (p *Parser) skipSemicolons() {
	for {
		if _, ok := p.accept(lualex.TokSymbol, ";"); !ok {
			return
		}
	}
}

// block never misses: an empty statement sequence is a valid block.
//
// Separators are folded into statement spans so that the statements of a
// block tile it without gaps: each statement owns the semicolons after it
// and the first one also owns any before it.
func (p *Parser) block() (*Block, error) {
	start := p.pos
	p.skipSemicolons()
	owner := start
	var stats []Stat
	for {
		stat, err := p.stat()
		if err != nil {
			return nil, err
		}
		if stat == nil {
			break
		}
		p.skipSemicolons()
		stat.setSpan(Span{StartToken: owner, EndToken: p.pos})
		owner = p.pos
		stats = append(stats, stat)
	}
	last, err := p.laststat()
	if err != nil {
		return nil, err
	}
	if last != nil {
		p.skipSemicolons()
		last.setSpan(Span{StartToken: owner, EndToken: p.pos})
		stats = append(stats, last)
	}
	return &Block{Span: p.span(start), Stats: stats}, nil
}
