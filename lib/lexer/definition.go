package lualex

import (
	"io"

	"github.com/alecthomas/participle/v2/lexer"
)

// DefaultDefinition is a participle lexer definition for the default
// dialect version.
var DefaultDefinition lexer.Definition = NewDefinition(DefaultVersion)

// NewDefinition exposes the PICO-8 lexer to participle-based consumers.
func NewDefinition(version Version) lexer.Definition {
	return &definition{version: version}
}

type definition struct {
	version Version
}

var symbolTypes = map[string]lexer.TokenType{
	"EOF":     lexer.EOF,
	"Name":    lexer.TokenType(TokName),
	"Keyword": lexer.TokenType(TokKeyword),
	"Number":  lexer.TokenType(TokNumber),
	"String":  lexer.TokenType(TokString),
	"Symbol":  lexer.TokenType(TokSymbol),
}

func (d *definition) Symbols() map[string]lexer.TokenType {
	out := make(map[string]lexer.TokenType, len(symbolTypes))
	for k, v := range symbolTypes {
		out[k] = v
	}
	return out
}

func (d *definition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	tokens, err := Lex(filename, string(src), d.version)
	if err != nil {
		return nil, err
	}
	return &replayLexer{tokens: tokens}, nil
}

// replayLexer hands out an already lexed token stream.
type replayLexer struct {
	tokens []Token
	next   int
}

func (l *replayLexer) Next() (lexer.Token, error) {
	tok := l.tokens[l.next]
	if l.next < len(l.tokens)-1 {
		l.next++
	}
	return ToParticiple(tok), nil
}

// ToParticiple converts a token to participle's representation.
func ToParticiple(t Token) lexer.Token {
	typ := lexer.TokenType(t.Type)
	if t.Type == TokEOF {
		typ = lexer.EOF
	}
	return lexer.Token{Type: typ, Value: t.Value, Pos: t.Pos}
}
