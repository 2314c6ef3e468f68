package lualex

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

type TokenType int

const (
	TokEOF TokenType = iota
	TokName
	TokKeyword
	TokNumber
	TokString
	TokSymbol
)

func (t TokenType) String() string {
	switch t {
	case TokEOF:
		return "end of file"
	case TokName:
		return "name"
	case TokKeyword:
		return "keyword"
	case TokNumber:
		return "number"
	case TokString:
		return "string"
	case TokSymbol:
		return "symbol"
	default:
		return fmt.Sprintf("token(%d)", int(t))
	}
}

func (t TokenType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Token is a single lexeme with the position of its first character.
//
// For strings Value holds the decoded content, for every other kind it
// holds the lexeme as written.
type Token struct {
	Type  TokenType
	Value string
	Pos   lexer.Position
}

var keywords = map[string]bool{
	"and": true, "break": true, "do": true, "else": true, "elseif": true,
	"end": true, "false": true, "for": true, "function": true, "goto": true,
	"if": true, "in": true, "local": true, "nil": true, "not": true,
	"or": true, "repeat": true, "return": true, "then": true, "true": true,
	"until": true, "while": true,
}

// IsKeyword reports whether s is a reserved word.
func IsKeyword(s string) bool {
	return keywords[s]
}

// Matches reports whether the token has the given type and, if a value is
// supplied, exactly that value.
func (t Token) Matches(typ TokenType, value ...string) bool {
	if t.Type != typ {
		return false
	}
	return len(value) == 0 || t.Value == value[0]
}

func (t Token) String() string {
	if t.Type == TokEOF {
		return t.Type.String()
	}
	return fmt.Sprintf("%s %q", t.Type, t.Value)
}
