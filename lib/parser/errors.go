package parser

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
	lualex "github.com/vyPal/PicoLua/lib/lexer"
)

// ParseError is a grammar violation at a point where the parser had already
// committed to a production. Token is the offending token.
type ParseError struct {
	Msg   string
	Token lualex.Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d (found %s)", e.Msg, e.Token.Pos.Line, e.Token.Pos.Column, e.Token)
}

func (e *ParseError) Message() string { return e.Msg }

func (e *ParseError) Position() lexer.Position { return e.Token.Pos }
