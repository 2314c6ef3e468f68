package lualex

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// LexError is the single terminal error of a lexer run.
type LexError struct {
	Msg string
	Pos lexer.Position
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.Msg, e.Pos.Line, e.Pos.Column)
}

// Message and Position satisfy participle.Error.
func (e *LexError) Message() string { return e.Msg }

func (e *LexError) Position() lexer.Position { return e.Pos }
