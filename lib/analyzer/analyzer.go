package analyzer

import (
	"errors"
	"fmt"
	"sort"

	lualex "github.com/vyPal/PicoLua/lib/lexer"
	"github.com/vyPal/PicoLua/lib/parser"
)

type Program struct {
	Symbols []Symbol
	// Globals are the names assigned without a visible local, sorted.
	Globals  []string
	Warnings []Warning
}

// Warning is a problem that does not stop the program from parsing.
type Warning struct {
	Msg   string
	Token lualex.Token
}

func (w Warning) String() string {
	return fmt.Sprintf("%s at line %d, column %d", w.Msg, w.Token.Pos.Line, w.Token.Pos.Column)
}

func Analyze(chunk *parser.Block) (*Program, error) {
	if chunk == nil {
		return nil, errors.New("analyzer: nil chunk")
	}

	s := newScanner()
	s.chunk(chunk)

	prog := &Program{
		Symbols:  s.symbols,
		Globals:  make([]string, 0, len(s.globals)),
		Warnings: s.warnings,
	}
	for name := range s.globals {
		prog.Globals = append(prog.Globals, name)
	}
	sort.Strings(prog.Globals)
	// Unresolved gotos are only found when their function closes.
	sort.SliceStable(prog.Warnings, func(i, j int) bool {
		return prog.Warnings[i].Token.Pos.Offset < prog.Warnings[j].Token.Pos.Offset
	})
	return prog, nil
}
