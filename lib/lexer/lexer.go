package lualex

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

var baseSymbols = []string{
	"...", "==", "~=", "<=", ">=", "..", "::",
	"+", "-", "*", "/", "%", "^", "#", "<", ">", "=",
	"(", ")", "{", "}", "[", "]", ";", ":", ",", ".",
}

var bangSymbols = []string{"!="}

var compoundSymbols = []string{"..=", "+=", "-=", "*=", "/=", "%=", "^="}

// CompoundAssignOps lists the assignment operators other than "=" that a
// dialect with FeatureCompoundAssign accepts.
func CompoundAssignOps() []string {
	return append([]string(nil), compoundSymbols...)
}

// Lexer turns PICO-8 Lua source into tokens. Whitespace and comments are
// dropped. A Lexer is not safe for concurrent use.
type Lexer struct {
	filename string
	version  Version
	symbols  []string
	tokens   []Token
	end      lexer.Position
}

func New(filename string, version Version) *Lexer {
	syms := append([]string(nil), baseSymbols...)
	if version.Has(FeatureBangNotEqual) {
		syms = append(syms, bangSymbols...)
	}
	if version.Has(FeatureCompoundAssign) {
		syms = append(syms, compoundSymbols...)
	}
	// Longest match first.
	sort.SliceStable(syms, func(i, j int) bool { return len(syms[i]) > len(syms[j]) })

	return &Lexer{
		filename: filename,
		version:  version,
		symbols:  syms,
		end:      lexer.Position{Filename: filename, Line: 1, Column: 1},
	}
}

// Lex is a convenience wrapper that lexes a whole source text.
func Lex(filename, src string, version Version) ([]Token, error) {
	l := New(filename, version)
	if err := l.ProcessLines(strings.SplitAfter(src, "\n")); err != nil {
		return nil, err
	}
	return l.Tokens(), nil
}

// ProcessLines lexes a run of newline-terminated lines. It may be called
// repeatedly; positions continue from where the previous call stopped. A
// lexeme may not straddle two calls.
func (l *Lexer) ProcessLines(lines []string) error {
	s := &scanner{
		lx:   l,
		src:  strings.Join(lines, ""),
		base: l.end.Offset,
		line: l.end.Line,
		col:  l.end.Column,
	}
	if err := s.run(); err != nil {
		return err
	}
	l.end = s.position()
	return nil
}

// Tokens returns the tokens produced so far followed by an EOF token.
func (l *Lexer) Tokens() []Token {
	out := make([]Token, len(l.tokens), len(l.tokens)+1)
	copy(out, l.tokens)
	return append(out, Token{Type: TokEOF, Pos: l.end})
}

type scanner struct {
	lx   *Lexer
	src  string
	pos  int
	base int
	line int
	col  int
}

func (s *scanner) position() lexer.Position {
	return lexer.Position{Filename: s.lx.filename, Offset: s.base + s.pos, Line: s.line, Column: s.col}
}

func (s *scanner) at(n int) byte {
	if s.pos+n < len(s.src) {
		return s.src[s.pos+n]
	}
	return 0
}

func (s *scanner) advance(n int) {
	for i := 0; i < n && s.pos < len(s.src); i++ {
		if s.src[s.pos] == '\n' {
			s.line++
			s.col = 1
		} else {
			s.col++
		}
		s.pos++
	}
}

func (s *scanner) errorf(pos lexer.Position, format string, args ...interface{}) error {
	return &LexError{Msg: fmt.Sprintf(format, args...), Pos: pos}
}

func (s *scanner) emit(typ TokenType, value string, pos lexer.Position) {
	s.lx.tokens = append(s.lx.tokens, Token{Type: typ, Value: value, Pos: pos})
}

func (s *scanner) run() error {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		var err error
		switch {
		case isSpace(c):
			s.advance(1)
		case c == '-' && s.at(1) == '-':
			err = s.comment()
		case isNameStart(c):
			s.name()
		case isDigit(c) || (c == '.' && isDigit(s.at(1))):
			err = s.number()
		case c == '"' || c == '\'':
			err = s.quotedString()
		case c == '[' && s.longBracketLevel() >= 0:
			pos := s.position()
			var text string
			if text, err = s.longBracket("long string"); err == nil {
				s.emit(TokString, text, pos)
			}
		default:
			err = s.symbol()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *scanner) comment() error {
	s.advance(2)
	if s.at(0) == '[' && s.longBracketLevel() >= 0 {
		_, err := s.longBracket("long comment")
		return err
	}
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.advance(1)
	}
	return nil
}

func (s *scanner) name() {
	pos := s.position()
	start := s.pos
	for s.pos < len(s.src) && isNameChar(s.src[s.pos]) {
		s.advance(1)
	}
	word := s.src[start:s.pos]
	if IsKeyword(word) {
		s.emit(TokKeyword, word, pos)
	} else {
		s.emit(TokName, word, pos)
	}
}

func (s *scanner) digits(valid func(byte) bool) int {
	n := 0
	for s.pos < len(s.src) && valid(s.src[s.pos]) {
		s.advance(1)
		n++
	}
	return n
}

// fraction consumes a '.' and the digits after it, unless the dot starts a
// ".." operator.
func (s *scanner) fraction(valid func(byte) bool) int {
	if s.at(0) != '.' || s.at(1) == '.' {
		return 0
	}
	s.advance(1)
	return s.digits(valid)
}

func (s *scanner) exponent(marks string) error {
	if s.pos >= len(s.src) || !strings.ContainsRune(marks, rune(s.src[s.pos])) {
		return nil
	}
	pos := s.position()
	s.advance(1)
	if s.at(0) == '+' || s.at(0) == '-' {
		s.advance(1)
	}
	if s.digits(isDigit) == 0 {
		return s.errorf(pos, "malformed number exponent")
	}
	return nil
}

func (s *scanner) number() error {
	pos := s.position()
	start := s.pos
	var err error
	switch {
	case s.at(0) == '0' && (s.at(1) == 'x' || s.at(1) == 'X'):
		s.advance(2)
		n := s.digits(isHexDigit)
		n += s.fraction(isHexDigit)
		if n == 0 {
			return s.errorf(pos, "malformed hexadecimal number")
		}
		err = s.exponent("pP")
	case s.at(0) == '0' && (s.at(1) == 'b' || s.at(1) == 'B') && s.lx.version.Has(FeatureBinaryLiterals):
		s.advance(2)
		n := s.digits(isBinDigit)
		n += s.fraction(isBinDigit)
		if n == 0 {
			return s.errorf(pos, "malformed binary number")
		}
	default:
		s.digits(isDigit)
		s.fraction(isDigit)
		err = s.exponent("eE")
	}
	if err != nil {
		return err
	}
	if s.pos < len(s.src) && isNameChar(s.src[s.pos]) {
		return s.errorf(pos, "malformed number near %q", s.src[start:s.pos+1])
	}
	s.emit(TokNumber, s.src[start:s.pos], pos)
	return nil
}

func (s *scanner) quotedString() error {
	pos := s.position()
	quote := s.src[s.pos]
	s.advance(1)
	var b strings.Builder
	for {
		if s.pos >= len(s.src) {
			return s.errorf(pos, "unterminated string")
		}
		c := s.src[s.pos]
		switch {
		case c == quote:
			s.advance(1)
			s.emit(TokString, b.String(), pos)
			return nil
		case c == '\n' || c == '\r':
			return s.errorf(pos, "unterminated string")
		case c == '\\':
			if err := s.escape(&b); err != nil {
				return err
			}
		default:
			b.WriteByte(c)
			s.advance(1)
		}
	}
}

var simpleEscapes = map[byte]byte{
	'a': '\a', 'b': '\b', 'f': '\f', 'n': '\n', 'r': '\r', 't': '\t', 'v': '\v',
	'\\': '\\', '"': '"', '\'': '\'',
}

func (s *scanner) escape(b *strings.Builder) error {
	pos := s.position()
	s.advance(1)
	if s.pos >= len(s.src) {
		return s.errorf(pos, "unterminated string")
	}
	c := s.src[s.pos]
	if r, ok := simpleEscapes[c]; ok {
		b.WriteByte(r)
		s.advance(1)
		return nil
	}
	switch {
	case c == '\n' || c == '\r':
		b.WriteByte('\n')
		s.advance(1)
		if next := s.at(0); (next == '\n' || next == '\r') && next != c {
			s.advance(1)
		}
	case c == 'x':
		s.advance(1)
		if !isHexDigit(s.at(0)) || !isHexDigit(s.at(1)) {
			return s.errorf(pos, "hexadecimal digit expected in escape")
		}
		b.WriteByte(hexValue(s.at(0))<<4 | hexValue(s.at(1)))
		s.advance(2)
	case c == 'z':
		s.advance(1)
		for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
			s.advance(1)
		}
	case isDigit(c):
		v := 0
		for i := 0; i < 3 && isDigit(s.at(0)); i++ {
			v = v*10 + int(s.at(0)-'0')
			s.advance(1)
		}
		if v > 255 {
			return s.errorf(pos, "decimal escape too large")
		}
		b.WriteByte(byte(v))
	default:
		return s.errorf(pos, "invalid escape sequence '\\%c'", c)
	}
	return nil
}

// longBracketLevel returns the number of '=' in an opening long bracket at
// the cursor, or -1 when the cursor is not at one.
func (s *scanner) longBracketLevel() int {
	if s.at(0) != '[' {
		return -1
	}
	n := 1
	for s.at(n) == '=' {
		n++
	}
	if s.at(n) != '[' {
		return -1
	}
	return n - 1
}

func (s *scanner) longBracket(what string) (string, error) {
	pos := s.position()
	level := s.longBracketLevel()
	s.advance(level + 2)
	// A newline directly after the opening bracket is not part of the text.
	switch {
	case strings.HasPrefix(s.src[s.pos:], "\r\n"), strings.HasPrefix(s.src[s.pos:], "\n\r"):
		s.advance(2)
	case s.at(0) == '\n' || s.at(0) == '\r':
		s.advance(1)
	}
	closing := "]" + strings.Repeat("=", level) + "]"
	idx := strings.Index(s.src[s.pos:], closing)
	if idx < 0 {
		return "", s.errorf(pos, "unterminated %s", what)
	}
	text := s.src[s.pos : s.pos+idx]
	s.advance(idx + len(closing))
	return text, nil
}

func (s *scanner) symbol() error {
	pos := s.position()
	rest := s.src[s.pos:]
	for _, sym := range s.lx.symbols {
		if strings.HasPrefix(rest, sym) {
			s.advance(len(sym))
			s.emit(TokSymbol, sym, pos)
			return nil
		}
	}
	return s.errorf(pos, "unexpected character %q", rest[0])
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isBinDigit(c byte) bool { return c == '0' || c == '1' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) byte {
	switch {
	case isDigit(c):
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool { return isNameStart(c) || isDigit(c) }
