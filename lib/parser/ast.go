package parser

import (
	lualex "github.com/vyPal/PicoLua/lib/lexer"
)

// Span is the half-open range [StartToken, EndToken) of token indexes a
// node was parsed from.
type Span struct {
	StartToken int `json:"start" yaml:"start"`
	EndToken   int `json:"end" yaml:"end"`
}

func (s Span) Start() int { return s.StartToken }

func (s Span) End() int { return s.EndToken }

func (s *Span) setSpan(n Span) { *s = n }

type Node interface {
	Start() int
	End() int
}

type Exp interface {
	Node
	expNode()
}

type Stat interface {
	Node
	statNode()
	setSpan(Span)
}

// Var is an expression that may appear on the left of an assignment.
type Var interface {
	Exp
	varNode()
}

// Args is the argument part of a call: *FunctionArgs, *TableConstructor
// or a string *BasicLit.
type Args interface {
	Node
	argsNode()
}

type Field interface {
	Node
	fieldNode()
}

type LitKind int

const (
	LitNil LitKind = iota
	LitFalse
	LitTrue
	LitNumber
	LitString
)

var litNames = [...]string{"nil", "false", "true", "number", "string"}

func (k LitKind) String() string { return litNames[k] }

func (k LitKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Aggregates.

type (
	NameList struct {
		Span  `yaml:",inline"`
		Names []lualex.Token
	}

	ExpList struct {
		Span `yaml:",inline"`
		Exps []Exp
	}

	VarList struct {
		Span `yaml:",inline"`
		Vars []Var
	}

	// FunctionName is the dotted path of a function statement with an
	// optional trailing method name.
	FunctionName struct {
		Span       `yaml:",inline"`
		NamePath   []lualex.Token
		MethodName *lualex.Token
	}

	FuncBody struct {
		Span    `yaml:",inline"`
		ParList *NameList
		Dots    *VarargDots
		Block   *Block
	}

	// Block is a statement sequence. A trailing StatReturn or StatBreak is
	// always the last entry.
	Block struct {
		Span  `yaml:",inline"`
		Stats []Stat
	}
)

// Expressions.

type (
	BasicLit struct {
		Span  `yaml:",inline"`
		Kind  LitKind
		Token lualex.Token
	}

	VarargDots struct {
		Span  `yaml:",inline"`
		Token lualex.Token
	}

	FuncLit struct {
		Span `yaml:",inline"`
		Body *FuncBody
	}

	TableConstructor struct {
		Span   `yaml:",inline"`
		Fields []Field
	}

	ExpUnOp struct {
		Span `yaml:",inline"`
		Op   lualex.Token
		Exp  Exp
	}

	ExpBinOp struct {
		Span  `yaml:",inline"`
		Left  Exp
		Op    lualex.Token
		Right Exp
	}

	VarName struct {
		Span `yaml:",inline"`
		Name lualex.Token
	}

	VarIndex struct {
		Span   `yaml:",inline"`
		Prefix Exp
		Index  Exp
	}

	VarAttribute struct {
		Span   `yaml:",inline"`
		Prefix Exp
		Attr   lualex.Token
	}

	FunctionCall struct {
		Span   `yaml:",inline"`
		Prefix Exp
		Method *lualex.Token
		Args   Args
	}

	// FunctionArgs is a parenthesized argument list. ExpList is nil for ().
	FunctionArgs struct {
		Span    `yaml:",inline"`
		ExpList *ExpList
	}
)

// Table fields.

type (
	FieldExpKey struct {
		Span `yaml:",inline"`
		Key  Exp
		Exp  Exp
	}

	FieldNamedKey struct {
		Span `yaml:",inline"`
		Key  lualex.Token
		Exp  Exp
	}

	FieldExp struct {
		Span `yaml:",inline"`
		Exp  Exp
	}
)

// Statements.

type (
	StatAssignment struct {
		Span     `yaml:",inline"`
		VarList  *VarList
		AssignOp lualex.Token
		ExpList  *ExpList
	}

	StatFunctionCall struct {
		Span `yaml:",inline"`
		Call *FunctionCall
	}

	StatDo struct {
		Span  `yaml:",inline"`
		Block *Block
	}

	StatWhile struct {
		Span  `yaml:",inline"`
		Exp   Exp
		Block *Block
	}

	StatRepeat struct {
		Span  `yaml:",inline"`
		Block *Block
		Exp   Exp
	}

	// IfPair is one arm of an if chain. Cond is nil for the else arm,
	// which is always last.
	IfPair struct {
		Cond  Exp
		Block *Block
	}

	StatIf struct {
		Span  `yaml:",inline"`
		Pairs []IfPair
		Short bool
	}

	StatFor struct {
		Span  `yaml:",inline"`
		Name  lualex.Token
		Init  Exp
		Limit Exp
		Step  Exp
		Block *Block
	}

	StatForIn struct {
		Span     `yaml:",inline"`
		NameList *NameList
		ExpList  *ExpList
		Block    *Block
	}

	StatFunction struct {
		Span `yaml:",inline"`
		Name *FunctionName
		Body *FuncBody
	}

	StatLocalFunction struct {
		Span `yaml:",inline"`
		Name lualex.Token
		Body *FuncBody
	}

	StatLocalAssignment struct {
		Span     `yaml:",inline"`
		NameList *NameList
		ExpList  *ExpList
	}

	StatGoto struct {
		Span  `yaml:",inline"`
		Label lualex.Token
	}

	StatLabel struct {
		Span  `yaml:",inline"`
		Label lualex.Token
	}

	StatBreak struct {
		Span `yaml:",inline"`
	}

	StatReturn struct {
		Span    `yaml:",inline"`
		ExpList *ExpList
	}
)

func (*BasicLit) expNode()         {}
func (*VarargDots) expNode()       {}
func (*FuncLit) expNode()          {}
func (*TableConstructor) expNode() {}
func (*ExpUnOp) expNode()          {}
func (*ExpBinOp) expNode()         {}
func (*VarName) expNode()          {}
func (*VarIndex) expNode()         {}
func (*VarAttribute) expNode()     {}
func (*FunctionCall) expNode()     {}

func (*VarName) varNode()      {}
func (*VarIndex) varNode()     {}
func (*VarAttribute) varNode() {}

func (*FunctionArgs) argsNode()     {}
func (*TableConstructor) argsNode() {}
func (*BasicLit) argsNode()         {}

func (*FieldExpKey) fieldNode()   {}
func (*FieldNamedKey) fieldNode() {}
func (*FieldExp) fieldNode()      {}

func (*StatAssignment) statNode()      {}
func (*StatFunctionCall) statNode()    {}
func (*StatDo) statNode()              {}
func (*StatWhile) statNode()           {}
func (*StatRepeat) statNode()          {}
func (*StatIf) statNode()              {}
func (*StatFor) statNode()             {}
func (*StatForIn) statNode()           {}
func (*StatFunction) statNode()        {}
func (*StatLocalFunction) statNode()   {}
func (*StatLocalAssignment) statNode() {}
func (*StatGoto) statNode()            {}
func (*StatLabel) statNode()           {}
func (*StatBreak) statNode()           {}
func (*StatReturn) statNode()          {}

// IsLastStat reports whether s may only end a block.
func IsLastStat(s Stat) bool {
	switch s.(type) {
	case *StatReturn, *StatBreak:
		return true
	}
	return false
}
