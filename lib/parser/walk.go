package parser

// Visitor receives every node Walk reaches. Returning nil skips the node's
// children; otherwise the returned visitor handles them and then gets a
// Visit(nil) marking the node is done.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk visits node and its children in source order. Optional children
// that are absent, such as a numeric for's step or the condition of an
// else arm, are not visited. IfPair and the token fields are not nodes.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Block:
		for _, s := range n.Stats {
			Walk(v, s)
		}

	case *NameList, *FunctionName, *VarargDots, *BasicLit, *VarName,
		*StatGoto, *StatLabel, *StatBreak:
		// leaves

	case *ExpList:
		for _, e := range n.Exps {
			Walk(v, e)
		}

	case *VarList:
		for _, x := range n.Vars {
			Walk(v, x)
		}

	case *FuncBody:
		if n.ParList != nil {
			Walk(v, n.ParList)
		}
		if n.Dots != nil {
			Walk(v, n.Dots)
		}
		Walk(v, n.Block)

	case *FuncLit:
		Walk(v, n.Body)

	case *TableConstructor:
		for _, f := range n.Fields {
			Walk(v, f)
		}

	case *ExpUnOp:
		Walk(v, n.Exp)

	case *ExpBinOp:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *VarIndex:
		Walk(v, n.Prefix)
		Walk(v, n.Index)

	case *VarAttribute:
		Walk(v, n.Prefix)

	case *FunctionCall:
		Walk(v, n.Prefix)
		Walk(v, n.Args)

	case *FunctionArgs:
		if n.ExpList != nil {
			Walk(v, n.ExpList)
		}

	case *FieldExpKey:
		Walk(v, n.Key)
		Walk(v, n.Exp)

	case *FieldNamedKey:
		Walk(v, n.Exp)

	case *FieldExp:
		Walk(v, n.Exp)

	case *StatAssignment:
		Walk(v, n.VarList)
		Walk(v, n.ExpList)

	case *StatFunctionCall:
		Walk(v, n.Call)

	case *StatDo:
		Walk(v, n.Block)

	case *StatWhile:
		Walk(v, n.Exp)
		Walk(v, n.Block)

	case *StatRepeat:
		Walk(v, n.Block)
		Walk(v, n.Exp)

	case *StatIf:
		for _, pair := range n.Pairs {
			if pair.Cond != nil {
				Walk(v, pair.Cond)
			}
			Walk(v, pair.Block)
		}

	case *StatFor:
		Walk(v, n.Init)
		Walk(v, n.Limit)
		if n.Step != nil {
			Walk(v, n.Step)
		}
		Walk(v, n.Block)

	case *StatForIn:
		Walk(v, n.NameList)
		Walk(v, n.ExpList)
		Walk(v, n.Block)

	case *StatFunction:
		Walk(v, n.Name)
		Walk(v, n.Body)

	case *StatLocalFunction:
		Walk(v, n.Body)

	case *StatLocalAssignment:
		Walk(v, n.NameList)
		if n.ExpList != nil {
			Walk(v, n.ExpList)
		}

	case *StatReturn:
		if n.ExpList != nil {
			Walk(v, n.ExpList)
		}
	}

	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect calls f on node and, while f keeps returning true, on each
// statement and expression below it. f(nil) follows the children of every
// node that f accepted.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}
