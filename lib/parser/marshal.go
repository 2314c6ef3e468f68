package parser

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Nodes marshal with their kind first under "type", so a dumped tree can
// be read back without knowing which node an interface field held.

func taggedJSON(kind string, v interface{}) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	head, err := json.Marshal(kind)
	if err != nil {
		return nil, err
	}
	out := append([]byte(`{"type":`), head...)
	if len(body) > 2 {
		out = append(out, ',')
	}
	return append(out, body[1:]...), nil
}

func taggedYAML(kind string, v interface{}) (interface{}, error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	typ := []*yaml.Node{
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: "type"},
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: kind},
	}
	n.Content = append(typ, n.Content...)
	return &n, nil
}

func (n *NameList) MarshalJSON() ([]byte, error) {
	type plain NameList
	return taggedJSON("NameList", (*plain)(n))
}

func (n *NameList) MarshalYAML() (interface{}, error) {
	type plain NameList
	return taggedYAML("NameList", (*plain)(n))
}

func (n *ExpList) MarshalJSON() ([]byte, error) {
	type plain ExpList
	return taggedJSON("ExpList", (*plain)(n))
}

func (n *ExpList) MarshalYAML() (interface{}, error) {
	type plain ExpList
	return taggedYAML("ExpList", (*plain)(n))
}

func (n *VarList) MarshalJSON() ([]byte, error) {
	type plain VarList
	return taggedJSON("VarList", (*plain)(n))
}

func (n *VarList) MarshalYAML() (interface{}, error) {
	type plain VarList
	return taggedYAML("VarList", (*plain)(n))
}

func (n *FunctionName) MarshalJSON() ([]byte, error) {
	type plain FunctionName
	return taggedJSON("FunctionName", (*plain)(n))
}

func (n *FunctionName) MarshalYAML() (interface{}, error) {
	type plain FunctionName
	return taggedYAML("FunctionName", (*plain)(n))
}

func (n *FuncBody) MarshalJSON() ([]byte, error) {
	type plain FuncBody
	return taggedJSON("FuncBody", (*plain)(n))
}

func (n *FuncBody) MarshalYAML() (interface{}, error) {
	type plain FuncBody
	return taggedYAML("FuncBody", (*plain)(n))
}

func (n *Block) MarshalJSON() ([]byte, error) {
	type plain Block
	return taggedJSON("Block", (*plain)(n))
}

func (n *Block) MarshalYAML() (interface{}, error) {
	type plain Block
	return taggedYAML("Block", (*plain)(n))
}

func (n *BasicLit) MarshalJSON() ([]byte, error) {
	type plain BasicLit
	return taggedJSON("BasicLit", (*plain)(n))
}

func (n *BasicLit) MarshalYAML() (interface{}, error) {
	type plain BasicLit
	return taggedYAML("BasicLit", (*plain)(n))
}

func (n *VarargDots) MarshalJSON() ([]byte, error) {
	type plain VarargDots
	return taggedJSON("VarargDots", (*plain)(n))
}

func (n *VarargDots) MarshalYAML() (interface{}, error) {
	type plain VarargDots
	return taggedYAML("VarargDots", (*plain)(n))
}

func (n *FuncLit) MarshalJSON() ([]byte, error) {
	type plain FuncLit
	return taggedJSON("FuncLit", (*plain)(n))
}

func (n *FuncLit) MarshalYAML() (interface{}, error) {
	type plain FuncLit
	return taggedYAML("FuncLit", (*plain)(n))
}

func (n *TableConstructor) MarshalJSON() ([]byte, error) {
	type plain TableConstructor
	return taggedJSON("TableConstructor", (*plain)(n))
}

func (n *TableConstructor) MarshalYAML() (interface{}, error) {
	type plain TableConstructor
	return taggedYAML("TableConstructor", (*plain)(n))
}

func (n *ExpUnOp) MarshalJSON() ([]byte, error) {
	type plain ExpUnOp
	return taggedJSON("ExpUnOp", (*plain)(n))
}

func (n *ExpUnOp) MarshalYAML() (interface{}, error) {
	type plain ExpUnOp
	return taggedYAML("ExpUnOp", (*plain)(n))
}

func (n *ExpBinOp) MarshalJSON() ([]byte, error) {
	type plain ExpBinOp
	return taggedJSON("ExpBinOp", (*plain)(n))
}

func (n *ExpBinOp) MarshalYAML() (interface{}, error) {
	type plain ExpBinOp
	return taggedYAML("ExpBinOp", (*plain)(n))
}

func (n *VarName) MarshalJSON() ([]byte, error) {
	type plain VarName
	return taggedJSON("VarName", (*plain)(n))
}

func (n *VarName) MarshalYAML() (interface{}, error) {
	type plain VarName
	return taggedYAML("VarName", (*plain)(n))
}

func (n *VarIndex) MarshalJSON() ([]byte, error) {
	type plain VarIndex
	return taggedJSON("VarIndex", (*plain)(n))
}

func (n *VarIndex) MarshalYAML() (interface{}, error) {
	type plain VarIndex
	return taggedYAML("VarIndex", (*plain)(n))
}

func (n *VarAttribute) MarshalJSON() ([]byte, error) {
	type plain VarAttribute
	return taggedJSON("VarAttribute", (*plain)(n))
}

func (n *VarAttribute) MarshalYAML() (interface{}, error) {
	type plain VarAttribute
	return taggedYAML("VarAttribute", (*plain)(n))
}

func (n *FunctionCall) MarshalJSON() ([]byte, error) {
	type plain FunctionCall
	return taggedJSON("FunctionCall", (*plain)(n))
}

func (n *FunctionCall) MarshalYAML() (interface{}, error) {
	type plain FunctionCall
	return taggedYAML("FunctionCall", (*plain)(n))
}

func (n *FunctionArgs) MarshalJSON() ([]byte, error) {
	type plain FunctionArgs
	return taggedJSON("FunctionArgs", (*plain)(n))
}

func (n *FunctionArgs) MarshalYAML() (interface{}, error) {
	type plain FunctionArgs
	return taggedYAML("FunctionArgs", (*plain)(n))
}

func (n *FieldExpKey) MarshalJSON() ([]byte, error) {
	type plain FieldExpKey
	return taggedJSON("FieldExpKey", (*plain)(n))
}

func (n *FieldExpKey) MarshalYAML() (interface{}, error) {
	type plain FieldExpKey
	return taggedYAML("FieldExpKey", (*plain)(n))
}

func (n *FieldNamedKey) MarshalJSON() ([]byte, error) {
	type plain FieldNamedKey
	return taggedJSON("FieldNamedKey", (*plain)(n))
}

func (n *FieldNamedKey) MarshalYAML() (interface{}, error) {
	type plain FieldNamedKey
	return taggedYAML("FieldNamedKey", (*plain)(n))
}

func (n *FieldExp) MarshalJSON() ([]byte, error) {
	type plain FieldExp
	return taggedJSON("FieldExp", (*plain)(n))
}

func (n *FieldExp) MarshalYAML() (interface{}, error) {
	type plain FieldExp
	return taggedYAML("FieldExp", (*plain)(n))
}

func (n *StatAssignment) MarshalJSON() ([]byte, error) {
	type plain StatAssignment
	return taggedJSON("StatAssignment", (*plain)(n))
}

func (n *StatAssignment) MarshalYAML() (interface{}, error) {
	type plain StatAssignment
	return taggedYAML("StatAssignment", (*plain)(n))
}

func (n *StatFunctionCall) MarshalJSON() ([]byte, error) {
	type plain StatFunctionCall
	return taggedJSON("StatFunctionCall", (*plain)(n))
}

func (n *StatFunctionCall) MarshalYAML() (interface{}, error) {
	type plain StatFunctionCall
	return taggedYAML("StatFunctionCall", (*plain)(n))
}

func (n *StatDo) MarshalJSON() ([]byte, error) {
	type plain StatDo
	return taggedJSON("StatDo", (*plain)(n))
}

func (n *StatDo) MarshalYAML() (interface{}, error) {
	type plain StatDo
	return taggedYAML("StatDo", (*plain)(n))
}

func (n *StatWhile) MarshalJSON() ([]byte, error) {
	type plain StatWhile
	return taggedJSON("StatWhile", (*plain)(n))
}

func (n *StatWhile) MarshalYAML() (interface{}, error) {
	type plain StatWhile
	return taggedYAML("StatWhile", (*plain)(n))
}

func (n *StatRepeat) MarshalJSON() ([]byte, error) {
	type plain StatRepeat
	return taggedJSON("StatRepeat", (*plain)(n))
}

func (n *StatRepeat) MarshalYAML() (interface{}, error) {
	type plain StatRepeat
	return taggedYAML("StatRepeat", (*plain)(n))
}

func (n *StatIf) MarshalJSON() ([]byte, error) {
	type plain StatIf
	return taggedJSON("StatIf", (*plain)(n))
}

func (n *StatIf) MarshalYAML() (interface{}, error) {
	type plain StatIf
	return taggedYAML("StatIf", (*plain)(n))
}

func (n *StatFor) MarshalJSON() ([]byte, error) {
	type plain StatFor
	return taggedJSON("StatFor", (*plain)(n))
}

func (n *StatFor) MarshalYAML() (interface{}, error) {
	type plain StatFor
	return taggedYAML("StatFor", (*plain)(n))
}

func (n *StatForIn) MarshalJSON() ([]byte, error) {
	type plain StatForIn
	return taggedJSON("StatForIn", (*plain)(n))
}

func (n *StatForIn) MarshalYAML() (interface{}, error) {
	type plain StatForIn
	return taggedYAML("StatForIn", (*plain)(n))
}

func (n *StatFunction) MarshalJSON() ([]byte, error) {
	type plain StatFunction
	return taggedJSON("StatFunction", (*plain)(n))
}

func (n *StatFunction) MarshalYAML() (interface{}, error) {
	type plain StatFunction
	return taggedYAML("StatFunction", (*plain)(n))
}

func (n *StatLocalFunction) MarshalJSON() ([]byte, error) {
	type plain StatLocalFunction
	return taggedJSON("StatLocalFunction", (*plain)(n))
}

func (n *StatLocalFunction) MarshalYAML() (interface{}, error) {
	type plain StatLocalFunction
	return taggedYAML("StatLocalFunction", (*plain)(n))
}

func (n *StatLocalAssignment) MarshalJSON() ([]byte, error) {
	type plain StatLocalAssignment
	return taggedJSON("StatLocalAssignment", (*plain)(n))
}

func (n *StatLocalAssignment) MarshalYAML() (interface{}, error) {
	type plain StatLocalAssignment
	return taggedYAML("StatLocalAssignment", (*plain)(n))
}

func (n *StatGoto) MarshalJSON() ([]byte, error) {
	type plain StatGoto
	return taggedJSON("StatGoto", (*plain)(n))
}

func (n *StatGoto) MarshalYAML() (interface{}, error) {
	type plain StatGoto
	return taggedYAML("StatGoto", (*plain)(n))
}

func (n *StatLabel) MarshalJSON() ([]byte, error) {
	type plain StatLabel
	return taggedJSON("StatLabel", (*plain)(n))
}

func (n *StatLabel) MarshalYAML() (interface{}, error) {
	type plain StatLabel
	return taggedYAML("StatLabel", (*plain)(n))
}

func (n *StatBreak) MarshalJSON() ([]byte, error) {
	type plain StatBreak
	return taggedJSON("StatBreak", (*plain)(n))
}

func (n *StatBreak) MarshalYAML() (interface{}, error) {
	type plain StatBreak
	return taggedYAML("StatBreak", (*plain)(n))
}

func (n *StatReturn) MarshalJSON() ([]byte, error) {
	type plain StatReturn
	return taggedJSON("StatReturn", (*plain)(n))
}

func (n *StatReturn) MarshalYAML() (interface{}, error) {
	type plain StatReturn
	return taggedYAML("StatReturn", (*plain)(n))
}
