package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lualex "github.com/vyPal/PicoLua/lib/lexer"
)

func TestLastStat(t *testing.T) {
	node, p := run(t, "break", (*Parser).laststat)
	brk, ok := node.(*StatBreak)
	require.True(t, ok, "got %T", node)
	assert.Equal(t, 1, p.pos)
	assert.Equal(t, Span{StartToken: 0, EndToken: 1}, brk.Span)

	node, p = run(t, "return", (*Parser).laststat)
	ret, ok := node.(*StatReturn)
	require.True(t, ok, "got %T", node)
	assert.Nil(t, ret.ExpList)
	assert.Equal(t, 1, p.pos)

	node, p = run(t, "return 1, 2, 3", (*Parser).laststat)
	ret, ok = node.(*StatReturn)
	require.True(t, ok, "got %T", node)
	assert.Len(t, ret.ExpList.Exps, 3)
	assert.Equal(t, 6, p.pos)

	node, p = run(t, "name", (*Parser).laststat)
	assert.Nil(t, node)
	assert.Equal(t, 0, p.pos)
}

func TestStatAssignment(t *testing.T) {
	node, p := run(t, "foo, bar, baz = 1, 2, 3", (*Parser).stat)
	as, ok := node.(*StatAssignment)
	require.True(t, ok, "got %T", node)
	assert.Equal(t, 11, p.pos)
	require.Len(t, as.VarList.Vars, 3)
	requireName(t, as.VarList.Vars[0], "foo")
	requireName(t, as.VarList.Vars[1], "bar")
	requireName(t, as.VarList.Vars[2], "baz")
	assert.True(t, as.AssignOp.Matches(lualex.TokSymbol, "="))
	require.Len(t, as.ExpList.Exps, 3)
	requireNumber(t, as.ExpList.Exps[2], "3")
}

func TestStatCompoundAssignment(t *testing.T) {
	for _, op := range lualex.CompoundAssignOps() {
		t.Run(op, func(t *testing.T) {
			node, p := run(t, "x.y "+op+" 1", (*Parser).stat)
			as, ok := node.(*StatAssignment)
			require.True(t, ok, "got %T", node)
			assert.Equal(t, op, as.AssignOp.Value)
			assert.Equal(t, 5, p.pos)
		})
	}
}

func TestStatCompoundAssignmentArity(t *testing.T) {
	perr := runErr(t, "a, b += 1", (*Parser).stat)
	assert.Equal(t, "'+=' takes exactly one variable and one value", perr.Msg)
	assert.Equal(t, "+=", perr.Token.Value)

	perr = runErr(t, "a -= 1, 2", (*Parser).stat)
	assert.Equal(t, "-=", perr.Token.Value)
}

func TestStatFunctionCall(t *testing.T) {
	node, p := run(t, "foo(1, 2, 3)", (*Parser).stat)
	call, ok := node.(*StatFunctionCall)
	require.True(t, ok, "got %T", node)
	assert.Equal(t, 8, p.pos)
	requireName(t, call.Call.Prefix, "foo")
	args := call.Call.Args.(*FunctionArgs)
	require.Len(t, args.ExpList.Exps, 3)
	requireNumber(t, args.ExpList.Exps[0], "1")

	node, _ = run(t, `a.b:c "x" {1}`, (*Parser).stat)
	call, ok = node.(*StatFunctionCall)
	require.True(t, ok, "got %T", node)
	assert.IsType(t, &TableConstructor{}, call.Call.Args)
	assert.IsType(t, &FunctionCall{}, call.Call.Prefix)
}

func TestStatExpressionErrors(t *testing.T) {
	perr := runErr(t, "foo.bar\nbaz = 1", (*Parser).stat)
	assert.Equal(t, "expected '=' after assignment target", perr.Msg)
	assert.Equal(t, "baz", perr.Token.Value)
	assert.Equal(t, 2, perr.Token.Pos.Line)

	perr = runErr(t, "(foo)", (*Parser).stat)
	assert.Equal(t, "parenthesized expression is not a statement", perr.Msg)
	assert.Equal(t, "(", perr.Token.Value)

	perr = runErr(t, "foo, bar() = 1", (*Parser).stat)
	assert.Equal(t, "expected variable after ','", perr.Msg)
}

func TestStatDo(t *testing.T) {
	node, p := run(t, "do break end", (*Parser).stat)
	do, ok := node.(*StatDo)
	require.True(t, ok, "got %T", node)
	assert.Equal(t, 3, p.pos)
	require.Len(t, do.Block.Stats, 1)
	assert.IsType(t, &StatBreak{}, do.Block.Stats[0])
}

func TestStatWhile(t *testing.T) {
	node, p := run(t, "while true do break end", (*Parser).stat)
	w, ok := node.(*StatWhile)
	require.True(t, ok, "got %T", node)
	assert.Equal(t, 5, p.pos)
	assert.Equal(t, LitTrue, w.Exp.(*BasicLit).Kind)
	require.Len(t, w.Block.Stats, 1)
}

func TestStatWhileLiveExample(t *testing.T) {
	src := "\t\twhile(s.y<b.y)do\n" +
		"\t\t\ts.y+=1;e.y+=1;s.x+=dx1;e.x+=dx2;\n" +
		"\t\t\tline(s.x,s.y,e.x,e.y);\n" +
		"\t\tend\n"
	node, p := run(t, src, (*Parser).stat)
	w, ok := node.(*StatWhile)
	require.True(t, ok, "got %T", node)
	assert.Equal(t, 55, p.pos)
	assert.Len(t, w.Block.Stats, 5)
}

func TestStatRepeat(t *testing.T) {
	node, p := run(t, "repeat break until true", (*Parser).stat)
	r, ok := node.(*StatRepeat)
	require.True(t, ok, "got %T", node)
	assert.Equal(t, 4, p.pos)
	require.Len(t, r.Block.Stats, 1)
	assert.Equal(t, LitTrue, r.Exp.(*BasicLit).Kind)
}

func TestStatIf(t *testing.T) {
	tests := []struct {
		src   string
		pos   int
		conds []LitKind // -1 for the else arm
		last  Stat
	}{
		{"if true then break end", 5, []LitKind{LitTrue}, &StatBreak{}},
		{"if true then break else return end", 7, []LitKind{LitTrue, -1}, &StatReturn{}},
		{"if true then break elseif false then return end", 9, []LitKind{LitTrue, LitFalse}, &StatReturn{}},
		{"if true then break elseif false then break else return end", 11, []LitKind{LitTrue, LitFalse, -1}, &StatReturn{}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			node, p := run(t, tt.src, (*Parser).stat)
			st, ok := node.(*StatIf)
			require.True(t, ok, "got %T", node)
			assert.False(t, st.Short)
			assert.Equal(t, tt.pos, p.pos)
			require.Len(t, st.Pairs, len(tt.conds))
			for i, kind := range tt.conds {
				if kind < 0 {
					assert.Nil(t, st.Pairs[i].Cond)
				} else {
					assert.Equal(t, kind, st.Pairs[i].Cond.(*BasicLit).Kind)
				}
				require.Len(t, st.Pairs[i].Block.Stats, 1)
			}
			lastPair := st.Pairs[len(st.Pairs)-1]
			assert.IsType(t, tt.last, lastPair.Block.Stats[0])
		})
	}
}

func TestStatIfShort(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		pos   int
		pairs int
	}{
		{"then arm", "if (true) break\nreturn", 5, 1},
		{"at EOF", "if (true) break", 5, 1},
		{"else arm", "if (true) break else break\nreturn", 7, 2},
		{"empty else", "if (true) break else  \nreturn", 6, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, p := run(t, tt.src, (*Parser).stat)
			st, ok := node.(*StatIf)
			require.True(t, ok, "got %T", node)
			assert.True(t, st.Short)
			assert.Equal(t, tt.pos, p.pos)
			require.Len(t, st.Pairs, tt.pairs)

			assert.Equal(t, LitTrue, st.Pairs[0].Cond.(*BasicLit).Kind)
			require.Len(t, st.Pairs[0].Block.Stats, 1)
			assert.IsType(t, &StatBreak{}, st.Pairs[0].Block.Stats[0])
			if tt.pairs == 2 {
				assert.Nil(t, st.Pairs[1].Cond)
				require.Len(t, st.Pairs[1].Block.Stats, 1)
				assert.IsType(t, &StatBreak{}, st.Pairs[1].Block.Stats[0])
			}
			// The horizon is gone once the statement is done.
			assert.Equal(t, len(p.tokens), p.horizon)
		})
	}
}

func TestStatIfShortLeavesNextLine(t *testing.T) {
	block, err := ParseString("test.lua", "if (true) break else break\nreturn", lualex.DefaultVersion)
	require.NoError(t, err)
	require.Len(t, block.Stats, 2)

	st := block.Stats[0].(*StatIf)
	assert.True(t, st.Short)
	assert.Len(t, st.Pairs, 2)
	assert.IsType(t, &StatReturn{}, block.Stats[1])
}

func TestStatIfShortBody(t *testing.T) {
	block, err := ParseString("test.lua", "if (x > 1) x -= 1 y = 2\nif (a) if (b) c()", lualex.DefaultVersion)
	require.NoError(t, err)
	require.Len(t, block.Stats, 3)

	first := block.Stats[0].(*StatIf)
	require.Len(t, first.Pairs, 1)
	assert.IsType(t, &StatAssignment{}, first.Pairs[0].Block.Stats[0])
	// The rest of the line belongs to the enclosing block.
	assert.IsType(t, &StatAssignment{}, block.Stats[1])

	nested := block.Stats[2].(*StatIf)
	inner, ok := nested.Pairs[0].Block.Stats[0].(*StatIf)
	require.True(t, ok)
	assert.True(t, inner.Short)
}

func TestStatIfShortErrors(t *testing.T) {
	// The statement must start on the condition's line.
	perr := runErr(t, "if (true)\nbreak", (*Parser).stat)
	assert.Equal(t, "expected statement", perr.Msg)

	// A multi-line body cannot escape the line.
	perr = runErr(t, "if (true) x = {\n}", (*Parser).stat)
	assert.Equal(t, "expected symbol '}'", perr.Msg)
}

func TestStatIfWithoutShortIf(t *testing.T) {
	tokens, err := lualex.Lex("test.lua", "if (true) break", 0)
	require.NoError(t, err)
	_, err = Parse(tokens, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected keyword 'then'")
}

func TestStatFor(t *testing.T) {
	node, p := run(t, "for foo=1,3 do break end", (*Parser).stat)
	f, ok := node.(*StatFor)
	require.True(t, ok, "got %T", node)
	assert.Equal(t, 9, p.pos)
	assert.Equal(t, "foo", f.Name.Value)
	requireNumber(t, f.Init, "1")
	requireNumber(t, f.Limit, "3")
	assert.Nil(t, f.Step)
	require.Len(t, f.Block.Stats, 1)

	node, p = run(t, "for foo=1,3,10 do break end", (*Parser).stat)
	f, ok = node.(*StatFor)
	require.True(t, ok, "got %T", node)
	assert.Equal(t, 11, p.pos)
	requireNumber(t, f.Step, "10")
}

func TestStatForIn(t *testing.T) {
	node, p := run(t, "for foo, bar in 1, 3 do\n  break\nend\n", (*Parser).stat)
	f, ok := node.(*StatForIn)
	require.True(t, ok, "got %T", node)
	assert.Equal(t, 11, p.pos)
	assert.Equal(t, []string{"foo", "bar"}, names(f.NameList.Names))
	require.Len(t, f.ExpList.Exps, 2)
	requireNumber(t, f.ExpList.Exps[1], "3")
	require.Len(t, f.Block.Stats, 1)

	node, _ = run(t, "for k in pairs(t) do end", (*Parser).stat)
	f, ok = node.(*StatForIn)
	require.True(t, ok, "got %T", node)
	assert.Equal(t, []string{"k"}, names(f.NameList.Names))
	assert.Empty(t, f.Block.Stats)
}

func TestStatForErrors(t *testing.T) {
	perr := runErr(t, "for i=1 do end", (*Parser).stat)
	assert.Equal(t, "expected symbol ','", perr.Msg)

	perr = runErr(t, "for 1 in x do end", (*Parser).stat)
	assert.Equal(t, "expected name after 'for'", perr.Msg)
}

func TestStatFunction(t *testing.T) {
	node, p := run(t, "function foo(a, b, c) break end", (*Parser).stat)
	fn, ok := node.(*StatFunction)
	require.True(t, ok, "got %T", node)
	assert.Equal(t, 11, p.pos)
	assert.Equal(t, []string{"foo"}, names(fn.Name.NamePath))
	assert.Nil(t, fn.Name.MethodName)
	assert.Equal(t, []string{"a", "b", "c"}, names(fn.Body.ParList.Names))
	assert.Nil(t, fn.Body.Dots)
	require.Len(t, fn.Body.Block.Stats, 1)

	perr := runErr(t, "function foo end", (*Parser).stat)
	assert.Equal(t, "expected '(' after function name", perr.Msg)
}

func TestStatLocalFunction(t *testing.T) {
	node, p := run(t, "local function foo(a, b, c) break end", (*Parser).stat)
	fn, ok := node.(*StatLocalFunction)
	require.True(t, ok, "got %T", node)
	assert.Equal(t, 12, p.pos)
	assert.Equal(t, "foo", fn.Name.Value)
	assert.Equal(t, []string{"a", "b", "c"}, names(fn.Body.ParList.Names))
}

func TestStatLocalAssignment(t *testing.T) {
	node, p := run(t, "local foo, bar, baz", (*Parser).stat)
	la, ok := node.(*StatLocalAssignment)
	require.True(t, ok, "got %T", node)
	assert.Equal(t, 6, p.pos)
	assert.Equal(t, []string{"foo", "bar", "baz"}, names(la.NameList.Names))
	assert.Nil(t, la.ExpList)

	node, p = run(t, "local foo, bar, baz = 1, 2, 3", (*Parser).stat)
	la, ok = node.(*StatLocalAssignment)
	require.True(t, ok, "got %T", node)
	assert.Equal(t, 12, p.pos)
	require.Len(t, la.ExpList.Exps, 3)
	requireNumber(t, la.ExpList.Exps[0], "1")
}

func TestStatGotoAndLabel(t *testing.T) {
	node, p := run(t, "goto foobar", (*Parser).stat)
	g, ok := node.(*StatGoto)
	require.True(t, ok, "got %T", node)
	assert.Equal(t, 2, p.pos)
	assert.Equal(t, "foobar", g.Label.Value)

	node, p = run(t, "::foobar::", (*Parser).stat)
	l, ok := node.(*StatLabel)
	require.True(t, ok, "got %T", node)
	assert.Equal(t, 3, p.pos)
	assert.Equal(t, "foobar", l.Label.Value)
}

func TestStatNoMatch(t *testing.T) {
	for _, src := range []string{"end", "return", "break", "1", ""} {
		node, p := run(t, src, (*Parser).stat)
		assert.Nil(t, node, src)
		assert.Equal(t, 0, p.pos, src)
	}
}

func TestStatAssignmentAnonymousFunctionTable(t *testing.T) {
	src := `
player =
{
    init=function(this)
        print(t1)
    end,
    update=function(this)
        print(t2)
    end,
    draw=function(this)
        print(t3)
    end
}
`
	node, p := run(t, src, (*Parser).stat)
	as, ok := node.(*StatAssignment)
	require.True(t, ok, "got %T", node)
	assert.Equal(t, 39, p.pos)
	requireName(t, as.VarList.Vars[0], "player")
	require.Len(t, as.ExpList.Exps, 1)

	tc, ok := as.ExpList.Exps[0].(*TableConstructor)
	require.True(t, ok)
	require.Len(t, tc.Fields, 3)
	for i, key := range []string{"init", "update", "draw"} {
		f, ok := tc.Fields[i].(*FieldNamedKey)
		require.True(t, ok, "got %T", tc.Fields[i])
		assert.Equal(t, key, f.Key.Value)
		assert.IsType(t, &FuncLit{}, f.Exp)
	}
}

func TestChunk(t *testing.T) {
	tokens, err := lualex.Lex("life.lua", luaSample, lualex.DefaultVersion)
	require.NoError(t, err)

	p := New(lualex.DefaultVersion)
	block, err := p.ProcessTokens(tokens)
	require.NoError(t, err)
	assert.Len(t, block.Stats, 14)
	assert.Equal(t, len(tokens)-1, p.pos)
	assert.Equal(t, lualex.TokEOF, tokens[p.pos].Type)
}

func TestChunkExtraSemis(t *testing.T) {
	block, err := ParseString("test.lua", " ; ; foo=1; bar=1; ;\n;baz=3; \n;  ;", lualex.DefaultVersion)
	require.NoError(t, err)
	require.Len(t, block.Stats, 3)
	assert.Equal(t, 0, block.Stats[0].Start())
}

func TestChunkLeftover(t *testing.T) {
	_, err := ParseString("test.lua", "x = 1\nend", lualex.DefaultVersion)
	require.Error(t, err)
	assert.Equal(t, "expected statement at line 2, column 1 (found keyword \"end\")", err.Error())

	_, err = ParseString("test.lua", "return 1\nx = 2", lualex.DefaultVersion)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected statement")
}

func TestChunkEmpty(t *testing.T) {
	block, err := ParseString("test.lua", "-- nothing\n", lualex.DefaultVersion)
	require.NoError(t, err)
	assert.Empty(t, block.Stats)
}

func TestErrorPosition(t *testing.T) {
	_, err := ParseString("test.lua", "if x then\n  y = \nend", lualex.DefaultVersion)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "expected expression after '='", perr.Msg)
	assert.Equal(t, "end", perr.Token.Value)
	assert.Equal(t, 3, perr.Token.Pos.Line)
	assert.Equal(t, 1, perr.Token.Pos.Column)
}

func TestLexErrorPassesThrough(t *testing.T) {
	_, err := ParseString("test.lua", "x = 'open", lualex.DefaultVersion)
	var lerr *lualex.LexError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "unterminated string", lerr.Msg)
}

func TestVersionGating(t *testing.T) {
	tests := []struct {
		src     string
		version lualex.Version
		ok      bool
	}{
		{"x = a != b", 0, false},
		{"x = a != b", 1, true},
		{"x += 1", 0, false},
		{"x += 1", 1, true},
		{"if (x) y()", 0, false},
		{"if (x) y()", 1, true},
		{"x = 0b101", 1, false},
		{"x = 0b101", 2, true},
		{"if x then y() end", 0, true},
	}
	for _, tt := range tests {
		_, err := ParseString("test.lua", tt.src, tt.version)
		if tt.ok {
			assert.NoError(t, err, "%q at version %d", tt.src, tt.version)
		} else {
			assert.Error(t, err, "%q at version %d", tt.src, tt.version)
		}
	}
}

// Statement spans tile the chunk: together they cover every token before
// EOF exactly once.
func TestStatementSpansTileChunk(t *testing.T) {
	sources := []string{
		luaSample,
		" ; ; foo=1; bar=1; ;\n;baz=3; \n;  ;",
		"if (a) b=1 else c() d=2\nreturn x;",
		"local t = {1, 2; 3}\nfor i, v in ipairs(t) do print(v) end",
	}
	for _, src := range sources {
		tokens, err := lualex.Lex("test.lua", src, lualex.DefaultVersion)
		require.NoError(t, err)
		block, err := Parse(tokens, lualex.DefaultVersion)
		require.NoError(t, err)

		next := 0
		for _, s := range block.Stats {
			require.Equal(t, next, s.Start(), "gap or overlap before %T", s)
			require.Greater(t, s.End(), s.Start())
			next = s.End()
		}
		assert.Equal(t, len(tokens)-1, next)
	}
}

func TestLastStatEndsBlock(t *testing.T) {
	sources := []string{
		luaSample,
		"function f() if x then return 1 end while y do break; end return end",
		"repeat if (a) break else return b\nuntil c",
	}
	last := 0
	for _, src := range sources {
		block, err := ParseString("test.lua", src, lualex.DefaultVersion)
		require.NoError(t, err)
		Inspect(block, func(n Node) bool {
			b, ok := n.(*Block)
			if !ok {
				return true
			}
			for i, s := range b.Stats {
				if IsLastStat(s) {
					assert.Equal(t, len(b.Stats)-1, i, "%T before the end of its block", s)
					last++
				}
			}
			return true
		})
	}
	assert.Equal(t, 7, last)
	assert.False(t, IsLastStat(&StatDo{}))
}

func BenchmarkParseSample(b *testing.B) {
	tokens, err := lualex.Lex("life.lua", luaSample, lualex.DefaultVersion)
	require.NoError(b, err)
	p := New(lualex.DefaultVersion)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.ProcessTokens(tokens); err != nil {
			b.Fatal(err)
		}
	}
}
