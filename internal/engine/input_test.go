package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ExecuteScript_runsMainRuleOverMainBuffer(t *testing.T) {
	style := &Style{Name: "s"}
	script := &Script{MainRule: StyleRule(style)}

	ri := NewRemarkInput()
	ri.ResetForLine("hello", "", "")

	ok := ExecuteScript(script, ri)
	assert.True(t, ok)
	assert.Equal(t, []StyleRange{{So: 0, Eo: 5, Style: style}}, ri.Main.Styles.Ranges())
}

func Test_ExecuteScript_topLevelSkipDropsLine(t *testing.T) {
	script := &Script{MainRule: ActionRule(Skip)}

	ri := NewRemarkInput()
	ri.ResetForLine("hello", "", "")

	ok := ExecuteScript(script, ri)
	assert.False(t, ok)
}

func Test_ExecuteScript_nilRulesAreNoOps(t *testing.T) {
	script := &Script{}

	ri := NewRemarkInput()
	ri.ResetForLine("hello", "prefix", "suffix")

	ok := ExecuteScript(script, ri)
	assert.True(t, ok)
	assert.Equal(t, "hello", ri.Main.Buf.String())
	assert.Equal(t, "prefix", ri.Prepend.Buf.String())
	assert.Equal(t, "suffix", ri.Append.Buf.String())
}

func Test_ExecuteScript_prependAndAppendRulesResolveAndMaterialiseImmediately(t *testing.T) {
	style := NewStyle("s", PrependComponent("<"), AppendComponent(">"))
	script := &Script{
		PrependRule: StyleRule(style),
		AppendRule:  StyleRule(style),
	}

	ri := NewRemarkInput()
	ri.ResetForLine("hello", ">>", "<<")

	ok := ExecuteScript(script, ri)
	assert.True(t, ok)

	// Materialised immediately, so the literal tags are now in the buffer
	// text itself and the style list has already been cleared.
	assert.Equal(t, "<>>>", ri.Prepend.Buf.String())
	assert.Equal(t, "<<<>", ri.Append.Buf.String())
	assert.Equal(t, 0, ri.Prepend.Styles.Len())
	assert.Equal(t, 0, ri.Append.Styles.Len())
}

func Test_ExecuteScript_prependAppendRuleCanRewriteSeed(t *testing.T) {
	re, err := CompileRegex(">>", false, false)
	assert.NoError(t, err)
	script := &Script{
		PrependRule: MatchRule(SetRule("[$&]"), re),
	}

	ri := NewRemarkInput()
	ri.ResetForLine("hello", ">>", "")

	ok := ExecuteScript(script, ri)
	assert.True(t, ok)
	assert.Equal(t, "[>>]", ri.Prepend.Buf.String())
}

func Test_ExecuteScript_mainStylesSurviveForEmit(t *testing.T) {
	// Main's style list is deliberately left untouched by ExecuteScript:
	// Emit consumes it directly afterward.
	style := NewStyle("s", PrependComponent("<"), AppendComponent(">"))
	script := &Script{MainRule: StyleRule(style)}

	ri := NewRemarkInput()
	ri.ResetForLine("hi", "", "")

	assert.True(t, ExecuteScript(script, ri))
	assert.Equal(t, 1, ri.Main.Styles.Len())

	out := Emit(ri, WrapOptions{Mode: WrapNone, Prepend: ri.Prepend.Buf.String(), Append: ri.Append.Buf.String()})
	assert.Equal(t, "<hi>\n", out)

	ri.ClearMainStyles()
	assert.Equal(t, 0, ri.Main.Styles.Len())
}

func Test_ExecuteScript_resetForLineReseedsAllThreeBuffers(t *testing.T) {
	ri := NewRemarkInput()
	ri.ResetForLine("first", "p1", "a1")
	assert.Equal(t, "first", ri.Main.Buf.String())

	ri.ResetForLine("second", "p2", "a2")
	assert.Equal(t, "second", ri.Main.Buf.String())
	assert.Equal(t, "p2", ri.Prepend.Buf.String())
	assert.Equal(t, "a2", ri.Append.Buf.String())
	assert.Equal(t, 0, ri.Main.Styles.Len())
}
