package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newInputWithMain(text string) *RemarkInput {
	ri := NewRemarkInput()
	ri.Main.Reset(text)
	return ri
}

func Test_Emit_identity(t *testing.T) {
	ri := newInputWithMain("hello")
	out := Emit(ri, WrapOptions{Mode: WrapNone})
	assert.Equal(t, "hello\n", out)
}

func Test_Emit_emptyLine(t *testing.T) {
	ri := newInputWithMain("")
	out := Emit(ri, WrapOptions{Mode: WrapNone})
	assert.Equal(t, "\n", out)
}

func Test_Emit_styleWrapping(t *testing.T) {
	ri := newInputWithMain("hello")
	style := NewStyle("s", PrependComponent("<"), AppendComponent(">"))
	ri.Main.Styles.Insert(StyleRange{So: 2, Eo: 4, Style: style})

	out := Emit(ri, WrapOptions{Mode: WrapNone})
	assert.Equal(t, "he<ll>o\n", out)
}

func Test_Emit_nestedStyles(t *testing.T) {
	ri := newInputWithMain("abcd")
	s1 := NewStyle("s1", PrependComponent("["), AppendComponent("]"))
	s2 := NewStyle("s2", PrependComponent("("), AppendComponent(")"))
	ri.Main.Styles.Insert(StyleRange{So: 0, Eo: 4, Style: s1})
	ri.Main.Styles.Insert(StyleRange{So: 1, Eo: 3, Style: s2})

	out := Emit(ri, WrapOptions{Mode: WrapNone})
	assert.Equal(t, "[a(bc)d]\n", out)
}

func Test_Emit_charWrap(t *testing.T) {
	ri := newInputWithMain("abcdef")
	out := Emit(ri, WrapOptions{Mode: WrapChar, Width: 3})
	assert.Equal(t, "abc\ndef\n", out)
}

func Test_Emit_wordWrap(t *testing.T) {
	ri := newInputWithMain("hello world foo")
	out := Emit(ri, WrapOptions{Mode: WrapWord, Width: 7})
	assert.Equal(t, "hello\nworld\nfoo\n", out)
}

func Test_Emit_retainPrefixRepeatedOnContinuations(t *testing.T) {
	ri := newInputWithMain("abcdefghij")
	out := Emit(ri, WrapOptions{Mode: WrapChar, Width: 5, Retain: 2})
	// First segment "abcde" (5 bytes), then width shrinks by retain(2) for
	// continuations: "ab" + up to 3 more bytes per line.
	assert.Equal(t, "abcde\nabfgh\nabij\n", out)
}

func Test_Emit_prependAppendOnContinuations(t *testing.T) {
	ri := newInputWithMain("abcdefgh")
	out := Emit(ri, WrapOptions{Mode: WrapChar, Width: 4, Prepend: ">", Append: "\\"})
	// Width 4 reserves 1 byte for append on every non-final segment, and
	// the first segment's 1-byte prepend further narrows every
	// continuation's effective width: "abc" + append, ">de" + append,
	// ">fgh" (final, no append reserved).
	assert.Equal(t, "abc\\\n>de\\\n>fgh\n", out)
}

func Test_Emit_stylesSpanningWrapBoundary(t *testing.T) {
	ri := newInputWithMain("abcdef")
	style := NewStyle("s", PrependComponent("<"), AppendComponent(">"))
	ri.Main.Styles.Insert(StyleRange{So: 1, Eo: 5, Style: style})

	out := Emit(ri, WrapOptions{Mode: WrapChar, Width: 3})
	// The style opens once in the first segment and its close lands in
	// the second: no re-opening tag is emitted at the wrap break.
	assert.Equal(t, "a<bc\nde>f\n", out)
}

func Test_Emit_wordWrap_multipleBreaksKeepCoordinatesInSync(t *testing.T) {
	// Exercises the space-run deletion across three wrap breaks in a row;
	// a coordinate-tracking slip after any one break would misplace the
	// rest of the line.
	ri := newInputWithMain("the quick brown fox jumps")
	out := Emit(ri, WrapOptions{Mode: WrapWord, Width: 10})
	assert.Equal(t, "the quick\nbrown fox\njumps\n", out)
}

func Test_Emit_wordWrap_withStyleAcrossBreak(t *testing.T) {
	ri := newInputWithMain("hello world foo")
	style := NewStyle("s", PrependComponent("<"), AppendComponent(">"))
	ri.Main.Styles.Insert(StyleRange{So: 3, Eo: 8, Style: style})

	out := Emit(ri, WrapOptions{Mode: WrapWord, Width: 7})
	assert.Equal(t, "hel<lo\nwo>rld\nfoo\n", out)
}

func Test_materialiseRetain_forceClosesOpenStyle(t *testing.T) {
	mb := NewMatchBuffer("abcdef")
	style := NewStyle("s", PrependComponent("<"), AppendComponent(">"))
	mb.Styles.Insert(StyleRange{So: 1, Eo: 5, Style: style})

	got := materialiseRetain(mb, 3)
	assert.Equal(t, "a<bc>", string(got))
}
