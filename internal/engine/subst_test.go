package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// stateWithCaptures builds a MatchState over text with subv[0] set to
// [mainSo,mainEo) and subv[1:] from captures, parented by a root state
// spanning the whole buffer (so $` / $' have a parent scope to measure
// against).
func stateWithCaptures(text string, mainSo, mainEo int, captures ...Span) *MatchState {
	mb := NewMatchBuffer(text)
	root := mb.RootState()
	subv := append([]Span{{So: mainSo, Eo: mainEo}}, captures...)
	return root.Child(subv)
}

func Test_Expand_numberedSubmatches(t *testing.T) {
	st := stateWithCaptures("key=value", 0, 9, Span{So: 0, Eo: 3}, Span{So: 4, Eo: 9})
	out := Expand("$2=$1", st)
	assert.Equal(t, "value=key", string(out))
}

func Test_Expand_bracedMultiDigit(t *testing.T) {
	captures := make([]Span, 11)
	for i := range captures {
		captures[i] = Span{So: 0, Eo: 1}
	}
	st := stateWithCaptures("x", 0, 1, captures...)
	out := Expand("${10}", st)
	assert.Equal(t, "x", string(out))
}

func Test_Expand_braceNonNumericLiteral(t *testing.T) {
	st := stateWithCaptures("x", 0, 1)
	out := Expand("${abc}", st)
	assert.Equal(t, "${abc}", string(out))
}

func Test_Expand_unterminatedBrace(t *testing.T) {
	st := stateWithCaptures("x", 0, 1)
	out := Expand("a${bc", st)
	assert.Equal(t, "a${bc", string(out))
}

func Test_Expand_backtickBeforeMatch(t *testing.T) {
	mb := NewMatchBuffer("hello world")
	root := mb.RootState()
	child := root.Child([]Span{{So: 6, Eo: 11}})
	out := Expand("$`", child)
	assert.Equal(t, "hello ", string(out))
}

func Test_Expand_ampersandWholeMatch(t *testing.T) {
	mb := NewMatchBuffer("hello world")
	root := mb.RootState()
	child := root.Child([]Span{{So: 0, Eo: 5}})
	out := Expand("$&", child)
	assert.Equal(t, "hello", string(out))
}

func Test_Expand_apostropheAfterMatch(t *testing.T) {
	mb := NewMatchBuffer("hello world")
	root := mb.RootState()
	child := root.Child([]Span{{So: 0, Eo: 5}})
	out := Expand("$'", child)
	assert.Equal(t, " world", string(out))
}

func Test_Expand_outOfRangeSubmatchIsEmpty(t *testing.T) {
	st := stateWithCaptures("x", 0, 1)
	out := Expand("[$5]", st)
	assert.Equal(t, "[]", string(out))
}

func Test_Expand_unmatchedSubmatchIsEmpty(t *testing.T) {
	st := stateWithCaptures("x", 0, 1, Span{So: -1, Eo: -1})
	out := Expand("[$1]", st)
	assert.Equal(t, "[]", string(out))
}

func Test_Expand_backslashEscape(t *testing.T) {
	st := stateWithCaptures("x", 0, 1)
	out := Expand("\\$1 literal", st)
	assert.Equal(t, "$1 literal", string(out))
}

func Test_Expand_trailingBackslashDropped(t *testing.T) {
	st := stateWithCaptures("x", 0, 1)
	out := Expand("abc\\", st)
	assert.Equal(t, "abc", string(out))
}

func Test_Expand_otherDollarSequenceLiteral(t *testing.T) {
	st := stateWithCaptures("x", 0, 1)
	out := Expand("cost: $x", st)
	assert.Equal(t, "cost: $x", string(out))
}

func Test_Expand_loneTrailingDollar(t *testing.T) {
	st := stateWithCaptures("x", 0, 1)
	out := Expand("total$", st)
	assert.Equal(t, "total$", string(out))
}
