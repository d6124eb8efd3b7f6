package grammar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ScriptError_FullMessage_rendersCaretUnderColumn(t *testing.T) {
	err := newSemanticError("bad.rmk", `STYLE "x" "nope"`, 3, 11, "unknown parent style %q", "nope")

	full := err.FullMessage()
	assert.Contains(t, full, "bad.rmk:3:11:")
	assert.Contains(t, full, `STYLE "x" "nope"`)
	// 10 spaces then a caret: column 11 points one past "STYLE \"x\" ".
	assert.Contains(t, full, "\n          ^")
}

func Test_ScriptError_FullMessage_fallsBackToErrorWhenNoSourceLine(t *testing.T) {
	err := newSemanticError("", "", 0, 0, "style %q declared more than once", "x")
	assert.Equal(t, err.Error(), err.FullMessage())
}

func Test_ParseBytes_syntaxErrorIsAScriptError(t *testing.T) {
	_, err := ParseBytes("bad.rmk", []byte("MATCH"))
	assert.Error(t, err)

	var scriptErr *ScriptError
	assert.True(t, errors.As(err, &scriptErr))
	assert.Contains(t, scriptErr.Error(), "bad.rmk")
}
