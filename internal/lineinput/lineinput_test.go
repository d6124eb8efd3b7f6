package lineinput

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ArgsReader_yieldsEachArgThenEOF(t *testing.T) {
	ar := NewArgsReader([]string{"one", "two"})

	line, err := ar.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, "one", line)

	line, err = ar.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, "two", line)

	_, err = ar.ReadLine()
	assert.True(t, errors.Is(err, io.EOF))
}

func Test_ArgsReader_empty(t *testing.T) {
	ar := NewArgsReader(nil)
	_, err := ar.ReadLine()
	assert.True(t, errors.Is(err, io.EOF))
}

func Test_DirectReader_stripsTrailingNewlineOnly(t *testing.T) {
	dr := NewDirectReader(strings.NewReader("hello \nworld\n"))

	line, err := dr.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, "hello ", line)

	line, err = dr.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, "world", line)

	_, err = dr.ReadLine()
	assert.True(t, errors.Is(err, io.EOF))
}

func Test_DirectReader_lastLineWithoutTrailingNewline(t *testing.T) {
	dr := NewDirectReader(strings.NewReader("abc\nxyz"))

	line, err := dr.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, "abc", line)

	// A final line with no trailing newline is still yielded, content
	// intact, before EOF.
	line, err = dr.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, "xyz", line)

	_, err = dr.ReadLine()
	assert.True(t, errors.Is(err, io.EOF))
}

func Test_DirectReader_preservesBlankLines(t *testing.T) {
	dr := NewDirectReader(strings.NewReader("a\n\nb\n"))

	line, err := dr.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, "a", line)

	line, err = dr.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, "", line)

	line, err = dr.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, "b", line)
}

func Test_DirectReader_emptyInputIsImmediateEOF(t *testing.T) {
	dr := NewDirectReader(strings.NewReader(""))
	_, err := dr.ReadLine()
	assert.True(t, errors.Is(err, io.EOF))
}
