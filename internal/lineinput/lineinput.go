// Package lineinput supplies the lines that cmd/remark feeds through a
// script, adapted from tunaq's internal/input command readers (§6): "If one
// or more TEXT arguments follow the script, each is processed as one line.
// Otherwise lines are read from standard input (NL-terminated, NL
// stripped)." Unlike a command reader, a LineReader here must preserve a
// line's content exactly (leading/trailing spaces are significant to a text
// rewriter) and must not skip blank lines.
package lineinput

import (
	"bufio"
	"fmt"
	"io"

	"github.com/chzyer/readline"
)

// LineReader yields the successive input lines of a run.
type LineReader interface {
	// ReadLine returns the next line, with its trailing newline already
	// stripped. At end of input it returns "", io.EOF.
	ReadLine() (string, error)
	Close() error
}

// ArgsReader serves a fixed list of TEXT arguments as lines, one per call.
type ArgsReader struct {
	lines []string
	pos   int
}

// NewArgsReader returns a LineReader over an already-known list of lines.
func NewArgsReader(lines []string) *ArgsReader {
	return &ArgsReader{lines: lines}
}

func (ar *ArgsReader) ReadLine() (string, error) {
	if ar.pos >= len(ar.lines) {
		return "", io.EOF
	}
	line := ar.lines[ar.pos]
	ar.pos++
	return line, nil
}

func (ar *ArgsReader) Close() error { return nil }

// DirectReader reads lines from any stream, preserving each line's content
// verbatim apart from the stripped line terminator. Used when standard
// input is not a terminal.
type DirectReader struct {
	r *bufio.Reader
}

// NewDirectReader wraps r in a buffered line reader.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{r: bufio.NewReader(r)}
}

func (dr *DirectReader) ReadLine() (string, error) {
	line, err := dr.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return line, nil
		}
		return "", err
	}
	return line[:len(line)-1], nil
}

func (dr *DirectReader) Close() error { return nil }

// InteractiveReader reads lines from a terminal via readline, giving
// editing and history for the common case of a human typing lines directly
// at remark. Used only when standard input is attached to a TTY.
type InteractiveReader struct {
	rl *readline.Instance
}

// NewInteractiveReader initializes readline for interactive line entry. The
// returned reader must have Close called on it before the process exits.
func NewInteractiveReader() (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: ""})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}
	return &InteractiveReader{rl: rl}, nil
}

func (ir *InteractiveReader) ReadLine() (string, error) {
	return ir.rl.Readline()
}

func (ir *InteractiveReader) Close() error {
	return ir.rl.Close()
}
