// Package help renders the --help and --version text for the remark CLI,
// wrapped at a sensible terminal width with rosed the same way tqi formats
// its own ancillary output (see internal/game/debug.go).
package help

import (
	"fmt"

	"github.com/dekarrin/remark/internal/version"
	"github.com/dekarrin/rosed"
)

const usage = `remark - line-oriented text highlighter and rewriter

Usage:
  remark [flags] SCRIPT [TEXT...]

If one or more TEXT arguments follow SCRIPT, each is processed as a single
input line. Otherwise lines are read from standard input, newline-terminated
and with the newline stripped.

Flags:
  -p, --prepend STRING   literal to prepend to every continuation segment
  -a, --append STRING    literal to append to every emitted segment but the last
  -r, --retain N         number of bytes of the first segment to repeat as a
                         prefix on every continuation segment
  -w, --width N          target wrap width in bytes
  -f, --wrap MODE        wrap mode: none, char or word (default: none)
      --help             show this message and exit
      --version          show version information and exit

Script files are found by INCLUDE relative to the including script's
directory, then under $HOME/.remark, then under the program's own data
directory.
`

// Usage returns the full --help text, wrapped to width.
func Usage(width int) string {
	if width <= 0 {
		width = 80
	}
	return rosed.Edit(usage).Wrap(width).String()
}

// Version returns the --version text.
func Version() string {
	return fmt.Sprintf("remark %s\n", version.Current)
}
