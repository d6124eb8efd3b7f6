// Command remark reads a script file and applies it to each input line,
// per spec §6.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/dekarrin/remark/internal/engine"
	"github.com/dekarrin/remark/internal/grammar"
	"github.com/dekarrin/remark/internal/help"
	"github.com/dekarrin/remark/internal/lineinput"
	"github.com/dekarrin/remark/internal/locale"
)

// Exit codes. Per §6, every failure kind exits 1; ExitUsageError and
// ExitRuntimeError are kept as distinct names (mirroring tqi's named
// constants) purely to document which branch returned, not to vary the
// process's actual exit status.
const (
	ExitSuccess      = 0
	ExitUsageError   = 1
	ExitRuntimeError = 1
)

var (
	flagPrepend = pflag.StringP("prepend", "p", "", "literal prepended to every continuation segment")
	flagAppend  = pflag.StringP("append", "a", "", "literal appended to every emitted segment but the last")
	flagRetain  = pflag.IntP("retain", "r", 0, "bytes of the first segment repeated as a prefix on continuations")
	flagWidth   = pflag.IntP("width", "w", 0, "target wrap width in bytes")
	flagWrap    = pflag.StringP("wrap", "f", "none", "wrap mode: none, char or word (may be abbreviated)")
	flagHelp    = pflag.Bool("help", false, "show usage and exit")
	flagVersion = pflag.Bool("version", false, "show version information and exit")
)

func main() {
	var returnCode int

	defer func() {
		if panicErr := recover(); panicErr != nil {
			fmt.Fprintf(os.Stderr, "remark: internal error: %v\n", panicErr)
			os.Exit(ExitRuntimeError)
		}
		os.Exit(returnCode)
	}()

	returnCode = run()
}

func run() int {
	pflag.Parse()
	printer := locale.NewPrinter()

	if *flagHelp {
		fmt.Print(help.Usage(80))
		return ExitSuccess
	}
	if *flagVersion {
		fmt.Print(help.Version())
		return ExitSuccess
	}

	args := pflag.Args()
	if len(args) < 1 {
		printer.Fprintf(os.Stderr, "invalidArg", "missing SCRIPT argument")
		fmt.Fprintln(os.Stderr)
		fmt.Fprint(os.Stderr, help.Usage(80))
		return ExitUsageError
	}
	scriptPath := args[0]
	textArgs := args[1:]

	mode, err := parseWrapMode(*flagWrap)
	if err != nil {
		printer.Fprintf(os.Stderr, "invalidArg", err.Error())
		fmt.Fprintln(os.Stderr)
		return ExitUsageError
	}

	if mode != engine.WrapNone && *flagWidth > 0 {
		reserved := *flagRetain + len(*flagPrepend) + len(*flagAppend)
		if reserved >= *flagWidth {
			printer.Fprintf(os.Stderr, "invalidArg",
				fmt.Sprintf("retain (%d) + prepend (%d) + append (%d) must be less than width (%d)",
					*flagRetain, len(*flagPrepend), len(*flagAppend), *flagWidth))
			fmt.Fprintln(os.Stderr)
			return ExitUsageError
		}
	}

	homeDir, _ := os.UserHomeDir()
	dataDir := os.Getenv("REMARK_DATA_DIR")

	script, err := grammar.Load(scriptPath, homeDir, dataDir)
	if err != nil {
		msg := err.Error()
		var scriptErr *grammar.ScriptError
		if errors.As(err, &scriptErr) {
			msg = scriptErr.FullMessage()
		}
		printer.Fprintf(os.Stderr, "scriptParseError", msg)
		fmt.Fprintln(os.Stderr)
		return ExitUsageError
	}

	reader, err := openLineSource(textArgs)
	if err != nil {
		printer.Fprintf(os.Stderr, "ioError", err.Error())
		fmt.Fprintln(os.Stderr)
		return ExitRuntimeError
	}
	defer reader.Close()

	ri := engine.NewRemarkInput()
	out := os.Stdout

	for {
		line, err := reader.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			printer.Fprintf(os.Stderr, "ioError", err.Error())
			fmt.Fprintln(os.Stderr)
			return ExitRuntimeError
		}

		ri.ResetForLine(line, *flagPrepend, *flagAppend)
		if engine.ExecuteScript(script, ri) {
			opts := engine.WrapOptions{
				Width:   *flagWidth,
				Retain:  *flagRetain,
				Prepend: ri.Prepend.Buf.String(),
				Append:  ri.Append.Buf.String(),
				Mode:    mode,
			}
			fmt.Fprint(out, engine.Emit(ri, opts))
		}
		ri.ClearMainStyles()
	}

	return ExitSuccess
}

// parseWrapMode accepts a prefix of "none"/"char"/"word", optionally
// followed by a ":args" suffix (§6: "optional :args suffix is parsed and
// currently unused").
func parseWrapMode(s string) (engine.WrapMode, error) {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	s = strings.ToLower(s)
	switch {
	case strings.HasPrefix("none", s) && s != "":
		return engine.WrapNone, nil
	case strings.HasPrefix("char", s) && s != "":
		return engine.WrapChar, nil
	case strings.HasPrefix("word", s) && s != "":
		return engine.WrapWord, nil
	default:
		return engine.WrapNone, fmt.Errorf("unrecognized wrap mode %q", s)
	}
}

func openLineSource(textArgs []string) (lineinput.LineReader, error) {
	if len(textArgs) > 0 {
		return lineinput.NewArgsReader(textArgs), nil
	}
	if isatty.IsTerminal(os.Stdin.Fd()) {
		return lineinput.NewInteractiveReader()
	}
	return lineinput.NewDirectReader(os.Stdin), nil
}
