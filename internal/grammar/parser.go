package grammar

import (
	"bytes"
	"os"

	"github.com/alecthomas/participle/v2"

	"github.com/dekarrin/remark/internal/engine"
)

var scriptParser = participle.MustBuild(
	&ScriptFile{},
	participle.Unquote("String"),
	participle.UseLookahead(4),
)

// ParseBytes parses the raw contents of a script file (filename is used only
// for error positions) into its AST, without doing any semantic linking.
func ParseBytes(filename string, src []byte) (*ScriptFile, error) {
	file := &ScriptFile{}
	if err := scriptParser.ParseBytes(filename, src, file); err != nil {
		return nil, parseError(filename, src, err)
	}
	return file, nil
}

// parseError adapts a raw participle error into a *ScriptError carrying a
// source position and the offending line's text, when the underlying error
// exposes a position -- the latter is what lets FullMessage render the
// source-line caret §7 promises.
func parseError(filename string, src []byte, err error) error {
	if perr, ok := err.(participle.Error); ok {
		pos := perr.Token().Pos
		return newSemanticError(filename, sourceLineAt(src, pos.Line), pos.Line, pos.Column, "%s", perr.Message())
	}
	return newSemanticError(filename, "", 0, 0, "%v", err)
}

// sourceLineAt returns the 1-indexed line's text from src, or "" if line is
// out of range.
func sourceLineAt(src []byte, line int) string {
	if line < 1 {
		return ""
	}
	lines := bytes.Split(src, []byte("\n"))
	if line > len(lines) {
		return ""
	}
	return string(lines[line-1])
}

// Load reads, parses and links the script file at path into a runnable
// engine.Script. homeDir and dataDir feed the INCLUDE search path (§6); pass
// "" for either to skip that stop.
func Load(path, homeDir, dataDir string) (*engine.Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	file, err := ParseBytes(path, data)
	if err != nil {
		return nil, err
	}
	return Build(file, path, homeDir, dataDir)
}
