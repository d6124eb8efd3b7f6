// Package locale resolves the process's locale from LANG/LC_* and exposes a
// message.Printer for diagnostics, per §6: "LANG, LC_* - select the message
// translation used for diagnostics (a non-functional concern: the same
// diagnostic is produced in every case, just in a different language)."
package locale

import (
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	message.SetString(language.English, "scriptParseError", "error parsing script: %s")
	message.SetString(language.English, "scriptSemanticError", "error in script: %s")
	message.SetString(language.English, "regexCompileError", "bad regular expression: %s")
	message.SetString(language.English, "ioError", "I/O error: %s")
	message.SetString(language.English, "invalidArg", "invalid argument: %s")

	message.SetString(language.French, "scriptParseError", "erreur d'analyse du script : %s")
	message.SetString(language.French, "scriptSemanticError", "erreur dans le script : %s")
	message.SetString(language.French, "regexCompileError", "expression régulière invalide : %s")
	message.SetString(language.French, "ioError", "erreur d'E/S : %s")
	message.SetString(language.French, "invalidArg", "argument invalide : %s")
}

// FromEnvironment resolves the process locale the way glibc-based tools do:
// LC_ALL overrides LC_MESSAGES overrides LANG, first one set wins. An empty
// or unparsable value is skipped in favour of the next variable; if none
// yields a tag, the result is language.English.
func FromEnvironment() language.Tag {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		v = strings.SplitN(v, ".", 2)[0] // strip a trailing ".UTF-8"-style codeset
		v = strings.ReplaceAll(v, "_", "-")
		if tag, err := language.Parse(v); err == nil {
			return tag
		}
	}
	return language.English
}

// NewPrinter returns a message.Printer bound to the process locale, used by
// cmd/remark to render §7's diagnostic table.
func NewPrinter() *message.Printer {
	return message.NewPrinter(FromEnvironment())
}
