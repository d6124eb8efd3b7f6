package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func base(tag language.Tag) language.Base {
	b, _ := tag.Base()
	return b
}

func Test_FromEnvironment_prefersLCAllOverLCMessagesOverLANG(t *testing.T) {
	t.Setenv("LC_ALL", "fr_FR.UTF-8")
	t.Setenv("LC_MESSAGES", "en_US.UTF-8")
	t.Setenv("LANG", "en_US.UTF-8")

	assert.Equal(t, base(language.French), base(FromEnvironment()))
}

func Test_FromEnvironment_fallsBackToLANGWhenOthersUnset(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "fr_CA")

	assert.Equal(t, base(language.French), base(FromEnvironment()))
}

func Test_FromEnvironment_defaultsToEnglishWhenUnset(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "")

	assert.Equal(t, language.English, FromEnvironment())
}

func Test_FromEnvironment_unparsableValueFallsThroughToNextVar(t *testing.T) {
	t.Setenv("LC_ALL", "not a real locale!!")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "de_DE")

	assert.Equal(t, base(language.German), base(FromEnvironment()))
}

func Test_NewPrinter_returnsNonNilPrinter(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "en_US.UTF-8")

	p := NewPrinter()
	assert.NotNil(t, p)
}
