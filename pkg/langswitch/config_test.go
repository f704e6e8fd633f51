package langswitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCaseInsensitive(t *testing.T) {
	cfg := Config{"Code.exe": "fa", "firefox.exe": "en"}

	lang, ok := cfg.Lookup("code.EXE")
	assert.True(t, ok)
	assert.Equal(t, "fa", lang)

	lang, ok = cfg.Lookup("firefox.exe")
	assert.True(t, ok)
	assert.Equal(t, "en", lang)

	_, ok = cfg.Lookup("opera.exe")
	assert.False(t, ok)
}

func TestLookupPrefersExactMatch(t *testing.T) {
	cfg := Config{"code": "en", "Code": "fa"}

	lang, ok := cfg.Lookup("Code")
	assert.True(t, ok)
	assert.Equal(t, "fa", lang)
}

func TestLanguageForDefaults(t *testing.T) {
	assert.Equal(t, DefaultLanguage, Config{}.LanguageFor("anything"))
	assert.Equal(t, DefaultLanguage, Config(nil).LanguageFor("anything"))
}

func TestSetReplacesCaseVariants(t *testing.T) {
	cfg := Config{"code.exe": "en", "other": "en"}
	cfg.Set("Code.exe", "fa")

	assert.Equal(t, Config{"Code.exe": "fa", "other": "en"}, cfg)
}

func TestNormalizeLanguage(t *testing.T) {
	cases := map[string]string{
		"en":    "en",
		"EN":    "en",
		"en-US": "en",
		"fa_IR": "fa",
		" de ":  "de",
	}
	for in, want := range cases {
		got, err := NormalizeLanguage(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "not a language", "und"} {
		_, err := NormalizeLanguage(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseLanguages(t *testing.T) {
	langs, err := ParseLanguages("en, FA,en-GB,")
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "fa"}, langs)

	_, err = ParseLanguages(" , ")
	assert.Error(t, err)
}
