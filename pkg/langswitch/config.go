package langswitch

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

const DefaultLanguage = "en"

var DefaultLanguages = []string{"en", "fa"}

// Config maps an executable name to a language tag.
type Config map[string]string

// Lookup tries the exact name first, then a case-insensitive match.
func (c Config) Lookup(name string) (string, bool) {
	if lang, ok := c[name]; ok {
		return lang, true
	}

	for k, lang := range c {
		if strings.EqualFold(k, name) {
			return lang, true
		}
	}

	return "", false
}

func (c Config) LanguageFor(name string) string {
	if lang, ok := c.Lookup(name); ok {
		return lang
	}
	return DefaultLanguage
}

// Set stores lang under name, replacing keys that differ only in case.
func (c Config) Set(name, lang string) {
	for k := range c {
		if k != name && strings.EqualFold(k, name) {
			delete(c, k)
		}
	}
	c[name] = lang
}

func (c Config) Clone() Config {
	out := make(Config, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// NormalizeLanguage turns "EN", "en-US" or "fa_IR" into the two-letter base code.
func NormalizeLanguage(tag string) (string, error) {
	tag = strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
	if tag == "" {
		return "", fmt.Errorf("empty language tag")
	}

	parsed, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("parse language %q: %w", tag, err)
	}

	base, confidence := parsed.Base()
	if confidence != language.Exact {
		return "", fmt.Errorf("unknown language %q", tag)
	}

	return base.String(), nil
}

// ParseLanguages normalizes a comma separated list, dropping duplicates.
func ParseLanguages(list string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		lang, err := NormalizeLanguage(part)
		if err != nil {
			return nil, err
		}
		if seen[lang] {
			continue
		}
		seen[lang] = true
		out = append(out, lang)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no languages in %q", list)
	}

	return out, nil
}
