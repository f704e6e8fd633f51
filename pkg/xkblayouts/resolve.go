package xkblayouts

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

var ErrLayoutNotFound = errors.New("no xkb layout for language")

// evdev.xml mixes terminological and bibliographic ISO 639-2 codes.
var bibliographic = map[string]string{
	"fas": "per",
	"deu": "ger",
	"fra": "fre",
	"zho": "chi",
	"ces": "cze",
	"nld": "dut",
	"ell": "gre",
	"hye": "arm",
	"kat": "geo",
	"isl": "ice",
	"mkd": "mac",
	"msa": "may",
	"ron": "rum",
	"slk": "slo",
	"sqi": "alb",
	"mya": "bur",
	"eus": "baq",
	"cym": "wel",
	"bod": "tib",
}

var builtin = map[string]string{
	"en": "us",
	"fa": "ir",
	"ar": "ara",
	"de": "de",
	"fr": "fr",
	"es": "es",
	"ru": "ru",
	"uk": "ua",
	"tr": "tr",
	"he": "il",
}

// Resolver maps two-letter language tags to xkb layout codes.
type Resolver struct {
	registry *XkbConfigRegistry
}

// NewResolver works with a nil registry, falling back to a small built-in table.
func NewResolver(registry *XkbConfigRegistry) *Resolver {
	return &Resolver{registry: registry}
}

func (r *Resolver) Registry() *XkbConfigRegistry {
	return r.registry
}

// Layout returns the first layout whose short description is lang, or
// whose language list contains its ISO 639-2 code.
func (r *Resolver) Layout(lang string) (string, error) {
	lang = strings.ToLower(lang)

	if r.registry != nil {
		for _, l := range r.registry.LayoutList.Layout {
			if strings.EqualFold(l.ConfigItem.ShortDescription, lang) {
				return l.ConfigItem.Name, nil
			}
		}

		codes := iso3Codes(lang)
		for _, l := range r.registry.LayoutList.Layout {
			for _, id := range l.ConfigItem.LanguageList.ISO639 {
				if codes[strings.ToLower(id)] {
					return l.ConfigItem.Name, nil
				}
			}
		}
	}

	if layout, ok := builtin[lang]; ok {
		return layout, nil
	}

	return "", fmt.Errorf("%w: %q", ErrLayoutNotFound, lang)
}

func (r *Resolver) PrettyName(layout string) string {
	if r.registry == nil {
		return layout
	}
	if name := r.registry.Description(layout, ""); name != "" {
		return name
	}
	return layout
}

func iso3Codes(lang string) map[string]bool {
	codes := make(map[string]bool)

	base, err := language.ParseBase(lang)
	if err != nil {
		return codes
	}

	iso3 := base.ISO3()
	codes[iso3] = true
	if b, ok := bibliographic[iso3]; ok {
		codes[b] = true
	}

	return codes
}
