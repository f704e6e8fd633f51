package winapi

import (
	"fmt"

	"golang.org/x/text/language"
)

// localeName expands a two-letter tag to a Windows locale name using the
// likely region, "fa" becomes "fa-IR".
func localeName(lang string) (string, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return "", fmt.Errorf("parse language %q: %w", lang, err)
	}

	base, _ := tag.Base()
	region, _ := tag.Region()

	return base.String() + "-" + region.String(), nil
}

// klid formats a locale id as a keyboard layout id, 0x0429 becomes "00000429".
func klid(lcid uint32) string {
	return fmt.Sprintf("%08X", lcid&0xFFFF)
}
