package hyprland

import (
	"strings"
)

type Keyboard struct {
	Name     string
	Layouts  []string
	Variants []string
	Active   string
	Main     bool
}

type keyboard struct {
	Name         string `json:"name"`
	Layout       string `json:"layout"`
	Variant      string `json:"variant"`
	Options      string `json:"options"`
	ActiveKeymap string `json:"active_keymap"`
	Main         bool   `json:"main"`
}

type devices struct {
	Keyboards []keyboard `json:"keyboards"`
}

type Window struct {
	Address string `json:"address"`
	Mapped  bool   `json:"mapped"`
	Hidden  bool   `json:"hidden"`
	Class   string `json:"class"`
	Title   string `json:"title"`
	PID     int32  `json:"pid"`
}

func (k keyboard) ToKeyboard() Keyboard {
	layouts := strings.Split(k.Layout, ",")
	variants := strings.Split(k.Variant, ",")
	for len(variants) < len(layouts) {
		variants = append(variants, "")
	}

	return Keyboard{
		Name:     k.Name,
		Layouts:  layouts,
		Variants: variants,
		Active:   k.ActiveKeymap,
		Main:     k.Main,
	}
}

// LayoutIndex returns the index of layout among the keyboard's layouts,
// ignoring variants.
func (k Keyboard) LayoutIndex(layout string) (int, bool) {
	for i, l := range k.Layouts {
		if strings.TrimSpace(l) == layout {
			return i, true
		}
	}
	return -1, false
}
