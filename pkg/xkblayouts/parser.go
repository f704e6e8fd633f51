package xkblayouts

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

const DefaultEvdevPath = "/usr/share/X11/xkb/rules/evdev.xml"

func ParseLayouts(path string) (*XkbConfigRegistry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

func Parse(r io.Reader) (*XkbConfigRegistry, error) {
	registry := &XkbConfigRegistry{}
	if err := xml.NewDecoder(r).Decode(registry); err != nil {
		return nil, fmt.Errorf("decode xml: %w", err)
	}

	return registry, nil
}

func (r *XkbConfigRegistry) layout(name string) (Layout, bool) {
	for _, l := range r.LayoutList.Layout {
		if l.ConfigItem.Name == name {
			return l, true
		}
	}
	return Layout{}, false
}

// Description is the human readable name Hyprland reports as active_keymap.
// An empty variant is the layout itself.
func (r *XkbConfigRegistry) Description(layout, variant string) string {
	l, ok := r.layout(layout)
	switch {
	case !ok:
		return ""
	case variant == "":
		return l.ConfigItem.Description
	}

	for _, v := range l.VariantList.Variant {
		if v.ConfigItem.Name == variant {
			return v.ConfigItem.Description
		}
	}
	return ""
}

// ByDescription is the inverse of Description.
func (r *XkbConfigRegistry) ByDescription(description string) (layout, variant string, ok bool) {
	for _, l := range r.LayoutList.Layout {
		if l.ConfigItem.Description == description {
			return l.ConfigItem.Name, "", true
		}

		for _, v := range l.VariantList.Variant {
			if v.ConfigItem.Description == description {
				return l.ConfigItem.Name, v.ConfigItem.Name, true
			}
		}
	}

	return "", "", false
}
