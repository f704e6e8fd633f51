package x11

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

type runner func(name string, args ...string) (string, error)

func runCommand(name string, args ...string) (string, error) {
	var stdout bytes.Buffer

	cmd := exec.Command(name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stdout

	err := cmd.Run()
	out := strings.TrimSpace(stdout.String())
	if err != nil {
		return "", fmt.Errorf("%s: %w, output: %s", name, err, out)
	}

	return out, nil
}

// parseQuery reads the layout and variant lines of `setxkbmap -query`.
func parseQuery(out string) ([]string, []string) {
	var layouts, variants []string
	for _, line := range strings.Split(out, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.TrimSpace(key) {
		case "layout":
			layouts = strings.Split(value, ",")
		case "variant":
			variants = strings.Split(value, ",")
		}
	}

	for len(variants) < len(layouts) {
		variants = append(variants, "")
	}

	return layouts, variants[:len(layouts)]
}

// rotate moves target to the front keeping the cyclic order of the rest, so
// group switching keys keep working. A missing target is prepended.
func rotate(layouts, variants []string, target string) ([]string, []string) {
	idx := -1
	for i, l := range layouts {
		if l == target {
			idx = i
			break
		}
	}

	if idx == -1 {
		return append([]string{target}, layouts...), append([]string{""}, variants...)
	}

	outL := append(append([]string{}, layouts[idx:]...), layouts[:idx]...)
	outV := append(append([]string{}, variants[idx:]...), variants[:idx]...)

	return outL, outV
}
