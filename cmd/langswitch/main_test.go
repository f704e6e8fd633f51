package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestSetGetUnset(t *testing.T) {
	for _, kind := range []string{"json", "sqlite"} {
		t.Run(kind, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "lang_config."+kind)
			flags := []string{"--store", kind, "--config", path}

			_, err := execute(t, append([]string{"set", "Code.exe", "FA_ir"}, flags...)...)
			require.NoError(t, err)

			out, err := execute(t, append([]string{"get", "code.exe"}, flags...)...)
			require.NoError(t, err)
			assert.Equal(t, "fa", out)

			_, err = execute(t, append([]string{"unset", "CODE.EXE"}, flags...)...)
			require.NoError(t, err)

			out, err = execute(t, append([]string{"get", "Code.exe"}, flags...)...)
			require.NoError(t, err)
			assert.Equal(t, "en", out)

			_, err = execute(t, append([]string{"unset", "Code.exe"}, flags...)...)
			assert.Error(t, err)
		})
	}
}

func TestSetKeepsOtherEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lang_config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"telegram.exe": "fa"}`), 0644))

	_, err := execute(t, "--config", path, "set", "Code.exe", "en")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"Code.exe\": \"en\",\n  \"telegram.exe\": \"fa\"\n}\n", string(data))
}

func TestSetRejectsUnknownLanguage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lang_config.json")

	_, err := execute(t, "--config", path, "set", "Code.exe", "klingon!")
	assert.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lang_config.json")

	out, err := execute(t, "--config", path, "path")
	require.NoError(t, err)
	assert.Equal(t, path, out)
}

func TestBadLanguagesFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lang_config.json")

	_, err := execute(t, "--config", path, "--languages", ",", "path")
	assert.Error(t, err)
}
