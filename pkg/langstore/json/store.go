package json

import (
	"bytes"
	"codeberg.org/miketth/langswitcher/pkg/langswitch"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type LangStore struct {
	filename string
	langs    langswitch.Config
	lock     sync.Mutex
	dirty    bool
}

func NewLangStore(filename string) (*LangStore, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	return &LangStore{
		filename: filename,
		langs:    langswitch.Config{},
	}, nil
}

func (s *LangStore) Path() string {
	return s.filename
}

func (s *LangStore) Close() error {
	return s.Flush()
}

// Load re-reads the document from disk. A missing file is an empty mapping,
// a corrupt one is an empty mapping and an error wrapping ErrCorrupt.
func (s *LangStore) Load() (langswitch.Config, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	langs, err := s.read()
	s.langs = langs
	s.dirty = false

	return langs.Clone(), err
}

func (s *LangStore) read() (langswitch.Config, error) {
	data, err := os.ReadFile(s.filename)
	if errors.Is(err, os.ErrNotExist) {
		return langswitch.Config{}, nil
	}
	if err != nil {
		return langswitch.Config{}, fmt.Errorf("read file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return langswitch.Config{}, nil
	}

	langs := langswitch.Config{}
	if err := json.Unmarshal(data, &langs); err != nil {
		return langswitch.Config{}, fmt.Errorf("decode json: %w: %w", langswitch.ErrCorrupt, err)
	}
	if langs == nil {
		// a literal null document
		langs = langswitch.Config{}
	}

	return langs, nil
}

func (s *LangStore) Save(cfg langswitch.Config) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.langs = cfg.Clone()
	s.dirty = true

	return s.write()
}

func (s *LangStore) Get(name string) (string, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.langs.Lookup(name)
}

func (s *LangStore) Set(name, lang string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.langs == nil {
		s.langs = langswitch.Config{}
	}
	s.langs.Set(name, lang)
	s.dirty = true
}

func (s *LangStore) Delete(name string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	found := false
	for k := range s.langs {
		if strings.EqualFold(k, name) {
			delete(s.langs, k)
			found = true
		}
	}
	if found {
		s.dirty = true
	}

	return found
}

// Flush writes pending Set and Delete calls.
func (s *LangStore) Flush() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.write()
}

func (s *LangStore) write() error {
	if !s.dirty {
		return nil
	}

	data, err := json.MarshalIndent(s.langs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.filename), ".lang_config-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.filename); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}

	s.dirty = false

	return nil
}
