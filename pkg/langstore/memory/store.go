package memory

import (
	"codeberg.org/miketth/langswitcher/pkg/langswitch"
	"sync"
)

type LangStore struct {
	langs langswitch.Config
	saves int
	lock  sync.Mutex
}

func NewLangStore(initial langswitch.Config) *LangStore {
	if initial == nil {
		initial = langswitch.Config{}
	}
	return &LangStore{
		langs: initial.Clone(),
	}
}

func (s *LangStore) Load() (langswitch.Config, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.langs.Clone(), nil
}

func (s *LangStore) Save(cfg langswitch.Config) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.langs = cfg.Clone()
	s.saves++
	return nil
}

// Saves counts calls to Save.
func (s *LangStore) Saves() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.saves
}

func (s *LangStore) Close() error {
	return nil
}
