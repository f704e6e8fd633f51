package langswitch

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type Program struct {
	Name    string
	Lang    string
	ExePath string

	dirty bool
}

func (p Program) Dirty() bool {
	return p.dirty
}

// Lister is safe for concurrent use.
type Lister struct {
	lock      sync.Mutex
	programs  []Program
	languages []string
	known     []string
	skipper   Skipper

	platform Platform
	procs    ProcessSource
	store    ConfigStore
	log      *zap.SugaredLogger
}

type ListerOption func(*Lister)

func WithLanguages(langs []string) ListerOption {
	return func(l *Lister) {
		if len(langs) > 0 {
			l.languages = langs
		}
	}
}

func WithKnownPrograms(names []string) ListerOption {
	return func(l *Lister) {
		l.known = names
	}
}

func WithSkipper(s Skipper) ListerOption {
	return func(l *Lister) {
		l.skipper = s
	}
}

func NewLister(
	platform Platform,
	procs ProcessSource,
	store ConfigStore,
	log *zap.SugaredLogger,
	opts ...ListerOption,
) *Lister {
	l := &Lister{
		languages: DefaultLanguages,
		known:     KnownPrograms,
		skipper:   NewSkipper(),
		platform:  platform,
		procs:     procs,
		store:     store,
		log:       log,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Programs returns a copy of the last scan.
func (l *Lister) Programs() []Program {
	l.lock.Lock()
	defer l.lock.Unlock()

	out := make([]Program, len(l.programs))
	copy(out, l.programs)
	return out
}

func (l *Lister) Languages() []string {
	return l.languages
}

func (l *Lister) Scan() error {
	l.lock.Lock()
	defer l.lock.Unlock()

	cfg, err := l.store.Load()
	if err != nil {
		l.log.Warnw("using empty configuration", "error", err)
		cfg = Config{}
	}

	processes, err := l.procs.Processes()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	visible, err := l.platform.VisibleWindowPIDs()
	if err != nil {
		l.log.Debugw("not filtering by visible windows", "error", err)
		visible = nil
	}
	filterByWindows := len(visible) > 0

	isVisible := func(pid int32) bool {
		if !filterByWindows {
			return true
		}
		_, ok := visible[pid]
		return ok
	}

	previous := make(map[string]Program, len(l.programs))
	for _, p := range l.programs {
		previous[strings.ToLower(p.Name)] = p
	}

	langFor := func(name string) (string, bool) {
		if p, ok := previous[strings.ToLower(name)]; ok {
			return p.Lang, p.dirty
		}
		return cfg.LanguageFor(name), false
	}

	seen := make(map[string]bool)
	var programs []Program

	for _, known := range l.known {
		for _, p := range processes {
			if !strings.EqualFold(p.Name, known) {
				continue
			}
			if !isVisible(p.PID) {
				continue
			}
			if l.skipper.Skip(p.Name, p.Exe) {
				break
			}

			key := processKey(p)
			if seen[key] {
				break
			}
			seen[key] = true

			lang, dirty := langFor(p.Name)
			programs = append(programs, Program{Name: p.Name, Lang: lang, ExePath: p.Exe, dirty: dirty})
			break
		}
	}

	var others []Process
	for _, p := range processes {
		if !isVisible(p.PID) {
			continue
		}
		if strings.TrimSpace(p.Name) == "" {
			continue
		}
		if l.skipper.Skip(p.Name, p.Exe) {
			continue
		}

		key := processKey(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		others = append(others, p)
	}

	sort.SliceStable(others, func(i, j int) bool {
		return strings.ToLower(others[i].Name) < strings.ToLower(others[j].Name)
	})

	for _, p := range others {
		lang, dirty := langFor(p.Name)
		programs = append(programs, Program{Name: p.Name, Lang: lang, ExePath: p.Exe, dirty: dirty})
	}

	l.programs = programs
	l.log.Debugw("scanned programs", "count", len(programs), "filtered", filterByWindows)

	return nil
}

// Toggle moves program i to the next configured language.
func (l *Lister) Toggle(i int) (string, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	if i < 0 || i >= len(l.programs) {
		return "", fmt.Errorf("program index %d out of range", i)
	}

	return l.toggle(i), nil
}

// ToggleByName is Toggle for the program called name. It is unaffected by a
// rescan reordering the list.
func (l *Lister) ToggleByName(name string) (string, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	for i, p := range l.programs {
		if strings.EqualFold(p.Name, name) {
			return l.toggle(i), nil
		}
	}

	return "", fmt.Errorf("program %q not listed", name)
}

func (l *Lister) toggle(i int) string {
	next := l.languages[0]
	for idx, lang := range l.languages {
		if lang == l.programs[i].Lang {
			next = l.languages[(idx+1)%len(l.languages)]
			break
		}
	}

	l.programs[i].Lang = next
	l.programs[i].dirty = true

	return next
}

func (l *Lister) Set(i int, lang string) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if i < 0 || i >= len(l.programs) {
		return fmt.Errorf("program index %d out of range", i)
	}

	l.programs[i].Lang = lang
	l.programs[i].dirty = true

	return nil
}

// Save merges toggled programs into the stored document, leaving every other
// entry as it was.
func (l *Lister) Save() error {
	l.lock.Lock()
	defer l.lock.Unlock()

	cfg, err := l.store.Load()
	if err != nil {
		l.log.Warnw("overwriting unreadable configuration", "error", err)
		cfg = nil
	}
	if cfg == nil {
		cfg = Config{}
	}

	changed := 0
	for _, p := range l.programs {
		if !p.dirty {
			continue
		}
		cfg.Set(p.Name, p.Lang)
		changed++
	}

	if changed == 0 {
		return nil
	}

	if err := l.store.Save(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	for i := range l.programs {
		l.programs[i].dirty = false
	}

	l.log.Infow("saved configuration", "changed", changed)

	return nil
}
