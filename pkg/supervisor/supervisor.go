package supervisor

import (
	"codeberg.org/miketth/langswitcher/pkg/procs"
	"errors"
	"fmt"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
)

const WatcherName = "langwatcher"

var ErrBinaryNotFound = errors.New("watcher binary not found")

// Supervisor starts and stops the watcher as a separate OS process.
type Supervisor struct {
	name   string
	dir    string
	finder func(names ...string) ([]killer, error)
	log    *zap.SugaredLogger

	lock  sync.Mutex
	child *exec.Cmd
	done  chan struct{}
}

type killer interface {
	Kill() error
}

func New(log *zap.SugaredLogger) *Supervisor {
	dir := "."
	if exe, err := os.Executable(); err == nil {
		dir = filepath.Dir(exe)
	}

	return &Supervisor{
		name:   WatcherName,
		dir:    dir,
		finder: findProcesses,
		log:    log,
	}
}

func findProcesses(names ...string) ([]killer, error) {
	found, err := procs.FindByName(names...)
	if err != nil {
		return nil, err
	}

	out := make([]killer, 0, len(found))
	for _, p := range found {
		out = append(out, p)
	}
	return out, nil
}

func (s *Supervisor) names() []string {
	return []string{s.name, s.name + ".exe"}
}

func (s *Supervisor) binaryName() string {
	if runtime.GOOS == "windows" {
		return s.name + ".exe"
	}
	return s.name
}

// Candidates lists where the watcher binary is looked up, in order.
func (s *Supervisor) Candidates() []string {
	bin := s.binaryName()
	return []string{
		filepath.Join(s.dir, bin),
		filepath.Join(s.dir, "target", "release", bin),
		filepath.Join(s.dir, "target", "debug", bin),
	}
}

func (s *Supervisor) ownChildRunning() bool {
	if s.child == nil {
		return false
	}
	select {
	case <-s.done:
		s.child = nil
		return false
	default:
		return true
	}
}

// Running reports whether any watcher process exists, ours or not.
func (s *Supervisor) Running() bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.ownChildRunning() {
		return true
	}

	found, err := s.finder(s.names()...)
	if err != nil {
		s.log.Debugw("look up watcher", "error", err)
		return false
	}
	return len(found) > 0
}

func (s *Supervisor) Start() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.ownChildRunning() {
		return nil
	}

	if found, err := s.finder(s.names()...); err == nil && len(found) > 0 {
		s.log.Info("watcher already running externally, not spawning")
		return nil
	}

	for _, cand := range s.Candidates() {
		if _, err := os.Stat(cand); err != nil {
			s.log.Debugw("watcher candidate not found", "path", cand)
			continue
		}

		cmd := exec.Command(cand)
		cmd.SysProcAttr = sysProcAttr()
		if err := cmd.Start(); err != nil {
			s.log.Warnw("spawn watcher", "path", cand, "error", err)
			continue
		}

		done := make(chan struct{})
		go func() {
			_ = cmd.Wait()
			close(done)
		}()

		s.child = cmd
		s.done = done
		s.log.Infow("watcher started", "path", cand, "pid", cmd.Process.Pid)

		return nil
	}

	return fmt.Errorf("%w in %s", ErrBinaryNotFound, s.dir)
}

// Stop kills the watcher we spawned, or failing that every watcher found by
// name.
func (s *Supervisor) Stop() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.ownChildRunning() {
		if err := s.child.Process.Kill(); err != nil {
			return fmt.Errorf("kill spawned watcher: %w", err)
		}
		<-s.done
		s.child = nil
		s.log.Info("stopped spawned watcher")
		return nil
	}

	found, err := s.finder(s.names()...)
	if err != nil {
		return fmt.Errorf("look up watcher: %w", err)
	}

	var errs error
	for _, p := range found {
		errs = multierr.Append(errs, p.Kill())
	}
	if errs != nil {
		return fmt.Errorf("kill watcher: %w", errs)
	}

	s.log.Infow("stopped watcher processes", "count", len(found))
	return nil
}
