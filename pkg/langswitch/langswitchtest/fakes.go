// Package langswitchtest provides in-memory platform and process fakes.
package langswitchtest

import (
	"codeberg.org/miketth/langswitcher/pkg/langswitch"
	"fmt"
	"sync"
)

// Switch is one recorded SwitchLayout call.
type Switch struct {
	PID  int32
	Lang string
}

// Platform is a langswitch.Platform whose foreground pid is set with Focus.
type Platform struct {
	lock       sync.Mutex
	foreground int32
	fgErr      error
	visible    map[int32]struct{}
	switchErr  error
	switches   []Switch
}

var _ langswitch.Platform = (*Platform)(nil)

func NewPlatform(visible ...int32) *Platform {
	p := &Platform{visible: make(map[int32]struct{})}
	for _, pid := range visible {
		p.visible[pid] = struct{}{}
	}
	return p
}

func (p *Platform) Focus(pid int32) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.foreground = pid
	p.fgErr = nil
}

func (p *Platform) FailForeground(err error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.fgErr = err
}

func (p *Platform) FailSwitch(err error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.switchErr = err
}

func (p *Platform) Switches() []Switch {
	p.lock.Lock()
	defer p.lock.Unlock()
	out := make([]Switch, len(p.switches))
	copy(out, p.switches)
	return out
}

func (p *Platform) ForegroundPID() (int32, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.fgErr != nil {
		return 0, p.fgErr
	}
	if p.foreground == 0 {
		return 0, fmt.Errorf("no foreground window")
	}
	return p.foreground, nil
}

func (p *Platform) VisibleWindowPIDs() (map[int32]struct{}, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	out := make(map[int32]struct{}, len(p.visible))
	for pid := range p.visible {
		out[pid] = struct{}{}
	}
	return out, nil
}

// SwitchLayout records every call, failed ones included.
func (p *Platform) SwitchLayout(pid int32, lang string) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.switches = append(p.switches, Switch{PID: pid, Lang: lang})
	return p.switchErr
}

func (p *Platform) Close() error {
	return nil
}

// Processes is a fixed process table that tests can grow with Add.
type Processes struct {
	lock  sync.Mutex
	procs []langswitch.Process
}

var _ langswitch.ProcessSource = (*Processes)(nil)

func NewProcesses(procs ...langswitch.Process) *Processes {
	return &Processes{procs: procs}
}

func (s *Processes) Add(p langswitch.Process) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.procs = append(s.procs, p)
}

func (s *Processes) Processes() ([]langswitch.Process, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	out := make([]langswitch.Process, len(s.procs))
	copy(out, s.procs)
	return out, nil
}

func (s *Processes) Process(pid int32) (langswitch.Process, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	for _, p := range s.procs {
		if p.PID == pid {
			return p, nil
		}
	}
	return langswitch.Process{}, fmt.Errorf("process %d not found", pid)
}
