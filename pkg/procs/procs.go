package procs

import (
	"codeberg.org/miketth/langswitcher/pkg/langswitch"
	"fmt"
	"github.com/shirou/gopsutil/v3/process"
	"os"
	"strings"
)

// Source lists processes through gopsutil.
type Source struct{}

var _ langswitch.ProcessSource = Source{}

func NewSource() Source {
	return Source{}
}

// Processes skips entries that vanish or deny access mid-scan.
func (Source) Processes() ([]langswitch.Process, error) {
	list, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	out := make([]langswitch.Process, 0, len(list))
	for _, p := range list {
		proc, err := describe(p)
		if err != nil {
			continue
		}
		out = append(out, proc)
	}

	return out, nil
}

func (Source) Process(pid int32) (langswitch.Process, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return langswitch.Process{}, fmt.Errorf("open process %d: %w", pid, err)
	}

	return describe(p)
}

func describe(p *process.Process) (langswitch.Process, error) {
	name, err := p.Name()
	if err != nil {
		return langswitch.Process{}, fmt.Errorf("process %d name: %w", p.Pid, err)
	}

	// exe needs more privileges than the name; an empty path is fine
	exe, _ := p.Exe()

	return langswitch.Process{
		PID:  p.Pid,
		Name: name,
		Exe:  exe,
	}, nil
}

// FindByName returns every process whose name matches one of names
// case-insensitively, excluding the calling process.
func FindByName(names ...string) ([]*process.Process, error) {
	list, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	self := int32(os.Getpid())

	var out []*process.Process
	for _, p := range list {
		if p.Pid == self {
			continue
		}

		name, err := p.Name()
		if err != nil {
			continue
		}

		for _, n := range names {
			if strings.EqualFold(name, n) {
				out = append(out, p)
				break
			}
		}
	}

	return out, nil
}
