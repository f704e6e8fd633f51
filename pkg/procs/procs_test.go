package procs

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessSelf(t *testing.T) {
	pid := int32(os.Getpid())

	p, err := NewSource().Process(pid)
	require.NoError(t, err)
	assert.Equal(t, pid, p.PID)
	assert.NotEmpty(t, p.Name)
}

func TestProcessesIncludesSelf(t *testing.T) {
	pid := int32(os.Getpid())

	list, err := NewSource().Processes()
	require.NoError(t, err)

	found := false
	for _, p := range list {
		if p.PID == pid {
			found = true
			break
		}
	}
	assert.True(t, found)
}

func TestFindByNameExcludesSelf(t *testing.T) {
	self, err := NewSource().Process(int32(os.Getpid()))
	require.NoError(t, err)

	found, err := FindByName(strings.ToUpper(self.Name))
	require.NoError(t, err)
	for _, p := range found {
		assert.NotEqual(t, int32(os.Getpid()), p.Pid)
	}
}
