package pidfile_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colony-go/internal/infrastructure/pidfile"
)

func TestAcquireAndRelease(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "daemon.pid")
	pf := pidfile.New(path)

	// Act
	require.NoError(t, pf.Acquire())

	// Assert
	owner, err := pf.Owner()
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), owner)

	require.NoError(t, pf.Release())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestAcquire_ReplacesStaleFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "daemon.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid\n"), 0644))
	pf := pidfile.New(path)

	// Act
	err := pf.Acquire()

	// Assert
	require.NoError(t, err)
	owner, err := pf.Owner()
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), owner)
}

func TestAcquire_RejectsLiveOwner(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "daemon.pid")
	parent := os.Getppid()
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("%d\n", parent)), 0644))
	pf := pidfile.New(path)

	// Act
	err := pf.Acquire()

	// Assert
	assert.ErrorIs(t, err, pidfile.ErrAlreadyRunning)
}

func TestRelease_LeavesForeignFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "daemon.pid")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("%d\n", os.Getppid())), 0644))
	pf := pidfile.New(path)

	// Act
	require.NoError(t, pf.Release())

	// Assert
	_, err := os.Stat(path)
	assert.NoError(t, err)
}
