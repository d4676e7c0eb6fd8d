package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_FailedRunReleasesPIDFile(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	pidPath := filepath.Join(dir, "colony-daemon.pid")
	configPath := filepath.Join(dir, "config.yaml")
	// An unmigrated in-memory database makes the sweep fail
	require.NoError(t, os.WriteFile(configPath, []byte(`
database:
  type: sqlite
  path: ":memory:"
  skip_migrations: true
daemon:
  pid_file: `+pidPath+`
logging:
  level: error
  output: stderr
`), 0o600))

	// Act
	code := execute(configPath, true)

	// Assert
	assert.Equal(t, 1, code)
	assert.NoFileExists(t, pidPath)
}

func TestExecute_UnreadableConfigFails(t *testing.T) {
	code := execute(filepath.Join(t.TempDir(), "missing.yaml"), true)

	assert.Equal(t, 1, code)
}
