package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colony-go/internal/domain/colony"
)

func TestFormatItems(t *testing.T) {
	assert.Equal(t, "-", formatItems(nil))
	assert.Equal(t, "1,200 stone, 3 wood", formatItems(map[string]int{"wood": 3, "stone": 1200}))
}

func TestFormatWhen(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	later := now.Add(2 * time.Hour)

	assert.Equal(t, "-", formatWhen(nil, now))
	assert.Equal(t, "2 hours from now", formatWhen(&later, now))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "30m0s", formatDuration(1800000))
}

func TestWriteLogsCSV(t *testing.T) {
	// Arrange
	entries := []colony.LogEntry{
		{Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), Type: "settler_joined", Message: "Ada joined"},
		{Timestamp: time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC), Type: "assignment_completed", Message: "Scout, then rest"},
	}
	var buf bytes.Buffer

	// Act
	err := writeLogsCSV(&buf, entries)

	// Assert
	require.NoError(t, err)
	assert.Equal(t,
		"timestamp,type,message\n"+
			"2026-03-01T12:00:00Z,settler_joined,Ada joined\n"+
			"2026-03-01T13:00:00Z,assignment_completed,\"Scout, then rest\"\n",
		buf.String())
}

func TestMaskPassword(t *testing.T) {
	assert.Equal(t, "postgres://colony:xxxxx@db:5432/colony", maskPassword("postgres://colony:secret@db:5432/colony"))
	assert.Equal(t, "postgres://db/colony", maskPassword("postgres://db/colony"))
}
