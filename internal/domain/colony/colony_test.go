package colony_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colony-go/internal/domain/colony"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

var founded = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newColony(t *testing.T) *colony.Colony {
	c, err := colony.NewColony("c-1", "u-1", "srv-1", "Haven", "pve", "Alpha", 0,
		colony.Placement{Location: shared.NewLocation(1, 0), Layer: 1, Index: 1}, founded)
	require.NoError(t, err)
	return c
}

func TestNewColony(t *testing.T) {
	c := newColony(t)

	assert.Equal(t, colony.DefaultMaxInventory, c.MaxInventory())
	require.Len(t, c.Logs(), 1)
	assert.Equal(t, colony.LogColonyFounded, c.Logs()[0].Type)

	_, err := colony.NewColony("c-2", "", "srv-1", "Haven", "pve", "Alpha", 0, colony.Placement{}, founded)
	assert.True(t, shared.IsValidationError(err))
}

func TestAddLogEntry_KeepsMostRecent(t *testing.T) {
	c := newColony(t)

	for i := 0; i < 60; i++ {
		c.AddLogEntry(colony.LogAssignmentCompleted, fmt.Sprintf("entry %d", i), nil, founded.Add(time.Duration(i)*time.Minute))
	}

	logs := c.Logs()
	require.Len(t, logs, colony.MaxLogEntries)
	assert.Equal(t, "entry 10", logs[0].Message)
	assert.Equal(t, "entry 59", logs[len(logs)-1].Message)
}

func TestAddSettler_Idempotent(t *testing.T) {
	c := newColony(t)

	c.AddSettler("s-1")
	c.AddSettler("s-1")
	c.AddSettler("s-2")

	assert.Equal(t, 2, c.SettlerCount())
	assert.True(t, c.HasSettler("s-2"))
	assert.False(t, c.HasSettler("s-3"))
}

type unlockSource struct {
	counts bool
	tags   []string
}

func (u unlockSource) CountsTowardUnlocks() bool { return u.counts }
func (u unlockSource) UnlockTags() []string { return u.tags }

func TestUnlocks(t *testing.T) {
	unlocks := colony.Unlocks([]unlockSource{
		{counts: true, tags: []string{"ruins_scouted"}},
		{counts: false, tags: []string{"ruins_salvaged"}},
		{counts: true, tags: []string{"ruins_scouted", "well_dug"}},
	})

	assert.Equal(t, map[string]bool{"ruins_scouted": true, "well_dug": true}, unlocks)
}
