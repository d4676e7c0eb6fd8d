package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colony-go/internal/adapters/persistence"
	"github.com/andrescamacho/colony-go/internal/domain/assignment"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
	"github.com/andrescamacho/colony-go/test/helpers"
)

func startedAssignment(t *testing.T, id string, duration time.Duration, startAt time.Time) *assignment.Assignment {
	t.Helper()
	a, err := assignment.New(id, "colony-1", assignment.TypeResting, "Rest", duration.Milliseconds(), nil, nil, t0)
	require.NoError(t, err)
	require.NoError(t, a.Start("settler-"+id, assignment.Adjustments{
		AdjustedDuration: duration.Milliseconds(),
		EffectiveSpeed:   1,
		LootMultiplier:   1,
	}, nil, startAt))
	return a
}

func TestAssignmentRepository_TemplateRoundTrip(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	tables := helpers.NewTestCatalog(t)
	repo := persistence.NewGormAssignmentRepository(db)
	ctx := context.Background()

	def, err := tables.Task("salvage_ruins")
	require.NoError(t, err)
	a, err := assignment.NewFromTemplate("assignment-1", "colony-1", def, t0)
	require.NoError(t, err)

	// Act
	require.NoError(t, repo.Add(ctx, a))
	found, err := repo.FindByColonyAndTask(ctx, "colony-1", "salvage_ruins")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "assignment-1", found.ID())
	assert.Equal(t, assignment.StateAvailable, found.State())
	assert.Equal(t, def.Dependencies, found.Dependencies())
	assert.Equal(t, def.Rewards, found.PlannedRewards())
	assert.Nil(t, found.StartedAt())
}

func TestAssignmentRepository_DuplicateTaskPerColony(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	tables := helpers.NewTestCatalog(t)
	repo := persistence.NewGormAssignmentRepository(db)
	ctx := context.Background()

	def, err := tables.Task("scout_ruins")
	require.NoError(t, err)
	first, err := assignment.NewFromTemplate("assignment-1", "colony-1", def, t0)
	require.NoError(t, err)
	second, err := assignment.NewFromTemplate("assignment-2", "colony-1", def, t0)
	require.NoError(t, err)
	other, err := assignment.NewFromTemplate("assignment-3", "colony-2", def, t0)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, first))

	// Act
	dupErr := repo.Add(ctx, second)
	otherErr := repo.Add(ctx, other)

	// Assert
	assert.ErrorIs(t, dupErr, shared.ErrDuplicateIndex)
	assert.NoError(t, otherErr)
}

func TestAssignmentRepository_OnDemandAssignmentsDoNotCollide(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormAssignmentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, startedAssignment(t, "a", time.Hour, t0)))
	require.NoError(t, repo.Add(ctx, startedAssignment(t, "b", time.Hour, t0)))

	all, err := repo.FindByColony(ctx, "colony-1")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAssignmentRepository_FindDueOrdersByCompletion(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormAssignmentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, startedAssignment(t, "late", 2*time.Hour, t0)))
	require.NoError(t, repo.Add(ctx, startedAssignment(t, "early", 30*time.Minute, t0)))
	require.NoError(t, repo.Add(ctx, startedAssignment(t, "future", 5*time.Hour, t0)))

	// Act
	due, err := repo.FindDue(ctx, "colony-1", t0.Add(3*time.Hour))

	// Assert
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "early", due[0].ID())
	assert.Equal(t, "late", due[1].ID())
	require.NotNil(t, due[0].Adjustments())
	assert.Equal(t, (30 * time.Minute).Milliseconds(), due[0].Adjustments().AdjustedDuration)
}

func TestAssignmentRepository_SaveTransitions(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormAssignmentRepository(db)
	ctx := context.Background()
	a := startedAssignment(t, "a", time.Hour, t0)
	require.NoError(t, repo.Add(ctx, a))

	// Act
	require.NoError(t, a.Complete())
	require.NoError(t, repo.Save(ctx, a))
	due, err := repo.FindDue(ctx, "colony-1", t0.Add(2*time.Hour))

	// Assert
	require.NoError(t, err)
	assert.Empty(t, due)

	found, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, assignment.StateCompleted, found.State())
}

func TestAssignmentRepository_FindByIDNotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormAssignmentRepository(db)

	_, err := repo.FindByID(context.Background(), "missing")

	assert.ErrorIs(t, err, shared.ErrAssignmentNotFound)
}
