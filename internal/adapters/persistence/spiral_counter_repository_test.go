package persistence_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colony-go/internal/adapters/persistence"
	"github.com/andrescamacho/colony-go/test/helpers"
)

func TestSpiralCounterRepository_NextIndexIsPerServer(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	uow := persistence.NewGormUnitOfWork(db)
	repo := persistence.NewGormSpiralCounterRepository(db)

	next := func(serverID string) int {
		var idx int
		require.NoError(t, uow.Do(context.Background(), func(ctx context.Context) error {
			var err error
			idx, err = repo.NextIndex(ctx, serverID)
			return err
		}))
		return idx
	}

	// Act & Assert
	assert.Equal(t, 0, next("srv-1"))
	assert.Equal(t, 1, next("srv-1"))
	assert.Equal(t, 0, next("srv-2"))
	assert.Equal(t, 2, next("srv-1"))
}

func TestSpiralCounterRepository_RolledBackDrawIsReused(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	uow := persistence.NewGormUnitOfWork(db)
	repo := persistence.NewGormSpiralCounterRepository(db)
	boom := errors.New("boom")

	// Act
	err := uow.Do(context.Background(), func(ctx context.Context) error {
		idx, err := repo.NextIndex(ctx, "srv-1")
		require.NoError(t, err)
		assert.Equal(t, 0, idx)
		return boom
	})

	// Assert
	require.ErrorIs(t, err, boom)

	var idx int
	require.NoError(t, uow.Do(context.Background(), func(ctx context.Context) error {
		idx, err = repo.NextIndex(ctx, "srv-1")
		return err
	}))
	assert.Equal(t, 0, idx)
}
