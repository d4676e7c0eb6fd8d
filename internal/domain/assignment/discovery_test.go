package assignment_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/colony-go/internal/domain/assignment"
	"github.com/andrescamacho/colony-go/internal/domain/catalog"
)

func TestBaseChance_ByType(t *testing.T) {
	assert.Equal(t, 0.05, assignment.BaseChance(assignment.TypeExploration, nil, 0))
	assert.Equal(t, 0.02, assignment.BaseChance(assignment.TypeFarming, nil, 0))
	assert.Equal(t, 0.0, assignment.BaseChance(assignment.TypeCrafting, nil, 0))
	assert.Equal(t, 0.03, assignment.BaseChance(assignment.TypeQuest, nil, 0))
	assert.Equal(t, 0.03, assignment.BaseChance(assignment.TypeCleaning, nil, 0))
}

func TestBaseChance_QuestBrackets(t *testing.T) {
	brackets := []catalog.DiscoveryBracket{{MaxSettlers: 2, Chance: 0.5}, {MaxSettlers: 5, Chance: 0.2}}

	assert.Equal(t, 0.5, assignment.BaseChance(assignment.TypeQuest, brackets, 1))
	assert.Equal(t, 0.5, assignment.BaseChance(assignment.TypeQuest, brackets, 2))
	assert.Equal(t, 0.2, assignment.BaseChance(assignment.TypeQuest, brackets, 3))
	assert.Equal(t, 0.0, assignment.BaseChance(assignment.TypeQuest, brackets, 6))
}

func TestDiscoveryChance_DiminishingReturns(t *testing.T) {
	assert.InDelta(t, 0.05, assignment.DiscoveryChance(assignment.TypeExploration, nil, 0), 1e-12)
	assert.InDelta(t, 0.035, assignment.DiscoveryChance(assignment.TypeExploration, nil, 3), 1e-12)
	assert.InDelta(t, 0.005, assignment.DiscoveryChance(assignment.TypeExploration, nil, 9), 1e-12)
	assert.InDelta(t, 0.005, assignment.DiscoveryChance(assignment.TypeExploration, nil, 40), 1e-12)
}

type fixedRoller float64

func (f fixedRoller) Float64() float64 { return float64(f) }

func TestRollDiscovery(t *testing.T) {
	assert.True(t, assignment.RollDiscovery(0.05, fixedRoller(0.049)))
	assert.False(t, assignment.RollDiscovery(0.05, fixedRoller(0.05)))
	assert.False(t, assignment.RollDiscovery(0, fixedRoller(0)))
}

func TestRollDiscovery_RateMatchesChance(t *testing.T) {
	rng := rand.New(rand.NewPCG(2026, 3))
	chance := assignment.DiscoveryChance(assignment.TypeQuest, []catalog.DiscoveryBracket{{MaxSettlers: 4, Chance: 0.5}}, 2)
	const trials = 10000

	hits := 0
	for i := 0; i < trials; i++ {
		if assignment.RollDiscovery(chance, rng) {
			hits++
		}
	}

	assert.InDelta(t, chance, float64(hits)/trials, 0.015)
}
