package assignment

import "github.com/andrescamacho/colony-go/internal/domain/catalog"

// Base settler-discovery chances by assignment type
const (
	ChanceExploration = 0.05
	ChanceFarming     = 0.02
	ChanceCrafting    = 0.0
	ChanceDefault     = 0.03

	minDiminishingFactor = 0.1
	diminishingStep      = 0.1
)

// Roller draws uniform values in [0,1). *rand.Rand satisfies it.
type Roller interface {
	Float64() float64
}

// BaseChance returns the pre-diminishing discovery chance. Quest brackets,
// when defined, replace the type chance: the first bracket whose MaxSettlers
// covers the current count wins, and a colony beyond every bracket gets 0.
//
// Exploration does not vary by terrain.
func BaseChance(t Type, brackets []catalog.DiscoveryBracket, settlerCount int) float64 {
	if len(brackets) > 0 {
		for _, b := range brackets {
			if settlerCount <= b.MaxSettlers {
				return b.Chance
			}
		}
		return 0
	}

	switch t {
	case TypeExploration:
		return ChanceExploration
	case TypeFarming:
		return ChanceFarming
	case TypeCrafting:
		return ChanceCrafting
	default:
		return ChanceDefault
	}
}

// DiscoveryChance applies diminishing returns for larger colonies
func DiscoveryChance(t Type, brackets []catalog.DiscoveryBracket, settlerCount int) float64 {
	factor := 1 - diminishingStep*float64(settlerCount)
	if factor < minDiminishingFactor {
		factor = minDiminishingFactor
	}
	return BaseChance(t, brackets, settlerCount) * factor
}

// RollDiscovery makes a single uniform draw against chance
func RollDiscovery(chance float64, roller Roller) bool {
	if chance <= 0 {
		return false
	}
	return roller.Float64() < chance
}
