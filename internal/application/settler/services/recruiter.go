package services

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/andrescamacho/colony-go/internal/domain/catalog"
	"github.com/andrescamacho/colony-go/internal/domain/settler"
	"github.com/andrescamacho/colony-go/pkg/utils"
)

// Recruiter rolls new settlers and discovery draws from one random source.
// Handlers run concurrently under the daemon, so every draw is serialized.
type Recruiter struct {
	mu             sync.Mutex
	rng            *rand.Rand
	generator      *settler.Generator
	startingEnergy float64
	maxCarrySlots  int
}

// NewRecruiter creates a recruiter. A zero seed draws a random one.
func NewRecruiter(traits catalog.Traits, seed int64, startingEnergy float64, maxCarrySlots int) *Recruiter {
	var rng *rand.Rand
	if seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
	}
	return &Recruiter{
		rng:            rng,
		generator:      settler.NewGenerator(traits, rng),
		startingEnergy: startingEnergy,
		maxCarrySlots:  maxCarrySlots,
	}
}

// Float64 draws a uniform value in [0,1)
func (r *Recruiter) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// Recruit rolls a fresh idle settler for the colony
func (r *Recruiter) Recruit(colonyID string, now time.Time) (*settler.Settler, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generator.Generate(utils.GenerateID("settler"), colonyID, r.startingEnergy, r.maxCarrySlots, now)
}
