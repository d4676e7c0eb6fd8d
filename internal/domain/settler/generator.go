package settler

import (
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/andrescamacho/colony-go/internal/domain/catalog"
)

// Skills every generated settler gets a level in
var generatedSkills = []string{"scavenging", "farming", "crafting", "combat", "medicine"}

var firstNames = []string{
	"Ada", "Bram", "Cora", "Dax", "Edda", "Finn", "Greta", "Hale", "Ines", "Jory",
	"Kara", "Lio", "Mira", "Nils", "Orla", "Pax", "Quin", "Rhea", "Sven", "Tova",
}

// Generator rolls new settlers for onboarding and discovery. Stats follow a
// normal distribution around the middle of the 0-20 range, skills sit lower.
type Generator struct {
	traits    catalog.Traits
	rng       *rand.Rand
	stats     distuv.Normal
	skills    distuv.Normal
	maxTraits int
}

// NewGenerator creates a generator drawing from rng
func NewGenerator(traits catalog.Traits, rng *rand.Rand) *Generator {
	return &Generator{
		traits:    traits,
		rng:       rng,
		stats:     distuv.Normal{Mu: 10, Sigma: 4, Src: rng},
		skills:    distuv.Normal{Mu: 5, Sigma: 3, Src: rng},
		maxTraits: 2,
	}
}

// Generate rolls one idle settler for the colony
func (g *Generator) Generate(id, colonyID string, energy float64, maxCarrySlots int, now time.Time) (*Settler, error) {
	stats := Stats{
		Strength:     g.roll(g.stats),
		Speed:        g.roll(g.stats),
		Intelligence: g.roll(g.stats),
		Resilience:   g.roll(g.stats),
	}

	skills := make(map[string]int, len(generatedSkills))
	for _, name := range generatedSkills {
		skills[name] = g.roll(g.skills)
	}

	name := firstNames[g.rng.IntN(len(firstNames))]
	return NewSettler(id, colonyID, name, stats, skills, g.pickTraits(), energy, maxCarrySlots, now)
}

func (g *Generator) roll(d distuv.Normal) int {
	v := int(math.Round(d.Rand()))
	return clampAttribute(v)
}

// pickTraits draws up to maxTraits distinct catalog traits
func (g *Generator) pickTraits() []Trait {
	all := g.traits.AllTraits()
	if len(all) == 0 {
		return nil
	}

	n := g.rng.IntN(g.maxTraits + 1)
	if n > len(all) {
		n = len(all)
	}

	picked := g.rng.Perm(len(all))[:n]
	sort.Ints(picked)

	traits := make([]Trait, 0, n)
	for _, i := range picked {
		traits = append(traits, Trait{ID: all[i].ID, Name: all[i].Name, Effect: all[i].Effect})
	}
	return traits
}

func sortedItemIDs(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
