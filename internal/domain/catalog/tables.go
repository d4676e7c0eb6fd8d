package catalog

import (
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
)

// UnknownIDError is returned for lookups of ids that are not in a table.
// Suggestion holds the closest known id when one is near enough.
type UnknownIDError struct {
	Table      string
	ID         string
	Suggestion string
}

func (e *UnknownIDError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown %s %q (did you mean %q?)", e.Table, e.ID, e.Suggestion)
	}
	return fmt.Sprintf("unknown %s %q", e.Table, e.ID)
}

// Tables is the in-memory Catalog implementation
type Tables struct {
	items    map[string]ItemDef
	traits   map[string]TraitDef
	statuses map[string]StatusDef
	tasks    map[string]TaskDef
	recipes  map[string]RecipeDef
	terrains []TerrainDef
	version  string
}

// Definitions is the raw content a Tables is built from
type Definitions struct {
	Version  string       `yaml:"version" json:"version"`
	Items    []ItemDef    `yaml:"items" json:"items"`
	Traits   []TraitDef   `yaml:"traits" json:"traits"`
	Statuses []StatusDef  `yaml:"statuses" json:"statuses"`
	Tasks    []TaskDef    `yaml:"tasks" json:"tasks"`
	Recipes  []RecipeDef  `yaml:"recipes" json:"recipes"`
	Terrains []TerrainDef `yaml:"terrains" json:"terrains"`
}

// NewTables indexes the definitions, rejecting duplicate ids
func NewTables(defs Definitions) (*Tables, error) {
	t := &Tables{
		items:    make(map[string]ItemDef, len(defs.Items)),
		traits:   make(map[string]TraitDef, len(defs.Traits)),
		statuses: make(map[string]StatusDef, len(defs.Statuses)),
		tasks:    make(map[string]TaskDef, len(defs.Tasks)),
		recipes:  make(map[string]RecipeDef, len(defs.Recipes)),
		version:  defs.Version,
	}

	for _, d := range defs.Items {
		if _, dup := t.items[d.ID]; dup {
			return nil, fmt.Errorf("duplicate item id %q", d.ID)
		}
		t.items[d.ID] = d
	}
	for _, d := range defs.Traits {
		if _, dup := t.traits[d.ID]; dup {
			return nil, fmt.Errorf("duplicate trait id %q", d.ID)
		}
		t.traits[d.ID] = d
	}
	for _, d := range defs.Statuses {
		if _, dup := t.statuses[d.ID]; dup {
			return nil, fmt.Errorf("duplicate status id %q", d.ID)
		}
		t.statuses[d.ID] = d
	}
	for _, d := range defs.Tasks {
		if _, dup := t.tasks[d.ID]; dup {
			return nil, fmt.Errorf("duplicate task id %q", d.ID)
		}
		d.SettlerDiscovery = append([]DiscoveryBracket(nil), d.SettlerDiscovery...)
		sort.SliceStable(d.SettlerDiscovery, func(i, j int) bool {
			return d.SettlerDiscovery[i].MaxSettlers < d.SettlerDiscovery[j].MaxSettlers
		})
		t.tasks[d.ID] = d
	}
	for _, d := range defs.Recipes {
		if _, dup := t.recipes[d.ID]; dup {
			return nil, fmt.Errorf("duplicate recipe id %q", d.ID)
		}
		for itemID := range d.Inputs {
			if _, ok := t.items[itemID]; !ok {
				return nil, fmt.Errorf("recipe %q: %w", d.ID, t.unknown("item", itemID, t.itemIDs()))
			}
		}
		for itemID := range d.Outputs {
			if _, ok := t.items[itemID]; !ok {
				return nil, fmt.Errorf("recipe %q: %w", d.ID, t.unknown("item", itemID, t.itemIDs()))
			}
		}
		t.recipes[d.ID] = d
	}
	for _, d := range defs.Tasks {
		for itemID := range d.Rewards {
			if _, ok := t.items[itemID]; !ok {
				return nil, fmt.Errorf("task %q: %w", d.ID, t.unknown("item", itemID, t.itemIDs()))
			}
		}
	}

	for _, d := range defs.Terrains {
		for itemID := range d.Loot {
			if _, ok := t.items[itemID]; !ok {
				return nil, fmt.Errorf("terrain %q: %w", d.ID, t.unknown("item", itemID, t.itemIDs()))
			}
		}
	}

	t.terrains = append([]TerrainDef(nil), defs.Terrains...)
	sort.SliceStable(t.terrains, func(i, j int) bool {
		return t.terrains[i].MaxElevation < t.terrains[j].MaxElevation
	})

	return t, nil
}

func (t *Tables) Version() string { return t.version }

func (t *Tables) Item(id string) (ItemDef, error) {
	d, ok := t.items[id]
	if !ok {
		return ItemDef{}, t.unknown("item", id, t.itemIDs())
	}
	return d, nil
}

func (t *Tables) Trait(id string) (TraitDef, error) {
	d, ok := t.traits[id]
	if !ok {
		ids := make([]string, 0, len(t.traits))
		for k := range t.traits {
			ids = append(ids, k)
		}
		return TraitDef{}, t.unknown("trait", id, ids)
	}
	return d, nil
}

// AllTraits returns traits ordered by id so random picks are reproducible
func (t *Tables) AllTraits() []TraitDef {
	out := make([]TraitDef, 0, len(t.traits))
	for _, d := range t.traits {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (t *Tables) EnergyDeltaPerHour(status string) float64 {
	return t.statuses[status].EnergyDeltaPerHour
}

func (t *Tables) Task(id string) (TaskDef, error) {
	d, ok := t.tasks[id]
	if !ok {
		ids := make([]string, 0, len(t.tasks))
		for k := range t.tasks {
			ids = append(ids, k)
		}
		return TaskDef{}, t.unknown("task", id, ids)
	}
	return d, nil
}

// Quests returns quest templates ordered by id
func (t *Tables) Quests() []TaskDef {
	var out []TaskDef
	for _, d := range t.tasks {
		if d.Type == "quest" {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (t *Tables) Recipe(id string) (RecipeDef, error) {
	d, ok := t.recipes[id]
	if !ok {
		ids := make([]string, 0, len(t.recipes))
		for k := range t.recipes {
			ids = append(ids, k)
		}
		return RecipeDef{}, t.unknown("recipe", id, ids)
	}
	return d, nil
}

func (t *Tables) Terrains() []TerrainDef {
	return t.terrains
}

func (t *Tables) Terrain(id string) (TerrainDef, error) {
	ids := make([]string, 0, len(t.terrains))
	for _, d := range t.terrains {
		if d.ID == id {
			return d, nil
		}
		ids = append(ids, d.ID)
	}
	return TerrainDef{}, t.unknown("terrain", id, ids)
}

func (t *Tables) itemIDs() []string {
	ids := make([]string, 0, len(t.items))
	for k := range t.items {
		ids = append(ids, k)
	}
	return ids
}

// unknown builds an UnknownIDError, suggesting the closest id within an
// edit distance of a third of the requested id's length
func (t *Tables) unknown(table, id string, known []string) *UnknownIDError {
	sort.Strings(known)
	best, bestDist := "", -1
	for _, k := range known {
		d := levenshtein.ComputeDistance(id, k)
		if bestDist < 0 || d < bestDist {
			best, bestDist = k, d
		}
	}
	limit := len(id) / 3
	if limit < 1 {
		limit = 1
	}
	if bestDist < 0 || bestDist > limit {
		best = ""
	}
	return &UnknownIDError{Table: table, ID: id, Suggestion: best}
}
