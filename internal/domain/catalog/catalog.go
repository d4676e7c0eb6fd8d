// Package catalog defines the read-only game-balance tables the simulation
// consumes: items, traits, statuses, tasks, recipes and terrain.
//
// The tables are owned by the surrounding application and injected into the
// domain services; nothing in the domain reaches for a global table.
package catalog

// ItemDef describes an item that settlers carry and colonies store
type ItemDef struct {
	ID         string                 `yaml:"id" json:"id"`
	Name       string                 `yaml:"name" json:"name"`
	Icon       string                 `yaml:"icon" json:"icon,omitempty"`
	Type       string                 `yaml:"type" json:"type"`
	Weight     float64                `yaml:"weight" json:"weight"`
	Stackable  bool                   `yaml:"stackable" json:"stackable"`
	Properties map[string]interface{} `yaml:"properties" json:"properties,omitempty"`
}

// Item types the colony summary understands
const (
	ItemTypeFood     = "food"
	ItemTypeMaterial = "material"
)

// TraitEffect is the modifier a trait applies, e.g. target "task", key
// "exploration", modifier "-10%" or "+20% loot"
type TraitEffect struct {
	Target   string `yaml:"target" json:"target"`
	Key      string `yaml:"key" json:"key"`
	Modifier string `yaml:"modifier" json:"modifier"`
}

type TraitDef struct {
	ID     string      `yaml:"id" json:"id"`
	Name   string      `yaml:"name" json:"name"`
	Effect TraitEffect `yaml:"effect" json:"effect"`
}

// StatusDef holds how fast a settler's energy changes while in a status
type StatusDef struct {
	ID                 string  `yaml:"id" json:"id"`
	EnergyDeltaPerHour float64 `yaml:"energy_delta_per_hour" json:"energy_delta_per_hour"`
}

// DiscoveryBracket overrides the base settler-discovery chance while the
// colony has at most MaxSettlers settlers
type DiscoveryBracket struct {
	MaxSettlers int     `yaml:"max_settlers" json:"max_settlers"`
	Chance      float64 `yaml:"chance" json:"chance"`
}

// TaskDef is a quest or cleaning task template
type TaskDef struct {
	ID               string             `yaml:"id" json:"id"`
	Name             string             `yaml:"name" json:"name"`
	Type             string             `yaml:"type" json:"type"`
	DurationMs       int64              `yaml:"duration_ms" json:"duration_ms"`
	Rewards          map[string]int     `yaml:"rewards" json:"rewards,omitempty"`
	Dependencies     []string           `yaml:"dependencies" json:"dependencies,omitempty"`
	Unlocks          []string           `yaml:"unlocks" json:"unlocks,omitempty"`
	SettlerDiscovery []DiscoveryBracket `yaml:"settler_discovery" json:"settler_discovery,omitempty"`
}

// RecipeDef is a crafting recipe: inputs are consumed from the colony
// inventory when crafting starts, outputs are the planned rewards
type RecipeDef struct {
	ID         string         `yaml:"id" json:"id"`
	Name       string         `yaml:"name" json:"name"`
	DurationMs int64          `yaml:"duration_ms" json:"duration_ms"`
	Inputs     map[string]int `yaml:"inputs" json:"inputs"`
	Outputs    map[string]int `yaml:"outputs" json:"outputs"`
}

// TerrainDef maps a band of generated elevation onto a terrain type.
// The first definition whose MaxElevation is >= the sample wins. Loot is
// what exploring a tile of this terrain yields.
type TerrainDef struct {
	ID           string         `yaml:"id" json:"id"`
	Name         string         `yaml:"name" json:"name"`
	MaxElevation float64        `yaml:"max_elevation" json:"max_elevation"`
	Loot         map[string]int `yaml:"loot" json:"loot,omitempty"`
}

// Items looks up item definitions
type Items interface {
	Item(id string) (ItemDef, error)
}

// Traits looks up trait definitions
type Traits interface {
	Trait(id string) (TraitDef, error)
	AllTraits() []TraitDef
}

// Statuses reports energy change per hour; unknown statuses drain nothing
type Statuses interface {
	EnergyDeltaPerHour(status string) float64
}

// Tasks looks up task templates
type Tasks interface {
	Task(id string) (TaskDef, error)
	Quests() []TaskDef
}

// Recipes looks up crafting recipes
type Recipes interface {
	Recipe(id string) (RecipeDef, error)
}

// Terrains lists terrain bands ordered by MaxElevation
type Terrains interface {
	Terrains() []TerrainDef
	Terrain(id string) (TerrainDef, error)
}

// Catalog bundles every table
type Catalog interface {
	Items
	Traits
	Statuses
	Tasks
	Recipes
	Terrains
}
