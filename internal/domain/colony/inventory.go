package colony

import (
	"sort"

	"github.com/andrescamacho/colony-go/internal/domain/catalog"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

// Item is one stack in the colony inventory
type Item struct {
	ItemID     string
	Name       string
	Icon       string
	Type       string
	Quantity   int
	Properties map[string]interface{}
}

// Inventory is a colony's shared store. The number of distinct item types
// is capped by the owning colony's MaxInventory; existing stacks grow
// without limit.
type Inventory struct {
	colonyID string
	items    []Item
}

func NewInventory(colonyID string) *Inventory {
	return &Inventory{colonyID: colonyID}
}

func ReconstructInventory(colonyID string, items []Item) *Inventory {
	return &Inventory{colonyID: colonyID, items: items}
}

func (inv *Inventory) ColonyID() string { return inv.colonyID }
func (inv *Inventory) TypeCount() int { return len(inv.items) }

func (inv *Inventory) Items() []Item {
	return append([]Item(nil), inv.items...)
}

// Quantity returns the stocked amount of an item, 0 if absent
func (inv *Inventory) Quantity(itemID string) int {
	if i := inv.indexOf(itemID); i >= 0 {
		return inv.items[i].Quantity
	}
	return 0
}

// Has reports whether the inventory already stocks the item
func (inv *Inventory) Has(itemID string) bool {
	return inv.indexOf(itemID) >= 0
}

// MergeResult splits a merge request into what was stored and what was not
type MergeResult struct {
	Added     map[string]int
	Remaining map[string]int
}

// Merger deposits items into an inventory while tracking free item-type
// slots incrementally across one pass
type Merger struct {
	inv       *Inventory
	items     catalog.Items
	freeSlots int
}

// NewMerger starts a merge pass against the given slot cap
func (inv *Inventory) NewMerger(maxInventory int, items catalog.Items) *Merger {
	free := maxInventory - len(inv.items)
	if free < 0 {
		free = 0
	}
	return &Merger{inv: inv, items: items, freeSlots: free}
}

// Deposit stores qty of an item if the inventory already stocks it or a free
// slot remains, and reports whether it was stored. Non-positive quantities
// are ignored.
func (m *Merger) Deposit(itemID string, qty int) (bool, error) {
	if qty <= 0 {
		return false, nil
	}
	if i := m.inv.indexOf(itemID); i >= 0 {
		m.inv.items[i].Quantity += qty
		return true, nil
	}
	if m.freeSlots <= 0 {
		return false, nil
	}

	def, err := m.items.Item(itemID)
	if err != nil {
		return false, err
	}
	m.inv.items = append(m.inv.items, Item{
		ItemID:     itemID,
		Name:       def.Name,
		Icon:       def.Icon,
		Type:       def.Type,
		Quantity:   qty,
		Properties: def.Properties,
	})
	m.freeSlots--
	return true, nil
}

// AddRewards merges a reward map in item-id order. Quantities that find no
// slot are returned in Remaining.
func (inv *Inventory) AddRewards(rewards map[string]int, maxInventory int, items catalog.Items) (MergeResult, error) {
	result := MergeResult{Added: map[string]int{}, Remaining: map[string]int{}}
	merger := inv.NewMerger(maxInventory, items)

	for _, itemID := range sortedKeys(rewards) {
		qty := rewards[itemID]
		if qty <= 0 {
			continue
		}
		stored, err := merger.Deposit(itemID, qty)
		if err != nil {
			return result, err
		}
		if stored {
			result.Added[itemID] += qty
		} else {
			result.Remaining[itemID] += qty
		}
	}
	return result, nil
}

// Consume removes every listed quantity or nothing at all
func (inv *Inventory) Consume(requirements map[string]int) error {
	for _, itemID := range sortedKeys(requirements) {
		if have, need := inv.Quantity(itemID), requirements[itemID]; have < need {
			return shared.NewDomainError(shared.ErrInsufficientMaterials, "%s: need %d, have %d", itemID, need, have)
		}
	}
	for itemID, qty := range requirements {
		inv.remove(itemID, qty)
	}
	return nil
}

// DropItems discards up to qty of a stocked item and returns the amount dropped
func (inv *Inventory) DropItems(itemID string, qty int) (int, error) {
	if qty <= 0 {
		return 0, shared.NewValidationError("quantity", "must be positive")
	}
	have := inv.Quantity(itemID)
	if have == 0 {
		return 0, shared.NewDomainError(shared.ErrItemNotInInventory, "%s", itemID)
	}
	if qty > have {
		qty = have
	}
	inv.remove(itemID, qty)
	return qty, nil
}

// Summary is a read-only projection used by colony overviews
type Summary struct {
	StackCount   int
	FoodUnits    int
	DaysOfFood   float64
	RawMaterials map[string]int
}

// Summarize projects food and raw material totals. Days of food is the food
// on hand divided by what the settlers eat per day.
func (inv *Inventory) Summarize(settlerCount int, foodPerSettlerPerDay float64) Summary {
	s := Summary{StackCount: len(inv.items), RawMaterials: map[string]int{}}
	for _, it := range inv.items {
		switch it.Type {
		case catalog.ItemTypeFood:
			s.FoodUnits += it.Quantity
		case catalog.ItemTypeMaterial:
			s.RawMaterials[it.ItemID] += it.Quantity
		}
	}
	if settlerCount > 0 && foodPerSettlerPerDay > 0 {
		s.DaysOfFood = float64(s.FoodUnits) / (float64(settlerCount) * foodPerSettlerPerDay)
	}
	return s
}

func (inv *Inventory) remove(itemID string, qty int) {
	i := inv.indexOf(itemID)
	if i < 0 {
		return
	}
	inv.items[i].Quantity -= qty
	if inv.items[i].Quantity <= 0 {
		inv.items = append(inv.items[:i], inv.items[i+1:]...)
	}
}

func (inv *Inventory) indexOf(itemID string) int {
	for i := range inv.items {
		if inv.items[i].ItemID == itemID {
			return i
		}
	}
	return -1
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

