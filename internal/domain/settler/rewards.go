package settler

import (
	"github.com/andrescamacho/colony-go/internal/domain/colony"
)

// RewardResult is what GiveRewards managed to put in the settler's hands.
// Overflow holds the quantities that did not fit and were lost.
type RewardResult struct {
	Added    map[string]int
	Overflow map[string]int
}

// HasOverflow reports whether any reward was lost
func (r RewardResult) HasOverflow() bool {
	for _, q := range r.Overflow {
		if q > 0 {
			return true
		}
	}
	return false
}

// GiveRewards hands rewards to the settler item by item in id order. Whatever
// does not fit becomes overflow; the caller logs it to the colony and saves
// the settler once.
func (m *ResourceModel) GiveRewards(s *Settler, rewards map[string]int) (RewardResult, error) {
	result := RewardResult{Added: map[string]int{}, Overflow: map[string]int{}}
	for _, itemID := range sortedItemIDs(rewards) {
		qty := rewards[itemID]
		if qty <= 0 {
			continue
		}
		added, err := m.AddItems(s, itemID, qty)
		if err != nil {
			return result, err
		}
		if added > 0 {
			result.Added[itemID] += added
		}
		if added < qty {
			result.Overflow[itemID] += qty - added
		}
	}
	return result, nil
}

// TransferResult splits the settler's carry into deposited and kept items
type TransferResult struct {
	Transferred []CarryItem
	Remaining   []CarryItem
}

// TransferItemsToColony deposits the carry into the colony inventory. Items
// the colony already stocks always transfer; new item types transfer only
// while the colony has free slots. The settler keeps exactly what remains.
func (m *ResourceModel) TransferItemsToColony(s *Settler, inv *colony.Inventory, maxInventory int) (TransferResult, error) {
	var result TransferResult
	merger := inv.NewMerger(maxInventory, m.items)

	for _, c := range s.carry {
		stored, err := merger.Deposit(c.ItemID, c.Quantity)
		if err != nil {
			return TransferResult{}, err
		}
		if stored {
			result.Transferred = append(result.Transferred, c)
		} else {
			result.Remaining = append(result.Remaining, c)
		}
	}

	s.carry = append([]CarryItem(nil), result.Remaining...)
	return result, nil
}
