package settler

import (
	"errors"
	"fmt"

	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

const (
	minCarryingCapacity = 10
	capacityPerStrength = 5
)

// CarryingCapacity is the weight a settler can haul: max(10, strength*5)
func (s *Settler) CarryingCapacity() float64 {
	capacity := s.stats.Strength * capacityPerStrength
	if capacity < minCarryingCapacity {
		capacity = minCarryingCapacity
	}
	return float64(capacity)
}

// CurrentCarriedWeight sums catalog weight times quantity over the carry slots
func (m *ResourceModel) CurrentCarriedWeight(s *Settler) (float64, error) {
	total := 0.0
	for _, c := range s.carry {
		def, err := m.items.Item(c.ItemID)
		if err != nil {
			return 0, err
		}
		total += def.Weight * float64(c.Quantity)
	}
	return total, nil
}

// CanCarryItems checks slot and weight limits for picking up qty of an item.
// A failed slot check wraps shared.ErrNoFreeCarrySlot, a failed weight check
// wraps shared.ErrCarryWeightExceeded; when both fail both are reported.
func (m *ResourceModel) CanCarryItems(s *Settler, itemID string, qty int) error {
	def, err := m.items.Item(itemID)
	if err != nil {
		return err
	}

	var failures []error

	needsSlot := !def.Stackable || s.Carried(itemID) == 0
	if needsSlot && len(s.carry) >= s.maxCarrySlots {
		failures = append(failures, fmt.Errorf("%w: %d of %d slots used", shared.ErrNoFreeCarrySlot, len(s.carry), s.maxCarrySlots))
	}

	current, err := m.CurrentCarriedWeight(s)
	if err != nil {
		return err
	}
	if current+float64(qty)*def.Weight > s.CarryingCapacity() {
		failures = append(failures, fmt.Errorf("%w: %.1f + %.1f > %.1f",
			shared.ErrCarryWeightExceeded, current, float64(qty)*def.Weight, s.CarryingCapacity()))
	}

	return errors.Join(failures...)
}

// AddItems picks up as much of qty as fits and returns the amount added.
// Stackable items are filled partially when the full amount does not fit;
// non-stackable items are taken one at a time and never duplicated.
func (m *ResourceModel) AddItems(s *Settler, itemID string, qty int) (int, error) {
	if qty <= 0 {
		return 0, nil
	}

	def, err := m.items.Item(itemID)
	if err != nil {
		return 0, err
	}

	if !def.Stackable {
		if s.Carried(itemID) > 0 {
			return 0, nil
		}
		if err := m.CanCarryItems(s, itemID, 1); err != nil {
			if isCarryLimit(err) {
				return 0, nil
			}
			return 0, err
		}
		s.carry = append(s.carry, CarryItem{ItemID: itemID, Quantity: 1})
		return 1, nil
	}

	amount := 0
	if err := m.CanCarryItems(s, itemID, qty); err == nil {
		amount = qty
	} else if !isCarryLimit(err) {
		return 0, err
	} else {
		for q := 1; q < qty; q++ {
			if m.CanCarryItems(s, itemID, q) != nil {
				break
			}
			amount = q
		}
	}

	if amount == 0 {
		return 0, nil
	}
	s.stack(itemID, amount)
	return amount, nil
}

// DropItems removes up to qty units of a carried item and returns how many
// were dropped
func (s *Settler) DropItems(itemID string, qty int) (int, error) {
	if qty <= 0 {
		return 0, shared.NewValidationError("quantity", "must be positive")
	}
	if s.Carried(itemID) == 0 {
		return 0, shared.NewDomainError(shared.ErrItemNotCarried, "%s", itemID)
	}

	dropped := 0
	kept := s.carry[:0]
	for _, c := range s.carry {
		if c.ItemID == itemID && dropped < qty {
			take := c.Quantity
			if take > qty-dropped {
				take = qty - dropped
			}
			dropped += take
			c.Quantity -= take
		}
		if c.Quantity > 0 {
			kept = append(kept, c)
		}
	}
	s.carry = kept
	return dropped, nil
}

func (s *Settler) stack(itemID string, qty int) {
	for i := range s.carry {
		if s.carry[i].ItemID == itemID {
			s.carry[i].Quantity += qty
			return
		}
	}
	s.carry = append(s.carry, CarryItem{ItemID: itemID, Quantity: qty})
}

func isCarryLimit(err error) bool {
	return errors.Is(err, shared.ErrNoFreeCarrySlot) || errors.Is(err, shared.ErrCarryWeightExceeded)
}
