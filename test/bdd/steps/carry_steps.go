package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/colony-go/internal/domain/catalog"
	"github.com/andrescamacho/colony-go/internal/domain/settler"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
	"github.com/andrescamacho/colony-go/test/helpers"
)

type carryContext struct {
	model   *settler.ResourceModel
	settler *settler.Settler
}

func (cc *carryContext) reset() error {
	tables, err := catalog.NewTables(helpers.TestDefinitions())
	if err != nil {
		return err
	}
	cc.model = settler.NewResourceModel(tables, tables)
	cc.settler = nil
	return nil
}

func (cc *carryContext) aSettlerWithStrengthAndCarrySlots(strength, slots int) error {
	s, err := settler.NewSettler("settler-1", "colony-1", "Ada",
		settler.Stats{Strength: strength, Speed: 10}, nil, nil, 100, slots, helpers.Epoch)
	if err != nil {
		return err
	}
	cc.settler = s
	return nil
}

func (cc *carryContext) theCarryingCapacityShouldBe(capacity float64) error {
	if got := cc.settler.CarryingCapacity(); got != capacity {
		return fmt.Errorf("expected carrying capacity %.1f, got %.1f", capacity, got)
	}
	return nil
}

func (cc *carryContext) theSettlerPicksUp(qty int, itemID string) error {
	_, err := cc.model.AddItems(cc.settler, itemID, qty)
	return err
}

func (cc *carryContext) theSettlerShouldCarry(qty int, itemID string) error {
	if got := cc.settler.Carried(itemID); got != qty {
		return fmt.Errorf("expected settler to carry %d %s, got %d", qty, itemID, got)
	}
	return nil
}

func (cc *carryContext) pickingUpShouldFailBecauseNoSlotIsFree(qty int, itemID string) error {
	return cc.expectCarryFailure(qty, itemID, shared.ErrNoFreeCarrySlot)
}

func (cc *carryContext) pickingUpShouldFailBecauseWeightIsExceeded(qty int, itemID string) error {
	return cc.expectCarryFailure(qty, itemID, shared.ErrCarryWeightExceeded)
}

func (cc *carryContext) expectCarryFailure(qty int, itemID string, want error) error {
	err := cc.model.CanCarryItems(cc.settler, itemID, qty)
	if !errors.Is(err, want) {
		return fmt.Errorf("expected %v, got %v", want, err)
	}
	return nil
}

// InitializeCarryScenario registers settler carry limit steps
func InitializeCarryScenario(ctx *godog.ScenarioContext) {
	cc := &carryContext{}

	ctx.Before(func(c context.Context, s *godog.Scenario) (context.Context, error) {
		return c, cc.reset()
	})

	ctx.Step(`^a settler with strength (\d+) and (\d+) carry slots$`, cc.aSettlerWithStrengthAndCarrySlots)
	ctx.Step(`^the carrying capacity should be (\d+)$`, cc.theCarryingCapacityShouldBe)
	ctx.Step(`^the settler picks up (\d+) "([^"]*)"$`, cc.theSettlerPicksUp)
	ctx.Step(`^the settler should carry (\d+) "([^"]*)"$`, cc.theSettlerShouldCarry)
	ctx.Step(`^picking up (\d+) "([^"]*)" should fail because no carry slot is free$`, cc.pickingUpShouldFailBecauseNoSlotIsFree)
	ctx.Step(`^picking up (\d+) "([^"]*)" should fail because the weight limit is exceeded$`, cc.pickingUpShouldFailBecauseWeightIsExceeded)
}
