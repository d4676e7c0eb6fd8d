package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/colony-go/internal/domain/shared"
	"github.com/andrescamacho/colony-go/internal/domain/spiral"
)

type spiralContext struct {
	step      int
	position  spiral.Position
	positions []spiral.Position
	err       error
}

func (sc *spiralContext) reset() {
	sc.step = 1
	sc.position = spiral.Position{}
	sc.positions = nil
	sc.err = nil
}

func (sc *spiralContext) aStepMultiplierOf(step int) error {
	sc.step = step
	return nil
}

func (sc *spiralContext) iDecodeSpiralIndex(index int) error {
	sc.position, sc.err = spiral.LocationFromIndex(index, sc.step)
	return nil
}

func (sc *spiralContext) iDecodeSpiralIndexesThrough(from, to int) error {
	for i := from; i <= to; i++ {
		pos, err := spiral.LocationFromIndex(i, sc.step)
		if err != nil {
			return fmt.Errorf("index %d: %w", i, err)
		}
		sc.positions = append(sc.positions, pos)
	}
	return nil
}

func (sc *spiralContext) theLocationShouldBe(x, y int) error {
	if sc.err != nil {
		return fmt.Errorf("decoding failed: %w", sc.err)
	}
	want := shared.NewLocation(x, y)
	if sc.position.Location != want {
		return fmt.Errorf("expected location %s, got %s", want, sc.position.Location)
	}
	return nil
}

func (sc *spiralContext) theLayerShouldBe(layer int) error {
	if sc.position.Layer != layer {
		return fmt.Errorf("expected layer %d, got %d", layer, sc.position.Layer)
	}
	return nil
}

func (sc *spiralContext) everyLocationShouldBeDistinct() error {
	seen := make(map[shared.Location]int, len(sc.positions))
	for _, pos := range sc.positions {
		if prev, ok := seen[pos.Location]; ok {
			return fmt.Errorf("indexes %d and %d both map to %s", prev, pos.Index, pos.Location)
		}
		seen[pos.Location] = pos.Index
	}
	return nil
}

func (sc *spiralContext) everyLocationShouldBeStepsFromTheOrigin(steps int) error {
	origin := shared.NewLocation(0, 0)
	for _, pos := range sc.positions {
		if d := pos.Location.ChebyshevDistance(origin); d != steps {
			return fmt.Errorf("index %d at %s is %d steps out", pos.Index, pos.Location, d)
		}
	}
	return nil
}

func (sc *spiralContext) decodingShouldFail() error {
	if sc.err == nil {
		return fmt.Errorf("expected decoding to fail, got %s", sc.position.Location)
	}
	return nil
}

// InitializeSpiralScenario registers spiral placement steps
func InitializeSpiralScenario(ctx *godog.ScenarioContext) {
	sc := &spiralContext{}

	ctx.Before(func(c context.Context, s *godog.Scenario) (context.Context, error) {
		sc.reset()
		return c, nil
	})

	ctx.Step(`^a step multiplier of (\d+)$`, sc.aStepMultiplierOf)
	ctx.Step(`^I decode spiral index (-?\d+)$`, sc.iDecodeSpiralIndex)
	ctx.Step(`^I decode spiral indexes (\d+) through (\d+)$`, sc.iDecodeSpiralIndexesThrough)
	ctx.Step(`^the location should be \((-?\d+), (-?\d+)\)$`, sc.theLocationShouldBe)
	ctx.Step(`^the layer should be (\d+)$`, sc.theLayerShouldBe)
	ctx.Step(`^every location should be distinct$`, sc.everyLocationShouldBeDistinct)
	ctx.Step(`^every location should be (\d+) steps from the origin$`, sc.everyLocationShouldBeStepsFromTheOrigin)
	ctx.Step(`^decoding should fail$`, sc.decodingShouldFail)
}
