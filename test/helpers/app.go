package helpers

import (
	"context"
	"fmt"
	"testing"
	"time"

	colonyTypes "github.com/andrescamacho/colony-go/internal/application/colony/types"
	"github.com/andrescamacho/colony-go/internal/application/common"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
	"github.com/andrescamacho/colony-go/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/colony-go/internal/infrastructure/config"
)

// Epoch is the mock clock's starting time in application tests
var Epoch = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

// TestConfig returns defaults with a fixed seed and no placement backoff
func TestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Database.Type = "sqlite"
	cfg.Game.Seed = 42
	cfg.Game.PlacementBackoff = time.Nanosecond
	config.SetDefaults(cfg)
	return cfg
}

// NewTestApp builds the whole application on a fresh in-memory database,
// the fixture catalog and a mock clock
func NewTestApp(t *testing.T) (*bootstrap.App, *shared.MockClock) {
	t.Helper()
	return NewTestAppWith(t, nil)
}

// NewTestAppWith is NewTestApp with a hook to adjust the config first
func NewTestAppWith(t *testing.T, configure func(cfg *config.Config)) (*bootstrap.App, *shared.MockClock) {
	t.Helper()

	cfg := TestConfig()
	if configure != nil {
		configure(cfg)
	}

	clock := shared.NewMockClock(Epoch)
	app, err := bootstrap.New(cfg, NewTestDB(t),
		bootstrap.WithClock(clock),
		bootstrap.WithCatalog(NewTestCatalog(t)),
	)
	if err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	return app, clock
}

// Send dispatches request on the app's mediator and asserts the response type
func Send[T any](ctx context.Context, app *bootstrap.App, request common.Request) (T, error) {
	var zero T
	resp, err := app.Mediator.Send(ctx, request)
	if err != nil {
		return zero, err
	}
	typed, ok := resp.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected response type %T", resp)
	}
	return typed, nil
}

// FoundColony creates a colony for userID on "srv-1" and onboards its first
// settler, returning both ids
func FoundColony(t *testing.T, ctx context.Context, app *bootstrap.App, userID string) (colonyID, settlerID string) {
	t.Helper()

	created, err := Send[*colonyTypes.CreateColonyResponse](ctx, app, &colonyTypes.CreateColonyCommand{
		UserID:   userID,
		ServerID: "srv-1",
		Name:     userID + "'s colony",
	})
	if err != nil {
		t.Fatalf("failed to create colony: %v", err)
	}
	colonyID = created.Colony.ID

	candidates, err := Send[*colonyTypes.GenerateOnboardingSettlersResponse](ctx, app, &colonyTypes.GenerateOnboardingSettlersCommand{
		ColonyID: colonyID,
	})
	if err != nil {
		t.Fatalf("failed to generate candidates: %v", err)
	}

	chosen, err := Send[*colonyTypes.ChooseOnboardingSettlerResponse](ctx, app, &colonyTypes.ChooseOnboardingSettlerCommand{
		ColonyID:  colonyID,
		SettlerID: candidates.Candidates[0].ID,
	})
	if err != nil {
		t.Fatalf("failed to choose settler: %v", err)
	}
	return colonyID, chosen.Settler.ID
}

// Overview loads the colony overview
func Overview(t *testing.T, ctx context.Context, app *bootstrap.App, colonyID string) *colonyTypes.GetColonyOverviewResponse {
	t.Helper()

	overview, err := Send[*colonyTypes.GetColonyOverviewResponse](ctx, app, &colonyTypes.GetColonyOverviewQuery{ColonyID: colonyID})
	if err != nil {
		t.Fatalf("failed to load overview: %v", err)
	}
	return overview
}
