package steps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"

	assignmentTypes "github.com/andrescamacho/colony-go/internal/application/assignment/types"
	colonyTypes "github.com/andrescamacho/colony-go/internal/application/colony/types"
	settlerTypes "github.com/andrescamacho/colony-go/internal/application/settler/types"
	"github.com/andrescamacho/colony-go/internal/domain/catalog"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
	"github.com/andrescamacho/colony-go/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/colony-go/test/helpers"
)

// lifecycleContext drives the full application against the shared database
type lifecycleContext struct {
	app       *bootstrap.App
	clock     *shared.MockClock
	colonyID  string
	settlerID string
	quests    map[string]string // task id -> assignment id
	err       error
}

func (lc *lifecycleContext) reset() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}

	tables, err := catalog.NewTables(helpers.TestDefinitions())
	if err != nil {
		return err
	}

	lc.clock = shared.NewMockClock(helpers.Epoch)
	lc.app, err = bootstrap.New(helpers.TestConfig(), helpers.SharedTestDB,
		bootstrap.WithClock(lc.clock),
		bootstrap.WithCatalog(tables),
	)
	if err != nil {
		return err
	}

	lc.colonyID = ""
	lc.settlerID = ""
	lc.quests = make(map[string]string)
	lc.err = nil
	return nil
}

func (lc *lifecycleContext) aColonyFoundedByWithOneOnboardedSettler(userID string) error {
	ctx := context.Background()

	created, err := helpers.Send[*colonyTypes.CreateColonyResponse](ctx, lc.app, &colonyTypes.CreateColonyCommand{
		UserID:   userID,
		ServerID: "srv-1",
	})
	if err != nil {
		return fmt.Errorf("failed to create colony: %w", err)
	}
	lc.colonyID = created.Colony.ID

	generated, err := helpers.Send[*colonyTypes.GenerateOnboardingSettlersResponse](ctx, lc.app, &colonyTypes.GenerateOnboardingSettlersCommand{
		ColonyID: lc.colonyID,
	})
	if err != nil {
		return fmt.Errorf("failed to generate candidates: %w", err)
	}

	chosen, err := helpers.Send[*colonyTypes.ChooseOnboardingSettlerResponse](ctx, lc.app, &colonyTypes.ChooseOnboardingSettlerCommand{
		ColonyID:  lc.colonyID,
		SettlerID: generated.Candidates[0].ID,
	})
	if err != nil {
		return fmt.Errorf("failed to choose settler: %w", err)
	}
	lc.settlerID = chosen.Settler.ID
	return nil
}

func (lc *lifecycleContext) theColonysQuestsAreSynced() error {
	synced, err := helpers.Send[*assignmentTypes.SyncQuestAssignmentsResponse](context.Background(), lc.app, &assignmentTypes.SyncQuestAssignmentsCommand{
		ColonyID: lc.colonyID,
	})
	if err != nil {
		return err
	}
	for _, a := range synced.Created {
		lc.quests[a.TaskID] = a.ID
	}
	return nil
}

// act runs a request and keeps its error for the assertion steps. An earlier
// unexpected failure aborts the scenario.
func (lc *lifecycleContext) act(request interface{}) error {
	if lc.err != nil {
		return fmt.Errorf("previous request failed: %w", lc.err)
	}
	_, lc.err = lc.app.Mediator.Send(context.Background(), request)
	return nil
}

func (lc *lifecycleContext) theSettlerStartsTheQuest(taskID string) error {
	id, ok := lc.quests[taskID]
	if !ok {
		return fmt.Errorf("quest %s was not synced", taskID)
	}
	return lc.act(&assignmentTypes.StartAssignmentCommand{AssignmentID: id, SettlerID: lc.settlerID})
}

func (lc *lifecycleContext) theSettlerStartsRestingFor(hours int) error {
	return lc.act(&assignmentTypes.StartRestingCommand{
		ColonyID:  lc.colonyID,
		SettlerID: lc.settlerID,
		Duration:  time.Duration(hours) * time.Hour,
	})
}

func (lc *lifecycleContext) thePlayerInformsTheAssignment(taskID string) error {
	return lc.act(&assignmentTypes.InformAssignmentCommand{AssignmentID: lc.quests[taskID]})
}

func (lc *lifecycleContext) hoursPass(hours int) error {
	lc.clock.Advance(time.Duration(hours) * time.Hour)
	return nil
}

func (lc *lifecycleContext) theAssignmentShouldBe(taskID, state string) error {
	if lc.err != nil {
		return fmt.Errorf("request failed: %w", lc.err)
	}

	listed, err := helpers.Send[*assignmentTypes.ListAssignmentsResponse](context.Background(), lc.app, &assignmentTypes.ListAssignmentsQuery{
		ColonyID: lc.colonyID,
	})
	if err != nil {
		return err
	}
	for _, a := range listed.Assignments {
		if a.ID == lc.quests[taskID] {
			if a.State != state {
				return fmt.Errorf("expected %s to be %s, got %s", taskID, state, a.State)
			}
			return nil
		}
	}
	return fmt.Errorf("assignment for %s not listed", taskID)
}

func (lc *lifecycleContext) theSettlerShouldBe(status string) error {
	listed, err := helpers.Send[*settlerTypes.ListSettlersResponse](context.Background(), lc.app, &settlerTypes.ListSettlersQuery{
		ColonyID: lc.colonyID,
	})
	if err != nil {
		return err
	}
	for _, s := range listed.Settlers {
		if s.ID == lc.settlerID {
			if s.Status != status {
				return fmt.Errorf("expected settler to be %s, got %s", status, s.Status)
			}
			return nil
		}
	}
	return fmt.Errorf("settler %s not listed", lc.settlerID)
}

func (lc *lifecycleContext) theColonysLatestLogShouldBe(logType string) error {
	overview, err := helpers.Send[*colonyTypes.GetColonyOverviewResponse](context.Background(), lc.app, &colonyTypes.GetColonyOverviewQuery{
		ColonyID: lc.colonyID,
	})
	if err != nil {
		return err
	}
	logs := overview.Colony.Logs
	if len(logs) == 0 {
		return fmt.Errorf("colony has no logs")
	}
	if last := logs[len(logs)-1].Type; last != logType {
		return fmt.Errorf("expected latest log %s, got %s", logType, last)
	}
	return nil
}

func (lc *lifecycleContext) theRequestShouldFailWith(message string) error {
	if lc.err == nil {
		return fmt.Errorf("expected request to fail with %q", message)
	}
	if !strings.Contains(lc.err.Error(), message) {
		return fmt.Errorf("expected error containing %q, got %q", message, lc.err.Error())
	}
	lc.err = nil
	return nil
}

// InitializeAssignmentLifecycleScenario registers application level
// assignment steps
func InitializeAssignmentLifecycleScenario(ctx *godog.ScenarioContext) {
	lc := &lifecycleContext{}

	ctx.Before(func(c context.Context, s *godog.Scenario) (context.Context, error) {
		if !strings.Contains(s.Uri, "application") {
			return c, nil
		}
		return c, lc.reset()
	})

	ctx.Step(`^a colony founded by "([^"]*)" with one onboarded settler$`, lc.aColonyFoundedByWithOneOnboardedSettler)
	ctx.Step(`^the colony's quests are synced$`, lc.theColonysQuestsAreSynced)
	ctx.Step(`^the settler starts the "([^"]*)" quest$`, lc.theSettlerStartsTheQuest)
	ctx.Step(`^the settler starts resting for (\d+) hours?$`, lc.theSettlerStartsRestingFor)
	ctx.Step(`^the player informs the "([^"]*)" assignment$`, lc.thePlayerInformsTheAssignment)
	ctx.Step(`^(\d+) hours? pass(?:es)?$`, lc.hoursPass)
	ctx.Step(`^the "([^"]*)" assignment should be "([^"]*)"$`, lc.theAssignmentShouldBe)
	ctx.Step(`^the settler should be "([^"]*)"$`, lc.theSettlerShouldBe)
	ctx.Step(`^the colony's latest log should be "([^"]*)"$`, lc.theColonysLatestLogShouldBe)
	ctx.Step(`^the request should fail with "([^"]*)"$`, lc.theRequestShouldFailWith)
}
