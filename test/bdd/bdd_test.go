package bdd

import (
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/colony-go/test/bdd/steps"
	"github.com/andrescamacho/colony-go/test/helpers"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/domain", "features/application"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	// Domain scenarios
	steps.InitializeSpiralScenario(sc)
	steps.InitializeCarryScenario(sc)

	// Application scenarios run the whole mediator pipeline on the shared database
	steps.InitializeAssignmentLifecycleScenario(sc)
}

func TestMain(m *testing.M) {
	// One migrated database for every application scenario; tables are
	// truncated before each one
	if err := helpers.InitializeSharedTestDB(); err != nil {
		panic("Failed to initialize shared test database: " + err.Error())
	}
	defer helpers.CloseSharedTestDB()

	os.Exit(m.Run())
}
