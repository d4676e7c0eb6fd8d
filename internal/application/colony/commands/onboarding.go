package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colony-go/internal/application/colony/types"
	"github.com/andrescamacho/colony-go/internal/application/common"
	settlerServices "github.com/andrescamacho/colony-go/internal/application/settler/services"
	settlerTypes "github.com/andrescamacho/colony-go/internal/application/settler/types"
	"github.com/andrescamacho/colony-go/internal/domain/colony"
	"github.com/andrescamacho/colony-go/internal/domain/settler"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

// OnboardingCandidates is how many settlers a new colony chooses from
const OnboardingCandidates = 3

type (
	GenerateOnboardingSettlersCommand  = types.GenerateOnboardingSettlersCommand
	GenerateOnboardingSettlersResponse = types.GenerateOnboardingSettlersResponse
	ChooseOnboardingSettlerCommand     = types.ChooseOnboardingSettlerCommand
	ChooseOnboardingSettlerResponse    = types.ChooseOnboardingSettlerResponse
)

// GenerateOnboardingSettlersHandler rolls the onboarding candidates. Calling
// it again before a choice is made returns the same candidates.
type GenerateOnboardingSettlersHandler struct {
	uow       common.UnitOfWork
	colonies  colony.Repository
	settlers  settler.Repository
	recruiter *settlerServices.Recruiter
	clock     shared.Clock
}

// NewGenerateOnboardingSettlersHandler creates a new GenerateOnboardingSettlersHandler
func NewGenerateOnboardingSettlersHandler(
	uow common.UnitOfWork,
	colonies colony.Repository,
	settlers settler.Repository,
	recruiter *settlerServices.Recruiter,
	clock shared.Clock,
) *GenerateOnboardingSettlersHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GenerateOnboardingSettlersHandler{
		uow:       uow,
		colonies:  colonies,
		settlers:  settlers,
		recruiter: recruiter,
		clock:     clock,
	}
}

// Handle executes the GenerateOnboardingSettlers command
func (h *GenerateOnboardingSettlersHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*GenerateOnboardingSettlersCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GenerateOnboardingSettlersCommand")
	}
	if cmd.ColonyID == "" {
		return nil, shared.NewValidationError("colony_id", "cannot be empty")
	}

	now := h.clock.Now()
	response := &GenerateOnboardingSettlersResponse{}

	err := h.uow.Do(ctx, func(ctx context.Context) error {
		response.Candidates = nil

		col, err := h.colonies.FindByID(ctx, cmd.ColonyID)
		if err != nil {
			return err
		}
		if col.SettlerCount() > 0 {
			return shared.NewDomainError(shared.ErrOnboardingComplete, "colony %s", col.ID())
		}

		existing, err := h.settlers.FindByColony(ctx, col.ID())
		if err != nil {
			return fmt.Errorf("failed to load settlers: %w", err)
		}
		for _, s := range existing {
			if s.IsCandidate() {
				response.Candidates = append(response.Candidates, settlerTypes.NewSettlerView(s))
			}
		}
		if len(response.Candidates) > 0 {
			return nil
		}

		for i := 0; i < OnboardingCandidates; i++ {
			s, err := h.recruiter.Recruit(col.ID(), now)
			if err != nil {
				return fmt.Errorf("failed to generate candidate: %w", err)
			}
			s.MarkCandidate()
			if err := h.settlers.Add(ctx, s); err != nil {
				return fmt.Errorf("failed to add candidate: %w", err)
			}
			response.Candidates = append(response.Candidates, settlerTypes.NewSettlerView(s))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// ChooseOnboardingSettlerHandler activates one candidate as the colony's
// first settler and deletes the others
type ChooseOnboardingSettlerHandler struct {
	uow      common.UnitOfWork
	colonies colony.Repository
	settlers settler.Repository
	clock    shared.Clock
}

// NewChooseOnboardingSettlerHandler creates a new ChooseOnboardingSettlerHandler
func NewChooseOnboardingSettlerHandler(uow common.UnitOfWork, colonies colony.Repository, settlers settler.Repository, clock shared.Clock) *ChooseOnboardingSettlerHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &ChooseOnboardingSettlerHandler{
		uow:      uow,
		colonies: colonies,
		settlers: settlers,
		clock:    clock,
	}
}

// Handle executes the ChooseOnboardingSettler command
func (h *ChooseOnboardingSettlerHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ChooseOnboardingSettlerCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ChooseOnboardingSettlerCommand")
	}
	if cmd.ColonyID == "" {
		return nil, shared.NewValidationError("colony_id", "cannot be empty")
	}
	if cmd.SettlerID == "" {
		return nil, shared.NewValidationError("settler_id", "cannot be empty")
	}

	now := h.clock.Now()
	response := &ChooseOnboardingSettlerResponse{}

	err := h.uow.Do(ctx, func(ctx context.Context) error {
		response.Discarded = nil

		col, err := h.colonies.FindByID(ctx, cmd.ColonyID)
		if err != nil {
			return err
		}
		chosen, err := h.settlers.FindByID(ctx, cmd.SettlerID)
		if err != nil {
			return err
		}
		if chosen.ColonyID() != col.ID() {
			return shared.NewDomainError(shared.ErrSettlerNotInColony, "settler %s", chosen.ID())
		}
		if err := chosen.Activate(now); err != nil {
			return err
		}
		if err := h.settlers.Save(ctx, chosen); err != nil {
			return fmt.Errorf("failed to save settler: %w", err)
		}

		all, err := h.settlers.FindByColony(ctx, col.ID())
		if err != nil {
			return fmt.Errorf("failed to load settlers: %w", err)
		}
		for _, s := range all {
			if s.ID() == chosen.ID() || !s.IsCandidate() {
				continue
			}
			if err := h.settlers.Delete(ctx, s.ID()); err != nil {
				return fmt.Errorf("failed to discard candidate %s: %w", s.ID(), err)
			}
			response.Discarded = append(response.Discarded, s.ID())
		}

		col.AddSettler(chosen.ID())
		col.AddLogEntry(colony.LogSettlerJoined, fmt.Sprintf("%s joined %s", chosen.Name(), col.Name()), map[string]interface{}{
			"settler_id": chosen.ID(),
		}, now)
		if err := h.colonies.Save(ctx, col); err != nil {
			return fmt.Errorf("failed to save colony: %w", err)
		}

		response.Settler = settlerTypes.NewSettlerView(chosen)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
