package commands

import (
	"context"

	"github.com/andrescamacho/colony-go/internal/domain/colony"
	"github.com/andrescamacho/colony-go/internal/domain/settler"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

// loadColonySettler loads a colony and one of its settlers
func loadColonySettler(ctx context.Context, colonies colony.Repository, settlers settler.Repository, colonyID, settlerID string) (*colony.Colony, *settler.Settler, error) {
	col, err := colonies.FindByID(ctx, colonyID)
	if err != nil {
		return nil, nil, err
	}
	s, err := settlers.FindByID(ctx, settlerID)
	if err != nil {
		return nil, nil, err
	}
	if s.ColonyID() != col.ID() || !col.HasSettler(s.ID()) {
		return nil, nil, shared.NewDomainError(shared.ErrSettlerNotInColony, "settler %s", s.ID())
	}
	return col, s, nil
}

func validateColonySettler(colonyID, settlerID string) error {
	if colonyID == "" {
		return shared.NewValidationError("colony_id", "cannot be empty")
	}
	if settlerID == "" {
		return shared.NewValidationError("settler_id", "cannot be empty")
	}
	return nil
}
