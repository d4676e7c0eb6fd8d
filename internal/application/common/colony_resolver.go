package common

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colony-go/internal/domain/colony"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

// ColonyResolver loads the colony a request is scoped to, either by id or by
// its (user, server) pair. Handlers resolve the parent aggregate once here and
// pass it down instead of looking it up inside domain logic.
type ColonyResolver struct {
	colonies colony.Repository
}

func NewColonyResolver(colonies colony.Repository) *ColonyResolver {
	return &ColonyResolver{colonies: colonies}
}

// Resolve returns shared.ErrColonyNotFound when nothing matches. colonyID
// takes precedence over the (userID, serverID) pair.
func (r *ColonyResolver) Resolve(ctx context.Context, colonyID, userID, serverID string) (*colony.Colony, error) {
	if colonyID == "" && (userID == "" || serverID == "") {
		return nil, shared.NewValidationError("colony_id", "either colony_id or user_id and server_id must be provided")
	}

	if colonyID != "" {
		c, err := r.colonies.FindByID(ctx, colonyID)
		if err != nil {
			return nil, fmt.Errorf("failed to find colony %s: %w", colonyID, err)
		}
		return c, nil
	}

	c, err := r.colonies.FindByUserAndServer(ctx, userID, serverID)
	if err != nil {
		return nil, fmt.Errorf("failed to find colony for user %s on %s: %w", userID, serverID, err)
	}
	if c == nil {
		return nil, shared.NewDomainError(shared.ErrColonyNotFound, "user %s on server %s", userID, serverID)
	}
	return c, nil
}
