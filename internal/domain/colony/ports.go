package colony

import "context"

// Repository persists colonies
type Repository interface {
	// Create inserts a new colony. A taken (server, spiral index) pair
	// returns shared.ErrDuplicateIndex, a second colony for the same user
	// and server returns shared.ErrColonyAlreadyExists.
	Create(ctx context.Context, c *Colony) error
	FindByID(ctx context.Context, id string) (*Colony, error)
	// FindByUserAndServer returns nil, nil when the user has no colony there
	FindByUserAndServer(ctx context.Context, userID, serverID string) (*Colony, error)
	Save(ctx context.Context, c *Colony) error
	ListIDs(ctx context.Context) ([]string, error)
}

// InventoryRepository persists colony inventories
type InventoryRepository interface {
	// FindByColony returns an empty inventory when none was stored yet
	FindByColony(ctx context.Context, colonyID string) (*Inventory, error)
	Save(ctx context.Context, inv *Inventory) error
}
