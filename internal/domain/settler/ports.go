package settler

import "context"

// Repository persists settlers
type Repository interface {
	Add(ctx context.Context, s *Settler) error
	FindByID(ctx context.Context, id string) (*Settler, error)
	FindByColony(ctx context.Context, colonyID string) ([]*Settler, error)
	Save(ctx context.Context, s *Settler) error
	// SaveIfStatus saves only while the stored status still equals expected,
	// otherwise it returns shared.ErrSettlerNotIdle and writes nothing
	SaveIfStatus(ctx context.Context, s *Settler, expected Status) error
	Delete(ctx context.Context, id string) error
	CountByColony(ctx context.Context, colonyID string) (int, error)
}
