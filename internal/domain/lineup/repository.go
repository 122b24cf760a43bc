package lineup

import "context"

// Repository is the durable collection of committed lineups.
// ListByMatch orders by CreatedAt ascending and is stable for equal times.
// Create assigns an ID when the lineup has none and returns what it stored.
// Update returns ErrNotFound for a missing id; Delete is idempotent.
type Repository interface {
	Create(ctx context.Context, lineup Lineup) (Lineup, error)
	Update(ctx context.Context, lineupID string, patch Patch) (Lineup, error)
	Delete(ctx context.Context, lineupID string) error
	GetByID(ctx context.Context, lineupID string) (Lineup, bool, error)
	ListByMatch(ctx context.Context, matchID string) ([]Lineup, error)
	DeleteWhere(ctx context.Context, predicate func(Lineup) bool) (int, error)
}
