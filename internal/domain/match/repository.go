package match

import "context"

// Repository describes match persistence needs from use cases.
// ListByTeam returns the most recent match first.
type Repository interface {
	ListByTeam(ctx context.Context, teamID string) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	Create(ctx context.Context, match Match) error
	Update(ctx context.Context, match Match) error
	Delete(ctx context.Context, matchID string) error
	DeleteByTeam(ctx context.Context, teamID string) ([]string, error)
	RemovePlayer(ctx context.Context, playerID string) ([]string, error)
}
