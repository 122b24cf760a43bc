package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	ListByTeam(ctx context.Context, teamID string) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	Create(ctx context.Context, player Player) error
	Update(ctx context.Context, player Player) error
	Delete(ctx context.Context, playerID string) error
	DeleteByTeam(ctx context.Context, teamID string) (int, error)
}
