package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/fbsn11/team-management-app/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func NewPlayerRepository(store *Store) *PlayerRepository {
	return &PlayerRepository{store: store}
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID string) ([]player.Player, error) {
	out := make([]player.Player, 0)
	r.store.read(func(doc *Document) {
		for _, p := range doc.Players {
			if p.TeamID == teamID {
				out = append(out, p)
			}
		}
	})
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	var (
		item  player.Player
		found bool
	)
	r.store.read(func(doc *Document) {
		for _, p := range doc.Players {
			if p.ID == playerID {
				item, found = p, true
				return
			}
		}
	})
	return item, found, nil
}

// GetByIDs returns the players in the order of playerIDs, skipping unknown ids.
func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	out := make([]player.Player, 0, len(playerIDs))
	r.store.read(func(doc *Document) {
		byID := make(map[string]player.Player, len(doc.Players))
		for _, p := range doc.Players {
			byID[p.ID] = p
		}
		for _, id := range playerIDs {
			if p, ok := byID[id]; ok {
				out = append(out, p)
			}
		}
	})
	return out, nil
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) error {
	var err error
	r.store.mutate(func(doc *Document) (Change, bool) {
		for _, p := range doc.Players {
			if p.ID == item.ID {
				err = fmt.Errorf("player %s already exists", item.ID)
				return Change{}, false
			}
		}
		doc.Players = append(doc.Players, item)
		return Change{Collection: CollectionPlayers}, true
	})
	return err
}

func (r *PlayerRepository) Update(_ context.Context, item player.Player) error {
	err := fmt.Errorf("%w: %s", player.ErrNotFound, item.ID)
	r.store.mutate(func(doc *Document) (Change, bool) {
		for idx := range doc.Players {
			if doc.Players[idx].ID == item.ID {
				doc.Players[idx] = item
				err = nil
				return Change{Collection: CollectionPlayers}, true
			}
		}
		return Change{}, false
	})
	return err
}

func (r *PlayerRepository) Delete(_ context.Context, playerID string) error {
	r.store.mutate(func(doc *Document) (Change, bool) {
		before := len(doc.Players)
		doc.Players = slices.DeleteFunc(doc.Players, func(p player.Player) bool { return p.ID == playerID })
		return Change{Collection: CollectionPlayers}, len(doc.Players) != before
	})
	return nil
}

func (r *PlayerRepository) DeleteByTeam(_ context.Context, teamID string) (int, error) {
	removed := 0
	r.store.mutate(func(doc *Document) (Change, bool) {
		before := len(doc.Players)
		doc.Players = slices.DeleteFunc(doc.Players, func(p player.Player) bool { return p.TeamID == teamID })
		removed = before - len(doc.Players)
		return Change{Collection: CollectionPlayers}, removed > 0
	})
	return removed, nil
}
