package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/fbsn11/team-management-app/internal/domain/match"
)

type MatchRepository struct {
	store *Store
}

func NewMatchRepository(store *Store) *MatchRepository {
	return &MatchRepository{store: store}
}

func (r *MatchRepository) ListByTeam(_ context.Context, teamID string) ([]match.Match, error) {
	out := make([]match.Match, 0)
	r.store.read(func(doc *Document) {
		for _, m := range doc.Matches {
			if m.TeamID == teamID {
				out = append(out, m.Clone())
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Datetime.After(out[j].Datetime)
	})
	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	var (
		item  match.Match
		found bool
	)
	r.store.read(func(doc *Document) {
		for _, m := range doc.Matches {
			if m.ID == matchID {
				item, found = m.Clone(), true
				return
			}
		}
	})
	return item, found, nil
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) error {
	var err error
	r.store.mutate(func(doc *Document) (Change, bool) {
		for _, m := range doc.Matches {
			if m.ID == item.ID {
				err = fmt.Errorf("match %s already exists", item.ID)
				return Change{}, false
			}
		}
		doc.Matches = append(doc.Matches, item.Clone())
		return Change{Collection: CollectionMatches, MatchIDs: []string{item.ID}}, true
	})
	return err
}

func (r *MatchRepository) Update(_ context.Context, item match.Match) error {
	err := fmt.Errorf("%w: %s", match.ErrNotFound, item.ID)
	r.store.mutate(func(doc *Document) (Change, bool) {
		for idx := range doc.Matches {
			if doc.Matches[idx].ID == item.ID {
				doc.Matches[idx] = item.Clone()
				err = nil
				return Change{Collection: CollectionMatches, MatchIDs: []string{item.ID}}, true
			}
		}
		return Change{}, false
	})
	return err
}

func (r *MatchRepository) Delete(_ context.Context, matchID string) error {
	r.store.mutate(func(doc *Document) (Change, bool) {
		before := len(doc.Matches)
		doc.Matches = slices.DeleteFunc(doc.Matches, func(m match.Match) bool { return m.ID == matchID })
		return Change{Collection: CollectionMatches, MatchIDs: []string{matchID}}, len(doc.Matches) != before
	})
	return nil
}

// DeleteByTeam removes every match of the team and returns their ids.
func (r *MatchRepository) DeleteByTeam(_ context.Context, teamID string) ([]string, error) {
	var removed []string
	r.store.mutate(func(doc *Document) (Change, bool) {
		doc.Matches = slices.DeleteFunc(doc.Matches, func(m match.Match) bool {
			if m.TeamID == teamID {
				removed = append(removed, m.ID)
				return true
			}
			return false
		})
		return Change{Collection: CollectionMatches, MatchIDs: removed}, len(removed) > 0
	})
	return removed, nil
}

// RemovePlayer drops playerID from every match selection and returns the
// ids of the matches that changed.
func (r *MatchRepository) RemovePlayer(_ context.Context, playerID string) ([]string, error) {
	var changed []string
	r.store.mutate(func(doc *Document) (Change, bool) {
		for idx := range doc.Matches {
			m := &doc.Matches[idx]
			if !m.HasParticipant(playerID) {
				continue
			}
			m.SelectedPlayerIDs = slices.DeleteFunc(slices.Clone(m.SelectedPlayerIDs), func(id string) bool { return id == playerID })
			changed = append(changed, m.ID)
		}
		return Change{Collection: CollectionMatches, MatchIDs: changed}, len(changed) > 0
	})
	return changed, nil
}
