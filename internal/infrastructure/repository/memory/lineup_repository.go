package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/fbsn11/team-management-app/internal/domain/lineup"
	idgen "github.com/fbsn11/team-management-app/internal/platform/id"
)

// LineupRepository stores lineups in the shared document. It assigns IDs
// to lineups created without one and stamps UpdatedAt on every update.
type LineupRepository struct {
	store *Store
	ids   idgen.Generator
	now   func() time.Time
}

// NewLineupRepository falls back to UUIDv7 IDs when ids is nil.
func NewLineupRepository(store *Store, ids idgen.Generator) *LineupRepository {
	if ids == nil {
		ids = idgen.NewUUIDGenerator()
	}
	return &LineupRepository{store: store, ids: ids, now: time.Now}
}

// Create stores item and returns it as stored.
func (r *LineupRepository) Create(_ context.Context, item lineup.Lineup) (lineup.Lineup, error) {
	item = item.Clone()
	if item.ID == "" {
		id, err := r.ids.NewID()
		if err != nil {
			return lineup.Lineup{}, fmt.Errorf("generate lineup id: %w", err)
		}
		item.ID = id
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = r.now().UTC()
	}
	if err := item.Validate(); err != nil {
		return lineup.Lineup{}, fmt.Errorf("create lineup: %w", err)
	}

	var err error
	r.store.mutate(func(doc *Document) (Change, bool) {
		for _, l := range doc.Lineups {
			if l.ID == item.ID {
				err = fmt.Errorf("lineup %s already exists", item.ID)
				return Change{}, false
			}
		}
		doc.Lineups = append(doc.Lineups, item.Clone())
		return lineupChange(item.MatchID), true
	})
	if err != nil {
		return lineup.Lineup{}, err
	}
	return item, nil
}

// Update applies patch and moves UpdatedAt strictly past the stored
// lineup's last modification. A later UpdatedAt carried by the patch wins.
func (r *LineupRepository) Update(_ context.Context, lineupID string, patch lineup.Patch) (lineup.Lineup, error) {
	var (
		updated lineup.Lineup
		found   bool
	)
	now := r.now().UTC()
	r.store.mutate(func(doc *Document) (Change, bool) {
		for idx := range doc.Lineups {
			if doc.Lineups[idx].ID != lineupID {
				continue
			}
			prev := doc.Lineups[idx]
			next := patch.Apply(prev)
			stamp := lineup.NextModified(prev, now)
			if patch.UpdatedAt != nil && patch.UpdatedAt.After(stamp) {
				stamp = *patch.UpdatedAt
			}
			next.UpdatedAt = &stamp

			doc.Lineups[idx] = next
			updated, found = next.Clone(), true
			return lineupChange(updated.MatchID), true
		}
		return Change{}, false
	})
	if !found {
		return lineup.Lineup{}, fmt.Errorf("%w: %s", lineup.ErrNotFound, lineupID)
	}
	return updated, nil
}

func (r *LineupRepository) Delete(_ context.Context, lineupID string) error {
	r.store.mutate(func(doc *Document) (Change, bool) {
		for idx := range doc.Lineups {
			if doc.Lineups[idx].ID == lineupID {
				matchID := doc.Lineups[idx].MatchID
				doc.Lineups = append(doc.Lineups[:idx], doc.Lineups[idx+1:]...)
				return lineupChange(matchID), true
			}
		}
		return Change{}, false
	})
	return nil
}

func (r *LineupRepository) GetByID(_ context.Context, lineupID string) (lineup.Lineup, bool, error) {
	var (
		item  lineup.Lineup
		found bool
	)
	r.store.read(func(doc *Document) {
		for _, l := range doc.Lineups {
			if l.ID == lineupID {
				item, found = l.Clone(), true
				return
			}
		}
	})
	return item, found, nil
}

func (r *LineupRepository) ListByMatch(_ context.Context, matchID string) ([]lineup.Lineup, error) {
	out := make([]lineup.Lineup, 0)
	r.store.read(func(doc *Document) {
		for _, l := range doc.Lineups {
			if l.MatchID == matchID {
				out = append(out, l.Clone())
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// DeleteWhere removes every lineup matching predicate and returns the count.
func (r *LineupRepository) DeleteWhere(_ context.Context, predicate func(lineup.Lineup) bool) (int, error) {
	var matchIDs []string
	removed := 0
	r.store.mutate(func(doc *Document) (Change, bool) {
		doc.Lineups = slices.DeleteFunc(doc.Lineups, func(l lineup.Lineup) bool {
			if !predicate(l) {
				return false
			}
			removed++
			if !slices.Contains(matchIDs, l.MatchID) {
				matchIDs = append(matchIDs, l.MatchID)
			}
			return true
		})
		return Change{Collection: CollectionLineups, MatchIDs: matchIDs}, removed > 0
	})
	return removed, nil
}

func lineupChange(matchID string) Change {
	return Change{Collection: CollectionLineups, MatchIDs: []string{matchID}}
}
