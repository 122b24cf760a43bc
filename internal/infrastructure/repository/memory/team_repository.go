package memory

import (
	"context"
	"fmt"

	"github.com/fbsn11/team-management-app/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	var out []team.Team
	r.store.read(func(doc *Document) {
		out = append(make([]team.Team, 0, len(doc.Teams)), doc.Teams...)
	})
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	var (
		item  team.Team
		found bool
	)
	r.store.read(func(doc *Document) {
		for _, t := range doc.Teams {
			if t.ID == teamID {
				item, found = t, true
				return
			}
		}
	})
	return item, found, nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) error {
	var err error
	r.store.mutate(func(doc *Document) (Change, bool) {
		for _, t := range doc.Teams {
			if t.ID == item.ID {
				err = fmt.Errorf("team %s already exists", item.ID)
				return Change{}, false
			}
		}
		doc.Teams = append(doc.Teams, item)
		return Change{Collection: CollectionTeams}, true
	})
	return err
}

func (r *TeamRepository) Update(_ context.Context, item team.Team) error {
	err := fmt.Errorf("%w: %s", team.ErrNotFound, item.ID)
	r.store.mutate(func(doc *Document) (Change, bool) {
		for idx := range doc.Teams {
			if doc.Teams[idx].ID == item.ID {
				doc.Teams[idx] = item
				err = nil
				return Change{Collection: CollectionTeams}, true
			}
		}
		return Change{}, false
	})
	return err
}

func (r *TeamRepository) Delete(_ context.Context, teamID string) error {
	r.store.mutate(func(doc *Document) (Change, bool) {
		for idx := range doc.Teams {
			if doc.Teams[idx].ID == teamID {
				doc.Teams = append(doc.Teams[:idx], doc.Teams[idx+1:]...)
				return Change{Collection: CollectionTeams}, true
			}
		}
		return Change{}, false
	})
	return nil
}
