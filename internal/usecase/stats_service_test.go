package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fbsn11/team-management-app/internal/domain/appearance"
	"github.com/fbsn11/team-management-app/internal/domain/lineup"
	"github.com/fbsn11/team-management-app/internal/infrastructure/repository/memory"
)

func TestStatsService_RefreshFollowsLineupChanges(t *testing.T) {
	f := newFixture(t)
	stats := NewStatsService(f.lineups, time.Hour, nil)
	unsubscribe := f.store.Subscribe(func(change memory.Change) {
		if change.Collection == memory.CollectionLineups {
			stats.Refresh(t.Context(), change.MatchIDs...)
		}
	})
	defer unsubscribe()

	empty, err := stats.MatchStats(t.Context(), "match-1")
	require.NoError(t, err)
	assert.Empty(t, empty)

	commitFullLineup(t, f)

	got, err := stats.MatchStats(t.Context(), "match-1")
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, appearance.Stat{PlayerID: "p1", Name: "Aoki", Total: 1, AsGK: 1}, got[0])
	assert.Equal(t, appearance.Stat{PlayerID: "p2", Name: "Baba", Total: 1, AsField: 1}, got[1])
}

func TestStatsService_ServesCachedCopy(t *testing.T) {
	f := newFixture(t)
	stats := NewStatsService(f.lineups, time.Hour, nil)

	_, err := f.lineups.Create(t.Context(), lineup.Lineup{
		ID:      "lu-a",
		MatchID: "match-1",
		System:  "1-2-1",
		Positions: []lineup.SlotAssignment{
			{Slot: "GK", PlayerID: "p1", PlayerName: "Aoki"},
			{Slot: "FP1"},
		},
		CreatedAt: fixtureNow,
	})
	require.NoError(t, err)

	first, err := stats.MatchStats(t.Context(), "match-1")
	require.NoError(t, err)
	require.Len(t, first, 1)
	first[0].Total = 99

	// no subscription: the cached value stays until refreshed
	require.NoError(t, f.lineups.Delete(t.Context(), "lu-a"))
	second, err := stats.MatchStats(t.Context(), "match-1")
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 1, second[0].Total)

	stats.Refresh(t.Context(), "match-1")
	third, err := stats.MatchStats(t.Context(), "match-1")
	require.NoError(t, err)
	assert.Empty(t, third)
}
