// Package appearance derives per-player appearance counts from lineups.
package appearance

import (
	"sort"

	"github.com/fbsn11/team-management-app/internal/domain/formation"
	"github.com/fbsn11/team-management-app/internal/domain/lineup"
)

// Stat is the number of lineups a player appeared in, split by role.
type Stat struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Total    int    `json:"total"`
	AsGK     int    `json:"asGK"`
	AsField  int    `json:"asField"`
}

// Aggregate counts appearances over lineups. Open slots are skipped.
// The result is sorted by Total descending; ties keep first-seen order.
// The name is the one recorded at the player's first appearance.
func Aggregate(lineups []lineup.Lineup) []Stat {
	index := make(map[string]int)
	out := make([]Stat, 0)

	for _, l := range lineups {
		for _, pos := range l.Positions {
			if !pos.Filled() {
				continue
			}
			i, ok := index[pos.PlayerID]
			if !ok {
				i = len(out)
				index[pos.PlayerID] = i
				out = append(out, Stat{PlayerID: pos.PlayerID, Name: pos.PlayerName})
			}

			out[i].Total++
			if formation.IsGoalkeeper(pos.Slot) {
				out[i].AsGK++
			} else {
				out[i].AsField++
			}
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Total > out[b].Total
	})
	return out
}

func ByPlayer(stats []Stat) map[string]Stat {
	out := make(map[string]Stat, len(stats))
	for _, s := range stats {
		out[s.PlayerID] = s
	}
	return out
}
