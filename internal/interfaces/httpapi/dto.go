package httpapi

import (
	"slices"
	"time"

	"github.com/fbsn11/team-management-app/internal/domain/appearance"
	"github.com/fbsn11/team-management-app/internal/domain/formation"
	"github.com/fbsn11/team-management-app/internal/domain/lineup"
	"github.com/fbsn11/team-management-app/internal/domain/match"
	"github.com/fbsn11/team-management-app/internal/domain/player"
	"github.com/fbsn11/team-management-app/internal/domain/team"
	"github.com/fbsn11/team-management-app/internal/usecase"
)

type teamRequest struct {
	Name               string `json:"name" validate:"required,max=100"`
	DefaultPlayerCount int    `json:"defaultPlayerCount" validate:"gte=0"`
}

type playerRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Memo string `json:"memo" validate:"max=500"`
}

type matchRequest struct {
	Datetime          time.Time `json:"datetime" validate:"required"`
	Title             string    `json:"title" validate:"required,max=100"`
	Memo              string    `json:"memo" validate:"max=500"`
	PlayerCount       int       `json:"playerCount" validate:"gte=0"`
	SelectedPlayerIDs []string  `json:"selectedPlayerIds" validate:"omitempty,dive,required"`
}

type startDraftRequest struct {
	System            string   `json:"system" validate:"required"`
	EligiblePlayerIDs []string `json:"eligiblePlayerIds" validate:"omitempty,dive,required"`
}

type selectPlayerRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
}

type slotRequest struct {
	SlotIndex *int `json:"slotIndex" validate:"required"`
}

type teamDTO struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	DefaultPlayerCount int    `json:"defaultPlayerCount"`
	CreatedAt          string `json:"createdAt"`
}

type playerDTO struct {
	ID     string `json:"id"`
	TeamID string `json:"teamId"`
	Name   string `json:"name"`
	Memo   string `json:"memo,omitempty"`
}

type matchDTO struct {
	ID                string   `json:"id"`
	TeamID            string   `json:"teamId"`
	Datetime          string   `json:"datetime"`
	Title             string   `json:"title"`
	Memo              string   `json:"memo,omitempty"`
	PlayerCount       int      `json:"playerCount"`
	Format            string   `json:"format"`
	SelectedPlayerIDs []string `json:"selectedPlayerIds"`
}

type systemDTO struct {
	Name  string   `json:"name"`
	Slots []string `json:"slots"`
}

type formationGroupDTO struct {
	PlayerCount int         `json:"playerCount"`
	Label       string      `json:"label"`
	Systems     []systemDTO `json:"systems"`
}

type slotDTO struct {
	Index      int    `json:"index"`
	Position   string `json:"position"`
	PlayerID   string `json:"playerId,omitempty"`
	PlayerName string `json:"playerName,omitempty"`
}

type positionGroupDTO struct {
	Position string    `json:"position"`
	Slots    []slotDTO `json:"slots"`
}

type lineupDTO struct {
	ID                string             `json:"id"`
	MatchID           string             `json:"matchId"`
	TeamID            string             `json:"teamId"`
	System            string             `json:"system"`
	SelectedPlayerIDs []string           `json:"selectedPlayerIds"`
	Positions         []slotDTO          `json:"positions"`
	Groups            []positionGroupDTO `json:"groups"`
	Bench             []string           `json:"bench"`
	Appearances       appearancesDTO     `json:"appearances"`
	CreatedAt         string             `json:"createdAt"`
	UpdatedAt         string             `json:"updatedAt,omitempty"`
}

type draftDTO struct {
	ID       string      `json:"id"`
	MatchID  string      `json:"matchId"`
	LineupID string      `json:"lineupId,omitempty"`
	Editing  bool        `json:"editing"`
	System   systemDTO   `json:"system"`
	Slots    []slotDTO   `json:"slots"`
	Bench    []playerDTO `json:"bench"`
	Pending  string      `json:"pendingPlayerId,omitempty"`
	Open     int         `json:"openSlots"`

	Appearances appearancesDTO `json:"appearances"`
}

// appearanceDTO is a player's record across the match's committed lineups.
type appearanceDTO struct {
	Total         int `json:"total"`
	AsGoalkeeper  int `json:"asGoalkeeper"`
	AsFieldPlayer int `json:"asFieldPlayer"`
}

// appearancesDTO is keyed by player id. Players without appearances get zeros.
type appearancesDTO map[string]appearanceDTO

type statDTO struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Total    int    `json:"total"`
	AsGK     int    `json:"asGoalkeeper"`
	AsField  int    `json:"asFieldPlayer"`
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:                 v.ID,
		Name:               v.Name,
		DefaultPlayerCount: v.DefaultPlayerCount,
		CreatedAt:          v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{ID: v.ID, TeamID: v.TeamID, Name: v.Name, Memo: v.Memo}
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:                v.ID,
		TeamID:            v.TeamID,
		Datetime:          v.Datetime.UTC().Format(time.RFC3339),
		Title:             v.Title,
		Memo:              v.Memo,
		PlayerCount:       v.PlayerCount,
		Format:            formation.Label(v.PlayerCount),
		SelectedPlayerIDs: append([]string{}, v.SelectedPlayerIDs...),
	}
}

func systemToDTO(v formation.System) systemDTO {
	return systemDTO{Name: v.Name, Slots: append([]string{}, v.Slots...)}
}

func formationGroupToDTO(size int, systems []formation.System) formationGroupDTO {
	out := formationGroupDTO{
		PlayerCount: size,
		Label:       formation.Label(size),
		Systems:     make([]systemDTO, 0, len(systems)),
	}
	for _, s := range systems {
		out.Systems = append(out.Systems, systemToDTO(s))
	}
	return out
}

func slotsToDTO(slots []lineup.SlotAssignment) []slotDTO {
	out := make([]slotDTO, 0, len(slots))
	for i, s := range slots {
		out = append(out, slotDTO{Index: i, Position: s.Slot, PlayerID: s.PlayerID, PlayerName: s.PlayerName})
	}
	return out
}

func appearancesToDTO(stats map[string]appearance.Stat, playerIDs ...string) appearancesDTO {
	out := make(appearancesDTO, len(playerIDs))
	for _, id := range playerIDs {
		if id == "" {
			continue
		}
		s := stats[id]
		out[id] = appearanceDTO{Total: s.Total, AsGoalkeeper: s.AsGK, AsFieldPlayer: s.AsField}
	}
	return out
}

func lineupToDTO(item lineup.Lineup, stats map[string]appearance.Stat) lineupDTO {
	slots := slotsToDTO(item.Positions)
	indexBySlot := make(map[string]int, len(slots))
	for _, s := range slots {
		indexBySlot[s.Position] = s.Index
	}

	groups := make([]positionGroupDTO, 0, 4)
	for _, g := range item.Grouped() {
		group := positionGroupDTO{Position: string(g.Position), Slots: make([]slotDTO, 0, len(g.Assignments))}
		for _, a := range g.Assignments {
			group.Slots = append(group.Slots, slots[indexBySlot[a.Slot]])
		}
		groups = append(groups, group)
	}

	out := lineupDTO{
		ID:                item.ID,
		MatchID:           item.MatchID,
		TeamID:            item.TeamID,
		System:            item.System,
		SelectedPlayerIDs: append([]string{}, item.SelectedPlayerIDs...),
		Positions:         slots,
		Groups:            groups,
		Bench:             item.Bench(),
		CreatedAt:         item.CreatedAt.UTC().Format(time.RFC3339Nano),
	}

	players := slices.Clone(item.SelectedPlayerIDs)
	for _, pos := range item.Positions {
		players = append(players, pos.PlayerID)
	}
	out.Appearances = appearancesToDTO(stats, players...)
	if item.UpdatedAt != nil {
		out.UpdatedAt = item.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	return out
}

func draftToDTO(v usecase.Draft, stats map[string]appearance.Stat) draftDTO {
	bench := make([]playerDTO, 0, len(v.State.Bench))
	players := make([]string, 0, len(v.State.Bench)+len(v.State.Slots))
	for _, p := range v.State.Bench {
		bench = append(bench, playerToDTO(p))
		players = append(players, p.ID)
	}
	for _, s := range v.State.Slots {
		players = append(players, s.PlayerID)
	}
	return draftDTO{
		ID:       v.ID,
		MatchID:  v.MatchID,
		LineupID: v.LineupID,
		Editing:  v.State.Editing,
		System:   systemToDTO(v.State.System),
		Slots:    slotsToDTO(v.State.Slots),
		Bench:    bench,
		Pending:  v.State.Pending,
		Open:     v.State.Open,

		Appearances: appearancesToDTO(stats, players...),
	}
}
