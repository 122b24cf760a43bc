package lineup

import (
	"fmt"
	"slices"
	"time"

	"github.com/fbsn11/team-management-app/internal/domain/formation"
)

// SlotAssignment pairs a slot label with the player occupying it.
// An empty PlayerID means the slot is open.
type SlotAssignment struct {
	Slot       string `json:"position"`
	PlayerID   string `json:"playerId,omitempty"`
	PlayerName string `json:"playerName,omitempty"`
}

func (a SlotAssignment) Filled() bool {
	return a.PlayerID != ""
}

// Lineup is one committed set of slot assignments for a match.
type Lineup struct {
	ID                string           `json:"id"`
	MatchID           string           `json:"matchId"`
	TeamID            string           `json:"teamId"`
	SelectedPlayerIDs []string         `json:"selectedPlayerIds"`
	System            string           `json:"system"`
	Positions         []SlotAssignment `json:"positions"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         *time.Time       `json:"updatedAt,omitempty"`
}

func (l Lineup) Clone() Lineup {
	l.SelectedPlayerIDs = slices.Clone(l.SelectedPlayerIDs)
	l.Positions = slices.Clone(l.Positions)
	if l.UpdatedAt != nil {
		at := *l.UpdatedAt
		l.UpdatedAt = &at
	}
	return l
}

// LastModified is UpdatedAt when set, CreatedAt otherwise.
func (l Lineup) LastModified() time.Time {
	if l.UpdatedAt != nil && l.UpdatedAt.After(l.CreatedAt) {
		return *l.UpdatedAt
	}
	return l.CreatedAt
}

// Bench lists the selected players holding no slot, in selection order.
func (l Lineup) Bench() []string {
	assigned := make(map[string]struct{}, len(l.Positions))
	for _, pos := range l.Positions {
		if pos.Filled() {
			assigned[pos.PlayerID] = struct{}{}
		}
	}
	out := make([]string, 0, len(l.SelectedPlayerIDs))
	for _, id := range l.SelectedPlayerIDs {
		if _, ok := assigned[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// NextModified is the UpdatedAt for an edit of l made at now: now itself,
// or one nanosecond past LastModified when the clock has not moved on.
func NextModified(l Lineup, now time.Time) time.Time {
	if last := l.LastModified(); !now.After(last) {
		return last.Add(time.Nanosecond)
	}
	return now
}

func (l Lineup) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("lineup id is required")
	}
	if l.MatchID == "" {
		return fmt.Errorf("lineup match id is required")
	}
	if l.System == "" {
		return fmt.Errorf("lineup system is required")
	}
	if len(l.Positions) == 0 {
		return fmt.Errorf("lineup positions are required")
	}

	slots := make(map[string]struct{}, len(l.Positions))
	players := make(map[string]struct{}, len(l.Positions))
	for _, pos := range l.Positions {
		if _, dup := slots[pos.Slot]; dup {
			return fmt.Errorf("lineup slot %s appears more than once", pos.Slot)
		}
		slots[pos.Slot] = struct{}{}

		if !pos.Filled() {
			continue
		}
		if _, dup := players[pos.PlayerID]; dup {
			return fmt.Errorf("lineup player %s occupies more than one slot", pos.PlayerID)
		}
		players[pos.PlayerID] = struct{}{}
	}

	return nil
}

// PositionGroup is the set of assignments sharing one position type.
type PositionGroup struct {
	Position    formation.PositionType
	Assignments []SlotAssignment
}

var groupOrder = []formation.PositionType{
	formation.PositionForward,
	formation.PositionMidfielder,
	formation.PositionDefender,
	formation.PositionGoalkeeper,
	formation.PositionFieldPlayer,
}

// Grouped arranges the positions front line first, the way a pitch is drawn.
func (l Lineup) Grouped() []PositionGroup {
	byType := make(map[formation.PositionType][]SlotAssignment)
	for _, pos := range l.Positions {
		t := formation.PositionOf(pos.Slot)
		byType[t] = append(byType[t], pos)
	}

	out := make([]PositionGroup, 0, len(byType))
	for _, t := range groupOrder {
		if assignments, ok := byType[t]; ok {
			out = append(out, PositionGroup{Position: t, Assignments: assignments})
		}
	}
	return out
}

// Patch carries the fields of an edit. Nil fields are left unchanged.
type Patch struct {
	SelectedPlayerIDs *[]string
	System            *string
	Positions         *[]SlotAssignment
	UpdatedAt         *time.Time
}

func (p Patch) Apply(l Lineup) Lineup {
	out := l.Clone()
	if p.SelectedPlayerIDs != nil {
		out.SelectedPlayerIDs = slices.Clone(*p.SelectedPlayerIDs)
	}
	if p.System != nil {
		out.System = *p.System
	}
	if p.Positions != nil {
		out.Positions = slices.Clone(*p.Positions)
	}
	if p.UpdatedAt != nil {
		at := *p.UpdatedAt
		out.UpdatedAt = &at
	}
	return out
}

// PatchFrom builds a full patch carrying every editable field of l.
func PatchFrom(l Lineup) Patch {
	selected := slices.Clone(l.SelectedPlayerIDs)
	system := l.System
	positions := slices.Clone(l.Positions)
	p := Patch{SelectedPlayerIDs: &selected, System: &system, Positions: &positions}
	if l.UpdatedAt != nil {
		at := *l.UpdatedAt
		p.UpdatedAt = &at
	}
	return p
}
