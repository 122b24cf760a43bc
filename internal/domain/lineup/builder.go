package lineup

import (
	"fmt"
	"slices"
	"time"

	"github.com/fbsn11/team-management-app/internal/domain/formation"
	"github.com/fbsn11/team-management-app/internal/domain/player"
)

// Builder holds the transient state of one lineup being created or edited.
// At every point the bench is exactly the eligible players minus those
// occupying a slot.
type Builder struct {
	system   formation.System
	editing  bool
	eligible []player.Player
	byID     map[string]player.Player
	slots    []SlotAssignment
	bench    []string
	pending  string
}

// BuilderState is a read-only view of a Builder.
type BuilderState struct {
	System  formation.System `json:"system"`
	Editing bool             `json:"editing"`
	Slots   []SlotAssignment `json:"slots"`
	Bench   []player.Player  `json:"bench"`
	Pending string           `json:"pending,omitempty"`
	Open    int              `json:"open"`
}

// NewBuilder starts a builder for system. A nil existing starts a new
// lineup with every slot open; a non-nil existing restores a saved lineup.
func NewBuilder(system formation.System, eligible []player.Player, existing []SlotAssignment) (*Builder, error) {
	if len(system.Slots) == 0 {
		return nil, fmt.Errorf("%w: system %q has no slots", ErrUnknownSystem, system.Name)
	}

	b := &Builder{
		system:   system.Clone(),
		editing:  existing != nil,
		eligible: make([]player.Player, 0, len(eligible)),
		byID:     make(map[string]player.Player, len(eligible)),
	}
	for _, p := range eligible {
		if p.ID == "" {
			continue
		}
		if _, dup := b.byID[p.ID]; dup {
			continue
		}
		b.byID[p.ID] = p
		b.eligible = append(b.eligible, p)
	}

	if !b.editing && len(b.eligible) < len(system.Slots) {
		return nil, fmt.Errorf("%w: %s needs %d players, %d eligible", ErrInsufficientPlayers, system.Name, len(system.Slots), len(b.eligible))
	}

	if b.editing {
		if err := b.restore(existing); err != nil {
			return nil, err
		}
	} else {
		b.slots = make([]SlotAssignment, 0, len(system.Slots))
		for _, label := range system.Slots {
			b.slots = append(b.slots, SlotAssignment{Slot: label})
		}
	}

	assigned := make(map[string]struct{}, len(b.slots))
	for _, s := range b.slots {
		if s.Filled() {
			assigned[s.PlayerID] = struct{}{}
		}
	}
	b.bench = make([]string, 0, len(b.eligible))
	for _, p := range b.eligible {
		if _, ok := assigned[p.ID]; !ok {
			b.bench = append(b.bench, p.ID)
		}
	}

	return b, nil
}

func (b *Builder) restore(existing []SlotAssignment) error {
	if len(existing) != len(b.system.Slots) {
		return fmt.Errorf("%w: system %s has %d slots, lineup has %d", ErrSystemMismatch, b.system.Name, len(b.system.Slots), len(existing))
	}

	b.slots = make([]SlotAssignment, 0, len(existing))
	seen := make(map[string]struct{}, len(existing))
	for i, a := range existing {
		if a.Slot != b.system.Slots[i] {
			return fmt.Errorf("%w: slot %d is %s, system %s expects %s", ErrSystemMismatch, i, a.Slot, b.system.Name, b.system.Slots[i])
		}

		restored := SlotAssignment{Slot: a.Slot}
		if a.Filled() {
			_, eligible := b.byID[a.PlayerID]
			_, dup := seen[a.PlayerID]
			if eligible && !dup {
				restored.PlayerID = a.PlayerID
				restored.PlayerName = a.PlayerName
				if restored.PlayerName == "" {
					restored.PlayerName = b.byID[a.PlayerID].Name
				}
				seen[a.PlayerID] = struct{}{}
			}
		}
		b.slots = append(b.slots, restored)
	}
	return nil
}

// SelectBenchPlayer marks a bench player as pending, replacing any earlier choice.
func (b *Builder) SelectBenchPlayer(playerID string) error {
	if !slices.Contains(b.bench, playerID) {
		return fmt.Errorf("%w: %s", ErrNotOnBench, playerID)
	}
	b.pending = playerID
	return nil
}

// Assign places the pending player into the slot at index. An out of
// range index is ignored. A player already in the slot goes back to the bench.
func (b *Builder) Assign(index int) error {
	if b.pending == "" {
		return ErrNoPlayerSelected
	}
	if index < 0 || index >= len(b.slots) {
		return nil
	}

	id := b.pending
	for i := range b.slots {
		if b.slots[i].PlayerID == id {
			b.slots[i].PlayerID = ""
			b.slots[i].PlayerName = ""
		}
	}
	b.removeFromBench(id)

	if displaced := b.slots[index].PlayerID; displaced != "" {
		b.returnToBench(displaced)
	}
	b.slots[index].PlayerID = id
	b.slots[index].PlayerName = b.byID[id].Name
	b.pending = ""
	return nil
}

// Unassign clears the slot at index and returns its player to the bench.
func (b *Builder) Unassign(index int) {
	if index < 0 || index >= len(b.slots) {
		return
	}
	id := b.slots[index].PlayerID
	if id == "" {
		return
	}
	b.slots[index].PlayerID = ""
	b.slots[index].PlayerName = ""
	b.returnToBench(id)
}

func (b *Builder) removeFromBench(id string) {
	b.bench = slices.DeleteFunc(b.bench, func(v string) bool { return v == id })
}

func (b *Builder) returnToBench(id string) {
	if _, ok := b.byID[id]; !ok {
		return
	}
	if !slices.Contains(b.bench, id) {
		b.bench = append(b.bench, id)
	}
}

func (b *Builder) Editing() bool {
	return b.editing
}

func (b *Builder) System() formation.System {
	return b.system.Clone()
}

// Open counts the slots still without a player.
func (b *Builder) Open() int {
	open := 0
	for _, s := range b.slots {
		if !s.Filled() {
			open++
		}
	}
	return open
}

func (b *Builder) Snapshot() BuilderState {
	bench := make([]player.Player, 0, len(b.bench))
	for _, id := range b.bench {
		bench = append(bench, b.byID[id])
	}
	return BuilderState{
		System:  b.system.Clone(),
		Editing: b.editing,
		Slots:   slices.Clone(b.slots),
		Bench:   bench,
		Pending: b.pending,
		Open:    b.Open(),
	}
}

// Commit freezes the builder into a Lineup built on base.
//
// In create mode base carries the new identity (ID, MatchID, TeamID) and
// CreatedAt is set to now. In edit mode base is the stored lineup: its ID
// and CreatedAt are kept and UpdatedAt moves strictly past its last value.
func (b *Builder) Commit(base Lineup, now time.Time) (Lineup, error) {
	if open := b.Open(); open > 0 {
		return Lineup{}, &IncompleteError{Open: open}
	}
	if base.ID == "" {
		return Lineup{}, fmt.Errorf("lineup id is required")
	}

	out := base.Clone()
	out.System = b.system.Name
	out.Positions = slices.Clone(b.slots)
	out.SelectedPlayerIDs = make([]string, 0, len(b.eligible))
	for _, p := range b.eligible {
		out.SelectedPlayerIDs = append(out.SelectedPlayerIDs, p.ID)
	}

	if b.editing {
		updated := NextModified(base, now)
		out.UpdatedAt = &updated
	} else {
		out.CreatedAt = now
		out.UpdatedAt = nil
	}

	return out, nil
}
