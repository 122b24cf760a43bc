package lineup

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/fbsn11/team-management-app/internal/domain/formation"
)

func TestLineupValidate(t *testing.T) {
	l := Lineup{
		ID:      "l1",
		MatchID: "m1",
		System:  "1-2-1",
		Positions: []SlotAssignment{
			{Slot: "GK", PlayerID: "p1"},
			{Slot: "FP1", PlayerID: "p2"},
		},
	}
	if err := l.Validate(); err != nil {
		t.Fatalf("expected valid lineup, got %v", err)
	}

	dupPlayer := l.Clone()
	dupPlayer.Positions[1].PlayerID = "p1"
	if err := dupPlayer.Validate(); err == nil {
		t.Fatalf("expected duplicate player error")
	}

	dupSlot := l.Clone()
	dupSlot.Positions[1].Slot = "GK"
	if err := dupSlot.Validate(); err == nil {
		t.Fatalf("expected duplicate slot error")
	}
}

func TestPatchApply(t *testing.T) {
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	l := Lineup{ID: "l1", System: "3-3-1", SelectedPlayerIDs: []string{"a"}, CreatedAt: created}

	system := "2-3-2"
	updated := created.Add(time.Hour)
	got := Patch{System: &system, UpdatedAt: &updated}.Apply(l)

	if got.System != "2-3-2" || got.UpdatedAt == nil || !got.UpdatedAt.Equal(updated) {
		t.Fatalf("patch not applied: %+v", got)
	}
	if diff := cmp.Diff([]string{"a"}, got.SelectedPlayerIDs); diff != "" {
		t.Fatalf("untouched field changed (-want +got):\n%s", diff)
	}
	if l.System != "3-3-1" {
		t.Fatalf("patch mutated the original")
	}
}

func TestLineupGrouped(t *testing.T) {
	l := Lineup{Positions: []SlotAssignment{
		{Slot: "GK", PlayerID: "g"},
		{Slot: "DF1", PlayerID: "d1"},
		{Slot: "DF2", PlayerID: "d2"},
		{Slot: "FW1", PlayerID: "f"},
	}}

	groups := l.Grouped()
	got := make([]formation.PositionType, 0, len(groups))
	for _, g := range groups {
		got = append(got, g.Position)
	}
	want := []formation.PositionType{formation.PositionForward, formation.PositionDefender, formation.PositionGoalkeeper}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("group order mismatch (-want +got):\n%s", diff)
	}
	if len(groups[1].Assignments) != 2 {
		t.Fatalf("expected two defenders, got %d", len(groups[1].Assignments))
	}
}

func TestLineupBench(t *testing.T) {
	l := Lineup{
		SelectedPlayerIDs: []string{"a", "b", "c", "d"},
		Positions: []SlotAssignment{
			{Slot: "GK", PlayerID: "c"},
			{Slot: "FP1"},
			{Slot: "FP2", PlayerID: "a"},
		},
	}
	if diff := cmp.Diff([]string{"b", "d"}, l.Bench()); diff != "" {
		t.Fatalf("bench mismatch (-want +got):\n%s", diff)
	}
}

func TestNextModified(t *testing.T) {
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	l := Lineup{CreatedAt: created}

	if got := NextModified(l, created.Add(time.Minute)); !got.Equal(created.Add(time.Minute)) {
		t.Fatalf("later clock should be used as is, got %v", got)
	}
	if got := NextModified(l, created); !got.Equal(created.Add(time.Nanosecond)) {
		t.Fatalf("equal clock should move one nanosecond, got %v", got)
	}

	updated := created.Add(time.Hour)
	l.UpdatedAt = &updated
	if got := NextModified(l, created.Add(time.Minute)); !got.After(updated) {
		t.Fatalf("stale clock must still pass UpdatedAt, got %v", got)
	}
}
