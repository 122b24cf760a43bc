package appearance

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fbsn11/team-management-app/internal/domain/lineup"
)

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty result, got %#v", got)
	}
	if len(ByPlayer(got)) != 0 {
		t.Fatalf("expected empty mapping")
	}
}

func TestAggregate_SingleLineup(t *testing.T) {
	got := ByPlayer(Aggregate([]lineup.Lineup{{
		Positions: []lineup.SlotAssignment{
			{Slot: "GK", PlayerID: "P1", PlayerName: "One"},
			{Slot: "DF1", PlayerID: "P2", PlayerName: "Two"},
		},
	}}))

	want := map[string]Stat{
		"P1": {PlayerID: "P1", Name: "One", Total: 1, AsGK: 1, AsField: 0},
		"P2": {PlayerID: "P2", Name: "Two", Total: 1, AsGK: 0, AsField: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_TwoLineupsSamePlayer(t *testing.T) {
	got := ByPlayer(Aggregate([]lineup.Lineup{
		{Positions: []lineup.SlotAssignment{{Slot: "GK", PlayerID: "P1", PlayerName: "One"}}},
		{Positions: []lineup.SlotAssignment{{Slot: "DF1", PlayerID: "P1", PlayerName: "One"}}},
	}))

	want := map[string]Stat{"P1": {PlayerID: "P1", Name: "One", Total: 2, AsGK: 1, AsField: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_OrderAndFieldPlayers(t *testing.T) {
	got := Aggregate([]lineup.Lineup{
		{Positions: []lineup.SlotAssignment{
			{Slot: "GK", PlayerID: "a"},
			{Slot: "FP1", PlayerID: "b"},
			{Slot: "FP2", PlayerID: "c"},
			{Slot: "FP3"},
		}},
		{Positions: []lineup.SlotAssignment{
			{Slot: "GK", PlayerID: "c"},
			{Slot: "FP1", PlayerID: "d"},
		}},
	})

	ids := make([]string, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.PlayerID)
	}
	if diff := cmp.Diff([]string{"c", "a", "b", "d"}, ids); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if got[0].AsGK != 1 || got[0].AsField != 1 {
		t.Fatalf("unexpected split for c: %+v", got[0])
	}
	if got[2].AsField != 1 || got[2].AsGK != 0 {
		t.Fatalf("FP should count as field: %+v", got[2])
	}
}
