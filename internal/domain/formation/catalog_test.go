package formation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultCatalog_SlotCountMatchesSize(t *testing.T) {
	c := DefaultCatalog()
	for _, size := range c.Sizes() {
		systems := c.SystemsFor(size)
		if len(systems) == 0 {
			t.Fatalf("expected systems for size %d", size)
		}
		for _, s := range systems {
			if s.Size() != size {
				t.Fatalf("system %s: expected %d slots, got %d", s.Name, size, s.Size())
			}
		}
	}
}

func TestDefaultCatalog_Sizes(t *testing.T) {
	got := DefaultCatalog().Sizes()
	if diff := cmp.Diff([]int{11, 8, 7, 5}, got); diff != "" {
		t.Fatalf("sizes mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_SystemsForUnknownSizeIsEmpty(t *testing.T) {
	for _, size := range []int{0, 6, 9, -1} {
		got := DefaultCatalog().SystemsFor(size)
		if got == nil || len(got) != 0 {
			t.Fatalf("size %d: expected empty non-nil slice, got %#v", size, got)
		}
	}
}

func TestCatalog_SystemsFor11(t *testing.T) {
	got := DefaultCatalog().SystemsFor(11)
	names := make([]string, 0, len(got))
	for _, s := range got {
		names = append(names, s.Name)
	}
	if diff := cmp.Diff([]string{"4-4-2", "4-3-3", "3-5-2"}, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	want := []string{"GK", "DF1", "DF2", "DF3", "DF4", "MF1", "MF2", "MF3", "MF4", "FW1", "FW2"}
	if diff := cmp.Diff(want, got[0].Slots); diff != "" {
		t.Fatalf("4-4-2 slots mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_TwoThreeTwoHasDistinctForwards(t *testing.T) {
	s, ok := DefaultCatalog().Find(8, "2-3-2")
	if !ok {
		t.Fatalf("expected 2-3-2 in catalog")
	}
	if diff := cmp.Diff([]string{"FW1", "FW2"}, s.Slots[6:]); diff != "" {
		t.Fatalf("forward slots mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c := DefaultCatalog()
	first := c.SystemsFor(5)
	first[0].Slots[0] = "XX"
	first[0].Name = "mutated"

	again := c.SystemsFor(5)
	if again[0].Name != "1-2-1" || again[0].Slots[0] != "GK" {
		t.Fatalf("catalog was mutated through returned value: %+v", again[0])
	}

	found, _ := c.Find(5, "1-2-1")
	found.Slots[1] = "XX"
	again = c.SystemsFor(5)
	if again[0].Slots[1] != "FP1" {
		t.Fatalf("catalog was mutated through Find: %+v", again[0])
	}
}

func TestPositionOf(t *testing.T) {
	cases := map[string]PositionType{
		"GK":   PositionGoalkeeper,
		"DF3":  PositionDefender,
		"MF12": PositionMidfielder,
		"FW1":  PositionForward,
		"FP4":  PositionFieldPlayer,
	}
	for label, want := range cases {
		if got := PositionOf(label); got != want {
			t.Fatalf("PositionOf(%q): expected %s, got %s", label, want, got)
		}
	}
	if !IsGoalkeeper("GK") || IsGoalkeeper("FP1") || IsGoalkeeper("GKX") {
		t.Fatalf("unexpected goalkeeper classification")
	}
}

func TestNewCatalog_RejectsInvalidSystems(t *testing.T) {
	cases := map[string]map[int][]System{
		"slot count":      {3: {{Name: "bad", Slots: []string{"GK", "FP1"}}}},
		"duplicate label": {3: {{Name: "bad", Slots: []string{"GK", "FW2", "FW2"}}}},
		"unknown prefix":  {2: {{Name: "bad", Slots: []string{"GK", "ST1"}}}},
		"two keepers":     {2: {{Name: "bad", Slots: []string{"GK", "GK1"}}}},
		"empty":           {},
	}
	for name, entries := range cases {
		if _, err := NewCatalog(entries); !errors.Is(err, ErrInvalidCatalog) {
			t.Fatalf("%s: expected ErrInvalidCatalog, got %v", name, err)
		}
	}
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	raw := []byte(`sizes:
  6:
    - name: 2-2-1
      slots: [GK, DF1, DF2, MF1, MF2, FW1]
  5: []
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	c, err := LoadCatalogFile(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if diff := cmp.Diff([]int{11, 8, 7, 6}, c.Sizes()); diff != "" {
		t.Fatalf("sizes mismatch (-want +got):\n%s", diff)
	}
	if _, ok := c.Find(6, "2-2-1"); !ok {
		t.Fatalf("expected override system")
	}
}

func TestParseCatalog_RejectsInvalidOverride(t *testing.T) {
	_, err := ParseCatalog([]byte("sizes:\n  6:\n    - name: x\n      slots: [GK]\n"))
	if !errors.Is(err, ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog, got %v", err)
	}
}

func TestLabel(t *testing.T) {
	if got := Label(11); got != "11人制" {
		t.Fatalf("unexpected label %q", got)
	}
}
