package formation

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
)

var ErrInvalidCatalog = errors.New("invalid formation catalog")

// System is a named tactical arrangement. Slots are ordered and unique.
type System struct {
	Name  string   `json:"name" yaml:"name"`
	Slots []string `json:"slots" yaml:"slots"`
}

func (s System) Clone() System {
	return System{Name: s.Name, Slots: slices.Clone(s.Slots)}
}

func (s System) Size() int {
	return len(s.Slots)
}

// Catalog maps a roster size to the systems available for it.
// A Catalog is never mutated after construction; readers receive copies.
type Catalog struct {
	bySize map[int][]System
}

func NewCatalog(entries map[int][]System) (*Catalog, error) {
	c := &Catalog{bySize: make(map[int][]System, len(entries))}
	for size, systems := range entries {
		cloned := make([]System, 0, len(systems))
		for _, s := range systems {
			cloned = append(cloned, s.Clone())
		}
		c.bySize[size] = cloned
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// DefaultCatalog returns the built-in systems for 11, 8, 7 and 5 a side.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultEntries())
	if err != nil {
		panic(fmt.Sprintf("default formation catalog: %v", err))
	}
	return c
}

func defaultEntries() map[int][]System {
	return map[int][]System{
		11: {
			{Name: "4-4-2", Slots: []string{"GK", "DF1", "DF2", "DF3", "DF4", "MF1", "MF2", "MF3", "MF4", "FW1", "FW2"}},
			{Name: "4-3-3", Slots: []string{"GK", "DF1", "DF2", "DF3", "DF4", "MF1", "MF2", "MF3", "FW1", "FW2", "FW3"}},
			{Name: "3-5-2", Slots: []string{"GK", "DF1", "DF2", "DF3", "MF1", "MF2", "MF3", "MF4", "MF5", "FW1", "FW2"}},
		},
		8: {
			{Name: "3-3-1", Slots: []string{"GK", "DF1", "DF2", "DF3", "MF1", "MF2", "MF3", "FW1"}},
			{Name: "2-3-2", Slots: []string{"GK", "DF1", "DF2", "MF1", "MF2", "MF3", "FW1", "FW2"}},
		},
		7: {
			{Name: "3-2-1", Slots: []string{"GK", "DF1", "DF2", "DF3", "MF1", "MF2", "FW1"}},
			{Name: "2-3-1", Slots: []string{"GK", "DF1", "DF2", "MF1", "MF2", "MF3", "FW1"}},
		},
		5: {
			{Name: "1-2-1", Slots: []string{"GK", "FP1", "FP2", "FP3", "FP4"}},
		},
	}
}

// SystemsFor returns copies of the systems for size, or an empty slice.
func (c *Catalog) SystemsFor(size int) []System {
	if c == nil {
		return []System{}
	}
	systems := c.bySize[size]
	out := make([]System, 0, len(systems))
	for _, s := range systems {
		out = append(out, s.Clone())
	}
	return out
}

func (c *Catalog) Find(size int, name string) (System, bool) {
	if c == nil {
		return System{}, false
	}
	for _, s := range c.bySize[size] {
		if s.Name == name {
			return s.Clone(), true
		}
	}
	return System{}, false
}

// Sizes lists the supported roster sizes, largest first.
func (c *Catalog) Sizes() []int {
	if c == nil {
		return nil
	}
	out := make([]int, 0, len(c.bySize))
	for size := range c.bySize {
		out = append(out, size)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

func (c *Catalog) Supports(size int) bool {
	if c == nil {
		return false
	}
	_, ok := c.bySize[size]
	return ok
}

func (c *Catalog) Validate() error {
	if c == nil || len(c.bySize) == 0 {
		return fmt.Errorf("%w: catalog is empty", ErrInvalidCatalog)
	}
	for size, systems := range c.bySize {
		if size <= 0 {
			return fmt.Errorf("%w: roster size must be > 0, got %d", ErrInvalidCatalog, size)
		}
		names := make(map[string]struct{}, len(systems))
		for _, s := range systems {
			if err := validateSystem(size, s); err != nil {
				return err
			}
			if _, dup := names[s.Name]; dup {
				return fmt.Errorf("%w: duplicate system %q for size %d", ErrInvalidCatalog, s.Name, size)
			}
			names[s.Name] = struct{}{}
		}
	}
	return nil
}

func validateSystem(size int, s System) error {
	if s.Name == "" {
		return fmt.Errorf("%w: system name is required for size %d", ErrInvalidCatalog, size)
	}
	if len(s.Slots) != size {
		return fmt.Errorf("%w: system %s has %d slots, expected %d", ErrInvalidCatalog, s.Name, len(s.Slots), size)
	}

	seen := make(map[string]struct{}, len(s.Slots))
	goalkeepers := 0
	for _, label := range s.Slots {
		if _, dup := seen[label]; dup {
			return fmt.Errorf("%w: system %s repeats slot %s", ErrInvalidCatalog, s.Name, label)
		}
		seen[label] = struct{}{}

		pos := PositionOf(label)
		if !pos.Known() {
			return fmt.Errorf("%w: system %s has unknown slot %s", ErrInvalidCatalog, s.Name, label)
		}
		if pos == PositionGoalkeeper {
			goalkeepers++
		}
	}
	if goalkeepers > 1 {
		return fmt.Errorf("%w: system %s has %d goalkeeper slots", ErrInvalidCatalog, s.Name, goalkeepers)
	}
	return nil
}

// Label renders the display name of a roster size, e.g. "11人制".
func Label(size int) string {
	return strconv.Itoa(size) + "人制"
}
