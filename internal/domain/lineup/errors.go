package lineup

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("lineup not found")
	ErrNoPlayerSelected    = errors.New("no player selected")
	ErrNotOnBench          = errors.New("player is not on the bench")
	ErrIncompleteLineup    = errors.New("incomplete lineup")
	ErrInsufficientPlayers = errors.New("not enough eligible players for system")
	ErrUnknownSystem       = errors.New("unknown formation system")
	ErrSystemMismatch      = errors.New("assignments do not match system")
)

// IncompleteError reports how many slots are still open at commit.
type IncompleteError struct {
	Open int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%s: %d open slot(s)", ErrIncompleteLineup, e.Open)
}

func (e *IncompleteError) Is(target error) bool {
	return target == ErrIncompleteLineup
}
