package formation

import "strings"

// PositionType is the alphabetic prefix of a slot label.
type PositionType string

const (
	PositionGoalkeeper  PositionType = "GK"
	PositionDefender    PositionType = "DF"
	PositionMidfielder  PositionType = "MF"
	PositionForward     PositionType = "FW"
	PositionFieldPlayer PositionType = "FP"
)

var knownPositions = map[PositionType]struct{}{
	PositionGoalkeeper:  {},
	PositionDefender:    {},
	PositionMidfielder:  {},
	PositionForward:     {},
	PositionFieldPlayer: {},
}

// PositionOf strips trailing digits from a slot label.
func PositionOf(label string) PositionType {
	return PositionType(strings.TrimRight(label, "0123456789"))
}

// IsGoalkeeper reports whether the label's prefix is exactly GK.
func IsGoalkeeper(label string) bool {
	return PositionOf(label) == PositionGoalkeeper
}

func (p PositionType) Known() bool {
	_, ok := knownPositions[p]
	return ok
}
