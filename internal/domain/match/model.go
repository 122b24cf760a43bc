package match

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var ErrNotFound = errors.New("match not found")

// Match is one game of a team with its participating players.
type Match struct {
	ID                string    `json:"id"`
	TeamID            string    `json:"teamId"`
	Datetime          time.Time `json:"datetime"`
	Title             string    `json:"title"`
	Memo              string    `json:"memo,omitempty"`
	PlayerCount       int       `json:"playerCount"`
	SelectedPlayerIDs []string  `json:"selectedPlayerIds"`
	CreatedAt         time.Time `json:"createdAt"`
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.TeamID == "" {
		return fmt.Errorf("match team id is required")
	}
	if m.Datetime.IsZero() {
		return fmt.Errorf("match datetime is required")
	}
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("match title is required")
	}
	if m.PlayerCount <= 0 {
		return fmt.Errorf("match player count must be greater than zero")
	}

	return nil
}

// HasParticipant reports whether playerID was selected for the match.
func (m Match) HasParticipant(playerID string) bool {
	return slices.Contains(m.SelectedPlayerIDs, playerID)
}

func (m Match) Clone() Match {
	m.SelectedPlayerIDs = slices.Clone(m.SelectedPlayerIDs)
	return m
}
