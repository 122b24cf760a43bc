package team

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultPlayerCount is used when a team is created without one.
const DefaultPlayerCount = 11

var ErrNotFound = errors.New("team not found")

// Team is an amateur squad owning players and matches.
type Team struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	DefaultPlayerCount int       `json:"defaultPlayerCount"`
	CreatedAt          time.Time `json:"createdAt"`
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if t.DefaultPlayerCount <= 0 {
		return fmt.Errorf("team default player count must be greater than zero")
	}

	return nil
}
