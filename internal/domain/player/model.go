package player

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("player not found")

// Player is a roster member of one team.
type Player struct {
	ID     string `json:"id"`
	TeamID string `json:"teamId"`
	Name   string `json:"name"`
	Memo   string `json:"memo,omitempty"`
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}

	return nil
}
