package usecase

import (
	"fmt"
	"strings"
)

// cleanIDs trims ids and rejects blanks and duplicates, keeping order.
func cleanIDs(ids []string, what string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			return nil, fmt.Errorf("%w: %s id must not be empty", ErrInvalidInput, what)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate %s id %s", ErrInvalidInput, what, id)
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
