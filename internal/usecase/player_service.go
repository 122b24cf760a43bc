package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fbsn11/team-management-app/internal/domain/match"
	"github.com/fbsn11/team-management-app/internal/domain/player"
	"github.com/fbsn11/team-management-app/internal/domain/team"
	idgen "github.com/fbsn11/team-management-app/internal/platform/id"
	"github.com/fbsn11/team-management-app/internal/platform/logging"
)

type CreatePlayerInput struct {
	TeamID string
	Name   string
	Memo   string
}

type UpdatePlayerInput struct {
	ID   string
	Name string
	Memo string
}

type PlayerService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
}

func NewPlayerService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		idGen:      idGen,
		logger:     logger,
	}
}

func (s *PlayerService) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListByTeam")
	defer span.End()

	if err := s.requireTeam(ctx, teamID); err != nil {
		return nil, err
	}
	items, err := s.playerRepo.ListByTeam(ctx, strings.TrimSpace(teamID))
	if err != nil {
		return nil, persistenceError(ctx, "list players", err)
	}
	return items, nil
}

func (s *PlayerService) Get(ctx context.Context, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	item, found, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, persistenceError(ctx, "get player", err)
	}
	if !found {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return item, nil
}

func (s *PlayerService) Create(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Create")
	defer span.End()

	if err := s.requireTeam(ctx, input.TeamID); err != nil {
		return player.Player{}, err
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}
	item := player.Player{
		ID:     id,
		TeamID: strings.TrimSpace(input.TeamID),
		Name:   strings.TrimSpace(input.Name),
		Memo:   strings.TrimSpace(input.Memo),
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.playerRepo.Create(ctx, item); err != nil {
		return player.Player{}, persistenceError(ctx, "create player", err)
	}
	return item, nil
}

func (s *PlayerService) Update(ctx context.Context, input UpdatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Update")
	defer span.End()

	item, err := s.Get(ctx, input.ID)
	if err != nil {
		return player.Player{}, err
	}
	item.Name = strings.TrimSpace(input.Name)
	item.Memo = strings.TrimSpace(input.Memo)
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.playerRepo.Update(ctx, item); err != nil {
		return player.Player{}, persistenceError(ctx, "update player", err)
	}
	return item, nil
}

// Delete removes the player and drops them from match selections.
// Saved lineups keep the player's name as recorded.
func (s *PlayerService) Delete(ctx context.Context, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Delete")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	matchIDs, err := s.matchRepo.RemovePlayer(ctx, playerID)
	if err != nil {
		return persistenceError(ctx, "remove player from matches", err)
	}
	if err := s.playerRepo.Delete(ctx, playerID); err != nil {
		return persistenceError(ctx, "delete player", err)
	}

	s.logger.InfoContext(ctx, "player deleted", "player_id", playerID, "matches", len(matchIDs))
	return nil
}

func (s *PlayerService) requireTeam(ctx context.Context, teamID string) error {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	_, found, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return persistenceError(ctx, "get team", err)
	}
	if !found {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return nil
}
