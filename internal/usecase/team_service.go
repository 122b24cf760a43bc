package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/fbsn11/team-management-app/internal/domain/formation"
	"github.com/fbsn11/team-management-app/internal/domain/lineup"
	"github.com/fbsn11/team-management-app/internal/domain/match"
	"github.com/fbsn11/team-management-app/internal/domain/player"
	"github.com/fbsn11/team-management-app/internal/domain/team"
	idgen "github.com/fbsn11/team-management-app/internal/platform/id"
	"github.com/fbsn11/team-management-app/internal/platform/logging"
)

type CreateTeamInput struct {
	Name               string
	DefaultPlayerCount int
}

type UpdateTeamInput struct {
	ID                 string
	Name               string
	DefaultPlayerCount int
}

type TeamService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
	lineupRepo lineup.Repository
	catalog    *formation.Catalog
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewTeamService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	lineupRepo lineup.Repository,
	catalog *formation.Catalog,
	idGen idgen.Generator,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		lineupRepo: lineupRepo,
		catalog:    catalog,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, persistenceError(ctx, "list teams", err)
	}
	return items, nil
}

func (s *TeamService) Get(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Get")
	defer span.End()

	return s.getTeam(ctx, teamID)
}

func (s *TeamService) getTeam(ctx context.Context, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, found, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, persistenceError(ctx, "get team", err)
	}
	if !found {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return item, nil
}

func (s *TeamService) Create(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	count, err := s.playerCount(input.DefaultPlayerCount)
	if err != nil {
		return team.Team{}, err
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	item := team.Team{
		ID:                 id,
		Name:               strings.TrimSpace(input.Name),
		DefaultPlayerCount: count,
		CreatedAt:          s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.teamRepo.Create(ctx, item); err != nil {
		return team.Team{}, persistenceError(ctx, "create team", err)
	}

	s.logger.InfoContext(ctx, "team created", "team_id", item.ID)
	return item, nil
}

func (s *TeamService) Update(ctx context.Context, input UpdateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Update")
	defer span.End()

	item, err := s.getTeam(ctx, input.ID)
	if err != nil {
		return team.Team{}, err
	}
	count, err := s.playerCount(input.DefaultPlayerCount)
	if err != nil {
		return team.Team{}, err
	}

	item.Name = strings.TrimSpace(input.Name)
	item.DefaultPlayerCount = count
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.teamRepo.Update(ctx, item); err != nil {
		return team.Team{}, persistenceError(ctx, "update team", err)
	}
	return item, nil
}

// Delete removes the team together with its matches, players and lineups.
// Deleting a missing team is a no-op.
func (s *TeamService) Delete(ctx context.Context, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Delete")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	matchIDs, err := s.matchRepo.DeleteByTeam(ctx, teamID)
	if err != nil {
		return persistenceError(ctx, "delete team matches", err)
	}
	lineups, err := s.lineupRepo.DeleteWhere(ctx, func(l lineup.Lineup) bool {
		return l.TeamID == teamID || slices.Contains(matchIDs, l.MatchID)
	})
	if err != nil {
		return persistenceError(ctx, "delete team lineups", err)
	}
	players, err := s.playerRepo.DeleteByTeam(ctx, teamID)
	if err != nil {
		return persistenceError(ctx, "delete team players", err)
	}
	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		return persistenceError(ctx, "delete team", err)
	}

	s.logger.InfoContext(ctx, "team deleted",
		"team_id", teamID,
		"matches", len(matchIDs),
		"players", players,
		"lineups", lineups,
	)
	return nil
}

func (s *TeamService) playerCount(count int) (int, error) {
	if count == 0 {
		count = team.DefaultPlayerCount
	}
	if !s.catalog.Supports(count) {
		return 0, fmt.Errorf("%w: unsupported player count %d (supported: %v)", ErrInvalidInput, count, s.catalog.Sizes())
	}
	return count, nil
}
