package usecase

import (
	"context"
	"fmt"
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

// CreateMatchInput creates a match. A zero PlayerCount uses the team default.
type CreateMatchInput struct {
	TeamID            string
	Datetime          time.Time
	Title             string
	Memo              string
	PlayerCount       int
	SelectedPlayerIDs []string
}

type UpdateMatchInput struct {
	ID                string
	Datetime          time.Time
	Title             string
	Memo              string
	PlayerCount       int
	SelectedPlayerIDs []string
}

type MatchService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
	lineupRepo lineup.Repository
	catalog    *formation.Catalog
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewMatchService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	lineupRepo lineup.Repository,
	catalog *formation.Catalog,
	idGen idgen.Generator,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
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

func (s *MatchService) ListByTeam(ctx context.Context, teamID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListByTeam")
	defer span.End()

	if _, err := s.getTeam(ctx, teamID); err != nil {
		return nil, err
	}
	items, err := s.matchRepo.ListByTeam(ctx, strings.TrimSpace(teamID))
	if err != nil {
		return nil, persistenceError(ctx, "list matches", err)
	}
	return items, nil
}

func (s *MatchService) Get(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	return getMatch(ctx, s.matchRepo, matchID)
}

func (s *MatchService) Create(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	defer span.End()

	owner, err := s.getTeam(ctx, input.TeamID)
	if err != nil {
		return match.Match{}, err
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	item := match.Match{
		ID:          id,
		TeamID:      owner.ID,
		Datetime:    input.Datetime.UTC(),
		Title:       strings.TrimSpace(input.Title),
		Memo:        strings.TrimSpace(input.Memo),
		PlayerCount: input.PlayerCount,
		CreatedAt:   s.now().UTC(),
	}
	if item.PlayerCount == 0 {
		item.PlayerCount = owner.DefaultPlayerCount
	}
	if err := s.fill(ctx, &item, input.SelectedPlayerIDs); err != nil {
		return match.Match{}, err
	}
	if err := s.matchRepo.Create(ctx, item); err != nil {
		return match.Match{}, persistenceError(ctx, "create match", err)
	}

	s.logger.InfoContext(ctx, "match created", "match_id", item.ID, "team_id", item.TeamID)
	return item, nil
}

func (s *MatchService) Update(ctx context.Context, input UpdateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Update")
	defer span.End()

	item, err := getMatch(ctx, s.matchRepo, input.ID)
	if err != nil {
		return match.Match{}, err
	}

	item.Datetime = input.Datetime.UTC()
	item.Title = strings.TrimSpace(input.Title)
	item.Memo = strings.TrimSpace(input.Memo)
	if input.PlayerCount != 0 {
		item.PlayerCount = input.PlayerCount
	}
	if err := s.fill(ctx, &item, input.SelectedPlayerIDs); err != nil {
		return match.Match{}, err
	}
	if err := s.matchRepo.Update(ctx, item); err != nil {
		return match.Match{}, persistenceError(ctx, "update match", err)
	}
	return item, nil
}

// Delete removes the match and every lineup recorded for it.
func (s *MatchService) Delete(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Delete")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	removed, err := s.lineupRepo.DeleteWhere(ctx, func(l lineup.Lineup) bool { return l.MatchID == matchID })
	if err != nil {
		return persistenceError(ctx, "delete match lineups", err)
	}
	if err := s.matchRepo.Delete(ctx, matchID); err != nil {
		return persistenceError(ctx, "delete match", err)
	}

	s.logger.InfoContext(ctx, "match deleted", "match_id", matchID, "lineups", removed)
	return nil
}

func (s *MatchService) fill(ctx context.Context, item *match.Match, selected []string) error {
	if !s.catalog.Supports(item.PlayerCount) {
		return fmt.Errorf("%w: unsupported player count %d (supported: %v)", ErrInvalidInput, item.PlayerCount, s.catalog.Sizes())
	}

	ids, err := cleanIDs(selected, "player")
	if err != nil {
		return err
	}
	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return persistenceError(ctx, "get players", err)
	}
	if len(players) != len(ids) {
		return fmt.Errorf("%w: some selected players do not exist", ErrInvalidInput)
	}
	for _, p := range players {
		if p.TeamID != item.TeamID {
			return fmt.Errorf("%w: player %s does not belong to team=%s", ErrInvalidInput, p.ID, item.TeamID)
		}
	}
	item.SelectedPlayerIDs = ids

	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func (s *MatchService) getTeam(ctx context.Context, teamID string) (team.Team, error) {
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

func getMatch(ctx context.Context, repo match.Repository, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	item, found, err := repo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, persistenceError(ctx, "get match", err)
	}
	if !found {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return item, nil
}
