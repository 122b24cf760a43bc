package usecase

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/fbsn11/team-management-app/internal/domain/appearance"
	"github.com/fbsn11/team-management-app/internal/domain/lineup"
	"github.com/fbsn11/team-management-app/internal/platform/cache"
	"github.com/fbsn11/team-management-app/internal/platform/logging"
)

const statsKeyPrefix = "stats:match:"

// StatsService serves per-match appearance statistics from a cache that is
// refreshed whenever the lineups of a match change.
type StatsService struct {
	lineupRepo lineup.Repository
	cache      *cache.Store[[]appearance.Stat]
	logger     *logging.Logger
}

func NewStatsService(lineupRepo lineup.Repository, ttl time.Duration, logger *logging.Logger) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatsService{
		lineupRepo: lineupRepo,
		cache:      cache.NewStore[[]appearance.Stat](ttl),
		logger:     logger,
	}
}

func (s *StatsService) MatchStats(ctx context.Context, matchID string) ([]appearance.Stat, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.MatchStats")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	stats, err := s.cache.GetOrLoad(ctx, statsKeyPrefix+matchID, func(ctx context.Context) ([]appearance.Stat, error) {
		return s.compute(ctx, matchID)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(stats), nil
}

// Refresh recomputes the statistics of the given matches.
func (s *StatsService) Refresh(ctx context.Context, matchIDs ...string) {
	for _, matchID := range matchIDs {
		key := statsKeyPrefix + matchID
		s.cache.Delete(ctx, key)

		stats, err := s.compute(ctx, matchID)
		if err != nil {
			s.logger.WarnContext(ctx, "refresh match stats failed", "match_id", matchID, "error", err)
			continue
		}
		s.cache.Set(ctx, key, stats)
		s.logger.DebugContext(ctx, "match stats refreshed", "match_id", matchID, "players", len(stats))
	}
}

func (s *StatsService) compute(ctx context.Context, matchID string) ([]appearance.Stat, error) {
	lineups, err := s.lineupRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, persistenceError(ctx, "list lineups", err)
	}
	return appearance.Aggregate(lineups), nil
}
