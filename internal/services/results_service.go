package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/logger"

	"github.com/caribelotto/results-backend/internal/apperrors"
	"github.com/caribelotto/results-backend/internal/models"
	"github.com/caribelotto/results-backend/internal/repositories"
	"github.com/caribelotto/results-backend/pkg/resultsapi"
)

// ResultsService fetches raw payloads from the upstream source, runs
// them through the game service, and caches the normalized aggregates.
// It is the only consumer of the results API client.
type ResultsService struct {
	client  *resultsapi.Client
	games   *GameService
	repo    repositories.ResultRepository
	islands []models.Island
}

// IslandResults pairs an island with its normalized required games.
type IslandResults struct {
	Island models.Island          `json:"island"`
	Games  []models.GameAggregate `json:"games"`
}

// ManualResult is an admin-entered draw result for one game.
type ManualResult struct {
	Island     string  `json:"island" binding:"required"`
	Game       string  `json:"game" binding:"required"`
	DrawDate   string  `json:"drawDate" binding:"required"`
	DrawTime   string  `json:"drawTime" binding:"required"`
	DrawNumber *string `json:"drawNumber"`
	Numbers    []int   `json:"numbers" binding:"required"`
}

// NewResultsService creates a new ResultsService
func NewResultsService(client *resultsapi.Client, games *GameService, repo repositories.ResultRepository, islands []models.Island) *ResultsService {
	return &ResultsService{
		client:  client,
		games:   games,
		repo:    repo,
		islands: islands,
	}
}

// Islands returns the island registry.
func (s *ResultsService) Islands() []models.Island {
	return s.islands
}

// GetLatest returns the latest normalized required games for an island
// and refreshes the cache as a side effect.
func (s *ResultsService) GetLatest(ctx context.Context, islandKey string) ([]models.GameAggregate, error) {
	island, ok := models.FindIsland(s.islands, islandKey)
	if !ok {
		return nil, apperrors.NotFoundf("unknown island %q", islandKey)
	}

	raws, err := s.client.GetLatestNumbers(ctx, island.Key)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindInternal, "results source unavailable")
	}

	games := s.games.FilterRequired(s.games.BuildAll(raws))
	s.cache(ctx, games)
	return games, nil
}

// GetAllSummaries returns the latest normalized games for every island.
func (s *ResultsService) GetAllSummaries(ctx context.Context) ([]IslandResults, error) {
	summaries, err := s.client.GetAllIslandsSummary(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindInternal, "results source unavailable")
	}

	results := make([]IslandResults, 0, len(summaries))
	for _, summary := range summaries {
		island, ok := models.FindIsland(s.islands, summary.Island)
		if !ok {
			// Sources sometimes report islands we do not track; skip them.
			continue
		}
		games := s.games.FilterRequired(s.games.BuildAll(summary.Games))
		s.cache(ctx, games)
		results = append(results, IslandResults{Island: island, Games: games})
	}
	return results, nil
}

// GetHistory returns normalized games for the past days window.
func (s *ResultsService) GetHistory(ctx context.Context, islandKey string, days int) ([]models.GameAggregate, error) {
	island, ok := models.FindIsland(s.islands, islandKey)
	if !ok {
		return nil, apperrors.NotFoundf("unknown island %q", islandKey)
	}
	raws, err := s.client.GetHistoricalData(ctx, island.Key, days)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindInternal, "results source unavailable")
	}
	return s.games.FilterRequired(s.games.BuildAll(raws)), nil
}

// GetStatistics proxies the upstream statistics view.
func (s *ResultsService) GetStatistics(ctx context.Context, islandKey string, days int) (*resultsapi.Statistics, error) {
	if islandKey != "" {
		if _, ok := models.FindIsland(s.islands, islandKey); !ok {
			return nil, apperrors.NotFoundf("unknown island %q", islandKey)
		}
	}
	stats, err := s.client.GetStatistics(ctx, islandKey, days)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindInternal, "results source unavailable")
	}
	return stats, nil
}

// SubmitManualResult records an admin-entered draw. The entry is merged
// into the cached aggregate by draw-time label (a day entry does not
// clobber the night draw) and forwarded upstream.
func (s *ResultsService) SubmitManualResult(ctx context.Context, entry ManualResult, session models.Session) (*models.GameAggregate, error) {
	if session.State != models.SessionIdentified {
		return nil, apperrors.Unauthenticated("sign in to enter results")
	}
	if session.Role != models.RoleAdmin {
		return nil, apperrors.Forbidden("only admins may enter results")
	}
	if _, ok := models.FindIsland(s.islands, entry.Island); !ok {
		return nil, apperrors.NotFoundf("unknown island %q", entry.Island)
	}
	if len(entry.Numbers) == 0 {
		return nil, apperrors.MalformedPayload("a result needs at least one number")
	}

	draw := models.DrawRecord{
		DrawDate:   entry.DrawDate,
		DrawTime:   entry.DrawTime,
		DrawNumber: entry.DrawNumber,
		Numbers:    entry.Numbers,
	}

	game, err := s.repo.FindByGame(ctx, entry.Island, entry.Game)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.Internal(err)
		}
		game = &models.GameAggregate{Island: entry.Island, GameName: entry.Game}
	}
	mergeDraw(game, draw)

	if err := s.repo.UpsertGame(ctx, game); err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := s.client.SubmitManualResults(ctx, resultsapi.ManualResultPayload{
		Island:     entry.Island,
		Game:       entry.Game,
		DrawDate:   entry.DrawDate,
		DrawTime:   entry.DrawTime,
		DrawNumber: entry.DrawNumber,
		Numbers:    entry.Numbers,
		EnteredBy:  session.Email,
	}); err != nil {
		// The local record is authoritative; upstream sync is best effort.
		logger.Warningf("manual result for %s/%s not forwarded upstream: %v", entry.Island, entry.Game, err)
	}

	logger.Infof("manual result recorded for %s/%s by %s", entry.Island, entry.Game, session.Email)
	return game, nil
}

// HealthCheck verifies the upstream source is reachable.
func (s *ResultsService) HealthCheck(ctx context.Context) error {
	return s.client.HealthCheck(ctx)
}

func (s *ResultsService) cache(ctx context.Context, games []models.GameAggregate) {
	for i := range games {
		if err := s.repo.UpsertGame(ctx, &games[i]); err != nil {
			logger.Warningf("result cache upsert failed for %s/%s: %v", games[i].Island, games[i].GameName, err)
		}
	}
}

// mergeDraw replaces the draw with the same time label or appends when
// the label is new, preserving existing sub-draws.
func mergeDraw(game *models.GameAggregate, draw models.DrawRecord) {
	for i, existing := range game.Draws {
		if strings.EqualFold(existing.DrawTime, draw.DrawTime) {
			game.Draws[i] = draw
			return
		}
	}
	game.Draws = append(game.Draws, draw)
}
