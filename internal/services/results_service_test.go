package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/caribelotto/results-backend/internal/apperrors"
	"github.com/caribelotto/results-backend/internal/models"
	"github.com/caribelotto/results-backend/internal/repositories"
	"github.com/caribelotto/results-backend/pkg/resultsapi"
)

// memResultRepo is an in-memory ResultRepository keyed like the Mongo
// implementation: island plus lowercase game name.
type memResultRepo struct {
	mu    sync.Mutex
	games map[string]*models.GameAggregate
}

func newMemResultRepo() *memResultRepo {
	return &memResultRepo{games: make(map[string]*models.GameAggregate)}
}

func resultKey(island, gameName string) string {
	return island + "/" + strings.ToLower(gameName)
}

func (r *memResultRepo) UpsertGame(ctx context.Context, game *models.GameAggregate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *game
	r.games[resultKey(game.Island, game.GameName)] = &clone
	return nil
}

func (r *memResultRepo) FindByIsland(ctx context.Context, island string) ([]*models.GameAggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.GameAggregate
	for key, game := range r.games {
		if strings.HasPrefix(key, island+"/") {
			clone := *game
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memResultRepo) FindByGame(ctx context.Context, island, gameName string) (*models.GameAggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	game, ok := r.games[resultKey(island, gameName)]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *game
	return &clone, nil
}

func newTestResultsService(repo repositories.ResultRepository) *ResultsService {
	client := resultsapi.NewClient("", "", true)
	games := NewGameService([]string{"Lotto", "3D", "Play 4", "Super 6"})
	return NewResultsService(client, games, repo, models.DefaultIslands)
}

func TestGetLatestNormalizesAndCaches(t *testing.T) {
	repo := newMemResultRepo()
	service := newTestResultsService(repo)

	games, err := service.GetLatest(context.Background(), "st-lucia")
	if err != nil {
		t.Fatalf("GetLatest failed: %v", err)
	}
	if len(games) == 0 {
		t.Fatal("expected games from mock source")
	}
	for _, game := range games {
		if game.Draws == nil {
			t.Errorf("game %s has nil draws", game.GameName)
		}
	}

	// The multi-draw game is one logical unit with selectable sub-draws.
	var threeD *models.GameAggregate
	for i := range games {
		if games[i].GameName == "3D" {
			threeD = &games[i]
		}
	}
	if threeD == nil {
		t.Fatal("3D missing from normalized games")
	}
	if len(threeD.Draws) != 2 {
		t.Fatalf("expected 2 sub-draws for 3D, got %d", len(threeD.Draws))
	}
	if _, ok := threeD.DrawByTime("Day"); !ok {
		t.Error("day sub-draw not locatable by label")
	}

	cached, err := repo.FindByGame(context.Background(), "st-lucia", "3d")
	if err != nil {
		t.Fatalf("expected 3D cached under case-insensitive key: %v", err)
	}
	if cached.GameName != "3D" {
		t.Errorf("cached aggregate mangled: %+v", cached)
	}
}

func TestGetLatestUnknownIsland(t *testing.T) {
	service := newTestResultsService(newMemResultRepo())

	_, err := service.GetLatest(context.Background(), "atlantis")
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestGetAllSummaries(t *testing.T) {
	service := newTestResultsService(newMemResultRepo())

	results, err := service.GetAllSummaries(context.Background())
	if err != nil {
		t.Fatalf("GetAllSummaries failed: %v", err)
	}
	if len(results) != len(models.DefaultIslands) {
		t.Fatalf("expected %d islands, got %d", len(models.DefaultIslands), len(results))
	}
	for _, result := range results {
		if result.Island.Name == "" {
			t.Errorf("island metadata missing for %q", result.Island.Key)
		}
	}
}

func TestSubmitManualResultAuthz(t *testing.T) {
	service := newTestResultsService(newMemResultRepo())
	entry := ManualResult{
		Island: "dominica", Game: "Lotto",
		DrawDate: "2026-08-28", DrawTime: "8:30 PM", Numbers: []int{1, 2, 3},
	}

	if _, err := service.SubmitManualResult(context.Background(), entry, models.GuestSession()); apperrors.KindOf(err) != apperrors.KindUnauthenticated {
		t.Errorf("guest: expected Unauthenticated, got %v", err)
	}
	client := models.IdentifiedSession("client@example.com", models.RoleClient)
	if _, err := service.SubmitManualResult(context.Background(), entry, client); apperrors.KindOf(err) != apperrors.KindForbidden {
		t.Errorf("client: expected Forbidden, got %v", err)
	}
}

func TestSubmitManualResultMergesByLabel(t *testing.T) {
	repo := newMemResultRepo()
	service := newTestResultsService(repo)
	admin := models.IdentifiedSession("admin@example.com", models.RoleAdmin)

	day := ManualResult{
		Island: "grenada", Game: "Play 4",
		DrawDate: "2026-08-28", DrawTime: "Day", Numbers: []int{9, 0, 2, 6},
	}
	night := ManualResult{
		Island: "grenada", Game: "Play 4",
		DrawDate: "2026-08-28", DrawTime: "Night", Numbers: []int{1, 5, 5, 2},
	}
	dayCorrected := ManualResult{
		Island: "grenada", Game: "Play 4",
		DrawDate: "2026-08-28", DrawTime: "Day", Numbers: []int{9, 0, 2, 7},
	}

	for _, entry := range []ManualResult{day, night, dayCorrected} {
		if _, err := service.SubmitManualResult(context.Background(), entry, admin); err != nil {
			t.Fatalf("manual entry failed: %v", err)
		}
	}

	game, err := repo.FindByGame(context.Background(), "grenada", "play 4")
	if err != nil {
		t.Fatalf("cached game missing: %v", err)
	}
	if len(game.Draws) != 2 {
		t.Fatalf("expected day+night draws, got %d", len(game.Draws))
	}
	dayDraw, ok := game.DrawByTime("Day")
	if !ok {
		t.Fatal("day draw missing after merge")
	}
	if dayDraw.Numbers[3] != 7 {
		t.Errorf("correction did not replace day draw: %v", dayDraw.Numbers)
	}
}
