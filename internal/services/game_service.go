package services

import (
	"encoding/json"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/caribelotto/results-backend/internal/models"
)

// GameService normalizes raw upstream game payloads into the uniform
// GameAggregate shape. Every method is pure: malformed optional fields
// degrade, they never error, so one bad record cannot blank an island.
type GameService struct {
	requiredGames []string
	printer       *message.Printer
}

// NewGameService creates a new GameService with the configured
// required-game list.
func NewGameService(requiredGames []string) *GameService {
	return &GameService{
		requiredGames: requiredGames,
		printer:       message.NewPrinter(language.English),
	}
}

// Build converts one raw payload into a GameAggregate. The payload shape
// is classified exactly once here: an explicit draws array, a flat
// single draw, or neither. A flat draw becomes a one-element Draws
// slice so single-draw and multi-draw games share one representation;
// an unclassifiable payload degrades to an empty-draws aggregate.
func (s *GameService) Build(raw models.RawGamePayload) models.GameAggregate {
	game := models.GameAggregate{
		Island:   raw.Island,
		GameName: raw.Game,
		Jackpot:  s.FormatJackpot(raw.Jackpot),
	}

	switch raw.Shape() {
	case models.PayloadShapeMultiDraw:
		game.Draws = make([]models.DrawRecord, 0, len(raw.Draws))
		for _, d := range raw.Draws {
			game.Draws = append(game.Draws, models.DrawRecord{
				DrawDate:   d.DrawDate,
				DrawTime:   d.DrawTime,
				DrawNumber: d.DrawNumber,
				Numbers:    d.Numbers,
			})
		}
	case models.PayloadShapeSingleDraw:
		game.Draws = []models.DrawRecord{{
			DrawDate:   raw.DrawDate,
			DrawTime:   raw.DrawTime,
			DrawNumber: raw.DrawNumber,
			Numbers:    raw.Numbers,
		}}
	default:
		game.Draws = []models.DrawRecord{}
	}

	return game
}

// BuildAll converts a batch of raw payloads, preserving order.
func (s *GameService) BuildAll(raws []models.RawGamePayload) []models.GameAggregate {
	games := make([]models.GameAggregate, 0, len(raws))
	for _, raw := range raws {
		games = append(games, s.Build(raw))
	}
	return games
}

// FilterRequired keeps only games whose name is on the required list,
// matched case-insensitively, in their original relative order. Extra or
// test games from the source are dropped silently.
func FilterRequired(games []models.GameAggregate, requiredNames []string) []models.GameAggregate {
	filtered := make([]models.GameAggregate, 0, len(games))
	for _, game := range games {
		for _, name := range requiredNames {
			if strings.EqualFold(game.GameName, name) {
				filtered = append(filtered, game)
				break
			}
		}
	}
	return filtered
}

// FilterRequired applies the service's configured required-game list.
func (s *GameService) FilterRequired(games []models.GameAggregate) []models.GameAggregate {
	return FilterRequired(games, s.requiredGames)
}

// FormatJackpot normalizes the polymorphic jackpot field. A numeric
// amount becomes a grouped zero-decimal currency string, an already
// formatted string passes through unchanged, and anything else (null,
// absent, unexpected type) becomes nil. Nil is distinct from "$0".
func (s *GameService) FormatJackpot(raw json.RawMessage) *string {
	// Unmarshalling JSON null into a string succeeds without assigning,
	// so null has to be ruled out before the type probes.
	if len(raw) == 0 || strings.TrimSpace(string(raw)) == "null" {
		return nil
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return &asString
	}

	var asNumber float64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		formatted := s.printer.Sprintf("$%d", int64(math.Round(asNumber)))
		return &formatted
	}

	return nil
}
