package resultsapi

import (
	"encoding/json"
	"time"

	"github.com/caribelotto/results-backend/internal/models"
)

// Canned payloads exercised in mock mode. They intentionally mix the
// flat single-draw shape and the explicit multi-draw shape, because the
// real upstream delivers both.
func mockLatest(island string) []models.RawGamePayload {
	today := time.Now().Format("2006-01-02")
	drawNumber := "4821"

	return []models.RawGamePayload{
		{
			Game:       "Lotto",
			Island:     island,
			DrawDate:   today,
			DrawTime:   "8:30 PM",
			DrawNumber: &drawNumber,
			Numbers:    []int{2, 9, 24, 31, 35, 16},
			Jackpot:    json.RawMessage(`"EC$100,000"`),
		},
		{
			Game:   "3D",
			Island: island,
			Draws: []models.RawDraw{
				{DrawDate: today, DrawTime: "Night", Numbers: []int{7, 1, 4}},
				{DrawDate: today, DrawTime: "Day", Numbers: []int{3, 3, 8}},
			},
		},
		{
			Game:   "Play 4",
			Island: island,
			Draws: []models.RawDraw{
				{DrawDate: today, DrawTime: "Day", Numbers: []int{9, 0, 2, 6}},
				{DrawDate: today, DrawTime: "Night", Numbers: []int{1, 5, 5, 2}},
			},
		},
		{
			Game:     "Super 6",
			Island:   island,
			DrawDate: today,
			DrawTime: "9:00 PM",
			Numbers:  []int{5, 11, 17, 22, 28, 33},
			Jackpot:  json.RawMessage(`250000`),
		},
	}
}

func mockSummaries() []IslandSummary {
	var summaries []IslandSummary
	for _, island := range models.DefaultIslands {
		summaries = append(summaries, IslandSummary{
			Island:    island.Key,
			UpdatedAt: time.Now(),
			Games:     mockLatest(island.Key),
		})
	}
	return summaries
}

func mockStatistics(island string, days int) *Statistics {
	return &Statistics{
		Island:      island,
		Days:        days,
		TotalDraws:  days * 4,
		GamesPlayed: []string{"Lotto", "3D", "Play 4", "Super 6"},
		HotNumbers:  map[string]int{"24": 9, "7": 7, "31": 6},
	}
}
