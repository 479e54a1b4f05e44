// Package resultsapi is the REST client for the upstream per-island
// results source. Responses are raw polymorphic game payloads; only the
// game service interprets their shape.
package resultsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/caribelotto/results-backend/internal/models"
)

// Client represents a results API client. With MockAPI set it serves
// canned payloads instead of calling the network, mirroring how the
// service is developed against an unreliable upstream.
type Client struct {
	BaseURL string
	APIKey  string
	MockAPI bool
	client  *http.Client
}

// IslandSummary is one island's entry in the all-islands summary.
type IslandSummary struct {
	Island    string                  `json:"island"`
	UpdatedAt time.Time               `json:"updatedAt"`
	Games     []models.RawGamePayload `json:"games"`
}

// Statistics is the upstream aggregate counters for an island window.
type Statistics struct {
	Island      string         `json:"island"`
	Days        int            `json:"days"`
	TotalDraws  int            `json:"totalDraws"`
	GamesPlayed []string       `json:"gamesPlayed"`
	HotNumbers  map[string]int `json:"hotNumbers"`
}

// ManualResultPayload is an admin-entered result forwarded upstream.
type ManualResultPayload struct {
	Island     string  `json:"island"`
	Game       string  `json:"game"`
	DrawDate   string  `json:"draw_date"`
	DrawTime   string  `json:"draw_time"`
	DrawNumber *string `json:"draw_number,omitempty"`
	Numbers    []int   `json:"numbers"`
	EnteredBy  string  `json:"entered_by"`
}

// NewClient creates a new results API client
func NewClient(baseURL, apiKey string, mockAPI bool) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		MockAPI: mockAPI,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// GetAllIslandsSummary retrieves the latest summary for every island.
func (c *Client) GetAllIslandsSummary(ctx context.Context) ([]IslandSummary, error) {
	if c.MockAPI {
		return mockSummaries(), nil
	}
	var summaries []IslandSummary
	if err := c.get(ctx, "/api/results/summary", nil, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// GetLatestNumbers retrieves the latest raw game payloads for an island.
func (c *Client) GetLatestNumbers(ctx context.Context, island string) ([]models.RawGamePayload, error) {
	if c.MockAPI {
		return mockLatest(island), nil
	}
	var games []models.RawGamePayload
	path := "/api/results/" + url.PathEscape(island) + "/latest"
	if err := c.get(ctx, path, nil, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// GetHistoricalData retrieves raw game payloads for the past N days.
func (c *Client) GetHistoricalData(ctx context.Context, island string, days int) ([]models.RawGamePayload, error) {
	if c.MockAPI {
		return mockLatest(island), nil
	}
	var games []models.RawGamePayload
	path := "/api/results/" + url.PathEscape(island) + "/history"
	query := url.Values{"days": []string{strconv.Itoa(days)}}
	if err := c.get(ctx, path, query, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// GetStatistics retrieves draw statistics. Island may be empty for the
// cross-island view.
func (c *Client) GetStatistics(ctx context.Context, island string, days int) (*Statistics, error) {
	if c.MockAPI {
		return mockStatistics(island, days), nil
	}
	var stats Statistics
	query := url.Values{"days": []string{strconv.Itoa(days)}}
	if island != "" {
		query.Set("island", island)
	}
	if err := c.get(ctx, "/api/statistics", query, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SubmitManualResults forwards an admin-entered result upstream.
func (c *Client) SubmitManualResults(ctx context.Context, payload ManualResultPayload) error {
	if c.MockAPI {
		return nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.post(ctx, "/api/results/manual", body)
}

// HealthCheck verifies the upstream source is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	if c.MockAPI {
		return nil
	}
	var status struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, "/api/health", nil, &status); err != nil {
		return err
	}
	if status.Status != "ok" {
		return fmt.Errorf("results API unhealthy: %q", status.Status)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("results API returned status %d for %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) post(ctx context.Context, path string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("results API returned status %d for %s", resp.StatusCode, path)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.APIKey != "" {
		req.Header.Set("X-API-Key", c.APIKey)
	}
	req.Header.Set("Accept", "application/json")
}
