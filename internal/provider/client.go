// Package provider is the adapter over the external sports-data API. It
// normalizes the provider's wire format into model.GameLogEntry and
// model.TeamGameDay; everything past this package works on those shapes
// only.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/doctornein/dynasty-tokens/internal/config"
	"github.com/doctornein/dynasty-tokens/internal/model"
	"github.com/rs/zerolog"
)

// ErrUnknownTeam signals a schedule lookup for a team abbreviation the
// provider does not recognize. Unlike stat-shape issues this one is hard:
// no scoring is possible without a schedule.
var ErrUnknownTeam = errors.New("unknown team abbreviation")

// Client talks to the sports-data API over plain HTTP. The embedded
// http.Client carries the per-request timeout; callers treat any error as
// "no data for this player" and decide isolation policy themselves.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	log        zerolog.Logger
}

func NewClient(cfg config.ProviderConfig, logger zerolog.Logger) *Client {
	l := logger.With().Str("module", "provider").Logger()
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		log:       l,
	}
}

// FetchGameLogs returns the normalized game log lines for one provider
// player id. Missing or non-numeric stat fields default to zero; rows
// without a date are dropped since nothing downstream can key on them.
func (c *Client) FetchGameLogs(ctx context.Context, providerID string) ([]model.GameLogEntry, error) {
	url := fmt.Sprintf("%s/players/%s/gamelog", c.baseURL, providerID)
	raw, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	entries := make([]model.GameLogEntry, 0)
	for _, row := range asSlice(raw["gamelogs"]) {
		m, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		entry := parseGameLog(m)
		if entry.Date == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// FetchTeamSchedule returns completed and upcoming game days for a team.
// A 404 from the provider maps to ErrUnknownTeam.
func (c *Client) FetchTeamSchedule(ctx context.Context, teamAbbr string) ([]model.TeamGameDay, error) {
	url := fmt.Sprintf("%s/teams/%s/schedule", c.baseURL, teamAbbr)
	raw, err := c.fetch(ctx, url)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTeam, teamAbbr)
		}
		return nil, err
	}

	days := make([]model.TeamGameDay, 0)
	for _, row := range asSlice(raw["schedule"]) {
		m, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		day := model.TeamGameDay{
			Date:   asString(m["date"]),
			Status: asString(m["status"]),
		}
		if day.Date == "" {
			continue
		}
		days = append(days, day)
	}
	return days, nil
}

var errNotFound = errors.New("not found")

// fetch makes a GET request and returns the parsed JSON document.
func (c *Client) fetch(ctx context.Context, url string) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("provider error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return result, nil
}
