package statsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/scorigami-service/internal/domain/games"
	"github.com/preston-bernstein/scorigami-service/internal/providers"
	"github.com/preston-bernstein/scorigami-service/internal/timeutil"
)

// Config controls how the Stats API client reaches the upstream API.
type Config struct {
	BaseURL    string
	SportID    int
	HTTPClient *http.Client
	Timezone   string
}

// Client fetches the schedule and live feeds from the MLB Stats API and maps them to snapshots.
type Client struct {
	baseURL    string
	sportID    int
	httpClient httpDoer
	now        func() time.Time
	loc        *time.Location
}

// NewClient constructs a Stats API client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		sportID:    resolveSportID(cfg.SportID),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
		loc:        resolveLocation(cfg.Timezone),
	}
}

// FetchSchedule retrieves every game on the given day with its current score and status.
func (c *Client) FetchSchedule(ctx context.Context, date string, tz string) ([]games.Snapshot, error) {
	loc := c.loc
	if tz != "" {
		if override := providers.ResolveTimezone(tz); override != nil {
			loc = override
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+schedulePath, nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("sportId", strconv.Itoa(c.sportID))
	q.Set("date", c.resolveDate(date, loc))
	q.Set("hydrate", "linescore")
	req.URL.RawQuery = q.Encode()

	var payload scheduleResponse
	if err := c.do(req, &payload); err != nil {
		return nil, err
	}

	out := make([]games.Snapshot, 0)
	for _, d := range payload.Dates {
		for _, g := range d.Games {
			out = append(out, mapScheduleGame(g))
		}
	}
	return out, nil
}

// FetchLiveGame retrieves the detailed live feed for one game.
func (c *Client) FetchLiveGame(ctx context.Context, gameID int) (games.Snapshot, error) {
	url := c.baseURL + fmt.Sprintf(liveFeedPath, gameID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return games.Snapshot{}, err
	}

	var feed liveFeedResponse
	if err := c.do(req, &feed); err != nil {
		return games.Snapshot{}, err
	}
	if feed.GamePk == 0 {
		feed.GamePk = gameID
	}
	return mapLiveFeed(feed), nil
}

func (c *Client) do(req *http.Request, dest any) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: providers.ParseRetryAfter(resp.Header.Get("Retry-After")),
			Message:    "statsapi rate limited",
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("statsapi: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("statsapi: decode: %w", err)
	}
	return nil
}

func (c *Client) resolveDate(date string, loc *time.Location) string {
	return timeutil.ScheduleDate(date, c.now(), loc)
}
