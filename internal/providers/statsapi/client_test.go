package statsapi

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/scorigami-service/internal/domain/games"
	"github.com/preston-bernstein/scorigami-service/internal/providers"
)

const scheduleBody = `{
	"dates": [
		{
			"date": "2024-07-01",
			"games": [
				{
					"gamePk": 745001,
					"status": { "abstractGameState": "Final", "detailedState": "Final" },
					"teams": {
						"away": { "team": { "id": 138, "name": "St. Louis Cardinals" }, "score": 4 },
						"home": { "team": { "id": 158, "name": "Milwaukee Brewers" }, "score": 16 }
					},
					"linescore": { "currentInning": 9, "currentInningOrdinal": "9th", "inningState": "Bottom" }
				},
				{
					"gamePk": 745002,
					"status": { "abstractGameState": "Preview", "detailedState": "Scheduled" },
					"teams": {
						"away": { "team": { "id": 147, "name": "New York Yankees" } },
						"home": { "team": { "id": 111, "name": "Boston Red Sox" } }
					}
				}
			]
		}
	]
}`

const liveBody = `{
	"gamePk": 745003,
	"gameData": {
		"status": { "abstractGameState": "Live", "detailedState": "In Progress" },
		"teams": {
			"away": { "id": 138, "name": "St. Louis Cardinals", "abbreviation": "STL" },
			"home": { "id": 158, "name": "Milwaukee Brewers", "abbreviation": "MIL" }
		}
	},
	"liveData": {
		"linescore": {
			"currentInning": 8,
			"currentInningOrdinal": "8th",
			"inningState": "Middle",
			"teams": { "home": { "runs": 16 }, "away": { "runs": 4 } }
		}
	}
}`

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestFetchScheduleHitsAPIAndMapsResponse(t *testing.T) {
	fixed := time.Date(2024, 7, 2, 3, 0, 0, 0, time.UTC) // still 2024-07-01 in America/New_York
	var captured *http.Request

	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		captured = req
		return jsonResponse(http.StatusOK, scheduleBody), nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com/",
		HTTPClient: &http.Client{Transport: rt},
		Timezone:   "America/New_York",
	})
	client.now = func() time.Time { return fixed }

	snaps, err := client.FetchSchedule(context.Background(), "", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if captured.URL.Path != schedulePath {
		t.Fatalf("expected schedule path, got %s", captured.URL.Path)
	}
	q := captured.URL.Query()
	if q.Get("sportId") != "1" || q.Get("date") != "2024-07-01" || q.Get("hydrate") != "linescore" {
		t.Fatalf("unexpected query %s", captured.URL.RawQuery)
	}
	if len(snaps) != 2 {
		t.Fatalf("expected 2 games, got %d", len(snaps))
	}

	final := snaps[0]
	if final.GameID != 745001 || final.Status != games.StatusFinal {
		t.Fatalf("unexpected final game %+v", final)
	}
	if final.AwayRuns != 4 || final.HomeRuns != 16 || final.Home.ID != 158 || final.Away.Name != "St. Louis Cardinals" {
		t.Fatalf("unexpected mapping %+v", final)
	}
	if final.InningState != "Bottom of the 9th" {
		t.Fatalf("unexpected inning state %q", final.InningState)
	}

	pre := snaps[1]
	if pre.Status != games.StatusScheduled || pre.HomeRuns != 0 || pre.InningState != "Pre-Game" {
		t.Fatalf("unexpected scheduled game %+v", pre)
	}
}

func TestFetchScheduleUsesExplicitDate(t *testing.T) {
	var date string
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		date = req.URL.Query().Get("date")
		return jsonResponse(http.StatusOK, `{"dates": []}`), nil
	})
	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}})

	snaps, err := client.FetchSchedule(context.Background(), "2023-09-30", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if date != "2023-09-30" || len(snaps) != 0 {
		t.Fatalf("expected explicit date and no games, got %s %d", date, len(snaps))
	}
}

func TestFetchLiveGameMapsFeed(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/v1.1/game/745003/feed/live" {
			t.Fatalf("unexpected live path %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, liveBody), nil
	})
	client := NewClient(Config{BaseURL: "http://example.com", HTTPClient: &http.Client{Transport: rt}})

	snap, err := client.FetchLiveGame(context.Background(), 745003)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if snap.Status != games.StatusInProgress || snap.Inning != 8 {
		t.Fatalf("unexpected live snapshot %+v", snap)
	}
	if snap.HomeRuns != 16 || snap.AwayRuns != 4 || snap.InningState != "Middle of the 8th" {
		t.Fatalf("unexpected live score %+v", snap)
	}
	if snap.Home.Abbreviation != "MIL" {
		t.Fatalf("expected abbreviation from feed, got %+v", snap.Home)
	}
}

func TestFetchScheduleHandlesNon200(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		_ = req
		return jsonResponse(http.StatusBadGateway, "boom"), nil
	})
	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}})

	if _, err := client.FetchSchedule(context.Background(), "2024-07-01", ""); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestFetchScheduleMapsRateLimit(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		_ = req
		resp := jsonResponse(http.StatusTooManyRequests, "")
		resp.Header.Set("Retry-After", "7")
		return resp, nil
	})
	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}})

	_, err := client.FetchSchedule(context.Background(), "2024-07-01", "")
	rlErr, ok := providers.AsRateLimitError(err)
	if !ok {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if rlErr.RetryAfter != 7*time.Second || rlErr.Provider != providerName {
		t.Fatalf("unexpected rate limit error %+v", rlErr)
	}
}

func TestFetchLiveGameHandlesDecodeError(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		_ = req
		return jsonResponse(http.StatusOK, "{bad json"), nil
	})
	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}})

	if _, err := client.FetchLiveGame(context.Background(), 1); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestNewClientSetsDefaults(t *testing.T) {
	c := NewClient(Config{})
	httpClient, ok := c.httpClient.(*http.Client)
	if !ok {
		t.Fatalf("expected default http client")
	}
	if httpClient.Timeout == 0 {
		t.Fatalf("expected timeout to be set on default http client")
	}
	if c.sportID != defaultSportID || c.baseURL != defaultBaseURL {
		t.Fatalf("unexpected defaults %+v", c)
	}
}

func TestClientImplementsGameProvider(t *testing.T) {
	var _ providers.GameProvider = (*Client)(nil)
}

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
