package statsapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/scorigami-service/internal/providers"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func resolveHTTPClient(client *http.Client) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}

func resolveLocation(name string) *time.Location {
	return providers.TimezoneOrDefault(name)
}

func resolveSportID(id int) int {
	if id <= 0 {
		return defaultSportID
	}
	return id
}
