package statsapi

import "time"

const (
	providerName = "statsapi"

	defaultBaseURL     = "https://statsapi.mlb.com"
	defaultSportID     = 1
	defaultHTTPTimeout = 10 * time.Second

	schedulePath = "/api/v1/schedule/games/"
	liveFeedPath = "/api/v1.1/game/%d/feed/live"

	pregameInningState = "Pre-Game"
)

// finalStates are the detailed states the provider uses once a game has ended.
var finalStates = map[string]struct{}{
	"Final":           {},
	"Game Over":       {},
	"Completed Early": {},
}
