package poller

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/preston-bernstein/scorigami-service/internal/config"
	"github.com/preston-bernstein/scorigami-service/internal/domain/games"
	"github.com/preston-bernstein/scorigami-service/internal/domain/teams"
	"github.com/preston-bernstein/scorigami-service/internal/forecast"
	"github.com/preston-bernstein/scorigami-service/internal/franchise"
	"github.com/preston-bernstein/scorigami-service/internal/metrics"
	"github.com/preston-bernstein/scorigami-service/internal/notify"
	"github.com/preston-bernstein/scorigami-service/internal/queue"
	"github.com/preston-bernstein/scorigami-service/internal/scorigami"
	"github.com/preston-bernstein/scorigami-service/internal/social"
	"github.com/preston-bernstein/scorigami-service/internal/store"
	"github.com/preston-bernstein/scorigami-service/internal/teststubs"
)

var (
	brewers   = teams.Team{ID: 158, Name: "Milwaukee Brewers"}
	cardinals = teams.Team{ID: 138, Name: "St. Louis Cardinals"}
	yankees   = teams.Team{ID: 147, Name: "New York Yankees"}
	redSox    = teams.Team{ID: 111, Name: "Boston Red Sox"}
)

type harness struct {
	poller    *Poller
	provider  *teststubs.StubProvider
	publisher *teststubs.StubPublisher
	ledger    *store.Ledger
	queue     *store.QueueStore
	metrics   *metrics.Recorder
	db        *gorm.DB
}

func newHarness(t *testing.T, history ...store.GameLogModel) *harness {
	t.Helper()
	ctx := context.Background()
	db, err := store.Open(config.DatabaseConfig{Driver: store.DriverSQLite}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(db) })
	require.NoError(t, store.Migrate(ctx, db))
	require.NoError(t, store.MigrateHistory(ctx, db))
	for i := range history {
		history[i].GameID = int64(i + 1)
		if history[i].Date.IsZero() {
			history[i].Date = time.Date(2010, 6, 1, 0, 0, 0, 0, time.UTC)
		}
	}
	if len(history) > 0 {
		require.NoError(t, db.CreateInBatches(&history, 200).Error)
	}

	table, err := franchise.Load("")
	require.NoError(t, err)
	resolver := franchise.NewResolver(table, nil)
	rec := metrics.NewRecorder()
	classifier := scorigami.NewClassifier(store.NewHistoryReader(db, store.EraFilter{}), resolver, 3, nil, rec)

	h := &harness{
		provider:  &teststubs.StubProvider{Live: map[int]games.Snapshot{}},
		publisher: &teststubs.StubPublisher{},
		ledger:    store.NewLedger(db),
		queue:     store.NewQueueStore(db),
		metrics:   rec,
		db:        db,
	}
	pipeline := social.NewPipeline(h.publisher, true, nil, rec)
	h.poller = New(Deps{
		Provider:   h.provider,
		Resolver:   resolver,
		Classifier: classifier,
		Forecaster: forecast.New(forecast.DefaultParams(), classifier, nil),
		Composer:   notify.NewComposer(false, resolver),
		Ledger:     h.ledger,
		Queue:      queue.New(h.queue, h.ledger, pipeline, 2*time.Hour, nil, rec),
		Deliverer:  pipeline,
		Metrics:    rec,
		Timezone:   "America/New_York",
	})
	return h
}

func finalGame(id int, home, away teams.Team, homeRuns, awayRuns int) games.Snapshot {
	return games.Snapshot{
		GameID:        id,
		Status:        games.StatusFinal,
		DetailedState: "Final",
		Home:          home,
		Away:          away,
		HomeRuns:      homeRuns,
		AwayRuns:      awayRuns,
		Inning:        9,
	}
}

func liveGame(id, inning, homeRuns, awayRuns int) games.Snapshot {
	return games.Snapshot{
		GameID:        id,
		Status:        games.StatusInProgress,
		DetailedState: "In Progress",
		Home:          brewers,
		Away:          cardinals,
		HomeRuns:      homeRuns,
		AwayRuns:      awayRuns,
		Inning:        inning,
		InningState:   "Middle of the 8th",
	}
}

func (h *harness) kinds(t *testing.T, gameID int) []store.Kind {
	t.Helper()
	records, err := h.ledger.List(context.Background(), gameID)
	require.NoError(t, err)
	out := make([]store.Kind, 0, len(records))
	for _, r := range records {
		out = append(out, r.Kind)
	}
	return out
}

func TestRunOnceTwiceDeliversOnce(t *testing.T) {
	h := newHarness(t, store.GameLogModel{HomeTeam: "NYA", VisitorTeam: "BOS", HomeScore: 4, VisitorScore: 3})
	h.provider.Games = []games.Snapshot{finalGame(1, brewers, cardinals, 13, 2)}
	ctx := context.Background()

	first, err := h.poller.RunOnce(ctx)
	require.NoError(t, err)
	second, err := h.poller.RunOnce(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, first.Delivered)
	assert.Equal(t, 0, second.Delivered)
	assert.Equal(t, 0, second.Processed)
	require.Len(t, h.publisher.Posted, 1)
	assert.Contains(t, h.publisher.Posted[0], "It's the 2nd unique final score in MLB history.")
	assert.True(t, strings.HasPrefix(h.publisher.Posted[0], "Milwaukee Brewers 13 - 2 St. Louis Cardinals\nFinal"))
	assert.Equal(t, []store.Kind{store.KindFinal}, h.kinds(t, 1))
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestLowValueFinalIsRecordedWithoutDelivery(t *testing.T) {
	h := newHarness(t)
	h.provider.Games = []games.Snapshot{finalGame(2, brewers, cardinals, 1, 0)}

	summary, err := h.poller.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.LowValue)
	assert.Equal(t, 0, h.publisher.Calls)
	assert.Equal(t, []store.Kind{store.KindLowValue}, h.kinds(t, 2))
}

func TestTieTakesTiePath(t *testing.T) {
	h := newHarness(t, store.GameLogModel{HomeTeam: "CHN", VisitorTeam: "PIT", HomeScore: 5, VisitorScore: 5})
	h.provider.Games = []games.Snapshot{finalGame(3, brewers, cardinals, 5, 5)}

	_, err := h.poller.RunOnce(context.Background())
	require.NoError(t, err)

	require.Len(t, h.publisher.Posted, 1)
	assert.Contains(t, h.publisher.Posted[0], "A tie! Final scores of 5-5 have happened 1 time in MLB history.")
	assert.NotContains(t, h.publisher.Posted[0], "Scorigami")
}

func TestFranchiseScorigamiNamesOnlyTheNewFranchise(t *testing.T) {
	h := newHarness(t,
		store.GameLogModel{HomeTeam: "MIL", VisitorTeam: "CHN", HomeScore: 4, VisitorScore: 3},
		store.GameLogModel{HomeTeam: "SLN", VisitorTeam: "CIN", HomeScore: 8, VisitorScore: 1},
	)
	h.provider.Games = []games.Snapshot{finalGame(4, brewers, cardinals, 4, 3)}

	_, err := h.poller.RunOnce(context.Background())
	require.NoError(t, err)

	require.Len(t, h.publisher.Posted, 1)
	post := h.publisher.Posted[0]
	assert.Contains(t, post, "It's the 2nd unique final score in St. Louis Cardinals franchise history.")
	assert.NotContains(t, post, "Milwaukee Brewers franchise")
	assert.Contains(t, post, "This score has happened 1 time in MLB history, most recently on June 1, 2010.")
}

func TestNotUniqueFinalNamesLastMeeting(t *testing.T) {
	h := newHarness(t,
		store.GameLogModel{HomeTeam: "MIL", VisitorTeam: "SLN", HomeScore: 6, VisitorScore: 2},
	)
	h.provider.Games = []games.Snapshot{finalGame(5, brewers, cardinals, 6, 2)}

	summary, err := h.poller.RunOnce(context.Background())
	require.NoError(t, err)

	// 6-2 is on record for both clubs, so the post is a plain "No Scorigami".
	assert.Equal(t, 1, summary.Delivered)
	assert.Contains(t, h.publisher.Posted[0], "No Scorigami. That score has happened 1 time before in MLB history, most recently on June 1, 2010 (Cardinals at Brewers).")
}

func TestRateLimitedFinalIsQueuedOnce(t *testing.T) {
	h := newHarness(t)
	h.publisher.Errs = []error{&social.RateLimitError{StatusCode: 429}}
	h.provider.Games = []games.Snapshot{finalGame(6, brewers, cardinals, 13, 2)}
	ctx := context.Background()

	summary, err := h.poller.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Queued)
	assert.Equal(t, []store.Kind{store.KindQueued}, h.kinds(t, 6))

	n, err := h.queue.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	summary, err = h.poller.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Processed)
	assert.Empty(t, h.publisher.Posted)
}

func TestOtherDeliveryErrorIsRetriedNextPass(t *testing.T) {
	h := newHarness(t)
	h.publisher.Errs = []error{errors.New("403 duplicate")}
	h.provider.Games = []games.Snapshot{finalGame(7, brewers, cardinals, 13, 2)}
	ctx := context.Background()

	summary, err := h.poller.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Retry)
	assert.Empty(t, h.kinds(t, 7))

	n, err := h.queue.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "non rate-limit failures are not queued")

	summary, err = h.poller.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Delivered)
	assert.Equal(t, []store.Kind{store.KindFinal}, h.kinds(t, 7))
}

func TestScheduleFailureWritesNothing(t *testing.T) {
	h := newHarness(t)
	h.provider.Err = errors.New("statsapi down")

	_, err := h.poller.RunOnce(context.Background())
	require.Error(t, err)

	status := h.poller.Status()
	assert.Equal(t, 1, status.ConsecutiveFailures)
	assert.False(t, status.IsReady())
	assert.Zero(t, h.publisher.Calls)
}

func TestOneFailingGameDoesNotStopThePass(t *testing.T) {
	h := newHarness(t)
	h.provider.LiveErr = errors.New("feed timeout")
	h.provider.Games = []games.Snapshot{
		liveGame(8, 8, 16, 4),
		finalGame(9, yankees, redSox, 14, 3),
	}

	summary, err := h.poller.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.GamesSeen)
	assert.Equal(t, 1, summary.Delivered)
	assert.Equal(t, []store.Kind{store.KindFinal}, h.kinds(t, 9))
	assert.Empty(t, h.kinds(t, 8))
	assert.True(t, h.poller.Status().IsReady())
}

func TestForecastPostsOncePerInningAndScore(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	game := liveGame(10, 8, 16, 4)
	h.provider.Games = []games.Snapshot{game}
	h.provider.Live[10] = game

	summary, err := h.poller.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Delivered)
	require.Len(t, h.publisher.Posted, 1)
	assert.Contains(t, h.publisher.Posted[0], "FRANCHISE SCORIGAMI WATCH")
	assert.Equal(t, []store.Kind{store.KindForecast}, h.kinds(t, 10))

	// Same inning again: already recorded.
	_, err = h.poller.RunOnce(ctx)
	require.NoError(t, err)
	assert.Len(t, h.publisher.Posted, 1)
}

func TestForecastSkipsUnchangedScoreInNewInning(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.provider.Games = []games.Snapshot{liveGame(11, 7, 16, 4)}
	h.provider.Live[11] = liveGame(11, 7, 16, 4)

	_, err := h.poller.RunOnce(ctx)
	require.NoError(t, err)
	require.Len(t, h.publisher.Posted, 1)

	h.provider.Live[11] = liveGame(11, 8, 16, 4)
	_, err = h.poller.RunOnce(ctx)
	require.NoError(t, err)
	assert.Len(t, h.publisher.Posted, 1, "score has not moved since the last forecast")

	h.provider.Live[11] = liveGame(11, 8, 17, 4)
	_, err = h.poller.RunOnce(ctx)
	require.NoError(t, err)
	assert.Len(t, h.publisher.Posted, 2)
	assert.Equal(t, []store.Kind{store.KindForecast, store.KindForecast}, h.kinds(t, 11))
}

func TestForecastWithNothingReachableReleasesInning(t *testing.T) {
	// Every Brewers and Cardinals score within reach is already on record.
	var history []store.GameLogModel
	for home := 16; home <= 40; home++ {
		for away := 4; away <= 30; away++ {
			history = append(history,
				store.GameLogModel{HomeTeam: "MIL", VisitorTeam: "CHN", HomeScore: home, VisitorScore: away},
				store.GameLogModel{HomeTeam: "CHN", VisitorTeam: "SLN", HomeScore: home, VisitorScore: away},
			)
		}
	}
	h := newHarness(t, history...)
	h.provider.Games = []games.Snapshot{liveGame(12, 8, 16, 4)}
	h.provider.Live[12] = liveGame(12, 8, 16, 4)

	summary, err := h.poller.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, h.publisher.Calls)
	assert.Zero(t, summary.Processed)
	assert.Empty(t, h.kinds(t, 12))
}

func TestScheduleDateUsesConfiguredTimezone(t *testing.T) {
	h := newHarness(t)
	h.poller.now = func() time.Time { return time.Date(2024, 7, 2, 2, 0, 0, 0, time.UTC) }

	summary, err := h.poller.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-07-01", summary.Date)
}
