// Command forecast prints the franchise scorigami forecast for one in-progress game.
//
//	forecast -game 745001
//	forecast -home 158 -away 138 -inning 8 -home-score 12 -away-score 3
//	forecast -list
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/preston-bernstein/scorigami-service/internal/config"
	"github.com/preston-bernstein/scorigami-service/internal/domain/franchises"
	"github.com/preston-bernstein/scorigami-service/internal/domain/games"
	"github.com/preston-bernstein/scorigami-service/internal/domain/teams"
	"github.com/preston-bernstein/scorigami-service/internal/forecast"
	"github.com/preston-bernstein/scorigami-service/internal/franchise"
	"github.com/preston-bernstein/scorigami-service/internal/logging"
	"github.com/preston-bernstein/scorigami-service/internal/notify"
	"github.com/preston-bernstein/scorigami-service/internal/providers"
	"github.com/preston-bernstein/scorigami-service/internal/providers/statsapi"
	"github.com/preston-bernstein/scorigami-service/internal/scorigami"
	"github.com/preston-bernstein/scorigami-service/internal/store"
)

var errUsage = errors.New("either -game, -list, or both -home and -away are required")

var newProvider = func(cfg config.Config, logger *slog.Logger) providers.GameProvider {
	client := statsapi.NewClient(statsapi.Config{
		BaseURL:  cfg.StatsAPI.BaseURL,
		SportID:  cfg.StatsAPI.SportID,
		Timezone: cfg.StatsAPI.Timezone,
	})
	return providers.NewRetryingProvider(client, logger, nil, "statsapi", 0, 0)
}

type options struct {
	gameID      int
	list        bool
	home        int
	away        int
	inning      int
	homeScore   int
	awayScore   int
	inningState string
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], config.Load(), os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, cfg config.Config, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, err)
		}
		return 2
	}

	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "scorigami-forecast",
		Output:  stderr,
	})
	provider := newProvider(cfg, logger)

	if opts.list {
		if err := listLive(ctx, provider, cfg.StatsAPI.Timezone, stdout); err != nil {
			logging.Error(logger, "schedule fetch failed", err)
			return 1
		}
		return 0
	}

	table, err := franchise.Load(cfg.Engine.FranchiseFile)
	if err != nil {
		logging.Error(logger, "franchise table load failed", err)
		return 1
	}
	resolver := franchise.NewResolver(table, logger)

	snap, err := opts.snapshot(ctx, provider, resolver)
	if err != nil {
		logging.Error(logger, "game lookup failed", err, slog.Int(logging.FieldGameID, opts.gameID))
		return 1
	}

	db, err := store.Open(cfg.Database, logger)
	if err != nil {
		logging.Error(logger, "store open failed", err)
		return 1
	}
	defer func() { _ = store.Close(db) }()
	if err := store.Prepare(ctx, db, cfg.Database); err != nil {
		logging.Error(logger, "store migration failed", err)
		return 1
	}

	history := store.NewHistoryReader(db, store.EraFilter{
		ExcludeNegroLeagues: cfg.Engine.History.ExcludeNegroLeagues,
		FromYear:            cfg.Engine.History.FromYear,
	})
	classifier := scorigami.NewClassifier(history, resolver, cfg.Engine.MinCombinedRuns, logger, nil)
	forecaster := forecast.New(forecast.ParamsFromConfig(cfg.Engine.Forecast), classifier, logger)

	home := resolver.Resolve(ctx, snap.Home.ID, snap.Home.Name)
	away := resolver.Resolve(ctx, snap.Away.ID, snap.Away.Name)
	cache := forecast.NewCache()
	result, err := forecaster.Forecast(ctx, snap, home, away, cache)
	if err != nil {
		logging.Error(logger, "forecast failed", err)
		return 1
	}

	composer := notify.NewComposer(cfg.Social.HashtagsEnabled, resolver)
	report(stdout, forecaster.Params(), snap, home, away, result, cache, composer)
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("forecast", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&opts.gameID, "game", 0, "live game id (gamePk) to fetch")
	fs.BoolVar(&opts.list, "list", false, "list today's in-progress games")
	fs.IntVar(&opts.home, "home", 0, "home team provider id for a simulated game")
	fs.IntVar(&opts.away, "away", 0, "away team provider id for a simulated game")
	fs.IntVar(&opts.inning, "inning", 8, "current inning for a simulated game")
	fs.IntVar(&opts.homeScore, "home-score", 0, "home runs so far for a simulated game")
	fs.IntVar(&opts.awayScore, "away-score", 0, "away runs so far for a simulated game")
	fs.StringVar(&opts.inningState, "inning-state", "", "inning label for a simulated game")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if !opts.list && opts.gameID == 0 && (opts.home == 0 || opts.away == 0) {
		return opts, errUsage
	}
	if opts.homeScore < 0 || opts.awayScore < 0 || opts.inning < 1 {
		return opts, errors.New("scores must be non-negative and inning at least 1")
	}
	return opts, nil
}

func (o options) snapshot(ctx context.Context, provider providers.GameProvider, resolver *franchise.Resolver) (games.Snapshot, error) {
	if o.gameID != 0 {
		return provider.FetchLiveGame(ctx, o.gameID)
	}
	home := resolver.Resolve(ctx, o.home, "")
	away := resolver.Resolve(ctx, o.away, "")
	state := o.inningState
	if state == "" {
		state = "Middle of the " + humanize.Ordinal(o.inning)
	}
	return games.Snapshot{
		Status:        games.StatusInProgress,
		DetailedState: "In Progress",
		Home:          teams.Team{ID: o.home, Name: home.Name, Abbreviation: home.Code},
		Away:          teams.Team{ID: o.away, Name: away.Name, Abbreviation: away.Code},
		HomeRuns:      o.homeScore,
		AwayRuns:      o.awayScore,
		Inning:        o.inning,
		InningState:   state,
	}, nil
}

func listLive(ctx context.Context, provider providers.GameProvider, tz string, out io.Writer) error {
	slate, err := provider.FetchSchedule(ctx, "", tz)
	if err != nil {
		return err
	}
	found := 0
	for _, g := range slate {
		if g.Status != games.StatusInProgress {
			continue
		}
		found++
		fmt.Fprintf(out, "%d\t%s at %s\t%s\n", g.GameID, g.Away.Name, g.Home.Name, g.DetailedState)
	}
	if found == 0 {
		fmt.Fprintln(out, "No live games right now.")
	}
	return nil
}

func report(out io.Writer, params forecast.Params, snap games.Snapshot, home, away franchises.Franchise, r *forecast.Result, cache *forecast.Cache, composer *notify.Composer) {
	fmt.Fprintln(out, notify.LiveHeader(snap))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Franchises: %s (home) vs %s (away)\n", home.Code, away.Code)
	fmt.Fprintf(out, "Eligible for a watch post: %t\n", params.Eligible(snap))

	remaining := params.InningsRemaining(snap.Inning)
	fmt.Fprintf(out, "Innings remaining: %d\n", remaining)
	if remaining <= 0 {
		fmt.Fprintln(out, "No regulation innings remain; nothing to forecast.")
		return
	}
	fmt.Fprintf(out, "Lambda: %.2f expected runs for the rest of the game\n", params.Lambda(remaining))
	fmt.Fprintf(out, "Uniqueness checks: %d (%d served from cache)\n", cache.Len(), cache.Hits())

	if r == nil {
		fmt.Fprintln(out, "No franchise scorigami is reachable.")
		return
	}
	fmt.Fprintf(out, "Franchise scorigami chance: %s\n", notify.Percent(r.TotalChance))
	if r.MostLikely != nil {
		fmt.Fprintf(out, "Most likely: %s %s (%s)\n", r.MostLikely.Team.DisplayShort(), r.MostLikely.Score, notify.Percent(r.MostLikely.Probability))
	}
	if text, ok := composer.Forecast(snap, home, away, r); ok {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Post preview:")
		fmt.Fprintln(out, text)
	}
}
