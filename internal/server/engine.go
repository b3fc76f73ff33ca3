package server

import (
	"log/slog"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/preston-bernstein/scorigami-service/internal/config"
	"github.com/preston-bernstein/scorigami-service/internal/forecast"
	"github.com/preston-bernstein/scorigami-service/internal/franchise"
	"github.com/preston-bernstein/scorigami-service/internal/metrics"
	"github.com/preston-bernstein/scorigami-service/internal/notify"
	"github.com/preston-bernstein/scorigami-service/internal/poller"
	"github.com/preston-bernstein/scorigami-service/internal/providers"
	"github.com/preston-bernstein/scorigami-service/internal/queue"
	"github.com/preston-bernstein/scorigami-service/internal/scorigami"
	"github.com/preston-bernstein/scorigami-service/internal/social"
	"github.com/preston-bernstein/scorigami-service/internal/store"
)

// engine is the detection, forecast and delivery graph behind the trigger endpoints.
type engine struct {
	poller *poller.Poller
	queue  *queue.Queue
}

func buildEngine(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder, provider providers.GameProvider, db *gorm.DB) (engine, error) {
	table, err := franchise.Load(cfg.Engine.FranchiseFile)
	if err != nil {
		return engine{}, errors.Wrap(err, "failed to load franchise table")
	}
	resolver := franchise.NewResolver(table, logger)

	history := store.NewHistoryReader(db, store.EraFilter{
		ExcludeNegroLeagues: cfg.Engine.History.ExcludeNegroLeagues,
		FromYear:            cfg.Engine.History.FromYear,
	})
	classifier := scorigami.NewClassifier(history, resolver, cfg.Engine.MinCombinedRuns, logger, recorder)
	forecaster := forecast.New(forecast.ParamsFromConfig(cfg.Engine.Forecast), classifier, logger)

	publisher := social.NewXClient(social.XConfig{
		BaseURL:      cfg.Social.BaseURL,
		AppKey:       cfg.Social.AppKey,
		AppSecret:    cfg.Social.AppSecret,
		AccessToken:  cfg.Social.AccessToken,
		AccessSecret: cfg.Social.AccessSecret,
	})
	pipeline := social.NewPipeline(publisher, cfg.Social.PostingEnabled, logger, recorder)

	ledger := store.NewLedger(db)
	q := queue.New(store.NewQueueStore(db), ledger, pipeline, cfg.Social.QueueExpiry, logger, recorder)

	plr := poller.New(poller.Deps{
		Provider:   provider,
		Resolver:   resolver,
		Classifier: classifier,
		Forecaster: forecaster,
		Composer:   notify.NewComposer(cfg.Social.HashtagsEnabled, resolver),
		Ledger:     ledger,
		Queue:      q,
		Deliverer:  pipeline,
		Logger:     logger,
		Metrics:    recorder,
		Timezone:   cfg.StatsAPI.Timezone,
	})
	return engine{poller: plr, queue: q}, nil
}
