package application

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"scratch_tracker/internal/config"
	"scratch_tracker/internal/domain/entity"
	service "scratch_tracker/internal/domain/service/games"
	"scratch_tracker/internal/infrastructure/lottery"
	"scratch_tracker/internal/infrastructure/notifier"
	"scratch_tracker/internal/infrastructure/persistence"
	"scratch_tracker/internal/server"
	"scratch_tracker/internal/worker"
	"scratch_tracker/pkg/application/connectors"
	"scratch_tracker/pkg/application/modules"
	"scratch_tracker/pkg/logx"
	"scratch_tracker/pkg/middlewarex"
)

const (
	readHeaderTimeout = 10 * time.Second
	alertsBufferSize  = 100
)

func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	// Snapshot cache.
	rdb := &connectors.Redis{
		Address:            cfg.Redis.Address,
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
	}
	store := persistence.NewSnapshotStore(rdb.Client(ctx))

	defer rdb.Close(ctx)

	// Extraction pipeline.
	fetcher := lottery.NewClient(cfg.Scrape.ListingURL, cfg.Scrape.Timeout, cfg.Scrape.LogFieldMaxLen)

	games := service.NewGameService(fetcher, cfg.Scrape.BaseURL, cfg.Scrape.LinkPattern).
		WithDetailCacheTTL(cfg.Scrape.DetailCacheTTL)

	runner := worker.NewRunner(games, store).
		WithBatchSize(cfg.Scrape.BatchSize)

	// Optional record archive.
	if cfg.Postgres.Enabled() {
		pg := &connectors.Postgres{
			DSN:             cfg.Postgres.DSN,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		}
		runner = runner.WithArchive(persistence.NewGameRecordRepository(pg.Client(ctx)))

		defer pg.Close(ctx)
	}

	// Optional alert bot.
	if cfg.Bot.Enabled() {
		alertBot, err := notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.ChatID)
		if err != nil {
			return fmt.Errorf("notifier.NewTelegramBot: %w", err)
		}

		if err := alertBot.SendText(ctx, "scratch tracker started, alerts enabled"); err != nil {
			return fmt.Errorf("alertBot.SendText: %w", err)
		}

		alerts := make(chan entity.Alert, alertsBufferSize)
		runner = runner.WithAlerts(alerts)

		g.Go(func() error {
			if err := alertBot.Run(ctx, alerts); err != nil && ctx.Err() == nil {
				return fmt.Errorf("alertBot.Run: %w", err)
			}

			return nil
		})
	}

	// HTTP surface.
	masker := logx.NewSensitiveDataMasker()

	router := chi.NewRouter()
	router.Use(
		middlewarex.Recovery,
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.RequestLogging(masker, cfg.Server.LogFieldMaxLen),
		middlewarex.ResponseLogging(masker, cfg.Server.LogFieldMaxLen),
	)

	server.NewServer(
		server.NewGamesServer(runner, store),
	).RegisterRoutes(router)

	modules.HTTPServer{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}.Run(ctx, g, &http.Server{
		Addr:              cfg.Server.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	})

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Server.ProbeListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.Server.MetricListenAddress,
	}.Run(ctx, g)

	// Scheduled refresh.
	if cfg.Asynq.Enabled {
		modules.AsynqServer{
			RedisUsername: cfg.Redis.Username,
			RedisPassword: cfg.Redis.Password,
			RedisAddress:  cfg.Redis.Address,
			RedisDB:       cfg.Redis.DatabaseNumber,
		}.Run(ctx, g,
			modules.AsynqQueues{"default": 1},
			modules.AsynqHandler{
				Pattern: worker.TaskSnapshotRefresh,
				Handle:  runner.HandleRefreshTask,
			},
		)

		modules.AsynqScheduler{
			RedisUsername: cfg.Redis.Username,
			RedisPassword: cfg.Redis.Password,
			RedisAddress:  cfg.Redis.Address,
			RedisDB:       cfg.Redis.DatabaseNumber,
		}.Run(ctx, g, modules.AsynqSchedulerEntry{
			Cronspec: cfg.Asynq.RefreshCronspec,
			Task:     worker.NewRefreshTask(),
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}
