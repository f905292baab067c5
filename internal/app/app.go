package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fplmate/fpl-companion/internal/config"
	"github.com/fplmate/fpl-companion/internal/domain/fixture"
	"github.com/fplmate/fpl-companion/internal/domain/player"
	"github.com/fplmate/fpl-companion/internal/domain/squad"
	"github.com/fplmate/fpl-companion/internal/domain/team"
	"github.com/fplmate/fpl-companion/internal/infrastructure/fpl"
	cacherepo "github.com/fplmate/fpl-companion/internal/infrastructure/repository/cache"
	"github.com/fplmate/fpl-companion/internal/infrastructure/repository/memory"
	"github.com/fplmate/fpl-companion/internal/infrastructure/repository/postgres"
	"github.com/fplmate/fpl-companion/internal/interfaces/httpapi"
	"github.com/fplmate/fpl-companion/internal/platform/cache"
	"github.com/fplmate/fpl-companion/internal/platform/id"
	"github.com/fplmate/fpl-companion/internal/platform/logging"
	"github.com/fplmate/fpl-companion/internal/platform/resilience"
	"github.com/fplmate/fpl-companion/internal/usecase"
)

// App owns the wired service graph and the process lifecycle. Construction
// wires repositories, the FPL client and the HTTP router; Run starts the
// server plus the background sync loop and blocks until the context is
// cancelled.
type App struct {
	cfg    config.Config
	logger *logging.Logger
	server *http.Server
	db     *sqlx.DB
	sync   *usecase.SyncService
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var (
		db          *sqlx.DB
		playerRepo  player.Repository
		teamRepo    team.Repository
		fixtureRepo fixture.Repository
		squadRepo   squad.Repository
	)
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("DB_URL not set, serving from seeded in-memory stores")
		playerRepo = memory.NewPlayerRepository(memory.SeedPlayers())
		teamRepo = memory.NewTeamRepository(memory.SeedClubs())
		fixtureRepo = memory.NewFixtureRepository(memory.SeedFixtures())
		squadRepo = memory.NewSquadRepository()
	} else {
		conn, err := openDB(cfg)
		if err != nil {
			return nil, err
		}
		db = conn
		playerRepo = postgres.NewPlayerRepository(conn)
		teamRepo = postgres.NewTeamRepository(conn)
		fixtureRepo = postgres.NewFixtureRepository(conn)
		squadRepo = postgres.NewSquadRepository(conn)
	}

	cacheTTL := cfg.CacheTTL
	if !cfg.CacheEnabled {
		cacheTTL = -1
	}
	store := cache.NewStore(cacheTTL)

	fixtures := fixtureRepo
	if cfg.CacheEnabled {
		fixtures = cacherepo.NewFixtureRepository(fixtureRepo, store)
	}

	clubs := team.NewRegistry()
	loadCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if list, err := teamRepo.List(loadCtx); err != nil {
		logger.Warn("load club registry", "error", err)
	} else {
		clubs.Load(list)
	}

	client := fpl.NewClient(fpl.ClientConfig{
		BaseURL: cfg.FPLBaseURL,
		Timeout: cfg.FPLTimeout,
		Retry:   resilience.RetryConfig{MaxAttempts: cfg.FPLMaxRetries},
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FPLCircuitEnabled,
			FailureThreshold: cfg.FPLCircuitFailureCount,
			OpenTimeout:      cfg.FPLCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FPLCircuitHalfOpenMaxReq,
		},
		Logger: logger,
	})
	source := fpl.NewSource(client)

	events := &usecase.EventTracker{}
	rules := squad.DefaultRules()
	predictor := usecase.NewPredictionService(fixtures, usecase.PredictionConfig{
		Horizon:       cfg.PredictionHorizon,
		JitterEnabled: cfg.PredictionJitterEnabled,
		JitterSeed:    cfg.PredictionJitterSeed,
	})

	playerSvc := usecase.NewPlayerService(playerRepo, teamRepo, store)
	squadSvc := usecase.NewSquadService(rules, playerRepo, squadRepo, source, events, logger)
	suggestionSvc := usecase.NewSuggestionService(squadSvc, playerRepo, predictor, events, rules, logger)
	syncSvc := usecase.NewSyncService(source, playerRepo, teamRepo, fixtures, clubs, store, events, logger)

	handler := httpapi.NewHandler(playerSvc, squadSvc, suggestionSvc, syncSvc, clubs, logger)
	router := httpapi.NewRouter(handler, id.NewRandomGenerator(), logger, cfg.CORSAllowedOrigins, cfg.SyncToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{
		cfg:    cfg,
		logger: logger,
		server: server,
		db:     db,
		sync:   syncSvc,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests and
// closes the database. A listener failure is returned immediately.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", a.cfg.HTTPAddr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	syncDone := a.startSyncLoop(ctx)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	<-syncDone

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("close database", "error", err)
		}
	}

	a.logger.Info("http server stopped")
	return nil
}

func (a *App) startSyncLoop(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		if a.cfg.SyncOnStart {
			a.runSync(ctx)
		}
		if a.cfg.SyncInterval <= 0 {
			return
		}

		ticker := time.NewTicker(a.cfg.SyncInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.runSync(ctx)
			}
		}
	}()

	return done
}

func (a *App) runSync(ctx context.Context) {
	syncCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	res, err := a.sync.Run(syncCtx)
	if err != nil {
		a.logger.ErrorContext(syncCtx, "game data sync failed", "error", err)
		return
	}

	a.logger.InfoContext(syncCtx, "game data sync completed",
		"players", res.Players,
		"clubs", res.Clubs,
		"fixtures", res.Fixtures,
		"current_event", res.CurrentEvent,
	)
}
