package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/config"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/audit"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/competition"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/fixture"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/livefixture"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/notification"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/player"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/team"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/infrastructure/notify"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/infrastructure/repository/memory"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/infrastructure/repository/postgres"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/interfaces/httpapi"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/cache"
	idgen "github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/id"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/logging"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/resilience"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/usecase"
)

type repositories struct {
	fixtures      fixture.Repository
	liveFixtures  livefixture.Repository
	competitions  competition.Repository
	players       player.Repository
	teams         team.Repository
	notifications notification.Repository
	auditLog      audit.Recorder
}

// App owns the HTTP server plus the background reconciliation loop and the
// resources both need.
type App struct {
	Server *http.Server

	cfg        config.Config
	logger     *logging.Logger
	db         *sqlx.DB
	reconciler *usecase.ReconciliationService

	stopReconcile chan struct{}
	wg            sync.WaitGroup
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var db *sqlx.DB
	var repos repositories
	if cfg.DBURL != "" {
		conn, err := sqlx.Connect("postgres", cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		db = conn
		repos = repositories{
			fixtures:      postgres.NewFixtureRepository(db),
			liveFixtures:  postgres.NewLiveFixtureRepository(db),
			competitions:  postgres.NewCompetitionRepository(db),
			players:       postgres.NewPlayerRepository(db),
			teams:         postgres.NewTeamRepository(db),
			notifications: postgres.NewNotificationRepository(db),
			auditLog:      postgres.NewAuditRepository(db),
		}
		logger.Info("using postgres repositories")
	} else {
		repos = repositories{
			fixtures:      memory.NewFixtureRepository(memory.SeedFixtures()),
			liveFixtures:  memory.NewLiveFixtureRepository(),
			competitions:  memory.NewCompetitionRepository(memory.SeedCompetitions()),
			players:       memory.NewPlayerRepository(memory.SeedPlayers()),
			teams:         memory.NewTeamRepository(memory.SeedTeams()),
			notifications: memory.NewNotificationRepository(),
			auditLog:      memory.NewAuditRecorder(),
		}
		logger.Info("DB_URL not set, using seeded in-memory repositories")
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	var webhook *notify.WebhookClient
	if cfg.NotifyWebhookEnabled {
		webhook = notify.NewWebhookClient(notify.WebhookClientConfig{
			URL:     cfg.NotifyWebhookURL,
			Token:   cfg.NotifyWebhookToken,
			Timeout: cfg.NotifyWebhookTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          true,
				FailureThreshold: cfg.NotifyCircuitFailureCount,
				OpenTimeout:      cfg.NotifyCircuitOpenTimeout,
				HalfOpenMaxReq:   2,
			},
		}, logger)
	}

	generator := idgen.NewRandomGenerator()
	notifier := notify.NewNotifier(repos.notifications, webhook, generator, logger)

	finalizationSvc := usecase.NewFinalizationService(
		repos.fixtures,
		repos.liveFixtures,
		repos.competitions,
		repos.players,
		repos.teams,
		repos.auditLog,
		notifier,
		store,
		logger,
	)
	reconciliationSvc, err := usecase.NewReconciliationService(
		repos.fixtures,
		finalizationSvc,
		cfg.ReconcileWorkers,
		cfg.ReconcileStaleAfter,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("create reconciliation service: %w", err)
	}

	handler := httpapi.NewHandler(
		usecase.NewLiveFixtureService(repos.fixtures, repos.liveFixtures, logger),
		finalizationSvc,
		reconciliationSvc,
		usecase.NewCompetitionService(repos.competitions, store, logger),
		usecase.NewFixtureService(repos.fixtures, generator, logger),
		usecase.NewPlayerService(repos.players, generator, logger),
		usecase.NewTeamService(repos.teams, generator, logger),
		usecase.NewNotificationService(repos.notifications, logger),
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{
		Server:        server,
		cfg:           cfg,
		logger:        logger,
		db:            db,
		reconciler:    reconciliationSvc,
		stopReconcile: make(chan struct{}),
	}, nil
}

// StartReconcileLoop runs periodic sweeps for fixtures stuck mid
// finalization. Safe to call once; stops when Close is called.
func (a *App) StartReconcileLoop() {
	interval := a.cfg.ReconcileInterval
	if interval <= 0 {
		a.logger.Info("reconcile loop disabled")
		return
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-a.stopReconcile:
				return
			case <-ticker.C:
				report, err := a.reconciler.Sweep(context.Background())
				if err != nil {
					a.logger.Error("reconcile sweep failed", "error", err)
					continue
				}
				if report.Scanned > 0 {
					a.logger.Info("reconcile sweep finished",
						"scanned", report.Scanned,
						"resumed", report.Resumed,
						"skipped", report.Skipped,
						"failed", report.Failed,
					)
				}
			}
		}
	}()
}

// Close releases background workers and the database connection. The HTTP
// server is shut down separately by the caller.
func (a *App) Close() error {
	close(a.stopReconcile)
	a.wg.Wait()
	a.reconciler.Close()

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("close db: %w", err)
		}
	}
	return nil
}
