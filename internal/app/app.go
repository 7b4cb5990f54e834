package app

import (
	"net/http"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/dfsline/contest-tracker/external/draftkings"
	"github.com/dfsline/contest-tracker/internal/config"
	"github.com/dfsline/contest-tracker/internal/infrastructure/repository/postgres"
	"github.com/dfsline/contest-tracker/internal/platform/logging"
	"github.com/dfsline/contest-tracker/internal/platform/resilience"
	"github.com/dfsline/contest-tracker/internal/usecase"
)

// App bundles the wired services for one pipeline run.
type App struct {
	Contests *usecase.ContestService
	Results  *usecase.ResultsService
	Salaries *usecase.SalaryService

	db *sqlx.DB
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	db, err := sqlx.Connect("postgres", cfg.DBURL)
	if err != nil {
		return nil, crerr.Wrap(err, "connect database")
	}

	playerRepo := postgres.NewPlayerRepository(db)
	contestRepo := postgres.NewContestRepository(db)
	resultRepo := postgres.NewResultRepository(db)
	salaryRepo := postgres.NewSalaryRepository(db)

	var breaker *resilience.CircuitBreaker
	if cfg.DKCircuitEnabled {
		breakerCfg := resilience.NormalizeCircuitBreakerConfig(resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: cfg.DKCircuitFailureCount,
			OpenTimeout:      cfg.DKCircuitOpenTimeout,
		})
		breaker = resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout)
	}

	client := draftkings.NewClient(draftkings.ClientConfig{
		HTTPClient:     &http.Client{Timeout: cfg.DKTimeout},
		BaseURL:        cfg.DKBaseURL,
		Cookie:         cfg.DKCookie,
		UserAgent:      cfg.DKUserAgent,
		Logger:         logger,
		CircuitBreaker: breaker,
	})

	results := usecase.NewResultsService(usecase.ResultsServiceConfig{
		Fetcher:      client,
		Contests:     contestRepo,
		Results:      resultRepo,
		Players:      playerRepo,
		StandingsDir: cfg.StandingsDir,
		VIPEntrants:  cfg.VIPEntrants,
		Logger:       logger,
	})

	return &App{
		Contests: usecase.NewContestService(client, contestRepo, logger),
		Results:  results,
		Salaries: usecase.NewSalaryService(client, playerRepo, salaryRepo, cfg.SalariesDir, logger),
		db:       db,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}
