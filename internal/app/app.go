package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/match-analyzer/external/newsfeed"
	"github.com/riskibarqy/match-analyzer/external/textgen"
	"github.com/riskibarqy/match-analyzer/internal/config"
	"github.com/riskibarqy/match-analyzer/internal/domain/matchrecord"
	"github.com/riskibarqy/match-analyzer/internal/domain/news"
	"github.com/riskibarqy/match-analyzer/internal/domain/prediction"
	cacherepo "github.com/riskibarqy/match-analyzer/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/match-analyzer/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/match-analyzer/internal/infrastructure/repository/sqlstore"
	"github.com/riskibarqy/match-analyzer/internal/interfaces/httpapi"
	"github.com/riskibarqy/match-analyzer/internal/platform/dburl"
	idgen "github.com/riskibarqy/match-analyzer/internal/platform/id"
	"github.com/riskibarqy/match-analyzer/internal/platform/logging"
	"github.com/riskibarqy/match-analyzer/internal/platform/tracing"
	"github.com/riskibarqy/match-analyzer/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	_ "modernc.org/sqlite"
)

const (
	seedTimeout          = 30 * time.Second
	maxTracedQueryLength = 512
)

func tracedQuery(query string) string {
	return tracing.CompactQuery(query, maxTracedQueryLength)
}

// NewHTTPServer wires storage, services and the router. The returned close
// func releases the database handle and must be called after shutdown.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	records, closeDB, err := newMatchRecordRepository(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if cfg.CacheEnabled {
		records = cacherepo.NewMatchRecordRepository(records, cfg.CacheTTL, cfg.CacheMaxEntries)
	}

	analysisSvc := usecase.NewAnalysisService(records, usecase.AnalysisConfig{
		Params: prediction.Params{
			DrawBaseline: cfg.PredictionDrawBaseline,
			AwayDampener: cfg.PredictionAwayDampener,
		},
		Workers:   cfg.AnalysisWorkers,
		RecentH2H: cfg.AnalysisRecentH2H,
		Logger:    logger,
	})
	newsSvc := usecase.NewNewsService(records, newNewsProvider(cfg, logger))
	narrativeSvc := usecase.NewNarrativeService(analysisSvc, newsSvc, newTextGenerator(cfg, logger), logger)
	reportSvc := usecase.NewReportService(analysisSvc, narrativeSvc)

	handler := httpapi.NewHandler(analysisSvc, newsSvc, narrativeSvc, reportSvc, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RequestIDs:         idgen.NewUUIDGenerator(),
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, closeDB, nil
}

func newMatchRecordRepository(cfg config.Config, logger *logging.Logger) (matchrecord.Repository, func() error, error) {
	target, err := dburl.Parse(cfg.DBURL, cfg.DBDisablePreparedBinary)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB_URL: %w", err)
	}

	if target.Dialect == dburl.DialectMemory {
		logger.Info("using in-memory match records", "records", len(memory.SeedRecords()))
		return memory.NewMatchRecordRepository(memory.SeedRecords()), func() error { return nil }, nil
	}

	db, err := otelsqlx.Open(target.Driver, target.DSN,
		otelsql.WithDBName(target.Name),
		otelsql.WithDBSystem(string(target.Dialect)),
		otelsql.WithQueryFormatter(tracedQuery),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s database: %w", target.Dialect, err)
	}
	if target.Dialect == dburl.DialectSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := bootstrapDatabase(db, cfg.DBSeedEnabled, logger); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	logger.Info("database connected", "dialect", string(target.Dialect), "db_name", target.Name, "seed", cfg.DBSeedEnabled)
	return sqlstore.NewMatchRecordRepository(db), db.Close, nil
}

func bootstrapDatabase(db *sqlx.DB, seed bool, logger *logging.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	if !seed {
		return nil
	}
	written, err := sqlstore.Seed(ctx, db, memory.SeedRecords())
	if err != nil {
		return fmt.Errorf("bootstrap seed: %w", err)
	}
	if written > 0 {
		logger.Info("seeded match records", "rows", written)
	}
	return nil
}

// newNewsProvider returns nil when news is disabled so the usecase reports
// the dependency as unavailable.
func newNewsProvider(cfg config.Config, logger *logging.Logger) news.Provider {
	if !cfg.News.Enabled {
		return nil
	}

	feeds := make([]newsfeed.Feed, 0, len(cfg.News.Feeds))
	for _, feed := range cfg.News.Feeds {
		feeds = append(feeds, newsfeed.Feed{Name: feed.Name, URL: feed.URL})
	}

	return newsfeed.NewClient(newsfeed.ClientConfig{
		HTTPClient: &http.Client{
			Timeout:   cfg.News.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		Feeds:           feeds,
		Timeout:         cfg.News.Timeout,
		MaxItemsPerFeed: cfg.News.MaxItemsPerFeed,
		UserAgent:       cfg.News.UserAgent,
		Logger:          logger,
		CircuitBreaker:  cfg.News.Circuit,
	})
}

func newTextGenerator(cfg config.Config, logger *logging.Logger) usecase.TextGenerator {
	if !cfg.TextGen.Enabled {
		return nil
	}

	return textgen.NewClient(textgen.ClientConfig{
		BaseURL:        cfg.TextGen.BaseURL,
		APIKey:         cfg.TextGen.APIKey,
		Model:          cfg.TextGen.Model,
		Timeout:        cfg.TextGen.Timeout,
		MaxRetries:     cfg.TextGen.MaxRetries,
		Logger:         logger,
		CircuitBreaker: cfg.TextGen.Circuit,
	})
}
