// Command catalogctl manages the product catalog: CSV ingestion,
// index rebuilds and stats, sharing the server's config and stack.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/fincommerce/prodsearch/internal/config"
	dbRedis "github.com/fincommerce/prodsearch/internal/db/redis"
	"github.com/fincommerce/prodsearch/internal/domain"
	logpkg "github.com/fincommerce/prodsearch/internal/logger"
	"github.com/fincommerce/prodsearch/internal/metrics"
	budgetrepo "github.com/fincommerce/prodsearch/internal/repository/budget"
	catalogrepo "github.com/fincommerce/prodsearch/internal/repository/catalog"
	"github.com/fincommerce/prodsearch/internal/repository/embcache"
	openaiEmb "github.com/fincommerce/prodsearch/internal/transport/openai"
	cataloguc "github.com/fincommerce/prodsearch/internal/usecase/catalog"
	embeddinguc "github.com/fincommerce/prodsearch/internal/usecase/embedding"
)

func main() {
	var (
		file    = flag.String("file", "", "path to the catalog CSV (ingest)")
		timeout = flag.Duration("timeout", 10*time.Minute, "operation timeout")
	)
	flag.Usage = usage
	flag.Parse()

	cmd := flag.Arg(0)
	if cmd == "" {
		usage()
		os.Exit(2)
	}

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		fatal("load config: %v", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		fatal("create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		fatal("create store: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		fatal("database not ready: %v", err)
	}

	metrics.RegisterEmbeddingMetrics()

	svc := buildCatalogService(ctx, cfg, store, logger)

	switch cmd {
	case "ingest":
		runIngest(ctx, svc, *file, logger)
	case "stats":
		runStats(ctx, svc)
	case "reindex":
		if err := svc.Reindex(ctx); err != nil {
			fatal("reindex: %v", err)
		}
		fmt.Println("index recreated")
	default:
		usage()
		os.Exit(2)
	}
}

func runIngest(ctx context.Context, svc *cataloguc.Service, file string, logger *zap.Logger) {
	if file == "" {
		fatal("ingest requires -file")
	}

	f, err := os.Open(file)
	if err != nil {
		fatal("open %s: %v", file, err)
	}
	defer func() { _ = f.Close() }()

	ctx = logpkg.ContextWithLogger(ctx, logger)
	report, err := svc.IngestCSV(ctx, f)
	if err != nil {
		fatal("ingest: %v", err)
	}

	fmt.Printf("loaded %d products (%d rows skipped, %d embedding tokens)\n",
		report.Loaded, report.Skipped, report.Tokens)
}

func runStats(ctx context.Context, svc *cataloguc.Service) {
	stats, err := svc.Stats(ctx)
	if err != nil {
		fatal("stats: %v", err)
	}
	fmt.Printf("products: %d\nindexed: %v\nindex: %s\n", stats.Products, stats.Indexed, stats.IndexName)
}

func buildCatalogService(
	ctx context.Context, cfg config.Config, store *dbRedis.Store, logger *zap.Logger,
) *cataloguc.Service {
	vecCfg := cfg.Embedding.Vectorizer
	provName := vecCfg.Provider
	if provName == "" {
		provName = "openai"
	}
	provCfg := cfg.Embedding.Providers[provName]

	var budgetChecker embeddinguc.BudgetChecker
	budgetCfg := provCfg.Budget
	if budgetCfg.DailyTokenLimit > 0 || budgetCfg.MonthlyTokenLimit > 0 {
		action := embeddinguc.BudgetActionWarn
		if budgetCfg.Action == "reject" {
			action = embeddinguc.BudgetActionReject
		}
		tracker := embeddinguc.NewBudgetTracker(
			provName, budgetCfg.DailyTokenLimit, budgetCfg.MonthlyTokenLimit, action, logger,
		)
		tracker.WithStore(ctx, budgetrepo.New(store, 48*time.Hour, 62*24*time.Hour))
		budgetChecker = tracker
	}

	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     provCfg.APIKey,
		BaseURL:    provCfg.BaseURL,
		Model:      vecCfg.Model,
		Dimensions: vecCfg.Dimensions,
		Provider:   provName,
		Logger:     logger,
	})

	var embedder domain.Embedder = base
	if vecCfg.Cache {
		embedder = embcache.New(base, store, metrics.EmbeddingCacheTotal, logger)
	}
	instrumented := embeddinguc.NewInstrumentedEmbedder(embedder, provName, vecCfg.Model, budgetChecker, logger)

	repo := catalogrepo.New(store, vecCfg.Dimensions)
	return cataloguc.New(repo, repo, instrumented)
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: catalogctl [flags] <command>

commands:
  ingest   load a catalog CSV into the store (requires -file)
  stats    print indexed product count
  reindex  drop and recreate the vector index

flags:
`)
	flag.PrintDefaults()
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
