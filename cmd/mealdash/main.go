// Command mealdash runs the food-delivery API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mealdash/mealdash/internal/api"
	"github.com/mealdash/mealdash/internal/api/handlers"
	"github.com/mealdash/mealdash/internal/domain/assist"
	authdomain "github.com/mealdash/mealdash/internal/domain/auth"
	"github.com/mealdash/mealdash/internal/domain/catalog"
	"github.com/mealdash/mealdash/internal/domain/orders"
	"github.com/mealdash/mealdash/internal/infra/config"
	"github.com/mealdash/mealdash/internal/infra/llm"
	"github.com/mealdash/mealdash/internal/infra/search"
	"github.com/mealdash/mealdash/internal/infra/sqlite"
	"github.com/mealdash/mealdash/internal/server"
	"github.com/mealdash/mealdash/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	if err := run(log); err != nil {
		log.Fatal("fatal", zap.Error(err))
	}
}

func run(log *zap.Logger) error {
	cfg := config.Load()

	db, err := sqlite.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	if err := sqlite.MigrateUp(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// LLM providers. Ollama is always registered; Gemini joins when a key
	// is configured. LLM_PROVIDER picks the default.
	providers := map[string]llm.Provider{
		"ollama": llm.NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModel),
	}
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiProvider(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return fmt.Errorf("init gemini provider: %w", err)
		}
		providers["gemini"] = gemini
	}
	router := llm.NewRouter(providers, cfg.LLMProvider)
	client := llm.NewClient(router, time.Duration(cfg.LLMTimeoutSec)*time.Second, log)

	model := cfg.OllamaModel
	if cfg.LLMProvider == "gemini" {
		model = cfg.GeminiModel
	}

	esClient := search.NewClient(cfg.ElasticNode, cfg.ElasticUsername, cfg.ElasticPassword, cfg.ElasticIndex)

	// Domain services.
	authSvc := authdomain.NewService(db)
	restaurantSvc := catalog.NewRestaurantService(db)
	responder := assist.NewReviewResponder(client, model, log)
	orderSvc := orders.NewService(db, responder)

	resolver := assist.NewSearchResolver(client, esClient, restaurantSvc, model, log)
	describer := assist.NewDescriber(client, model, log)
	recommender := assist.NewRecommender(client, orderSvc, restaurantSvc, model, log)
	analyzer := assist.NewAnalyzer(client, model, log)

	mux := api.NewRouter(api.Deps{
		Auth:       handlers.NewAuthHandler(authSvc),
		Restaurant: handlers.NewRestaurantHandler(restaurantSvc),
		Order:      handlers.NewOrderHandler(orderSvc),
		Assist:     handlers.NewAssistHandler(client, describer, resolver, recommender, analyzer, orderSvc, model),
		Health:     handlers.Health(db),
		Log:        log,
	})

	srvCfg := server.DefaultConfig()
	srvCfg.Host = cfg.HTTPHost
	srvCfg.Port = cfg.HTTPPort
	srv := server.New(srvCfg, mux, log)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("received signal", zap.String("signal", sig.String()))
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		return err
	}
	return <-errCh
}
