package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/bryanwahyu/greenwash-radar/internal/application"
	appanalysis "github.com/bryanwahyu/greenwash-radar/internal/application/analysis"
	appassistant "github.com/bryanwahyu/greenwash-radar/internal/application/assistant"
	appreports "github.com/bryanwahyu/greenwash-radar/internal/application/reports"
	appsections "github.com/bryanwahyu/greenwash-radar/internal/application/sections"
	"github.com/bryanwahyu/greenwash-radar/internal/config"
	domai "github.com/bryanwahyu/greenwash-radar/internal/domain/ai"
	domanalysis "github.com/bryanwahyu/greenwash-radar/internal/domain/analysis"
	domreports "github.com/bryanwahyu/greenwash-radar/internal/domain/reports"
	"github.com/bryanwahyu/greenwash-radar/internal/infra/ai/gemini"
	"github.com/bryanwahyu/greenwash-radar/internal/infra/ai/openrouter"
	"github.com/bryanwahyu/greenwash-radar/internal/infra/ai/rules"
	mysqldb "github.com/bryanwahyu/greenwash-radar/internal/infra/db/mysql"
	postgresdb "github.com/bryanwahyu/greenwash-radar/internal/infra/db/postgres"
	"github.com/bryanwahyu/greenwash-radar/internal/infra/httpserver"
	"github.com/bryanwahyu/greenwash-radar/internal/infra/pdftext"
	"github.com/bryanwahyu/greenwash-radar/internal/infra/storage"
	"github.com/bryanwahyu/greenwash-radar/internal/infra/store/jsonfile"
	"github.com/bryanwahyu/greenwash-radar/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	healthChecks := map[string]middleware.HealthChecker{
		"store": &middleware.DataDirHealthChecker{Dir: cfg.Store.Dir},
	}

	// analysis store: jsonfile by default, SQL optional
	var analysisRepo domanalysis.Repository
	switch cfg.Store.Driver {
	case "jsonfile":
		repo, err := jsonfile.NewAnalysisRepository(cfg.Store.Dir)
		if err != nil {
			log.Fatalf("jsonfile store init error: %v", err)
		}
		analysisRepo = repo
	case "mysql":
		db, err := mysqldb.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		defer db.Close()
		analysisRepo = mysqldb.NewAnalysisRepository(db)
		healthChecks["database"] = &middleware.DatabaseHealthChecker{DB: db}
	case "postgres":
		db, err := postgresdb.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		defer db.Close()
		analysisRepo = postgresdb.NewAnalysisRepository(db)
		healthChecks["database"] = &middleware.DatabaseHealthChecker{DB: db}
	default:
		log.Fatalf("unknown store driver: %s", cfg.Store.Driver)
	}

	// report + section metadata always live in the flat-file store
	reportRepo, err := jsonfile.NewReportRepository(cfg.Store.Dir)
	if err != nil {
		log.Fatalf("jsonfile store init error: %v", err)
	}
	sectionRepo, err := jsonfile.NewSectionRepository(cfg.Store.Dir)
	if err != nil {
		log.Fatalf("jsonfile store init error: %v", err)
	}

	// document storage: local disk or MinIO
	var documents domreports.DocumentStore
	switch cfg.Documents.Driver {
	case "local":
		store, err := storage.NewLocal(cfg.Documents.LocalDir)
		if err != nil {
			log.Fatalf("local storage init error: %v", err)
		}
		documents = store
	case "minio":
		store, err := storage.NewMinio(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		documents = store
	default:
		log.Fatalf("unknown documents driver: %s", cfg.Documents.Driver)
	}

	// AI providers
	providers := map[string]aiProvider{}
	if cfg.AI.Gemini.APIKey != "" {
		cli, err := gemini.NewClient(ctx, cfg.AI.Gemini.APIKey, cfg.AI.Gemini.Model)
		if err != nil {
			log.Fatalf("gemini init error: %v", err)
		}
		providers["gemini"] = cli
	}
	if cfg.AI.OpenRouter.APIKey != "" {
		providers["openrouter"] = openrouter.NewClient(
			cfg.AI.OpenRouter.APIKey, cfg.AI.OpenRouter.BaseURL, cfg.AI.OpenRouter.Model)
	}
	var analyzer domai.Analyzer
	if cfg.AI.Provider == "rules" {
		// offline heuristic analyzer, no API key needed
		analyzer = rules.NewAnalyzer()
	} else {
		p, ok := providers[cfg.AI.Provider]
		if !ok {
			log.Fatalf("ai provider %q is not configured (missing api key?)", cfg.AI.Provider)
		}
		analyzer = p
	}
	// chat/translate are optional: keyless deployments (rules analyzer)
	// still boot, the endpoints answer 503 instead
	var chatter domai.Chatter
	var translator domai.Translator
	if p, ok := providers[cfg.AI.AssistantProvider]; ok {
		chatter, translator = p, p
	} else {
		log.Printf("ai assistant provider %q is not configured, chat and translate are disabled", cfg.AI.AssistantProvider)
	}

	// init services
	clock := application.SystemClock{}
	analysisSvc := &appanalysis.Service{
		Repo:     analysisRepo,
		Analyzer: analyzer,
		Clock:    clock,
	}
	sectionsSvc := &appsections.Service{
		Repo:  sectionRepo,
		Clock: clock,
	}
	reportsSvc := &appreports.Service{
		Repo:      reportRepo,
		Documents: documents,
		Extractor: pdftext.New(),
		Analysis:  analysisSvc,
		Sections:  sectionsSvc,
		Clock:     clock,
	}
	assistantSvc := appassistant.NewService(chatter, translator)

	// init router + middleware chain
	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins(cfg.Server.CORSOrigins),
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	if len(cfg.Auth.APIKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))
	}
	mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate))

	mux.Get("/health", middleware.HealthHandler(healthChecks))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Mount("/", httpserver.NewRouter(reportsSvc, analysisSvc, sectionsSvc, assistantSvc))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second, // model calls are slow
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// aiProvider is the union of the three model ports; both clients satisfy it.
type aiProvider interface {
	domai.Analyzer
	domai.Chatter
	domai.Translator
}

func corsOrigins(configured []string) []string {
	if len(configured) == 0 {
		return []string{"*"}
	}
	return configured
}
