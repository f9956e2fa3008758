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

	"github.com/bryanwahyu/darkwatch/internal/application"
	appclassify "github.com/bryanwahyu/darkwatch/internal/application/classify"
	apphistory "github.com/bryanwahyu/darkwatch/internal/application/history"
	appintel "github.com/bryanwahyu/darkwatch/internal/application/intel"
	"github.com/bryanwahyu/darkwatch/internal/config"
	"github.com/bryanwahyu/darkwatch/internal/domain/classifier"
	domainhistory "github.com/bryanwahyu/darkwatch/internal/domain/history"
	"github.com/bryanwahyu/darkwatch/internal/domain/intel"
	openaicl "github.com/bryanwahyu/darkwatch/internal/infra/classifier/openai"
	"github.com/bryanwahyu/darkwatch/internal/infra/classifier/remote"
	mysqlp "github.com/bryanwahyu/darkwatch/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/darkwatch/internal/infra/db/postgres"
	"github.com/bryanwahyu/darkwatch/internal/infra/httpserver"
	"github.com/bryanwahyu/darkwatch/internal/infra/storage"
	"github.com/bryanwahyu/darkwatch/internal/middleware"
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

	checkers := make(map[string]middleware.HealthChecker)

	// pick snapshot medium per config
	var snapshots domainhistory.Snapshot
	switch cfg.History.Driver {
	case "file":
		store, err := storage.NewFileStore(cfg.History.Path)
		if err != nil {
			log.Fatalf("file store init error: %v", err)
		}
		snapshots = store

	case "mysql":
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		defer db.Close()
		repo := mysqlp.NewSnapshotRepository(db, cfg.History.StorageKey)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatalf("mysql schema error: %v", err)
		}
		snapshots = repo
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}

	case "postgres":
		db, err := postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		defer db.Close()
		repo := postgresp.NewSnapshotRepository(db, cfg.History.StorageKey)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatalf("postgres schema error: %v", err)
		}
		snapshots = repo
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}

	case "minio":
		store, err := storage.NewObjectStore(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.History.StorageKey,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		snapshots = store

	default:
		log.Fatalf("unknown history driver: %q", cfg.History.Driver)
	}

	// pick classifier backend per config
	var client classifier.Client
	switch cfg.Classifier.Mode {
	case "remote":
		rc := remote.NewClient(cfg.Classifier.BaseURL, cfg.Classifier.APIKey,
			time.Duration(cfg.Classifier.TimeoutSeconds)*time.Second)
		client = rc
		checkers["classifier"] = middleware.CheckerFunc(rc.Health)

	case "openai":
		client = openaicl.NewClient(cfg.Classifier.APIKey, cfg.Classifier.Model)

	default:
		log.Fatalf("unknown classifier mode: %q", cfg.Classifier.Mode)
	}

	// init services
	historySvc := &apphistory.Service{
		Snapshots: snapshots,
		Clock:     application.SystemClock{},
	}
	classifySvc := &appclassify.Service{
		Client:  client,
		History: historySvc,
	}
	intelSvc := &appintel.Service{
		Client:      client,
		Prioritizer: intel.NewPrioritizer(),
		Reporter:    intel.NewReportGenerator(""),
		Clock:       application.SystemClock{},
	}

	// init router + middleware chain
	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate))
	if len(cfg.Auth.APIKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))
	}
	mux.Mount("/", httpserver.NewRouter(classifySvc, historySvc, intelSvc, checkers))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
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
