package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/advisor"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/api"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/config"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/database"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/engine"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/extractor"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/logging"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/repository"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/scheduler"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/secret"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/service"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/version"
)

func main() {
	generateKey := flag.Bool("generate-notes-key", false, "print a new NOTES_ENCRYPTION_KEY value and exit")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	switch {
	case *generateKey:
		key, err := secret.GenerateKey()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(key)
		return
	case *showVersion:
		fmt.Println(version.Version)
		return
	}

	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.New(cfg.Log.Env, cfg.Log.Level)
	slog.SetDefault(logger.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open and migrate the database
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	schemaVersion, err := database.Migrate(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info("connected to database", "path", cfg.Database.Path, "schema_version", schemaVersion)

	// Create repositories
	store := repository.NewDocumentStore(db)
	analysisRepo := repository.NewAnalysisRepository(store)
	savedRepo := repository.NewSavedAnalysisRepository(store)

	// Advisory text generator; without an API key every call takes its fallback path
	var generator advisor.TextGenerator = advisor.Unavailable{}
	if cfg.Advisor.APIKey != "" {
		gemini, err := advisor.NewGeminiGenerator(ctx, cfg.Advisor.APIKey,
			advisor.WithModel(cfg.Advisor.Model),
			advisor.WithRateLimit(cfg.Advisor.RateLimit),
			advisor.WithLogger(logger),
		)
		if err != nil {
			return err
		}
		generator = gemini
		logger.Info("advisory text generator enabled", "model", cfg.Advisor.Model)
	} else {
		logger.Warn("no advisor API key configured, using fallback estimates and insights")
	}

	cipher, err := secret.NewNoteCipher(cfg.Notes.EncryptionKey)
	if err != nil {
		return err
	}

	// Create services
	eng := engine.New(generator, engine.WithTimeout(cfg.Advisor.Timeout), engine.WithLogger(logger))
	adv := advisor.New(generator, cfg.Advisor.Timeout, logger)
	ext := extractor.NewHTTPExtractor(
		extractor.WithTimeout(cfg.Extractor.Timeout),
		extractor.WithUserAgent(cfg.Extractor.UserAgent),
		extractor.WithLogger(logger),
	)

	analysisService := service.NewAnalysisService(eng, adv, ext, analysisRepo, logger)
	portfolioService := service.NewPortfolioService(analysisRepo, savedRepo, cipher, logger)
	retentionService := service.NewRetentionService(analysisRepo, cfg.Retention.Days, logger)
	systemService := service.NewSystemService(db, store, service.Features{
		AdvisoryText:    cfg.Advisor.APIKey != "",
		NotesEncryption: cipher.Enabled(),
		Retention:       retentionService.Enabled(),
	})

	// Background jobs
	jobs := scheduler.New(logger)
	if retentionService.Enabled() {
		if err := jobs.Register(cfg.Retention.Schedule, "purge_expired_analyses", retentionService.Run); err != nil {
			return err
		}
		logger.Info("analysis retention enabled", "days", cfg.Retention.Days, "schedule", cfg.Retention.Schedule)
	}
	jobs.Start()

	// Create router
	router := api.NewRouter(api.Services{
		Analysis:  analysisService,
		Portfolio: portfolioService,
		System:    systemService,
	}, cfg.CORS.AllowedOrigins, logger)

	// An analysis makes one extraction and two advisory calls in sequence.
	writeTimeout := cfg.Extractor.Timeout + 2*cfg.Advisor.Timeout + 15*time.Second

	// Create HTTP server
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.Server.Addr, "version", version.Version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for interrupt signal or a listener failure
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
	}

	logger.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	if err := jobs.Stop(shutdownCtx); err != nil {
		logger.Warn("background jobs did not stop in time", "error", err)
	}

	logger.Info("server exited")
	return nil
}
