// @title Bird-call Quiz API
// @version 1.0
// @description Listen to a recording of a Japanese wild bird and pick its name.
// @host localhost:8000
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"birdcall-quiz/internal/adapter/localaudio"
	"birdcall-quiz/internal/adapter/xenocanto"
	"birdcall-quiz/internal/cache"
	"birdcall-quiz/internal/config"
	"birdcall-quiz/internal/database"
	"birdcall-quiz/internal/domain"
	"birdcall-quiz/internal/handler"
	"birdcall-quiz/internal/logger"
	"birdcall-quiz/internal/metrics"
	"birdcall-quiz/internal/middleware"
	"birdcall-quiz/internal/random"
	"birdcall-quiz/internal/ratelimit"
	"birdcall-quiz/internal/repository"
	"birdcall-quiz/internal/service"
	"birdcall-quiz/internal/session"
	"birdcall-quiz/internal/taxonomy"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	// Taxonomy. A failure leaves store nil; data endpoints then answer DATA_UNAVAILABLE.
	store := loadTaxonomy(ctx, cfg.Taxonomy)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	quizMetrics, err := metrics.NewQuizMetrics(registry)
	if err != nil {
		appLogger.Fatal("Failed to register metrics", zap.Error(err))
	}

	rnd := random.New(cfg.Quiz.RandomSeed)
	limiter := ratelimit.New(cfg.XenoCanto.MinInterval)

	// Recording source
	var (
		source      domain.RecordingSource
		audioSource string
		apiKeySet   = cfg.XenoCanto.APIKey != ""
	)
	switch cfg.Recording.Source {
	case config.RecordingSourceLocal:
		known := func(name string) bool {
			if store == nil {
				return false
			}
			_, err := store.Lookup(name, true)
			return err == nil
		}
		pool, err := localaudio.NewPool(cfg.Local.Dir, cfg.Local.URLPrefix, known, rnd, quizMetrics)
		if err != nil {
			appLogger.Fatal("Failed to index local recordings", zap.String("dir", cfg.Local.Dir), zap.Error(err))
		}
		appLogger.Info("Local recording pool ready", zap.Int("species", pool.SpeciesCount()))
		source = pool
		audioSource = "Local sound files"
	default:
		xc := xenocanto.NewClient(xenocanto.Config{
			APIKey:  cfg.XenoCanto.APIKey,
			BaseURL: cfg.XenoCanto.BaseURL,
			Country: cfg.XenoCanto.Country,
			Timeout: cfg.XenoCanto.Timeout,
		}, limiter, nil, quizMetrics)
		if !xc.APIKeyConfigured() {
			appLogger.Warn("XENO_CANTO_API_KEY is not set; every question request will report NO_RECORDING_AVAILABLE")
		}
		source = xc
		audioSource = "Xeno-Canto (Japan only)"
	}

	// Session store
	var (
		sessions      domain.SessionStore
		sessionPinger handler.Pinger
	)
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		redisStore := session.NewRedisStore(redisClient, cfg.Session.TTL)
		sessions = redisStore
		sessionPinger = redisStore
		appLogger.Info("Using Redis session store", zap.String("address", cfg.Redis.Address))
	default:
		sessions = session.NewMemoryStore(cfg.Session.TTL, cfg.Session.MaxEntries, cfg.Session.CleanupInterval)
		appLogger.Info("Using in-memory session store",
			zap.Duration("ttl", cfg.Session.TTL),
			zap.Int("max_entries", cfg.Session.MaxEntries),
		)
	}

	// Initialize services
	opts := service.QuizOptions{
		MaxRetries:     cfg.Quiz.MaxRetries,
		ChoiceCount:    cfg.Quiz.ChoiceCount,
		RecordingLimit: cfg.Recording.Limit,
		TargetSpecies:  cfg.Quiz.TargetSpecies,
	}
	if store != nil && cfg.Quiz.DistractorScope == config.DistractorScopeTaxonomy {
		opts.DistractorPool = store.Species()
	}
	quizService := service.NewQuizService(store, source, sessions, rnd, opts, quizMetrics)
	catalogService := service.NewCatalogService(store, source)
	appLogger.Info("Quiz service initialized", zap.Int("targets", quizService.TargetCount()))

	statusInfo := handler.StatusInfo{
		AudioSource:      audioSource,
		RecordingSource:  source.Name(),
		APIKeyConfigured: apiKeySet,
		TaxonomyLoaded:   store != nil,
		TargetCount:      quizService.TargetCount(),
		SessionBackend:   cfg.Session.Store,
		SessionPinger:    sessionPinger,
	}
	if store != nil {
		statusInfo.SpeciesCount = store.Len()
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	if cfg.Recording.Source == config.RecordingSourceLocal {
		app.Static(cfg.Local.URLPrefix, cfg.Local.Dir)
	}

	handler.RegisterRoutes(app, handler.Handlers{
		Quiz:    handler.NewQuizHandler(quizService),
		Catalog: handler.NewCatalogHandler(catalogService),
		Status:  handler.NewStatusHandler(statusInfo, limiter),
	})

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("recording_source", source.Name()))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}

// loadTaxonomy returns nil when the configured source cannot be read.
func loadTaxonomy(ctx context.Context, cfg config.TaxonomyConfig) *taxonomy.Store {
	appLogger := logger.Get()

	var src taxonomy.Source
	switch cfg.Source {
	case config.TaxonomySourceSQL:
		db, err := database.Open(cfg.SQLDriver, cfg.SQLDSN)
		if err != nil {
			appLogger.Error("Failed to open taxonomy database", zap.Error(err))
			return nil
		}
		defer db.Close()
		src = repository.NewSpeciesRepository(db)
	default:
		src = taxonomy.JSONSource{Path: cfg.JSONPath}
	}

	store, err := taxonomy.Load(ctx, src)
	if err != nil {
		appLogger.Error("Failed to load taxonomy; data endpoints will report DATA_UNAVAILABLE",
			zap.String("source", cfg.Source), zap.Error(err))
		return nil
	}
	st := store.Stats(0)
	appLogger.Info("Taxonomy loaded",
		zap.Int("records", st.Records),
		zap.Int("species", st.Species),
		zap.Int("families", st.Families),
	)
	return store
}
