package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/config"
	"alfredoptarigan/resume-ranker/internal/handlers"
	"alfredoptarigan/resume-ranker/internal/logger"
	"alfredoptarigan/resume-ranker/internal/repositories"
	"alfredoptarigan/resume-ranker/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zl, err := logger.New(cfg.Log.JSON, cfg.Log.Debug || cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("❌ Failed to create logger: %v", err)
	}
	defer zl.Sync()
	zl.Info("✅ Config loaded successfully", zap.String("env", cfg.Server.Env))

	// Initialize repositories
	sessionRepo := repositories.NewSessionRepository()

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.MaxFileSize)
	if err := storageService.EnsureUploadDir(); err != nil {
		zl.Fatal("❌ Failed to create upload directory", zap.Error(err))
	}

	pdfParser := services.NewPDFParserService(zl.Named("pdf"))
	ranker := services.NewRanker(services.NewTFIDFVectorizer(services.NewTokenizer()), zl.Named("ranker"))

	screeningService := services.NewScreeningService(
		sessionRepo,
		storageService,
		pdfParser,
		ranker,
		cfg.Session.TTL,
		zl.Named("screening"),
	)
	zl.Info("✅ Services initialized successfully")

	// Start sweeper
	sweeper := services.NewSweeper(sessionRepo, screeningService, cfg.Session.SweepInterval, zl.Named("sweeper"))
	sweeper.Start()
	zl.Info("✅ Session sweeper started", zap.Duration("ttl", cfg.Session.TTL))

	// Initialize Handlers
	uploadHandler := handlers.NewUploadHandler(
		screeningService,
		storageService,
		cfg.Storage.MaxFileSize,
		cfg.Storage.MaxFiles,
		zl.Named("upload"),
	)
	resultHandler := handlers.NewResultHandler(sessionRepo, screeningService, cfg.Report.TopN)
	rankHandler, err := handlers.NewRankHandler(screeningService, cfg.Report.TopN)
	if err != nil {
		zl.Fatal("❌ Failed to initialize rank handler", zap.Error(err))
	}
	zl.Info("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Ranker API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    bodyLimit(cfg),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Routes
	handlers.RegisterRoutes(app.Group("/api/v1"), uploadHandler, resultHandler, rankHandler)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Ranker API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/health",
				"POST /api/v1/sessions",
				"GET /api/v1/sessions/:id",
				"GET /api/v1/sessions/:id/report",
				"GET /api/v1/sessions/:id/report.csv",
				"GET /api/v1/sessions/:id/report.xlsx",
				"DELETE /api/v1/sessions/:id",
				"POST /api/v1/rank",
				"GET /metrics",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zl.Info("🛑 Shutting down server...")
		sweeper.Stop()
		if err := app.Shutdown(); err != nil {
			zl.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zl.Info("🚀 Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zl.Fatal("❌ Failed to start server", zap.Error(err))
	}
}

// bodyLimit leaves room for every allowed résumé plus the form fields.
func bodyLimit(cfg *config.Config) int {
	files := int64(cfg.Storage.MaxFiles)
	if files <= 0 {
		files = 1
	}
	return int(cfg.Storage.MaxFileSize*files + 1<<20)
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
