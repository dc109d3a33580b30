package main

import (
	"context"
	"log"

	"github.com/Aayushman-Codes/Legal-Analysis-App/config"
	"github.com/Aayushman-Codes/Legal-Analysis-App/handlers"
	"github.com/Aayushman-Codes/Legal-Analysis-App/inference"
	"github.com/Aayushman-Codes/Legal-Analysis-App/repository"
	"github.com/Aayushman-Codes/Legal-Analysis-App/service"
	"github.com/Aayushman-Codes/Legal-Analysis-App/storage"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	// Try current directory first, then project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	cfg := config.Load()

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Optional document archive: only wired when a database is configured
	var docRepo *repository.DocumentRepository
	var docStorage storage.Storage
	if cfg.DatabaseURL != "" {
		db, err := initPostgres(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("Failed to initialize Postgres", zap.Error(err))
		}
		defer db.Close()

		docStorage, err = storage.NewStorageFromEnv()
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}

		docRepo = repository.NewDocumentRepository(db)
		logger.Info("Document archive enabled")
	} else {
		logger.Info("DATABASE_URL not set, running stateless")
	}

	client := inference.NewClient(cfg.APIBaseURL, cfg.APIToken)

	docService := service.NewDocumentService(
		service.DocumentWithLogger(logger),
	)

	analyzer := service.NewAnalyzerService(
		service.AnalyzerWithInferenceClient(client),
		service.AnalyzerWithClassificationModel(cfg.ClassificationModel),
		service.AnalyzerWithQAModel(cfg.QAModel),
		service.AnalyzerWithDocumentService(docService),
		service.AnalyzerWithLogger(logger),
	)

	analysisHandler := handlers.NewAnalysisHandler(analyzer, docRepo, docStorage, logger)

	// Setup Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "legal-analyzer",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		api.POST("/analyze", analysisHandler.AnalyzeDocument)
		api.POST("/analyze-text", analysisHandler.AnalyzeText)
		api.POST("/ask", analysisHandler.AskQuestion)
		api.GET("/documents/:id", analysisHandler.GetDocument)
	}

	logger.Info("Server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func initPostgres(connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	return pool, nil
}
