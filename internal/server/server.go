package server

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/expertbi/expertbi-api/docs" // generated swagger docs
	"github.com/expertbi/expertbi-api/internal/auth"
	"github.com/expertbi/expertbi-api/internal/client/queue"
	"github.com/expertbi/expertbi-api/internal/constants"
	"github.com/expertbi/expertbi-api/internal/db"
	"github.com/expertbi/expertbi-api/internal/handlers"
	"github.com/expertbi/expertbi-api/internal/logger"
	"github.com/expertbi/expertbi-api/internal/middleware"
	"github.com/expertbi/expertbi-api/internal/services"
)

// defaultUploadDir is where dataset files land when UPLOAD_DIR is unset.
const defaultUploadDir = "uploads"

// Handler definitions
var (
	healthHandler    *handlers.HealthHandler
	authHandler      *handlers.AuthHandler
	apiKeyHandler    *handlers.APIKeyHandler
	datasetHandler   *handlers.DatasetHandler
	insightHandler   *handlers.InsightHandler
	dashboardHandler *handlers.DashboardHandler
	chartHandler     *handlers.ChartHandler

	analysisService *services.AnalysisService
	processor       *services.DatasetProcessor

	// Database
	dbQueries *db.Queries
)

// sqsDispatcher hands analysis jobs to the queue consumed by the
// dataset-processor Lambda. It satisfies handlers.AnalysisDispatcher.
type sqsDispatcher struct {
	publisher *queue.Publisher
	queries   db.Querier
}

func (d *sqsDispatcher) Enqueue(ctx context.Context, datasetID int64) bool {
	if _, err := d.queries.UpdateDatasetStatus(ctx, db.UpdateDatasetStatusParams{
		ID:     datasetID,
		Status: constants.DatasetStatusQueued,
	}); err != nil {
		logger.Error("failed to mark dataset queued", zap.Int64("dataset_id", datasetID), zap.Error(err))
		return false
	}
	if err := d.publisher.PublishAnalysisJob(ctx, datasetID); err != nil {
		logger.Error("failed to publish analysis job", zap.Int64("dataset_id", datasetID), zap.Error(err))
		return false
	}
	return true
}

func InitializeHandlers() {
	// Get database connection string from environment
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL environment variable is required")
	}

	// Create a connection pool using pgxpool
	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		logger.Fatal("Unable to parse database connection string", zap.Error(err))
	}

	// Configure the connection pool
	poolConfig.MaxConns = 20
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30

	// Create the connection pool
	connPool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Fatal("Unable to create connection pool", zap.Error(err))
	}

	// Create queries instance with the connection pool
	dbQueries = db.New(connPool)

	if os.Getenv("JWT_SECRET") == "" {
		logger.Fatal("JWT_SECRET environment variable is required")
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = defaultUploadDir
	}

	var notifiers []services.AnalysisNotifier
	if resendKey := os.Getenv("RESEND_API_KEY"); resendKey != "" {
		notifiers = append(notifiers, services.NewEmailNotifier(
			resendKey,
			os.Getenv("NOTIFY_FROM_EMAIL"),
			os.Getenv("NOTIFY_FROM_NAME"),
			dbQueries,
		))
	}
	if webhookURL := os.Getenv("ANALYSIS_WEBHOOK_URL"); webhookURL != "" {
		notifiers = append(notifiers, services.NewWebhookNotifier(webhookURL))
	}

	analysisService = services.NewAnalysisService(dbQueries, notifiers...)

	// Uploads are handed to SQS when a queue is configured, otherwise to
	// the in-process worker.
	var dispatcher handlers.AnalysisDispatcher
	if queueURL := os.Getenv("SQS_QUEUE_URL"); queueURL != "" {
		publisher, err := queue.NewPublisher(context.Background(), queueURL)
		if err != nil {
			logger.Fatal("Unable to create SQS publisher", zap.Error(err))
		}
		dispatcher = &sqsDispatcher{publisher: publisher, queries: dbQueries}
	} else {
		processor = services.NewDatasetProcessor(dbQueries, analysisService)
		processor.Start()
		dispatcher = processor
	}

	commonServices := handlers.NewCommonServices(dbQueries, analysisService, dispatcher, uploadDir)

	// API Handler initialization
	healthHandler = handlers.NewHealthHandler()
	authHandler = handlers.NewAuthHandler(commonServices)
	apiKeyHandler = handlers.NewAPIKeyHandler(commonServices)
	datasetHandler = handlers.NewDatasetHandler(commonServices)
	insightHandler = handlers.NewInsightHandler(commonServices)
	dashboardHandler = handlers.NewDashboardHandler(commonServices)
	chartHandler = handlers.NewChartHandler(commonServices)
}

// Shutdown stops the in-process dataset worker, draining queued jobs.
func Shutdown() {
	if processor != nil {
		processor.Stop()
	}
}

func InitializeRoutes(router *gin.Engine) {
	// Configure and apply CORS middleware
	router.Use(configureCORS())
	router.Use(middleware.CorrelationIDMiddleware())
	router.Use(middleware.RequestLoggingMiddleware())

	// Add Swagger endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", healthHandler.Health)

	uploadLimiter := middleware.NewRateLimiter(uploadRateLimit())

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)

		// Protected routes (authentication required)
		protected := v1.Group("/")
		protected.Use(auth.EnsureValidAPIKeyOrToken(dbQueries))
		{
			protected.GET("/auth/me", authHandler.Me)

			// API Keys
			apiKeys := protected.Group("/api-keys")
			apiKeys.Use(auth.RequireRoles(constants.AccessLevelAdmin))
			{
				apiKeys.POST("", apiKeyHandler.CreateAPIKey)
				apiKeys.DELETE("/:key_id", apiKeyHandler.DeleteAPIKey)
			}

			// Datasets
			datasets := protected.Group("/datasets")
			{
				datasets.POST("/upload", uploadLimiter.Middleware(), datasetHandler.UploadDataset)
				datasets.GET("", datasetHandler.ListDatasets)
				datasets.GET("/:dataset_id", datasetHandler.GetDataset)
				datasets.DELETE("/:dataset_id", auth.RequireRoles(constants.AccessLevelWrite), datasetHandler.DeleteDataset)
				datasets.GET("/:dataset_id/preview", datasetHandler.PreviewDataset)
				datasets.GET("/:dataset_id/analysis", datasetHandler.GetAnalysis)
				datasets.POST("/:dataset_id/detect-types", datasetHandler.DetectTypes)
				datasets.GET("/:dataset_id/export", datasetHandler.ExportDataset)
				datasets.GET("/:dataset_id/recommendations", datasetHandler.GetRecommendations)

				// Chart data
				datasets.POST("/:dataset_id/chart-data", chartHandler.GetChartData)

				// Insights
				datasets.GET("/:dataset_id/insights", insightHandler.ListInsights)
				datasets.POST("/:dataset_id/insights/generate", insightHandler.GenerateInsights)
				datasets.DELETE("/:dataset_id/insights/:insight_id", insightHandler.DeleteInsight)
			}

			// Dashboards
			dashboards := protected.Group("/dashboards")
			{
				dashboards.GET("", dashboardHandler.ListDashboards)
				dashboards.POST("", dashboardHandler.CreateDashboard)
				dashboards.GET("/:dashboard_id", dashboardHandler.GetDashboard)
				dashboards.PUT("/:dashboard_id", dashboardHandler.UpdateDashboard)
				dashboards.DELETE("/:dashboard_id", dashboardHandler.DeleteDashboard)
			}
		}
	}
}

// uploadRateLimit reads the upload throttle from the environment,
// defaulting to 2 requests per second with a burst of 5.
func uploadRateLimit() (int, int) {
	rate := 2
	burst := 5
	if v := os.Getenv("UPLOAD_RATE_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			rate = parsed
		}
	}
	if v := os.Getenv("UPLOAD_RATE_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			burst = parsed
		}
	}
	return rate, burst
}

// configureCORS returns a configured CORS middleware
func configureCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	// Get allowed origins from environment variable
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv == "" {
		// Default to localhost if not set
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	} else {
		origins := strings.Split(originsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		corsConfig.AllowOrigins = origins
	}

	// Get allowed methods from environment variable
	methodsEnv := os.Getenv("CORS_ALLOWED_METHODS")
	if methodsEnv == "" {
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	} else {
		methods := strings.Split(methodsEnv, ",")
		for i, method := range methods {
			methods[i] = strings.TrimSpace(method)
		}
		corsConfig.AllowMethods = methods
	}

	// Get allowed headers from environment variable
	headersEnv := os.Getenv("CORS_ALLOWED_HEADERS")
	if headersEnv == "" {
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key", "X-Correlation-ID"}
	} else {
		headers := strings.Split(headersEnv, ",")
		for i, header := range headers {
			headers[i] = strings.TrimSpace(header)
		}
		corsConfig.AllowHeaders = headers
	}

	// Get exposed headers from environment variable
	exposedHeadersEnv := os.Getenv("CORS_EXPOSED_HEADERS")
	if exposedHeadersEnv != "" {
		exposedHeaders := strings.Split(exposedHeadersEnv, ",")
		for i, header := range exposedHeaders {
			exposedHeaders[i] = strings.TrimSpace(header)
		}
		corsConfig.ExposeHeaders = exposedHeaders
	}

	// Set credentials allowed
	corsConfig.AllowCredentials = os.Getenv("CORS_ALLOW_CREDENTIALS") == "true"

	return cors.New(corsConfig)
}
