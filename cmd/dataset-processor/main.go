package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/expertbi/expertbi-api/internal/client/queue"
	"github.com/expertbi/expertbi-api/internal/db"
	"github.com/expertbi/expertbi-api/internal/helpers"
	"github.com/expertbi/expertbi-api/internal/logger"
	"github.com/expertbi/expertbi-api/internal/services"
)

// Application holds all dependencies for the dataset processor Lambda handler
type Application struct {
	analysis  *services.AnalysisService
	dbQueries *db.Queries
}

// HandleSQSEvent processes dataset analysis jobs from SQS
func (app *Application) HandleSQSEvent(ctx context.Context, event events.SQSEvent) error {
	logger.Info("Dataset processor handling SQS event",
		zap.Int("record_count", len(event.Records)))

	for _, record := range event.Records {
		if err := app.processRecord(ctx, record); err != nil {
			logger.Error("Failed to process analysis job",
				zap.String("message_id", record.MessageId),
				zap.Error(err))
			// SQS retries the failed message; the rest of the batch is done
			return fmt.Errorf("failed to process message %s: %w", record.MessageId, err)
		}
	}

	logger.Info("Successfully processed all analysis jobs",
		zap.Int("count", len(event.Records)))
	return nil
}

// processRecord runs the analysis pipeline for a single queued dataset
func (app *Application) processRecord(ctx context.Context, record events.SQSMessage) error {
	var job queue.AnalysisJob
	if err := json.Unmarshal([]byte(record.Body), &job); err != nil {
		return fmt.Errorf("failed to unmarshal analysis job: %w", err)
	}

	logger.Info("Processing analysis job",
		zap.String("message_id", record.MessageId),
		zap.Int64("dataset_id", job.DatasetID))

	return app.analysis.Run(ctx, job.DatasetID)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v\n", err)
	}

	logger.InitLogger(helpers.GetStage())
	defer logger.Sync()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL environment variable is required")
	}

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		logger.Fatal("Unable to parse database connection string", zap.Error(err))
	}
	poolConfig.MaxConns = 5
	poolConfig.MaxConnLifetime = time.Hour

	connPool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Fatal("Unable to create connection pool", zap.Error(err))
	}

	dbQueries := db.New(connPool)

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

	app := &Application{
		analysis:  services.NewAnalysisService(dbQueries, notifiers...),
		dbQueries: dbQueries,
	}

	lambda.Start(app.HandleSQSEvent)
}
