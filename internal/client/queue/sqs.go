// Package queue publishes dataset analysis jobs to SQS for the
// dataset-processor Lambda to consume.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"github.com/expertbi/expertbi-api/internal/logger"
)

// AnalysisJob is the message body for one dataset analysis run.
type AnalysisJob struct {
	DatasetID int64 `json:"dataset_id"`
}

// Publisher sends analysis jobs to an SQS queue.
type Publisher struct {
	client   *sqs.Client
	queueURL string
	logger   *zap.Logger
}

// NewPublisher builds a publisher for the given queue URL. When
// AWS_ENDPOINT_URL is set (localstack), static credentials from the
// environment are used instead of the default chain.
func NewPublisher(ctx context.Context, queueURL string) (*Publisher, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if endpoint := os.Getenv("AWS_ENDPOINT_URL"); endpoint != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				os.Getenv("AWS_ACCESS_KEY_ID"),
				os.Getenv("AWS_SECRET_ACCESS_KEY"),
				"",
			),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Publisher{
		client:   sqs.NewFromConfig(cfg),
		queueURL: queueURL,
		logger:   logger.Log,
	}, nil
}

// PublishAnalysisJob enqueues one dataset for background analysis.
func (p *Publisher) PublishAnalysisJob(ctx context.Context, datasetID int64) error {
	body, err := json.Marshal(AnalysisJob{DatasetID: datasetID})
	if err != nil {
		return fmt.Errorf("failed to marshal analysis job: %w", err)
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"JobType": {
				StringValue: aws.String("dataset_analysis"),
				DataType:    aws.String("String"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	p.logger.Info("analysis job published",
		zap.Int64("dataset_id", datasetID))
	return nil
}
