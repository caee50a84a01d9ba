package services

import (
	"context"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	httpclient "github.com/expertbi/expertbi-api/internal/client/http"
	"github.com/expertbi/expertbi-api/internal/db"
	"github.com/expertbi/expertbi-api/internal/logger"
)

// AnalysisNotifier receives a callback when a dataset finishes analysis.
type AnalysisNotifier interface {
	AnalysisCompleted(ctx context.Context, dataset db.Dataset, qualityScore float64, insightCount int) error
}

// EmailNotifier sends the dataset owner an email when their analysis
// completes.
type EmailNotifier struct {
	client    *resend.Client
	queries   db.Querier
	logger    *zap.Logger
	fromEmail string
	fromName  string
}

// NewEmailNotifier creates an email notifier backed by Resend.
func NewEmailNotifier(apiKey, fromEmail, fromName string, queries db.Querier) *EmailNotifier {
	return &EmailNotifier{
		client:    resend.NewClient(apiKey),
		queries:   queries,
		logger:    logger.Log,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// AnalysisCompleted emails the dataset's owner. Datasets without an
// owner are skipped.
func (n *EmailNotifier) AnalysisCompleted(ctx context.Context, dataset db.Dataset, qualityScore float64, insightCount int) error {
	if !dataset.UserID.Valid {
		return nil
	}
	user, err := n.queries.GetUser(ctx, dataset.UserID.Int64)
	if err != nil {
		return fmt.Errorf("failed to load dataset owner: %w", err)
	}

	subject := fmt.Sprintf("Analysis complete: %s", dataset.Name)
	html := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Your dataset <strong>%s</strong> has finished processing.</p>
<ul>
<li>Rows: %d</li>
<li>Columns: %d</li>
<li>Quality score: %.1f</li>
<li>Insights generated: %d</li>
</ul>
<p>Open the dashboard to explore the results.</p>`,
		user.Name, dataset.Name, dataset.RowCount, dataset.ColumnCount, qualityScore, insightCount)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", n.fromName, n.fromEmail),
		To:      []string{user.Email},
		Subject: subject,
		Html:    html,
		Tags: []resend.Tag{
			{Name: "category", Value: "analysis_complete"},
		},
	}

	sent, err := n.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send analysis email: %w", err)
	}
	n.logger.Info("analysis email sent",
		zap.String("email_id", sent.Id),
		zap.String("to", user.Email),
		zap.Int64("dataset_id", dataset.ID))
	return nil
}

// WebhookNotifier posts an analysis-complete event to a configured
// endpoint, with retries on transient failures.
type WebhookNotifier struct {
	client *httpclient.HTTPClient
	logger *zap.Logger
}

// webhookEvent is the payload posted to the webhook endpoint.
type webhookEvent struct {
	Event        string    `json:"event"`
	DatasetID    int64     `json:"dataset_id"`
	DatasetName  string    `json:"dataset_name"`
	Status       string    `json:"status"`
	QualityScore float64   `json:"quality_score"`
	InsightCount int       `json:"insight_count"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// NewWebhookNotifier creates a webhook notifier for the given endpoint.
func NewWebhookNotifier(endpoint string) *WebhookNotifier {
	return &WebhookNotifier{
		client: httpclient.NewHTTPClient(
			httpclient.WithBaseURL(endpoint),
			httpclient.WithTimeout(10*time.Second),
		),
		logger: logger.Log,
	}
}

// AnalysisCompleted posts the completion event.
func (n *WebhookNotifier) AnalysisCompleted(ctx context.Context, dataset db.Dataset, qualityScore float64, insightCount int) error {
	event := webhookEvent{
		Event:        "dataset.analysis.completed",
		DatasetID:    dataset.ID,
		DatasetName:  dataset.Name,
		Status:       dataset.Status,
		QualityScore: qualityScore,
		InsightCount: insightCount,
		OccurredAt:   time.Now().UTC(),
	}

	resp, err := n.client.Post(ctx, "/", event)
	if err != nil {
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	defer resp.Body.Close()

	n.logger.Info("webhook delivered",
		zap.Int64("dataset_id", dataset.ID),
		zap.Int("status", resp.StatusCode))
	return nil
}
