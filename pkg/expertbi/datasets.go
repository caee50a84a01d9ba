package expertbi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// ErrAnalysisTimeout is returned when a dataset does not reach a terminal
// status within the polling budget.
var ErrAnalysisTimeout = errors.New("expertbi: timed out waiting for dataset analysis")

// AnalysisFailedError reports a dataset whose analysis ended in a failed
// or error status, carrying the server's error message.
type AnalysisFailedError struct {
	DatasetID int64
	Status    string
	Message   string
}

func (e *AnalysisFailedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("expertbi: analysis of dataset %d ended with status %s", e.DatasetID, e.Status)
	}
	return fmt.Sprintf("expertbi: analysis of dataset %d ended with status %s: %s", e.DatasetID, e.Status, e.Message)
}

const (
	defaultPollInterval = time.Second
	defaultPollAttempts = 30
)

// Dataset is an uploaded data file and its processing state.
type Dataset struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	FileName     string `json:"file_name"`
	FileType     string `json:"file_type"`
	FileSize     int64  `json:"file_size"`
	RowCount     int32  `json:"row_count"`
	ColumnCount  int32  `json:"column_count"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// Analysis is the stored profile of a completed dataset.
type Analysis struct {
	DatasetID     int64           `json:"dataset_id"`
	Profile       json.RawMessage `json:"profile"`
	DetectedTypes json.RawMessage `json:"detected_types"`
	QualityScore  float64         `json:"quality_score"`
}

// Insight is a generated finding about a dataset.
type Insight struct {
	ID          int64           `json:"id"`
	DatasetID   int64           `json:"dataset_id"`
	InsightType string          `json:"insight_type"`
	Category    string          `json:"category"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ColumnName  string          `json:"column_name,omitempty"`
	Confidence  float64         `json:"confidence"`
	Importance  float64         `json:"importance"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
}

// DatasetList is a page of datasets.
type DatasetList struct {
	Object  string    `json:"object"`
	Data    []Dataset `json:"data"`
	HasMore bool      `json:"has_more"`
	Total   int64     `json:"total"`
}

type insightList struct {
	Object string    `json:"object"`
	Data   []Insight `json:"data"`
}

// terminalStatus reports whether polling can stop at the given status.
func terminalStatus(status string) bool {
	switch status {
	case "completed", "failed", "error":
		return true
	}
	return false
}

// UploadDataset uploads a local file and returns the created dataset.
// Analysis runs asynchronously; use WaitForAnalysis or UploadAndWait to
// block until it finishes.
func (c *Client) UploadDataset(ctx context.Context, filePath, name, description string) (*Dataset, error) {
	var out Dataset
	req := c.newRequest(ctx).
		SetFile("file", filePath).
		SetResult(&out)
	if name != "" {
		req.SetFormData(map[string]string{"name": name})
	}
	if description != "" {
		req.SetFormData(map[string]string{"description": description})
	}
	resp, err := req.Post("/datasets/upload")
	if err := c.checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// WaitForAnalysis polls the dataset until it reaches a terminal status,
// returning ErrAnalysisTimeout once the attempt budget is spent.
func (c *Client) WaitForAnalysis(ctx context.Context, datasetID int64) (*Dataset, error) {
	interval := c.pollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	attempts := c.pollAttempts
	if attempts <= 0 {
		attempts = defaultPollAttempts
	}

	for i := 0; i < attempts; i++ {
		dataset, err := c.GetDataset(ctx, datasetID)
		if err != nil {
			return nil, err
		}
		if terminalStatus(dataset.Status) {
			if dataset.Status != "completed" {
				return nil, &AnalysisFailedError{
					DatasetID: dataset.ID,
					Status:    dataset.Status,
					Message:   dataset.ErrorMessage,
				}
			}
			return dataset, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}
	return nil, ErrAnalysisTimeout
}

// UploadAndWait uploads a file and blocks until its analysis finishes.
func (c *Client) UploadAndWait(ctx context.Context, filePath, name, description string) (*Dataset, error) {
	dataset, err := c.UploadDataset(ctx, filePath, name, description)
	if err != nil {
		return nil, err
	}
	return c.WaitForAnalysis(ctx, dataset.ID)
}

// GetDataset fetches a dataset by ID.
func (c *Client) GetDataset(ctx context.Context, datasetID int64) (*Dataset, error) {
	var out Dataset
	resp, err := c.newRequest(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/datasets/%d", datasetID))
	if err := c.checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDatasets fetches one page of datasets.
func (c *Client) ListDatasets(ctx context.Context, page, limit int) (*DatasetList, error) {
	var out DatasetList
	resp, err := c.newRequest(ctx).
		SetQueryParams(map[string]string{
			"page":  fmt.Sprintf("%d", page),
			"limit": fmt.Sprintf("%d", limit),
		}).
		SetResult(&out).
		Get("/datasets")
	if err := c.checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteDataset removes a dataset and its stored file.
func (c *Client) DeleteDataset(ctx context.Context, datasetID int64) error {
	resp, err := c.newRequest(ctx).Delete(fmt.Sprintf("/datasets/%d", datasetID))
	return c.checkResponse(resp, err)
}

// GetAnalysis fetches the stored analysis of a completed dataset.
func (c *Client) GetAnalysis(ctx context.Context, datasetID int64) (*Analysis, error) {
	var out Analysis
	resp, err := c.newRequest(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/datasets/%d/analysis", datasetID))
	if err := c.checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListInsights fetches the stored insights for a dataset.
func (c *Client) ListInsights(ctx context.Context, datasetID int64) ([]Insight, error) {
	var out insightList
	resp, err := c.newRequest(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/datasets/%d/insights", datasetID))
	if err := c.checkResponse(resp, err); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GenerateInsights recomputes and returns the insights for a dataset.
func (c *Client) GenerateInsights(ctx context.Context, datasetID int64) ([]Insight, error) {
	var out insightList
	resp, err := c.newRequest(ctx).
		SetResult(&out).
		Post(fmt.Sprintf("/datasets/%d/insights/generate", datasetID))
	if err := c.checkResponse(resp, err); err != nil {
		return nil, err
	}
	return out.Data, nil
}
