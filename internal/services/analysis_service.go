package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/expertbi/expertbi-api/internal/analysis"
	"github.com/expertbi/expertbi-api/internal/constants"
	"github.com/expertbi/expertbi-api/internal/db"
	"github.com/expertbi/expertbi-api/internal/logger"
	"github.com/expertbi/expertbi-api/internal/tabular"
)

// AnalysisService runs the full analysis pipeline for a dataset: parse
// the uploaded file, profile it, detect column types, persist the
// results and regenerate insights.
type AnalysisService struct {
	queries   db.Querier
	logger    *zap.Logger
	notifiers []AnalysisNotifier
}

// NewAnalysisService creates an analysis service. Notifiers are invoked
// after a dataset completes analysis; failures there are logged, never
// propagated.
func NewAnalysisService(queries db.Querier, notifiers ...AnalysisNotifier) *AnalysisService {
	return &AnalysisService{
		queries:   queries,
		logger:    logger.Log,
		notifiers: notifiers,
	}
}

// Run processes one dataset end to end. The dataset moves to
// "processing" first; any failure moves it to "failed" with the error
// recorded, success moves it to "completed".
func (s *AnalysisService) Run(ctx context.Context, datasetID int64) error {
	if _, err := s.queries.UpdateDatasetStatus(ctx, db.UpdateDatasetStatusParams{
		ID:     datasetID,
		Status: constants.DatasetStatusProcessing,
	}); err != nil {
		return fmt.Errorf("failed to mark dataset %d as processing: %w", datasetID, err)
	}

	dataset, err := s.queries.GetDataset(ctx, datasetID)
	if err != nil {
		return s.fail(ctx, datasetID, fmt.Errorf("failed to load dataset: %w", err))
	}

	table, err := tabular.ParseFile(dataset.FilePath, dataset.FileType)
	if err != nil {
		return s.fail(ctx, datasetID, fmt.Errorf("failed to parse %s file: %w", dataset.FileType, err))
	}

	profile := analysis.BuildProfile(table)
	detected := analysis.DetectTypes(table)

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return s.fail(ctx, datasetID, fmt.Errorf("failed to encode profile: %w", err))
	}
	typesJSON, err := json.Marshal(detected)
	if err != nil {
		return s.fail(ctx, datasetID, fmt.Errorf("failed to encode detected types: %w", err))
	}

	if _, err := s.queries.UpsertDatasetAnalysis(ctx, db.UpsertDatasetAnalysisParams{
		DatasetID:     datasetID,
		Profile:       profileJSON,
		DetectedTypes: typesJSON,
		QualityScore:  profile.DataQuality.OverallScore,
	}); err != nil {
		return s.fail(ctx, datasetID, fmt.Errorf("failed to store analysis: %w", err))
	}

	if _, err := s.queries.UpdateDatasetCounts(ctx, db.UpdateDatasetCountsParams{
		ID:          datasetID,
		FileSize:    dataset.FileSize,
		RowCount:    int32(table.RowCount()),
		ColumnCount: int32(table.ColumnCount()),
	}); err != nil {
		return s.fail(ctx, datasetID, fmt.Errorf("failed to update dataset counts: %w", err))
	}

	insights, err := s.RegenerateInsights(ctx, datasetID, table)
	if err != nil {
		return s.fail(ctx, datasetID, err)
	}

	completed, err := s.queries.UpdateDatasetStatus(ctx, db.UpdateDatasetStatusParams{
		ID:     datasetID,
		Status: constants.DatasetStatusCompleted,
	})
	if err != nil {
		return fmt.Errorf("failed to mark dataset %d as completed: %w", datasetID, err)
	}

	s.logger.Info("dataset analysis completed",
		zap.Int64("dataset_id", datasetID),
		zap.Int("rows", table.RowCount()),
		zap.Int("columns", table.ColumnCount()),
		zap.Float64("quality_score", profile.DataQuality.OverallScore),
		zap.Int("insights", len(insights)))

	for _, n := range s.notifiers {
		if err := n.AnalysisCompleted(ctx, completed, profile.DataQuality.OverallScore, len(insights)); err != nil {
			s.logger.Warn("analysis notification failed",
				zap.Int64("dataset_id", datasetID),
				zap.Error(err))
		}
	}
	return nil
}

// RegenerateInsights replaces all stored insights for a dataset with a
// fresh generation run over the given table.
func (s *AnalysisService) RegenerateInsights(ctx context.Context, datasetID int64, table *tabular.Table) ([]db.Insight, error) {
	if err := s.queries.DeleteInsightsByDataset(ctx, datasetID); err != nil {
		return nil, fmt.Errorf("failed to clear existing insights: %w", err)
	}

	generated := analysis.GenerateInsights(table)
	stored := make([]db.Insight, 0, len(generated))
	for _, in := range generated {
		metadata, err := json.Marshal(in.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to encode insight metadata: %w", err)
		}
		columnName := pgtype.Text{}
		if in.ColumnName != "" {
			columnName = pgtype.Text{String: in.ColumnName, Valid: true}
		}
		row, err := s.queries.CreateInsight(ctx, db.CreateInsightParams{
			DatasetID:   datasetID,
			InsightType: in.Type,
			Category:    in.Category,
			Title:       in.Title,
			Description: in.Description,
			ColumnName:  columnName,
			Confidence:  in.Confidence,
			Importance:  in.Importance,
			Metadata:    metadata,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to store insight: %w", err)
		}
		stored = append(stored, row)
	}
	return stored, nil
}

// fail records the failure on the dataset and returns the original cause.
func (s *AnalysisService) fail(ctx context.Context, datasetID int64, cause error) error {
	s.logger.Error("dataset analysis failed",
		zap.Int64("dataset_id", datasetID),
		zap.Error(cause))

	if _, err := s.queries.UpdateDatasetStatus(ctx, db.UpdateDatasetStatusParams{
		ID:           datasetID,
		Status:       constants.DatasetStatusFailed,
		ErrorMessage: pgtype.Text{String: cause.Error(), Valid: true},
	}); err != nil {
		s.logger.Error("failed to record dataset failure",
			zap.Int64("dataset_id", datasetID),
			zap.Error(err))
	}
	return cause
}
