package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/expertbi/expertbi-api/internal/constants"
	"github.com/expertbi/expertbi-api/internal/db"
	"github.com/expertbi/expertbi-api/internal/logger"
	"github.com/expertbi/expertbi-api/internal/mocks"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func writeTempCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	content := "region,amount,order_date\n" +
		"east,10,2024-01-01\n" +
		"west,20,2024-01-02\n" +
		"east,30,2024-01-03\n" +
		"west,40,2024-01-04\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

type recordingNotifier struct {
	called       chan struct{}
	insightCount int
}

func (n *recordingNotifier) AnalysisCompleted(ctx context.Context, dataset db.Dataset, qualityScore float64, insightCount int) error {
	n.insightCount = insightCount
	close(n.called)
	return nil
}

func TestAnalysisServiceRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mocks.NewMockQuerier(ctrl)

	path := writeTempCSV(t)
	dataset := db.Dataset{
		ID:       7,
		Name:     "sales",
		FilePath: path,
		FileType: constants.FileTypeCSV,
		FileSize: 64,
	}

	querier.EXPECT().
		UpdateDatasetStatus(gomock.Any(), db.UpdateDatasetStatusParams{ID: 7, Status: constants.DatasetStatusProcessing}).
		Return(dataset, nil)
	querier.EXPECT().GetDataset(gomock.Any(), int64(7)).Return(dataset, nil)
	querier.EXPECT().
		UpsertDatasetAnalysis(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.UpsertDatasetAnalysisParams) (db.DatasetAnalysis, error) {
			assert.Equal(t, int64(7), arg.DatasetID)
			assert.NotEmpty(t, arg.Profile)
			assert.NotEmpty(t, arg.DetectedTypes)
			assert.Greater(t, arg.QualityScore, 0.0)
			return db.DatasetAnalysis{DatasetID: 7}, nil
		})
	querier.EXPECT().
		UpdateDatasetCounts(gomock.Any(), db.UpdateDatasetCountsParams{ID: 7, FileSize: 64, RowCount: 4, ColumnCount: 3}).
		Return(dataset, nil)
	querier.EXPECT().DeleteInsightsByDataset(gomock.Any(), int64(7)).Return(nil)
	querier.EXPECT().CreateInsight(gomock.Any(), gomock.Any()).Return(db.Insight{}, nil).AnyTimes()
	querier.EXPECT().
		UpdateDatasetStatus(gomock.Any(), db.UpdateDatasetStatusParams{ID: 7, Status: constants.DatasetStatusCompleted}).
		Return(dataset, nil)

	svc := NewAnalysisService(querier)
	require.NoError(t, svc.Run(context.Background(), 7))
}

func TestAnalysisServiceRun_ParseFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mocks.NewMockQuerier(ctrl)

	querier.EXPECT().
		UpdateDatasetStatus(gomock.Any(), db.UpdateDatasetStatusParams{ID: 9, Status: constants.DatasetStatusProcessing}).
		Return(db.Dataset{}, nil)
	querier.EXPECT().GetDataset(gomock.Any(), int64(9)).Return(db.Dataset{
		ID:       9,
		FilePath: filepath.Join(t.TempDir(), "missing.csv"),
		FileType: constants.FileTypeCSV,
	}, nil)
	querier.EXPECT().
		UpdateDatasetStatus(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.UpdateDatasetStatusParams) (db.Dataset, error) {
			assert.Equal(t, constants.DatasetStatusFailed, arg.Status)
			assert.True(t, arg.ErrorMessage.Valid)
			assert.NotEmpty(t, arg.ErrorMessage.String)
			return db.Dataset{}, nil
		})

	svc := NewAnalysisService(querier)
	assert.Error(t, svc.Run(context.Background(), 9))
}

func TestAnalysisServiceRun_NotifiesOnCompletion(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mocks.NewMockQuerier(ctrl)

	path := writeTempCSV(t)
	dataset := db.Dataset{ID: 3, Name: "sales", FilePath: path, FileType: constants.FileTypeCSV}

	querier.EXPECT().UpdateDatasetStatus(gomock.Any(), gomock.Any()).Return(dataset, nil).Times(2)
	querier.EXPECT().GetDataset(gomock.Any(), int64(3)).Return(dataset, nil)
	querier.EXPECT().UpsertDatasetAnalysis(gomock.Any(), gomock.Any()).Return(db.DatasetAnalysis{}, nil)
	querier.EXPECT().UpdateDatasetCounts(gomock.Any(), gomock.Any()).Return(dataset, nil)
	querier.EXPECT().DeleteInsightsByDataset(gomock.Any(), int64(3)).Return(nil)
	querier.EXPECT().CreateInsight(gomock.Any(), gomock.Any()).Return(db.Insight{}, nil).AnyTimes()

	notifier := &recordingNotifier{called: make(chan struct{})}
	svc := NewAnalysisService(querier, notifier)
	require.NoError(t, svc.Run(context.Background(), 3))

	select {
	case <-notifier.called:
	default:
		t.Fatal("expected notifier to be called")
	}
}

func TestDatasetProcessor_EnqueueAndProcess(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mocks.NewMockQuerier(ctrl)

	path := writeTempCSV(t)
	dataset := db.Dataset{ID: 5, Name: "sales", FilePath: path, FileType: constants.FileTypeCSV}

	completed := make(chan struct{})
	querier.EXPECT().
		UpdateDatasetStatus(gomock.Any(), db.UpdateDatasetStatusParams{ID: 5, Status: constants.DatasetStatusQueued}).
		Return(dataset, nil)
	querier.EXPECT().
		UpdateDatasetStatus(gomock.Any(), db.UpdateDatasetStatusParams{ID: 5, Status: constants.DatasetStatusProcessing}).
		Return(dataset, nil)
	querier.EXPECT().GetDataset(gomock.Any(), int64(5)).Return(dataset, nil)
	querier.EXPECT().UpsertDatasetAnalysis(gomock.Any(), gomock.Any()).Return(db.DatasetAnalysis{}, nil)
	querier.EXPECT().UpdateDatasetCounts(gomock.Any(), gomock.Any()).Return(dataset, nil)
	querier.EXPECT().DeleteInsightsByDataset(gomock.Any(), int64(5)).Return(nil)
	querier.EXPECT().CreateInsight(gomock.Any(), gomock.Any()).Return(db.Insight{}, nil).AnyTimes()
	querier.EXPECT().
		UpdateDatasetStatus(gomock.Any(), db.UpdateDatasetStatusParams{ID: 5, Status: constants.DatasetStatusCompleted}).
		DoAndReturn(func(context.Context, db.UpdateDatasetStatusParams) (db.Dataset, error) {
			close(completed)
			return dataset, nil
		})

	processor := NewDatasetProcessor(querier, NewAnalysisService(querier))
	processor.Start()
	defer processor.Stop()

	require.True(t, processor.Enqueue(context.Background(), 5))

	select {
	case <-completed:
	case <-time.After(5 * time.Second):
		t.Fatal("dataset was not processed in time")
	}
}

func TestDatasetProcessor_EnqueueFailsWhenStatusUpdateFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mocks.NewMockQuerier(ctrl)

	querier.EXPECT().
		UpdateDatasetStatus(gomock.Any(), gomock.Any()).
		Return(db.Dataset{}, assert.AnError)

	processor := NewDatasetProcessor(querier, NewAnalysisService(querier))
	assert.False(t, processor.Enqueue(context.Background(), 11))
}
