package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/expertbi/expertbi-api/internal/constants"
	"github.com/expertbi/expertbi-api/internal/db"
	"github.com/expertbi/expertbi-api/internal/logger"
)

// queueSize bounds how many datasets can wait for analysis before
// Enqueue starts reporting backpressure.
const queueSize = 64

// DatasetProcessor runs dataset analysis jobs on a background worker.
// It is the in-process stand-in for the queue-driven Lambda consumer,
// used when the API runs as a single long-lived server.
type DatasetProcessor struct {
	analysis *AnalysisService
	queries  db.Querier
	logger   *zap.Logger
	jobs     chan int64
	stopCh   chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewDatasetProcessor creates a processor that drains jobs with the
// given analysis service.
func NewDatasetProcessor(queries db.Querier, analysisService *AnalysisService) *DatasetProcessor {
	return &DatasetProcessor{
		analysis: analysisService,
		queries:  queries,
		logger:   logger.Log,
		jobs:     make(chan int64, queueSize),
		stopCh:   make(chan struct{}),
	}
}

// Start launches the worker goroutine.
func (p *DatasetProcessor) Start() {
	p.logger.Info("starting dataset processor")
	p.wg.Add(1)
	go p.run()
}

// Stop shuts the worker down and waits for the in-flight job to finish.
// Queued jobs that have not started remain in "queued" state.
func (p *DatasetProcessor) Stop() {
	p.stopOnce.Do(func() {
		p.logger.Info("stopping dataset processor")
		close(p.stopCh)
		p.wg.Wait()
	})
}

// Enqueue marks the dataset as queued and hands it to the worker.
// Returns false when the queue is full or the processor is stopping.
func (p *DatasetProcessor) Enqueue(ctx context.Context, datasetID int64) bool {
	if _, err := p.queries.UpdateDatasetStatus(ctx, db.UpdateDatasetStatusParams{
		ID:     datasetID,
		Status: constants.DatasetStatusQueued,
	}); err != nil {
		p.logger.Error("failed to mark dataset as queued",
			zap.Int64("dataset_id", datasetID),
			zap.Error(err))
		return false
	}

	select {
	case p.jobs <- datasetID:
		return true
	case <-p.stopCh:
		return false
	default:
		p.logger.Warn("dataset processor queue is full",
			zap.Int64("dataset_id", datasetID))
		return false
	}
}

func (p *DatasetProcessor) run() {
	defer p.wg.Done()
	for {
		select {
		case datasetID := <-p.jobs:
			if err := p.analysis.Run(context.Background(), datasetID); err != nil {
				p.logger.Error("dataset job failed",
					zap.Int64("dataset_id", datasetID),
					zap.Error(err))
			}
		case <-p.stopCh:
			return
		}
	}
}
