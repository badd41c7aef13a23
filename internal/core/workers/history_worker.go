package workers

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
)

type HistoryRecorder interface {
	Record(ctx context.Context, entry domain.FoodEntry) error
}

type HistoryJob struct {
	Entry domain.FoodEntry
}

// HistoryWorker records logged foods into the quick-add history off the
// request path. Jobs are dropped when the queue is full; history is a
// convenience and never blocks logging.
type HistoryWorker struct {
	recorder HistoryRecorder
	logger   *zap.Logger
	jobs     chan HistoryJob
	wg       sync.WaitGroup
}

func NewHistoryWorker(recorder HistoryRecorder, logger *zap.Logger) *HistoryWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryWorker{
		recorder: recorder,
		logger:   logger,
		jobs:     make(chan HistoryJob, 100),
	}
}

func (w *HistoryWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.logger.Info("history worker started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.drain(context.WithoutCancel(ctx))
				w.logger.Info("history worker stopped")
				return
			}
		}
	}()
}

// Wait blocks until a started worker has stopped.
func (w *HistoryWorker) Wait() {
	w.wg.Wait()
}

func (w *HistoryWorker) Enqueue(entry domain.FoodEntry) {
	select {
	case w.jobs <- HistoryJob{Entry: entry}:
	default:
		w.logger.Warn("history queue full, dropping job", zap.String("barcode", entry.Barcode))
	}
}

func (w *HistoryWorker) drain(ctx context.Context) {
	for {
		select {
		case job := <-w.jobs:
			w.processJob(ctx, job)
		default:
			return
		}
	}
}

func (w *HistoryWorker) processJob(ctx context.Context, job HistoryJob) {
	if err := w.recorder.Record(ctx, job.Entry); err != nil {
		w.logger.Error("failed to record food history",
			zap.String("barcode", job.Entry.Barcode),
			zap.String("name", job.Entry.Name),
			zap.Error(err))
		return
	}
	w.logger.Debug("food history updated", zap.String("barcode", job.Entry.Barcode))
}
