package history

import (
	"context"

	"github.com/rs/zerolog/log"

	"comrent-backend/internal/model"
)

// Worker is a pool of goroutines that write archive records off the request
// path. Archiving failures are logged and dropped; a lost analytics row
// must never fail the state transition that produced it.
type Worker struct {
	size  int
	jobs  chan model.SessionRecord
	store *Store
}

// NewWorker creates a worker pool of the given size.
func NewWorker(size int, store *Store) *Worker {
	if size < 1 {
		size = 1
	}
	return &Worker{
		size:  size,
		jobs:  make(chan model.SessionRecord, size),
		store: store,
	}
}

// Start launches the worker goroutines.
func (w *Worker) Start(ctx context.Context) {
	for i := 0; i < w.size; i++ {
		go w.run(ctx, i)
	}
}

func (w *Worker) run(ctx context.Context, id int) {
	log.Debug().Int("worker", id).Msg("archive worker started")
	for {
		select {
		case rec := <-w.jobs:
			if err := w.store.Archive(ctx, rec); err != nil {
				log.Error().Err(err).Str("unit", rec.UnitName).Msg("failed to archive session")
			}
		case <-ctx.Done():
			log.Debug().Int("worker", id).Msg("archive worker stopped")
			return
		}
	}
}

// Dispatch queues a record for archiving.
func (w *Worker) Dispatch(rec model.SessionRecord) {
	w.jobs <- rec
}
