package daemon

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"snapname/internal/logging"
	"snapname/internal/workers"
)

// dispatch consumes watcher events until the stream closes. Matching files
// are handed to the pool; Submit blocks when all workers are busy and the
// queue is full, which is the intended backpressure.
func (d *Daemon) dispatch(ctx context.Context) {
	for event := range d.watcher.Events() {
		d.counters.eventsSeen.Add(1)

		base := filepath.Base(event.Path)
		log := d.logger.With(logging.String(logging.FieldFile, base))

		info, err := os.Lstat(event.Path)
		if err != nil {
			// Gone already; renames emitted by our own workers land here too.
			continue
		}
		if info.IsDir() {
			continue
		}

		if !d.matcher.Match(base) {
			log.Debug("ignoring non-screenshot file", logging.String("event", event.Kind.String()))
			continue
		}

		d.counters.eventsMatched.Add(1)
		log.Info("screenshot detected", logging.String("event", event.Kind.String()))

		path := event.Path
		err = d.pool.Submit(ctx, func(taskCtx context.Context) {
			if _, err := d.processor.Process(taskCtx, path); err != nil {
				d.counters.failed.Add(1)
				log.Error("processing failed", logging.Error(err))
				return
			}
			d.counters.renamed.Add(1)
		})
		if err != nil {
			if !errors.Is(err, workers.ErrPoolClosed) && !errors.Is(err, context.Canceled) {
				log.Error("submitting work failed", logging.Error(err))
			}
			return
		}
	}
}
