package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/petconnect/activities-api/internal/api/metrics"
	"github.com/petconnect/activities-api/internal/core/domain"
	"github.com/petconnect/activities-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// Dispatcher routes enrollment audit records to a fixed set of workers using
// consistent hashing on the activity id, so records for the same activity
// are persisted in signup order.
type Dispatcher struct {
	workers []chan domain.EnrollmentRecord
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.EnrollmentRecord, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.EnrollmentRecord, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a record to the worker responsible for its activity.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(rec domain.EnrollmentRecord) {
	idx := d.shardIndex(rec.ActivityID)
	d.workers[idx] <- rec
	metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps an activity id deterministically to a worker index.
func (d *Dispatcher) shardIndex(activityID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(activityID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.EnrollmentRecord) {
	workerLabel := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case rec, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(workerLabel).Set(float64(len(ch)))

			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := d.repo.InsertEnrollment(writeCtx, rec)
			cancel()
			if err != nil {
				d.log.Error().Err(err).
					Str("activity_id", rec.ActivityID).
					Str("account_id", rec.AccountID).
					Int("worker_id", id).
					Msg("enrollment audit write failed")
			}
		}
	}
}
