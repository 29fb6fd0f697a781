package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/eparcel/eparcel-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes reply jobs to a fixed set of workers using consistent
// hashing on the conversation key, guaranteeing per-conversation reply
// ordering.
type Dispatcher struct {
	workers []chan ports.ReplyJob
	service ports.ReplyService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ReplyService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ReplyJob, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ReplyJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a job to the worker responsible for its conversation.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(job ports.ReplyJob) {
	d.workers[d.shardIndex(job.ConversationKey)] <- job
}

// shardIndex maps a conversation key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ReplyJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Process(ctx, job); err != nil {
				d.log.Error().Err(err).
					Str("conversation", job.ConversationKey).
					Int("worker_id", id).
					Msg("reply processing failed")
			}
		}
	}
}
