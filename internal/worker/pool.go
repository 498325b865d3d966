package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueNotifications = "jobs:notifications"

	// MaxAttempts bounds how often a job is tried before it goes to the DLQ.
	MaxAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Handler processes the payload of one job type.
type Handler interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
	now func() time.Time
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb, now: time.Now}
}

// Notify enqueues a workflow event for the notification worker.
func (d *Dispatcher) Notify(ctx context.Context, event string, fields map[string]string) error {
	return d.enqueue(ctx, QueueNotifications, JobNotification, NotificationPayload{
		Event:      event,
		Fields:     fields,
		OccurredAt: d.now().UTC(),
	})
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: jobType, Payload: data})
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming the notification
// queue. Each goroutine blocks on BRPOP, so idle workers cost nothing. The
// returned WaitGroup is done once every worker has seen ctx cancelled.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers map[string]Handler) *sync.WaitGroup {
	deadLetter := func(ctx context.Context, e DLQEntry) { SendToDLQ(ctx, rdb, e) }

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runWorker(ctx, rdb, id, handlers, deadLetter)
		}(i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
	return &wg
}

// jobSource is the blocking pop used by workers; satisfied by *redis.Client.
type jobSource interface {
	BRPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
}

const (
	popTimeout     = 5 * time.Second
	dlqPushTimeout = 5 * time.Second
)

func runWorker(ctx context.Context, src jobSource, id int, handlers map[string]Handler, deadLetter func(context.Context, DLQEntry)) {
	failures := 0
	for {
		if ctx.Err() != nil {
			log.Info().Msgf("worker %d shutting down", id)
			return
		}

		// Blocking pop: waits up to popTimeout then loops to check ctx
		result, err := src.BRPop(ctx, popTimeout, QueueNotifications).Result()
		switch {
		case err == nil:
			failures = 0
		case errors.Is(err, redis.Nil), ctx.Err() != nil:
			continue
		default:
			// A dead connection fails BRPOP at once; back off instead of spinning.
			failures++
			wait := popBackoff(failures)
			log.Error().Err(err).Int("worker", id).Dur("retry_in", wait).Msg("worker: queue unavailable")
			select {
			case <-ctx.Done():
			case <-time.After(wait):
			}
			continue
		}
		if len(result) < 2 {
			continue
		}

		if dlq := processJob(ctx, handlers, result[0], result[1]); dlq != nil {
			// The job is already off the queue, so record it even while shutting down.
			dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), dlqPushTimeout)
			deadLetter(dctx, *dlq)
			cancel()
		}
	}
}

// popBackoff doubles from 500ms up to 30s. It is a var so tests can shrink it.
var popBackoff = func(failures int) time.Duration {
	if failures > 7 {
		failures = 7
	}
	d := 500 * time.Millisecond << uint(failures-1)
	if d > 30*time.Second {
		d = 30 * time.Second
	}
	return d
}

// processJob runs the job's handler with retries. It returns the DLQ entry to
// record when the job could not be processed, or nil.
func processJob(ctx context.Context, handlers map[string]Handler, queue, raw string) *DLQEntry {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return newDLQEntry(queue, "", json.RawMessage(fmt.Sprintf("%q", raw)), "malformed envelope: "+err.Error(), 0)
	}

	h, ok := handlers[job.Type]
	if !ok {
		log.Error().Str("type", job.Type).Str("queue", queue).Msg("no handler for job type")
		return newDLQEntry(queue, job.Type, job.Payload, "no handler registered", 0)
	}

	attempts := 0
	err := withRetry(ctx, MaxAttempts, func(int) error {
		attempts++
		return h.Process(ctx, job.Payload)
	})
	if err != nil {
		return newDLQEntry(queue, job.Type, job.Payload, err.Error(), attempts)
	}
	log.Debug().Str("type", job.Type).Int("attempts", attempts).Msg("job processed")
	return nil
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryDelay(i)):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

// retryDelay is a var so tests can shrink the schedule.
var retryDelay = func(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt-1)) * time.Second
}
