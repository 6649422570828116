package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueNotificaciones = "jobs:notificaciones"

	// MaxJobAttempts before a job is parked in the DLQ.
	MaxJobAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Handler processes one dequeued job payload. A returned error triggers the
// retry / DLQ path.
type Handler interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueNotificacion pushes a credential notification job to Redis.
func (d *Dispatcher) EnqueueNotificacion(ctx context.Context, payload interface{}) error {
	return d.enqueue(ctx, QueueNotificaciones, "notificacion", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming the notification
// queue. Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers map[string]Handler) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, handlers)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, handlers map[string]Handler) {
	queues := []string{QueueNotificaciones}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers map[string]Handler, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	h, ok := handlers[job.Type]
	if !ok {
		log.Error().Str("type", job.Type).Str("queue", queue).Msg("no handler for job type")
		return
	}

	if err := h.Process(ctx, job.Payload); err != nil {
		job.Attempts++
		if job.Attempts >= MaxJobAttempts {
			SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
			return
		}

		encoded, mErr := json.Marshal(job)
		if mErr != nil {
			log.Error().Err(mErr).Msg("failed to re-marshal job for retry")
			return
		}
		if pErr := rdb.LPush(ctx, queue, encoded).Err(); pErr != nil {
			log.Error().Err(pErr).Str("queue", queue).Msg("failed to re-enqueue job")
			return
		}
		log.Warn().
			Str("type", job.Type).
			Int("attempts", job.Attempts).
			Err(err).
			Msg("job failed, re-enqueued")
		return
	}

	log.Info().Str("type", job.Type).Str("queue", queue).Msg("job processed")
}
