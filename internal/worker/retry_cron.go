package worker

// retry_cron.go
// Background goroutine that periodically drains the notification DLQ back
// onto the live queue once the SMTP circuit breaker has recovered. Jobs
// re-enter with a clean attempt count so a long outage does not permanently
// strand notifications.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/SistemasCRMC/credenciales/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 60 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	CB  *infra.CircuitBreaker
	RDB *redis.Client
}

// StartRetryCron launches the goroutine. It respects the context for
// graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				drainDLQ(ctx, cfg)
			}
		}
	}()
}

func drainDLQ(ctx context.Context, cfg RetryCronConfig) {
	// Only requeue while the breaker is closed — a half-open probe should
	// not be met with a burst of backlogged jobs.
	if cfg.CB.State() != infra.CBClosed {
		log.Debug().Msg("retry_cron: circuit breaker not closed, skipping tick")
		return
	}

	dlqKey := DLQPrefix + QueueNotificaciones
	requeued := 0

	for i := 0; i < retryBatchSize; i++ {
		raw, err := cfg.RDB.RPop(ctx, dlqKey).Result()
		if err != nil {
			break // empty DLQ or redis unavailable
		}

		var entry DLQEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Msg("retry_cron: corrupt DLQ entry, discarding")
			continue
		}

		job := Job{Type: entry.JobType, Payload: entry.Payload}
		encoded, err := json.Marshal(job)
		if err != nil {
			log.Error().Err(err).Msg("retry_cron: re-marshal job")
			continue
		}
		if err := cfg.RDB.LPush(ctx, entry.OriginalQueue, encoded).Err(); err != nil {
			log.Error().Err(err).Msg("retry_cron: requeue failed")
			// Put the entry back so it is not lost.
			_ = cfg.RDB.RPush(ctx, dlqKey, raw).Err()
			break
		}
		requeued++
	}

	if requeued > 0 {
		log.Info().Int("count", requeued).Msg("retry_cron: DLQ jobs requeued")
	}
}
