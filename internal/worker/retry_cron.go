package worker

// retry_cron.go
// Background goroutine that periodically re-dispatches ordenes stuck in
// estado='pendiente' with a next_retry_at in the past. Uses the Circuit
// Breaker to avoid hammering a downed SMTP relay.

import (
	"context"
	"time"

	"listacomparativa/internal/infra"
	"listacomparativa/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	OrdenRepo  repository.OrdenRepository
	Dispatcher *Dispatcher
	CB         *infra.CircuitBreaker
	RDB        *redis.Client
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries pending orders past their retry window, and requeues them.
// It respects the context for graceful shutdown.
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
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	// If CB is open, skip entirely — don't hammer a downed relay
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	now := time.Now()
	ordenes, err := cfg.OrdenRepo.ListPendingRetries(ctx, now, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}
	if len(ordenes) == 0 {
		return
	}

	log.Info().Int("count", len(ordenes)).Msg("retry_cron: requeueing pending ordenes")

	for i := range ordenes {
		orden := &ordenes[i]

		// Hold the slot until the worker reports back — a tick must not
		// double-enqueue the same orden.
		orden.NextRetryAt = nil
		if err := cfg.OrdenRepo.Update(ctx, orden); err != nil {
			log.Error().Err(err).Str("orden_id", orden.ID.String()).Msg("retry_cron: failed to claim orden")
			continue
		}

		if err := cfg.Dispatcher.EnqueueOrden(ctx, OrdenJobPayload{OrdenID: orden.ID.String()}); err != nil {
			// Put the slot back so a later tick retries.
			next := now.Add(computeRetryBackoff(orden.RetryCount))
			orden.NextRetryAt = &next
			_ = cfg.OrdenRepo.Update(ctx, orden)
			log.Error().Err(err).Str("orden_id", orden.ID.String()).Msg("retry_cron: failed to enqueue orden")
			continue
		}

		log.Info().
			Str("orden_id", orden.ID.String()).
			Int("retry_count", orden.RetryCount).
			Msg("retry_cron: orden requeued")
	}
}
