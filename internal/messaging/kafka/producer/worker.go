package producer

import (
	"context"
	"time"

	"go-hrpay/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	batchSize = 50
	// claimLease bounds how long a claimed row stays invisible to other relays.
	claimLease      = time.Minute
	purgeInterval   = time.Hour
	sentRetention   = 7 * 24 * time.Hour
	defaultInterval = 3 * time.Second
)

// ProcessOutboxEvents relays salary and leave events from outbox_events to
// Kafka until ctx is cancelled. Sent rows older than a week are purged.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = defaultInterval
	}

	log := logger.Named("kafka.producer.worker")
	poll := time.NewTicker(pollInterval)
	defer poll.Stop()
	purge := time.NewTicker(purgeInterval)
	defer purge.Stop()

	log.Info("outbox relay started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox relay stopped")
			return
		case <-poll.C:
			if err := processPendingEvents(ctx, repo, writer, log); err != nil {
				log.Error("process outbox events failed", zap.Error(err))
			}
		case now := <-purge.C:
			purgeSentEvents(ctx, repo, now, log)
		}
	}
}

func processPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) error {
	events, err := repo.ClaimPending(ctx, batchSize, claimLease)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	logger.Debug("claimed outbox events", zap.Int("count", len(events)))

	for _, event := range events {
		log := logger.With(
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("aggregate_id", event.AggregateID),
		)

		if err := publishEvent(ctx, writer, event); err != nil {
			if event.RetryCount+1 >= kafka.MaxPublishAttempts {
				log.Error("outbox event gave up", zap.Int("attempts", event.RetryCount+1), zap.Error(err))
			} else {
				log.Warn("publish outbox event failed", zap.Int("attempt", event.RetryCount+1), zap.Error(err))
			}
			if markErr := repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				log.Error("record outbox failure failed", zap.Error(markErr))
			}
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			// the lease expires and the event is published again; consumers are idempotent
			log.Error("mark outbox sent failed", zap.Error(err))
			continue
		}

		log.Info("outbox event sent", zap.String("topic", event.Topic))
	}

	return nil
}

func purgeSentEvents(ctx context.Context, repo kafka.OutboxRepository, now time.Time, logger *zap.Logger) {
	n, err := repo.PurgeSent(ctx, now.Add(-sentRetention))
	if err != nil {
		logger.Warn("purge sent outbox events failed", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Info("purged sent outbox events", zap.Int64("count", n))
	}
}
