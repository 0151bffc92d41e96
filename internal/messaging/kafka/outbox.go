package kafka

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
)

// Enqueue marshals payload and stores it as a pending outbox row inside tx.
// A nil repo is a no-op so services can run without the relay wired.
func Enqueue(
	ctx context.Context,
	repo OutboxRepository,
	tx *sql.Tx,
	requestID, aggregateType, aggregateID, eventType, topic string,
	payload any,
) error {
	if repo == nil {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return repo.WithTx(tx).Create(ctx, OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       body,
		Status:        OutboxStatusPending,
	})
}
