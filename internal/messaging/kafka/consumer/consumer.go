package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// consume runs the fetch/decode/handle/commit loop until ctx is done.
// Undecodable messages are committed and dropped; a handler error leaves
// the message uncommitted so it is redelivered after a restart.
func consume[T any](
	ctx context.Context,
	reader MessageReader,
	log *zap.Logger,
	handle func(context.Context, T) error,
) {
	log.Info("consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		var event T
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := handle(ctx, event); err != nil {
			log.Error("handle event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Error(err))
			continue
		}
	}
}
