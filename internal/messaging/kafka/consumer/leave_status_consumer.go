package consumer

import (
	"context"

	"go-hrpay/internal/events"

	"go.uber.org/zap"
)

type LeaveNotifier interface {
	NotifyLeaveStatus(ctx context.Context, event events.LeaveStatusChangedEvent) error
}

func ConsumeLeaveStatusChanged(
	ctx context.Context,
	reader MessageReader,
	notifier LeaveNotifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_status")

	consume(ctx, reader, log, func(ctx context.Context, event events.LeaveStatusChangedEvent) error {
		if err := notifier.NotifyLeaveStatus(ctx, event); err != nil {
			return err
		}
		log.Info("leave status notification sent",
			zap.String("leave_id", event.LeaveID),
			zap.String("status", event.ToStatus),
		)
		return nil
	})
}
