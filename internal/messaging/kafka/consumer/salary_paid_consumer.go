package consumer

import (
	"context"

	"go-hrpay/internal/events"

	"go.uber.org/zap"
)

// PayslipDeliverer renders, stores and mails the payslip of a paid salary.
type PayslipDeliverer interface {
	DeliverPayslip(ctx context.Context, event events.SalaryPaidEvent) (string, error)
}

func ConsumeSalaryPaid(
	ctx context.Context,
	reader MessageReader,
	deliverer PayslipDeliverer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.salary_paid")

	consume(ctx, reader, log, func(ctx context.Context, event events.SalaryPaidEvent) error {
		url, err := deliverer.DeliverPayslip(ctx, event)
		if err != nil {
			return err
		}
		log.Info("payslip delivered",
			zap.String("request_id", event.RequestID),
			zap.String("salary_id", event.SalaryID),
			zap.String("company_id", event.CompanyID),
			zap.String("payslip_url", url),
		)
		return nil
	})
}
