package leave

import (
	"context"
	"fmt"
	"html"

	"go-hrpay/internal/events"
	"go-hrpay/internal/notification"

	"go.uber.org/zap"
)

// Notifier emails the employee when one of their leave requests changes
// status. It implements consumer.LeaveNotifier.
type Notifier struct {
	repo   Repository
	mailer notification.Mailer
	logger *zap.Logger
}

func NewNotifier(repo Repository, mailer notification.Mailer, logger ...*zap.Logger) *Notifier {
	l := zap.L().Named("leave.notifier")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &Notifier{repo: repo, mailer: mailer, logger: l}
}

func (n *Notifier) NotifyLeaveStatus(ctx context.Context, event events.LeaveStatusChangedEvent) error {
	employee, err := n.repo.FindEmployee(ctx, event.EmployeeID)
	if err != nil {
		return fmt.Errorf("find employee %s: %w", event.EmployeeID, err)
	}
	if employee.Email == "" {
		n.logger.Warn("employee has no email, notification skipped", zap.String("employee_id", event.EmployeeID))
		return nil
	}

	return n.mailer.Send(ctx, notification.Message{
		To:       employee.Email,
		Subject:  fmt.Sprintf("Your %s leave is %s", event.LeaveType, event.ToStatus),
		HTMLBody: leaveStatusBody(employee.FullName, event),
	})
}

func leaveStatusBody(name string, event events.LeaveStatusChangedEvent) string {
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>Your %s leave from %s to %s changed from <b>%s</b> to <b>%s</b>.</p>",
		html.EscapeString(name),
		html.EscapeString(event.LeaveType),
		event.StartDate,
		event.EndDate,
		event.FromStatus,
		event.ToStatus,
	)
}
