package leave_test

import (
	"context"
	"testing"

	"go-hrpay/internal/events"
	"go-hrpay/internal/leave"
	leaveMock "go-hrpay/internal/leave/mock"
	"go-hrpay/internal/notification"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeMailer struct {
	sent []notification.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg notification.Message) error {
	f.sent = append(f.sent, msg)
	return f.err
}

func TestNotifier_NotifyLeaveStatus(t *testing.T) {
	ctx := context.Background()
	event := events.LeaveStatusChangedEvent{
		LeaveID:    "l-1",
		EmployeeID: "e-1",
		LeaveType:  "ANNUAL",
		StartDate:  "2026-04-06",
		EndDate:    "2026-04-08",
		FromStatus: "PENDING",
		ToStatus:   "APPROVED",
	}

	t.Run("mails the employee", func(t *testing.T) {
		repo := leaveMock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().FindEmployee(ctx, "e-1").Return(&leave.EmployeeRef{FullName: "Budi <Santoso>", Email: "budi@example.com"}, nil)
		mailer := &fakeMailer{}

		err := leave.NewNotifier(repo, mailer, zap.NewNop()).NotifyLeaveStatus(ctx, event)

		assert.NoError(t, err)
		if assert.Len(t, mailer.sent, 1) {
			assert.Equal(t, "budi@example.com", mailer.sent[0].To)
			assert.Equal(t, "Your ANNUAL leave is APPROVED", mailer.sent[0].Subject)
			assert.Contains(t, mailer.sent[0].HTMLBody, "Budi &lt;Santoso&gt;")
		}
	})

	t.Run("employee without email", func(t *testing.T) {
		repo := leaveMock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().FindEmployee(ctx, "e-1").Return(&leave.EmployeeRef{FullName: "Budi"}, nil)
		mailer := &fakeMailer{}

		err := leave.NewNotifier(repo, mailer, zap.NewNop()).NotifyLeaveStatus(ctx, event)

		assert.NoError(t, err)
		assert.Empty(t, mailer.sent)
	})

	t.Run("lookup failure is retried by the consumer", func(t *testing.T) {
		repo := leaveMock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().FindEmployee(ctx, "e-1").Return(nil, gorm.ErrRecordNotFound)

		err := leave.NewNotifier(repo, &fakeMailer{}, zap.NewNop()).NotifyLeaveStatus(ctx, event)

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
