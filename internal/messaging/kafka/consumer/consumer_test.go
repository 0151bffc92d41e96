package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"go-hrpay/internal/events"
	"go-hrpay/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeReader serves queued messages, then cancels the loop.
type fakeReader struct {
	mu        sync.Mutex
	queue     []kafkago.Message
	committed []int64
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) == 0 {
		r.cancel()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

type fakeDeliverer struct {
	fn func(event events.SalaryPaidEvent) (string, error)
}

func (f *fakeDeliverer) DeliverPayslip(_ context.Context, event events.SalaryPaidEvent) (string, error) {
	return f.fn(event)
}

type fakeNotifier struct {
	got []events.LeaveStatusChangedEvent
}

func (f *fakeNotifier) NotifyLeaveStatus(_ context.Context, event events.LeaveStatusChangedEvent) error {
	f.got = append(f.got, event)
	return nil
}

func message(t *testing.T, offset int64, v any) kafkago.Message {
	t.Helper()
	body, err := json.Marshal(v)
	assert.NoError(t, err)
	return kafkago.Message{Offset: offset, Value: body}
}

func TestConsumeSalaryPaid(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	reader := &fakeReader{
		cancel: cancel,
		queue: []kafkago.Message{
			message(t, 1, events.SalaryPaidEvent{SalaryID: "s-1"}),
			{Offset: 2, Value: []byte("{not json")},
			message(t, 3, events.SalaryPaidEvent{SalaryID: "s-fail"}),
		},
	}

	var delivered []string
	deliverer := &fakeDeliverer{fn: func(event events.SalaryPaidEvent) (string, error) {
		if event.SalaryID == "s-fail" {
			return "", errors.New("smtp down")
		}
		delivered = append(delivered, event.SalaryID)
		return "/uploads/payslips/" + event.SalaryID + ".pdf", nil
	}}

	consumer.ConsumeSalaryPaid(ctx, reader, deliverer, zap.NewNop())

	assert.Equal(t, []string{"s-1"}, delivered)
	// the failed delivery stays uncommitted
	assert.Equal(t, []int64{1, 2}, reader.committed)
}

func TestConsumeLeaveStatusChanged(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	reader := &fakeReader{
		cancel: cancel,
		queue: []kafkago.Message{
			message(t, 7, events.LeaveStatusChangedEvent{LeaveID: "l-1", ToStatus: "APPROVED"}),
		},
	}
	notifier := &fakeNotifier{}

	consumer.ConsumeLeaveStatusChanged(ctx, reader, notifier, zap.NewNop())

	assert.Len(t, notifier.got, 1)
	assert.Equal(t, "APPROVED", notifier.got[0].ToStatus)
	assert.Equal(t, []int64{7}, reader.committed)
}
