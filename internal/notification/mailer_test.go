package notification

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewMailer_NoHostIsNoop(t *testing.T) {
	m := NewMailer(SMTPConfig{}, zap.NewNop())

	_, ok := m.(*noopMailer)
	assert.True(t, ok)
	assert.NoError(t, m.Send(context.Background(), Message{To: "a@example.com", Subject: "hi"}))
}

func TestBuildMessage(t *testing.T) {
	pdf := Attachment{Filename: "payslip-04-2024.pdf", Content: []byte("%PDF-1.3")}
	gm := buildMessage("hr@example.com", Message{
		To:          "budi@example.com",
		Subject:     "Payslip 04/2024",
		HTMLBody:    "<p>attached</p>",
		Attachments: []Attachment{pdf},
	})

	var buf bytes.Buffer
	_, err := gm.WriteTo(&buf)
	assert.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "From: hr@example.com")
	assert.Contains(t, raw, "To: budi@example.com")
	assert.Contains(t, raw, "Subject: Payslip 04/2024")
	assert.Contains(t, raw, `filename="payslip-04-2024.pdf"`)
}

func TestSMTPMailer_CancelledContext(t *testing.T) {
	m := NewMailer(SMTPConfig{Host: "127.0.0.1", Port: 1}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.Send(ctx, Message{To: "x@example.com"}), context.Canceled)
}
