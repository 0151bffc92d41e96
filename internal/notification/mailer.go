package notification

import (
	"context"
	"io"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Message struct {
	To          string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

// Attachment is an in-memory file sent along with a message.
type Attachment struct {
	Filename string
	Content  []byte
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewMailer returns an SMTP mailer, or a mailer that only logs when no
// host is configured.
func NewMailer(cfg SMTPConfig, logger ...*zap.Logger) Mailer {
	l := zap.L().Named("notification.mailer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	if cfg.Host == "" {
		return &noopMailer{logger: l}
	}
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		logger: l,
	}
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	gm := buildMessage(m.from, msg)
	if err := m.dialer.DialAndSend(gm); err != nil {
		m.logger.Error("send mail failed", zap.String("to", msg.To), zap.String("subject", msg.Subject), zap.Error(err))
		return err
	}

	m.logger.Info("mail sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

func buildMessage(from string, msg Message) *gomail.Message {
	gm := gomail.NewMessage()
	gm.SetHeader("From", from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTMLBody)
	for _, a := range msg.Attachments {
		content := a.Content
		gm.Attach(a.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}
	return gm
}

type noopMailer struct {
	logger *zap.Logger
}

func (m *noopMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("smtp disabled, mail skipped", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}
