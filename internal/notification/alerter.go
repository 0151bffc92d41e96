package notification

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Alerter pushes short operational messages (failed evaluator runs and the
// like) to the people running the service. Delivery is best-effort.
type Alerter interface {
	Alert(ctx context.Context, text string)
}

type TelegramConfig struct {
	Token  string
	ChatID int64
}

// messageSender is satisfied by *tgbotapi.BotAPI.
type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type telegramAlerter struct {
	bot    messageSender
	chatID int64
	logger *zap.Logger
}

type logAlerter struct {
	logger *zap.Logger
}

// NewAlerter returns a Telegram alerter, or one that only logs when the bot
// is not configured or cannot authorize.
func NewAlerter(cfg TelegramConfig, logger ...*zap.Logger) Alerter {
	l := zap.L().Named("notification.alerter")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	if cfg.Token == "" || cfg.ChatID == 0 {
		return &logAlerter{logger: l}
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		l.Warn("telegram bot unavailable, alerts go to the log only", zap.Error(err))
		return &logAlerter{logger: l}
	}
	l.Info("telegram alerts enabled", zap.String("bot", bot.Self.UserName))

	return newTelegramAlerter(bot, cfg.ChatID, l)
}

func newTelegramAlerter(bot messageSender, chatID int64, logger *zap.Logger) *telegramAlerter {
	return &telegramAlerter{bot: bot, chatID: chatID, logger: logger}
}

func (a *telegramAlerter) Alert(ctx context.Context, text string) {
	if ctx.Err() != nil {
		return
	}
	if _, err := a.bot.Send(tgbotapi.NewMessage(a.chatID, text)); err != nil {
		a.logger.Warn("telegram alert failed", zap.String("text", text), zap.Error(err))
	}
}

func (a *logAlerter) Alert(_ context.Context, text string) {
	a.logger.Warn("alert", zap.String("text", text))
}
