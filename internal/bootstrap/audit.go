package bootstrap

import (
	"context"
	"os"

	"go-hrpay/internal/activity"

	"go.uber.org/zap"
)

const (
	AuditServerStart    = "SERVER_START"
	AuditServerShutdown = "SERVER_SHUTDOWN"
)

// AuditLog is a process-level event such as a start or a shutdown.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

type logAuditLogger struct {
	logger *zap.Logger
}

// NewLogAuditLogger writes audit events to zap only.
func NewLogAuditLogger(logger ...*zap.Logger) AuditLogger {
	l := zap.L().Named("audit")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &logAuditLogger{logger: l}
}

func (l *logAuditLogger) Log(_ context.Context, entry AuditLog) {
	l.logger.Info(entry.Message,
		zap.String("action", entry.Action),
		zap.Any("meta", entry.Meta),
	)
}

type activityAuditLogger struct {
	recorder activity.Recorder
	next     AuditLogger
	host     string
}

// NewActivityAuditLogger stores audit events as SYSTEM rows in the
// platform-wide activity log, then forwards them to next.
func NewActivityAuditLogger(recorder activity.Recorder, next AuditLogger) AuditLogger {
	host, _ := os.Hostname()
	if next == nil {
		next = NewLogAuditLogger()
	}
	return &activityAuditLogger{recorder: recorder, next: next, host: host}
}

func (l *activityAuditLogger) Log(ctx context.Context, entry AuditLog) {
	meta := make(map[string]any, len(entry.Meta)+1)
	for k, v := range entry.Meta {
		meta[k] = v
	}
	meta["event"] = entry.Action

	l.recorder.Record(ctx, activity.Entry{
		Action:      activity.ActionSystem,
		TargetType:  "server",
		TargetID:    l.host,
		Description: entry.Message,
		Metadata:    meta,
	})
	l.next.Log(ctx, entry)
}
