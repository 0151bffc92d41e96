package bootstrap

import (
	"context"
	"net/http"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"go-hrpay/internal/activity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type captureRecorder struct {
	mu      sync.Mutex
	entries []activity.Entry
}

func (r *captureRecorder) Record(_ context.Context, e activity.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

type captureAudit struct {
	mu      sync.Mutex
	actions []string
}

func (a *captureAudit) Log(_ context.Context, e AuditLog) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, e.Action)
}

func TestLogAuditLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	NewLogAuditLogger(zap.New(core)).Log(context.Background(), AuditLog{
		Action:  AuditServerShutdown,
		Message: "Server is shutting down",
		Meta:    map[string]any{"signal": "terminated"},
	})

	entries := logs.FilterMessage("Server is shutting down").All()
	require.Len(t, entries, 1)
	assert.Equal(t, AuditServerShutdown, entries[0].ContextMap()["action"])
}

func TestActivityAuditLogger(t *testing.T) {
	rec := &captureRecorder{}
	next := &captureAudit{}

	NewActivityAuditLogger(rec, next).Log(context.Background(), AuditLog{
		Action:  AuditServerStart,
		Message: "Server started",
		Meta:    map[string]any{"port": "8080"},
	})

	require.Len(t, rec.entries, 1)
	e := rec.entries[0]
	assert.Equal(t, activity.ActionSystem, e.Action)
	assert.Equal(t, "server", e.TargetType)
	assert.Empty(t, e.CompanyID)
	assert.Equal(t, "8080", e.Metadata["port"])
	assert.Equal(t, AuditServerStart, e.Metadata["event"])
	assert.Equal(t, []string{AuditServerStart}, next.actions)
}

func TestServe_ShutsDownOnSignal(t *testing.T) {
	audit := &captureAudit{}
	quit := make(chan os.Signal, 1)
	done := make(chan error, 1)

	go func() {
		done <- serve(http.NotFoundHandler(), ServerConfig{Port: "0", ShutdownTimeout: time.Second}, audit, quit)
	}()

	quit <- syscall.SIGTERM

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down")
	}

	audit.mu.Lock()
	defer audit.mu.Unlock()
	assert.Equal(t, []string{AuditServerStart, AuditServerShutdown}, audit.actions)
}
