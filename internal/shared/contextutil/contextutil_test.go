package contextutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestExtractMetadata(t *testing.T) {
	ctx := WithRequestID(context.Background(), "rid-1")
	ctx = WithUserID(ctx, "user-1")
	ctx = WithCompanyID(ctx, "company-1")

	md := ExtractMetadata(ctx)

	assert.Equal(t, Metadata{RequestID: "rid-1", UserID: "user-1", CompanyID: "company-1"}, md)
}

func TestGetLogger(t *testing.T) {
	t.Run("request logger wins", func(t *testing.T) {
		reqLogger := zap.NewExample()
		ctx := WithLogger(context.Background(), reqLogger)
		assert.Same(t, reqLogger, GetLogger(ctx, zap.NewNop()))
	})

	t.Run("falls back to default", func(t *testing.T) {
		def := zap.NewExample()
		assert.Same(t, def, GetLogger(context.Background(), def))
	})

	t.Run("never nil", func(t *testing.T) {
		assert.NotNil(t, GetLogger(context.Background(), nil))
	})
}
