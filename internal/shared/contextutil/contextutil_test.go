package contextutil_test

import (
	"context"
	"testing"

	"github.com/Ashmit12092000/ems/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestExtractMetadata(t *testing.T) {
	ctx := context.Background()
	ctx = contextutil.WithRequestID(ctx, "rid-1")
	ctx = contextutil.WithUserID(ctx, "u-1")
	ctx = contextutil.WithRole(ctx, "HOD")

	md := contextutil.ExtractMetadata(ctx)
	assert.Equal(t, contextutil.Metadata{RequestID: "rid-1", UserID: "u-1", Role: "HOD"}, md)
}

func TestGetLogger(t *testing.T) {
	t.Run("from context", func(t *testing.T) {
		l := zap.NewExample()
		ctx := contextutil.WithLogger(context.Background(), l)
		assert.Same(t, l, contextutil.GetLogger(ctx, nil))
	})

	t.Run("fallback", func(t *testing.T) {
		def := zap.NewExample()
		assert.Same(t, def, contextutil.GetLogger(context.Background(), def))
		assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))
	})
}
