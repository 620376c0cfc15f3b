package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	t.Run("returns logger stored on ctx", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		log := zap.New(core).Sugar()

		ctx := WithLogger(context.Background(), log)
		FromContext(ctx).Infow("projection fetched", "userID", "abc")

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		require.Equal(t, "projection fetched", entry.Message)
		require.Equal(t, "abc", entry.ContextMap()["userID"])
	})

	t.Run("falls back to global logger", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
		require.NotNil(t, FromContext(nil)) //nolint:staticcheck
	})
}
