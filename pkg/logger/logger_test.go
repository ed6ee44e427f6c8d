package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestComponentAddsField(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := FromZap(zap.New(core)).Component("store")

	log.Warn("store corrupt", "path", "data/hackathons.json")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "store corrupt", entry.Message)
	assert.Equal(t, "store", entry.ContextMap()["component"])
	assert.Equal(t, "data/hackathons.json", entry.ContextMap()["path"])
}

func TestNew(t *testing.T) {
	for _, mode := range []string{"prod", "dev", ""} {
		l, err := New(mode)
		require.NoError(t, err, mode)
		l.Info("hello")
	}
}
