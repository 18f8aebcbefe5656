package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_SchreibtInDatei(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modual.log")

	logger, cleanup, err := New(Options{Level: "info", File: path})
	require.NoError(t, err)

	logger.Info("server wird gestartet", zap.String("adresse", ":8081"))
	logger.Debug("unterdrückt")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"server wird gestartet"`)
	assert.Contains(t, string(data), `"adresse":":8081"`)
	assert.NotContains(t, string(data), "unterdrückt")
}

func TestNew_Level(t *testing.T) {
	logger, cleanup, err := New(Options{Level: "warn"})
	require.NoError(t, err)
	defer cleanup()

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_StandardIstInfo(t *testing.T) {
	logger, cleanup, err := New(Options{})
	require.NoError(t, err)
	defer cleanup()

	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_UngueltigesLevel(t *testing.T) {
	_, _, err := New(Options{Level: "laut"})
	assert.Error(t, err)
}
