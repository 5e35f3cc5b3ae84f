package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewFallsBackToInfoOnUnknownLevel(t *testing.T) {
	l, err := New("loud")
	require.NoError(t, err)

	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNewHonoursDebug(t *testing.T) {
	l, err := New("debug")
	require.NoError(t, err)

	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestGetNeverNil(t *testing.T) {
	assert.NotNil(t, Get())
	assert.NotNil(t, Session(Get(), "abc"))
}
