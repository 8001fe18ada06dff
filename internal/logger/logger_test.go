package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewNamed(t *testing.T) {
	a := NewNamed("keystore")
	require.NotNil(t, a)
	assert.NotPanics(t, func() { a.Debug("ready") })
	b := NewNamed("keystore")
	assert.Same(t, a, b)
	assert.NotSame(t, a, NewNamed("contract"))
}

func TestSetLevel(t *testing.T) {
	defer func() { require.NoError(t, SetLevel("info")) }()

	l := NewNamed("level-test")
	require.NoError(t, SetLevel("warn"))
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.WarnLevel))

	require.NoError(t, SetLevel("debug"))
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	assert.Error(t, SetLevel("loud"))
}
