// pkg/logger/logger_test.go

package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zap.DebugLevel, ParseLogLevel("debug"))
	assert.Equal(t, zap.DebugLevel, ParseLogLevel("DEBUG"))
	assert.Equal(t, zap.WarnLevel, ParseLogLevel("warn"))
	assert.Equal(t, zap.ErrorLevel, ParseLogLevel("ERROR"))
	assert.Equal(t, zap.InfoLevel, ParseLogLevel(""))
	assert.Equal(t, zap.InfoLevel, ParseLogLevel("nonsense"))
}

func TestPlatformLogPaths_NeverEmpty(t *testing.T) {
	paths := PlatformLogPaths()
	require.NotEmpty(t, paths)
	for _, p := range paths {
		assert.NotEmpty(t, p)
	}
}

func TestFallbackLogger(t *testing.T) {
	l := NewFallbackLogger()
	require.NotNil(t, l)
	l.Info("fallback logger works")
}
