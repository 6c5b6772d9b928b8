package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestInit_Level(t *testing.T) {
	Init("debug")
	assert.True(t, Logger().Core().Enabled(zapcore.DebugLevel))

	Init("nivel-raro")
	assert.False(t, Logger().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, Logger().Core().Enabled(zapcore.InfoLevel))
	assert.NotNil(t, Sugar())
}
