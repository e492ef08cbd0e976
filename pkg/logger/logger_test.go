package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xhad/textotest/pkg/logger"
	"go.uber.org/zap/zapcore"
)

func TestNew_Modes(t *testing.T) {
	tests := []struct {
		mode  string
		level zapcore.Level
	}{
		{"prod", zapcore.InfoLevel},
		{"quiet", zapcore.WarnLevel},
		{"", zapcore.WarnLevel},
		{"dev", zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			log, err := logger.New(tt.mode)
			require.NoError(t, err)
			assert.True(t, log.SugaredLogger.Desugar().Core().Enabled(tt.level))
			if tt.level > zapcore.DebugLevel {
				assert.False(t, log.SugaredLogger.Desugar().Core().Enabled(tt.level-1))
			}
		})
	}
}

func TestNewNop(t *testing.T) {
	log := logger.NewNop().With("document", "doc-1")

	assert.NotPanics(t, func() {
		log.Info("ignored", "count", 1)
		log.Sync()
	})
}
