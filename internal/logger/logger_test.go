package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		lvl, err := ParseLevel(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, lvl, tt.name)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestConsoleLevels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitWithFileConfig("warn", FileConfig{}, &buf))
	defer InitWithFileConfig("info", FileConfig{}, nil)

	Debug("debug message")
	Info("info message")
	Warn("warn message", zap.String("tag", "GEOS"))
	Error("error message")
	Sync()

	out := buf.String()
	assert.NotContains(t, out, "DEBUG")
	assert.NotContains(t, out, "INFO")
	assert.Contains(t, out, "WARN warn message")
	assert.Contains(t, out, `"tag": "GEOS"`)
	assert.Contains(t, out, "ERROR error message")
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mdxtool.log")
	cfg := DefaultFileConfig(path)
	cfg.Compress = false
	require.NoError(t, InitWithFileConfig("debug", cfg, nil))
	defer InitWithFileConfig("info", FileConfig{}, nil)

	Sugar.Debugf("decoded %d chunks", 20)
	Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "DEBUG")
	assert.Contains(t, string(content), "decoded 20 chunks")
}

func TestInitInvalidLevel(t *testing.T) {
	assert.Error(t, Init("loud", ""))
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/test.log")
	assert.Equal(t, FileConfig{
		Path:       "/tmp/test.log",
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
		Compress:   true,
	}, cfg)
}
