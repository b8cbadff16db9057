package providers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodchart/internal/structures"
)

func TestTypeEnum_String(t *testing.T) {
	assert.Equal(t, "app", TypeApp.String())
	assert.Equal(t, "storage", TypeStorage.String())
	assert.Equal(t, "backup", TypeBackup.String())
	assert.Equal(t, "crypto", TypeCrypto.String())
	assert.Equal(t, "stats", TypeStats.String())
}

func TestNewLogProvider_CreatesLogFile(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		AppName: "test",
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   dir,
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)

	logger.Infof(TypeApp, "test message %d", 1)
	logger.Debugf(TypeStorage, "filtered out")
	logger.Warnf(TypeBackup, "backup message")
	logger.Close()

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "test message 1")
	assert.Contains(t, string(data), `"type":"backup"`)
	assert.NotContains(t, string(data), "filtered out")
}

func TestNewLogProvider_InvalidDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   filepath.Join(blocker, "logs"),
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "loud",
			Mode:  0644,
			Dir:   t.TempDir(),
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}
