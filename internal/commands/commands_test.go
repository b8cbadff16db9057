package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodchart/internal/models"
	"moodchart/internal/providers"
	"moodchart/internal/structures"
)

func writeTestConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	conf := providers.DefaultConfig()
	conf.Storage.DataDir = filepath.Join(dir, "data")
	data, err := MarshalConfig(conf)
	require.NoError(t, err)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path, conf.Storage.DataDir
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	cmd := New()
	cmd.SetArgs(args)
	cmd.SetOut(&nopWriter{})
	cmd.SetErr(&nopWriter{})
	return cmd.Execute()
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestMarshalConfig_RoundTrip(t *testing.T) {
	path, dataDir := writeTestConfig(t)

	conf, err := providers.NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, dataDir, conf.Storage.DataDir)
	assert.Equal(t, "happy_chart_backup_", conf.Backup.Prefix)
	assert.Equal(t, "random", conf.Encryption.NonceMode)
	assert.Equal(t, dataDir, conf.Logger.Dir)
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, run(t, "init-config", path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "prefix: happy_chart_backup_")
	assert.Contains(t, string(data), "nonceMode: random")

	assert.Error(t, run(t, "init-config", path), "refuses to overwrite")
	assert.NoError(t, run(t, "init-config", "--force", path))
}

func TestCommands_AddListStatsRemove(t *testing.T) {
	path, dataDir := writeTestConfig(t)

	require.NoError(t, run(t, "--config", path, "add", "-r", "80", "--note", "monday", "--date", "2024-05-06 09:00", "-m", "happ", "-a", "run"))
	require.NoError(t, run(t, "--config", path, "add", "-r", "40", "--date", "2024-05-07"))
	require.NoError(t, run(t, "--config", path, "list"))
	require.NoError(t, run(t, "--config", path, "stats"))
	require.NoError(t, run(t, "--config", path, "stats", "--json"))
	require.NoError(t, run(t, "--config", path, "edit", "1", "--note", "tuesday"))

	data, err := os.ReadFile(filepath.Join(dataDir, "happy_chart_save.ser"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"note":"monday"`)
	assert.Contains(t, string(data), `"note":"tuesday"`)
	assert.Contains(t, string(data), `"mood_tags":["Happy"]`)

	require.NoError(t, run(t, "--config", path, "remove-last"))
	data, err = os.ReadFile(filepath.Join(dataDir, "happy_chart_save.ser"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "tuesday")

	assert.Error(t, run(t, "--config", path, "add", "-r", "1", "-m", "no-such-mood"))
	assert.Error(t, run(t, "--config", path, "edit", "7", "--note", "x"))
}

func TestCommands_BackupAndExport(t *testing.T) {
	path, dataDir := writeTestConfig(t)
	require.NoError(t, run(t, "--config", path, "add", "-r", "55"))

	require.NoError(t, run(t, "--config", path, "backup"))
	require.NoError(t, run(t, "--config", path, "backup", "--auto"))
	require.NoError(t, run(t, "--config", path, "backup", "--list"))
	require.NoError(t, run(t, "--config", path, "prune"))

	archives, err := filepath.Glob(filepath.Join(dataDir, "backups", "happy_chart_backup_*.zip"))
	require.NoError(t, err)
	assert.Len(t, archives, 2)

	out := filepath.Join(t.TempDir(), "journal.csv")
	require.NoError(t, run(t, "--config", path, "export", out))
	assert.FileExists(t, out)
}

func TestCommands_EncryptDecrypt(t *testing.T) {
	path, dataDir := writeTestConfig(t)
	require.NoError(t, run(t, "--config", path, "add", "-r", "55", "--note", "private"))

	assert.Error(t, run(t, "--config", path, "--key", "abcd", "encrypt", "--confirm", "abce"))
	require.NoError(t, run(t, "--config", path, "--key", "abcd", "encrypt", "--confirm", "abcd"))

	data, err := os.ReadFile(filepath.Join(dataDir, "happy_chart_save.ser"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "private")

	assert.Error(t, run(t, "--config", path, "list"), "needs --key")
	assert.Error(t, run(t, "--config", path, "--key", "wrong", "list"))
	require.NoError(t, run(t, "--config", path, "--key", "abcd", "decrypt"))

	data, err = os.ReadFile(filepath.Join(dataDir, "happy_chart_save.ser"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "private")
}

func TestCommands_Options(t *testing.T) {
	path, dataDir := writeTestConfig(t)
	require.NoError(t, run(t, "--config", path, "options", "--streak-leniency", "48", "--auto-backup-days", "3"))

	data, err := os.ReadFile(filepath.Join(dataDir, "happy_chart_last_session.ser"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"streak_leniency":48`)
	assert.Contains(t, string(data), `"auto_backup_days":3`)
	assert.Contains(t, string(data), `"backup_age_keep_days":-1`, "untouched options keep their values")
}

func TestParseHelpers(t *testing.T) {
	ts, err := parseDate("2024-05-06 09:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 6, 9, 30, 0, 0, time.Local), ts)

	_, err = parseDate("yesterday")
	assert.Error(t, err)

	moods, err := parseMoods([]string{"GRATE", "bored"})
	require.NoError(t, err)
	assert.Equal(t, []models.MoodTag{models.MoodGrateful, models.MoodBored}, moods)
}
