package backup

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodchart/internal/journalerr"
	"moodchart/internal/models"
	"moodchart/internal/providers"
	"moodchart/internal/testutil"
)

type fixture struct {
	manager *Manager
	saver   *testutil.MockSaver
	metrics *testutil.MockMetrics
	dataDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conf := providers.DefaultConfig()
	conf.Storage.DataDir = t.TempDir()

	f := &fixture{
		saver:   &testutil.MockSaver{},
		metrics: &testutil.MockMetrics{},
		dataDir: conf.Storage.DataDir,
	}
	f.saver.OnSave = func() error {
		if err := os.WriteFile(filepath.Join(f.dataDir, conf.Storage.SaveFile), []byte(`[]`), 0644); err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(f.dataDir, conf.Storage.SessionFile), []byte(`{"open_modulus":1}`), 0644)
	}
	f.manager = NewManager(conf, f.saver, &testutil.MockLogger{}, f.metrics)
	f.manager.now = func() time.Time { return time.Date(2024, 3, 7, 15, 4, 5, 0, time.Local) }
	return f
}

func (f *fixture) policy() models.BackupPolicy {
	return models.BackupPolicy{Dir: "backups", AgeKeepDays: 30, KeepCount: 2}
}

func TestManager_FileName(t *testing.T) {
	f := newFixture(t)
	day := time.Date(2024, 3, 7, 23, 0, 0, 0, time.Local)

	assert.Equal(t, "happy_chart_backup_3-7-2024.zip", f.manager.FileName(day, false))
	assert.Equal(t, "happy_chart_backup_3-7-2024_manual.zip", f.manager.FileName(day, true))
	assert.Equal(t, "happy_chart_backup_12-25-2023.zip", f.manager.FileName(time.Date(2023, 12, 25, 0, 0, 0, 0, time.Local), false))
}

func TestManager_Dir(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, filepath.Join(f.dataDir, "backups"), f.manager.Dir(models.BackupPolicy{Dir: "./backups/"}))
	assert.Equal(t, filepath.Join(f.dataDir, "backups"), f.manager.Dir(models.BackupPolicy{}))
	abs := filepath.Join(t.TempDir(), "elsewhere")
	assert.Equal(t, abs, f.manager.Dir(models.BackupPolicy{Dir: abs}))
}

func TestManager_CreateBackup(t *testing.T) {
	f := newFixture(t)

	record, err := f.manager.CreateBackup(f.policy(), false)
	require.NoError(t, err)

	assert.Equal(t, 1, f.saver.Calls)
	assert.Equal(t, "happy_chart_backup_3-7-2024.zip", record.Name)
	assert.False(t, record.Manual)
	assert.Equal(t, time.Date(2024, 3, 7, 0, 0, 0, 0, time.Local), record.Date)
	assert.False(t, record.CreatedAt.IsZero())
	assert.Equal(t, 1, f.metrics.Backups)

	members, err := ReadMembers(record.Path)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{
		"happy_chart_save.ser":         []byte(`[]`),
		"happy_chart_last_session.ser": []byte(`{"open_modulus":1}`),
	}, members)

	_, err = os.Stat(record.Path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestManager_CreateBackup_IncludesLegacySave(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.dataDir, "save.ser"), []byte(`[{"rating":1.0,"date":1,"note":""}]`), 0644))

	record, err := f.manager.CreateBackup(f.policy(), true)
	require.NoError(t, err)
	assert.True(t, record.Manual)
	assert.Equal(t, 1, f.metrics.ManualBackups)

	members, err := ReadMembers(record.Path)
	require.NoError(t, err)
	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"happy_chart_last_session.ser", "happy_chart_save.ser", "save.ser"}, names)
}

func TestManager_CreateBackup_Zstd(t *testing.T) {
	f := newFixture(t)
	f.manager.conf.Method = MethodZstd
	f.manager.conf.Level = 3

	record, err := f.manager.CreateBackup(f.policy(), false)
	require.NoError(t, err)

	rc, err := OpenArchive(record.Path)
	require.NoError(t, err)
	defer rc.Close()
	require.Len(t, rc.File, 2)
	assert.Equal(t, uint16(93), rc.File[0].Method)

	members, err := ReadMembers(record.Path)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), members["happy_chart_save.ser"])
}

func TestManager_CreateBackup_SaveFails(t *testing.T) {
	f := newFixture(t)
	saveErr := journalerr.KeyTooShort(true, false)
	f.saver.OnSave = func() error { return saveErr }

	_, err := f.manager.CreateBackup(f.policy(), false)
	assert.Same(t, saveErr, err)

	_, statErr := os.Stat(f.manager.Dir(f.policy()))
	assert.True(t, os.IsNotExist(statErr), "no backup dir should be created")
	assert.Equal(t, 0, f.metrics.Backups)
}

func TestManager_CreateBackup_MissingSaveFile(t *testing.T) {
	f := newFixture(t)
	f.saver.OnSave = nil

	_, err := f.manager.CreateBackup(f.policy(), false)
	var je *journalerr.Error
	require.True(t, errors.As(err, &je))
	assert.Equal(t, journalerr.KindBackupIO, je.Kind)

	entries, _ := os.ReadDir(f.manager.Dir(f.policy()))
	assert.Empty(t, entries, "failed archive must not be left behind")
}

func TestManager_CreateBackup_UnknownMethod(t *testing.T) {
	f := newFixture(t)
	f.manager.conf.Method = "lz4"

	_, err := f.manager.CreateBackup(f.policy(), false)
	kind, _ := journalerr.KindOf(err)
	assert.Equal(t, journalerr.KindBackupIO, kind)
}

func TestManager_CreateAsync(t *testing.T) {
	f := newFixture(t)

	select {
	case result := <-f.manager.CreateAsync(f.policy(), true):
		require.NoError(t, result.Err)
		assert.Equal(t, "happy_chart_backup_3-7-2024_manual.zip", result.Record.Name)
	case <-time.After(5 * time.Second):
		t.Fatal("async backup did not finish")
	}
}

func TestManager_CreateAsync_ChannelClosed(t *testing.T) {
	f := newFixture(t)
	f.saver.OnSave = func() error { return errors.New("disk full") }

	ch := f.manager.CreateAsync(f.policy(), false)
	result := <-ch
	assert.EqualError(t, result.Err, "disk full")
	_, open := <-ch
	assert.False(t, open)
}

func TestAutoBackupDue(t *testing.T) {
	last := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	opts := models.DefaultProgramOptions()

	assert.False(t, AutoBackupDue(opts, last, last.AddDate(1, 0, 0)), "negative days disables")

	opts.AutoBackupDays = 3
	assert.False(t, AutoBackupDue(opts, last, last.Add(71*time.Hour)))
	assert.True(t, AutoBackupDue(opts, last, last.Add(72*time.Hour)))

	opts.AutoBackupDays = 0
	assert.True(t, AutoBackupDue(opts, last, last))
}
