package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zip"

	"moodchart/internal/journalerr"
	"moodchart/internal/models"
	"moodchart/internal/persistence"
	"moodchart/internal/providers"
	"moodchart/internal/structures"
)

// Saver persists the in-memory journal to the canonical save path.
type Saver interface {
	Save() error
}

type ManagerInterface interface {
	CreateBackup(policy models.BackupPolicy, manual bool) (models.BackupRecord, error)
	CreateAsync(policy models.BackupPolicy, manual bool) <-chan Result
	ListStale(policy models.BackupPolicy) ([]models.BackupRecord, error)
	List(policy models.BackupPolicy) ([]models.BackupRecord, error)
	Prune(policy models.BackupPolicy) (int, error)
}

type Manager struct {
	paths   persistence.Paths
	dataDir string
	conf    structures.Backup
	saver   Saver
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	now     func() time.Time
}

func NewManager(conf *structures.Config, saver Saver, logger providers.Logger, metrics providers.MetricsProviderInterface) *Manager {
	return &Manager{
		paths:   persistence.PathsFromConfig(conf),
		dataDir: conf.Storage.DataDir,
		conf:    conf.Backup,
		saver:   saver,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// FileName builds <prefix><M>-<D>-<Y>[<suffix>].<ext> from the local calendar date of t.
func (m *Manager) FileName(t time.Time, manual bool) string {
	suffix := ""
	if manual {
		suffix = m.conf.ManualSuffix
	}
	return fmt.Sprintf("%s%d-%d-%d%s.%s", m.conf.Prefix, int(t.Month()), t.Day(), t.Year(), suffix, m.conf.Extension)
}

// Dir resolves a policy directory. Relative directories live under the data dir.
func (m *Manager) Dir(policy models.BackupPolicy) string {
	dir := policy.Dir
	if dir == "" {
		dir = models.DefaultProgramOptions().BackupSavePath
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(m.dataDir, dir)
}

// CreateBackup saves the journal, then archives the legacy save (if present), the save
// file and the session file under their canonical names. An archive of the same day and
// kind is replaced.
func (m *Manager) CreateBackup(policy models.BackupPolicy, manual bool) (models.BackupRecord, error) {
	start := time.Now()

	if err := m.saver.Save(); err != nil {
		m.logger.Errorf(providers.TypeBackup, "Backup aborted, save failed: %s", err)
		return models.BackupRecord{}, err
	}

	dir := m.Dir(policy)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return models.BackupRecord{}, journalerr.WithPath(journalerr.KindBackupIO, dir, err)
	}

	now := m.now()
	name := m.FileName(now, manual)
	path := filepath.Join(dir, name)

	if err := m.writeArchive(path); err != nil {
		m.logger.Errorf(providers.TypeBackup, "Unable to write backup %s: %s", path, err)
		return models.BackupRecord{}, journalerr.WithPath(journalerr.KindBackupIO, path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return models.BackupRecord{}, journalerr.WithPath(journalerr.KindBackupIO, path, err)
	}

	m.metrics.IncBackupsCreated(manual)
	m.metrics.ObserveBackupDuration(time.Since(start))
	m.logger.Infof(providers.TypeBackup, "Created backup %s (manual=%t)", path, manual)

	return models.BackupRecord{
		Name:      name,
		Path:      path,
		Date:      dateOf(now),
		Manual:    manual,
		CreatedAt: info.ModTime(),
	}, nil
}

func (m *Manager) writeArchive(path string) error {
	method, comp, err := archiveMethod(m.conf.Method, m.conf.Level)
	if err != nil {
		return err
	}

	members := []string{m.paths.Save, m.paths.Session}
	if _, err := os.Stat(m.paths.LegacySave); err == nil {
		members = append([]string{m.paths.LegacySave}, members...)
	}

	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	zw := newArchiveWriter(file, method, comp)
	for _, member := range members {
		if err = addMember(zw, member, method); err != nil {
			break
		}
	}
	if err == nil {
		err = zw.Close()
	}
	if err == nil {
		err = file.Sync()
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, path)
}

func addMember(zw *zip.Writer, path string, method uint16) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = filepath.Base(path)
	header.Method = method

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}

func dateOf(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
}
