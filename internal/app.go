package internal

import (
	"errors"
	"time"

	"moodchart/internal/backup"
	"moodchart/internal/export"
	"moodchart/internal/journalerr"
	"moodchart/internal/models"
	"moodchart/internal/providers"
	"moodchart/internal/services"
	"moodchart/internal/structures"
)

// ErrNotLoaded is returned by operations that need a loaded journal.
var ErrNotLoaded = errors.New("journal is not loaded")

type App struct {
	Conf     *structures.Config
	Logger   providers.Logger
	Journal  services.JournalServiceInterface
	Backups  backup.ManagerInterface
	Exporter *export.CsvExporter

	metrics providers.MetricsProviderInterface
	now     func() time.Time
	loaded  bool
}

func NewApp(conf *structures.Config, logger providers.Logger, journal *services.JournalService, backups *backup.Manager, exporter *export.CsvExporter, metrics providers.MetricsProviderInterface) *App {
	return &App{
		Conf:     conf,
		Logger:   logger,
		Journal:  journal,
		Backups:  backups,
		Exporter: exporter,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Start loads the journal and runs a due automatic backup. An encrypted save file is
// reported with the encrypted-save-file signal; call Unlock with the passphrase.
func (a *App) Start() error {
	a.Logger.Infof(providers.TypeApp, "Starting %s", a.Conf.AppName)

	err := a.Journal.Load()
	if err != nil {
		if _, ok := journalerr.AsEncrypted(err); !ok {
			a.Logger.Errorf(providers.TypeApp, "Restore error: %s", err)
		}
		return err
	}

	a.loaded = true
	a.autoBackup()
	return nil
}

// Unlock decrypts a pending encrypted save file and then finishes startup.
func (a *App) Unlock(key string) error {
	if err := a.Journal.Decrypt(key); err != nil {
		return err
	}
	a.loaded = true
	a.autoBackup()
	return nil
}

func (a *App) Loaded() bool {
	return a.loaded
}

func (a *App) policy() models.BackupPolicy {
	return a.Journal.Session().ProgramOptions.BackupPolicy()
}

func (a *App) autoBackup() {
	session := a.Journal.Session()
	now := a.now()
	if !backup.AutoBackupDue(session.ProgramOptions, session.LastBackupDate, now) {
		return
	}

	record, err := a.Backups.CreateBackup(a.policy(), false)
	if err != nil {
		a.Logger.Errorf(providers.TypeBackup, "Automatic backup failed: %s", err)
		return
	}
	a.Journal.MarkBackup(now)
	a.Logger.Infof(providers.TypeBackup, "Automatic backup %s created", record.Name)

	if _, err := a.Backups.Prune(a.policy()); err != nil {
		a.Logger.Errorf(providers.TypeBackup, "Backup pruning failed: %s", err)
	}
}

// Backup creates an archive on demand and records the backup date.
func (a *App) Backup(manual bool) (models.BackupRecord, error) {
	if !a.loaded {
		return models.BackupRecord{}, ErrNotLoaded
	}
	record, err := a.Backups.CreateBackup(a.policy(), manual)
	if err != nil {
		return record, err
	}
	a.Journal.MarkBackup(a.now())
	return record, nil
}

// BackupAsync is Backup on a goroutine. The backup date is recorded when the result is read.
func (a *App) BackupAsync(manual bool) (<-chan backup.Result, error) {
	if !a.loaded {
		return nil, ErrNotLoaded
	}
	return a.Backups.CreateAsync(a.policy(), manual), nil
}

func (a *App) Prune() (int, error) {
	return a.Backups.Prune(a.policy())
}

func (a *App) ListBackups() ([]models.BackupRecord, error) {
	return a.Backups.List(a.policy())
}

func (a *App) Export(path string) error {
	if !a.loaded {
		return ErrNotLoaded
	}
	return a.Exporter.Export(path, a.Journal.Entries())
}

// Close persists a loaded journal and flushes metrics. A journal that failed to load is
// never written back, so an unreadable save file is not replaced by an empty one.
func (a *App) Close() error {
	var err error
	if a.loaded {
		err = a.Journal.Save()
	}
	if flushErr := a.metrics.Flush(); flushErr != nil {
		a.Logger.Warnf(providers.TypeApp, "Unable to flush metrics: %s", flushErr)
	}
	a.Logger.Infof(providers.TypeApp, "gracefully stopped")
	a.Logger.Close()
	return err
}
