package backup

import (
	"time"

	"moodchart/internal/models"
)

// Result is delivered once on the channel returned by CreateAsync.
type Result struct {
	Record models.BackupRecord
	Err    error
}

// CreateAsync runs CreateBackup on its own goroutine. The channel receives exactly one
// Result and is then closed.
func (m *Manager) CreateAsync(policy models.BackupPolicy, manual bool) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		record, err := m.CreateBackup(policy, manual)
		out <- Result{Record: record, Err: err}
	}()
	return out
}

// AutoBackupDue reports whether at least AutoBackupDays full days passed since lastBackup.
// A negative AutoBackupDays disables automatic backups.
func AutoBackupDue(opts models.ProgramOptions, lastBackup, now time.Time) bool {
	if opts.AutoBackupDays < 0 {
		return false
	}
	return fullDays(now.Sub(lastBackup)) >= opts.AutoBackupDays
}
