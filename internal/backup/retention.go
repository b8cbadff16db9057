package backup

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gobwas/glob"

	"moodchart/internal/journalerr"
	"moodchart/internal/models"
	"moodchart/internal/providers"
)

func (m *Manager) patterns() (all glob.Glob, manual glob.Glob, err error) {
	ext := "." + m.conf.Extension
	all, err = glob.Compile(glob.QuoteMeta(m.conf.Prefix) + "*" + glob.QuoteMeta(ext))
	if err != nil {
		return nil, nil, err
	}
	manual, err = glob.Compile(glob.QuoteMeta(m.conf.Prefix) + "*" + glob.QuoteMeta(m.conf.ManualSuffix+ext))
	if err != nil {
		return nil, nil, err
	}
	return all, manual, nil
}

// List returns every archive in the policy directory, manual ones included, oldest first.
// A missing directory is an empty list.
func (m *Manager) List(policy models.BackupPolicy) ([]models.BackupRecord, error) {
	dir := m.Dir(policy)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, journalerr.WithPath(journalerr.KindBackupIO, dir, err)
	}

	all, manual, err := m.patterns()
	if err != nil {
		return nil, journalerr.New(journalerr.KindBackupIO, err)
	}

	var records []models.BackupRecord
	for _, entry := range entries {
		if entry.IsDir() || !all.Match(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			m.logger.Warnf(providers.TypeBackup, "Unable to stat backup %s: %s", entry.Name(), err)
			continue
		}
		isManual := manual.Match(entry.Name())
		records = append(records, models.BackupRecord{
			Name:      entry.Name(),
			Path:      filepath.Join(dir, entry.Name()),
			Date:      m.parseDate(entry.Name(), isManual),
			Manual:    isManual,
			CreatedAt: info.ModTime(),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// ListStale returns automatic archives older than AgeKeepDays full days, oldest first.
// A negative AgeKeepDays disables listing.
func (m *Manager) ListStale(policy models.BackupPolicy) ([]models.BackupRecord, error) {
	if policy.AgeKeepDays < 0 {
		return nil, nil
	}

	records, err := m.List(policy)
	if err != nil {
		return nil, err
	}

	now := m.now()
	stale := records[:0]
	for _, r := range records {
		if r.Manual {
			continue
		}
		if fullDays(now.Sub(r.CreatedAt)) > policy.AgeKeepDays {
			stale = append(stale, r)
		}
	}
	return stale, nil
}

// Prune removes the oldest stale archives until KeepCount remain. Nothing is removed
// unless the stale count exceeds KeepCount, and a negative KeepCount disables pruning.
func (m *Manager) Prune(policy models.BackupPolicy) (int, error) {
	if policy.KeepCount < 0 {
		return 0, nil
	}

	stale, err := m.ListStale(policy)
	if err != nil {
		return 0, err
	}
	if len(stale) <= policy.KeepCount {
		return 0, nil
	}

	removed := 0
	for _, r := range stale[:len(stale)-policy.KeepCount] {
		if err := os.Remove(r.Path); err != nil {
			m.metrics.AddBackupsPruned(removed)
			return removed, journalerr.WithPath(journalerr.KindBackupIO, r.Path, err)
		}
		m.logger.Infof(providers.TypeBackup, "Removed stale backup %s", r.Path)
		removed++
	}
	m.metrics.AddBackupsPruned(removed)
	return removed, nil
}

// parseDate reads the calendar date from an archive name. Foreign names give the zero time.
func (m *Manager) parseDate(name string, manual bool) time.Time {
	s := strings.TrimPrefix(name, m.conf.Prefix)
	s = strings.TrimSuffix(s, "."+m.conf.Extension)
	if manual {
		s = strings.TrimSuffix(s, m.conf.ManualSuffix)
	}
	t, err := time.ParseInLocation("1-2-2006", s, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

func fullDays(d time.Duration) int {
	return int(d / (24 * time.Hour))
}
