package models

import "time"

// BackupPolicy controls where archives go and how the retention sweep behaves.
// A negative AgeKeepDays disables stale listing entirely; a negative KeepCount disables pruning.
type BackupPolicy struct {
	Dir         string
	AgeKeepDays int
	KeepCount   int
}

type BackupRecord struct {
	Name      string
	Path      string
	Date      time.Time
	Manual    bool
	CreatedAt time.Time
}
