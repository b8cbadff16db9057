package models

import "time"

type ProgramOptions struct {
	BackupSavePath string `json:"backup_save_path"`
	// AutoBackupDays is the number of full days between automatic backups; negative disables.
	AutoBackupDays int `json:"auto_backup_days"`
	// BackupAgeKeepDays is how many full days must elapse before an automatic backup is stale.
	BackupAgeKeepDays int `json:"backup_age_keep_days"`
	// NumberOfKeptBackups is the stale count that must be exceeded before pruning starts.
	NumberOfKeptBackups           int    `json:"number_of_kept_backups"`
	ShowStreak                    bool   `json:"show_streak"`
	StreakLeniency                uint32 `json:"streak_leniency"`
	DisableUpdateListErrorShowing bool   `json:"disable_update_list_error_showing"`
	EncryptSaveFile               bool   `json:"encrypt_save_file"`
	UpdateModulus                 int    `json:"update_modulus"`
	DoOpeningAnimation            bool   `json:"do_opening_animation"`
}

func DefaultProgramOptions() ProgramOptions {
	return ProgramOptions{
		BackupSavePath:      "./backups/",
		AutoBackupDays:      -1,
		BackupAgeKeepDays:   -1,
		NumberOfKeptBackups: -1,
		ShowStreak:          true,
		StreakLeniency:      36,
		UpdateModulus:       -1,
		DoOpeningAnimation:  true,
	}
}

func (o ProgramOptions) BackupPolicy() BackupPolicy {
	return BackupPolicy{
		Dir:         o.BackupSavePath,
		AgeKeepDays: o.BackupAgeKeepDays,
		KeepCount:   o.NumberOfKeptBackups,
	}
}

// Session is the metadata written next to the save file on every save.
type Session struct {
	WindowSize         [2]float32     `json:"window_size"`
	ProgramOptions     ProgramOptions `json:"program_options"`
	OpenModulus        int            `json:"open_modulus"`
	LastOpenDate       time.Time      `json:"last_open_date"`
	LastVersionChecked *string        `json:"last_version_checked"`
	LastBackupDate     time.Time      `json:"last_backup_date"`
}

func DefaultSession(now time.Time) *Session {
	return &Session{
		WindowSize:     [2]float32{800, 600},
		ProgramOptions: DefaultProgramOptions(),
		LastOpenDate:   now,
		LastBackupDate: now,
	}
}
