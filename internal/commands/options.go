package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"moodchart/internal"
	"moodchart/internal/models"
)

func addOptions(topLevel *cobra.Command, ro *rootOptions) {
	set := models.DefaultProgramOptions()

	cmd := &cobra.Command{
		Use:   "options",
		Short: "Show or change the options stored in the session file.",
		Example: `
moodchart options
moodchart options --streak-leniency 48 --auto-backup-days 7 --backup-keep-days 30 --backup-keep-count 10
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			return ro.withApp(func(app *internal.App) error {
				app.Journal.UpdateOptions(func(o *models.ProgramOptions) {
					if flags.Changed("streak-leniency") {
						o.StreakLeniency = set.StreakLeniency
					}
					if flags.Changed("show-streak") {
						o.ShowStreak = set.ShowStreak
					}
					if flags.Changed("backup-path") {
						o.BackupSavePath = set.BackupSavePath
					}
					if flags.Changed("auto-backup-days") {
						o.AutoBackupDays = set.AutoBackupDays
					}
					if flags.Changed("backup-keep-days") {
						o.BackupAgeKeepDays = set.BackupAgeKeepDays
					}
					if flags.Changed("backup-keep-count") {
						o.NumberOfKeptBackups = set.NumberOfKeptBackups
					}
				})
				printOptions(app.Journal.Session().ProgramOptions)
				return nil
			})
		},
	}
	cmd.Flags().Uint32Var(&set.StreakLeniency, "streak-leniency", set.StreakLeniency, "hours allowed between entries of a streak")
	cmd.Flags().BoolVar(&set.ShowStreak, "show-streak", set.ShowStreak, "show the longest streak in stats")
	cmd.Flags().StringVar(&set.BackupSavePath, "backup-path", set.BackupSavePath, "backup directory, relative to the data dir unless absolute")
	cmd.Flags().IntVar(&set.AutoBackupDays, "auto-backup-days", set.AutoBackupDays, "days between automatic backups, negative disables")
	cmd.Flags().IntVar(&set.BackupAgeKeepDays, "backup-keep-days", set.BackupAgeKeepDays, "days before an automatic backup is stale, negative disables pruning")
	cmd.Flags().IntVar(&set.NumberOfKeptBackups, "backup-keep-count", set.NumberOfKeptBackups, "stale backups to keep, negative disables pruning")

	topLevel.AddCommand(cmd)
}

func printOptions(o models.ProgramOptions) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("streak leniency", fmt.Sprintf("%dh", o.StreakLeniency))
	tbl.AddRow("show streak", o.ShowStreak)
	tbl.AddRow("backup path", o.BackupSavePath)
	tbl.AddRow("auto backup days", o.AutoBackupDays)
	tbl.AddRow("backup keep days", o.BackupAgeKeepDays)
	tbl.AddRow("backup keep count", o.NumberOfKeptBackups)
	tbl.AddRow("encrypt save file", o.EncryptSaveFile)
	_, _ = fmt.Fprintln(color.Output, tbl)
}
