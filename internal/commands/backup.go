package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"moodchart/internal"
)

func addBackup(topLevel *cobra.Command, ro *rootOptions) {
	auto := false
	list := false

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create a backup archive of the save and session files.",
		Long: `Create a backup archive of the save and session files.

Backups made here are manual and are never pruned. Use --auto to create one that
counts towards retention like the automatic startup backups.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.withApp(func(app *internal.App) error {
				if list {
					return listBackups(app)
				}
				ch, err := app.BackupAsync(!auto)
				if err != nil {
					return err
				}
				result := <-ch
				if result.Err != nil {
					return result.Err
				}
				app.Journal.MarkBackup(result.Record.CreatedAt)
				_, _ = fmt.Fprintf(color.Output, "Created %s\n", result.Record.Path)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&auto, "auto", false, "create an automatic (prunable) backup")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list existing backups instead")

	topLevel.AddCommand(cmd)
}

func listBackups(app *internal.App) error {
	records, err := app.ListBackups()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		_, _ = fmt.Fprintln(color.Output, "No backups.")
		return nil
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Name"), bold.Sprint("Kind"), bold.Sprint("Created"))
	for _, r := range records {
		kind := "auto"
		if r.Manual {
			kind = "manual"
		}
		tbl.AddRow(r.Name, kind, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	return nil
}

func addPrune(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove stale automatic backups beyond the configured number to keep.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.withApp(func(app *internal.App) error {
				removed, err := app.Prune()
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(color.Output, "Removed %d backup(s)\n", removed)
				return nil
			})
		},
	}

	topLevel.AddCommand(cmd)
}
