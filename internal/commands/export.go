package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"moodchart/internal"
)

func addExport(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "export <file.csv>",
		Short: "Export the journal as CSV.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.withApp(func(app *internal.App) error {
				if err := app.Export(args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(color.Output, "Exported %d entries to %s\n", len(app.Journal.Entries()), args[0])
				return nil
			})
		},
	}

	topLevel.AddCommand(cmd)
}
