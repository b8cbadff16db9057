package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"moodchart/internal"
	"moodchart/internal/models"
)

func addEncrypt(topLevel *cobra.Command, ro *rootOptions) {
	confirm := ""

	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt the save file with the --key passphrase.",
		Example: `
moodchart encrypt --key "my passphrase" --confirm "my passphrase"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.withApp(func(app *internal.App) error {
				app.Journal.UpdateOptions(func(o *models.ProgramOptions) { o.EncryptSaveFile = true })
				app.Journal.SetKeys(ro.key, confirm)
				if err := app.Journal.Save(); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(color.Output, "The save file is now encrypted.")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&confirm, "confirm", "", "the passphrase again")

	topLevel.AddCommand(cmd)
}

func addDecrypt(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Store the save file unencrypted from now on. Requires --key.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.withApp(func(app *internal.App) error {
				app.Journal.UpdateOptions(func(o *models.ProgramOptions) { o.EncryptSaveFile = false })
				if err := app.Journal.Save(); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(color.Output, "The save file is no longer encrypted.")
				return nil
			})
		},
	}

	topLevel.AddCommand(cmd)
}
