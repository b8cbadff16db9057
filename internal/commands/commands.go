package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"moodchart/internal"
	"moodchart/internal/di"
	"moodchart/internal/journalerr"
	"moodchart/internal/providers"
	"moodchart/internal/structures"
)

type rootOptions struct {
	flags structures.CliFlags
	key   string
}

func New() *cobra.Command {
	ro := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "moodchart",
		Short:        "Mood journal with encrypted saves, rotated backups and statistics.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	defaultConfig := ""
	if dir, err := providers.DefaultDataDir(); err == nil {
		defaultConfig = filepath.Join(dir, "config.yaml")
	}
	cmd.PersistentFlags().StringVarP(&ro.flags.ConfigPath, "config", "c", defaultConfig, "path to the YAML config file")
	cmd.PersistentFlags().BoolVar(&ro.flags.DebugMode, "debug", false, "also log to stderr")
	cmd.PersistentFlags().StringVarP(&ro.key, "key", "k", "", "passphrase for an encrypted save file")

	AddCommands(cmd, ro)
	return cmd
}

func AddCommands(topLevel *cobra.Command, ro *rootOptions) {
	addInitConfig(topLevel)
	addStats(topLevel, ro)
	addList(topLevel, ro)
	addAdd(topLevel, ro)
	addEdit(topLevel, ro)
	addRemoveLast(topLevel, ro)
	addBackup(topLevel, ro)
	addPrune(topLevel, ro)
	addExport(topLevel, ro)
	addEncrypt(topLevel, ro)
	addDecrypt(topLevel, ro)
	addOptions(topLevel, ro)
}

// withApp builds the application, loads the journal, runs fn and persists on the way out.
// Errors collected by the journal are printed to stderr.
func (ro *rootOptions) withApp(fn func(app *internal.App) error) error {
	app, err := di.InitApp(&ro.flags)
	if err != nil {
		return fmt.Errorf("unable to start (create a config with `moodchart init-config`): %w", err)
	}

	runErr := ro.start(app)
	if runErr == nil {
		runErr = fn(app)
	}
	closeErr := app.Close()
	printErrors(app.Journal.Errors())

	if runErr != nil {
		return runErr
	}
	return closeErr
}

func (ro *rootOptions) start(app *internal.App) error {
	err := app.Start()
	if _, ok := journalerr.AsEncrypted(err); ok {
		if ro.key == "" {
			return errors.New("the save file is encrypted, pass its passphrase with --key")
		}
		return app.Unlock(ro.key)
	}
	return err
}

func printErrors(errs []*journalerr.Error) {
	if len(errs) == 0 {
		return
	}
	red := color.New(color.FgRed, color.Bold)
	faint := color.New(color.Faint)

	_, _ = red.Fprintln(color.Error, "Errors:")
	for _, e := range errs {
		_, _ = fmt.Fprintf(color.Error, "  %s %s\n", red.Sprint(e.Kind.String()), e.Kind.Explanation())
		if hint := remediationHint(e.Kind.Remediation()); hint != "" {
			_, _ = faint.Fprintf(color.Error, "    %s\n", hint)
		}
	}
}

func remediationHint(r journalerr.Remediation) string {
	switch r {
	case journalerr.RemediationResetBackupPath:
		return "reset the backup path with `moodchart options --backup-path ./backups/`"
	case journalerr.RemediationIgnoreHenceforth:
		return "this error can be ignored"
	case journalerr.RemediationReenterKeys:
		return "re-enter the passphrase with `moodchart encrypt --key ... --confirm ...`"
	}
	return ""
}
