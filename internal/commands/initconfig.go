package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"moodchart/internal/providers"
	"moodchart/internal/structures"
)

func addInitConfig(topLevel *cobra.Command) {
	force := false

	cmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write a default config file.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no config path given")
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}

			conf := providers.DefaultConfig()
			if conf.Storage.DataDir, err = providers.DefaultDataDir(); err != nil {
				return err
			}
			data, err := MarshalConfig(conf)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(color.Output, "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	topLevel.AddCommand(cmd)
}

// MarshalConfig renders conf as YAML with the keys the config provider reads.
func MarshalConfig(conf *structures.Config) ([]byte, error) {
	return yaml.Marshal(conf)
}
