package cmd

import (
	"fmt"

	"github.com/qawatake/md2markup/internal/config"
	"github.com/qawatake/md2markup/internal/derrors"
	"github.com/qawatake/md2markup/internal/pkg/utils"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create " + config.FileName + " with default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer derrors.Wrap(&err)

		if utils.FileExists(config.FileName) && !initForce {
			return fmt.Errorf("%s already exists, use --force to overwrite it", config.FileName)
		}

		data, err := config.Default().YAML()
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		if err := utils.WriteText(config.FileName, string(data)); err != nil {
			return fmt.Errorf("failed to write %s: %w", config.FileName, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
}
