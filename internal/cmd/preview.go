package cmd

import (
	"fmt"

	tty "github.com/mattn/go-tty"
	"github.com/qawatake/md2markup/internal/derrors"
	fm "github.com/qawatake/md2markup/internal/pkg/markdown"
	"github.com/qawatake/md2markup/internal/pkg/utils"
	"github.com/qawatake/md2markup/internal/preview"
	"github.com/spf13/cobra"
)

var (
	previewWidth int
	previewStyle string
)

var previewCmd = &cobra.Command{
	Use:   "preview <input.md>",
	Short: "Show the Markdown and its converted markup side by side",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer derrors.Wrap(&err)

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := utils.CheckInputs(args); err != nil {
			return err
		}
		source, err := utils.ReadText(args[0])
		if err != nil {
			return err
		}
		if cfg.StripFrontMatter {
			source = fm.StripFrontMatter(source)
		}

		width := previewWidth
		if width == 0 {
			width = terminalWidth()
		}
		out, err := preview.Render(source, converterFor(cfg).Convert(source), preview.Options{
			Width: width,
			Style: previewStyle,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().IntVar(&previewWidth, "width", 0, fmt.Sprintf("total width (default terminal width, or %d)", preview.DefaultWidth))
	previewCmd.Flags().StringVar(&previewStyle, "style", "", "glamour style such as dark, light or notty (default auto)")
}

// terminalWidth returns the width of the controlling terminal, or
// preview.DefaultWidth when there is none.
func terminalWidth() int {
	t, err := tty.Open()
	if err != nil {
		return preview.DefaultWidth
	}
	defer t.Close()

	w, _, err := t.Size()
	if err != nil || w <= 0 {
		return preview.DefaultWidth
	}
	return w
}
