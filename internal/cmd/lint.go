package cmd

import (
	"errors"
	"fmt"

	"github.com/qawatake/md2markup/internal/derrors"
	"github.com/qawatake/md2markup/internal/lint"
	"github.com/qawatake/md2markup/internal/pkg/utils"
	"github.com/spf13/cobra"
)

var ErrLintFindings = errors.New("unsupported Markdown found")

var lintWarnOnly bool

var lintCmd = &cobra.Command{
	Use:   "lint <input.md>...",
	Short: "Report Markdown that is not converted",
	Long: `lint reports constructs that pass through the converter untranslated:
raw HTML, footnotes, definition lists, reference-style links, setext
headings and indented code blocks.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer derrors.Wrap(&err)

		if err := utils.CheckInputs(args); err != nil {
			return err
		}

		count := 0
		out := cmd.OutOrStdout()
		for _, path := range args {
			source, err := utils.ReadText(path)
			if err != nil {
				return err
			}
			for _, f := range lint.Check(source) {
				fmt.Fprintln(out, f.Format(path))
				count++
			}
		}

		if count > 0 && !lintWarnOnly {
			return fmt.Errorf("%w: %d finding(s)", ErrLintFindings, count)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().BoolVar(&lintWarnOnly, "warn-only", false, "report findings without failing")
}
