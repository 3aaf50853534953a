package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/qawatake/md2markup/internal/batch"
	"github.com/qawatake/md2markup/internal/derrors"
	"github.com/qawatake/md2markup/internal/diff"
	"github.com/qawatake/md2markup/internal/pkg/utils"
	"github.com/qawatake/md2markup/internal/ui"
	"github.com/qawatake/md2markup/internal/verbose"
	"github.com/spf13/cobra"
)

var ErrDiffFound = errors.New("converted output differs")

var (
	diffOutputPath string
	diffExitCode   bool
	diffColor      string
	diffContext    int
)

var diffCmd = &cobra.Command{
	Use:   "diff <input.md>",
	Short: "Show how the converted output differs from the existing output file",
	Long: `diff converts the input and prints a unified diff against the output file
that a plain conversion would overwrite. A missing output file is shown as a
new file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer derrors.Wrap(&err)

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		input := args[0]
		if err := utils.CheckInputs(args); err != nil {
			return err
		}

		output := diffOutputPath
		if output == "" {
			output = utils.OutputPath(input, cfg.OutputExt)
		}

		results, err := ui.WithSpinnerValue("Converting "+input, func() ([]batch.Result, error) {
			return batch.Convert(cmd.Context(), converterFor(cfg), []batch.Task{{Input: input, Output: output}}, batch.Options{
				StripFrontMatter: cfg.StripFrontMatter,
			})
		})
		if err != nil {
			return err
		}

		opts := []diff.Option{diff.WithContextLines(diffContext)}
		existing := ""
		if utils.FileExists(output) {
			existing, err = utils.ReadText(output)
			if err != nil {
				return err
			}
		} else {
			opts = append(opts, diff.WithNewFile())
		}
		useColor, err := colorEnabled(cmd, diffColor)
		if err != nil {
			return err
		}
		if useColor {
			opts = append(opts, diff.WithColor())
		}

		text, changed, err := diff.Unified(output, existing, results[0].Text, opts...)
		if err != nil {
			return err
		}
		if !changed {
			verbose.Printf("%s is up to date\n", output)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		if diffExitCode {
			return fmt.Errorf("%w: %s", ErrDiffFound, output)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().StringVarP(&diffOutputPath, "output", "o", "", "existing output file to compare against")
	diffCmd.Flags().BoolVar(&diffExitCode, "exit-code", false, "fail when the output differs")
	diffCmd.Flags().StringVar(&diffColor, "color", "auto", "colorize the diff: auto, always or never")
	diffCmd.Flags().IntVarP(&diffContext, "unified", "U", diff.DefaultContextLines, "number of context lines")
}

// colorEnabled resolves a --color mode. "auto" colors only when the
// command writes to a terminal.
func colorEnabled(cmd *cobra.Command, mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := cmd.OutOrStdout().(*os.File)
		return ok && isatty.IsTerminal(f.Fd()), nil
	default:
		return false, fmt.Errorf("invalid --color value %q: want auto, always or never", mode)
	}
}
