package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/qawatake/md2markup/internal/batch"
	"github.com/qawatake/md2markup/internal/config"
	"github.com/qawatake/md2markup/internal/derrors"
	"github.com/qawatake/md2markup/internal/pkg/utils"
	"github.com/qawatake/md2markup/internal/ui"
	"github.com/qawatake/md2markup/internal/verbose"
	"github.com/qawatake/md2markup/pkg/markdown"
	"github.com/spf13/cobra"
)

var (
	ErrNoInput                  = errors.New("requires at least one input file")
	ErrOutputWithMultipleInputs = errors.New("--output can only be used with a single input")
)

var (
	configPath       string
	stripFrontMatter bool

	outputPath  string
	toStdout    bool
	interactive bool
	jobs        int
)

var rootCmd = &cobra.Command{
	Use:   "md2markup [flags] <input.md>...",
	Short: "Convert Markdown to Confluence Wiki Markup",
	Long: `md2markup converts Markdown files to Confluence Wiki Markup.

Each input is written next to itself with its extension replaced by the
configured output extension (.txt by default), or printed with --stdout.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && !interactive {
			return ErrNoInput
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer derrors.Wrap(&err)

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		inputs := args
		if len(inputs) == 0 {
			inputs, err = pickInputs(cfg)
			if err != nil {
				return err
			}
		}
		if outputPath != "" && len(inputs) > 1 {
			return ErrOutputWithMultipleInputs
		}
		if err := utils.CheckInputs(inputs); err != nil {
			return err
		}

		tasks := make([]batch.Task, 0, len(inputs))
		for _, input := range inputs {
			tasks = append(tasks, batch.Task{Input: input, Output: outputFor(input, cfg)})
		}
		if interactive && !toStdout {
			tasks, err = confirmOverwrites(cmd, tasks)
			if err != nil {
				return err
			}
		}

		spin := ui.NewSpinner()
		spin.Start(fmt.Sprintf("Converting %d file(s)...", len(tasks)))
		results, err := batch.Convert(cmd.Context(), converterFor(cfg), tasks, batch.Options{
			Workers:          cfg.Jobs,
			StripFrontMatter: cfg.StripFrontMatter,
			Write:            !toStdout,
			Progress: func(done, total int) {
				spin.Update(fmt.Sprintf("Converted %d/%d", done, total))
			},
		})
		spin.Stop()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, r := range results {
			if toStdout {
				fmt.Fprintln(out, strings.ToValidUTF8(r.Text, "\uFFFD"))
				continue
			}
			fmt.Fprintf(out, "Written to %s\n", r.Output)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./.md2markup.yml or ~/.config/md2markup/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&stripFrontMatter, "strip-front-matter", false, "drop a leading YAML front matter block")
	rootCmd.PersistentFlags().BoolVarP(&verbose.Enabled, "verbose", "v", false, "print diagnostics to stderr")

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (single input only)")
	rootCmd.Flags().BoolVar(&toStdout, "stdout", false, "print the converted text instead of writing files")
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick inputs with a fuzzy finder and confirm overwrites")
	rootCmd.Flags().IntVarP(&jobs, "jobs", "j", config.DefaultJobs, "number of files converted in parallel")
}

// loadConfig reads the config file and applies flags set on the command
// line on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("strip-front-matter") {
		cfg.StripFrontMatter = stripFrontMatter
	}
	if f := cmd.Flags().Lookup("jobs"); f != nil && f.Changed {
		cfg.Jobs = max(jobs, 1)
	}
	verbose.Dump("config", cfg)
	return cfg, nil
}

// converterFor builds a converter with the configured language aliases.
func converterFor(cfg *config.Config) *markdown.Converter {
	return markdown.NewConverter(markdown.WithLanguageAliases(cfg.Languages))
}

// outputFor returns --output when set, else the input path with the
// configured extension.
func outputFor(input string, cfg *config.Config) string {
	if outputPath != "" {
		return outputPath
	}
	return utils.OutputPath(input, cfg.OutputExt)
}

// pickInputs lets the user choose Markdown files under the current
// directory, previewing each file's converted text.
func pickInputs(cfg *config.Config) ([]string, error) {
	files, err := utils.FindMarkdownFiles(".")
	if err != nil {
		return nil, err
	}
	conv := converterFor(cfg)
	return ui.PickFiles(files, func(path string, _, _ int) string {
		source, err := utils.ReadText(path)
		if err != nil {
			return err.Error()
		}
		return conv.Convert(source)
	})
}

// confirmOverwrites asks before replacing existing outputs and drops the
// tasks the user declines.
func confirmOverwrites(cmd *cobra.Command, tasks []batch.Task) ([]batch.Task, error) {
	confirmed := tasks[:0:0]
	for _, task := range tasks {
		if !utils.FileExists(task.Output) {
			confirmed = append(confirmed, task)
			continue
		}
		ok, err := ui.ConfirmOverwrite(task.Output)
		if err != nil {
			return nil, err
		}
		if !ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "Skipped %s\n", task.Input)
			continue
		}
		confirmed = append(confirmed, task)
	}
	return confirmed, nil
}
