// Package batch converts several Markdown files concurrently.
package batch

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"

	fm "github.com/qawatake/md2markup/internal/pkg/markdown"
	"github.com/qawatake/md2markup/internal/pkg/utils"
	"github.com/qawatake/md2markup/internal/verbose"
	"github.com/qawatake/md2markup/pkg/markdown"
	"github.com/sourcegraph/conc/pool"
)

// Task is one file to convert.
type Task struct {
	Input  string
	Output string
}

// Result is the converted text of a Task.
type Result struct {
	Task
	Text string
}

type Options struct {
	// Workers bounds concurrent conversions. Values below 1 mean 1.
	Workers int
	// StripFrontMatter drops a leading YAML front matter block.
	StripFrontMatter bool
	// Write stores each result at its Task.Output.
	Write bool
	// Progress, if set, is called after each successful task with the number
	// of finished tasks. It may be called from several goroutines.
	Progress func(done, total int)
}

type indexedResult struct {
	index int
	Result
}

// Convert converts every task and returns the results in task order. The
// first failure cancels the tasks that have not started yet.
func Convert(ctx context.Context, conv *markdown.Converter, tasks []Task, opts Options) ([]Result, error) {
	workers := max(opts.Workers, 1)

	p := pool.NewWithResults[indexedResult]().
		WithContext(ctx).
		WithMaxGoroutines(workers).
		WithFirstError().
		WithCancelOnError()
	var done atomic.Int64
	for i, task := range tasks {
		p.Go(func(ctx context.Context) (indexedResult, error) {
			if err := ctx.Err(); err != nil {
				return indexedResult{}, err
			}
			text, err := convertFile(conv, task, opts)
			if err != nil {
				return indexedResult{}, err
			}
			if opts.Progress != nil {
				opts.Progress(int(done.Add(1)), len(tasks))
			}
			return indexedResult{index: i, Result: Result{Task: task, Text: text}}, nil
		})
	}

	indexed, err := p.Wait()
	if err != nil {
		return nil, err
	}
	sort.Slice(indexed, func(i, j int) bool {
		return indexed[i].index < indexed[j].index
	})

	results := make([]Result, 0, len(indexed))
	for _, r := range indexed {
		results = append(results, r.Result)
	}
	return results, nil
}

// convertFile reads, converts and optionally writes a single task.
func convertFile(conv *markdown.Converter, task Task, opts Options) (string, error) {
	source, err := utils.ReadText(task.Input)
	if err != nil {
		return "", err
	}
	if opts.StripFrontMatter {
		frontMatter, body, err := fm.ParseFrontMatter(source)
		if err != nil {
			verbose.Println(task.Input+":", err)
		}
		verbose.Dump(task.Input+" front matter", frontMatter)
		source = body
	}

	text := conv.Convert(source)
	verbose.Printf("converted %s (%d bytes -> %d bytes)\n", task.Input, len(source), len(text))

	if opts.Write {
		if err := utils.WriteText(task.Output, text); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", task.Output, err)
		}
	}
	return text, nil
}
