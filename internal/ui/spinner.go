package ui

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerInterval = 100 * time.Millisecond

// Spinner reports progress on stderr. The underlying spinner does nothing
// when stderr is not a terminal, so piped output stays clean.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a stopped spinner.
func NewSpinner() *Spinner {
	return &Spinner{
		s: spinner.New(spinner.CharSets[14], spinnerInterval, spinner.WithWriterFile(os.Stderr)),
	}
}

// Start shows the spinner with message.
func (sp *Spinner) Start(message string) {
	sp.setSuffix(message)
	sp.s.Start()
}

// Update replaces the message while the spinner runs. Safe for concurrent
// use.
func (sp *Spinner) Update(message string) {
	sp.s.Lock()
	defer sp.s.Unlock()
	sp.setSuffix(message)
}

// Stop hides the spinner.
func (sp *Spinner) Stop() {
	sp.s.Stop()
}

// setSuffix shows message after the spinner with a leading space.
func (sp *Spinner) setSuffix(message string) {
	sp.s.Suffix = " " + message
}

// WithSpinnerValue runs fn with a spinner showing message.
func WithSpinnerValue[T any](message string, fn func() (T, error)) (T, error) {
	sp := NewSpinner()
	sp.Start(message)
	defer sp.Stop()
	return fn()
}
