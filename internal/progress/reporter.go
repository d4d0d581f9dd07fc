package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides progress feedback for long-running CLI commands.
// A negative total means the amount of work is unknown.
type Reporter interface {
	Start(total int, description string)
	Update(current int, message string)
	Finish(message string)
}

// NewReporter returns a CIReporter if the CI environment variable is set,
// or a TerminalReporter otherwise.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{out: os.Stderr}
	}
	return &TerminalReporter{out: os.Stderr}
}

// TerminalReporter displays a progress bar, or a spinner when the total
// is unknown.
type TerminalReporter struct {
	out  io.Writer
	bar  *progressbar.ProgressBar
	stop chan struct{}
	wg   sync.WaitGroup
}

func (r *TerminalReporter) Start(total int, description string) {
	opts := []progressbar.Option{
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
	}
	if total < 0 {
		opts = append(opts, progressbar.OptionSpinnerType(14), progressbar.OptionSetElapsedTime(true))
	} else {
		opts = append(opts, progressbar.OptionShowCount())
	}
	r.bar = progressbar.NewOptions(total, opts...)

	if total < 0 {
		r.stop = make(chan struct{})
		r.wg.Add(1)
		go r.spin()
	}
}

// spin advances the spinner while a blocking call is in flight.
func (r *TerminalReporter) spin() {
	defer r.wg.Done()
	t := time.NewTicker(100 * time.Millisecond)
	defer t.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-t.C:
			_ = r.bar.Add(1)
		}
	}
}

func (r *TerminalReporter) Update(current int, message string) {
	if r.bar != nil {
		r.bar.Describe(message)
		if r.stop == nil {
			_ = r.bar.Set(current)
		}
	}
}

func (r *TerminalReporter) Finish(message string) {
	if r.stop != nil {
		close(r.stop)
		r.wg.Wait()
		r.stop = nil
	}
	if r.bar != nil {
		_ = r.bar.Finish()
	}
	if message != "" {
		fmt.Fprintln(r.out, message)
	}
}

// CIReporter prints line-by-line progress suitable for CI logs.
type CIReporter struct {
	out   io.Writer
	total int
}

func (r *CIReporter) Start(total int, description string) {
	r.total = total
	if total < 0 {
		fmt.Fprintf(r.out, "%s\n", description)
		return
	}
	fmt.Fprintf(r.out, "%s (%d steps)\n", description, total)
}

func (r *CIReporter) Update(current int, message string) {
	if r.total < 0 {
		fmt.Fprintf(r.out, "  %s\n", message)
		return
	}
	fmt.Fprintf(r.out, "[%d/%d] %s\n", current, r.total, message)
}

func (r *CIReporter) Finish(message string) {
	if message != "" {
		fmt.Fprintln(r.out, message)
	}
}
