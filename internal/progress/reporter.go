// Package progress reports prerendering progress for guidebook build.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter is told about each page the site generator writes.
type Reporter interface {
	Start(pages int)
	PageWritten(done int, file string)
	Finish(outputDir string)
}

// NewReporter returns a CIReporter when running under CI, otherwise a
// TerminalReporter. Both write to stderr so stdout stays clean.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{Out: os.Stderr}
	}
	return &TerminalReporter{Out: os.Stderr}
}

// TerminalReporter draws a bar that is cleared once the build finishes.
type TerminalReporter struct {
	Out     io.Writer
	bar     *progressbar.ProgressBar
	written int
}

func (r *TerminalReporter) Start(pages int) {
	r.written = 0
	r.bar = progressbar.NewOptions(pages,
		progressbar.OptionSetWriter(r.Out),
		progressbar.OptionSetDescription("Prerendering"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) PageWritten(done int, file string) {
	r.written = done
	if r.bar == nil {
		return
	}
	r.bar.Describe(file)
	_ = r.bar.Set(done)
}

func (r *TerminalReporter) Finish(outputDir string) {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
	fmt.Fprintf(r.Out, "Prerendered %d guide pages into %s\n", r.written, outputDir)
}

// CIReporter prints one line per page for CI logs.
type CIReporter struct {
	Out     io.Writer
	pages   int
	written int
}

func (r *CIReporter) Start(pages int) {
	r.pages, r.written = pages, 0
	fmt.Fprintf(r.Out, "prerendering %d guide pages\n", pages)
}

func (r *CIReporter) PageWritten(done int, file string) {
	r.written = done
	fmt.Fprintf(r.Out, "  [%d/%d] %s\n", done, r.pages, file)
}

func (r *CIReporter) Finish(outputDir string) {
	fmt.Fprintf(r.Out, "prerendered %d guide pages into %s\n", r.written, outputDir)
}

// Nop discards all progress.
type Nop struct{}

func (Nop) Start(int)               {}
func (Nop) PageWritten(int, string) {}
func (Nop) Finish(string)           {}
