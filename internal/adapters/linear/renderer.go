// Package linear provides a synchronous, line-buffered renderer for CI
// environments. Stage output is printed chronologically with a stage name
// prefix, and a summary table closes the run.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/fab/internal/ui/output"
)

// Renderer implements ports.Renderer for non-interactive environments.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu      sync.Mutex
	stages  map[string]*stageState
	buffers map[string]*bytes.Buffer
	report  *Report
}

type stageState struct {
	name      string
	parentID  string
	startTime time.Time
}

// stagePalette is the set of prefix colors handed out to stages. The same
// stage name always maps to the same color.
var stagePalette = []termenv.Color{
	termenv.ANSIBlue,
	termenv.ANSICyan,
	termenv.ANSIMagenta,
	termenv.ANSIGreen,
	termenv.ANSIYellow,
	termenv.ANSIBrightBlue,
	termenv.ANSIBrightCyan,
	termenv.ANSIBrightMagenta,
}

// NewRenderer creates a new Renderer with the CI color profile. Nil writers
// default to the process streams.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	return NewRendererWithProfile(stdout, stderr, output.ColorProfileANSI)
}

// NewRendererWithProfile creates a Renderer with an explicit color profile
// selector.
func NewRendererWithProfile(stdout, stderr io.Writer, profileFn func() termenv.Profile) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		output:  output.NewWithProfile(stderr, profileFn),
		stages:  make(map[string]*stageState),
		buffers: make(map[string]*bytes.Buffer),
		report:  NewReport(),
	}
}

// Start is a no-op: the linear renderer writes synchronously.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop flushes all remaining buffers and prints the run summary.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for spanID := range r.buffers {
		r.flushBufferLocked(spanID)
	}

	if summary := r.report.Render(); summary != "" {
		_, _ = fmt.Fprintln(r.stderr, summary)
	}

	return nil
}

// Wait is a no-op: nothing runs in the background.
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit prints the resolved build plan.
func (r *Renderer) OnPlanEmit(targets []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Building %d target(s): %s\n",
		len(targets), strings.Join(targets, ", "))
}

// OnStageStart prints a stage start line.
func (r *Renderer) OnStageStart(spanID, parentID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stages[spanID] = &stageState{
		name:      name,
		parentID:  parentID,
		startTime: startTime,
	}
	r.buffers[spanID] = new(bytes.Buffer)

	_, _ = fmt.Fprintf(r.stderr, "%s starting\n", r.prefixLocked(name))
}

// OnStageLog buffers output and prints complete lines with the stage prefix.
func (r *Renderer) OnStageLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stage, ok := r.stages[spanID]
	if !ok {
		return
	}

	buf := r.buffers[spanID]
	buf.Write(data)

	for {
		line, err := buf.ReadBytes('\n')
		if err != nil {
			// Partial line stays buffered until more output arrives.
			if len(line) > 0 {
				rest := new(bytes.Buffer)
				rest.Write(line)
				r.buffers[spanID] = rest
			}
			break
		}
		r.printLineLocked(stage.name, line)
	}
}

// OnStageComplete flushes the stage buffer and prints the outcome. Root
// stages also land in the summary report.
func (r *Renderer) OnStageComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stage, ok := r.stages[spanID]
	if !ok {
		return
	}

	r.flushBufferLocked(spanID)

	duration := endTime.Sub(stage.startTime).Round(10 * time.Millisecond)
	prefix := r.prefixLocked(stage.name)

	if err != nil {
		symbol := r.output.String("✗").Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s failed after %v: %v\n", prefix, symbol, duration, err)
	} else {
		symbol := r.output.String("✓").Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s completed in %v\n", prefix, symbol, duration)
	}

	if stage.parentID == "" {
		r.report.Add(stage.name, duration, err)
	}

	delete(r.stages, spanID)
	delete(r.buffers, spanID)
}

// flushBufferLocked prints whatever is left in a stage buffer. Must be
// called with r.mu held.
func (r *Renderer) flushBufferLocked(spanID string) {
	stage, ok := r.stages[spanID]
	if !ok {
		return
	}

	buf := r.buffers[spanID]
	if buf.Len() > 0 {
		r.printLineLocked(stage.name, buf.Bytes())
		buf.Reset()
	}
}

// printLineLocked prints one line with the stage prefix. Must be called with
// r.mu held.
func (r *Renderer) printLineLocked(name string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))

	if len(line) == 0 {
		return
	}

	_, _ = fmt.Fprintf(r.stdout, "%s %s\n", r.prefixLocked(name), string(line))
}

// prefixLocked renders the colored [name] prefix for a stage.
func (r *Renderer) prefixLocked(name string) string {
	color := stagePalette[stageColorIndex(name)]
	return r.output.String(fmt.Sprintf("[%s]", name)).Foreground(color).String()
}

func stageColorIndex(name string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return int(h.Sum32() % uint32(len(stagePalette)))
}
