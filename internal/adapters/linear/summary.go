package linear

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go.trai.ch/fab/internal/ui/style"
)

// Report accumulates per-target outcomes and renders the closing summary
// table.
type Report struct {
	mu   sync.Mutex
	rows []reportRow
}

type reportRow struct {
	name     string
	duration time.Duration
	err      error
}

// NewReport creates an empty Report.
func NewReport() *Report {
	return &Report{}
}

// Add records one finished target.
func (r *Report) Add(name string, duration time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, reportRow{name: name, duration: duration, err: err})
}

// Render returns the framed summary table, or "" when nothing was recorded.
func (r *Report) Render() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.rows) == 0 {
		return ""
	}

	nameWidth := len("TARGET")
	for _, row := range r.rows {
		if len(row.name) > nameWidth {
			nameWidth = len(row.name)
		}
	}

	var b strings.Builder
	b.WriteString(style.SummaryHeader.Render(
		fmt.Sprintf("%-*s  %-6s  %s", nameWidth, "TARGET", "STATUS", "TIME")))

	for _, row := range r.rows {
		status := style.SummaryOK.Render(style.Check + " ok")
		if row.err != nil {
			status = style.SummaryFail.Render(style.Cross + " fail")
		}
		// The status cell is padded by hand since ANSI sequences throw off
		// %-*s width accounting.
		pad := strings.Repeat(" ", 6-len([]rune(statusText(row.err))))
		line := fmt.Sprintf("%s  %s%s  %s",
			style.SummaryRow.Render(fmt.Sprintf("%-*s", nameWidth, row.name)),
			status, pad,
			style.SummaryRow.Render(row.duration.String()))
		b.WriteString("\n")
		b.WriteString(line)
	}

	return style.SummaryFrame.Render(b.String())
}

// Failed reports whether any recorded target failed.
func (r *Report) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.err != nil {
			return true
		}
	}
	return false
}

func statusText(err error) string {
	if err != nil {
		return style.Cross + " fail"
	}
	return style.Check + " ok"
}
