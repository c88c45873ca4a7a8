// Package scan inspects synthesis logs for constraint violations.
//
// The synthesis toolchain does not reliably encode timing failure in its exit
// status: place and route can report unmet constraints and still exit zero.
// The scanner is what turns those log lines into a pipeline failure.
package scan

import (
	"bufio"
	"io"
	"strings"

	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.LogClassifier = (*Scanner)(nil)

// violationPatterns are the lines the toolchain prints when timing closure
// fails. Checked in order: the per-constraint report from place and route
// first, then the design-level summary. Matching is exact substring, case
// included.
var violationPatterns = []string{
	"one or more timing constraints are not met",
	"Timing constraints are not met",
}

// Synthesis logs contain long report lines, well past bufio's default token
// size.
const maxLogLineSize = 1024 * 1024

// Scanner implements ports.LogClassifier over the fixed pattern list.
type Scanner struct{}

// NewScanner creates a new Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan reads the log line by line and reports the first violation pattern
// that matched anywhere in it. Pattern order takes precedence over line
// order, so the more specific per-constraint report wins even when the
// design-level summary appears earlier in the log.
func (s *Scanner) Scan(r io.Reader) error {
	matchedLines := make([]int, len(violationPatterns))

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLogLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		for i, pattern := range violationPatterns {
			if matchedLines[i] == 0 && strings.Contains(line, pattern) {
				matchedLines[i] = lineNo
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return zerr.Wrap(err, domain.ErrSynthesisLogMissing.Error())
	}

	for i, pattern := range violationPatterns {
		if matchedLines[i] != 0 {
			err := zerr.With(domain.ErrConstraintViolation, "pattern", pattern)
			return zerr.With(err, "line", matchedLines[i])
		}
	}

	return nil
}
