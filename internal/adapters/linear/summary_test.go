package linear_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"go.trai.ch/fab/internal/adapters/linear"
)

func TestReport_RenderEmpty(t *testing.T) {
	report := linear.NewReport()
	if got := report.Render(); got != "" {
		t.Errorf("Empty report should render nothing, got: %q", got)
	}
}

func TestReport_RenderRows(t *testing.T) {
	report := linear.NewReport()
	report.Add("kc705@nist_clock", 90*time.Second, nil)
	report.Add("efc@shuttler", 45*time.Second, errors.New("constraint violations in synthesis log"))

	rendered := report.Render()
	for _, want := range []string{"TARGET", "STATUS", "TIME", "kc705@nist_clock", "efc@shuttler", "1m30s", "45s"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("Expected %q in rendered report:\n%s", want, rendered)
		}
	}

	if !report.Failed() {
		t.Error("Report with a failing row should report Failed")
	}
}

func TestReport_AllPassing(t *testing.T) {
	report := linear.NewReport()
	report.Add("kc705@nist_clock", time.Second, nil)

	if report.Failed() {
		t.Error("Report without failures should not report Failed")
	}
}
