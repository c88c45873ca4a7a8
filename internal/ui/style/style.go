// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Copper = lipgloss.Color("#C2703D")
	Slate  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Ink    = lipgloss.Color("#0B0F19")
	Mist   = lipgloss.Color("#F6F7FB")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Dot     = "●"
	Circle  = "○"
)

// Summary table styles used by the build report.
var (
	// SummaryHeader renders the report column headers.
	SummaryHeader = lipgloss.NewStyle().Bold(true).Foreground(Copper)

	// SummaryRow renders a plain report row.
	SummaryRow = lipgloss.NewStyle().Foreground(Slate)

	// SummaryOK renders a passing status cell.
	SummaryOK = lipgloss.NewStyle().Foreground(Green)

	// SummaryFail renders a failing status cell.
	SummaryFail = lipgloss.NewStyle().Foreground(Red)

	// SummaryFrame wraps the report in a rounded border.
	SummaryFrame = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Slate).
			Padding(0, 1)
)
