package scan_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fab/internal/adapters/scan"
	"go.trai.ch/fab/internal/core/domain"
)

type metadataCarrier interface {
	Metadata() map[string]any
}

func matchMetadata(t *testing.T, err error) map[string]any {
	t.Helper()

	var carrier metadataCarrier
	require.ErrorAs(t, err, &carrier)
	return carrier.Metadata()
}

func TestScanner_Scan(t *testing.T) {
	tests := []struct {
		name        string
		log         string
		wantPattern string
		wantLine    int
	}{
		{
			name: "Clean Log",
			log: `Synthesis started
Placing design
Routing completed
Bitstream generation completed
`,
		},
		{
			name: "Empty Log",
			log:  "",
		},
		{
			name: "Individual Constraints Unmet",
			log: `PAR done
WARNING:Par:62 - one or more timing constraints are not met
writing results
`,
			wantPattern: "one or more timing constraints are not met",
			wantLine:    2,
		},
		{
			name: "Design Constraints Unmet",
			log: `Timing summary:
Timing errors: 12
Timing constraints are not met.
`,
			wantPattern: "Timing constraints are not met",
			wantLine:    3,
		},
		{
			name: "Pattern Order Beats Line Order",
			log: `Timing constraints are not met.
intermediate output
one or more timing constraints are not met
`,
			wantPattern: "one or more timing constraints are not met",
			wantLine:    3,
		},
		{
			name: "Case Mismatch Is Not A Violation",
			log: `ONE OR MORE TIMING CONSTRAINTS ARE NOT MET
timing constraints are not met.
`,
		},
		{
			name: "Pattern Split Across Lines Is Not A Violation",
			log: `one or more timing constraints
are not met
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanner := scan.NewScanner()
			err := scanner.Scan(strings.NewReader(tt.log))

			if tt.wantPattern == "" {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, domain.ErrConstraintViolation)
			metadata := matchMetadata(t, err)
			assert.Equal(t, tt.wantPattern, metadata["pattern"])
			assert.Equal(t, tt.wantLine, metadata["line"])
		})
	}
}

func TestScanner_ExitStatusIndependence(t *testing.T) {
	// The violation line of a run that exited zero must still fail the scan;
	// this is the whole reason the scanner exists.
	log := `Synthesis started
Routing completed
WARNING:Par:62 - one or more timing constraints are not met
Bitstream generation completed
PAR exited with code 0
`

	err := scan.NewScanner().Scan(strings.NewReader(log))
	require.ErrorIs(t, err, domain.ErrConstraintViolation)
}

func TestScanner_LargeLog(t *testing.T) {
	var builder strings.Builder
	for range 10000 {
		builder.WriteString("INFO: routing net segment\n")
	}
	builder.WriteString("Timing constraints are not met.\n")

	err := scan.NewScanner().Scan(strings.NewReader(builder.String()))
	require.ErrorIs(t, err, domain.ErrConstraintViolation)

	metadata := matchMetadata(t, err)
	assert.Equal(t, 10001, metadata["line"])
}

func TestScanner_LongLines(t *testing.T) {
	// Report lines exceed bufio's default token size without breaking the scan
	log := strings.Repeat("x", 256*1024) + "\none or more timing constraints are not met\n"

	err := scan.NewScanner().Scan(strings.NewReader(log))
	require.ErrorIs(t, err, domain.ErrConstraintViolation)
}

func TestScanner_ReadFailure(t *testing.T) {
	scanner := scan.NewScanner()
	err := scanner.Scan(&failingReader{})

	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrSynthesisLogMissing.Error())
	assert.False(t, errors.Is(err, domain.ErrConstraintViolation))
}

type failingReader struct{}

func (*failingReader) Read([]byte) (int, error) {
	return 0, errors.New("device not configured")
}
