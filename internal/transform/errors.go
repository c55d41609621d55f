package transform

import "fmt"

// DataLossError is raised whenever the row-count invariant (I1) is
// violated: input row count must equal emitted record count. It always
// aborts the pipeline per spec §7 — DATA_LOSS_DETECTED is critical.
type DataLossError struct {
	InputRows   int
	OutputRows  int
	LostRows    []int
	Reasons     []string
}

func (e *DataLossError) Error() string {
	pct := 0.0
	if e.InputRows > 0 {
		pct = 100 * float64(e.InputRows-e.OutputRows) / float64(e.InputRows)
	}
	return fmt.Sprintf("data loss detected: %d input rows, %d emitted (%.1f%% lost); reasons: %v; sample: %v",
		e.InputRows, e.OutputRows, pct, e.Reasons, e.LostRows)
}

// InvalidMappingsError is raised when a caller passes mappings that don't
// correspond to the table or schema in hand.
type InvalidMappingsError struct {
	Reason string
}

func (e *InvalidMappingsError) Error() string {
	return "invalid mappings: " + e.Reason
}
