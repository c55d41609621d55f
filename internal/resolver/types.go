// Package resolver implements the three-stage Field Resolver (C6): a
// layered matcher that turns a list of source column names into
// source -> target Mappings with calibrated confidences, per spec §4.3.
package resolver

// Method is the closed set of ways a Mapping can have been produced. Order
// here also defines the confidence-band monotonicity invariant (I4):
// exact >= alias >= partial >= semantic >= fuzzy.
type Method string

const (
	MethodExact    Method = "exact"
	MethodAlias    Method = "alias"
	MethodPartial  Method = "partial"
	MethodSemantic Method = "semantic"
	MethodFuzzy    Method = "fuzzy"
)

// MethodWeight is used by the Entity Classifier (C12) to score a
// ResolutionReport, per spec §4.8.
var MethodWeight = map[Method]float64{
	MethodExact:    1.0,
	MethodAlias:    0.95,
	MethodPartial:  0.85,
	MethodSemantic: 0.7,
	MethodFuzzy:    0.6,
}

// Alternative is one also-ran candidate attached to a committed Mapping.
type Alternative struct {
	Target     string
	Confidence float64
}

// Mapping records that a source column was resolved to a target field.
type Mapping struct {
	Source       string
	Target       string
	Confidence   float64
	Method       Method
	Alternatives []Alternative // up to 3, per spec §3
}

// ResolutionReport is the Resolver's full output for one (source columns,
// entity) pair.
type ResolutionReport struct {
	Mappings          []Mapping
	UnmappedSources   []string
	UnmappedTargets   []string
	MappingPercentage float64
	CountsByMethod    map[Method]int

	// NeedsReview and ReviewReasons are a supplemented, read-only summary
	// (not a §4.3 threshold): see confidence-banded review gating.
	NeedsReview   bool
	ReviewReasons []string
}

// Options tunes a single Resolve call. MinConfidence defaults to 0.70
// per spec §4.3's public contract.
type Options struct {
	MinConfidence float64

	// UseValueStatistics enables the supplemented dynamic/statistical
	// gap-filling tie-break (off by default). When enabled, Stats must be
	// populated per unmapped source column.
	UseValueStatistics bool
	Stats              map[string]ColumnStats
}

// ColumnStats summarizes sampled cell values for one source column,
// gathered by the Ingestor's type-sniffing step (§4.6 step 6). Used only
// as a tie-break signal when Options.UseValueStatistics is set.
type ColumnStats struct {
	NumericRatio float64
	EmailRatio   float64
	DateRatio    float64
	URLRatio     float64
}

// DefaultMinConfidence is the public-contract default from spec §4.3.
const DefaultMinConfidence = 0.70
