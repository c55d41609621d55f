// Package validate implements the Validator (C8): structural, header,
// required-field, typed, length, and character checks over an ingested
// Table against a committed set of Mappings, per spec §4.5.
package validate

// IssueCode is the closed vocabulary of validation findings, per spec §7.
type IssueCode string

const (
	CodeTableEmpty          IssueCode = "TABLE_EMPTY"
	CodeDuplicateColumns    IssueCode = "DUPLICATE_COLUMNS"
	CodeEmptyColumns        IssueCode = "EMPTY_COLUMNS"
	CodeMisspelledHeader    IssueCode = "MISSPELLED_HEADER"
	CodeUnknownHeader       IssueCode = "UNKNOWN_HEADER"
	CodeMissingRequiredField IssueCode = "MISSING_REQUIRED_FIELD"
	CodeMissingRequiredData  IssueCode = "MISSING_REQUIRED_DATA"
	CodeInvalidEmail        IssueCode = "INVALID_EMAIL"
	CodeInvalidDate         IssueCode = "INVALID_DATE"
	CodeInvalidNumber       IssueCode = "INVALID_NUMBER"
	CodeExceedsMaxLength    IssueCode = "EXCEEDS_MAX_LENGTH"
	CodeNullBytes           IssueCode = "NULL_BYTES"
)

// Severity classifies how an Issue affects the pipeline, per spec §7.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

var severityByCode = map[IssueCode]Severity{
	CodeTableEmpty:           SeverityCritical,
	CodeDuplicateColumns:     SeverityCritical,
	CodeMissingRequiredField: SeverityCritical,
	CodeMissingRequiredData:  SeverityCritical,
	CodeInvalidEmail:         SeverityWarning,
	CodeInvalidDate:          SeverityWarning,
	CodeInvalidNumber:        SeverityWarning,
	CodeExceedsMaxLength:     SeverityWarning,
	CodeNullBytes:            SeverityWarning,
	CodeMisspelledHeader:     SeverityWarning,
	CodeUnknownHeader:        SeverityInfo,
	CodeEmptyColumns:         SeverityInfo,
}

// Issue is one finding raised against a table/mapping combination.
type Issue struct {
	Code       IssueCode
	Severity   Severity
	Message    string
	Column     string
	Target     string
	Suggestion string
	Count      int
	SampleRows []int
}

// Report is the Validator's full output for one (table, entity, mappings)
// combination.
type Report struct {
	Issues  []Issue
	IsValid bool
}

func (r *Report) add(issue Issue) {
	issue.Severity = severityByCode[issue.Code]
	r.Issues = append(r.Issues, issue)
	if issue.Severity == SeverityCritical {
		r.IsValid = false
	}
}
