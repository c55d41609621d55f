package ingest

import "fmt"

// FileTooLargeError is raised when the input buffer exceeds the
// configured size ceiling (§4.6 step 1).
type FileTooLargeError struct {
	SizeBytes int64
	MaxBytes  int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file too large: %d bytes exceeds the %d byte limit", e.SizeBytes, e.MaxBytes)
}

// InvalidFileFormatError is raised when the filename/content doesn't match
// any supported format, or a supported-format parser fails structurally.
type InvalidFileFormatError struct {
	Filename string
	Reason   string
}

func (e *InvalidFileFormatError) Error() string {
	return fmt.Sprintf("invalid file format for %q: %s", e.Filename, e.Reason)
}

// EncodingError is raised when no candidate encoding decodes the buffer
// without error (§4.6 step 2).
type EncodingError struct {
	Attempted []string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding detection failed. Attempted: %v. File is not valid text in any supported encoding.", e.Attempted)
}

// DelimiterError is raised when no delimiter produces a stable column
// count across the sampled lines (§4.6 step 3).
type DelimiterError struct {
	Attempted []string
}

func (e *DelimiterError) Error() string {
	return fmt.Sprintf("delimiter detection failed. Attempted: %v. Try: pipe, tab, semicolon.", e.Attempted)
}
