// Package parsererror defines the typed errors surfaced while reading and
// interpreting bank statements. Callers match them with errors.As.
package parsererror

import (
	"errors"
	"fmt"
	"strings"
)

// NoHeaderError is returned when none of the scanned rows looks like a
// bank-statement header.
type NoHeaderError struct {
	FilePath    string
	RowsScanned int
}

func (e *NoHeaderError) Error() string {
	return fmt.Sprintf("could not find header row in %s (scanned %d rows); the statement must contain standard bank statement headers",
		displayPath(e.FilePath), e.RowsScanned)
}

// MissingColumnError is returned when the header row lacks a mandatory column.
type MissingColumnError struct {
	FilePath  string
	HeaderRow int
	Missing   []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("header row %d in %s is missing essential columns: %s",
		e.HeaderRow, displayPath(e.FilePath), strings.Join(e.Missing, ", "))
}

// DecodeError wraps a failure of the spreadsheet decoder.
type DecodeError struct {
	FilePath string
	Format   string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s spreadsheet %s: %v", e.Format, displayPath(e.FilePath), e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// TrainingHeaderError is returned when a training file has no category column.
type TrainingHeaderError struct {
	FilePath string
	Reason   string
}

func (e *TrainingHeaderError) Error() string {
	return fmt.Sprintf("training file %s is not usable: %s", displayPath(e.FilePath), e.Reason)
}

// ValidationError represents a validation failure
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", displayPath(e.FilePath), e.Reason)
}

// WithPath records path on err when it is one of this package's errors and
// no path is set yet. It returns err unchanged.
func WithPath(err error, path string) error {
	var (
		noHeader   *NoHeaderError
		missing    *MissingColumnError
		decode     *DecodeError
		training   *TrainingHeaderError
		validation *ValidationError
	)
	switch {
	case errors.As(err, &noHeader):
		setPath(&noHeader.FilePath, path)
	case errors.As(err, &missing):
		setPath(&missing.FilePath, path)
	case errors.As(err, &decode):
		setPath(&decode.FilePath, path)
	case errors.As(err, &training):
		setPath(&training.FilePath, path)
	case errors.As(err, &validation):
		setPath(&validation.FilePath, path)
	}
	return err
}

func setPath(dst *string, path string) {
	if *dst == "" {
		*dst = path
	}
}

func displayPath(path string) string {
	if path == "" {
		return "<input>"
	}
	return path
}
