package record

import "fmt"

// ParseError indicates record content that is not usable JSON for the
// selected format
type ParseError struct {
	Format  Format
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	prefix := "parse error"
	if e.Format != "" {
		prefix = fmt.Sprintf("parse error (%s)", e.Format)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// LoadError represents a failure reading a record file
type LoadError struct {
	Path  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error: failed to read %s: %v", e.Path, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
