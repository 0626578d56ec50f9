// Package rendering turns resume records into formatted .docx documents.
package rendering

import "fmt"

// ConfigError reports a render config the renderer cannot honor
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s %s", e.Field, e.Message)
}

// SaveError represents a failure writing the output document
type SaveError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SaveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("save error: %s (%s): %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("save error: %s (%s)", e.Message, e.Path)
}

func (e *SaveError) Unwrap() error {
	return e.Cause
}

// RenderError represents a general rendering failure
type RenderError struct {
	Style   string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	prefix := "render error"
	if e.Style != "" {
		prefix = fmt.Sprintf("render error (%s)", e.Style)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
