// Package record loads resume records from the standard and the ".NET" JSON
// layouts into a types.ResumeRecord.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-formatter/internal/schemas"
	"github.com/jonathan/resume-formatter/internal/types"
)

// Format selects the JSON layout of a record document
type Format string

// Supported formats
const (
	FormatAuto     Format = "auto"
	FormatStandard Format = "standard"
	FormatDotNet   Format = "dotnet"
)

// ParseFormat converts a user supplied name into a Format.
// The empty string means FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatStandard:
		return FormatStandard, nil
	case FormatDotNet, ".net":
		return FormatDotNet, nil
	default:
		return "", fmt.Errorf("unknown record format %q (want auto, standard or dotnet)", s)
	}
}

// LoadFile reads and parses a record file
func LoadFile(path string, format Format) (*types.ResumeRecord, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Cause: err}
	}
	return Parse(content, format)
}

// Parse decodes a record document. With FormatAuto the layout is detected
// from the content.
func Parse(data []byte, format Format) (*types.ResumeRecord, error) {
	data, err := unwrap(data)
	if err != nil {
		return nil, err
	}

	if format == "" || format == FormatAuto {
		format = Detect(data)
	}

	switch format {
	case FormatStandard:
		return ParseStandard(data)
	case FormatDotNet:
		return ParseDotNet(data)
	default:
		return nil, &ParseError{Message: fmt.Sprintf("unsupported format %q", format)}
	}
}

// ParseStandard decodes a document in the standard layout
func ParseStandard(data []byte) (*types.ResumeRecord, error) {
	data, err := unwrap(data)
	if err != nil {
		return nil, err
	}
	if err := schemas.ValidateBytes(schemas.ResumeRecordSchema, data); err != nil {
		return nil, err
	}

	var record types.ResumeRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, &ParseError{Format: FormatStandard, Message: "failed to unmarshal record", Cause: err}
	}
	if err := types.ValidateRecord(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Detect reports the layout of a record document. A top-level
// "personal_info" object, or experience entries carrying a "project" list,
// mean the .NET layout.
func Detect(data []byte) Format {
	var probe struct {
		PersonalInfo json.RawMessage `json:"personal_info"`
		Experience   []struct {
			Project json.RawMessage `json:"project"`
		} `json:"experience"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return FormatStandard
	}
	if isObject(probe.PersonalInfo) {
		return FormatDotNet
	}
	if len(probe.Experience) > 0 && len(probe.Experience[0].Project) > 0 && !isNull(probe.Experience[0].Project) {
		return FormatDotNet
	}
	return FormatStandard
}

// unwrap checks the document is JSON and decodes one level of string
// encoding, so a record serialized into a JSON string is accepted.
func unwrap(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &ParseError{Message: "empty document"}
	}
	if !json.Valid(trimmed) {
		return nil, &ParseError{Message: "document is not valid JSON", Cause: syntaxError(trimmed)}
	}
	if trimmed[0] != '"' {
		return trimmed, nil
	}

	var inner string
	if err := json.Unmarshal(trimmed, &inner); err != nil {
		return nil, &ParseError{Message: "failed to decode string-encoded document", Cause: err}
	}
	innerBytes := bytes.TrimSpace([]byte(inner))
	if !json.Valid(innerBytes) || len(innerBytes) == 0 || innerBytes[0] != '{' {
		return nil, &ParseError{Message: "string-encoded document does not contain a JSON object"}
	}
	return innerBytes, nil
}

func syntaxError(data []byte) error {
	var v any
	return json.Unmarshal(data, &v)
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
