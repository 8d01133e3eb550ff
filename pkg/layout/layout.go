package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Layout Serialization API
// =============================================================================

// ReadLayout decodes a JSON layout from an io.Reader and structurally checks
// it. Unknown fields are rejected so typos in hand-edited layouts surface as
// errors instead of silently-ignored geometry.
func ReadLayout(r io.Reader) (*Layout, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var l Layout
	if err := dec.Decode(&l); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	return &l, nil
}

// ReadLayoutFile reads a JSON file and returns the decoded, checked layout.
func ReadLayoutFile(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLayout(f)
}

// MarshalLayout encodes a layout as indented JSON.
func MarshalLayout(l *Layout) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteReport writes a validation report as indented JSON to w.
func WriteReport(r Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// MarshalReport encodes a validation report as indented JSON bytes.
func MarshalReport(r Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteReport(r, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
