// Package jsonio is the thin JSON adapter shared by every cmd/*
// binary: reading an Input document, writing an Output or density Sums
// document, and writing the {"error": "..."} error-report file. It uses
// github.com/segmentio/encoding/json, a drop-in faster replacement for
// encoding/json, appropriate for the potentially large documents this
// system reads and writes.
package jsonio

import (
	"fmt"
	"os"

	"github.com/segmentio/encoding/json"

	"types3go/internal/output"
)

// ReadFile decodes the JSON document at path into v.
func ReadFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// WriteFile encodes v as JSON and writes it to path, pretty-printed with a
// two-space indent when pretty is set.
func WriteFile(path string, v any, pretty bool) error {
	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteErrorFile writes {"error": "<message>"} to path, for whichever
// tool was invoked with an error-report path and subsequently failed.
// No error kind is exempt.
func WriteErrorFile(path string, cause error) error {
	return WriteFile(path, output.OError{Error: cause.Error()}, false)
}
