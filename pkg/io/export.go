package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/crossflow/pkg/crossflow"
	"github.com/matzehuels/crossflow/pkg/errors"
)

// WriteOption encodes opt as indented JSON and writes it to w.
func WriteOption(w io.Writer, opt crossflow.Option) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(opt); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportOption writes opt to a JSON file at path.
func ExportOption(path string, opt crossflow.Option) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteOption(f, opt)
}

// WriteDocument encodes a counts document in the given format. The output
// reads back with [ReadDocument].
func WriteDocument(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported document format %q", format)
	}
	return nil
}
