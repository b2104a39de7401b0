package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/crossflow/pkg/crossflow"
	"github.com/matzehuels/crossflow/pkg/errors"
)

// Format is an input document encoding.
type Format string

// Supported input formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q (want .json or .toml)", filepath.Ext(path))
}

// Document is a decoded counts file.
type Document struct {
	North crossflow.Movements `json:"n" toml:"n"`
	South crossflow.Movements `json:"s" toml:"s"`
	West  crossflow.Movements `json:"w" toml:"w"`
	East  crossflow.Movements `json:"e" toml:"e"`

	// Config overrides the diagram style when present.
	Config *crossflow.Config `json:"config,omitempty" toml:"config,omitempty"`
}

// Crossroad returns the counts of the document.
func (d Document) Crossroad() crossflow.Crossroad {
	return crossflow.Crossroad{North: d.North, South: d.South, West: d.West, East: d.East}
}

// NewDocument wraps counts and an optional style into a document.
func NewDocument(c crossflow.Crossroad, cfg *crossflow.Config) Document {
	return Document{North: c.North, South: c.South, West: c.West, East: c.East, Config: cfg}
}

// ReadDocument decodes a counts document from r. ReadDocument does not close r.
func ReadDocument(r io.Reader, format Format) (Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&doc)
		if err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return Document{}, errors.New(errors.ErrCodeInvalidInput, "unknown keys: %s", strings.Join(keys, ", "))
		}
	default:
		return Document{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q", format)
	}
	return doc, nil
}

// ReadCrossroad decodes counts from r, ignoring any config table.
func ReadCrossroad(r io.Reader, format Format) (crossflow.Crossroad, error) {
	doc, err := ReadDocument(r, format)
	if err != nil {
		return crossflow.Crossroad{}, err
	}
	return doc.Crossroad(), nil
}

// ImportDocument reads the document at path, choosing the format by extension.
func ImportDocument(path string) (Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Document{}, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := ReadDocument(f, format)
	if err != nil {
		return Document{}, errors.Wrap(errors.GetCode(err), err, "read %s", path)
	}
	return doc, nil
}

// ImportCrossroad reads the counts at path, ignoring any config table.
func ImportCrossroad(path string) (crossflow.Crossroad, error) {
	doc, err := ImportDocument(path)
	if err != nil {
		return crossflow.Crossroad{}, err
	}
	return doc.Crossroad(), nil
}
