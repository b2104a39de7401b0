// Package pipeline provides the build → export pipeline shared by the CLI and
// the HTTP service.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Build: turn counts and a style config into a chart option
//  2. Export: encode the option in one or more formats (json, dot)
//
// Each stage is cached under a content-addressed key, so re-running with the
// same counts and style is a cache hit.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Counts:  counts,
//	    Formats: []string{"json", "dot"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	optionJSON := result.Artifacts["json"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/crossflow/pkg/crossflow"
	"github.com/matzehuels/crossflow/pkg/errors"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// DefaultFormat is exported when no format is requested.
const DefaultFormat = FormatJSON

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build options
	Counts  crossflow.Crossroad `json:"counts"`
	Config  crossflow.Config    `json:"config"`
	Strict  bool                `json:"strict,omitempty"` // Reject negative and non-finite counts
	Refresh bool                `json:"refresh,omitempty"`

	// Export options
	Formats   []string `json:"formats,omitempty"`
	DOTLabels bool     `json:"dot_labels,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Option is the built chart option.
	Option crossflow.Option

	// OptionHash is the content hash of the option.
	OptionHash string

	// Totals are the aggregate flows the option was scaled from.
	Totals crossflow.Totals

	// Artifacts contains exported outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LinkCount  int
	BuildTime  time.Duration
	ExportTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit  bool // Whether the option came from cache
	ExportHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults for the full
// pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForExport(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild validates the style config and, in strict mode, the counts.
// Without Strict any counts are accepted and flow through the geometry as-is.
func (o *Options) ValidateForBuild() error {
	if err := errors.ValidateConfig(o.Config); err != nil {
		return err
	}
	if o.Strict {
		if err := errors.ValidateCounts(o.Counts); err != nil {
			return err
		}
	}
	o.setLoggerDefault()
	return nil
}

// SetExportDefaults sets default values for exporting.
func (o *Options) SetExportDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	o.setLoggerDefault()
}

// ValidateForExport validates and sets defaults for exporting.
func (o *Options) ValidateForExport() error {
	o.SetExportDefaults()
	return ValidateFormats(o.Formats)
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
