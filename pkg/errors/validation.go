package errors

import (
	"errors"
	"math"
	"regexp"

	"github.com/matzehuels/crossflow/pkg/crossflow"
)

// ValidateCounts checks that every movement count is finite and non-negative.
//
// The builder accepts anything and lets bad numbers flow into the geometry,
// so this is only run when the caller asks for strict input. All offending
// fields are reported, each as a *FieldError in the cause chain.
func ValidateCounts(c crossflow.Crossroad) error {
	var errs []error
	for _, d := range crossflow.Directions {
		for _, m := range []crossflow.Movement{crossflow.Left, crossflow.Front, crossflow.Right, crossflow.Turn} {
			v := c.Count(d, m)
			field := d.String() + "." + lowerMovement[m]
			switch {
			case math.IsNaN(v) || math.IsInf(v, 0):
				errs = append(errs, &FieldError{Field: field, Reason: "must be finite"})
			case v < 0:
				errs = append(errs, &FieldError{Field: field, Reason: "must not be negative"})
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return Wrap(ErrCodeInvalidCounts, errors.Join(errs...), "%d invalid movement count(s)", len(errs))
}

var lowerMovement = map[crossflow.Movement]string{
	crossflow.Left:  "left",
	crossflow.Front: "front",
	crossflow.Right: "right",
	crossflow.Turn:  "turn",
}

// hexColorRegex matches #rgb and #rrggbb.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor accepts #rgb and #rrggbb hex colors.
func ValidateColor(color string) error {
	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidColor, "invalid color %q (want #rgb or #rrggbb)", color)
	}
	return nil
}

// ValidatePalette validates the non-empty entries of a palette.
// Empty entries select the default color and are allowed.
func ValidatePalette(p [4]string) error {
	for i, color := range p {
		if color == "" {
			continue
		}
		if err := ValidateColor(color); err != nil {
			return Wrap(ErrCodeInvalidColor, &FieldError{Field: "palette", Reason: color}, "palette entry %d: %s", i, UserMessage(err))
		}
	}
	return nil
}

// ValidateConfig rejects negative or non-finite geometry and malformed colors.
// Unset fields are valid and select defaults.
func ValidateConfig(cfg crossflow.Config) error {
	geometry := []struct {
		name  string
		value *float64
	}{
		{"box_size", cfg.BoxSize},
		{"gap", cfg.Gap},
		{"max_width", cfg.MaxWidth},
		{"height", cfg.Height},
	}
	for _, g := range geometry {
		if g.value == nil {
			continue
		}
		if v := *g.value; math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return New(ErrCodeInvalidConfig, "%s must be a non-negative number, got %v", g.name, v)
		}
	}
	if eff := cfg.Resolve(); eff.Gap >= eff.BoxSize {
		return New(ErrCodeInvalidConfig, "gap (%v) must be smaller than box_size (%v)", eff.Gap, eff.BoxSize)
	}

	if err := ValidatePalette(cfg.Palette); err != nil {
		return err
	}
	for _, color := range []string{cfg.FontColor, cfg.TextBorderColor} {
		if color == "" {
			continue
		}
		if err := ValidateColor(color); err != nil {
			return err
		}
	}
	return nil
}
