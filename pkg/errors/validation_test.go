package errors

import (
	"errors"
	"math"
	"testing"

	"github.com/matzehuels/crossflow/pkg/crossflow"
)

func TestValidateCounts(t *testing.T) {
	tests := []struct {
		name    string
		input   crossflow.Crossroad
		wantErr bool
	}{
		{"empty", crossflow.Crossroad{}, false},
		{"integers", crossflow.Crossroad{North: crossflow.Movements{Left: 3, Front: 12, Right: 4, Turn: 1}}, false},
		{"fractions", crossflow.Crossroad{East: crossflow.Movements{Front: 0.5}}, false},

		{"negative", crossflow.Crossroad{South: crossflow.Movements{Left: -1}}, true},
		{"NaN", crossflow.Crossroad{West: crossflow.Movements{Turn: math.NaN()}}, true},
		{"infinite", crossflow.Crossroad{North: crossflow.Movements{Right: math.Inf(1)}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCounts(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCounts() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidCounts) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidCounts)
			}
		})
	}
}

func TestValidateCountsReportsEveryField(t *testing.T) {
	c := crossflow.Crossroad{
		South: crossflow.Movements{Left: -1},
		East:  crossflow.Movements{Turn: math.Inf(-1)},
	}
	err := ValidateCounts(c)
	if err == nil {
		t.Fatal("expected error")
	}
	if UserMessage(err) != "2 invalid movement count(s)" {
		t.Errorf("UserMessage() = %q", UserMessage(err))
	}

	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatal("no *FieldError in chain")
	}
	if fe.Field != "s.left" {
		t.Errorf("first field = %q, want s.left", fe.Field)
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"#fff", false},
		{"#5b47c2", false},
		{"#FF8801", false},

		{"", true},
		{"fff", true},
		{"#ffff", true},
		{"#gggggg", true},
		{"red", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePalette(t *testing.T) {
	if err := ValidatePalette([4]string{}); err != nil {
		t.Errorf("empty palette: %v", err)
	}
	if err := ValidatePalette([4]string{"#000", "", "#123456", ""}); err != nil {
		t.Errorf("partial palette: %v", err)
	}
	err := ValidatePalette([4]string{"#000", "blue"})
	if !Is(err, ErrCodeInvalidColor) {
		t.Errorf("ValidatePalette() = %v, want INVALID_COLOR", err)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     crossflow.Config
		wantErr bool
	}{
		{"zero", crossflow.Config{}, false},
		{"defaults", crossflow.DefaultConfig(), false},
		{"custom", crossflow.Config{BoxSize: crossflow.Float(300), Gap: crossflow.Float(60), FontColor: "#000"}, false},
		{"explicit zero gap", crossflow.Config{Gap: crossflow.Float(0)}, false},

		{"negative height", crossflow.Config{Height: crossflow.Float(-1)}, true},
		{"NaN width", crossflow.Config{MaxWidth: crossflow.Float(math.NaN())}, true},
		{"gap too wide", crossflow.Config{Gap: crossflow.Float(100)}, true},
		{"zero box size", crossflow.Config{BoxSize: crossflow.Float(0)}, true},
		{"bad font color", crossflow.Config{FontColor: "white"}, true},
		{"bad palette", crossflow.Config{Palette: [4]string{"", "", "", "#12"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
