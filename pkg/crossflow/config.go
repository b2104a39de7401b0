package crossflow

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultBoxSize is the side of the square the approaches sit on.
	DefaultBoxSize = 100.0

	// DefaultGap separates the paired inbound/outbound tracks of an approach.
	DefaultGap = 40.0

	// DefaultMaxWidth is the pixel width given to the busiest aggregate flow.
	DefaultMaxWidth = 10.0

	// DefaultHeight is the thickness of the aggregate markers.
	DefaultHeight = 20.0

	// DefaultFontColor is the label text color.
	DefaultFontColor = "#fff"

	// DefaultTextBorderColor is the label outline color.
	DefaultTextBorderColor = "#333"
)

// DefaultPalette colors the approaches, indexed north, west, east, south.
var DefaultPalette = [4]string{"#5b47c2", "#e50100", "#159e56", "#ff8801"}

// =============================================================================
// Config
// =============================================================================

// Config holds the geometric and visual parameters of the diagram.
// Every field is optional: a nil geometry field or an empty color selects the
// default, while an explicit zero (e.g. Gap: Float(0)) is kept as given.
type Config struct {
	BoxSize         *float64  `json:"boxSize,omitempty" toml:"box_size,omitempty" yaml:"box_size,omitempty" koanf:"box_size"`
	Gap             *float64  `json:"gap,omitempty" toml:"gap,omitempty" yaml:"gap,omitempty" koanf:"gap"`
	MaxWidth        *float64  `json:"maxWidth,omitempty" toml:"max_width,omitempty" yaml:"max_width,omitempty" koanf:"max_width"`
	Height          *float64  `json:"height,omitempty" toml:"height,omitempty" yaml:"height,omitempty" koanf:"height"`
	Palette         [4]string `json:"colorList,omitempty" toml:"palette" yaml:"palette" koanf:"palette"`
	FontColor       string    `json:"fontColor,omitempty" toml:"font_color" yaml:"font_color" koanf:"font_color"`
	TextBorderColor string    `json:"textBorderColor,omitempty" toml:"text_border_color" yaml:"text_border_color" koanf:"text_border_color"`
}

// Float returns a pointer to v, for setting Config geometry fields.
func Float(v float64) *float64 {
	return &v
}

// DefaultConfig returns a Config with every field set to its default.
func DefaultConfig() Config {
	return Config{}.WithDefaults()
}

// WithDefaults returns a copy of c with unset fields replaced by defaults.
// Palette entries are filled individually.
func (c Config) WithDefaults() Config {
	s := c.Resolve()
	return Config{
		BoxSize:         Float(s.BoxSize),
		Gap:             Float(s.Gap),
		MaxWidth:        Float(s.MaxWidth),
		Height:          Float(s.Height),
		Palette:         s.Palette,
		FontColor:       s.FontColor,
		TextBorderColor: s.TextBorderColor,
	}
}

// Resolve applies the defaults and returns the style the builder draws with.
func (c Config) Resolve() Style {
	s := Style{
		BoxSize:         valueOr(c.BoxSize, DefaultBoxSize),
		Gap:             valueOr(c.Gap, DefaultGap),
		MaxWidth:        valueOr(c.MaxWidth, DefaultMaxWidth),
		Height:          valueOr(c.Height, DefaultHeight),
		Palette:         c.Palette,
		FontColor:       c.FontColor,
		TextBorderColor: c.TextBorderColor,
	}
	for i, color := range s.Palette {
		if color == "" {
			s.Palette[i] = DefaultPalette[i]
		}
	}
	if s.FontColor == "" {
		s.FontColor = DefaultFontColor
	}
	if s.TextBorderColor == "" {
		s.TextBorderColor = DefaultTextBorderColor
	}
	return s
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// Merge returns c with every set field of o applied on top.
func (c Config) Merge(o Config) Config {
	if o.BoxSize != nil {
		c.BoxSize = o.BoxSize
	}
	if o.Gap != nil {
		c.Gap = o.Gap
	}
	if o.MaxWidth != nil {
		c.MaxWidth = o.MaxWidth
	}
	if o.Height != nil {
		c.Height = o.Height
	}
	for i, color := range o.Palette {
		if color != "" {
			c.Palette[i] = color
		}
	}
	if o.FontColor != "" {
		c.FontColor = o.FontColor
	}
	if o.TextBorderColor != "" {
		c.TextBorderColor = o.TextBorderColor
	}
	return c
}

// =============================================================================
// Style
// =============================================================================

// Style is a Config with every default applied.
type Style struct {
	BoxSize         float64
	Gap             float64
	MaxWidth        float64
	Height          float64
	Palette         [4]string
	FontColor       string
	TextBorderColor string
}

// Color returns the palette color of approach d.
func (s Style) Color(d Direction) string {
	return s.Palette[sides[d].color]
}
