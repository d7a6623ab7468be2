package mdrtf

import "fmt"

// Config holds the page, font and dialect settings of a render.
type Config struct {
	// FontSize is the body font size in points.
	FontSize uint
	// DocWidth is the page width in millimeters. The page height follows
	// the ISO 216 aspect ratio.
	DocWidth    uint
	Flags       Flags
	ParserFlags ParserFlags
}

const (
	defaultFontSize = 12
	defaultDocWidth = 210
	minDocWidth     = 40
	// maxDocWidth keeps every derived twip value, such as the rule cell edge
	// at twice the page width, well inside 32 bits.
	maxDocWidth = 1000
)

// DefaultConfig returns a baseline configuration: 12 pt on an A4-wide page.
func DefaultConfig() Config {
	return Config{
		FontSize:    defaultFontSize,
		DocWidth:    defaultDocWidth,
		Flags:       FlagSkipUTF8BOM,
		ParserFlags: DefaultParserFlags,
	}
}

// applyConfig fills zero geometry fields with defaults. Flags are taken as
// given so callers can turn every flag off.
func applyConfig(cfg Config) Config {
	if cfg.FontSize == 0 {
		cfg.FontSize = defaultFontSize
	}
	if cfg.DocWidth == 0 {
		cfg.DocWidth = defaultDocWidth
	}
	return cfg
}

func validateConfig(cfg Config) error {
	if cfg.DocWidth < minDocWidth || cfg.DocWidth > maxDocWidth {
		return fmt.Errorf("render: document width %d mm is outside %d to %d mm", cfg.DocWidth, minDocWidth, maxDocWidth)
	}
	return nil
}
