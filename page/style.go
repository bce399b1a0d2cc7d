package page

import (
	"errors"
	"fmt"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/goccy/go-yaml"
)

// ErrInvalidStylesheet indicates a stylesheet that could not be parsed.
var ErrInvalidStylesheet = errors.New("invalid stylesheet")

// Style describes how a piece of text is rendered. The zero Style renders
// text unchanged.
type Style struct {
	// Color is any colour lipgloss understands: an ANSI index such as "9"
	// or a hex value such as "#ff5f87".
	Color string `yaml:"color,omitempty"`
	Bold  bool   `yaml:"bold,omitempty"`
	Faint bool   `yaml:"faint,omitempty"`
}

// Render applies the style to text.
func (s Style) Render(text string) string {
	if s == (Style{}) {
		return text
	}

	ls := lipgloss.NewStyle().Bold(s.Bold).Faint(s.Faint)
	if s.Color != "" {
		ls = ls.Foreground(lipgloss.Color(s.Color))
	}

	return ls.Render(text)
}

// Stylesheet maps levels to styles for page rendering. A nil Stylesheet
// renders everything unstyled.
type Stylesheet struct {
	Levels  map[string]Style `yaml:"levels,omitempty"`
	Heading Style            `yaml:"heading,omitempty"`
}

// DefaultStylesheet returns the stylesheet used when none is configured.
func DefaultStylesheet() *Stylesheet {
	return &Stylesheet{
		Heading: Style{Bold: true},
		Levels: map[string]Style{
			"debug": {Faint: true},
			"info":  {},
			"warn":  {Color: "11"},
			"error": {Color: "9", Bold: true},
		},
	}
}

// ParseStylesheet decodes a YAML stylesheet:
//
//	heading:
//	  bold: true
//	levels:
//	  warn:
//	    color: "11"
//	  error:
//	    color: "#ff5f87"
//	    bold: true
func ParseStylesheet(data []byte) (*Stylesheet, error) {
	var s Stylesheet

	err := yaml.Unmarshal(data, &s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStylesheet, err)
	}

	return &s, nil
}

// LoadStylesheet reads and parses the stylesheet at path.
func LoadStylesheet(path string) (*Stylesheet, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Stylesheet path comes from configuration.
	if err != nil {
		return nil, fmt.Errorf("read stylesheet: %w", err)
	}

	s, err := ParseStylesheet(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// RenderLevel renders text with the style configured for level.
func (s *Stylesheet) RenderLevel(level, text string) string {
	if s == nil {
		return text
	}

	return s.Levels[level].Render(text)
}

// RenderHeading renders text with the heading style.
func (s *Stylesheet) RenderHeading(text string) string {
	if s == nil {
		return text
	}

	return s.Heading.Render(text)
}
