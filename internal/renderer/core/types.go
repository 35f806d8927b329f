// Package core provides shared types for the renderer subsystem.
// This package breaks import cycles between the viewport and backend.
package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Attribute represents text attributes (bold, reverse, etc.).
type Attribute uint16

// Text attribute flags.
const (
	AttrNone      Attribute = 0
	AttrBold      Attribute = 1 << iota
	AttrDim                 // Faint text
	AttrItalic              // Italic text
	AttrUnderline           // Underlined text
	AttrReverse             // Swap fg/bg
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Color represents a color value.
// Supports true color (RGB) and terminal palette colors.
type Color struct {
	R, G, B uint8
	// If Indexed is true, R contains the palette index (0-255).
	Indexed bool
	// Default indicates this is the terminal's default color.
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromIndex creates an indexed palette color.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// ColorFromHex parses "#rrggbb" or "rrggbb".
func ColorFromHex(hex string) (Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return ColorDefault, fmt.Errorf("invalid hex color %q", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return ColorDefault, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return ColorFromRGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// IsDefault returns true if this is the terminal default color.
func (c Color) IsDefault() bool {
	return c.Default
}

// String returns "default", "palette(n)" or "#rrggbb".
func (c Color) String() string {
	switch {
	case c.Default:
		return "default"
	case c.Indexed:
		return fmt.Sprintf("palette(%d)", c.R)
	default:
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
}

// Style represents the visual style of text.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the default terminal style.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// WithForeground returns a new style with the given foreground color.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a new style with the given background color.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// Reverse returns a new style with reverse video.
func (s Style) Reverse() Style {
	s.Attributes = s.Attributes.With(AttrReverse)
	return s
}

// Dim returns a new style with dim text.
func (s Style) Dim() Style {
	s.Attributes = s.Attributes.With(AttrDim)
	return s
}

// Cell represents a single terminal cell.
type Cell struct {
	// Rune is the character to display.
	Rune rune

	// Width is the display width of this cell. Zero marks the trailing
	// half of a wide rune.
	Width int

	// Style is the visual style for this cell.
	Style Style
}

// EmptyCell returns an empty cell with default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Width: 1, Style: DefaultStyle()}
}

// NewStyledCell creates a cell with the given rune and style.
func NewStyledCell(r rune, style Style) Cell {
	return Cell{Rune: r, Width: RuneWidth(r), Style: style}
}

// IsContinuation returns true if this is the trailing half of a wide rune.
func (c Cell) IsContinuation() bool {
	return c.Width == 0 && c.Rune == 0
}

// ContinuationCell returns a continuation cell for wide characters.
func ContinuationCell() Cell {
	return Cell{Style: DefaultStyle()}
}

// RuneWidth returns the display width of a rune. Control characters are
// zero width.
func RuneWidth(r rune) int {
	if r < 32 || r == 0x7F {
		return 0
	}
	return runewidth.RuneWidth(r)
}

// StringWidth returns the display width of s.
func StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r)
	}
	return w
}

// CellsFromString lays s out as cells. Tabs expand to the next multiple
// of tabWidth; other zero-width runes are dropped.
func CellsFromString(s string, style Style, tabWidth int) []Cell {
	cells := make([]Cell, 0, len(s))
	for _, r := range s {
		if r == '\t' && tabWidth > 0 {
			n := tabWidth - len(cells)%tabWidth
			for i := 0; i < n; i++ {
				cells = append(cells, Cell{Rune: ' ', Width: 1, Style: style})
			}
			continue
		}
		width := RuneWidth(r)
		if width == 0 {
			continue
		}
		cells = append(cells, Cell{Rune: r, Width: width, Style: style})
		if width == 2 {
			c := ContinuationCell()
			c.Style = style
			cells = append(cells, c)
		}
	}
	return cells
}

// StringFromCells converts cells back to a string.
func StringFromCells(cells []Cell) string {
	var b strings.Builder
	for _, c := range cells {
		if !c.IsContinuation() && c.Rune != 0 {
			b.WriteRune(c.Rune)
		}
	}
	return b.String()
}

// Window returns width columns of cells starting at column from, padded
// with empty cells. A wide rune cut at either edge becomes a space.
func Window(cells []Cell, from, width int) []Cell {
	out := make([]Cell, width)
	for i := range out {
		col := from + i
		if col < 0 || col >= len(cells) {
			out[i] = EmptyCell()
			continue
		}
		c := cells[col]
		switch {
		case c.IsContinuation() && i == 0:
			c = Cell{Rune: ' ', Width: 1, Style: c.Style}
		case c.Width == 2 && i == width-1:
			c = Cell{Rune: ' ', Width: 1, Style: c.Style}
		}
		out[i] = c
	}
	return out
}

// ScreenRect is a rectangle of cells, inclusive of Top/Left and exclusive
// of Bottom/Right.
type ScreenRect struct {
	Top, Left, Bottom, Right int
}

// RectFromSize creates a rect from position and size.
func RectFromSize(top, left, height, width int) ScreenRect {
	return ScreenRect{Top: top, Left: left, Bottom: top + height, Right: left + width}
}

// Width returns the width of the rect.
func (r ScreenRect) Width() int {
	return max(0, r.Right-r.Left)
}

// Height returns the height of the rect.
func (r ScreenRect) Height() int {
	return max(0, r.Bottom-r.Top)
}

// IsEmpty returns true if the rect has no area.
func (r ScreenRect) IsEmpty() bool {
	return r.Width() == 0 || r.Height() == 0
}
