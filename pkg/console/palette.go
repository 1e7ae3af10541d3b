package console

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

// Palette holds the terminal control sequences used by the display. The zero
// value renders plain text and never clears the screen.
type Palette struct {
	Open   string
	Closed string
	Reset  string
	Clear  string
}

// ANSIPalette returns the green/red palette with ANSI screen clearing
func ANSIPalette() Palette {
	return Palette{
		Open:   "\u001B[32m",
		Closed: "\u001B[31m",
		Reset:  "\u001B[0m",
		Clear:  "\u001B[H\u001B[2J",
	}
}

// PlainPalette returns a palette without control sequences
func PlainPalette() Palette {
	return Palette{}
}

// ColorMode selects when the ANSI palette is used
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a color mode name
func ParseColorMode(value string) (ColorMode, error) {
	switch mode := ColorMode(value); mode {
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	}
	return "", fmt.Errorf("unknown color mode %q (expected auto, always or never)", value)
}

// NewPalette picks the palette for mode. In auto mode the ANSI palette is
// used only when out is a terminal.
func NewPalette(mode ColorMode, out *os.File) Palette {
	switch mode {
	case ColorAlways:
		return ANSIPalette()
	case ColorNever:
		return PlainPalette()
	}
	if out != nil && (isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())) {
		return ANSIPalette()
	}
	return PlainPalette()
}

func (p Palette) paint(code, text string) string {
	if code == "" {
		return text
	}
	return code + text + p.Reset
}
