// Package console implements the line-based operator input and the
// full-screen status display of the simulator.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/anggasct/roadlight/pkg/menu"
	"github.com/anggasct/roadlight/pkg/traffic"
)

// Display renders menus and junction status. Both the operator loop and the
// timer engine write to it, so writes are serialized.
type Display struct {
	mutex   sync.Mutex
	out     io.Writer
	palette Palette
}

// NewDisplay creates a display writing to out with the given palette
func NewDisplay(out io.Writer, palette Palette) *Display {
	return &Display{out: out, palette: palette}
}

// Clear clears the screen
func (d *Display) Clear() {
	d.write(d.palette.Clear)
}

// Welcome prints the startup banner
func (d *Display) Welcome() {
	d.write("Welcome to the traffic management system!\n")
}

// Menu prints the menu options
func (d *Display) Menu() {
	var b strings.Builder
	b.WriteString("Menu:\n")
	for _, option := range menu.Options {
		b.WriteString(option.String())
		b.WriteByte('\n')
	}
	d.write(b.String())
}

// Message prints one line of operator feedback
func (d *Display) Message(format string, args ...any) {
	d.write(fmt.Sprintf(format, args...) + "\n")
}

// Prompt prints text without a trailing newline
func (d *Display) Prompt(text string) {
	d.write(text)
}

// ShowSystem redraws the screen with the junction status
func (d *Display) ShowSystem(snapshot traffic.Snapshot) {
	d.write(d.palette.Clear + d.FormatSystem(snapshot))
}

// FormatSystem renders the status block of a snapshot
func (d *Display) FormatSystem(snapshot traffic.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "! %ds. have passed since system startup !\n", snapshot.Elapsed)
	fmt.Fprintf(&b, "! Number of roads: %d !\n", snapshot.Capacity)
	fmt.Fprintf(&b, "! Interval: %d !\n\n", snapshot.Interval)

	for _, road := range snapshot.Roads {
		if road.Open {
			fmt.Fprintf(&b, "%s will be %s\n", road.Name,
				d.palette.paint(d.palette.Open, fmt.Sprintf("open for %ds.", road.Seconds)))
			continue
		}
		fmt.Fprintf(&b, "%s will be %s\n", road.Name,
			d.palette.paint(d.palette.Closed, fmt.Sprintf("closed for %ds.", road.Seconds)))
	}

	b.WriteString("\n! Press \"Enter\" to open menu !\n")
	return b.String()
}

func (d *Display) write(text string) {
	if text == "" {
		return
	}
	d.mutex.Lock()
	defer d.mutex.Unlock()
	// console writes are treated as infallible
	_, _ = io.WriteString(d.out, text)
}
