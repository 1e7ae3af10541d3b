package console

import (
	"bufio"
	"io"
	"strings"

	"github.com/anggasct/roadlight/pkg/menu"
)

const (
	incorrectInputPrompt = "Error! Incorrect Input. Try again: "
	incorrectOption      = "Incorrect option"
	roadNamePrompt       = "Input road name: "
)

// Screen is the part of the display the input flow needs for prompts and
// for redrawing the menu after an invalid option
type Screen interface {
	Clear()
	Menu()
	Message(format string, args ...any)
	Prompt(text string)
}

// Input reads operator input line by line. Validation failures re-prompt in
// a loop until valid input or end of input.
type Input struct {
	reader *bufio.Reader
	screen Screen
}

// NewInput creates an input reading from r and prompting on screen
func NewInput(r io.Reader, screen Screen) *Input {
	return &Input{
		reader: bufio.NewReader(r),
		screen: screen,
	}
}

// PositiveInt prompts until a positive whole number is entered
func (in *Input) PositiveInt(prompt string) (int, error) {
	in.screen.Prompt(prompt)
	for {
		line, err := in.readLine()
		if err != nil {
			return 0, err
		}
		value, err := ParsePositiveInt(strings.TrimSpace(line))
		if err == nil {
			return value, nil
		}
		in.screen.Prompt(incorrectInputPrompt)
	}
}

// RoadName prompts for a road name, taken as typed
func (in *Input) RoadName() (string, error) {
	in.screen.Prompt(roadNamePrompt)
	return in.readLine()
}

// MenuOption shows the menu and reads a selection. An invalid selection is
// reported and acknowledged, then the menu is redrawn.
func (in *Input) MenuOption() (menu.Option, error) {
	in.screen.Menu()
	for {
		line, err := in.readLine()
		if err != nil {
			return 0, err
		}
		option, err := ParseMenuOption(strings.TrimSpace(line))
		if err == nil {
			return option, nil
		}

		in.screen.Message(incorrectOption)
		if _, err := in.readLine(); err != nil {
			return 0, err
		}
		in.screen.Clear()
		in.screen.Menu()
	}
}

// WaitContinue blocks until an empty line is entered
func (in *Input) WaitContinue() error {
	for {
		line, err := in.readLine()
		if err != nil {
			return err
		}
		if line == "" {
			return nil
		}
	}
}

// Acknowledge blocks until any line is entered
func (in *Input) Acknowledge() error {
	_, err := in.readLine()
	return err
}

// readLine returns the next line without its line ending. A final line
// without a newline is returned before io.EOF.
func (in *Input) readLine() (string, error) {
	line, err := in.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
