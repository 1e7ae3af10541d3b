package console

import (
	"strconv"

	"github.com/anggasct/roadlight/pkg/menu"
)

// ParsePositiveInt accepts digits only with a value greater than zero
func ParsePositiveInt(input string) (int, error) {
	if !isDigits(input) {
		return 0, NewInvalidIntegerInputError(input)
	}
	value, err := strconv.Atoi(input)
	if err != nil || value <= 0 {
		return 0, NewInvalidIntegerInputError(input)
	}
	return value, nil
}

// ParseMenuOption accepts a single digit naming one of the menu options
func ParseMenuOption(input string) (menu.Option, error) {
	if len(input) != 1 || !isDigits(input) {
		return 0, NewInvalidMenuOptionError(input)
	}
	option := menu.Option(input[0] - '0')
	if !option.IsValid() {
		return 0, NewInvalidMenuOptionError(input)
	}
	return option, nil
}

func isDigits(input string) bool {
	if input == "" {
		return false
	}
	for i := 0; i < len(input); i++ {
		if input[i] < '0' || input[i] > '9' {
			return false
		}
	}
	return true
}
