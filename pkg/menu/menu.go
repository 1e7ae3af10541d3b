// Package menu defines the operator menu options.
package menu

import "fmt"

// Option is a menu selection
type Option int

const (
	Quit       Option = 0
	Add        Option = 1
	Delete     Option = 2
	OpenSystem Option = 3
)

// Options lists the menu entries in display order
var Options = []Option{Add, Delete, OpenSystem, Quit}

// Label returns the menu text of the option
func (o Option) Label() string {
	switch o {
	case Add:
		return "Add road"
	case Delete:
		return "Delete road"
	case OpenSystem:
		return "Open system"
	case Quit:
		return "Quit"
	default:
		return fmt.Sprintf("Option(%d)", int(o))
	}
}

// String returns the menu line of the option, e.g. "1. Add road"
func (o Option) String() string {
	return fmt.Sprintf("%d. %s", int(o), o.Label())
}

// IsValid reports whether the option is one of the menu entries
func (o Option) IsValid() bool {
	switch o {
	case Add, Delete, OpenSystem, Quit:
		return true
	}
	return false
}
