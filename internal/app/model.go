// Package app holds guidebook's application state and the loop that applies
// messages to it.
package app

import (
	"errors"
	"fmt"

	"github.com/ziadkadry99/guidebook/internal/guide"
)

// Mode is the color theme.
type Mode int

const (
	Light Mode = iota
	Dark
)

// Toggle returns the complementary mode.
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

func (m Mode) String() string {
	if m == Dark {
		return "dark"
	}
	return "light"
}

// Label is the capitalized display name of the mode.
func (m Mode) Label() string {
	if m == Dark {
		return "Dark"
	}
	return "Light"
}

// ParseMode parses "light" or "dark".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "light", "":
		return Light, nil
	case "dark":
		return Dark, nil
	default:
		return Light, fmt.Errorf("invalid mode %q: must be light or dark", s)
	}
}

// ErrUnknownMessage is returned by ParseMsg for names no message uses.
var ErrUnknownMessage = errors.New("unknown message")

// Msg is a message the update loop understands.
type Msg int

const (
	// ToggleMode switches the session between light and dark mode.
	ToggleMode Msg = iota + 1
)

// Name is the wire name of the message.
func (m Msg) Name() string {
	switch m {
	case ToggleMode:
		return "toggle-mode"
	default:
		return ""
	}
}

// ParseMsg maps a wire name back to its message.
func ParseMsg(name string) (Msg, error) {
	switch name {
	case ToggleMode.Name():
		return ToggleMode, nil
	default:
		return 0, fmt.Errorf("%w %q", ErrUnknownMessage, name)
	}
}

// Model is the state a page is rendered from.
type Model struct {
	Guides         guide.Guides
	Mode           Mode
	InPrerendering bool
}

// Update applies msg to m and returns the new model.
func Update(m Model, msg Msg) Model {
	switch msg {
	case ToggleMode:
		m.Mode = m.Mode.Toggle()
	}
	return m
}
