package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/oakwood-commons/searchbar/internal/config"
)

// KeyMode names a keybinding set.
type KeyMode string

const (
	// KeyModeDefault uses arrow keys for list navigation.
	KeyModeDefault KeyMode = "default"
	// KeyModeEmacs adds ctrl+n / ctrl+p and ctrl+g on top of the arrows.
	KeyModeEmacs KeyMode = "emacs"
)

// DefaultKeyMode is used when no keymap is configured.
const DefaultKeyMode = KeyModeDefault

// KeyMap holds the bindings the search bar reacts to. Every other key is
// handed to the text input.
type KeyMap struct {
	Down    key.Binding
	Up      key.Binding
	Commit  key.Binding
	Dismiss key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the arrow-key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Down:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
		Up:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous")),
		// Enter searches the picked item, or the typed text when nothing is picked.
		Commit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search typed or picked")),
		Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close list")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// EmacsKeyMap extends the default bindings with emacs motion keys.
func EmacsKeyMap() KeyMap {
	km := DefaultKeyMap()
	km.Down.SetKeys("down", "ctrl+n")
	km.Up.SetKeys("up", "ctrl+p")
	km.Dismiss.SetKeys("esc", "ctrl+g")
	return km
}

// KeyMapFor resolves a configured keymap name. Names are matched the way
// config validation matches them; empty selects the default.
func KeyMapFor(mode string) (KeyMap, error) {
	switch KeyMode(config.NormalizeKeymap(mode)) {
	case "", KeyModeDefault:
		return DefaultKeyMap(), nil
	case KeyModeEmacs:
		return EmacsKeyMap(), nil
	default:
		return KeyMap{}, fmt.Errorf("unknown keymap %q (expected one of: %s)", mode, strings.Join(config.Keymaps, ", "))
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Commit, k.Dismiss, k.Quit}
}
