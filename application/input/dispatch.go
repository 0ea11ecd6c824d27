// Package input maps discrete key events to board store operations. It is
// deliberately thin: pointer gestures go straight to the geometry kernel and
// store, only keyboard shortcuts pass through here.
package input

import (
	"github.com/AaronCarney/collabboard-sub001/application/boardstore"
)

// KeyEvent is a raw keyboard event as reported by the client surface
type KeyEvent struct {
	Key   string
	Ctrl  bool
	Meta  bool
	Shift bool
}

func (e KeyEvent) mod() bool { return e.Ctrl || e.Meta }

// FocusState tells the dispatcher whether shortcuts must be suppressed
type FocusState struct {
	// TextInputFocused is true while any text-input-like element holds focus
	TextInputFocused bool

	// EditingObjectID is the object in inline-edit mode, or ""
	EditingObjectID string
}

func (f FocusState) suppressed() bool {
	return f.TextInputFocused || f.EditingObjectID != ""
}

// Dispatcher routes shortcuts to the store. While a text input or inline
// editor holds focus every shortcut is suppressed. Single-letter tool
// shortcuts are intentionally not handled here; see DESIGN.md.
type Dispatcher struct {
	store          *boardstore.Store
	openCommandBar func()
}

// NewDispatcher creates a dispatcher bound to a store. openCommandBar fires
// on Ctrl/Cmd+K and always opens (never toggles) the AI command surface.
func NewDispatcher(store *boardstore.Store, openCommandBar func()) *Dispatcher {
	return &Dispatcher{store: store, openCommandBar: openCommandBar}
}

// Handle processes one key event. The return value reports whether the event
// was consumed and the caller should prevent the default behavior.
func (d *Dispatcher) Handle(event KeyEvent, focus FocusState) bool {
	if focus.suppressed() {
		return false
	}

	switch {
	case event.Key == "Delete" || event.Key == "Backspace":
		d.store.DeleteSelection()
		return true

	case event.Key == "Escape":
		d.store.ClearSelection()
		return true

	case (event.Key == "a" || event.Key == "A") && event.mod():
		d.store.SelectAll()
		return true

	case (event.Key == "k" || event.Key == "K") && event.mod():
		if d.openCommandBar != nil {
			d.openCommandBar()
		}
		return true
	}
	return false
}

// UndoKeys is the separate, always-on undo/redo listener. It is independent
// of the main dispatcher's edit-focus logic except that it also self-
// suppresses while a text input has focus, and it no-ops when disabled.
type UndoKeys struct {
	Enabled bool
	Undo    func()
	Redo    func()
}

// Handle processes one key event for undo/redo
func (u *UndoKeys) Handle(event KeyEvent, focus FocusState) bool {
	if !u.Enabled || focus.TextInputFocused {
		return false
	}
	if !event.mod() {
		return false
	}

	switch {
	case (event.Key == "z" || event.Key == "Z") && event.Shift:
		if u.Redo != nil {
			u.Redo()
		}
		return true

	case event.Key == "z" || event.Key == "Z":
		if u.Undo != nil {
			u.Undo()
		}
		return true

	case event.Key == "y" || event.Key == "Y":
		if u.Redo != nil {
			u.Redo()
		}
		return true
	}
	return false
}
