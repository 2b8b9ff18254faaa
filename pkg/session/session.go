// Package session serializes the use of a form by user interfaces and
// reports the widgets changed by each interaction.
package session

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/linkki-framework/linkki-sub003/pkg/widget"
)

var (
	// ErrNoWidget is returned for an unknown widget ID.
	ErrNoWidget = errors.New("no such widget")
	// ErrUnsupported is returned when a widget does not support an
	// interaction.
	ErrUnsupported = errors.New("interaction not supported by widget")
)

// Form is a form with bound widgets.
type Form interface {
	Widgets() *widget.Form
	// Refresh validates the models and updates all widgets.
	Refresh() error
}

var lastID int64

// Session is one user's access to a form. Its methods may be called from
// any goroutine; the form is only used by one at a time.
type Session struct {
	id        int64
	mu        sync.Mutex
	form      Form
	listeners []func([]widget.State)
}

// New returns a session of the form.
func New(f Form) *Session {
	return &Session{id: atomic.AddInt64(&lastID, 1), form: f}
}

// ID returns a positive ID unique within the process.
func (s *Session) ID() int64 { return s.id }

// OnUpdate adds a function that is called with the states of the changed
// widgets after each interaction that changed any. It is called without
// holding the session lock.
func (s *Session) OnUpdate(f func([]widget.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, f)
}

// States returns the states of all widgets.
func (s *Session) States() []widget.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Widgets().States()
}

// Edit sets the text of a text field.
func (s *Session) Edit(id, text string) error {
	return s.with(id, func(w widget.Widget) error {
		t, ok := w.(*widget.TextField)
		if !ok {
			return unsupported(w, "edit")
		}
		return t.Edit(text)
	})
}

// Toggle toggles a check box.
func (s *Session) Toggle(id string) error {
	return s.with(id, func(w widget.Widget) error {
		c, ok := w.(*widget.CheckBox)
		if !ok {
			return unsupported(w, "toggle")
		}
		return c.Toggle()
	})
}

// Select chooses the item at index i of a select.
func (s *Session) Select(id string, i int) error {
	return s.with(id, func(w widget.Widget) error {
		sel, ok := w.(*widget.Select)
		if !ok {
			return unsupported(w, "select")
		}
		return sel.Choose(i)
	})
}

// Click clicks a button.
func (s *Session) Click(id string) error {
	return s.with(id, func(w widget.Widget) error {
		b, ok := w.(*widget.Button)
		if !ok {
			return unsupported(w, "click")
		}
		return b.Click()
	})
}

// Refresh refreshes the form.
func (s *Session) Refresh() error {
	return s.do(func() error { return s.form.Refresh() })
}

func (s *Session) with(id string, f func(widget.Widget) error) error {
	return s.do(func() error {
		w, ok := s.form.Widgets().Widget(id)
		if !ok {
			return fmt.Errorf("%w: %q", ErrNoWidget, id)
		}
		return f(w)
	})
}

// Runs f and notifies the listeners of the changes, even if f fails.
func (s *Session) do(f func() error) error {
	s.mu.Lock()
	widgets := s.form.Widgets()
	snap := widgets.Snapshot()
	err := f()
	changes := widgets.Changes(snap)
	listeners := s.listeners
	s.mu.Unlock()

	if len(changes) > 0 {
		for _, l := range listeners {
			l(changes)
		}
	}
	return err
}

func unsupported(w widget.Widget, action string) error {
	return fmt.Errorf("%w: cannot %s %s widget %q", ErrUnsupported, action, w.State().Kind, w.ID())
}
