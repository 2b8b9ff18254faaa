package widget

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
)

// Form is an ordered collection of widgets with unique IDs.
type Form struct {
	widgets []Widget
	byID    map[string]Widget
}

// NewForm returns a Form with the given widgets. It panics if two widgets
// have the same ID.
func NewForm(widgets ...Widget) *Form {
	f := &Form{byID: make(map[string]Widget)}
	for _, w := range widgets {
		f.Add(w)
	}
	return f
}

// Add appends a widget. It panics if a widget with the same ID exists.
func (f *Form) Add(w Widget) {
	if _, ok := f.byID[w.ID()]; ok {
		panic(fmt.Sprintf("duplicate widget ID %q", w.ID()))
	}
	f.widgets = append(f.widgets, w)
	f.byID[w.ID()] = w
}

// Widget returns the widget with the given ID.
func (f *Form) Widget(id string) (Widget, bool) {
	w, ok := f.byID[id]
	return w, ok
}

// Widgets returns all widgets in order.
func (f *Form) Widgets() []Widget { return f.widgets }

// States returns the states of all widgets in order.
func (f *Form) States() []State {
	states := make([]State, len(f.widgets))
	for i, w := range f.widgets {
		states[i] = w.State()
	}
	return states
}

// Snapshot is the states of the widgets of a Form at one point in time.
type Snapshot map[string]State

// Snapshot returns the current states of all widgets.
func (f *Form) Snapshot() Snapshot {
	s := make(Snapshot, len(f.widgets))
	for _, w := range f.widgets {
		s[w.ID()] = w.State()
	}
	return s
}

// Changes returns the states of the widgets whose state differs from the
// snapshot, in order.
func (f *Form) Changes(since Snapshot) []State {
	var changed []State
	for _, w := range f.widgets {
		s := w.State()
		if old, ok := since[w.ID()]; !ok || !cmp.Equal(old, s) {
			changed = append(changed, s)
		}
	}
	return changed
}
