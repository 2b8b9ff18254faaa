// Package aspectdef translates the facets of bound properties into updates of
// UI components.
//
// A Definition is stateless. For one dispatcher and one component it creates
// an Updater, which copies the current answer of the dispatcher to the
// component, and for editable facets it installs a handler that pushes user
// edits back to the dispatcher. Updaters are idempotent.
package aspectdef

import (
	"fmt"

	"github.com/linkki-framework/linkki-sub003/pkg/accessor"
	"github.com/linkki-framework/linkki-sub003/pkg/dispatch"
	"github.com/linkki-framework/linkki-sub003/pkg/message"
)

// Updater updates a component from its dispatcher.
type Updater func() error

// Nop is an Updater that does nothing.
func Nop() error { return nil }

// Edit receives the outcome of user edits. Errors returned by its functions
// are reported to the caller of the edit.
type Edit struct {
	// Changed is called after an edit has been pushed to the model.
	Changed func() error
	// Rejected is called with a warning when an edit cannot be converted
	// to the model type. The model is not changed.
	Rejected func(message.Message) error
}

func (e Edit) changed() error {
	if e.Changed != nil {
		return e.Changed()
	}
	return nil
}

func (e Edit) rejected(m message.Message) error {
	if e.Rejected != nil {
		return e.Rejected(m)
	}
	return nil
}

// Definition binds one facet of a property to a component.
type Definition interface {
	// CreateUIUpdater returns the Updater for the component. It fails if the
	// component lacks a needed capability.
	CreateUIUpdater(d dispatch.Dispatcher, c Component) (Updater, error)
	// InitModelUpdate installs the handlers that push user input to the
	// dispatcher. Definitions of facets that cannot be edited do nothing.
	InitModelUpdate(d dispatch.Dispatcher, c Component, e Edit) error
}

// Detach removes the handlers InitModelUpdate may have installed on the
// component. Afterwards the component no longer changes any model.
func Detach(c Component) {
	if h, ok := c.(ValueHolder); ok {
		h.OnEdit(nil)
	}
	if cl, ok := c.(Clicker); ok {
		cl.OnClick(nil)
	}
}

// MissingCapabilityError is returned when a definition is used with a
// component that does not implement a capability it needs.
type MissingCapabilityError struct {
	Aspect     string
	Component  string
	Capability string
}

func (e MissingCapabilityError) Error() string {
	return fmt.Sprintf("cannot bind %s to component %s: does not implement %s",
		e.Aspect, e.Component, e.Capability)
}

// Is reports whether target is accessor.ErrConfig.
func (e MissingCapabilityError) Is(target error) bool { return target == accessor.ErrConfig }

func capability[T any](c Component, aspect, name string) (T, error) {
	t, ok := c.(T)
	if !ok {
		return t, MissingCapabilityError{aspect, c.ID(), name}
	}
	return t, nil
}

type readOnly struct{}

func (readOnly) InitModelUpdate(dispatch.Dispatcher, Component, Edit) error { return nil }

// Compose returns a Definition combining the given ones. Its Updater runs the
// Updaters of the definitions in order and stops at the first error.
func Compose(defs ...Definition) Definition { return composite(defs) }

type composite []Definition

func (cs composite) CreateUIUpdater(d dispatch.Dispatcher, c Component) (Updater, error) {
	updaters := make([]Updater, len(cs))
	for i, def := range cs {
		u, err := def.CreateUIUpdater(d, c)
		if err != nil {
			return nil, err
		}
		updaters[i] = u
	}
	return func() error {
		for _, u := range updaters {
			if err := u(); err != nil {
				return err
			}
		}
		return nil
	}, nil
}

func (cs composite) InitModelUpdate(d dispatch.Dispatcher, c Component, e Edit) error {
	for _, def := range cs {
		if err := def.InitModelUpdate(d, c, e); err != nil {
			return err
		}
	}
	return nil
}
