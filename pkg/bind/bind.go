// Package bind connects presentation models to UI components.
//
// A Context owns the bindings of one form. Binding a property creates its
// dispatcher chain, the UI updater and the edit handlers, and updates the
// component once. After every accepted edit the context validates the models
// and runs all updaters again, in the order the bindings were created.
package bind

import (
	"fmt"
	"reflect"

	"github.com/linkki-framework/linkki-sub003/pkg/aspectdef"
	"github.com/linkki-framework/linkki-sub003/pkg/binding"
	"github.com/linkki-framework/linkki-sub003/pkg/dispatch"
	"github.com/linkki-framework/linkki-sub003/pkg/logutil"
	"github.com/linkki-framework/linkki-sub003/pkg/message"
)

var logger = logutil.GetLogger("[bind] ")

// Validator returns the messages about the current state of the models.
type Validator func() message.List

// Context holds the bindings of one form. It must only be used from one
// goroutine.
type Context struct {
	name      string
	factory   *dispatch.Factory
	validate  Validator
	messages  message.List
	elements  []*Element
	listeners []func()
}

// NewContext returns an empty Context. A nil factory builds chains with the
// zero dispatch.Factory; a nil validator never reports messages.
func NewContext(name string, f *dispatch.Factory, v Validator) *Context {
	if f == nil {
		f = &dispatch.Factory{}
	}
	return &Context{name: name, factory: f, validate: v}
}

// Name returns the name of the context.
func (c *Context) Name() string { return c.name }

// Messages returns the messages of the last validation.
func (c *Context) Messages() message.List { return c.messages }

// Elements returns the bindings in the order they were created.
func (c *Context) Elements() []*Element { return c.elements }

// OnUIUpdated adds a function that is called after each complete refresh of
// the UI.
func (c *Context) OnUIUpdated(f func()) { c.listeners = append(c.listeners, f) }

// Bind binds a property of the presentation model to a component. The
// component is updated once before the edit handlers are installed. If any
// step fails the binding is not added and the component has no handlers.
//
// If the component is a MessageSink, the messages about the property are
// bound to it as well.
func (c *Context) Bind(pmo any, desc binding.Descriptor, comp aspectdef.Component, def aspectdef.Definition) (*Element, error) {
	e := &Element{ctx: c, desc: desc, comp: comp, def: def}
	b, err := e.prepare(pmo)
	if err != nil {
		return nil, err
	}
	e.built = b
	if err := e.built.update(); err != nil {
		return nil, fmt.Errorf("%v: %w", e, err)
	}
	if err := e.attach(); err != nil {
		return nil, err
	}
	c.elements = append(c.elements, e)
	logger.Printf("%s: bound %v", c.name, e)
	return e, nil
}

// Validate runs the validator if there is one.
func (c *Context) Validate() {
	if c.validate != nil {
		c.messages = c.validate()
	}
}

// ModelChanged validates the models and updates the UI. It is called after
// each accepted edit and should be called after the models are changed by
// other means.
func (c *Context) ModelChanged() error {
	c.Validate()
	return c.UpdateUI()
}

// UpdateUI runs the updaters of all bindings in the order they were created.
// It stops at the first error.
func (c *Context) UpdateUI() error {
	for _, e := range c.elements {
		if err := e.built.update(); err != nil {
			return fmt.Errorf("%v: %w", e, err)
		}
	}
	for _, f := range c.listeners {
		f()
	}
	return nil
}

// Rebind replaces the presentation model old with new in all bindings that
// use it and updates the UI. The dispatcher chains of those bindings are
// rebuilt. If any chain cannot be built, no binding is changed.
func (c *Context) Rebind(old, new any) error {
	var (
		rebound []*Element
		next    []built
	)
	for _, e := range c.elements {
		if !sameObject(e.built.pmo, old) {
			continue
		}
		b, err := e.prepare(new)
		if err != nil {
			return fmt.Errorf("%v: %w", e, err)
		}
		rebound = append(rebound, e)
		next = append(next, b)
	}
	prev := make([]built, len(rebound))
	for i, e := range rebound {
		prev[i], e.built = e.built, next[i]
		if err := e.attach(); err != nil {
			for j := i; j >= 0; j-- {
				rebound[j].built = prev[j]
				if err := rebound[j].attach(); err != nil {
					logger.Printf("%s: restore %v: %v", c.name, rebound[j], err)
				}
			}
			return err
		}
	}
	logger.Printf("%s: rebound %d bindings to %T", c.name, len(rebound), new)
	return c.UpdateUI()
}

// Remove removes all bindings of the component and the edit handlers they
// installed. It returns whether any binding was removed.
func (c *Context) Remove(comp aspectdef.Component) bool {
	kept := c.elements[:0]
	for _, e := range c.elements {
		if e.comp != comp {
			kept = append(kept, e)
		}
	}
	removed := len(kept) < len(c.elements)
	for i := len(kept); i < len(c.elements); i++ {
		c.elements[i] = nil
	}
	c.elements = kept
	if removed {
		aspectdef.Detach(comp)
	}
	return removed
}

func sameObject(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	return false
}

// Element is one binding of a property to a component.
type Element struct {
	ctx   *Context
	desc  binding.Descriptor
	comp  aspectdef.Component
	def   aspectdef.Definition
	built built
	// Warning about the last rejected edit, cleared by an accepted edit.
	input *message.Message
}

// What a binding is built from one presentation model.
type built struct {
	pmo    any
	d      dispatch.Dispatcher
	def    aspectdef.Definition
	update aspectdef.Updater
}

// Builds the chain and the updater without touching the component.
func (e *Element) prepare(pmo any) (built, error) {
	d, err := e.ctx.factory.Create(pmo, e.desc)
	if err != nil {
		return built{}, err
	}
	def := e.def
	if _, ok := e.comp.(aspectdef.MessageSink); ok {
		def = aspectdef.Compose(def, aspectdef.Messages{
			Source: e.ctx.Messages, Local: e.localMessages})
	}
	update, err := def.CreateUIUpdater(d, e.comp)
	if err != nil {
		return built{}, err
	}
	return built{pmo, d, def, update}, nil
}

// Installs the edit handlers of the current build. On failure the component
// is left without handlers.
func (e *Element) attach() error {
	err := e.built.def.InitModelUpdate(e.built.d, e.comp, aspectdef.Edit{
		Changed: e.changed, Rejected: e.rejected})
	if err != nil {
		aspectdef.Detach(e.comp)
		return fmt.Errorf("%v: %w", e, err)
	}
	return nil
}

func (e *Element) changed() error {
	e.input = nil
	return e.ctx.ModelChanged()
}

// The model is unchanged, so only this component needs updating.
func (e *Element) rejected(m message.Message) error {
	e.input = &m
	return e.built.update()
}

func (e *Element) localMessages() message.List {
	if e.input == nil {
		return nil
	}
	return message.List{*e.input}
}

// PMO returns the presentation model of the binding.
func (e *Element) PMO() any { return e.built.pmo }

// Property returns the bound property.
func (e *Element) Property() binding.BoundProperty { return e.desc.Property }

// Component returns the bound component.
func (e *Element) Component() aspectdef.Component { return e.comp }

// Dispatcher returns the head of the dispatcher chain.
func (e *Element) Dispatcher() dispatch.Dispatcher { return e.built.d }

// InputMessage returns the warning about the last rejected edit, if the
// edit has not been corrected yet.
func (e *Element) InputMessage() (message.Message, bool) {
	if e.input == nil {
		return message.Message{}, false
	}
	return *e.input, true
}

func (e *Element) String() string {
	return fmt.Sprintf("%s -> %s", e.desc.Property.Name(), e.comp.ID())
}
