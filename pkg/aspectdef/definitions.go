package aspectdef

import (
	"github.com/linkki-framework/linkki-sub003/pkg/aspect"
	"github.com/linkki-framework/linkki-sub003/pkg/convert"
	"github.com/linkki-framework/linkki-sub003/pkg/dispatch"
	"github.com/linkki-framework/linkki-sub003/pkg/message"
)

// InvalidInput is the code of the warning issued for input that cannot be
// converted.
const InvalidInput = "invalidInput"

// Value binds the value facet to a ValueHolder. Its Updater also makes the
// component read-only when the value cannot be written, if the component is
// a ReadOnlySetter.
type Value struct{}

func (Value) CreateUIUpdater(d dispatch.Dispatcher, c Component) (Updater, error) {
	h, err := capability[ValueHolder](c, aspect.Value, "ValueHolder")
	if err != nil {
		return nil, err
	}
	ro, _ := c.(ReadOnlySetter)
	return func() error {
		v, err := dispatch.GetValue(d)
		if err != nil {
			return err
		}
		h.SetValue(v)
		if ro != nil {
			ro.SetReadOnly(!dispatch.CanSetValue(d))
		}
		return nil
	}, nil
}

// InitModelUpdate converts every edit to the value type of the dispatcher
// and pushes it. Input that cannot be converted is rejected with a warning
// about the component, and the model is not changed.
func (Value) InitModelUpdate(d dispatch.Dispatcher, c Component, e Edit) error {
	h, err := capability[ValueHolder](c, aspect.Value, "ValueHolder")
	if err != nil {
		return err
	}
	h.OnEdit(func(raw any) error {
		t, err := d.ValueType()
		if err != nil {
			return err
		}
		v, err := convert.ToModel(raw, t)
		if err != nil {
			return e.rejected(message.New(message.Warning, InvalidInput, err.Error(),
				message.On(c, aspect.Value)))
		}
		if err := dispatch.SetValue(d, v); err != nil {
			return err
		}
		return e.changed()
	})
	return nil
}

// Enabled binds the enabled facet to an Enabler.
type Enabled struct{ readOnly }

func (Enabled) CreateUIUpdater(d dispatch.Dispatcher, c Component) (Updater, error) {
	return boolUpdater(d, c, aspect.Enabled, "Enabler", Enabler.SetEnabled)
}

// Visible binds the visible facet to a Shower.
type Visible struct{ readOnly }

func (Visible) CreateUIUpdater(d dispatch.Dispatcher, c Component) (Updater, error) {
	return boolUpdater(d, c, aspect.Visible, "Shower", Shower.SetVisible)
}

// Required binds the required facet to a RequiredMarker.
type Required struct{ readOnly }

func (Required) CreateUIUpdater(d dispatch.Dispatcher, c Component) (Updater, error) {
	return boolUpdater(d, c, aspect.Required, "RequiredMarker", RequiredMarker.SetRequired)
}

func boolUpdater[T any](d dispatch.Dispatcher, c Component, name, capName string, set func(T, bool)) (Updater, error) {
	t, err := capability[T](c, name, capName)
	if err != nil {
		return nil, err
	}
	return func() error {
		b, err := dispatch.Pull[bool](d, name)
		if err != nil {
			return err
		}
		set(t, b)
		return nil
	}, nil
}

// AvailableValues binds the available values facet to an ItemsHolder.
type AvailableValues struct{ readOnly }

func (AvailableValues) CreateUIUpdater(d dispatch.Dispatcher, c Component) (Updater, error) {
	h, err := capability[ItemsHolder](c, aspect.AvailableValues, "ItemsHolder")
	if err != nil {
		return nil, err
	}
	return func() error {
		items, err := dispatch.AvailableValues(d)
		if err != nil {
			return err
		}
		h.SetItems(items)
		return nil
	}, nil
}

// Caption binds the caption facet to a Captioner. A non-empty Text is used
// as a static caption instead of pulling the facet.
type Caption struct {
	readOnly
	Text string
}

func (def Caption) CreateUIUpdater(d dispatch.Dispatcher, c Component) (Updater, error) {
	captioner, err := capability[Captioner](c, aspect.Caption, "Captioner")
	if err != nil {
		return nil, err
	}
	if def.Text != "" {
		return func() error {
			captioner.SetCaption(def.Text)
			return nil
		}, nil
	}
	return func() error {
		s, err := dispatch.Pull[string](d, aspect.Caption)
		if err != nil {
			return err
		}
		captioner.SetCaption(s)
		return nil
	}, nil
}

// Action binds a Clicker to the action of the property. Its Updater does
// nothing.
type Action struct{}

func (Action) CreateUIUpdater(d dispatch.Dispatcher, c Component) (Updater, error) {
	if _, err := capability[Clicker](c, "action", "Clicker"); err != nil {
		return nil, err
	}
	return Nop, nil
}

// InitModelUpdate invokes the action on every click.
func (Action) InitModelUpdate(d dispatch.Dispatcher, c Component, e Edit) error {
	cl, err := capability[Clicker](c, "action", "Clicker")
	if err != nil {
		return err
	}
	cl.OnClick(func() error {
		if err := dispatch.Invoke(d); err != nil {
			return err
		}
		return e.changed()
	})
	return nil
}

// Messages binds the messages facet to a MessageSink. Source supplies all
// current messages, from which the ones about the property are selected.
// Local supplies messages about the component itself, which are appended.
// Both may be nil.
type Messages struct {
	readOnly
	Source func() message.List
	Local  func() message.List
}

func (def Messages) CreateUIUpdater(d dispatch.Dispatcher, c Component) (Updater, error) {
	sink, err := capability[MessageSink](c, aspect.Messages, "MessageSink")
	if err != nil {
		return nil, err
	}
	return func() error {
		var all message.List
		if def.Source != nil {
			all = def.Source()
		}
		l, err := dispatch.Messages(d, all)
		if err != nil {
			return err
		}
		if def.Local != nil {
			l = append(l, def.Local()...)
		}
		sink.SetMessages(l)
		return nil
	}, nil
}
