package aspectdef

import "github.com/linkki-framework/linkki-sub003/pkg/message"

// Component is a UI component, as seen by aspect definitions. The methods a
// definition needs are provided by implementing the capability interfaces
// below.
type Component interface {
	ID() string
}

// ValueHolder is implemented by components that show a value the user can
// edit. SetValue receives model values; the component formats them.
type ValueHolder interface {
	Value() any
	SetValue(v any)
	// OnEdit sets the function called with the raw value when the user
	// edits the component. The error returned by the function is reported
	// to the caller of the edit. A nil function removes the handler.
	OnEdit(f func(raw any) error)
}

// ReadOnlySetter is implemented by value holders that can prevent editing.
type ReadOnlySetter interface {
	SetReadOnly(bool)
}

type Enabler interface {
	SetEnabled(bool)
}

type Shower interface {
	SetVisible(bool)
}

type RequiredMarker interface {
	SetRequired(bool)
}

// ItemsHolder is implemented by components that offer a selection of items.
type ItemsHolder interface {
	SetItems(items []any)
}

type Captioner interface {
	SetCaption(string)
}

// Clicker is implemented by components that trigger an action. A nil
// function removes the handler.
type Clicker interface {
	OnClick(f func() error)
}

// MessageSink is implemented by components that display messages.
type MessageSink interface {
	SetMessages(message.List)
}
