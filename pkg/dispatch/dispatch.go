// Package dispatch resolves the facets of a bound property through a chain of
// dispatchers.
//
// A chain is built by a Factory for one presentation model and one bound
// property. Its head is asked first; every link either answers a request for
// an Aspect completely or forwards the same Aspect to the link it wraps. The
// last link is an Exception, which answers every request with an error, so a
// pull always ends in a value or an error.
//
// Links that read the presentation model or its domain object are
// Reflective. The presentation model link wraps the domain object link, so
// members of the presentation model take precedence. A DeclarativeOverride
// answers facets whose policy was fixed when the binding was declared, and a
// BehaviorOverride applies environment-wide rules on top.
package dispatch

import (
	"reflect"
	"strings"

	"github.com/linkki-framework/linkki-sub003/pkg/aspect"
	"github.com/linkki-framework/linkki-sub003/pkg/logutil"
	"github.com/linkki-framework/linkki-sub003/pkg/message"
)

var logger = logutil.GetLogger("[dispatch] ")

// Dispatcher resolves the facets of one bound property.
type Dispatcher interface {
	// Kind returns the kind of the dispatcher.
	Kind() Kind
	// Pull returns the value of the facet named by the Aspect.
	Pull(a aspect.Aspect) (any, error)
	// Push writes the value carried by the Aspect to the facet, or invokes
	// the facet's action if the Aspect carries no value. It fails with an
	// error matching ErrNotPushable if IsPushable would return false.
	Push(a aspect.Aspect) error
	// IsPushable reports whether Push would find a member to write or
	// invoke. A read-only property is not an error.
	IsPushable(a aspect.Aspect) bool
	// ValueType returns the type of the value facet.
	ValueType() (reflect.Type, error)
	// BoundObjects returns the objects the property is bound to, domain
	// object first.
	BoundObjects() []any
	String() string
}

// Kind identifies the variant of a Dispatcher.
type Kind uint8

// Possible values of Kind.
const (
	ExceptionKind Kind = iota
	ReflectiveKind
	BehaviorOverrideKind
	DeclarativeOverrideKind
)

func (k Kind) String() string {
	switch k {
	case ExceptionKind:
		return "exception"
	case ReflectiveKind:
		return "reflective"
	case BehaviorOverrideKind:
		return "behavior-override"
	case DeclarativeOverrideKind:
		return "declarative-override"
	default:
		return "unknown"
	}
}

// Wrapper is implemented by dispatchers that forward to another one.
type Wrapper interface {
	Wrapped() Dispatcher
}

// Chain returns the dispatchers of the chain starting at d, head first.
func Chain(d Dispatcher) []Dispatcher {
	var chain []Dispatcher
	for d != nil {
		chain = append(chain, d)
		w, ok := d.(Wrapper)
		if !ok {
			break
		}
		d = w.Wrapped()
	}
	return chain
}

// Describe returns a description of the chain starting at d.
func Describe(d Dispatcher) string {
	var sb strings.Builder
	for i, d := range Chain(d) {
		if i > 0 {
			sb.WriteString(" -> ")
		}
		sb.WriteString(d.String())
	}
	return sb.String()
}

// GetValue pulls the value facet.
func GetValue(d Dispatcher) (any, error) {
	return d.Pull(aspect.Of(aspect.Value))
}

// SetValue pushes v to the value facet.
func SetValue(d Dispatcher, v any) error {
	return d.Push(aspect.With(aspect.Value, v))
}

// CanSetValue reports whether the value facet can be written.
func CanSetValue(d Dispatcher) bool {
	return d.IsPushable(aspect.With(aspect.Value, nil))
}

// Invoke invokes the action of the property.
func Invoke(d Dispatcher) error {
	return d.Push(aspect.Of(aspect.Value))
}

// CanInvoke reports whether the property has an action.
func CanInvoke(d Dispatcher) bool {
	return d.IsPushable(aspect.Of(aspect.Value))
}

// IsEnabled pulls the enabled facet.
func IsEnabled(d Dispatcher) (bool, error) { return Pull[bool](d, aspect.Enabled) }

// IsVisible pulls the visible facet.
func IsVisible(d Dispatcher) (bool, error) { return Pull[bool](d, aspect.Visible) }

// IsRequired pulls the required facet.
func IsRequired(d Dispatcher) (bool, error) { return Pull[bool](d, aspect.Required) }

// AvailableValues pulls the available values facet. Any slice or array is
// accepted from the host.
func AvailableValues(d Dispatcher) ([]any, error) {
	v, err := d.Pull(aspect.Of(aspect.AvailableValues))
	if err != nil {
		return nil, err
	}
	return toSlice(aspect.AvailableValues, v)
}

// Messages pulls the messages facet, selecting from all the messages about
// the objects the property is bound to.
func Messages(d Dispatcher, all message.List) (message.List, error) {
	v, err := d.Pull(aspect.With(aspect.Messages, all))
	if err != nil {
		return nil, err
	}
	l, ok := v.(message.List)
	if !ok && v != nil {
		return nil, AspectTypeError{aspect.Messages, reflect.TypeOf(l), reflect.TypeOf(v)}
	}
	return l, nil
}

// Pull pulls the named facet and checks that its value is of type T.
func Pull[T any](d Dispatcher, name string) (T, error) {
	var zero T
	v, err := d.Pull(aspect.Of(name))
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, AspectTypeError{name, reflect.TypeOf(&zero).Elem(), reflect.TypeOf(v)}
	}
	return t, nil
}

func toSlice(name string, v any) ([]any, error) {
	if v == nil {
		return nil, nil
	}
	if s, ok := v.([]any); ok {
		return s, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, AspectTypeError{name, reflect.TypeOf([]any(nil)), rv.Type()}
	}
	s := make([]any, rv.Len())
	for i := range s {
		s[i] = rv.Index(i).Interface()
	}
	return s, nil
}

// Reports whether v is nil or a nil value of a nillable kind.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
