// Package aspect defines Aspect, a named request for one facet of a bound
// property.
package aspect

import (
	"fmt"

	"github.com/linkki-framework/linkki-sub003/pkg/accessor"
)

// Names of the well-known facets. Other names are allowed and are resolved
// the same way as the well-known ones except for Value.
const (
	Value           = "value"
	Enabled         = "enabled"
	Visible         = "visible"
	Required        = "required"
	AvailableValues = "availableValues"
	Messages        = "messages"
	Caption         = "caption"
)

// Aspect is a facet name, optionally carrying a value. Aspects with the same
// name address the same facet. The zero value is not a valid Aspect.
type Aspect struct {
	name     string
	value    any
	hasValue bool
}

// Of returns an Aspect without a value. It is used for pulls, and for pushes
// that invoke an action.
func Of(name string) Aspect { return Aspect{name: name} }

// With returns an Aspect carrying the given value, which may be nil.
func With(name string, value any) Aspect {
	return Aspect{name: name, value: value, hasValue: true}
}

// Name returns the facet name.
func (a Aspect) Name() string { return a.name }

// Value returns the carried value, or nil if there is none.
func (a Aspect) Value() any { return a.value }

// HasValue reports whether the Aspect carries a value. A carried nil counts.
func (a Aspect) HasValue() bool { return a.hasValue }

func (a Aspect) String() string {
	if a.hasValue {
		return fmt.Sprintf("%s=%v", a.name, a.value)
	}
	return a.name
}

// MemberName returns the name of the host member serving the facet of the
// property. The value facet is served by the property itself; any other facet
// is served by the property name followed by the capitalized facet name, so
// the enabled facet of "foo" is served by "fooEnabled".
func MemberName(property, name string) string {
	if name == Value {
		return property
	}
	return property + accessor.Capitalize(name)
}
