package binding

import (
	"fmt"
	"reflect"
)

// Policy holds the policies declared for the facets of a bound property. The
// zero value declares an always enabled, always visible, not required
// property whose available values are derived from its type.
type Policy struct {
	Enabled         EnabledType
	Visible         VisibleType
	Required        RequiredType
	AvailableValues AvailableValuesType
}

// Dynamic is a Policy that resolves every facet through the presentation
// model or the domain object.
var Dynamic = Policy{DynamicEnabled, DynamicVisible, DynamicRequired, DynamicValues}

// EnabledType is the policy for the enabled facet.
type EnabledType uint8

// Possible values of EnabledType.
const (
	Enabled EnabledType = iota
	Disabled
	DynamicEnabled
)

func (t EnabledType) String() string {
	return enumName(t, "enabled", "disabled", "dynamic")
}

// VisibleType is the policy for the visible facet.
type VisibleType uint8

// Possible values of VisibleType.
const (
	Visible VisibleType = iota
	Invisible
	DynamicVisible
)

func (t VisibleType) String() string {
	return enumName(t, "visible", "invisible", "dynamic")
}

// RequiredType is the policy for the required facet.
type RequiredType uint8

// Possible values of RequiredType.
const (
	NotRequired RequiredType = iota
	Required
	// The property is required when it is enabled. Whether it is required
	// when enabled is resolved dynamically.
	RequiredIfEnabled
	DynamicRequired
)

func (t RequiredType) String() string {
	return enumName(t, "not-required", "required", "required-if-enabled", "dynamic")
}

// AvailableValuesType is the policy for the available values facet.
type AvailableValuesType uint8

// Possible values of AvailableValuesType.
const (
	// Available values are derived from the value type when it is an Enum
	// or bool, and resolved dynamically otherwise.
	Auto AvailableValuesType = iota
	NoValues
	// Available values are derived from the value type, which must be an
	// Enum or bool.
	EnumValues
	// Like EnumValues, with nil prepended.
	EnumValuesInclNil
	DynamicValues
)

func (t AvailableValuesType) String() string {
	return enumName(t, "auto", "no-values", "enum-values", "enum-values-incl-nil", "dynamic")
}

func enumName[T ~uint8](v T, names ...string) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%T(%d)", v, uint8(v))
}

// Enum is implemented by value types with a fixed set of values. EnumValues
// must not depend on the state of its receiver: it is called on the zero
// value of the type.
type Enum interface {
	EnumValues() []any
}

var enumType = reflect.TypeOf((*Enum)(nil)).Elem()

// ValuesOf returns the fixed set of values of the type, and whether it has
// one. Types implementing Enum and bool have fixed sets of values, and so do
// pointers to them, in which case nil is not part of the set.
func ValuesOf(t reflect.Type) ([]any, bool) {
	if t == nil {
		return nil, false
	}
	if t.Implements(enumType) {
		var v reflect.Value
		if t.Kind() == reflect.Pointer {
			v = reflect.New(t.Elem())
		} else {
			v = reflect.Zero(t)
		}
		return v.Interface().(Enum).EnumValues(), true
	}
	if t.Kind() == reflect.Pointer {
		return ValuesOf(t.Elem())
	}
	if t.Kind() == reflect.Bool {
		return []any{
			reflect.ValueOf(true).Convert(t).Interface(),
			reflect.ValueOf(false).Convert(t).Interface(),
		}, true
	}
	return nil, false
}
