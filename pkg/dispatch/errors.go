package dispatch

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/linkki-framework/linkki-sub003/pkg/accessor"
)

// ErrNotPushable is matched by errors from pushing an Aspect that is not
// pushable.
var ErrNotPushable = errors.New("not pushable")

// PropertyNotFoundError is returned when no dispatcher of a chain can pull a
// facet of a property.
type PropertyNotFoundError struct {
	Property string
	Aspect   string
	PMO      reflect.Type
	// Type of the domain object, nil if the property has none.
	Model reflect.Type
}

func (e PropertyNotFoundError) Error() string {
	if e.Model == nil {
		return fmt.Sprintf("cannot pull %s of property %q: no member on %v",
			e.Aspect, e.Property, e.PMO)
	}
	return fmt.Sprintf("cannot pull %s of property %q: no member on %v or model object %v",
		e.Aspect, e.Property, e.PMO, e.Model)
}

// Is reports whether target is accessor.ErrConfig.
func (e PropertyNotFoundError) Is(target error) bool { return target == accessor.ErrConfig }

// NotPushableError is returned when pushing an Aspect that is not pushable.
type NotPushableError struct {
	Property string
	Aspect   string
}

func (e NotPushableError) Error() string {
	return fmt.Sprintf("cannot push %s of property %q: not pushable", e.Aspect, e.Property)
}

// Is reports whether target is ErrNotPushable.
func (e NotPushableError) Is(target error) bool { return target == ErrNotPushable }

// ModelObjectNotFoundError is returned when building a chain for a property
// whose explicitly selected model object is not exposed by the presentation
// model.
type ModelObjectNotFoundError struct {
	PMO         reflect.Type
	ModelObject string
}

func (e ModelObjectNotFoundError) Error() string {
	return fmt.Sprintf("presentation model %v has no model object %q", e.PMO, e.ModelObject)
}

// Is reports whether target is accessor.ErrConfig.
func (e ModelObjectNotFoundError) Is(target error) bool { return target == accessor.ErrConfig }

// AspectTypeError is returned when a pulled facet has an unexpected type.
type AspectTypeError struct {
	Aspect string
	Want   reflect.Type
	Got    reflect.Type
}

func (e AspectTypeError) Error() string {
	return fmt.Sprintf("%s is %v, want %v", e.Aspect, e.Got, e.Want)
}

// Is reports whether target is accessor.ErrConfig.
func (e AspectTypeError) Is(target error) bool { return target == accessor.ErrConfig }

// NoEnumValuesError is returned when pulling the available values of a
// property declared with enum values whose value type has no fixed set of
// values.
type NoEnumValuesError struct {
	Property string
	Type     reflect.Type
}

func (e NoEnumValuesError) Error() string {
	return fmt.Sprintf("property %q declares enum values, but %v has no fixed set of values",
		e.Property, e.Type)
}

// Is reports whether target is accessor.ErrConfig.
func (e NoEnumValuesError) Is(target error) bool { return target == accessor.ErrConfig }
