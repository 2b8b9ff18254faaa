package accessor

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrConfig is matched by all errors that indicate that a property is
	// bound to a member that does not exist or cannot be used. Such errors
	// are defects in the binding declaration and are never retried.
	ErrConfig = errors.New("configuration error")
	// ErrTypeMismatch is matched by errors from executing an operation
	// against a host of a different type or loading context.
	ErrTypeMismatch = errors.New("type mismatch")
)

// NotFoundError is returned when an operation is requested for a property
// that has no suitable member.
type NotFoundError struct {
	Type     reflect.Type
	Property string
	Op       OpKind
}

func (e NotFoundError) Error() string {
	var want string
	name := Capitalize(e.Property)
	switch e.Op {
	case OpRead:
		want = fmt.Sprintf("method Get%s or Is%s, or field %s", name, name, name)
	case OpWrite:
		want = fmt.Sprintf("method Set%s", name)
	case OpInvoke:
		want = fmt.Sprintf("method %s", name)
	}
	return fmt.Sprintf("cannot %s property %q of %v: no %s", e.Op, e.Property, e.Type, want)
}

// Is reports whether target is ErrConfig.
func (e NotFoundError) Is(target error) bool { return target == ErrConfig }

// TypeMismatchError is returned when an operation is executed against a host
// that is not an instance of the type, or the loading context, that the
// operation was resolved for.
type TypeMismatchError struct {
	Property   string
	Want       reflect.Type
	WantLoader *Loader
	Got        reflect.Type
	GotLoader  *Loader
}

func (e TypeMismatchError) Error() string {
	if e.Got == e.Want {
		return fmt.Sprintf("type mismatch on property %q: operation for %v loaded by %v used on %v loaded by %v",
			e.Property, e.Want, e.WantLoader, e.Got, e.GotLoader)
	}
	return fmt.Sprintf("type mismatch on property %q: operation for %v (%v) used on %v (%v)",
		e.Property, e.Want, e.WantLoader, e.Got, e.GotLoader)
}

// Is reports whether target is ErrConfig or ErrTypeMismatch.
func (e TypeMismatchError) Is(target error) bool {
	return target == ErrConfig || target == ErrTypeMismatch
}

// ValueTypeError is returned when a value written to a property cannot be
// passed to the setter.
type ValueTypeError struct {
	Type     reflect.Type
	Property string
	Want     reflect.Type
	Got      reflect.Type
}

func (e ValueTypeError) Error() string {
	return fmt.Sprintf("cannot write %v to property %q of %v: setter takes %v",
		e.Got, e.Property, e.Type, e.Want)
}

// Is reports whether target is ErrConfig.
func (e ValueTypeError) Is(target error) bool { return target == ErrConfig }

// MemberError wraps an error returned by a getter, setter or action method.
type MemberError struct {
	Type     reflect.Type
	Property string
	Op       OpKind
	Err      error
}

func (e MemberError) Error() string {
	return fmt.Sprintf("%s property %q of %v: %v", e.Op, e.Property, e.Type, e.Err)
}

func (e MemberError) Unwrap() error { return e.Err }
