package accessor

import (
	"errors"
	"reflect"
)

// error(nil) is treated as nil by reflect.TypeOf, so we first get the type of
// *error and use Elem to obtain type of error.
var errorType = reflect.TypeOf((*error)(nil)).Elem()

var errNilHost = errors.New("nil host")

// OpKind identifies the kind of an operation.
type OpKind uint8

// Possible values of OpKind.
const (
	OpRead OpKind = iota
	OpWrite
	OpInvoke
)

func (k OpKind) String() string {
	switch k {
	case OpRead:
		return "read"
	case OpWrite:
		return "write"
	case OpInvoke:
		return "invoke"
	default:
		return "unknown"
	}
}

// Common part of all operations.
type member struct {
	owner    reflect.Type
	loader   *Loader
	property string
}

// Owner returns the host type the operation was resolved for.
func (m member) Owner() reflect.Type { return m.owner }

// Loader returns the loading context of the host type.
func (m member) Loader() *Loader { return m.loader }

// Property returns the property name the operation was resolved for.
func (m member) Property() string { return m.property }

// Checks that host is an instance of the owner type from the same loading
// context.
func (m member) check(host any) (reflect.Value, error) {
	v := reflect.ValueOf(host)
	if !v.IsValid() {
		return v, TypeMismatchError{m.property, m.owner, m.loader, nil, nil}
	}
	if t := v.Type(); t != m.owner {
		return v, TypeMismatchError{m.property, m.owner, m.loader, t, LoaderOf(t)}
	} else if l := LoaderOf(t); l != m.loader {
		return v, TypeMismatchError{m.property, m.owner, m.loader, t, l}
	}
	return v, nil
}

// Converts the trailing error result of a call, if any.
func (m member) callError(op OpKind, outs []reflect.Value) error {
	if len(outs) == 0 {
		return nil
	}
	last := outs[len(outs)-1]
	if last.Type() != errorType || last.IsNil() {
		return nil
	}
	return MemberError{m.owner, m.property, op, last.Interface().(error)}
}

// ReadOp reads a property through a getter method or a field.
type ReadOp struct {
	member
	valueType reflect.Type
	read      func(v reflect.Value) ([]reflect.Value, error)
}

// ValueType returns the static type of the value read.
func (op *ReadOp) ValueType() reflect.Type { return op.valueType }

// Read reads the property of the host.
func (op *ReadOp) Read(host any) (any, error) {
	v, err := op.check(host)
	if err != nil {
		return nil, err
	}
	outs, err := op.read(v)
	if err != nil {
		return nil, MemberError{op.owner, op.property, OpRead, err}
	}
	if err := op.callError(OpRead, outs[1:]); err != nil {
		return nil, err
	}
	return outs[0].Interface(), nil
}

// WriteOp writes a property through a setter method.
type WriteOp struct {
	member
	valueType reflect.Type
	method    reflect.Method
}

// ValueType returns the type of the setter's argument.
func (op *WriteOp) ValueType() reflect.Type { return op.valueType }

// Write writes the value to the property of the host. The value must be
// assignable to the setter's argument type, or convertible between types of
// the same kind; nil is accepted for nillable argument types.
func (op *WriteOp) Write(host any, value any) error {
	v, err := op.check(host)
	if err != nil {
		return err
	}
	arg, ok := argValue(value, op.valueType)
	if !ok {
		return ValueTypeError{op.owner, op.property, op.valueType, reflect.TypeOf(value)}
	}
	outs := op.method.Func.Call([]reflect.Value{v, arg})
	return op.callError(OpWrite, outs)
}

// InvokeOp calls an action method.
type InvokeOp struct {
	member
	method reflect.Method
}

// Invoke calls the action method of the host.
func (op *InvokeOp) Invoke(host any) error {
	v, err := op.check(host)
	if err != nil {
		return err
	}
	outs := op.method.Func.Call([]reflect.Value{v})
	return op.callError(OpInvoke, outs)
}

func resolveRead(m member, name string) *ReadOp {
	if method, ok := m.owner.MethodByName("Get" + name); ok && isGetter(method.Type) {
		return methodRead(m, method)
	}
	if method, ok := m.owner.MethodByName("Is" + name); ok && isGetter(method.Type) &&
		method.Type.Out(0).Kind() == reflect.Bool {
		return methodRead(m, method)
	}
	if field, ok := exportedField(m.owner, name); ok {
		return fieldRead(m, field)
	}
	return nil
}

// Reports whether the method type (with receiver) takes no argument and
// returns a value, optionally followed by an error.
func isGetter(t reflect.Type) bool {
	switch {
	case t.NumIn() != 1:
		return false
	case t.NumOut() == 1:
		return true
	case t.NumOut() == 2:
		return t.Out(1) == errorType
	default:
		return false
	}
}

func methodRead(m member, method reflect.Method) *ReadOp {
	return &ReadOp{
		member:    m,
		valueType: method.Type.Out(0),
		read: func(v reflect.Value) ([]reflect.Value, error) {
			return method.Func.Call([]reflect.Value{v}), nil
		},
	}
}

func exportedField(t reflect.Type, name string) (reflect.StructField, bool) {
	st := t
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		return reflect.StructField{}, false
	}
	field, ok := st.FieldByName(name)
	if !ok || !field.IsExported() {
		return reflect.StructField{}, false
	}
	return field, true
}

func fieldRead(m member, field reflect.StructField) *ReadOp {
	return &ReadOp{
		member:    m,
		valueType: field.Type,
		read: func(v reflect.Value) ([]reflect.Value, error) {
			if v.Kind() == reflect.Pointer {
				if v.IsNil() {
					return nil, errNilHost
				}
				v = v.Elem()
			}
			f, err := v.FieldByIndexErr(field.Index)
			if err != nil {
				return nil, err
			}
			return []reflect.Value{f}, nil
		},
	}
}

func resolveWrite(m member, name string) *WriteOp {
	method, ok := m.owner.MethodByName("Set" + name)
	if !ok || method.Type.NumIn() != 2 || method.Type.IsVariadic() {
		return nil
	}
	return &WriteOp{m, method.Type.In(1), method}
}

func resolveInvoke(m member, name string) *InvokeOp {
	method, ok := m.owner.MethodByName(name)
	if !ok || method.Type.NumIn() != 1 {
		return nil
	}
	t := method.Type
	if t.NumOut() > 1 || (t.NumOut() == 1 && t.Out(0) != errorType) {
		return nil
	}
	return &InvokeOp{m, method}
}

// Converts value to a reflect.Value usable as an argument of type t.
func argValue(value any, t reflect.Type) (reflect.Value, bool) {
	if value == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice,
			reflect.Func, reflect.Chan:
			return reflect.Zero(t), true
		}
		return reflect.Value{}, false
	}
	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(t) {
		return v, true
	}
	if v.Kind() == t.Kind() && v.Type().ConvertibleTo(t) {
		return v.Convert(t), true
	}
	return reflect.Value{}, false
}
