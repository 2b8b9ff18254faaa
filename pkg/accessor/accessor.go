// Package accessor resolves read, write and invoke operations on host values
// using reflection, and caches them per host type.
//
// For a property "foo", the operations are resolved as follows:
//
//   - Read: a method GetFoo() with no arguments; otherwise a method IsFoo()
//     returning bool; otherwise an exported field Foo, through a pointer if
//     the host is a pointer to a struct.
//
//   - Write: a method SetFoo(v) with one argument. Its results are ignored,
//     except that a trailing error result is reported.
//
//   - Invoke: a method Foo() with no arguments, returning nothing or an error.
//
// Getters and action methods may return an additional trailing error. Such
// errors are wrapped in a MemberError. A panic raised by the member is not
// recovered.
//
// Resolved operations are memoized per host type, the Loader of that type and
// the property name. The Loader is part of the key so that a type that is
// reloaded under a new loading context never reuses an operation resolved for
// the previous context.
package accessor

import (
	"reflect"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Descriptor keeps the operations available for one property of one host
// type. Any of Read, Write and Invoke may be nil. A Descriptor is immutable
// once returned by a Cache.
type Descriptor struct {
	Type     reflect.Type
	Loader   *Loader
	Property string

	Read   *ReadOp
	Write  *WriteOp
	Invoke *InvokeOp
}

// CanRead reports whether the property can be read.
func (d *Descriptor) CanRead() bool { return d.Read != nil }

// CanWrite reports whether the property can be written.
func (d *Descriptor) CanWrite() bool { return d.Write != nil }

// CanInvoke reports whether the property names an action method.
func (d *Descriptor) CanInvoke() bool { return d.Invoke != nil }

type key struct {
	typ      reflect.Type
	loader   *Loader
	property string
}

// Cache memoizes Descriptors. The zero value is ready to use, and a Cache may
// be used from multiple goroutines. Lookups never lock: when two goroutines
// resolve the same key concurrently, both compute an equivalent Descriptor
// and the last one stored wins.
type Cache struct {
	descriptors sync.Map
}

// Default is the Cache used by the package-level functions.
var Default = &Cache{}

// Descriptor returns the Descriptor for the property of the given host type.
func (c *Cache) Descriptor(t reflect.Type, property string) *Descriptor {
	k := key{t, LoaderOf(t), property}
	if d, ok := c.descriptors.Load(k); ok {
		return d.(*Descriptor)
	}
	d := resolve(k)
	c.descriptors.Store(k, d)
	return d
}

// Len returns the number of memoized Descriptors.
func (c *Cache) Len() int {
	n := 0
	c.descriptors.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// CanRead reports whether the property of the host type can be read.
func (c *Cache) CanRead(t reflect.Type, property string) bool {
	return c.Descriptor(t, property).CanRead()
}

// CanWrite reports whether the property of the host type can be written.
func (c *Cache) CanWrite(t reflect.Type, property string) bool {
	return c.Descriptor(t, property).CanWrite()
}

// CanInvoke reports whether the host type has an action method for the
// property.
func (c *Cache) CanInvoke(t reflect.Type, property string) bool {
	return c.Descriptor(t, property).CanInvoke()
}

// ReadValue reads the property of the host.
func (c *Cache) ReadValue(host any, property string) (any, error) {
	d := c.Descriptor(reflect.TypeOf(host), property)
	if d.Read == nil {
		return nil, NotFoundError{d.Type, property, OpRead}
	}
	return d.Read.Read(host)
}

// WriteValue writes the property of the host.
func (c *Cache) WriteValue(host any, property string, value any) error {
	d := c.Descriptor(reflect.TypeOf(host), property)
	if d.Write == nil {
		return NotFoundError{d.Type, property, OpWrite}
	}
	return d.Write.Write(host, value)
}

// Invoke calls the action method of the host named by the property.
func (c *Cache) Invoke(host any, property string) error {
	d := c.Descriptor(reflect.TypeOf(host), property)
	if d.Invoke == nil {
		return NotFoundError{d.Type, property, OpInvoke}
	}
	return d.Invoke.Invoke(host)
}

// ReadValue is equivalent to Default.ReadValue.
func ReadValue(host any, property string) (any, error) {
	return Default.ReadValue(host, property)
}

// WriteValue is equivalent to Default.WriteValue.
func WriteValue(host any, property string, value any) error {
	return Default.WriteValue(host, property, value)
}

// Invoke is equivalent to Default.Invoke.
func Invoke(host any, property string) error {
	return Default.Invoke(host, property)
}

// Capitalize returns s with its first rune in upper case. It turns a property
// name into the exported Go identifier used to look up members.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func resolve(k key) *Descriptor {
	d := &Descriptor{Type: k.typ, Loader: k.loader, Property: k.property}
	if k.typ == nil || k.property == "" {
		return d
	}
	m := member{k.typ, k.loader, k.property}
	name := Capitalize(k.property)
	d.Read = resolveRead(m, name)
	d.Write = resolveWrite(m, name)
	d.Invoke = resolveInvoke(m, name)
	return d
}
