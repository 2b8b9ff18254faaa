package dispatch

import (
	"fmt"
	"reflect"

	"github.com/linkki-framework/linkki-sub003/pkg/accessor"
	"github.com/linkki-framework/linkki-sub003/pkg/aspect"
	"github.com/linkki-framework/linkki-sub003/pkg/message"
)

// Reflective answers the facets of a property for which its host has a
// member, and forwards everything else to Next.
//
// The host is obtained from Host on every call, so a presentation model may
// replace its domain object at any time. A nil host owns nothing.
type Reflective struct {
	// Name describes the host in messages.
	Name string
	// Property is the name of the property on the host.
	Property string
	// Index of the property for selecting messages, or a negative value.
	Index int
	Host  func() (any, error)
	Next  Dispatcher
	// Cache resolves members. If nil, accessor.Default is used.
	Cache *accessor.Cache
}

// Of returns a host function that always returns v.
func Of(v any) func() (any, error) {
	return func() (any, error) { return v, nil }
}

func (r *Reflective) Kind() Kind          { return ReflectiveKind }
func (r *Reflective) Wrapped() Dispatcher { return r.Next }

func (r *Reflective) Pull(a aspect.Aspect) (any, error) {
	if a.Name() == aspect.Messages {
		return r.pullMessages(a)
	}
	host, d, err := r.member(a.Name())
	if err != nil {
		return nil, err
	}
	if d == nil || !d.CanRead() {
		return r.Next.Pull(a)
	}
	v, err := d.Read.Read(host)
	if err != nil {
		return nil, r.wrap(err)
	}
	return v, nil
}

// The messages of the property are those of the wrapped chain followed by
// the ones about the property of this host.
func (r *Reflective) pullMessages(a aspect.Aspect) (any, error) {
	v, err := r.Next.Pull(a)
	if err != nil {
		return nil, err
	}
	prev, ok := v.(message.List)
	if !ok && v != nil {
		return nil, AspectTypeError{aspect.Messages, reflect.TypeOf(prev), reflect.TypeOf(v)}
	}
	all, ok := a.Value().(message.List)
	if !ok && a.Value() != nil {
		return nil, AspectTypeError{aspect.Messages, reflect.TypeOf(all), reflect.TypeOf(a.Value())}
	}
	host, err := r.host()
	if err != nil {
		return nil, err
	}
	if host == nil {
		return prev, nil
	}
	return append(prev, all.For(host, r.Property, r.Index)...), nil
}

func (r *Reflective) Push(a aspect.Aspect) error {
	host, d, err := r.member(a.Name())
	if err != nil {
		return err
	}
	switch {
	case d != nil && a.HasValue() && d.CanWrite():
		err = d.Write.Write(host, a.Value())
	case d != nil && !a.HasValue() && d.CanInvoke():
		err = d.Invoke.Invoke(host)
	default:
		return r.Next.Push(a)
	}
	if err != nil {
		return r.wrap(err)
	}
	return nil
}

func (r *Reflective) IsPushable(a aspect.Aspect) bool {
	_, d, err := r.member(a.Name())
	if err != nil {
		return false
	}
	if d != nil && (a.HasValue() && d.CanWrite() || !a.HasValue() && d.CanInvoke()) {
		return true
	}
	return r.Next.IsPushable(a)
}

func (r *Reflective) ValueType() (reflect.Type, error) {
	_, d, err := r.member(aspect.Value)
	if err != nil {
		return nil, err
	}
	switch {
	case d != nil && d.CanRead():
		return d.Read.ValueType(), nil
	case d != nil && d.CanWrite():
		return d.Write.ValueType(), nil
	}
	return r.Next.ValueType()
}

func (r *Reflective) BoundObjects() []any {
	objs := r.Next.BoundObjects()
	if host, err := r.host(); err == nil && host != nil {
		objs = append(objs, host)
	}
	return objs
}

func (r *Reflective) String() string {
	return fmt.Sprintf("%s.%s", r.Name, r.Property)
}

// Returns the host. A nil pointer is returned as nil.
func (r *Reflective) host() (any, error) {
	host, err := r.Host()
	if err != nil {
		return nil, fmt.Errorf("%v: get host: %w", r, err)
	}
	if isNil(host) {
		return nil, nil
	}
	return host, nil
}

// Returns the host and the descriptor of the member for the named facet. The
// descriptor is nil if the host is nil.
func (r *Reflective) member(name string) (any, *accessor.Descriptor, error) {
	host, err := r.host()
	if err != nil || host == nil {
		return nil, nil, err
	}
	cache := r.Cache
	if cache == nil {
		cache = accessor.Default
	}
	return host, cache.Descriptor(reflect.TypeOf(host), aspect.MemberName(r.Property, name)), nil
}

func (r *Reflective) wrap(err error) error {
	return fmt.Errorf("%v: %w", r, err)
}
