// Package behavior contains environment-wide rules that can make properties
// read-only or hidden regardless of what the presentation model says.
package behavior

import (
	"reflect"
	"strings"
)

// Behavior decides whether the properties of presentation models may be
// written or shown. A property is writable or visible only if every Behavior
// in effect agrees.
type Behavior interface {
	IsWritable(pmo any, property string) bool
	IsVisible(pmo any, property string) bool
}

// Provider supplies the behaviors currently in effect.
type Provider interface {
	Behaviors() []Behavior
}

// List is a Provider with a fixed list of behaviors.
type List []Behavior

// Behaviors returns l.
func (l List) Behaviors() []Behavior { return l }

// IsEmpty reports whether the provider never supplies any behavior. A nil
// Provider and an empty List are empty; other providers are assumed not to
// be, since they may change what they supply.
func IsEmpty(p Provider) bool {
	if p == nil {
		return true
	}
	l, ok := p.(List)
	return ok && len(l) == 0
}

// IsWritable reports whether every behavior of the provider allows writing
// the property. It returns true for an empty provider.
func IsWritable(p Provider, pmo any, property string) bool {
	if p == nil {
		return true
	}
	for _, b := range p.Behaviors() {
		if !b.IsWritable(pmo, property) {
			return false
		}
	}
	return true
}

// IsVisible reports whether every behavior of the provider allows showing
// the property. It returns true for an empty provider.
func IsVisible(p Provider, pmo any, property string) bool {
	if p == nil {
		return true
	}
	for _, b := range p.Behaviors() {
		if !b.IsVisible(pmo, property) {
			return false
		}
	}
	return true
}

// Funcs adapts functions to a Behavior. A nil function allows everything.
type Funcs struct {
	Writable func(pmo any, property string) bool
	Visible  func(pmo any, property string) bool
}

func (f Funcs) IsWritable(pmo any, property string) bool {
	return f.Writable == nil || f.Writable(pmo, property)
}

func (f Funcs) IsVisible(pmo any, property string) bool {
	return f.Visible == nil || f.Visible(pmo, property)
}

// ReadOnly is a Behavior that makes every property read-only.
var ReadOnly Behavior = Funcs{Writable: func(any, string) bool { return false }}

// Properties is a set of property patterns. A pattern is either a property
// name, matching that property of every presentation model, or
// "Type.property", matching only presentation models of the named type
// (pointers are dereferenced, the package is not part of the name).
type Properties map[string]struct{}

// NewProperties returns a Properties with the given patterns.
func NewProperties(patterns ...string) Properties {
	ps := make(Properties, len(patterns))
	for _, p := range patterns {
		ps[p] = struct{}{}
	}
	return ps
}

// Contains reports whether any pattern matches the property of the
// presentation model.
func (ps Properties) Contains(pmo any, property string) bool {
	if _, ok := ps[property]; ok {
		return true
	}
	if name := typeName(pmo); name != "" {
		_, ok := ps[name+"."+property]
		return ok
	}
	return false
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

// ReadOnlyProperties returns a Behavior that makes the matching properties
// read-only.
func ReadOnlyProperties(ps Properties) Behavior {
	return Funcs{Writable: func(pmo any, property string) bool {
		return !ps.Contains(pmo, property)
	}}
}

// HiddenProperties returns a Behavior that hides the matching properties.
func HiddenProperties(ps Properties) Behavior {
	return Funcs{Visible: func(pmo any, property string) bool {
		return !ps.Contains(pmo, property)
	}}
}

func validPattern(p string) bool {
	if p == "" || strings.ContainsAny(p, " \t\n") {
		return false
	}
	typ, prop, found := strings.Cut(p, ".")
	if !found {
		return true
	}
	return typ != "" && prop != "" && !strings.Contains(prop, ".")
}
