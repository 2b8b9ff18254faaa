package dispatch

import (
	"fmt"
	"reflect"

	"github.com/linkki-framework/linkki-sub003/pkg/aspect"
	"github.com/linkki-framework/linkki-sub003/pkg/behavior"
	"github.com/linkki-framework/linkki-sub003/pkg/binding"
)

// BehaviorOverride applies the behaviors of a provider to the enabled and
// visible facets and to writing the value. A behavior that disallows
// something decides without asking Next; otherwise Next decides.
type BehaviorOverride struct {
	Provider behavior.Provider
	PMO      any
	Property string
	Next     Dispatcher
}

func (b *BehaviorOverride) Kind() Kind          { return BehaviorOverrideKind }
func (b *BehaviorOverride) Wrapped() Dispatcher { return b.Next }

func (b *BehaviorOverride) Pull(a aspect.Aspect) (any, error) {
	switch a.Name() {
	case aspect.Enabled:
		if !b.writable() {
			return false, nil
		}
	case aspect.Visible:
		if !behavior.IsVisible(b.Provider, b.PMO, b.Property) {
			return false, nil
		}
	}
	return b.Next.Pull(a)
}

func (b *BehaviorOverride) Push(a aspect.Aspect) error {
	if b.vetoes(a) {
		return NotPushableError{b.Property, a.Name()}
	}
	return b.Next.Push(a)
}

func (b *BehaviorOverride) IsPushable(a aspect.Aspect) bool {
	return !b.vetoes(a) && b.Next.IsPushable(a)
}

func (b *BehaviorOverride) ValueType() (reflect.Type, error) { return b.Next.ValueType() }
func (b *BehaviorOverride) BoundObjects() []any              { return b.Next.BoundObjects() }

func (b *BehaviorOverride) String() string {
	return fmt.Sprintf("behaviors %s", b.Property)
}

func (b *BehaviorOverride) writable() bool {
	return behavior.IsWritable(b.Provider, b.PMO, b.Property)
}

// Writing the value is subject to the behaviors; invoking an action is not.
func (b *BehaviorOverride) vetoes(a aspect.Aspect) bool {
	return a.Name() == aspect.Value && a.HasValue() && !b.writable()
}

// DeclarativeOverride answers the facets whose policy is fixed by Policy and
// forwards the dynamic ones to Next.
//
// Head is the head of the chain. A RequiredIfEnabled property asks it for the
// enabled facet, so that overrides outside this one are honored. A nil Head
// means the override is the head.
type DeclarativeOverride struct {
	Property string
	Policy   binding.Policy
	Next     Dispatcher
	Head     Dispatcher
}

func (d *DeclarativeOverride) Kind() Kind          { return DeclarativeOverrideKind }
func (d *DeclarativeOverride) Wrapped() Dispatcher { return d.Next }

func (d *DeclarativeOverride) Pull(a aspect.Aspect) (any, error) {
	switch a.Name() {
	case aspect.Enabled:
		switch d.Policy.Enabled {
		case binding.Enabled:
			return true, nil
		case binding.Disabled:
			return false, nil
		}
	case aspect.Visible:
		switch d.Policy.Visible {
		case binding.Visible:
			return true, nil
		case binding.Invisible:
			return false, nil
		}
	case aspect.Required:
		switch d.Policy.Required {
		case binding.NotRequired:
			return false, nil
		case binding.Required:
			return true, nil
		case binding.RequiredIfEnabled:
			head := d.Head
			if head == nil {
				head = d
			}
			enabled, err := IsEnabled(head)
			if err != nil {
				return nil, err
			}
			if !enabled {
				return false, nil
			}
		}
	case aspect.AvailableValues:
		return d.availableValues(a)
	}
	return d.Next.Pull(a)
}

func (d *DeclarativeOverride) availableValues(a aspect.Aspect) (any, error) {
	switch d.Policy.AvailableValues {
	case binding.NoValues:
		return []any{}, nil
	case binding.DynamicValues:
		return d.Next.Pull(a)
	}
	t, err := d.Next.ValueType()
	if err != nil {
		return nil, err
	}
	values, ok := binding.ValuesOf(t)
	switch d.Policy.AvailableValues {
	case binding.Auto:
		if !ok {
			return d.Next.Pull(a)
		}
		return values, nil
	case binding.EnumValuesInclNil:
		if ok {
			return append([]any{nil}, values...), nil
		}
	default:
		if ok {
			return values, nil
		}
	}
	return nil, NoEnumValuesError{d.Property, t}
}

func (d *DeclarativeOverride) Push(a aspect.Aspect) error       { return d.Next.Push(a) }
func (d *DeclarativeOverride) IsPushable(a aspect.Aspect) bool  { return d.Next.IsPushable(a) }
func (d *DeclarativeOverride) ValueType() (reflect.Type, error) { return d.Next.ValueType() }
func (d *DeclarativeOverride) BoundObjects() []any              { return d.Next.BoundObjects() }

func (d *DeclarativeOverride) String() string {
	return fmt.Sprintf("policy %s", d.Property)
}
