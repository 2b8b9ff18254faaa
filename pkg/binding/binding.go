// Package binding contains the declaration of a bound property: its identity
// and the policies declared for its facets.
package binding

import (
	"fmt"
	"strings"

	"github.com/linkki-framework/linkki-sub003/pkg/message"
)

// DefaultModelObject is the name of the presentation model property that
// exposes the domain object, unless another one is selected.
const DefaultModelObject = "modelObject"

// NoIndex is the index of a property that is not indexed.
const NoIndex = message.NoIndex

// BoundProperty identifies a bound property. It is immutable; the With
// methods return modified copies.
type BoundProperty struct {
	name           string
	modelObject    string
	modelAttribute string
	hasAttribute   bool
	index          int
}

// NewProperty returns a BoundProperty with the given name, the default model
// object, no model attribute and no index.
func NewProperty(name string) BoundProperty {
	return BoundProperty{name: name, modelObject: DefaultModelObject, index: NoIndex}
}

// WithModelObject returns a copy of p that selects the domain object exposed
// by the given presentation model property. An empty name selects the
// default.
func (p BoundProperty) WithModelObject(name string) BoundProperty {
	if name == "" {
		name = DefaultModelObject
	}
	p.modelObject = name
	return p
}

// WithModelAttribute returns a copy of p that is backed by the given
// property of the domain object. An empty attribute names the domain object
// property with the same name as p.
func (p BoundProperty) WithModelAttribute(attribute string) BoundProperty {
	p.modelAttribute = attribute
	p.hasAttribute = true
	return p
}

// WithIndex returns a copy of p addressing the entry at index i.
func (p BoundProperty) WithIndex(i int) BoundProperty {
	p.index = i
	return p
}

// Name returns the name of the property on the presentation model.
func (p BoundProperty) Name() string { return p.name }

// ModelObject returns the name of the presentation model property exposing
// the domain object.
func (p BoundProperty) ModelObject() string { return p.modelObject }

// HasDefaultModelObject reports whether p uses the default model object.
func (p BoundProperty) HasDefaultModelObject() bool {
	return p.modelObject == DefaultModelObject
}

// ModelAttribute returns the name of the domain object property, and whether
// one was declared.
func (p BoundProperty) ModelAttribute() (string, bool) {
	if !p.hasAttribute {
		return "", false
	}
	if p.modelAttribute == "" {
		return p.name, true
	}
	return p.modelAttribute, true
}

// Index returns the index of the property, or NoIndex.
func (p BoundProperty) Index() int { return p.index }

func (p BoundProperty) String() string {
	var sb strings.Builder
	sb.WriteString(p.name)
	if p.index != NoIndex {
		fmt.Fprintf(&sb, "[%d]", p.index)
	}
	if attr, ok := p.ModelAttribute(); ok {
		fmt.Fprintf(&sb, " -> %s.%s", p.modelObject, attr)
	}
	return sb.String()
}

// Descriptor is the declaration of a binding: a bound property and,
// optionally, the policies declared for its facets. Without a Policy, every
// facet is resolved dynamically.
type Descriptor struct {
	Property BoundProperty
	Policy   *Policy
}

// Bind returns a Descriptor for the named property with the given policy.
func Bind(name string, policy *Policy) Descriptor {
	return Descriptor{NewProperty(name), policy}
}
