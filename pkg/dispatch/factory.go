package dispatch

import (
	"errors"
	"reflect"

	"github.com/linkki-framework/linkki-sub003/pkg/accessor"
	"github.com/linkki-framework/linkki-sub003/pkg/behavior"
	"github.com/linkki-framework/linkki-sub003/pkg/binding"
)

var errNilPMO = errors.New("nil presentation model")

// Factory builds dispatcher chains. The zero value builds chains without
// behaviors, using accessor.Default.
type Factory struct {
	Cache     *accessor.Cache
	Behaviors behavior.Provider
}

// Create builds the chain for the bound property of the presentation model.
// The chain consists of, from the last link to the head:
//
//   - an Exception;
//
//   - a Reflective on the domain object, if the property declares a model
//     attribute and the presentation model exposes the selected model
//     object;
//
//   - a Reflective on the presentation model;
//
//   - a DeclarativeOverride, if the descriptor has a Policy;
//
//   - a BehaviorOverride, if the behavior provider is not empty.
//
// The model object is read from the presentation model on every dispatch.
// It is an error if an explicitly selected model object is not exposed.
func (f *Factory) Create(pmo any, desc binding.Descriptor) (Dispatcher, error) {
	if isNil(pmo) {
		return nil, errNilPMO
	}
	cache := f.Cache
	if cache == nil {
		cache = accessor.Default
	}
	p := desc.Property

	model, err := f.modelObject(cache, pmo, p)
	if err != nil {
		return nil, err
	}
	var d Dispatcher = &Exception{Property: p.Name(), PMO: pmo, Model: model}
	if model != nil {
		attr, _ := p.ModelAttribute()
		d = &Reflective{
			Name: p.ModelObject(), Property: attr, Index: p.Index(),
			Host: model, Next: d, Cache: cache}
	}
	d = &Reflective{
		Name: reflect.TypeOf(pmo).String(), Property: p.Name(), Index: p.Index(),
		Host: Of(pmo), Next: d, Cache: cache}
	var decl *DeclarativeOverride
	if desc.Policy != nil {
		decl = &DeclarativeOverride{Property: p.Name(), Policy: *desc.Policy, Next: d}
		d = decl
	}
	if !behavior.IsEmpty(f.Behaviors) {
		d = &BehaviorOverride{Provider: f.Behaviors, PMO: pmo, Property: p.Name(), Next: d}
	}
	if decl != nil {
		decl.Head = d
	}
	logger.Printf("created %s", Describe(d))
	return d, nil
}

// Returns the function that reads the model object of the property, or nil
// if the property has no model object.
func (f *Factory) modelObject(cache *accessor.Cache, pmo any, p binding.BoundProperty) (func() (any, error), error) {
	if _, ok := p.ModelAttribute(); !ok {
		return nil, nil
	}
	d := cache.Descriptor(reflect.TypeOf(pmo), p.ModelObject())
	if !d.CanRead() {
		if p.HasDefaultModelObject() {
			return nil, nil
		}
		return nil, ModelObjectNotFoundError{d.Type, p.ModelObject()}
	}
	read := d.Read
	return func() (any, error) { return read.Read(pmo) }, nil
}
