package accessor

import (
	"reflect"
	"sync"
)

// Loader identifies the loading context of a host type, such as one
// generation of a plugin or of a hot-swapped module. Loaders are compared by
// identity.
type Loader struct {
	name string
}

// NewLoader returns a new Loader. The name is only used in messages.
func NewLoader(name string) *Loader { return &Loader{name} }

// Builtin is the Loader of all types that do not implement Loaded.
var Builtin = NewLoader("builtin")

func (l *Loader) String() string {
	if l == nil {
		return "<nil loader>"
	}
	return l.name
}

// Loaded is implemented by host types that are loaded under a Loader other
// than Builtin. TypeLoader must not depend on the state of its receiver: it
// is called on one shared zero value of the type. It is called on every
// Descriptor lookup and must be cheap. Its result may change over time, when
// the type is reloaded.
type Loaded interface {
	TypeLoader() *Loader
}

var loadedType = reflect.TypeOf((*Loaded)(nil)).Elem()

// The zero value of each type that implements Loaded, or nil for the types
// that do not.
var loadedZeros sync.Map

// LoaderOf returns the Loader of the given type.
func LoaderOf(t reflect.Type) *Loader {
	if t == nil || t.Kind() == reflect.Interface {
		return Builtin
	}
	z, ok := loadedZeros.Load(t)
	if !ok {
		z = zeroLoaded(t)
		loadedZeros.Store(t, z)
	}
	if loaded, _ := z.(Loaded); loaded != nil {
		if l := loaded.TypeLoader(); l != nil {
			return l
		}
	}
	return Builtin
}

func zeroLoaded(t reflect.Type) any {
	if !t.Implements(loadedType) {
		return nil
	}
	if t.Kind() == reflect.Pointer {
		return reflect.New(t.Elem()).Interface()
	}
	return reflect.Zero(t).Interface()
}
