package dispatch

import (
	"fmt"
	"reflect"

	"github.com/linkki-framework/linkki-sub003/pkg/aspect"
	"github.com/linkki-framework/linkki-sub003/pkg/message"
)

// Exception is the last dispatcher of every chain. It fails every pull
// except for messages, for which it returns an empty list that the
// dispatchers before it append to.
type Exception struct {
	Property string
	PMO      any
	// Model returns the domain object. It may be nil.
	Model func() (any, error)
}

func (e *Exception) Kind() Kind { return ExceptionKind }

func (e *Exception) Pull(a aspect.Aspect) (any, error) {
	if a.Name() == aspect.Messages {
		return message.List(nil), nil
	}
	return nil, e.notFound(a.Name())
}

func (e *Exception) Push(a aspect.Aspect) error {
	return NotPushableError{e.Property, a.Name()}
}

func (e *Exception) IsPushable(aspect.Aspect) bool { return false }

func (e *Exception) ValueType() (reflect.Type, error) {
	return nil, e.notFound(aspect.Value)
}

func (e *Exception) BoundObjects() []any { return nil }

func (e *Exception) String() string {
	return fmt.Sprintf("exception %s", e.Property)
}

func (e *Exception) notFound(name string) error {
	err := PropertyNotFoundError{Property: e.Property, Aspect: name, PMO: reflect.TypeOf(e.PMO)}
	if e.Model != nil {
		// The domain object is only needed for its type; a failure to get
		// it is reported by the domain object dispatcher.
		if model, merr := e.Model(); merr == nil {
			err.Model = reflect.TypeOf(model)
		}
	}
	return err
}
