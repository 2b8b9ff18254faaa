package dispatch

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/linkki-framework/linkki-sub003/pkg/accessor"
	"github.com/linkki-framework/linkki-sub003/pkg/aspect"
	"github.com/linkki-framework/linkki-sub003/pkg/binding"
	"github.com/linkki-framework/linkki-sub003/pkg/message"
	. "github.com/linkki-framework/linkki-sub003/pkg/tt"
)

func TestReflective_Facets(t *testing.T) {
	pmo := newContactPmo()
	pmo.titleEnabled = true
	d := create(t, &Factory{}, pmo, binding.Bind("title", nil))
	Test(t, Fn("Pull", Dispatcher.Pull), Table{
		Args(d, aspect.Of(aspect.Value)).Rets("Dr.", nil),
		Args(d, aspect.Of(aspect.Enabled)).Rets(true, nil),
		Args(d, aspect.Of(aspect.Visible)).Rets(false, nil),
		Args(d, aspect.Of(aspect.Required)).Rets(false, nil),
		Args(d, aspect.Of(aspect.AvailableValues)).Rets([]string{"Dr.", "Prof."}, nil),
		Args(d, aspect.Of(aspect.Caption)).Rets("Title", nil),
	})
	Test(t, Fn("AvailableValues", AvailableValues), Table{
		Args(d).Rets([]any{"Dr.", "Prof."}, nil),
	})
	Test(t, Fn("IsEnabled", IsEnabled), Table{Args(d).Rets(true, nil)})
	Test(t, Fn("IsVisible", IsVisible), Table{Args(d).Rets(false, nil)})
	Test(t, Fn("IsRequired", IsRequired), Table{Args(d).Rets(false, nil)})
}

func TestReflective_ReadOnlyIsNotPushable(t *testing.T) {
	d := create(t, &Factory{}, newContactPmo(), binding.Bind("title", nil))
	if CanSetValue(d) {
		t.Errorf("read-only property is pushable")
	}
	err := SetValue(d, "Prof.")
	if err != (NotPushableError{"title", aspect.Value}) || !errors.Is(err, ErrNotPushable) {
		t.Errorf("SetValue on read-only property -> %v", err)
	}
}

func TestReflective_Invoke(t *testing.T) {
	pmo := newContactPmo()
	d := create(t, &Factory{}, pmo, binding.Bind("save", nil))
	if !CanInvoke(d) {
		t.Fatalf("action is not invokable")
	}
	if CanSetValue(d) {
		t.Errorf("action has a writable value")
	}
	if err := Invoke(d); err != nil {
		t.Fatal(err)
	}
	if pmo.saved != 1 {
		t.Errorf("saved = %d, want 1", pmo.saved)
	}
}

func TestReflective_MemberFailureKeepsCause(t *testing.T) {
	pmo := newContactPmo()
	fail := create(t, &Factory{}, pmo, binding.Bind("fail", nil))
	err := Invoke(fail)
	if !errors.Is(err, errBroken) || !errors.As(err, new(accessor.MemberError)) {
		t.Errorf("Invoke -> %v, want MemberError wrapping errBroken", err)
	}
	if !strings.HasPrefix(err.Error(), "*dispatch.contactPmo.fail: ") {
		t.Errorf("error %q is not tagged with the dispatcher", err)
	}

	broken := create(t, &Factory{}, pmo, modelProperty("broken"))
	_, err = GetValue(broken)
	if !errors.Is(err, errBroken) || !strings.HasPrefix(err.Error(), "modelObject.broken: ") {
		t.Errorf("GetValue -> %v", err)
	}
}

func TestReflective_ValueType(t *testing.T) {
	pmo := newContactPmo()
	Test(t, Fn("ValueType", func(property string) (reflect.Type, error) {
		return create(t, &Factory{}, pmo, modelProperty(property)).ValueType()
	}), Table{
		Args("name").Rets(reflect.TypeOf(""), nil),
		Args("age").Rets(reflect.TypeOf(0), nil),
		Args("gender").Rets(reflect.TypeOf(gender("")), nil),
		Args("missing").Rets(nil, ErrorIs(accessor.ErrConfig)),
	})
}

func TestReflective_HostFailure(t *testing.T) {
	r := &Reflective{Name: "host", Property: "x",
		Host: func() (any, error) { return nil, errBroken }, Next: &Exception{Property: "x"}}
	if _, err := r.Pull(aspect.Of(aspect.Value)); !errors.Is(err, errBroken) {
		t.Errorf("Pull -> %v", err)
	}
	if r.IsPushable(aspect.With(aspect.Value, 1)) {
		t.Errorf("IsPushable is true when the host cannot be resolved")
	}
	if objs := r.BoundObjects(); len(objs) != 0 {
		t.Errorf("BoundObjects -> %v", objs)
	}
}

func TestReflective_BoundObjects(t *testing.T) {
	pmo := newContactPmo()
	d := create(t, &Factory{}, pmo, modelProperty("name"))
	objs := d.BoundObjects()
	if len(objs) != 2 || objs[0] != pmo.model || objs[1] != pmo {
		t.Errorf("BoundObjects -> %v, want [model pmo]", objs)
	}
}

func TestReflective_Messages(t *testing.T) {
	pmo := newContactPmo()
	other := &contact{}
	onModel := message.New(message.Error, "E1", "name missing", message.On(pmo.model, "name"))
	onPMO := message.New(message.Warning, "W1", "check name", message.On(pmo, "name"))
	onOther := message.New(message.Error, "E2", "other", message.On(other, "name"))
	onCity := message.New(message.Info, "I1", "city", message.On(pmo.model, "city"))
	// Listed PMO first; the result has the domain object's messages first.
	all := message.List{onPMO, onOther, onModel, onCity}

	d := create(t, &Factory{}, pmo, modelProperty("name"))
	Test(t, Fn("Messages", Messages), Table{
		Args(d, all).Rets(message.List{onModel, onPMO}, nil),
		Args(d, message.List(nil)).Rets(message.List(nil), nil),
	})

	// Matching uses the model attribute on the domain object.
	renamed := create(t, &Factory{}, pmo, binding.Descriptor{
		Property: binding.NewProperty("fullName").WithModelAttribute("name")})
	Test(t, Fn("Messages", Messages), Table{
		Args(renamed, all).Rets(message.List{onModel}, nil),
	})

	// The messages of a property that exists nowhere are empty, not an error.
	missing := create(t, &Factory{}, pmo, modelProperty("missing"))
	Test(t, Fn("Messages", Messages), Table{
		Args(missing, all).Rets(message.List(nil), nil),
	})
}

func TestReflective_MessagesOfIndexedProperty(t *testing.T) {
	pmo := newContactPmo()
	first := message.New(message.Error, "", "first", message.OnIndex(pmo, "items", 0))
	second := message.New(message.Error, "", "second", message.OnIndex(pmo, "items", 1))
	all := message.List{first, second}

	indexed := create(t, &Factory{}, pmo, binding.Descriptor{
		Property: binding.NewProperty("items").WithIndex(1)})
	Test(t, Fn("Messages", Messages), Table{
		Args(indexed, all).Rets(message.List{second}, nil),
	})

	// A property bound without an index receives the messages about all its
	// entries.
	whole := create(t, &Factory{}, pmo, binding.Bind("items", nil))
	Test(t, Fn("Messages", Messages), Table{
		Args(whole, all).Rets(message.List{first, second}, nil),
	})
}
