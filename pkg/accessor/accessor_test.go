package accessor

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	. "github.com/linkki-framework/linkki-sub003/pkg/tt"
)

var errBroken = errors.New("broken")

type testPmo struct {
	name    string
	enabled bool
	saved   int

	Count  int
	hidden int
}

func (p *testPmo) GetName() string     { return p.name }
func (p *testPmo) SetName(name string) { p.name = name }
func (p *testPmo) IsEnabled() bool     { return p.enabled }
func (p *testPmo) SetEnabled(b bool) *testPmo {
	p.enabled = b
	return p
}
func (p *testPmo) Save() error {
	p.saved++
	return nil
}
func (p *testPmo) GetBroken() (string, error) { return "", errBroken }
func (p *testPmo) SetBroken(string) error     { return errBroken }
func (p *testPmo) Fail() error                { return errBroken }
func (p *testPmo) Explode()                   { panic(errBroken) }

// Is-getters must return bool.
func (p *testPmo) IsCount() int { return -1 }

// Not an action method: action methods return nothing or an error.
func (p *testPmo) Name() string { return p.name }

type testValueHost struct {
	Title string
}

func (h testValueHost) GetUpper() string { return "UPPER " + h.Title }

func TestReadValue(t *testing.T) {
	p := &testPmo{name: "n", enabled: true, Count: 3}
	Test(t, Fn("ReadValue", ReadValue), Table{
		Args(p, "name").Rets("n", nil),
		Args(p, "Name").Rets("n", nil),
		Args(p, "enabled").Rets(true, nil),
		Args(p, "count").Rets(3, nil),
		Args(p, "hidden").Rets(nil, ErrorIs(ErrConfig)),
		Args(p, "missing").Rets(nil, ErrorIs(ErrConfig)),
		Args(p, "broken").Rets(nil, ErrorIs(errBroken)),
		Args(testValueHost{"t"}, "title").Rets("t", nil),
		Args(testValueHost{"t"}, "upper").Rets("UPPER t", nil),
		Args(nil, "name").Rets(nil, ErrorIs(ErrConfig)),
	})
}

func TestReadValue_NotFoundMessage(t *testing.T) {
	_, err := ReadValue(&testPmo{}, "missing")
	var nf NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
	want := NotFoundError{reflect.TypeOf(&testPmo{}), "missing", OpRead}
	if nf != want {
		t.Errorf("got %#v, want %#v", nf, want)
	}
	Test(t, Fn("Error", NotFoundError.Error), Table{
		Args(want).Rets(`cannot read property "missing" of *accessor.testPmo: ` +
			`no method GetMissing or IsMissing, or field Missing`),
	})
}

func TestReadValue_NilPointerField(t *testing.T) {
	var p *testPmo
	_, err := ReadValue(p, "count")
	var me MemberError
	if !errors.As(err, &me) || !errors.Is(err, errNilHost) {
		t.Errorf("got %v, want MemberError wrapping errNilHost", err)
	}
}

func TestWriteValue(t *testing.T) {
	p := &testPmo{}
	Test(t, Fn("WriteValue", func(property string, value any) error {
		return WriteValue(p, property, value)
	}), Table{
		Args("name", "new").Rets(nil),
		Args("enabled", true).Rets(nil),
		Args("name", 12).Rets(ErrorIs(ErrConfig)),
		Args("count", 1).Rets(ErrorIs(ErrConfig)),
		Args("broken", "x").Rets(ErrorIs(errBroken)),
	})
	if p.name != "new" || !p.enabled {
		t.Errorf("after writes got %+v", p)
	}
}

type testNamed string

type testConverting struct{ s string }

func (c *testConverting) SetS(s string) { c.s = s }

func TestWriteValue_ConvertsSameKind(t *testing.T) {
	c := &testConverting{}
	if err := WriteValue(c, "s", testNamed("named")); err != nil {
		t.Fatal(err)
	}
	if c.s != "named" {
		t.Errorf("got %q, want %q", c.s, "named")
	}
}

func TestInvoke(t *testing.T) {
	p := &testPmo{}
	Test(t, Fn("Invoke", Invoke), Table{
		Args(p, "save").Rets(nil),
		Args(p, "fail").Rets(ErrorIs(errBroken)),
		Args(p, "name").Rets(ErrorIs(ErrConfig)),
		Args(p, "missing").Rets(ErrorIs(ErrConfig)),
	})
	if p.saved != 1 {
		t.Errorf("saved = %d, want 1", p.saved)
	}
}

func TestMemberError_KeepsContextAndCause(t *testing.T) {
	err := Invoke(&testPmo{}, "fail")
	want := MemberError{reflect.TypeOf(&testPmo{}), "fail", OpInvoke, errBroken}
	if err != want {
		t.Errorf("got %#v, want %#v", err, want)
	}
	Test(t, Fn("Error", MemberError.Error), Table{
		Args(want).Rets(`invoke property "fail" of *accessor.testPmo: broken`),
	})
}

func TestInvoke_PanicsPropagate(t *testing.T) {
	defer func() {
		if r := recover(); r != errBroken {
			t.Errorf("recovered %v, want the original panic value", r)
		}
	}()
	Invoke(&testPmo{}, "explode")
	t.Errorf("Invoke returned normally")
}

func TestCache_Memoizes(t *testing.T) {
	var c Cache
	typ := reflect.TypeOf(&testPmo{})
	d1 := c.Descriptor(typ, "name")
	d2 := c.Descriptor(typ, "name")
	if d1 != d2 {
		t.Errorf("Descriptor returned different values for the same key")
	}
	if !d1.CanRead() || !d1.CanWrite() || d1.CanInvoke() {
		t.Errorf("got descriptor %+v", d1)
	}
	c.Descriptor(typ, "enabled")
	if n := c.Len(); n != 2 {
		t.Errorf("Len() = %d, want 2", n)
	}
}

func TestCache_ConcurrentFirstUse(t *testing.T) {
	var c Cache
	typ := reflect.TypeOf(&testPmo{})
	var wg sync.WaitGroup
	results := make([]*Descriptor, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Descriptor(typ, "name")
		}(i)
	}
	wg.Wait()
	for i, d := range results {
		if d == nil || !d.CanRead() || !d.CanWrite() || d.Property != "name" {
			t.Errorf("result %d is incomplete: %+v", i, d)
		}
	}
	if n := c.Len(); n != 1 {
		t.Errorf("Len() = %d, want 1", n)
	}
}

func TestCapitalize(t *testing.T) {
	Test(t, Fn("Capitalize", Capitalize), Table{
		Args("").Rets(""),
		Args("foo").Rets("Foo"),
		Args("Foo").Rets("Foo"),
		Args("fooEnabled").Rets("FooEnabled"),
		Args("über").Rets("Über"),
	})
}
