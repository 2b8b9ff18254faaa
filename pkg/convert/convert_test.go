package convert

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	. "github.com/linkki-framework/linkki-sub003/pkg/tt"
)

type gender string

func (gender) EnumValues() []any { return []any{gender("f"), gender("m")} }

type celsius float64

type upper string

func (u *upper) ScanRaw(raw any) error {
	s, ok := raw.(string)
	if !ok {
		return errors.New("must be a string")
	}
	*u = upper(strings.ToUpper(s))
	return nil
}

type point struct{ X, Y int }

func (p point) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

func typeOf[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

func ptr[T any](v T) *T { return &v }

func TestToModel(t *testing.T) {
	Test(t, Fn("ToModel", ToModel), Table{
		Args("abc", typeOf[string]()).Rets("abc", nil),
		Args(" 42 ", typeOf[int]()).Rets(42, nil),
		Args("-7", typeOf[int8]()).Rets(int8(-7), nil),
		Args("300", typeOf[int8]()).Rets(nil, ErrorContaining(`"300"`, "out of range")),
		Args("abc", typeOf[int]()).Rets(nil, ErrorContaining(`cannot convert "abc" to int: not a number`)),
		Args("", typeOf[int]()).Rets(nil, ErrorContaining("not a number")),
		Args(12.0, typeOf[int]()).Rets(12, nil),
		Args(12.5, typeOf[int]()).Rets(nil, ErrorContaining("must be an integer")),
		Args("7", typeOf[uint16]()).Rets(uint16(7), nil),
		Args("-7", typeOf[uint]()).Rets(nil, ErrorContaining("not a number")),
		Args("1.5", typeOf[float64]()).Rets(1.5, nil),
		Args("21.5", typeOf[celsius]()).Rets(celsius(21.5), nil),
		Args(3, typeOf[float64]()).Rets(3.0, nil),
		Args("true", typeOf[bool]()).Rets(true, nil),
		Args(false, typeOf[bool]()).Rets(false, nil),
		Args("yes", typeOf[bool]()).Rets(nil, ErrorContaining(`cannot convert "yes" to bool`)),
		Args("m", typeOf[gender]()).Rets(gender("m"), nil),
		Args(gender("f"), typeOf[gender]()).Rets(gender("f"), nil),
		Args("x", typeOf[gender]()).Rets(nil, ErrorContaining("not one of the available values")),
		Args("", typeOf[*int]()).Rets((*int)(nil), nil),
		Args("5", typeOf[*int]()).Rets(ptr(5), nil),
		Args("f", typeOf[*gender]()).Rets(ptr(gender("f")), nil),
		Args(nil, typeOf[*int]()).Rets((*int)(nil), nil),
		Args(nil, typeOf[int]()).Rets(nil, ErrorContaining("cannot convert <nil>")),
		Args("shout", typeOf[upper]()).Rets(upper("SHOUT"), nil),
		Args(1, typeOf[upper]()).Rets(nil, ErrorContaining("must be a string")),
		Args(point{1, 2}, typeOf[point]()).Rets(point{1, 2}, nil),
		Args("(1, 2)", typeOf[point]()).Rets(nil, ErrorContaining("to convert.point")),
		Args("anything", reflect.Type(nil)).Rets("anything", nil),
	})
}

func TestToModel_ErrorIsError(t *testing.T) {
	_, err := ToModel("abc", typeOf[int]())
	var ce Error
	if !errors.As(err, &ce) || ce.Raw != "abc" || ce.Type != typeOf[int]() {
		t.Errorf("ToModel -> %#v", err)
	}
	if !errors.Is(err, errNotANumber) {
		t.Errorf("ToModel -> %v, want errNotANumber cause", err)
	}
}

func TestToPresentation(t *testing.T) {
	Test(t, Fn("ToPresentation", ToPresentation), Table{
		Args(nil).Rets(nil),
		Args("abc").Rets("abc"),
		Args(gender("f")).Rets("f"),
		Args(42).Rets("42"),
		Args(uint8(7)).Rets("7"),
		Args(1.5).Rets("1.5"),
		Args(celsius(21)).Rets("21"),
		Args(true).Rets(true),
		Args((*int)(nil)).Rets(""),
		Args(ptr(5)).Rets("5"),
		Args(point{1, 2}).Rets("(1, 2)"),
		Args([]string{"a"}).Rets([]string{"a"}),
	})
}
