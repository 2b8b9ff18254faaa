// Package convert converts between the values held by UI components and the
// values of presentation models.
//
// Components hold raw values: text components hold strings, selection
// components hold one of their items, and check boxes hold bools. Model
// values have arbitrary types. Conversion to the model depends on the
// destination type; conversion to the presentation does not.
package convert

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/linkki-framework/linkki-sub003/pkg/binding"
)

// Scanner is implemented by pointers to model types that convert raw values
// themselves.
type Scanner interface {
	ScanRaw(raw any) error
}

var scannerType = reflect.TypeOf((*Scanner)(nil)).Elem()

// Error is returned when a raw value cannot be converted.
type Error struct {
	Raw  any
	Type reflect.Type
	Err  error
}

func (e Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cannot convert %s to %v", repr(e.Raw), e.Type)
	}
	return fmt.Sprintf("cannot convert %s to %v: %v", repr(e.Raw), e.Type, e.Err)
}

func (e Error) Unwrap() error { return e.Err }

func repr(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprintf("%v (%T)", v, v)
}

var (
	errNotANumber    = errors.New("not a number")
	errMustBeInteger = errors.New("must be an integer")
	errOutOfRange    = errors.New("out of range")
	errNotAValue     = errors.New("not one of the available values")
)

// ToModel converts a raw value to type t. A nil type accepts any value
// unchanged.
func ToModel(raw any, t reflect.Type) (any, error) {
	if t == nil {
		return raw, nil
	}
	v, err := toModel(raw, t)
	if err != nil {
		var ce Error
		if errors.As(err, &ce) {
			return nil, err
		}
		return nil, Error{raw, t, err}
	}
	return v.Interface(), nil
}

func toModel(raw any, t reflect.Type) (reflect.Value, error) {
	if reflect.PointerTo(t).Implements(scannerType) {
		ptr := reflect.New(t)
		if err := ptr.Interface().(Scanner).ScanRaw(raw); err != nil {
			return reflect.Value{}, err
		}
		return ptr.Elem(), nil
	}
	if raw == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, Error{raw, t, nil}
	}
	rv := reflect.ValueOf(raw)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}
	if t.Kind() != reflect.Bool && t.Kind() != reflect.Pointer {
		if values, ok := binding.ValuesOf(t); ok {
			return fromValues(raw, values)
		}
	}
	switch t.Kind() {
	case reflect.Pointer:
		if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
			return reflect.Zero(t), nil
		}
		elem, err := toModel(raw, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(elem)
		return ptr, nil
	case reflect.String:
		if rv.Kind() == reflect.String {
			return rv.Convert(t), nil
		}
	case reflect.Bool:
		switch raw := raw.(type) {
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(raw))
			if err != nil {
				return reflect.Value{}, Error{raw, t, nil}
			}
			return reflect.ValueOf(b).Convert(t), nil
		case bool:
			return reflect.ValueOf(raw).Convert(t), nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := toInt(raw, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(i).Convert(t), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := toUint(raw, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(u).Convert(t), nil
	case reflect.Float32, reflect.Float64:
		f, err := toFloat(raw, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(f).Convert(t), nil
	}
	if rv.Kind() == t.Kind() && rv.Type().ConvertibleTo(t) {
		return rv.Convert(t), nil
	}
	return reflect.Value{}, Error{raw, t, nil}
}

// Finds the value whose presentation is the raw string.
func fromValues(raw any, values []any) (reflect.Value, error) {
	if s, ok := raw.(string); ok {
		for _, v := range values {
			if v != nil && ToPresentation(v) == s {
				return reflect.ValueOf(v), nil
			}
		}
	}
	return reflect.Value{}, errNotAValue
}

func toInt(raw any, bits int) (int64, error) {
	switch raw := raw.(type) {
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, bits)
		if err != nil {
			return 0, numError(err)
		}
		return i, nil
	case float64:
		if raw != math.Trunc(raw) {
			return 0, errMustBeInteger
		}
		if raw < math.MinInt64 || raw >= math.MaxInt64 {
			return 0, errOutOfRange
		}
		return toInt(strconv.FormatInt(int64(raw), 10), bits)
	case int:
		return toInt(strconv.Itoa(raw), bits)
	}
	return 0, errMustBeInteger
}

func toUint(raw any, bits int) (uint64, error) {
	switch raw := raw.(type) {
	case string:
		u, err := strconv.ParseUint(strings.TrimSpace(raw), 10, bits)
		if err != nil {
			return 0, numError(err)
		}
		return u, nil
	case float64:
		if raw != math.Trunc(raw) {
			return 0, errMustBeInteger
		}
		if raw < 0 || raw >= math.MaxUint64 {
			return 0, errOutOfRange
		}
		return toUint(strconv.FormatUint(uint64(raw), 10), bits)
	case int:
		return toUint(strconv.Itoa(raw), bits)
	}
	return 0, errMustBeInteger
}

func toFloat(raw any, bits int) (float64, error) {
	switch raw := raw.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), bits)
		if err != nil {
			return 0, numError(err)
		}
		return f, nil
	case float64:
		return raw, nil
	case int:
		return float64(raw), nil
	}
	return 0, errNotANumber
}

// Drops the repetition of the input from strconv errors.
func numError(err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return errOutOfRange
	}
	return errNotANumber
}

// ToPresentation converts a model value to the value held by text
// components. Numbers are formatted in decimal, nil pointers become empty
// strings and other pointers are dereferenced; values of other kinds are
// returned unchanged, except that named string types become string.
func ToPresentation(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		if _, ok := v.(fmt.Stringer); !ok {
			return ToPresentation(rv.Elem().Interface())
		}
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, rv.Type().Bits())
	}
	return v
}
