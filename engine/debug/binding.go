package debug

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-sketch/common"
)

var (
	// ErrUnknownParameter is returned when a binding names a property the target does not have.
	ErrUnknownParameter = errors.New("debug: unknown parameter")

	// ErrUnsupportedType is returned when a property's type cannot be edited by a controller.
	ErrUnsupportedType = errors.New("debug: unsupported property type")

	// ErrInvalidValue is returned when an input cannot be converted to the property's type.
	ErrInvalidValue = errors.New("debug: invalid value")

	// ErrNotFunction is returned when pressing a controller that is not bound to a function.
	ErrNotFunction = errors.New("debug: controller is not a button")
)

// Kind is the editor a controller presents for its property.
type Kind int

const (
	KindNumber Kind = iota
	KindBool
	KindString
	KindColor
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindColor:
		return "color"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

var colorType = reflect.TypeFor[common.Color]()

// slot is a settable location: a struct field or a map entry.
type slot struct {
	typ reflect.Type
	get func() reflect.Value
	put func(reflect.Value)
}

// resolve locates property on target. target must be a pointer to a struct or a map with
// string keys. Struct fields match by exact name first, then case-insensitively, so "y" binds
// to a Vec3's Y and "visible" to a Visible field.
func resolve(target any, property string) (slot, error) {
	if target == nil {
		return slot{}, fmt.Errorf("%w: %q on nil target", ErrUnknownParameter, property)
	}
	v := reflect.ValueOf(target)
	switch {
	case v.Kind() == reflect.Map && v.Type().Key().Kind() == reflect.String:
		key := reflect.ValueOf(property).Convert(v.Type().Key())
		cur := v.MapIndex(key)
		if !cur.IsValid() {
			return slot{}, fmt.Errorf("%w: map has no key %q", ErrUnknownParameter, property)
		}
		if cur.Kind() == reflect.Interface {
			if cur.IsNil() {
				return slot{}, fmt.Errorf("%w: map key %q holds nil", ErrUnsupportedType, property)
			}
			cur = cur.Elem()
		}
		typ := cur.Type()
		return slot{
			typ: typ,
			get: func() reflect.Value {
				e := v.MapIndex(key)
				if e.Kind() == reflect.Interface {
					e = e.Elem()
				}
				return e
			},
			put: func(nv reflect.Value) {
				if v.Type().Elem().Kind() != reflect.Interface {
					nv = nv.Convert(v.Type().Elem())
				}
				v.SetMapIndex(key, nv)
			},
		}, nil

	case v.Kind() == reflect.Pointer && !v.IsNil() && v.Elem().Kind() == reflect.Struct:
		s := v.Elem()
		field, ok := fieldByName(s, property)
		if !ok {
			return slot{}, fmt.Errorf("%w: %s has no field %q", ErrUnknownParameter, s.Type(), property)
		}
		if !field.CanSet() {
			return slot{}, fmt.Errorf("%w: field %q of %s is not settable", ErrUnknownParameter, property, s.Type())
		}
		return slot{
			typ: field.Type(),
			get: func() reflect.Value { return field },
			put: func(nv reflect.Value) { field.Set(nv) },
		}, nil

	default:
		return slot{}, fmt.Errorf("%w: %q on %T, want a struct pointer or string-keyed map",
			ErrUnknownParameter, property, target)
	}
}

func fieldByName(s reflect.Value, name string) (reflect.Value, bool) {
	if f := s.FieldByName(name); f.IsValid() {
		return f, true
	}
	t := s.Type()
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.IsExported() && strings.EqualFold(sf.Name, name) {
			return s.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// kindOf classifies a property type. asColor selects the colour editor for string and
// integer properties holding hex colours.
func kindOf(t reflect.Type, asColor bool) (Kind, error) {
	if t == colorType {
		return KindColor, nil
	}
	switch t.Kind() {
	case reflect.Bool:
		if asColor {
			break
		}
		return KindBool, nil
	case reflect.String:
		if asColor {
			return KindColor, nil
		}
		return KindString, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if asColor {
			return KindColor, nil
		}
		return KindNumber, nil
	case reflect.Float32, reflect.Float64:
		if asColor {
			break
		}
		return KindNumber, nil
	case reflect.Func:
		if !asColor && t.NumIn() == 0 {
			return KindFunction, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
}

// ToFloat converts any numeric value, or a numeric string, to float64.
//
// Parameters:
//   - v: the value to convert
//
// Returns:
//   - float64: the converted value
//   - bool: false if v is not numeric
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// toColor converts a colour literal, packed 0xRRGGBB integer or common.Color.
func toColor(v any) (common.Color, error) {
	switch c := v.(type) {
	case common.Color:
		return c, nil
	case string:
		parsed, err := common.ParseColor(c)
		if err != nil {
			return common.Color{}, fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		return parsed, nil
	}
	if f, ok := ToFloat(v); ok && f >= 0 && f <= 0xffffff {
		return common.ColorFromHex(uint32(f)), nil
	}
	return common.Color{}, fmt.Errorf("%w: %v is not a colour", ErrInvalidValue, v)
}

// toBool accepts bools and the strings strconv.ParseBool understands.
func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, fmt.Errorf("%w: %q is not a bool", ErrInvalidValue, b)
		}
		return parsed, nil
	}
	return false, fmt.Errorf("%w: %v is not a bool", ErrInvalidValue, v)
}

// normalize converts a raw property value into the controller's public representation:
// float64 for numbers, common.Color for colours.
func normalize(kind Kind, raw reflect.Value) any {
	switch kind {
	case KindNumber:
		f, _ := ToFloat(raw.Interface())
		return f
	case KindColor:
		c, _ := toColor(raw.Interface())
		return c
	case KindFunction:
		return nil
	default:
		return raw.Interface()
	}
}

// encode converts a normalized value into a reflect.Value of type t.
func encode(kind Kind, t reflect.Type, value any) (reflect.Value, error) {
	out := reflect.New(t).Elem()
	switch kind {
	case KindNumber:
		f, ok := ToFloat(value)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return out, fmt.Errorf("%w: %v is not a finite number", ErrInvalidValue, value)
		}
		switch t.Kind() {
		case reflect.Float32, reflect.Float64:
			if out.OverflowFloat(f) {
				return out, fmt.Errorf("%w: %v overflows %s", ErrInvalidValue, value, t)
			}
			out.SetFloat(f)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			r := math.Round(f)
			// 2^64 and above do not convert to uint64
			if r < 0 || r >= 1<<64 || out.OverflowUint(uint64(r)) {
				return out, fmt.Errorf("%w: %v is out of range for %s", ErrInvalidValue, value, t)
			}
			out.SetUint(uint64(r))
		default:
			r := math.Round(f)
			if r < math.MinInt64 || r >= 1<<63 || out.OverflowInt(int64(r)) {
				return out, fmt.Errorf("%w: %v is out of range for %s", ErrInvalidValue, value, t)
			}
			out.SetInt(int64(r))
		}
	case KindBool:
		b, err := toBool(value)
		if err != nil {
			return out, err
		}
		out.SetBool(b)
	case KindString:
		s, ok := value.(string)
		if !ok {
			s = fmt.Sprint(value)
		}
		out.SetString(s)
	case KindColor:
		c, err := toColor(value)
		if err != nil {
			return out, err
		}
		switch {
		case t == colorType:
			out.Set(reflect.ValueOf(c))
		case t.Kind() == reflect.String:
			out.SetString(c.HexString())
		case t.Kind() >= reflect.Uint && t.Kind() <= reflect.Uint64:
			out.SetUint(uint64(c.Hex()))
		default:
			out.SetInt(int64(c.Hex()))
		}
	default:
		return out, fmt.Errorf("%w: cannot assign to a %s property", ErrInvalidValue, kind)
	}
	return out, nil
}
