package host

import (
	"fmt"
	"math"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/npillmayer/keyset/core"
)

// typeMismatch creates an error of class core.ETYPE.
func typeMismatch(format string, v ...interface{}) error {
	return core.Error(core.ETYPE, format, v...)
}

// valueError creates an error of class core.ERANGE.
func valueError(format string, v ...interface{}) error {
	return core.Error(core.ERANGE, format, v...)
}

// typeName is the name of the type of a host value, as used in error
// messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}

// indirect strips pointers from a host value.
func indirect(v any) reflect.Value {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

// isMapping is true for maps with string keys.
func isMapping(v any) bool {
	rv := indirect(v)
	return rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String
}

// mappingItem looks up key in a host mapping. ok is false if v is not a
// mapping or has no entry for key.
func mappingItem(v any, key string) (item any, ok bool) {
	rv := indirect(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	x := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
	if !x.IsValid() {
		return nil, false
	}
	return x.Interface(), true
}

// isSequence is true for slices and arrays.
func isSequence(v any) bool {
	k := indirect(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// sequenceItem returns item i of a host sequence. ok is false if v is not
// a sequence or is too short.
func sequenceItem(v any, i int) (item any, ok bool) {
	rv := indirect(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if i < 0 || i >= rv.Len() {
		return nil, false
	}
	return rv.Index(i).Interface(), true
}

// sequence returns the items of a host sequence.
func sequence(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := indirect(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// number converts a host number of any numeric kind to float64. Booleans
// are not numbers.
func number(v any) (float64, bool) {
	rv := indirect(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// str converts a host string, including named string types.
func str(v any) (string, bool) {
	rv := indirect(v)
	if rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}

// decodeMapping decodes a host mapping into the host object pointed to
// by result. Keys without a matching field are an error.
func decodeMapping(m any, result any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.DecodeHookFuncType(integralHook),
		ErrorUnused: true,
		Result:      result,
		TagName:     "host",
	})
	if err != nil {
		return err
	}
	return dec.Decode(m)
}

// integralHook rejects numbers with a fraction for integer fields, which
// mapstructure would truncate.
func integralHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float32 && from.Kind() != reflect.Float64 {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if f := reflect.ValueOf(data).Float(); f != math.Trunc(f) {
			return nil, typeMismatch("expected an integer, got '%g'", f)
		}
	}
	return data, nil
}
