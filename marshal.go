package thunderframe

import (
	"bytes"
	"cmp"
	"reflect"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"rsc.io/ordered"
)

// ToKey encodes values into a byte string usable as a map key. Two keys are
// equal exactly when the values are pairwise equal and of the same Go type;
// no numeric coercion takes place.
func ToKey(values ...any) ([]byte, error) {
	var enc []byte
	var err error
	for _, v := range values {
		enc, err = appendKey(enc, v)
		if err != nil {
			return nil, err
		}
	}
	return enc, nil
}

func appendKey(enc []byte, v any) ([]byte, error) {
	if v == nil {
		return ordered.Append(enc, "nil"), nil
	}
	enc = ordered.Append(enc, reflect.TypeOf(v).String())
	switch x := v.(type) {
	case bool:
		if x {
			return ordered.Append(enc, uint8(1)), nil
		}
		return ordered.Append(enc, uint8(0)), nil
	case *Table, Row:
		return nil, ErrUnkeyable(v)
	}
	if ordered.CanEncode(v) {
		return ordered.Append(enc, v), nil
	}
	var buf bytes.Buffer
	// Map keys are sorted so that equal maps encode to equal bytes.
	if err := msgpack.NewEncoder(&buf).SetSortMapKeys(true).Encode(v); err != nil {
		return nil, ErrUnkeyable(v)
	}
	return ordered.Append(enc, buf.Bytes()), nil
}

// compareValues orders two values of compatible types. Numbers compare by
// value across integer and float types. The second result is false when the
// values have no common ordering.
func compareValues(a, b any) (int, bool) {
	if a == nil || b == nil {
		if a == nil && b == nil {
			return 0, true
		}
		return 0, false
	}
	ka, kb := kindOfValue(a), kindOfValue(b)
	if (ka == TypeInt || ka == TypeFloat) && (kb == TypeInt || kb == TypeFloat) {
		return compareNumbers(reflect.ValueOf(a), reflect.ValueOf(b)), true
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return 0, false
	}
	switch x := a.(type) {
	case bool:
		y := b.(bool)
		switch {
		case x == y:
			return 0, true
		case !x:
			return -1, true
		}
		return 1, true
	case time.Time:
		return x.Compare(b.(time.Time)), true
	}
	if ordered.CanEncode(a, b) {
		return bytes.Compare(ordered.Encode(a), ordered.Encode(b)), true
	}
	return 0, false
}

func compareNumbers(a, b reflect.Value) int {
	switch {
	case a.CanInt() && b.CanInt():
		return cmp.Compare(a.Int(), b.Int())
	case a.CanUint() && b.CanUint():
		return cmp.Compare(a.Uint(), b.Uint())
	case a.CanInt() && b.CanUint():
		if a.Int() < 0 {
			return -1
		}
		return cmp.Compare(uint64(a.Int()), b.Uint())
	case a.CanUint() && b.CanInt():
		return -compareNumbers(b, a)
	}
	fa, _ := toFloat(a.Interface())
	fb, _ := toFloat(b.Interface())
	return cmp.Compare(fa, fb)
}

// valuesEqual is exact equality as seen by ToKey.
func valuesEqual(a, b any) bool {
	ka, errA := ToKey(a)
	kb, errB := ToKey(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ka, kb)
}
