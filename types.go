package thunderframe

import (
	"math"
	"reflect"
	"time"
)

// TypeKind is the kind of value held by the cells of a value column.
type TypeKind uint8

const (
	TypeAny TypeKind = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeNumber
	TypeString
	TypeTime
	TypeList
)

var typeKindNames = [...]string{"Any", "Bool", "Int", "Float", "Number", "String", "Time", "List"}

func (k TypeKind) String() string {
	if int(k) < len(typeKindNames) {
		return typeKindNames[k]
	}
	return "Unknown"
}

// Type describes the element type of a value column. It is carried next to
// the data and replaces compile-time type information.
type Type struct {
	Kind     TypeKind
	Elem     *Type // element type of a List
	Nullable bool
}

func TypeOf(kind TypeKind) Type { return Type{Kind: kind} }

func ListOf(elem Type) Type { return Type{Kind: TypeList, Elem: &elem} }

func (t Type) WithNullable(nullable bool) Type {
	t.Nullable = nullable
	return t
}

func (t Type) IsNumber() bool {
	return t.Kind == TypeInt || t.Kind == TypeFloat || t.Kind == TypeNumber
}

// IsComparable reports whether values of t have a natural ordering.
func (t Type) IsComparable() bool {
	switch t.Kind {
	case TypeBool, TypeInt, TypeFloat, TypeNumber, TypeString, TypeTime:
		return true
	}
	return false
}

func (t Type) IsCollection() bool { return t.Kind == TypeList }

// ElemType returns the element type of a list, or Any for anything else.
func (t Type) ElemType() Type {
	if t.Kind == TypeList && t.Elem != nil {
		return *t.Elem
	}
	return Type{Kind: TypeAny, Nullable: true}
}

func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind || t.Nullable != o.Nullable {
		return false
	}
	if t.Kind == TypeList {
		return t.ElemType().Equal(o.ElemType())
	}
	return true
}

func (t Type) String() string {
	s := t.Kind.String()
	if t.Kind == TypeList {
		s += "<" + t.ElemType().String() + ">"
	}
	if t.Nullable {
		s += "?"
	}
	return s
}

// unifyTypes returns the narrowest type able to hold values of both a and b.
func unifyTypes(a, b Type) Type {
	nullable := a.Nullable || b.Nullable
	switch {
	case a.Kind == b.Kind && a.Kind == TypeList:
		return ListOf(unifyTypes(a.ElemType(), b.ElemType())).WithNullable(nullable)
	case a.Kind == b.Kind:
		return Type{Kind: a.Kind, Nullable: nullable}
	case a.IsNumber() && b.IsNumber():
		return Type{Kind: TypeNumber, Nullable: nullable}
	}
	return Type{Kind: TypeAny, Nullable: nullable}
}

// kindOfValue classifies a single non-nil value.
func kindOfValue(v any) TypeKind {
	switch v.(type) {
	case bool:
		return TypeBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TypeInt
	case float32, float64:
		return TypeFloat
	case string:
		return TypeString
	case time.Time:
		return TypeTime
	case []any:
		return TypeList
	}
	return TypeAny
}

// InferType derives a column type from its values. Nil values make the type
// nullable; a column of only nils is a nullable Any. The element type of a
// list column is inferred from the elements of all its lists together.
func InferType(values []any) Type {
	var (
		result Type
		seen   bool
		elems  []any
	)
	for _, v := range values {
		if v == nil {
			result.Nullable = true
			continue
		}
		t := Type{Kind: kindOfValue(v)}
		if t.Kind == TypeList {
			elems = append(elems, v.([]any)...)
		}
		if !seen {
			t.Nullable = result.Nullable
			result = t
			seen = true
			continue
		}
		result = unifyTypes(result, t)
	}
	if !seen {
		return Type{Kind: TypeAny, Nullable: result.Nullable || len(values) == 0}
	}
	if result.Kind == TypeList {
		elem := InferType(elems)
		result.Elem = &elem
	}
	return result
}

// isNA reports whether v counts as a missing value.
func isNA(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	return false
}

// toFloat converts any numeric value to float64.
func toFloat(v any) (float64, bool) {
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
