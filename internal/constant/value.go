// Package constant evaluates compile-time constant expression trees: field
// initializers of static final primitive/string fields, and the argument
// trees of annotation occurrences. It is the binder's hardest component —
// a small tree-walking interpreter over a closed set of expression kinds,
// with no knowledge of control flow, since the AST it consumes carries none.
package constant

import (
	"fmt"

	"github.com/cwbudde/jhdr/internal/symbol"
	"github.com/cwbudde/jhdr/internal/types"
)

// Kind tags a Value's payload. It extends types.PrimKind with the
// non-primitive constant shapes a field or annotation argument may hold.
type Kind int

const (
	KindBoolean Kind = iota
	KindByte
	KindShort
	KindChar
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindString
	KindNull
	KindClass      // T.class
	KindEnum       // an enum constant reference
	KindAnnotation // a nested annotation value
	KindArray      // an array of constants (annotation array values)
)

var kindNames = map[Kind]string{
	KindBoolean:    "boolean",
	KindByte:       "byte",
	KindShort:      "short",
	KindChar:       "char",
	KindInt:        "int",
	KindLong:       "long",
	KindFloat:      "float",
	KindDouble:     "double",
	KindString:     "string",
	KindNull:       "<null>",
	KindClass:      "class",
	KindEnum:       "enum",
	KindAnnotation: "annotation",
	KindArray:      "array",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// primKinds maps a Kind to its types.PrimKind counterpart, for the kinds
// that have one.
var primKinds = map[Kind]types.PrimKind{
	KindBoolean: types.PrimBoolean,
	KindByte:    types.PrimByte,
	KindShort:   types.PrimShort,
	KindChar:    types.PrimChar,
	KindInt:     types.PrimInt,
	KindLong:    types.PrimLong,
	KindFloat:   types.PrimFloat,
	KindDouble:  types.PrimDouble,
	KindNull:    types.PrimNull,
}

// ToPrimKind reports the types.PrimKind a constant Kind corresponds to.
func (k Kind) ToPrimKind() (types.PrimKind, bool) {
	p, ok := primKinds[k]
	return p, ok
}

// FromPrimKind is the inverse of ToPrimKind.
func FromPrimKind(p types.PrimKind) Kind {
	for k, pk := range primKinds {
		if pk == p {
			return k
		}
	}
	return KindNull
}

// AnnotationValue is the evaluated shape of a nested annotation used as
// another annotation's argument. It holds
// only what the constant evaluator itself needs to carry — the full
// annotation-binding machinery (retention, targets, repeatability) lives in
// the binder, which wraps values of this shape rather than redefining them.
type AnnotationValue struct {
	Type     types.Type
	Elements map[string]Value
}

// Value is an immutable, tagged compile-time constant. The zero Value is
// not meaningful; use one of the constructors.
type Value struct {
	kind Kind

	boolVal   bool
	intVal    int64 // carries byte/short/char/int/long, sign-extended
	floatVal  float64
	strVal    string
	classVal  types.Type
	enumVal   symbol.Field
	annoVal   *AnnotationValue
	arrayVals []Value
}

func (v Value) Kind() Kind { return v.kind }

func NewBool(b bool) Value   { return Value{kind: KindBoolean, boolVal: b} }
func NewByte(b int8) Value   { return Value{kind: KindByte, intVal: int64(b)} }
func NewShort(s int16) Value { return Value{kind: KindShort, intVal: int64(s)} }
func NewChar(c uint16) Value { return Value{kind: KindChar, intVal: int64(c)} }
func NewInt(i int32) Value   { return Value{kind: KindInt, intVal: int64(i)} }
func NewLong(l int64) Value  { return Value{kind: KindLong, intVal: l} }

func NewFloat(f float32) Value  { return Value{kind: KindFloat, floatVal: float64(f)} }
func NewDouble(d float64) Value { return Value{kind: KindDouble, floatVal: d} }

func NewString(s string) Value { return Value{kind: KindString, strVal: s} }

// Null is the single null constant value.
func Null() Value { return Value{kind: KindNull} }

func NewClassLiteral(t types.Type) Value   { return Value{kind: KindClass, classVal: t} }
func NewEnumConstant(f symbol.Field) Value { return Value{kind: KindEnum, enumVal: f} }
func NewAnnotationValue(a AnnotationValue) Value {
	return Value{kind: KindAnnotation, annoVal: &a}
}
func NewArray(elems []Value) Value { return Value{kind: KindArray, arrayVals: elems} }

// Bool returns the payload of a KindBoolean value.
func (v Value) Bool() bool { return v.boolVal }

// Int64 returns the sign-extended integer payload of any integral kind
// (byte, short, char, int, long).
func (v Value) Int64() int64 { return v.intVal }

// Float64 returns the payload of a KindFloat or KindDouble value (widened to
// float64 for float values; callers that need exact float32 semantics should
// narrow via float32(v.Float64())).
func (v Value) Float64() float64 { return v.floatVal }

func (v Value) Str() string                  { return v.strVal }
func (v Value) ClassLiteral() types.Type     { return v.classVal }
func (v Value) EnumConstant() symbol.Field   { return v.enumVal }
func (v Value) Annotation() *AnnotationValue { return v.annoVal }
func (v Value) Elements() []Value            { return v.arrayVals }

// String implements fmt.Stringer for debug output and test failure messages.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return fmt.Sprintf("%q", v.strVal)
	case KindNull:
		return "null"
	case KindArray:
		return fmt.Sprintf("%v", v.arrayVals)
	default:
		return v.AsString()
	}
}

// IsIntegral reports whether the value's kind is one of the integral
// primitive kinds.
func (v Value) IsIntegral() bool {
	switch v.kind {
	case KindByte, KindShort, KindChar, KindInt, KindLong:
		return true
	}
	return false
}

// IsFloatingPoint reports whether the value's kind is float or double.
func (v Value) IsFloatingPoint() bool {
	return v.kind == KindFloat || v.kind == KindDouble
}

// IsNumeric reports whether the value participates in numeric promotion.
func (v Value) IsNumeric() bool { return v.IsIntegral() || v.IsFloatingPoint() }

// AsString renders v the way the evaluator's `+` operator does when forced
// to a string by a string-typed operand (Java's Object.toString() for
// primitives when the other side of a `+` is a string.
func (v Value) AsString() string {
	switch v.kind {
	case KindBoolean:
		return fmt.Sprintf("%t", v.boolVal)
	case KindByte, KindShort, KindInt, KindLong:
		return fmt.Sprintf("%d", v.intVal)
	case KindChar:
		return string(rune(v.intVal))
	case KindFloat:
		return fmt.Sprintf("%g", float32(v.floatVal))
	case KindDouble:
		return fmt.Sprintf("%g", v.floatVal)
	case KindString:
		return v.strVal
	case KindNull:
		return "null"
	default:
		return fmt.Sprintf("<%s constant>", v.kind)
	}
}

// Equal is a structural equality used by constant round-trip tests: two
// values are equal when their kind and payload agree.
// Annotation and array values recurse; class literals compare by
// types.Equal; enum constants compare by owner+name.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindBoolean:
		return a.boolVal == b.boolVal
	case KindByte, KindShort, KindChar, KindInt, KindLong:
		return a.intVal == b.intVal
	case KindFloat:
		return float32(a.floatVal) == float32(b.floatVal)
	case KindDouble:
		return a.floatVal == b.floatVal
	case KindString:
		return a.strVal == b.strVal
	case KindNull:
		return true
	case KindClass:
		return types.Equal(a.classVal, b.classVal)
	case KindEnum:
		return a.enumVal.Owner == b.enumVal.Owner && a.enumVal.Name == b.enumVal.Name
	case KindAnnotation:
		if a.annoVal == nil || b.annoVal == nil {
			return a.annoVal == b.annoVal
		}
		if !types.Equal(a.annoVal.Type, b.annoVal.Type) {
			return false
		}
		if len(a.annoVal.Elements) != len(b.annoVal.Elements) {
			return false
		}
		for k, av := range a.annoVal.Elements {
			bv, ok := b.annoVal.Elements[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case KindArray:
		if len(a.arrayVals) != len(b.arrayVals) {
			return false
		}
		for i := range a.arrayVals {
			if !Equal(a.arrayVals[i], b.arrayVals[i]) {
				return false
			}
		}
		return true
	}
	return false
}
