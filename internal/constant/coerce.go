package constant

import (
	"fmt"

	"github.com/cwbudde/jhdr/internal/types"
)

// Coerce narrows or widens v to the declared primitive target kind.
// boolean, string, and null only coerce to themselves; every other
// pair of primitive kinds follows the platform's standard narrowing/widening
// rules — float-to-integer truncates toward zero, and integral narrowing
// wraps using two's-complement (Go's own integer conversions already do
// this, so integral narrowing is a direct type conversion).
func Coerce(v Value, target types.PrimKind) (Value, error) {
	targetKind := FromPrimKind(target)

	switch targetKind {
	case KindBoolean:
		if v.kind != KindBoolean {
			return Value{}, fmt.Errorf("cannot coerce %s to boolean", v.kind)
		}
		return v, nil
	case KindNull:
		if v.kind != KindNull {
			return Value{}, fmt.Errorf("cannot coerce %s to the null type", v.kind)
		}
		return v, nil
	}

	if v.kind == KindBoolean || v.kind == KindNull || v.kind == KindString {
		return Value{}, fmt.Errorf("cannot coerce %s to %s", v.kind, targetKind)
	}
	if !v.IsNumeric() {
		return Value{}, fmt.Errorf("cannot coerce %s to %s", v.kind, targetKind)
	}

	switch targetKind {
	case KindByte:
		return NewByte(int8(truncateToInt64(v))), nil
	case KindShort:
		return NewShort(int16(truncateToInt64(v))), nil
	case KindChar:
		return NewChar(uint16(truncateToInt64(v))), nil
	case KindInt:
		return NewInt(int32(truncateToInt64(v))), nil
	case KindLong:
		return NewLong(truncateToInt64(v)), nil
	case KindFloat:
		if v.IsFloatingPoint() {
			return NewFloat(float32(v.floatVal)), nil
		}
		return NewFloat(float32(v.intVal)), nil
	case KindDouble:
		if v.IsFloatingPoint() {
			return NewDouble(v.floatVal), nil
		}
		return NewDouble(float64(v.intVal)), nil
	}
	return Value{}, fmt.Errorf("unsupported coercion target %s", targetKind)
}

// CoerceToString implements the narrow cast-to-String rule: a cast to
// String when the operand is already a string is accepted as a no-op.
func CoerceToString(v Value) (Value, bool) {
	if v.kind == KindString {
		return v, true
	}
	return Value{}, false
}

func truncateToInt64(v Value) int64 {
	if v.IsFloatingPoint() {
		return int64(v.floatVal)
	}
	return v.intVal
}
