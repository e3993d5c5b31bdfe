package constant

// UnaryPromote promotes byte/short/char to int; every other kind, including
// the non-numeric ones, is returned unchanged.
func UnaryPromote(v Value) Value {
	switch v.kind {
	case KindByte, KindShort, KindChar:
		return NewInt(int32(v.intVal))
	default:
		return v
	}
}

// BinaryPromote promotes a pair of numeric operands to their common kind:
// double wins over float wins over long wins over int. Both
// operands are first unary-promoted, then widened to the common kind.
// Non-numeric operands are returned unary-promoted but otherwise untouched —
// callers must reject non-numeric pairs before relying on the result.
func BinaryPromote(a, b Value) (Value, Value) {
	a, b = UnaryPromote(a), UnaryPromote(b)
	if !a.IsNumeric() || !b.IsNumeric() {
		return a, b
	}

	common := commonKind(a.kind, b.kind)
	return widenTo(a, common), widenTo(b, common)
}

func commonKind(a, b Kind) Kind {
	if a == KindDouble || b == KindDouble {
		return KindDouble
	}
	if a == KindFloat || b == KindFloat {
		return KindFloat
	}
	if a == KindLong || b == KindLong {
		return KindLong
	}
	return KindInt
}

func widenTo(v Value, target Kind) Value {
	if v.kind == target {
		return v
	}
	switch target {
	case KindDouble:
		if v.IsFloatingPoint() {
			return NewDouble(v.floatVal)
		}
		return NewDouble(float64(v.intVal))
	case KindFloat:
		return NewFloat(float32(v.intVal))
	case KindLong:
		return NewLong(v.intVal)
	case KindInt:
		return NewInt(int32(v.intVal))
	default:
		return v
	}
}
