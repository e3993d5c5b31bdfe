package constant

import (
	"testing"

	"github.com/cwbudde/jhdr/internal/types"
)

func TestEqualBasic(t *testing.T) {
	if !Equal(NewInt(3), NewInt(3)) {
		t.Error("equal ints should be Equal")
	}
	if Equal(NewInt(3), NewLong(3)) {
		t.Error("different kinds should not be Equal even with the same numeric value")
	}
	if !Equal(NewString("a"), NewString("a")) {
		t.Error("equal strings should be Equal")
	}
	if !Equal(Null(), Null()) {
		t.Error("null should equal null")
	}
}

func TestEqualFloatUsesFloat32Precision(t *testing.T) {
	a := NewFloat(1.0 / 3.0)
	b := NewFloat(float32(1.0 / 3.0))
	if !Equal(a, b) {
		t.Error("float equality should compare at float32 precision")
	}
}

func TestEqualArrayRecurses(t *testing.T) {
	a := NewArray([]Value{NewInt(1), NewInt(2)})
	b := NewArray([]Value{NewInt(1), NewInt(2)})
	c := NewArray([]Value{NewInt(1), NewInt(3)})
	if !Equal(a, b) {
		t.Error("identical arrays should be Equal")
	}
	if Equal(a, c) {
		t.Error("arrays differing in an element should not be Equal")
	}
}

func TestFromPrimKindRoundTrip(t *testing.T) {
	for _, p := range []types.PrimKind{types.PrimBoolean, types.PrimByte, types.PrimShort, types.PrimChar, types.PrimInt, types.PrimLong, types.PrimFloat, types.PrimDouble, types.PrimNull} {
		k := FromPrimKind(p)
		got, ok := k.ToPrimKind()
		if !ok || got != p {
			t.Errorf("FromPrimKind(%v).ToPrimKind() = %v, %v", p, got, ok)
		}
	}
}

func TestAsStringConcatenation(t *testing.T) {
	if NewInt(42).AsString() != "42" {
		t.Errorf("AsString(42) = %q", NewInt(42).AsString())
	}
	if NewBool(true).AsString() != "true" {
		t.Errorf("AsString(true) = %q", NewBool(true).AsString())
	}
	if NewChar('A').AsString() != "A" {
		t.Errorf("AsString('A') = %q", NewChar('A').AsString())
	}
}
