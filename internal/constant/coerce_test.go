package constant

import (
	"testing"

	"github.com/cwbudde/jhdr/internal/types"
)

func TestCoerceWidening(t *testing.T) {
	v, err := Coerce(NewByte(5), types.PrimLong)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != KindLong || v.Int64() != 5 {
		t.Errorf("got %v %v", v.Kind(), v.Int64())
	}
}

func TestCoerceNarrowingWraps(t *testing.T) {
	v, err := Coerce(NewInt(300), types.PrimByte)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 300 truncated to a signed byte wraps to 44 (300 - 256).
	if v.Kind() != KindByte || v.Int64() != 44 {
		t.Errorf("Coerce(300, byte) = %v %v, want 44", v.Kind(), v.Int64())
	}
}

func TestCoerceFloatToIntTruncates(t *testing.T) {
	v, err := Coerce(NewDouble(3.9), types.PrimInt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Int64() != 3 {
		t.Errorf("Coerce(3.9, int) = %v, want 3", v.Int64())
	}
}

func TestCoerceBooleanOnlyToItself(t *testing.T) {
	if _, err := Coerce(NewBool(true), types.PrimInt); err == nil {
		t.Error("expected an error coercing boolean to int")
	}
	v, err := Coerce(NewBool(true), types.PrimBoolean)
	if err != nil || !v.Bool() {
		t.Errorf("Coerce(true, boolean) = %v, %v", v, err)
	}
}

func TestCoerceStringRejectedForPrimitiveTarget(t *testing.T) {
	if _, err := Coerce(NewString("x"), types.PrimInt); err == nil {
		t.Error("expected an error coercing string to int")
	}
}

func TestCoerceToStringNoOp(t *testing.T) {
	v, ok := CoerceToString(NewString("hi"))
	if !ok || v.Str() != "hi" {
		t.Errorf("CoerceToString(string) = %v, %v", v, ok)
	}
	if _, ok := CoerceToString(NewInt(1)); ok {
		t.Error("CoerceToString should reject non-string values")
	}
}
