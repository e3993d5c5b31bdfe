package classfile

import "testing"

func TestCoerceConstantNarrowsIntStoredKinds(t *testing.T) {
	rc := &RawConstant{Kind: RawInt, Int: 1}
	got, err := CoerceConstant(rc, "Z")
	if err != nil {
		t.Fatalf("CoerceConstant(Z) error: %v", err)
	}
	if got != true {
		t.Errorf("CoerceConstant(Z) = %v, want true", got)
	}

	rc = &RawConstant{Kind: RawInt, Int: 65}
	got, err = CoerceConstant(rc, "C")
	if err != nil {
		t.Fatalf("CoerceConstant(C) error: %v", err)
	}
	if got != rune(65) {
		t.Errorf("CoerceConstant(C) = %v, want 'A'", got)
	}

	rc = &RawConstant{Kind: RawInt, Int: -5}
	got, err = CoerceConstant(rc, "B")
	if err != nil {
		t.Fatalf("CoerceConstant(B) error: %v", err)
	}
	if got != int8(-5) {
		t.Errorf("CoerceConstant(B) = %v, want -5", got)
	}
}

func TestCoerceConstantString(t *testing.T) {
	rc := &RawConstant{Kind: RawString, Str: "hello"}
	got, err := CoerceConstant(rc, "Ljava/lang/String;")
	if err != nil {
		t.Fatalf("CoerceConstant(String) error: %v", err)
	}
	if got != "hello" {
		t.Errorf("CoerceConstant(String) = %v", got)
	}
}

func TestCoerceConstantKindMismatch(t *testing.T) {
	rc := &RawConstant{Kind: RawString, Str: "oops"}
	if _, err := CoerceConstant(rc, "I"); err == nil {
		t.Error("expected error coercing a String-kind constant to int")
	}
}
