package constant

import "testing"

func TestUnaryPromote(t *testing.T) {
	cases := []struct {
		in   Value
		want Kind
	}{
		{NewByte(5), KindInt},
		{NewShort(5), KindInt},
		{NewChar('x'), KindInt},
		{NewInt(5), KindInt},
		{NewLong(5), KindLong},
		{NewFloat(5), KindFloat},
		{NewDouble(5), KindDouble},
		{NewBool(true), KindBoolean},
	}
	for _, c := range cases {
		if got := UnaryPromote(c.in).Kind(); got != c.want {
			t.Errorf("UnaryPromote(%v kind %v) = %v, want %v", c.in, c.in.Kind(), got, c.want)
		}
	}
}

func TestBinaryPromoteCommonKind(t *testing.T) {
	cases := []struct {
		a, b Value
		want Kind
	}{
		{NewInt(1), NewLong(2), KindLong},
		{NewInt(1), NewFloat(2), KindFloat},
		{NewLong(1), NewDouble(2), KindDouble},
		{NewByte(1), NewShort(2), KindInt},
		{NewInt(1), NewInt(2), KindInt},
	}
	for _, c := range cases {
		pa, pb := BinaryPromote(c.a, c.b)
		if pa.Kind() != c.want || pb.Kind() != c.want {
			t.Errorf("BinaryPromote(%v, %v) = (%v, %v), want both %v", c.a, c.b, pa.Kind(), pb.Kind(), c.want)
		}
	}
}

func TestBinaryPromotePreservesValue(t *testing.T) {
	a, b := BinaryPromote(NewInt(3), NewDouble(2))
	if a.Float64() != 3.0 {
		t.Errorf("promoted int value = %v, want 3.0", a.Float64())
	}
	if b.Float64() != 2.0 {
		t.Errorf("promoted double value = %v, want 2.0", b.Float64())
	}
}
