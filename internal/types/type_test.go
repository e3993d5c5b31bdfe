package types

import (
	"testing"

	"github.com/cwbudde/jhdr/internal/symbol"
)

func TestTypeString(t *testing.T) {
	listOfString := NewSimpleClass(symbol.Class("java/util/List"), NewSimpleClass(symbol.Class("java/lang/String")))
	if got, want := listOfString.String(), "java.util.List<java.lang.String>"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	arr := NewArray(NewPrim(PrimInt))
	if got, want := arr.String(), "int[]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestEqualIgnoresAnnotations(t *testing.T) {
	a := NewPrim(PrimInt, Annotation{Sym: symbol.Class("a/NonNull")})
	b := NewPrim(PrimInt)
	if !Equal(a, b) {
		t.Error("Equal should ignore type-use annotations")
	}
}

func TestEqualDistinguishesClassArgs(t *testing.T) {
	listOfString := NewSimpleClass(symbol.Class("java/util/List"), NewPrim(PrimInt))
	listRaw := NewSimpleClass(symbol.Class("java/util/List"))
	if Equal(listOfString, listRaw) {
		t.Error("raw and parameterized List should not be equal")
	}
}

func TestEraseIdempotent(t *testing.T) {
	tv := symbol.TypeVariable{Owner: symbol.ClassOwner(symbol.Class("a/Box")), Name: "T"}
	bound := NewSimpleClass(symbol.Class("java/lang/Object"))
	bounds := func(v symbol.TypeVariable) Type {
		if v == tv {
			return bound
		}
		return NewSimpleClass(symbol.Class("java/lang/Object"))
	}

	generic := NewSimpleClass(symbol.Class("a/Box"), NewTypeVar(tv))
	once := Erase(generic, bounds)
	twice := Erase(once, bounds)
	if !Equal(once, twice) {
		t.Errorf("erase(erase(T)) != erase(T): %v vs %v", once, twice)
	}
	if len(once.TypeArgs()) != 0 {
		t.Errorf("erased class type should be raw, got args %v", once.TypeArgs())
	}
}

func TestSubstEmptyIsIdentity(t *testing.T) {
	tv := symbol.TypeVariable{Owner: symbol.ClassOwner(symbol.Class("a/Box")), Name: "T"}
	generic := NewSimpleClass(symbol.Class("a/Box"), NewTypeVar(tv))
	if got := Subst(generic, nil); !Equal(got, generic) {
		t.Errorf("Subst with nil map should be identity, got %v", got)
	}
	if got := Subst(generic, Substitution{}); !Equal(got, generic) {
		t.Errorf("Subst with empty map should be identity, got %v", got)
	}
}

func TestSubstReplacesTypeVar(t *testing.T) {
	tv := symbol.TypeVariable{Owner: symbol.ClassOwner(symbol.Class("a/Box")), Name: "T"}
	generic := NewSimpleClass(symbol.Class("a/Box"), NewTypeVar(tv))
	str := NewSimpleClass(symbol.Class("java/lang/String"))
	got := Subst(generic, Substitution{tv: str})
	want := NewSimpleClass(symbol.Class("a/Box"), str)
	if !Equal(got, want) {
		t.Errorf("Subst(generic, {T: String}) = %v, want %v", got, want)
	}
}

func TestSubstThroughArrayAndWildcard(t *testing.T) {
	tv := symbol.TypeVariable{Owner: symbol.ClassOwner(symbol.Class("a/Box")), Name: "T"}
	tvType := NewTypeVar(tv)
	arr := NewArray(tvType)
	wild := NewWildcard(WildUpper, &tvType)
	str := NewSimpleClass(symbol.Class("java/lang/String"))
	sub := Substitution{tv: str}

	if got := Subst(arr, sub); !Equal(got, NewArray(str)) {
		t.Errorf("Subst through array = %v, want %v", got, NewArray(str))
	}
	if got := Subst(wild, sub); !Equal(got, NewWildcard(WildUpper, &str)) {
		t.Errorf("Subst through wildcard = %v, want ? extends String", got)
	}
}
