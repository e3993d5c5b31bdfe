package binder

import (
	"testing"

	"github.com/cwbudde/jhdr/internal/ast"
	"github.com/cwbudde/jhdr/internal/diag"
	"github.com/cwbudde/jhdr/internal/types"
)

func newTestBinder() *Binder {
	bd := NewBinder(&diag.Bag{}, nil, nil)
	// Tests use java.lang.String as a field and element type; with no
	// bootclasspath, seed its name so it resolves through the index.
	bd.Index.Insert("java/lang/String")
	return bd
}

func TestBindHierarchyDefaultsToObject(t *testing.T) {
	bd := newTestBinder()
	bd.AddUnit(unit("u.src", classDecl("A", ast.KindClass)))
	bd.BindHierarchy()

	a, _ := bd.Lookup("A")
	if got, want := a.SuperType.String(), "java.lang.Object"; got != want {
		t.Errorf("A.SuperType = %q, want %q", got, want)
	}
}

func TestBindHierarchyInterfaceHasNoImplicitSuper(t *testing.T) {
	bd := newTestBinder()
	bd.AddUnit(unit("u.src", classDecl("I", ast.KindInterface)))
	bd.BindHierarchy()

	i, _ := bd.Lookup("I")
	if i.RawSuper != "" {
		t.Errorf("interface should not get an implicit superclass, got %s", i.RawSuper)
	}
}

func TestBindHierarchyDetectsCycle(t *testing.T) {
	a := classDecl("A", ast.KindClass)
	a.Superclass = namedType("B")
	b := classDecl("B", ast.KindClass)
	b.Superclass = namedType("A")

	bd := newTestBinder()
	bd.AddUnit(unit("u.src", a, b))
	bd.BindHierarchy()

	if !bd.Bag.HasErrors() {
		t.Fatal("expected a cycle diagnostic")
	}
	found := false
	for _, d := range bd.Bag.Diagnostics() {
		if d.Kind == diag.CycleInClassHierarchy {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a CYCLE_IN_CLASS_HIERARCHY diagnostic, got %v", bd.Bag.Diagnostics())
	}
}

func TestBindHierarchyResolvesNestedInterface(t *testing.T) {
	outer := classDecl("Outer", ast.KindClass)
	inner := classDecl("Inner", ast.KindInterface)
	outer.NestedTypes = []*ast.ClassDecl{inner}

	impl := classDecl("Impl", ast.KindClass)
	impl.Interfaces = []ast.TypeExpr{namedType("Outer", "Inner")}

	bd := newTestBinder()
	bd.AddUnit(unit("u.src", outer, impl))
	bd.BindHierarchy()

	if bd.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bd.Bag.Diagnostics())
	}
	implB, _ := bd.Lookup("Impl")
	if len(implB.InterfaceTypes) != 1 || implB.InterfaceTypes[0].String() != "Outer$Inner" {
		t.Errorf("Impl.InterfaceTypes = %v, want [Outer$Inner]", implB.InterfaceTypes)
	}
}

func TestBindHierarchyMissingSupertype(t *testing.T) {
	a := classDecl("A", ast.KindClass)
	a.Superclass = namedType("NoSuch")

	bd := newTestBinder()
	bd.AddUnit(unit("u.src", a))
	bd.BindHierarchy()

	if len(bd.Bag.Diagnostics()) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %v", bd.Bag.Diagnostics())
	}
	d := bd.Bag.Diagnostics()[0]
	if d.Kind != diag.CannotResolve {
		t.Errorf("Kind = %v, want CannotResolve", d.Kind)
	}
	boundA, _ := bd.Lookup("A")
	if boundA.SuperType.Tag() != types.TagError {
		t.Errorf("expected an error-sentinel SuperType, got %v", boundA.SuperType)
	}
}

func TestBindHierarchyMissingQualifiedSupertype(t *testing.T) {
	a := classDecl("A", ast.KindClass)
	a.Superclass = namedType("com", "example", "NoSuch")

	bd := newTestBinder()
	bd.AddUnit(unit("u.src", a))
	bd.BindHierarchy()

	if len(bd.Bag.Diagnostics()) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %v", bd.Bag.Diagnostics())
	}
	d := bd.Bag.Diagnostics()[0]
	if d.Kind != diag.SymbolNotFound {
		t.Errorf("Kind = %v, want SymbolNotFound", d.Kind)
	}
}
