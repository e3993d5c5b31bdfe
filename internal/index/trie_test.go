package index

import (
	"testing"

	"github.com/cwbudde/jhdr/internal/ast"
	"github.com/cwbudde/jhdr/internal/symbol"
)

func name(parts ...string) ast.Name {
	idents := make([]ast.Ident, len(parts))
	for i, p := range parts {
		idents[i] = ast.Ident{Name: p}
	}
	return ast.Name{Parts: idents}
}

func TestInsertFirstMatchWins(t *testing.T) {
	idx := New()
	if !idx.Insert(symbol.Class("a/b/C")) {
		t.Fatal("first insert should succeed")
	}
	if idx.Insert(symbol.Class("a/b/C")) {
		t.Fatal("second insert at the same path should fail (first-match-wins)")
	}
}

func TestScopeLookupPackageAndClass(t *testing.T) {
	idx := New()
	idx.Insert(symbol.Class("a/b/C"))

	r, ok := idx.Scope().Lookup(name("a", "b", "C"))
	if !ok {
		t.Fatal("expected a/b/C to resolve")
	}
	if r.Symbol != symbol.Class("a/b/C") || len(r.Remaining) != 0 {
		t.Errorf("unexpected result: %+v", r)
	}
}

func TestScopeLookupWithRemainingSuffix(t *testing.T) {
	idx := New()
	idx.Insert(symbol.Class("a/b/C"))

	r, ok := idx.Scope().Lookup(name("a", "b", "C", "Inner"))
	if !ok {
		t.Fatal("expected a/b/C to resolve with a remaining suffix")
	}
	if r.Symbol != symbol.Class("a/b/C") || len(r.Remaining) != 1 || r.Remaining[0].Name != "Inner" {
		t.Errorf("unexpected result: %+v", r)
	}
}

// TestCanonicalIndexAgreement checks that resolving a class through the
// full Scope lookup path and through LookupPackage+simple-name lookup
// agree on the same symbol.
func TestCanonicalIndexAgreement(t *testing.T) {
	idx := New()
	idx.Insert(symbol.Class("a/b/C"))

	viaScope, ok := idx.Scope().Lookup(name("a", "b", "C"))
	if !ok {
		t.Fatal("expected a/b/C to resolve via Scope")
	}

	pkgScope, ok := idx.LookupPackage(symbol.Package("a/b"))
	if !ok {
		t.Fatal("expected package a/b to exist")
	}
	viaPackage, ok := pkgScope.Lookup("C")
	if !ok {
		t.Fatal("expected C to resolve via LookupPackage")
	}

	if viaScope.Symbol != viaPackage {
		t.Errorf("Scope().Lookup = %v, LookupPackage().Lookup = %v — should agree", viaScope.Symbol, viaPackage)
	}
}

func TestLookupPackageMissing(t *testing.T) {
	idx := New()
	if _, ok := idx.LookupPackage(symbol.Package("x/y")); ok {
		t.Error("expected missing package to report ok=false")
	}
}

func TestNestedClassResolvesStructurally(t *testing.T) {
	idx := New()
	idx.Insert(symbol.Class("a/Outer"))
	// Outer$Inner is never inserted as its own top-level path: a lookup for
	// it resolves Outer, leaving "Inner" as the remaining suffix for
	// structural (member-map) resolution.
	r, ok := idx.Scope().Lookup(name("a", "Outer", "Inner"))
	if !ok {
		t.Fatal("expected a/Outer to resolve")
	}
	if r.Symbol != symbol.Class("a/Outer") || len(r.Remaining) != 1 {
		t.Errorf("unexpected result: %+v", r)
	}
}
