package scope

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

type mapScope map[string]symbol.Class

func (m mapScope) Lookup(key ast.Name) (LookupResult, bool) {
	if len(key.Parts) == 0 {
		return LookupResult{}, false
	}
	c, ok := m[key.Parts[0].Name]
	if !ok {
		return LookupResult{}, false
	}
	return LookupResult{Symbol: c, Remaining: key.Parts[1:]}, true
}

func TestCompoundScopeFirstWins(t *testing.T) {
	inner := mapScope{"X": symbol.Class("a/Inner$X")}
	outer := mapScope{"X": symbol.Class("a/Outer$X")}
	cs := CompoundScope{inner, outer}
	r, ok := cs.Lookup(name("X"))
	if !ok || r.Symbol != symbol.Class("a/Inner$X") {
		t.Fatalf("CompoundScope should prefer the first matching scope, got %v", r)
	}
}

func TestCompoundScopeSkipsNil(t *testing.T) {
	outer := mapScope{"X": symbol.Class("a/Outer$X")}
	cs := CompoundScope{nil, outer}
	r, ok := cs.Lookup(name("X"))
	if !ok || r.Symbol != symbol.Class("a/Outer$X") {
		t.Fatalf("CompoundScope should skip a nil entry, got %v, %v", r, ok)
	}
}

func TestPackageScopeAsScope(t *testing.T) {
	ps := NewPackageScope(map[string]symbol.Class{"Box": symbol.Class("a/Box")})
	r, ok := ps.AsScope().Lookup(name("Box", "Inner"))
	if !ok {
		t.Fatal("expected Box to resolve")
	}
	if r.Symbol != symbol.Class("a/Box") || len(r.Remaining) != 1 || r.Remaining[0].Name != "Inner" {
		t.Errorf("unexpected result: %+v", r)
	}
}

func TestImportIndexResolvesThroughMembers(t *testing.T) {
	base := mapScope{"Outer": symbol.Class("a/Outer")}
	idx := NewImportIndex(base)
	if !idx.Add(name("Outer", "Inner")) {
		t.Fatal("Add should succeed for a fresh simple name")
	}
	if idx.Add(name("b", "Other", "Inner")) {
		t.Fatal("Add should reject a duplicate simple name")
	}

	resolve := func(origin, sym symbol.Class, n string) (symbol.Class, bool) {
		if sym == symbol.Class("a/Outer") && n == "Inner" {
			return symbol.Class("a/Outer$Inner"), true
		}
		return "", false
	}

	r, ok := idx.LookupWithResolver(name("Inner"), resolve)
	if !ok || r.Symbol != symbol.Class("a/Outer$Inner") {
		t.Fatalf("LookupWithResolver = %v, %v", r, ok)
	}

	// Memoized: a second lookup with a resolver that always fails should
	// still return the cached result.
	r2, ok2 := idx.LookupWithResolver(name("Inner"), func(symbol.Class, symbol.Class, string) (symbol.Class, bool) {
		return "", false
	})
	if !ok2 || r2.Symbol != r.Symbol {
		t.Errorf("expected memoized result, got %v, %v", r2, ok2)
	}
}

func TestWildImportIndexSourceOrderFirstHit(t *testing.T) {
	base := mapScope{}
	pkgLookup := func(pkg, name string) (symbol.Class, bool) {
		if pkg == "a.b" && name == "X" {
			return symbol.Class("a/b/X"), true
		}
		if pkg == "c.d" && name == "X" {
			return symbol.Class("c/d/X"), true
		}
		return "", false
	}
	w := NewWildImportIndex(base, pkgLookup)
	w.AddPackage("c.d")
	w.AddPackage("a.b")

	r, ok := w.LookupWithResolver(name("X"), nil)
	if !ok || r.Symbol != symbol.Class("c/d/X") {
		t.Fatalf("expected the earlier-declared wildcard to win, got %v, %v", r, ok)
	}
}

func TestMemberImportIndexSingleAndWild(t *testing.T) {
	base := mapScope{"a": symbol.Class("a/C")}
	idx := NewMemberImportIndex(base)
	idx.AddSingle(name("a", "X"))
	idx.AddWild(name("a"))

	resolveType := func(origin, sym symbol.Class, n string) (symbol.Class, bool) { return "", false }
	resolveField := func(origin, owner symbol.Class, n string) (symbol.Field, bool) {
		if owner == symbol.Class("a/C") {
			return symbol.Field{Owner: owner, Name: n}, true
		}
		return symbol.Field{}, false
	}

	owner, fname, ok := idx.Lookup("X", resolveField, resolveType)
	if !ok || owner != symbol.Class("a/C") || fname != "X" {
		t.Fatalf("single-member lookup failed: %v %v %v", owner, fname, ok)
	}

	owner, fname, ok = idx.Lookup("Y", resolveField, resolveType)
	if !ok || owner != symbol.Class("a/C") || fname != "Y" {
		t.Fatalf("wildcard member lookup failed: %v %v %v", owner, fname, ok)
	}
}
