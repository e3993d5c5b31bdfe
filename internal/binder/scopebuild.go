package binder

import (
	"github.com/cwbudde/jhdr/internal/ast"
	"github.com/cwbudde/jhdr/internal/scope"
	"github.com/cwbudde/jhdr/internal/symbol"
)

// CompilationUnitInfo is the per-compilation-unit scope state shared by
// every top-level and nested class the unit declares: its package scope,
// its single-type and wildcard import indexes, and its static member
// imports. A class's own compound scope is assembled from this plus its own
// position in the class nesting.
type CompilationUnitInfo struct {
	Unit *ast.CompilationUnit

	PackageScope  scope.Scope
	SingleImports *scope.ImportIndex
	WildImports   *scope.WildImportIndex
	MemberImports *scope.MemberImportIndex

	TopClasses []*BoundClass
}

// classMemberScope adapts a BoundClass's own member lookup (its Children
// map) to scope.Scope, letting a nested class's compound scope reach
// sibling and outer-declared nested types by simple name before falling
// through to imports and the top-level index.
type classMemberScope struct{ b *BoundClass }

func (s classMemberScope) Lookup(key ast.Name) (scope.LookupResult, bool) {
	if s.b == nil || len(key.Parts) == 0 {
		return scope.LookupResult{}, false
	}
	if sym, ok := s.b.Children[key.Parts[0].Name]; ok {
		return scope.LookupResult{Symbol: sym, Remaining: key.Parts[1:]}, true
	}
	return scope.LookupResult{}, false
}

// buildClassScope assembles a class's compound lookup scope, innermost to
// outermost: its own member scope (nested types), then — walking outward —
// each enclosing class's member scope, then the unit's single-type imports,
// then its wildcard imports, then the unit's package scope, then the
// top-level index.
func buildClassScope(resolve scope.ResolveFunction, enclosing *BoundClass, unit *CompilationUnitInfo, topIndexScope scope.Scope) scope.Scope {
	var chain scope.CompoundScope
	for c := enclosing; c != nil; c = c.Parent {
		chain = append(chain, classMemberScope{c})
	}
	if unit != nil {
		if unit.SingleImports != nil {
			chain = append(chain, scope.Bind(unit.SingleImports, resolve))
		}
		if unit.WildImports != nil {
			chain = append(chain, scope.Bind(unit.WildImports, resolve))
		}
		if unit.PackageScope != nil {
			chain = append(chain, unit.PackageScope)
		}
	}
	chain = append(chain, topIndexScope)
	return chain
}

// packageLookupFor adapts the Binder's top-level index to scope.PackageLookup
// for on-demand package wildcard imports ("import a.b.*;").
func packageLookupFor(lookupPkg func(symbol.Package) (scope.PackageScope, bool)) scope.PackageLookup {
	return func(pkg string, name string) (symbol.Class, bool) {
		ps, ok := lookupPkg(symbol.Package(pkg))
		if !ok {
			return "", false
		}
		return ps.Lookup(name)
	}
}
