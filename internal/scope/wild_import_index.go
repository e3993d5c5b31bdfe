package scope

import (
	"github.com/cwbudde/jhdr/internal/ast"
	"github.com/cwbudde/jhdr/internal/symbol"
)

// PackageLookup resolves a simple name within one package, the capability
// a WildImportIndex needs for package wildcard imports (`import a.b.*;`).
// The top-level index's LookupPackage result satisfies this shape.
type PackageLookup func(pkg string, name string) (symbol.Class, bool)

type wildEntryKind int

const (
	wildPackage wildEntryKind = iota
	wildType
)

type wildEntry struct {
	kind   wildEntryKind
	pkg    string
	target ast.Name // for kind == wildType
	cell   importCell
}

// WildImportIndex holds wildcard imports — of packages (`import a.b.*;`)
// and of a type's members (`import static X.*;`, restricted here to the
// nested-type half of that; static field wildcards are MemberImportIndex's
// concern) — probed in source declaration order, stopping at the first hit.
type WildImportIndex struct {
	base      Scope
	pkgLookup PackageLookup
	entries   []*wildEntry
}

// NewWildImportIndex builds an empty WildImportIndex. base resolves a type
// wildcard's target qualified name; pkgLookup resolves a simple name within
// a package wildcard's package.
func NewWildImportIndex(base Scope, pkgLookup PackageLookup) *WildImportIndex {
	return &WildImportIndex{base: base, pkgLookup: pkgLookup}
}

// AddPackage records a package wildcard import in source order.
func (w *WildImportIndex) AddPackage(pkg string) {
	w.entries = append(w.entries, &wildEntry{kind: wildPackage, pkg: pkg})
}

// AddType records an on-demand type wildcard import in source order.
func (w *WildImportIndex) AddType(target ast.Name) {
	w.entries = append(w.entries, &wildEntry{kind: wildType, target: target})
}

// LookupWithResolver probes each wildcard entry in source order, returning
// the first hit.
func (w *WildImportIndex) LookupWithResolver(key ast.Name, resolve ResolveFunction) (LookupResult, bool) {
	if len(key.Parts) == 0 {
		return LookupResult{}, false
	}
	simple := key.Parts[0].Name
	for _, e := range w.entries {
		switch e.kind {
		case wildPackage:
			if w.pkgLookup == nil {
				continue
			}
			if sym, ok := w.pkgLookup(e.pkg, simple); ok {
				return LookupResult{Symbol: sym, Remaining: key.Parts[1:]}, true
			}
		case wildType:
			if !e.cell.done {
				e.cell.sym, e.cell.ok = resolveQualified(e.target, w.base, resolve)
				e.cell.done = true
			}
			if !e.cell.ok {
				continue
			}
			if member, ok := resolve(e.cell.sym, e.cell.sym, simple); ok {
				return LookupResult{Symbol: member, Remaining: key.Parts[1:]}, true
			}
		}
	}
	return LookupResult{}, false
}
