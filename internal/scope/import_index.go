package scope

import (
	"github.com/cwbudde/jhdr/internal/ast"
	"github.com/cwbudde/jhdr/internal/symbol"
)

// importCell memoizes one single-type import's resolution. done guards
// against re-resolving (and re-diagnosing) an import that already failed.
type importCell struct {
	sym  symbol.Class
	ok   bool
	done bool
}

// ImportIndex holds single-type imports (`import a.b.C;`), keyed by simple
// name, resolved lazily against base once a ResolveFunction becomes
// available.
type ImportIndex struct {
	base    Scope
	targets map[string]ast.Name // simple name -> fully qualified import target
	cells   map[string]*importCell
}

// NewImportIndex builds an ImportIndex. base is the scope a single-type
// import target is looked up in first, consuming whatever prefix it matches
// — ordinarily the top-level index's Scope().
func NewImportIndex(base Scope) *ImportIndex {
	return &ImportIndex{base: base, targets: make(map[string]ast.Name), cells: make(map[string]*importCell)}
}

// Add records one `import target;` declaration under target's simple name.
// It returns false if that simple name is already imported by a different
// target, leaving the first import in place (callers report a diagnostic
// for the duplicate).
func (idx *ImportIndex) Add(target ast.Name) bool {
	if len(target.Parts) == 0 {
		return false
	}
	simple := target.Parts[len(target.Parts)-1].Name
	if _, exists := idx.targets[simple]; exists {
		return false
	}
	idx.targets[simple] = target
	return true
}

// LookupWithResolver resolves key's leading identifier against the imports
// recorded by Add, continuing through member lookups as needed.
func (idx *ImportIndex) LookupWithResolver(key ast.Name, resolve ResolveFunction) (LookupResult, bool) {
	if len(key.Parts) == 0 {
		return LookupResult{}, false
	}
	simple := key.Parts[0].Name
	target, ok := idx.targets[simple]
	if !ok {
		return LookupResult{}, false
	}
	cell, ok := idx.cells[simple]
	if !ok {
		cell = &importCell{}
		idx.cells[simple] = cell
	}
	if !cell.done {
		cell.sym, cell.ok = resolveQualified(target, idx.base, resolve)
		cell.done = true
	}
	if !cell.ok {
		return LookupResult{}, false
	}
	return LookupResult{Symbol: cell.sym, Remaining: key.Parts[1:]}, true
}

// resolveQualified walks target's full identifier path: the whole target
// through base, which matches some prefix of it, then every identifier base
// left as Remaining through resolve as a nested-member lookup.
func resolveQualified(target ast.Name, base Scope, resolve ResolveFunction) (symbol.Class, bool) {
	r, ok := base.Lookup(target)
	if !ok {
		return "", false
	}
	sym := r.Symbol
	for _, ident := range r.Remaining {
		next, ok := resolve(sym, sym, ident.Name)
		if !ok {
			return "", false
		}
		sym = next
	}
	return sym, true
}
