package scope

import (
	"github.com/cwbudde/jhdr/internal/ast"
	"github.com/cwbudde/jhdr/internal/symbol"
)

// PackageScope lists the classes declared directly in one package and
// resolves a bare simple name within that package only — it does not
// recurse into sub-packages or consult imports.
type PackageScope struct {
	classes map[string]symbol.Class
}

// NewPackageScope wraps a simple-name → class-symbol map as a PackageScope.
func NewPackageScope(classes map[string]symbol.Class) PackageScope {
	return PackageScope{classes: classes}
}

// Lookup resolves name to its class symbol within this package.
func (p PackageScope) Lookup(name string) (symbol.Class, bool) {
	c, ok := p.classes[name]
	return c, ok
}

// asScope adapts PackageScope to Scope for compound-scope assembly: a
// package scope only ever matches the leading identifier of a lookup key
// (a class is never itself qualified further within its own package scope
// entry), leaving the rest of the key as Remaining for structural
// resolution exactly like any other Scope.
type asScope struct{ PackageScope }

func (p asScope) Lookup(key ast.Name) (LookupResult, bool) {
	if len(key.Parts) == 0 {
		return LookupResult{}, false
	}
	c, ok := p.PackageScope.Lookup(key.Parts[0].Name)
	if !ok {
		return LookupResult{}, false
	}
	return LookupResult{Symbol: c, Remaining: key.Parts[1:]}, true
}

// AsScope returns p adapted to the Scope interface.
func (p PackageScope) AsScope() Scope { return asScope{p} }

// Classes returns every simple name declared in this package.
func (p PackageScope) Classes() []string {
	names := make([]string, 0, len(p.classes))
	for n := range p.classes {
		names = append(names, n)
	}
	return names
}
