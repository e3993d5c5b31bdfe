package scope

import "github.com/cwbudde/jhdr/internal/ast"

// CompoundScope chains scopes, probing each in order and returning the
// first non-empty result — first non-null wins. Nil entries (an optional
// scope that was never configured, e.g. no wildcard imports) are skipped.
type CompoundScope []Scope

// Lookup probes each member scope in order, first match wins.
func (c CompoundScope) Lookup(key ast.Name) (LookupResult, bool) {
	for _, s := range c {
		if s == nil {
			continue
		}
		if r, ok := s.Lookup(key); ok {
			return r, true
		}
	}
	return LookupResult{}, false
}
