package scope

import "github.com/cwbudde/jhdr/internal/ast"

// ImportScope is a lookup that additionally needs a member-resolution
// capability to finish: imports can be *declared* before the hierarchy
// phase exists, but member lookups through them can only be *performed*
// once it does. Passing the resolver as a parameter at lookup time (rather
// than at construction time) breaks that cycle.
type ImportScope interface {
	LookupWithResolver(key ast.Name, resolve ResolveFunction) (LookupResult, bool)
}

// Bind converts an ImportScope into a plain Scope once a resolver is
// available, for splicing into a CompoundScope alongside scopes that never
// needed one.
func Bind(s ImportScope, resolve ResolveFunction) Scope {
	return boundScope{s, resolve}
}

type boundScope struct {
	s       ImportScope
	resolve ResolveFunction
}

func (b boundScope) Lookup(key ast.Name) (LookupResult, bool) {
	return b.s.LookupWithResolver(key, b.resolve)
}
