// Package scope implements the chainable name-lookup primitives the binder
// composes per class: package scope, import scope (single/wild/static), and
// member scope. Scope is the fundamental abstraction; everything else in
// this package is either a Scope or a capability that becomes one once
// bound to a member resolver.
package scope

import (
	"github.com/cwbudde/jhdr/internal/ast"
	"github.com/cwbudde/jhdr/internal/symbol"
)

// LookupResult is a scope's answer to a lookup: the class symbol matched at
// some prefix of the key, plus the unconsumed suffix. An empty Remaining
// means the key fully resolved to a type; a non-empty Remaining means the
// caller must continue resolving those identifiers structurally as nested
// member lookups.
type LookupResult struct {
	Symbol    symbol.Class
	Remaining []ast.Ident
}

// Scope resolves a lookup key — a non-empty ordered sequence of identifiers
// — to a LookupResult, or reports no match.
type Scope interface {
	Lookup(key ast.Name) (LookupResult, bool)
}

// ResolveFunction performs member lookup: given the class doing the
// lookup (origin, for visibility checks), a class symbol, and a simple
// name, it returns the inherited-or-declared nested class symbol named
// name, respecting visibility.
type ResolveFunction func(origin symbol.Class, sym symbol.Class, name string) (symbol.Class, bool)
