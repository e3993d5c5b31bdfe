package binder

import (
	"github.com/cwbudde/jhdr/internal/ast"
	"github.com/cwbudde/jhdr/internal/symbol"
)

// Resolver implements the member-resolution helpers the scope package needs
// as capabilities (scope.ResolveFunction, scope.MemberImportIndex's
// FieldResolveFunction): given a class already matched by scope lookup, find
// one of its nested types or fields by simple name, walking supertypes
// breadth-first and filtering by visibility relative to an origin class.
type Resolver struct {
	env CompoundEnv
}

func newResolver(env CompoundEnv) *Resolver { return &Resolver{env: env} }

// ResolveType is a scope.ResolveFunction: resolve name as a nested type of
// sym, visible to origin, searching sym itself then its supertypes
// breadth-first.
func (r *Resolver) ResolveType(origin symbol.Class, sym symbol.Class, name string) (symbol.Class, bool) {
	return resolveOne(r.env, origin, sym, func(b *BoundClass) (symbol.Class, ast.Modifiers, bool) {
		c, ok := b.Children[name]
		if !ok {
			return "", 0, false
		}
		cb, ok := r.env.Lookup(c)
		if !ok {
			return c, ast.ModPublic, true
		}
		return c, cb.Access, true
	})
}

// ResolveField is a scope.FieldResolveFunction: resolve name as a field of
// owner, visible to origin, with the same BFS/visibility rule as
// ResolveType.
func (r *Resolver) ResolveField(origin symbol.Class, owner symbol.Class, name string) (symbol.Field, bool) {
	sym, ok := resolveOne(r.env, origin, owner, func(b *BoundClass) (symbol.Class, ast.Modifiers, bool) {
		f, ok := b.FieldByName(name)
		if !ok {
			return "", 0, false
		}
		return b.Symbol, f.Access, true
	})
	if !ok {
		return symbol.Field{}, false
	}
	return symbol.Field{Owner: sym, Name: name}, true
}

// memberLookup is resolveOne's per-class probe: given one class in the BFS
// frontier, report whether it declares the wanted member and, if so, that
// member's declaring class and access modifiers.
type memberLookup func(b *BoundClass) (declaringClass symbol.Class, access ast.Modifiers, found bool)

// resolveOne performs a breadth-first member search: starting at start,
// probe it and then its superclass and interfaces, in that order, level by
// level, returning the first declaration visible from
// origin. A declaration that exists but fails the visibility check is
// skipped, not treated as an error — the search simply continues to the
// next candidate in the frontier.
func resolveOne(env CompoundEnv, origin symbol.Class, start symbol.Class, probe memberLookup) (symbol.Class, bool) {
	visited := map[symbol.Class]bool{}
	frontier := []symbol.Class{start}
	for len(frontier) > 0 {
		var next []symbol.Class
		for _, cur := range frontier {
			if visited[cur] {
				continue
			}
			visited[cur] = true
			b, ok := env.Lookup(cur)
			if !ok {
				continue
			}
			if declaring, access, found := probe(b); found {
				if isVisible(env, origin, declaring, access) {
					return declaring, true
				}
				continue
			}
			if b.RawSuper != "" {
				next = append(next, b.RawSuper)
			}
			next = append(next, b.RawInterfaces...)
		}
		frontier = next
	}
	return "", false
}

// isVisible applies the three-way visibility rule: private is visible only
// within its own top-level class; package-private is visible only within
// the same package; protected is visible within the same package or from a
// subtype of owner; public is always visible.
func isVisible(env CompoundEnv, origin symbol.Class, owner symbol.Class, access ast.Modifiers) bool {
	switch {
	case access.IsPrivate():
		return topLevelOf(origin) == topLevelOf(owner)
	case access.IsProtected():
		if origin.PackageOf() == owner.PackageOf() {
			return true
		}
		return isSubtype(env, origin, owner)
	case access.IsPublic():
		return true
	default: // package-private
		return origin.PackageOf() == owner.PackageOf()
	}
}

// topLevelOf walks a class's Owner chain out to its outermost enclosing
// class, the unit private declarations are scoped to.
func topLevelOf(c symbol.Class) symbol.Class {
	for {
		owner, ok := c.Owner()
		if !ok {
			return c
		}
		c = owner
	}
}

// isSubtype reports whether origin is owner or a (possibly indirect)
// subclass/subinterface of owner, walking the superclass and interface
// chain. Used only for the protected-across-packages visibility case.
func isSubtype(env CompoundEnv, origin symbol.Class, owner symbol.Class) bool {
	if origin == owner {
		return true
	}
	visited := map[symbol.Class]bool{}
	frontier := []symbol.Class{origin}
	for len(frontier) > 0 {
		var next []symbol.Class
		for _, cur := range frontier {
			if visited[cur] {
				continue
			}
			visited[cur] = true
			if cur == owner {
				return true
			}
			b, ok := env.Lookup(cur)
			if !ok {
				continue
			}
			if b.RawSuper != "" {
				next = append(next, b.RawSuper)
			}
			next = append(next, b.RawInterfaces...)
		}
		frontier = next
	}
	return false
}
