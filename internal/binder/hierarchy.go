package binder

import (
	"github.com/cwbudde/jhdr/internal/ast"
	"github.com/cwbudde/jhdr/internal/diag"
	"github.com/cwbudde/jhdr/internal/symbol"
	"github.com/cwbudde/jhdr/internal/types"
)

// objectClass is the one supertype every class implicitly gets when it
// declares no extends clause (interfaces and java/lang/Object itself
// excepted).
const objectClass = symbol.Class("java/lang/Object")

// BindHierarchy resolves the superclass and interface list of every source
// class registered so far, recursing into a supertype's own hierarchy
// binding on demand so that member-import resolution and the canonical-name
// check always see an already-resolved ancestor, with a visiting set
// catching cycles wherever the recursion revisits a class still being
// resolved.
func (bd *Binder) BindHierarchy() {
	visiting := map[symbol.Class]bool{}
	for _, b := range bd.AllSourceClasses() {
		bd.resolveHierarchy(b, visiting)
	}
}

func (bd *Binder) resolveHierarchy(b *BoundClass, visiting map[symbol.Class]bool) {
	if b.hierarchyDone {
		return
	}
	if visiting[b.Symbol] {
		bd.Bag.Errorf(b.unit.Unit.Source, b.decl.Pos, diag.CycleInClassHierarchy,
			"cyclic inheritance involving %s", b.Symbol)
		b.HasCycle = true
		b.SuperType = types.NewError("cycle involving " + string(b.Symbol))
		b.hierarchyDone = true
		return
	}
	visiting[b.Symbol] = true
	defer delete(visiting, b.Symbol)

	if b.decl.Superclass != nil {
		if sym, ok := bd.resolveSupertypeName(b, b.decl.Superclass); ok {
			b.RawSuper = sym
			if sup, ok2 := bd.sources[sym]; ok2 {
				bd.resolveHierarchy(sup, visiting)
			}
			if !b.HasCycle {
				b.SuperType = types.NewSimpleClass(sym)
			}
		} else {
			b.SuperType = types.NewError("unresolved superclass of " + string(b.Symbol))
		}
	} else if b.Kind != ast.KindInterface && b.Symbol != objectClass {
		b.RawSuper = objectClass
		b.SuperType = types.NewSimpleClass(objectClass)
	}

	for _, iface := range b.decl.Interfaces {
		sym, ok := bd.resolveSupertypeName(b, iface)
		if !ok {
			continue
		}
		b.RawInterfaces = append(b.RawInterfaces, sym)
		b.InterfaceTypes = append(b.InterfaceTypes, types.NewSimpleClass(sym))
		if sup, ok2 := bd.sources[sym]; ok2 {
			bd.resolveHierarchy(sup, visiting)
		}
	}

	b.hierarchyDone = true
}

// resolveSupertypeName resolves a supertype position's named type to a
// class symbol: the leading identifier through b's compound scope, then any
// remaining identifiers as structural nested-member lookups, flagging each
// step that only succeeded via an inherited (rather than declaring) class
// as a non-canonical reference.
func (bd *Binder) resolveSupertypeName(b *BoundClass, texpr ast.TypeExpr) (symbol.Class, bool) {
	nt, ok := texpr.(*ast.NamedTypeExpr)
	if !ok {
		return "", false
	}
	name := nt.Name
	res, ok := b.Scope.Lookup(name)
	if !ok {
		if len(name.Parts) == 1 {
			bd.Bag.Errorf(b.unit.Unit.Source, name.Pos(), diag.CannotResolve,
				"cannot resolve %s", name)
		} else {
			bd.Bag.Errorf(b.unit.Unit.Source, name.Pos(), diag.SymbolNotFound,
				"cannot find class %s", name)
		}
		return "", false
	}
	cur := res.Symbol
	for _, ident := range res.Remaining {
		next, ok := bd.resolve.ResolveType(b.Symbol, cur, ident.Name)
		if !ok {
			bd.Bag.Errorf(b.unit.Unit.Source, ident.Pos, diag.CannotResolve,
				"cannot resolve %s in %s", ident.Name, cur)
			return "", false
		}
		bd.checkCanonical(b, cur, ident, next)
		cur = next
	}
	return cur, true
}

// checkCanonical reports a NonCanonicalImport diagnostic when name resolved
// to next by inheritance rather than being declared directly on owner —
// i.e. next must be referenced through the class that actually declares it.
func (bd *Binder) checkCanonical(b *BoundClass, owner symbol.Class, name ast.Ident, next symbol.Class) {
	ownerClass, ok := bd.Env.Lookup(owner)
	if !ok {
		return
	}
	if declared, ok := ownerClass.Children[name.Name]; !ok || declared != next {
		bd.Bag.Errorf(b.unit.Unit.Source, name.Pos, diag.NonCanonicalImport,
			"%s must be referenced through the class that declares it, not %s", name.Name, owner)
	}
}
