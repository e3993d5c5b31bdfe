package types

import "github.com/cwbudde/jhdr/internal/symbol"

// TypeVarBounds resolves a type variable to its first (leftmost) bound, the
// information erasure needs but which a bare symbol.TypeVariable does not
// carry (symbols are stateless; bounds live in the binder's BoundClass
// records). The binder package supplies a closure over its own tables.
type TypeVarBounds func(symbol.TypeVariable) Type

// Erase computes the erasure of t. Erasure is idempotent: erasing an
// already-erased type returns it unchanged.
//
//   - a class type erases to its raw form (chain kept, all type args dropped)
//   - an array erases element-wise
//   - a type variable erases to the erasure of its first bound
//   - an intersection erases to the erasure of its first bound
//   - every other kind (primitive, void, none, error, method, wildcard)
//     erases to itself, since wildcards cannot appear as the erasure's
//     result and the remaining kinds have no type-argument structure
//
// bounds may be nil only when t is statically known to contain no type
// variable or intersection (e.g. a primitive or already-raw class).
func Erase(t Type, bounds TypeVarBounds) Type {
	switch t.tag {
	case TagClass:
		chain := make([]SimpleClassTy, len(t.classChain))
		for i, link := range t.classChain {
			chain[i] = SimpleClassTy{Sym: link.Sym}
		}
		return Type{tag: TagClass, classChain: chain}
	case TagArray:
		elem := Erase(*t.elem, bounds)
		return Type{tag: TagArray, elem: &elem}
	case TagTypeVar:
		return Erase(bounds(t.tvar), bounds)
	case TagIntersection:
		if len(t.bounds) == 0 {
			return t
		}
		return Erase(t.bounds[0], bounds)
	default:
		return Type{tag: t.tag, prim: t.prim, tvar: t.tvar, wildKind: t.wildKind,
			wildBound: t.wildBound, errorPath: t.errorPath,
			methodTyParams: t.methodTyParams, methodReturn: t.methodReturn,
			methodReceiver: t.methodReceiver, methodParams: t.methodParams,
			methodThrown: t.methodThrown}
	}
}
