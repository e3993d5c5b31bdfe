package types

import "github.com/cwbudde/jhdr/internal/symbol"

// Substitution maps a type variable to its replacement. A variable absent
// from the map is left unsubstituted.
type Substitution map[symbol.TypeVariable]Type

// Subst applies sub throughout t; an empty or nil Substitution is the
// identity.
func Subst(t Type, sub Substitution) Type {
	if len(sub) == 0 {
		return t
	}
	switch t.tag {
	case TagTypeVar:
		if r, ok := sub[t.tvar]; ok {
			return r
		}
		return t
	case TagClass:
		chain := make([]SimpleClassTy, len(t.classChain))
		for i, link := range t.classChain {
			args := make([]Type, len(link.TypeArgs))
			for j, a := range link.TypeArgs {
				args[j] = Subst(a, sub)
			}
			chain[i] = SimpleClassTy{Sym: link.Sym, TypeArgs: args, Annos: link.Annos}
		}
		return Type{tag: TagClass, classChain: chain, annos: t.annos}
	case TagArray:
		elem := Subst(*t.elem, sub)
		return Type{tag: TagArray, elem: &elem, annos: t.annos}
	case TagWild:
		if t.wildBound == nil {
			return t
		}
		b := Subst(*t.wildBound, sub)
		return Type{tag: TagWild, wildKind: t.wildKind, wildBound: &b, annos: t.annos}
	case TagIntersection:
		bounds := make([]Type, len(t.bounds))
		for i, b := range t.bounds {
			bounds[i] = Subst(b, sub)
		}
		return Type{tag: TagIntersection, bounds: bounds}
	case TagMethod:
		ret := Subst(*t.methodReturn, sub)
		var recv *Type
		if t.methodReceiver != nil {
			r := Subst(*t.methodReceiver, sub)
			recv = &r
		}
		params := make([]Type, len(t.methodParams))
		for i, p := range t.methodParams {
			params[i] = Subst(p, sub)
		}
		thrown := make([]Type, len(t.methodThrown))
		for i, th := range t.methodThrown {
			thrown[i] = Subst(th, sub)
		}
		return Type{tag: TagMethod, methodTyParams: t.methodTyParams, methodReturn: &ret,
			methodReceiver: recv, methodParams: params, methodThrown: thrown}
	default:
		return t
	}
}
