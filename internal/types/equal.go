package types

// Equal reports structural equality, ignoring type-use annotations and
// wildcard capture identity.
func Equal(a, b Type) bool {
	if a.tag != b.tag {
		return false
	}
	switch a.tag {
	case TagPrim:
		return a.prim == b.prim
	case TagVoid, TagNone:
		return true
	case TagError:
		return a.errorPath == b.errorPath
	case TagTypeVar:
		return a.tvar.Owner == b.tvar.Owner && a.tvar.Name == b.tvar.Name
	case TagArray:
		return Equal(*a.elem, *b.elem)
	case TagWild:
		if a.wildKind != b.wildKind {
			return false
		}
		if (a.wildBound == nil) != (b.wildBound == nil) {
			return false
		}
		if a.wildBound == nil {
			return true
		}
		return Equal(*a.wildBound, *b.wildBound)
	case TagIntersection:
		return equalSlices(a.bounds, b.bounds)
	case TagClass:
		if len(a.classChain) != len(b.classChain) {
			return false
		}
		for i := range a.classChain {
			if a.classChain[i].Sym != b.classChain[i].Sym {
				return false
			}
			if !equalSlices(a.classChain[i].TypeArgs, b.classChain[i].TypeArgs) {
				return false
			}
		}
		return true
	case TagMethod:
		if len(a.methodTyParams) != len(b.methodTyParams) {
			return false
		}
		for i := range a.methodTyParams {
			if a.methodTyParams[i].Name != b.methodTyParams[i].Name {
				return false
			}
		}
		if !Equal(*a.methodReturn, *b.methodReturn) {
			return false
		}
		if (a.methodReceiver == nil) != (b.methodReceiver == nil) {
			return false
		}
		if a.methodReceiver != nil && !Equal(*a.methodReceiver, *b.methodReceiver) {
			return false
		}
		return equalSlices(a.methodParams, b.methodParams) && equalSlices(a.methodThrown, b.methodThrown)
	default:
		return false
	}
}

func equalSlices(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
