package binder

import (
	"github.com/cwbudde/jhdr/internal/ast"
	"github.com/cwbudde/jhdr/internal/constant"
	"github.com/cwbudde/jhdr/internal/diag"
	"github.com/cwbudde/jhdr/internal/symbol"
	"github.com/cwbudde/jhdr/internal/types"
)

var primKeywords = map[string]types.PrimKind{
	"boolean": types.PrimBoolean,
	"byte":    types.PrimByte,
	"short":   types.PrimShort,
	"char":    types.PrimChar,
	"int":     types.PrimInt,
	"long":    types.PrimLong,
	"float":   types.PrimFloat,
	"double":  types.PrimDouble,
}

// typeBindCtx threads the type-parameter scope a type expression resolves
// against: a class's own (and its enclosing classes') type parameters, plus
// — while binding one method's signature — that method's own type
// parameters layered on top.
type typeBindCtx struct {
	class    *BoundClass
	methodTy map[string]symbol.TypeVariable
}

func (c *typeBindCtx) lookupTypeVar(name string) (symbol.TypeVariable, bool) {
	if c.methodTy != nil {
		if tv, ok := c.methodTy[name]; ok {
			return tv, true
		}
	}
	for b := c.class; b != nil; b = b.Parent {
		if tv, ok := b.TypeParams[name]; ok {
			return tv, true
		}
	}
	return symbol.TypeVariable{}, false
}

// BindSignatures runs the type-parameter/signature phase over every source
// class: type-parameter bounds, the fully parameterized superclass and
// interface list, and every field/method's signature.
func (bd *Binder) BindSignatures() {
	for _, b := range bd.AllSourceClasses() {
		bd.bindTypeParams(b)
	}
	for _, b := range bd.AllSourceClasses() {
		bd.bindClassSignature(b)
	}
}

// bindClassSignature runs the superclass/field/method signature steps for
// one class, exactly once. An annotation reference encountered while
// another class is still only header-bound (e.g. an annotation used in a
// field initializer of a class earlier in iteration order) calls this
// on demand so its element types are available immediately, mirroring how
// the hierarchy phase binds supertypes on demand.
func (bd *Binder) bindClassSignature(b *BoundClass) {
	if b.decl == nil || b.signaturesDone {
		return
	}
	b.signaturesDone = true
	bd.bindGenericSuper(b)
	bd.bindFields(b)
	bd.bindMethods(b)
	bd.bindClassAnnotations(b)
	b.Stage = StageTyped
}

// bindClassAnnotations evaluates b's own declaration annotations and, when b
// is itself an annotation type, derives its AnnotationMeta from them —
// the source-class counterpart of classpath.go's classpath-side derivation.
func (bd *Binder) bindClassAnnotations(b *BoundClass) {
	ctx := &typeBindCtx{class: b}
	b.Annos = bd.evalAnnotationTrees(ctx, b.decl.Annotations)
	if b.Kind == ast.KindAnnotation {
		b.AnnotationMeta = deriveAnnotationMeta(b.Annos)
	}
}

// bindTypeParams resolves b's own declared type parameters' bounds. This
// runs as its own pass, before any field/method/supertype binding, so that
// a type parameter's bound may reference a sibling type parameter declared
// earlier in the same list and so every class's type parameters are
// in scope by the time signature binding starts.
func (bd *Binder) bindTypeParams(b *BoundClass) {
	if b.decl == nil || len(b.TypeParamNames) > 0 {
		return
	}
	ctx := &typeBindCtx{class: b}
	for _, tp := range b.decl.TypeParams {
		tv := symbol.TypeVariable{Owner: symbol.ClassOwner(b.Symbol), Name: tp.Name.Name}
		b.TypeParamNames = append(b.TypeParamNames, tp.Name.Name)
		b.TypeParams[tp.Name.Name] = tv
	}
	for _, tp := range b.decl.TypeParams {
		tv := b.TypeParams[tp.Name.Name]
		var bounds []types.Type
		for _, be := range tp.Bounds {
			if bt, ok := bd.resolveType(ctx, be); ok {
				bounds = append(bounds, bt)
			}
		}
		b.TypeParamInfo[tv] = TypeParamInfo{
			Bound: boundsToType(bounds),
			Annos: bd.evalAnnotationTrees(ctx, tp.Annotations),
		}
	}
}

// bindGenericSuper re-resolves b's superclass/interfaces with their type
// arguments, now that every class's type parameters are bound — replacing
// the raw (unparameterized) SuperType the hierarchy phase left in place.
func (bd *Binder) bindGenericSuper(b *BoundClass) {
	if b.decl == nil || b.HasCycle {
		return
	}
	ctx := &typeBindCtx{class: b}
	if b.decl.Superclass != nil {
		if t, ok := bd.resolveType(ctx, b.decl.Superclass); ok {
			b.SuperType = t
		}
	}
	for i, iface := range b.decl.Interfaces {
		if t, ok := bd.resolveType(ctx, iface); ok && i < len(b.InterfaceTypes) {
			b.InterfaceTypes[i] = t
		}
	}
}

func (bd *Binder) bindFields(b *BoundClass) {
	if b.decl == nil {
		return
	}
	ctx := &typeBindCtx{class: b}
	for i, fd := range b.decl.Fields {
		var ft types.Type
		if fd.Type != nil {
			n := bd.Bag.Len()
			t, ok := bd.resolveType(ctx, fd.Type)
			if !ok {
				if bd.Bag.Len() == n {
					bd.Bag.Errorf(b.unit.Unit.Source, fd.Pos, diag.SymbolNotFound,
						"cannot resolve type of field %s", fd.Name.Name)
				}
				continue
			}
			ft = t
		}
		bf := &BoundField{
			Symbol: symbol.Field{Owner: b.Symbol, Name: fd.Name.Name},
			Type:   ft,
			Access: fd.Mods,
			Annos:  bd.evalAnnotationTrees(ctx, fd.Annotations),
		}
		if fd.EnumConstant {
			bf.IsEnumConst = true
			bf.EnumOrdinal = i
		}
		b.Fields = append(b.Fields, bf)
	}
}

func (bd *Binder) bindMethods(b *BoundClass) {
	if b.decl == nil {
		return
	}
	nameCounts := map[string]int{}
	for _, md := range b.decl.Methods {
		idx := nameCounts[md.Name.Name]
		nameCounts[md.Name.Name]++
		msym := symbol.Method{Owner: b.Symbol, Name: md.Name.Name, Index: idx}

		methodTy := map[string]symbol.TypeVariable{}
		for _, tp := range md.TypeParams {
			methodTy[tp.Name.Name] = symbol.TypeVariable{Owner: symbol.MethodOwner(msym), Name: tp.Name.Name}
		}
		ctx := &typeBindCtx{class: b, methodTy: methodTy}

		bm := &BoundMethod{
			Symbol: msym,
			Access: md.Mods,
			Annos:  bd.evalAnnotationTrees(ctx, md.Annotations),
		}
		for _, tp := range md.TypeParams {
			tv := methodTy[tp.Name.Name]
			bm.TypeParams = append(bm.TypeParams, tv)
			var bounds []types.Type
			for _, be := range tp.Bounds {
				if bt, ok := bd.resolveType(ctx, be); ok {
					bounds = append(bounds, bt)
				}
			}
			b.TypeParamInfo[tv] = TypeParamInfo{Bound: boundsToType(bounds)}
		}
		if md.Return != nil {
			if t, ok := bd.resolveType(ctx, md.Return); ok {
				bm.Return = t
			}
		} else {
			bm.Return = types.Void
		}
		if md.Receiver != nil {
			if t, ok := bd.resolveType(ctx, md.Receiver); ok {
				bm.Receiver = t
			}
		}
		for _, p := range md.Params {
			t, ok := bd.resolveType(ctx, p.Type)
			if !ok {
				bd.Bag.Errorf(b.unit.Unit.Source, md.Pos, diag.SymbolNotFound,
					"cannot resolve parameter type of %s", md.Name.Name)
				continue
			}
			bm.Params = append(bm.Params, t)
			bm.ParamNames = append(bm.ParamNames, p.Name.Name)
		}
		for _, th := range md.Throws {
			if t, ok := bd.resolveType(ctx, th); ok {
				bm.Thrown = append(bm.Thrown, t)
			}
		}
		if md.Default != nil {
			env := bd.constantEnv(b, ctx)
			if v, ok := constant.Eval(md.Default, env); ok {
				bm.DefaultValue = &v
			}
		}
		b.Methods = append(b.Methods, bm)
	}
}

// resolveType resolves one source type expression to a types.Type, against
// ctx's type-parameter scope. A single-segment named type that names an
// in-scope type parameter resolves to a type variable rather than being
// looked up as a class.
func (bd *Binder) resolveType(ctx *typeBindCtx, texpr ast.TypeExpr) (types.Type, bool) {
	switch t := texpr.(type) {
	case *ast.PrimTypeExpr:
		if t.Keyword == "void" {
			return types.Void, true
		}
		k, ok := primKeywords[t.Keyword]
		if !ok {
			return types.Type{}, false
		}
		return types.NewPrim(k), true
	case *ast.ArrayTypeExpr:
		elem, ok := bd.resolveType(ctx, t.Elem)
		if !ok {
			return types.Type{}, false
		}
		return types.NewArray(elem), true
	case *ast.WildcardTypeExpr:
		if t.Kind == ast.WildcardNone {
			return types.NewWildcard(types.WildNone, nil), true
		}
		bound, ok := bd.resolveType(ctx, t.Bound)
		if !ok {
			return types.Type{}, false
		}
		wk := types.WildUpper
		if t.Kind == ast.WildcardLower {
			wk = types.WildLower
		}
		return types.NewWildcard(wk, &bound), true
	case *ast.IntersectionTypeExpr:
		var bounds []types.Type
		for _, be := range t.Bounds {
			if bt, ok := bd.resolveType(ctx, be); ok {
				bounds = append(bounds, bt)
			}
		}
		return types.NewIntersection(bounds...), true
	case *ast.NamedTypeExpr:
		if len(t.Name.Parts) == 1 && len(t.TypeArgs) == 0 {
			if tv, ok := ctx.lookupTypeVar(t.Name.Parts[0].Name); ok {
				return types.NewTypeVar(tv), true
			}
		}
		if len(t.Name.Parts) > 1 {
			if _, ok := ctx.lookupTypeVar(t.Name.Parts[0].Name); ok {
				bd.Bag.Errorf(sourceOf(ctx.class), t.Name.Pos(), diag.TypeParameterQualifier,
					"%s cannot be used as a type qualifier", t.Name.Parts[0].Name)
				return types.Type{}, false
			}
		}
		sym, ok := bd.resolveSupertypeName(ctx.class, t)
		if !ok {
			return types.Type{}, false
		}
		var args []types.Type
		for _, ta := range t.TypeArgs {
			if at, ok := bd.resolveType(ctx, ta); ok {
				args = append(args, at)
			}
		}
		return types.NewSimpleClass(sym, args...), true
	default:
		return types.Type{}, false
	}
}
